package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/polkiloo/couponhub/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewExpirySweeperDefaults(t *testing.T) {
	sweeper := NewExpirySweeper(&testhelpers.CouponExpirerStub{}, 0, 0, discardLogger())
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
	if sweeper.interval != time.Minute {
		t.Fatalf("expected interval default to 1m, got %s", sweeper.interval)
	}
}

func TestExpirySweeperSweepDrainsBatches(t *testing.T) {
	expirer := &testhelpers.CouponExpirerStub{Batches: []int64{10, 10, 3}}
	sweeper := NewExpirySweeper(expirer, time.Second, 10, discardLogger())

	if total := sweeper.Sweep(context.Background()); total != 23 {
		t.Fatalf("expected 23 expired coupons, got %d", total)
	}
	if calls := expirer.Calls(); calls != 3 {
		t.Fatalf("expected 3 batches, got %d", calls)
	}
	if limit := expirer.LastLimit(); limit != 10 {
		t.Fatalf("expected limit 10, got %d", limit)
	}
}

func TestExpirySweeperSweepStopsOnError(t *testing.T) {
	expirer := &testhelpers.CouponExpirerStub{
		ExpireFn: func(context.Context, int) (int64, error) { return 0, errors.New("db down") },
	}
	sweeper := NewExpirySweeper(expirer, time.Second, 5, discardLogger())

	if total := sweeper.Sweep(context.Background()); total != 0 {
		t.Fatalf("expected nothing expired, got %d", total)
	}
	if calls := expirer.Calls(); calls != 1 {
		t.Fatalf("expected single attempt, got %d", calls)
	}
}

func TestExpirySweeperSweepHonoursCancellation(t *testing.T) {
	expirer := &testhelpers.CouponExpirerStub{Batches: []int64{5, 5, 5}}
	sweeper := NewExpirySweeper(expirer, time.Second, 5, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweeper.Sweep(ctx)
	if calls := expirer.Calls(); calls != 0 {
		t.Fatalf("expected no calls after cancellation, got %d", calls)
	}
}

func TestExpirySweeperRunsPeriodically(t *testing.T) {
	expirer := &testhelpers.CouponExpirerStub{}
	sweeper := NewExpirySweeper(expirer, 5*time.Millisecond, 10, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for expirer.Calls() < 3 {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for sweeps, got %d", expirer.Calls())
		case <-time.After(5 * time.Millisecond):
		}
	}

	sweeper.Stop()
	calls := expirer.Calls()
	time.Sleep(20 * time.Millisecond)
	if expirer.Calls() != calls {
		t.Fatal("expected no sweeps after stop")
	}
	sweeper.Stop()
}
