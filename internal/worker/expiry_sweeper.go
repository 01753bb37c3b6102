package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CouponExpirer exposes the subset of application functionality required by the sweeper.
type CouponExpirer interface {
	ExpireOverdueCoupons(ctx context.Context, limit int) (int64, error)
}

// ExpirySweeper periodically flips overdue available coupons to expired.
type ExpirySweeper struct {
	expirer   CouponExpirer
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewExpirySweeper constructs sweeper running every interval in batches of batchSize.
func NewExpirySweeper(expirer CouponExpirer, interval time.Duration, batchSize int, logger *slog.Logger) *ExpirySweeper {
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpirySweeper{
		expirer:   expirer,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start launches background sweeping. Calling Start twice is a no-op.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels sweeping and waits for the running sweep to finish.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ExpirySweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep expires overdue coupons batch by batch until a short batch and
// returns how many were expired.
func (s *ExpirySweeper) Sweep(ctx context.Context) int64 {
	var total int64
	for ctx.Err() == nil {
		n, err := s.expirer.ExpireOverdueCoupons(ctx, s.batchSize)
		if err != nil {
			s.logger.Error("expire overdue coupons failed", slog.String("error", err.Error()))
			break
		}
		total += n
		if n < int64(s.batchSize) {
			break
		}
	}
	if total > 0 {
		s.logger.Info("expired overdue coupons", slog.Int64("count", total))
	}
	return total
}
