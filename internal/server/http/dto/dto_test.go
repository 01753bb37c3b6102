package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2025-12-31T23:59:00Z"`, time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)},
		{"offset", `"2025-12-31T10:00:00+02:00"`, time.Date(2025, 12, 31, 8, 0, 0, 0, time.UTC)},
		{"no zone", `"2025-12-31T10:00:00"`, time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)},
		{"date only", `"2025-12-31"`, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tc.in), &ts))
			assert.True(t, ts.Equal(tc.want), "got %s", ts.Time)
		})
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"31/12/2025"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12345`), &ts))
}

func TestTimestampPtr(t *testing.T) {
	var nilTS *Timestamp
	assert.Nil(t, nilTS.Ptr())

	now := time.Now()
	ts := &Timestamp{Time: now}
	ptr := ts.Ptr()
	require.NotNil(t, ptr)
	assert.True(t, ptr.Equal(now))
}

func TestCouponStatusValidator(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	valid := "locked"
	invalid := "redeemed"
	assert.NoError(t, binding.Validator.ValidateStruct(&UpdateCouponRequest{Status: &valid}))
	assert.Error(t, binding.Validator.ValidateStruct(&UpdateCouponRequest{Status: &invalid}))
	assert.NoError(t, binding.Validator.ValidateStruct(&UpdateCouponRequest{}))

	zero := 0
	assert.Error(t, binding.Validator.ValidateStruct(&UpdateCouponRequest{TokensRequired: &zero}))
}

func TestCreateCouponRequestValidation(t *testing.T) {
	RegisterValidators()

	var req CreateCouponRequest
	body := `{"name":"Coffee","description":"One cup","tokensRequired":3,"expirationDate":"2030-01-01"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.NoError(t, binding.Validator.ValidateStruct(&req))

	req.ExpirationDate = nil
	assert.Error(t, binding.Validator.ValidateStruct(&req))
}

func TestCompleteProfileRequestValidation(t *testing.T) {
	var req CompleteProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"userId":1,"password":"x"}`), &req))
	assert.Error(t, binding.Validator.ValidateStruct(&req), "isStore is required")

	require.NoError(t, json.Unmarshal([]byte(`{"userId":1,"password":"x","isStore":false}`), &req))
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}
