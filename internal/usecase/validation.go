package usecase

import (
	"strings"
	"time"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
)

var birthDateLayouts = []string{"02/01/2006", "2006-01-02"}

// ParseBirthDate parses DD/MM/YYYY or YYYY-MM-DD and rejects impossible dates.
func ParseBirthDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domainErrors.ErrInvalidBirthDate
}

// parseBirthDateLenient returns nil for empty or unparseable values.
func parseBirthDateLenient(value string) *time.Time {
	t, err := ParseBirthDate(value)
	if err != nil {
		return nil
	}
	return &t
}

func validateDraft(draft model.CouponDraft) error {
	if blank(draft.Name) || blank(draft.Description) || draft.TokensRequired <= 0 || draft.ExpirationDate == nil {
		return domainErrors.ErrInvalidInput
	}
	if draft.ExpirationDate.IsZero() {
		return domainErrors.ErrInvalidInput
	}
	return nil
}

func validatePatch(patch model.CouponPatch) error {
	if patch.Empty() {
		return domainErrors.ErrInvalidInput
	}
	switch {
	case patch.Name != nil && blank(*patch.Name),
		patch.Description != nil && blank(*patch.Description),
		patch.TokensRequired != nil && *patch.TokensRequired <= 0,
		patch.ExpirationDate != nil && patch.ExpirationDate.IsZero(),
		patch.Status != nil && !patch.Status.Valid():
		return domainErrors.ErrInvalidInput
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
