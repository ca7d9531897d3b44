package usecase

import (
	domainErrors "github.com/dokonbot/dokonbot/internal/domain/errors"
	"github.com/dokonbot/dokonbot/internal/domain/model"
)

// ValidateQty rejects non-positive quantities.
func ValidateQty(qty float64) error {
	if qty <= 0 {
		return domainErrors.ErrInvalidQty
	}
	return nil
}

// ValidateAmount rejects non-positive money amounts.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return nil
}

// ValidateDiscount checks a discount specification as collected by the input
// layer. The calculation layer additionally clamps values, so out-of-range
// input that slips through is corrected rather than breaking totals.
func ValidateDiscount(d model.Discount) error {
	switch d.Type {
	case model.DiscountNone:
		return nil
	case model.DiscountPercent:
		if d.Value < 0 || d.Value > 100 {
			return domainErrors.ErrInvalidDiscount
		}
		return nil
	case model.DiscountFixed:
		if d.Value < 0 {
			return domainErrors.ErrInvalidDiscount
		}
		return nil
	default:
		return domainErrors.ErrInvalidDiscount
	}
}
