package service

import (
	"fmt"
	"strconv"

	"shopbot/internal/domain"
	apperrors "shopbot/internal/errors"
)

// MinWeightGrams is the aggregate minimum for weight-sold items per order.
const MinWeightGrams = 1000

// CartValidator re-checks the rules the web client enforces, so a crafted
// payload cannot skip them.
type CartValidator struct{}

func NewCartValidator() *CartValidator {
	return &CartValidator{}
}

// ValidateOrder checks field sanity first, then the minimum-weight rule.
// Carts without weight-sold lines are exempt from the weight rule.
func (v *CartValidator) ValidateOrder(lines []domain.CartLine, contact domain.ContactProfile) error {
	var details []apperrors.ValidationDetail

	if len(lines) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "cart",
			Message: "cart must not be empty",
		})
	}

	for idx, line := range lines {
		if line.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "cart[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be at least 1",
			})
		}
		if line.Price < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "cart[" + strconv.Itoa(idx) + "].price",
				Message: "price must be non-negative",
			})
		}
	}

	if contact.FullName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "userData.fullName",
			Message: "fullName is required",
		})
	}
	if contact.Phone == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "userData.phone",
			Message: "phone is required",
		})
	}
	if contact.City == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "userData.city",
			Message: "city is required",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("❌ Проверьте данные заказа и попробуйте снова.", details...)
	}

	totalWeight := domain.CartWeightGrams(lines)
	if totalWeight > 0 && totalWeight < MinWeightGrams {
		return apperrors.NewValidationError(
			fmt.Sprintf("⚠️ Минимальный объём заказа по весовым товарам от 1 кг\nТекущий вес: %dг", totalWeight),
			apperrors.ValidationDetail{
				Field:   "cart",
				Message: fmt.Sprintf("weight-sold items total %dg, minimum is %dg", totalWeight, MinWeightGrams),
			},
		)
	}

	return nil
}
