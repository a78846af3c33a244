package service

import (
	"strings"
	"testing"

	"shopbot/internal/domain"
	apperrors "shopbot/internal/errors"
)

func validContact() domain.ContactProfile {
	return domain.ContactProfile{
		FullName: "Иван Иванов",
		Phone:    "+79991234567",
		Email:    "ivan@example.com",
		City:     "Москва",
		Address:  "ул. Ленина, 1",
	}
}

func TestValidateOrder_PieceOnlyCartPasses(t *testing.T) {
	validator := NewCartValidator()
	cart := []domain.CartLine{
		{ProductID: 1, Unit: domain.UnitPiece, Price: 500, Quantity: 200},
	}

	if err := validator.ValidateOrder(cart, validContact()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateOrder_WeightBoundaries(t *testing.T) {
	validator := NewCartValidator()

	tests := []struct {
		name    string
		grams   int
		qty     int
		wantErr bool
	}{
		{"exactly 1000g passes", 500, 2, false},
		{"999g rejects", 999, 1, true},
		{"1g rejects", 1, 1, true},
		{"well above minimum passes", 250, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := []domain.CartLine{
				{ProductID: 1, Unit: domain.UnitWeight, Price: 120, Quantity: tt.qty, PackageWeight: tt.grams},
			}
			err := validator.ValidateOrder(cart, validContact())
			if tt.wantErr {
				ve, ok := apperrors.IsValidationError(err)
				if !ok {
					t.Fatalf("expected validation error, got %v", err)
				}
				if !strings.Contains(ve.Message, "1 кг") {
					t.Fatalf("message should mention the minimum: %q", ve.Message)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateOrder_WeightMessageCarriesActualGrams(t *testing.T) {
	validator := NewCartValidator()
	cart := []domain.CartLine{
		{ProductID: 1, Unit: domain.UnitWeight, Price: 120, Quantity: 3, PackageWeight: 250},
	}

	err := validator.ValidateOrder(cart, validContact())
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(ve.Message, "750г") {
		t.Fatalf("message should carry the actual weight: %q", ve.Message)
	}
}

func TestValidateOrder_EmptyCart(t *testing.T) {
	validator := NewCartValidator()

	err := validator.ValidateOrder(nil, validContact())
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Details) != 1 || ve.Details[0].Field != "cart" {
		t.Fatalf("unexpected details: %+v", ve.Details)
	}
}

func TestValidateOrder_FieldProblemsAreCollected(t *testing.T) {
	validator := NewCartValidator()
	cart := []domain.CartLine{
		{ProductID: 1, Unit: domain.UnitPiece, Price: -5, Quantity: 0},
	}

	err := validator.ValidateOrder(cart, domain.ContactProfile{Email: "x@example.com"})
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	// quantity, price, fullName, phone, city
	if len(ve.Details) != 5 {
		t.Fatalf("expected 5 details, got %d: %+v", len(ve.Details), ve.Details)
	}
}

func TestValidateOrder_DefaultPackageWeightApplies(t *testing.T) {
	validator := NewCartValidator()
	// 3 × default 250g = 750g < 1000g.
	cart := []domain.CartLine{
		{ProductID: 1, Unit: domain.UnitWeight, Price: 120, Quantity: 3},
	}

	if _, ok := apperrors.IsValidationError(validator.ValidateOrder(cart, validContact())); !ok {
		t.Fatal("expected weight rejection with default package weight")
	}
}
