package server

import "testing"

type categoryPayload struct {
	Category *string `validate:"omitempty,category"`
}

// TestValidateCategoryTag проверяет проверку идентификатора категории.
func TestValidateCategoryTag(t *testing.T) {
	v := NewValidator()

	valid := "comida"
	if err := v.Validate(&categoryPayload{Category: &valid}); err != nil {
		t.Fatalf("expected comida to pass, got %v", err)
	}

	unknown := "viajes"
	if err := v.Validate(&categoryPayload{Category: &unknown}); err == nil {
		t.Fatal("expected unknown category to fail")
	}
}

// TestValidateCategoryTagOptional проверяет пропуск пустой категории.
func TestValidateCategoryTagOptional(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&categoryPayload{}); err != nil {
		t.Fatalf("expected nil category to pass, got %v", err)
	}

	padded := "  transporte  "
	if err := v.Validate(&categoryPayload{Category: &padded}); err != nil {
		t.Fatalf("expected padded category to pass, got %v", err)
	}
}
