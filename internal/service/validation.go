package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

func requireText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return "", fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, maxLen)
	}
	return value, nil
}

// requireMoney accepts non-negative amounts with at most two decimal places.
func requireMoney(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	}
	if !value.Equal(value.Round(2)) {
		return fmt.Errorf("%w: %s must have at most two decimal places", ErrInvalidInput, field)
	}
	if value.GreaterThanOrEqual(decimal.New(1, 10)) {
		return fmt.Errorf("%w: %s is too large", ErrInvalidInput, field)
	}
	return nil
}
