package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"paysquare/shared"
)

// AmountPlaces is the precision user-entered amounts are rounded to.
const AmountPlaces = 3

// PaymentRequest is the single payment a QR code is generated for. It is
// never persisted.
type PaymentRequest struct {
	IBAN     string
	Amount   decimal.Decimal
	Currency shared.Currency
}

func NewPaymentRequest(iban string, amount decimal.Decimal) (PaymentRequest, error) {
	if !amount.IsPositive() {
		return PaymentRequest{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return PaymentRequest{
		IBAN:     strings.TrimSpace(iban),
		Amount:   amount.Round(AmountPlaces),
		Currency: shared.EUR,
	}, nil
}

// plainAmount is digits with an optional fraction. Exponents are refused:
// rounding 1e99999999 would build a number with that many digits.
var plainAmount = regexp.MustCompile(`^([0-9]+(\.[0-9]+)?|\.[0-9]+)$`)

// ParseAmount reads an amount typed by the user. Both "12.5" and "12,5" are
// accepted.
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if !plainAmount.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	amount = amount.Round(AmountPlaces)
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	return amount, nil
}
