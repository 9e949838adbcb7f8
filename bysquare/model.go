// Package bysquare encodes payment orders into PAY by square strings, the
// payload format Slovak and Czech banking apps read from payment QR codes.
package bysquare

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type PaymentOption int

// PaymentOrder is the only option supported here. Standing orders and
// direct debits need extension blocks that are always encoded as absent.
const PaymentOrder PaymentOption = 1

var (
	ErrInvalidIBAN      = errors.New("bysquare: invalid IBAN")
	ErrInvalidAmount    = errors.New("bysquare: amount must not be negative")
	ErrInvalidCurrency  = errors.New("bysquare: currency must be a 3-letter code")
	ErrInvalidDueDate   = errors.New("bysquare: due date must be YYYYMMDD")
	ErrNoPayments       = errors.New("bysquare: at least one payment with one bank account is required")
	ErrUnsupported      = errors.New("bysquare: only payment orders are supported")
	ErrPayloadTooLarge  = errors.New("bysquare: payload too large")
	ErrMalformedPayload = errors.New("bysquare: malformed payload")
	ErrChecksum         = errors.New("bysquare: checksum mismatch")
)

type BankAccount struct {
	IBAN string
	BIC  string
}

type Beneficiary struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
}

type Payment struct {
	Type PaymentOption
	// Amount zero means the payer fills it in.
	Amount                          decimal.Decimal
	CurrencyCode                    string
	PaymentDueDate                  string
	VariableSymbol                  string
	ConstantSymbol                  string
	SpecificSymbol                  string
	OriginatorsReferenceInformation string
	PaymentNote                     string
	BankAccounts                    []BankAccount
	Beneficiary                     Beneficiary
}

// Model is one PAY by square document.
type Model struct {
	InvoiceID string
	Payments  []Payment
}

// SinglePayment builds the common case: one payment order to one account.
func SinglePayment(iban string, amount decimal.Decimal, currency string) Model {
	return Model{
		Payments: []Payment{{
			Type:         PaymentOrder,
			Amount:       amount,
			CurrencyCode: currency,
			BankAccounts: []BankAccount{{IBAN: iban}},
		}},
	}
}

var (
	ibanPattern     = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	dueDatePattern  = regexp.MustCompile(`^[0-9]{8}$`)
)

// NormalizeIBAN strips spaces and upper-cases the IBAN. The check digits are
// not verified.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

func (m Model) validate() error {
	if len(m.Payments) == 0 {
		return ErrNoPayments
	}
	for _, p := range m.Payments {
		if p.Type != PaymentOrder {
			return ErrUnsupported
		}
		if len(p.BankAccounts) == 0 {
			return ErrNoPayments
		}
		for _, ba := range p.BankAccounts {
			if !ibanPattern.MatchString(NormalizeIBAN(ba.IBAN)) {
				return fmt.Errorf("%w: %q", ErrInvalidIBAN, ba.IBAN)
			}
		}
		if p.Amount.IsNegative() {
			return ErrInvalidAmount
		}
		if !currencyPattern.MatchString(p.CurrencyCode) {
			return ErrInvalidCurrency
		}
		if p.PaymentDueDate != "" && !dueDatePattern.MatchString(p.PaymentDueDate) {
			return ErrInvalidDueDate
		}
	}
	return nil
}
