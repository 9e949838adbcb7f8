package bysquare

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const fieldSeparator = "\t"

// serialize flattens the model into the tab separated sequence defined by
// the PAY by square data model. Extension blocks are written as absent.
func serialize(m Model) string {
	fields := []string{clean(m.InvoiceID), strconv.Itoa(len(m.Payments))}
	for _, p := range m.Payments {
		amount := ""
		if !p.Amount.IsZero() {
			amount = p.Amount.String()
		}
		fields = append(fields,
			strconv.Itoa(int(p.Type)),
			amount,
			p.CurrencyCode,
			p.PaymentDueDate,
			clean(p.VariableSymbol),
			clean(p.ConstantSymbol),
			clean(p.SpecificSymbol),
			clean(p.OriginatorsReferenceInformation),
			clean(p.PaymentNote),
			strconv.Itoa(len(p.BankAccounts)),
		)
		for _, ba := range p.BankAccounts {
			fields = append(fields, NormalizeIBAN(ba.IBAN), clean(ba.BIC))
		}
		// standing order and direct debit extensions
		fields = append(fields, "0", "0")
	}
	for _, p := range m.Payments {
		fields = append(fields,
			clean(p.Beneficiary.Name),
			clean(p.Beneficiary.AddressLine1),
			clean(p.Beneficiary.AddressLine2),
		)
	}
	return strings.Join(fields, fieldSeparator)
}

func clean(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), fieldSeparator, " ")
}

type fieldReader struct {
	fields []string
	pos    int
}

func (r *fieldReader) next() (string, error) {
	if r.pos >= len(r.fields) {
		return "", ErrMalformedPayload
	}
	f := r.fields[r.pos]
	r.pos++
	return f, nil
}

// optional returns "" once the sequence is exhausted. Trailing beneficiary
// fields are omitted by some encoders.
func (r *fieldReader) optional() string {
	f, err := r.next()
	if err != nil {
		return ""
	}
	return f
}

func (r *fieldReader) count() (int, error) {
	f, err := r.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(f)
	if err != nil || n < 0 {
		return 0, ErrMalformedPayload
	}
	return n, nil
}

func deserialize(data string) (Model, error) {
	r := &fieldReader{fields: strings.Split(data, fieldSeparator)}

	var m Model
	var err error
	if m.InvoiceID, err = r.next(); err != nil {
		return Model{}, err
	}
	n, err := r.count()
	if err != nil {
		return Model{}, err
	}

	for i := 0; i < n; i++ {
		var p Payment
		option, err := r.count()
		if err != nil {
			return Model{}, err
		}
		p.Type = PaymentOption(option)
		if p.Type != PaymentOrder {
			return Model{}, ErrUnsupported
		}

		amount, err := r.next()
		if err != nil {
			return Model{}, err
		}
		if amount != "" {
			if p.Amount, err = decimal.NewFromString(amount); err != nil {
				return Model{}, ErrMalformedPayload
			}
		}

		for _, dst := range []*string{
			&p.CurrencyCode,
			&p.PaymentDueDate,
			&p.VariableSymbol,
			&p.ConstantSymbol,
			&p.SpecificSymbol,
			&p.OriginatorsReferenceInformation,
			&p.PaymentNote,
		} {
			if *dst, err = r.next(); err != nil {
				return Model{}, err
			}
		}

		accounts, err := r.count()
		if err != nil {
			return Model{}, err
		}
		for j := 0; j < accounts; j++ {
			var ba BankAccount
			if ba.IBAN, err = r.next(); err != nil {
				return Model{}, err
			}
			if ba.BIC, err = r.next(); err != nil {
				return Model{}, err
			}
			p.BankAccounts = append(p.BankAccounts, ba)
		}

		for ext := 0; ext < 2; ext++ {
			flag, err := r.next()
			if err != nil {
				return Model{}, err
			}
			if flag == "1" {
				return Model{}, ErrUnsupported
			}
		}
		m.Payments = append(m.Payments, p)
	}

	for i := range m.Payments {
		m.Payments[i].Beneficiary = Beneficiary{
			Name:         r.optional(),
			AddressLine1: r.optional(),
			AddressLine2: r.optional(),
		}
	}
	return m, nil
}
