package app

import (
	"github.com/shopspring/decimal"
)

// --- Command Struct Definitions ---

type AddAccountCommand struct {
	Alias string
	IBAN  string
}

type RemoveAccountCommand struct {
	IBAN string
}

type Output string

const (
	OutputTerminal Output = "terminal"
	OutputBrowser  Output = "browser"
	OutputPNG      Output = "png"
)

func (o Output) IsValid() bool {
	switch o {
	case OutputTerminal, OutputBrowser, OutputPNG:
		return true
	}
	return false
}

type GeneratePaymentCommand struct {
	IBAN   string
	Amount decimal.Decimal
	Output Output

	// Optional payment details, only offered by the non-interactive command.
	VariableSymbol string
	Note           string

	// File is the target path for OutputPNG.
	File string
}
