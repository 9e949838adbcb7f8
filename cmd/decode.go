package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"paysquare/bysquare"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <payload>",
	Short: "Print the payment details inside a PAY by square string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := bysquare.Decode(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if model.InvoiceID != "" {
			fmt.Fprintf(out, "Invoice: %s\n", model.InvoiceID)
		}
		for i, p := range model.Payments {
			fmt.Fprintf(out, "Payment %d:\n", i+1)
			if p.Amount.IsZero() {
				fmt.Fprintf(out, "  Amount: (payer decides) %s\n", p.CurrencyCode)
			} else {
				fmt.Fprintf(out, "  Amount: %s %s\n", p.Amount.String(), p.CurrencyCode)
			}
			for _, ba := range p.BankAccounts {
				if ba.BIC != "" {
					fmt.Fprintf(out, "  IBAN: %s (BIC %s)\n", ba.IBAN, ba.BIC)
				} else {
					fmt.Fprintf(out, "  IBAN: %s\n", ba.IBAN)
				}
			}
			printIfSet(cmd, "Due date", p.PaymentDueDate)
			printIfSet(cmd, "Variable symbol", p.VariableSymbol)
			printIfSet(cmd, "Constant symbol", p.ConstantSymbol)
			printIfSet(cmd, "Specific symbol", p.SpecificSymbol)
			printIfSet(cmd, "Reference", p.OriginatorsReferenceInformation)
			printIfSet(cmd, "Note", p.PaymentNote)
			printIfSet(cmd, "Beneficiary", p.Beneficiary.Name)
		}
		return nil
	},
}

func printIfSet(cmd *cobra.Command, label, value string) {
	if value != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", label, value)
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
