package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"paysquare/app"
	"paysquare/domain"
)

var (
	qrIBAN   string
	qrAlias  string
	qrAmount string
	qrOutput string
	qrFile   string
	qrNote   string
	qrVS     string
)

// qrCmd generates a payment code without going through the menu
var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Generate a payment QR code non-interactively",
	Long: `Generates a PAY by square QR code for a single EUR payment.
The receiving account is given with --iban, or with --alias to use the first
saved account carrying that alias.

Output is one of terminal, browser or png (png needs --file).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		iban, err := resolveIBAN()
		if err != nil {
			return err
		}

		amount, err := domain.ParseAmount(qrAmount)
		if err != nil {
			return err
		}

		out := app.Output(qrOutput)
		if !out.IsValid() {
			return fmt.Errorf("invalid output %q. Supported: terminal, browser, png", qrOutput)
		}

		err = paymentService.GeneratePayment(app.GeneratePaymentCommand{
			IBAN:           iban,
			Amount:         amount,
			Output:         out,
			VariableSymbol: qrVS,
			Note:           qrNote,
			File:           qrFile,
		})
		if err != nil {
			return err
		}
		if out == app.OutputPNG {
			fmt.Fprintf(cmd.OutOrStdout(), "QR code written to %s\n", qrFile)
		}
		return nil
	},
}

func resolveIBAN() (string, error) {
	switch {
	case qrIBAN != "" && qrAlias != "":
		return "", errors.New("use either --iban or --alias, not both")
	case qrIBAN != "":
		return qrIBAN, nil
	case qrAlias == "":
		return "", errors.New("an account is required (--iban or --alias)")
	}

	accounts, err := paymentService.ListAccounts()
	if err != nil {
		return "", err
	}
	for _, a := range accounts {
		if a.Alias == qrAlias {
			return a.IBAN, nil
		}
	}
	return "", errors.Errorf("no saved account with alias %q", qrAlias)
}

func init() {
	rootCmd.AddCommand(qrCmd)

	qrCmd.Flags().StringVar(&qrIBAN, "iban", "", "IBAN that receives the payment")
	qrCmd.Flags().StringVarP(&qrAlias, "alias", "a", "", "alias of a saved account")
	qrCmd.Flags().StringVar(&qrAmount, "amount", "", "amount in EUR, rounded to 3 decimal places")
	qrCmd.Flags().StringVarP(&qrOutput, "output", "o", string(app.OutputTerminal), "terminal, browser or png")
	qrCmd.Flags().StringVarP(&qrFile, "file", "f", "", "target file for png output")
	qrCmd.Flags().StringVar(&qrNote, "note", "", "payment note for the payee")
	qrCmd.Flags().StringVar(&qrVS, "vs", "", "variable symbol")
	_ = qrCmd.MarkFlagRequired("amount")
}
