package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"paysquare/app"
)

var (
	accountAlias string
	accountIBAN  string
)

// accountCmd represents the account command group
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage saved accounts",
	Long:  `Lists, adds and removes the accounts offered by the interactive menu.`,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := paymentService.ListAccounts()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(accounts) == 0 {
			fmt.Fprintln(out, "No saved accounts.")
			return nil
		}
		for i, a := range accounts {
			fmt.Fprintf(out, "%d. %s\t%s\n", i+1, a.Alias, a.IBAN)
		}
		return nil
	},
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a new account",
	Long: `Appends an account to the accounts file. The IBAN is stored as typed;
aliases do not have to be unique.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := paymentService.AddAccount(app.AddAccountCommand{Alias: accountAlias, IBAN: accountIBAN})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account '%s' saved.\n", accountAlias)
		return nil
	},
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove every account with the given IBAN",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := paymentService.RemoveAccount(app.RemoveAccountCommand{IBAN: accountIBAN})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d account(s).\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountListCmd, accountAddCmd, accountRemoveCmd)

	accountAddCmd.Flags().StringVar(&accountAlias, "alias", "", "display name for the account")
	accountAddCmd.Flags().StringVar(&accountIBAN, "iban", "", "IBAN that receives the payment")
	_ = accountAddCmd.MarkFlagRequired("alias")
	_ = accountAddCmd.MarkFlagRequired("iban")

	accountRemoveCmd.Flags().StringVar(&accountIBAN, "iban", "", "IBAN of the account(s) to remove")
	_ = accountRemoveCmd.MarkFlagRequired("iban")
}
