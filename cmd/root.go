package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"paysquare/app"
	"paysquare/bysquare"
	"paysquare/config"
	"paysquare/menu"
	"paysquare/output"
	"paysquare/store"
)

var (
	// Shared application state, built once flags are parsed
	cfg            config.Config
	logger         *log.Logger
	paymentService *app.PaymentService

	storePath string
	logLevel  string

	// prompter answers the interactive menu
	prompter menu.Prompter = menu.HuhPrompter{}
)

// rootCmd starts the interactive menu when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "paysquare",
	Short: "Generate PAY by square payment QR codes for your saved accounts",
	Long: `paysquare keeps a small list of named bank accounts and turns a chosen
account plus an amount into a PAY by square payment QR code, shown in the
terminal or opened as an image in the browser.

Run without arguments for the interactive menu.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := menu.New(paymentService, prompter, cmd.OutOrStdout(), logger)
		err := m.Run(cmd.Context())
		if errors.Is(err, menu.ErrAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return err
	},
}

// Execute runs the root command and exits non-zero on any reported error.
// This is called by main.main().
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "accounts file (default $PAYSQUARE_STORE_PATH or ~/.accounts.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default $PAYSQUARE_LOG_LEVEL or info)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	accounts := store.NewJSONAccountStore(cfg.StorePath)
	if path, err := accounts.Path(); err == nil {
		logger.Debug("using accounts file", "path", path)
	} else {
		logger.Debug("accounts file location unknown", "err", err)
	}
	paymentService = newPaymentService(cfg, accounts, cmd.OutOrStdout(), logger)
	return nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: "paysquare"})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		l.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

func newPaymentService(cfg config.Config, accounts store.AccountStore, out io.Writer, logger *log.Logger) *app.PaymentService {
	return app.NewPaymentService(
		accounts,
		app.EncoderFunc(bysquare.Encode),
		output.NewTerminalRenderer(out, cfg.SmallTerminal),
		output.NewBrowserOpener(cfg.QRImageURL, cfg.QRImageSize, out, logger),
		output.NewPNGWriter(cfg.PNGSize),
		logger,
	)
}
