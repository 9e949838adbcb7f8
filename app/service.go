package app

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"paysquare/bysquare"
	"paysquare/domain"
	"paysquare/shared"
	"paysquare/store"
)

// PaymentService sits between the CLI and the account store, the payment
// encoder and the output sinks.
type PaymentService struct {
	store    store.AccountStore
	encoder  Encoder
	renderer Renderer
	opener   Opener
	images   ImageWriter
	logger   *log.Logger
}

func NewPaymentService(s store.AccountStore, enc Encoder, r Renderer, o Opener, img ImageWriter, logger *log.Logger) *PaymentService {
	if logger == nil {
		logger = log.Default()
	}
	if s == nil || enc == nil {
		logger.Fatal("account store and encoder must not be nil")
	}
	return &PaymentService{
		store:    s,
		encoder:  enc,
		renderer: r,
		opener:   o,
		images:   img,
		logger:   logger,
	}
}

// --- Account Handlers ---

func (s *PaymentService) ListAccounts() ([]domain.Account, error) {
	accounts, err := s.store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrCorruptStore) {
			s.logger.Error("Problem with read accounts file.", "err", err)
		}
		return nil, err
	}
	return accounts, nil
}

func (s *PaymentService) AddAccount(cmd AddAccountCommand) error {
	account, err := domain.NewAccount(cmd.Alias, cmd.IBAN)
	if err != nil {
		return err
	}

	if err := s.store.Add(account); err != nil {
		if errors.Is(err, domain.ErrCorruptStore) {
			s.logger.Error("Problem with read accounts file.", "err", err)
		}
		return errors.Wrapf(err, "add account %q", account.Alias)
	}

	s.logger.Info("account saved", "alias", account.Alias, "iban", account.IBAN)
	return nil
}

func (s *PaymentService) RemoveAccount(cmd RemoveAccountCommand) (int, error) {
	removed, err := s.store.Remove(cmd.IBAN)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptStore) {
			s.logger.Error("Problem with read accounts file.", "err", err)
		}
		return 0, errors.Wrapf(err, "remove account %s", cmd.IBAN)
	}

	if removed == 0 {
		s.logger.Warn("no account with this IBAN", "iban", cmd.IBAN)
	} else {
		s.logger.Info("account removed", "iban", cmd.IBAN, "count", removed)
	}
	return removed, nil
}

// --- Payment Handlers ---

// EncodePayment builds a single EUR payment order to a single bank account
// and returns its PAY by square string. Encoder failures wrap
// domain.ErrEncoding.
func (s *PaymentService) EncodePayment(cmd GeneratePaymentCommand) (string, error) {
	req, err := domain.NewPaymentRequest(cmd.IBAN, cmd.Amount)
	if err != nil {
		return "", err
	}

	model := bysquare.SinglePayment(req.IBAN, req.Amount, string(shared.EUR))
	model.Payments[0].VariableSymbol = cmd.VariableSymbol
	model.Payments[0].PaymentNote = cmd.Note

	payload, err := s.encoder.Encode(model)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}

	s.logger.Debug("payment encoded", "iban", req.IBAN, "amount", req.Amount.String(), "payload", payload)
	return payload, nil
}

// GeneratePayment encodes the payment and hands the result to exactly one
// output.
func (s *PaymentService) GeneratePayment(cmd GeneratePaymentCommand) error {
	if !cmd.Output.IsValid() {
		return errors.Errorf("unknown output %q", cmd.Output)
	}
	if cmd.Output == OutputPNG && cmd.File == "" {
		return errors.New("png output needs a file path")
	}

	payload, err := s.EncodePayment(cmd)
	if err != nil {
		return err
	}

	switch cmd.Output {
	case OutputTerminal:
		err = s.renderer.Render(payload)
	case OutputBrowser:
		err = s.opener.Open(payload)
	case OutputPNG:
		err = s.images.WriteFile(payload, cmd.File)
	}
	if err != nil {
		return errors.Wrapf(err, "%s output", cmd.Output)
	}

	s.logger.Info("payment QR generated", "output", string(cmd.Output), "amount", cmd.Amount.String())
	return nil
}
