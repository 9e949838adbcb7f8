// Package menu drives the interactive session: pick an account, enter an
// amount, choose where the QR code goes, and manage the saved accounts.
package menu

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"paysquare/app"
	"paysquare/domain"
)

type Service interface {
	ListAccounts() ([]domain.Account, error)
	AddAccount(cmd app.AddAccountCommand) error
	RemoveAccount(cmd app.RemoveAccountCommand) (int, error)
	GeneratePayment(cmd app.GeneratePaymentCommand) error
}

type state int

const (
	stateHome state = iota
	stateCreateAccount
	stateRemoveAccount
	stateChooseAmount
	stateChooseOutput
	stateDone
)

var outputChoices = []struct {
	label  string
	output app.Output
}{
	{"Show in terminal", app.OutputTerminal},
	{"Open in browser (online only)", app.OutputBrowser},
}

// session carries what the user picked so far.
type session struct {
	account domain.Account
	amount  decimal.Decimal
}

type Menu struct {
	service Service
	prompt  Prompter
	out     io.Writer
	logger  *log.Logger
}

func New(service Service, prompt Prompter, out io.Writer, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.Default()
	}
	return &Menu{service: service, prompt: prompt, out: out, logger: logger}
}

// Run loops through the menu states until a QR code has been produced. Adding
// and removing accounts return to the home state; generating a code ends the
// session. A cancelled prompt yields ErrAborted.
func (m *Menu) Run(ctx context.Context) error {
	var s session
	st := stateHome
	for st != stateDone {
		if err := ctx.Err(); err != nil {
			return ErrAborted
		}

		var err error
		switch st {
		case stateHome:
			st, err = m.home(&s)
		case stateCreateAccount:
			st, err = m.createAccount()
		case stateRemoveAccount:
			st, err = m.removeAccount()
		case stateChooseAmount:
			st, err = m.chooseAmount(&s)
		case stateChooseOutput:
			st, err = m.chooseOutput(&s)
		default:
			return errors.Errorf("unknown menu state %d", st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Menu) home(s *session) (state, error) {
	accounts, err := m.service.ListAccounts()
	if err != nil {
		return stateDone, err
	}
	if len(accounts) == 0 {
		fmt.Fprintln(m.out, "No saved accounts yet, let's add one.")
		return stateCreateAccount, nil
	}

	choices := homeChoices(accounts)
	idx, err := m.prompt.Select("Select your account.", labels(choices))
	if err != nil {
		return stateDone, err
	}
	action, err := pick(choices, idx)
	if err != nil {
		return stateDone, err
	}

	switch action.Kind {
	case ActionSelectAccount:
		s.account = accounts[action.Account]
		m.logger.Debug("account selected", "alias", s.account.Alias)
		return stateChooseAmount, nil
	case ActionAddAccount:
		return stateCreateAccount, nil
	case ActionRemoveAccount:
		return stateRemoveAccount, nil
	}
	return stateHome, nil
}

func (m *Menu) createAccount() (state, error) {
	alias, err := m.prompt.Input("Type alias for your account. (Only for your information.)", notBlank)
	if err != nil {
		return stateDone, err
	}
	iban, err := m.prompt.Input("Type your IBAN to which to receive payment.", notBlank)
	if err != nil {
		return stateDone, err
	}

	if err := m.service.AddAccount(app.AddAccountCommand{Alias: alias, IBAN: iban}); err != nil {
		if errors.Is(err, domain.ErrInvalidAccount) {
			fmt.Fprintln(m.out, err)
			return stateHome, nil
		}
		return stateDone, err
	}
	return stateHome, nil
}

func (m *Menu) removeAccount() (state, error) {
	accounts, err := m.service.ListAccounts()
	if err != nil {
		return stateDone, err
	}

	choices := removeChoices(accounts)
	idx, err := m.prompt.Select("Select account to remove.", labels(choices))
	if err != nil {
		return stateDone, err
	}
	action, err := pick(choices, idx)
	if err != nil {
		return stateDone, err
	}
	if action.Kind != ActionSelectAccount {
		return stateHome, nil
	}

	iban := accounts[action.Account].IBAN
	if _, err := m.service.RemoveAccount(app.RemoveAccountCommand{IBAN: iban}); err != nil {
		return stateDone, err
	}
	return stateHome, nil
}

func (m *Menu) chooseAmount(s *session) (state, error) {
	input, err := m.prompt.Input("Amount?", validateAmount)
	if err != nil {
		return stateDone, err
	}
	amount, err := domain.ParseAmount(input)
	if err != nil {
		fmt.Fprintln(m.out, err)
		return stateChooseAmount, nil
	}
	s.amount = amount
	return stateChooseOutput, nil
}

func (m *Menu) chooseOutput(s *session) (state, error) {
	options := make([]string, len(outputChoices))
	for i, c := range outputChoices {
		options[i] = c.label
	}

	idx, err := m.prompt.Select("Where should the QR code go?", options)
	if err != nil {
		return stateDone, err
	}
	if idx < 0 || idx >= len(outputChoices) {
		return stateDone, errors.Errorf("invalid output choice %d", idx)
	}

	err = m.service.GeneratePayment(app.GeneratePaymentCommand{
		IBAN:   s.account.IBAN,
		Amount: s.amount,
		Output: outputChoices[idx].output,
	})
	return stateDone, err
}

func pick(choices []choice, idx int) (Action, error) {
	if idx < 0 || idx >= len(choices) {
		return Action{}, errors.Errorf("invalid menu choice %d", idx)
	}
	return choices[idx].action, nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func validateAmount(s string) error {
	_, err := domain.ParseAmount(s)
	return err
}
