package menu_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"paysquare/app"
	"paysquare/app/mocks"
	"paysquare/bysquare"
	"paysquare/domain"
	"paysquare/menu"
	"paysquare/store"
)

// answer is one scripted reply. Select prompts consume index, input prompts
// consume text. A non-nil err is returned instead.
type answer struct {
	index int
	text  string
	err   error
}

type scriptedPrompter struct {
	t       *testing.T
	answers []answer
	// options shown by every Select call, in order
	shown [][]string
}

func (p *scriptedPrompter) next() answer {
	p.t.Helper()
	if len(p.answers) == 0 {
		p.t.Fatalf("prompt asked but no scripted answer left")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a
}

func (p *scriptedPrompter) Select(_ string, options []string) (int, error) {
	p.shown = append(p.shown, options)
	a := p.next()
	return a.index, a.err
}

func (p *scriptedPrompter) Input(_ string, _ func(string) error) (string, error) {
	a := p.next()
	return a.text, a.err
}

func sel(i int) answer     { return answer{index: i} }
func text(s string) answer { return answer{text: s} }
func abort() answer        { return answer{err: menu.ErrAborted} }

type harness struct {
	store    *store.InMemoryAccountStore
	encoder  *mocks.MockEncoder
	renderer *mocks.MockRenderer
	opener   *mocks.MockOpener
	prompt   *scriptedPrompter
	out      *bytes.Buffer
	menu     *menu.Menu
}

func newHarness(t *testing.T, answers []answer, accounts ...domain.Account) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		store:    store.NewInMemoryAccountStore(accounts...),
		encoder:  mocks.NewMockEncoder(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
		opener:   mocks.NewMockOpener(ctrl),
		prompt:   &scriptedPrompter{t: t, answers: answers},
		out:      &bytes.Buffer{},
	}
	logger := log.New(io.Discard)
	svc := app.NewPaymentService(h.store, h.encoder, h.renderer, h.opener, mocks.NewMockImageWriter(ctrl), logger)
	h.menu = menu.New(svc, h.prompt, h.out, logger)
	return h
}

func TestMenu_EndToEnd_FirstRunToTerminal(t *testing.T) {
	h := newHarness(t, []answer{
		// empty store goes straight to account creation
		text("Rent"),
		text("SK0012000000198742637541"),
		// home: "Rent"
		sel(0),
		text("120.5"),
		// terminal
		sel(0),
	})

	var encoded bysquare.Model
	h.encoder.EXPECT().Encode(gomock.Any()).DoAndReturn(func(m bysquare.Model) (string, error) {
		encoded = m
		return "0004PAYLOAD", nil
	}).Times(1)
	h.renderer.EXPECT().Render("0004PAYLOAD").Return(nil).Times(1)

	require.NoError(t, h.menu.Run(context.Background()))

	require.Len(t, encoded.Payments, 1)
	p := encoded.Payments[0]
	assert.Equal(t, bysquare.PaymentOrder, p.Type)
	assert.Equal(t, "EUR", p.CurrencyCode)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("120.5")), "amount %s", p.Amount)
	assert.Equal(t, []bysquare.BankAccount{{IBAN: "SK0012000000198742637541"}}, p.BankAccounts)

	accounts, _ := h.store.Load()
	assert.Equal(t, []domain.Account{{Alias: "Rent", IBAN: "SK0012000000198742637541"}}, accounts)
	assert.Empty(t, h.prompt.answers)
}

func TestMenu_HomeChoices(t *testing.T) {
	h := newHarness(t, []answer{sel(1), text("A"), text("I"), abort()},
		domain.Account{Alias: "Rent", IBAN: "I1"},
	)

	err := h.menu.Run(context.Background())
	assert.ErrorIs(t, err, menu.ErrAborted)

	require.NotEmpty(t, h.prompt.shown)
	assert.Equal(t, []string{"Rent (I1)", "add new account", "remove account"}, h.prompt.shown[0])
	// after adding, home is shown again with the new account
	assert.Equal(t, []string{"Rent (I1)", "A (I)", "add new account", "remove account"}, h.prompt.shown[1])
}

func TestMenu_BrowserOutput(t *testing.T) {
	h := newHarness(t, []answer{sel(0), text("9,99"), sel(1)},
		domain.Account{Alias: "Rent", IBAN: "SK3112000000198742637541"},
	)

	h.encoder.EXPECT().Encode(gomock.Any()).Return("PAYLOAD", nil)
	h.opener.EXPECT().Open("PAYLOAD").Return(nil).Times(1)

	assert.NoError(t, h.menu.Run(context.Background()))
}

func TestMenu_RemoveAccount(t *testing.T) {
	accounts := []domain.Account{
		{Alias: "A", IBAN: "I1"},
		{Alias: "B", IBAN: "I2"},
		{Alias: "C", IBAN: "I1"},
	}

	t.Run("RemovesAllMatchesAndReturnsHome", func(t *testing.T) {
		h := newHarness(t, []answer{sel(4), sel(2), abort()}, accounts...)

		assert.ErrorIs(t, h.menu.Run(context.Background()), menu.ErrAborted)

		left, _ := h.store.Load()
		assert.Equal(t, []domain.Account{{Alias: "B", IBAN: "I2"}}, left)
		require.Len(t, h.prompt.shown, 3)
		assert.Equal(t, []string{"A (I1)", "B (I2)", "C (I1)", "back to home"}, h.prompt.shown[1])
		assert.Equal(t, []string{"B (I2)", "add new account", "remove account"}, h.prompt.shown[2])
	})

	t.Run("BackLeavesStoreUntouched", func(t *testing.T) {
		h := newHarness(t, []answer{sel(4), sel(3), abort()}, accounts...)

		assert.ErrorIs(t, h.menu.Run(context.Background()), menu.ErrAborted)

		left, _ := h.store.Load()
		assert.Equal(t, accounts, left)
	})

	t.Run("RemovingLastAccountGoesToCreation", func(t *testing.T) {
		h := newHarness(t, []answer{sel(2), sel(0), abort()}, domain.Account{Alias: "A", IBAN: "I1"})

		assert.ErrorIs(t, h.menu.Run(context.Background()), menu.ErrAborted)
		assert.Contains(t, h.out.String(), "No saved accounts yet")
	})
}

func TestMenu_InvalidAmountAsksAgain(t *testing.T) {
	h := newHarness(t, []answer{sel(0), text("abc"), text("-1"), text("5"), sel(0)},
		domain.Account{Alias: "Rent", IBAN: "SK3112000000198742637541"},
	)

	h.encoder.EXPECT().Encode(gomock.Any()).Return("PAYLOAD", nil)
	h.renderer.EXPECT().Render("PAYLOAD").Return(nil)

	require.NoError(t, h.menu.Run(context.Background()))
	assert.Contains(t, h.out.String(), domain.ErrInvalidAmount.Error())
}

func TestMenu_AbortStopsImmediately(t *testing.T) {
	h := newHarness(t, []answer{text("Rent"), abort()})

	assert.ErrorIs(t, h.menu.Run(context.Background()), menu.ErrAborted)

	accounts, _ := h.store.Load()
	assert.Empty(t, accounts)
}

func TestMenu_CancelledContext(t *testing.T) {
	h := newHarness(t, nil, domain.Account{Alias: "A", IBAN: "I1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.menu.Run(ctx), menu.ErrAborted)
}

func TestMenu_EncodingErrorEndsSession(t *testing.T) {
	h := newHarness(t, []answer{sel(0), text("10"), sel(0)},
		domain.Account{Alias: "Broken", IBAN: "nope"},
	)

	h.encoder.EXPECT().Encode(gomock.Any()).Return("", bysquare.ErrInvalidIBAN)

	err := h.menu.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrEncoding)
}

func TestMenu_CorruptStoreEndsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), store.DefaultFileName)
	corrupt := []byte(`[{"alias": "Rent", "iban":`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o600))

	var logs bytes.Buffer
	logger := log.New(&logs)
	svc := app.NewPaymentService(store.NewJSONAccountStore(path), app.EncoderFunc(bysquare.Encode), nil, nil, nil, logger)
	prompt := &scriptedPrompter{t: t}
	var out bytes.Buffer

	err := menu.New(svc, prompt, &out, logger).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorruptStore)
	assert.Contains(t, logs.String(), "Problem with read accounts file.")
	// no account creation offered on top of a broken file
	assert.Empty(t, prompt.shown)
	assert.NotContains(t, out.String(), "No saved accounts yet")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, after)
}
