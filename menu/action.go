package menu

import "paysquare/domain"

type ActionKind int

const (
	ActionSelectAccount ActionKind = iota
	ActionAddAccount
	ActionRemoveAccount
	ActionBack
)

// Action is one entry of a select prompt. Account is only meaningful for
// ActionSelectAccount and indexes the account list the menu was built from.
type Action struct {
	Kind    ActionKind
	Account int
}

type choice struct {
	label  string
	action Action
}

func accountChoices(accounts []domain.Account) []choice {
	choices := make([]choice, 0, len(accounts)+2)
	for i, a := range accounts {
		choices = append(choices, choice{
			label:  a.String(),
			action: Action{Kind: ActionSelectAccount, Account: i},
		})
	}
	return choices
}

func homeChoices(accounts []domain.Account) []choice {
	return append(accountChoices(accounts),
		choice{label: "add new account", action: Action{Kind: ActionAddAccount}},
		choice{label: "remove account", action: Action{Kind: ActionRemoveAccount}},
	)
}

func removeChoices(accounts []domain.Account) []choice {
	return append(accountChoices(accounts),
		choice{label: "back to home", action: Action{Kind: ActionBack}},
	)
}

func labels(choices []choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.label
	}
	return out
}
