package menu

import (
	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

type Prompter interface {
	// Select returns the index of the chosen option.
	Select(title string, options []string) (int, error)

	// Input returns the entered text. validate may be nil.
	Input(title string, validate func(string) error) (string, error)
}

// HuhPrompter asks questions on the terminal through huh fields.
type HuhPrompter struct{}

func (HuhPrompter) Select(title string, options []string) (int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i)
	}

	var picked int
	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&picked).
		Run()
	if err != nil {
		return 0, promptError(err)
	}
	return picked, nil
}

func (HuhPrompter) Input(title string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := field.Run(); err != nil {
		return "", promptError(err)
	}
	return value, nil
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return errors.Wrap(err, "prompt")
}
