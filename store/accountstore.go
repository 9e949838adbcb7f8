package store

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"paysquare/domain"
)

// DefaultFileName is the name of the accounts file inside the home directory.
const DefaultFileName = ".accounts.json"

type AccountStore interface {
	Load() ([]domain.Account, error)

	Save(accounts []domain.Account) error

	Add(account domain.Account) error

	// Remove drops every account with exactly this IBAN and reports how many
	// were dropped.
	Remove(iban string) (int, error)
}

// DefaultPath resolves <home>/.accounts.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, DefaultFileName), nil
}

// JSONAccountStore keeps the account list as a JSON array in a single file.
// Every mutation rewrites the whole file. There is no locking: one process,
// one user.
type JSONAccountStore struct {
	path string
}

// NewJSONAccountStore keeps accounts at path. An empty path means
// DefaultPath, looked up when the file is first touched.
func NewJSONAccountStore(path string) *JSONAccountStore {
	return &JSONAccountStore{path: path}
}

// Path is the accounts file this store reads and writes.
func (s *JSONAccountStore) Path() (string, error) {
	if s.path != "" {
		return s.path, nil
	}
	return DefaultPath()
}

// Load returns an empty list when the file does not exist yet.
func (s *JSONAccountStore) Load() ([]domain.Account, error) {
	path, err := s.Path()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Account{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read accounts file %s", path)
	}

	var accounts []domain.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, errors.Wrapf(domain.ErrCorruptStore, "%s: %v", path, err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// Save replaces the file contents with accounts. The data is written to a
// temporary sibling first and renamed over the original.
func (s *JSONAccountStore) Save(accounts []domain.Account) error {
	path, err := s.Path()
	if err != nil {
		return err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal accounts")
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(err, "write accounts file %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replace accounts file %s", path)
	}
	return nil
}

// Add appends account and persists the list. A corrupt file is left
// untouched and reported as domain.ErrCorruptStore.
func (s *JSONAccountStore) Add(account domain.Account) error {
	accounts, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(append(accounts, account))
}

func (s *JSONAccountStore) Remove(iban string) (int, error) {
	accounts, err := s.Load()
	if err != nil {
		return 0, err
	}
	kept, removed := domain.WithoutIBAN(accounts, iban)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.Save(kept)
}
