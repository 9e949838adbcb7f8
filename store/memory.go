package store

import (
	"sync"

	"paysquare/domain"
)

type InMemoryAccountStore struct {
	sync.RWMutex
	accounts []domain.Account
}

func NewInMemoryAccountStore(initial ...domain.Account) *InMemoryAccountStore {
	s := &InMemoryAccountStore{}
	s.accounts = append(s.accounts, initial...)
	return s
}

func (s *InMemoryAccountStore) Load() ([]domain.Account, error) {
	s.RLock()
	defer s.RUnlock()

	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

func (s *InMemoryAccountStore) Save(accounts []domain.Account) error {
	s.Lock()
	defer s.Unlock()

	s.accounts = append([]domain.Account(nil), accounts...)
	return nil
}

func (s *InMemoryAccountStore) Add(account domain.Account) error {
	s.Lock()
	defer s.Unlock()

	s.accounts = append(s.accounts, account)
	return nil
}

func (s *InMemoryAccountStore) Remove(iban string) (int, error) {
	s.Lock()
	defer s.Unlock()

	var removed int
	s.accounts, removed = domain.WithoutIBAN(s.accounts, iban)
	return removed, nil
}
