package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"paysquare/domain"
	"paysquare/store"
)

func newTestStore(t *testing.T) (*store.JSONAccountStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), store.DefaultFileName)
	return store.NewJSONAccountStore(path), path
}

func TestJSONAccountStore_LoadMissingFile(t *testing.T) {
	s, path := newTestStore(t)

	accounts, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if accounts == nil || len(accounts) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", accounts)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load must not create the file, stat err=%v", err)
	}
}

func TestJSONAccountStore_DefaultPath(t *testing.T) {
	t.Run("ResolvedOnUse", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		s := store.NewJSONAccountStore("")
		got, err := s.Path()
		if err != nil {
			t.Fatalf("Path failed: %v", err)
		}
		want := filepath.Join(home, store.DefaultFileName)
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}

		if err := s.Add(domain.Account{Alias: "A", IBAN: "I1"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("accounts file not written to home: %v", err)
		}
	})

	t.Run("NoHome", func(t *testing.T) {
		t.Setenv("HOME", "")

		// constructing the store must not need a home directory
		s := store.NewJSONAccountStore("")
		if _, err := s.Load(); err == nil {
			t.Error("expected Load to fail without a home directory")
		}

		explicit, _ := newTestStore(t)
		if _, err := explicit.Load(); err != nil {
			t.Errorf("explicit path should not need a home directory: %v", err)
		}
	})
}

func TestJSONAccountStore_AddRoundTrip(t *testing.T) {
	s, path := newTestStore(t)

	if err := s.Add(domain.Account{Alias: "A", IBAN: "I1"}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if err := s.Add(domain.Account{Alias: "B", IBAN: "I2"}); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}

	reloaded, err := store.NewJSONAccountStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []domain.Account{{Alias: "A", IBAN: "I1"}, {Alias: "B", IBAN: "I2"}}
	if diff := cmp.Diff(want, reloaded); diff != "" {
		t.Errorf("reloaded accounts mismatch (-want +got):\n%s", diff)
	}

	t.Run("LoadIsIdempotent", func(t *testing.T) {
		again, err := s.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(reloaded, again); diff != "" {
			t.Errorf("second Load differs (-first +second):\n%s", diff)
		}
	})

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the accounts file, found %d entries", len(entries))
		}
	})
}

func TestJSONAccountStore_FileFormat(t *testing.T) {
	s, path := newTestStore(t)

	if err := os.WriteFile(path, []byte(`[{"alias":"Rent","iban":"SK00"}]`), 0o600); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	accounts, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff([]domain.Account{{Alias: "Rent", IBAN: "SK00"}}, accounts); diff != "" {
		t.Errorf("decoded accounts mismatch (-want +got):\n%s", diff)
	}

	t.Run("EmptyListIsArray", func(t *testing.T) {
		if err := s.Save(nil); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		raw, _ := os.ReadFile(path)
		if string(raw) != "[]" {
			t.Errorf("expected '[]', got %q", raw)
		}
	})

	t.Run("NullIsEmpty", func(t *testing.T) {
		_ = os.WriteFile(path, []byte("null"), 0o600)
		accounts, err := s.Load()
		if err != nil || len(accounts) != 0 {
			t.Errorf("expected empty list, got %v err=%v", accounts, err)
		}
	})
}

func TestJSONAccountStore_Remove(t *testing.T) {
	s, _ := newTestStore(t)
	seed := []domain.Account{
		{Alias: "A", IBAN: "I1"},
		{Alias: "B", IBAN: "I2"},
		{Alias: "C", IBAN: "I1"},
	}
	if err := s.Save(seed); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := s.Remove("I1")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	remaining, _ := s.Load()
	if diff := cmp.Diff([]domain.Account{{Alias: "B", IBAN: "I2"}}, remaining); diff != "" {
		t.Errorf("remaining accounts mismatch (-want +got):\n%s", diff)
	}

	t.Run("UnknownIBAN", func(t *testing.T) {
		removed, err := s.Remove("nope")
		if err != nil || removed != 0 {
			t.Errorf("expected no-op, got removed=%d err=%v", removed, err)
		}
	})
}

func TestJSONAccountStore_CorruptFile(t *testing.T) {
	s, path := newTestStore(t)
	corrupt := []byte(`[{"alias":"A","iban":`)
	if err := os.WriteFile(path, corrupt, 0o600); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	t.Run("Load", func(t *testing.T) {
		_, err := s.Load()
		if !errors.Is(err, domain.ErrCorruptStore) {
			t.Errorf("expected ErrCorruptStore, got %v", err)
		}
	})

	t.Run("AddLeavesFileUntouched", func(t *testing.T) {
		err := s.Add(domain.Account{Alias: "B", IBAN: "I2"})
		if !errors.Is(err, domain.ErrCorruptStore) {
			t.Errorf("expected ErrCorruptStore, got %v", err)
		}
		after, _ := os.ReadFile(path)
		if string(after) != string(corrupt) {
			t.Errorf("file changed: %q", after)
		}
	})

	t.Run("RemoveLeavesFileUntouched", func(t *testing.T) {
		_, err := s.Remove("I1")
		if !errors.Is(err, domain.ErrCorruptStore) {
			t.Errorf("expected ErrCorruptStore, got %v", err)
		}
		after, _ := os.ReadFile(path)
		if string(after) != string(corrupt) {
			t.Errorf("file changed: %q", after)
		}
	})

	t.Run("ObjectInsteadOfArray", func(t *testing.T) {
		_ = os.WriteFile(path, []byte(`{"alias":"A"}`), 0o600)
		_, err := s.Load()
		if !errors.Is(err, domain.ErrCorruptStore) {
			t.Errorf("expected ErrCorruptStore, got %v", err)
		}
	})
}

func TestInMemoryAccountStore(t *testing.T) {
	s := store.NewInMemoryAccountStore(domain.Account{Alias: "A", IBAN: "I1"})

	if err := s.Add(domain.Account{Alias: "B", IBAN: "I2"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	accounts, _ := s.Load()
	accounts[0].Alias = "mutated"

	fresh, _ := s.Load()
	if fresh[0].Alias != "A" {
		t.Errorf("Load did not return a copy")
	}

	removed, _ := s.Remove("I1")
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	left, _ := s.Load()
	if diff := cmp.Diff([]domain.Account{{Alias: "B", IBAN: "I2"}}, left); diff != "" {
		t.Errorf("remaining mismatch (-want +got):\n%s", diff)
	}
}
