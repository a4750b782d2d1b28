package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

//fileStore keeps every account in a single JSON object keyed by id and
// rewrites the whole file on each Set
type fileStore struct {
	mu       sync.RWMutex
	path     string
	accounts map[ID]Account
}

//OpenFileStore loads the accounts held in path. A missing file is an empty store.
func OpenFileStore(path string) (Store, error) {
	s := &fileStore{path: path, accounts: map[ID]Account{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.accounts); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *fileStore) Has(_ context.Context, id ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[id]
	return ok, nil
}

func (s *fileStore) Get(_ context.Context, id ID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if acc, ok := s.accounts[id]; ok {
		return &acc, nil
	}
	return nil, ErrNotFound
}

func (s *fileStore) Set(_ context.Context, acc *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.accounts[acc.ID]
	s.accounts[acc.ID] = *acc
	if err := s.flush(); err != nil {
		if existed {
			s.accounts[acc.ID] = prev
		} else {
			delete(s.accounts, acc.ID)
		}
		return err
	}
	return nil
}

func (s *fileStore) Entries(_ context.Context) ([]*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedByID(s.accounts), nil
}

func (s *fileStore) flush() error {
	data, err := json.MarshalIndent(s.accounts, "", "\t")
	if err != nil {
		return fmt.Errorf("error encoding accounts: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("error writing %s: %w", s.path, err)
	}
	return nil
}
