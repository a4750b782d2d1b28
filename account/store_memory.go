package account

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	accounts map[ID]Account
}

func NewMemoryStore() Store {
	return &memoryStore{accounts: map[ID]Account{}}
}

func (s *memoryStore) Has(_ context.Context, id ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[id]
	return ok, nil
}

func (s *memoryStore) Get(_ context.Context, id ID) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if acc, ok := s.accounts[id]; ok {
		return &acc, nil
	}
	return nil, ErrNotFound
}

func (s *memoryStore) Set(_ context.Context, acc *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[acc.ID] = *acc
	return nil
}

func (s *memoryStore) Entries(_ context.Context) ([]*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedByID(s.accounts), nil
}

func sortedByID(accounts map[ID]Account) []*Account {
	entries := make([]*Account, 0, len(accounts))
	for id := range accounts {
		acc := accounts[id]
		entries = append(entries, &acc)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
