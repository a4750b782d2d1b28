package account

import (
	"context"
	"errors"
)

var errStore = errors.New("store unavailable")

//storeSpy wraps a Store and records writes
type storeSpy struct {
	Store
	sets    int
	failAll bool
}

func newStoreSpy() *storeSpy {
	return &storeSpy{Store: NewMemoryStore()}
}

func (s *storeSpy) Set(ctx context.Context, acc *Account) error {
	if s.failAll {
		return errStore
	}
	s.sets++
	return s.Store.Set(ctx, acc)
}

func (s *storeSpy) Entries(ctx context.Context) ([]*Account, error) {
	if s.failAll {
		return nil, errStore
	}
	return s.Store.Entries(ctx)
}

func (s *storeSpy) Get(ctx context.Context, id ID) (*Account, error) {
	if s.failAll {
		return nil, errStore
	}
	return s.Store.Get(ctx, id)
}

func details(username, email, password, confirmation string) Details {
	return Details{Username: username, Email: email, Password: password, PasswordConfirmation: confirmation}
}
