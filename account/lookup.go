package account

import (
	"context"
	"errors"
	"fmt"
)

//FindByUsername returns the first account in store order whose username equals username
func FindByUsername(ctx context.Context, store Store, username string) (*Account, error) {
	return findFirst(ctx, store, func(acc *Account) bool { return acc.Username == username })
}

func IsUsernameTaken(ctx context.Context, store Store, username string) (bool, error) {
	return exists(ctx, store, func(acc *Account) bool { return acc.Username == username })
}

func IsEmailTaken(ctx context.Context, store Store, email string) (bool, error) {
	return exists(ctx, store, func(acc *Account) bool { return acc.Email == email })
}

func findFirst(ctx context.Context, store Store, match func(*Account) bool) (*Account, error) {
	accounts, err := store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("error scanning accounts: %w", err)
	}

	for _, acc := range accounts {
		if match(acc) {
			return acc, nil
		}
	}
	return nil, ErrNotFound
}

func exists(ctx context.Context, store Store, match func(*Account) bool) (bool, error) {
	_, err := findFirst(ctx, store, match)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
