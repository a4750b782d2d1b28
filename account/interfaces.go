package account

import "context"

type Service interface {
	CreateAccount(ctx context.Context, d Details) (ID, error)
	UpdateAccount(ctx context.Context, id ID, d Details) error
	CheckCredentials(ctx context.Context, username, password string) (ID, error)
	GetAccount(ctx context.Context, id ID) (*Account, error)
}

//Store is a durable mapping from account id to account record
type Store interface {
	Has(ctx context.Context, id ID) (bool, error)
	Get(ctx context.Context, id ID) (*Account, error)
	Set(ctx context.Context, acc *Account) error
	// Entries returns every stored account ordered by id.
	Entries(ctx context.Context) ([]*Account, error)
}

//Hasher turns submitted passwords into their stored form and checks them
type Hasher interface {
	Hash(password string) (string, error)
	Matches(stored, password string) bool
}
