package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jimiolaniyan/useraccounts/metrics"
)

var errHashing = errors.New("password hashing failed")

type service struct {
	// mu makes each operation's lookups and write atomic with respect to other operations.
	mu             sync.Mutex
	accounts       Store
	hasher         Hasher
	uniqueOnUpdate bool
	now            func() time.Time
}

type Option func(*service)

//WithUniqueOnUpdate controls whether an update may take a username or email
// already held by another account
func WithUniqueOnUpdate(unique bool) Option {
	return func(s *service) { s.uniqueOnUpdate = unique }
}

func WithPasswordHasher(h Hasher) Option {
	return func(s *service) { s.hasher = h }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(accounts Store, opts ...Option) Service {
	svc := &service{
		accounts:       accounts,
		hasher:         PlainText{},
		uniqueOnUpdate: true,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *service) CreateAccount(ctx context.Context, d Details) (ID, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if !d.passwordsMatch() {
		return "", failed("create", ErrPasswordMismatch)
	}

	if taken, err := IsUsernameTaken(ctx, svc.accounts, d.Username); err != nil || taken {
		return "", failed("create", inUse(err, ErrExistingUsername))
	}

	if taken, err := IsEmailTaken(ctx, svc.accounts, d.Email); err != nil || taken {
		return "", failed("create", inUse(err, ErrExistingEmail))
	}

	acc := &Account{ID: NewID()}
	if err := svc.fill(acc, d); err != nil {
		return "", failed("create", err)
	}
	acc.CreatedAt = acc.UpdatedAt

	if err := svc.accounts.Set(ctx, acc); err != nil {
		return "", failed("create", fmt.Errorf("error saving account: %w", err))
	}

	metrics.AccountsCreatedTotal.Inc()
	return acc.ID, nil
}

func (svc *service) UpdateAccount(ctx context.Context, id ID, d Details) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	exists, err := svc.accounts.Has(ctx, id)
	if err != nil {
		return failed("update", err)
	}
	if !exists {
		return failed("update", ErrNotFound)
	}

	if !d.passwordsMatch() {
		return failed("update", ErrPasswordMismatch)
	}

	if svc.uniqueOnUpdate {
		if err := svc.verifyNotInUse(ctx, id, d.Username, d.Email); err != nil {
			return failed("update", err)
		}
	}

	acc, err := svc.accounts.Get(ctx, id)
	if err != nil {
		return failed("update", err)
	}

	if err := svc.fill(acc, d); err != nil {
		return failed("update", err)
	}

	if err := svc.accounts.Set(ctx, acc); err != nil {
		return failed("update", fmt.Errorf("error saving account: %w", err))
	}

	metrics.AccountsUpdatedTotal.Inc()
	return nil
}

func (svc *service) CheckCredentials(ctx context.Context, username, password string) (ID, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	acc, err := FindByUsername(ctx, svc.accounts, username)
	if errors.Is(err, ErrNotFound) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", failed("login", err)
	}

	if !svc.hasher.Matches(acc.Password, password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return acc.ID, nil
}

func (svc *service) GetAccount(ctx context.Context, id ID) (*Account, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return svc.accounts.Get(ctx, id)
}

// verifyNotInUse reports whether username or email belongs to an account other than self.
func (svc *service) verifyNotInUse(ctx context.Context, self ID, username, email string) error {
	accounts, err := svc.accounts.Entries(ctx)
	if err != nil {
		return fmt.Errorf("error scanning accounts: %w", err)
	}

	for _, acc := range accounts {
		if acc.ID != self && acc.Username == username {
			return ErrExistingUsername
		}
	}
	for _, acc := range accounts {
		if acc.ID != self && acc.Email == email {
			return ErrExistingEmail
		}
	}
	return nil
}

func inUse(lookupErr, taken error) error {
	if lookupErr != nil {
		return lookupErr
	}
	return taken
}

func (svc *service) fill(acc *Account, d Details) error {
	hash, err := svc.hasher.Hash(d.Password)
	if err != nil {
		return fmt.Errorf("%w: %w", errHashing, err)
	}

	d.apply(acc)
	acc.Password = hash
	acc.PasswordConfirmation = hash
	acc.UpdatedAt = svc.now()
	return nil
}

func failed(operation string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(operation, reason(err)).Inc()
	return err
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, ErrExistingUsername):
		return "username_taken"
	case errors.Is(err, ErrExistingEmail):
		return "email_taken"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPasswordTooLong):
		return "password_too_long"
	case errors.Is(err, errHashing):
		return "password_hash"
	default:
		return "store"
	}
}
