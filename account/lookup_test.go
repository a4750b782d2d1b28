package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookups(t *testing.T) {
	ctx := context.Background()
	accounts := NewMemoryStore()
	first := &Account{ID: NewID(), Username: "dup", Email: "a@x.com"}
	second := &Account{ID: NewID(), Username: "dup", Email: "b@x.com"}
	_ = accounts.Set(ctx, second)
	_ = accounts.Set(ctx, first)

	acc, err := FindByUsername(ctx, accounts, "dup")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, acc.ID)

	_, err = FindByUsername(ctx, accounts, "Dup")
	assert.Equal(t, ErrNotFound, err)

	tests := []struct {
		value        string
		wantUsername bool
		wantEmail    bool
	}{
		{"dup", true, false},
		{"a@x.com", false, true},
		{"A@x.com", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		taken, err := IsUsernameTaken(ctx, accounts, tt.value)
		assert.NoError(t, err)
		assert.Equal(t, tt.wantUsername, taken, tt.value)

		taken, err = IsEmailTaken(ctx, accounts, tt.value)
		assert.NoError(t, err)
		assert.Equal(t, tt.wantEmail, taken, tt.value)
	}
}

func TestLookups_StoreError(t *testing.T) {
	ctx := context.Background()
	accounts := newStoreSpy()
	accounts.failAll = true

	_, err := FindByUsername(ctx, accounts, "u")
	assert.ErrorIs(t, err, errStore)

	taken, err := IsUsernameTaken(ctx, accounts, "u")
	assert.ErrorIs(t, err, errStore)
	assert.False(t, taken)

	taken, err = IsEmailTaken(ctx, accounts, "u@x.com")
	assert.ErrorIs(t, err, errStore)
	assert.False(t, taken)
}
