package account

import (
	"errors"
	"time"

	"github.com/rs/xid"
)

type Account struct {
	ID                   ID        `json:"id" bson:"_id"`
	Username             string    `json:"username" bson:"username"`
	Email                string    `json:"email" bson:"email"`
	Password             string    `json:"pwd" bson:"pwd"`
	PasswordConfirmation string    `json:"vfypwd" bson:"vfypwd"`
	Phone                string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt            time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" bson:"updated_at"`
}

type ID string

//Details holds the fields submitted when creating or updating an account
type Details struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	Phone                string
}

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrExistingUsername   = errors.New("username already taken")
	ErrExistingEmail      = errors.New("email already taken")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func NewID() ID {
	return ID(xid.New().String())
}

//IsValidID checks if a given id is valid based on the xid library definition of a valid id
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}

func (d Details) passwordsMatch() bool {
	return d.Password == d.PasswordConfirmation
}

// apply overwrites every mutable field of acc with d. Id and creation time are kept.
func (d Details) apply(acc *Account) {
	acc.Username = d.Username
	acc.Email = d.Email
	acc.Password = d.Password
	acc.PasswordConfirmation = d.PasswordConfirmation
	acc.Phone = d.Phone
}
