package account

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

//ErrPasswordTooLong is returned by Bcrypt for passwords over 72 bytes
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

//PlainText stores passwords verbatim
type PlainText struct{}

func (PlainText) Hash(password string) (string, error) {
	return password, nil
}

func (PlainText) Matches(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = 12
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Matches(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
