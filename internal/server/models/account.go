// Package models holds the persistence types of the account store.
package models

// Account is one registered user of the account store. PasswordHash is a
// bcrypt hash; the plaintext never leaves the transport layer.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
}
