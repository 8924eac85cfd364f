// Package auth provides the credential store, the per-adapter session state and the
// reauthorization channel through which an adapter asks a human for a new secret.
package auth

import (
	"errors"
	"strings"

	"github.com/anisan-cli/anisync/constant"
	"github.com/zalando/go-keyring"
)

// ErrNoSecret is returned by a Store when nothing is saved under the key.
var ErrNoSecret = errors.New("no secret stored")

// Store keeps password-like secrets outside the plaintext configuration.
type Store interface {
	Secret(key string) (string, error)
	SetSecret(key, value string) error
	DeleteSecret(key string) error
}

// Key returns the store key of the secret for an account.
func Key(provider, username string) string {
	return provider + "/" + strings.ToLower(username)
}

// Keyring is a Store backed by the system keyring.
type Keyring struct{}

// Secret retrieves the secret saved under key.
func (Keyring) Secret(key string) (string, error) {
	secret, err := keyring.Get(constant.Anisync, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoSecret
	}
	return secret, err
}

// SetSecret persists value under key.
func (Keyring) SetSecret(key, value string) error {
	if value == "" {
		return errors.New("secret cannot be empty")
	}
	return keyring.Set(constant.Anisync, key, value)
}

// DeleteSecret removes the secret saved under key. Deleting a missing secret succeeds.
func (Keyring) DeleteSecret(key string) error {
	err := keyring.Delete(constant.Anisync, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
