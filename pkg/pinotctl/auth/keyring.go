package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "pinotctl"

// ErrPasswordNotFound is returned when no password is stored for a context.
var ErrPasswordNotFound = errors.New("no stored password")

// PasswordStore keeps basic-auth passwords in the OS keyring, keyed by
// context and user name.
type PasswordStore struct {
	Service string
}

func NewPasswordStore() *PasswordStore {
	return &PasswordStore{Service: keyringService}
}

func (s *PasswordStore) account(contextName, username string) string {
	return contextName + "/" + username
}

func (s *PasswordStore) Get(contextName, username string) (string, error) {
	secret, err := keyring.Get(s.Service, s.account(contextName, username))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w for %s in context %s", ErrPasswordNotFound, username, contextName)
		}
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return secret, nil
}

func (s *PasswordStore) Set(contextName, username, password string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if err := keyring.Set(s.Service, s.account(contextName, username), password); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

func (s *PasswordStore) Delete(contextName, username string) error {
	err := keyring.Delete(s.Service, s.account(contextName, username))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
