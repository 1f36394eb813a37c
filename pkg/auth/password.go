// Package auth checks user supplied passwords against a stored bcrypt hash.
package auth

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
)

// Default file holding the password hash
const DefaultHashFile = "pass.hash"

var (
	ErrEmptyHash     = errors.New("empty password hash")
	ErrEmptyPassword = errors.New("empty password")
)

// Returns the bcrypt hash of a password
func Hash(password []byte, cost int) ([]byte, error) {
	if len(password) <= 0 {
		return nil, ErrEmptyPassword
	}

	return bcrypt.GenerateFromPassword(password, cost)
}

// Hashes a password and stores the hash in a file, replacing any previous one
func WriteHash(fs afero.Fs, path string, password []byte, cost int) error {
	hash, err := Hash(password, cost)
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, path, hash, 0o600)
}

// Reads the hash stored in a file. Surrounding whitespace is ignored.
func ReadHash(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read password hash: %w", err)
	}

	hash := bytes.TrimSpace(data)
	if len(hash) <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyHash, path)
	}

	return hash, nil
}

// Checks a password against the hash stored in a file.
// A wrong password is not an error: it returns false with a nil error.
func Verify(fs afero.Fs, path string, password []byte) (bool, error) {
	hash, err := ReadHash(fs, path)
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword(hash, password)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("invalid password hash in %s: %w", path, err)
	}
}
