// Package auth stores the SoundCloud OAuth token in the system keyring.
package auth

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service = "poolsuite-cli"
	user    = "soundcloud-oauth-token"
)

// SetToken saves the token. Surrounding whitespace and an "OAuth " prefix
// copied from a request header are stripped.
func SetToken(token string) error {
	token = NormalizeToken(token)
	if token == "" {
		return errors.New("empty token")
	}

	return keyring.Set(service, user, token)
}

// GetToken returns the saved token, or an empty string if there is none.
func GetToken() (string, error) {
	token, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}

	return token, err
}

// DeleteToken removes the saved token. Deleting a missing token is not an error.
func DeleteToken() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}

	return err
}

// NormalizeToken trims a pasted token.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if len(token) > 6 && strings.EqualFold(token[:6], "oauth ") {
		token = strings.TrimSpace(token[6:])
	}

	return token
}
