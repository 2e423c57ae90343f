// Package auth stores the optional DLive access token in the system keyring.
package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/log"
	"github.com/zalando/go-keyring"
)

const (
	service = constant.Dlive
	user    = "access-token"
)

// EnvToken overrides the stored token when set.
const EnvToken = "DLIVE_TOKEN"

// SetToken stores token in the keyring.
func SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return keyring.Set(service, user, token)
}

// GetToken reads the stored token.
func GetToken() (string, error) {
	return keyring.Get(service, user)
}

// DeleteToken removes the stored token. Removing a missing token is not an error.
func DeleteToken() error {
	if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// Token returns the token to send with requests, if any.
// The environment wins over the keyring and keyring failures count as no token.
func Token() (string, bool) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, true
	}

	token, err := GetToken()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			log.Warnf("read token from keyring: %s", err)
		}
		return "", false
	}

	return token, token != ""
}
