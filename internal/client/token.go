package client

import (
	"strings"
	"vrp-client/internal/domain"
)

const bearerPrefix = "bearer "

var ErrTokenRequired = domain.NewValidationError("", "access token must be set")

// authorization returns the Authorization header value for token.
// The scheme prefix is matched exactly and never doubled.
func authorization(token string) string {
	if strings.HasPrefix(token, bearerPrefix) {
		return token
	}
	return bearerPrefix + token
}

// resolveToken picks the explicit token when set, else the shared default.
func resolveToken(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if t := DefaultToken(); t != "" {
		return t, nil
	}
	return "", ErrTokenRequired
}
