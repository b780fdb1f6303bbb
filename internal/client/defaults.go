package client

import "sync"

// Defaults is the process-wide fallback used by clients and stateless calls
// that carry no token of their own.
type Defaults struct {
	Token string
}

var (
	defaultsMu sync.RWMutex
	defaults   Defaults
)

// InitDefaults installs d as the shared fallback, replacing any previous one.
func InitDefaults(d Defaults) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = d
}

// ResetDefaults clears the shared fallback.
func ResetDefaults() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = Defaults{}
}

func SetDefaultToken(token string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.Token = token
}

func DefaultToken() string {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults.Token
}
