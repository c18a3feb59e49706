// Package auth provides the identity capability used by admin-gated
// endpoints. The service only ever talks to the Identity interface; the
// bearer-token implementation is what a single-node deployment runs with.
package auth

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// Role classifies what an authenticated caller may do.
type Role string

const (
	// RoleAdmin may trigger syncs and merge player records.
	RoleAdmin Role = "admin"
)

// UserInfo describes an authenticated caller.
type UserInfo struct {
	UserID string
	Role   Role
}

// Identity resolves the caller behind an HTTP request.
type Identity interface {
	// CurrentUser returns the caller's identity, or false when the request
	// carries no valid credentials.
	CurrentUser(r *http.Request) (UserInfo, bool)
}

// TokenAuthenticator implements Identity against a static set of bearer
// tokens, each mapped to the admin role.
type TokenAuthenticator struct {
	mu     sync.RWMutex
	tokens map[string]UserInfo
}

// NewTokenAuthenticator creates an authenticator for the given admin tokens.
func NewTokenAuthenticator(adminTokens []string) *TokenAuthenticator {
	a := &TokenAuthenticator{
		tokens: make(map[string]UserInfo, len(adminTokens)),
	}
	for i, token := range adminTokens {
		if token == "" {
			continue
		}
		a.tokens[token] = UserInfo{
			UserID: "admin-" + strconv.Itoa(i),
			Role:   RoleAdmin,
		}
	}
	return a
}

// CurrentUser resolves the Authorization bearer token, if any.
func (a *TokenAuthenticator) CurrentUser(r *http.Request) (UserInfo, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return UserInfo{}, false
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	info, ok := a.tokens[token]
	return info, ok
}
