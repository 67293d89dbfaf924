package auth

import (
	"context"
	"net/http"
)

// AuthType represents the type of authentication being used
type AuthType string

const (
	AuthTypePAT AuthType = "pat" // Personal Access Token
	AuthTypeApp AuthType = "app" // GitHub App installation
)

// Authenticator defines the interface for GitHub authentication
type Authenticator interface {
	// HTTPClient returns an HTTP client that authenticates API requests
	HTTPClient(ctx context.Context) (*http.Client, error)

	// Token returns a token usable for git over HTTPS
	Token(ctx context.Context) (string, error)

	// Type returns the authentication method
	Type() AuthType
}
