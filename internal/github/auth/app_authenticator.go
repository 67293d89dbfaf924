package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
)

// AppAuthenticator implements Authenticator with a GitHub App installation.
// Installation tokens are minted and refreshed by ghinstallation.
type AppAuthenticator struct {
	transport *ghinstallation.Transport
}

// NewAppAuthenticator wraps an installation transport
func NewAppAuthenticator(transport *ghinstallation.Transport) *AppAuthenticator {
	return &AppAuthenticator{transport: transport}
}

func (a *AppAuthenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	if a.transport == nil {
		return nil, fmt.Errorf("installation transport is not configured")
	}
	return &http.Client{Transport: a.transport}, nil
}

func (a *AppAuthenticator) Token(ctx context.Context) (string, error) {
	if a.transport == nil {
		return "", fmt.Errorf("installation transport is not configured")
	}

	token, err := a.transport.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get installation token: %w", err)
	}
	return token, nil
}

func (a *AppAuthenticator) Type() AuthType {
	return AuthTypeApp
}
