package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// PATAuthenticator implements Authenticator using a Personal Access Token
// or the workflow GITHUB_TOKEN.
type PATAuthenticator struct {
	token string
}

// NewPATAuthenticator creates a new PAT authenticator
func NewPATAuthenticator(token string) *PATAuthenticator {
	return &PATAuthenticator{token: token}
}

func (p *PATAuthenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	if p.token == "" {
		return nil, fmt.Errorf("GitHub token is not configured")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: p.token})
	return oauth2.NewClient(ctx, ts), nil
}

func (p *PATAuthenticator) Token(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("GitHub token is not configured")
	}
	return p.token, nil
}

func (p *PATAuthenticator) Type() AuthType {
	return AuthTypePAT
}
