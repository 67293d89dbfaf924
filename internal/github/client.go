package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/qiniu/codeagent-action/internal/github/auth"
	"github.com/qiniu/codeagent-action/pkg/models"

	"github.com/google/go-github/v58/github"
	"github.com/qiniu/x/xlog"
)

// rateLimitWarnThreshold is the remaining-call count below which lookups log a warning.
const rateLimitWarnThreshold = 100

type Client struct {
	client *github.Client
}

// NewClient creates a REST client. apiURL is GITHUB_API_URL; for GitHub
// Enterprise Server it already carries the /api/v3 path.
func NewClient(httpClient *http.Client, apiURL string) (*Client, error) {
	client := github.NewClient(httpClient)

	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
		client.BaseURL = baseURL
	}

	return &Client{client: client}, nil
}

// NewClientFromAuth creates a REST client authenticated by the given authenticator.
func NewClientFromAuth(ctx context.Context, authenticator auth.Authenticator, apiURL string) (*Client, error) {
	httpClient, err := authenticator.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated HTTP client: %w", err)
	}
	return NewClient(httpClient, apiURL)
}

// GetUser looks up an account by login. Bot accounts resolve with their
// "[bot]" suffix. Errors from the API are returned unwrapped.
func (c *Client) GetUser(ctx context.Context, login string) (*models.ActorIdentity, error) {
	xl := xlog.NewWith(ctx)

	user, resp, err := c.client.Users.Get(ctx, login)
	if err != nil {
		return nil, err
	}

	if resp != nil && resp.Rate.Limit > 0 && resp.Rate.Remaining < rateLimitWarnThreshold {
		xl.Warnf("GitHub API rate limit low: %d/%d remaining, resets at %s",
			resp.Rate.Remaining, resp.Rate.Limit, resp.Rate.Reset.Time)
	}

	return &models.ActorIdentity{
		Login: user.GetLogin(),
		ID:    user.GetID(),
		Type:  models.ActorType(user.GetType()),
	}, nil
}
