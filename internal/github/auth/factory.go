package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/qiniu/codeagent-action/internal/config"
	"github.com/qiniu/x/log"
)

const defaultAPIURL = "https://api.github.com"

// BuildAuthenticator builds an authenticator from configuration.
// A complete GitHub App configuration takes priority over a token.
func BuildAuthenticator(cfg *config.Config) (Authenticator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	if cfg.IsGitHubAppConfigured() {
		appAuth, err := buildAppAuthenticator(cfg)
		if err == nil {
			return appAuth, nil
		}
		if !cfg.IsGitHubTokenConfigured() {
			return nil, err
		}
		log.Warnf("GitHub App configuration failed, falling back to token: %v", err)
	}

	if cfg.IsGitHubTokenConfigured() {
		return NewPATAuthenticator(cfg.Token()), nil
	}

	return nil, fmt.Errorf("no valid GitHub authentication configuration found")
}

func buildAppAuthenticator(cfg *config.Config) (Authenticator, error) {
	app := cfg.GitHub.App

	var (
		transport *ghinstallation.Transport
		err       error
	)
	if app.PrivateKeyPath != "" {
		transport, err = ghinstallation.NewKeyFromFile(http.DefaultTransport, app.AppID, app.InstallationID, app.PrivateKeyPath)
	} else {
		transport, err = ghinstallation.New(http.DefaultTransport, app.AppID, app.InstallationID, []byte(app.PrivateKey))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}

	if apiURL := strings.TrimSuffix(cfg.GitHub.APIURL, "/"); apiURL != "" && apiURL != defaultAPIURL {
		transport.BaseURL = apiURL
	}

	return NewAppAuthenticator(transport), nil
}
