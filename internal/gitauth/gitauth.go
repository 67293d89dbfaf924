// Package gitauth points the checked-out repository at the bot identity and
// an authenticated origin so the agent can push.
package gitauth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/qiniu/codeagent-action/pkg/models"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/qiniu/x/xlog"
)

const (
	originRemoteName = "origin"
	tokenUser        = "x-access-token"
)

// Options 配置 git 认证所需的参数
type Options struct {
	WorkDir    string
	ServerURL  string // e.g. https://github.com
	Repository models.Repository
	Token      string
	BotName    string
	BotID      string
}

// NoreplyEmail returns the GitHub noreply address of a bot account.
func NoreplyEmail(botID, botName string) string {
	if botID == "" {
		return botName + "@users.noreply.github.com"
	}
	return fmt.Sprintf("%s+%s@users.noreply.github.com", botID, botName)
}

// RemoteURL builds the token-authenticated clone URL of the repository.
func RemoteURL(serverURL string, repo models.Repository, token string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", serverURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid server url %q: missing scheme or host", serverURL)
	}
	if token != "" {
		u.User = url.UserPassword(tokenUser, token)
	}
	u.Path = "/" + repo.FullName() + ".git"
	return u.String(), nil
}

// Configure rewrites the local git config of the repository containing
// opts.WorkDir: commit identity, origin URL and the checkout auth header.
func Configure(ctx context.Context, opts Options) error {
	xl := xlog.NewWith(ctx)

	repo, err := git.PlainOpenWithOptions(opts.WorkDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open git repository at %s: %w", opts.WorkDir, err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read git config: %w", err)
	}

	cfg.User.Name = opts.BotName
	cfg.User.Email = NoreplyEmail(opts.BotID, opts.BotName)

	remoteURL, err := RemoteURL(opts.ServerURL, opts.Repository, opts.Token)
	if err != nil {
		return err
	}
	if remote, ok := cfg.Remotes[originRemoteName]; ok {
		remote.URLs = []string{remoteURL}
	} else {
		cfg.Remotes[originRemoteName] = &config.RemoteConfig{
			Name:  originRemoteName,
			URLs:  []string{remoteURL},
			Fetch: []config.RefSpec{config.RefSpec("+refs/heads/*:refs/remotes/" + originRemoteName + "/*")},
		}
	}

	// actions/checkout persists its credentials here; they would shadow the token.
	if http := cfg.Raw.Section("http"); http.HasSubsection(extraHeaderScope(opts.ServerURL)) {
		http.Subsection(extraHeaderScope(opts.ServerURL)).RemoveOption("extraheader")
	}

	if err := repo.Storer.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write git config: %w", err)
	}

	xl.Infof("Configured git identity %s and origin for %s", opts.BotName, opts.Repository.FullName())
	return nil
}

func extraHeaderScope(serverURL string) string {
	return strings.TrimSuffix(serverURL, "/") + "/"
}
