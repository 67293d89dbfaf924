package modes

import (
	"context"
	"strings"
	"unicode"

	"github.com/qiniu/codeagent-action/pkg/models"
	"github.com/qiniu/x/xlog"
)

const (
	botSuffix = "[bot]"
	// AllowAllBots in the allow-list admits every non-human actor.
	AllowAllBots = "*"
)

// UserLookup resolves an account by login.
type UserLookup interface {
	GetUser(ctx context.Context, login string) (*models.ActorIdentity, error)
}

// CanonicalActorName strips the "[bot]" decoration GitHub adds to app actors.
func CanonicalActorName(actor string) string {
	name := strings.TrimSpace(actor)
	if len(name) >= len(botSuffix) && strings.EqualFold(name[len(name)-len(botSuffix):], botSuffix) {
		name = name[:len(name)-len(botSuffix)]
	}
	return name
}

// ParseAllowList splits a comma or whitespace separated list into canonical names.
func ParseAllowList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		if name := CanonicalActorName(field); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// IsAllowed reports whether the canonical name is admitted by the allow-list.
// Logins are case-insensitive on GitHub.
func IsAllowed(allowList []string, name string) bool {
	for _, allowed := range allowList {
		if allowed == AllowAllBots || strings.EqualFold(allowed, name) {
			return true
		}
	}
	return false
}

// Authorize decides whether the triggering actor may run the agent. Humans
// always pass; bots and organizations must be allow-listed.
func Authorize(ctx context.Context, ictx *models.InvocationContext, users UserLookup) (*models.ActorIdentity, error) {
	xl := xlog.NewWith(ctx)

	identity, err := users.GetUser(ctx, ictx.Actor)
	if err != nil {
		return nil, IdentityLookupError(ictx.Actor, err)
	}

	if identity.Type == models.ActorTypeUser {
		xl.Infof("Actor %s is a human user", identity.Login)
		return identity, nil
	}

	name := CanonicalActorName(ictx.Actor)
	if !IsAllowed(ParseAllowList(ictx.Inputs.AllowedBots), name) {
		return nil, &UnauthorizedActorError{Actor: name, Type: identity.Type}
	}

	xl.Infof("Non-human actor %s (type: %s) is allow-listed", name, identity.Type)
	return identity, nil
}
