package modes

import (
	"fmt"
	"strings"

	"github.com/qiniu/codeagent-action/pkg/models"
)

const (
	// DefaultBranch is used when the runner exposes no ref.
	DefaultBranch = "main"
	// DefaultBranchPrefix prefixes dedicated work branches.
	DefaultBranchPrefix = "claude/"

	workBranchTimeLayout = "20060102-1504"
)

// BranchResolver is one named step of the branch fallback chain.
type BranchResolver struct {
	Name    string
	Resolve func(env models.Environment) string
}

var (
	HeadRefResolver = BranchResolver{
		Name:    "head_ref",
		Resolve: func(env models.Environment) string { return env.HeadRef },
	}
	RefNameResolver = BranchResolver{
		Name:    "ref_name",
		Resolve: func(env models.Environment) string { return env.RefName },
	}
	DefaultBranchResolver = BranchResolver{
		Name:    "default",
		Resolve: func(models.Environment) string { return DefaultBranch },
	}
)

// DefaultBranchResolvers returns the chain in priority order.
func DefaultBranchResolvers() []BranchResolver {
	return []BranchResolver{HeadRefResolver, RefNameResolver, DefaultBranchResolver}
}

// ResolveFirst returns the first non-blank value of the chain, as the
// resolver reported it, and the name of the resolver that produced it.
func ResolveFirst(env models.Environment, resolvers []BranchResolver) (string, string) {
	for _, r := range resolvers {
		if v := r.Resolve(env); strings.TrimSpace(v) != "" {
			return v, r.Name
		}
	}
	return DefaultBranch, DefaultBranchResolver.Name
}

// ResolveBranches computes the branch info for a run. It never fails.
func ResolveBranches(ictx *models.InvocationContext, env models.Environment) models.BranchInfo {
	// base and current share the same chain
	branch, _ := ResolveFirst(env, DefaultBranchResolvers())

	return models.BranchInfo{
		BaseBranch:    branch,
		CurrentBranch: branch,
		ClaudeBranch:  workBranchName(ictx),
	}
}

// workBranchName names the dedicated branch for issue-triggered runs. PR
// entities keep working on their head branch and direct invocations get none.
func workBranchName(ictx *models.InvocationContext) string {
	if !models.IsEntityEvent(ictx.EventName) || ictx.EntityNumber <= 0 || ictx.IsPR {
		return ""
	}

	prefix := ictx.Inputs.BranchPrefix
	if prefix == "" {
		prefix = DefaultBranchPrefix
	}

	if ictx.Timestamp.IsZero() {
		return fmt.Sprintf("%sissue-%d", prefix, ictx.EntityNumber)
	}
	return fmt.Sprintf("%sissue-%d-%s", prefix, ictx.EntityNumber, ictx.Timestamp.UTC().Format(workBranchTimeLayout))
}
