package modes

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/qiniu/codeagent-action/internal/prompt"
	"github.com/qiniu/codeagent-action/pkg/models"
	"github.com/qiniu/x/xlog"
)

// AgentHandler prepares runs triggered by automation events or an explicit prompt.
type AgentHandler struct {
	users UserLookup
	mcp   MCPConfigBuilder
}

// NewAgentHandler 创建 Agent 模式处理器
func NewAgentHandler(users UserLookup, builder MCPConfigBuilder) *AgentHandler {
	return &AgentHandler{
		users: users,
		mcp:   builder,
	}
}

func (a *AgentHandler) Name() ExecutionMode {
	return AgentMode
}

// ShouldTrigger fires for direct invocations and whenever a prompt is supplied.
func (a *AgentHandler) ShouldTrigger(ictx *models.InvocationContext) bool {
	if ictx == nil {
		return false
	}
	return models.IsAutomationEvent(ictx.EventName) || strings.TrimSpace(ictx.Inputs.Prompt) != ""
}

// Prepare authorizes the actor and then computes everything the agent
// process needs. Nothing is created, fetched or written before
// authorization succeeds, and no result is returned unless every step
// succeeds.
func (a *AgentHandler) Prepare(ctx context.Context, opts PrepareOptions) (*models.PreparedInvocation, error) {
	xl := xlog.NewWith(ctx)
	ictx := opts.Context

	if _, err := Authorize(ctx, ictx, a.users); err != nil {
		return nil, err
	}

	if opts.CreatePromptDir {
		if err := os.MkdirAll(opts.PromptDir, 0755); err != nil {
			return nil, PromptWriteError(err)
		}
	}

	var token string
	if opts.Token != nil {
		t, err := opts.Token.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to obtain GitHub token: %w", err)
		}
		token = t
	}

	branchInfo := ResolveBranches(ictx, opts.Env)
	xl.Infof("Resolved branches: base=%s current=%s claude=%q",
		branchInfo.BaseBranch, branchInfo.CurrentBranch, branchInfo.ClaudeBranch)

	args, err := AssembleArgs(ctx, ArgsInput{
		Inputs:        ictx.Inputs,
		Env:           opts.Env,
		Repository:    ictx.Repository,
		Token:         token,
		WorkspacePath: opts.WorkspacePath,
	}, a.mcp)
	if err != nil {
		return nil, err
	}

	if err := prompt.WritePrompts(ctx, ictx, opts.PromptDir); err != nil {
		return nil, PromptWriteError(err)
	}

	return &models.PreparedInvocation{
		CommentID:  ictx.CommentID,
		BranchInfo: branchInfo,
		MCPConfig:  args.MCPConfig,
		ClaudeArgs: args.ClaudeArgs,
	}, nil
}
