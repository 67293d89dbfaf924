package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/qiniu/codeagent-action/internal/actions"
	"github.com/qiniu/codeagent-action/internal/config"
	"github.com/qiniu/codeagent-action/internal/events"
	"github.com/qiniu/codeagent-action/internal/gitauth"
	gh "github.com/qiniu/codeagent-action/internal/github"
	"github.com/qiniu/codeagent-action/internal/github/auth"
	"github.com/qiniu/codeagent-action/internal/mcp"
	"github.com/qiniu/codeagent-action/internal/modes"
	"github.com/qiniu/codeagent-action/internal/trace"
	"github.com/qiniu/codeagent-action/pkg/models"

	"github.com/qiniu/x/log"
	"github.com/spf13/pflag"
)

type options struct {
	configPath  string
	promptDir   string
	workDir     string
	skipGitAuth bool
}

func main() {
	var opts options
	pflag.StringVar(&opts.configPath, "config", "", "path to an optional YAML configuration file")
	pflag.StringVar(&opts.promptDir, "prompt-dir", "", "directory for prompt files (default $RUNNER_TEMP/claude-prompts)")
	pflag.StringVar(&opts.workDir, "workdir", "", "repository checkout (default $GITHUB_WORKSPACE)")
	pflag.BoolVar(&opts.skipGitAuth, "skip-git-auth", false, "do not rewrite the local git configuration")
	pflag.Parse()

	if err := run(context.Background(), opts); err != nil {
		log.Fatalf("Prepare failed: %v", err)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(ctx, opts.configPath, nil)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx = trace.NewContext(ctx, trace.NewTraceID(cfg.Runner.EventName))
	xl := trace.FromContext(ctx)
	exporter := actions.NewExporter(cfg.Runner.OutputFile)

	ictx, err := events.NewEventParser().Parse(ctx, events.RunnerEvent{
		EventName:  cfg.Runner.EventName,
		EventPath:  cfg.Runner.EventPath,
		Actor:      cfg.Runner.Actor,
		Repository: cfg.Runner.Repository,
	}, models.Inputs{
		Prompt:       cfg.Inputs.Prompt,
		AllowedBots:  cfg.Inputs.AllowedBots,
		AllowedTools: cfg.Inputs.AllowedTools,
		MCPConfig:    cfg.Inputs.MCPConfig,
		BranchPrefix: cfg.Inputs.BranchPrefix,
	})
	if err != nil {
		return fmt.Errorf("failed to parse event: %w", err)
	}

	authenticator, err := auth.BuildAuthenticator(cfg)
	if err != nil {
		return err
	}
	client, err := gh.NewClientFromAuth(ctx, authenticator, cfg.GitHub.APIURL)
	if err != nil {
		return err
	}

	manager := modes.NewManager(modes.NewAgentHandler(client, mcp.NewBuilder(cfg.MCP.ServerCommand)))
	mode, err := manager.Select(ctx, ictx)
	if errors.Is(err, modes.ErrNoModeTriggered) {
		xl.Infof("No trigger for %s event, nothing to prepare", ictx.EventName)
		return exporter.ExportNotTriggered()
	}
	if err != nil {
		return err
	}

	promptDir := opts.promptDir
	if promptDir == "" {
		promptDir = cfg.PromptDir()
	}

	workDir := opts.workDir
	if workDir == "" {
		workDir = cfg.Runner.Workspace
	}

	prepared, err := mode.Prepare(ctx, modes.PrepareOptions{
		Context: ictx,
		Env: models.Environment{
			HeadRef:    cfg.Runner.HeadRef,
			RefName:    cfg.Runner.RefName,
			ClaudeArgs: cfg.Inputs.ClaudeArgs,
		},
		Token:           authenticator,
		PromptDir:       promptDir,
		CreatePromptDir: true,
		WorkspacePath:   workDir,
	})
	if err != nil {
		return err
	}

	// the token is embedded in the MCP config outputs
	token, err := authenticator.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain GitHub token: %w", err)
	}
	exporter.Mask(token)

	if !opts.skipGitAuth {
		if err := gitauth.Configure(ctx, gitauth.Options{
			WorkDir:    workDir,
			ServerURL:  cfg.GitHub.ServerURL,
			Repository: ictx.Repository,
			Token:      token,
			BotName:    cfg.Git.BotName,
			BotID:      cfg.Git.BotID,
		}); err != nil {
			return fmt.Errorf("failed to configure git authentication: %w", err)
		}
	}

	if err := exporter.ExportPrepared(prepared, promptDir); err != nil {
		return fmt.Errorf("failed to export outputs: %w", err)
	}

	xl.Infof("Prepared %s mode run for %s (base=%s, current=%s)",
		mode.Name(), ictx.Repository.FullName(), prepared.BranchInfo.BaseBranch, prepared.BranchInfo.CurrentBranch)
	return nil
}
