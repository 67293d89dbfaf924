package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPromptDirName is the directory created under RUNNER_TEMP for prompt files.
const DefaultPromptDirName = "claude-prompts"

type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Runner RunnerConfig `yaml:"runner"`
	Inputs InputsConfig `yaml:"inputs"`
	MCP    MCPConfig    `yaml:"mcp"`
	Git    GitConfig    `yaml:"git"`
}

type GitHubConfig struct {
	Token         string          `yaml:"token" env:"GITHUB_TOKEN,overwrite"`
	OverrideToken string          `yaml:"-" env:"OVERRIDE_GITHUB_TOKEN"`
	APIURL        string          `yaml:"api_url" env:"GITHUB_API_URL,overwrite,default=https://api.github.com"`
	ServerURL     string          `yaml:"server_url" env:"GITHUB_SERVER_URL,overwrite,default=https://github.com"`
	App           GitHubAppConfig `yaml:"app"`
}

// GitHubAppConfig GitHub App 认证配置
type GitHubAppConfig struct {
	AppID          int64  `yaml:"app_id" env:"GITHUB_APP_ID,overwrite"`
	InstallationID int64  `yaml:"installation_id" env:"GITHUB_APP_INSTALLATION_ID,overwrite"`
	PrivateKey     string `yaml:"-" env:"GITHUB_APP_PRIVATE_KEY"`
	PrivateKeyPath string `yaml:"private_key_path" env:"GITHUB_APP_PRIVATE_KEY_PATH,overwrite"`
}

// RunnerConfig is the state the CI runner exposes through the environment.
type RunnerConfig struct {
	EventName  string `yaml:"-" env:"GITHUB_EVENT_NAME"`
	EventPath  string `yaml:"-" env:"GITHUB_EVENT_PATH"`
	Actor      string `yaml:"-" env:"GITHUB_ACTOR"`
	Repository string `yaml:"-" env:"GITHUB_REPOSITORY"`
	HeadRef    string `yaml:"-" env:"GITHUB_HEAD_REF"`
	RefName    string `yaml:"-" env:"GITHUB_REF_NAME"`
	Temp       string `yaml:"temp" env:"RUNNER_TEMP,overwrite"`
	OutputFile string `yaml:"-" env:"GITHUB_OUTPUT"`
	Workspace  string `yaml:"workspace" env:"GITHUB_WORKSPACE,overwrite,default=."`
}

// InputsConfig 用户在 workflow 中提供的输入
type InputsConfig struct {
	Prompt       string `yaml:"prompt" env:"PROMPT,overwrite"`
	AllowedBots  string `yaml:"allowed_bots" env:"ALLOWED_BOTS,overwrite"`
	AllowedTools string `yaml:"allowed_tools" env:"ALLOWED_TOOLS,overwrite"`
	ClaudeArgs   string `yaml:"claude_args" env:"CLAUDE_ARGS,overwrite"`
	MCPConfig    string `yaml:"mcp_config" env:"MCP_CONFIG,overwrite"`
	BranchPrefix string `yaml:"branch_prefix" env:"BRANCH_PREFIX,overwrite,default=claude/"`
}

type MCPConfig struct {
	ServerCommand string `yaml:"server_command" env:"MCP_SERVER_COMMAND,overwrite,default=codeagent-mcp-server"`
}

// GitConfig 提交身份
type GitConfig struct {
	BotName string `yaml:"bot_name" env:"BOT_NAME,overwrite,default=claude[bot]"`
	BotID   string `yaml:"bot_id" env:"BOT_ID,overwrite,default=209825114"`
}

// Load reads the optional YAML file at configPath and then overlays the
// environment. A missing file is not an error. A nil lookuper reads the
// process environment.
func Load(ctx context.Context, configPath string, lookuper envconfig.Lookuper) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &config,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	config.SetDefaults()
	return &config, nil
}

// SetDefaults fills values that depend on other settings.
func (c *Config) SetDefaults() {
	if c.Runner.Temp == "" {
		c.Runner.Temp = os.TempDir()
	}
	if c.Runner.Workspace == "" {
		c.Runner.Workspace = "."
	}
}

// Token returns the GitHub token, preferring the override.
func (c *Config) Token() string {
	if c.GitHub.OverrideToken != "" {
		return c.GitHub.OverrideToken
	}
	return c.GitHub.Token
}

// IsGitHubAppConfigured 检查是否配置了完整的 GitHub App
func (c *Config) IsGitHubAppConfigured() bool {
	app := c.GitHub.App
	return app.AppID > 0 && app.InstallationID > 0 &&
		(app.PrivateKey != "" || app.PrivateKeyPath != "")
}

// IsGitHubTokenConfigured 检查是否配置了 token
func (c *Config) IsGitHubTokenConfigured() bool {
	return c.Token() != ""
}

// PromptDir returns the conventional prompt directory under the runner temp dir.
func (c *Config) PromptDir() string {
	return filepath.Join(c.Runner.Temp, DefaultPromptDirName)
}

// Validate checks the settings the prepare step cannot run without.
func (c *Config) Validate() error {
	if c.Runner.EventName == "" {
		return fmt.Errorf("event name is required (GITHUB_EVENT_NAME)")
	}
	if c.Runner.Actor == "" {
		return fmt.Errorf("actor is required (GITHUB_ACTOR)")
	}
	if c.Runner.Repository == "" {
		return fmt.Errorf("repository is required (GITHUB_REPOSITORY)")
	}
	if !c.IsGitHubAppConfigured() && !c.IsGitHubTokenConfigured() {
		return fmt.Errorf("GitHub token or GitHub App configuration is required")
	}
	return nil
}
