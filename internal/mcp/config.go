package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qiniu/codeagent-action/pkg/models"
	"github.com/qiniu/x/xlog"
)

// DefaultServerName is the key of the built-in server in mcpServers.
const DefaultServerName = "codeagent"

// ServerConfig MCP服务器配置
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
}

// Config Claude CLI MCP配置
type Config struct {
	MCPServers map[string]ServerConfig `json:"mcpServers"`
}

// BuildParams 构建 MCP 配置所需的参数
type BuildParams struct {
	// Enabled reports whether any tool is enabled for the run. When false the
	// default, server-less configuration is produced.
	Enabled      bool
	Token        string
	Repository   models.Repository
	AllowedTools []string
	// UserConfig is an optional JSON document in the same shape as Config,
	// merged over the built-in servers.
	UserConfig    string
	WorkspacePath string
}

// Builder serializes the MCP configuration handed to the agent process.
type Builder struct {
	serverCommand string
}

// NewBuilder 创建 MCP 配置生成器
func NewBuilder(serverCommand string) *Builder {
	return &Builder{serverCommand: serverCommand}
}

// Build returns the serialized configuration. It never returns an empty string.
func (b *Builder) Build(ctx context.Context, params BuildParams) (string, error) {
	xl := xlog.NewWith(ctx)

	config := &Config{MCPServers: map[string]ServerConfig{}}

	if params.Enabled {
		if b.serverCommand != "" {
			config.MCPServers[DefaultServerName] = ServerConfig{
				Command: b.serverCommand,
				Args:    []string{},
				Env:     buildEnvironment(params),
				Cwd:     params.WorkspacePath,
			}
		}

		if strings.TrimSpace(params.UserConfig) != "" {
			var user Config
			if err := json.Unmarshal([]byte(params.UserConfig), &user); err != nil {
				xl.Warnf("Ignoring invalid user MCP config: %v", err)
			} else {
				for name, server := range user.MCPServers {
					config.MCPServers[name] = server
				}
			}
		}
	}

	data, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal MCP config: %w", err)
	}

	xl.Debugf("Built MCP config with %d server(s)", len(config.MCPServers))
	return string(data), nil
}

// buildEnvironment 构建环境变量
func buildEnvironment(params BuildParams) map[string]string {
	env := map[string]string{}

	if params.Token != "" {
		env["GITHUB_TOKEN"] = params.Token
	}
	if params.Repository.Owner != "" {
		env["REPO_OWNER"] = params.Repository.Owner
	}
	if params.Repository.Repo != "" {
		env["REPO_NAME"] = params.Repository.Repo
	}
	if len(params.AllowedTools) > 0 {
		env["ALLOWED_TOOLS"] = strings.Join(params.AllowedTools, ",")
	}

	return env
}

// ParseAllowedTools splits a comma or newline separated tool list, dropping blanks.
func ParseAllowedTools(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	var tools []string
	for _, field := range fields {
		if tool := strings.TrimSpace(field); tool != "" {
			tools = append(tools, tool)
		}
	}
	return tools
}
