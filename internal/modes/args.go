package modes

import (
	"context"
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/qiniu/codeagent-action/internal/mcp"
	"github.com/qiniu/codeagent-action/pkg/models"
)

// MCPConfigFlag is the agent flag that carries the serialized MCP configuration.
const MCPConfigFlag = "--mcp-config"

// MCPConfigBuilder produces the serialized MCP configuration.
type MCPConfigBuilder interface {
	Build(ctx context.Context, params mcp.BuildParams) (string, error)
}

// ArgsInput is everything the assembler reads.
type ArgsInput struct {
	Inputs        models.Inputs
	Env           models.Environment
	Repository    models.Repository
	Token         string
	WorkspacePath string
}

// AssembledArgs 最终的 agent 参数
type AssembledArgs struct {
	ClaudeArgs string
	// MCPConfig is always set, even when no flag was appended.
	MCPConfig string
}

// AssembleArgs builds the agent argument string. User arguments come first,
// verbatim, so the agent's parser lets them take precedence; the MCP flag is
// appended only when at least one tool is enabled.
func AssembleArgs(ctx context.Context, in ArgsInput, builder MCPConfigBuilder) (*AssembledArgs, error) {
	tools := mcp.ParseAllowedTools(in.Inputs.AllowedTools)
	enabled := len(tools) > 0

	mcpConfig, err := builder.Build(ctx, mcp.BuildParams{
		Enabled:       enabled,
		Token:         in.Token,
		Repository:    in.Repository,
		AllowedTools:  tools,
		UserConfig:    in.Inputs.MCPConfig,
		WorkspacePath: in.WorkspacePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build MCP config: %w", err)
	}

	var flag string
	if enabled {
		flag = MCPConfigFlag + " " + shellescape.Quote(mcpConfig)
	}

	return &AssembledArgs{
		ClaudeArgs: JoinArgs(in.Env.ClaudeArgs, flag),
		MCPConfig:  mcpConfig,
	}, nil
}

// JoinArgs appends flag to the user arguments, keeping them as a verbatim prefix.
func JoinArgs(userArgs, flag string) string {
	switch {
	case strings.TrimSpace(userArgs) == "":
		return flag
	case flag == "":
		return userArgs
	default:
		return userArgs + " " + flag
	}
}
