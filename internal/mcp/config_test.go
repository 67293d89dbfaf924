package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/qiniu/codeagent-action/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllowedTools(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "blank entries", raw: " , ,\n", expected: nil},
		{name: "comma separated", raw: "Bash,Edit", expected: []string{"Bash", "Edit"}},
		{name: "newline separated", raw: "Bash\nmcp__github__get_issue\r\n", expected: []string{"Bash", "mcp__github__get_issue"}},
		{name: "tool with spaces inside", raw: "Bash(git status), Read", expected: []string{"Bash(git status)", "Read"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAllowedTools(tt.raw))
		})
	}
}

func TestBuilder_Disabled(t *testing.T) {
	builder := NewBuilder("codeagent-mcp-server")

	out, err := builder.Build(context.Background(), BuildParams{
		Enabled:    false,
		Token:      "ghp_secret",
		UserConfig: `{"mcpServers":{"extra":{"command":"x","args":[]}}}`,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"mcpServers":{}}`, out)
	assert.NotContains(t, out, "ghp_secret")
}

func TestBuilder_Enabled(t *testing.T) {
	builder := NewBuilder("/usr/local/bin/codeagent-mcp-server")

	out, err := builder.Build(context.Background(), BuildParams{
		Enabled:       true,
		Token:         "ghp_test_token",
		Repository:    models.Repository{Owner: "qiniu", Repo: "codeagent"},
		AllowedTools:  []string{"Bash", "Edit"},
		WorkspacePath: "/workspace",
	})
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	require.Contains(t, cfg.MCPServers, DefaultServerName)

	server := cfg.MCPServers[DefaultServerName]
	assert.Equal(t, "/usr/local/bin/codeagent-mcp-server", server.Command)
	assert.Equal(t, "/workspace", server.Cwd)
	assert.Equal(t, map[string]string{
		"GITHUB_TOKEN":  "ghp_test_token",
		"REPO_OWNER":    "qiniu",
		"REPO_NAME":     "codeagent",
		"ALLOWED_TOOLS": "Bash,Edit",
	}, server.Env)
}

func TestBuilder_MergesUserConfig(t *testing.T) {
	builder := NewBuilder("codeagent-mcp-server")

	t.Run("adds and overrides servers", func(t *testing.T) {
		out, err := builder.Build(context.Background(), BuildParams{
			Enabled: true,
			UserConfig: `{"mcpServers":{
				"codeagent":{"command":"custom","args":["--stdio"]},
				"docs":{"command":"docs-server","args":[]}
			}}`,
		})
		require.NoError(t, err)

		var cfg Config
		require.NoError(t, json.Unmarshal([]byte(out), &cfg))
		assert.Len(t, cfg.MCPServers, 2)
		assert.Equal(t, "custom", cfg.MCPServers["codeagent"].Command)
		assert.Equal(t, []string{"--stdio"}, cfg.MCPServers["codeagent"].Args)
		assert.Equal(t, "docs-server", cfg.MCPServers["docs"].Command)
	})

	t.Run("invalid user config is ignored", func(t *testing.T) {
		out, err := builder.Build(context.Background(), BuildParams{
			Enabled:    true,
			UserConfig: `{not json`,
		})
		require.NoError(t, err)

		var cfg Config
		require.NoError(t, json.Unmarshal([]byte(out), &cfg))
		assert.Len(t, cfg.MCPServers, 1)
	})
}

func TestBuilder_NoServerCommand(t *testing.T) {
	out, err := NewBuilder("").Build(context.Background(), BuildParams{Enabled: true})
	require.NoError(t, err)
	assert.Equal(t, `{"mcpServers":{}}`, out)
}
