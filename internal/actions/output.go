// Package actions exports step outputs to the GitHub Actions runner.
package actions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/qiniu/codeagent-action/internal/prompt"
	"github.com/qiniu/codeagent-action/pkg/models"

	"github.com/google/uuid"
	"github.com/qiniu/x/log"
)

// Output names read by later workflow steps.
const (
	OutputContainsTrigger = "contains_trigger"
	OutputBaseBranch      = "base_branch"
	OutputCurrentBranch   = "current_branch"
	OutputClaudeBranch    = "claude_branch"
	OutputClaudeArgs      = "claude_args"
	OutputMCPConfig       = "mcp_config"
	OutputCommentID       = "comment_id"
	OutputPromptFile      = "prompt_file"
	OutputPromptDir       = "prompt_dir"
)

// sensitiveOutputs may embed the GitHub token through the MCP server env.
var sensitiveOutputs = map[string]bool{
	OutputClaudeArgs: true,
	OutputMCPConfig:  true,
}

const redacted = "***"

// Exporter appends outputs to the GITHUB_OUTPUT file. With no file
// configured, outputs are only logged, with secrets redacted.
type Exporter struct {
	path    string
	stdout  io.Writer
	secrets []string
	newUUID func() string
}

// NewExporter 创建输出导出器
func NewExporter(outputFile string) *Exporter {
	return &Exporter{
		path:    outputFile,
		stdout:  os.Stdout,
		newUUID: uuid.NewString,
	}
}

// Mask asks the runner to hide secret in the job log and keeps it out of
// logged outputs. Tokens minted at runtime are not masked automatically.
func (e *Exporter) Mask(secret string) {
	if strings.TrimSpace(secret) == "" {
		return
	}
	e.secrets = append(e.secrets, secret)
	for _, line := range strings.Split(secret, "\n") {
		if line != "" {
			fmt.Fprintf(e.stdout, "::add-mask::%s\n", line)
		}
	}
}

func (e *Exporter) redact(name, value string) string {
	if sensitiveOutputs[name] && value != "" {
		return fmt.Sprintf("<redacted, %d bytes>", len(value))
	}
	for _, s := range e.secrets {
		value = strings.ReplaceAll(value, s, redacted)
	}
	return value
}

// Set writes a single output in heredoc form so that values may span lines.
func (e *Exporter) Set(name, value string) error {
	if e.path == "" {
		log.Infof("output %s=%s", name, e.redact(name, value))
		return nil
	}

	delimiter := "ghadelimiter_" + e.newUUID()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %s: value contains delimiter %s", name, delimiter)
	}

	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}

// ExportNotTriggered records that no mode handled the event.
func (e *Exporter) ExportNotTriggered() error {
	return e.Set(OutputContainsTrigger, "false")
}

// ExportPrepared writes every output of a prepared run. The comment id is
// exported empty when the event carried none.
func (e *Exporter) ExportPrepared(inv *models.PreparedInvocation, promptDir string) error {
	commentID := ""
	if inv.CommentID != 0 {
		commentID = strconv.FormatInt(inv.CommentID, 10)
	}

	outputs := []struct{ name, value string }{
		{OutputContainsTrigger, "true"},
		{OutputBaseBranch, inv.BranchInfo.BaseBranch},
		{OutputCurrentBranch, inv.BranchInfo.CurrentBranch},
		{OutputClaudeBranch, inv.BranchInfo.ClaudeBranch},
		{OutputClaudeArgs, inv.ClaudeArgs},
		{OutputMCPConfig, inv.MCPConfig},
		{OutputCommentID, commentID},
		{OutputPromptFile, filepath.Join(promptDir, prompt.PromptFileName)},
		{OutputPromptDir, promptDir},
	}
	for _, o := range outputs {
		if err := e.Set(o.name, o.value); err != nil {
			return err
		}
	}
	return nil
}
