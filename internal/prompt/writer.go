package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/codeagent-action/pkg/models"
	"github.com/qiniu/x/xlog"
)

const (
	// PromptFileName holds the system-context prompt.
	PromptFileName = "claude-prompt.txt"
	// UserRequestFileName holds the raw user request, used for slash-command detection.
	UserRequestFileName = "claude-user-request.txt"
)

// SystemPrompt returns the system-context line for the repository.
func SystemPrompt(repo models.Repository) string {
	return "Repository: " + repo.FullName()
}

// WritePrompts writes the prompt files into promptDir, which must already exist.
// The user request file is only present when the prompt input is non-empty;
// a stale copy from an earlier run is removed.
func WritePrompts(ctx context.Context, ictx *models.InvocationContext, promptDir string) error {
	xl := xlog.NewWith(ctx)

	promptPath := filepath.Join(promptDir, PromptFileName)
	if err := os.WriteFile(promptPath, []byte(SystemPrompt(ictx.Repository)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", promptPath, err)
	}

	requestPath := filepath.Join(promptDir, UserRequestFileName)
	if ictx.Inputs.Prompt == "" {
		if err := os.Remove(requestPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale %s: %w", requestPath, err)
		}
		xl.Infof("Wrote prompt file %s (no user request)", promptPath)
		return nil
	}

	if err := os.WriteFile(requestPath, []byte(ictx.Inputs.Prompt), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", requestPath, err)
	}

	xl.Infof("Wrote prompt files %s and %s", promptPath, requestPath)
	return nil
}
