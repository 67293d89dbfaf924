package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/qiniu/codeagent-action/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(prompt string) *models.InvocationContext {
	return &models.InvocationContext{
		EventName:  models.EventWorkflowDispatch,
		Actor:      "octocat",
		Repository: models.Repository{Owner: "qiniu", Repo: "codeagent"},
		Inputs:     models.Inputs{Prompt: prompt},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWritePrompts_WithUserRequest(t *testing.T) {
	dir := t.TempDir()

	err := WritePrompts(context.Background(), newContext("/maintaining-code audit deps"), dir)
	require.NoError(t, err)

	assert.Equal(t, "Repository: qiniu/codeagent", readFile(t, filepath.Join(dir, PromptFileName)))
	assert.Equal(t, "/maintaining-code audit deps", readFile(t, filepath.Join(dir, UserRequestFileName)))
}

func TestWritePrompts_EmptyPrompt(t *testing.T) {
	dir := t.TempDir()

	err := WritePrompts(context.Background(), newContext(""), dir)
	require.NoError(t, err)

	assert.Equal(t, "Repository: qiniu/codeagent", readFile(t, filepath.Join(dir, PromptFileName)))
	_, err = os.Stat(filepath.Join(dir, UserRequestFileName))
	assert.True(t, os.IsNotExist(err), "user request file must not exist")
}

func TestWritePrompts_RemovesStaleUserRequest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UserRequestFileName), []byte("old"), 0644))

	require.NoError(t, WritePrompts(context.Background(), newContext(""), dir))

	_, err := os.Stat(filepath.Join(dir, UserRequestFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestWritePrompts_SystemPromptIgnoresUserInput(t *testing.T) {
	for _, p := range []string{"", "fix the bug", "Repository: evil/override"} {
		dir := t.TempDir()
		require.NoError(t, WritePrompts(context.Background(), newContext(p), dir))
		assert.Equal(t, "Repository: qiniu/codeagent", readFile(t, filepath.Join(dir, PromptFileName)))
	}
}

func TestWritePrompts_Idempotent(t *testing.T) {
	dir := t.TempDir()
	ictx := newContext("/maintaining-code audit deps")

	require.NoError(t, WritePrompts(context.Background(), ictx, dir))
	require.NoError(t, WritePrompts(context.Background(), ictx, dir))

	assert.Equal(t, "Repository: qiniu/codeagent", readFile(t, filepath.Join(dir, PromptFileName)))
	assert.Equal(t, "/maintaining-code audit deps", readFile(t, filepath.Join(dir, UserRequestFileName)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWritePrompts_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")

	err := WritePrompts(context.Background(), newContext("hello"), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
