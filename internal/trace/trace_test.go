package trace

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceID(t *testing.T) {
	id := NewTraceID("issue_comment")
	assert.True(t, strings.HasPrefix(string(id), "prepare_issue_comment_"))
	assert.Len(t, string(id), len("prepare_issue_comment_")+8)
	assert.NotEqual(t, id, NewTraceID("issue_comment"))

	assert.True(t, strings.HasPrefix(string(NewTraceID("")), "prepare_"))
}

func TestContext(t *testing.T) {
	ctx := NewContext(context.Background(), "prepare_push_abcdef12")
	assert.Equal(t, TraceID("prepare_push_abcdef12"), GetTraceID(ctx))
	require.NotNil(t, FromContext(ctx))

	assert.Empty(t, GetTraceID(context.Background()))
	assert.NotNil(t, FromContext(context.Background()))
}
