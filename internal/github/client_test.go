package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qiniu/codeagent-action/internal/github/auth"
	"github.com/qiniu/codeagent-action/pkg/models"

	"github.com/google/go-github/v58/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, users map[string]github.User) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		login := r.URL.Path[len("/users/"):]
		user, ok := users[login]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_GetUser(t *testing.T) {
	server := newTestServer(t, map[string]github.User{
		"octocat": {
			Login: github.String("octocat"),
			ID:    github.Int64(1),
			Type:  github.String("User"),
		},
		"claude[bot]": {
			Login: github.String("claude[bot]"),
			ID:    github.Int64(209825114),
			Type:  github.String("Bot"),
		},
	})

	client, err := NewClient(server.Client(), server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("user", func(t *testing.T) {
		identity, err := client.GetUser(ctx, "octocat")
		require.NoError(t, err)
		assert.Equal(t, &models.ActorIdentity{Login: "octocat", ID: 1, Type: models.ActorTypeUser}, identity)
	})

	t.Run("bot", func(t *testing.T) {
		identity, err := client.GetUser(ctx, "claude[bot]")
		require.NoError(t, err)
		assert.Equal(t, models.ActorTypeBot, identity.Type)
		assert.Equal(t, int64(209825114), identity.ID)
	})

	t.Run("not found keeps API error", func(t *testing.T) {
		_, err := client.GetUser(ctx, "ghost")
		require.Error(t, err)

		var apiErr *github.ErrorResponse
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.Response.StatusCode)
	})
}

func TestNewClientFromAuth(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"login":"octocat","id":1,"type":"User"}`))
	}))
	defer server.Close()

	client, err := NewClientFromAuth(context.Background(), auth.NewPATAuthenticator("ghp_test_token"), server.URL+"/")
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "Bearer ghp_test_token", authHeader)
}

func TestNewClientFromAuth_Unconfigured(t *testing.T) {
	_, err := NewClientFromAuth(context.Background(), auth.NewPATAuthenticator(""), "")
	assert.Error(t, err)
}
