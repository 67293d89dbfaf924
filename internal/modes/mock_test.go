package modes

import (
	"context"
	"fmt"

	"github.com/qiniu/codeagent-action/internal/mcp"
	"github.com/qiniu/codeagent-action/pkg/models"
)

// mockUsers 模拟 GitHub 用户查询
type mockUsers struct {
	identities map[string]*models.ActorIdentity
	err        error
	calls      int
}

func newMockUsers(identities ...*models.ActorIdentity) *mockUsers {
	m := &mockUsers{identities: make(map[string]*models.ActorIdentity)}
	for _, id := range identities {
		m.identities[id.Login] = id
	}
	return m
}

func (m *mockUsers) GetUser(ctx context.Context, login string) (*models.ActorIdentity, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if id, ok := m.identities[login]; ok {
		return id, nil
	}
	return nil, fmt.Errorf("GET /users/%s: 404 Not Found", login)
}

// mockBuilder returns a fixed configuration and records the last params.
type mockBuilder struct {
	config string
	err    error
	last   mcp.BuildParams
}

func (m *mockBuilder) Build(ctx context.Context, params mcp.BuildParams) (string, error) {
	m.last = params
	if m.err != nil {
		return "", m.err
	}
	if !params.Enabled {
		return `{"mcpServers":{}}`, nil
	}
	return m.config, nil
}

func human(login string) *models.ActorIdentity {
	return &models.ActorIdentity{Login: login, ID: 1, Type: models.ActorTypeUser}
}

func bot(login string) *models.ActorIdentity {
	return &models.ActorIdentity{Login: login, ID: 2, Type: models.ActorTypeBot}
}
