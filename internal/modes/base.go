package modes

import (
	"context"
	"fmt"

	"github.com/qiniu/codeagent-action/pkg/models"
	"github.com/qiniu/x/xlog"
)

// ExecutionMode 执行模式类型
type ExecutionMode string

const (
	// AgentMode 自动化模式
	AgentMode ExecutionMode = "agent"
)

// TokenSource yields the GitHub token handed to the agent tooling.
// auth.Authenticator satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// PrepareOptions carries the per-run inputs of a mode's Prepare.
type PrepareOptions struct {
	Context *models.InvocationContext
	Env     models.Environment
	// Token is only consulted after the actor is authorized. Nil means no token.
	Token TokenSource
	// PromptDir must exist unless CreatePromptDir is set, in which case it is
	// created after authorization.
	PromptDir       string
	CreatePromptDir bool
	WorkspacePath   string
}

// Mode 模式接口
type Mode interface {
	// Name 获取模式名称
	Name() ExecutionMode

	// ShouldTrigger 检查该模式是否处理给定的事件上下文
	ShouldTrigger(ictx *models.InvocationContext) bool

	// Prepare 准备 agent 启动参数
	Prepare(ctx context.Context, opts PrepareOptions) (*models.PreparedInvocation, error)
}

// Manager 模式管理器
type Manager struct {
	modes []Mode
}

// NewManager 创建新的模式管理器
func NewManager(modes ...Mode) *Manager {
	return &Manager{modes: modes}
}

// Select returns the first registered mode that triggers on the context.
func (m *Manager) Select(ctx context.Context, ictx *models.InvocationContext) (Mode, error) {
	xl := xlog.NewWith(ctx)

	for _, mode := range m.modes {
		if mode.ShouldTrigger(ictx) {
			xl.Infof("Selected mode: %s for event type: %s", mode.Name(), ictx.EventName)
			return mode, nil
		}
	}

	return nil, fmt.Errorf("%w for event type: %s", ErrNoModeTriggered, ictx.EventName)
}
