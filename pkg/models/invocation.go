package models

import "time"

// Repository 简单的仓库信息结构体
type Repository struct {
	Owner string `json:"owner"` // 仓库所有者（组织或用户）
	Repo  string `json:"repo"`  // 仓库名称
}

// FullName returns "owner/repo".
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Repo
}

// Inputs is the user-supplied configuration of a run.
type Inputs struct {
	Prompt       string `json:"prompt"`
	AllowedBots  string `json:"allowed_bots"`  // comma or whitespace separated
	AllowedTools string `json:"allowed_tools"` // comma or newline separated
	MCPConfig    string `json:"mcp_config,omitempty"`
	BranchPrefix string `json:"branch_prefix,omitempty"`
}

// InvocationContext is the parsed triggering event. It is not mutated during preparation.
type InvocationContext struct {
	EventName  EventType  `json:"event_name"`
	Action     string     `json:"action,omitempty"`
	Actor      string     `json:"actor"`
	Repository Repository `json:"repository"`
	Inputs     Inputs     `json:"inputs"`

	// CommentID is the tracking comment, 0 when the event carries none.
	CommentID int64 `json:"comment_id,omitempty"`

	// EntityNumber is the issue or PR number for entity events, 0 otherwise.
	EntityNumber int  `json:"entity_number,omitempty"`
	IsPR         bool `json:"is_pr"`

	Timestamp time.Time `json:"timestamp"`
}

// Environment is the snapshot of runner state the resolver and assembler read.
// It is taken once at the process boundary.
type Environment struct {
	HeadRef    string // GITHUB_HEAD_REF
	RefName    string // GITHUB_REF_NAME
	ClaudeArgs string // free-form extra agent arguments
}

// ActorType is the account type GitHub reports for a login.
type ActorType string

const (
	ActorTypeUser         ActorType = "User"
	ActorTypeBot          ActorType = "Bot"
	ActorTypeOrganization ActorType = "Organization"
)

// ActorIdentity 触发者身份
type ActorIdentity struct {
	Login string    `json:"login"`
	ID    int64     `json:"id"`
	Type  ActorType `json:"type"`
}

// BranchInfo 分支信息
type BranchInfo struct {
	BaseBranch    string `json:"base_branch"`
	CurrentBranch string `json:"current_branch"`
	// ClaudeBranch is the branch the agent may push to; empty when the event
	// does not warrant a dedicated work branch.
	ClaudeBranch string `json:"claude_branch,omitempty"`
}

// PreparedInvocation is the result of preparing an agent run.
type PreparedInvocation struct {
	CommentID  int64      `json:"comment_id,omitempty"`
	BranchInfo BranchInfo `json:"branch_info"`
	MCPConfig  string     `json:"mcp_config"`
	ClaudeArgs string     `json:"claude_args"`
}
