package models

// EventType defines GitHub event types
type EventType string

const (
	EventIssueComment             EventType = "issue_comment"
	EventPullRequestReview        EventType = "pull_request_review"
	EventPullRequestReviewComment EventType = "pull_request_review_comment"
	EventIssues                   EventType = "issues"
	EventPullRequest              EventType = "pull_request"
	EventWorkflowDispatch         EventType = "workflow_dispatch"
	EventRepositoryDispatch       EventType = "repository_dispatch"
	EventSchedule                 EventType = "schedule"
	EventPush                     EventType = "push"
)

// IsValidEventType 检查事件类型是否有效
func IsValidEventType(eventType string) bool {
	switch EventType(eventType) {
	case EventIssueComment, EventPullRequestReview, EventPullRequestReviewComment,
		EventIssues, EventPullRequest, EventWorkflowDispatch, EventRepositoryDispatch,
		EventSchedule, EventPush:
		return true
	default:
		return false
	}
}

// IsEntityEvent 事件是否关联某个Issue或PR（交互式触发）
func IsEntityEvent(eventType EventType) bool {
	switch eventType {
	case EventIssueComment, EventIssues, EventPullRequestReview, EventPullRequestReviewComment:
		return true
	default:
		return false
	}
}

// IsAutomationEvent 事件是否为直接调用类（无需评论触发）
func IsAutomationEvent(eventType EventType) bool {
	switch eventType {
	case EventWorkflowDispatch, EventRepositoryDispatch, EventSchedule, EventPush:
		return true
	default:
		return false
	}
}
