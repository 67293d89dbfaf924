package events

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/qiniu/codeagent-action/pkg/models"

	"github.com/google/go-github/v58/github"
	"github.com/qiniu/x/xlog"
)

// RunnerEvent describes the triggering event as the runner exposes it.
type RunnerEvent struct {
	EventName  string // GITHUB_EVENT_NAME
	EventPath  string // GITHUB_EVENT_PATH
	Actor      string // GITHUB_ACTOR
	Repository string // GITHUB_REPOSITORY, "owner/repo"
}

// EventParser 事件解析器
type EventParser struct {
	now func() time.Time
}

// NewEventParser 创建新的事件解析器
func NewEventParser() *EventParser {
	return &EventParser{now: time.Now}
}

// Parse builds the invocation context from the runner event and user inputs.
// The payload file is optional for direct-invocation events.
func (p *EventParser) Parse(ctx context.Context, runner RunnerEvent, inputs models.Inputs) (*models.InvocationContext, error) {
	xl := xlog.NewWith(ctx)

	if !models.IsValidEventType(runner.EventName) {
		return nil, unsupportedEvent(runner.EventName)
	}

	repo, err := ParseRepository(runner.Repository)
	if err != nil {
		return nil, err
	}

	ictx := &models.InvocationContext{
		EventName:  models.EventType(runner.EventName),
		Actor:      runner.Actor,
		Repository: repo,
		Inputs:     inputs,
	}

	payload, err := readPayload(runner.EventPath)
	if err != nil {
		if models.IsAutomationEvent(ictx.EventName) {
			xl.Warnf("No event payload for %s, continuing without it: %v", runner.EventName, err)
			ictx.Timestamp = p.now()
			return ictx, nil
		}
		return nil, readFailed(runner.EventName, runner.EventPath, err)
	}

	if err := p.ParsePayload(ctx, ictx, payload); err != nil {
		return nil, err
	}
	// payloads without an event time fall back to the parse time
	if ictx.Timestamp.IsZero() {
		ictx.Timestamp = p.now()
	}

	xl.Infof("Parsed %s event (action=%q, entity=%d, pr=%v, comment=%d)",
		ictx.EventName, ictx.Action, ictx.EntityNumber, ictx.IsPR, ictx.CommentID)
	return ictx, nil
}

// ParsePayload fills the event-specific fields of ictx from a webhook payload,
// including the event time when the payload records one.
func (p *EventParser) ParsePayload(ctx context.Context, ictx *models.InvocationContext, payload []byte) error {
	eventName := string(ictx.EventName)

	// schedule has no webhook counterpart
	if ictx.EventName == models.EventSchedule {
		return nil
	}

	event, err := github.ParseWebHook(eventName, payload)
	if err != nil {
		return decodeFailed(eventName, err)
	}

	switch e := event.(type) {
	case *github.IssueCommentEvent:
		if e.Issue == nil {
			return missingField(eventName, ErrMissingIssue)
		}
		if e.Comment == nil {
			return missingField(eventName, ErrMissingComment)
		}
		ictx.Action = e.GetAction()
		ictx.EntityNumber = e.Issue.GetNumber()
		ictx.IsPR = e.Issue.IsPullRequest()
		ictx.CommentID = e.Comment.GetID()
		ictx.Timestamp = e.Comment.GetCreatedAt().Time

	case *github.IssuesEvent:
		if e.Issue == nil {
			return missingField(eventName, ErrMissingIssue)
		}
		ictx.Action = e.GetAction()
		ictx.EntityNumber = e.Issue.GetNumber()
		ictx.Timestamp = firstTime(e.Issue.GetUpdatedAt().Time, e.Issue.GetCreatedAt().Time)

	case *github.PullRequestEvent:
		if e.PullRequest == nil {
			return missingField(eventName, ErrMissingPullRequest)
		}
		ictx.Action = e.GetAction()
		ictx.EntityNumber = e.PullRequest.GetNumber()
		ictx.IsPR = true

	case *github.PullRequestReviewEvent:
		if e.PullRequest == nil {
			return missingField(eventName, ErrMissingPullRequest)
		}
		if e.Review == nil {
			return missingField(eventName, ErrMissingReview)
		}
		ictx.Action = e.GetAction()
		ictx.EntityNumber = e.PullRequest.GetNumber()
		ictx.IsPR = true
		ictx.CommentID = e.Review.GetID()
		ictx.Timestamp = e.Review.GetSubmittedAt().Time

	case *github.PullRequestReviewCommentEvent:
		if e.PullRequest == nil {
			return missingField(eventName, ErrMissingPullRequest)
		}
		if e.Comment == nil {
			return missingField(eventName, ErrMissingComment)
		}
		ictx.Action = e.GetAction()
		ictx.EntityNumber = e.PullRequest.GetNumber()
		ictx.IsPR = true
		ictx.CommentID = e.Comment.GetID()
		ictx.Timestamp = e.Comment.GetCreatedAt().Time

	case *github.WorkflowDispatchEvent, *github.PushEvent:
		// no event-specific fields

	case *github.RepositoryDispatchEvent:
		ictx.Action = e.GetAction()

	default:
		return unsupportedEvent(eventName)
	}

	return nil
}

// ParseRepository splits "owner/repo".
func ParseRepository(fullName string) (models.Repository, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return models.Repository{}, fmt.Errorf("%w: %q", ErrInvalidRepository, fullName)
	}
	return models.Repository{Owner: owner, Repo: repo}, nil
}

func firstTime(times ...time.Time) time.Time {
	for _, t := range times {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

func readPayload(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEventNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrEventNotFound, err)
		}
		return nil, err
	}
	return data, nil
}
