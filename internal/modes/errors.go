package modes

import (
	"errors"
	"fmt"

	"github.com/qiniu/codeagent-action/pkg/models"
)

// Predefined error kinds for agent preparation
var (
	ErrUnauthorizedActor = errors.New("unauthorized actor")
	ErrIdentityLookup    = errors.New("identity lookup failed")
	ErrPromptWrite       = errors.New("prompt write failed")
	ErrNoModeTriggered   = errors.New("no mode triggers")
)

// UnauthorizedActorError is returned when a non-human actor is not allow-listed.
type UnauthorizedActorError struct {
	Actor string // canonical actor name
	Type  models.ActorType
}

func (e *UnauthorizedActorError) Error() string {
	return fmt.Sprintf("Workflow initiated by non-human actor: %s (type: %s). Add bot to allowed_bots list or use '*' to allow all bots.",
		e.Actor, e.Type)
}

func (e *UnauthorizedActorError) Is(target error) bool {
	return target == ErrUnauthorizedActor
}

// PrepareError represents a failed preparation step. Both the kind and the
// underlying error stay reachable through errors.Is and errors.As.
type PrepareError struct {
	Op   string // Operation that failed
	Kind error  // One of the predefined kinds
	Err  error  // Underlying error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("prepare %s failed: %v", e.Op, e.Err)
}

func (e *PrepareError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IdentityLookupError wraps an API failure during actor lookup
func IdentityLookupError(actor string, err error) error {
	return &PrepareError{Op: "lookup actor " + actor, Kind: ErrIdentityLookup, Err: err}
}

// PromptWriteError wraps a file-system failure while writing prompt files
func PromptWriteError(err error) error {
	return &PrepareError{Op: "write prompts", Kind: ErrPromptWrite, Err: err}
}
