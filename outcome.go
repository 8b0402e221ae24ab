package illumiterm

import (
	"errors"
	"fmt"
	"syscall"
)

// OutcomeKind tags an Outcome
type OutcomeKind int

const (
	// OutcomeSpawned means the child is running with Outcome.PID
	OutcomeSpawned OutcomeKind = iota
	// OutcomeSpawnFailed means no child was created; see Outcome.Err
	OutcomeSpawnFailed
	// OutcomeChildExited means the child ended with Outcome.Status
	OutcomeChildExited
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSpawned:
		return "spawned"
	case OutcomeSpawnFailed:
		return "spawn-failed"
	case OutcomeChildExited:
		return "child-exited"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is what the supervisor tells the session about the child
type Outcome struct {
	Kind   OutcomeKind
	PID    int
	Err    *SpawnError
	Status int
}

// Spawned returns a Spawned outcome
func Spawned(pid int) Outcome {
	return Outcome{Kind: OutcomeSpawned, PID: pid}
}

// SpawnFailed returns a SpawnFailed outcome for err
func SpawnFailed(err error) Outcome {
	return Outcome{Kind: OutcomeSpawnFailed, Err: NewSpawnError(err)}
}

// ChildExited returns a ChildExited outcome
func ChildExited(status int) Outcome {
	return Outcome{Kind: OutcomeChildExited, Status: status}
}

// ExitStatus is the status the session reports for a terminal outcome
func (o Outcome) ExitStatus() int {
	switch o.Kind {
	case OutcomeSpawnFailed:
		return o.Err.Code
	case OutcomeChildExited:
		return o.Status
	default:
		return 0
	}
}

// SpawnError is a failure to create the child. Code becomes the exit status.
type SpawnError struct {
	Code int
	Err  error
}

// NewSpawnError wraps err, taking the code from a syscall.Errno in its chain
// (1 if there is none). An existing *SpawnError is returned as is.
func NewSpawnError(err error) *SpawnError {
	var se *SpawnError
	if errors.As(err, &se) {
		return se
	}
	code := 1
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		code = int(errno)
	}
	return &SpawnError{Code: code, Err: err}
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn failed (code %d): %v", e.Code, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
