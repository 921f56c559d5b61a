// internal/sched/errors.go

package sched

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTask = errors.New("unknown task identity")
	ErrInvariant   = errors.New("scheduler invariant violated")
	ErrRunaway     = errors.New("dispatch limit exceeded")
)

// SchedulerError wraps a fatal configuration or logic failure raised while
// building or running the task set.
type SchedulerError struct {
	Kind error
	Task TaskID
	Msg  string
}

func (e *SchedulerError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s (task %s)", e.Kind.Error(), e.Task)
	}
	return fmt.Sprintf("%s (task %s): %s", e.Kind.Error(), e.Task, e.Msg)
}

func (e *SchedulerError) Unwrap() error { return e.Kind }

func unknownTask(id TaskID) error {
	return &SchedulerError{Kind: ErrUnknownTask, Task: id}
}

func invariantf(id TaskID, format string, args ...any) error {
	return &SchedulerError{Kind: ErrInvariant, Task: id, Msg: fmt.Sprintf(format, args...)}
}

func runaway(id TaskID, limit int) error {
	return &SchedulerError{Kind: ErrRunaway, Task: id, Msg: fmt.Sprintf("more than %d dispatches", limit)}
}
