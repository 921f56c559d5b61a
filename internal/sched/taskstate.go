// internal/sched/taskstate.go

package sched

import "strings"

// TaskState is the 3-bit scheduling state of a task.
type TaskState uint8

const (
	StatePacketPending TaskState = 1 << iota
	StateTaskWaiting
	StateTaskHolding
)

// Canonical states a task can be created in.
const (
	StateRunning           TaskState = 0
	StateWaiting                     = StateTaskWaiting
	StateWaitingWithPacket           = StatePacketPending | StateTaskWaiting
)

// Running clears every flag.
func (s *TaskState) Running() { *s = StateRunning }

// Waiting parks the task without a packet.
func (s *TaskState) Waiting() { *s = StateWaiting }

// WaitingWithPacket parks the task with a packet queued.
func (s *TaskState) WaitingWithPacket() { *s = StateWaitingWithPacket }

// PacketPending marks new input and clears waiting and holding.
func (s *TaskState) PacketPending() { *s = StatePacketPending }

func (s *TaskState) set(flag TaskState, on bool) {
	if on {
		*s |= flag
	} else {
		*s &^= flag
	}
}

// SetPacketPending sets or clears only the pending flag.
func (s *TaskState) SetPacketPending(on bool) { s.set(StatePacketPending, on) }

// SetTaskWaiting sets or clears only the waiting flag.
func (s *TaskState) SetTaskWaiting(on bool) { s.set(StateTaskWaiting, on) }

// SetTaskHolding sets or clears only the holding flag.
func (s *TaskState) SetTaskHolding(on bool) { s.set(StateTaskHolding, on) }

func (s TaskState) IsPacketPending() bool { return s&StatePacketPending != 0 }
func (s TaskState) IsTaskWaiting() bool   { return s&StateTaskWaiting != 0 }
func (s TaskState) IsTaskHolding() bool   { return s&StateTaskHolding != 0 }

// IsHoldingOrWaiting reports whether the scheduler must skip the task.
// Holding wins over every other flag.
func (s TaskState) IsHoldingOrWaiting() bool {
	return s.IsTaskHolding() || (!s.IsPacketPending() && s.IsTaskWaiting())
}

// IsRunnable is the negation of IsHoldingOrWaiting.
func (s TaskState) IsRunnable() bool { return !s.IsHoldingOrWaiting() }

func (s TaskState) IsRunning() bool { return s == StateRunning }

func (s TaskState) IsWaiting() bool { return s == StateWaiting }

func (s TaskState) IsWaitingWithPacket() bool { return s == StateWaitingWithPacket }

func (s TaskState) String() string {
	if s == StateRunning {
		return "running"
	}
	var parts []string
	if s.IsPacketPending() {
		parts = append(parts, "pending")
	}
	if s.IsTaskWaiting() {
		parts = append(parts, "waiting")
	}
	if s.IsTaskHolding() {
		parts = append(parts, "holding")
	}
	return strings.Join(parts, "|")
}
