package sched

import (
	"errors"
	"testing"
)

var canonicalPriority = map[TaskID]int{
	Idler:    0,
	Worker:   1000,
	HandlerA: 2000,
	HandlerB: 3000,
	DeviceA:  4000,
	DeviceB:  5000,
}

func behaviorFor(id TaskID) Behavior {
	switch id {
	case Idler:
		return NewIdleRecord()
	case Worker:
		return NewWorkerRecord()
	case HandlerA, HandlerB:
		return NewHandlerRecord()
	default:
		return NewDeviceRecord()
	}
}

// newTestScheduler registers ids in order, all waiting with empty queues.
func newTestScheduler(t *testing.T, ids ...TaskID) *Scheduler {
	t.Helper()
	s := New(DefaultConfig())
	for _, id := range ids {
		if err := s.CreateTask(id, canonicalPriority[id], nil, StateWaiting, behaviorFor(id)); err != nil {
			t.Fatalf("CreateTask(%s) error = %v", id, err)
		}
	}
	return s
}

// enter makes id the running task as the dispatch loop would.
func enter(t *testing.T, s *Scheduler, id TaskID) *TaskControlBlock {
	t.Helper()
	tcb, err := s.FindTask(id)
	if err != nil {
		t.Fatalf("FindTask(%s) error = %v", id, err)
	}
	s.current = tcb
	s.currentID = id
	return tcb
}

func TestAddInputPreemptsOnlyHigherPriority(t *testing.T) {
	a := &TaskControlBlock{ID: Worker, Priority: 10}
	b := &TaskControlBlock{ID: HandlerA, Priority: 20, state: StateWaiting}
	c := &TaskControlBlock{ID: HandlerB, Priority: 5, state: StateWaiting}

	if got := b.AddInputAndCheckPriority(NewPacket(nil, HandlerA, WorkPacket), a); got != b {
		t.Fatalf("deliver to higher priority: got %v, want b", got.ID)
	}
	if !b.State().IsPacketPending() || !b.State().IsRunnable() {
		t.Fatalf("b state = %s, want pending and runnable", b.State())
	}
	if got := c.AddInputAndCheckPriority(NewPacket(nil, HandlerB, WorkPacket), a); got != a {
		t.Fatalf("deliver to lower priority: got %v, want a", got.ID)
	}
}

func TestAddInputToNonEmptyQueueAppends(t *testing.T) {
	a := &TaskControlBlock{ID: Worker, Priority: 10}
	b := &TaskControlBlock{ID: HandlerA, Priority: 20, state: StateWaiting}

	first := NewPacket(nil, HandlerA, WorkPacket)
	second := NewPacket(nil, HandlerA, WorkPacket)
	b.AddInputAndCheckPriority(first, a)
	if got := b.AddInputAndCheckPriority(second, a); got != a {
		t.Fatalf("second delivery: got %v, want current task", got.ID)
	}
	if b.Input() != first || first.Link != second {
		t.Fatalf("queue order broken")
	}
	if got := b.Input().Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestRunTaskDequeuesOnePacket(t *testing.T) {
	s := newTestScheduler(t, Worker, HandlerA, HandlerB)
	w := enter(t, s, Worker)

	second := NewPacket(nil, Worker, WorkPacket)
	first := NewPacket(second, Worker, WorkPacket)
	w.input = first
	w.state = StateWaitingWithPacket

	if _, err := w.RunTask(s); err != nil {
		t.Fatalf("RunTask() error = %v", err)
	}
	if w.Input() != second {
		t.Fatalf("remaining queue head is not the second packet")
	}
	if w.State() != StatePacketPending {
		t.Fatalf("state = %s, want pending", w.State())
	}

	w.state = StateWaitingWithPacket
	if _, err := w.RunTask(s); err != nil {
		t.Fatalf("RunTask() error = %v", err)
	}
	if w.Input() != nil {
		t.Fatalf("queue not drained")
	}
	if w.State() != StateRunning {
		t.Fatalf("state = %s, want running", w.State())
	}
}

func TestRunTaskPassesNoPacketUnlessWaitingWithPacket(t *testing.T) {
	s := newTestScheduler(t, Worker)
	w := enter(t, s, Worker)
	p := NewPacket(nil, HandlerA, WorkPacket)
	w.input = p
	w.state = StatePacketPending

	next, err := w.RunTask(s)
	if err != nil {
		t.Fatalf("RunTask() error = %v", err)
	}
	// the worker waits when it gets no packet
	if next != w || !w.State().IsTaskWaiting() {
		t.Fatalf("worker did not mark itself waiting")
	}
	if w.Input() != p {
		t.Fatalf("input queue was consumed")
	}
}

func TestRunTaskEmptyQueueIsInvariantError(t *testing.T) {
	s := newTestScheduler(t, Worker)
	w := enter(t, s, Worker)
	w.state = StateWaitingWithPacket

	_, err := w.RunTask(s)
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("RunTask() error = %v, want ErrInvariant", err)
	}
}

func TestTaskIDString(t *testing.T) {
	if got := HandlerB.String(); got != "HandlerB" {
		t.Fatalf("String() = %q", got)
	}
	if TaskID(NumTypes).Valid() || NoTask.Valid() {
		t.Fatalf("out of range ids reported valid")
	}
}
