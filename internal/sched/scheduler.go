// internal/sched/scheduler.go

package sched

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// Oracle counter values for the canonical workload.
const (
	ExpectedQueuePacketCount = 23246
	ExpectedHoldCount        = 9297
)

// Scheduler runs the fixed task set to completion on the calling goroutine.
// A Scheduler is single use: build a new one for every run.
type Scheduler struct {
	// task registry
	tasks [NumTypes]TaskControlBlock  // arena, indexed by TaskID
	table [NumTypes]*TaskControlBlock // registered slots, nil otherwise
	list  TaskID                      // head of the registration list

	// dispatch state
	current       *TaskControlBlock
	currentID     TaskID
	dispatches    int
	maxDispatches int
	started       bool

	// counters
	queuePacketCount int
	holdCount        int
	ranTotals        *treemap.Map // TaskID -> invocations

	observers []func(StatusEvent)
}

// Result is the outcome of one run.
type Result struct {
	QueuePacketCount int
	HoldCount        int
	Dispatches       int
}

// Verify reports whether the counters match the canonical workload.
func (r Result) Verify() bool {
	return r.QueuePacketCount == ExpectedQueuePacketCount && r.HoldCount == ExpectedHoldCount
}

// New creates an empty Scheduler with the given configuration.
func New(cfg Config) *Scheduler {
	limit := cfg.MaxDispatches
	if limit <= 0 {
		limit = DefaultConfig().MaxDispatches
	}
	return &Scheduler{
		list:          NoTask,
		currentID:     NoTask,
		maxDispatches: limit,
		ranTotals:     treemap.NewWith(cmp),
	}
}

// Observe registers fn to receive every status event. Observers run
// synchronously inside the dispatch loop and must not call back into it.
// Must be called before Run().
func (s *Scheduler) Observe(fn func(StatusEvent)) {
	s.observers = append(s.observers, fn)
}

// Start builds the canonical workload, runs it and reports whether the
// counters match. A fatal scheduler error panics.
func (s *Scheduler) Start() bool {
	res, err := s.Run()
	if err != nil {
		panic(err)
	}
	return res.Verify()
}

// Run builds the canonical workload and dispatches until no task is runnable.
func (s *Scheduler) Run() (Result, error) {
	if err := s.setup(); err != nil {
		return s.Result(), err
	}
	err := s.Schedule()
	return s.Result(), err
}

// setup registers the six tasks in creation order. The registration list
// ends up in reverse order because each task is prepended.
func (s *Scheduler) setup() error {
	if err := s.CreateTask(Idler, 0, nil, StateRunning, NewIdleRecord()); err != nil {
		return err
	}

	workQ := NewPacket(nil, Worker, WorkPacket)
	workQ = NewPacket(workQ, Worker, WorkPacket)
	if err := s.CreateTask(Worker, 1000, workQ, StateWaitingWithPacket, NewWorkerRecord()); err != nil {
		return err
	}

	workQ = deviceQueue(DeviceA)
	if err := s.CreateTask(HandlerA, 2000, workQ, StateWaitingWithPacket, NewHandlerRecord()); err != nil {
		return err
	}
	workQ = deviceQueue(DeviceB)
	if err := s.CreateTask(HandlerB, 3000, workQ, StateWaitingWithPacket, NewHandlerRecord()); err != nil {
		return err
	}

	if err := s.CreateTask(DeviceA, 4000, nil, StateWaiting, NewDeviceRecord()); err != nil {
		return err
	}
	return s.CreateTask(DeviceB, 5000, nil, StateWaiting, NewDeviceRecord())
}

func deviceQueue(device TaskID) *Packet {
	var q *Packet
	for i := 0; i < 3; i++ {
		q = NewPacket(q, device, DevicePacket)
	}
	return q
}

// CreateTask registers a task at the head of the registration list.
func (s *Scheduler) CreateTask(id TaskID, priority int, work *Packet, state TaskState, b Behavior) error {
	if !id.Valid() {
		return unknownTask(id)
	}
	if s.table[id] != nil {
		return invariantf(id, "task already registered")
	}
	if b == nil {
		return invariantf(id, "no behavior")
	}

	s.tasks[id] = TaskControlBlock{
		ID:       id,
		Priority: priority,
		link:     s.list,
		input:    work,
		state:    state,
		behavior: b,
	}
	s.table[id] = &s.tasks[id]
	s.list = id
	s.ranTotals.Put(id, 0)
	return nil
}

// FindTask looks up a registered task.
func (s *Scheduler) FindTask(id TaskID) (*TaskControlBlock, error) {
	if !id.Valid() || s.table[id] == nil {
		return nil, unknownTask(id)
	}
	return s.table[id], nil
}

// next returns the task registered after t, or nil at the end of the list.
func (s *Scheduler) next(t *TaskControlBlock) *TaskControlBlock {
	if t.link == NoTask {
		return nil
	}
	return s.table[t.link]
}

// Schedule walks the registration list, skipping holding and waiting tasks,
// and runs whichever task the previous one designates until none is left.
func (s *Scheduler) Schedule() error {
	if s.started {
		return invariantf(s.list, "scheduler already ran")
	}
	s.started = true

	if s.list != NoTask {
		s.current = s.table[s.list]
	}
	for s.current != nil {
		t := s.current
		if t.state.IsHoldingOrWaiting() {
			s.current = s.next(t)
			continue
		}

		if s.dispatches >= s.maxDispatches {
			return runaway(t.ID, s.maxDispatches)
		}
		s.dispatches++
		s.currentID = t.ID
		s.count(t.ID)
		s.emit(StatusDispatch, t.ID, NoTask, 0)

		next, err := t.RunTask(s)
		if err != nil {
			return err
		}
		s.current = next
	}

	s.emit(StatusFinish, s.currentID, NoTask, 0)
	return nil
}

// HoldSelf suspends the running task and moves on to the next one in
// registration order.
func (s *Scheduler) HoldSelf() (*TaskControlBlock, error) {
	if s.current == nil {
		return nil, invariantf(s.currentID, "hold without a running task")
	}
	s.holdCount++
	s.current.state.SetTaskHolding(true)
	s.emit(StatusHold, s.current.ID, NoTask, 0)
	return s.next(s.current), nil
}

// QueuePacket routes p to the task named by its identity and relabels it with
// the sender's identity.
func (s *Scheduler) QueuePacket(p *Packet) (*TaskControlBlock, error) {
	if s.current == nil {
		return nil, invariantf(s.currentID, "queue without a running task")
	}
	s.queuePacketCount++
	t, err := s.FindTask(p.Identity)
	if err != nil {
		return nil, err
	}
	p.Link = nil
	p.Identity = s.currentID
	s.emit(StatusQueue, s.currentID, t.ID, p.Datum)
	return t.AddInputAndCheckPriority(p, s.current), nil
}

// Release clears the holding flag of the named task. It runs next only if it
// outranks the current task.
func (s *Scheduler) Release(id TaskID) (*TaskControlBlock, error) {
	if s.current == nil {
		return nil, invariantf(s.currentID, "release without a running task")
	}
	t, err := s.FindTask(id)
	if err != nil {
		return nil, err
	}
	t.state.SetTaskHolding(false)
	s.emit(StatusRelease, s.currentID, id, 0)
	if t.Priority > s.current.Priority {
		return t, nil
	}
	return s.current, nil
}

// MarkWaiting parks the running task until a packet arrives.
func (s *Scheduler) MarkWaiting() (*TaskControlBlock, error) {
	if s.current == nil {
		return nil, invariantf(s.currentID, "wait without a running task")
	}
	s.current.state.SetTaskWaiting(true)
	s.emit(StatusWait, s.current.ID, NoTask, 0)
	return s.current, nil
}

// Result returns the counters accumulated so far.
func (s *Scheduler) Result() Result {
	return Result{
		QueuePacketCount: s.queuePacketCount,
		HoldCount:        s.holdCount,
		Dispatches:       s.dispatches,
	}
}

// TaskTotal is the number of times one task was dispatched.
type TaskTotal struct {
	ID         TaskID
	Dispatches int
}

// Totals returns per-task dispatch counts in task id order.
func (s *Scheduler) Totals() []TaskTotal {
	out := make([]TaskTotal, 0, s.ranTotals.Size())
	it := s.ranTotals.Iterator()
	for it.Next() {
		out = append(out, TaskTotal{ID: it.Key().(TaskID), Dispatches: it.Value().(int)})
	}
	return out
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("Scheduler{queued=%d held=%d dispatches=%d}", s.queuePacketCount, s.holdCount, s.dispatches)
}

func (s *Scheduler) count(id TaskID) {
	n, _ := s.ranTotals.Get(id)
	c, _ := n.(int)
	s.ranTotals.Put(id, c+1)
}

func (s *Scheduler) emit(kind StatusKind, id, target TaskID, datum int) {
	if len(s.observers) == 0 {
		return
	}
	ev := StatusEvent{
		Seq:              s.dispatches,
		Kind:             kind,
		TaskID:           id,
		Target:           target,
		Datum:            datum,
		QueuePacketCount: s.queuePacketCount,
		HoldCount:        s.holdCount,
	}
	for _, fn := range s.observers {
		fn(ev)
	}
}

// cmp orders TaskIDs in the totals map.
func cmp(a, b any) int {
	ka, kb := a.(TaskID), b.(TaskID)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}
