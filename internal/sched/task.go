// internal/sched/task.go

package sched

// TaskID identifies one of the fixed tasks. It doubles as the task's slot in
// the scheduler's arena.
type TaskID int

const (
	Idler TaskID = iota
	Worker
	HandlerA
	HandlerB
	DeviceA
	DeviceB

	// NumTypes is the size of the task population.
	NumTypes = 6
)

// NoTask terminates the registration list.
const NoTask TaskID = -1

func (id TaskID) String() string {
	switch id {
	case Idler:
		return "Idler"
	case Worker:
		return "Worker"
	case HandlerA:
		return "HandlerA"
	case HandlerB:
		return "HandlerB"
	case DeviceA:
		return "DeviceA"
	case DeviceB:
		return "DeviceB"
	case NoTask:
		return "NoTask"
	default:
		return "Unknown"
	}
}

// Valid reports whether id names a slot in the arena.
func (id TaskID) Valid() bool { return id >= 0 && id < NumTypes }

// Behavior is the kind-specific body of a task. work is the packet taken
// from the task's input queue, or nil. It returns the next task to run;
// nil ends the dispatch loop.
type Behavior interface {
	Run(s *Scheduler, work *Packet) (*TaskControlBlock, error)
}

// TaskControlBlock is the scheduler's record for one task.
type TaskControlBlock struct {
	ID       TaskID
	Priority int    // higher runs first
	link     TaskID // next task in registration order
	input    *Packet
	state    TaskState
	behavior Behavior
}

// State returns the task's current state flags.
func (t *TaskControlBlock) State() TaskState { return t.state }

// Input returns the head of the task's pending input queue.
func (t *TaskControlBlock) Input() *Packet { return t.input }

// Link returns the identity of the next task in registration order.
func (t *TaskControlBlock) Link() TaskID { return t.link }

// Behavior returns the kind-specific body bound at creation.
func (t *TaskControlBlock) Behavior() Behavior { return t.behavior }

// AddInputAndCheckPriority delivers p to t. If t's queue was empty, t becomes
// packet-pending and, when it outranks current, is returned to run next.
// Otherwise current keeps running.
func (t *TaskControlBlock) AddInputAndCheckPriority(p *Packet, current *TaskControlBlock) *TaskControlBlock {
	if t.input == nil {
		t.input = p
		t.state.SetPacketPending(true)
		if t.Priority > current.Priority {
			return t
		}
	} else {
		t.input = Append(p, t.input)
	}
	return current
}

// RunTask takes at most one packet off the input queue and hands it to the
// task's behavior.
func (t *TaskControlBlock) RunTask(s *Scheduler) (*TaskControlBlock, error) {
	var msg *Packet
	if t.state.IsWaitingWithPacket() {
		msg = t.input
		if msg == nil {
			return nil, invariantf(t.ID, "waiting with packet but input queue is empty")
		}
		t.input = msg.Link
		msg.Link = nil
		if t.input == nil {
			t.state.Running()
		} else {
			t.state.PacketPending()
		}
	}
	return t.behavior.Run(s, msg)
}
