// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusDispatch StatusKind = iota
	StatusQueue
	StatusHold
	StatusRelease
	StatusWait
	StatusDevice
	StatusFinish
)

// StatusEvent is emitted synchronously on every dispatch and every
// scheduler primitive a behavior calls.
type StatusEvent struct {
	Seq              int        // dispatch number the event belongs to
	Kind             StatusKind // what happened
	TaskID           TaskID     // acting task
	Target           TaskID     // routed-to or released task, NoTask otherwise
	Datum            int        // device datum for StatusDevice
	QueuePacketCount int        // counter value after the event
	HoldCount        int        // counter value after the event
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusDispatch:
		return "Dispatch"
	case StatusQueue:
		return "Queue"
	case StatusHold:
		return "Hold"
	case StatusRelease:
		return "Release"
	case StatusWait:
		return "Wait"
	case StatusDevice:
		return "Device"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}
