// internal/sched/behavior.go

package sched

const (
	idleCount   = 10000
	idleControl = 1
	idleMask    = 53256

	alphabet = 26
)

// IdleRecord drives the devices until its countdown runs out.
type IdleRecord struct {
	Control int
	Count   int
}

// NewIdleRecord returns the idle task's initial data.
func NewIdleRecord() *IdleRecord {
	return &IdleRecord{Control: idleControl, Count: idleCount}
}

func (r *IdleRecord) Run(s *Scheduler, _ *Packet) (*TaskControlBlock, error) {
	r.Count--
	if r.Count == 0 {
		return s.HoldSelf()
	}
	if r.Control&1 == 0 {
		r.Control /= 2
		return s.Release(DeviceA)
	}
	r.Control = (r.Control / 2) ^ idleMask
	return s.Release(DeviceB)
}

// WorkerRecord alternates work packets between the two handlers and refills
// their payload with a rotating A-Z sequence.
type WorkerRecord struct {
	Destination TaskID
	Count       int
}

func NewWorkerRecord() *WorkerRecord {
	return &WorkerRecord{Destination: HandlerA}
}

func (r *WorkerRecord) Run(s *Scheduler, work *Packet) (*TaskControlBlock, error) {
	if work == nil {
		return s.MarkWaiting()
	}
	if r.Destination == HandlerA {
		r.Destination = HandlerB
	} else {
		r.Destination = HandlerA
	}
	work.Identity = r.Destination
	work.Datum = 0
	for i := range work.Data {
		r.Count++
		if r.Count > alphabet {
			r.Count = 1
		}
		work.Data[i] = 'A' + r.Count - 1
	}
	return s.QueuePacket(work)
}

// HandlerRecord buffers work packets and device packets separately and
// copies one payload byte per device round trip.
type HandlerRecord struct {
	WorkIn   *Packet
	DeviceIn *Packet
}

func NewHandlerRecord() *HandlerRecord { return &HandlerRecord{} }

func (r *HandlerRecord) Run(s *Scheduler, work *Packet) (*TaskControlBlock, error) {
	if work != nil {
		if work.Kind == WorkPacket {
			r.WorkIn = Append(work, r.WorkIn)
		} else {
			r.DeviceIn = Append(work, r.DeviceIn)
		}
	}

	w := r.WorkIn
	if w == nil {
		return s.MarkWaiting()
	}
	count := w.Datum
	if count >= DataSize {
		r.WorkIn = w.Link
		w.Link = nil
		return s.QueuePacket(w)
	}

	d := r.DeviceIn
	if d == nil {
		return s.MarkWaiting()
	}
	r.DeviceIn = d.Link
	d.Link = nil
	d.Datum = w.Data[count]
	w.Datum = count + 1
	return s.QueuePacket(d)
}

// DeviceRecord holds at most one packet while the simulated device is busy.
type DeviceRecord struct {
	Pending *Packet
}

func NewDeviceRecord() *DeviceRecord { return &DeviceRecord{} }

func (r *DeviceRecord) Run(s *Scheduler, work *Packet) (*TaskControlBlock, error) {
	if work == nil {
		if r.Pending == nil {
			return s.MarkWaiting()
		}
		p := r.Pending
		r.Pending = nil
		return s.QueuePacket(p)
	}
	s.emit(StatusDevice, s.currentID, NoTask, work.Datum)
	r.Pending = work
	return s.HoldSelf()
}
