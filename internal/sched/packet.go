// internal/sched/packet.go

package sched

import "fmt"

// DataSize is the fixed payload length of every packet.
const DataSize = 4

// PacketKind tells a handler which of its two queues a packet belongs to.
type PacketKind int

const (
	DevicePacket PacketKind = iota
	WorkPacket
)

func (k PacketKind) String() string {
	switch k {
	case DevicePacket:
		return "Device"
	case WorkPacket:
		return "Work"
	default:
		return "Unknown"
	}
}

// Packet is the unit of work routed between tasks. A packet is owned by
// exactly one queue (or one local variable) at a time.
type Packet struct {
	Link     *Packet       // next packet in the queue, nil at the tail
	Identity TaskID        // destination before queueing, sender after delivery
	Kind     PacketKind    // device or work
	Datum    int           // payload cursor (work) or carried byte (device)
	Data     [DataSize]int // payload
}

// NewPacket creates a packet with an empty payload in front of link.
func NewPacket(link *Packet, identity TaskID, kind PacketKind) *Packet {
	return &Packet{
		Link:     link,
		Identity: identity,
		Kind:     kind,
	}
}

// Append clears p's link and attaches it at the tail of queue. It returns
// the head of the resulting queue, which is p itself when queue is empty.
func Append(p, queue *Packet) *Packet {
	p.Link = nil
	if queue == nil {
		return p
	}
	tail := queue
	for tail.Link != nil {
		tail = tail.Link
	}
	tail.Link = p
	return queue
}

// Len returns the number of packets in the chain starting at p.
//
// NOTE: This is an O(n) operation.
func (p *Packet) Len() (n int) {
	for ; p != nil; p = p.Link {
		n++
	}
	return n
}

func (p *Packet) String() string {
	return fmt.Sprintf("Packet id: %s kind: %s", p.Identity, p.Kind)
}
