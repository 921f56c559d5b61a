package sched

import "testing"

func TestRunnableClassificationAllBits(t *testing.T) {
	for raw := 0; raw < 8; raw++ {
		s := TaskState(raw)
		pending := raw&1 != 0
		waiting := raw&2 != 0
		holding := raw&4 != 0

		want := !holding && !(waiting && !pending)
		if got := s.IsRunnable(); got != want {
			t.Fatalf("state %03b (%s): IsRunnable() = %v, want %v", raw, s, got, want)
		}
		if s.IsHoldingOrWaiting() == s.IsRunnable() {
			t.Fatalf("state %03b: IsHoldingOrWaiting() must negate IsRunnable()", raw)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name string
		move func(*TaskState)
		want TaskState
	}{
		{"running", (*TaskState).Running, StateRunning},
		{"waiting", (*TaskState).Waiting, StateWaiting},
		{"waiting with packet", (*TaskState).WaitingWithPacket, StateWaitingWithPacket},
		{"packet pending", (*TaskState).PacketPending, StatePacketPending},
	}
	for _, tt := range tests {
		// every transition is reachable from every raw state
		for raw := 0; raw < 8; raw++ {
			s := TaskState(raw)
			tt.move(&s)
			if s != tt.want {
				t.Fatalf("%s from %03b: got %s, want %s", tt.name, raw, s, tt.want)
			}
		}
	}
}

func TestHoldingIsOrthogonal(t *testing.T) {
	s := StateWaitingWithPacket
	s.SetTaskHolding(true)
	if !s.IsTaskWaiting() || !s.IsPacketPending() {
		t.Fatalf("SetTaskHolding touched other flags: %s", s)
	}
	if s.IsRunnable() {
		t.Fatalf("holding task reported runnable")
	}
	if s.IsWaitingWithPacket() {
		t.Fatalf("holding task reported waiting with packet")
	}

	s.SetTaskHolding(false)
	if s != StateWaitingWithPacket {
		t.Fatalf("got %s after release, want %s", s, StateWaitingWithPacket)
	}
}

func TestStateString(t *testing.T) {
	if got := StateRunning.String(); got != "running" {
		t.Fatalf("String() = %q, want running", got)
	}
	if got := (StateWaitingWithPacket | StateTaskHolding).String(); got != "pending|waiting|holding" {
		t.Fatalf("String() = %q", got)
	}
}
