package order

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateCreated, StateConfirmed, true},
		{StateCreated, StateDelivered, false},
		{StateCreated, StatePickedUp, false},
		{StateConfirmed, StatePickedUp, true},
		{StateConfirmed, StateCreated, false},
		{StatePickedUp, StateAtOriginShop, true},
		{StateAtOriginShop, StateAtProcessingShop, true},
		{StateAtOriginShop, StateSubcontracted, true},
		{StateAtOriginShop, StateWashing, false},
		{StateSubcontracted, StateAtProcessingShop, true},
		{StateSubcontracted, StateWashing, false},
		{StateAtProcessingShop, StateWashing, true},
		{StateWashing, StateDrying, true},
		{StateDrying, StatePressing, true},
		{StatePressing, StateQC, true},
		{StateQC, StatePacked, true},
		{StatePacked, StateOutForDelivery, true},
		{StateOutForDelivery, StateDelivered, true},
		{StateDelivered, StateClosed, true},
		{StateDelivered, StateCreated, false},
		{StateClosed, StateCreated, false},
		{StateClosed, StateClosed, false},
		{StateWashing, StateWashing, false},
		{"", StateConfirmed, false},
		{StateCreated, "", false},
		{"bogus", StateConfirmed, false},
	}
	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNext_CoversWholeSequence(t *testing.T) {
	// Walking Next from created must reach closed without revisiting a state.
	seen := map[State]bool{StateCreated: true}
	s := StateCreated

	for !s.Terminal() {
		n, ok := Next(s)
		if !ok {
			t.Fatalf("sequence dead-ends at %q", s)
		}

		if seen[n] {
			t.Fatalf("sequence revisits %q", n)
		}

		seen[n] = true
		s = n
	}

	if s != StateClosed {
		t.Fatalf("sequence ends at %q, want %q", s, StateClosed)
	}
}

func TestState_Valid(t *testing.T) {
	for _, s := range []State{
		StateCreated, StateConfirmed, StatePickedUp, StateAtOriginShop,
		StateSubcontracted, StateAtProcessingShop, StateWashing, StateDrying,
		StatePressing, StateQC, StatePacked, StateOutForDelivery,
		StateDelivered, StateClosed,
	} {
		if !s.Valid() {
			t.Errorf("State(%q).Valid() = false, want true", s)
		}
	}

	for _, s := range []State{"", "shipped", "CREATED"} {
		if s.Valid() {
			t.Errorf("State(%q).Valid() = true, want false", s)
		}
	}
}
