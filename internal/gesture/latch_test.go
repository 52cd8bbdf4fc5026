package gesture

import "testing"

func TestLatch_FiresOncePerRun(t *testing.T) {
	inputs := []bool{false, true, true, true, false, false, true, false, true, true}
	want := []Edge{EdgeNone, EdgeRise, EdgeNone, EdgeNone, EdgeFall, EdgeNone, EdgeRise, EdgeFall, EdgeRise, EdgeNone}

	var l Latch
	rises, falls := 0, 0
	for i, in := range inputs {
		got := l.Update(in)
		if got != want[i] {
			t.Errorf("step %d: Update(%v) = %s, want %s", i, in, got, want[i])
		}
		switch got {
		case EdgeRise:
			rises++
		case EdgeFall:
			falls++
		}
	}

	if rises != 3 {
		t.Errorf("rises = %d, want 3 (one per contiguous true run)", rises)
	}
	if falls != 2 {
		t.Errorf("falls = %d, want 2", falls)
	}
	if !l.Active() {
		t.Error("latch should still be active after a trailing true run")
	}
}

func TestLatch_Reset(t *testing.T) {
	var l Latch
	l.Update(true)
	l.Reset()

	if l.Active() {
		t.Error("Active() should be false after Reset")
	}
	if got := l.Update(false); got != EdgeNone {
		t.Errorf("Update(false) after Reset = %s, want none", got)
	}
	if got := l.Update(true); got != EdgeRise {
		t.Errorf("Update(true) after Reset = %s, want rise", got)
	}
}

func TestEdge_String(t *testing.T) {
	tests := map[Edge]string{
		EdgeNone: "none",
		EdgeRise: "rise",
		EdgeFall: "fall",
	}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("Edge(%d).String() = %q, want %q", e, got, want)
		}
	}
}
