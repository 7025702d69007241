package scheduler

import "testing"

func TestCandidatesCountInfinite(t *testing.T) {
	s := New(PolicyFIFO, InfiniteBound(), 0)
	if got := s.CandidatesCount(7); got != 7 {
		t.Fatalf("want 7 got %d", got)
	}
}

func TestCandidatesCountFinite(t *testing.T) {
	s := New(PolicyFIFO, FiniteBound(2), 0)
	if got := s.CandidatesCount(10); got != 3 {
		t.Fatalf("min(k+1,pending): want 3 got %d", got)
	}
	if got := s.CandidatesCount(2); got != 2 {
		t.Fatalf("bound larger than pending: want 2 got %d", got)
	}
}

func TestPickNextFIFO(t *testing.T) {
	s := New(PolicyFIFO, InfiniteBound(), 0)
	d := s.PickNext([]uint32{5, 6, 7})
	if d.PickIndex != 0 || d.CmdID != 5 {
		t.Fatalf("FIFO must pick index 0, got %+v", d)
	}
}

// S4: with two pending and bound=1, adversarial picks the larger cmd_id.
func TestPickNextAdversarial(t *testing.T) {
	s := New(PolicyAdversarial, FiniteBound(1), 0)
	d := s.PickNext([]uint32{5, 6})
	if d.PickIndex != 1 || d.CmdID != 6 {
		t.Fatalf("adversarial must pick the largest legal id, got %+v", d)
	}
}

func TestPickNextRandomRespectsBound(t *testing.T) {
	s := New(PolicyRandom, FiniteBound(1), 123)
	pending := []uint32{10, 11, 12, 13}
	for i := 0; i < 50; i++ {
		d := s.PickNext(pending)
		if d.PickIndex > 1 {
			t.Fatalf("random pick must respect bound window, got index %d", d.PickIndex)
		}
	}
}

func TestBoundKStringAndParse(t *testing.T) {
	if InfiniteBound().String() != "inf" {
		t.Fatal("infinite bound must print inf")
	}
	b, err := ParseBoundK("inf")
	if err != nil || !b.Infinite() {
		t.Fatalf("ParseBoundK(inf) failed: %v %+v", err, b)
	}
	b, err = ParseBoundK("3")
	if err != nil || b.Infinite() || b.Value() != 3 {
		t.Fatalf("ParseBoundK(3) failed: %v %+v", err, b)
	}
	if _, err := ParseBoundK("nope"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]Policy{
		"FIFO": PolicyFIFO, "RANDOM": PolicyRandom,
		"ADVERSARIAL": PolicyAdversarial, "BATCHED": PolicyBatched,
	}
	for s, want := range cases {
		got, err := ParsePolicy(s)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q): got %v err %v", s, got, err)
		}
	}
	if _, err := ParsePolicy("nope"); err == nil {
		t.Fatal("expected parse error")
	}
}
