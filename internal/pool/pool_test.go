package pool

import "testing"

func TestAcquireReleaseAddressStability(t *testing.T) {
	p := New[int](4)

	ref1, cell1, err := p.Acquire()
	if err != nil {
		t.Fatalf("acquire 1: %v", err)
	}
	*cell1 = 42

	ref2, cell2, err := p.Acquire()
	if err != nil {
		t.Fatalf("acquire 2: %v", err)
	}
	*cell2 = 43

	if p.Get(ref1) != cell1 || p.Get(ref2) != cell2 {
		t.Fatalf("Get did not return the same address as Acquire")
	}
	if *p.Get(ref1) != 42 || *p.Get(ref2) != 43 {
		t.Fatalf("cell contents diverged from what was written")
	}

	p.Release(ref1)
	ref3, cell3, err := p.Acquire()
	if err != nil {
		t.Fatalf("acquire 3: %v", err)
	}
	if ref3 != ref1 || cell3 != cell1 {
		t.Fatalf("LIFO reuse expected ref=%v cell=%p, got ref=%v cell=%p", ref1, cell1, ref3, cell3)
	}
}

func TestAcquireUpToCapacitySucceeds(t *testing.T) {
	const capacity = 8
	p := New[int](capacity)
	for i := 0; i < capacity; i++ {
		if _, _, err := p.Acquire(); err != nil {
			t.Fatalf("acquire #%d: %v", i, err)
		}
	}
	if p.Live() != capacity {
		t.Fatalf("live = %d, want %d", p.Live(), capacity)
	}
	if _, _, err := p.Acquire(); err != ErrExhausted {
		t.Fatalf("acquire past capacity = %v, want ErrExhausted", err)
	}
}

func TestReleaseMakesCellAvailableAgain(t *testing.T) {
	p := New[int](1)
	ref, _, err := p.Acquire()
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, _, err := p.Acquire(); err != ErrExhausted {
		t.Fatalf("second acquire on capacity-1 pool should be exhausted, got %v", err)
	}
	p.Release(ref)
	if _, _, err := p.Acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}
