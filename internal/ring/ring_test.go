package ring

import "testing"

// S1: capacity 4, push 1-2-3, pop in order, pop on empty, then push
// 4-7 where the 4th push reports Full, drain, pop on empty again.
func TestSPSCFIFOScenario(t *testing.T) {
	b := New[int](4)

	for _, v := range []int{1, 2, 3} {
		if got := b.Push(v); got != Ok {
			t.Fatalf("push(%d) = %v, want Ok", v, got)
		}
	}
	for _, want := range []int{1, 2, 3} {
		got, ok := b.Pop()
		if !ok || got != want {
			t.Fatalf("pop() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := b.Pop(); ok {
		t.Fatalf("pop() on empty buffer returned ok=true")
	}

	results := make([]Result, 0, 4)
	for _, v := range []int{4, 5, 6, 7} {
		results = append(results, b.Push(v))
	}
	want := []Result{Ok, Ok, Ok, Full}
	for i, r := range results {
		if r != want[i] {
			t.Fatalf("push #%d = %v, want %v", i, r, want[i])
		}
	}

	for _, want := range []int{4, 5, 6} {
		got, ok := b.Pop()
		if !ok || got != want {
			t.Fatalf("pop() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := b.Pop(); ok {
		t.Fatalf("pop() on drained buffer returned ok=true")
	}
}

func TestPushPopFIFOOrder(t *testing.T) {
	b := New[string](8)
	in := []string{"a", "b", "c", "d", "e"}
	for _, v := range in {
		if b.Push(v) != Ok {
			t.Fatalf("push(%q) unexpectedly full", v)
		}
	}
	for _, want := range in {
		got, ok := b.Pop()
		if !ok || got != want {
			t.Fatalf("pop() = (%q, %v), want (%q, true)", got, ok, want)
		}
	}
}

func TestUsableCapacityIsOneLess(t *testing.T) {
	b := New[int](4)
	for i := 0; i < 3; i++ {
		if b.Push(i) != Ok {
			t.Fatalf("push(%d) should have succeeded", i)
		}
	}
	if b.Push(99) != Full {
		t.Fatalf("4th push into capacity-4 buffer should report Full")
	}
}

func TestNewPanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for capacity 3")
		}
	}()
	New[int](3)
}
