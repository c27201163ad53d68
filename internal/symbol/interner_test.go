package symbol

import "testing"

func TestInternRoundTrip(t *testing.T) {
	in := New()
	names := []string{"BTC/USDT", "ETH/BTC", "ETH/USDT"}
	for _, name := range names {
		id := in.Intern(name)
		if got := in.NameOf(id); got != name {
			t.Fatalf("NameOf(Intern(%q)) = %q, want %q", name, got, name)
		}
	}
}

func TestInternIsIdempotent(t *testing.T) {
	in := New()
	first := in.Intern("BTC/USDT")
	second := in.Intern("BTC/USDT")
	if first != second {
		t.Fatalf("Intern returned different ids for the same name: %d != %d", first, second)
	}
	if in.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", in.Len())
	}
}

func TestIdsAreDenseAndZeroIndexed(t *testing.T) {
	in := New()
	if id := in.Intern("first"); id != 0 {
		t.Fatalf("first interned id = %d, want 0", id)
	}
	if id := in.Intern("second"); id != 1 {
		t.Fatalf("second interned id = %d, want 1", id)
	}
}

func TestNameOfUnknownIDReturnsSentinel(t *testing.T) {
	in := New()
	if got := in.NameOf(999); got != UnknownName {
		t.Fatalf("NameOf(unregistered) = %q, want %q", got, UnknownName)
	}
}

func TestLookupDoesNotRegister(t *testing.T) {
	in := New()
	if _, ok := in.Lookup("never-interned"); ok {
		t.Fatalf("Lookup reported found for a name never interned")
	}
	if in.Len() != 0 {
		t.Fatalf("Lookup must not register, Len() = %d, want 0", in.Len())
	}
}
