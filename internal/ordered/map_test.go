package ordered

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetReplacesInPlace(t *testing.T) {
	m := New[string, int](3)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	if existed := m.Set("b", 20); !existed {
		t.Fatalf("expected Set to report existing key")
	}
	if existed := m.Set("d", 4); existed {
		t.Fatalf("expected Set to report new key")
	}

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, m.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("b"); v != 20 {
		t.Fatalf("expected b=20, got %d", v)
	}
	if got := m.Index("d"); got != 3 {
		t.Fatalf("expected d at index 3, got %d", got)
	}
	if got := m.Index("zz"); got != -1 {
		t.Fatalf("expected -1 for missing key, got %d", got)
	}
}

func TestZeroValueUsable(t *testing.T) {
	var m Map[string, string]
	m.Set("x", "y")
	if m.Len() != 1 {
		t.Fatalf("expected len 1, got %d", m.Len())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New[string, []int](1)
	m.Set("a", []int{1, 2})

	c := m.Clone(func(v []int) []int { return append([]int(nil), v...) })
	c.Set("b", nil)
	v, _ := c.Get("a")
	v[0] = 99

	if m.Len() != 1 {
		t.Fatalf("clone mutation leaked into source keys")
	}
	orig, _ := m.Get("a")
	if orig[0] != 1 {
		t.Fatalf("clone mutation leaked into source values: %v", orig)
	}
}

func TestAllStopsEarly(t *testing.T) {
	m := New[int, int](3)
	for i := range 3 {
		m.Set(i, i)
	}
	seen := 0
	for range m.All() {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("expected iteration to stop after first entry, saw %d", seen)
	}
}
