package sparse

import "testing"

func TestSparseSetBasic(t *testing.T) {
	s := NewSparseSet(16)

	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	if s.Contains(3) {
		t.Fatal("empty set should not contain 3")
	}

	s.Insert(3)
	s.Insert(7)
	s.Insert(3) // duplicate, no-op

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	if !s.Contains(3) || !s.Contains(7) {
		t.Fatal("expected 3 and 7 in set")
	}
	if s.Contains(4) {
		t.Fatal("4 was never inserted")
	}
}

func TestSparseSetTryInsert(t *testing.T) {
	s := NewSparseSet(8)

	if !s.TryInsert(2) {
		t.Fatal("first TryInsert(2) should report newly inserted")
	}
	if s.TryInsert(2) {
		t.Fatal("second TryInsert(2) should report already present")
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", s.Size())
	}
}

func TestSparseSetRemove(t *testing.T) {
	s := NewSparseSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)

	s.Remove(2)
	if s.Contains(2) {
		t.Fatal("2 should have been removed")
	}
	if !s.Contains(1) || !s.Contains(3) {
		t.Fatal("removing 2 should not disturb 1 or 3")
	}
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}

	s.Remove(99) // not present, no-op
	if s.Size() != 2 {
		t.Fatal("removing an absent value should be a no-op")
	}
}

func TestSparseSetClear(t *testing.T) {
	s := NewSparseSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Clear()

	if !s.IsEmpty() {
		t.Fatal("set should be empty after Clear")
	}
	if s.Contains(1) {
		t.Fatal("Clear should drop membership")
	}
}

func TestSparseSetValuesAndIter(t *testing.T) {
	s := NewSparseSet(8)
	want := map[uint32]bool{1: true, 4: true, 6: true}
	for v := range want {
		s.Insert(v)
	}

	got := map[uint32]bool{}
	for _, v := range s.Values() {
		got[v] = true
	}
	if len(got) != len(want) {
		t.Fatalf("Values() returned %d entries, want %d", len(got), len(want))
	}
	for v := range want {
		if !got[v] {
			t.Fatalf("Values() missing %d", v)
		}
	}

	iterSeen := map[uint32]bool{}
	s.Iter(func(v uint32) { iterSeen[v] = true })
	if len(iterSeen) != len(want) {
		t.Fatalf("Iter saw %d entries, want %d", len(iterSeen), len(want))
	}
}

func TestSparseSetOutOfRangeContains(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(100) {
		t.Fatal("Contains should report false for values beyond capacity")
	}
}
