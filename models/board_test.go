package models

import (
	"encoding/json"
	"testing"
)

func TestBoardAppendAndContains(t *testing.T) {
	b := NewBoard()
	if b.Len() != 0 {
		t.Fatalf("new board len = %d, want 0", b.Len())
	}
	b.Append(42)
	b.Append(7)
	if b.Len() != 2 {
		t.Fatalf("len after two appends = %d, want 2", b.Len())
	}
	if !b.Contains(42) || !b.Contains(7) {
		t.Fatalf("board does not contain appended numbers")
	}
	if b.Contains(90) {
		t.Fatalf("board reports containing a number never appended")
	}
	if got := b.Numbers(); len(got) != 2 || got[0] != 42 || got[1] != 7 {
		t.Fatalf("Numbers() = %v, want extraction order [42 7]", got)
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	b.Append(1)
	clone := b.Clone()
	b.Append(2)

	if clone.Len() != 1 {
		t.Fatalf("clone.Len() = %d, want 1 (mutation of original leaked into clone)", clone.Len())
	}
	if clone.Contains(2) {
		t.Fatalf("clone contains a number appended to the original after cloning")
	}
}

func TestBoardJSONRoundTrip(t *testing.T) {
	b := NewBoard()
	b.Append(3)
	b.Append(90)
	b.Append(1)

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out Board
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := out.Numbers(); len(got) != 3 || got[0] != 3 || got[1] != 90 || got[2] != 1 {
		t.Fatalf("round-tripped Numbers() = %v, want [3 90 1]", got)
	}
	for _, n := range []int{3, 90, 1} {
		if !out.Contains(n) {
			t.Fatalf("round-tripped board missing %d", n)
		}
	}
}
