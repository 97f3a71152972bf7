package models

import (
	"encoding/json"
	"testing"
)

func numPtr(n int) *int { return &n }

func sampleCard() Card {
	var c Card
	c[0][0] = numPtr(1)
	c[0][4] = numPtr(45)
	c[1][8] = numPtr(90)
	return c
}

func TestColumnRange(t *testing.T) {
	cases := []struct {
		col    int
		lo, hi int
	}{
		{0, 1, 9},
		{1, 10, 19},
		{4, 40, 49},
		{8, 80, 90},
	}
	for _, tc := range cases {
		lo, hi := ColumnRange(tc.col)
		if lo != tc.lo || hi != tc.hi {
			t.Fatalf("ColumnRange(%d) = (%d, %d), want (%d, %d)", tc.col, lo, hi, tc.lo, tc.hi)
		}
	}
}

func TestCardNumbersRowMajor(t *testing.T) {
	c := sampleCard()
	got := c.Numbers()
	want := []int{1, 45, 90}
	if len(got) != len(want) {
		t.Fatalf("Numbers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Numbers() = %v, want %v", got, want)
		}
	}
}

func TestCardRowFiltersEmptyCells(t *testing.T) {
	c := sampleCard()
	if got := c.Row(0); len(got) != 2 || got[0] != 1 || got[1] != 45 {
		t.Fatalf("Row(0) = %v, want [1 45]", got)
	}
	if got := c.Row(2); len(got) != 0 {
		t.Fatalf("Row(2) = %v, want empty", got)
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	c := sampleCard()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out Card
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := out.Numbers(); len(got) != 3 || got[0] != 1 || got[1] != 45 || got[2] != 90 {
		t.Fatalf("round-tripped Numbers() = %v, want [1 45 90]", got)
	}
}

func TestCardRegistryAssignAndLookup(t *testing.T) {
	r := NewCardRegistry()
	c1 := sampleCard()
	r.Assign("AAAA", "client-1", c1)
	r.Assign("BBBB", "client-1", sampleCard())
	r.Assign("CCCC", "client-2", sampleCard())

	if !r.Has("AAAA") {
		t.Fatalf("Has(AAAA) = false, want true")
	}
	if r.Has("ZZZZ") {
		t.Fatalf("Has(ZZZZ) = true, want false")
	}

	got := r.CardsOf("client-1")
	if len(got) != 2 || got[0] != "AAAA" || got[1] != "BBBB" {
		t.Fatalf("CardsOf(client-1) = %v, want [AAAA BBBB] in assignment order", got)
	}
	if len(r.CardsOf("client-3")) != 0 {
		t.Fatalf("CardsOf(unknown) should be empty")
	}
	if len(r.All()) != 3 {
		t.Fatalf("All() len = %d, want 3", len(r.All()))
	}
}

func TestCardRegistryCloneIsIndependent(t *testing.T) {
	r := NewCardRegistry()
	r.Assign("AAAA", "client-1", sampleCard())
	clone := r.Clone()

	r.Assign("BBBB", "client-1", sampleCard())

	if len(clone.CardsOf("client-1")) != 1 {
		t.Fatalf("clone.CardsOf(client-1) = %v, want 1 card (mutation leaked)", clone.CardsOf("client-1"))
	}
	if clone.Has("BBBB") {
		t.Fatalf("clone has a card assigned to the original after cloning")
	}

	clone.Assignments["AAAA"].ClientID = "mutated"
	if r.Assignments["AAAA"].ClientID != "client-1" {
		t.Fatalf("mutating a cloned assignment leaked back into the original")
	}
}
