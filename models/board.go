package models

import "encoding/json"

// Board is the ordered history of numbers drawn in a game, plus a
// membership set for O(1) lookups. The zero value is an empty board.
type Board struct {
	numbers []int
	drawn   map[int]bool
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{drawn: make(map[int]bool, 90)}
}

// Append records n as the next drawn number. n must not already be present.
func (b *Board) Append(n int) {
	if b.drawn == nil {
		b.drawn = make(map[int]bool, 90)
	}
	b.numbers = append(b.numbers, n)
	b.drawn[n] = true
}

// Contains reports whether n has been drawn.
func (b *Board) Contains(n int) bool {
	return b.drawn[n]
}

// Numbers returns the drawn numbers in extraction order.
func (b *Board) Numbers() []int {
	out := make([]int, len(b.numbers))
	copy(out, b.numbers)
	return out
}

// Len returns how many numbers have been drawn.
func (b *Board) Len() int {
	return len(b.numbers)
}

// Clone returns a deep copy, safe to read after the originating Game lock
// is released.
func (b *Board) Clone() *Board {
	cp := &Board{
		numbers: make([]int, len(b.numbers)),
		drawn:   make(map[int]bool, len(b.drawn)),
	}
	copy(cp.numbers, b.numbers)
	for n, v := range b.drawn {
		cp.drawn[n] = v
	}
	return cp
}

// MarshalJSON renders the board as { "numbers": [...], "marked_numbers": [...] }.
func (b *Board) MarshalJSON() ([]byte, error) {
	type wire struct {
		Numbers       []int `json:"numbers"`
		MarkedNumbers []int `json:"marked_numbers"`
	}
	marked := make([]int, 0, len(b.drawn))
	for n := range b.drawn {
		marked = append(marked, n)
	}
	return json.Marshal(wire{Numbers: b.Numbers(), MarkedNumbers: marked})
}

// UnmarshalJSON restores a board from its wire shape. The extraction order
// is taken from "numbers"; "marked_numbers" is ignored and the membership
// set is rebuilt from "numbers".
func (b *Board) UnmarshalJSON(data []byte) error {
	type wire struct {
		Numbers       []int `json:"numbers"`
		MarkedNumbers []int `json:"marked_numbers"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.numbers = w.Numbers
	b.drawn = make(map[int]bool, len(w.Numbers))
	for _, n := range w.Numbers {
		b.drawn[n] = true
	}
	return nil
}
