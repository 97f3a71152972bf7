package models

import (
	"encoding/json"
	"errors"
	"math/rand"
)

// ErrPouchEmpty is returned by Draw when no numbers remain.
var ErrPouchEmpty = errors.New("pouch is empty")

// Pouch holds the numbers not yet drawn in a game.
type Pouch struct {
	remaining map[int]bool
}

// NewPouch returns a pouch filled with 1..90.
func NewPouch() *Pouch {
	p := &Pouch{remaining: make(map[int]bool, 90)}
	for n := 1; n <= 90; n++ {
		p.remaining[n] = true
	}
	return p
}

// Draw removes and returns a uniformly random remaining number.
func (p *Pouch) Draw() (int, error) {
	if len(p.remaining) == 0 {
		return 0, ErrPouchEmpty
	}
	nums := p.sortedRemaining()
	n := nums[rand.Intn(len(nums))]
	delete(p.remaining, n)
	return n, nil
}

// Len returns how many numbers remain.
func (p *Pouch) Len() int {
	return len(p.remaining)
}

// Clone returns a deep copy, safe to read after the originating Game lock
// is released.
func (p *Pouch) Clone() *Pouch {
	cp := &Pouch{remaining: make(map[int]bool, len(p.remaining))}
	for n, v := range p.remaining {
		cp.remaining[n] = v
	}
	return cp
}

// Numbers returns the remaining numbers, ascending.
func (p *Pouch) Numbers() []int {
	return p.sortedRemaining()
}

func (p *Pouch) sortedRemaining() []int {
	out := make([]int, 0, len(p.remaining))
	for n := 1; n <= 90; n++ {
		if p.remaining[n] {
			out = append(out, n)
		}
	}
	return out
}

// MarshalJSON renders the pouch as { "numbers": [...] }.
func (p *Pouch) MarshalJSON() ([]byte, error) {
	type wire struct {
		Numbers []int `json:"numbers"`
	}
	return json.Marshal(wire{Numbers: p.Numbers()})
}

// UnmarshalJSON restores a pouch from its wire shape.
func (p *Pouch) UnmarshalJSON(data []byte) error {
	type wire struct {
		Numbers []int `json:"numbers"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.remaining = make(map[int]bool, len(w.Numbers))
	for _, n := range w.Numbers {
		p.remaining[n] = true
	}
	return nil
}
