package models

import "testing"

func TestGameClientTypesSetIfAbsentFirstWriterWins(t *testing.T) {
	g := NewGameClientTypes()
	got := g.SetIfAbsent("c1", ClientBoard)
	if got != ClientBoard {
		t.Fatalf("first SetIfAbsent = %s, want board", got)
	}
	got = g.SetIfAbsent("c1", ClientPlayer)
	if got != ClientBoard {
		t.Fatalf("second SetIfAbsent = %s, want board (first writer wins)", got)
	}

	typ, ok := g.Get("c1")
	if !ok || typ != ClientBoard {
		t.Fatalf("Get(c1) = (%s, %v), want (board, true)", typ, ok)
	}
	if _, ok := g.Get("unknown"); ok {
		t.Fatalf("Get(unknown) ok = true, want false")
	}
}

func TestGameClientTypesBoardClientID(t *testing.T) {
	g := NewGameClientTypes()
	if _, ok := g.BoardClientID(); ok {
		t.Fatalf("BoardClientID() on empty map ok = true, want false")
	}
	g.SetIfAbsent("player-1", ClientPlayer)
	g.SetIfAbsent("board-1", ClientBoard)

	id, ok := g.BoardClientID()
	if !ok || id != "board-1" {
		t.Fatalf("BoardClientID() = (%s, %v), want (board-1, true)", id, ok)
	}
}

func TestGameClientTypesAllIsACopy(t *testing.T) {
	g := NewGameClientTypes()
	g.SetIfAbsent("c1", ClientPlayer)
	snap := g.All()
	snap["c2"] = ClientBoard

	if _, ok := g.Get("c2"); ok {
		t.Fatalf("mutating All()'s result leaked into the live map")
	}
}
