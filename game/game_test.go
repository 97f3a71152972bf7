package game

import (
	"testing"
	"time"

	"github.com/bellapacxx/tombola-server/models"
	"github.com/bellapacxx/tombola-server/utils/apperr"
)

func TestNewGameStartsInNewStatus(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if got := g.Status(); got != StatusNew {
		t.Fatalf("Status() = %s, want new", got)
	}
	if g.Started() {
		t.Fatalf("Started() = true for a freshly created game")
	}
}

func TestJoinAsBoardMintsReservedCard(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("JoinAsBoard: %v", err)
	}
	if !g.IsMember("owner1") {
		t.Fatalf("IsMember(owner1) = false after JoinAsBoard")
	}
	role, ok := g.ClientRole("owner1")
	if !ok || role != models.ClientBoard {
		t.Fatalf("ClientRole(owner1) = (%s, %v), want (board, true)", role, ok)
	}
	if _, ok := g.Card(models.ReservedID); !ok {
		t.Fatalf("reserved pseudo-card was not minted on JoinAsBoard")
	}

	// Re-joining the same client as board is a no-op, not an error.
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("re-JoinAsBoard by the same client: %v", err)
	}
}

func TestJoinAsBoardRejectsSecondBoardClient(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("JoinAsBoard(owner1): %v", err)
	}
	err := g.JoinAsBoard("intruder")
	if err == nil {
		t.Fatalf("JoinAsBoard(intruder) succeeded, want Conflict")
	}
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.Conflict {
		t.Fatalf("JoinAsBoard(intruder) err = %v, want Conflict", err)
	}
}

func TestJoinAsPlayerDealsRequestedCards(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	ids, err := g.JoinAsPlayer("p1", 3)
	if err != nil {
		t.Fatalf("JoinAsPlayer: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("JoinAsPlayer(3) dealt %d cards, want 3", len(ids))
	}
	if got := g.CardsOf("p1"); len(got) != 3 {
		t.Fatalf("CardsOf(p1) = %v, want 3 cards", got)
	}

	// Re-joining returns the same cards rather than dealing new ones.
	again, err := g.JoinAsPlayer("p1", 5)
	if err != nil {
		t.Fatalf("second JoinAsPlayer: %v", err)
	}
	if len(again) != 3 {
		t.Fatalf("second JoinAsPlayer(5) returned %d cards, want the original 3", len(again))
	}
}

func TestJoinAsPlayerCapsAtCardsPerGroup(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	ids, err := g.JoinAsPlayer("p1", 99)
	if err != nil {
		t.Fatalf("JoinAsPlayer: %v", err)
	}
	if len(ids) != models.CardsPerGroup {
		t.Fatalf("JoinAsPlayer(99) dealt %d cards, want capped at %d", len(ids), models.CardsPerGroup)
	}
}

func TestJoinRejectedAfterGameStarted(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("JoinAsBoard: %v", err)
	}
	if _, _, err := g.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if err := g.JoinAsBoard("late-board"); err == nil {
		t.Fatalf("JoinAsBoard after start succeeded, want Conflict")
	}
	if _, err := g.JoinAsPlayer("late-player", 1); err == nil {
		t.Fatalf("JoinAsPlayer after start succeeded, want Conflict")
	}
}

func TestGenerateAdditionalCardsRejectsIfAlreadyDealt(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if _, err := g.JoinAsPlayer("p1", 1); err != nil {
		t.Fatalf("JoinAsPlayer: %v", err)
	}
	_, err := g.GenerateAdditionalCards("p1", 2)
	if err == nil {
		t.Fatalf("GenerateAdditionalCards succeeded for a client that already holds cards, want Conflict")
	}
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.Conflict {
		t.Fatalf("GenerateAdditionalCards err = %v, want Conflict", err)
	}
}

func TestGenerateAdditionalCardsDealsForFreshClient(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	ids, err := g.GenerateAdditionalCards("p1", 2)
	if err != nil {
		t.Fatalf("GenerateAdditionalCards: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("GenerateAdditionalCards(2) dealt %d cards, want 2", len(ids))
	}
}

func TestDrawAdvancesBoardAndPouch(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("JoinAsBoard: %v", err)
	}

	n, justClosed, err := g.Draw()
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if justClosed {
		t.Fatalf("first draw reported justClosed = true")
	}
	if n < 1 || n > 90 {
		t.Fatalf("Draw() returned out-of-range number %d", n)
	}
	if got := g.Status(); got != StatusActive {
		t.Fatalf("Status() after first draw = %s, want active", got)
	}

	snap := g.Snapshot()
	if snap.Board.Len() != 1 {
		t.Fatalf("snapshot board len = %d, want 1", snap.Board.Len())
	}
	if snap.Pouch.Len() != 89 {
		t.Fatalf("snapshot pouch len = %d, want 89", snap.Pouch.Len())
	}
}

func TestDrawExhaustsPouchWithError(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("JoinAsBoard: %v", err)
	}
	for i := 0; i < 90; i++ {
		if _, _, err := g.Draw(); err != nil {
			t.Fatalf("Draw #%d: %v", i, err)
		}
	}
	if _, _, err := g.Draw(); err == nil {
		t.Fatalf("Draw on an exhausted pouch succeeded, want Conflict")
	} else if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.Conflict {
		t.Fatalf("Draw on exhausted pouch err = %v, want Conflict", err)
	}
}

func TestDrawingEveryNumberClosesTheGame(t *testing.T) {
	// Once all 90 numbers are drawn, every assigned card is necessarily
	// complete (BINGO), so the game must close by the last draw.
	g := New("game_deadbeef", "owner1", time.Now())
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("JoinAsBoard: %v", err)
	}
	if _, err := g.JoinAsPlayer("p1", 2); err != nil {
		t.Fatalf("JoinAsPlayer: %v", err)
	}

	sawClose := false
	for i := 0; i < 90; i++ {
		_, justClosed, err := g.Draw()
		if err != nil {
			t.Fatalf("Draw #%d: %v", i, err)
		}
		if justClosed {
			sawClose = true
		}
	}
	if !sawClose {
		t.Fatalf("no draw reported justClosed = true across all 90 draws")
	}
	if got := g.Status(); got != StatusClosed {
		t.Fatalf("Status() after exhausting the pouch = %s, want closed", got)
	}

	snap := g.Snapshot()
	if snap.EndedAt == nil {
		t.Fatalf("EndedAt is nil after the game closed")
	}
	if snap.ScoreCard.PublishedScore != models.NumbersPerCard {
		t.Fatalf("PublishedScore = %d, want %d", snap.ScoreCard.PublishedScore, models.NumbersPerCard)
	}
}

func TestSnapshotIsSafeAfterConcurrentDraw(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if err := g.JoinAsBoard("owner1"); err != nil {
		t.Fatalf("JoinAsBoard: %v", err)
	}
	if _, _, err := g.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	snap := g.Snapshot()
	if _, _, err := g.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if snap.Board.Len() != 1 {
		t.Fatalf("snapshot taken before second draw now reports len %d, want 1 (snapshot aliased live state)", snap.Board.Len())
	}
}

func TestCardReturnsIndependentCopy(t *testing.T) {
	g := New("game_deadbeef", "owner1", time.Now())
	if _, err := g.JoinAsPlayer("p1", 1); err != nil {
		t.Fatalf("JoinAsPlayer: %v", err)
	}
	ids := g.CardsOf("p1")
	a, ok := g.Card(ids[0])
	if !ok {
		t.Fatalf("Card(%s) not found", ids[0])
	}
	a.ClientID = "mutated"

	again, ok := g.Card(ids[0])
	if !ok {
		t.Fatalf("Card(%s) not found on second lookup", ids[0])
	}
	if again.ClientID != "p1" {
		t.Fatalf("mutating Card()'s returned copy leaked into the registry: ClientID = %s", again.ClientID)
	}
}
