// Package game implements a single tombola game's state machine: the
// board, pouch, scorecard and card registry, all guarded by one mutex per
// game (spec §5 — never acquire a second Game lock while holding another).
package game

import (
	"sync"
	"time"

	"github.com/bellapacxx/tombola-server/models"
	"github.com/bellapacxx/tombola-server/services"
	"github.com/bellapacxx/tombola-server/utils/apperr"
)

// Status is a Game's derived lifecycle state.
type Status string

const (
	StatusNew    Status = "new"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Game is one tombola instance: its own pouch, board, scorecard and card
// registry, plus the per-game client roles and membership. The zero value
// is not usable; construct with New.
type Game struct {
	mu sync.Mutex

	ID            string
	CreatedAt     time.Time
	EndedAt       *time.Time
	OwnerClientID string

	board       *models.Board
	pouch       *models.Pouch
	scorecard   *models.ScoreCard
	cards       *models.CardRegistry
	clientTypes *models.GameClientTypes
	members     map[string]bool
}

// New returns a freshly created game, owned by ownerClientID, with a full
// pouch and no draws yet.
func New(id, ownerClientID string, createdAt time.Time) *Game {
	return &Game{
		ID:            id,
		CreatedAt:     createdAt,
		OwnerClientID: ownerClientID,
		board:         models.NewBoard(),
		pouch:         models.NewPouch(),
		scorecard:     models.NewScoreCard(),
		cards:         models.NewCardRegistry(),
		clientTypes:   models.NewGameClientTypes(),
		members:       make(map[string]bool),
	}
}

// Status reports the game's derived lifecycle state.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusLocked()
}

func (g *Game) statusLocked() Status {
	if g.scorecard.PublishedScore == models.NumbersPerCard {
		return StatusClosed
	}
	if g.board.Len() > 0 {
		return StatusActive
	}
	return StatusNew
}

// Started reports whether any number has been drawn yet — the join
// deadline spec §4.4 enforces.
func (g *Game) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Len() > 0
}

// Draw pops one number from the pouch, appends it to the board, and
// re-evaluates the scorecard. Returns the drawn number and whether this
// draw is the one that first published BINGO (15).
func (g *Game) Draw() (number int, justClosed bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	wasClosed := g.scorecard.PublishedScore == models.NumbersPerCard
	n, err := g.pouch.Draw()
	if err != nil {
		return 0, false, apperr.Wrap(apperr.Conflict, "pouch is empty", err)
	}
	g.board.Append(n)

	// The synthetic board client's pseudo-card (if present) participates
	// in scoring exactly like any player card — no special case needed.
	services.Evaluate(g.board, g.cards.All(), g.scorecard)

	nowClosed := g.scorecard.PublishedScore == models.NumbersPerCard
	if nowClosed && !wasClosed {
		now := time.Now()
		g.EndedAt = &now
	}
	return n, nowClosed && !wasClosed, nil
}

// IsMember reports whether clientID has joined this game.
func (g *Game) IsMember(clientID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.members[clientID]
}

// ClientRole returns clientID's per-game role, if it has joined.
func (g *Game) ClientRole(clientID string) (models.ClientType, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clientTypes.Get(clientID)
}

// JoinAsBoard registers clientID as this game's board client. Fails with
// Conflict if the game already has a different board client, and with
// Conflict if the game has already started (checked by the caller via
// Started, but re-checked here under lock to avoid a TOCTOU race).
func (g *Game) JoinAsBoard(clientID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board.Len() > 0 {
		return apperr.New(apperr.Conflict, "game has already started")
	}

	if existing, ok := g.clientTypes.BoardClientID(); ok && existing != clientID {
		return apperr.New(apperr.Conflict, "game already has a board client")
	}

	g.clientTypes.SetIfAbsent(clientID, models.ClientBoard)
	g.members[clientID] = true

	if !g.cards.Has(models.ReservedID) {
		cards, _, err := services.GenerateGroup(func(id string) bool { return g.cards.Has(id) })
		if err != nil {
			return err
		}
		g.cards.Assign(models.ReservedID, clientID, cards[0])
	}
	return nil
}

// JoinAsPlayer registers clientID as a player, joining the game's member
// set and — if this is the client's first time in this game and
// requestedCards is positive — dealing it min(requestedCards, 6) freshly
// generated cards. Returns the card ids now assigned to clientID (which
// may predate this call, if the client had already joined).
func (g *Game) JoinAsPlayer(clientID string, requestedCards int) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board.Len() > 0 {
		return nil, apperr.New(apperr.Conflict, "game has already started")
	}

	g.clientTypes.SetIfAbsent(clientID, models.ClientPlayer)
	g.members[clientID] = true

	if existing := g.cards.CardsOf(clientID); len(existing) > 0 {
		return existing, nil
	}
	if requestedCards <= 0 {
		return nil, nil
	}

	count := requestedCards
	if count > models.CardsPerGroup {
		count = models.CardsPerGroup
	}

	cards, ids, err := services.GenerateGroup(func(id string) bool { return g.cards.Has(id) })
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		g.cards.Assign(ids[i], clientID, cards[i])
	}
	return g.cards.CardsOf(clientID), nil
}

// GenerateAdditionalCards deals a fresh group of cards to clientID,
// failing with Conflict if the client already holds any cards in this
// game (spec: "/generatecards ... only if none yet").
func (g *Game) GenerateAdditionalCards(clientID string, requestedCards int) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing := g.cards.CardsOf(clientID); len(existing) > 0 {
		return nil, apperr.New(apperr.Conflict, "client already has assigned cards")
	}

	count := requestedCards
	if count <= 0 {
		count = 1
	}
	if count > models.CardsPerGroup {
		count = models.CardsPerGroup
	}

	cards, ids, err := services.GenerateGroup(func(id string) bool { return g.cards.Has(id) })
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		g.cards.Assign(ids[i], clientID, cards[i])
	}
	return g.cards.CardsOf(clientID), nil
}

// CardsOf returns clientID's assigned card ids in this game.
func (g *Game) CardsOf(clientID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cards.CardsOf(clientID)
}

// Card returns a copy of cardID's assignment, if it exists in this game.
func (g *Game) Card(cardID string) (*models.CardAssignment, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.cards.Assignments[cardID]
	if !ok {
		return nil, false
	}
	cp := *a
	return &cp, true
}

// Snapshot is a consistent, point-in-time copy of everything needed to
// persist a game (spec §6.4's dump document) or render its status.
type Snapshot struct {
	ID             string
	CreatedAt      time.Time
	EndedAt        *time.Time
	OwnerClientID  string
	Status         Status
	Board          *models.Board
	Pouch          *models.Pouch
	ScoreCard      *models.ScoreCard
	Cards          *models.CardRegistry
	ClientTypes    map[string]models.ClientType
	RegisteredIDs  []string
}

// Snapshot captures the game's full state under its lock, so a concurrent
// Draw can't race with a dump or status read.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]string, 0, len(g.members))
	for id := range g.members {
		ids = append(ids, id)
	}

	return Snapshot{
		ID:            g.ID,
		CreatedAt:     g.CreatedAt,
		EndedAt:       g.EndedAt,
		OwnerClientID: g.OwnerClientID,
		Status:        g.statusLocked(),
		Board:         g.board.Clone(),
		Pouch:         g.pouch.Clone(),
		ScoreCard:     g.scorecard.Clone(),
		Cards:         g.cards.Clone(),
		ClientTypes:   g.clientTypes.All(),
		RegisteredIDs: ids,
	}
}
