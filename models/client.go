package models

import "time"

// ClientType tags a client's role within a single game.
type ClientType string

const (
	// ClientPlayer is a normal card-holding participant.
	ClientPlayer ClientType = "player"
	// ClientBoard is the game's board owner: creates the game, draws
	// numbers, and dumps state.
	ClientBoard ClientType = "board"
)

// ReservedClientName is the display name of the virtual board client.
const ReservedClientName = "__BOARD__"

// ClientInfo is a globally-registered client identity. Email is
// internal-only and must never be serialized to API responses or dumps.
type ClientInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
	Email        string    `json:"-"`
}

// GameClientTypes is a per-game map of client id to role. A client may be
// "board" in one game and "player" in another.
type GameClientTypes struct {
	types map[string]ClientType
}

// NewGameClientTypes returns an empty per-game role map.
func NewGameClientTypes() *GameClientTypes {
	return &GameClientTypes{types: make(map[string]ClientType)}
}

// SetIfAbsent records clientID's type if it has none yet (first-writer
// wins). Returns the type now on record for clientID.
func (g *GameClientTypes) SetIfAbsent(clientID string, t ClientType) ClientType {
	if existing, ok := g.types[clientID]; ok {
		return existing
	}
	g.types[clientID] = t
	return t
}

// Get returns clientID's role in this game, if any.
func (g *GameClientTypes) Get(clientID string) (ClientType, bool) {
	t, ok := g.types[clientID]
	return t, ok
}

// BoardClientID returns the client id currently registered as "board" in
// this game, if any.
func (g *GameClientTypes) BoardClientID() (string, bool) {
	for id, t := range g.types {
		if t == ClientBoard {
			return id, true
		}
	}
	return "", false
}

// All returns a snapshot of the per-game role map.
func (g *GameClientTypes) All() map[string]ClientType {
	out := make(map[string]ClientType, len(g.types))
	for k, v := range g.types {
		out[k] = v
	}
	return out
}
