package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tombola-server/audit"
	"github.com/bellapacxx/tombola-server/game"
	"github.com/bellapacxx/tombola-server/models"
	"github.com/bellapacxx/tombola-server/persistence"
	"github.com/bellapacxx/tombola-server/utils/apperr"
)

// gameFromParam looks up the {game_id} path parameter under the registry's
// short lock, per the per-request discipline in spec §4.5.
func (a *App) gameFromParam(c *gin.Context) (*game.Game, bool) {
	g, err := a.Games.Get(c.Param("game_id"))
	if err != nil {
		fail(c, "", err)
		return nil, false
	}
	return g, true
}

type joinRequest struct {
	Name       string `json:"name" binding:"required"`
	ClientType string `json:"client_type"`
	NoCard     int    `json:"nocard"`
	Email      string `json:"email"`
}

// Join handles POST /{game_id}/join.
func (a *App) Join(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}

	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		fail(c, "", apperr.New(apperr.BadRequest, "invalid request body"))
		return
	}

	if g.Started() {
		fail(c, "", apperr.New(apperr.Conflict, "game has already started"))
		return
	}

	info, err := a.Clients.Register(req.Name, req.Email)
	if err != nil {
		fail(c, "", err)
		return
	}

	asBoard := req.ClientType == string(models.ClientBoard)
	requested := req.NoCard
	if requested <= 0 {
		requested = 1
	}

	var cardIDs []string
	if asBoard {
		if err := g.JoinAsBoard(info.ID); err != nil {
			fail(c, info.ID, err)
			return
		}
		cardIDs = []string{models.ReservedID}
	} else {
		cardIDs, err = g.JoinAsPlayer(info.ID, requested)
		if err != nil {
			fail(c, info.ID, err)
			return
		}
	}

	a.Hub.Broadcast(g, nil)
	c.JSON(http.StatusOK, gin.H{"client_id": info.ID, "card_ids": cardIDs})
}

type generateCardsRequest struct {
	NoCard int `json:"nocard"`
}

// GenerateCards handles POST /{game_id}/generatecards.
func (a *App) GenerateCards(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	clientID, ok := a.requireClientID(c)
	if !ok {
		return
	}
	if !g.IsMember(clientID) {
		fail(c, clientID, apperr.New(apperr.Forbidden, "not joined to this game"))
		return
	}
	if role, _ := g.ClientRole(clientID); role != models.ClientPlayer {
		fail(c, clientID, apperr.New(apperr.Forbidden, "only players may generate cards"))
		return
	}

	var req generateCardsRequest
	_ = c.ShouldBindJSON(&req)
	if req.NoCard <= 0 {
		req.NoCard = 1
	}

	ids, err := g.GenerateAdditionalCards(clientID, req.NoCard)
	if err != nil {
		fail(c, clientID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card_ids": ids})
}

// ListAssignedCards handles GET /{game_id}/listassignedcards.
func (a *App) ListAssignedCards(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	clientID, ok := a.requireClientID(c)
	if !ok {
		return
	}
	if !g.IsMember(clientID) {
		fail(c, clientID, apperr.New(apperr.Forbidden, "not joined to this game"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"card_ids": g.CardsOf(clientID)})
}

// GetAssignedCard handles GET /{game_id}/getassignedcard/{card_id}.
func (a *App) GetAssignedCard(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	clientID, ok := a.requireClientID(c)
	if !ok {
		return
	}
	if !g.IsMember(clientID) {
		fail(c, clientID, apperr.New(apperr.Forbidden, "not joined to this game"))
		return
	}

	cardID := c.Param("card_id")
	assignment, found := g.Card(cardID)
	if !found {
		fail(c, clientID, apperr.New(apperr.NotFound, "no such card"))
		return
	}
	if assignment.ClientID != clientID {
		fail(c, clientID, apperr.New(apperr.Forbidden, "card not owned by caller"))
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// Board handles GET /{game_id}/board.
func (a *App) Board(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	snap := g.Snapshot()
	c.JSON(http.StatusOK, gin.H{"board": snap.Board, "members": snap.RegisteredIDs})
}

// Pouch handles GET /{game_id}/pouch.
func (a *App) Pouch(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.Snapshot().Pouch)
}

// Status handles GET /{game_id}/status.
func (a *App) Status(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	snap := g.Snapshot()

	players := 0
	for _, t := range snap.ClientTypes {
		if t == models.ClientPlayer {
			players++
		}
	}

	body := gin.H{
		"game_id":    snap.ID,
		"status":     snap.Status,
		"owner":      snap.OwnerClientID,
		"players":    players,
		"cards":      len(snap.Cards.Assignments),
		"scorecard":  snap.ScoreCard.PublishedScore,
	}
	if snap.Status == game.StatusClosed {
		body["closed_at"] = snap.EndedAt
	}
	c.JSON(http.StatusOK, body)
}

// Players handles GET /{game_id}/players.
func (a *App) Players(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	clientID, ok := a.requireClientID(c)
	if !ok {
		return
	}
	if !g.IsMember(clientID) {
		fail(c, clientID, apperr.New(apperr.Forbidden, "not joined to this game"))
		return
	}

	snap := g.Snapshot()
	out := make([]gin.H, 0, len(snap.ClientTypes))
	for id, t := range snap.ClientTypes {
		out = append(out, gin.H{
			"client_id":  id,
			"type":       t,
			"card_count": len(snap.Cards.CardsOf(id)),
		})
	}
	c.JSON(http.StatusOK, gin.H{"players": out})
}

// ScoreMap handles GET /{game_id}/scoremap.
func (a *App) ScoreMap(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.Snapshot().ScoreCard)
}

// Extract handles POST /{game_id}/extract: draws one number.
func (a *App) Extract(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	clientID, ok := a.requireClientID(c)
	if !ok {
		return
	}
	role, joined := g.ClientRole(clientID)
	if !joined || role != models.ClientBoard {
		fail(c, clientID, apperr.New(apperr.Forbidden, "only this game's board client may extract"))
		return
	}

	n, justClosed, err := g.Draw()
	if err != nil {
		fail(c, clientID, err)
		return
	}

	if justClosed {
		snap := g.Snapshot()
		path, err := persistence.DumpGame(snap)
		if err != nil {
			fail(c, clientID, apperr.Wrap(apperr.Internal, "failed to persist finished game", err))
			return
		}
		a.Audit.RecordDump(audit.DumpEvent{
			GameID:         snap.ID,
			PublishedScore: snap.ScoreCard.PublishedScore,
			DumpedAt:       time.Now(),
			FilePath:       path,
		})
	}

	a.Hub.Broadcast(g, &n)
	c.JSON(http.StatusOK, gin.H{"number": n, "scorecard": g.Snapshot().ScoreCard})
}

// DumpGame handles POST /{game_id}/dumpgame: an on-demand dump.
func (a *App) DumpGame(c *gin.Context) {
	g, ok := a.gameFromParam(c)
	if !ok {
		return
	}
	clientID, ok := a.requireClientID(c)
	if !ok {
		return
	}
	role, joined := g.ClientRole(clientID)
	if !joined || role != models.ClientBoard {
		fail(c, clientID, apperr.New(apperr.Forbidden, "only this game's board client may dump"))
		return
	}

	snap := g.Snapshot()
	path, err := persistence.DumpGame(snap)
	if err != nil {
		fail(c, clientID, err)
		return
	}
	a.Audit.RecordDump(audit.DumpEvent{
		GameID:         snap.ID,
		PublishedScore: snap.ScoreCard.PublishedScore,
		DumpedAt:       time.Now(),
		FilePath:       path,
	})
	c.JSON(http.StatusOK, gin.H{"path": path})
}
