package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tombola-server/audit"
	"github.com/bellapacxx/tombola-server/game"
	"github.com/bellapacxx/tombola-server/persistence"
	"github.com/bellapacxx/tombola-server/utils/apperr"
	"github.com/bellapacxx/tombola-server/utils/logger"
)

// NewGame handles POST /newgame: the caller becomes the new game's board
// owner. Before responding, every currently Active game is flushed to
// disk (spec §4.5 "Persistence triggers").
func (a *App) NewGame(c *gin.Context) {
	clientID, ok := a.requireClientID(c)
	if !ok {
		return
	}

	g, err := a.Games.Create(clientID)
	if err != nil {
		fail(c, clientID, err)
		return
	}
	if err := g.JoinAsBoard(clientID); err != nil {
		fail(c, clientID, err)
		return
	}

	for _, other := range a.Games.List() {
		snap := other.Snapshot()
		if snap.Status != game.StatusActive {
			continue
		}
		path, err := persistence.DumpGame(snap)
		if err != nil {
			logger.Errorf("newgame: failed to dump active game %s: %v", snap.ID, err)
			continue
		}
		a.Audit.RecordDump(audit.DumpEvent{
			GameID:         snap.ID,
			PublishedScore: snap.ScoreCard.PublishedScore,
			DumpedAt:       time.Now(),
			FilePath:       path,
		})
	}

	snap := g.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"game_id":    snap.ID,
		"created_at": snap.CreatedAt,
		"owner":      clientID,
	})
}

// ListGames handles GET /gameslist.
func (a *App) ListGames(c *gin.Context) {
	games := a.Games.List()
	out := make([]gin.H, 0, len(games))
	for _, g := range games {
		snap := g.Snapshot()
		out = append(out, gin.H{
			"game_id":            snap.ID,
			"status":             snap.Status,
			"created_at":         snap.CreatedAt,
			"client_count":       len(snap.RegisteredIDs),
			"extracted_numbers":  snap.Board.Len(),
			"owner_client_id":    snap.OwnerClientID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"games": out})
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

// Register handles POST /register: global name→id registration.
func (a *App) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "", apperr.New(apperr.BadRequest, "invalid request body"))
		return
	}
	if req.Name == "" {
		fail(c, "", apperr.New(apperr.BadRequest, "name is required"))
		return
	}

	info, err := a.Clients.Register(req.Name, req.Email)
	if err != nil {
		fail(c, "", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ClientInfoByName handles GET /clientinfo?name=….
func (a *App) ClientInfoByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		fail(c, "", apperr.New(apperr.BadRequest, "name query parameter is required"))
		return
	}
	info, err := a.Clients.ByName(name)
	if err != nil {
		fail(c, "", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ClientInfoByID handles GET /clientinfo/{client_id}.
func (a *App) ClientInfoByID(c *gin.Context) {
	info, err := a.Clients.Get(c.Param("client_id"))
	if err != nil {
		fail(c, "", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

