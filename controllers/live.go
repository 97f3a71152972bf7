package controllers

import "github.com/gin-gonic/gin"

// Live handles GET /{game_id}/live: upgrades to a websocket and streams
// board/pouch/scorecard updates (spec §6.7, supplemental to the polling
// endpoints above). No auth: the feed is read-only.
func (a *App) Live(c *gin.Context) {
	if _, ok := a.gameFromParam(c); !ok {
		return
	}
	a.Hub.Subscribe(c, c.Param("game_id"))
}
