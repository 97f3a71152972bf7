// Package routes wires the gin engine to the controllers package.
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tombola-server/controllers"
)

// Setup registers every endpoint in spec §6.1, plus the supplemental
// websocket feed of §6.7, on r.
func Setup(r *gin.Engine, app *controllers.App) {
	r.Use(controllers.RequestID())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Client-ID", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/newgame", app.NewGame)
	r.GET("/gameslist", app.ListGames)
	r.POST("/register", app.Register)
	r.GET("/clientinfo", app.ClientInfoByName)
	r.GET("/clientinfo/:client_id", app.ClientInfoByID)

	g := r.Group("/:game_id")
	g.POST("/join", app.Join)
	g.POST("/generatecards", app.GenerateCards)
	g.GET("/listassignedcards", app.ListAssignedCards)
	g.GET("/getassignedcard/:card_id", app.GetAssignedCard)
	g.GET("/board", app.Board)
	g.GET("/pouch", app.Pouch)
	g.GET("/status", app.Status)
	g.GET("/players", app.Players)
	g.GET("/scoremap", app.ScoreMap)
	g.POST("/extract", app.Extract)
	g.POST("/dumpgame", app.DumpGame)
	g.GET("/live", app.Live)
}
