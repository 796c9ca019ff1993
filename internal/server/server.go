package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asd22jp/takenokowar/internal/game"
	"github.com/asd22jp/takenokowar/internal/stats"
)

// StatsSource is the read side of the win store. A fetch failure, or a nil
// source, degrades to zero totals; nothing here depends on it working.
type StatsSource interface {
	Fetch() (stats.Totals, error)
}

func SetupRouter(b *game.Broadcaster, g *game.Game, store StatsSource) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("web/*.html")
	r.Static("/static", "./web/static")

	r.GET("/", indexHandler)
	r.GET("/healthz", healthHandler(g))

	r.GET("/ws", HandleWebsocket(b, g, store))

	return r
}

func indexHandler(c *gin.Context) {
	c.HTML(200, "index.html", nil)
}

func healthHandler(g *game.Game) gin.HandlerFunc {
	start := time.Now()
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"tick":    g.Tick(),
			"players": g.PlayerCount(),
			"pending": g.Pending(),
			"uptime":  time.Since(start).Round(time.Second).String(),
		})
	}
}
