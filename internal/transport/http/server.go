package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/chessmate-server/internal/config"
	"github.com/vovakirdan/chessmate-server/internal/core"
)

// NewServer builds the HTTP server: the WebSocket gateway, a read-only REST
// view over presence and rooms, metrics and the static client bundle.
// metricsHandler may be nil.
func NewServer(hub *core.Hub, metricsHandler stdhttp.Handler, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(hub, metricsHandler, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter wires every route onto a gin engine.
func NewRouter(hub *core.Hub, metricsHandler stdhttp.Handler, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg, logger)))
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	apiHandlers := NewAPIHandlers(hub, logger)
	roomHandlers := NewRoomHandlers(hub, logger)

	api := router.Group("/api")
	{
		api.GET("/roster", apiHandlers.Roster)
		api.GET("/rooms/:id", roomHandlers.GetRoom)
	}

	if cfg.StaticDir != "" {
		router.NoRoute(staticHandler(cfg.StaticDir))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
