package routes

import (
	"dotatracker/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.MatchHandler:
			r.registerMatchHandler(handler)
		case *handlers.PlayerHandler:
			r.registerPlayerHandler(handler)
		case *handlers.SyncHandler:
			r.registerSyncHandler(handler)
		}
	}
}

// Register the match handler.
func (r *Router) registerMatchHandler(handler *handlers.MatchHandler) {
	matches := r.api.Group("/matches")
	{
		matches.GET("", handler.GetMatches)
		matches.GET("/:matchId", handler.GetMatch)
		matches.GET("/:matchId/achievements", handler.GetMatchAchievements)
		matches.POST("/:matchId/refresh", handler.RefreshMatch)
		matches.POST("/:matchId/parse", handler.RequestParse)
	}
}

// Register the player handler.
func (r *Router) registerPlayerHandler(handler *handlers.PlayerHandler) {
	players := r.api.Group("/players")
	{
		players.GET("", handler.GetPlayers)
	}
}

// Register the sync handler.
func (r *Router) registerSyncHandler(handler *handlers.SyncHandler) {
	syncGroup := r.api.Group("/sync")
	{
		syncGroup.POST("/matches", handler.StartSync)
		syncGroup.POST("/matches/force", handler.ForceResync)
		syncGroup.GET("/status", handler.GetStatus)
		syncGroup.GET("/logs", handler.GetSyncLogs)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
