package handlers

import (
	"net/http"

	"dotatracker/api/filters"
	"dotatracker/api/services"

	"github.com/gin-gonic/gin"
)

// PlayerHandler is the handler for the player endpoints.
type PlayerHandler struct {
	PlayerService *services.PlayerService
}

// PlayerHandlerDependencies carries the handler collaborators.
type PlayerHandlerDependencies struct {
	PlayerService *services.PlayerService
}

// NewPlayerHandler creates a new instance of the player handler.
func NewPlayerHandler(deps *PlayerHandlerDependencies) *PlayerHandler {
	return &PlayerHandler{
		PlayerService: deps.PlayerService,
	}
}

// GetPlayers handles requests for the paginated player listing.
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	var qp filters.PlayerListFilter
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	players, total, err := h.PlayerService.GetPlayers(&qp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"players": players,
		"total":   total,
		"page":    qp.Page,
		"limit":   qp.Limit,
	}})
}
