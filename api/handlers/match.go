package handlers

import (
	"errors"
	"net/http"

	"dotatracker/api/filters"
	"dotatracker/api/services"
	"dotatracker/syncer/services/sync"

	"github.com/gin-gonic/gin"
)

// MatchHandler is the handler for the match endpoints.
type MatchHandler struct {
	MatchService *services.MatchService
	SyncService  *sync.Service
}

// MatchHandlerDependencies carries the handler collaborators.
type MatchHandlerDependencies struct {
	MatchService *services.MatchService
	SyncService  *sync.Service
}

// NewMatchHandler creates a new instance of the match handler.
func NewMatchHandler(deps *MatchHandlerDependencies) *MatchHandler {
	return &MatchHandler{
		MatchService: deps.MatchService,
		SyncService:  deps.SyncService,
	}
}

// Helper to bind the default URI params for matches.
func (h *MatchHandler) bindURIParams(c *gin.Context) (*filters.MatchURIParams, error) {
	var mp filters.MatchURIParams
	if err := c.ShouldBindUri(&mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// GetMatches handles requests for the paginated match listing.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	var qp filters.MatchListFilter
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.MatchService.GetMatches(&qp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetMatch handles requests for a single match detail.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	mp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.MatchService.GetFullMatch(c.Request.Context(), mp.MatchId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetMatchAchievements handles requests for the fact set of a match.
func (h *MatchHandler) GetMatchAchievements(c *gin.Context) {
	mp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.MatchService.GetMatchAchievements(mp.MatchId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// RefreshMatch handles requests for re-fetching a single known match.
func (h *MatchHandler) RefreshMatch(c *gin.Context) {
	mp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.SyncService.RefreshMatch(c.Request.Context(), mp.MatchId)
	if err != nil {
		switch {
		case errors.Is(err, sync.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		case errors.Is(err, sync.ErrMatchDataUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "no data available for the match"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// The cached detail is stale after an in place update.
	h.MatchService.InvalidateMatch(c.Request.Context(), mp.MatchId)

	c.JSON(http.StatusOK, gin.H{"result": match})
}

// RequestParse handles requests for upstream match enrichment.
func (h *MatchHandler) RequestParse(c *gin.Context) {
	mp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobId, err := h.SyncService.RequestParse(c.Request.Context(), mp.MatchId)
	if err != nil {
		switch {
		case errors.Is(err, sync.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		case errors.Is(err, sync.ErrParseAlreadyRequested):
			c.JSON(http.StatusConflict, gin.H{"error": "parse already requested"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"result": gin.H{"jobId": jobId}})
}
