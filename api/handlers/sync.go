package handlers

import (
	"errors"
	"net/http"

	"dotatracker/api/filters"
	"dotatracker/pkg/config"
	"dotatracker/syncer/repositories"
	"dotatracker/syncer/services/sync"

	"github.com/gin-gonic/gin"
)

const syncLogPageSize = 20

// SyncHandler is the handler for the sync trigger surface.
type SyncHandler struct {
	SyncService       *sync.Service
	SyncLogRepository repositories.SyncLogRepository
}

// SyncHandlerDependencies carries the handler collaborators.
type SyncHandlerDependencies struct {
	SyncService       *sync.Service
	SyncLogRepository repositories.SyncLogRepository
}

// NewSyncHandler creates a new instance of the sync handler.
func NewSyncHandler(deps *SyncHandlerDependencies) *SyncHandler {
	return &SyncHandler{
		SyncService:       deps.SyncService,
		SyncLogRepository: deps.SyncLogRepository,
	}
}

// Helper to resolve the league id, falling back to the configured one.
func (h *SyncHandler) bindLeagueId(c *gin.Context) (int, error) {
	var qp filters.SyncFilter
	if err := c.ShouldBindQuery(&qp); err != nil {
		return 0, err
	}

	if qp.LeagueId == 0 {
		qp.LeagueId = config.Sync.LeagueId
	}

	return qp.LeagueId, nil
}

// StartSync accepts a background sync run for the league.
func (h *SyncHandler) StartSync(c *gin.Context) {
	leagueId, err := h.bindLeagueId(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.SyncService.StartSync(leagueId); err != nil {
		if errors.Is(err, sync.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{
				"error":  "a sync is already running",
				"status": h.SyncService.GetStatus(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"result": gin.H{"leagueId": leagueId, "started": true}})
}

// GetStatus returns the current run snapshot.
func (h *SyncHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"result": h.SyncService.GetStatus()})
}

// ForceResync deletes the league data and resyncs it from scratch.
func (h *SyncHandler) ForceResync(c *gin.Context) {
	leagueId, err := h.bindLeagueId(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.SyncService.ForceResync(c.Request.Context(), leagueId)
	if err != nil {
		if errors.Is(err, sync.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{
				"error":  "a sync is already running",
				"status": h.SyncService.GetStatus(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetSyncLogs returns the most recent run outcomes.
func (h *SyncHandler) GetSyncLogs(c *gin.Context) {
	entries, err := h.SyncLogRepository.GetLatest(syncLogPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": entries})
}
