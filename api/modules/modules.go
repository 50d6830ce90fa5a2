package modules

import (
	"log"

	"dotatracker/api/cache"
	"dotatracker/api/handlers"
	apiservices "dotatracker/api/services"
	"dotatracker/pkg/logger"
	"dotatracker/pkg/redis"
	"dotatracker/syncer/data/opendota"
	"dotatracker/syncer/data/steam"
	"dotatracker/syncer/repositories"
	"dotatracker/syncer/services/achievements"
	"dotatracker/syncer/services/players"
	"dotatracker/syncer/services/sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module holds the router and every initialized handler.
type Module struct {
	Router *gin.Engine

	MatchHandler  *handlers.MatchHandler
	PlayerHandler *handlers.PlayerHandler
	SyncHandler   *handlers.SyncHandler

	SyncService *sync.Service
}

// NewModule wires the repositories, services and handlers on top of the
// shared database connection.
func NewModule(db *gorm.DB) (*Module, error) {
	router := gin.Default()

	steamClient := steam.NewClient()
	openDotaClient := opendota.NewClient()

	// Write side repositories, owned by the syncer.
	matchRepo := repositories.NewMatchRepository(db)
	playerRepo := repositories.NewPlayerRepository(db)
	achievementRepo := repositories.NewAchievementRepository(db)
	syncLogRepo := repositories.NewSyncLogRepository(db)

	playerService := players.NewService(playerRepo, steamClient)
	achievementService := achievements.NewService(achievementRepo)

	runLogger, err := logger.CreateLogger()
	if err != nil {
		// The pipeline works without a run log file, only the audit trail is lost.
		log.Printf("Couldn't create the run logger: %v", err)
	}

	syncService := sync.NewService(&sync.ServiceDeps{
		Lister:             steamClient,
		Detailer:           openDotaClient,
		Teams:              steamClient,
		MatchRepository:    matchRepo,
		PlayerRepository:   playerRepo,
		SyncLogRepository:  syncLogRepo,
		PlayerService:      playerService,
		AchievementService: achievementService,
		RunLogger:          runLogger,
	})

	// Read side services backed by the cache.
	matchCache := cache.NewMatchCache(redis.GetClient())
	matchService := apiservices.NewMatchService(&apiservices.MatchServiceDeps{
		DB:         db,
		MatchCache: matchCache,
	})
	playerListService := apiservices.NewPlayerService(&apiservices.PlayerServiceDeps{
		DB:       db,
		Enricher: playerService,
	})

	matchHandler := handlers.NewMatchHandler(&handlers.MatchHandlerDependencies{
		MatchService: matchService,
		SyncService:  syncService,
	})
	playerHandler := handlers.NewPlayerHandler(&handlers.PlayerHandlerDependencies{
		PlayerService: playerListService,
	})
	syncHandler := handlers.NewSyncHandler(&handlers.SyncHandlerDependencies{
		SyncService:       syncService,
		SyncLogRepository: syncLogRepo,
	})

	return &Module{
		Router:        router,
		MatchHandler:  matchHandler,
		PlayerHandler: playerHandler,
		SyncHandler:   syncHandler,
		SyncService:   syncService,
	}, nil
}
