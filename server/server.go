package main

import (
	"errors"
	"log"
	"os"
	"time"

	"dotatracker/api/modules"
	"dotatracker/api/routes"
	"dotatracker/pkg/config"
	"dotatracker/pkg/database"
	"dotatracker/syncer/services/sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	config.LoadEnv()
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewConnection()
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	if err := database.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(db)
	if err != nil {
		log.Fatalf("Couldn't initialize the module: %v", err)
	}

	// Schedule the daily league sync.
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(
			runScheduledSync,
			module.SyncService,
		),
		gocron.WithName("league-match-sync"),
		gocron.WithTags("sync"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create sync job: %v", err)
	}

	scheduler.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.MatchHandler,
		module.PlayerHandler,
		module.SyncHandler,
	)

	// Start the server.
	router.Run(":8080")
}

// runScheduledSync starts the daily run, skipping when a manual one is in flight.
func runScheduledSync(syncService *sync.Service) {
	if err := syncService.StartSync(config.Sync.LeagueId); err != nil {
		if errors.Is(err, sync.ErrAlreadyRunning) {
			log.Println("Skipping the scheduled sync, a run is already in flight.")
			return
		}
		log.Printf("Couldn't start the scheduled sync: %v", err)
	}
}
