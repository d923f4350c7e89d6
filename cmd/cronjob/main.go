package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"rentalworks-backend/internal/config"
	"rentalworks-backend/internal/database"
	"rentalworks-backend/internal/jobs"
	"rentalworks-backend/internal/logger"
	"rentalworks-backend/internal/repository/postgres"
	"rentalworks-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-return-reminders', 'purge-stale-cart-lines', 'all-nightly')")
	flag.Parse()

	// Local development convenience; absence of the file is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalWorks Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories and Jobs
	store := postgres.NewStore(db)
	jobRunner := jobs.NewJobRunner(db, store, cfg)

	// Run-once mode for manual invocation and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "send-return-reminders":
			jobRunner.SendReturnReminders()
		case "purge-stale-cart-lines":
			jobRunner.PurgeStaleCartLines()
		case "all-nightly":
			jobRunner.RunAllNightlyJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		logger.Info("Job run complete", "job", *runOnce)
		return
	}

	// Start the scheduler and block until a shutdown signal arrives
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	logger.Info("Cronjob runner stopped")
}
