package main

import (
	"account-service/internal/server"
	"account-service/pkg/config"
	"account-service/pkg/database"
	"account-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting account service",
		zap.String("environment", cfg.Server.Env),
		zap.String("log_level", cfg.Log.Level))

	// Connect to the database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("Database connection established")

	// Create or update the schema before serving any traffic
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database schema initialized")

	e := server.New(cfg, db, log)

	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
