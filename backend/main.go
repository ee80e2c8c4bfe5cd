package main

import (
	"coursework/backend/config"
	"coursework/backend/routes"
	"coursework/backend/store"
	"coursework/backend/utils"
	"log"
	"os"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Format:       cfg.LogFormat,
		Output:       os.Stdout,
		EnableColors: cfg.LogFormat != "json",
	})

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	app := routes.NewApp(cfg, st, logger)

	// Start server
	logger.Printf("Listening on :%s (db driver %s)", cfg.ServerPort, cfg.DBDriver)
	logger.Fatal(app.Listen(":" + cfg.ServerPort))
}
