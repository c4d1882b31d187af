package main

import (
	"net/http"
	"os"

	"ownerapi/config/database"
	"ownerapi/pkg/logger"
	"ownerapi/router"
	"ownerapi/socket"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file before the logger so LOG_LEVEL applies.
	envErr := godotenv.Load()

	logger.Init()
	defer logger.Log.Sync()

	if envErr != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	db := database.Connect()
	defer db.Close()

	hub := socket.NewHub()
	go hub.Run()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logger.Sugar.Infof("Owner API listening on %s", addr)
	if err := http.ListenAndServe(addr, router.Setup(db, hub)); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
