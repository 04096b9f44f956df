package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/xcop32221/xhs-auto-search/internal/config"
	"github.com/xcop32221/xhs-auto-search/internal/monitor"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadFromEnv()

	m, err := monitor.New(cfg)
	if err != nil {
		log.Fatalf("Failed to set up monitor: %v", err)
	}

	if !m.Run() {
		os.Exit(1)
	}
}
