package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/Shaurya01836/Flux-Wallet/internal/config"
	"github.com/Shaurya01836/Flux-Wallet/internal/database"
	"github.com/Shaurya01836/Flux-Wallet/internal/router"
	"github.com/Shaurya01836/Flux-Wallet/internal/util"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := newLogger(cfg.Log.Level)

	// field encryption key is process-wide and must be valid at startup
	cipher, err := util.NewFieldCipher(cfg.Security.EncryptionKey)
	if err != nil {
		log.Fatalf("init field cipher: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db, cipher, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Info("server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
