package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"songrank/internal/logging"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		// Logging is not configured yet; write the startup failure plainly.
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	handler, err := newHTTPHandler(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup failed")
	}

	log.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
