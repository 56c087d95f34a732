// Package main is the entry point for the review-runner CLI.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// A .env file is a convenience for local runs; CI sets real env vars.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if err := Execute(logger); err != nil {
		logger.Error().Err(err).Msg("review-runner failed")
		os.Exit(1)
	}
}
