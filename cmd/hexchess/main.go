package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexboardgames/hexchess/config"
	"github.com/hexboardgames/hexchess/shell"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	sc, err := shell.NewController(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("shell-init")
	}
	if err := sc.Warmup(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("tablebase-warmup")
	}
	sc.Loop()
}
