// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

// Command standings prints one season's standings to the terminal.
//
//	standings -season 2023
//	standings -season 2021 -progression -drivers "Max Verstappen,Lewis Hamilton"
//
// It loads configuration the same way as the server, so RESULTS_* and
// SEASON_* environment variables apply. Logs go to stderr; tables to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tomtom215/paddock/internal/cache"
	"github.com/tomtom215/paddock/internal/config"
	"github.com/tomtom215/paddock/internal/logging"
	"github.com/tomtom215/paddock/internal/models"
	"github.com/tomtom215/paddock/internal/results"
	"github.com/tomtom215/paddock/internal/validation"
)

func main() {
	season := flag.Int("season", 0, "season year (required)")
	progression := flag.Bool("progression", false, "also print the cumulative points table")
	drivers := flag.String("drivers", "", "comma-separated drivers for -progression (default: top 10)")
	style := flag.String("style", "rounded", "table style: rounded, light, ascii, markdown")
	flag.Parse()

	if *season == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if verr := validation.ValidateStruct(&seasonFlag{Season: *season}); verr != nil {
		fmt.Fprintln(os.Stderr, verr.Error())
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    "console",
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := results.NewPipeline(cfg)
	seasons := cache.NewSeasonCache(pipeline.Load)

	table, err := loadSeason(ctx, seasons.Get, *season)
	if err != nil {
		stop()
		logging.Warn().Int("season", *season).Msg("Interrupted, abandoning fetch")
		os.Exit(130)
	}
	if table.IsEmpty() {
		logging.Error().Int("season", *season).Msg("No results available")
		os.Exit(1)
	}

	r := newRenderer(os.Stdout, *style)
	r.standings(table)
	if *progression {
		r.progression(table, splitDrivers(*drivers))
	}
}

// loadSeason waits for get unless ctx ends first. The season cache detaches
// its fetch from the caller, so this is what lets an interrupt stop the CLI.
func loadSeason(ctx context.Context, get func(context.Context, int) *models.SeasonTable, season int) (*models.SeasonTable, error) {
	loaded := make(chan *models.SeasonTable, 1)
	go func() { loaded <- get(ctx, season) }()

	select {
	case table := <-loaded:
		return table, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type seasonFlag struct {
	Season int `validate:"season"`
}

func splitDrivers(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
