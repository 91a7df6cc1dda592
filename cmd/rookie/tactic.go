package main

import (
	"context"
	"flag"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/rookie-chess/rookie/internal/config"
	"github.com/rookie-chess/rookie/internal/tactic"
	"github.com/rookie-chess/rookie/pkg/common"
	"github.com/rookie-chess/rookie/pkg/engine"
)

func tacticHandler(cfg config.Config, logger zerolog.Logger, args []string) error {
	var (
		filepath    = "tests/mates.epd"
		moveTime    = 3 * time.Second
		depth       = 0
		concurrency = runtime.NumCPU()
	)
	var flagset = flag.NewFlagSet("tactic", flag.ContinueOnError)
	flagset.StringVar(&filepath, "testpath", filepath, "EPD file with bm operations")
	flagset.DurationVar(&moveTime, "movetime", moveTime, "time per position")
	flagset.IntVar(&depth, "depth", depth, "fixed depth instead of movetime")
	flagset.IntVar(&concurrency, "concurrency", concurrency, "positions solved in parallel")
	if err := flagset.Parse(args); err != nil {
		return err
	}

	logger.Info().
		Str("filepath", filepath).
		Dur("moveTime", moveTime).
		Int("depth", depth).
		Int("concurrency", concurrency).
		Msg("solveTactic started")

	var tests, err = tactic.LoadEpd(filepath, logger)
	if err != nil {
		return err
	}

	var limits = common.LimitsType{MoveTime: int(moveTime.Milliseconds())}
	if depth > 0 {
		limits = common.LimitsType{Depth: depth}
	}
	var options = cfg.Engine.Options()
	options.OwnBook = false
	var newSearcher = func() tactic.Searcher {
		return engine.NewEngine(options, nil)
	}
	result, err := tactic.SolveTactic(context.Background(), tests, newSearcher, limits, concurrency, logger)
	if err != nil {
		return err
	}
	for _, item := range result.Failed {
		logger.Warn().Str("id", item.ID).Str("epd", item.Content).Msg("not solved")
	}
	return nil
}
