package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/rookie-chess/rookie/internal/config"
	"github.com/rookie-chess/rookie/pkg/book"
	"github.com/rookie-chess/rookie/pkg/engine"
	"github.com/rookie-chess/rookie/pkg/uci"
)

const (
	name   = "Rookie"
	author = "Rookie developers"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

type commandHandler func(cfg config.Config, logger zerolog.Logger, args []string) error

var commands = map[string]commandHandler{
	"uci":      uciHandler,
	"perft":    perftHandler,
	"tactic":   tacticHandler,
	"svg":      svgHandler,
	"makebook": makeBookHandler,
}

func main() {
	var (
		configPath = "rookie.yaml"
		logLevel   = ""
	)
	flag.StringVar(&configPath, "config", configPath, "path to YAML configuration")
	flag.StringVar(&logLevel, "loglevel", logLevel, "overrides log_level from the configuration")
	flag.Parse()

	var cfg, err = config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err = cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	var logger = newLogger(cfg)

	var commandName = "uci"
	var args = flag.Args()
	if len(args) > 0 {
		commandName, args = args[0], args[1:]
	}
	var handler, ok = commands[commandName]
	if !ok {
		logger.Error().Str("command", commandName).Msg("unknown command")
		os.Exit(2)
	}
	if err = handler(cfg, logger, args); err != nil {
		logger.Error().Err(err).Str("command", commandName).Msg("command failed")
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()
}

// loadBook returns nil without error when the book is optional and missing.
func loadBook(cfg config.Config, logger zerolog.Logger) (*book.Book, error) {
	var openingBook, err = book.Load(cfg.Book.Path)
	if err != nil {
		if cfg.Book.Optional && errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", cfg.Book.Path).Msg("opening book not found, playing without it")
			return nil, nil
		}
		return nil, err
	}
	logger.Info().
		Str("path", cfg.Book.Path).
		Int("records", len(openingBook.Entries())).
		Msg("opening book loaded")
	return openingBook, nil
}

func newEngine(cfg config.Config, openingBook *book.Book) *engine.Engine {
	// A nil *book.Book must not become a non-nil interface.
	if openingBook == nil {
		return engine.NewEngine(cfg.Engine.Options(), nil)
	}
	return engine.NewEngine(cfg.Engine.Options(), openingBook)
}

func uciHandler(cfg config.Config, logger zerolog.Logger, args []string) error {
	logger.Info().
		Str("version", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtime", runtime.Version()).
		Str("goos", runtime.GOOS).
		Str("goarch", runtime.GOARCH).
		Msg(name)

	var openingBook, err = loadBook(cfg, logger)
	if err != nil {
		return err
	}
	var eng = newEngine(cfg, openingBook)

	var protocol = uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "RandomSeed", Min: 0, Max: 1 << 30, Value: &eng.Options.RandomSeed},
			&uci.DurationOption{Name: "MoveTime", Max: time.Hour, Value: &eng.Options.MoveTime},
			&uci.BoolOption{Name: "OwnBook", Value: &eng.Options.OwnBook},
		},
		logger,
	)
	protocol.Run(os.Stdin, os.Stdout)
	return nil
}
