// Package config reads the engine settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rookie-chess/rookie/pkg/book"
	"github.com/rookie-chess/rookie/pkg/engine"
)

type Config struct {
	LogLevel string `yaml:"log_level"`
	Book     Book   `yaml:"book"`
	Engine   Engine `yaml:"engine"`
}

type Book struct {
	Path     string `yaml:"path"`
	Optional bool   `yaml:"optional"`
}

type Engine struct {
	RandomSeed     int  `yaml:"random_seed"`
	MaxDepth       int  `yaml:"max_depth"`
	MoveTimeMs     int  `yaml:"move_time_ms,omitempty"`
	FixedDepth     int  `yaml:"fixed_depth,omitempty"`
	MovesToGo      int  `yaml:"moves_to_go"`
	MinThinkTimeMs int  `yaml:"min_think_time_ms"`
	MoveOverheadMs int  `yaml:"move_overhead_ms"`
	OwnBook        bool `yaml:"own_book"`
}

func Default() Config {
	var options = engine.NewOptions()
	return Config{
		LogLevel: zerolog.LevelInfoValue,
		Book: Book{
			Path:     book.DefaultPath,
			Optional: true,
		},
		Engine: Engine{
			RandomSeed:     options.RandomSeed,
			MaxDepth:       options.MaxDepth,
			MovesToGo:      options.MovesToGo,
			MinThinkTimeMs: int(options.MinThinkTime.Milliseconds()),
			MoveOverheadMs: int(options.MoveOverhead.Milliseconds()),
			OwnBook:        options.OwnBook,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	var data, err = os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	var cfg Config
	cfg, err = Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %v: %w", path, err)
	}
	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	var cfg = Default()
	var decoder = yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	var e = &cfg.Engine
	if e.MaxDepth < 0 || e.FixedDepth < 0 || e.MovesToGo < 0 ||
		e.MoveTimeMs < 0 || e.MinThinkTimeMs < 0 || e.MoveOverheadMs < 0 {
		return errors.New("engine settings must not be negative")
	}
	return nil
}

func (cfg *Config) Level() zerolog.Level {
	var level, err = zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (e *Engine) Options() engine.Options {
	return engine.Options{
		RandomSeed:   e.RandomSeed,
		MaxDepth:     e.MaxDepth,
		MoveTime:     time.Duration(e.MoveTimeMs) * time.Millisecond,
		FixedDepth:   e.FixedDepth,
		MovesToGo:    e.MovesToGo,
		MinThinkTime: time.Duration(e.MinThinkTimeMs) * time.Millisecond,
		MoveOverhead: time.Duration(e.MoveOverheadMs) * time.Millisecond,
		OwnBook:      e.OwnBook,
	}
}

func (cfg *Config) Write(w io.Writer) error {
	var encoder = yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}
