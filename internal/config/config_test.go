package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rookie-chess/rookie/pkg/engine"
)

func TestDefaultsMatchEngine(t *testing.T) {
	var cfg = Default()
	assert.Equal(t, engine.NewOptions(), cfg.Engine.Options())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, "books/rookie.bin", cfg.Book.Path)
	assert.True(t, cfg.Book.Optional)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	var cfg, err = Decode(strings.NewReader(`
log_level: debug
book:
  path: /tmp/other.bin
engine:
  random_seed: 9
  move_time_ms: 1500
  fixed_depth: 4
`))
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "/tmp/other.bin", cfg.Book.Path)
	assert.True(t, cfg.Book.Optional, "unset keys keep defaults")

	var options = cfg.Engine.Options()
	assert.Equal(t, 9, options.RandomSeed)
	assert.Equal(t, 1500*time.Millisecond, options.MoveTime)
	assert.Equal(t, 4, options.FixedDepth)
	assert.Equal(t, 30, options.MovesToGo)
	assert.Equal(t, 50*time.Millisecond, options.MinThinkTime)
}

func TestDecodeErrors(t *testing.T) {
	var inputs = []string{
		"log_level: loud\n",
		"engine:\n  moves_to_go: -1\n",
		"engine:\n  unknown_key: 1\n",
		"book: [1, 2]\n",
	}
	for _, input := range inputs {
		var _, err = Decode(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestEmptyInput(t *testing.T) {
	var cfg, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	var cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	var path = filepath.Join(t.TempDir(), "rookie.yaml")
	var want = Default()
	want.LogLevel = "warn"
	want.Engine.FixedDepth = 6
	var buf bytes.Buffer
	require.NoError(t, want.Write(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, cfg)

	require.NoError(t, os.WriteFile(path, []byte("log_level: [\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, path)
}
