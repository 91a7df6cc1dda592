package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFenRoundTrip(t *testing.T) {
	var fens = []string{
		"8/8/8/8/8/8/8/8 w - - 0 1",
		InitialPositionFen,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 3 17",
		"r3k2r/8/8/8/8/8/8/R3K2R w Qk - 12 40",
		"r3k2r/8/8/8/8/8/8/R3K2R b K - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w q - 99 120",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"rnbqkbnr/pppp1ppp/8/8/3Pp3/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		var b, err = NewBoardFromFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, b.FEN())
	}
}

func TestFenDefaultsClocks(t *testing.T) {
	var b, err = NewBoardFromFEN("4k3/8/8/8/8/8/8/4K3 w - -")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Rule50)
	assert.Equal(t, 1, b.FullMove)
	assert.Equal(t, SquareE1, b.KingSquare(true))
	assert.Equal(t, SquareE8, b.KingSquare(false))
}

func TestFenErrors(t *testing.T) {
	var fens = []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"9/8/8/8/8/8/8/8 w - - 0 1",
		"7/8/8/8/8/8/8/8 w - - 0 1",
		"ppppppppp/8/8/8/8/8/8/8 w - - 0 1",
		"x7/8/8/8/8/8/8/8 w - - 0 1",
		"8/8/8/8/8/8/8/8 x - - 0 1",
		"8/8/8/8/8/8/8/8 w KX - 0 1",
		"8/8/8/8/8/8/8/8 w KK - 0 1",
		"8/8/8/8/8/8/8/8 w - e4 0 1",
		"8/8/8/8/8/8/8/8 w - z9 0 1",
		"8/8/8/8/8/8/8/8 w - - -1 1",
		"8/8/8/8/8/8/8/8 w - - 0 zero",
		"k6k/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range fens {
		var _, err = NewBoardFromFEN(fen)
		assert.True(t, errors.Is(err, ErrInvalidFEN), "%q: %v", fen, err)
	}
}
