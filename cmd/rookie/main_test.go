package main

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rookie-chess/rookie/pkg/book"
	"github.com/rookie-chess/rookie/pkg/common"
)

func TestPerftDivide(t *testing.T) {
	var b, err = common.NewBoardFromFEN(common.InitialPositionFen)
	require.NoError(t, err)
	var before = b.FEN()

	divide, err := perftDivide(context.Background(), b, 3)
	require.NoError(t, err)
	require.Len(t, divide, 20)

	var total = 0
	for _, item := range divide {
		total += item.nodes
	}
	assert.Equal(t, 8902, total)
	assert.Equal(t, before, b.FEN())

	_, err = perftDivide(context.Background(), b, 0)
	assert.Error(t, err)
}

func TestReadOpeningLines(t *testing.T) {
	const text = `# comment
e2e4 e7e5 g1f3 1-0
e2e4 c7c5 0-1
d2d4 d7d5 1/2-1/2
e2e5 e7e5 *

e2e4 e7e5 f1c4 g8f6 d2d3
`
	builder, lines, err := readOpeningLines(strings.NewReader(text), 3, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 4, lines)

	var sb strings.Builder
	_, err = builder.WriteTo(&sb)
	require.NoError(t, err)
	openingBook, err := book.Decode(strings.NewReader(sb.String()))
	require.NoError(t, err)

	moves, err := openingBook.GetNextMoves(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"e2e4", "d2d4"}, movesText(moves))

	e4, err := common.ParseMoves("e2e4 e7e5")
	require.NoError(t, err)
	moves, err = openingBook.GetNextMoves(e4)
	require.NoError(t, err)
	// Lines are cut at three plies.
	assert.ElementsMatch(t, []string{"g1f3", "f1c4"}, movesText(moves))
}

func movesText(ml []common.Move) []string {
	var result []string
	for _, m := range ml {
		result = append(result, m.String())
	}
	return result
}
