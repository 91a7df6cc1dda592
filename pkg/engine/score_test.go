package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/rookie-chess/rookie/pkg/common"
)

func TestScoreOrdering(t *testing.T) {
	var evals = []Score{EvalScore(-20000), EvalScore(-350), EvalScore(0), EvalScore(90), EvalScore(20000)}
	for plies := 1; plies < maxHeight; plies++ {
		var whiteMate = MateIn(plies, true)
		var blackMate = MateIn(plies, false)
		assert.True(t, MateIn(plies-1, true).Better(whiteMate, true), "shorter white mate is better for white")
		assert.True(t, MateIn(plies-1, false).Better(blackMate, false), "shorter black mate is better for black")
		for _, eval := range evals {
			assert.True(t, whiteMate > eval)
			assert.True(t, blackMate < eval)
			assert.False(t, eval.IsMate())
		}
		assert.True(t, whiteMate.IsMate())
		assert.True(t, blackMate.IsMate())
		assert.Equal(t, plies, whiteMate.MatePlies())
		assert.Equal(t, plies, blackMate.MatePlies())
		assert.True(t, whiteMate.WhiteMates())
		assert.False(t, blackMate.WhiteMates())
		assert.True(t, whiteMate < valueInfinity && blackMate > -valueInfinity)
	}
}

func TestScoreUci(t *testing.T) {
	var tests = []struct {
		score     Score
		whiteMove bool
		want      UciScore
	}{
		{EvalScore(150), true, UciScore{Centipawns: 150}},
		{EvalScore(150), false, UciScore{Centipawns: -150}},
		{MateIn(1, true), true, UciScore{Mate: 1}},
		{MateIn(3, true), true, UciScore{Mate: 2}},
		{MateIn(5, false), false, UciScore{Mate: 3}},
		{MateIn(2, true), false, UciScore{Mate: -1}},
		{MateIn(4, false), true, UciScore{Mate: -2}},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.score.Uci(test.whiteMove), test.score.String())
	}
}

func TestMaterialEvaluation(t *testing.T) {
	var tests = []struct {
		fen  string
		want Score
	}{
		{InitialPositionFen, 0},
		{"4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1", -400},
		{"4k3/8/8/8/8/8/PPP5/RNB1K3 w - - 0 1", 1400},
	}
	for _, test := range tests {
		var b, err = NewBoardFromFEN(test.fen)
		assert.NoError(t, err)
		assert.Equal(t, test.want, evaluateMaterial(b), test.fen)
	}
}
