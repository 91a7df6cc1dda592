package engine

import (
	"fmt"

	. "github.com/rookie-chess/rookie/pkg/common"
)

// Score is either a material evaluation in centipawns or a mate distance in plies.
// Both live on one integer line, White positive, so integer order is search order:
// a mate for White is above every evaluation, a shorter mate is further from zero.
type Score int

const (
	stackSize = 128
	maxHeight = stackSize - 1

	valueDraw     Score = 0
	valueMate     Score = 1_000_000
	valueInfinity       = valueMate + 1
	valueWin            = valueMate - stackSize
	valueLoss           = -valueWin
)

func EvalScore(centipawns int) Score {
	return Score(centipawns)
}

// MateIn scores a mate delivered after plies half-moves by White (whiteMates) or Black.
func MateIn(plies int, whiteMates bool) Score {
	if whiteMates {
		return valueMate - Score(plies)
	}
	return -valueMate + Score(plies)
}

func (s Score) IsMate() bool {
	return s >= valueWin || s <= valueLoss
}

func (s Score) WhiteMates() bool {
	return s >= valueWin
}

// MatePlies is meaningful only for mate scores.
func (s Score) MatePlies() int {
	if s >= valueWin {
		return int(valueMate - s)
	}
	return int(s + valueMate)
}

// Better reports whether s is strictly preferable to other for the given side.
func (s Score) Better(other Score, white bool) bool {
	if white {
		return s > other
	}
	return s < other
}

// Uci converts to the protocol form, which is relative to the side to move.
func (s Score) Uci(whiteMove bool) UciScore {
	if s.IsMate() {
		var moves = (s.MatePlies() + 1) / 2
		if s.WhiteMates() != whiteMove {
			moves = -moves
		}
		return UciScore{Mate: moves}
	}
	var cp = int(s)
	if !whiteMove {
		cp = -cp
	}
	return UciScore{Centipawns: cp}
}

func (s Score) String() string {
	if s.IsMate() {
		var side = "black"
		if s.WhiteMates() {
			side = "white"
		}
		return fmt.Sprintf("mate(%v,%d)", side, s.MatePlies())
	}
	return fmt.Sprintf("cp(%d)", int(s))
}

func worstFor(white bool) Score {
	if white {
		return -valueInfinity
	}
	return valueInfinity
}
