package common

import (
	"fmt"
	"strings"
)

type Move struct {
	From      Square
	To        Square
	Promotion int
}

// MoveEmpty is the "no move" sentinel; it is never generated.
var MoveEmpty = Move{}

const promotionChars = "nbrq"

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion != Empty {
		sPromotion = string(promotionChars[m.Promotion-Knight])
	}
	return m.From.String() + m.To.String() + sPromotion
}

// ParseMove decodes long algebraic notation as used by UCI (e2e4, a7a8q).
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return MoveEmpty, fmt.Errorf("%w: %q: want 4 or 5 characters", ErrInvalidMove, s)
	}
	var from, err = ParseSquare(s[0:2])
	if err != nil || from == SquareNone {
		return MoveEmpty, fmt.Errorf("%w: %q: bad source square", ErrInvalidMove, s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil || to == SquareNone {
		return MoveEmpty, fmt.Errorf("%w: %q: bad destination square", ErrInvalidMove, s)
	}
	if from == to {
		return MoveEmpty, fmt.Errorf("%w: %q: source equals destination", ErrInvalidMove, s)
	}
	var m = Move{From: from, To: to}
	if len(s) == 5 {
		var i = strings.IndexByte(promotionChars, s[4]|0x20)
		if i < 0 {
			return MoveEmpty, fmt.Errorf("%w: %q: bad promotion %q", ErrInvalidMove, s, s[4])
		}
		m.Promotion = Knight + i
	}
	return m, nil
}

// ParseMoves decodes a space separated list of UCI moves.
func ParseMoves(text string) ([]Move, error) {
	var fields = strings.Fields(text)
	var result = make([]Move, 0, len(fields))
	for i, field := range fields {
		var m, err = ParseMove(field)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		result = append(result, m)
	}
	return result, nil
}

func MovesToString(ml []Move) string {
	var sb strings.Builder
	for i, m := range ml {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
