package common

import (
	"fmt"
	"strings"
)

// Square is a board square indexed file-major: index = file*8 + rank.
type Square int8

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const SquareNone Square = -1

const (
	SquareA1 Square = iota
	SquareA2
	SquareA3
	SquareA4
	SquareA5
	SquareA6
	SquareA7
	SquareA8
	SquareB1
	SquareB2
	SquareB3
	SquareB4
	SquareB5
	SquareB6
	SquareB7
	SquareB8
	SquareC1
	SquareC2
	SquareC3
	SquareC4
	SquareC5
	SquareC6
	SquareC7
	SquareC8
	SquareD1
	SquareD2
	SquareD3
	SquareD4
	SquareD5
	SquareD6
	SquareD7
	SquareD8
	SquareE1
	SquareE2
	SquareE3
	SquareE4
	SquareE5
	SquareE6
	SquareE7
	SquareE8
	SquareF1
	SquareF2
	SquareF3
	SquareF4
	SquareF5
	SquareF6
	SquareF7
	SquareF8
	SquareG1
	SquareG2
	SquareG3
	SquareG4
	SquareG5
	SquareG6
	SquareG7
	SquareG8
	SquareH1
	SquareH2
	SquareH3
	SquareH4
	SquareH5
	SquareH6
	SquareH7
	SquareH8
)

func MakeSquare(file, rank int) Square {
	return Square(file<<3 | rank)
}

func (sq Square) File() int {
	return int(sq >> 3)
}

func (sq Square) Rank() int {
	return int(sq & 7)
}

func (sq Square) IsValid() bool {
	return sq >= SquareA1 && sq <= SquareH8
}

func onBoard(file, rank int) bool {
	return file >= FileA && file <= FileH && rank >= Rank1 && rank <= Rank8
}

func FileDistance(sq1, sq2 Square) int {
	return Abs(sq1.File() - sq2.File())
}

func RankDistance(sq1, sq2 Square) int {
	return Abs(sq1.Rank() - sq2.Rank())
}

func SquareDistance(sq1, sq2 Square) int {
	return Max(FileDistance(sq1, sq2), RankDistance(sq1, sq2))
}

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string(fileNames[sq.File()]) + string(rankNames[sq.Rank()])
}

func ParseSquare(s string) (Square, error) {
	if s == "-" {
		return SquareNone, nil
	}
	if len(s) != 2 {
		return SquareNone, fmt.Errorf("parse square %q: bad length", s)
	}
	var file = strings.IndexByte(fileNames, s[0])
	var rank = strings.IndexByte(rankNames, s[1])
	if file < 0 || rank < 0 {
		return SquareNone, fmt.Errorf("parse square %q: bad coordinates", s)
	}
	return MakeSquare(file, rank), nil
}
