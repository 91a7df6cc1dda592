package common

import (
	"fmt"
	"strconv"
	"strings"
)

// NewBoardFromFEN decodes a FEN record. The clock fields may be omitted (EPD style).
func NewBoardFromFEN(fen string) (*Board, error) {
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 || len(tokens) > 6 {
		return nil, fmt.Errorf("%w: %q: want 4 to 6 fields, got %d", ErrInvalidFEN, fen, len(tokens))
	}

	var b = NewBoard()

	var ranks = strings.Split(tokens[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: %q: want 8 ranks, got %d", ErrInvalidFEN, fen, len(ranks))
	}
	for i, line := range ranks {
		var rank = Rank8 - i
		var file = FileA
		for j := 0; j < len(line); j++ {
			var ch = line[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
			} else if piece, ok := parsePiece(ch); ok {
				if file > FileH {
					return nil, fmt.Errorf("%w: %q: rank %d overflows", ErrInvalidFEN, fen, rank+1)
				}
				if piece.Kind() == King && b.KingSquare(piece.IsWhite()) != SquareNone {
					return nil, fmt.Errorf("%w: %q: second %v king", ErrInvalidFEN, fen, piece)
				}
				b.SetPiece(MakeSquare(file, rank), piece)
				file++
			} else {
				return nil, fmt.Errorf("%w: %q: unexpected character %q in rank %d", ErrInvalidFEN, fen, ch, rank+1)
			}
			if file > FileH+1 {
				return nil, fmt.Errorf("%w: %q: rank %d overflows", ErrInvalidFEN, fen, rank+1)
			}
		}
		if file != FileH+1 {
			return nil, fmt.Errorf("%w: %q: rank %d has %d squares", ErrInvalidFEN, fen, rank+1, file)
		}
	}

	switch tokens[1] {
	case "w":
		b.WhiteMove = true
	case "b":
		b.WhiteMove = false
	default:
		return nil, fmt.Errorf("%w: %q: bad active colour %q", ErrInvalidFEN, fen, tokens[1])
	}

	if tokens[2] != "-" {
		for j := 0; j < len(tokens[2]); j++ {
			var flag int
			switch tokens[2][j] {
			case 'K':
				flag = WhiteKingSide
			case 'Q':
				flag = WhiteQueenSide
			case 'k':
				flag = BlackKingSide
			case 'q':
				flag = BlackQueenSide
			default:
				return nil, fmt.Errorf("%w: %q: bad castling character %q", ErrInvalidFEN, fen, tokens[2][j])
			}
			if b.CastleRights&flag != 0 {
				return nil, fmt.Errorf("%w: %q: repeated castling character %q", ErrInvalidFEN, fen, tokens[2][j])
			}
			b.CastleRights |= flag
		}
	}

	var ep, err = ParseSquare(tokens[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: en passant: %v", ErrInvalidFEN, fen, err)
	}
	if ep != SquareNone && ep.Rank() != let(b.WhiteMove, Rank6, Rank3) {
		return nil, fmt.Errorf("%w: %q: en passant square %v on wrong rank", ErrInvalidFEN, fen, ep)
	}
	b.EpSquare = ep

	if len(tokens) > 4 {
		b.Rule50, err = parseCounter(tokens[4], 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: half-move clock: %v", ErrInvalidFEN, fen, err)
		}
	}
	if len(tokens) > 5 {
		b.FullMove, err = parseCounter(tokens[5], 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: full-move number: %v", ErrInvalidFEN, fen, err)
		}
	}
	return b, nil
}

func parseCounter(s string, min int) (int, error) {
	var n, err = strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < min {
		return 0, fmt.Errorf("%d is below %d", n, min)
	}
	return n, nil
}

// FEN encodes the position.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := Rank8; rank >= Rank1; rank-- {
		var emptyCount = 0
		for file := FileA; file <= FileH; file++ {
			var piece = b.squares[MakeSquare(file, rank)]
			if piece == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteString(piece.String())
		}
		if emptyCount != 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
		if rank != Rank1 {
			sb.WriteString("/")
		}
	}
	sb.WriteString(" ")

	if b.WhiteMove {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}
	sb.WriteString(" ")

	if b.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		if (b.CastleRights & WhiteKingSide) != 0 {
			sb.WriteString("K")
		}
		if (b.CastleRights & WhiteQueenSide) != 0 {
			sb.WriteString("Q")
		}
		if (b.CastleRights & BlackKingSide) != 0 {
			sb.WriteString("k")
		}
		if (b.CastleRights & BlackQueenSide) != 0 {
			sb.WriteString("q")
		}
	}
	sb.WriteString(" ")

	sb.WriteString(b.EpSquare.String())
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(b.Rule50))
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(b.FullMove))

	return sb.String()
}

func (b *Board) String() string {
	return b.FEN()
}
