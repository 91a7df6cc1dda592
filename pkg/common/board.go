package common

import (
	"fmt"
)

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const allCastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const (
	MaxMoves   = 256
	maxHistory = 128
)

// Board is a mailbox position mutated in place by MakeMove and restored by RevertMove.
// A Board must not be shared between concurrent searches.
type Board struct {
	squares      [64]Piece
	kings        [2]Square
	WhiteMove    bool
	CastleRights int
	EpSquare     Square
	Rule50       int
	FullMove     int
	history      []revertRecord
}

type squareState struct {
	sq    Square
	piece Piece
}

// revertRecord holds everything MakeMove touched, in write order.
type revertRecord struct {
	move         Move
	from         squareState
	to           squareState
	extra        [2]squareState
	extraCount   int
	castleRights int
	epSquare     Square
	rule50       int
	fullMove     int
}

var castleMask [64]int

func init() {
	for i := range castleMask {
		castleMask[i] = allCastleRights
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	return &Board{
		kings:     [2]Square{SquareNone, SquareNone},
		WhiteMove: true,
		EpSquare:  SquareNone,
		FullMove:  1,
		history:   make([]revertRecord, 0, maxHistory),
	}
}

func kingIndex(white bool) int {
	if white {
		return 0
	}
	return 1
}

func (b *Board) GetPiece(sq Square) Piece {
	return b.squares[sq]
}

func (b *Board) SetPiece(sq Square, piece Piece) {
	var old = b.squares[sq]
	if old.Kind() == King && b.kings[kingIndex(old.IsWhite())] == sq {
		b.kings[kingIndex(old.IsWhite())] = SquareNone
	}
	b.squares[sq] = piece
	if piece.Kind() == King {
		b.kings[kingIndex(piece.IsWhite())] = sq
	}
}

func (b *Board) KingSquare(white bool) Square {
	return b.kings[kingIndex(white)]
}

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool {
	var kingSq = b.KingSquare(b.WhiteMove)
	return kingSq != SquareNone && b.IsAttacked(kingSq, !b.WhiteMove)
}

// IsLegal reports whether the side that just moved left its king safe.
func (b *Board) IsLegal() bool {
	var kingSq = b.KingSquare(!b.WhiteMove)
	return kingSq == SquareNone || !b.IsAttacked(kingSq, b.WhiteMove)
}

func (b *Board) HistoryLen() int {
	return len(b.history)
}

// LastMove returns the most recent move still on the undo stack.
func (b *Board) LastMove() Move {
	if len(b.history) == 0 {
		return MoveEmpty
	}
	return b.history[len(b.history)-1].move
}

// Clone returns a deep copy of the position without its move history.
func (b *Board) Clone() *Board {
	var result = *b
	result.history = make([]revertRecord, 0, maxHistory)
	return &result
}

// Equal compares squares, flags and clocks. History is ignored.
func (b *Board) Equal(other *Board) bool {
	return b.squares == other.squares &&
		b.kings == other.kings &&
		b.WhiteMove == other.WhiteMove &&
		b.CastleRights == other.CastleRights &&
		b.EpSquare == other.EpSquare &&
		b.Rule50 == other.Rule50 &&
		b.FullMove == other.FullMove
}

func (b *Board) validateMove(m Move) error {
	if !m.From.IsValid() || !m.To.IsValid() || m.From == m.To {
		return fmt.Errorf("%w: %v: bad squares", ErrInvalidMove, m)
	}
	var piece = b.squares[m.From]
	if piece == NoPiece || !piece.IsSide(b.WhiteMove) {
		return fmt.Errorf("%w: %v: no piece of the side to move on %v", ErrInvalidMove, m, m.From)
	}
	var target = b.squares[m.To]
	if target != NoPiece && target.IsSide(b.WhiteMove) {
		return fmt.Errorf("%w: %v: destination holds own piece", ErrInvalidMove, m)
	}
	if piece.Kind() == Pawn && (m.To.Rank() == Rank1 || m.To.Rank() == Rank8) {
		if m.Promotion < Knight || m.Promotion > Queen {
			return fmt.Errorf("%w: %v: missing promotion", ErrInvalidMove, m)
		}
	} else if m.Promotion != Empty {
		return fmt.Errorf("%w: %v: unexpected promotion", ErrInvalidMove, m)
	}
	return nil
}

func (rec *revertRecord) save(b *Board, sq Square) {
	rec.extra[rec.extraCount] = squareState{sq, b.squares[sq]}
	rec.extraCount++
}

// MakeMove plays m in place and pushes a revert record.
// It rejects moves that do not fit the current occupancy or side to move;
// it does not check whether the mover's king is left in check.
func (b *Board) MakeMove(m Move) error {
	if err := b.validateMove(m); err != nil {
		return err
	}

	var from, to = m.From, m.To
	var piece = b.squares[from]
	var captured = b.squares[to]
	var kind = piece.Kind()
	var white = b.WhiteMove

	b.history = append(b.history, revertRecord{
		move:         m,
		from:         squareState{from, piece},
		to:           squareState{to, captured},
		castleRights: b.CastleRights,
		epSquare:     b.EpSquare,
		rule50:       b.Rule50,
		fullMove:     b.FullMove,
	})
	var rec = &b.history[len(b.history)-1]

	switch {
	case kind == King && to.File()-from.File() == 2:
		var rookFrom, rookTo = MakeSquare(FileH, from.Rank()), MakeSquare(FileF, from.Rank())
		rec.save(b, rookFrom)
		rec.save(b, rookTo)
		b.squares[rookTo] = b.squares[rookFrom]
		b.squares[rookFrom] = NoPiece
	case kind == King && from.File()-to.File() == 2:
		var rookFrom, rookTo = MakeSquare(FileA, from.Rank()), MakeSquare(FileD, from.Rank())
		rec.save(b, rookFrom)
		rec.save(b, rookTo)
		b.squares[rookTo] = b.squares[rookFrom]
		b.squares[rookFrom] = NoPiece
	case kind == Pawn && to == b.EpSquare && captured == NoPiece && from.File() != to.File():
		var victim = MakeSquare(to.File(), from.Rank())
		rec.save(b, victim)
		captured = b.squares[victim]
		b.squares[victim] = NoPiece
	}

	b.squares[from] = NoPiece
	if m.Promotion != Empty {
		b.squares[to] = MakePiece(m.Promotion, white)
	} else {
		b.squares[to] = piece
	}
	if kind == King {
		b.kings[kingIndex(white)] = to
	}

	b.CastleRights &= castleMask[from] & castleMask[to]

	b.EpSquare = SquareNone
	if kind == Pawn && RankDistance(from, to) == 2 {
		if b.hasAdjacentPawn(to, !white) {
			b.EpSquare = MakeSquare(from.File(), (from.Rank()+to.Rank())/2)
		}
	}

	if kind == Pawn || captured != NoPiece {
		b.Rule50 = 0
	} else {
		b.Rule50++
	}
	if !white {
		b.FullMove++
	}
	b.WhiteMove = !white
	return nil
}

func (b *Board) hasAdjacentPawn(sq Square, white bool) bool {
	var pawn = MakePiece(Pawn, white)
	var file, rank = sq.File(), sq.Rank()
	return (file > FileA && b.squares[MakeSquare(file-1, rank)] == pawn) ||
		(file < FileH && b.squares[MakeSquare(file+1, rank)] == pawn)
}

// RevertMove undoes the most recent MakeMove.
func (b *Board) RevertMove() error {
	if len(b.history) == 0 {
		return ErrEmptyHistory
	}
	var rec = &b.history[len(b.history)-1]
	for i := rec.extraCount - 1; i >= 0; i-- {
		b.squares[rec.extra[i].sq] = rec.extra[i].piece
	}
	b.squares[rec.to.sq] = rec.to.piece
	b.squares[rec.from.sq] = rec.from.piece
	if rec.from.piece.Kind() == King {
		b.kings[kingIndex(rec.from.piece.IsWhite())] = rec.from.sq
	}
	b.WhiteMove = !b.WhiteMove
	b.CastleRights = rec.castleRights
	b.EpSquare = rec.epSquare
	b.Rule50 = rec.rule50
	b.FullMove = rec.fullMove
	b.history = b.history[:len(b.history)-1]
	return nil
}

// ApplyMoves replays moves that must be legal in sequence.
func (b *Board) ApplyMoves(moves []Move) error {
	for i, m := range moves {
		if !b.IsLegalMove(m) {
			return fmt.Errorf("%w: %v is not legal at ply %d", ErrInvalidMove, m, i+1)
		}
		if err := b.MakeMove(m); err != nil {
			return err
		}
	}
	return nil
}

// IsLegalMove reports whether m is generated here and keeps the mover's king safe.
func (b *Board) IsLegalMove(m Move) bool {
	var buffer [MaxMoves]Move
	for _, move := range b.GenerateMoves(buffer[:]) {
		if move != m {
			continue
		}
		if b.MakeMove(move) != nil {
			return false
		}
		var legal = b.IsLegal()
		b.RevertMove()
		return legal
	}
	return false
}
