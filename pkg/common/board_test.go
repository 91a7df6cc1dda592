package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
}

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	var b, err = NewBoardFromFEN(fen)
	require.NoError(t, err)
	return b
}

func mustMove(t *testing.T, s string) Move {
	t.Helper()
	var m, err = ParseMove(s)
	require.NoError(t, err)
	return m
}

func checkRoundTrip(t *testing.T, b *Board, depth int) {
	for _, m := range b.GenerateLegalMoves() {
		var before = *b
		require.NoError(t, b.MakeMove(m))
		if depth > 1 {
			checkRoundTrip(t, b, depth-1)
		}
		require.NoError(t, b.RevertMove())
		require.True(t, before.Equal(b), "%v after %v: got %v", before.FEN(), m, b.FEN())
	}
}

func TestMakeRevertRoundTrip(t *testing.T) {
	for _, fen := range testFENs {
		var b = mustBoard(t, fen)
		checkRoundTrip(t, b, 3)
		assert.Zero(t, b.HistoryLen())
	}
}

func TestRevertEmptyHistory(t *testing.T) {
	var b = mustBoard(t, InitialPositionFen)
	var err = b.RevertMove()
	require.True(t, errors.Is(err, ErrEmptyHistory))
}

func TestMakeMoveRejectsInvalid(t *testing.T) {
	var b = mustBoard(t, InitialPositionFen)
	for _, s := range []string{"e7e5", "e3e4", "a1a2", "e2e1"} {
		var err = b.MakeMove(mustMove(t, s))
		assert.True(t, errors.Is(err, ErrInvalidMove), s)
	}
	assert.True(t, errors.Is(b.MakeMove(Move{From: SquareE2, To: SquareE2}), ErrInvalidMove))
	assert.True(t, errors.Is(b.MakeMove(Move{From: SquareE2, To: SquareE4, Promotion: Queen}), ErrInvalidMove))
	assert.Zero(t, b.HistoryLen())
	assert.Equal(t, InitialPositionFen, b.FEN())
}

func TestClockBookkeeping(t *testing.T) {
	var b = mustBoard(t, InitialPositionFen)
	var steps = []struct {
		move     string
		rule50   int
		fullMove int
	}{
		{"g1f3", 1, 1},
		{"g8f6", 2, 2},
		{"b1c3", 3, 2},
		{"e7e5", 0, 3},
		{"f3e5", 0, 3},
		{"f6e4", 1, 4},
		{"c3e4", 0, 4},
		{"d8e7", 1, 5},
	}
	for _, step := range steps {
		require.NoError(t, b.MakeMove(mustMove(t, step.move)))
		assert.Equal(t, step.rule50, b.Rule50, step.move)
		assert.Equal(t, step.fullMove, b.FullMove, step.move)
	}
}

func TestEnPassantTarget(t *testing.T) {
	var b = mustBoard(t, "4k3/8/8/8/5p2/8/4P1P1/4K3 w - - 0 1")

	require.NoError(t, b.MakeMove(mustMove(t, "e2e4")))
	assert.Equal(t, SquareE3, b.EpSquare, "black f4 pawn can capture")
	require.NoError(t, b.MakeMove(mustMove(t, "f4e3")))
	assert.Equal(t, NoPiece, b.GetPiece(SquareE4), "captured pawn removed")
	assert.Equal(t, BlackPawn, b.GetPiece(SquareE3))
	assert.Equal(t, SquareNone, b.EpSquare)
	require.NoError(t, b.RevertMove())
	assert.Equal(t, WhitePawn, b.GetPiece(SquareE4))
	require.NoError(t, b.RevertMove())

	require.NoError(t, b.MakeMove(mustMove(t, "g2g4")))
	assert.Equal(t, SquareG3, b.EpSquare)
	require.NoError(t, b.MakeMove(mustMove(t, "e8d8")))
	assert.Equal(t, SquareNone, b.EpSquare, "target lives for one ply")

	b = mustBoard(t, "4k3/8/8/8/8/8/P7/4K3 w - - 0 1")
	require.NoError(t, b.MakeMove(mustMove(t, "a2a4")))
	assert.Equal(t, SquareNone, b.EpSquare, "no enemy pawn adjacent")
}

func TestCastling(t *testing.T) {
	var b = mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, b.MakeMove(mustMove(t, "e1g1")))
	assert.Equal(t, WhiteKing, b.GetPiece(SquareG1))
	assert.Equal(t, WhiteRook, b.GetPiece(SquareF1))
	assert.Equal(t, NoPiece, b.GetPiece(SquareH1))
	assert.Equal(t, BlackKingSide|BlackQueenSide, b.CastleRights)

	require.NoError(t, b.MakeMove(mustMove(t, "e8c8")))
	assert.Equal(t, BlackKing, b.GetPiece(SquareC8))
	assert.Equal(t, BlackRook, b.GetPiece(SquareD8))
	assert.Equal(t, NoPiece, b.GetPiece(SquareA8))
	assert.Zero(t, b.CastleRights)

	require.NoError(t, b.RevertMove())
	require.NoError(t, b.RevertMove())
	assert.Equal(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", b.FEN())
}

func TestCastleRightsLostOnRookCapture(t *testing.T) {
	var b = mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, b.MakeMove(mustMove(t, "a1a8")))
	assert.Equal(t, WhiteKingSide|BlackKingSide, b.CastleRights)
	assert.Equal(t, 0, b.Rule50)
}

func TestCastlingThroughAttack(t *testing.T) {
	var b = mustBoard(t, "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1")
	var buffer [MaxMoves]Move
	var ml = b.GenerateMoves(buffer[:])
	assert.NotContains(t, ml, mustMove(t, "e1g1"), "f1 is attacked")
	assert.Contains(t, ml, mustMove(t, "e1c1"))
	assert.NotContains(t, ml, mustMove(t, "e1f1"))
}

func TestPromotion(t *testing.T) {
	var b = mustBoard(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	var buffer [MaxMoves]Move
	var ml = b.GenerateMoves(buffer[:])
	var promotions = 0
	for _, m := range ml {
		if m.Promotion != Empty {
			promotions++
		}
	}
	assert.Equal(t, 8, promotions, "push and capture, four pieces each")

	require.NoError(t, b.MakeMove(mustMove(t, "a7b8n")))
	assert.Equal(t, WhiteKnight, b.GetPiece(SquareB8))
	require.NoError(t, b.RevertMove())
	assert.Equal(t, WhitePawn, b.GetPiece(SquareA7))
	assert.Equal(t, BlackKnight, b.GetPiece(SquareB8))
}

func TestPieceClassification(t *testing.T) {
	for p := WhitePawn; p <= WhiteKing; p++ {
		assert.True(t, p.IsWhite())
		assert.False(t, p.IsBlack())
		assert.Equal(t, p, MakePiece(p.Kind(), true))
	}
	for p := BlackPawn; p <= BlackKing; p++ {
		assert.True(t, p.IsBlack())
		assert.False(t, p.IsWhite())
		assert.Equal(t, p, MakePiece(p.Kind(), false))
	}
	assert.False(t, NoPiece.IsWhite())
	assert.False(t, NoPiece.IsBlack())
}

func TestSquareIndex(t *testing.T) {
	assert.Equal(t, Square(0), SquareA1)
	assert.Equal(t, Square(1), SquareA2)
	assert.Equal(t, Square(8), SquareB1)
	assert.Equal(t, Square(63), SquareH8)
	var sq, err = ParseSquare("e4")
	require.NoError(t, err)
	assert.Equal(t, MakeSquare(FileE, Rank4), sq)
	assert.Equal(t, "e4", sq.String())
	_, err = ParseSquare("i9")
	assert.Error(t, err)
}
