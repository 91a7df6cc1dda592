package engine

import (
	. "github.com/rookie-chess/rookie/pkg/common"
)

const pawnValue = 100

// King weight only matters if a king is ever missing from the board.
var pieceValues = [...]int{
	Empty:  0,
	Pawn:   1 * pawnValue,
	Knight: 3 * pawnValue,
	Bishop: 3 * pawnValue,
	Rook:   5 * pawnValue,
	Queen:  9 * pawnValue,
	King:   200 * pawnValue,
}

func evaluateMaterial(b *Board) Score {
	var score = 0
	for sq := SquareA1; sq <= SquareH8; sq++ {
		var piece = b.GetPiece(sq)
		if piece == NoPiece {
			continue
		}
		if piece.IsWhite() {
			score += pieceValues[piece.Kind()]
		} else {
			score -= pieceValues[piece.Kind()]
		}
	}
	return EvalScore(score)
}
