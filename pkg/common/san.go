package common

import (
	"strings"
)

// MoveToSAN renders a legal move in standard algebraic notation without check marks.
func (b *Board) MoveToSAN(legal []Move, mv Move) string {
	const PieceNames = "NBRQK"
	var piece = b.squares[mv.From]
	var kind = piece.Kind()
	if kind == King && mv.To.File()-mv.From.File() == 2 {
		return "O-O"
	}
	if kind == King && mv.From.File()-mv.To.File() == 2 {
		return "O-O-O"
	}
	var strPiece, strCapture, strFrom, strTo, strPromotion string
	if kind != Pawn {
		strPiece = string(PieceNames[kind-Knight])
	}
	strTo = mv.To.String()
	if b.IsCapture(mv) {
		strCapture = "x"
		if kind == Pawn {
			strFrom = mv.From.String()[:1]
		}
	}
	if mv.Promotion != Empty {
		strPromotion = "=" + string(PieceNames[mv.Promotion-Knight])
	}
	var ambiguity = false
	var uniqCol = true
	var uniqRow = true
	for _, mv1 := range legal {
		if mv1.From == mv.From || mv1.To != mv.To {
			continue
		}
		if b.squares[mv1.From] != piece || kind == Pawn {
			continue
		}
		ambiguity = true
		if mv1.From.File() == mv.From.File() {
			uniqCol = false
		}
		if mv1.From.Rank() == mv.From.Rank() {
			uniqRow = false
		}
	}
	if ambiguity {
		if uniqCol {
			strFrom = mv.From.String()[:1]
		} else if uniqRow {
			strFrom = mv.From.String()[1:2]
		} else {
			strFrom = mv.From.String()
		}
	}
	return strPiece + strFrom + strCapture + strTo + strPromotion
}

// ParseMoveSAN finds the legal move written as san. It returns MoveEmpty when none matches.
func (b *Board) ParseMoveSAN(san string) Move {
	var index = strings.IndexAny(san, "+#?!")
	if index >= 0 {
		san = san[:index]
	}
	san = strings.Replace(san, "0-0-0", "O-O-O", 1)
	san = strings.Replace(san, "0-0", "O-O", 1)
	var ml = b.GenerateLegalMoves()
	for _, mv := range ml {
		if san == b.MoveToSAN(ml, mv) {
			return mv
		}
	}
	return MoveEmpty
}
