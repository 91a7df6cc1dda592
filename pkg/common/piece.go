package common

import "strings"

// Piece kinds. Move.Promotion holds one of Knight..Queen or Empty.
const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a coloured piece occupying a square.
type Piece int8

const (
	NoPiece Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

const pieceChars = ".PNBRQKpnbrqk"

func MakePiece(kind int, white bool) Piece {
	if kind == Empty {
		return NoPiece
	}
	if white {
		return Piece(kind)
	}
	return Piece(kind + King)
}

func (p Piece) IsWhite() bool {
	return p >= WhitePawn && p <= WhiteKing
}

func (p Piece) IsBlack() bool {
	return p >= BlackPawn && p <= BlackKing
}

// IsSide reports whether p is a piece of the given colour.
func (p Piece) IsSide(white bool) bool {
	if white {
		return p.IsWhite()
	}
	return p.IsBlack()
}

func (p Piece) Kind() int {
	if p.IsBlack() {
		return int(p) - King
	}
	return int(p)
}

func (p Piece) String() string {
	if p < NoPiece || p > BlackKing {
		return "?"
	}
	return pieceChars[p : p+1]
}

func parsePiece(ch byte) (Piece, bool) {
	var i = strings.IndexByte(pieceChars, ch)
	if i <= 0 {
		return NoPiece, false
	}
	return Piece(i), true
}
