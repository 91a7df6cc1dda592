// Package boardimage draws a position as an SVG diagram.
package boardimage

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/rookie-chess/rookie/pkg/common"
)

const (
	squareSize = 45
	margin     = 20
	boardSize  = 8*squareSize + 2*margin
)

var glyphs = map[common.Piece]string{
	common.WhitePawn:   "♙",
	common.WhiteKnight: "♘",
	common.WhiteBishop: "♗",
	common.WhiteRook:   "♖",
	common.WhiteQueen:  "♕",
	common.WhiteKing:   "♔",
	common.BlackPawn:   "♟",
	common.BlackKnight: "♞",
	common.BlackBishop: "♝",
	common.BlackRook:   "♜",
	common.BlackQueen:  "♛",
	common.BlackKing:   "♚",
}

type Options struct {
	// Flip draws the board from Black's side.
	Flip      bool
	Highlight []common.Square
	LightFill string
	DarkFill  string
	MarkFill  string
}

func DefaultOptions() Options {
	return Options{
		LightFill: "#f0d9b5",
		DarkFill:  "#b58863",
		MarkFill:  "#cdd26a",
	}
}

// Write renders b to w. Highlighted squares (typically the last move) use MarkFill.
func Write(w io.Writer, b *common.Board, options Options) {
	var canvas = svg.New(w)
	canvas.Start(boardSize, boardSize)
	canvas.Rect(0, 0, boardSize, boardSize, "fill:#312e2b")

	var marked = make(map[common.Square]bool, len(options.Highlight))
	for _, sq := range options.Highlight {
		marked[sq] = true
	}

	for file := common.FileA; file <= common.FileH; file++ {
		for rank := common.Rank1; rank <= common.Rank8; rank++ {
			var sq = common.MakeSquare(file, rank)
			var x, y = squareOrigin(file, rank, options.Flip)
			var fill = options.DarkFill
			if (file+rank)%2 != 0 {
				fill = options.LightFill
			}
			if marked[sq] {
				fill = options.MarkFill
			}
			canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)
			if glyph, ok := glyphs[b.GetPiece(sq)]; ok {
				canvas.Text(x+squareSize/2, y+squareSize*4/5, glyph,
					"text-anchor:middle;font-size:38px;font-family:serif")
			}
		}
	}

	canvas.Gstyle("fill:#ffffff;font-size:12px;font-family:sans-serif;text-anchor:middle")
	for i := 0; i < 8; i++ {
		var x, _ = squareOrigin(i, common.Rank1, options.Flip)
		canvas.Text(x+squareSize/2, boardSize-margin/3, string(rune('a'+i)))
		var _, y = squareOrigin(common.FileA, i, options.Flip)
		canvas.Text(margin/2, y+squareSize/2+4, string(rune('1'+i)))
	}
	canvas.Gend()
	canvas.End()
}

func squareOrigin(file, rank int, flip bool) (x, y int) {
	if flip {
		file, rank = 7-file, 7-rank
	}
	return margin + file*squareSize, margin + (7-rank)*squareSize
}
