package common

var (
	knightTargets [64][]Square
	kingTargets   [64][]Square
	// rays[sq][dir] lists squares from sq outward; dirs 0-3 orthogonal, 4-7 diagonal.
	rays [64][8][]Square
)

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	directions    = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

const (
	orthogonalFirst = 0
	diagonalFirst   = 4
)

func init() {
	for sq := SquareA1; sq <= SquareH8; sq++ {
		var file, rank = sq.File(), sq.Rank()
		for _, d := range knightOffsets {
			if onBoard(file+d[0], rank+d[1]) {
				knightTargets[sq] = append(knightTargets[sq], MakeSquare(file+d[0], rank+d[1]))
			}
		}
		for _, d := range kingOffsets {
			if onBoard(file+d[0], rank+d[1]) {
				kingTargets[sq] = append(kingTargets[sq], MakeSquare(file+d[0], rank+d[1]))
			}
		}
		for dir, d := range directions {
			for f, r := file+d[0], rank+d[1]; onBoard(f, r); f, r = f+d[0], r+d[1] {
				rays[sq][dir] = append(rays[sq][dir], MakeSquare(f, r))
			}
		}
	}
}

func addPromotions(ml []Move, count int, from, to Square) int {
	ml[count] = Move{From: from, To: to, Promotion: Queen}
	ml[count+1] = Move{From: from, To: to, Promotion: Rook}
	ml[count+2] = Move{From: from, To: to, Promotion: Bishop}
	ml[count+3] = Move{From: from, To: to, Promotion: Knight}
	return count + 4
}

// GenerateMoves writes the pseudo-legal moves of the side to move into ml.
// King steps and castling are already filtered against attacked squares;
// other moves may leave the mover's king in check.
func (b *Board) GenerateMoves(ml []Move) []Move {
	var count = 0
	var white = b.WhiteMove
	for sq := SquareA1; sq <= SquareH8; sq++ {
		var piece = b.squares[sq]
		if piece == NoPiece || !piece.IsSide(white) {
			continue
		}
		switch piece.Kind() {
		case Pawn:
			count = b.genPawnMoves(ml, count, sq)
		case Knight:
			count = b.genStepMoves(ml, count, sq, knightTargets[sq], false)
		case Bishop:
			count = b.genSlidingMoves(ml, count, sq, diagonalFirst, 8)
		case Rook:
			count = b.genSlidingMoves(ml, count, sq, orthogonalFirst, 4)
		case Queen:
			count = b.genSlidingMoves(ml, count, sq, orthogonalFirst, 8)
		case King:
			count = b.genStepMoves(ml, count, sq, kingTargets[sq], true)
			count = b.genCastles(ml, count, sq)
		}
	}
	return ml[:count]
}

func (b *Board) genPawnMoves(ml []Move, count int, from Square) int {
	var white = b.WhiteMove
	var dir = let(white, 1, -1)
	var file, rank = from.File(), from.Rank()
	var promotes = rank == let(white, Rank7, Rank2)
	if !onBoard(file, rank+dir) {
		return count
	}

	var push = MakeSquare(file, rank+dir)
	if b.squares[push] == NoPiece {
		if promotes {
			count = addPromotions(ml, count, from, push)
		} else {
			ml[count] = Move{From: from, To: push}
			count++
			if rank == let(white, Rank2, Rank7) {
				var double = MakeSquare(file, rank+2*dir)
				if b.squares[double] == NoPiece {
					ml[count] = Move{From: from, To: double}
					count++
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		if !onBoard(file+df, rank+dir) {
			continue
		}
		var to = MakeSquare(file+df, rank+dir)
		var target = b.squares[to]
		if !(target != NoPiece && !target.IsSide(white)) && to != b.EpSquare {
			continue
		}
		if promotes {
			count = addPromotions(ml, count, from, to)
		} else {
			ml[count] = Move{From: from, To: to}
			count++
		}
	}
	return count
}

func (b *Board) genStepMoves(ml []Move, count int, from Square, targets []Square, king bool) int {
	var white = b.WhiteMove
	for _, to := range targets {
		var target = b.squares[to]
		if target != NoPiece && target.IsSide(white) {
			continue
		}
		if king && b.IsAttacked(to, !white) {
			continue
		}
		ml[count] = Move{From: from, To: to}
		count++
	}
	return count
}

func (b *Board) genSlidingMoves(ml []Move, count int, from Square, firstDir, lastDir int) int {
	var white = b.WhiteMove
	for dir := firstDir; dir < lastDir; dir++ {
		for _, to := range rays[from][dir] {
			var target = b.squares[to]
			if target == NoPiece {
				ml[count] = Move{From: from, To: to}
				count++
				continue
			}
			if !target.IsSide(white) {
				ml[count] = Move{From: from, To: to}
				count++
			}
			break
		}
	}
	return count
}

func (b *Board) genCastles(ml []Move, count int, from Square) int {
	var white = b.WhiteMove
	var kingSide, queenSide = BlackKingSide, BlackQueenSide
	var home = SquareE8
	if white {
		kingSide, queenSide = WhiteKingSide, WhiteQueenSide
		home = SquareE1
	}
	if from != home || b.CastleRights&(kingSide|queenSide) == 0 {
		return count
	}
	var rank = home.Rank()
	var rook = MakePiece(Rook, white)

	if b.CastleRights&kingSide != 0 &&
		b.squares[MakeSquare(FileH, rank)] == rook &&
		b.isEmpty(rank, FileF, FileG) &&
		!b.anyAttacked(rank, FileE, FileG, !white) {
		ml[count] = Move{From: home, To: MakeSquare(FileG, rank)}
		count++
	}
	if b.CastleRights&queenSide != 0 &&
		b.squares[MakeSquare(FileA, rank)] == rook &&
		b.isEmpty(rank, FileB, FileD) &&
		!b.anyAttacked(rank, FileC, FileE, !white) {
		ml[count] = Move{From: home, To: MakeSquare(FileC, rank)}
		count++
	}
	return count
}

func (b *Board) isEmpty(rank, fileFrom, fileTo int) bool {
	for file := fileFrom; file <= fileTo; file++ {
		if b.squares[MakeSquare(file, rank)] != NoPiece {
			return false
		}
	}
	return true
}

func (b *Board) anyAttacked(rank, fileFrom, fileTo int, byWhite bool) bool {
	for file := fileFrom; file <= fileTo; file++ {
		if b.IsAttacked(MakeSquare(file, rank), byWhite) {
			return true
		}
	}
	return false
}

// IsAttacked reports whether a piece of the given colour attacks sq.
func (b *Board) IsAttacked(sq Square, byWhite bool) bool {
	var file, rank = sq.File(), sq.Rank()

	var pawn = MakePiece(Pawn, byWhite)
	var pawnRank = rank - let(byWhite, 1, -1)
	if pawnRank >= Rank1 && pawnRank <= Rank8 {
		if file > FileA && b.squares[MakeSquare(file-1, pawnRank)] == pawn {
			return true
		}
		if file < FileH && b.squares[MakeSquare(file+1, pawnRank)] == pawn {
			return true
		}
	}

	var knight = MakePiece(Knight, byWhite)
	for _, from := range knightTargets[sq] {
		if b.squares[from] == knight {
			return true
		}
	}
	var king = MakePiece(King, byWhite)
	for _, from := range kingTargets[sq] {
		if b.squares[from] == king {
			return true
		}
	}

	var queen = MakePiece(Queen, byWhite)
	var rook = MakePiece(Rook, byWhite)
	var bishop = MakePiece(Bishop, byWhite)
	for dir := 0; dir < 8; dir++ {
		var slider = rook
		if dir >= diagonalFirst {
			slider = bishop
		}
		for _, from := range rays[sq][dir] {
			var piece = b.squares[from]
			if piece == NoPiece {
				continue
			}
			if piece == slider || piece == queen {
				return true
			}
			break
		}
	}
	return false
}

func (b *Board) IsCapture(m Move) bool {
	if b.squares[m.To] != NoPiece {
		return true
	}
	return m.To == b.EpSquare && b.squares[m.From].Kind() == Pawn && m.From.File() != m.To.File()
}

// GenerateLegalMoves allocates; the search uses GenerateMoves with its own buffers.
func (b *Board) GenerateLegalMoves() []Move {
	var buffer [MaxMoves]Move
	var result []Move
	for _, m := range b.GenerateMoves(buffer[:]) {
		if b.MakeMove(m) != nil {
			continue
		}
		if b.IsLegal() {
			result = append(result, m)
		}
		b.RevertMove()
	}
	return result
}

// Perft counts legal leaf nodes at the given depth.
func (b *Board) Perft(depth int) int {
	if depth <= 0 {
		return 1
	}
	var buffer [MaxMoves]Move
	var result = 0
	for _, m := range b.GenerateMoves(buffer[:]) {
		if b.MakeMove(m) != nil {
			panic(m)
		}
		if b.IsLegal() {
			if depth > 1 {
				result += b.Perft(depth - 1)
			} else {
				result++
			}
		}
		b.RevertMove()
	}
	return result
}
