package engine

import (
	"errors"

	"golang.org/x/exp/slices"

	. "github.com/rookie-chess/rookie/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

func iterativeDeepening(e *Engine, t *thread, ml []Move) {
	e.mainLine = mainLine{
		moves: []Move{ml[0]},
	}
	for depth := 1; depth <= maxHeight; depth++ {
		t.pvHint = e.mainLine.moves
		t.orderMoves(ml, 0)
		var score, ok = searchDepth(t, ml, depth)
		if !ok {
			return
		}
		if !e.onIterationComplete(t, depth, score) {
			return
		}
	}
}

// searchDepth reports false when the depth was abandoned on timeout.
func searchDepth(t *thread, ml []Move, depth int) (score Score, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != errSearchTimeout {
				panic(r)
			}
			for t.board.HistoryLen() > t.rootHistory {
				t.unmakeMove()
			}
			t.engine.nodes += t.nodes
			t.nodes = 0
			ok = false
		}
	}()
	return t.searchRoot(ml, depth), true
}

// searchRoot expects ml to hold only legal moves.
func (t *thread) searchRoot(ml []Move, depth int) Score {
	const height = 0
	t.clearPV(height)
	var white = t.board.WhiteMove
	var alpha, beta = -valueInfinity, valueInfinity
	var best = worstFor(white)
	for _, move := range ml {
		t.incNodes()
		t.makeMove(move)
		var score = t.alphaBeta(alpha, beta, depth-1, height+1)
		t.unmakeMove()
		if score.Better(best, white) {
			best = score
			t.assignPV(height, move)
			if white {
				alpha = Max(alpha, score)
			} else {
				beta = Min(beta, score)
			}
		}
	}
	return best
}

// White maximises, Black minimises. Children that leave the mover in check are skipped.
func (t *thread) alphaBeta(alpha, beta Score, depth, height int) Score {
	t.clearPV(height)
	var b = t.board
	var white = b.WhiteMove
	var ml = b.GenerateMoves(t.stack[height].moveList[:])

	if depth <= 0 || height >= maxHeight {
		if !t.hasLegalMove(ml) {
			return t.terminalScore(height)
		}
		return evaluateMaterial(b)
	}

	t.orderMoves(ml, height)
	var best = worstFor(white)
	var hasLegalMove = false
	for _, move := range ml {
		t.incNodes()
		t.makeMove(move)
		if !b.IsLegal() {
			t.unmakeMove()
			continue
		}
		hasLegalMove = true
		var score = t.alphaBeta(alpha, beta, depth-1, height+1)
		t.unmakeMove()
		if score.Better(best, white) {
			best = score
			t.assignPV(height, move)
			if white {
				alpha = Max(alpha, score)
			} else {
				beta = Min(beta, score)
			}
			if alpha >= beta {
				break
			}
		}
	}
	if !hasLegalMove {
		return t.terminalScore(height)
	}
	return best
}

// terminalScore scores a node without legal moves: mate for the side that moved in, or stalemate.
func (t *thread) terminalScore(height int) Score {
	if t.board.IsCheck() {
		return MateIn(height, !t.board.WhiteMove)
	}
	return valueDraw
}

func (t *thread) hasLegalMove(ml []Move) bool {
	for _, move := range ml {
		t.makeMove(move)
		var legal = t.board.IsLegal()
		t.unmakeMove()
		if legal {
			return true
		}
	}
	return false
}

// orderMoves puts captures first, then the previous iteration's move for this ply.
func (t *thread) orderMoves(ml []Move, height int) {
	var b = t.board
	slices.SortStableFunc(ml, func(l, r Move) int {
		return captureRank(b, l) - captureRank(b, r)
	})
	if height < len(t.pvHint) {
		var index = findMoveIndex(ml, t.pvHint[height])
		if index >= 0 {
			moveToBegin(ml, index)
		}
	}
}

func captureRank(b *Board, m Move) int {
	if b.IsCapture(m) {
		return 0
	}
	return 1
}

func (t *thread) makeMove(move Move) {
	if err := t.board.MakeMove(move); err != nil {
		panic(err)
	}
}

func (t *thread) unmakeMove() {
	if err := t.board.RevertMove(); err != nil {
		panic(err)
	}
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, move Move) {
	t.stack[height].pv.assign(move, &t.stack[height+1].pv)
}

// incNodes polls the deadline between sibling moves.
func (t *thread) incNodes() {
	t.nodes++
	if t.nodes&63 == 0 || t.board.HistoryLen() == t.rootHistory {
		if t.engine.ctx.Err() != nil {
			panic(errSearchTimeout)
		}
	}
}

func findMoveIndex(ml []Move, move Move) int {
	for i := range ml {
		if ml[i] == move {
			return i
		}
	}
	return -1
}

func moveToBegin(ml []Move, index int) {
	if index == 0 {
		return
	}
	var item = ml[index]
	for i := index; i > 0; i-- {
		ml[i] = ml[i-1]
	}
	ml[0] = item
}
