package engine

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"lukechampine.com/frand"

	"github.com/rookie-chess/rookie/pkg/book"
	. "github.com/rookie-chess/rookie/pkg/common"
)

var (
	ErrNoMove          = errors.New("no legal move")
	ErrIllegalPosition = errors.New("side not to move is in check")
)

// OpeningBook is satisfied by *book.Book.
type OpeningBook interface {
	GetNextEntries(played []Move) ([]book.Entry, error)
}

type Engine struct {
	Options     Options
	book        OpeningBook
	rng         *frand.RNG
	rngSeed     int
	timeManager *simpleTimeManager
	ctx         context.Context
	progress    func(SearchInfo)
	mainLine    mainLine
	start       time.Time
	nodes       int64
	thread      thread
}

type thread struct {
	engine      *Engine
	board       *Board
	rootHistory int
	nodes       int64
	pvHint      []Move
	stack       [stackSize]struct {
		moveList [MaxMoves]Move
		pv       pv
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score Score
	depth int
}

func NewEngine(options Options, openingBook OpeningBook) *Engine {
	var e = &Engine{
		Options: options,
		book:    openingBook,
	}
	e.thread.engine = e
	return e
}

// Prepare reseeds the root shuffle when RandomSeed has changed.
func (e *Engine) Prepare() {
	if e.rng == nil || e.rngSeed != e.Options.RandomSeed {
		e.reseed()
	}
}

// Clear restarts the random sequence, so a new game replays identically for the same seed.
func (e *Engine) Clear() {
	e.reseed()
}

func (e *Engine) reseed() {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], uint64(e.Options.RandomSeed))
	e.rng = frand.NewCustom(seed[:], 1024, 20)
	e.rngSeed = e.Options.RandomSeed
}

func (e *Engine) Search(ctx context.Context, searchParams SearchParams) (SearchInfo, error) {
	e.start = time.Now()
	e.Prepare()
	e.nodes = 0
	e.mainLine = mainLine{}
	e.progress = searchParams.Progress

	var b, err = NewBoardFromFEN(searchParams.StartFen)
	if err != nil {
		return SearchInfo{}, err
	}
	if err = b.ApplyMoves(searchParams.Moves); err != nil {
		return SearchInfo{}, err
	}
	if !b.IsLegal() {
		return SearchInfo{}, fmt.Errorf("%w: %v", ErrIllegalPosition, b.FEN())
	}

	if e.book != nil && e.Options.OwnBook &&
		searchParams.StartFen == InitialPositionFen {
		var move, err = e.bookMove(b, searchParams.Moves)
		if err != nil {
			return SearchInfo{}, err
		}
		if move != MoveEmpty {
			return SearchInfo{
				MainLine: []Move{move},
				Time:     time.Since(e.start),
				FromBook: true,
			}, nil
		}
	}

	var ml = b.GenerateLegalMoves()
	if len(ml) == 0 {
		return SearchInfo{Time: time.Since(e.start)}, ErrNoMove
	}
	e.rng.Shuffle(len(ml), func(i, j int) {
		ml[i], ml[j] = ml[j], ml[i]
	})

	var tm *simpleTimeManager
	e.ctx, tm = newSimpleTimeManager(ctx, e.start, searchParams.Limits, &e.Options, b.WhiteMove)
	e.timeManager = tm
	defer tm.Close()

	var t = &e.thread
	t.board = b
	t.rootHistory = b.HistoryLen()
	t.nodes = 0
	iterativeDeepening(e, t, ml)
	return e.currentSearchResult(b.WhiteMove), nil
}

// BestMove searches the position given as FEN plus a space separated move list.
func (e *Engine) BestMove(ctx context.Context, fen, movesText string, limits LimitsType) (string, error) {
	var moves, err = ParseMoves(movesText)
	if err != nil {
		return "", err
	}
	info, err := e.Search(ctx, SearchParams{
		StartFen: fen,
		Moves:    moves,
		Limits:   limits,
	})
	if err != nil {
		return "", err
	}
	return info.MainLine[0].String(), nil
}

// bookMove picks the highest priority book reply that is legal here.
func (e *Engine) bookMove(b *Board, played []Move) (Move, error) {
	var entries, err = e.book.GetNextEntries(played)
	if err != nil {
		return MoveEmpty, err
	}
	var best []Move
	var bestPriority = -1
	for i := range entries {
		var entry = &entries[i]
		var move = entry.Move()
		if !b.IsLegalMove(move) {
			continue
		}
		if entry.Priority > bestPriority {
			bestPriority = entry.Priority
			best = best[:0]
		}
		if entry.Priority == bestPriority {
			best = append(best, move)
		}
	}
	if len(best) == 0 {
		return MoveEmpty, nil
	}
	return best[e.rng.Intn(len(best))], nil
}

func (e *Engine) currentSearchResult(whiteMove bool) SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    e.mainLine.score.Uci(whiteMove),
		Nodes:    e.nodes,
		Time:     time.Since(e.start),
	}
}

func (e *Engine) onIterationComplete(t *thread, depth int, score Score) bool {
	e.nodes += t.nodes
	t.nodes = 0
	const height = 0
	e.mainLine = mainLine{
		depth: depth,
		score: score,
		moves: t.stack[height].pv.toSlice(),
	}
	if e.progress != nil {
		e.progress(e.currentSearchResult(t.board.WhiteMove))
	}
	return e.timeManager.OnIterationComplete(e.mainLine)
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
