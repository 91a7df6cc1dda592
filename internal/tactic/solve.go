package tactic

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rookie-chess/rookie/pkg/common"
	"github.com/rookie-chess/rookie/pkg/engine"
)

type Searcher interface {
	Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error)
}

type Result struct {
	Total  int
	Solved int
	Failed []EpdItem
}

type solveResult struct {
	index  int
	solved bool
	move   common.Move
}

// SolveTactic searches every item with its own searcher per worker.
// Failed keeps the input order.
func SolveTactic(
	ctx context.Context,
	tests []EpdItem,
	newSearcher func() Searcher,
	limits common.LimitsType,
	concurrency int,
	logger zerolog.Logger,
) (Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)

	var indexes = make(chan int)
	var results = make(chan solveResult)

	g.Go(func() error {
		defer close(indexes)
		for i := range tests {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case indexes <- i:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return solveItems(ctx, tests, newSearcher(), limits, indexes, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var solved = make([]bool, len(tests))
	var result = Result{Total: len(tests)}
	for res := range results {
		solved[res.index] = res.solved
		var test = &tests[res.index]
		if res.solved {
			result.Solved++
		}
		logger.Debug().
			Str("id", test.ID).
			Str("fen", test.Fen).
			Stringer("move", res.move).
			Bool("solved", res.solved).
			Msg("tactic")
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	for i := range tests {
		if !solved[i] {
			result.Failed = append(result.Failed, tests[i])
		}
	}
	logger.Info().
		Int("solved", result.Solved).
		Int("total", result.Total).
		Msg("tactic finished")
	return result, nil
}

func solveItems(
	ctx context.Context,
	tests []EpdItem,
	searcher Searcher,
	limits common.LimitsType,
	indexes <-chan int,
	results chan<- solveResult,
) error {
	for index := range indexes {
		var test = &tests[index]
		var info, err = searcher.Search(ctx, common.SearchParams{
			StartFen: test.Fen,
			Limits:   limits,
		})
		if err != nil && !errors.Is(err, engine.ErrNoMove) {
			return err
		}
		var res = solveResult{index: index}
		if len(info.MainLine) != 0 {
			res.move = info.MainLine[0]
			res.solved = containsMove(test.BestMoves, res.move)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- res:
		}
	}
	return nil
}

func containsMove(ml []common.Move, move common.Move) bool {
	for _, m := range ml {
		if m == move {
			return true
		}
	}
	return false
}
