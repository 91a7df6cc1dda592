package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rookie-chess/rookie/internal/config"
	"github.com/rookie-chess/rookie/pkg/common"
)

func perftHandler(cfg config.Config, logger zerolog.Logger, args []string) error {
	var (
		fen   = common.InitialPositionFen
		depth = 5
	)
	var flagset = flag.NewFlagSet("perft", flag.ContinueOnError)
	flagset.StringVar(&fen, "fen", fen, "start position")
	flagset.IntVar(&depth, "depth", depth, "perft depth")
	if err := flagset.Parse(args); err != nil {
		return err
	}

	var b, err = common.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	var start = time.Now()
	divide, err := perftDivide(context.Background(), b, depth)
	if err != nil {
		return err
	}
	var total = 0
	for _, item := range divide {
		fmt.Printf("%v: %v\n", item.move, item.nodes)
		total += item.nodes
	}
	fmt.Printf("\nNodes searched: %v\n", total)
	logger.Info().
		Int("depth", depth).
		Int("nodes", total).
		Dur("elapsed", time.Since(start)).
		Msg("perft")
	return nil
}

type perftItem struct {
	move  common.Move
	nodes int
}

// perftDivide counts leaf nodes per legal root move, one board copy per goroutine.
func perftDivide(ctx context.Context, b *common.Board, depth int) ([]perftItem, error) {
	if depth < 1 {
		return nil, fmt.Errorf("perft depth %v", depth)
	}
	var ml = b.GenerateLegalMoves()
	var result = make([]perftItem, len(ml))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, move := range ml {
		var i, move = i, move
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var child = b.Clone()
			if err := child.MakeMove(move); err != nil {
				return err
			}
			result[i] = perftItem{move: move, nodes: child.Perft(depth - 1)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
