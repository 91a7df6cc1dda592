package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/rookie-chess/rookie/internal/boardimage"
	"github.com/rookie-chess/rookie/internal/config"
	"github.com/rookie-chess/rookie/pkg/common"
)

func svgHandler(cfg config.Config, logger zerolog.Logger, args []string) error {
	var (
		fen    = common.InitialPositionFen
		moves  = ""
		output = "board.svg"
		flip   = false
	)
	var flagset = flag.NewFlagSet("svg", flag.ContinueOnError)
	flagset.StringVar(&fen, "fen", fen, "start position")
	flagset.StringVar(&moves, "moves", moves, "space separated moves played from fen")
	flagset.StringVar(&output, "o", output, "output file")
	flagset.BoolVar(&flip, "flip", flip, "draw from Black's side")
	if err := flagset.Parse(args); err != nil {
		return err
	}

	var b, err = common.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	ml, err := common.ParseMoves(moves)
	if err != nil {
		return err
	}
	if err = b.ApplyMoves(ml); err != nil {
		return err
	}

	var options = boardimage.DefaultOptions()
	options.Flip = flip
	if last := b.LastMove(); last != common.MoveEmpty {
		options.Highlight = []common.Square{last.From, last.To}
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	boardimage.Write(file, b, options)
	if err = file.Close(); err != nil {
		return err
	}
	logger.Info().Str("fen", b.FEN()).Str("output", output).Msg("board image written")
	return nil
}
