package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rookie-chess/rookie/internal/config"
	"github.com/rookie-chess/rookie/pkg/book"
	"github.com/rookie-chess/rookie/pkg/common"
)

func makeBookHandler(cfg config.Config, logger zerolog.Logger, args []string) error {
	var (
		input    = "books/openings.txt"
		output   = cfg.Book.Path
		maxPlies = 16
	)
	var flagset = flag.NewFlagSet("makebook", flag.ContinueOnError)
	flagset.StringVar(&input, "i", input, "opening lines, one game per line: moves then optional result")
	flagset.StringVar(&output, "o", output, "book file to write")
	flagset.IntVar(&maxPlies, "plies", maxPlies, "maximum plies kept per line")
	if err := flagset.Parse(args); err != nil {
		return err
	}

	var file, err = os.Open(input)
	if err != nil {
		return err
	}
	defer file.Close()

	builder, lines, err := readOpeningLines(file, maxPlies, logger)
	if err != nil {
		return err
	}
	if err = builder.Save(output); err != nil {
		return err
	}
	logger.Info().Str("output", output).Int("lines", lines).Msg("opening book written")
	return nil
}

var results = map[string]book.Result{
	"1-0":     book.ResultWhiteWins,
	"0-1":     book.ResultBlackWins,
	"1/2-1/2": book.ResultDraw,
	"*":       book.ResultUnknown,
}

// readOpeningLines replays every line from the initial position; illegal lines are skipped.
func readOpeningLines(r io.Reader, maxPlies int, logger zerolog.Logger) (*book.Builder, int, error) {
	var builder = book.NewBuilder()
	var count = 0
	var scanner = bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		var fields = strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		var result = book.ResultUnknown
		if res, ok := results[fields[len(fields)-1]]; ok {
			result = res
			fields = fields[:len(fields)-1]
		}
		if len(fields) > maxPlies {
			fields = fields[:maxPlies]
		}
		var line, err = parseOpeningLine(fields)
		if err != nil {
			logger.Warn().Err(err).Int("line", lineNumber).Msg("skip opening line")
			continue
		}
		builder.Add(line, result)
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return builder, count, nil
}

func parseOpeningLine(fields []string) ([]common.Move, error) {
	var ml, err = common.ParseMoves(strings.Join(fields, " "))
	if err != nil {
		return nil, err
	}
	if len(ml) == 0 {
		return nil, fmt.Errorf("empty line")
	}
	b, err := common.NewBoardFromFEN(common.InitialPositionFen)
	if err != nil {
		return nil, err
	}
	if err = b.ApplyMoves(ml); err != nil {
		return nil, err
	}
	return ml, nil
}
