package tactic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rookie-chess/rookie/pkg/common"
)

// EpdItem is one test position with its accepted best moves.
type EpdItem struct {
	ID        string
	Content   string
	Fen       string
	BestMoves []common.Move
}

func LoadEpd(filePath string, logger zerolog.Logger) ([]EpdItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadEpd(file, logger)
}

// ReadEpd skips malformed lines with a warning.
func ReadEpd(r io.Reader, logger zerolog.Logger) ([]EpdItem, error) {
	var result []EpdItem
	var scanner = bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var test, err = parseEpdTest(line)
		if err != nil {
			logger.Warn().Err(err).Int("line", lineNumber).Msg("skip epd line")
			continue
		}
		result = append(result, test)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func parseEpdTest(s string) (EpdItem, error) {
	var bmBegin = strings.Index(s, " bm ")
	if bmBegin < 0 {
		return EpdItem{}, fmt.Errorf("no best move %v", s)
	}
	var bmEnd = strings.Index(s[bmBegin:], ";")
	if bmEnd < 0 {
		return EpdItem{}, fmt.Errorf("unterminated best move %v", s)
	}
	bmEnd += bmBegin
	var fen = strings.TrimSpace(s[:bmBegin])
	var sBestMoves = strings.Fields(s[bmBegin+len(" bm ") : bmEnd])

	var b, err = common.NewBoardFromFEN(fen)
	if err != nil {
		return EpdItem{}, err
	}

	var bestMoves []common.Move
	for _, sBestMove := range sBestMoves {
		var move = b.ParseMoveSAN(sBestMove)
		if move == common.MoveEmpty {
			return EpdItem{}, fmt.Errorf("parse move failed %v", s)
		}
		bestMoves = append(bestMoves, move)
	}
	if len(bestMoves) == 0 {
		return EpdItem{}, fmt.Errorf("empty best moves %v", s)
	}

	return EpdItem{
		ID:        parseID(s[bmEnd:]),
		Content:   s,
		Fen:       b.FEN(),
		BestMoves: bestMoves,
	}, nil
}

func parseID(operations string) string {
	var index = strings.Index(operations, "id ")
	if index < 0 {
		return ""
	}
	var value = operations[index+len("id "):]
	if end := strings.Index(value, ";"); end >= 0 {
		value = value[:end]
	}
	return strings.Trim(strings.TrimSpace(value), "\"")
}
