package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rookie-chess/rookie/pkg/common"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) (common.SearchInfo, error)
}

var (
	errSearchRunning   = errors.New("search still run")
	errUnknownCommand  = errors.New("command not found")
	errUnhandledOption = errors.New("unhandled option")
)

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	logger       zerolog.Logger
	output       io.Writer
	fen          string
	moves        []common.Move
	thinking     bool
	quitting     bool
	engineOutput chan common.SearchInfo
	searchErr    error
	cancel       context.CancelFunc
}

func New(name, author, version string, engine Engine, options []Option, logger zerolog.Logger) *Protocol {
	return &Protocol{
		name:    name,
		author:  author,
		version: version,
		engine:  engine,
		options: options,
		logger:  logger,
		fen:     common.InitialPositionFen,
	}
}

// Run serves commands from r until quit or end of input. A search still running
// at end of input is allowed to finish; quit stops it. Both print bestmove.
func (uci *Protocol) Run(r io.Reader, w io.Writer) {
	uci.output = w
	var commands = make(chan string)

	go func() {
		defer close(commands)
		uci.readCommands(r, commands)
	}()

	var searchResult common.SearchInfo
	for {
		select {
		case si, ok := <-uci.engineOutput:
			if ok {
				if si.Depth > 0 {
					fmt.Fprintln(uci.output, searchInfoToUci(si))
				}
				searchResult = si
				continue
			}
			if uci.searchErr != nil {
				uci.logger.Error().Err(uci.searchErr).Str("fen", uci.fen).Msg("search failed")
			}
			if len(searchResult.MainLine) != 0 {
				fmt.Fprintf(uci.output, "bestmove %v\n", searchResult.MainLine[0])
			} else {
				fmt.Fprintln(uci.output, "bestmove 0000")
			}
			uci.thinking = false
			uci.cancel = nil
			uci.engineOutput = nil
			uci.searchErr = nil
			searchResult = common.SearchInfo{}
			if uci.quitting {
				return
			}
		case commandLine, ok := <-commands:
			if !ok {
				if !uci.thinking {
					return
				}
				uci.quitting = true
				commands = nil
				continue
			}
			var err = uci.handle(commandLine)
			if err != nil {
				uci.logger.Warn().Err(err).Str("command", commandLine).Msg("uci command failed")
			}
			if uci.quitting && !uci.thinking {
				return
			}
		}
	}
}

func (uci *Protocol) readCommands(r io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "" {
			continue
		}
		commands <- commandLine
		if commandLine == "quit" {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		uci.logger.Error().Err(err).Msg("read commands")
	}
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if commandName == "quit" {
		uci.quitting = true
		if uci.thinking {
			uci.cancel()
		}
		return nil
	}

	if uci.thinking {
		switch commandName {
		case "stop":
			uci.cancel()
			return nil
		case "isready":
			return uci.isReadyCommand(fields)
		}
		return errSearchRunning
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "stop":
		return nil
	}

	if h == nil {
		return errUnknownCommand
	}

	return h(fields)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.output, "id name %s %s\n", uci.name, uci.version)
	fmt.Fprintf(uci.output, "id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Fprintln(uci.output, option.UciString())
	}
	fmt.Fprintln(uci.output, "uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 || fields[0] != "name" || fields[2] != "value" {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			if err := option.Set(value); err != nil {
				return fmt.Errorf("option %v: %w", name, err)
			}
			uci.logger.Debug().Str("name", name).Str("value", value).Msg("option set")
			return nil
		}
	}
	return fmt.Errorf("%w: %v", errUnhandledOption, name)
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	if !uci.thinking {
		uci.engine.Prepare()
	}
	fmt.Fprintln(uci.output, "readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("unknown position command")
	}
	var args = fields
	var token = args[0]
	var fen string
	var movesIndex = findIndexString(args, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFen
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var b, err = common.NewBoardFromFEN(fen)
	if err != nil {
		return err
	}
	var startFen = b.FEN()
	var moves []common.Move
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		moves, err = common.ParseMoves(strings.Join(args[movesIndex+1:], " "))
		if err != nil {
			return err
		}
		if err = b.ApplyMoves(moves); err != nil {
			return err
		}
	}
	uci.fen = startFen
	uci.moves = moves
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits = parseLimits(fields)
	var ctx, cancel = context.WithCancel(context.Background())
	uci.cancel = cancel
	uci.thinking = true
	var engineOutput = make(chan common.SearchInfo, 3)
	uci.engineOutput = engineOutput
	var searchParams = common.SearchParams{
		StartFen: uci.fen,
		Moves:    uci.moves,
		Limits:   limits,
		Progress: func(si common.SearchInfo) {
			select {
			case engineOutput <- si:
			default:
			}
		},
	}
	go func() {
		defer cancel()
		var searchResult, err = uci.engine.Search(ctx, searchParams)
		uci.searchErr = err
		engineOutput <- searchResult
		close(engineOutput)
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

func searchInfoToUci(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType) {
	var next = func(i int) int {
		if i+1 >= len(args) {
			return 0
		}
		var v, _ = strconv.Atoi(args[i+1])
		return v
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			result.WhiteTime = next(i)
			i++
		case "btime":
			result.BlackTime = next(i)
			i++
		case "winc":
			result.WhiteIncrement = next(i)
			i++
		case "binc":
			result.BlackIncrement = next(i)
			i++
		case "movestogo":
			result.MovesToGo = next(i)
			i++
		case "depth":
			result.Depth = next(i)
			i++
		case "movetime":
			result.MoveTime = next(i)
			i++
		case "infinite":
			result.Infinite = true
		}
	}
	return
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
