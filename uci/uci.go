// Package uci implements the engine's line-based, UCI-flavored command
// surface: a read-eval-print loop over an io.Reader/io.Writer pair, backed
// by a single board.Board and search.Searcher.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/cpuid/v2"
	"go.uber.org/zap"

	"corvidchess/board"
	"corvidchess/internal/config"
	"corvidchess/search"
)

const (
	engineName   = "corvidchess 1.0"
	engineAuthor = "corvidchess contributors"
)

// CommandError is an Invalid Input error per spec §7: an unrecognized
// command token, or a UCI move / FEN the command couldn't parse. The
// engine's state is left unchanged.
type CommandError struct {
	Command string
	Reason  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("uci: %s: %s", e.Command, e.Reason)
}

// Engine holds the single Board this front-end owns, per spec §9's
// ownership rule, plus the configuration it was started with.
type Engine struct {
	b   *board.Board
	cfg config.Config
	log *zap.SugaredLogger
	out io.Writer
}

// New constructs an Engine at the standard starting position.
func New(cfg config.Config, log *zap.SugaredLogger, out io.Writer) *Engine {
	return &Engine{b: board.New(), cfg: cfg, log: log, out: out}
}

// Run reads commands from in until `quit` or EOF, writing protocol replies
// to the Engine's configured output. It returns nil on a clean `quit`.
func Run(in io.Reader, out io.Writer, log *zap.SugaredLogger, cfg config.Config) error {
	e := New(cfg, log, out)
	log.Infow("cpu features detected", "popcnt", cpuid.CPU.Supports(cpuid.POPCNT), "bmi1", cpuid.CPU.Supports(cpuid.BMI1))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := e.dispatch(line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// dispatch handles one command line. It recovers from the Illegal
// Operation / Capacity Exceeded panics described in spec §7 — the single
// recovery point in the whole engine — so a generation or make/unmake bug
// is reported without killing the process mid-game.
func (e *Engine) dispatch(line string) (quit bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("recovered panic handling command", "command", line, "panic", r)
			fmt.Fprintf(e.out, "info string fatal: %v\n", r)
		}
	}()

	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		fmt.Fprintf(e.out, "id name %s\n", engineName)
		fmt.Fprintf(e.out, "id author %s\n", engineAuthor)
		fmt.Fprintln(e.out, "uciok")
	case "isready":
		fmt.Fprintln(e.out, "readyok")
	case "ucinewgame":
		e.b = board.New()
	case "position":
		if err := e.handlePosition(args); err != nil {
			e.reportInvalid(cmd, err)
		}
	case "go":
		e.handleGo(args)
	case "getfen":
		fmt.Fprintln(e.out, e.b.FEN())
	case "d", "showboard":
		e.printBoard()
	case "getmoves":
		e.printMoves()
	case "getbestmove":
		e.handleGetBestMove(args)
	case "getbestpiece":
		e.handleGetBestPiece(args)
	case "getgamewinner":
		fmt.Fprintln(e.out, e.gameWinner())
	case "quit":
		return true
	default:
		e.reportInvalid(cmd, &CommandError{Command: cmd, Reason: "unrecognized command"})
	}
	return false
}

func (e *Engine) reportInvalid(cmd string, err error) {
	e.log.Warnw("invalid input", "command", cmd, "error", err)
	fmt.Fprintf(e.out, "info string error: %v\n", err)
}

func (e *Engine) handlePosition(args []string) error {
	if len(args) == 0 {
		return &CommandError{Command: "position", Reason: "missing startpos/fen"}
	}

	var b *board.Board
	var moveArgs []string
	switch args[0] {
	case "startpos":
		b = board.New()
		moveArgs = args[1:]
	case "fen":
		if len(args) < 7 {
			return &CommandError{Command: "position", Reason: "fen requires 6 fields"}
		}
		fen := strings.Join(args[1:7], " ")
		b = board.New()
		if err := b.LoadFEN(fen); err != nil {
			return err
		}
		moveArgs = args[7:]
	default:
		return &CommandError{Command: "position", Reason: "expected startpos or fen"}
	}

	if len(moveArgs) > 0 && moveArgs[0] == "moves" {
		moveArgs = moveArgs[1:]
	}
	for _, s := range moveArgs {
		m, err := board.MoveFromUCI(s)
		if err != nil {
			return err
		}
		b.Make(m)
	}
	e.b = b
	return nil
}

func (e *Engine) handleGo(args []string) {
	if len(args) > 0 && args[0] == "perft" {
		e.handlePerft(args[1:])
		return
	}
	e.reportInvalid("go", &CommandError{Command: "go", Reason: "only 'go perft <depth> [-d]' is implemented outside getbestmove"})
}

func (e *Engine) handlePerft(args []string) {
	if len(args) == 0 {
		e.reportInvalid("go perft", &CommandError{Command: "go perft", Reason: "missing depth"})
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		e.reportInvalid("go perft", &CommandError{Command: "go perft", Reason: "depth must be a non-negative integer"})
		return
	}
	multi := len(args) > 1 && args[1] == "-d"

	if !multi {
		fmt.Fprintf(e.out, "perft %d: %d\n", depth, e.b.Perft(depth))
		return
	}

	perDepth, divide := e.b.DividePerft(depth)
	for d := 1; d <= depth; d++ {
		fmt.Fprintf(e.out, "perft %d: %d\n", d, perDepth[d])
	}
	for _, entry := range divide {
		fmt.Fprintf(e.out, "%s: %d\n", entry.Move.String(), entry.Nodes)
	}
}

func (e *Engine) printBoard() {
	fmt.Fprintln(e.out, renderBoard(e.b))
	fmt.Fprintf(e.out, "fen: %s\n", e.b.FEN())
	fmt.Fprintf(e.out, "hash: %016x\n", e.b.Hash())
}

func renderBoard(b *board.Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			p := b.PieceAt(board.NewSquare(file, rank))
			sb.WriteByte(' ')
			if p.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(p.Letter())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (e *Engine) printMoves() {
	moves := e.b.GenerateLegalMoves()
	parts := make([]string, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		parts[i] = moves.At(i).String()
	}
	fmt.Fprintln(e.out, strings.Join(parts, " "))
}

// parseDepthAndBudget parses the shared "<depth> [ms]" argument shape used
// by getbestmove/getbestpiece.
func (e *Engine) parseDepthAndBudget(cmd string, args []string) (depth int, budget time.Duration, ok bool) {
	if len(args) == 0 {
		e.reportInvalid(cmd, &CommandError{Command: cmd, Reason: "missing depth"})
		return 0, 0, false
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		e.reportInvalid(cmd, &CommandError{Command: cmd, Reason: "depth must be a positive integer"})
		return 0, 0, false
	}
	budget = e.cfg.PerMoveBudget(int64(e.cfg.BulletThresholdMillis) + 1)
	if len(args) > 1 {
		ms, err := strconv.Atoi(args[1])
		if err != nil || ms < 0 {
			e.reportInvalid(cmd, &CommandError{Command: cmd, Reason: "time must be a non-negative integer"})
			return 0, 0, false
		}
		budget = time.Duration(ms) * time.Millisecond
	}
	return depth, budget, true
}

func (e *Engine) handleGetBestMove(args []string) {
	depth, budget, ok := e.parseDepthAndBudget("getbestmove", args)
	if !ok {
		return
	}
	result := search.New(e.b).IterativeDeepening(depth, budget)
	fmt.Fprintf(e.out, "%s %s\n", result.BestMove.String(), e.formatEval(result))
}

func (e *Engine) handleGetBestPiece(args []string) {
	depth, budget, ok := e.parseDepthAndBudget("getbestpiece", args)
	if !ok {
		return
	}
	result := search.New(e.b).IterativeDeepening(depth, budget)
	piece := e.b.PieceAt(result.BestMove.From)
	fmt.Fprintf(e.out, "%c %s\n", piece.Letter(), e.formatEval(result))
}

func (e *Engine) formatEval(r search.Result) string {
	if r.MateInPlies != 0 {
		moves := (r.MateInPlies + 1) / 2
		if r.MateInPlies < 0 {
			moves = (r.MateInPlies - 1) / 2
		}
		return fmt.Sprintf("mate %d", moves)
	}
	return strconv.Itoa(r.Score)
}

func (e *Engine) gameWinner() string {
	if e.b.IsCheckmate() {
		if e.b.Turn() == board.White {
			return "black"
		}
		return "white"
	}
	if e.b.IsStalemate() {
		return "draw"
	}
	return "none"
}
