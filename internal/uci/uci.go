package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/storage"
)

// ErrUnknownMove is returned for a move string that is not legal in the
// current position.
var ErrUnknownMove = errors.New("unknown move")

// DrawSize is the edge length in pixels of boards written by "draw".
const DrawSize = 480

// SettingsStore persists engine options between sessions.
type SettingsStore interface {
	LoadSettings() (storage.Settings, error)
	SaveSettings(storage.Settings) error
}

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine *engine.Engine
	gen    *movegen.Generator
	board  *board.Board

	in  io.Reader
	out io.Writer

	depth    int
	settings SettingsStore

	// CPU profiling
	profileFile *os.File
}

// New creates a new UCI protocol handler reading commands from in and
// writing responses to out.
func New(eng *engine.Engine, gen *movegen.Generator, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		engine: eng,
		gen:    gen,
		board:  board.NewStartBoard(),
		in:     in,
		out:    out,
		depth:  engine.DefaultDepth,
	}
}

// SetSettingsStore attaches a settings store and loads the saved options.
func (u *UCI) SetSettingsStore(s SettingsStore) error {
	u.settings = s
	st, err := s.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if st.Depth > 0 {
		u.depth = st.Depth
	}
	return nil
}

// Depth returns the default search depth used by "go" without limits.
func (u *UCI) Depth() int {
	return u.depth
}

// SetDepth overrides the default search depth for this session.
func (u *UCI) SetDepth(depth int) {
	if depth > 0 && depth < engine.MaxPly {
		u.depth = depth
	}
}

// Board returns the current position.
func (u *UCI) Board() *board.Board {
	return u.board
}

// Run reads commands until "quit" or end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			if err := u.handlePosition(args); err != nil {
				u.printf("info string %v\n", err)
			}
		case "go":
			u.handleGo(args)
		case "stop":
			// Searches run synchronously; there is nothing to stop.
		case "quit":
			u.stopProfile()
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.println(u.board.String())
			if played := u.board.MovesPlayed(); len(played) > 0 {
				u.printf("Moves: %s\n", joinMoves(played))
			}
		case "eval":
			u.printf("info string eval %s\n", engine.ScoreToString(u.engine.Evaluate(u.board)))
		case "perft":
			u.handlePerft(args)
		case "draw":
			u.handleDraw(args)
		default:
			u.printf("info string unknown command: %s\n", cmd)
		}
	}

	u.stopProfile()
	return scanner.Err()
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println("")
	u.printf("option name Depth type spin default %d min 1 max %d\n", u.depth, engine.MaxPly-1)
	u.println("option name Debug type check default false")
	u.println("option name CPUProfile type string default <empty>")
	u.println("uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.board = board.NewStartBoard()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// An invalid FEN leaves the previous position in place. An unknown move
// stops the move list at that point.
func (u *UCI) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: missing arguments")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var b *board.Board
	switch args[0] {
	case "startpos":
		b = board.NewStartBoard()
	case "fen":
		var err error
		b, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			return fmt.Errorf("position: %w", err)
		}
	default:
		return fmt.Errorf("position: expected startpos or fen, got %q", args[0])
	}
	u.board = b

	if movesAt >= len(args) {
		return nil
	}
	for _, moveStr := range args[movesAt+1:] {
		m, err := u.parseMove(moveStr)
		if err != nil {
			return fmt.Errorf("position: %w", err)
		}
		u.board.MakeMove(m, u.gen)
	}
	return nil
}

// parseMove converts a UCI move string to a legal board.Move.
func (u *UCI) parseMove(moveStr string) (board.Move, error) {
	if len(moveStr) != 4 && len(moveStr) != 5 {
		return board.NoMove, fmt.Errorf("%w: %s", ErrUnknownMove, moveStr)
	}

	from, err := board.ParseSquare(moveStr[0:2])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %s", ErrUnknownMove, moveStr)
	}
	to, err := board.ParseSquare(moveStr[2:4])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %s", ErrUnknownMove, moveStr)
	}

	promo := board.NoPieceType
	if len(moveStr) == 5 {
		switch moveStr[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		default:
			return board.NoMove, fmt.Errorf("%w: %s", ErrUnknownMove, moveStr)
		}
	}

	legal := u.gen.LegalMoves(u.board)
	m, ok := legal.Find(from, to, promo)
	if !ok {
		return board.NoMove, fmt.Errorf("%w: %s", ErrUnknownMove, moveStr)
	}
	return m, nil
}

// parseGoOptions parses "go" command arguments.
func (u *UCI) parseGoOptions(args []string) engine.SearchLimits {
	var limits engine.SearchLimits

	intArg := func(i int) int {
		if i+1 >= len(args) {
			return 0
		}
		n, _ := strconv.Atoi(args[i+1])
		return n
	}
	msArg := func(i int) time.Duration {
		return time.Duration(intArg(i)) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			limits.Depth = intArg(i)
			i++
		case "movetime":
			limits.MoveTime = msArg(i)
			i++
		case "wtime":
			limits.Time[board.White.Index()] = msArg(i)
			i++
		case "btime":
			limits.Time[board.Black.Index()] = msArg(i)
			i++
		case "winc":
			limits.Inc[board.White.Index()] = msArg(i)
			i++
		case "binc":
			limits.Inc[board.Black.Index()] = msArg(i)
			i++
		case "movestogo":
			limits.MovesToGo = intArg(i)
			i++
		}
	}

	clock := limits.MoveTime > 0 || limits.Time[0] > 0 || limits.Time[1] > 0
	if limits.Depth <= 0 && !clock {
		limits.Depth = u.depth
	}
	return limits
}

// handleGo searches the current position and reports the best move.
func (u *UCI) handleGo(args []string) {
	limits := u.parseGoOptions(args)

	u.engine.OnInfo = u.sendInfo
	res := u.engine.SearchWithLimits(u.board, limits)
	u.engine.OnInfo = nil

	// NoMove renders as 0000, the UCI null move.
	u.printf("bestmove %s\n", res.Move)
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		"score " + engine.UCIScore(info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if info.BestMove != board.NoMove {
		parts = append(parts, "pv "+info.BestMove.String())
	}
	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 1 || depth >= engine.MaxPly {
			u.printf("info string invalid depth: %s\n", value)
			return
		}
		u.depth = depth
		if u.settings != nil {
			if err := u.settings.SaveSettings(storage.Settings{Depth: depth}); err != nil {
				u.printf("info string failed to save settings: %v\n", err)
			}
		}
	case "debug":
		enabled := strings.ToLower(value) == "true"
		board.DebugConsistency = enabled
		if enabled {
			u.println("info string debug consistency checks enabled")
		}
	case "cpuprofile":
		u.stopProfile()
		if value != "" && value != "stop" {
			if err := u.startProfile(value); err != nil {
				u.printf("info string %v\n", err)
			}
		}
	default:
		u.printf("info string unknown option: %s\n", name)
	}
}

func (u *UCI) startProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("start profile: %w", err)
	}
	u.profileFile = f
	u.printf("info string CPU profiling to %s\n", path)
	return nil
}

func (u *UCI) stopProfile() {
	if u.profileFile == nil {
		return
	}
	pprof.StopCPUProfile()
	u.profileFile.Close()
	u.profileFile = nil
	u.println("info string CPU profile saved")
}

// handlePerft prints per-move node counts followed by the total.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.printf("info string invalid perft depth: %s\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	var nodes uint64
	for _, e := range u.gen.Divide(u.board, depth) {
		u.printf("%s: %d\n", e.Move, e.Nodes)
		nodes += e.Nodes
	}
	elapsed := time.Since(start)

	u.printf("\nNodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

// handleDraw writes the current position as a PNG image.
func (u *UCI) handleDraw(args []string) {
	if len(args) == 0 {
		u.println("info string usage: draw <file.png>")
		return
	}
	path := strings.Join(args, " ")
	if err := render.SavePNG(path, u.board, DrawSize); err != nil {
		u.printf("info string draw: %v\n", err)
		return
	}
	u.printf("info string wrote %s\n", path)
}

func joinMoves(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
