package uci

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corvidchess/internal/config"
)

func runCommands(t *testing.T, commands ...string) []string {
	t.Helper()
	in := strings.NewReader(strings.Join(commands, "\n") + "\nquit\n")
	var out bytes.Buffer

	err := Run(in, &out, zap.NewNop().Sugar(), config.Default())
	require.NoError(t, err)

	var lines []string
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func TestUCIHandshake(t *testing.T) {
	lines := runCommands(t, "uci")
	assert.Contains(t, lines, "uciok")
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "id name ") {
			found = true
		}
	}
	assert.True(t, found, "expected an 'id name ...' line")
}

func TestIsReady(t *testing.T) {
	lines := runCommands(t, "isready")
	assert.Equal(t, []string{"readyok"}, lines)
}

func TestPositionAndGetFENRoundTrip(t *testing.T) {
	lines := runCommands(t, "position startpos moves e2e4 e7e5", "getfen")
	require.Len(t, lines, 1)
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", lines[0])
}

func TestPositionFEN(t *testing.T) {
	fen := "8/P7/8/8/8/8/7p/k6K w - - 0 1"
	lines := runCommands(t, "position fen "+fen, "getfen")
	require.Len(t, lines, 1)
	assert.Equal(t, fen, lines[0])
}

func TestGetMovesFromStartPosition(t *testing.T) {
	lines := runCommands(t, "getmoves")
	require.Len(t, lines, 1)
	assert.Len(t, strings.Fields(lines[0]), 20)
}

func TestGetGameWinnerReportsNoneMidgame(t *testing.T) {
	lines := runCommands(t, "getgamewinner")
	assert.Equal(t, []string{"none"}, lines)
}

func TestGetGameWinnerReportsCheckmate(t *testing.T) {
	lines := runCommands(t,
		"position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1 moves a1a8",
		"getgamewinner")
	assert.Equal(t, []string{"white"}, lines)
}

func TestGetGameWinnerReportsDraw(t *testing.T) {
	lines := runCommands(t,
		"position fen k7/8/1Q6/8/8/8/8/6K1 b - - 0 1",
		"getgamewinner")
	assert.Equal(t, []string{"draw"}, lines)
}

func TestGetGameWinnerReportsDrawOnFiftyMoveRule(t *testing.T) {
	lines := runCommands(t,
		"position fen rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 100 50",
		"getgamewinner")
	assert.Equal(t, []string{"draw"}, lines, "halfmove clock at 100 is a draw even with legal moves available")
}

func TestGoPerft(t *testing.T) {
	lines := runCommands(t, "go perft 3")
	require.Len(t, lines, 1)
	assert.Equal(t, "perft 3: 8902", lines[0])
}

func TestGoPerftDivideSumsToTotal(t *testing.T) {
	lines := runCommands(t, "go perft 2 -d")
	require.True(t, len(lines) > 1)
	assert.Equal(t, "perft 1: 20", lines[0])
	assert.Equal(t, "perft 2: 400", lines[1])

	var sum int
	for _, l := range lines[2:] {
		fields := strings.Fields(l)
		require.Len(t, fields, 2)
		n, err := strconv.Atoi(fields[1])
		require.NoError(t, err)
		sum += n
	}
	assert.Equal(t, 400, sum)
}

func TestInvalidCommandReportsError(t *testing.T) {
	lines := runCommands(t, "notacommand")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "info string error:")
}

func TestInvalidMoveDuringPositionLeavesBoardUnchanged(t *testing.T) {
	lines := runCommands(t, "position startpos moves z9z9", "getfen")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "info string error:")
	assert.Contains(t, lines[1], "rnbqkbnr")
}
