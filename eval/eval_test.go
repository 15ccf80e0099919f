package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvidchess/board"
)

func TestEvaluateStartPositionIsSymmetric(t *testing.T) {
	b := board.New()
	assert.Equal(t, 0, Evaluate(b), "the starting position is material- and PST-symmetric for both sides")
}

func TestEvaluateRewardsMaterialAdvantage(t *testing.T) {
	b := board.New()
	require.NoError(t, b.LoadFEN("4k3/8/8/8/8/8/8/RNBQKBNR w - - 0 1"))
	assert.Positive(t, Evaluate(b), "white carries a full set against a lone king")
}

func TestPieceValueOrdering(t *testing.T) {
	assert.Less(t, PieceValue(board.Pawn), PieceValue(board.Knight))
	assert.Less(t, PieceValue(board.Knight), PieceValue(board.Rook))
	assert.Less(t, PieceValue(board.Rook), PieceValue(board.Queen))
	assert.Equal(t, 0, PieceValue(board.King), "king carries no material value")
}

func TestBlendEndpoints(t *testing.T) {
	assert.Equal(t, 10, blend(10, 40, 17), "n>16 always returns the middlegame value")
	assert.Equal(t, 10, blend(10, 40, 0), "n==0 collapses the interpolation term to zero, leaving the middlegame value")
	assert.Equal(t, 10+(40-10)*16/32, blend(10, 40, 16), "n==16 is the boundary the else-branch formula itself controls")
}

func TestEvaluateIsFromSideToMovePerspective(t *testing.T) {
	white := board.New()
	require.NoError(t, white.LoadFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"))

	black := board.New()
	require.NoError(t, black.LoadFEN("4k3/8/8/8/8/8/4P3/4K3 b - - 0 1"))

	// Same material layout, same absolute advantage for white either way:
	// from white's turn the score favors the mover, from black's turn it
	// favors the opponent, so the two scores must be exact negatives.
	assert.Equal(t, Evaluate(white), -Evaluate(black))
	assert.Positive(t, Evaluate(white))
	assert.Negative(t, Evaluate(black))
}
