package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvidchess/board"
)

func TestIterativeDeepeningFindsMateInOne(t *testing.T) {
	b := board.New()
	require.NoError(t, b.LoadFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"))

	result := New(b).IterativeDeepening(4, time.Hour)
	assert.Equal(t, "a1a8", result.BestMove.String())
	assert.Equal(t, 1, result.MateInPlies)
}

func TestIterativeDeepeningIsDeterministicAtFixedDepth(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	b1 := board.New()
	require.NoError(t, b1.LoadFEN(fen))
	r1 := New(b1).IterativeDeepening(3, time.Hour)

	b2 := board.New()
	require.NoError(t, b2.LoadFEN(fen))
	r2 := New(b2).IterativeDeepening(3, time.Hour)

	assert.Equal(t, r1.BestMove, r2.BestMove)
	assert.Equal(t, r1.Score, r2.Score)
	assert.Equal(t, r1.Nodes, r2.Nodes)
}

func TestIterativeDeepeningLeavesBoardUnchanged(t *testing.T) {
	b := board.New()
	before := b.FEN()
	New(b).IterativeDeepening(3, time.Hour)
	assert.Equal(t, before, b.FEN(), "search must restore the board via Make/Unmake symmetry")
}

func TestIterativeDeepeningRespectsBudget(t *testing.T) {
	b := board.New()
	result := New(b).IterativeDeepening(64, 20*time.Millisecond)
	assert.False(t, result.BestMove.IsNull(), "a tiny budget must still complete at least depth 1")
	assert.Less(t, result.Depth, 64, "an impossible depth under a tiny budget must be cut short")
}

func TestMateDistance(t *testing.T) {
	mateIn, ok := mateDistance(posInf - 3)
	assert.True(t, ok)
	assert.Equal(t, 3, mateIn)

	_, ok = mateDistance(150)
	assert.False(t, ok, "an ordinary centipawn score is not a mate score")
}
