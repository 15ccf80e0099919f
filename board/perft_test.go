package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerftStartPosition(t *testing.T) {
	b := New()
	want := []uint64{1, 20, 400, 8902, 197281, 4865609}
	for depth, n := range want {
		if depth == 0 {
			continue
		}
		assert.Equal(t, n, b.Perft(depth), "perft(%d) from start position", depth)
	}
}

// TestPerftKiwipete exercises castling, en-passant, and promotions in a
// single dense position — the standard second reference position used to
// catch move generation bugs the starting position never reaches.
func TestPerftKiwipete(t *testing.T) {
	b := New()
	require.NoError(t, b.LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))
	assert.Equal(t, uint64(48), b.Perft(1))
	assert.Equal(t, uint64(2039), b.Perft(2))
	assert.Equal(t, uint64(97862), b.Perft(3))
	assert.Equal(t, uint64(4085603), b.Perft(4))
}

func TestPerftPosition3(t *testing.T) {
	b := New()
	require.NoError(t, b.LoadFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"))
	assert.Equal(t, uint64(14), b.Perft(1))
	assert.Equal(t, uint64(191), b.Perft(2))
	assert.Equal(t, uint64(2812), b.Perft(3))
	assert.Equal(t, uint64(43238), b.Perft(4))
}

func TestPerftPosition5(t *testing.T) {
	b := New()
	require.NoError(t, b.LoadFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"))
	assert.Equal(t, uint64(44), b.Perft(1))
	assert.Equal(t, uint64(1486), b.Perft(2))
	assert.Equal(t, uint64(62379), b.Perft(3))
}

func TestDividePerftSumsToPerft(t *testing.T) {
	b := New()
	const depth = 3
	_, divide := b.DividePerft(depth)

	var sum uint64
	for _, d := range divide {
		sum += d.Nodes
	}
	assert.Equal(t, b.Perft(depth), sum, "divide's per-move counts must sum to the whole-position perft")
}
