package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMakeUnmakeSymmetric plays every legal move from fen, checks the
// position after Unmake is byte-for-byte the same FEN and hash it started
// from, and that the incremental hash matches a from-scratch recomputation
// both before and after the move.
func assertMakeUnmakeSymmetric(t *testing.T, fen string) {
	t.Helper()
	b := New()
	require.NoError(t, b.LoadFEN(fen))

	startFEN := b.FEN()
	startHash := b.Hash()
	require.Equal(t, b.hashFromScratch(), startHash, "hash must match from-scratch computation before any move")

	moves := b.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		b.Make(m)
		assert.Equal(t, b.hashFromScratch(), b.Hash(), "move %s: incremental hash diverged from scratch", m)
		b.Unmake()

		assert.Equal(t, startFEN, b.FEN(), "move %s: board not restored by Unmake", m)
		assert.Equal(t, startHash, b.Hash(), "move %s: hash not restored by Unmake", m)
	}
}

func TestMakeUnmakeSymmetry(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/P7/8/8/8/8/7p/k6K w - - 0 1",
		"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
		"r3k2r/p2pqpb1/bn2pnp1/2pPN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq c6 0 2", // en-passant + castling rights together
	}
	for _, fen := range positions {
		t.Run(fen, func(t *testing.T) {
			assertMakeUnmakeSymmetric(t, fen)
		})
	}
}

func TestMakeUnmakeEnPassant(t *testing.T) {
	b := New()
	require.NoError(t, b.LoadFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"))

	before := b.FEN()
	m, err := MoveFromUCI("e5f6")
	require.NoError(t, err)

	b.Make(m)
	assert.Equal(t, NewPiece(White, Pawn), b.PieceAt(NewSquare(5, 5)), "capturing pawn should land on f6")
	assert.True(t, b.PieceAt(NewSquare(5, 4)).IsEmpty(), "captured pawn's own square must be empty after en-passant")
	b.Unmake()

	assert.Equal(t, before, b.FEN())
}

func TestMakeUnmakeCastlingRevokesRights(t *testing.T) {
	b := New()
	require.NoError(t, b.LoadFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))

	m, err := MoveFromUCI("e1g1")
	require.NoError(t, err)
	b.Make(m)

	assert.Equal(t, CastlingRight(0), b.Castling()&(CastleWhiteKingside|CastleWhiteQueenside))
	assert.True(t, b.PieceAt(NewSquare(5, 0)) == NewPiece(White, Rook))

	b.Unmake()
	assert.Equal(t, CastleAll, b.Castling())
}

func TestMakeUnmakePromotion(t *testing.T) {
	b := New()
	require.NoError(t, b.LoadFEN("8/P7/8/8/8/8/7p/k6K w - - 0 1"))
	before := b.FEN()

	m, err := MoveFromUCI("a7a8q")
	require.NoError(t, err)
	b.Make(m)
	assert.Equal(t, NewPiece(White, Queen), b.PieceAt(NewSquare(0, 7)))
	b.Unmake()

	assert.Equal(t, before, b.FEN())
}
