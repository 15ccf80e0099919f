package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"rnbq1bnr/ppppkppp/8/4p3/4P3/8/PPPPKPPP/RNBQ1BNR w - - 2 3",
		"8/P7/8/8/8/8/7p/k6K w - - 0 1",
		"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	}
	for _, fen := range cases {
		t.Run(fen, func(t *testing.T) {
			b := &Board{history: make([]MoveDelta, 0, 8)}
			require.NoError(t, b.LoadFEN(fen))
			assert.Equal(t, fen, b.FEN())
		})
	}
}

func TestLoadFENRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"too few fields":     "8/8/8/8/8/8/8/8 w - - 0",
		"bad rank count":     "8/8/8/8/8/8/8 w KQkq - 0 1",
		"rank overflow":      "9/8/8/8/8/8/8/8 w - - 0 1",
		"bad active color":   "8/8/8/8/8/8/8/8 x - - 0 1",
		"bad castling char":  "8/8/8/8/8/8/8/8 w X - 0 1",
		"bad en passant rank": "8/8/8/8/8/8/8/8 w - e4 0 1",
		"negative halfmove":  "8/8/8/8/8/8/8/8 w - - -1 1",
		"zero fullmove":      "8/8/8/8/8/8/8/8 w - - 0 0",
	}
	for name, fen := range cases {
		t.Run(name, func(t *testing.T) {
			b := New()
			before := b.FEN()
			err := b.LoadFEN(fen)
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
			assert.Equal(t, before, b.FEN(), "board must be left unchanged on a parse error")
		})
	}
}

func TestNewIsStartPosition(t *testing.T) {
	b := New()
	assert.Equal(t, StartFEN, b.FEN())
	assert.Equal(t, White, b.Turn())
	assert.Equal(t, CastleAll, b.Castling())
	assert.Equal(t, NoSquare, b.EnPassant())
}
