// Package eval scores a position from the side-to-move's perspective:
// material, piece-square tables with a linear middlegame/endgame blend for
// pawns and kings, and a king-safety term for the pieces massed around each
// king.
package eval

import "corvidchess/board"

// Material values in centipawns. The king carries no material value; its
// safety is captured separately.
const (
	pawnValue   = 100
	knightValue = 300
	bishopValue = 320
	rookValue   = 500
	queenValue  = 900
)

// PieceValue exposes the material value of a piece type, for callers
// outside eval that need it for heuristics (move ordering's MVV-LVA term).
func PieceValue(t board.PieceType) int { return pieceValue(t) }

func pieceValue(t board.PieceType) int {
	switch t {
	case board.Pawn:
		return pawnValue
	case board.Knight:
		return knightValue
	case board.Bishop:
		return bishopValue
	case board.Rook:
		return rookValue
	case board.Queen:
		return queenValue
	default:
		return 0
	}
}

// Piece-square tables, stored from black's perspective: a black piece on sq
// reads index sq, so indices 56-63 are black's back rank (rank 8) and 0-7
// are rank 1; white pieces mirror the index via 63-sq. Pawn and king each carry separate middlegame/endgame tables that
// blend linearly; every other piece uses a single table unconditionally.
var pawnMidPST = [64]int{
	25, 25, 25, 25, 25, 25, 25, 25,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	-5, -5, -5, -5, -5, -5, -5, -5,
	-15, -2, 3, 15, 15, 3, -2, -15,
	-15, 2, 5, 5, 5, 5, 2, -15,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnEndPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	25, 25, 25, 25, 25, 25, 25, 25,
	15, 15, 15, 15, 15, 15, 15, 15,
	5, 5, 5, 5, 5, 5, 5, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-15, -15, -15, -15, -15, -15, -15, -15,
	-2, -2, -2, -2, -2, -2, -2, -2,
	-5, 0, 25, 25, 25, 25, 0, -5,
	-5, 0, 15, 25, 25, 15, 0, -5,
	-5, 0, 15, 25, 25, 15, 0, -5,
	-5, 0, 2, 2, 2, 2, 0, -5,
	-2, -2, -2, -2, -2, -2, -2, -2,
	-15, -15, -15, -15, -15, -15, -15, -15,
}

var bishopPST = [64]int{
	2, -5, -25, 0, 0, -25, -5, 2,
	2, 15, 5, 0, 0, 5, 15, 2,
	2, 5, 5, 0, 0, 5, 5, 2,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var rookPST = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPST = [64]int{
	-10, -5, -5, -2, -2, -5, -5, -10,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-2, 0, 5, 5, 5, 5, 0, -2,
	0, 0, 5, 5, 5, 5, 0, -2,
	-5, 5, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 0, 0, 0, 0, -5,
	-10, -5, -5, -2, -2, -5, -5, -10,
}

var kingMidPST = [64]int{
	-75, -75, -75, -75, -75, -75, -75, -75,
	-75, -75, -75, -75, -75, -75, -75, -75,
	-75, -75, -75, -75, -75, -75, -75, -75,
	-75, -75, -75, -75, -75, -75, -75, -75,
	-75, -75, -75, -75, -75, -75, -75, -75,
	-75, -75, -75, -75, -75, -75, -75, -75,
	25, 25, -10, -50, -50, -10, 25, 25,
	75, 50, 0, 0, 0, 0, 50, 75,
}

var kingEndPST = [64]int{
	-10, -10, -10, -10, -10, -10, -10, -10,
	-10, -5, -5, -5, -5, -5, -5, -10,
	-10, 2, 5, 5, 5, 5, 2, -10,
	-10, 2, 5, 25, 25, 5, 2, -10,
	-10, 2, 5, 25, 25, 5, 2, -10,
	-10, 2, 5, 5, 5, 5, 2, -10,
	-10, -5, -5, -5, -5, -5, -5, -10,
	-10, -10, -10, -10, -10, -10, -10, -10,
}

// piecesAroundKingValue weights an enemy piece sitting adjacent to a king by
// its own piece type, for the king-safety term.
var piecesAroundKingValue = [7]int{0, 8, 12, 12, 16, 88, 4}

// Evaluate scores b from the perspective of the side to move: positive
// means better for the mover.
func Evaluate(b *board.Board) int {
	white := evaluateSide(b, board.White)
	black := evaluateSide(b, board.Black)
	if b.Turn() == board.White {
		return white - black
	}
	return black - white
}

func evaluateSide(b *board.Board, us board.Color) int {
	score := materialScore(b, us)
	score += pstScore(b, us)
	score += kingSafety(b, us, us.Opposite())
	return score
}

func materialScore(b *board.Board, us board.Color) int {
	score := 0
	for _, t := range [...]board.PieceType{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen} {
		score += b.PieceBB(us, t).PopCount() * pieceValue(t)
	}
	return score
}

func pstIndex(sq board.Square, color board.Color) int {
	if color == board.White {
		return 63 - int(sq)
	}
	return int(sq)
}

func blend(mid, end, n int) int {
	if n > 16 {
		return mid
	}
	return mid + (end-mid)*n/32
}

func pstScore(b *board.Board, us board.Color) int {
	n := b.AllOccupied().PopCount()
	score := 0

	pawns := b.PieceBB(us, board.Pawn)
	for pawns != 0 {
		sq := pawns.PopLSB()
		idx := pstIndex(sq, us)
		score += blend(pawnMidPST[idx], pawnEndPST[idx], n)
	}

	for _, pair := range []struct {
		t     board.PieceType
		table *[64]int
	}{
		{board.Knight, &knightPST},
		{board.Bishop, &bishopPST},
		{board.Rook, &rookPST},
		{board.Queen, &queenPST},
	} {
		pieces := b.PieceBB(us, pair.t)
		for pieces != 0 {
			sq := pieces.PopLSB()
			score += pair.table[pstIndex(sq, us)]
		}
	}

	kingSq := b.KingSquare(us)
	idx := pstIndex(kingSq, us)
	score += blend(kingMidPST[idx], kingEndPST[idx], n)

	return score
}

func kingSafety(b *board.Board, us, them board.Color) int {
	kingSq := b.KingSquare(us)
	around := board.KingAttacks[kingSq] & b.Occupied(them)
	score := 0
	for around != 0 {
		sq := around.PopLSB()
		score -= piecesAroundKingValue[b.PieceAt(sq).Type()]
	}
	return score
}
