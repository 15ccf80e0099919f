package board

import "math/bits"

// Bitboard is a 64-bit mask, bit k set meaning square k is occupied.
type Bitboard uint64

// Index into Board.boards: one bitboard per color*piece-type, plus three
// aggregates. Bit index equals square index.
const (
	bbWhitePawn = iota
	bbWhiteKnight
	bbWhiteBishop
	bbWhiteRook
	bbWhiteQueen
	bbWhiteKing
	bbBlackPawn
	bbBlackKnight
	bbBlackBishop
	bbBlackRook
	bbBlackQueen
	bbBlackKing
	bbAllWhite
	bbAllBlack
	bbAllPieces
	numBitboards
)

func pieceBBIndex(p Piece) int {
	idx := int(p.Type()) - 1
	if p.Color() == Black {
		idx += 6
	}
	return idx
}

func colorBBIndex(c Color) int {
	if c == White {
		return bbAllWhite
	}
	return bbAllBlack
}

// Set sets bit sq.
func (b *Bitboard) Set(sq Square) { *b |= 1 << uint(sq) }

// Clear clears bit sq.
func (b *Bitboard) Clear(sq Square) { *b &^= 1 << uint(sq) }

// Has reports whether bit sq is set.
func (b Bitboard) Has(sq Square) bool { return b&(1<<uint(sq)) != 0 }

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the square of the least significant set bit. Undefined on an
// empty bitboard (returns 64, out of board range).
func (b Bitboard) LSB() Square { return Square(bits.TrailingZeros64(uint64(b))) }

// PopLSB returns the square of the least significant set bit and clears it.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Empty reports whether no bits are set.
func (b Bitboard) Empty() bool { return b == 0 }
