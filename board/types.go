// Package board implements the chess position: mailbox+bitboard
// representation, make/unmake with full state reversal, legal move
// generation, FEN parsing/emission, and the incremental Zobrist hash.
package board

import (
	"fmt"
	"strings"
)

// Square is a board square, 0-63, rank-major: A1 = 0, H8 = 63.
type Square int8

// NoSquare represents an absent square (no en-passant target, etc).
const NoSquare Square = -1

// NewSquare builds a Square from 0-based file (a=0..h=7) and rank (1=0..8=7).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// Rank returns the 0-based rank (0 = rank 1).
func (s Square) Rank() int { return int(s) >> 3 }

// File returns the 0-based file (0 = file a).
func (s Square) File() int { return int(s) & 7 }

// String renders algebraic notation, e.g. "e4", or "-" for NoSquare.
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+rune(s.File()), '1'+rune(s.Rank()))
}

// SquareFromString parses algebraic notation ("e4") into a Square.
func SquareFromString(coord string) (Square, error) {
	if len(coord) != 2 {
		return NoSquare, fmt.Errorf("board: invalid square %q", coord)
	}
	file := coord[0] - 'a'
	rank := coord[1] - '1'
	if file > 7 || rank > 7 {
		return NoSquare, fmt.Errorf("board: invalid square %q", coord)
	}
	return NewSquare(int(file), int(rank)), nil
}

// Color is the side owning a piece, or the side to move.
type Color uint8

const (
	White Color = 8
	Black Color = 16
)

// Opposite returns the other color. XOR with 24 flips bit 3 and bit 4,
// which is exactly the difference between 8 (White) and 16 (Black).
func (c Color) Opposite() Color { return c ^ 24 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is the kind of chess piece, independent of color.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

const (
	typeMask  uint8 = 0x07
	colorMask uint8 = 0x18
)

// Piece packs a PieceType (low 3 bits) and Color (bits 3-4) into one byte.
// The zero value, NoPiece, means an empty square.
type Piece uint8

const NoPiece Piece = 0

// NewPiece builds a Piece from a color and a type.
func NewPiece(c Color, t PieceType) Piece {
	return Piece(uint8(c) | uint8(t))
}

// Type extracts the piece type.
func (p Piece) Type() PieceType { return PieceType(uint8(p) & typeMask) }

// Color extracts the piece color. Only meaningful when !p.IsEmpty().
func (p Piece) Color() Color { return Color(uint8(p) & colorMask) }

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool { return p == NoPiece }

// pieceLetters maps a PieceType to its lowercase FEN/UCI letter, indexed
// by PieceType (index 0 is unused/empty).
var pieceLetters = [7]byte{0, 'p', 'n', 'b', 'r', 'q', 'k'}

// Letter returns the FEN character for the piece: uppercase for white,
// lowercase for black, ' ' for an empty square.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return ' '
	}
	l := pieceLetters[p.Type()]
	if p.Color() == White {
		return l - ('a' - 'A')
	}
	return l
}

// PieceTypeFromLetter parses a FEN/UCI piece letter (case-insensitive) into
// a PieceType. It returns an error on any character that is not one of
// pnbrqk.
func PieceTypeFromLetter(c byte) (PieceType, error) {
	switch c | 0x20 { // lowercase
	case 'p':
		return Pawn, nil
	case 'n':
		return Knight, nil
	case 'b':
		return Bishop, nil
	case 'r':
		return Rook, nil
	case 'q':
		return Queen, nil
	case 'k':
		return King, nil
	default:
		return NoPieceType, fmt.Errorf("board: unknown piece letter %q", string(c))
	}
}

// PieceFromLetter parses a FEN board-placement letter (upper = white, lower
// = black) into a Piece.
func PieceFromLetter(c byte) (Piece, error) {
	t, err := PieceTypeFromLetter(c)
	if err != nil {
		return NoPiece, err
	}
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
	}
	return NewPiece(color, t), nil
}

// PromotionFlag is the 4-bit promotion choice carried in Move.Promo.
type PromotionFlag uint8

const (
	NoPromotion      PromotionFlag = 0
	KnightPromotion  PromotionFlag = 1
	BishopPromotion  PromotionFlag = 2
	RookPromotion    PromotionFlag = 4
	QueenPromotion   PromotionFlag = 8
)

// PieceType returns the promoted-to piece type, or NoPieceType if none.
func (f PromotionFlag) PieceType() PieceType {
	switch f {
	case QueenPromotion:
		return Queen
	case RookPromotion:
		return Rook
	case BishopPromotion:
		return Bishop
	case KnightPromotion:
		return Knight
	default:
		return NoPieceType
	}
}

func (f PromotionFlag) letter() byte {
	switch f {
	case QueenPromotion:
		return 'q'
	case RookPromotion:
		return 'r'
	case BishopPromotion:
		return 'b'
	case KnightPromotion:
		return 'n'
	default:
		return 0
	}
}

func promotionFromLetter(c byte) PromotionFlag {
	switch c {
	case 'q':
		return QueenPromotion
	case 'r':
		return RookPromotion
	case 'b':
		return BishopPromotion
	case 'n':
		return KnightPromotion
	default:
		return NoPromotion
	}
}

// Move is a single from/to/promotion triple. The null move has
// From == To == 0 and no promotion flag.
type Move struct {
	From, To Square
	Promo    PromotionFlag
}

// NullMove is the sentinel "no move" value.
var NullMove = Move{}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m.From == 0 && m.To == 0 && m.Promo == NoPromotion
}

// String renders m in UCI move notation ("e2e4", "a7a8q").
func (m Move) String() string {
	if l := m.Promo.letter(); l != 0 {
		return fmt.Sprintf("%s%s%c", m.From, m.To, l)
	}
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// MoveFromUCI parses a 4 or 5 character UCI move string.
func MoveFromUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("board: invalid UCI move %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return Move{}, err
	}
	var promo PromotionFlag
	if len(s) == 5 {
		promo = promotionFromLetter(strings.ToLower(s[4:5])[0])
		if promo == NoPromotion {
			return Move{}, fmt.Errorf("board: invalid promotion letter in %q", s)
		}
	}
	return Move{From: from, To: to, Promo: promo}, nil
}

// MoveLine represents a ray (rank, file, or diagonal) between two squares,
// inclusive of both endpoints, used to test pins and checks.
type MoveLine struct {
	From, To Square
}

// NullMoveLine is the "no line" sentinel.
var NullMoveLine = MoveLine{From: -1, To: -1}

// IsNull reports whether l carries no line.
func (l MoveLine) IsNull() bool { return l.From == -1 && l.To == -1 }

// InLine reports whether sq lies on the ray between From and To, inclusive,
// enforcing rank/file/diagonal constraints exactly rather than by modular
// arithmetic alone.
func (l MoveLine) InLine(sq Square) bool {
	fr, ff := l.From.Rank(), l.From.File()
	tr, tf := l.To.Rank(), l.To.File()
	sr, sf := sq.Rank(), sq.File()

	switch {
	case fr == tr && ff != tf: // horizontal
		return sr == fr && between(sf, ff, tf)
	case fr != tr && ff == tf: // vertical
		return sf == ff && between(sr, fr, tr)
	case abs(fr-tr) == abs(ff-tf) && fr != tr: // diagonal (either slope)
		if abs(sr-fr) != abs(sf-ff) {
			return false
		}
		// sq must be collinear with From->To, i.e. rank and file deltas
		// from From have the same sign/ratio as the line's own delta.
		rankStep := sign(tr - fr)
		fileStep := sign(tf - ff)
		if sign(sr-fr) != 0 && sign(sr-fr) != rankStep {
			return false
		}
		if sign(sf-ff) != 0 && sign(sf-ff) != fileStep {
			return false
		}
		return between(sr, fr, tr) && between(sf, ff, tf)
	default:
		return false
	}
}

func between(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
