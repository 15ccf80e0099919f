package board

import "fmt"

// CastlingRight is a single bit of the four-bit castling-rights field.
type CastlingRight uint8

const (
	CastleWhiteKingside  CastlingRight = 1 << 0
	CastleWhiteQueenside CastlingRight = 1 << 1
	CastleBlackKingside  CastlingRight = 1 << 2
	CastleBlackQueenside CastlingRight = 1 << 3
	CastleAll            CastlingRight = CastleWhiteKingside | CastleWhiteQueenside |
		CastleBlackKingside | CastleBlackQueenside
)

var allCastlingRights = [4]CastlingRight{
	CastleWhiteKingside, CastleWhiteQueenside, CastleBlackKingside, CastleBlackQueenside,
}

// MoveDelta captures everything needed to reverse one Make call.
type MoveDelta struct {
	Move Move

	// CapturedPiece/CapturedSquare record what Make removed, if anything.
	// CapturedSquare differs from Move.To only for en-passant captures.
	CapturedPiece  Piece
	CapturedSquare Square

	PrevEnPassant   Square
	PrevHalfmove    int
	PrevCastling    CastlingRight
	WasEnPassant    bool
	WasCastleRook   bool
	RookFrom, RookTo Square
}

// maxGamePly is the initial capacity of the undo history slice. 2048 plies
// covers any game the engine will ever be asked to play or search; it is
// not a limit, since the slice grows past it on append.
const maxGamePly = 2048

// Board is the complete mutable chess position: mailbox + bitboards +
// side-to-move + castling rights + en-passant target + halfmove/fullmove
// clocks + undo history. The engine exclusively owns a Board; apart from
// LoadFEN, which replaces the whole position, Make/Unmake are its only
// mutating methods.
type Board struct {
	mailbox [64]Piece
	boards  [numBitboards]Bitboard

	turn      Color
	castling  CastlingRight
	enPassant Square
	halfmove  int
	fullmove  int
	hash      uint64

	history []MoveDelta
}

// New returns a Board set to the standard starting position.
func New() *Board {
	b := &Board{history: make([]MoveDelta, 0, maxGamePly)}
	if err := b.LoadFEN(StartFEN); err != nil {
		panic(fmt.Sprintf("board: starting FEN failed to parse: %v", err))
	}
	return b
}

// Turn returns the side to move.
func (b *Board) Turn() Color { return b.turn }

// Castling returns the current castling-rights bitfield.
func (b *Board) Castling() CastlingRight { return b.castling }

// EnPassant returns the current en-passant target square, or NoSquare.
func (b *Board) EnPassant() Square { return b.enPassant }

// Halfmove returns the halfmove clock (plies since last pawn move/capture).
func (b *Board) Halfmove() int { return b.halfmove }

// Fullmove returns the fullmove counter.
func (b *Board) Fullmove() int { return b.fullmove }

// Hash returns the current Zobrist hash.
func (b *Board) Hash() uint64 { return b.hash }

// PieceAt returns the piece occupying sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece { return b.mailbox[sq] }

// Occupied returns the union of all pieces of color c.
func (b *Board) Occupied(c Color) Bitboard { return b.boards[colorBBIndex(c)] }

// AllOccupied returns the union of every piece on the board.
func (b *Board) AllOccupied() Bitboard { return b.boards[bbAllPieces] }

// PieceBB returns the bitboard for a given color+type combination.
func (b *Board) PieceBB(c Color, t PieceType) Bitboard {
	return b.boards[pieceBBIndex(NewPiece(c, t))]
}

// KingSquare returns the square of color c's king. Per spec §9, multi-king
// positions are unsupported: exactly one king per side is assumed, and
// this returns whichever square LSB finds first if that invariant is
// violated.
func (b *Board) KingSquare(c Color) Square {
	return b.PieceBB(c, King).LSB()
}

// IsEndgame reports whether 16 or fewer pieces remain on the board, the
// count at which eval starts blending its middlegame and endgame pawn/king
// tables. eval computes that count itself and does not call IsEndgame.
func (b *Board) IsEndgame() bool {
	return b.AllOccupied().PopCount() <= 16
}

// setSquare is the single choke point that keeps the mailbox and bitboards
// in sync. It does not touch the hash; callers that
// care about the hash call pieceKey themselves around the mutation, since
// the hash must be toggled exactly once per logical piece movement, not
// once per setSquare call (placing a piece during a move and removing it
// during the same move both touch setSquare).
func (b *Board) setSquare(sq Square, p Piece) {
	if old := b.mailbox[sq]; !old.IsEmpty() {
		idx := pieceBBIndex(old)
		b.boards[idx].Clear(sq)
		b.boards[colorBBIndex(old.Color())].Clear(sq)
		b.boards[bbAllPieces].Clear(sq)
	}
	b.mailbox[sq] = p
	if !p.IsEmpty() {
		idx := pieceBBIndex(p)
		b.boards[idx].Set(sq)
		b.boards[colorBBIndex(p.Color())].Set(sq)
		b.boards[bbAllPieces].Set(sq)
	}
}

// placePiece sets p on sq (must be currently empty) and toggles its hash
// key on.
func (b *Board) placePiece(p Piece, sq Square) {
	b.setSquare(sq, p)
	b.hash ^= pieceKey(p, sq)
}

// removePieceAt clears sq (must be occupied) and toggles its hash key off.
// It returns the piece that was removed.
func (b *Board) removePieceAt(sq Square) Piece {
	p := b.mailbox[sq]
	if p.IsEmpty() {
		panic(fmt.Sprintf("board: removePieceAt called on empty square %s (fen=%s)", sq, b.FEN()))
	}
	b.hash ^= pieceKey(p, sq)
	b.setSquare(sq, NoPiece)
	return p
}

// relocatePiece moves the piece on `from` (must be occupied) to `to` (must
// be empty), updating mailbox, bitboards, and hash.
func (b *Board) relocatePiece(from, to Square) {
	p := b.mailbox[from]
	if p.IsEmpty() {
		panic(fmt.Sprintf("board: relocatePiece called with empty from-square %s (fen=%s)", from, b.FEN()))
	}
	b.hash ^= pieceKey(p, from)
	b.setSquare(from, NoPiece)
	b.setSquare(to, p)
	b.hash ^= pieceKey(p, to)
}
