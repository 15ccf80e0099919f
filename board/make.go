package board

import "fmt"

// Named squares used only for recognizing/performing castling.
const (
	sqA1 Square = 0
	sqC1 Square = 2
	sqD1 Square = 3
	sqE1 Square = 4
	sqF1 Square = 5
	sqG1 Square = 6
	sqH1 Square = 7
	sqA8 Square = 56
	sqC8 Square = 58
	sqD8 Square = 59
	sqE8 Square = 60
	sqF8 Square = 61
	sqG8 Square = 62
	sqH8 Square = 63
)

// Make mutates the board in place to play m and pushes the MoveDelta
// needed to reverse it. It panics (an Illegal Operation per spec §7) if
// From is empty, since that can only happen from a bug in move generation
// or a caller that bypassed legality checking.
func (b *Board) Make(m Move) {
	movingPiece := b.mailbox[m.From]
	if movingPiece.IsEmpty() {
		panic(fmt.Sprintf("board: Make called with empty from-square %s (fen=%s)", m.From, b.FEN()))
	}
	color := movingPiece.Color()
	movingType := movingPiece.Type()

	delta := MoveDelta{
		Move:          m,
		PrevEnPassant: b.enPassant,
		PrevHalfmove:  b.halfmove,
		PrevCastling:  b.castling,
		CapturedSquare: NoSquare,
	}

	isEnPassant := movingType == Pawn && m.To == b.enPassant && m.From.File() != m.To.File()
	isCastle := movingType == King && (m.From == sqE1 || m.From == sqE8) && abs(m.To.File()-m.From.File()) == 2

	if isEnPassant {
		capSq := epCaptureSquare(m.To, color)
		delta.CapturedPiece = b.removePieceAt(capSq)
		delta.CapturedSquare = capSq
		delta.WasEnPassant = true
	} else if target := b.mailbox[m.To]; !target.IsEmpty() {
		delta.CapturedPiece = b.removePieceAt(m.To)
		delta.CapturedSquare = m.To
	}

	b.relocatePiece(m.From, m.To)

	if m.Promo != NoPromotion {
		b.removePieceAt(m.To)
		b.placePiece(NewPiece(color, m.Promo.PieceType()), m.To)
	}

	if isCastle {
		delta.WasCastleRook = true
		delta.RookFrom, delta.RookTo = castleRookSquares(m.To)
		b.relocatePiece(delta.RookFrom, delta.RookTo)
	}

	prevEP := b.enPassant
	b.enPassant = NoSquare
	if movingType == Pawn && abs(int(m.To)-int(m.From)) == 16 {
		b.enPassant = Square((int(m.From) + int(m.To)) / 2)
	}
	b.updateEnPassantHash(prevEP)

	prevCastling := b.castling
	b.updateCastlingRights()
	if b.castling != prevCastling {
		for _, right := range allCastlingRights {
			if prevCastling&right != 0 && b.castling&right == 0 {
				b.hash ^= castleKey(right)
			}
		}
	}

	b.halfmove++
	if movingType == Pawn || !delta.CapturedPiece.IsEmpty() {
		b.halfmove = 0
	}

	b.turn = b.turn.Opposite()
	b.hash ^= sideToMoveKey()
	if b.turn == White {
		b.fullmove++
	}

	b.history = append(b.history, delta)
}

// Unmake reverses the most recent Make call. It panics if there is no
// history to unwind.
func (b *Board) Unmake() {
	if len(b.history) == 0 {
		panic("board: Unmake called with empty history")
	}
	delta := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	m := delta.Move

	b.turn = b.turn.Opposite()
	b.hash ^= sideToMoveKey()
	color := b.turn

	if b.castling != delta.PrevCastling {
		for _, right := range allCastlingRights {
			if (b.castling & right) != (delta.PrevCastling & right) {
				b.hash ^= castleKey(right)
			}
		}
	}
	b.castling = delta.PrevCastling

	curEP := b.enPassant
	b.enPassant = delta.PrevEnPassant
	if curEP != NoSquare {
		b.hash ^= epFileKey(curEP.File())
	}
	if b.enPassant != NoSquare {
		b.hash ^= epFileKey(b.enPassant.File())
	}

	b.halfmove = delta.PrevHalfmove
	if color == Black {
		b.fullmove--
	}

	if m.Promo != NoPromotion {
		b.removePieceAt(m.To)
		b.placePiece(NewPiece(color, Pawn), m.To)
	}

	if delta.WasCastleRook {
		b.relocatePiece(delta.RookTo, delta.RookFrom)
	}

	b.relocatePiece(m.To, m.From)

	if !delta.CapturedPiece.IsEmpty() {
		b.placePiece(delta.CapturedPiece, delta.CapturedSquare)
	}
}

// epCaptureSquare returns the square of the pawn actually removed by an
// en-passant capture landing on `to`, which sits one rank behind `to` from
// the capturing side's perspective.
func epCaptureSquare(to Square, capturingColor Color) Square {
	if capturingColor == White {
		return Square(int(to) - 8)
	}
	return Square(int(to) + 8)
}

// castleRookSquares returns the rook's from/to squares for a king move
// landing on `kingTo`.
func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case sqG1:
		return sqH1, sqF1
	case sqC1:
		return sqA1, sqD1
	case sqG8:
		return sqH8, sqF8
	case sqC8:
		return sqA8, sqD8
	default:
		panic(fmt.Sprintf("board: castleRookSquares called with non-castling destination %s", kingTo))
	}
}

// updateCastlingRights clears any right whose king or rook is no longer on
// its starting square. Rights are never set here, only cleared, so it is
// safe to call unconditionally after every move.
func (b *Board) updateCastlingRights() {
	if !isPieceOn(b, sqE1, White, King) {
		b.castling &^= CastleWhiteKingside | CastleWhiteQueenside
	}
	if !isPieceOn(b, sqH1, White, Rook) {
		b.castling &^= CastleWhiteKingside
	}
	if !isPieceOn(b, sqA1, White, Rook) {
		b.castling &^= CastleWhiteQueenside
	}
	if !isPieceOn(b, sqE8, Black, King) {
		b.castling &^= CastleBlackKingside | CastleBlackQueenside
	}
	if !isPieceOn(b, sqH8, Black, Rook) {
		b.castling &^= CastleBlackKingside
	}
	if !isPieceOn(b, sqA8, Black, Rook) {
		b.castling &^= CastleBlackQueenside
	}
}

func isPieceOn(b *Board, sq Square, c Color, t PieceType) bool {
	p := b.mailbox[sq]
	return !p.IsEmpty() && p.Color() == c && p.Type() == t
}
