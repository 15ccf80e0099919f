package board

import "corvidchess/internal/stack"

// checkInfo describes one attacker of the side-to-move's king. Sliding
// attackers carry the full king-to-attacker line (so blocking squares can
// be tested); knight and pawn attackers only ever admit capturing the
// attacker itself.
type checkInfo struct {
	checkerSq Square
	sliding   bool
	line      MoveLine
}

func (c checkInfo) blocksOrCaptures(to Square) bool {
	if to == c.checkerSq {
		return true
	}
	return c.sliding && c.line.InLine(to)
}

// pinInfo records that the friendly piece on sq may only move along line.
type pinInfo struct {
	sq   Square
	line MoveLine
}

// maxChecks/maxPins bound the fixed arrays below. At most two simultaneous
// checks are reachable in a legal position (double check); at most one
// piece per ray direction can be pinned, hence eight.
const maxChecks = 2
const maxPins = 8

// checkState holds everything GenerateLegalMoves needs to classify a
// candidate move, computed once per call from the king outward.
type checkState struct {
	checks  [maxChecks]checkInfo
	nChecks int
	pins    [maxPins]pinInfo
	nPins   int
}

func (cs *checkState) pinLineFor(sq Square) (MoveLine, bool) {
	for i := 0; i < cs.nPins; i++ {
		if cs.pins[i].sq == sq {
			return cs.pins[i].line, true
		}
	}
	return MoveLine{}, false
}

// legal applies the pin/check predicate from spec §4.4 step 3 to a
// non-king candidate move. Double check is handled by the caller skipping
// non-king generation entirely; this is never called with nChecks > 1.
func (cs *checkState) legal(from, to Square) bool {
	pinLine, pinned := cs.pinLineFor(from)
	if cs.nChecks == 0 {
		return !pinned || pinLine.InLine(to)
	}
	if !cs.checks[0].blocksOrCaptures(to) {
		return false
	}
	return !pinned || pinLine.InLine(to)
}

// computeCheckState scans the eight ray directions from the king, plus the
// pawn-attack and knight-jump tables, per spec §4.4 step 1.
func (b *Board) computeCheckState(us Color) checkState {
	them := us.Opposite()
	kingSq := b.KingSquare(us)

	var cs checkState

	for dir := 0; dir < numDirections; dir++ {
		dist := MaxSlidingDistance[kingSq][dir]
		nBlockers := 0
		blockerSq := NoSquare
		cur := kingSq
		for step := 0; step < dist; step++ {
			cur = Square(int(cur) + Directions[dir])
			p := b.mailbox[cur]
			if p.IsEmpty() {
				continue
			}
			if p.Color() == us {
				nBlockers++
				if nBlockers == 1 {
					blockerSq = cur
				}
				if nBlockers >= 2 {
					break
				}
				continue
			}
			if isSliderMatchingDirection(p.Type(), dir) {
				line := MoveLine{From: kingSq, To: cur}
				if nBlockers == 0 {
					cs.checks[cs.nChecks] = checkInfo{checkerSq: cur, sliding: true, line: line}
					cs.nChecks++
				} else if nBlockers == 1 {
					cs.pins[cs.nPins] = pinInfo{sq: blockerSq, line: line}
					cs.nPins++
				}
			}
			break
		}
	}

	var pawnAttackers Bitboard
	if us == White {
		pawnAttackers = WhitePawnAttacks[kingSq] & b.PieceBB(them, Pawn)
	} else {
		pawnAttackers = BlackPawnAttacks[kingSq] & b.PieceBB(them, Pawn)
	}
	for pawnAttackers != 0 {
		sq := pawnAttackers.PopLSB()
		cs.checks[cs.nChecks] = checkInfo{checkerSq: sq}
		cs.nChecks++
	}

	knightAttackers := KnightAttacks[kingSq] & b.PieceBB(them, Knight)
	for knightAttackers != 0 {
		sq := knightAttackers.PopLSB()
		cs.checks[cs.nChecks] = checkInfo{checkerSq: sq}
		cs.nChecks++
	}

	return cs
}

// GenerateLegalMoves returns every legal move for the side to move.
func (b *Board) GenerateLegalMoves() *stack.Bounded[Move] {
	moves := &stack.Bounded[Move]{}

	us := b.turn
	them := us.Opposite()
	cs := b.computeCheckState(us)

	b.genKingMoves(moves, us, them)

	if cs.nChecks >= 2 {
		return moves
	}

	b.genSlidingMoves(moves, us, them, Bishop, &cs)
	b.genSlidingMoves(moves, us, them, Rook, &cs)
	b.genSlidingMoves(moves, us, them, Queen, &cs)
	b.genKnightMoves(moves, us, &cs)
	b.genPawnMoves(moves, us, them, &cs)

	if cs.nChecks == 0 {
		b.genCastlingMoves(moves, us, them)
	}

	return moves
}

func (b *Board) genSlidingMoves(moves *stack.Bounded[Move], us, them Color, t PieceType, cs *checkState) {
	dirLo, dirHi := 0, numDirections
	switch t {
	case Bishop:
		dirLo, dirHi = 4, numDirections
	case Rook:
		dirLo, dirHi = 0, 4
	}

	pieces := b.PieceBB(us, t)
	for pieces != 0 {
		from := pieces.PopLSB()
		for dir := dirLo; dir < dirHi; dir++ {
			dist := MaxSlidingDistance[from][dir]
			cur := from
			for step := 0; step < dist; step++ {
				cur = Square(int(cur) + Directions[dir])
				p := b.mailbox[cur]
				if !p.IsEmpty() && p.Color() == us {
					break
				}
				if cs.legal(from, cur) {
					moves.Push(Move{From: from, To: cur})
				}
				if !p.IsEmpty() {
					break
				}
			}
		}
	}
}

func (b *Board) genKnightMoves(moves *stack.Bounded[Move], us Color, cs *checkState) {
	friendly := b.Occupied(us)
	knights := b.PieceBB(us, Knight)
	for knights != 0 {
		from := knights.PopLSB()
		targets := KnightAttacks[from] &^ friendly
		for targets != 0 {
			to := targets.PopLSB()
			if cs.legal(from, to) {
				moves.Push(Move{From: from, To: to})
			}
		}
	}
}

func (b *Board) genKingMoves(moves *stack.Bounded[Move], us, them Color) {
	from := b.KingSquare(us)
	friendly := b.Occupied(us)
	targets := KingAttacks[from] &^ friendly
	for targets != 0 {
		to := targets.PopLSB()
		if b.simulateKingSafe(Move{From: from, To: to}, us, them) {
			moves.Push(Move{From: from, To: to})
		}
	}
}

// simulateKingSafe plays m and tests whether us's king is left in check,
// then unplays it. Used for king steps, where ray-scanning from the old
// king square would miss that the king itself just vacated it, and for
// en-passant captures (see enPassantLegal). Castling squares are tested
// with isSquareAttacked instead.
func (b *Board) simulateKingSafe(m Move, us, them Color) bool {
	b.Make(m)
	safe := !b.isSquareAttacked(b.KingSquare(us), them)
	b.Unmake()
	return safe
}

func (b *Board) genCastlingMoves(moves *stack.Bounded[Move], us, them Color) {
	empty := func(squares ...Square) bool {
		for _, sq := range squares {
			if !b.mailbox[sq].IsEmpty() {
				return false
			}
		}
		return true
	}

	if us == White {
		if b.castling&CastleWhiteKingside != 0 && empty(sqF1, sqG1) &&
			!b.isSquareAttacked(sqF1, them) && !b.isSquareAttacked(sqG1, them) {
			moves.Push(Move{From: sqE1, To: sqG1})
		}
		if b.castling&CastleWhiteQueenside != 0 && empty(sqD1, sqC1, Square(1)) &&
			!b.isSquareAttacked(sqD1, them) && !b.isSquareAttacked(sqC1, them) {
			moves.Push(Move{From: sqE1, To: sqC1})
		}
		return
	}
	if b.castling&CastleBlackKingside != 0 && empty(sqF8, sqG8) &&
		!b.isSquareAttacked(sqF8, them) && !b.isSquareAttacked(sqG8, them) {
		moves.Push(Move{From: sqE8, To: sqG8})
	}
	if b.castling&CastleBlackQueenside != 0 && empty(sqD8, sqC8, Square(57)) &&
		!b.isSquareAttacked(sqD8, them) && !b.isSquareAttacked(sqC8, them) {
		moves.Push(Move{From: sqE8, To: sqC8})
	}
}

func (b *Board) genPawnMoves(moves *stack.Bounded[Move], us, them Color, cs *checkState) {
	push, startRank, promoRank := 8, 1, 7
	attacks := &WhitePawnAttacks
	if us == Black {
		push, startRank, promoRank = -8, 6, 0
		attacks = &BlackPawnAttacks
	}

	pawns := b.PieceBB(us, Pawn)
	for pawns != 0 {
		from := pawns.PopLSB()

		if target := Square(int(from) + push); onBoard(target) && b.mailbox[target].IsEmpty() {
			if cs.legal(from, target) {
				b.emitPawnMove(moves, from, target, promoRank)
			}
			if from.Rank() == startRank {
				dbl := Square(int(from) + 2*push)
				if b.mailbox[dbl].IsEmpty() && cs.legal(from, dbl) {
					moves.Push(Move{From: from, To: dbl})
				}
			}
		}

		captures := attacks[from]
		for captures != 0 {
			to := captures.PopLSB()
			if p := b.mailbox[to]; !p.IsEmpty() && p.Color() == them {
				if cs.legal(from, to) {
					b.emitPawnMove(moves, from, to, promoRank)
				}
			} else if to == b.enPassant {
				if b.enPassantLegal(from, to, us, them) {
					moves.Push(Move{From: from, To: to})
				}
			}
		}
	}
}

func (b *Board) emitPawnMove(moves *stack.Bounded[Move], from, to Square, promoRank int) {
	if to.Rank() == promoRank {
		moves.Push(Move{From: from, To: to, Promo: QueenPromotion})
		moves.Push(Move{From: from, To: to, Promo: RookPromotion})
		moves.Push(Move{From: from, To: to, Promo: BishopPromotion})
		moves.Push(Move{From: from, To: to, Promo: KnightPromotion})
		return
	}
	moves.Push(Move{From: from, To: to})
}

// enPassantLegal simulates the capture in full: removing both the moving
// pawn's origin and the captured pawn's square on the same rank can expose
// the king in a way no pin/check line accounts for, so this is the one
// pawn move that cannot be validated by the predicate alone (spec §4.4
// step 2).
func (b *Board) enPassantLegal(from, to Square, us, them Color) bool {
	return b.simulateKingSafe(Move{From: from, To: to}, us, them)
}

func onBoard(sq Square) bool { return sq >= 0 && sq < 64 }

// IsCheckmate reports whether the side to move has no legal moves and is
// in check.
func (b *Board) IsCheckmate() bool {
	return b.IsCheck() && b.GenerateLegalMoves().Len() == 0
}

// IsStalemate reports whether the side to move has no legal moves while
// not in check, or the halfmove clock has reached the 100-ply (50-move)
// limit.
func (b *Board) IsStalemate() bool {
	if b.halfmove >= 100 {
		return true
	}
	return !b.IsCheck() && b.GenerateLegalMoves().Len() == 0
}
