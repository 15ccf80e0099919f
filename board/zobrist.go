package board

import "math/rand"

// Zobrist key layout: 768 piece-square keys (12 piece kinds * 64 squares),
// 1 side-to-move key, 4 castling-right keys, 8 en-passant file keys.
const (
	zobristPieceKeys    = 12 * 64
	zobristSideToMove   = zobristPieceKeys
	zobristCastleWK     = zobristSideToMove + 1
	zobristCastleWQ     = zobristCastleWK + 1
	zobristCastleBK     = zobristCastleWQ + 1
	zobristCastleBQ     = zobristCastleBK + 1
	zobristEPFileBase   = zobristCastleBQ + 1
	zobristKeyCount     = zobristEPFileBase + 8
	zobristFixedSeed    = 835628211787
)

// zobristKeys are the 781 fixed 64-bit keys. Derived once, at package init,
// from a fixed-seed PRNG so hashes are comparable across engine instances
// and process runs.
var zobristKeys [zobristKeyCount]uint64

func init() {
	rng := rand.New(rand.NewSource(zobristFixedSeed))
	for i := range zobristKeys {
		// rand.Uint64 isn't exposed on a rand.Source-backed *rand.Rand in
		// all Go versions; compose it from two 32-bit draws so the key
		// table is deterministic across Go releases.
		hi := uint64(rng.Uint32())
		lo := uint64(rng.Uint32())
		zobristKeys[i] = hi<<32 | lo
	}
}

func pieceKey(p Piece, sq Square) uint64 {
	return zobristKeys[pieceBBIndex(p)*64+int(sq)]
}

func sideToMoveKey() uint64 { return zobristKeys[zobristSideToMove] }

func castleKey(right CastlingRight) uint64 {
	switch right {
	case CastleWhiteKingside:
		return zobristKeys[zobristCastleWK]
	case CastleWhiteQueenside:
		return zobristKeys[zobristCastleWQ]
	case CastleBlackKingside:
		return zobristKeys[zobristCastleBK]
	default:
		return zobristKeys[zobristCastleBQ]
	}
}

func epFileKey(file int) uint64 { return zobristKeys[zobristEPFileBase+file] }

// hashFromScratch recomputes the Zobrist hash of b's current state without
// relying on any incrementally maintained value. Used to validate the
// incremental hash (spec: "the incrementally maintained hash equals the
// hash computed from scratch").
func (b *Board) hashFromScratch() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.mailbox[sq]; !p.IsEmpty() {
			h ^= pieceKey(p, sq)
		}
	}
	if b.turn == Black {
		h ^= sideToMoveKey()
	}
	for _, right := range allCastlingRights {
		if b.castling&right != 0 {
			h ^= castleKey(right)
		}
	}
	if b.enPassant != NoSquare {
		h ^= epFileKey(b.enPassant.File())
	}
	return h
}

// updateEnPassantHash implements the spec's corrected intent for the
// teacher's en-passant hash branch (documented in DESIGN.md as an open
// question resolved in favor of the obviously-intended behavior): toggle
// off the previous en-passant file key if a previous target existed,
// toggle on the new file key if a new target exists.
func (b *Board) updateEnPassantHash(prevEP Square) {
	if prevEP != NoSquare {
		b.hash ^= epFileKey(prevEP.File())
	}
	if b.enPassant != NoSquare {
		b.hash ^= epFileKey(b.enPassant.File())
	}
}
