package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseError reports a malformed FEN field. It is an Invalid Input error
// per spec §7: reported to the caller, the board is left unchanged.
type ParseError struct {
	Field string
	Value string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("board: invalid FEN %s %q: %s", e.Field, e.Value, e.Msg)
}

// LoadFEN parses a FEN string and replaces the board's state with it. On
// any parse error the board is left unchanged and a *ParseError is
// returned.
func (b *Board) LoadFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return &ParseError{Field: "field-count", Value: fen, Msg: fmt.Sprintf("want 6 fields, got %d", len(fields))}
	}

	placement, turnField, castlingField, epField, halfmoveField, fullmoveField := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	var mailbox [64]Piece
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &ParseError{Field: "placement", Value: placement, Msg: fmt.Sprintf("want 8 ranks, got %d", len(ranks))}
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if file > 7 {
				return &ParseError{Field: "placement", Value: placement, Msg: "rank overflows 8 files"}
			}
			p, err := PieceFromLetter(c)
			if err != nil {
				return &ParseError{Field: "placement", Value: placement, Msg: err.Error()}
			}
			mailbox[NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return &ParseError{Field: "placement", Value: placement, Msg: fmt.Sprintf("rank %d sums to %d files, want 8", 8-i, file)}
		}
	}

	var turn Color
	switch turnField {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return &ParseError{Field: "active-color", Value: turnField, Msg: "must be 'w' or 'b'"}
	}

	var castling CastlingRight
	if castlingField != "-" {
		for i := 0; i < len(castlingField); i++ {
			switch castlingField[i] {
			case 'K':
				castling |= CastleWhiteKingside
			case 'Q':
				castling |= CastleWhiteQueenside
			case 'k':
				castling |= CastleBlackKingside
			case 'q':
				castling |= CastleBlackQueenside
			default:
				return &ParseError{Field: "castling", Value: castlingField, Msg: "unknown castling character"}
			}
		}
	}

	enPassant := NoSquare
	if epField != "-" {
		sq, err := SquareFromString(epField)
		if err != nil {
			return &ParseError{Field: "en-passant", Value: epField, Msg: err.Error()}
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return &ParseError{Field: "en-passant", Value: epField, Msg: "target must be on rank 3 or rank 6"}
		}
		enPassant = sq
	}

	halfmove, err := strconv.Atoi(halfmoveField)
	if err != nil || halfmove < 0 {
		return &ParseError{Field: "halfmove", Value: halfmoveField, Msg: "must be a non-negative integer"}
	}

	fullmove, err := strconv.Atoi(fullmoveField)
	if err != nil || fullmove <= 0 {
		return &ParseError{Field: "fullmove", Value: fullmoveField, Msg: "must be a positive integer"}
	}

	// All fields parsed successfully: commit. Reset incrementally-mutated
	// state first, then replay every square through the single choke
	// point so mailbox/bitboards/hash start from a known-consistent zero.
	b.boards = [numBitboards]Bitboard{}
	b.mailbox = [64]Piece{}
	b.hash = 0
	b.history = b.history[:0]
	b.turn = turn
	b.castling = castling
	b.enPassant = enPassant
	b.halfmove = halfmove
	b.fullmove = fullmove

	for sq := Square(0); sq < 64; sq++ {
		if p := mailbox[sq]; !p.IsEmpty() {
			b.setSquare(sq, p)
		}
	}
	b.hash = b.hashFromScratch()
	return nil
}

// FEN emits the board's current state as a FEN string. For every legal
// position loaded from FEN f, parse(emit(board)) reproduces the same
// position (spec's round-trip property); emit(board) need not be
// byte-identical to f (e.g. runs of whitespace between fields become a
// single space and castling letters are emitted in KQkq order). The
// en-passant square is emitted exactly as stored.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.mailbox[NewSquare(file, rank)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.castling == 0 {
		sb.WriteByte('-')
	} else {
		if b.castling&CastleWhiteKingside != 0 {
			sb.WriteByte('K')
		}
		if b.castling&CastleWhiteQueenside != 0 {
			sb.WriteByte('Q')
		}
		if b.castling&CastleBlackKingside != 0 {
			sb.WriteByte('k')
		}
		if b.castling&CastleBlackQueenside != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmove))

	return sb.String()
}
