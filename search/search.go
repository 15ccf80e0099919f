// Package search implements iterative-deepening negamax with alpha-beta
// pruning, quiescence search, and MVV-LVA-driven move ordering, over a
// single in-place mutated board.Board. Search never consults a
// transposition table; the board's Zobrist hash is computed incrementally
// but unused here (see DESIGN.md).
package search

import (
	"time"

	"corvidchess/board"
	"corvidchess/eval"
	"corvidchess/internal/stack"
)

// posInf/negInf stand in for +/-infinity in the integer score domain. They
// sit comfortably above any real evaluation or mate score so comparisons
// behave like true infinities without overflow risk.
const (
	posInf = 1 << 20
	negInf = -posInf
)

// cancelCheckMask samples the wall-clock deadline every 2048 nodes rather
// than on every call, since time.Now() is not free.
const cancelCheckMask = 2047

// Result is the outcome of one IterativeDeepening call.
type Result struct {
	BestMove    board.Move
	Score       int
	Depth       int
	Nodes       uint64
	MateInPlies int // 0 unless Score is a mate score
}

// Searcher drives negamax search over a single board, which it mutates in
// place via Make/Unmake and always leaves exactly as it found it.
type Searcher struct {
	b *board.Board

	deadline  time.Time
	cancelled bool
	checkTick uint64
	nodes     uint64
}

// New returns a Searcher over b. b is not copied: Search mutates it via
// Make/Unmake for the duration of the call and restores it before
// returning.
func New(b *board.Board) *Searcher {
	return &Searcher{b: b}
}

// IterativeDeepening searches from depth 1 up to maxDepth, stopping early
// if budget elapses. It returns the best result from the last depth
// completed in full; a depth that was cancelled mid-search is discarded.
func (s *Searcher) IterativeDeepening(maxDepth int, budget time.Duration) Result {
	s.deadline = time.Now().Add(budget)

	var best Result
	pv := board.NullMove

	for depth := 1; depth <= maxDepth; depth++ {
		s.cancelled = false
		s.nodes = 0

		move, score := s.rootSearch(depth, pv)
		if s.cancelled {
			break
		}

		best = Result{BestMove: move, Score: score, Depth: depth, Nodes: s.nodes}
		if mateIn, ok := mateDistance(score); ok {
			best.MateInPlies = mateIn
		}
		pv = move
	}

	return best
}

func (s *Searcher) rootSearch(depth int, pvMove board.Move) (board.Move, int) {
	moves := s.b.GenerateLegalMoves()
	s.orderMoves(moves, pvMove)

	alpha, beta := negInf, posInf
	bestMove := board.NullMove
	bestScore := negInf

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		s.b.Make(m)
		score := -s.negamax(depth-1, -beta, -alpha, 1)
		s.b.Unmake()

		if s.cancelled {
			return bestMove, bestScore
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if bestScore > alpha {
			alpha = bestScore
		}
		if alpha >= beta {
			break
		}
	}
	return bestMove, bestScore
}

// negamax returns the score of the current position from the side-to-move's
// perspective, searched to depth plies, with ply counting distance from the
// search root (used to prefer faster mates).
func (s *Searcher) negamax(depth, alpha, beta, ply int) int {
	if s.timeUp() {
		return posInf
	}

	if depth == 0 {
		return s.quiescence(alpha, beta, ply)
	}

	moves := s.b.GenerateLegalMoves()
	if moves.Len() == 0 {
		if s.b.IsCheck() {
			return negInf + ply
		}
		return 0
	}

	s.orderMoves(moves, board.NullMove)

	best := negInf
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		s.b.Make(m)
		score := -s.negamax(depth-1, -beta, -alpha, ply+1)
		s.b.Unmake()

		if s.cancelled {
			return posInf
		}
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// quiescence extends search through captures only, until the position is
// quiet, to avoid the horizon effect at the nominal search depth.
func (s *Searcher) quiescence(alpha, beta, ply int) int {
	if s.timeUp() {
		return posInf
	}
	s.nodes++

	standPat := eval.Evaluate(s.b)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := s.b.GenerateLegalMoves()
	s.orderMoves(moves, board.NullMove)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if s.b.PieceAt(m.To).IsEmpty() {
			continue
		}
		s.b.Make(m)
		score := -s.quiescence(-beta, -alpha, ply+1)
		s.b.Unmake()

		if s.cancelled {
			return posInf
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (s *Searcher) timeUp() bool {
	if s.cancelled {
		return true
	}
	s.checkTick++
	if s.checkTick&cancelCheckMask != 0 {
		return false
	}
	if time.Now().After(s.deadline) {
		s.cancelled = true
	}
	return s.cancelled
}

// orderMoves scores every move per spec's MVV-LVA-plus-heuristics formula
// and insertion-sorts descending in place. scores lives in a fixed-size
// stack array, matching stack.Bounded's own no-heap-allocation discipline.
func (s *Searcher) orderMoves(moves *stack.Bounded[board.Move], pvMove board.Move) {
	n := moves.Len()
	var scores [stack.Cap]int

	us := s.b.Turn()
	them := us.Opposite()
	for i := 0; i < n; i++ {
		scores[i] = s.scoreMove(moves.At(i), pvMove, them)
	}

	for i := 1; i < n; i++ {
		mv, sc := moves.At(i), scores[i]
		j := i - 1
		for j >= 0 && scores[j] < sc {
			moves.Set(j+1, moves.At(j))
			scores[j+1] = scores[j]
			j--
		}
		moves.Set(j+1, mv)
		scores[j+1] = sc
	}
}

func (s *Searcher) scoreMove(m, pvMove board.Move, them board.Color) int {
	if !pvMove.IsNull() && m == pvMove {
		return posInf
	}

	score := 0
	moverValue := eval.PieceValue(s.b.PieceAt(m.From).Type())

	if captured := s.b.PieceAt(m.To); !captured.IsEmpty() {
		score += 10*eval.PieceValue(captured.Type()) - moverValue
	}
	if m.Promo != board.NoPromotion {
		score += eval.PieceValue(m.Promo.PieceType())
	}
	if s.b.IsAttackedByPawn(m.To, them) {
		score -= moverValue
	}
	return score
}

// mateDistance reports, if score is a mate score, how many plies to the
// mate. A positive count means the mover delivers mate; ok is false for a
// non-mate score.
func mateDistance(score int) (int, bool) {
	const mateThreshold = posInf - 1024
	switch {
	case score > mateThreshold:
		return posInf - score, true
	case score < -mateThreshold:
		return -posInf - score, true
	default:
		return 0, false
	}
}
