package binpack

import (
	"testing"

	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

func TestIsContinuationAcceptsDirectSuccessor(t *testing.T) {
	pos := position.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	mv := position.NewMove(enum.Sq(4, 1), enum.Sq(4, 3), enum.MoveNormal) // e2e4

	a := Entry{Pos: pos, Move: mv, Score: 20, Ply: 0, Result: enum.ResultDraw}

	next := pos
	next.DoMove(mv)
	b := Entry{Pos: next, Move: position.NewMove(enum.Sq(4, 6), enum.Sq(4, 4), enum.MoveNormal), Score: -15, Ply: 1, Result: enum.ResultDraw}

	if !IsContinuation(a, b) {
		t.Fatalf("expected b to continue a")
	}
}

func TestIsContinuationRejectsWrongPly(t *testing.T) {
	pos := position.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	mv := position.NewMove(enum.Sq(4, 1), enum.Sq(4, 3), enum.MoveNormal)

	a := Entry{Pos: pos, Move: mv, Score: 20, Ply: 0, Result: enum.ResultDraw}

	next := pos
	next.DoMove(mv)
	b := Entry{Pos: next, Move: 0, Score: 0, Ply: 2, Result: enum.ResultDraw} // should be Ply: 1

	if IsContinuation(a, b) {
		t.Fatalf("expected b not to continue a: ply skipped 1")
	}
}

func TestIsContinuationRejectsDifferentResult(t *testing.T) {
	pos := position.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	mv := position.NewMove(enum.Sq(4, 1), enum.Sq(4, 3), enum.MoveNormal)

	a := Entry{Pos: pos, Move: mv, Score: 20, Ply: 0, Result: enum.ResultDraw}

	next := pos
	next.DoMove(mv)
	b := Entry{Pos: next, Move: 0, Score: 0, Ply: 1, Result: enum.ResultWhiteWin}

	if IsContinuation(a, b) {
		t.Fatalf("expected b not to continue a: result differs")
	}
}

func TestIsContinuationRejectsUnrelatedPosition(t *testing.T) {
	pos := position.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	mv := position.NewMove(enum.Sq(4, 1), enum.Sq(4, 3), enum.MoveNormal)

	a := Entry{Pos: pos, Move: mv, Score: 20, Ply: 0, Result: enum.ResultDraw}
	b := Entry{Pos: pos, Move: 0, Score: 0, Ply: 1, Result: enum.ResultDraw} // pos unchanged, not apply(a.Pos, a.Move)

	if IsContinuation(a, b) {
		t.Fatalf("expected b not to continue a: position doesn't reflect a.Move")
	}
}
