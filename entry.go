// Package binpack implements the Stockfish binpack training-data codec: a
// chunked, bit-packed stream of chess positions, moves, scores, and game
// results (spec.md). It wraps packages compress, chain, and chunk behind a
// streaming Reader/Writer façade.
package binpack

import (
	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

// Entry is a single training data record: a position, the move about to be
// played from it, that position's evaluation, the game ply it occurred at,
// and the game's eventual result.
type Entry struct {
	Pos    position.Position
	Move   position.Move
	Score  int16
	Ply    uint16
	Result enum.Result
}

// IsContinuation reports whether b is the immediate successor of a in the
// same chain: same game result, ply advanced by exactly one, and b's
// position is exactly the position reached by playing a.Move from a.Pos
// (spec §3, "Continuation relation").
func IsContinuation(a, b Entry) bool {
	if b.Result != a.Result || b.Ply != a.Ply+1 {
		return false
	}
	next := a.Pos
	next.DoMove(a.Move)
	return next == b.Pos
}
