// Package perft implements the perft node-counting move generator test
// used to validate movegen correctness (spec §8). It is internal: a
// command-line perft driver is explicitly out of scope for this codec.
package perft

import (
	"github.com/mirajhq/binpack/movegen"
	"github.com/mirajhq/binpack/position"
)

// Count walks the legal-move tree from pos to the given depth and returns
// the number of leaf nodes, per https://www.chessprogramming.org/Perft_Results.
func Count(pos position.Position, depth int) int {
	var list position.MoveList
	movegen.GenLegalMoves(pos, &list)

	if depth == 1 {
		return list.Len
	}

	nodes := 0
	for i := 0; i < list.Len; i++ {
		nodes += Count(pos.AfterMove(list.Moves[i]), depth-1)
	}
	return nodes
}
