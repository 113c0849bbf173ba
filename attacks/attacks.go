// Package attacks implements leaper attack tables and Hyperbola-Quintessence
// sliding attack generation for bishops, rooks, and queens.
//
// Sliding attacks are computed on the fly from precalculated line masks
// rather than from magic-bitboard lookup tables: for a given occupancy the
// attack set along one line (file, rank, diagonal, or anti-diagonal) is
//
//	((o&m) - 2s) ^ reverse(reverse(o&m) - 2*reverse(s)) & m
//
// where o is the full occupancy, s is the single-bit source square, and m
// is the mask of the line through the square. See
// https://www.chessprogramming.org/Hyperbola_Quintessence.
package attacks

import "github.com/mirajhq/binpack/bitutil"

var (
	// PawnAttacks[color][sq] is the set of squares a pawn of color attacks from sq.
	PawnAttacks   [2][64]uint64
	KnightAttacks [64]uint64
	KingAttacks   [64]uint64

	fileMask, rankMask, diagMask, antiDiagMask [64]uint64
)

func init() {
	knightJumps := [8][2]int{
		{-2, -1}, {-2, 1}, {2, -1}, {2, 1},
		{-1, -2}, {-1, 2}, {1, -2}, {1, 2},
	}
	kingSteps := [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}

	for sq := 0; sq < 64; sq++ {
		f, r := bitutil.File(sq), bitutil.Rank(sq)

		for _, d := range knightJumps {
			if to := bitutil.FlatSquareOffset(sq, d[0], d[1]); to != -1 {
				KnightAttacks[sq] |= 1 << to
			}
		}
		for _, d := range kingSteps {
			if to := bitutil.FlatSquareOffset(sq, d[0], d[1]); to != -1 {
				KingAttacks[sq] |= 1 << to
			}
		}

		if r < 7 {
			if f > 0 {
				PawnAttacks[0][sq] |= 1 << bitutil.Sq(f-1, r+1)
			}
			if f < 7 {
				PawnAttacks[0][sq] |= 1 << bitutil.Sq(f+1, r+1)
			}
		}
		if r > 0 {
			if f > 0 {
				PawnAttacks[1][sq] |= 1 << bitutil.Sq(f-1, r-1)
			}
			if f < 7 {
				PawnAttacks[1][sq] |= 1 << bitutil.Sq(f+1, r-1)
			}
		}

		fileMask[sq] = bitutil.FileMasks[f]
		rankMask[sq] = bitutil.RankMasks[r]

		// Diagonal: squares where file-rank is constant.
		var diag uint64
		diff := f - r
		for nf := 0; nf <= 7; nf++ {
			nr := nf - diff
			if nr >= 0 && nr <= 7 {
				diag |= 1 << bitutil.Sq(nf, nr)
			}
		}
		// Anti-diagonal: squares where file+rank is constant.
		var anti uint64
		sum := f + r
		for nf := 0; nf <= 7; nf++ {
			nr := sum - nf
			if nr >= 0 && nr <= 7 {
				anti |= 1 << bitutil.Sq(nf, nr)
			}
		}
		diagMask[sq] = diag
		antiDiagMask[sq] = anti
	}
}

// hqLineAttack computes the attack set along a single line (given by its
// mask) from square sq under occupancy occ, per the Hyperbola-Quintessence
// formula.
func hqLineAttack(occ uint64, sq int, mask uint64) uint64 {
	s := uint64(1) << sq
	o := occ & mask
	forward := o - 2*s
	backward := bitutil.Reverse(bitutil.Reverse(o) - 2*bitutil.Reverse(s))
	return (forward ^ backward) & mask
}

// Bishop returns the bishop attack bitboard from sq under the given occupancy.
func Bishop(sq int, occ uint64) uint64 {
	return hqLineAttack(occ, sq, diagMask[sq]) | hqLineAttack(occ, sq, antiDiagMask[sq])
}

// Rook returns the rook attack bitboard from sq under the given occupancy.
func Rook(sq int, occ uint64) uint64 {
	return hqLineAttack(occ, sq, fileMask[sq]) | hqLineAttack(occ, sq, rankMask[sq])
}

// Queen returns the queen attack bitboard from sq under the given occupancy.
func Queen(sq int, occ uint64) uint64 {
	return Bishop(sq, occ) | Rook(sq, occ)
}
