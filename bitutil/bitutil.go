// Package bitutil implements helpful bit utilities used in move generation,
// sliding-attack computation, and the binpack codec.
package bitutil

// Precalculated magic used to form indices for the bitScanLookup array.
const bitscanMagic uint64 = 0x07EDD5E59A4E28C2

// Precalculated lookup table of LSB indices for 64 uints.
// See http://pradu.us/old/Nov27_2008/Buzz/research/magic/Bitboards.pdf section 3.2.
var bitScanLookup = [64]int{
	63, 0, 58, 1, 59, 47, 53, 2,
	60, 39, 48, 27, 54, 33, 42, 3,
	61, 51, 37, 40, 49, 18, 28, 20,
	55, 30, 34, 11, 43, 14, 22, 4,
	62, 57, 46, 52, 38, 26, 32, 41,
	50, 36, 17, 19, 29, 10, 13, 21,
	56, 45, 25, 31, 35, 16, 9, 12,
	44, 24, 15, 8, 23, 7, 6, 5,
}

// BitScan returns the index of the Least Significant Bit (LSB) within the bitboard.
// bitboard&-bitboard gives the LSB which is then run through the hashing scheme to index a lookup.
func BitScan(bitboard uint64) int {
	return bitScanLookup[((bitboard&-bitboard)*bitscanMagic)>>58]
}

// PopLSB removes (pops) the least significant bit from the bitboard and returns its index.
// If the bitboard is empty, it returns -1.
func PopLSB(bitboard *uint64) int {
	if *bitboard == 0 {
		return -1
	}

	lsb := BitScan(*bitboard)
	*bitboard &= *bitboard - 1
	return lsb
}

// CountBits returns the number of bits set within the bitboard.
func CountBits(bitboard uint64) int {
	var cnt int
	for bitboard > 0 {
		cnt++
		bitboard &= bitboard - 1
	}
	return cnt
}

// File and Rank extract the 0-based file/rank of a square.
func File(sq int) int { return sq & 7 }
func Rank(sq int) int { return sq >> 3 }

// Sq builds a square index from a 0-based file and rank.
func Sq(file, rank int) int { return rank*8 + file }

// FlatSquareOffset adds df files and dr ranks to sq, returning -1 if the
// result would fall off the board. File and rank are offset separately, so
// a step that crosses the a- or h-file edge (e.g. a knight jump) also
// returns -1 rather than wrapping onto a neighbouring rank.
func FlatSquareOffset(sq, df, dr int) int {
	f := File(sq) + df
	r := Rank(sq) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return -1
	}
	return Sq(f, r)
}

// Per-file and per-rank masks, indexed 0 (A/rank1) .. 7 (H/rank8).
var (
	FileMasks [8]uint64
	RankMasks [8]uint64
)

func init() {
	for f := 0; f < 8; f++ {
		var m uint64
		for r := 0; r < 8; r++ {
			m |= 1 << Sq(f, r)
		}
		FileMasks[f] = m
	}
	for r := 0; r < 8; r++ {
		RankMasks[r] = 0xFF << (8 * r)
	}
}

// Reverse reverses the bit order of a 64-bit word (bit 0 <-> bit 63),
// the core primitive of the Hyperbola-Quintessence sliding-attack formula.
func Reverse(bb uint64) uint64 {
	bb = (bb&0x5555555555555555)<<1 | (bb>>1)&0x5555555555555555
	bb = (bb&0x3333333333333333)<<2 | (bb>>2)&0x3333333333333333
	bb = (bb&0x0F0F0F0F0F0F0F0F)<<4 | (bb>>4)&0x0F0F0F0F0F0F0F0F
	bb = (bb&0x00FF00FF00FF00FF)<<8 | (bb>>8)&0x00FF00FF00FF00FF
	bb = (bb&0x0000FFFF0000FFFF)<<16 | (bb>>16)&0x0000FFFF0000FFFF
	return bb<<32 | bb>>32
}
