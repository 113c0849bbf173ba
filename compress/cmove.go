package compress

import (
	"github.com/mirajhq/binpack/position"
)

// CmoveSize is the byte size of an encoded compressed move.
const CmoveSize = 2

// EncodeCmove packs m into the 2-byte compressed-move layout: a single
// big-endian 16-bit word with move type in the top 2 bits, from square in
// the next 6, to square (rook square for castles) in the next 6, and
// promotion piece minus Knight in the bottom 2.
func EncodeCmove(m position.Move) [CmoveSize]byte {
	word := uint16(m)
	return [CmoveSize]byte{byte(word >> 8), byte(word)}
}

// DecodeCmove unpacks a 2-byte compressed move.
func DecodeCmove(data []byte) (position.Move, error) {
	if len(data) < CmoveSize {
		return 0, ErrInvalidFormat
	}
	word := uint16(data[0])<<8 | uint16(data[1])
	return position.Move(word), nil
}
