package compress

import (
	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

// StemSize is the byte size of an encoded stem.
const StemSize = CposSize + CmoveSize + 2 + 2 + 2

// Stem is the 32-byte fixed-size record that opens every chain: a
// compressed position, a compressed move, a score, the game ply and
// result, and the fifty-move counter.
type Stem struct {
	Pos    position.Position
	Move   position.Move
	Score  int16
	Ply    uint16
	Result enum.Result
	Rule50 uint16
}

// Encode assembles the 32-byte wire representation of s.
func (s Stem) Encode() [StemSize]byte {
	var out [StemSize]byte
	off := 0

	cpos := EncodeCpos(s.Pos)
	copy(out[off:], cpos[:])
	off += CposSize

	cmove := EncodeCmove(s.Move)
	copy(out[off:], cmove[:])
	off += CmoveSize

	scoreWord := uint16(enum.SignedToUnsigned(int(s.Score)))
	out[off], out[off+1] = byte(scoreWord>>8), byte(scoreWord)
	off += 2

	plyResult := uint16(enum.SignedToUnsigned(s.Result))<<14 | (s.Ply & 0x3FFF)
	out[off], out[off+1] = byte(plyResult>>8), byte(plyResult)
	off += 2

	out[off], out[off+1] = byte(s.Rule50>>8), byte(s.Rule50)

	return out
}

// DecodeStem parses a 32-byte stem record. The returned Pos has its ply,
// rule50, and en-passant-derived fields fully populated; HalfmoveClock and
// FullmoveNumber are overwritten from Rule50/Ply per spec.
func DecodeStem(data []byte) (Stem, error) {
	var s Stem
	if len(data) < StemSize {
		return s, ErrInvalidFormat
	}

	pos, err := DecodeCpos(data[:CposSize])
	if err != nil {
		return s, err
	}
	off := CposSize

	mv, err := DecodeCmove(data[off : off+CmoveSize])
	if err != nil {
		return s, err
	}
	off += CmoveSize

	scoreWord := uint16(data[off])<<8 | uint16(data[off+1])
	s.Score = int16(enum.UnsignedToSigned(uint(scoreWord)))
	off += 2

	plyResult := uint16(data[off])<<8 | uint16(data[off+1])
	s.Ply = plyResult & 0x3FFF
	s.Result = enum.UnsignedToSigned(uint(plyResult >> 14))
	off += 2

	s.Rule50 = uint16(data[off])<<8 | uint16(data[off+1])

	pos.HalfmoveClock = int(s.Rule50)
	pos.FullmoveNumber = int(s.Ply)/2 + 1

	s.Pos = pos
	s.Move = mv

	return s, nil
}
