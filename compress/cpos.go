// Package compress implements the binpack codec's fixed-size byte
// encodings: the 24-byte compressed position, the 2-byte compressed move,
// and the 32-byte stem that concatenates them with score/ply/result/rule50.
package compress

import (
	"errors"
	"math/bits"

	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

// ErrInvalidFormat is returned when untrusted bytes do not describe a
// well-formed binpack structure.
var ErrInvalidFormat = errors.New("binpack: invalid format")

// CposSize is the byte size of an encoded compressed position.
const CposSize = 24

// EncodeCpos packs p's board state into the 24-byte compressed-position
// layout: 8 big-endian bytes of occupancy followed by 16 bytes of nibbles
// (low nibble first in each byte) indexing occupied squares in ascending
// order.
func EncodeCpos(p position.Position) [CposSize]byte {
	var out [CposSize]byte

	occ := p.Occupied()
	for i := 0; i < 8; i++ {
		out[i] = byte(occ >> (56 - 8*i))
	}

	doublePushed := enum.NoSquare
	if p.EPSquare != enum.NoSquare {
		if p.ActiveColor == enum.White {
			doublePushed = p.EPSquare - 8
		} else {
			doublePushed = p.EPSquare + 8
		}
	}

	nibbles := make([]byte, 0, 32)
	for sq := 0; sq < 64; sq++ {
		if occ&(uint64(1)<<sq) == 0 {
			continue
		}
		nibbles = append(nibbles, cposNibble(p, sq, doublePushed))
	}

	for i, n := range nibbles {
		byteIdx := i / 2
		if i%2 == 0 {
			out[8+byteIdx] |= n & 0xF
		} else {
			out[8+byteIdx] |= (n & 0xF) << 4
		}
	}

	return out
}

func cposNibble(p position.Position, sq int, doublePushed int) byte {
	piece := p.PieceAt(sq)

	if sq == doublePushed && (piece == enum.WPawn || piece == enum.BPawn) {
		return 12
	}
	if piece == enum.WRook && (p.CastlingRights&(enum.WhiteKing|enum.WhiteQueen)) != 0 {
		if sq == enum.SA1 && p.CastlingRights&enum.WhiteQueen != 0 {
			return 13
		}
		if sq == enum.SH1 && p.CastlingRights&enum.WhiteKing != 0 {
			return 13
		}
	}
	if piece == enum.BRook && (p.CastlingRights&(enum.BlackKing|enum.BlackQueen)) != 0 {
		if sq == enum.SA8 && p.CastlingRights&enum.BlackQueen != 0 {
			return 14
		}
		if sq == enum.SH8 && p.CastlingRights&enum.BlackKing != 0 {
			return 14
		}
	}
	if piece == enum.BKing && p.ActiveColor == enum.Black {
		return 15
	}
	return byte(piece)
}

// DecodeCpos unpacks a 24-byte compressed position into a Position. Ply,
// the fifty-move counter, and score are not carried here: they belong to
// the stem and are applied by the caller after decoding.
func DecodeCpos(data []byte) (position.Position, error) {
	var p position.Position
	if len(data) < CposSize {
		return p, ErrInvalidFormat
	}

	var occ uint64
	for i := 0; i < 8; i++ {
		occ |= uint64(data[i]) << (56 - 8*i)
	}
	if bits.OnesCount64(occ) > 32 {
		return p, ErrInvalidFormat
	}
	p.EPSquare = enum.NoSquare
	p.CastlingRights = 0

	squares := make([]int, 0, bits.OnesCount64(occ))
	for bb := occ; bb != 0; {
		sq := bits.TrailingZeros64(bb)
		bb &= bb - 1
		squares = append(squares, sq)
	}

	for i, sq := range squares {
		byteIdx := 8 + i/2
		var nibble byte
		if i%2 == 0 {
			nibble = data[byteIdx] & 0xF
		} else {
			nibble = data[byteIdx] >> 4
		}
		if err := placeCposNibble(&p, sq, nibble); err != nil {
			return position.Position{}, err
		}
	}

	return p, nil
}

func placeCposNibble(p *position.Position, sq int, nibble byte) error {
	switch {
	case nibble <= 11:
		p.Bitboards[nibble] |= uint64(1) << sq
	case nibble == 12:
		rank := sq / 8
		switch rank {
		case 3: // rank 4: a white pawn just double-pushed
			p.Bitboards[enum.WPawn] |= uint64(1) << sq
			p.EPSquare = sq - 8
		case 4: // rank 5: a black pawn just double-pushed
			p.Bitboards[enum.BPawn] |= uint64(1) << sq
			p.EPSquare = sq + 8
		default:
			return ErrInvalidFormat
		}
	case nibble == 13:
		p.Bitboards[enum.WRook] |= uint64(1) << sq
		switch sq {
		case enum.SA1:
			p.CastlingRights |= enum.WhiteQueen
		case enum.SH1:
			p.CastlingRights |= enum.WhiteKing
		default:
			return ErrInvalidFormat
		}
	case nibble == 14:
		p.Bitboards[enum.BRook] |= uint64(1) << sq
		switch sq {
		case enum.SA8:
			p.CastlingRights |= enum.BlackQueen
		case enum.SH8:
			p.CastlingRights |= enum.BlackKing
		default:
			return ErrInvalidFormat
		}
	case nibble == 15:
		p.Bitboards[enum.BKing] |= uint64(1) << sq
		p.ActiveColor = enum.Black
	default:
		return ErrInvalidFormat
	}
	return nil
}
