package position

import "github.com/mirajhq/binpack/enum"

// Move represents a chess move, packed into a 16-bit word using exactly the
// layout of the wire-format compressed move (spec §4.6):
//
//	15-14: move type
//	13-8:  from square
//	7-2:   to square
//	1-0:   promotion piece, offset from Knight (0..3)
//
// Castling is encoded king-captures-own-rook: To() is the rook's origin
// square (A1/H1/A8/H8), not the king's destination. Promotion's To() is the
// pawn's arrival square.
type Move uint16

// NewMove creates a non-promotion move of the given type.
func NewMove(from, to int, moveType enum.MoveType) Move {
	return Move(uint16(moveType)<<14 | uint16(from)<<8 | uint16(to)<<2)
}

// NewPromotionMove creates a promotion move. promotionPieceType must be one
// of Knight, Bishop, Rook, Queen.
func NewPromotionMove(from, to int, promotionPieceType enum.PieceType) Move {
	return Move(uint16(enum.MovePromotion)<<14 | uint16(from)<<8 | uint16(to)<<2 |
		uint16(promotionPieceType-enum.Knight))
}

func (m Move) From() int            { return int(m>>8) & 0x3F }
func (m Move) To() int              { return int(m>>2) & 0x3F }
func (m Move) Type() enum.MoveType  { return int(m>>14) & 0x3 }
func (m Move) PromotionPieceType() enum.PieceType {
	return enum.Knight + int(m&0x3)
}

// MoveList preallocates storage for the maximum number of legal moves a
// single chess position can have (218), avoiding allocation pressure in
// the hot path of move generation.
type MoveList struct {
	Moves [218]Move
	Len   int
}

// Push appends a move to the list.
func (l *MoveList) Push(m Move) {
	l.Moves[l.Len] = m
	l.Len++
}
