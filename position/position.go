// Package position implements chessboard state: piece placement, FEN I/O,
// attack queries, and move application. It is the shared core both sides
// of the binpack codec depend on so that move enumeration stays identical
// between writer and reader.
package position

import (
	"github.com/mirajhq/binpack/attacks"
	"github.com/mirajhq/binpack/bitutil"
	"github.com/mirajhq/binpack/enum"
)

// Position represents a chessboard state.
type Position struct {
	// Bitboards is indexed by enum.Piece (WPawn..BKing).
	Bitboards      [12]uint64
	ActiveColor    enum.Color
	CastlingRights enum.CastlingRights
	// EPSquare is enum.NoSquare when no en-passant capture is possible.
	EPSquare       int
	HalfmoveClock  int
	FullmoveNumber int
}

// Ply returns the half-move counter implied by FullmoveNumber/ActiveColor.
func (p Position) Ply() int {
	ply := (p.FullmoveNumber - 1) * 2
	if p.ActiveColor == enum.Black {
		ply++
	}
	return ply
}

// PieceAt returns the piece standing on sq, or enum.PieceNone.
func (p Position) PieceAt(sq int) enum.Piece {
	bit := uint64(1) << sq
	for piece, bb := range p.Bitboards {
		if bb&bit != 0 {
			return piece
		}
	}
	return enum.PieceNone
}

// PieceBB returns the bitboard of pieces of the given type and color.
func (p Position) PieceBB(pt enum.PieceType, c enum.Color) uint64 {
	return p.Bitboards[enum.MakePiece(pt, c)]
}

// OccupiedByColor returns the union of all bitboards of the given color.
func (p Position) OccupiedByColor(c enum.Color) uint64 {
	var bb uint64
	for pt := enum.Pawn; pt <= enum.King; pt++ {
		bb |= p.Bitboards[enum.MakePiece(pt, c)]
	}
	return bb
}

// Occupied returns the union of all pieces on the board.
func (p Position) Occupied() uint64 {
	return p.OccupiedByColor(enum.White) | p.OccupiedByColor(enum.Black)
}

// KingSquare returns the square of the king of the given color.
func (p Position) KingSquare(c enum.Color) int {
	return bitutil.BitScan(p.Bitboards[enum.MakePiece(enum.King, c)])
}

// IsAttacked reports whether sq is attacked by any piece of byColor.
func (p Position) IsAttacked(sq int, byColor enum.Color) bool {
	occ := p.Occupied()

	if attacks.PawnAttacks[enum.Opposite(byColor)][sq]&p.PieceBB(enum.Pawn, byColor) != 0 {
		return true
	}
	if attacks.KnightAttacks[sq]&p.PieceBB(enum.Knight, byColor) != 0 {
		return true
	}
	if attacks.KingAttacks[sq]&p.PieceBB(enum.King, byColor) != 0 {
		return true
	}
	bishopsQueens := p.PieceBB(enum.Bishop, byColor) | p.PieceBB(enum.Queen, byColor)
	if attacks.Bishop(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.PieceBB(enum.Rook, byColor) | p.PieceBB(enum.Queen, byColor)
	if attacks.Rook(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move is in check.
func (p Position) InCheck() bool {
	return p.IsAttacked(p.KingSquare(p.ActiveColor), enum.Opposite(p.ActiveColor))
}

// AfterMove returns a copy of p with m applied. p itself is left unmodified.
func (p Position) AfterMove(m Move) Position {
	cp := p
	cp.DoMove(m)
	return cp
}

// DoMove mutates p by applying m. The caller is responsible for ensuring m
// is a pseudo-legal move generated against p; DoMove does not validate
// legality.
func (p *Position) DoMove(m Move) {
	from, to := m.From(), m.To()
	moved := p.PieceAt(from)
	color := enum.ColorOf(moved)

	p.HalfmoveClock++

	switch m.Type() {
	case enum.MoveNormal:
		captured := p.PieceAt(to)
		if captured != enum.PieceNone {
			p.Bitboards[captured] &^= uint64(1) << to
			p.HalfmoveClock = 0
		}
		if enum.PieceTypeOf(moved) == enum.Pawn {
			p.HalfmoveClock = 0
		}
		p.Bitboards[moved] ^= uint64(1)<<from | uint64(1)<<to

	case enum.MoveEnPassant:
		p.Bitboards[moved] ^= uint64(1)<<from | uint64(1)<<to
		var capSq int
		if color == enum.White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		captured := enum.MakePiece(enum.Pawn, enum.Opposite(color))
		p.Bitboards[captured] &^= uint64(1) << capSq
		p.HalfmoveClock = 0

	case enum.MoveCastle:
		rook := enum.MakePiece(enum.Rook, color)
		var kingTo, rookFrom, rookTo int
		switch to {
		case enum.SH1:
			kingTo, rookFrom, rookTo = enum.SG1, enum.SH1, enum.SF1
		case enum.SA1:
			kingTo, rookFrom, rookTo = enum.SC1, enum.SA1, enum.SD1
		case enum.SH8:
			kingTo, rookFrom, rookTo = enum.SG8, enum.SH8, enum.SF8
		case enum.SA8:
			kingTo, rookFrom, rookTo = enum.SC8, enum.SA8, enum.SD8
		}
		p.Bitboards[moved] ^= uint64(1)<<from | uint64(1)<<kingTo
		p.Bitboards[rook] ^= uint64(1)<<rookFrom | uint64(1)<<rookTo

	case enum.MovePromotion:
		captured := p.PieceAt(to)
		if captured != enum.PieceNone {
			p.Bitboards[captured] &^= uint64(1) << to
		}
		p.Bitboards[moved] &^= uint64(1) << from
		promoted := enum.MakePiece(m.PromotionPieceType(), color)
		p.Bitboards[promoted] |= uint64(1) << to
		p.HalfmoveClock = 0
	}

	p.EPSquare = enum.NoSquare
	if enum.PieceTypeOf(moved) == enum.Pawn {
		diff := to - from
		if diff == 16 || diff == -16 {
			candidate := (from + to) / 2
			if p.epLegal(candidate, enum.Opposite(color)) {
				p.EPSquare = candidate
			}
		}
	}

	p.updateCastlingRights(from, to)

	if color == enum.Black {
		p.FullmoveNumber++
	}
	p.ActiveColor = enum.Opposite(color)
}

// updateCastlingRights strips whichever rights correspond to a king or rook
// home square that this move touched, whether by moving from it or by
// capturing on it.
func (p *Position) updateCastlingRights(from, to int) {
	touched := uint64(1)<<from | uint64(1)<<to
	if touched&(uint64(1)<<enum.SE1) != 0 {
		p.CastlingRights &^= enum.WhiteKing | enum.WhiteQueen
	}
	if touched&(uint64(1)<<enum.SE8) != 0 {
		p.CastlingRights &^= enum.BlackKing | enum.BlackQueen
	}
	if touched&(uint64(1)<<enum.SA1) != 0 {
		p.CastlingRights &^= enum.WhiteQueen
	}
	if touched&(uint64(1)<<enum.SH1) != 0 {
		p.CastlingRights &^= enum.WhiteKing
	}
	if touched&(uint64(1)<<enum.SA8) != 0 {
		p.CastlingRights &^= enum.BlackQueen
	}
	if touched&(uint64(1)<<enum.SH8) != 0 {
		p.CastlingRights &^= enum.BlackKing
	}
}

// epLegal reports whether at least one pawn of capturingColor standing
// adjacent to the just-double-pushed pawn could capture en passant at
// target without leaving capturingColor's own king in check.
func (p Position) epLegal(target int, capturingColor enum.Color) bool {
	movedColor := enum.Opposite(capturingColor)

	var pushedSq int
	if movedColor == enum.White {
		pushedSq = target + 8
	} else {
		pushedSq = target - 8
	}

	capturingPawn := enum.MakePiece(enum.Pawn, capturingColor)
	movedPawn := enum.MakePiece(enum.Pawn, movedColor)
	f := bitutil.File(pushedSq)

	tryCapture := func(fromSq int) bool {
		if p.Bitboards[capturingPawn]&(uint64(1)<<fromSq) == 0 {
			return false
		}
		sim := p
		sim.Bitboards[capturingPawn] &^= uint64(1) << fromSq
		sim.Bitboards[movedPawn] &^= uint64(1) << pushedSq
		sim.Bitboards[capturingPawn] |= uint64(1) << target
		king := sim.KingSquare(capturingColor)
		return !sim.IsAttacked(king, movedColor)
	}

	if f > 0 && tryCapture(pushedSq-1) {
		return true
	}
	if f < 7 && tryCapture(pushedSq+1) {
		return true
	}
	return false
}
