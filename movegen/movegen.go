// Package movegen implements pseudo-legal move generation in the exact
// canonical order required by the binpack chain codec: pawn
// pushes/captures/promotions, knights, bishops, rooks, queens, kings,
// castling; within each piece type, source squares ascending, and within
// each source, destination squares ascending. Any deviation from this
// order breaks binary compatibility with previously written binpack data
// (see package chain).
package movegen

import (
	"github.com/mirajhq/binpack/attacks"
	"github.com/mirajhq/binpack/bitutil"
	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

// promotionOrder is the order in which the generator emits promotion
// moves for a single destination square.
var promotionOrder = [4]enum.PieceType{enum.Queen, enum.Rook, enum.Bishop, enum.Knight}

// PawnDestinations returns the combined pseudo-legal destination bitboard
// (quiet pushes, double pushes, diagonal captures, and the en-passant
// square when reachable) for the pawn of color at sq. Promotion is not
// reflected here: a destination on the back rank still appears once: the
// caller (or the chain codec) expands it into the 4 promotion moves.
func PawnDestinations(pos position.Position, sq int, color enum.Color) uint64 {
	occ := pos.Occupied()
	enemy := pos.OccupiedByColor(enum.Opposite(color))

	var dest uint64
	var forward, startRank, doubleForward int
	if color == enum.White {
		forward, doubleForward, startRank = sq+8, sq+16, 1
	} else {
		forward, doubleForward, startRank = sq-8, sq-16, 6
	}

	if forward >= 0 && forward < 64 && occ&(uint64(1)<<forward) == 0 {
		dest |= uint64(1) << forward
		if bitutil.Rank(sq) == startRank && occ&(uint64(1)<<doubleForward) == 0 {
			dest |= uint64(1) << doubleForward
		}
	}

	captures := attacks.PawnAttacks[color][sq] & enemy
	dest |= captures

	if pos.EPSquare != enum.NoSquare && attacks.PawnAttacks[color][sq]&(uint64(1)<<pos.EPSquare) != 0 {
		dest |= uint64(1) << pos.EPSquare
	}

	return dest
}

// PieceDestinations returns the pseudo-legal destination bitboard for a
// non-pawn, non-king piece at sq (own pieces excluded).
func PieceDestinations(pos position.Position, sq int, pt enum.PieceType) uint64 {
	own := pos.OccupiedByColor(enum.ColorOf(pos.PieceAt(sq)))
	occ := pos.Occupied()

	switch pt {
	case enum.Knight:
		return attacks.KnightAttacks[sq] &^ own
	case enum.Bishop:
		return attacks.Bishop(sq, occ) &^ own
	case enum.Rook:
		return attacks.Rook(sq, occ) &^ own
	case enum.Queen:
		return attacks.Queen(sq, occ) &^ own
	}
	return 0
}

// KingDestinations returns the king's ordinary (non-castling) destination
// bitboard.
func KingDestinations(pos position.Position, sq int, color enum.Color) uint64 {
	own := pos.OccupiedByColor(color)
	return attacks.KingAttacks[sq] &^ own
}

const (
	wbRook, wcRook, wdRook = 1, 2, 3
	wfRook, wgRook         = 5, 6
	b8b, b8c, b8d          = 57, 58, 59
	b8f, b8g               = 61, 62
)

// CastlingCandidates returns the castling moves available to color in pos,
// in the order long-castle then short-castle, including only those whose
// right is held, whose path is clear, and whose king does not pass through
// or land on an attacked square. Returns nil if the mover is currently in
// check (castling is skipped entirely, per spec).
func CastlingCandidates(pos position.Position, color enum.Color) []position.Move {
	king := pos.KingSquare(color)
	opp := enum.Opposite(color)
	if pos.IsAttacked(king, opp) {
		return nil
	}

	occ := pos.Occupied()
	var moves []position.Move

	if color == enum.White {
		if pos.CastlingRights&enum.WhiteQueen != 0 {
			empty := occ&(uint64(1)<<wbRook|uint64(1)<<wcRook|uint64(1)<<wdRook) == 0
			safe := !pos.IsAttacked(enum.SD1, opp) && !pos.IsAttacked(enum.SC1, opp)
			if empty && safe {
				moves = append(moves, position.NewMove(enum.SE1, enum.SA1, enum.MoveCastle))
			}
		}
		if pos.CastlingRights&enum.WhiteKing != 0 {
			empty := occ&(uint64(1)<<wfRook|uint64(1)<<wgRook) == 0
			safe := !pos.IsAttacked(enum.SF1, opp) && !pos.IsAttacked(enum.SG1, opp)
			if empty && safe {
				moves = append(moves, position.NewMove(enum.SE1, enum.SH1, enum.MoveCastle))
			}
		}
	} else {
		if pos.CastlingRights&enum.BlackQueen != 0 {
			empty := occ&(uint64(1)<<b8b|uint64(1)<<b8c|uint64(1)<<b8d) == 0
			safe := !pos.IsAttacked(enum.SD8, opp) && !pos.IsAttacked(enum.SC8, opp)
			if empty && safe {
				moves = append(moves, position.NewMove(enum.SE8, enum.SA8, enum.MoveCastle))
			}
		}
		if pos.CastlingRights&enum.BlackKing != 0 {
			empty := occ&(uint64(1)<<b8f|uint64(1)<<b8g) == 0
			safe := !pos.IsAttacked(enum.SF8, opp) && !pos.IsAttacked(enum.SG8, opp)
			if empty && safe {
				moves = append(moves, position.NewMove(enum.SE8, enum.SH8, enum.MoveCastle))
			}
		}
	}

	return moves
}

// GenPseudoLegalMoves fills list with every pseudo-legal move available to
// the side to move in pos, in the canonical order described in the package
// doc comment.
func GenPseudoLegalMoves(pos position.Position, list *position.MoveList) {
	list.Len = 0
	color := pos.ActiveColor

	pawns := pos.PieceBB(enum.Pawn, color)
	for pawns != 0 {
		from := bitutil.PopLSB(&pawns)
		destinations := PawnDestinations(pos, from, color)
		for destinations != 0 {
			to := bitutil.PopLSB(&destinations)
			promoRank := 7
			if color == enum.Black {
				promoRank = 0
			}
			switch {
			case to == pos.EPSquare && attacks.PawnAttacks[color][from]&(uint64(1)<<to) != 0 && pos.PieceAt(to) == enum.PieceNone:
				list.Push(position.NewMove(from, to, enum.MoveEnPassant))
			case bitutil.Rank(to) == promoRank:
				for _, pt := range promotionOrder {
					list.Push(position.NewPromotionMove(from, to, pt))
				}
			default:
				list.Push(position.NewMove(from, to, enum.MoveNormal))
			}
		}
	}

	genSimple := func(pt enum.PieceType) {
		bb := pos.PieceBB(pt, color)
		for bb != 0 {
			from := bitutil.PopLSB(&bb)
			destinations := PieceDestinations(pos, from, pt)
			for destinations != 0 {
				to := bitutil.PopLSB(&destinations)
				list.Push(position.NewMove(from, to, enum.MoveNormal))
			}
		}
	}
	genSimple(enum.Knight)
	genSimple(enum.Bishop)
	genSimple(enum.Rook)
	genSimple(enum.Queen)

	kingSq := pos.KingSquare(color)
	destinations := KingDestinations(pos, kingSq, color)
	for destinations != 0 {
		to := bitutil.PopLSB(&destinations)
		list.Push(position.NewMove(kingSq, to, enum.MoveNormal))
	}

	for _, m := range CastlingCandidates(pos, color) {
		list.Push(m)
	}
}

// IsLegal reports whether a pseudo-legal move m, generated against pos,
// does not leave the mover's own king in check. Castling legality (path
// attacked) is already enforced by CastlingCandidates and needs no further
// check here.
func IsLegal(pos position.Position, m position.Move) bool {
	color := pos.ActiveColor
	after := pos.AfterMove(m)
	return !after.IsAttacked(after.KingSquare(color), enum.Opposite(color))
}

// GenLegalMoves fills list with the legal moves available to the side to
// move in pos. It is layered on top of GenPseudoLegalMoves for testing
// (perft) purposes; the codec itself only ever needs pseudo-legal move
// enumeration.
func GenLegalMoves(pos position.Position, list *position.MoveList) {
	var pseudo position.MoveList
	GenPseudoLegalMoves(pos, &pseudo)

	list.Len = 0
	for i := 0; i < pseudo.Len; i++ {
		if IsLegal(pos, pseudo.Moves[i]) {
			list.Push(pseudo.Moves[i])
		}
	}
}
