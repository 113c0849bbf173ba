// Package chain implements the per-ply codec for a continuation run
// (spec §4.8): each ply stores only the moving piece's ordinal among the
// mover's pieces, the move's ordinal within its destination set, and a
// VLE-coded score delta. Both encode and decode compute these ordinals by
// replaying the same destination-generation rules as package movegen, so
// the two sides never need to materialize or search a full move list.
package chain

import (
	"math/bits"

	"github.com/mirajhq/binpack/attacks"
	"github.com/mirajhq/binpack/bitstream"
	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/movegen"
	"github.com/mirajhq/binpack/position"
)

// scoreVLEBlockSize is the vle16 block width used for score deltas.
const scoreVLEBlockSize = 4

// MaxPlies is the largest num_plies value the 16-bit chain-length field can
// hold.
const MaxPlies = 0xFFFF

func beforeMask(sq int) uint64 { return uint64(1)<<uint(sq) - 1 }

// nthSetBit returns the index of the n-th (0-based) set bit of bb in
// ascending order.
func nthSetBit(bb uint64, n int) int {
	for i := 0; i < n; i++ {
		bb &= bb - 1
	}
	return bits.TrailingZeros64(bb)
}

func promotionRank(color enum.Color) int {
	if color == enum.White {
		return 6
	}
	return 1
}

// EncodePly appends one ply of the chain to w: the moving piece's ordinal,
// the move's destination ordinal, and the VLE-coded score delta. pos is the
// position *before* mv is applied. lastScore is the expected_last_score
// carried from the previous ply (or −stem.Score for the first ply of a
// chain). It returns the lastScore to pass for the next ply.
func EncodePly(w *bitstream.Writer, pos position.Position, mv position.Move, score int16, lastScore int16) int16 {
	color := pos.ActiveColor
	own := pos.OccupiedByColor(color)
	numPieces := bits.OnesCount64(own)

	from, to := mv.From(), mv.To()
	pieceID := bits.OnesCount64(own & beforeMask(from))
	w.AddBitsLE8(byte(pieceID), bitstream.UsedBits(uint64(numPieces)))

	pt := enum.PieceTypeOf(pos.PieceAt(from))
	var moveID, numMoves int

	switch pt {
	case enum.Pawn:
		dest := movegen.PawnDestinations(pos, from, color)
		numMoves = bits.OnesCount64(dest)
		ordinal := bits.OnesCount64(dest & beforeMask(to))
		if fromRank(from) == promotionRank(color) {
			moveID = ordinal*4 + (mv.PromotionPieceType() - enum.Knight)
			numMoves *= 4
		} else {
			moveID = ordinal
		}

	case enum.King:
		ordinary := attacks.KingAttacks[from] &^ own
		attacksSize := bits.OnesCount64(ordinary)
		rightsMask := kingRightsMask(color)
		numCastling := bits.OnesCount64(uint64(pos.CastlingRights & rightsMask))
		numMoves = attacksSize + numCastling

		if mv.Type() == enum.MoveCastle {
			longHeld := pos.CastlingRights&queensideRight(color) != 0
			moveID = attacksSize - 1
			if longHeld {
				moveID++
			}
			if isShortCastle(to) {
				moveID++
			}
		} else {
			moveID = bits.OnesCount64(ordinary & beforeMask(to))
		}

	default:
		dest := movegen.PieceDestinations(pos, from, pt)
		numMoves = bits.OnesCount64(dest)
		moveID = bits.OnesCount64(dest & beforeMask(to))
	}

	w.AddBitsLE8(byte(moveID), bitstream.UsedBits(uint64(numMoves)))

	delta := enum.SignedToUnsigned(int(score) - int(lastScore))
	w.AddVLE16(uint16(delta), scoreVLEBlockSize)

	return -score
}

// DecodePly reads one ply of the chain from r. pos is the running position
// before the decoded move is applied; the caller is responsible for
// applying the returned move to pos afterward. It returns the decoded move,
// its stored score, and the lastScore to pass for the next ply. If r runs
// out of data before a full ply can be decoded (a truncated or corrupted
// chain payload), it returns bitstream.ErrTruncated and the other results
// must not be used.
func DecodePly(r *bitstream.Reader, pos position.Position, lastScore int16) (position.Move, int16, int16, error) {
	color := pos.ActiveColor
	own := pos.OccupiedByColor(color)
	numPieces := bits.OnesCount64(own)

	pieceID := int(r.ExtractBitsLE8(bitstream.UsedBits(uint64(numPieces))))
	from := nthSetBit(own, pieceID)

	pt := enum.PieceTypeOf(pos.PieceAt(from))

	var mv position.Move

	switch pt {
	case enum.Pawn:
		dest := movegen.PawnDestinations(pos, from, color)
		numMoves := bits.OnesCount64(dest)
		isPromoRank := fromRank(from) == promotionRank(color)
		if isPromoRank {
			numMoves *= 4
		}
		moveID := int(r.ExtractBitsLE8(bitstream.UsedBits(uint64(numMoves))))

		if isPromoRank {
			destIndex := moveID / 4
			promoOffset := moveID % 4
			to := nthSetBit(dest, destIndex)
			mv = position.NewPromotionMove(from, to, enum.Knight+promoOffset)
		} else {
			to := nthSetBit(dest, moveID)
			if to == pos.EPSquare && attacks.PawnAttacks[color][from]&(uint64(1)<<to) != 0 && pos.PieceAt(to) == enum.PieceNone {
				mv = position.NewMove(from, to, enum.MoveEnPassant)
			} else {
				mv = position.NewMove(from, to, enum.MoveNormal)
			}
		}

	case enum.King:
		ordinary := attacks.KingAttacks[from] &^ own
		attacksSize := bits.OnesCount64(ordinary)
		rightsMask := kingRightsMask(color)
		numCastling := bits.OnesCount64(uint64(pos.CastlingRights & rightsMask))
		numMoves := attacksSize + numCastling
		moveID := int(r.ExtractBitsLE8(bitstream.UsedBits(uint64(numMoves))))

		if moveID < attacksSize {
			to := nthSetBit(ordinary, moveID)
			mv = position.NewMove(from, to, enum.MoveNormal)
		} else {
			longHeld := pos.CastlingRights&queensideRight(color) != 0
			offset := moveID - attacksSize
			isLong := offset == 0 && longHeld
			to := kingsideRookSquare(color)
			if isLong {
				to = queensideRookSquare(color)
			}
			mv = position.NewMove(from, to, enum.MoveCastle)
		}

	default:
		dest := movegen.PieceDestinations(pos, from, pt)
		numMoves := bits.OnesCount64(dest)
		moveID := int(r.ExtractBitsLE8(bitstream.UsedBits(uint64(numMoves))))
		to := nthSetBit(dest, moveID)
		mv = position.NewMove(from, to, enum.MoveNormal)
	}

	deltaU := r.ExtractVLE16(scoreVLEBlockSize)
	score := lastScore + int16(enum.UnsignedToSigned(uint(deltaU)))

	if err := r.Err(); err != nil {
		return 0, 0, 0, err
	}
	return mv, score, -score, nil
}

func fromRank(sq int) int { return sq / 8 }

func kingRightsMask(color enum.Color) enum.CastlingRights {
	if color == enum.White {
		return enum.WhiteKing | enum.WhiteQueen
	}
	return enum.BlackKing | enum.BlackQueen
}

func queensideRight(color enum.Color) enum.CastlingRights {
	if color == enum.White {
		return enum.WhiteQueen
	}
	return enum.BlackQueen
}

func isShortCastle(to int) bool {
	return to == enum.SH1 || to == enum.SH8
}

func kingsideRookSquare(color enum.Color) int {
	if color == enum.White {
		return enum.SH1
	}
	return enum.SH8
}

func queensideRookSquare(color enum.Color) int {
	if color == enum.White {
		return enum.SA1
	}
	return enum.SA8
}
