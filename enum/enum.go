// Package enum contains custom type declarations and predefined constants
// shared across the codec. Used to avoid the "magic numbers" antipattern.
package enum

// Square is an alias type to avoid bothersome conversion between int and
// square index. Valid values are 0..63; [NoSquare] (64) marks "none".
type Square = int

// NoSquare marks the absence of a square, e.g. an empty en-passant target.
const NoSquare Square = 64

// Color is an alias type to avoid bothersome conversion between int and Color.
type Color = int

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func Opposite(c Color) Color { return c ^ 1 }

// PieceType is an alias type to avoid bothersome conversion between int and
// PieceType.
type PieceType = int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// Piece packs a (PieceType, Color) pair as (pt<<1)|color, matching the
// canonical nibble order P,p,N,n,B,b,R,r,Q,q,K,k used by the compressed
// position codec. PieceNone (12) marks the absence of a piece.
type Piece = int

const (
	WPawn Piece = iota
	BPawn
	WKnight
	BKnight
	WBishop
	BBishop
	WRook
	BRook
	WQueen
	BQueen
	WKing
	BKing
	PieceNone
)

// MakePiece packs a piece type and color into a [Piece].
func MakePiece(pt PieceType, c Color) Piece { return (pt << 1) | c }

// PieceTypeOf extracts the [PieceType] of a [Piece].
func PieceTypeOf(p Piece) PieceType { return p >> 1 }

// ColorOf extracts the [Color] of a [Piece].
func ColorOf(p Piece) Color { return p & 1 }

// MoveType identifies the four move shapes the codec distinguishes. The
// ordinal values match the 2-bit field of the compressed move (spec §4.6)
// and must not be reordered.
type MoveType = int

const (
	MoveNormal MoveType = iota
	MovePromotion
	MoveCastle
	MoveEnPassant
)

// CastlingRights is a 4-bit flag set.
type CastlingRights int

const (
	WhiteKing CastlingRights = 1 << iota
	WhiteQueen
	BlackKing
	BlackQueen
)

// Result is the final outcome of a game, from the perspective stored with
// each training entry.
type Result = int

const (
	ResultBlackWin Result = -1
	ResultDraw     Result = 0
	ResultWhiteWin Result = 1
)

// SignedToUnsigned zig-zag encodes a small signed value as an unsigned one:
// x >= 0 -> 2x, x < 0 -> -2x-1.
func SignedToUnsigned(x int) uint { return zigzagEncode(x) }

// UnsignedToSigned inverts [SignedToUnsigned].
func UnsignedToSigned(u uint) int { return zigzagDecode(u) }

func zigzagEncode(x int) uint {
	if x >= 0 {
		return uint(x) * 2
	}
	return uint(-x)*2 - 1
}

func zigzagDecode(u uint) int {
	if u&1 == 0 {
		return int(u / 2)
	}
	return -int((u + 1) / 2)
}

// SquareNames holds the algebraic name of every square, indexed by square.
var SquareNames = [64]string{
	"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
	"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
	"a3", "b3", "c3", "d3", "e3", "f3", "g3", "h3",
	"a4", "b4", "c4", "d4", "e4", "f4", "g4", "h4",
	"a5", "b5", "c5", "d5", "e5", "f5", "g5", "h5",
	"a6", "b6", "c6", "d6", "e6", "f6", "g6", "h6",
	"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
	"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
}

// Sq packs a zero-based file (a=0..h=7) and rank (1st=0..8th=7) into a
// square index.
func Sq(file, rank int) Square { return rank*8 + file }

// Square indices for the corners and castling-relevant squares, used
// throughout move generation and castling-rights bookkeeping.
const (
	SA1 Square = 0
	SH1 Square = 7
	SA8 Square = 56
	SH8 Square = 63
	SE1 Square = 4
	SE8 Square = 60
	SG1 Square = 6
	SC1 Square = 2
	SG8 Square = 62
	SC8 Square = 58
	SF1 Square = 5
	SD1 Square = 3
	SF8 Square = 61
	SD8 Square = 59
)
