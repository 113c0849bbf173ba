// fen.go implements conversions between Forsyth-Edwards Notation strings
// and a Position. Functions in this file expect the passed FEN strings to
// be well-formed and may panic if they are not: FEN is a caller-supplied
// contract, not untrusted wire input (contrast with the chunk/binpack
// packages, which do validate untrusted bytes).
package position

import (
	// bits is used to speed up the iteration over bitboards.
	"math/bits"
	"strconv"
	"strings"

	"github.com/mirajhq/binpack/enum"
)

// pieceSymbols gives the FEN letter for every enum.Piece id.
var pieceSymbols = [12]byte{
	'P', 'p', 'N', 'n', 'B', 'b', 'R', 'r', 'Q', 'q', 'K', 'k',
}

// ToBitboards converts the first field of a FEN string (piece placement
// data) into a bitboard array indexed by enum.Piece.
func ToBitboards(piecePlacementData string) [12]uint64 {
	var bitboards [12]uint64
	squareIndex := 56

	for i := 0; i < len(piecePlacementData); i++ {
		char := piecePlacementData[i]

		switch {
		case char == '/':
			squareIndex -= 16
		case char >= '1' && char <= '8':
			squareIndex += int(char - '0')
		default:
			var piece enum.Piece
			switch char {
			case 'P':
				piece = enum.WPawn
			case 'p':
				piece = enum.BPawn
			case 'N':
				piece = enum.WKnight
			case 'n':
				piece = enum.BKnight
			case 'B':
				piece = enum.WBishop
			case 'b':
				piece = enum.BBishop
			case 'R':
				piece = enum.WRook
			case 'r':
				piece = enum.BRook
			case 'Q':
				piece = enum.WQueen
			case 'q':
				piece = enum.BQueen
			case 'K':
				piece = enum.WKing
			case 'k':
				piece = enum.BKing
			}
			bitboards[piece] |= uint64(1) << squareIndex
			squareIndex++
		}
	}

	return bitboards
}

// FromBitboards converts a bitboard array into the piece-placement field
// of a FEN string.
func FromBitboards(bitboards [12]uint64) string {
	var board [64]byte

	for piece, bb := range bitboards {
		for bb != 0 {
			sq := bits.TrailingZeros64(bb)
			bb &= bb - 1
			board[sq] = pieceSymbols[piece]
		}
	}

	var out strings.Builder
	out.Grow(72)

	for rank := 7; rank >= 0; rank-- {
		var empty int
		for file := 0; file < 8; file++ {
			sq := rank*8 + file
			if board[sq] == 0 {
				empty++
				continue
			}
			if empty > 0 {
				out.WriteByte('0' + byte(empty))
				empty = 0
			}
			out.WriteByte(board[sq])
		}
		if empty > 0 {
			out.WriteByte('0' + byte(empty))
		}
		if rank != 0 {
			out.WriteByte('/')
		}
	}

	return out.String()
}

// squareFromString parses an algebraic square name ("e3"), returning
// enum.NoSquare for "-".
func squareFromString(s string) int {
	if s == "-" {
		return enum.NoSquare
	}
	file := int(s[0] - 'a')
	rank := int(s[1]-'0') - 1
	return rank*8 + file
}

// Parse parses a 6-field FEN string into a Position.
func Parse(fenStr string) Position {
	fields := strings.Fields(fenStr)

	var p Position
	p.Bitboards = ToBitboards(fields[0])

	if fields[1] == "b" {
		p.ActiveColor = enum.Black
	}

	for i := 0; i < len(fields[2]); i++ {
		switch fields[2][i] {
		case 'K':
			p.CastlingRights |= enum.WhiteKing
		case 'Q':
			p.CastlingRights |= enum.WhiteQueen
		case 'k':
			p.CastlingRights |= enum.BlackKing
		case 'q':
			p.CastlingRights |= enum.BlackQueen
		}
	}

	p.EPSquare = squareFromString(fields[3])

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil {
		panic("position: cannot parse halfmove counter from FEN: " + fields[4])
	}
	p.HalfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil {
		panic("position: cannot parse fullmove counter from FEN: " + fields[5])
	}
	p.FullmoveNumber = fullmove

	return p
}

// Serialize renders p as a canonical 6-field FEN string: no trailing
// spaces, '-' for empty fields, castling rights in KQkq order.
func (p Position) Serialize() string {
	var out strings.Builder
	out.Grow(64)

	out.WriteString(FromBitboards(p.Bitboards))
	out.WriteByte(' ')
	if p.ActiveColor == enum.White {
		out.WriteByte('w')
	} else {
		out.WriteByte('b')
	}
	out.WriteByte(' ')

	if p.CastlingRights == 0 {
		out.WriteByte('-')
	} else {
		if p.CastlingRights&enum.WhiteKing != 0 {
			out.WriteByte('K')
		}
		if p.CastlingRights&enum.WhiteQueen != 0 {
			out.WriteByte('Q')
		}
		if p.CastlingRights&enum.BlackKing != 0 {
			out.WriteByte('k')
		}
		if p.CastlingRights&enum.BlackQueen != 0 {
			out.WriteByte('q')
		}
	}
	out.WriteByte(' ')

	if p.EPSquare == enum.NoSquare {
		out.WriteByte('-')
	} else {
		out.WriteString(enum.SquareNames[p.EPSquare])
	}
	out.WriteByte(' ')

	out.WriteString(strconv.Itoa(p.HalfmoveClock))
	out.WriteByte(' ')
	out.WriteString(strconv.Itoa(p.FullmoveNumber))

	return out.String()
}
