// Package board renders bitboards and positions as Unicode board diagrams,
// for use in test failure messages only.
package board

import (
	"strings"

	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

var pieceSymbols = [12]rune{
	'♙', '♟', '♘', '♞', '♗', '♝', '♖', '♜', '♕', '♛', '♔', '♚',
}

// Bitboard formats a single bitboard as an 8x8 diagram, marking every set
// square with piece's symbol.
func Bitboard(bitboard uint64, piece enum.Piece) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + 1 + '0')
		b.WriteString("  ")

		for file := 0; file < 8; file++ {
			square := uint64(1) << (8*rank + file)

			symbol := pieceSymbols[piece]
			if bitboard&square == 0 {
				symbol = '.'
			}

			b.WriteRune(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")

	return b.String()
}

// Position formats a full position as an 8x8 diagram followed by its
// active color, en-passant target, and castling rights.
func Position(p position.Position) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + 1 + '0')
		b.WriteString("  ")

		for file := 0; file < 8; file++ {
			square := uint64(1) << (8*rank + file)

			symbol := rune('.')
			for piece := enum.WPawn; piece <= enum.BKing; piece++ {
				if square&p.Bitboards[piece] != 0 {
					symbol = pieceSymbols[piece]
					break
				}
			}

			b.WriteRune(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}

	b.WriteString("   a  b  c  d  e  f  g  h\nActive color: ")
	if p.ActiveColor == enum.White {
		b.WriteString("white\nEn passant: ")
	} else {
		b.WriteString("black\nEn passant: ")
	}

	if p.EPSquare == enum.NoSquare {
		b.WriteString("none\nCastling rights: ")
	} else {
		b.WriteString(enum.SquareNames[p.EPSquare])
		b.WriteString("\nCastling rights: ")
	}

	if p.CastlingRights&enum.WhiteKing != 0 {
		b.WriteByte('K')
	}
	if p.CastlingRights&enum.WhiteQueen != 0 {
		b.WriteByte('Q')
	}
	if p.CastlingRights&enum.BlackKing != 0 {
		b.WriteByte('k')
	}
	if p.CastlingRights&enum.BlackQueen != 0 {
		b.WriteByte('q')
	}

	return b.String()
}
