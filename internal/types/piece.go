/*
 * Shogo - USI shogi engine in Go for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package types

// Piece combines a Color and a PieceType into a single board-cell value:
// color in the high bits, piece type in the low bits.
type Piece int8

const (
	PieceNone   Piece = 0
	pieceShift        = 4 // room for PtLength (15) values per color
	PieceLength       = 2 << pieceShift
)

// MakePiece creates the piece given by color and piece type.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int(c)<<pieceShift + int(pt))
}

// TypeOf returns the PieceType part of the piece.
func (p Piece) TypeOf() PieceType {
	return PieceType(int(p) & (1<<pieceShift - 1))
}

// ColorOf returns the Color part of the piece. Undefined for PieceNone.
func (p Piece) ColorOf() Color {
	return Color(int(p) >> pieceShift)
}

// IsValid reports whether p is not PieceNone and carries a valid type.
func (p Piece) IsValid() bool {
	return p != PieceNone && p.TypeOf().IsValid()
}

// String returns the SFEN board letter for the piece: uppercase for Black,
// lowercase for White, with a "+" prefix if promoted.
func (p Piece) String() string {
	if p == PieceNone {
		return "-"
	}
	s := p.TypeOf().String()
	if p.ColorOf() == Black {
		return s
	}
	// lowercase the letter part, keep any "+" prefix as-is
	if len(s) == 2 {
		return "+" + string(s[1]+32)
	}
	return string(s[0] + 32)
}

// Promote returns the promoted piece of the same color, or PieceNone if
// the piece type cannot promote.
func (p Piece) Promote() Piece {
	pt := p.TypeOf().Promote()
	if pt == PtNone {
		return PieceNone
	}
	return MakePiece(p.ColorOf(), pt)
}

// Demote returns the unpromoted hand-equivalent piece of the same color.
func (p Piece) Demote() Piece {
	return MakePiece(p.ColorOf(), p.TypeOf().Demote())
}

// letterToPieceType maps the single-character SFEN piece letters (always
// uppercase; the caller distinguishes color separately) to a PieceType.
var letterToPieceType = map[byte]PieceType{
	'P': Pawn, 'L': Lance, 'N': Knight, 'S': Silver,
	'G': Gold, 'B': Bishop, 'R': Rook, 'K': King,
}

// PieceTypeFromLetter looks up the unpromoted piece type for an uppercase
// SFEN piece letter, returning PtNone and false if it isn't one.
func PieceTypeFromLetter(c byte) (PieceType, bool) {
	pt, ok := letterToPieceType[c]
	return pt, ok
}
