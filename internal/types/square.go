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

// Square represents exactly one square on a 9x9 shogi board. Squares are
// numbered file-major: Square = File*9 + Rank, files and ranks both 0-based
// (File1/Rank1 is square 0). This keeps all squares of a file contiguous,
// which the magic-table mask construction in magic.go relies on.
type Square uint8

const (
	SqNone   Square = 81
	SqLength int    = 81
)

// SquareOf returns the square for the given file and rank, or SqNone if
// either is invalid.
func SquareOf(f File, r Rank) Square {
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return Square(int(f)*9 + int(r))
}

// FileOf returns the file of the square.
func (sq Square) FileOf() File {
	return File(int(sq) / 9)
}

// RankOf returns the rank of the square.
func (sq Square) RankOf() Rank {
	return Rank(int(sq) % 9)
}

// IsValid reports whether sq is an actual board square.
func (sq Square) IsValid() bool {
	return sq < Square(SqLength)
}

// String renders the square in USI/SFEN notation: a file digit (1-9)
// followed by a rank letter (a-i), e.g. "7g".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return sq.FileOf().String() + string(rune('a')+int32(sq.RankOf()))
}

// MakeSquare parses a USI square string such as "7g" and returns the
// corresponding Square, or SqNone if the string is not a valid square.
func MakeSquare(s string) Square {
	if len(s) != 2 {
		return SqNone
	}
	fc := s[0]
	rc := s[1]
	if fc < '1' || fc > '9' || rc < 'a' || rc > 'i' {
		return SqNone
	}
	f := File(fc - '1')
	r := Rank(rc - 'a')
	return SquareOf(f, r)
}

// To returns the square reached from sq by moving one step in the given
// direction, or SqNone if that step would leave the board.
func (sq Square) To(d Direction) Square {
	if !sq.IsValid() {
		return SqNone
	}
	f := int(sq.FileOf())
	r := int(sq.RankOf())
	df, dr := d.delta()
	nf, nr := f+df, r+dr
	if nf < 0 || nf > 8 || nr < 0 || nr > 8 {
		return SqNone
	}
	return SquareOf(File(nf), Rank(nr))
}

// SquareDistance returns the Chebyshev distance between two squares, used
// to validate single-step rays in the sliding-attack mask builder.
func SquareDistance(a, b Square) int {
	fa, fb := int(a.FileOf()), int(b.FileOf())
	ra, rb := int(a.RankOf()), int(b.RankOf())
	df := fa - fb
	if df < 0 {
		df = -df
	}
	dr := ra - rb
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}
