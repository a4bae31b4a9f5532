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

import (
	"math/bits"
	"strings"
)

// loBits is the number of squares packed into the low word of a Bitboard.
// The board has 81 squares; the remaining 18 live in the high word. The
// split point is otherwise arbitrary - chosen so the boundary never lands
// inside a diagonal run the magic tables care about.
const loBits = 63

// Bitboard is an 81-bit set of board squares, represented as two machine
// words because no single Go integer type holds 81 bits. This mirrors the
// two-word bitboard technique used by several real shogi engines to stay
// on native-width arithmetic instead of a big.Int.
type Bitboard struct {
	Lo uint64
	Hi uint64
}

// BbZero is the empty bitboard.
var BbZero = Bitboard{}

// Has reports whether sq is set.
func (b Bitboard) Has(sq Square) bool {
	if int(sq) < loBits {
		return b.Lo&(uint64(1)<<uint(sq)) != 0
	}
	return b.Hi&(uint64(1)<<uint(int(sq)-loBits)) != 0
}

// PushSquare sets the bit for sq and returns the resulting bitboard.
func PushSquare(b Bitboard, sq Square) Bitboard {
	if int(sq) < loBits {
		b.Lo |= uint64(1) << uint(sq)
	} else {
		b.Hi |= uint64(1) << uint(int(sq)-loBits)
	}
	return b
}

// PushSquare sets the corresponding bit for the square, mutating in place.
func (b *Bitboard) PushSquare(sq Square) Bitboard {
	*b = PushSquare(*b, sq)
	return *b
}

// PopSquare clears the bit for sq.
func PopSquare(b Bitboard, sq Square) Bitboard {
	if int(sq) < loBits {
		b.Lo &^= uint64(1) << uint(sq)
	} else {
		b.Hi &^= uint64(1) << uint(int(sq)-loBits)
	}
	return b
}

// PopSquare clears the corresponding bit for the square, mutating in place.
func (b *Bitboard) PopSquare(sq Square) Bitboard {
	*b = PopSquare(*b, sq)
	return *b
}

// Or, And, Xor, AndNot are the usual bitwise set operations.
func (b Bitboard) Or(o Bitboard) Bitboard     { return Bitboard{b.Lo | o.Lo, b.Hi | o.Hi} }
func (b Bitboard) And(o Bitboard) Bitboard    { return Bitboard{b.Lo & o.Lo, b.Hi & o.Hi} }
func (b Bitboard) Xor(o Bitboard) Bitboard    { return Bitboard{b.Lo ^ o.Lo, b.Hi ^ o.Hi} }
func (b Bitboard) AndNot(o Bitboard) Bitboard { return Bitboard{b.Lo &^ o.Lo, b.Hi &^ o.Hi} }

var loMask = uint64(1)<<loBits - 1
var hiMask = uint64(1)<<(SqLength-loBits) - 1

// Not returns the complement of b restricted to the 81 valid squares.
func (b Bitboard) Not() Bitboard {
	return Bitboard{^b.Lo & loMask, ^b.Hi & hiMask}
}

// IsEmpty reports whether no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b.Lo == 0 && b.Hi == 0
}

// PopCount returns the number of set squares.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// Lsb returns the least significant set square, or SqNone if b is empty.
func (b Bitboard) Lsb() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(bits.TrailingZeros64(b.Hi) + loBits)
	}
	return SqNone
}

// PopLsb clears and returns the least significant set square.
func (b *Bitboard) PopLsb() Square {
	sq := b.Lsb()
	if sq != SqNone {
		b.PopSquare(sq)
	}
	return sq
}

// String renders the bitboard as a 9x9 diagram of "1"/"." for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := Rank1; r < RankNone; r++ {
		for f := File1; f < FileNone; f++ {
			if b.Has(SquareOf(f, r)) {
				sb.WriteString("1")
			} else {
				sb.WriteString(".")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// fileBb, rankBb and sqBb are precomputed per-file, per-rank and
// per-square singleton masks, built once at init by initBb().
var fileBb [FileLength]Bitboard
var rankBb [RankLength]Bitboard
var sqBb [SqLength]Bitboard

func initBb() {
	for f := File1; f < FileNone; f++ {
		var bb Bitboard
		for r := Rank1; r < RankNone; r++ {
			bb.PushSquare(SquareOf(f, r))
		}
		fileBb[f] = bb
	}
	for r := Rank1; r < RankNone; r++ {
		var bb Bitboard
		for f := File1; f < FileNone; f++ {
			bb.PushSquare(SquareOf(f, r))
		}
		rankBb[r] = bb
	}
	for i := 0; i < SqLength; i++ {
		var bb Bitboard
		bb.PushSquare(Square(i))
		sqBb[i] = bb
	}
}

// Bb returns the singleton bitboard for this square.
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}
