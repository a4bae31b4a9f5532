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

package position

import (
	. "github.com/kyo-shogi/shogo/internal/types"
)

// zobrist holds the random keys used to incrementally maintain a position's
// hash. Unlike chess there is no castling-rights or en-passant-file
// component; in its place a shogi position's hash must also depend on how
// many of each piece type each side holds in hand, since two positions with
// identical boards but different hands are different positions.
type zobrist struct {
	pieces     [PieceLength][SqLength]Key
	handCount  [ColorLength][PtLength][MaxHandCount + 1]Key
	nextPlayer Key
}

var zobristBase = zobrist{}

func initZobrist() {
	r := NewRandom(1070372)
	for pc := PieceNone; pc < PieceLength; pc++ {
		for sq := 0; sq < SqLength; sq++ {
			zobristBase.pieces[pc][sq] = Key(r.Rand64())
		}
	}
	for c := Black; c <= White; c++ {
		for _, pt := range HandPieceTypes() {
			for n := 0; n <= MaxHandCount; n++ {
				zobristBase.handCount[c][pt][n] = Key(r.Rand64())
			}
		}
	}
	zobristBase.nextPlayer = Key(r.Rand64())
}
