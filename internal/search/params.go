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

package search

import (
	"math"

	. "github.com/kyo-shogi/shogo/internal/types"
)

// This file contains data structures and functions to support the search
// with static or pre-computed parameters, mostly for params too complex to
// be part of the search configuration.

// lmr is a lookup table for late move reductions in the dimensions depth
// and moves searched. The growth follows ln(depth) x ln(moves searched) as
// is common for this technique; the scaling constants are the tunable part
// and deliberately conservative for shogi's larger branching factor.
var lmr [32][64]int

// LmrReduction returns the search depth reduction for LMR dependent on
// depth and moves searched.
func LmrReduction(depth int, movesSearched int) int {
	if depth >= 32 {
		depth = 31
	}
	if movesSearched >= 64 {
		movesSearched = 63
	}
	return lmr[depth][movesSearched]
}

// prepare the pre-computed values.
func init() {
	for d := 0; d < 32; d++ {
		for m := 0; m < 64; m++ {
			switch {
			case d <= 3 || m <= 3:
				lmr[d][m] = 1
			default:
				r := int(math.Round(math.Log(float64(d)) * math.Log(float64(m)) / 2.0))
				if r < 1 {
					r = 1
				}
				if r > d-2 {
					r = d - 2
				}
				lmr[d][m] = r
			}
		}
	}
}

// lmp holds the number of moves to search per depth before late move
// pruning skips the remaining quiet moves.
var lmp [16]int

func init() {
	for d := 1; d < 16; d++ {
		lmp[d] = 6 + int(math.Pow(float64(d)+0.5, 1.3))
	}
}

// LmpMovesSearched returns a depth dependent value for moves searched for
// late move prunings.
func LmpMovesSearched(depth int) int {
	if depth >= 16 {
		return lmp[15]
	}
	return lmp[depth]
}

// fp holds futility pruning margins per depth left.
var fp = [7]Value{0, 120, 240, 360, 560, 960, 1_280}

// rfp holds reverse futility pruning margins per depth left.
var rfp = [4]Value{0, 220, 440, 880}

// aspirationSteps returns the widening sequence for the aspiration window
// around the previous iteration's score: the configured delta, the delta
// doubled twice, and finally the full window.
func aspirationSteps(delta Value) [4]Value {
	return [4]Value{delta, 2 * delta, 4 * delta, ValueMax}
}
