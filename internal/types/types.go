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

// Package types contains the basic data types shared across the engine:
// squares, files, ranks, pieces, bitboards, magic attack tables, moves and
// search values. Many of these would be enum candidates in a language that
// has them; Go doesn't, so they are typed integers with constructor and
// accessor methods instead.
package types

import (
	"github.com/kyo-shogi/shogo/internal/logging"
)

var log = logging.GetLog("types")

var initialized = false

// init initializes precomputed data structures (bitboards, magic attack
// tables). Keeps an initialized flag to avoid doing this more than once.
func init() {
	if initialized {
		return
	}
	log.Debug("Initializing data types")
	initBb()
	initMagics()
	initStepAttacks()
	initialized = true
}

const (
	// MaxDepth is the maximum search depth in plies.
	MaxDepth = 128

	// MaxMoves is the maximum number of plies expected in a single game,
	// sized generously above shogi's typical game length.
	MaxMoves = 700

	// MaxHandCount is the largest plausible count of a single piece type
	// held in hand at once (all 18 pawns, in the most extreme case).
	MaxHandCount = 18

	// KB, MB, GB are byte-size helpers for hash-size configuration.
	KB uint64 = 1024
	MB uint64 = KB * KB
	GB uint64 = KB * MB

	// GamePhaseMax is the maximum game-phase value used to blend
	// mid-game/end-game evaluation scores. It is calibrated against the
	// total non-pawn, non-king material present in the starting position:
	// each side starts with 2 Lances + 2 Knights + 2 Silvers + 2 Golds (1
	// point each) and 1 Bishop + 1 Rook (2 points each), times two sides.
	GamePhaseMax = 24
)
