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

// Package tablebase provides a micro endgame table for shogi positions
// with very little material left. Unlike chess endgame tablebases a shogi
// table cannot be enumerated offline per material signature - captured
// pieces re-enter play, so the state space of even tiny endings is linked
// to hand states. Instead the table is filled on demand: positions below
// the piece threshold are solved exactly by a bounded full-width
// proof search and the proven mate distances are cached, so every later
// probe of the same position (and of every position inside its proof
// tree) is an immediate exact hit.
package tablebase

import (
	"sync"

	"github.com/op/go-logging"

	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// result of a solved state, from the view of the side to move.
type result int8

const (
	unknown result = iota
	win            // side to move mates in dtm plies
	loss           // side to move is mated in dtm plies
)

// entry is the cached proof state of one position. Proven results are
// exact and never invalidated; unknown results record the depth they were
// searched to, so a later deeper probe searches again.
type entry struct {
	res   result
	dtm   int8
	depth int8
}

// Tablebase caches exact distance-to-mate results for micro endgame
// positions. Create with NewTablebase(). Safe for concurrent probes.
type Tablebase struct {
	log      *logging.Logger
	mu       sync.Mutex
	maxDepth int
	table    map[position.Key]entry
	// statistics
	probes uint64
	hits   uint64
}

// NewTablebase creates a micro tablebase solving up to maxDepth plies
// deep per probe.
func NewTablebase(maxDepth int) *Tablebase {
	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxDepth > 15 {
		maxDepth = 15
	}
	return &Tablebase{
		log:      myLogging.GetLog("tb"),
		maxDepth: maxDepth,
		table:    make(map[position.Key]entry),
	}
}

// Probe solves the position exactly within the table's depth bound and
// returns the mate-distance score for the side to move relative to the
// given ply from the search root, or found == false when the position is
// not decided within the bound. The caller is responsible for only
// probing positions below the material threshold.
func (tb *Tablebase) Probe(p *position.Position, ply int) (value Value, found bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.probes++
	res, dtm := tb.solve(p, tb.maxDepth)
	switch res {
	case win:
		tb.hits++
		return ValueCheckMate - Value(ply) - Value(dtm), true
	case loss:
		tb.hits++
		return -ValueCheckMate + Value(ply) + Value(dtm), true
	}
	return ValueNA, false
}

// ProbeRoot solves the root position and on a win additionally derives
// the move starting the fastest forced mate.
func (tb *Tablebase) ProbeRoot(p *position.Position) (Value, Move, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.probes++
	res, _ := tb.solve(p, tb.maxDepth)
	if res != win {
		return ValueNA, MoveNone, false
	}
	tb.hits++

	// pick the move leading to the fastest proven mate
	var moves moveslice.MoveSlice
	movegen.GenerateLegalMoves(p, movegen.GenAll, &moves)
	bestMove := MoveNone
	bestDtm := int8(127)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		p.DoMove(m)
		childRes, childDtm := tb.solve(p, tb.maxDepth-1)
		p.UndoMove()
		if childRes == loss && childDtm+1 < bestDtm {
			bestDtm = childDtm + 1
			bestMove = m
		}
	}
	if bestMove == MoveNone {
		return ValueNA, MoveNone, false
	}
	return ValueCheckMate - Value(bestDtm), bestMove, true
}

// Len returns the number of cached proof states.
func (tb *Tablebase) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.table)
}

// solve is a bounded full-width proof search: a state is a proven win if
// any move leads to a proven loss of the opponent, a proven loss only if
// every move leads to a proven win of the opponent. Mate distances take
// the fastest mate for the winner and the longest defence for the loser,
// so the result is the exact distance-to-mate. States not decided within
// depthLeft stay unknown and record the searched depth.
func (tb *Tablebase) solve(p *position.Position, depthLeft int) (result, int8) {
	key := p.ZobristKey()
	if e, ok := tb.table[key]; ok {
		if e.res != unknown {
			return e.res, e.dtm
		}
		if int(e.depth) >= depthLeft {
			return unknown, 0
		}
	}

	var moves moveslice.MoveSlice
	movegen.GenerateLegalMoves(p, movegen.GenAll, &moves)

	// no legal move is always a loss for the side to move in shogi
	if moves.Len() == 0 {
		tb.table[key] = entry{res: loss, dtm: 0, depth: int8(depthLeft)}
		return loss, 0
	}
	if depthLeft <= 0 {
		tb.table[key] = entry{res: unknown, depth: 0}
		return unknown, 0
	}

	// mark the state as in-progress/unknown before recursing so a
	// repetition inside the proof tree does not recurse endlessly
	tb.table[key] = entry{res: unknown, depth: int8(depthLeft)}

	fastestWin := int8(127)
	longestLoss := int8(-1)
	allLose := true
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		p.DoMove(m)
		childRes, childDtm := tb.solve(p, depthLeft-1)
		p.UndoMove()

		switch childRes {
		case loss:
			// opponent is mated after this move - a win for us
			if childDtm+1 < fastestWin {
				fastestWin = childDtm + 1
			}
		case win:
			if childDtm+1 > longestLoss {
				longestLoss = childDtm + 1
			}
		default:
			allLose = false
		}
	}

	switch {
	case fastestWin < 127:
		tb.table[key] = entry{res: win, dtm: fastestWin, depth: int8(depthLeft)}
		return win, fastestWin
	case allLose:
		tb.table[key] = entry{res: loss, dtm: longestLoss, depth: int8(depthLeft)}
		return loss, longestLoss
	}
	tb.table[key] = entry{res: unknown, depth: int8(depthLeft)}
	return unknown, 0
}
