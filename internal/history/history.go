//
// Shogo - USI shogi engine in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package history provides data structures and functionality to manage
// history driven move tables (e.g. history counter, counter moves, etc.)
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/kyo-shogi/shogo/internal/types"
)

var out = message.NewPrinter(language.English)

// History is a data structure updated during search to provide the move
// generator with valuable information for move sorting.
//
// Both tables are indexed by Move.FromIndex() rather than a plain from
// square, so a drop of piece pt and a board move both landing on the same
// square get separate history slots - a dropped Silver and the Silver that
// was already on the board and moved there are not the same move.
type HistoryTable struct {
	Count   [ColorLength][FromIndexLength][SqLength]int64
	Counter [FromIndexLength][SqLength]Move
}

// NewHistory creates a new, empty HistoryTable.
func NewHistory() *HistoryTable {
	return &HistoryTable{}
}

// Update rewards a quiet move that caused a beta cutoff at the given depth,
// ages down history scores once they risk overflow, and records m as the
// counter move to the move that was played right before it.
func (h *HistoryTable) Update(c Color, previous, m Move, depth int) {
	if m == MoveNone {
		return
	}
	from, to := m.FromIndex(), int(m.To())
	bonus := int64(depth * depth)
	h.Count[c][from][to] += bonus
	if h.Count[c][from][to] > 1<<30 {
		for f := 0; f < FromIndexLength; f++ {
			for t := 0; t < SqLength; t++ {
				h.Count[c][f][t] /= 2
			}
		}
	}
	if previous != MoveNone {
		h.Counter[previous.FromIndex()][previous.To()] = m.MoveOf()
	}
}

// CounterMove returns the move last recorded by Update as the reply to
// previous, or MoveNone if none has been recorded yet.
func (h *HistoryTable) CounterMove(previous Move) Move {
	if previous == MoveNone {
		return MoveNone
	}
	return h.Counter[previous.FromIndex()][previous.To()]
}

// HistoryScore returns the accumulated history score for c playing m.
func (h *HistoryTable) HistoryScore(c Color, m Move) int64 {
	return h.Count[c][m.FromIndex()][int(m.To())]
}

func (h *HistoryTable) String() string {
	sb := strings.Builder{}
	for from := 0; from < FromIndexLength; from++ {
		for to := 0; to < SqLength; to++ {
			if h.Count[Black][from][to] == 0 && h.Count[White][from][to] == 0 {
				continue
			}
			sb.WriteString(out.Sprintf("from=%-3d to=%-3s black=%-8d white=%-8d\n",
				from, Square(to).String(), h.Count[Black][from][to], h.Count[White][from][to]))
		}
	}
	return sb.String()
}
