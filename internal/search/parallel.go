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
	"strconv"
	"time"

	"github.com/frankkopp/workerpool"

	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/evaluator"
	"github.com/kyo-shogi/shogo/internal/history"
	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// rootSearchParallel is the optional parallel variant of rootSearch
// following the Young Brothers Wait Concept at the root: the first root
// move (the assumed PV) is searched serially with the full window to
// establish a sound alpha. The remaining root moves ("brothers") are then
// scouted concurrently with a null window by worker searches which share
// the transposition table, the tablebase and the search limits with this
// search. Scouts that beat alpha are re-searched
// serially with the full window, so score accuracy matches the serial
// search; only the order in which equal moves are found differs.
func (s *Search) rootSearchParallel(p *position.Position, depth int, alpha Value, beta Value) {

	bestNodeValue := ValueNA

	// first brother, serial, full window
	first := s.rootMoves.At(0)
	p.DoMove(first)
	s.nodesVisited++
	s.statistics.CurrentVariation.PushBack(first)
	value := -s.search(p, depth-1, 1, -beta, -alpha, true, true)
	s.statistics.CurrentVariation.PopBack()
	p.UndoMove()

	if s.stopConditions() && depth > 1 {
		return
	}

	s.rootMoves.Set(0, first.SetValue(value))
	bestNodeValue = value
	savePV(first, s.pv[1], s.pv[0])
	if value > alpha {
		alpha = value
	}

	if s.rootMoves.Len() == 1 {
		return
	}

	// scout the remaining brothers in parallel
	noOfWorkers := s.searchThreads()
	pool := workerpool.NewWorkerPool(noOfWorkers, s.rootMoves.Len(), true)
	helpers := make([]*Search, 0, s.rootMoves.Len()-1)
	queued := 0
	for i := 1; i < s.rootMoves.Len(); i++ {
		helper := newHelperSearch(s)
		helpers = append(helpers, helper)
		job := &rootMoveJob{
			id:       strconv.Itoa(i),
			search:   helper,
			position: *p,
			move:     s.rootMoves.At(i),
			index:    i,
			depth:    depth,
			alpha:    alpha,
		}
		if err := pool.QueueJob(job); err != nil {
			s.log.Warningf("Parallel search: could not queue job: %s", err)
			break
		}
		queued++
	}
	pool.Close()

	// propagate a master stop to the helpers while waiting
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			if s.stopConditions() {
				for _, h := range helpers {
					h.stopFlag = true
				}
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	failedHigh := make([]*rootMoveJob, 0, queued)
	for i := 0; i < queued; i++ {
		finished, ok := pool.GetFinishedWait()
		if !ok {
			break
		}
		job := finished.(*rootMoveJob)
		s.nodesVisited += job.search.nodesVisited
		if !job.value.IsValid() {
			continue
		}
		s.rootMoves.Set(job.index, job.move.SetValue(job.value))
		if job.value > alpha {
			failedHigh = append(failedHigh, job)
		}
	}
	close(done)

	if s.stopConditions() && depth > 1 {
		return
	}

	// re-search scout fail-highs serially with the full window - the wait
	// part of young brothers wait: only proven candidates get the full
	// effort, one at a time against the current alpha
	for _, job := range failedHigh {
		if s.stopConditions() {
			return
		}
		m := job.move
		p.DoMove(m)
		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(m)
		s.statistics.RootPvsResearches++
		value = -s.search(p, depth-1, 1, -beta, -alpha, true, true)
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		if s.stopConditions() && depth > 1 {
			return
		}

		s.rootMoves.Set(job.index, m.SetValue(value))
		if value > bestNodeValue {
			bestNodeValue = value
			savePV(m, s.pv[1], s.pv[0])
			if value > alpha {
				alpha = value
			}
		}
	}
}

// searchThreads returns the configured number of worker threads, at
// least 1.
func (s *Search) searchThreads() int {
	threads := config.Settings.Search.Threads
	if threads < 1 {
		threads = 1
	}
	return threads
}

// rootMoveJob is the workerpool job scouting one root move with a null
// window in a helper search.
type rootMoveJob struct {
	id       string
	search   *Search
	position position.Position
	move     Move
	index    int
	depth    int
	alpha    Value
	value    Value
}

func (j *rootMoveJob) Id() string {
	return j.id
}

func (j *rootMoveJob) Run() error {
	p := &j.position
	p.DoMove(j.move)
	j.search.nodesVisited++
	j.value = -j.search.search(p, j.depth-1, 1, -j.alpha-1, -j.alpha, false, true)
	p.UndoMove()
	return nil
}

// newHelperSearch creates a worker-local search context for parallel root
// scouting. Helpers share the master's transposition table (entry-level
// key verification rejects torn reads) but have their own move
// generators, pv buffers, history tables and evaluator - the ordering
// tables are single-writer by design.
func newHelperSearch(master *Search) *Search {
	h := &Search{
		log:               myLogging.GetLog("search"),
		tt:                master.tt,
		tb:                master.tb,
		eval:              evaluator.NewEvaluator(),
		history:           history.NewHistory(),
		searchLimits:      master.searchLimits,
		lastUsiUpdateTime: time.Now(),
	}
	h.mg = make([]*movegen.Movegen, 0, MaxDepth+1)
	h.pv = make([]*moveslice.MoveSlice, 0, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		newMoveGen := movegen.NewMoveGen()
		newMoveGen.SetHistoryData(h.history)
		h.mg = append(h.mg, newMoveGen)
		h.pv = append(h.pv, moveslice.NewMoveSlice(MaxDepth+1))
	}
	return h
}
