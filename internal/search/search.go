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

// Package search implements the search driver of the engine: iterative
// deepening with aspiration windows over a principal variation alpha beta
// search, controlled by a time manager and supported by the transposition
// table, the opening book and the micro endgame tablebase.
package search

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/op/go-logging"

	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/evaluator"
	"github.com/kyo-shogi/shogo/internal/history"
	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/openingbook"
	"github.com/kyo-shogi/shogo/internal/position"
	"github.com/kyo-shogi/shogo/internal/tablebase"
	"github.com/kyo-shogi/shogo/internal/transpositiontable"
	. "github.com/kyo-shogi/shogo/internal/types"
	"github.com/kyo-shogi/shogo/internal/usiInterface"
	"github.com/kyo-shogi/shogo/internal/util"
)

var out = message.NewPrinter(language.Japanese)

// Search represents the data structure for a shogi engine search.
// Create a new instance with NewSearch().
type Search struct {
	log *logging.Logger

	usiHandlerPtr usiInterface.UsiDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	book *openingbook.Book
	tt   *transpositiontable.TtTable
	tb   *tablebase.Tablebase
	eval *evaluator.Evaluator

	// history heuristics (history counter, counter moves)
	history *history.HistoryTable

	// random source for weighted book move selection - seeded from config
	// so a fixed seed gives a deterministic book line
	bookRandom *rand.Rand

	// previous search
	lastSearchResult *Result

	// current search state
	stopFlag          bool
	startTime         time.Time
	hasResult         bool
	currentPosition   *position.Position
	searchLimits      *Limits
	timeLimit         time.Duration
	extraTime         time.Duration
	lastIterationTime time.Duration
	nodesVisited      uint64
	mg                []*movegen.Movegen
	pv                []*moveslice.MoveSlice
	rootMoves         *moveslice.MoveSlice
	hadBookMove       bool
	lastUsiUpdateTime time.Time
	statistics        Statistics
}

// Result stores the result of a search: the best move found, the ponder
// move, value and depth information.
type Result struct {
	BestMove    Move
	PonderMove  Move
	BestValue   Value
	SearchTime  time.Duration
	SearchDepth int
	ExtraDepth  int
	BookMove    bool
	TbMove      bool
	Pv          moveslice.MoveSlice
}

func (r *Result) String() string {
	return fmt.Sprintf("best move = %s (%s), ponder = %s, depth = %d(%d), book = %v, time = %s, pv = %s",
		r.BestMove.StringUci(), r.BestValue.String(), r.PonderMove.StringUci(),
		r.SearchDepth, r.ExtraDepth, r.BookMove, r.SearchTime, r.Pv.StringUci())
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewSearch creates a new Search instance. If no usi handler is set all
// output will be sent to the log.
func NewSearch() *Search {
	s := &Search{
		log:           myLogging.GetLog("search"),
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
		eval:          evaluator.NewEvaluator(),
		history:       history.NewHistory(),
		bookRandom:    rand.New(rand.NewSource(config.Settings.Search.BookSeed)),
	}
	return s
}

// NewGame stops any running search and resets the search state to be
// ready for a different game. Caches and history tables are cleared.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.history = history.NewHistory()
}

// StartSearch starts the search on the given position with the given
// search limits. The search runs in its own goroutine; it can be stopped
// with StopSearch() and its status checked with IsSearching(). This takes
// a copy of the position and the search limits.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	// acquire init phase lock
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.currentPosition = &p
	s.searchLimits = &sl
	go s.run(&p, &sl)
	// wait until the search is running and initialization is done before
	// returning to the caller
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible. The search
// stops gracefully and a result will be sent to the USI handler. This
// waits for the search to be stopped before returning.
func (s *Search) StopSearch() {
	s.stopFlag = true
	s.WaitWhileSearching()
}

// PonderHit is called by the USI interface when the engine has been told
// to ponder before. The engine is in search mode without time control;
// this activates time control without interrupting the running search.
func (s *Search) PonderHit() {
	if s.IsSearching() && s.searchLimits.Ponder {
		s.log.Debug("Ponderhit during search - activating time control")
		s.startTimer()
		return
	}
	s.log.Warning("Ponderhit received while not pondering")
}

// IsSearching checks if the search is running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until a running search has stopped.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUsiHandler sets the USI handler to communicate with the USI user
// interface. If not set output is sent to the log only.
func (s *Search) SetUsiHandler(usiHandler usiInterface.UsiDriver) {
	s.usiHandlerPtr = usiHandler
}

// GetUsiHandlerPtr returns the current UsiDriver or nil if none is set.
func (s *Search) GetUsiHandlerPtr() usiInterface.UsiDriver {
	return s.usiHandlerPtr
}

// IsReady runs any lazy initialization (transposition table, opening
// book, tablebase) and then signals the USI handler that the engine is
// ready to receive commands.
func (s *Search) IsReady() {
	s.initialize()
	if s.usiHandlerPtr != nil {
		s.usiHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("usi >> readyok")
	}
}

// ClearHash clears the transposition table.
// Is ignored with a warning while searching.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		msg := "Can't clear hash while searching."
		s.sendInfoStringToUsi(msg)
		s.log.Warning(msg)
		return
	}
	if s.tt != nil {
		s.tt.Clear()
		s.sendInfoStringToUsi("Hash cleared")
	}
}

// ResizeCache resizes and clears the transposition table.
// Is ignored with a warning while searching.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		msg := "Can't resize hash while searching."
		s.sendInfoStringToUsi(msg)
		s.log.Warning(msg)
		return
	}
	// drop the tt and re-initialize
	s.tt = nil
	s.initialize()
	// good point in time to let the garbage collector do its work
	s.log.Debug(util.GcWithStats())
	if s.tt != nil {
		s.sendInfoStringToUsi(out.Sprintf("Hash resized: %s", s.tt.String()))
	}
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// run is called by StartSearch() in a separate goroutine. It runs the
// actual search until a search limit is reached or the search has been
// stopped by StopSearch().
func (s *Search) run(p *position.Position, sl *Limits) {
	// check if there is already a search running - if not grab the
	// isRunning semaphore
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		return
	}
	defer func() {
		s.isRunning.Release(1)
	}()

	// start search timer
	s.startTime = time.Now()

	s.log.Infof("Searching: %s", p.StringSfen())

	// init new search run
	s.stopFlag = false
	s.hasResult = false
	s.timeLimit = 0
	s.extraTime = 0
	s.lastIterationTime = 0
	s.nodesVisited = 0
	s.statistics = Statistics{}
	s.lastUsiUpdateTime = s.startTime
	s.initialize()

	// setup and report search limits
	s.setupSearchLimits(p, sl)

	// when not pondering and search is time controlled start the timer
	if s.searchLimits.TimeControl && !s.searchLimits.Ponder {
		s.startTimer()
	}

	// check for an opening book move when in a time controlled game
	bookMove := s.probeBook(p, sl)

	// age TT entries
	if s.tt != nil {
		s.log.Debugf("Transposition Table: Using TT (%s)", s.tt.String())
		s.tt.AgeEntries()
	} else {
		s.log.Info("Transposition Table: Not using TT")
	}

	// initialize ply based data: move generators and pv lists per ply
	s.mg = make([]*movegen.Movegen, 0, MaxDepth+1)
	s.pv = make([]*moveslice.MoveSlice, 0, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		newMoveGen := movegen.NewMoveGen()
		if config.Settings.Search.UseHistoryCounter || config.Settings.Search.UseCounterMoves {
			newMoveGen.SetHistoryData(s.history)
		}
		s.mg = append(s.mg, newMoveGen)
		s.pv = append(s.pv, moveslice.NewMoveSlice(MaxDepth+1))
	}

	// release the init phase lock to signal the goroutine waiting in
	// StartSearch() to return
	s.initSemaphore.Release(1)

	// start the actual search with iterative deepening
	var searchResult *Result
	if bookMove == MoveNone {
		searchResult = s.iterativeDeepening(p)
	} else {
		s.statistics.BookMoves++
		searchResult = &Result{BestMove: bookMove, BookMove: true}
		s.hadBookMove = true
		// a book move still produces an info line
		s.sendInfoStringToUsi(out.Sprintf("book move %s", bookMove.StringUci()))
	}

	// if we arrive here during ponder or infinite mode and the search is
	// not stopped the search was finished before a stop/ponderhit arrived.
	// We wait here until the search is really released.
	if (s.searchLimits.Ponder || s.searchLimits.Infinite) && !s.stopFlag {
		s.log.Debug("Search finished before stop or ponderhit - waiting")
		for !s.stopFlag && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	// update the search result with search time and pv
	searchResult.SearchTime = time.Since(s.startTime)
	searchResult.Pv = *s.pv[0].Clone()

	// print stats to log
	s.log.Info(out.Sprintf("Search finished after %s", searchResult.SearchTime))
	s.log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth, s.nodesVisited,
		util.Nps(s.nodesVisited, searchResult.SearchTime)))
	s.log.Debugf("Search stats: %s", s.statistics.String())

	// print result to log
	s.log.Infof("Search result: %s", searchResult.String())

	// save the result until overwritten by the next search
	s.lastSearchResult = searchResult
	s.hasResult = true

	// make sure the timer stops - it could still be running when the
	// search finished without any stop signal/limit
	s.stopFlag = true

	// at the end of a search we send the result in any case, even when
	// the search has been stopped
	s.sendResult(searchResult)
}

// iterativeDeepening controls the iterative deepening loop: the program
// starts with a one ply search, then increments the search depth and
// searches again until the allocated time or the depth/node limit is
// exhausted. An unfinished iteration is abandoned; the result of the last
// finished iteration is kept in pv[0] so the returned move is always a
// complete result - and always a legal move when one exists.
func (s *Search) iterativeDeepening(p *position.Position) *Result {

	// check repetition draw before searching at all
	if value, isRepetition := s.repetitionValue(p, 0); isRepetition {
		msg := "Search called on sennichite position"
		s.sendInfoStringToUsi(msg)
		s.log.Warning(msg)
		return &Result{BestValue: value}
	}

	// generate all legal root moves
	s.rootMoves = moveslice.NewMoveSlice(MaxMoves)
	movegen.GenerateLegalMoves(p, movegen.GenAll, s.rootMoves)

	// a position without legal moves is lost in shogi - there is no
	// stalemate
	if s.rootMoves.Len() == 0 {
		s.statistics.Checkmates++
		msg := "Search called on a mate position"
		s.sendInfoStringToUsi(msg)
		s.log.Warning(msg)
		return &Result{BestValue: -ValueCheckMate}
	}

	// with a filtered move list from the searchmoves option only those
	// moves are searched
	if s.searchLimits.Moves.Len() > 0 {
		searchMoves := s.searchLimits.Moves
		s.rootMoves.Filter(func(i int) bool {
			for j := 0; j < searchMoves.Len(); j++ {
				if searchMoves.At(j).MoveOf() == s.rootMoves.At(i).MoveOf() {
					return true
				}
			}
			return false
		})
	}

	// the ultimate fallback: the first legal root move, so that time
	// running out mid-iteration can never produce an illegal result
	s.pv[0].Clear()
	s.pv[0].PushBack(s.rootMoves.At(0))

	// a solved micro endgame skips the search altogether
	if tbValue, tbMove, found := s.probeTablebaseRoot(p); found {
		s.statistics.TbHits++
		s.pv[0].Clear()
		s.pv[0].PushBack(tbMove)
		s.sendInfoStringToUsi(out.Sprintf("tablebase hit %s %s", tbMove.StringUci(), tbValue.String()))
		return &Result{BestMove: tbMove, BestValue: tbValue, TbMove: true}
	}

	// add some extra time for the move directly after a book move when we
	// suddenly have to think for ourselves
	if s.hadBookMove && s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		s.addExtraTime(2.0)
		s.hadBookMove = false
	}

	// prepare max depth from search limits
	maxDepth := MaxDepth
	if s.searchLimits.Depth > 0 {
		maxDepth = s.searchLimits.Depth
	}

	bestValue := ValueNA

	// ###########################################
	// ### BEGIN Iterative Deepening
	for iterationDepth := 1; iterationDepth <= maxDepth; iterationDepth++ {
		iterationStart := time.Now()

		s.statistics.CurrentIterationDepth = iterationDepth
		s.statistics.CurrentSearchDepth = iterationDepth
		if s.statistics.CurrentExtraSearchDepth < iterationDepth {
			s.statistics.CurrentExtraSearchDepth = iterationDepth
		}

		// aspiration only when we have a value from a previous iteration
		if config.Settings.Search.UseAspiration && iterationDepth > 3 && bestValue.IsValid() {
			bestValue = s.aspirationSearch(p, iterationDepth, bestValue)
		} else if config.Settings.Search.UseParallel && config.Settings.Search.Threads > 1 {
			s.rootSearchParallel(p, iterationDepth, ValueMin, ValueMax)
			bestValue = s.pv[0].At(0).ValueOf()
		} else {
			s.rootSearch(p, iterationDepth, ValueMin, ValueMax)
			bestValue = s.pv[0].At(0).ValueOf()
		}

		// stop conditions: checked after the iteration so we always have
		// one complete search with depth 1; with only one root move there
		// is also nothing to choose
		if s.stopConditions() || s.rootMoves.Len() == 1 {
			break
		}

		// sort root moves for the next iteration
		s.rootMoves.Sort()
		s.statistics.CurrentBestRootMove = s.pv[0].At(0).MoveOf()
		s.statistics.CurrentBestRootMoveValue = s.pv[0].At(0).ValueOf()

		// progress event to the UI after each completed iteration
		s.sendIterationEndInfoToUsi()

		// a found mate needs no deeper search
		if bestValue.IsCheckMateValue() {
			break
		}

		// stop early when the remaining budget is smaller than the
		// estimated cost of the next iteration (roughly twice the last)
		s.lastIterationTime = time.Since(iterationStart)
		if s.searchLimits.TimeControl && !s.searchLimits.Ponder {
			remaining := s.timeLimit + s.extraTime - time.Since(s.startTime)
			if remaining < 2*s.lastIterationTime {
				s.log.Debugf("Remaining time %s too short for next iteration (last took %s)",
					remaining, s.lastIterationTime)
				break
			}
		}
	}
	// ### END OF Iterative Deepening
	// ###########################################

	// the best move is pv[0][0] which is guaranteed to exist - worst case
	// it is the first-legal-move fallback set before the loop
	result := &Result{
		BestMove:    s.pv[0].At(0).MoveOf(),
		BestValue:   s.pv[0].At(0).ValueOf(),
		PonderMove:  MoveNone,
		SearchDepth: s.statistics.CurrentIterationDepth,
		ExtraDepth:  s.statistics.CurrentExtraSearchDepth,
	}

	// see if we have a move to ponder on
	if s.pv[0].Len() > 1 {
		result.PonderMove = s.pv[0].At(1).MoveOf()
	} else if config.Settings.Search.UseTT && s.tt != nil {
		// no ponder move in the pv list - try the TT
		p.DoMove(result.BestMove)
		if ttEntry := s.tt.Probe(p.ZobristKey()); ttEntry != nil && movegen.ValidateMove(p, ttEntry.Move().MoveOf()) {
			result.PonderMove = ttEntry.Move().MoveOf()
			s.log.Debugf("Using ponder move from hash: %s", result.PonderMove.StringUci())
		}
		p.UndoMove()
	}

	return result
}

// aspirationSearch searches with a narrow window around the last
// iteration's value, widening the failed bound on a fail low/high and
// falling back to the full window once the fixed widening steps of
// aspirationSteps (built from the configured AspirationDelta) are used up.
// A result inside the window is exact and ends the loop.
func (s *Search) aspirationSearch(p *position.Position, depth int, lastValue Value) Value {
	steps := aspirationSteps(Value(config.Settings.Search.AspirationDelta))

	lowerStep, upperStep := 0, 0
	for {
		alpha := lastValue - steps[lowerStep]
		beta := lastValue + steps[upperStep]
		if alpha < ValueMin {
			alpha = ValueMin
		}
		if beta > ValueMax {
			beta = ValueMax
		}

		if config.Settings.Search.UseParallel && config.Settings.Search.Threads > 1 {
			s.rootSearchParallel(p, depth, alpha, beta)
		} else {
			s.rootSearch(p, depth, alpha, beta)
		}
		value := s.pv[0].At(0).ValueOf()

		if s.stopConditions() {
			return value
		}

		switch {
		case value <= alpha && alpha > ValueMin:
			// fail low - widen the lower bound and re-search
			s.statistics.AspirationResearches++
			lowerStep++
			s.sendAspirationResearchInfo("upperbound")
		case value >= beta && beta < ValueMax:
			// fail high - widen the upper bound and re-search
			s.statistics.AspirationResearches++
			upperStep++
			s.sendAspirationResearchInfo("lowerbound")
		default:
			return value
		}

		if lowerStep >= len(steps) {
			lowerStep = len(steps) - 1
		}
		if upperStep >= len(steps) {
			upperStep = len(steps) - 1
		}
	}
}

// probeBook checks the opening book for the current position and selects
// one of the recorded moves by a weighted random draw - popular moves are
// chosen proportionally more often. Returns MoveNone when the book is off,
// the position is unknown or the game is not time controlled.
func (s *Search) probeBook(p *position.Position, sl *Limits) Move {
	if s.book == nil || !config.Settings.Search.UseBook || !sl.TimeControl {
		s.log.Debug("Opening Book: Not using book")
		return MoveNone
	}
	entry, found := s.book.GetEntry(p.ZobristKey())
	if !found || len(entry.Moves) == 0 {
		return MoveNone
	}

	var totalWeight uint64
	for _, bm := range entry.Moves {
		totalWeight += uint64(bm.Weight)
	}
	if totalWeight == 0 {
		totalWeight = uint64(len(entry.Moves))
	}
	draw := uint64(s.bookRandom.Int63n(int64(totalWeight)))
	var cumulated uint64
	chosen := entry.Moves[0].Move
	for _, bm := range entry.Moves {
		w := uint64(bm.Weight)
		if w == 0 {
			w = 1
		}
		cumulated += w
		if draw < cumulated {
			chosen = bm.Move
			break
		}
	}

	// never trust a book file blindly - the move must be legal
	if !movegen.ValidateMove(p, chosen) {
		s.log.Warningf("Opening Book: book move %s not legal in position", chosen.StringUci())
		return MoveNone
	}
	s.log.Debugf("Opening Book: choosing book move %s", chosen.StringUci())
	return chosen
}

// probeTablebaseRoot consults the micro endgame tablebase for the root
// position and, on a hit, derives the move leading to the best successor.
func (s *Search) probeTablebaseRoot(p *position.Position) (Value, Move, bool) {
	if s.tb == nil || !config.Settings.Search.UseTablebase ||
		p.PieceCount() > config.Settings.Search.TablebasePieces {
		return ValueNA, MoveNone, false
	}
	s.statistics.TbProbes++
	return s.tb.ProbeRoot(p)
}

// initialize sets up the opening book, transposition table and tablebase.
// These are potentially time consuming setup tasks and can be called
// several times without doing the initialization again.
func (s *Search) initialize() {
	// init opening book
	if config.Settings.Search.UseBook {
		if s.book == nil {
			s.book = openingbook.NewBook()
			bookPath := config.Settings.Search.BookPath
			bookFile := config.Settings.Search.BookFile
			bookFormat, found := openingbook.FormatFromString[config.Settings.Search.BookFormat]
			if !found {
				s.log.Warningf("Book format invalid: %s", config.Settings.Search.BookFormat)
				s.book = nil
			} else if err := s.book.Initialize(bookPath, bookFile, bookFormat); err != nil {
				s.log.Warningf("Book could not be initialized: %s (%s)", bookPath, err)
				s.book = nil
			}
		}
	} else {
		s.log.Info("Opening book is disabled in configuration")
	}

	// init transposition table
	if config.Settings.Search.UseTT {
		if s.tt == nil {
			sizeInMByte := config.Settings.Search.TTSize
			if sizeInMByte == 0 {
				sizeInMByte = 64
			}
			s.tt = transpositiontable.NewTtTable(sizeInMByte)
		}
	} else {
		s.log.Info("Transposition Table is disabled in configuration")
	}

	// init micro endgame tablebase
	if config.Settings.Search.UseTablebase {
		if s.tb == nil {
			s.tb = tablebase.NewTablebase(config.Settings.Search.TablebaseDepth)
		}
	} else {
		s.log.Info("Tablebase is disabled in configuration")
	}
}

// stopConditions checks if the stop flag is set or if nodesVisited have
// reached a potential maximum set in the search limits.
func (s *Search) stopConditions() bool {
	if s.stopFlag {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag = true
	}
	return s.stopFlag
}

// setupSearchLimits reports the search limits to the log and sets up time
// control.
func (s *Search) setupSearchLimits(p *position.Position, sl *Limits) {
	if sl.Infinite {
		s.log.Info("Search mode: Infinite")
	}
	if sl.Ponder {
		s.log.Info("Search mode: Ponder")
	}
	if sl.Mate > 0 {
		s.log.Infof("Search mode: Search for mate in %d", sl.Mate)
	}
	if sl.TimeControl {
		s.timeLimit = s.setupTimeControl(p, sl)
		s.extraTime = 0
		if sl.MoveTime > 0 {
			s.log.Infof("Search mode: Time controlled: Time per move %s", sl.MoveTime)
		} else {
			s.log.Info(out.Sprintf("Search mode: Time controlled: Black = %s (inc %s) White = %s (inc %s) Byoyomi = %s Moves to go: %d",
				sl.BlackTime, sl.BlackInc, sl.WhiteTime, sl.WhiteInc, sl.Byoyomi, sl.MovesToGo))
			s.log.Info(out.Sprintf("Search mode: Time limit: %s", s.timeLimit))
		}
		if sl.Ponder {
			s.log.Info("Search mode: Ponder - time control postponed until ponderhit received")
		}
	} else {
		s.log.Info("Search mode: No time control")
	}
	if sl.Depth > 0 {
		s.log.Debugf("Search mode: Depth limited: %d", sl.Depth)
	}
	if sl.Nodes > 0 {
		s.log.Infof(out.Sprintf("Search mode: Nodes limited: %d", sl.Nodes))
	}
	if sl.Moves.Len() > 0 {
		s.log.Infof(out.Sprintf("Search mode: Moves limited: %s", sl.Moves.StringUci()))
	}
}

// setupTimeControl computes the time limit for this move from the search
// limits: either a fixed move time, or an estimated time per move from the
// remaining clock, increments and byoyomi.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		// we need a little room for executing the surrounding code
		duration := sl.MoveTime - (20 * time.Millisecond)
		if duration < 0 {
			s.log.Warningf("Very short move time: %s", sl.MoveTime)
			return sl.MoveTime
		}
		return duration
	}

	// moves left estimation: minimum 15 more moves in the endgame, growing
	// to 40 in the opening
	movesLeft := int64(sl.MovesToGo)
	if movesLeft == 0 {
		movesLeft = int64(15 + (25 * p.GamePhaseFactor()))
	}

	// time left for the current player
	var timeLeft, increment time.Duration
	switch p.NextPlayer() {
	case Black:
		timeLeft, increment = sl.BlackTime, sl.BlackInc
	case White:
		timeLeft, increment = sl.WhiteTime, sl.WhiteInc
	}

	// estimated time per move; the increment and byoyomi are available on
	// every move on top of the main clock share
	timeLimit := time.Duration(timeLeft.Nanoseconds()/movesLeft) + increment
	if sl.Byoyomi > 0 {
		timeLimit += sl.Byoyomi
	}

	// account for the runtime of our code
	if timeLimit.Milliseconds() < 100 {
		// very short available time reduced by another 20%
		timeLimit = time.Duration(int64(0.8 * float64(timeLimit.Nanoseconds())))
	} else {
		// reduced by 10%
		timeLimit = time.Duration(int64(0.9 * float64(timeLimit.Nanoseconds())))
	}
	return timeLimit
}

// addExtraTime adds or subtracts a portion (%) of the current time limit.
//
//	f = 1.0 --> no change in search time
//	f = 0.9 --> reduction by 10%
//	f = 1.1 --> extension by 10%
func (s *Search) addExtraTime(f float64) {
	if s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		duration := time.Duration(int64((f - 1.0) * float64(s.timeLimit.Nanoseconds())))
		s.extraTime += duration
		s.log.Debugf(out.Sprintf("Time added/reduced by %s to %s", duration, s.timeLimit+s.extraTime))
	}
}

// startTimer starts a goroutine which regularly checks the elapsed time
// against the time limit and extra time. When the hard limit is reached it
// sets the stop flag and terminates itself - the search then unwinds
// cooperatively with the best result of the last completed iteration.
func (s *Search) startTimer() {
	go func() {
		timerStart := time.Now()
		s.log.Debugf("Timer started with time limit of %s", s.timeLimit)
		// the time limit can grow via extra time so a fixed timeout is not
		// possible - relaxed busy wait instead
		for time.Since(timerStart) < s.timeLimit+s.extraTime && !s.stopFlag {
			time.Sleep(5 * time.Millisecond)
		}
		if s.stopFlag {
			s.log.Debugf("Timer stopped early after wall time: %s (time limit %s and extra time %s)",
				time.Since(timerStart), s.timeLimit, s.extraTime)
		} else {
			s.log.Debugf("Timer stops search after wall time: %s (time limit %s and extra time %s)",
				time.Since(timerStart), s.timeLimit, s.extraTime)
			s.stopFlag = true
		}
	}()
}

// sendResult sends the search result to the usi handler if available.
func (s *Search) sendResult(searchResult *Result) {
	if s.usiHandlerPtr != nil {
		s.usiHandlerPtr.SendResult(searchResult.BestMove, searchResult.PonderMove)
	}
}

// sendInfoStringToUsi sends an info string to the usi handler if available.
func (s *Search) sendInfoStringToUsi(msg string) {
	if s.usiHandlerPtr != nil {
		s.usiHandlerPtr.SendInfoString(msg)
	}
}

// sendSearchUpdateToUsi sends a regular search update (about once per
// second) while the search runs.
func (s *Search) sendSearchUpdateToUsi() {
	if time.Since(s.lastUsiUpdateTime) > time.Second {
		s.lastUsiUpdateTime = time.Now()
		hashfull := 0
		if s.tt != nil {
			hashfull = s.tt.Hashfull()
		}
		if s.usiHandlerPtr != nil {
			s.usiHandlerPtr.SendSearchUpdate(
				s.statistics.CurrentSearchDepth,
				s.statistics.CurrentExtraSearchDepth,
				s.nodesVisited,
				s.getNps(),
				time.Since(s.startTime),
				hashfull)
			s.usiHandlerPtr.SendCurrentRootMove(s.statistics.CurrentRootMove, s.statistics.CurrentRootMoveIndex)
			s.usiHandlerPtr.SendCurrentLine(s.statistics.CurrentVariation)
		} else {
			s.log.Infof(out.Sprintf("depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
				s.statistics.CurrentSearchDepth,
				s.statistics.CurrentExtraSearchDepth,
				s.nodesVisited,
				s.getNps(),
				time.Since(s.startTime).Milliseconds(),
				hashfull))
		}
	}
}

// sendIterationEndInfoToUsi sends the progress event after each completed
// iteration: depth, score, nodes, time and pv.
func (s *Search) sendIterationEndInfoToUsi() {
	if s.usiHandlerPtr != nil {
		s.usiHandlerPtr.SendIterationEndInfo(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			*s.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootMoveValue.String(),
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			s.pv[0].StringUci()))
	}
}

// sendAspirationResearchInfo reports a fail low/high of the aspiration
// window before the re-search.
func (s *Search) sendAspirationResearchInfo(bound string) {
	if s.usiHandlerPtr != nil {
		s.usiHandlerPtr.SendAspirationResearchInfo(
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.pv[0].At(0).ValueOf(),
			bound,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime),
			*s.pv[0])
	} else {
		s.log.Infof(out.Sprintf("depth %d seldepth %d value %s %s nodes %d nps %d time %d pv %s",
			s.statistics.CurrentSearchDepth,
			s.statistics.CurrentExtraSearchDepth,
			s.pv[0].At(0).ValueOf().String(),
			bound,
			s.nodesVisited,
			s.getNps(),
			time.Since(s.startTime).Milliseconds(),
			s.pv[0].StringUci()))
	}
}

// getNps calculates the current nps relative to the search start time. It
// limits the value to avoid unrealistic numbers from very small times.
func (s *Search) getNps() uint64 {
	nps := util.Nps(s.nodesVisited, time.Since(s.startTime)+100)
	if nps > 15_000_000 {
		nps = 0
	}
	return nps
}

// //////////////////////////////////////////////////////
// Getter and Setter
// //////////////////////////////////////////////////////

// LastSearchResult returns a copy of the last search result.
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// HasResult returns true when a search has produced a result.
func (s *Search) HasResult() bool {
	return s.hasResult
}

// NodesVisited returns the number of visited nodes in the last search.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// Statistics returns a pointer to the search statistics of the last search.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}
