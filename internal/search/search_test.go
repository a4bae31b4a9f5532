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
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	// searches in tests must be reproducible and self-contained
	config.Settings.Search.UseBook = false
	code := m.Run()
	os.Exit(code)
}

func TestSearchDepthLimited(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Depth = 3
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	require.NotEqual(t, MoveNone, result.BestMove)
	assert.True(t, movegen.ValidateMove(p, result.BestMove), "best move must be legal")
	// the start position is balanced
	assert.Less(t, int(abs(result.BestValue)), 200)
	assert.Equal(t, 3, result.SearchDepth)
}

func TestSearchDepthOne(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Depth = 1
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.True(t, movegen.ValidateMove(p, result.BestMove))
	assert.Less(t, int(abs(result.BestValue)), 200)
}

func TestSearchMateInOne(t *testing.T) {
	// the gold drop on 1b, protected by the pawn on 1c, mates the
	// cornered white king (2a/2b are covered by the dropped gold)
	p, err := position.NewPositionSfen("8k/9/8P/9/9/9/9/9/K8 b G 1")
	require.NoError(t, err)

	s := NewSearch()
	sl := NewSearchLimits()
	sl.Depth = 3
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.Equal(t, "G*1b", result.BestMove.StringUci())
	assert.True(t, result.BestValue >= ValueCheckMate-2,
		"expected a mate score, got %s", result.BestValue.String())
}

func TestSearchOnMatePosition(t *testing.T) {
	// white is already mated - searching for white finds no move
	p, err := position.NewPositionSfen("8k/8G/8L/9/9/9/9/7R1/K8 w - 1")
	require.NoError(t, err)

	s := NewSearch()
	sl := NewSearchLimits()
	sl.Depth = 2
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.Equal(t, MoveNone, result.BestMove)
	assert.Equal(t, -ValueCheckMate, result.BestValue)
}

func TestSearchRepetitionDraw(t *testing.T) {
	// drive a kings-only position to its fourth occurrence, then search:
	// the repetition detector must return the draw value
	p, err := position.NewPositionSfen("8k/9/9/9/9/9/9/9/K8 b - 1")
	require.NoError(t, err)
	cycle := []string{"9i9h", "1a1b", "9h9i", "1b1a"}
	for i := 0; i < 3; i++ {
		for _, ms := range cycle {
			m := movegen.GetMoveFromUci(p, ms)
			require.NotEqual(t, MoveNone, m)
			p.DoMove(m)
		}
	}
	require.True(t, p.CheckRepetitions(4))

	s := NewSearch()
	sl := NewSearchLimits()
	sl.Depth = 2
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	assert.Equal(t, ValueDraw, result.BestValue)
}

func TestSearchTimeLimited(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.TimeControl = true
	sl.MoveTime = 200 * time.Millisecond

	start := time.Now()
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	elapsed := time.Since(start)

	result := s.LastSearchResult()
	assert.True(t, movegen.ValidateMove(p, result.BestMove),
		"search must return a legal move even under time pressure")
	// hard limit plus generous scheduling slack
	assert.Less(t, elapsed.Milliseconds(), int64(2_000))
}

func TestSearchStop(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Infinite = true
	s.StartSearch(*p, *sl)
	assert.True(t, s.IsSearching())

	time.Sleep(100 * time.Millisecond)
	s.StopSearch()
	assert.False(t, s.IsSearching())
	assert.True(t, movegen.ValidateMove(p, s.LastSearchResult().BestMove))
}

func TestSearchNodeLimited(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Nodes = 5_000
	sl.Depth = MaxDepth
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	assert.True(t, movegen.ValidateMove(p, s.LastSearchResult().BestMove))
	// polling grain allows a small overshoot
	assert.Less(t, s.NodesVisited(), uint64(50_000))
}

func TestPVIsPlayable(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()
	sl := NewSearchLimits()
	sl.Depth = 4
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()

	result := s.LastSearchResult()
	// every pv move must be legal when played in sequence
	playable := position.NewPosition()
	for i := 0; i < result.Pv.Len(); i++ {
		m := result.Pv.At(i).MoveOf()
		require.True(t, movegen.ValidateMove(playable, m),
			"pv move %d (%s) not legal", i, m.StringUci())
		playable.DoMove(m)
	}
}

func TestMateDistanceEncoding(t *testing.T) {
	// storing and reading mate values adjusts them by the ply distance
	v := ValueCheckMate - 3
	stored := valueToTT(v, 2)
	assert.Equal(t, ValueCheckMate-1, stored)
	assert.Equal(t, v, valueFromTT(stored, 2))

	v = -ValueCheckMate + 5
	stored = valueToTT(v, 3)
	assert.Equal(t, -ValueCheckMate+2, stored)
	assert.Equal(t, v, valueFromTT(stored, 3))

	// non mate values pass through unchanged
	assert.Equal(t, Value(100), valueToTT(Value(100), 10))
	assert.Equal(t, Value(100), valueFromTT(Value(100), 10))
}

func TestSetupTimeControl(t *testing.T) {
	s := NewSearch()
	p := position.NewPosition()

	// fixed move time keeps a small execution margin
	sl := NewSearchLimits()
	sl.TimeControl = true
	sl.MoveTime = time.Second
	assert.Equal(t, time.Second-20*time.Millisecond, s.setupTimeControl(p, sl))

	// clock time is divided over the estimated remaining moves
	sl = NewSearchLimits()
	sl.TimeControl = true
	sl.BlackTime = 60 * time.Second
	limit := s.setupTimeControl(p, sl)
	assert.Greater(t, limit.Milliseconds(), int64(500))
	assert.Less(t, limit.Milliseconds(), int64(5_000))

	// byoyomi is available on every move
	sl.Byoyomi = 10 * time.Second
	withByoyomi := s.setupTimeControl(p, sl)
	assert.Greater(t, withByoyomi, limit)
}

func TestSavePV(t *testing.T) {
	src := moveslice.NewMoveSlice(8)
	dest := moveslice.NewMoveSlice(8)
	m1 := NewBoardMove(MakeSquare("7g"), MakeSquare("7f"), false)
	m2 := NewBoardMove(MakeSquare("3c"), MakeSquare("3d"), false)
	src.PushBack(m2)
	savePV(m1, src, dest)
	assert.Equal(t, 2, dest.Len())
	assert.Equal(t, m1, dest.At(0))
	assert.Equal(t, m2, dest.At(1))
}

func abs(v Value) Value {
	if v < 0 {
		return -v
	}
	return v
}
