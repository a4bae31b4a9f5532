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

package usi

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
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
	config.Settings.Search.UseBook = false
	code := m.Run()
	os.Exit(code)
}

// newTestHandler returns a handler writing into a buffer instead of
// stdout so tests can inspect the protocol output.
func newTestHandler() (*UsiHandler, *bytes.Buffer) {
	u := NewUsiHandler()
	buffer := &bytes.Buffer{}
	u.OutIo = bufio.NewWriter(buffer)
	return u, buffer
}

func TestUsiCommand(t *testing.T) {
	u, buffer := newTestHandler()
	u.Command("usi")
	response := buffer.String()
	assert.Contains(t, response, "id name Shogo")
	assert.Contains(t, response, "option name USI_Hash type spin")
	assert.Contains(t, response, "option name USI_Ponder type check")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(response), "usiok"))
}

func TestIsReadyCommand(t *testing.T) {
	u, buffer := newTestHandler()
	u.Command("isready")
	assert.Contains(t, buffer.String(), "readyok")
}

func TestPositionCommandStartpos(t *testing.T) {
	u, _ := newTestHandler()
	u.Command("position startpos")
	assert.Equal(t, position.StartSfen, u.myPosition.StringSfen())

	u.Command("position startpos moves 7g7f 3c3d")
	assert.Equal(t, White, u.myPosition.NextPlayer().Flip())
	assert.Equal(t, 2, u.myPosition.PlyCount())
}

func TestPositionCommandSfen(t *testing.T) {
	u, _ := newTestHandler()
	sfen := "8k/9/8L/9/9/9/9/9/K8 b G 1"
	u.Command("position sfen " + sfen)
	assert.Equal(t, sfen, u.myPosition.StringSfen())

	u.Command("position sfen " + sfen + " moves G*1b")
	assert.Equal(t, 1, u.myPosition.PlyCount())
	assert.Equal(t, 0, u.myPosition.HandCount(Black, Gold))
}

func TestPositionCommandIllegalMove(t *testing.T) {
	u, _ := newTestHandler()
	u.Command("position startpos moves 7g7f 3c3d")
	before := u.myPosition.StringSfen()
	// an illegal move sequence leaves the previous position untouched
	u.Command("position startpos moves 7g7e")
	assert.Equal(t, before, u.myPosition.StringSfen())
}

func TestSetOption(t *testing.T) {
	u, _ := newTestHandler()
	saved := config.Settings.Search.UsePonder
	defer func() { config.Settings.Search.UsePonder = saved }()

	u.Command("setoption name USI_Ponder value false")
	assert.False(t, config.Settings.Search.UsePonder)
	u.Command("setoption name USI_Ponder value true")
	assert.True(t, config.Settings.Search.UsePonder)
}

func TestSetOptionSpin(t *testing.T) {
	u, _ := newTestHandler()
	saved := config.Settings.Search.AspirationDelta
	defer func() { config.Settings.Search.AspirationDelta = saved }()

	u.Command("setoption name AspirationDelta value 40")
	assert.Equal(t, 40, config.Settings.Search.AspirationDelta)
}

func TestReadSearchLimits(t *testing.T) {
	u, _ := newTestHandler()
	u.Command("position startpos")

	sl, ok := u.readSearchLimits(strings.Fields("go depth 6 nodes 1000"))
	require.True(t, ok)
	assert.Equal(t, 6, sl.Depth)
	assert.EqualValues(t, 1000, sl.Nodes)
	assert.False(t, sl.TimeControl)

	sl, ok = u.readSearchLimits(strings.Fields("go btime 60000 wtime 55000 binc 1000 winc 1000 byoyomi 5000"))
	require.True(t, ok)
	assert.True(t, sl.TimeControl)
	assert.Equal(t, 60*time.Second, sl.BlackTime)
	assert.Equal(t, 55*time.Second, sl.WhiteTime)
	assert.Equal(t, time.Second, sl.BlackInc)
	assert.Equal(t, 5*time.Second, sl.Byoyomi)

	sl, ok = u.readSearchLimits(strings.Fields("go movetime 3000"))
	require.True(t, ok)
	assert.True(t, sl.TimeControl)
	assert.Equal(t, 3*time.Second, sl.MoveTime)

	// no limits defaults to infinite
	sl, ok = u.readSearchLimits(strings.Fields("go"))
	require.True(t, ok)
	assert.True(t, sl.Infinite)

	// malformed numbers are rejected
	_, ok = u.readSearchLimits(strings.Fields("go depth six"))
	assert.False(t, ok)
}

func TestGoAndStop(t *testing.T) {
	u, buffer := newTestHandler()
	u.Command("position startpos")
	u.Command("go depth 2")
	u.mySearch.WaitWhileSearching()
	// give the result callback a moment to flush
	time.Sleep(50 * time.Millisecond)

	response := buffer.String()
	assert.Contains(t, response, "info depth")
	assert.Contains(t, response, "bestmove ")
	assert.NotContains(t, response, "bestmove resign")
}

func TestSendResult(t *testing.T) {
	u, buffer := newTestHandler()
	bestMove := NewBoardMove(MakeSquare("7g"), MakeSquare("7f"), false)
	ponder := NewBoardMove(MakeSquare("3c"), MakeSquare("3d"), false)
	u.SendResult(bestMove, ponder)
	assert.Contains(t, buffer.String(), "bestmove 7g7f ponder 3c3d")

	u.SendResult(MoveNone, MoveNone)
	assert.Contains(t, buffer.String(), "bestmove resign")
}
