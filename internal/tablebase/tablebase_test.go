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

package tablebase

import (
	"os"
	"path"
	"runtime"
	"testing"

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
	code := m.Run()
	os.Exit(code)
}

func TestProbeMateInOne(t *testing.T) {
	// gold drop on 1b mates the cornered white king
	p, err := position.NewPositionSfen("8k/9/8P/9/9/9/9/9/K8 b G 1")
	require.NoError(t, err)

	tb := NewTablebase(5)
	value, found := tb.Probe(p, 0)
	require.True(t, found)
	assert.Equal(t, ValueCheckMate-1, value)

	// with a ply offset the mate distance is measured from the root
	value, found = tb.Probe(p, 4)
	require.True(t, found)
	assert.Equal(t, ValueCheckMate-5, value)
}

func TestProbeRootReturnsMatingMove(t *testing.T) {
	p, err := position.NewPositionSfen("8k/9/8P/9/9/9/9/9/K8 b G 1")
	require.NoError(t, err)

	tb := NewTablebase(5)
	value, move, found := tb.ProbeRoot(p)
	require.True(t, found)
	assert.Equal(t, "G*1b", move.StringUci())
	assert.Equal(t, ValueCheckMate-1, value)
}

func TestProbeMatedPosition(t *testing.T) {
	// white to move and already mated
	p, err := position.NewPositionSfen("8k/8G/8L/9/9/9/9/7R1/K8 w - 1")
	require.NoError(t, err)

	tb := NewTablebase(5)
	value, found := tb.Probe(p, 0)
	require.True(t, found)
	assert.Equal(t, -ValueCheckMate, value)

	// the root probe has no winning move to offer
	_, _, rootFound := tb.ProbeRoot(p)
	assert.False(t, rootFound)
}

func TestProbeUndecided(t *testing.T) {
	// two bare kings - no mate within any bound
	p, err := position.NewPositionSfen("8k/9/9/9/9/9/9/9/K8 b - 1")
	require.NoError(t, err)

	tb := NewTablebase(3)
	_, found := tb.Probe(p, 0)
	assert.False(t, found)
}

func TestProbeCachesResults(t *testing.T) {
	p, err := position.NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b G 1")
	require.NoError(t, err)

	tb := NewTablebase(5)
	_, found := tb.Probe(p, 0)
	require.True(t, found)
	cached := tb.Len()
	assert.Greater(t, cached, 0)

	// probing again answers from the cache without growing it
	_, found = tb.Probe(p, 0)
	require.True(t, found)
	assert.Equal(t, cached, tb.Len())
}
