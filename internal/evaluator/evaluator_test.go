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

package evaluator

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/movegen"
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

func TestEvaluateDeterministic(t *testing.T) {
	e := NewEvaluator()
	p := position.NewPosition()
	v1 := e.Evaluate(p)
	v2 := e.Evaluate(p)
	assert.Equal(t, v1, v2)

	// a fresh evaluator on an equal position yields the same value
	e2 := NewEvaluator()
	assert.Equal(t, v1, e2.Evaluate(position.NewPosition()))
}

func TestStartPositionBalance(t *testing.T) {
	e := NewEvaluator()
	p := position.NewPosition()
	v := e.Evaluate(p)
	// the start position is mirror symmetric - only the tempo bonus for
	// the side to move remains
	assert.Equal(t, Value(config.Settings.Eval.Tempo), v)

	// the symmetric position with white to move evaluates identically
	// from white's point of view
	pw, err := position.NewPositionSfen("lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1")
	require.NoError(t, err)
	assert.Equal(t, v, e.Evaluate(pw))
}

func TestMaterialAdvantage(t *testing.T) {
	e := NewEvaluator()
	// black captured the white bishop (horse on 2b, bishop in hand)
	p := position.NewPosition()
	for _, ms := range []string{"7g7f", "3c3d", "8h2b+"} {
		p.DoMove(movegen.GetMoveFromUci(p, ms))
	}

	// white to move and a bishop down - clearly negative for white
	v := e.Evaluate(p)
	assert.Less(t, int(v), -int(Bishop.ValueOf())/2)

	// from black's view after a white reply the value is clearly
	// positive
	p.DoMove(movegen.GetMoveFromUci(p, "5a4b"))
	v = e.Evaluate(p)
	assert.Greater(t, int(v), int(Bishop.ValueOf())/2)
}

func TestHandEvaluation(t *testing.T) {
	e := NewEvaluator()
	// identical boards, but black holds two pawns in hand in the second
	p1, err := position.NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b - 1")
	require.NoError(t, err)
	p2, err := position.NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b 2P 1")
	require.NoError(t, err)
	assert.Greater(t, int(e.Evaluate(p2)), int(e.Evaluate(p1)))
}

func TestLazyEvalConsistency(t *testing.T) {
	// lazy evaluation may only kick in when the decision is already
	// clear - for a hugely material-imbalanced position the sign must be
	// the same with and without it
	p, err := position.NewPositionSfen("8k/9/9/9/9/9/9/1R7/K8 b RB 1")
	require.NoError(t, err)

	saved := config.Settings.Eval.UseLazyEval
	defer func() { config.Settings.Eval.UseLazyEval = saved }()

	config.Settings.Eval.UseLazyEval = false
	full := NewEvaluator().Evaluate(p)
	config.Settings.Eval.UseLazyEval = true
	lazy := NewEvaluator().Evaluate(p)

	assert.Greater(t, int(full), 0)
	assert.Greater(t, int(lazy), 0)
}
