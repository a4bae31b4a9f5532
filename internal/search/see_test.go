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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

func TestSeeUndefendedCapture(t *testing.T) {
	// black rook takes an undefended white pawn
	p, err := position.NewPositionSfen("8k/9/4p4/9/9/4R4/9/9/K8 b - 1")
	require.NoError(t, err)
	m := movegen.GetMoveFromUci(p, "5f5c")
	require.NotEqual(t, MoveNone, m)
	assert.Equal(t, Pawn.ValueOf(), see(p, m))
}

func TestSeeDefendedCapture(t *testing.T) {
	// black rook takes a white pawn defended by a gold - losing the rook
	// for a pawn
	p, err := position.NewPositionSfen("8k/4g4/4p4/9/9/4R4/9/9/K8 b - 1")
	require.NoError(t, err)
	m := movegen.GetMoveFromUci(p, "5f5c")
	require.NotEqual(t, MoveNone, m)
	assert.Equal(t, Pawn.ValueOf()-Rook.ValueOf(), see(p, m))
	assert.Less(t, int(see(p, m)), 0)
}

func TestSeeEqualExchangeWithBackup(t *testing.T) {
	// black pawn takes a defended white pawn but is backed by a rook:
	// PxP, GxP, RxG wins material
	p, err := position.NewPositionSfen("8k/4g4/4p4/4P4/9/4R4/9/9/K8 b - 1")
	require.NoError(t, err)
	m := movegen.GetMoveFromUci(p, "5d5c")
	require.NotEqual(t, MoveNone, m)
	// pawn takes pawn wins a pawn; the gold declines to recapture since
	// the rook behind the pawn would win it
	assert.Equal(t, Pawn.ValueOf(), see(p, m))
}

func TestSeeDropIsZero(t *testing.T) {
	p, err := position.NewPositionSfen("8k/9/9/9/9/9/9/9/K8 b G 1")
	require.NoError(t, err)
	m := movegen.GetMoveFromUci(p, "G*5e")
	require.NotEqual(t, MoveNone, m)
	assert.Equal(t, ValueZero, see(p, m))
}
