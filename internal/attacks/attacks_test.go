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

package attacks

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

func TestComputeMatchesGetAttacksBb(t *testing.T) {
	p := position.NewPosition()
	a := NewAttacks()
	a.Compute(p)
	assert.Equal(t, p.ZobristKey(), a.Zobrist)

	occupied := p.OccupiedAll()
	for sqi := 0; sqi < SqLength; sqi++ {
		sq := Square(sqi)
		pc := p.GetPiece(sq)
		if pc == PieceNone {
			continue
		}
		expected := GetAttacksBb(pc.ColorOf(), pc.TypeOf(), sq, occupied)
		assert.Equal(t, expected, a.From[pc.ColorOf()][sq],
			"attacks from %s (%s)", sq.String(), pc.String())
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	p := position.NewPosition()
	a := NewAttacks()
	a.Compute(p)
	mobility := a.Mobility[Black]
	// second compute on the same position is a no-op
	a.Compute(p)
	assert.Equal(t, mobility, a.Mobility[Black])
}

func TestAttacksTo(t *testing.T) {
	p := position.NewPosition()

	// 7f is attacked by the black pawn on 7g only
	attackers := AttacksTo(p, MakeSquare("7f"), Black)
	assert.Equal(t, MakeSquare("7g").Bb(), attackers)

	// 5h next to the black king is guarded by king, gold and rook
	attackers = AttacksTo(p, MakeSquare("5h"), Black)
	assert.True(t, attackers.Has(MakeSquare("5i"))) // king
	assert.True(t, attackers.Has(MakeSquare("4i"))) // gold
	assert.True(t, attackers.Has(MakeSquare("2h"))) // rook along the rank
	assert.Equal(t, 4, attackers.PopCount())        // plus the gold on 6i

	// nobody attacks an empty center square at the start
	assert.True(t, AttacksTo(p, MakeSquare("5e"), Black).IsEmpty())
	assert.True(t, AttacksTo(p, MakeSquare("5e"), White).IsEmpty())
}

func TestRevealedAttacks(t *testing.T) {
	// black rook on 5i, black silver on 5e, white pawn on 5c: removing
	// the silver from the occupancy reveals the rook's attack on 5c
	p, err := position.NewPositionSfen("8k/9/4p4/9/4S4/9/9/9/4R3K b - 1")
	require.NoError(t, err)

	target := MakeSquare("5c")
	occupied := p.OccupiedAll()

	direct := AttacksTo(p, target, Black)
	assert.True(t, direct.IsEmpty())

	occupied.PopSquare(MakeSquare("5e"))
	revealed := RevealedAttacks(p, target, occupied, Black)
	assert.True(t, revealed.Has(MakeSquare("5i")))
}

func TestMobility(t *testing.T) {
	p := position.NewPosition()
	a := NewAttacks()
	a.Compute(p)
	// the start position is symmetric
	assert.Equal(t, a.Mobility[Black], a.Mobility[White])
	assert.Greater(t, a.Mobility[Black], 0)
}
