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

package movegen

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
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
	code := m.Run()
	os.Exit(code)
}

func TestStartPositionMoves(t *testing.T) {
	p := position.NewPosition()
	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)
	assert.Equal(t, 30, moves.Len())

	// no duplicates and every move survives DoMove/UndoMove
	seen := map[Move]bool{}
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i).MoveOf()
		assert.False(t, seen[m], "duplicate move %s", m.StringUci())
		seen[m] = true
		p.DoMove(moves.At(i))
		p.UndoMove()
	}
	assert.Equal(t, position.StartSfen, p.StringSfen())
}

// a pawn on the second-last rank must promote when moving to the last
// rank - the non-promoting variant must not be generated
func TestForcedPromotion(t *testing.T) {
	p, err := position.NewPositionSfen("8k/P8/9/9/9/9/9/9/7LK b - 1")
	require.NoError(t, err)
	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)

	hasPromo, hasNonPromo := false, false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsDrop() || m.From() != MakeSquare("9b") {
			continue
		}
		if m.IsPromotion() {
			hasPromo = true
		} else {
			hasNonPromo = true
		}
	}
	assert.True(t, hasPromo)
	assert.False(t, hasNonPromo)
}

// a knight two ranks from the edge must also promote
func TestForcedKnightPromotion(t *testing.T) {
	p, err := position.NewPositionSfen("5k3/9/7N1/9/9/9/9/9/8K b - 1")
	require.NoError(t, err)
	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !m.IsDrop() && m.From() == MakeSquare("2c") {
			assert.True(t, m.IsPromotion(), "knight move %s must promote", m.StringUci())
		}
	}
}

// a promotion-zone move where promotion is optional generates both
// variants
func TestOptionalPromotion(t *testing.T) {
	p, err := position.NewPositionSfen("8k/9/6S2/9/9/9/9/9/8K b - 1")
	require.NoError(t, err)
	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)

	promo, nonPromo := false, false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !m.IsDrop() && m.From() == MakeSquare("3c") && m.To() == MakeSquare("3b") {
			if m.IsPromotion() {
				promo = true
			} else {
				nonPromo = true
			}
		}
	}
	assert.True(t, promo)
	assert.True(t, nonPromo)
}

// a pawn must not be dropped on a file already holding an own unpromoted
// pawn (nifu)
func TestNifu(t *testing.T) {
	p, err := position.NewPositionSfen("8k/9/9/9/4P4/9/9/9/8K b P 1")
	require.NoError(t, err)
	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsDrop() && m.DropPieceType() == Pawn {
			assert.NotEqual(t, File5, m.To().FileOf(),
				"pawn drop on file 5 violates nifu: %s", m.StringUci())
		}
	}
	// but a promoted pawn on the file does not block the drop
	p2, err := position.NewPositionSfen("8k/9/4+P4/9/9/9/9/9/8K b P 1")
	require.NoError(t, err)
	moves.Clear()
	GenerateLegalMoves(p2, GenAll, &moves)
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsDrop() && m.DropPieceType() == Pawn && m.To().FileOf() == File5 {
			found = true
		}
	}
	assert.True(t, found)
}

// pawns, lances and knights must not be dropped where they could never
// move again
func TestDeadDrops(t *testing.T) {
	p, err := position.NewPositionSfen("8k/9/9/9/9/9/9/9/K8 b PLN 1")
	require.NoError(t, err)
	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if !m.IsDrop() {
			continue
		}
		r := m.To().RankOf()
		switch m.DropPieceType() {
		case Pawn, Lance:
			assert.NotEqual(t, Rank1, r, "dead drop: %s", m.StringUci())
		case Knight:
			assert.True(t, r != Rank1 && r != Rank2, "dead drop: %s", m.StringUci())
		}
	}
}

// a pawn drop that delivers immediate checkmate (uchifuzume) is illegal;
// the same drop of any other piece is legal
func TestUchifuzume(t *testing.T) {
	// white king on 1a boxed in: the gold on 3b covers the escape
	// squares 2a and 2b, the silver on 2c guards the drop square 1b.
	// P*1b would be mate and must not be generated.
	p, err := position.NewPositionSfen("8k/6G2/7S1/9/9/9/9/9/K8 b P 1")
	require.NoError(t, err)
	require.Equal(t, MakeSquare("1a"), p.KingSquare(White))

	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsDrop() && m.DropPieceType() == Pawn {
			assert.NotEqual(t, "P*1b", m.StringUci(), "uchifuzume must be rejected")
		}
	}

	// a pawn drop giving check that is NOT mate is legal: without the
	// silver the king can recapture the pawn
	p2, err := position.NewPositionSfen("8k/6G2/9/9/9/9/9/9/K8 b P 1")
	require.NoError(t, err)
	moves.Clear()
	GenerateLegalMoves(p2, GenAll, &moves)
	found := false
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).StringUci() == "P*1b" {
			found = true
		}
	}
	assert.True(t, found, "pawn drop check without mate must be legal")
}

func TestOnDemandCoversAllMoves(t *testing.T) {
	p := position.NewPosition()
	var legal moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &legal)

	mg := NewMoveGen()
	mg.ResetOnDemand()
	generated := map[Move]bool{}
	for m := mg.GetNextMove(p, GenAll); m != MoveNone; m = mg.GetNextMove(p, GenAll) {
		generated[m.MoveOf()] = true
	}
	// the on-demand generator is pseudo-legal - every legal move must be
	// in its output
	for i := 0; i < legal.Len(); i++ {
		assert.True(t, generated[legal.At(i).MoveOf()],
			"missing move %s", legal.At(i).StringUci())
	}
}

func TestOnDemandPvMoveFirst(t *testing.T) {
	p := position.NewPosition()
	pvMove := GetMoveFromUci(p, "7g7f")
	require.NotEqual(t, MoveNone, pvMove)

	mg := NewMoveGen()
	mg.ResetOnDemand()
	mg.SetPvMove(pvMove)
	first := mg.GetNextMove(p, GenAll)
	assert.Equal(t, pvMove.MoveOf(), first.MoveOf())
	// and it is not returned a second time
	for m := mg.GetNextMove(p, GenAll); m != MoveNone; m = mg.GetNextMove(p, GenAll) {
		assert.NotEqual(t, pvMove.MoveOf(), m.MoveOf())
	}
}

func TestCapturesGeneratedFirst(t *testing.T) {
	// open position where black has captures available
	p, err := position.NewPositionSfen("8k/9/4p4/9/9/4R4/9/9/K8 b - 1")
	require.NoError(t, err)

	mg := NewMoveGen()
	mg.ResetOnDemand()
	first := mg.GetNextMove(p, GenAll)
	require.NotEqual(t, MoveNone, first)
	assert.True(t, p.IsCapturingMove(first), "expected a capture first, got %s", first.StringUci())
}

func TestGetMoveFromUci(t *testing.T) {
	p := position.NewPosition()
	assert.NotEqual(t, MoveNone, GetMoveFromUci(p, "7g7f"))
	assert.Equal(t, MoveNone, GetMoveFromUci(p, "7g7e"))  // not legal
	assert.Equal(t, MoveNone, GetMoveFromUci(p, "P*5e"))  // nothing in hand
	assert.Equal(t, MoveNone, GetMoveFromUci(p, "xxxx"))  // garbage
	assert.Equal(t, MoveNone, GetMoveFromUci(p, "7g7f+")) // cannot promote here

	// usi round trip for a legal move
	m := GetMoveFromUci(p, "2g2f")
	require.NotEqual(t, MoveNone, m)
	assert.Equal(t, "2g2f", m.StringUci())
}

func TestValidateMove(t *testing.T) {
	p := position.NewPosition()
	assert.True(t, ValidateMove(p, NewBoardMove(MakeSquare("7g"), MakeSquare("7f"), false)))
	assert.False(t, ValidateMove(p, NewBoardMove(MakeSquare("7g"), MakeSquare("7e"), false)))
	assert.False(t, ValidateMove(p, MoveNone))
}

func TestHasLegalMove(t *testing.T) {
	p := position.NewPosition()
	assert.True(t, HasLegalMove(p))

	// mated corner king has no legal move: gold on 1b protected by the
	// lance, rook covering the 2-file
	p2, err := position.NewPositionSfen("8k/8G/8L/9/9/9/9/7R1/K8 w - 1")
	require.NoError(t, err)
	assert.False(t, HasLegalMove(p2))
}
