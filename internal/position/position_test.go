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

package position

import (
	"errors"
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/shogierr"
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

func TestStartPosition(t *testing.T) {
	p := NewPosition()
	require.NotNil(t, p)
	assert.Equal(t, StartSfen, p.StringSfen())
	assert.Equal(t, Black, p.NextPlayer())
	assert.Equal(t, MakeSquare("5i"), p.KingSquare(Black))
	assert.Equal(t, MakeSquare("5a"), p.KingSquare(White))
	assert.Equal(t, 40, p.OccupiedAll().PopCount())
	assert.Equal(t, GamePhaseMax, p.GamePhase())
	assert.Equal(t, p.Material(Black), p.Material(White))
	assert.False(t, p.HasCheck())
}

func TestSfenRoundTrip(t *testing.T) {
	sfens := []string{
		StartSfen,
		// position with promoted pieces and hands on both sides
		"lnsgk1snl/1r4g2/p1pppp1pp/6p2/9/2P4P1/PP1PPPP1P/1BG3SR1/LNS1KG1NL w Bb 9",
		// sparse endgame position with multiple hand pieces
		"8k/9/8L/9/9/9/9/9/K8 b G2Pgp 1",
		"ln1g5/1ks5l/1p2p1n2/p1pp1p3/5Ppp1/PPPPP4/1KGGS2P1/1S5R1/LN3+b2L w RBSNPg2p 50",
	}
	for _, sfen := range sfens {
		p, err := NewPositionSfen(sfen)
		require.NoError(t, err, sfen)
		assert.Equal(t, sfen, p.StringSfen())
	}
}

func TestInvalidSfen(t *testing.T) {
	invalid := []string{
		"",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1",                 // too few ranks
		"9/9/9/9/9/9/9/9/9 b - 1",                                         // missing kings
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL x - 1", // bad side
		"lnsgkgsnl/1r5b1/ppxpppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1", // bad piece
		"8k/9/9/9/9/9/9/9/K8 b K 1",                                       // king in hand
	}
	for _, sfen := range invalid {
		_, err := NewPositionSfen(sfen)
		require.Error(t, err, sfen)
		assert.True(t, errors.Is(err, shogierr.ErrInvalidPosition), sfen)
	}
}

func TestDoUndoMove(t *testing.T) {
	p := NewPosition()
	origSfen := p.StringSfen()
	origKey := p.ZobristKey()

	m1 := NewBoardMove(MakeSquare("7g"), MakeSquare("7f"), false)
	p.DoMove(m1)
	assert.Equal(t, White, p.NextPlayer())
	assert.NotEqual(t, origKey, p.ZobristKey())
	assert.Equal(t, m1, p.LastMove())

	p.UndoMove()
	assert.Equal(t, origSfen, p.StringSfen())
	assert.Equal(t, origKey, p.ZobristKey())
	assert.Equal(t, Black, p.NextPlayer())
}

func TestDoUndoCaptureAndDrop(t *testing.T) {
	// black bishop can capture the white bishop on 2b after opening the
	// diagonal
	p := NewPosition()
	moves := []string{"7g7f", "3c3d", "8h2b+"}
	for _, ms := range moves {
		p.DoMove(uciMove(t, p, ms))
	}

	// bishop captured - black holds a bishop in hand
	assert.Equal(t, 1, p.HandCount(Black, Bishop))
	assert.Equal(t, MakePiece(Black, Horse), p.GetPiece(MakeSquare("2b")))

	// white recaptures with the silver
	p.DoMove(uciMove(t, p, "3a2b"))
	assert.Equal(t, 1, p.HandCount(White, Bishop))

	// black drops the bishop
	key := p.ZobristKey()
	sfen := p.StringSfen()
	drop := NewDropMove(Bishop, MakeSquare("5e"))
	p.DoMove(drop)
	assert.Equal(t, 0, p.HandCount(Black, Bishop))
	assert.Equal(t, MakePiece(Black, Bishop), p.GetPiece(MakeSquare("5e")))

	p.UndoMove()
	assert.Equal(t, 1, p.HandCount(Black, Bishop))
	assert.Equal(t, key, p.ZobristKey())
	assert.Equal(t, sfen, p.StringSfen())
}

// the zobrist key must be identical for the same position reached via
// different move orders and must incorporate the hand counts
func TestZobristTransposition(t *testing.T) {
	p1 := NewPosition()
	for _, ms := range []string{"7g7f", "3c3d", "2g2f"} {
		p1.DoMove(uciMove(t, p1, ms))
	}
	p2 := NewPosition()
	for _, ms := range []string{"2g2f", "3c3d", "7g7f"} {
		p2.DoMove(uciMove(t, p2, ms))
	}
	assert.Equal(t, p1.ZobristKey(), p2.ZobristKey())
	assert.Equal(t, p1.StringSfen(), p2.StringSfen())
}

// two positions with the same board but different hands must have
// different keys
func TestZobristHand(t *testing.T) {
	p1, err := NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b P 1")
	require.NoError(t, err)
	p2, err := NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b 2P 1")
	require.NoError(t, err)
	assert.NotEqual(t, p1.ZobristKey(), p2.ZobristKey())
}

func TestIsAttacked(t *testing.T) {
	p := NewPosition()
	// black pawn on 7g attacks 7f
	assert.True(t, p.IsAttacked(MakeSquare("7f"), Black))
	// white pawn on 3c attacks 3d
	assert.True(t, p.IsAttacked(MakeSquare("3d"), White))
	// rook on 2h attacks along the rank
	assert.True(t, p.IsAttacked(MakeSquare("5h"), Black))
	// nobody attacks the middle of the board at the start
	assert.False(t, p.IsAttacked(MakeSquare("5e"), Black))
	assert.False(t, p.IsAttacked(MakeSquare("5e"), White))

	// a lance attacks along its file until blocked
	p2, err := NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b - 1")
	require.NoError(t, err)
	assert.True(t, p2.IsAttacked(MakeSquare("1b"), Black))
	assert.True(t, p2.IsAttacked(MakeSquare("1a"), Black))
	// the side to move (black) is not in check
	assert.False(t, p2.HasCheck())
}

func TestGivesCheck(t *testing.T) {
	p, err := NewPositionSfen("8k/9/8P/9/9/9/9/9/K8 b G 1")
	require.NoError(t, err)
	// gold drop next to the king gives check
	assert.True(t, p.GivesCheck(NewDropMove(Gold, MakeSquare("1b"))))
	// gold drop far away does not
	assert.False(t, p.GivesCheck(NewDropMove(Gold, MakeSquare("5e"))))
}

func TestHasPawnOnFile(t *testing.T) {
	p := NewPosition()
	for f := File1; f <= File9; f++ {
		assert.True(t, p.HasPawnOnFile(Black, f))
		assert.True(t, p.HasPawnOnFile(White, f))
	}
	p2, err := NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b P 1")
	require.NoError(t, err)
	assert.False(t, p2.HasPawnOnFile(Black, File5))
}

func TestRepetition(t *testing.T) {
	p, err := NewPositionSfen("8k/9/9/9/9/9/9/9/K8 b - 1")
	require.NoError(t, err)

	// shuffle the kings back and forth; after 3 full cycles the start
	// position occurs the 4th time
	cycle := []string{"9i9h", "1a1b", "9h9i", "1b1a"}
	for i := 0; i < 3; i++ {
		assert.False(t, p.CheckRepetitions(4))
		for _, ms := range cycle {
			p.DoMove(uciMove(t, p, ms))
		}
	}
	assert.True(t, p.CheckRepetitions(4))

	// no checks in the sequence - no perpetual check
	_, perpetual := p.CheckedPerpetually(4)
	assert.False(t, perpetual)
}

func TestPerpetualCheck(t *testing.T) {
	// the black rook chases the white king between 1a and 1b, giving
	// check on every black move - a repetition via perpetual check
	p, err := NewPositionSfen("7k1/9/9/9/9/9/9/9/K8 w R 1")
	require.NoError(t, err)

	p.DoMove(uciMove(t, p, "2a1a"))
	p.DoMove(uciMove(t, p, "R*5a"))
	assert.True(t, p.HasCheck())

	// rook follows the king between ranks a and b, checking each time
	cycle := []string{"1a1b", "5a5b", "1b1a", "5b5a"}
	for i := 0; i < 3; i++ {
		for _, ms := range cycle {
			p.DoMove(uciMove(t, p, ms))
			_ = p.HasCheck() // make sure the check flag is computed
		}
	}

	require.True(t, p.CheckRepetitions(4))
	checkedColor, perpetual := p.CheckedPerpetually(4)
	assert.True(t, perpetual)
	assert.Equal(t, White, checkedColor)
}

func TestPieceCount(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, 38, p.PieceCount())

	p2, err := NewPositionSfen("8k/9/8L/9/9/9/9/9/K8 b G2Pgp 1")
	require.NoError(t, err)
	// lance on board + G,2P,g,p in hand
	assert.Equal(t, 6, p2.PieceCount())
}

func TestMaterial(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, p.Material(Black), p.Material(White))

	// capturing the bishop shifts material by twice the bishop value
	// (off the opponent's board account, onto ours including hand)
	for _, ms := range []string{"7g7f", "3c3d", "8h2b+"} {
		p.DoMove(uciMove(t, p, ms))
	}
	diff := p.Material(Black) - p.Material(White)
	// black swapped the bishop for a horse and gained a bishop in hand,
	// white lost its bishop
	assert.Equal(t, (Horse.ValueOf()-Bishop.ValueOf()+Bishop.ValueOf())+Bishop.ValueOf(), diff)
}

// uciMove resolves a USI move string against the position using the raw
// encoding - the position package cannot import movegen (cycle), so this
// builds moves directly.
func uciMove(t *testing.T, p *Position, s string) Move {
	t.Helper()
	var m Move
	if len(s) >= 4 && s[1] == '*' {
		pt, ok := PieceTypeFromLetter(s[0])
		require.True(t, ok)
		m = NewDropMove(pt, MakeSquare(s[2:4]))
	} else {
		require.GreaterOrEqual(t, len(s), 4)
		m = NewBoardMove(MakeSquare(s[0:2]), MakeSquare(s[2:4]), len(s) >= 5 && s[4] == '+')
	}
	require.True(t, m.IsValid(), s)
	return m
}
