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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquareEncoding(t *testing.T) {
	assert.Equal(t, Square(0), SquareOf(File1, Rank1))
	assert.Equal(t, Square(80), SquareOf(File9, Rank9))
	assert.Equal(t, SqNone, MakeSquare("0a"))
	assert.Equal(t, SqNone, MakeSquare("5j"))
	assert.Equal(t, SqNone, MakeSquare("5"))

	for f := File1; f <= File9; f++ {
		for r := Rank1; r <= Rank9; r++ {
			sq := SquareOf(f, r)
			assert.Equal(t, f, sq.FileOf())
			assert.Equal(t, r, sq.RankOf())
			// usi string round trip
			assert.Equal(t, sq, MakeSquare(sq.String()))
		}
	}
}

func TestMoveEncoding(t *testing.T) {
	from := MakeSquare("7g")
	to := MakeSquare("7f")

	m := NewBoardMove(from, to, false)
	assert.False(t, m.IsDrop())
	assert.False(t, m.IsPromotion())
	assert.Equal(t, from, m.From())
	assert.Equal(t, to, m.To())
	assert.Equal(t, "7g7f", m.StringUci())

	mp := NewBoardMove(MakeSquare("2b"), MakeSquare("3c"), true)
	assert.True(t, mp.IsPromotion())
	assert.Equal(t, "2b3c+", mp.StringUci())

	d := NewDropMove(Pawn, MakeSquare("5f"))
	assert.True(t, d.IsDrop())
	assert.False(t, d.IsPromotion())
	assert.Equal(t, Pawn, d.DropPieceType())
	assert.Equal(t, SqNone, d.From())
	assert.Equal(t, MakeSquare("5f"), d.To())
	assert.Equal(t, "P*5f", d.StringUci())
}

func TestMoveValue(t *testing.T) {
	m := NewBoardMove(MakeSquare("7g"), MakeSquare("7f"), false)
	assert.Equal(t, ValueNA, m.ValueOf())

	m.SetValue(Value(999))
	assert.Equal(t, Value(999), m.ValueOf())
	// the move itself is unchanged
	assert.Equal(t, MakeSquare("7g"), m.From())
	assert.Equal(t, MakeSquare("7f"), m.To())

	m.SetValue(Value(-999))
	assert.Equal(t, Value(-999), m.ValueOf())

	// MoveOf strips the value
	assert.Equal(t, NewBoardMove(MakeSquare("7g"), MakeSquare("7f"), false), m.MoveOf())
}

func TestFromIndex(t *testing.T) {
	board := NewBoardMove(MakeSquare("5f"), MakeSquare("5e"), false)
	drop := NewDropMove(Silver, MakeSquare("5e"))
	assert.NotEqual(t, board.FromIndex(), drop.FromIndex())
	assert.Less(t, board.FromIndex(), FromIndexLength)
	assert.Less(t, drop.FromIndex(), FromIndexLength)
}

func TestPieceTypePromotion(t *testing.T) {
	assert.Equal(t, ProPawn, Pawn.Promote())
	assert.Equal(t, Horse, Bishop.Promote())
	assert.Equal(t, Dragon, Rook.Promote())
	assert.Equal(t, PtNone, Gold.Promote())
	assert.Equal(t, PtNone, King.Promote())
	assert.Equal(t, PtNone, ProPawn.Promote())

	assert.Equal(t, Pawn, ProPawn.Demote())
	assert.Equal(t, Rook, Dragon.Demote())
	assert.Equal(t, Gold, Gold.Demote())
}

func TestPieceString(t *testing.T) {
	assert.Equal(t, "P", MakePiece(Black, Pawn).String())
	assert.Equal(t, "p", MakePiece(White, Pawn).String())
	assert.Equal(t, "+B", MakePiece(Black, Horse).String())
	assert.Equal(t, "+r", MakePiece(White, Dragon).String())
	assert.Equal(t, "K", MakePiece(Black, King).String())
}

func TestBitboardBasics(t *testing.T) {
	var bb Bitboard
	assert.True(t, bb.IsEmpty())

	sq1 := MakeSquare("1a")
	sq2 := MakeSquare("9i") // lives in the high word
	bb.PushSquare(sq1)
	bb.PushSquare(sq2)
	assert.Equal(t, 2, bb.PopCount())
	assert.True(t, bb.Has(sq1))
	assert.True(t, bb.Has(sq2))

	assert.Equal(t, sq1, bb.Lsb())
	popped := bb.PopLsb()
	assert.Equal(t, sq1, popped)
	assert.Equal(t, 1, bb.PopCount())
	assert.Equal(t, sq2, bb.PopLsb())
	assert.True(t, bb.IsEmpty())
}

func TestBitboardSetOps(t *testing.T) {
	a := MakeSquare("5e").Bb().Or(MakeSquare("9i").Bb())
	b := MakeSquare("5e").Bb().Or(MakeSquare("1a").Bb())

	assert.Equal(t, 3, a.Or(b).PopCount())
	assert.Equal(t, MakeSquare("5e").Bb(), a.And(b))
	assert.Equal(t, 2, a.Xor(b).PopCount())
	assert.Equal(t, MakeSquare("9i").Bb(), a.AndNot(b))
	assert.Equal(t, SqLength, a.Or(a.Not()).PopCount())
}

func TestStepAttacks(t *testing.T) {
	// black pawn moves toward rank a, white pawn toward rank i
	assert.Equal(t, MakeSquare("5d").Bb(), GetStepAttacks(Black, Pawn, MakeSquare("5e")))
	assert.Equal(t, MakeSquare("5f").Bb(), GetStepAttacks(White, Pawn, MakeSquare("5e")))

	// knight jumps, forward only
	knight := GetStepAttacks(Black, Knight, MakeSquare("5e"))
	assert.Equal(t, MakeSquare("4c").Bb().Or(MakeSquare("6c").Bb()), knight)

	// king reaches all eight neighbours in the middle, three in a corner
	assert.Equal(t, 8, GetStepAttacks(Black, King, MakeSquare("5e")).PopCount())
	assert.Equal(t, 3, GetStepAttacks(Black, King, MakeSquare("1a")).PopCount())

	// gold: six directions, promoted minors move like gold
	gold := GetStepAttacks(Black, Gold, MakeSquare("5e"))
	assert.Equal(t, 6, gold.PopCount())
	assert.Equal(t, gold, GetStepAttacks(Black, ProPawn, MakeSquare("5e")))
	assert.Equal(t, gold, GetStepAttacks(Black, ProSilver, MakeSquare("5e")))

	// silver: five directions
	assert.Equal(t, 5, GetStepAttacks(Black, Silver, MakeSquare("5e")).PopCount())
}

func TestSliderAttacks(t *testing.T) {
	empty := BbZero

	// rook on an empty board covers its file and rank
	rook := GetRookAttacks(MakeSquare("5e"), empty)
	assert.Equal(t, 16, rook.PopCount())
	assert.True(t, rook.Has(MakeSquare("5a")))
	assert.True(t, rook.Has(MakeSquare("1e")))

	// a blocker stops the ray behind it
	blocker := MakeSquare("5c").Bb()
	blocked := GetRookAttacks(MakeSquare("5e"), blocker)
	assert.True(t, blocked.Has(MakeSquare("5c")))
	assert.False(t, blocked.Has(MakeSquare("5b")))
	assert.False(t, blocked.Has(MakeSquare("5a")))

	// bishop diagonals from the center
	bishop := GetBishopAttacks(MakeSquare("5e"), empty)
	assert.Equal(t, 16, bishop.PopCount())
	assert.True(t, bishop.Has(MakeSquare("1a")))
	assert.True(t, bishop.Has(MakeSquare("9i")))

	// lance slides forward only
	blackLance := GetLanceAttacks(Black, MakeSquare("5e"), empty)
	assert.Equal(t, 4, blackLance.PopCount())
	assert.True(t, blackLance.Has(MakeSquare("5a")))
	whiteLance := GetLanceAttacks(White, MakeSquare("5e"), empty)
	assert.Equal(t, 4, whiteLance.PopCount())
	assert.True(t, whiteLance.Has(MakeSquare("5i")))

	// horse and dragon add the king step to their slide
	horse := GetAttacksBb(Black, Horse, MakeSquare("5e"), empty)
	assert.Equal(t, 16+4, horse.PopCount())
	dragon := GetAttacksBb(Black, Dragon, MakeSquare("5e"), empty)
	assert.Equal(t, 16+4, dragon.PopCount())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "cp 100", Value(100).String())
	assert.Equal(t, "cp -50", Value(-50).String())
	// mate in 3 plies = 2 moves for the mating side
	assert.Equal(t, "mate 2", (ValueCheckMate - 3).String())
	assert.Equal(t, "mate -2", (-ValueCheckMate + 3).String())
}

func TestPromotionZone(t *testing.T) {
	assert.True(t, Rank1.PromotionZone(Black))
	assert.True(t, Rank3.PromotionZone(Black))
	assert.False(t, Rank4.PromotionZone(Black))
	assert.True(t, Rank9.PromotionZone(White))
	assert.True(t, Rank7.PromotionZone(White))
	assert.False(t, Rank6.PromotionZone(White))
}
