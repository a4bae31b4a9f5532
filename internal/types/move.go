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
	"fmt"
	"strings"

	"github.com/kyo-shogi/shogo/internal/assert"
)

// Move is a 32-bit unsigned int encoding a shogi move as a primitive data
// type: 16 bits for the move itself, 16 bits for a move-ordering sort value.
//
// A board move carries a from-square and a to-square. A drop has no
// from-square on the board; instead the from-field stores a value beyond
// SqLength that identifies which piece type is being dropped from hand.
// This keeps Move a single flat integer instead of a tagged union, at the
// cost of a couple of spare bits in the from-field.
//
//	BITMAP 32-bit
//	|-value ------------------------|-Move -------------------------|
//	3 3 2 2 2 2 2 2 2 2 2 2 1 1 1 1 | 1 1 1 1 1 1 1 0 0 0 0 0 0 0 0 0
//	1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 | 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//	--------------------------------|--------------------------------
//	                                |                   1 1 1 1 1 1 1  to
//	                                |     1 1 1 1 1 1 1              from / drop marker
//	                                |   1                            promotion flag
//	1 1 1 1 1 1 1 1 1 1 1 1 1 1 1 1 |                                 move sort value
type Move uint32

const (
	// MoveNone is the empty, invalid move.
	MoveNone Move = 0

	toShift    uint = 0
	fromShift  uint = 7
	promShift  uint = 14
	valueShift uint = 16

	squareFieldMask Move = 0x7F // 7 bits - covers squares 0-80 and drop markers 82-88
	toMask          Move = squareFieldMask << toShift
	fromMask        Move = squareFieldMask << fromShift
	promMask        Move = 1 << promShift
	moveMask        Move = 0xFFFF // low 16 bits, the move without sort value
	valueMask       Move = 0xFFFF << valueShift
)

// dropMarkerBase is added to a droppable PieceType to build the from-field
// of a drop move; any from-field at or above this value denotes a drop
// rather than a board square.
const dropMarkerBase = Move(SqLength)

// NewBoardMove encodes a move of a piece already on the board from one
// square to another, optionally promoting on arrival.
func NewBoardMove(from, to Square, promotes bool) Move {
	m := Move(to)<<toShift | Move(from)<<fromShift
	if promotes {
		m |= promMask
	}
	return m
}

// NewDropMove encodes dropping pt from hand onto to. pt must be one of the
// seven droppable piece types (CanDrop()).
func NewDropMove(pt PieceType, to Square) Move {
	return Move(to)<<toShift | (dropMarkerBase+Move(pt))<<fromShift
}

// To returns the destination square of the move.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// rawFrom returns the undecoded from-field.
func (m Move) rawFrom() Move {
	return (m & fromMask) >> fromShift
}

// IsDrop reports whether the move drops a piece from hand rather than
// moving a piece already on the board.
func (m Move) IsDrop() bool {
	return m.rawFrom() >= dropMarkerBase
}

// From returns the origin square of a board move. Calling this on a drop
// move returns SqNone; check IsDrop first.
func (m Move) From() Square {
	if m.IsDrop() {
		return SqNone
	}
	return Square(m.rawFrom())
}

// DropPieceType returns the piece type being dropped. Calling this on a
// board move is meaningless; check IsDrop first.
func (m Move) DropPieceType() PieceType {
	return PieceType(m.rawFrom() - dropMarkerBase)
}

// FromIndex returns the raw from-field as a small dense int (0..88): the
// origin square for a board move, or SqLength+PieceType for a drop. Move
// history tables index on this directly instead of branching on IsDrop, a
// drop and a board move landing on the same square are different things to
// remember.
func (m Move) FromIndex() int {
	return int(m.rawFrom())
}

// FromIndexLength is the exclusive upper bound for FromIndex: board squares
// plus the droppable piece types (Pawn..Rook).
const FromIndexLength = int(dropMarkerBase) + int(Rook) + 1

// IsPromotion reports whether the moved piece promotes on arrival. Always
// false for drops, which never promote.
func (m Move) IsPromotion() bool {
	return m&promMask != 0
}

// MoveOf returns the move without any sort value (the low 16 bits).
func (m Move) MoveOf() Move {
	return m & moveMask
}

// ValueOf returns the move-ordering sort value encoded in the high 16 bits.
func (m Move) ValueOf() Value {
	return Value((m&valueMask)>>valueShift) + ValueNA
}

// SetValue encodes v as the move's sort value, used by the move generator
// and search to keep moves and their ordering score together during sorts.
func (m *Move) SetValue(v Value) Move {
	if assert.DEBUG {
		assert.Assert(v == ValueNA || v.IsValid(), "Invalid move sort value: %d", v)
	}
	if *m == MoveNone {
		return *m
	}
	*m = *m&moveMask | Move(v-ValueNA)<<valueShift
	return *m
}

// IsValid reports whether the move has valid squares (or a valid drop
// piece type) and a valid sort value. MoveNone is never valid.
func (m Move) IsValid() bool {
	if m == MoveNone {
		return false
	}
	if !m.To().IsValid() {
		return false
	}
	if m.IsDrop() {
		if !m.DropPieceType().CanDrop() {
			return false
		}
	} else if !m.From().IsValid() {
		return false
	}
	return m.ValueOf() == ValueNA || m.ValueOf().IsValid()
}

// String returns a descriptive representation of the move for logging.
func (m Move) String() string {
	if m == MoveNone {
		return "Move: { MoveNone }"
	}
	return fmt.Sprintf("Move: { %-5s  value:%-6d  (%d) }", m.StringUci(), m.ValueOf(), m)
}

// StringUci returns the USI text representation of the move, e.g. "7g7f"
// for a board move, "7g7f+" for one that promotes, or "P*5e" for a drop.
func (m Move) StringUci() string {
	if m == MoveNone {
		return "none"
	}
	var os strings.Builder
	if m.IsDrop() {
		os.WriteString(m.DropPieceType().String())
		os.WriteString("*")
		os.WriteString(m.To().String())
		return os.String()
	}
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.IsPromotion() {
		os.WriteString("+")
	}
	return os.String()
}
