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

// PieceType enumerates the 14 piece kinds of one side: the 8 base kinds
// plus the 6 that have a promoted form (everything except Gold and King).
type PieceType int8

// noinspection GoUnusedConst
const (
	PtNone PieceType = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn // "Tokin"
	ProLance
	ProKnight
	ProSilver
	Horse    // promoted Bishop
	Dragon   // promoted Rook
	PtLength = int(Dragon) + 1
)

var ptLetters = [...]string{"", "P", "L", "N", "S", "G", "B", "R", "K", "+P", "+L", "+N", "+S", "+B", "+R"}

// String returns the USI/SFEN letter(s) for the piece type (unpromoted
// pieces use their single uppercase letter, promoted pieces carry a "+"
// prefix as in SFEN).
func (pt PieceType) String() string {
	if pt < PtNone || int(pt) >= len(ptLetters) {
		return "-"
	}
	return ptLetters[pt]
}

// IsValid checks if pt is a valid, non-empty piece type.
func (pt PieceType) IsValid() bool {
	return pt > PtNone && int(pt) < PtLength
}

// promotedOf maps a promotable piece type to its promoted form; PtNone for
// pieces that cannot promote (Gold, King) or are already promoted.
var promotedOf = [...]PieceType{
	PtNone, ProPawn, ProLance, ProKnight, ProSilver, PtNone, Horse, Dragon, PtNone,
	PtNone, PtNone, PtNone, PtNone, PtNone, PtNone,
}

// Promote returns the promoted form of pt, or PtNone if pt cannot promote.
func (pt PieceType) Promote() PieceType {
	if int(pt) >= len(promotedOf) {
		return PtNone
	}
	return promotedOf[pt]
}

// demotedOf maps a promoted piece type back to its unpromoted (hand) form.
var demotedOf = [...]PieceType{
	PtNone, PtNone, PtNone, PtNone, PtNone, PtNone, PtNone, PtNone, PtNone,
	Pawn, Lance, Knight, Silver, Bishop, Rook,
}

// Demote returns the unpromoted form of pt. For pieces that are not
// promoted (or cannot promote) it returns pt unchanged.
func (pt PieceType) Demote() PieceType {
	if int(pt) >= len(demotedOf) || demotedOf[pt] == PtNone {
		return pt
	}
	return demotedOf[pt]
}

// IsPromoted returns true if pt is one of the six promoted piece types.
func (pt PieceType) IsPromoted() bool {
	return pt >= ProPawn && pt <= Dragon
}

// IsSlider returns true if the piece type's movement includes a sliding
// (ray) component handled by the magic-table lookup: Lance, Bishop, Rook,
// and their promoted forms Horse/Dragon (whose sliding component is the
// same as the unpromoted piece, plus a fixed king-step addendum).
func (pt PieceType) IsSlider() bool {
	switch pt {
	case Lance, Bishop, Rook, Horse, Dragon:
		return true
	default:
		return false
	}
}

// CanDrop reports whether pt is one of the seven hand-droppable piece
// types (everything except King and the six promoted forms).
func (pt PieceType) CanDrop() bool {
	return pt >= Pawn && pt <= Rook
}

// handOrder fixes a deterministic iteration/display order for hand pieces,
// by convention high-value to low-value: Rook, Bishop, Gold, Silver,
// Knight, Lance, Pawn.
var handOrder = [...]PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// HandPieceTypes returns the droppable piece types in display order.
func HandPieceTypes() []PieceType {
	return handOrder[:]
}

// pieceValues holds the static material value of one piece of each type,
// calibrated the way computer-shogi engines commonly weigh them (pawn as
// the base unit, a promoted minor worth roughly a Gold, Horse/Dragon worth
// noticeably more than their unpromoted selves).
var pieceValues = [...]Value{
	PtNone: 0,
	Pawn:   90, Lance: 315, Knight: 405, Silver: 495, Gold: 540, Bishop: 855, Rook: 990, King: 0,
	ProPawn: 540, ProLance: 540, ProKnight: 540, ProSilver: 540, Horse: 945, Dragon: 1395,
}

// ValueOf returns the static material value of one piece of this type.
func (pt PieceType) ValueOf() Value {
	return pieceValues[pt]
}

// SetPieceValue overrides the built-in material value of a piece type,
// used when a custom evaluation table file is loaded. Affects positions
// created afterwards.
func SetPieceValue(pt PieceType, v Value) {
	if pt.IsValid() && pt != King {
		pieceValues[pt] = v
	}
}

// gamePhaseValues weighs each piece type's contribution to the game-phase
// counter used to blend midgame/endgame evaluation: rooks and bishops (the
// pieces whose loss most changes the character of the position) count
// double, other non-pawn, non-king pieces count once, pawns, promoted
// pieces and the king don't move the needle.
var gamePhaseValues = [...]int{
	PtNone: 0,
	Pawn:   0, Lance: 1, Knight: 1, Silver: 1, Gold: 1, Bishop: 2, Rook: 2, King: 0,
	ProPawn: 0, ProLance: 0, ProKnight: 0, ProSilver: 0, Horse: 0, Dragon: 0,
}

// GamePhaseValue returns this piece type's contribution to the game-phase
// counter, see gamePhaseValues.
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValues[pt]
}
