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
	"github.com/kyo-shogi/shogo/internal/attacks"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// see computes the Static Exchange Evaluation of a capture: the net
// material outcome on the target square assuming both sides keep capturing
// with their least valuable attacker as long as it pays. Drops never
// capture and score 0. The piece captured goes to the capturer's hand, but
// like most shogi engines we score the exchange with board values only -
// the hand premium is an evaluation concern, not an ordering one.
func see(p *position.Position, move Move) Value {
	if move.IsDrop() {
		return ValueZero
	}

	// a stack for the speculative gains of the capture sequence; a shogi
	// board holds at most 40 pieces but an exchange on one square can never
	// involve more than 32 of them
	var gain [32]Value

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.GetPiece(fromSquare)
	nextPlayer := p.NextPlayer()

	// a bitboard of all occupied squares to remove single pieces later to
	// reveal hidden attacks (x-ray through sliders)
	occupiedBitboard := p.OccupiedAll()

	// all attackers of both sides to the target square
	remainingAttacks := attacks.AttacksTo(p, toSquare, Black).Or(attacks.AttacksTo(p, toSquare, White))

	// initial value of the first capture
	gain[ply] = p.GetPiece(toSquare).TypeOf().ValueOf()

	// loop through all remaining attacks/captures
	for {
		ply++
		if ply >= len(gain) {
			break
		}
		nextPlayer = nextPlayer.Flip()

		// speculative store, if defended
		gain[ply] = movedPiece.TypeOf().ValueOf() - gain[ply-1]

		// pruning if defended - will not change the final see score
		if maxValue(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare) // remove from attacker set to traverse
		occupiedBitboard.PopSquare(fromSquare) // remove from temporary occupancy (for x-rays)

		// reevaluate sliders to reveal attacks that were blocked by the
		// piece which just captured
		remainingAttacks = remainingAttacks.
			Or(attacks.RevealedAttacks(p, toSquare, occupiedBitboard, Black)).
			Or(attacks.RevealedAttacks(p, toSquare, occupiedBitboard, White))

		// determine next capture
		fromSquare = getLeastValuablePiece(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.GetPiece(fromSquare)
	}

	ply--
	if ply >= len(gain)-1 {
		ply = len(gain) - 2
	}
	for ply > 0 {
		gain[ply-1] = -maxValue(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// seeOrder fixes the sequence in which pieces are offered into an exchange:
// cheapest first. Promoted minors rank with the Gold they move like, the
// king always comes last as capturing with it is only possible when the
// square is otherwise undefended.
var seeOrder = [...]PieceType{
	Pawn, Lance, Knight, Silver, ProPawn, ProLance, ProKnight, ProSilver, Gold,
	Bishop, Horse, Rook, Dragon, King,
}

// getLeastValuablePiece returns the square of the least valuable piece of
// the given color within the attacker set, or SqNone.
func getLeastValuablePiece(p *position.Position, attackerSet Bitboard, color Color) Square {
	for _, pt := range seeOrder {
		if pieces := attackerSet.And(p.PiecesBb(color, pt)); !pieces.IsEmpty() {
			return pieces.Lsb()
		}
	}
	return SqNone
}

func maxValue(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
