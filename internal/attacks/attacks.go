//
// Shogo - USI shogi engine in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package attacks computes and caches the full attack/defend picture of a
// position: which squares each side attacks, which pieces attack which
// squares, and overall mobility. Move generation and evaluation both
// consult this instead of recomputing attack bitboards themselves.
package attacks

import (
	"github.com/op/go-logging"

	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// allPieceTypes lists every piece type whose attacks are computed the
// uniform GetAttacksBb way (drops never attack, so PtNone is skipped).
var allPieceTypes = [...]PieceType{
	Pawn, Lance, Knight, Silver, Gold, Bishop, Rook, King,
	ProPawn, ProLance, ProKnight, ProSilver, Horse, Dragon,
}

// Attacks is a data structure holding all attacks and defends of a
// position, computed once and reused across move ordering, SEE, and
// evaluation until the position changes.
type Attacks struct {
	log *logging.Logger

	// the position key for which the attacks have been calculated
	Zobrist position.Key
	// bitboards of attacked/defended squares for each color and each from square
	From [ColorLength][SqLength]Bitboard
	// bitboards of attackers/defenders for each color and to square
	To [ColorLength][SqLength]Bitboard
	// bitboards for all attacked/defended squares of a color
	All [ColorLength]Bitboard
	// bitboards of attacked/defended squares for each color and each piece type
	Piece [ColorLength][PtLength]Bitboard
	// sum of possible moves for each color (moves onto own pieces already excluded)
	Mobility [ColorLength]int
}

// NewAttacks creates a new, empty Attacks instance.
func NewAttacks() *Attacks {
	return &Attacks{
		log: myLogging.GetLog("attacks"),
	}
}

// Clear resets all fields without reallocating, considerably faster than
// creating a new instance when reused across many positions in a search.
func (a *Attacks) Clear() {
	a.Zobrist = 0
	for sq := 0; sq < SqLength; sq++ {
		a.From[White][sq] = BbZero
		a.From[Black][sq] = BbZero
		a.To[White][sq] = BbZero
		a.To[Black][sq] = BbZero
	}
	for pt := PtNone; int(pt) < PtLength; pt++ {
		a.Piece[White][pt] = BbZero
		a.Piece[Black][pt] = BbZero
	}
	a.All[White] = BbZero
	a.All[Black] = BbZero
	a.Mobility[White] = 0
	a.Mobility[Black] = 0
}

// Compute calculates all attacks for the position. Stores the position's
// zobrist key so that calling Compute again on the same position is a
// no-op.
func (a *Attacks) Compute(p *position.Position) {
	if p.ZobristKey() == a.Zobrist {
		a.log.Debugf("attacks compute: position was already computed")
		return
	}
	a.Clear()
	a.Zobrist = p.ZobristKey()

	allPieces := p.OccupiedAll()
	for c := Black; c <= White; c++ {
		myPieces := p.OccupiedBb(c)
		for _, pt := range allPieceTypes {
			for pieces := p.PiecesBb(c, pt); pieces != BbZero; {
				psq := pieces.PopLsb()
				atk := GetAttacksBb(c, pt, psq, allPieces)
				a.From[c][psq] = atk
				a.Piece[c][pt] = a.Piece[c][pt].Or(atk)
				a.All[c] = a.All[c].Or(atk)
				tmp := atk
				for tmp != BbZero {
					toSq := tmp.PopLsb()
					a.To[c][toSq].PushSquare(psq)
				}
				a.Mobility[c] += atk.AndNot(myPieces).PopCount()
			}
		}
	}
}

// AttacksTo determines all pieces of the given color attacking square sq,
// using a reverse lookup: place each attacker type on sq and see which of
// color's actual pieces fall within its attack pattern.
func AttacksTo(p *position.Position, square Square, color Color) Bitboard {
	occupied := p.OccupiedAll()
	opposite := color.Flip()

	goldLike := p.PiecesBb(color, Gold).Or(p.PiecesBb(color, ProPawn)).Or(p.PiecesBb(color, ProLance)).
		Or(p.PiecesBb(color, ProKnight)).Or(p.PiecesBb(color, ProSilver))

	return GetStepAttacks(opposite, Pawn, square).And(p.PiecesBb(color, Pawn)).
		Or(GetStepAttacks(opposite, Knight, square).And(p.PiecesBb(color, Knight))).
		Or(GetStepAttacks(opposite, Silver, square).And(p.PiecesBb(color, Silver))).
		Or(GetStepAttacks(opposite, Gold, square).And(goldLike)).
		Or(GetStepAttacks(opposite, King, square).And(p.PiecesBb(color, King).Or(p.PiecesBb(color, Horse)).Or(p.PiecesBb(color, Dragon)))).
		Or(GetLanceAttacks(opposite, square, occupied).And(p.PiecesBb(color, Lance))).
		Or(GetBishopAttacks(square, occupied).And(p.PiecesBb(color, Bishop).Or(p.PiecesBb(color, Horse)))).
		Or(GetRookAttacks(square, occupied).And(p.PiecesBb(color, Rook).Or(p.PiecesBb(color, Dragon))))
}

// RevealedAttacks returns the sliding attacks that reach square after a
// piece has been removed from the board, restricted to the sliders of
// color that actually land on occupied (useful to detect discovered
// attacks/pins while walking a capture sequence, e.g. in SEE).
func RevealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return GetLanceAttacks(color.Flip(), square, occupied).And(p.PiecesBb(color, Lance)).And(occupied).
		Or(GetBishopAttacks(square, occupied).And(p.PiecesBb(color, Bishop).Or(p.PiecesBb(color, Horse))).And(occupied)).
		Or(GetRookAttacks(square, occupied).And(p.PiecesBb(color, Rook).Or(p.PiecesBb(color, Dragon))).And(occupied))
}
