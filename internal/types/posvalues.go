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

// posMidValue and posEndValue hold a pre computed positional (piece-square)
// bonus for every piece on every square, one table for the midgame profile
// and one for the endgame profile. The evaluator blends the two by game
// phase the same way it blends material.
//
// A chess piece-square table doesn't transfer to a 9x9 board with drops
// and fourteen piece types, so these aren't copied from anywhere - they are
// built at init time from two small curves per piece type: an advancement
// curve (how much the piece wants to be away from its own back rank) and a
// centralization curve (how much it wants to be away from the edge files).
var (
	posMidValue [PieceLength][SqLength]Value
	posEndValue [PieceLength][SqLength]Value
)

func init() {
	initPosValues()
}

// pstProfile is the pair of curves used to build one piece type's table.
// advance is indexed by distance from the piece's own back rank (0..8),
// center is indexed by distance from the center file (0..4).
type pstProfile struct {
	advanceMid, advanceEnd [9]Value
	centerMid, centerEnd   [5]Value
}

var pstProfiles = [PtLength]pstProfile{
	Pawn: {
		advanceMid: [9]Value{0, 0, 0, 5, 10, 20, 40, 70, 120},
		advanceEnd: [9]Value{0, 0, 0, 10, 20, 40, 70, 110, 160},
		centerMid:  [5]Value{0, 0, 0, 0, 0},
		centerEnd:  [5]Value{0, 0, 0, 0, 0},
	},
	Lance: {
		advanceMid: [9]Value{0, 0, 0, 0, 5, 10, 20, 35, 60},
		advanceEnd: [9]Value{0, 0, 0, 5, 10, 20, 35, 55, 85},
		centerMid:  [5]Value{0, 0, 0, 0, 0},
		centerEnd:  [5]Value{0, 0, 0, 0, 0},
	},
	Knight: {
		advanceMid: [9]Value{-10, -5, 0, 5, 10, 15, 10, 5, -20},
		advanceEnd: [9]Value{-5, 0, 5, 10, 10, 10, 5, 0, -10},
		centerMid:  [5]Value{10, 5, 0, -5, -10},
		centerEnd:  [5]Value{5, 2, 0, -2, -5},
	},
	Silver: {
		advanceMid: [9]Value{0, 5, 5, 10, 15, 20, 15, 5, -10},
		advanceEnd: [9]Value{0, 5, 10, 15, 20, 20, 15, 10, 0},
		centerMid:  [5]Value{8, 4, 0, -4, -8},
		centerEnd:  [5]Value{5, 2, 0, -2, -5},
	},
	Gold: {
		advanceMid: [9]Value{0, 5, 10, 12, 15, 15, 10, 0, -10},
		advanceEnd: [9]Value{0, 5, 10, 15, 15, 10, 5, 0, -10},
		centerMid:  [5]Value{10, 5, 0, -5, -10},
		centerEnd:  [5]Value{8, 4, 0, -4, -8},
	},
	Bishop: {
		advanceMid: [9]Value{0, 0, 5, 5, 10, 10, 5, 0, -10},
		advanceEnd: [9]Value{0, 0, 5, 10, 15, 15, 10, 5, 0},
		centerMid:  [5]Value{15, 8, 0, -8, -15},
		centerEnd:  [5]Value{10, 5, 0, -5, -10},
	},
	Rook: {
		advanceMid: [9]Value{5, 5, 5, 5, 5, 5, 5, 0, -15},
		advanceEnd: [9]Value{0, 0, 0, 0, 0, 5, 10, 15, 20},
		centerMid:  [5]Value{5, 0, 0, 0, -5},
		centerEnd:  [5]Value{5, 0, 0, 0, -5},
	},
	King: {
		advanceMid: [9]Value{20, 10, -10, -30, -50, -50, -50, -50, -50},
		advanceEnd: [9]Value{-30, -10, 10, 20, 30, 30, 20, 10, -30},
		centerMid:  [5]Value{-10, -5, 0, 5, 10},
		centerEnd:  [5]Value{10, 5, 0, -5, -10},
	},
	// The promoted minor pieces all move like a Gold General once promoted,
	// so they inherit its table.
	ProPawn: {
		advanceMid: [9]Value{0, 5, 10, 12, 15, 15, 10, 0, -10},
		advanceEnd: [9]Value{0, 5, 10, 15, 15, 10, 5, 0, -10},
		centerMid:  [5]Value{10, 5, 0, -5, -10},
		centerEnd:  [5]Value{8, 4, 0, -4, -8},
	},
	ProLance: {
		advanceMid: [9]Value{0, 5, 10, 12, 15, 15, 10, 0, -10},
		advanceEnd: [9]Value{0, 5, 10, 15, 15, 10, 5, 0, -10},
		centerMid:  [5]Value{10, 5, 0, -5, -10},
		centerEnd:  [5]Value{8, 4, 0, -4, -8},
	},
	ProKnight: {
		advanceMid: [9]Value{0, 5, 10, 12, 15, 15, 10, 0, -10},
		advanceEnd: [9]Value{0, 5, 10, 15, 15, 10, 5, 0, -10},
		centerMid:  [5]Value{10, 5, 0, -5, -10},
		centerEnd:  [5]Value{8, 4, 0, -4, -8},
	},
	ProSilver: {
		advanceMid: [9]Value{0, 5, 10, 12, 15, 15, 10, 0, -10},
		advanceEnd: [9]Value{0, 5, 10, 15, 15, 10, 5, 0, -10},
		centerMid:  [5]Value{10, 5, 0, -5, -10},
		centerEnd:  [5]Value{8, 4, 0, -4, -8},
	},
	Horse: {
		advanceMid: [9]Value{5, 5, 10, 10, 15, 15, 10, 5, 0},
		advanceEnd: [9]Value{5, 5, 10, 15, 20, 20, 15, 10, 5},
		centerMid:  [5]Value{10, 5, 0, -5, -10},
		centerEnd:  [5]Value{8, 4, 0, -4, -8},
	},
	Dragon: {
		advanceMid: [9]Value{10, 10, 10, 10, 10, 10, 10, 5, -5},
		advanceEnd: [9]Value{5, 5, 5, 5, 10, 15, 20, 25, 30},
		centerMid:  [5]Value{8, 0, 0, 0, -5},
		centerEnd:  [5]Value{8, 0, 0, 0, -5},
	},
}

// initPosValues builds posMidValue/posEndValue for every piece and square
// from the curves in pstProfiles.
func initPosValues() {
	for pt := Pawn; pt <= Dragon; pt++ {
		profile := pstProfiles[pt]
		for f := File(0); f < File(FileLength); f++ {
			centerDist := centerDistance(f)
			for r := Rank(0); r < Rank(RankLength); r++ {
				sq := SquareOf(f, r)

				// Black's back rank is Rank9 (index 8), advancing toward Rank1.
				blackAdvance := 8 - int(r)
				blackPiece := MakePiece(Black, pt)
				posMidValue[blackPiece][sq] = profile.advanceMid[blackAdvance] + profile.centerMid[centerDist]
				posEndValue[blackPiece][sq] = profile.advanceEnd[blackAdvance] + profile.centerEnd[centerDist]

				// White's back rank is Rank1 (index 0), advancing toward Rank9.
				whiteAdvance := int(r)
				whitePiece := MakePiece(White, pt)
				posMidValue[whitePiece][sq] = profile.advanceMid[whiteAdvance] + profile.centerMid[centerDist]
				posEndValue[whitePiece][sq] = profile.advanceEnd[whiteAdvance] + profile.centerEnd[centerDist]
			}
		}
	}
}

// centerDistance returns the distance of file f (0-indexed) from the center
// file (File5, index 4), clamped to the 0..4 range the curve tables use.
func centerDistance(f File) int {
	d := int(f) - 4
	if d < 0 {
		d = -d
	}
	return d
}

// PosMidValue returns the pre computed positional value for the piece on
// the given square in the midgame profile.
func PosMidValue(p Piece, sq Square) Value {
	return posMidValue[p][sq]
}

// PosEndValue returns the pre computed positional value for the piece on
// the given square in the endgame profile.
func PosEndValue(p Piece, sq Square) Value {
	return posEndValue[p][sq]
}

// SetPosValues overrides the built-in piece-square tables of one piece
// type with explicit 9x9 grids (one value per square, midgame and
// endgame), used when a custom evaluation table file is loaded. The grids
// are given from Black's point of view; White's tables are installed
// mirrored.
func SetPosValues(pt PieceType, mid, end *[SqLength]Value) {
	if !pt.IsValid() {
		return
	}
	blackPiece := MakePiece(Black, pt)
	whitePiece := MakePiece(White, pt)
	for sqi := 0; sqi < SqLength; sqi++ {
		sq := Square(sqi)
		posMidValue[blackPiece][sq] = mid[sq]
		posEndValue[blackPiece][sq] = end[sq]
		mirror := SquareOf(sq.FileOf(), Rank(8-int(sq.RankOf())))
		posMidValue[whitePiece][mirror] = mid[sq]
		posEndValue[whitePiece][mirror] = end[sq]
	}
}
