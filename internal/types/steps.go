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

// stepAttacks holds precomputed pseudo-attacks (as if on an empty board) for
// every piece type whose movement is a fixed set of single steps rather than
// a sliding ray: Pawn, Knight, Silver, Gold (and the four promoted minor
// pieces, which all move like Gold), and King. Indexed by color (pawn,
// lance-like and knight-like steps point in the opposite direction for each
// side) and square.
var stepAttacks [ColorLength][PtLength][SqLength]Bitboard

// goldDirections enumerates a Gold general's eight candidate directions minus the
// two "backward diagonal" squares it cannot reach, expressed for Black (who
// advances toward rank 1); White's table is built by mirroring the rank.
var goldDirections = [6]Direction{North, South, East, West, Northeast, Northwest}

// silverDirections enumerates a Silver general's five directions for Black.
var silverDirections = [5]Direction{North, Southeast, Southwest, Northeast, Northwest}

// kingDirections enumerates all eight directions.
var kingDirections = [8]Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest}

func initStepAttacks() {
	for c := Black; c <= White; c++ {
		for sqI := 0; sqI < SqLength; sqI++ {
			sq := Square(sqI)
			stepAttacks[c][Pawn][sq] = stepMask(sq, []Direction{forwardFor(c, North)})
			stepAttacks[c][Knight][sq] = knightMask(sq, c)
			stepAttacks[c][Silver][sq] = stepMask(sq, mirrorDirs(silverDirections[:], c))
			gold := stepMask(sq, mirrorDirs(goldDirections[:], c))
			stepAttacks[c][Gold][sq] = gold
			stepAttacks[c][ProPawn][sq] = gold
			stepAttacks[c][ProLance][sq] = gold
			stepAttacks[c][ProKnight][sq] = gold
			stepAttacks[c][ProSilver][sq] = gold
			stepAttacks[c][King][sq] = stepMask(sq, kingDirections[:])
		}
	}
}

// forwardFor mirrors a Black-relative direction to White's point of view:
// Black's North (toward rank 1) becomes White's South (toward rank 9).
func forwardFor(c Color, d Direction) Direction {
	if c == Black {
		return d
	}
	return mirrorDirection(d)
}

func mirrorDirection(d Direction) Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case Northeast:
		return Southeast
	case Northwest:
		return Southwest
	case Southeast:
		return Northeast
	case Southwest:
		return Northwest
	default:
		return d
	}
}

func mirrorDirs(dirs []Direction, c Color) []Direction {
	out := make([]Direction, len(dirs))
	for i, d := range dirs {
		out[i] = forwardFor(c, d)
	}
	return out
}

func stepMask(sq Square, dirs []Direction) Bitboard {
	var bb Bitboard
	for _, d := range dirs {
		if to := sq.To(d); to != SqNone {
			bb.PushSquare(to)
		}
	}
	return bb
}

// knightMask returns the two squares (if on-board) a shogi Knight of color c
// can jump to from sq: two files over, one rank forward (no "one-file"
// neighbour as in chess; shogi's Knight jumps only forward).
func knightMask(sq Square, c Color) Bitboard {
	f := int(sq.FileOf())
	r := int(sq.RankOf())
	dr := -2
	if c == White {
		dr = 2
	}
	var bb Bitboard
	for _, df := range [2]int{-1, 1} {
		nf, nr := f+df, r+dr
		if nf >= 0 && nf <= 8 && nr >= 0 && nr <= 8 {
			bb.PushSquare(SquareOf(File(nf), Rank(nr)))
		}
	}
	return bb
}

// GetStepAttacks returns the pseudo-attack bitboard (empty-board) for a
// non-sliding piece type pt of color c on square sq.
func GetStepAttacks(c Color, pt PieceType, sq Square) Bitboard {
	return stepAttacks[c][pt][sq]
}

// GetAttacksBb returns all squares attacked by a piece of type pt and color
// c placed on sq, given the board's occupancy. Sliding pieces (Lance,
// Bishop, Rook) consult the magic tables; Horse and Dragon add their
// promoted king-step addendum to the Bishop/Rook slide; everything else is
// a fixed-step lookup.
func GetAttacksBb(c Color, pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Lance:
		return GetLanceAttacks(c, sq, occupied)
	case Bishop:
		return GetBishopAttacks(sq, occupied)
	case Rook:
		return GetRookAttacks(sq, occupied)
	case Horse:
		return GetBishopAttacks(sq, occupied).Or(stepAttacks[c][King][sq])
	case Dragon:
		return GetRookAttacks(sq, occupied).Or(stepAttacks[c][King][sq])
	default:
		return stepAttacks[c][pt][sq]
	}
}
