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

import "math/bits"

// Magic holds the fancy-magic-bitboard lookup data for a single square of a
// single sliding piece kind (rook or bishop). Construction follows the
// Stockfish "fancy magics" technique (see https://www.chessprogramming.org/Magic_Bitboards),
// adapted here to an 81-square, two-word Bitboard by first compacting the
// masked occupancy of both words into one machine word (a software
// PEXT-equivalent, see extractBits) before the multiply-shift hash.
type Magic struct {
	Mask    Bitboard
	Number  uint64
	Attacks []Bitboard
	Shift   uint
}

// index calculates the index in the attacks table for the given occupancy.
func (m *Magic) index(occupied Bitboard) uint {
	masked := occupied.And(m.Mask)
	merged := extractBits(masked.Lo, m.Mask.Lo) | extractBits(masked.Hi, m.Mask.Hi)<<bits.OnesCount64(m.Mask.Lo)
	return uint((merged * m.Number) >> m.Shift)
}

// extractBits is a software PEXT: it packs the bits of value selected by
// mask into the low bits of the result, in mask-bit order. Hardware has an
// instruction for this; the loop here produces the identical bijection and
// only runs at table-build time and at lookup time, never inside the
// magic-number search's innermost counting loop.
func extractBits(value, mask uint64) uint64 {
	var result uint64
	var pos uint
	for mask != 0 {
		tz := bits.TrailingZeros64(mask)
		if value&(uint64(1)<<uint(tz)) != 0 {
			result |= uint64(1) << pos
		}
		pos++
		mask &= mask - 1
	}
	return result
}

// bbSub implements the Carry-Rippler subtraction b - mask across the two
// Bitboard limbs with explicit borrow propagation, so the classic subset
// enumeration trick `b = (b - mask) & mask` stays valid when mask (and
// therefore b) has bits set in both the low and high word.
func bbSub(a, m Bitboard) Bitboard {
	lo, borrow := bits.Sub64(a.Lo, m.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, m.Hi, borrow)
	return Bitboard{Lo: lo, Hi: hi}
}

var rookMagics [SqLength]Magic
var bishopMagics [SqLength]Magic
var rookTable []Bitboard
var bishopTable []Bitboard

// lanceAttacks[color][square] is indexed directly (PEXT-style, no
// multiplicative hash) by the compacted occupancy along the lance's single
// forward ray - that ray has at most 7 non-edge squares, small enough for a
// perfect direct index without searching for a magic number.
var lanceAttacks [ColorLength][SqLength][]Bitboard
var lanceMasks [ColorLength][SqLength]Bitboard

// initMagics computes all rook, bishop and lance attack tables at startup.
func initMagics() {
	rookTable = make([]Bitboard, 0, SqLength*108)
	bishopTable = make([]Bitboard, 0, SqLength*24)
	initSliderMagics(&rookMagics, rookDirections, &rookTable)
	initSliderMagics(&bishopMagics, bishopDirections, &bishopTable)
	initLanceAttacks()
}

// slidingAttack calculates sliding attacks along the given directions for
// the given square and board occupation. Loop in loop, not efficient, but
// only used while building the tables above, never during search.
func slidingAttack(directions [4]Direction, sq Square, occupied Bitboard) Bitboard {
	var attack Bitboard
	for _, d := range directions {
		s := sq
		for {
			next := s.To(d)
			if next == SqNone {
				break
			}
			attack.PushSquare(next)
			if occupied.Has(next) {
				break
			}
			s = next
		}
	}
	return attack
}

// edgesOf returns the board-border squares irrelevant to sq's sliding
// attacks regardless of occupancy: a slider from sq always reaches (or
// stops at) the border, so whether the border square is occupied never
// changes the attack set. Excluding it from the relevant blocker mask
// shrinks the table size substantially.
func edgesOf(sq Square) Bitboard {
	rankEdges := rankBb[Rank1].Or(rankBb[Rank9]).AndNot(sq.RankOf().Bb())
	fileEdges := fileBb[File1].Or(fileBb[File9]).AndNot(sq.FileOf().Bb())
	return rankEdges.Or(fileEdges)
}

// magicSeeds are the optimal PrnG seeds to pick the correct magics in the
// shortest time, one per rank.
var magicSeeds = [9]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255, 9012}

func initSliderMagics(magics *[SqLength]Magic, directions [4]Direction, table *[]Bitboard) {
	var occupancy [1 << 14]Bitboard
	var reference [1 << 14]Bitboard
	var epoch [1 << 14]int
	cnt := 0

	for sqi := 0; sqi < SqLength; sqi++ {
		sq := Square(sqi)
		m := &magics[sq]
		m.Mask = slidingAttack(directions, sq, BbZero).AndNot(edgesOf(sq))
		popcnt := m.Mask.PopCount()
		m.Shift = uint(64 - popcnt)

		// Use the Carry-Rippler trick to enumerate all subsets of m.Mask and
		// store the corresponding sliding attack bitboard in reference[].
		size := 0
		var b Bitboard
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			size++
			b = bbSub(b, m.Mask).And(m.Mask)
			if b.IsEmpty() {
				break
			}
		}

		rng := newPrnG(magicSeeds[sq.RankOf()])

		baseLen := len(*table)
		*table = append(*table, make([]Bitboard, 1<<uint(popcnt))...)
		m.Attacks = (*table)[baseLen:]

		// Find a magic for square sq picking up an (almost) random number
		// until one passes the verification test; build the attacks table
		// for sq as a side effect of verifying the candidate.
		for i := 0; i < size; {
			var candidate uint64
			for {
				candidate = rng.sparseRand()
				if bits.OnesCount64((candidate*m.Mask.Lo)>>56) >= 6 {
					break
				}
			}
			m.Number = candidate

			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.Attacks[idx] = reference[i]
				} else if m.Attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// initLanceAttacks builds the direct (non-magic) per-color lance attack
// tables: a lance only ever slides one direction, so its relevant-blocker
// mask is small enough to index without a multiplicative hash.
func initLanceAttacks() {
	for c := Black; c < ColorLength; c++ {
		dir := forward(c)
		dirs := [4]Direction{dir, dir, dir, dir}
		for sqi := 0; sqi < SqLength; sqi++ {
			sq := Square(sqi)
			mask := slidingAttack(dirs, sq, BbZero)
			if last := farthest(sq, dir); last != SqNone {
				mask = mask.AndNot(last.Bb())
			}
			lanceMasks[c][sqi] = mask
			popcnt := mask.PopCount()
			table := make([]Bitboard, 1<<uint(popcnt))
			var occ Bitboard
			for {
				idx := extractBits(occ.Lo, mask.Lo) | extractBits(occ.Hi, mask.Hi)<<bits.OnesCount64(mask.Lo)
				table[idx] = slidingAttack(dirs, sq, occ)
				occ = bbSub(occ, mask).And(mask)
				if occ.IsEmpty() {
					break
				}
			}
			lanceAttacks[c][sqi] = table
		}
	}
}

// farthest returns the last square reachable from sq walking in direction d
// to the edge of the board, or SqNone if sq is already on that edge.
func farthest(sq Square, d Direction) Square {
	s := sq
	last := SqNone
	for {
		next := s.To(d)
		if next == SqNone {
			return last
		}
		last = next
		s = next
	}
}

// GetLanceAttacks returns the lance attack bitboard for color c at sq given
// the current board occupancy.
func GetLanceAttacks(c Color, sq Square, occupied Bitboard) Bitboard {
	mask := lanceMasks[c][sq]
	masked := occupied.And(mask)
	idx := extractBits(masked.Lo, mask.Lo) | extractBits(masked.Hi, mask.Hi)<<bits.OnesCount64(mask.Lo)
	return lanceAttacks[c][sq][idx]
}

// GetRookAttacks returns the rook attack bitboard at sq given occupancy. A
// dragon's sliding component reuses this lookup; its extra single-step
// diagonal move is added separately by the attacks package.
func GetRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.Attacks[m.index(occupied)]
}

// GetBishopAttacks returns the bishop attack bitboard at sq given occupancy.
// A horse's sliding component reuses this lookup; its extra single-step
// orthogonal move is added separately by the attacks package.
func GetBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.Attacks[m.index(occupied)]
}

// PrnG is the xorshift64star pseudo-random generator used only to seed the
// magic-number search.
// This class is based on original code written and dedicated to the public
// domain by Sebastiano Vigna (2014). It has the following characteristics:
//   - Outputs 64-bit numbers
//   - Passes Dieharder and SmallCrush test batteries
//   - Does not require warm-up, no zeroland to escape
//   - Internal state is a single 64-bit integer
//   - Period is 2^64 - 1
type PrnG struct {
	s uint64
}

// newPrnG creates a new instance of the pseudo random generator.
func newPrnG(seed uint64) *PrnG {
	return &PrnG{s: seed}
}

func (r *PrnG) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// sparseRand is a special generator used to fast-init magic numbers. Output
// values only have 1/8th of their bits set on average.
func (r *PrnG) sparseRand() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}
