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

// Direction is one of the eight compass rays used to walk the board one
// square at a time when building attack masks. North is toward rank 1
// (Black's forward direction), South toward rank 9 (White's forward
// direction).
type Direction int8

const (
	North Direction = iota
	South
	East
	West
	Northeast
	Northwest
	Southeast
	Southwest
)

// delta returns the (file, rank) offset for one step in direction d.
func (d Direction) delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	case Northeast:
		return 1, -1
	case Northwest:
		return -1, -1
	case Southeast:
		return 1, 1
	case Southwest:
		return -1, 1
	}
	return 0, 0
}

// rookDirections are the four rays a rook (and lance/dragon) slides along.
var rookDirections = [4]Direction{North, South, East, West}

// bishopDirections are the four rays a bishop (and horse) slides along.
var bishopDirections = [4]Direction{Northeast, Northwest, Southeast, Southwest}

// forward returns the single forward direction for a lance/pawn of color c.
func forward(c Color) Direction {
	if c == Black {
		return North
	}
	return South
}
