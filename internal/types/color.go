/*
 * Shogo - USI shogi engine in Go for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, To any person obtaining a copy
 * of this software and associated documentation files (the "Software"), To deal
 * in the Software without restriction, including without limitation the rights
 * To use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and To permit persons To whom the Software is
 * furnished To do so, subject To the following conditions:
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

import "fmt"

// Color represents constants for the two sides, Black and White.
// Black moves first in shogi, matching the SFEN "b"/"w" side-to-move flag.
type Color uint8

// Constants for each color
const (
	Black       Color = 0
	White       Color = 1
	ColorLength       = 2
)

// Flip returns the opposite color.
func (c Color) Flip() Color {
	return c ^ 1
}

// IsValid checks if c represents a valid color.
func (c Color) IsValid() bool {
	return c < ColorLength
}

// Str returns a string representation of color as "b" or "w" (SFEN style).
func (c Color) Str() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	default:
		panic(fmt.Sprintf("Invalid color %d", c))
	}
}

func (c Color) String() string {
	return c.Str()
}

// moveDirection is -1 for Black (advancing from rank 9 toward rank 1) and
// +1 for White (advancing from rank 1 toward rank 9).
var moveDirection = [ColorLength]int{-1, 1}

// MoveDirection returns -1 for Black and +1 for White, the sign used when
// computing "forward" ranks for pawns, lances, and knights.
func (c Color) MoveDirection() int {
	return moveDirection[c]
}
