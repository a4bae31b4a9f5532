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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kyo-shogi/shogo/internal/position"
)

// Known-correct perft node counts for the shogi starting position, widely
// published by shogi programming projects (e.g. YaneuraOu, Apery).
//
// noinspection GoImportUsedAsName
func TestStandardPerft(t *testing.T) {
	maxDepth := 3
	var perft Perft
	assert := assert.New(t)

	var nodes = map[int]uint64{
		1: 30,
		2: 900,
		3: 25_470,
	}

	for depth := 1; depth <= maxDepth; depth++ {
		perft.StartPerft(position.StartSfen, depth)
		assert.Equal(nodes[depth], perft.Nodes)
	}
}

func TestPerftHasNoIllegalMovesAtDepth4(t *testing.T) {
	assert := assert.New(t)
	var perft Perft
	perft.StartPerft(position.StartSfen, 4)
	assert.EqualValues(719_731, perft.Nodes)
}
