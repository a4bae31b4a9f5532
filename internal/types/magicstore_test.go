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
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicTablesRoundTrip(t *testing.T) {
	data, err := MagicTablesBytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// attacks before the round trip
	occupied := MakeSquare("5c").Bb()
	before := GetRookAttacks(MakeSquare("5e"), occupied)

	require.NoError(t, LoadMagicTablesBytes(data))

	// serialize -> deserialize -> serialize yields identical bytes
	data2, err := MagicTablesBytes()
	require.NoError(t, err)
	assert.Equal(t, data, data2)

	// and identical lookups
	assert.Equal(t, before, GetRookAttacks(MakeSquare("5e"), occupied))
	assert.Equal(t, GetLanceAttacks(Black, MakeSquare("5e"), occupied),
		GetLanceAttacks(Black, MakeSquare("5e"), occupied))
}

func TestMagicTablesRejectIncompatible(t *testing.T) {
	assert.Error(t, LoadMagicTablesBytes([]byte("garbage")))

	// a well-formed blob with a wrong version is rejected
	store := magicStore{Tag: magicStoreTag, Version: 99}
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(&store))
	assert.Error(t, LoadMagicTablesBytes(buf.Bytes()))

	// and one with a wrong tag as well
	store = magicStore{Tag: "XXXX", Version: magicStoreVersion}
	buf.Reset()
	require.NoError(t, gob.NewEncoder(&buf).Encode(&store))
	assert.Error(t, LoadMagicTablesBytes(buf.Bytes()))
}
