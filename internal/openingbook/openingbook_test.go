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

package openingbook

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	code := m.Run()
	os.Exit(code)
}

const testJsonBook = `[
  {
    "sfen": "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1",
    "moves": [
      {"move": "7g7f", "weight": 100, "eval": 25},
      {"move": "2g2f", "weight": 80, "eval": 20}
    ]
  },
  {
    "sfen": "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/2PPPPPPP/PB5R1/LNSGKGSNL w - 2",
    "moves": [
      {"move": "3c3d", "weight": 50, "eval": 0}
    ]
  }
]`

func writeTempBook(t *testing.T, name, content string) (dir string, file string) {
	t.Helper()
	dir, err := ioutil.TempDir("", "shogo-book")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	return dir, name
}

func TestJsonBook(t *testing.T) {
	dir, file := writeTempBook(t, "book.json", testJsonBook)

	book := NewBook()
	require.NoError(t, book.Initialize(dir, file, Json))
	assert.Equal(t, 2, book.NumberOfEntries())

	p := position.NewPosition()
	entry, found := book.GetEntry(p.ZobristKey())
	require.True(t, found)
	require.Len(t, entry.Moves, 2)
	assert.Equal(t, "7g7f", entry.Moves[0].Move.StringUci())
	assert.EqualValues(t, 100, entry.Moves[0].Weight)
	assert.EqualValues(t, 25, entry.Moves[0].Eval)

	// every book move must be legal in its position
	for _, bm := range entry.Moves {
		assert.True(t, movegen.ValidateMove(p, bm.Move))
	}

	// unknown position misses
	_, found = book.GetEntry(p.ZobristKey() ^ 0xABCDEF)
	assert.False(t, found)
}

func TestJsonBookSkipsIllegalMoves(t *testing.T) {
	bad := `[{"sfen": "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1",
	          "moves": [{"move": "7g7e", "weight": 1, "eval": 0},
	                    {"move": "7g7f", "weight": 1, "eval": 0}]}]`
	dir, file := writeTempBook(t, "bad.json", bad)

	book := NewBook()
	require.NoError(t, book.Initialize(dir, file, Json))
	p := position.NewPosition()
	entry, found := book.GetEntry(p.ZobristKey())
	require.True(t, found)
	assert.Len(t, entry.Moves, 1)
	assert.Equal(t, "7g7f", entry.Moves[0].Move.StringUci())
}

// buildBinaryBook writes the binary book layout for the given entries:
// tag, version, count, index size, key/offset index, then the entries.
func buildBinaryBook(t *testing.T, entries []jsonEntry) []byte {
	t.Helper()

	type rawMove struct {
		From        uint8
		To          uint8
		Piece       uint8
		IsDrop      uint8
		IsPromotion uint8
		Weight      uint32
		Evaluation  int32
	}

	var entryBufs [][]byte
	var keys []uint64
	for _, je := range entries {
		p, err := position.NewPositionSfen(je.Sfen)
		require.NoError(t, err)
		keys = append(keys, uint64(p.ZobristKey()))

		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(je.Sfen))))
		buf.WriteString(je.Sfen)
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(je.Moves))))
		for _, jm := range je.Moves {
			m := movegen.GetMoveFromUci(p, jm.Move)
			require.NotEqual(t, MoveNone, m)
			rm := rawMove{Weight: jm.Weight, Evaluation: jm.Eval}
			if m.IsDrop() {
				rm.IsDrop = 1
				rm.Piece = uint8(m.DropPieceType())
				rm.To = uint8(m.To())
			} else {
				rm.From = uint8(m.From())
				rm.To = uint8(m.To())
				if m.IsPromotion() {
					rm.IsPromotion = 1
				}
			}
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, rm))
		}
		entryBufs = append(entryBufs, buf.Bytes())
	}

	var out bytes.Buffer
	out.WriteString(binaryMagicTag)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, binaryVersion))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, uint32(len(entries))))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, uint32(len(entries))))

	// the index is followed directly by the entries
	offset := uint64(out.Len()) + uint64(len(entries))*16
	for i, key := range keys {
		require.NoError(t, binary.Write(&out, binary.LittleEndian, key))
		require.NoError(t, binary.Write(&out, binary.LittleEndian, offset))
		offset += uint64(len(entryBufs[i]))
	}
	for _, eb := range entryBufs {
		out.Write(eb)
	}
	return out.Bytes()
}

func TestBinaryBook(t *testing.T) {
	entries := []jsonEntry{
		{
			Sfen: position.StartSfen,
			Moves: []jsonMove{
				{Move: "7g7f", Weight: 100, Eval: 25},
				{Move: "2g2f", Weight: 80, Eval: 20},
			},
		},
	}
	data := buildBinaryBook(t, entries)
	dir, file := writeTempBook(t, "book.bin", string(data))

	book := NewBook()
	require.NoError(t, book.Initialize(dir, file, Binary))
	assert.Equal(t, 1, book.NumberOfEntries())

	p := position.NewPosition()
	entry, found := book.GetEntry(p.ZobristKey())
	require.True(t, found)
	require.Len(t, entry.Moves, 2)
	assert.Equal(t, "7g7f", entry.Moves[0].Move.StringUci())
	assert.EqualValues(t, 100, entry.Moves[0].Weight)
}

func TestBinaryBookRejectsBadMagic(t *testing.T) {
	dir, file := writeTempBook(t, "bad.bin", "XXXXsomething")
	book := NewBook()
	assert.Error(t, book.Initialize(dir, file, Binary))
}

func TestBinaryBookRejectsWrongVersion(t *testing.T) {
	var out bytes.Buffer
	out.WriteString(binaryMagicTag)
	_ = binary.Write(&out, binary.LittleEndian, uint32(99))
	_ = binary.Write(&out, binary.LittleEndian, uint32(0))
	_ = binary.Write(&out, binary.LittleEndian, uint32(0))
	dir, file := writeTempBook(t, "wrongver.bin", out.String())

	book := NewBook()
	assert.Error(t, book.Initialize(dir, file, Binary))
}

func TestBookReset(t *testing.T) {
	dir, file := writeTempBook(t, "book.json", testJsonBook)
	book := NewBook()
	require.NoError(t, book.Initialize(dir, file, Json))
	require.Equal(t, 2, book.NumberOfEntries())

	book.Reset()
	assert.Equal(t, 0, book.NumberOfEntries())

	// and it can be initialized again
	require.NoError(t, book.Initialize(dir, file, Json))
	assert.Equal(t, 2, book.NumberOfEntries())
}
