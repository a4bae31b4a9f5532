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

// Package openingbook reads opening book files into an internal key to
// entry map which the search queries for a book move on a position.
//
// Two formats are supported: a binary format (magic tag, version, a hash
// key index and per-position move records) and a JSON fallback with
// identical semantics. Both identify a position by its SFEN; moves carry a
// weight (popularity/strength) and an evaluation hint. The book is loaded
// once at startup and read-only thereafter.
package openingbook

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/op/go-logging"

	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
	"github.com/kyo-shogi/shogo/internal/util"
)

var log *logging.Logger

// BookFormat represents the supported book formats defined as constants.
type BookFormat uint8

// Supported book formats.
const (
	Json   BookFormat = iota
	Binary BookFormat = iota
)

// FormatFromString maps the configuration strings to a book format.
var FormatFromString = map[string]BookFormat{
	"json": Json,
	"bin":  Binary,
}

// Binary file layout constants. The magic tag and version guard against
// reading an incompatible file.
const (
	binaryMagicTag = "SGBK"
	binaryVersion  = uint32(1)
)

// BookMove is one recommended move for a book position with its weight
// (relative popularity/strength used for the weighted random selection)
// and an evaluation hint in centipawns.
type BookMove struct {
	Move   Move
	Weight uint32
	Eval   int32
}

// BookEntry represents one position of the opening book, identified by
// the position's zobrist key.
type BookEntry struct {
	Key   position.Key
	Sfen  string
	Moves []BookMove
}

// Book is the in-memory opening book: a zobrist key to entry map built
// from a book file. Create with NewBook(), load with Initialize().
type Book struct {
	bookMap     map[position.Key]BookEntry
	initialized bool
}

// NewBook creates a new empty opening book.
func NewBook() *Book {
	if log == nil {
		log = myLogging.GetLog("book")
	}
	return &Book{}
}

// Initialize reads the book file from the given path into the internal
// book map. Calling it again on an initialized book is a no-op.
func (b *Book) Initialize(bookPath string, bookFile string, format BookFormat) error {
	if b.initialized {
		return nil
	}

	startTotal := time.Now()
	file, err := util.ResolveFile(filepath.Join(bookPath, bookFile))
	if err != nil {
		return err
	}
	log.Infof("Reading opening book file: %s", file)

	data, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	b.bookMap = make(map[position.Key]BookEntry)
	switch format {
	case Json:
		err = b.readJson(data)
	case Binary:
		err = b.readBinary(data)
	default:
		err = fmt.Errorf("unsupported book format: %d", format)
	}
	if err != nil {
		b.bookMap = nil
		return err
	}

	elapsed := time.Since(startTotal)
	log.Infof("Book contains %d entries, read in %d ms", len(b.bookMap), elapsed.Milliseconds())
	b.initialized = true
	return nil
}

// NumberOfEntries returns the number of positions in the opening book.
func (b *Book) NumberOfEntries() int {
	return len(b.bookMap)
}

// GetEntry returns a copy of the entry with the corresponding key and
// whether it was found.
func (b *Book) GetEntry(key position.Key) (BookEntry, bool) {
	entry, ok := b.bookMap[key]
	return entry, ok
}

// Reset resets the opening book so it can/must be initialized again.
func (b *Book) Reset() {
	b.bookMap = nil
	b.initialized = false
}

// /////////////////////////////////////////////////
// Private
// /////////////////////////////////////////////////

// jsonEntry and jsonMove mirror the JSON book file structure. Moves are
// written in USI notation.
type jsonEntry struct {
	Sfen  string     `json:"sfen"`
	Moves []jsonMove `json:"moves"`
}

type jsonMove struct {
	Move   string `json:"move"`
	Weight uint32 `json:"weight"`
	Eval   int32  `json:"eval"`
}

// readJson decodes the JSON fallback format: an array of positions, each
// with an SFEN and a list of USI moves with weight and eval.
func (b *Book) readJson(data []byte) error {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	for _, je := range entries {
		p, err := position.NewPositionSfen(je.Sfen)
		if err != nil {
			log.Warningf("Book: skipping invalid sfen: %s", je.Sfen)
			continue
		}
		entry := BookEntry{Key: p.ZobristKey(), Sfen: je.Sfen}
		for _, jm := range je.Moves {
			move := movegen.GetMoveFromUci(p, jm.Move)
			if move == MoveNone {
				log.Warningf("Book: skipping illegal move %s in position %s", jm.Move, je.Sfen)
				continue
			}
			entry.Moves = append(entry.Moves, BookMove{Move: move.MoveOf(), Weight: jm.Weight, Eval: jm.Eval})
		}
		if len(entry.Moves) > 0 {
			b.bookMap[entry.Key] = entry
		}
	}
	return nil
}

// readBinary decodes the binary book format:
//
//	magic tag (4 bytes), version (u32), entry count (u32), index size (u32)
//	index: entry count x { key (u64), offset (u64) }
//	entries at offset: sfen length (u16), sfen bytes,
//	    move count (u16), move count x
//	    { from (u8), to (u8), piece (u8), is_drop (u8), is_promotion (u8),
//	      weight (u32), evaluation (i32) }
//
// All integers little endian. The key of the index is recomputed from the
// SFEN and entries whose key does not match are rejected.
func (b *Book) readBinary(data []byte) error {
	r := bytes.NewReader(data)

	tag := make([]byte, 4)
	if _, err := r.Read(tag); err != nil || string(tag) != binaryMagicTag {
		return errors.New("not a shogo book file (bad magic tag)")
	}
	var version, count, indexSize uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	if version != binaryVersion {
		return fmt.Errorf("incompatible book file version %d (expected %d)", version, binaryVersion)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &indexSize); err != nil {
		return err
	}

	type indexRecord struct {
		Key    uint64
		Offset uint64
	}
	index := make([]indexRecord, count)
	if err := binary.Read(r, binary.LittleEndian, &index); err != nil {
		return err
	}

	for _, rec := range index {
		if rec.Offset >= uint64(len(data)) {
			return errors.New("book file corrupt: offset beyond file size")
		}
		er := bytes.NewReader(data[rec.Offset:])

		var sfenLen uint16
		if err := binary.Read(er, binary.LittleEndian, &sfenLen); err != nil {
			return err
		}
		sfenBytes := make([]byte, sfenLen)
		if _, err := er.Read(sfenBytes); err != nil {
			return err
		}
		sfen := string(sfenBytes)

		p, err := position.NewPositionSfen(sfen)
		if err != nil {
			log.Warningf("Book: skipping invalid sfen: %s", sfen)
			continue
		}
		if uint64(p.ZobristKey()) != rec.Key {
			log.Warningf("Book: index key does not match position, skipping: %s", sfen)
			continue
		}

		var moveCount uint16
		if err := binary.Read(er, binary.LittleEndian, &moveCount); err != nil {
			return err
		}
		entry := BookEntry{Key: p.ZobristKey(), Sfen: sfen}
		for i := 0; i < int(moveCount); i++ {
			var mr struct {
				From        uint8
				To          uint8
				Piece       uint8
				IsDrop      uint8
				IsPromotion uint8
				Weight      uint32
				Evaluation  int32
			}
			if err := binary.Read(er, binary.LittleEndian, &mr); err != nil {
				return err
			}
			var move Move
			if mr.IsDrop != 0 {
				move = NewDropMove(PieceType(mr.Piece), Square(mr.To))
			} else {
				move = NewBoardMove(Square(mr.From), Square(mr.To), mr.IsPromotion != 0)
			}
			if !movegen.ValidateMove(p, move) {
				log.Warningf("Book: skipping illegal move %s in position %s", move.StringUci(), sfen)
				continue
			}
			entry.Moves = append(entry.Moves, BookMove{Move: move.MoveOf(), Weight: mr.Weight, Eval: mr.Evaluation})
		}
		if len(entry.Moves) > 0 {
			b.bookMap[entry.Key] = entry
		}
	}
	return nil
}
