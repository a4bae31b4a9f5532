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
	"errors"
	"fmt"
	"io/ioutil"
)

// The magic attack tables are deterministic but not free to build. For a
// warm start they can be serialized to an opaque, version-tagged blob and
// read back on the next run; an incompatible version is rejected and the
// caller falls back to the normal in-process construction.

const (
	magicStoreTag     = "SGMT"
	magicStoreVersion = uint32(1)
)

// magicStore is the gob payload of a serialized table set.
type magicStore struct {
	Tag     string
	Version uint32

	RookMagics   [SqLength]Magic
	BishopMagics [SqLength]Magic
	LanceAttacks [ColorLength][SqLength][]Bitboard
	LanceMasks   [ColorLength][SqLength]Bitboard
}

// MagicTablesBytes serializes the current magic attack tables.
func MagicTablesBytes() ([]byte, error) {
	store := magicStore{
		Tag:          magicStoreTag,
		Version:      magicStoreVersion,
		RookMagics:   rookMagics,
		BishopMagics: bishopMagics,
		LanceAttacks: lanceAttacks,
		LanceMasks:   lanceMasks,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&store); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadMagicTablesBytes replaces the magic attack tables with a previously
// serialized set. Data with a wrong tag or version is rejected and the
// current tables stay untouched.
func LoadMagicTablesBytes(data []byte) error {
	var store magicStore
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&store); err != nil {
		return err
	}
	if store.Tag != magicStoreTag {
		return errors.New("not a magic table file (bad tag)")
	}
	if store.Version != magicStoreVersion {
		return fmt.Errorf("incompatible magic table version %d (expected %d)", store.Version, magicStoreVersion)
	}
	rookMagics = store.RookMagics
	bishopMagics = store.BishopMagics
	lanceAttacks = store.LanceAttacks
	lanceMasks = store.LanceMasks
	return nil
}

// SaveMagicTables writes the serialized tables to path.
func SaveMagicTables(path string) error {
	data, err := MagicTablesBytes()
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

// LoadMagicTables reads serialized tables from path, see
// LoadMagicTablesBytes.
func LoadMagicTables(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return LoadMagicTablesBytes(data)
}
