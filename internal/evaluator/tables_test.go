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

package evaluator

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
	. "github.com/kyo-shogi/shogo/internal/types"
)

func TestLoadTablesOverridesPieceValue(t *testing.T) {
	dir, err := ioutil.TempDir("", "shogo-tables")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "tables.json")
	require.NoError(t, ioutil.WriteFile(file, []byte(`{"pieceValues": {"P": 95}}`), 0644))

	savedFile := config.Settings.Eval.TablesFile
	savedValue := Pawn.ValueOf()
	defer func() {
		config.Settings.Eval.TablesFile = savedFile
		SetPieceValue(Pawn, savedValue)
	}()

	config.Settings.Eval.TablesFile = file
	NewEvaluator()
	assert.Equal(t, Value(95), Pawn.ValueOf())
}

func TestLoadTablesMissingFileKeepsDefaults(t *testing.T) {
	savedFile := config.Settings.Eval.TablesFile
	defer func() { config.Settings.Eval.TablesFile = savedFile }()

	before := Rook.ValueOf()
	config.Settings.Eval.TablesFile = "no-such-tables.json"
	NewEvaluator()
	assert.Equal(t, before, Rook.ValueOf())
}

func TestLoadTablesInstallsPst(t *testing.T) {
	dir, err := ioutil.TempDir("", "shogo-tables")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// a flat grid of 7 for the pawn, midgame only (endgame inherits it)
	grid := "["
	for i := 0; i < 81; i++ {
		if i > 0 {
			grid += ","
		}
		grid += "7"
	}
	grid += "]"
	file := filepath.Join(dir, "tables.json")
	require.NoError(t, ioutil.WriteFile(file, []byte(`{"pstMid": {"P": `+grid+`}}`), 0644))

	savedFile := config.Settings.Eval.TablesFile
	defer func() { config.Settings.Eval.TablesFile = savedFile }()

	config.Settings.Eval.TablesFile = file
	NewEvaluator()
	assert.Equal(t, Value(7), PosMidValue(MakePiece(Black, Pawn), MakeSquare("7g")))
	assert.Equal(t, Value(7), PosEndValue(MakePiece(White, Pawn), MakeSquare("3c")))
}
