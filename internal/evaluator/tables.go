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
	"encoding/json"
	"io/ioutil"

	"github.com/kyo-shogi/shogo/internal/config"
	. "github.com/kyo-shogi/shogo/internal/types"
	"github.com/kyo-shogi/shogo/internal/util"
)

// tableFile mirrors the JSON evaluation table format: material values per
// piece-type letter and optional 81-entry piece-square grids (from Black's
// point of view, square order file-major as used internally) for midgame
// and endgame.
type tableFile struct {
	PieceValues map[string]int16   `json:"pieceValues"`
	PstMid      map[string][]int16 `json:"pstMid"`
	PstEnd      map[string][]int16 `json:"pstEnd"`
}

// tableLetters maps the piece letters of a table file to piece types.
var tableLetters = map[string]PieceType{
	"P": Pawn, "L": Lance, "N": Knight, "S": Silver, "G": Gold,
	"B": Bishop, "R": Rook,
	"+P": ProPawn, "+L": ProLance, "+N": ProKnight, "+S": ProSilver,
	"+B": Horse, "+R": Dragon,
}

// loadTables reads the configured evaluation table file and installs its
// values over the built-in defaults. A missing or broken file is logged
// and the defaults stay in place.
func (e *Evaluator) loadTables() {
	file := config.Settings.Eval.TablesFile
	if file == "" {
		return
	}
	path, err := util.ResolveFile(file)
	if err != nil {
		e.log.Warningf("Evaluation tables %s not found, using built-in defaults", file)
		return
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		e.log.Warningf("Evaluation tables %s not readable (%s), using built-in defaults", path, err)
		return
	}

	var tf tableFile
	if err := json.Unmarshal(data, &tf); err != nil {
		e.log.Warningf("Evaluation tables %s invalid (%s), using built-in defaults", path, err)
		return
	}

	for letter, value := range tf.PieceValues {
		pt, ok := tableLetters[letter]
		if !ok {
			e.log.Warningf("Evaluation tables: unknown piece letter %s", letter)
			continue
		}
		SetPieceValue(pt, Value(value))
	}

	for letter, grid := range tf.PstMid {
		pt, ok := tableLetters[letter]
		if !ok || len(grid) != SqLength {
			e.log.Warningf("Evaluation tables: bad midgame grid for %s", letter)
			continue
		}
		end, hasEnd := tf.PstEnd[letter]
		if !hasEnd || len(end) != SqLength {
			// without an endgame grid the midgame grid serves both phases
			end = grid
		}
		var mid81, end81 [SqLength]Value
		for i := 0; i < SqLength; i++ {
			mid81[i] = Value(grid[i])
			end81[i] = Value(end[i])
		}
		SetPosValues(pt, &mid81, &end81)
	}

	e.log.Infof("Evaluation tables loaded from %s", path)
}
