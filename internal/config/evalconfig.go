//
// Shogo - USI shogi engine in Go for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package config

type evalConfiguration struct {

	// optional evaluation table file (JSON piece values and piece-square
	// grids); empty means the built-in defaults
	TablesFile string

	// evaluation values
	UseLazyEval       bool
	LazyEvalThreshold int16

	Tempo int16

	UseMaterialEval   bool
	UsePositionalEval bool

	UseAttacksInEval bool

	UseMobility   bool
	MobilityBonus int16

	UseHandEval     bool
	HandPawnBonus   int16
	HandMinorBonus  int16
	HandRookBonus   int16
	HandBishopBonus int16

	UseKingEval           bool
	KingShieldBonus       int16
	KingDangerMalus       int16
	KingDefenderBonus     int16
	KingEscapeSquareBonus int16

	// Pawn structure: a bonus per rank a board pawn has advanced from its
	// starting rank, results cached in the pawn cache.
	UsePawnEval          bool
	PawnAdvancedMidBonus int16
	PawnAdvancedEndBonus int16
	UsePawnCache         bool
	PawnCacheSize        int

	UsePromotionThreat   bool
	PromotionThreatBonus int16
}

// sets defaults which might be overwritten by config file.
func init() {

	Settings.Eval.UseLazyEval = false
	Settings.Eval.LazyEvalThreshold = 700

	Settings.Eval.Tempo = 20

	Settings.Eval.UseMaterialEval = true
	Settings.Eval.UsePositionalEval = true

	Settings.Eval.UseAttacksInEval = false

	Settings.Eval.UseMobility = false
	Settings.Eval.MobilityBonus = 3 // per piece and reachable square

	Settings.Eval.UseHandEval = true
	Settings.Eval.HandPawnBonus = 11 // a pawn in hand is worth slightly more than on the board
	Settings.Eval.HandMinorBonus = 5
	Settings.Eval.HandRookBonus = 5
	Settings.Eval.HandBishopBonus = 5

	Settings.Eval.UseKingEval = false
	Settings.Eval.KingShieldBonus = 15
	Settings.Eval.KingDangerMalus = 50
	Settings.Eval.KingDefenderBonus = 10
	Settings.Eval.KingEscapeSquareBonus = 4

	Settings.Eval.UsePawnEval = false
	Settings.Eval.PawnAdvancedMidBonus = 3
	Settings.Eval.PawnAdvancedEndBonus = 6
	Settings.Eval.UsePawnCache = true
	Settings.Eval.PawnCacheSize = 16

	Settings.Eval.UsePromotionThreat = false
	Settings.Eval.PromotionThreatBonus = 15
}

// set defaults for configurations here in case a configuration
// is not available from the config file.
func setupEval() {

}
