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

// Package evaluator contains structures and functions to calculate the
// value of a shogi position to be used in the engine's search: material on
// the board and in hand, positional piece-square values, king safety,
// mobility and pawn structure, each as a midgame/endgame pair blended by
// game phase.
package evaluator

import (
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kyo-shogi/shogo/internal/attacks"
	"github.com/kyo-shogi/shogo/internal/config"
	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

var out = message.NewPrinter(language.Japanese)

// Evaluator represents a data structure and functionality for evaluating
// shogi positions using various evaluation heuristics like material,
// positional values, king safety, etc.
// Create a new instance with NewEvaluator().
type Evaluator struct {
	log *logging.Logger

	position        *position.Position
	gamePhaseFactor float64
	kingRing        [ColorLength]Bitboard
	allPieces       Bitboard

	score Score

	attack *attacks.Attacks

	pawnCache *pawnCache
}

// to avoid object creation and memory allocation during evaluation we
// reuse this tmp Score.
var tmpScore = Score{}

// pre-computed lazy evaluation thresholds per game phase.
var threshold [GamePhaseMax + 1]int

func init() {
	for i := 0; i <= GamePhaseMax; i++ {
		gamePhaseFactor := float64(i) / GamePhaseMax
		threshold[i] = int(config.Settings.Eval.LazyEvalThreshold) +
			int(float64(config.Settings.Eval.LazyEvalThreshold)*gamePhaseFactor)
	}
}

// NewEvaluator creates a new instance of an Evaluator.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		log:    myLogging.GetLog("eval"),
		attack: attacks.NewAttacks(),
	}
	if config.Settings.Eval.UsePawnCache {
		e.pawnCache = newPawnCache()
	} else {
		e.log.Info("Pawn Cache is disabled in configuration")
	}
	e.loadTables()
	return e
}

// InitEval initializes data structures and values which are used several
// times during one evaluation. It is called at the beginning of Evaluate()
// but can be called separately to run single evaluation terms in unit
// tests.
func (e *Evaluator) InitEval(p *position.Position) {
	e.position = p
	e.gamePhaseFactor = p.GamePhaseFactor()
	e.kingRing[Black] = GetStepAttacks(Black, King, p.KingSquare(Black))
	e.kingRing[White] = GetStepAttacks(White, King, p.KingSquare(White))
	e.allPieces = p.OccupiedAll()

	e.score.MidGameValue = 0
	e.score.EndGameValue = 0

	if config.Settings.Eval.UseAttacksInEval {
		e.attack.Clear()
	}
}

// Evaluate calculates a value for the shogi position using various
// evaluation heuristics. The returned value is in centipawn-like units
// from the view of the side to move. It is a pure function of the
// position and the loaded tables: identical positions yield identical
// scores.
func (e *Evaluator) Evaluate(p *position.Position) Value {
	e.InitEval(p)
	return e.evaluate()
}

// value adds up the mid and end game scores after multiplying them with
// the game phase factor.
func (e *Evaluator) value() Value {
	return e.score.ValueFromScore(e.gamePhaseFactor)
}

// internal evaluation summing up all partial evaluations. Assumes that
// InitEval() has been called beforehand.
//
// Each term is evaluated from Black's point of view (Black is the side
// moving first in shogi); before returning, the value is flipped to the
// view of the side to move.
func (e *Evaluator) evaluate() Value {

	// Material - board pieces plus hand pieces, tracked incrementally by
	// the position
	if config.Settings.Eval.UseMaterialEval {
		e.score.MidGameValue = int(e.position.Material(Black) - e.position.Material(White))
		e.score.EndGameValue = e.score.MidGameValue
	}

	// hand pieces carry a premium or discount relative to their board
	// value - a pawn in hand is a tempo and a weapon at once
	if config.Settings.Eval.UseHandEval {
		e.score.Add(*e.evalHand(Black))
		e.score.Sub(*e.evalHand(White))
	}

	// positional piece-square values
	if config.Settings.Eval.UsePositionalEval {
		e.score.MidGameValue += int(e.position.PsqMidValue(Black) - e.position.PsqMidValue(White))
		e.score.EndGameValue += int(e.position.PsqEndValue(Black) - e.position.PsqEndValue(White))
	}

	// tempo bonus for the side to move
	if e.position.NextPlayer() == Black {
		e.score.MidGameValue += int(config.Settings.Eval.Tempo)
	} else {
		e.score.MidGameValue -= int(config.Settings.Eval.Tempo)
	}

	// early exit when the material/positional difference is already far
	// beyond the lazy threshold - the remaining terms won't turn it around
	if config.Settings.Eval.UseLazyEval {
		valueFromScore := e.value()
		th := threshold[e.position.GamePhase()]
		if int(valueFromScore) > th || int(valueFromScore) < -th {
			return e.finalEval(valueFromScore)
		}
	}

	// pawn structure
	if config.Settings.Eval.UsePawnEval {
		e.score.Add(*e.evaluatePawns())
	}

	// all attacks of both sides - expensive, computed once and shared by
	// mobility and king safety
	if config.Settings.Eval.UseAttacksInEval {
		e.attack.Compute(e.position)
		if config.Settings.Eval.UseMobility {
			mob := (e.attack.Mobility[Black] - e.attack.Mobility[White]) * int(config.Settings.Eval.MobilityBonus)
			e.score.MidGameValue += mob
			e.score.EndGameValue += mob / 2
		}
	}

	// king safety
	if config.Settings.Eval.UseKingEval {
		e.score.Add(*e.evalKing(Black))
		e.score.Sub(*e.evalKing(White))
	}

	return e.finalEval(e.value())
}

// finalEval flips the value computed from Black's view to the view of the
// side to move.
func (e *Evaluator) finalEval(value Value) Value {
	if e.position.NextPlayer() == Black {
		return value
	}
	return -value
}

// evalHand scores the pieces color c holds in hand beyond their raw
// material value (which is part of Material already): hand pieces are
// flexible and get a small per-type premium.
func (e *Evaluator) evalHand(c Color) *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0

	for _, pt := range HandPieceTypes() {
		count := e.position.HandCount(c, pt)
		if count == 0 {
			continue
		}
		var bonus int
		switch pt {
		case Pawn:
			bonus = int(config.Settings.Eval.HandPawnBonus)
		case Rook:
			bonus = int(config.Settings.Eval.HandRookBonus)
		case Bishop:
			bonus = int(config.Settings.Eval.HandBishopBonus)
		default:
			bonus = int(config.Settings.Eval.HandMinorBonus)
		}
		tmpScore.MidGameValue += count * bonus
		// in the endgame a piece in hand is even more dangerous - every
		// drop is a potential mating attack
		tmpScore.EndGameValue += count * bonus * 3 / 2
	}
	return &tmpScore
}

// evalKing scores king safety for color c: the shelter of own pieces
// around the king, the balance of attackers and defenders in the king
// ring, and free escape squares.
func (e *Evaluator) evalKing(c Color) *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0
	them := c.Flip()
	ring := e.kingRing[c]

	// shelter: own pieces on the king ring squares - a castled shogi king
	// hides behind generals and pawns
	shelterCount := ring.And(e.position.OccupiedBb(c)).PopCount()
	tmpScore.MidGameValue += shelterCount * int(config.Settings.Eval.KingShieldBonus)
	tmpScore.EndGameValue += shelterCount * int(config.Settings.Eval.KingShieldBonus) / 2

	// attacker/defender balance and escape squares need the attack maps
	if config.Settings.Eval.UseAttacksInEval {
		enemyAttacks := ring.And(e.attack.All[them]).PopCount()
		ourDefence := ring.And(e.attack.All[c]).PopCount()
		if enemyAttacks > ourDefence {
			tmpScore.MidGameValue -= (enemyAttacks - ourDefence) * int(config.Settings.Eval.KingDangerMalus)
			tmpScore.EndGameValue -= (enemyAttacks - ourDefence) * int(config.Settings.Eval.KingDangerMalus)
		} else {
			tmpScore.MidGameValue += (ourDefence - enemyAttacks) * int(config.Settings.Eval.KingDefenderBonus)
			tmpScore.EndGameValue += (ourDefence - enemyAttacks) * int(config.Settings.Eval.KingDefenderBonus)
		}

		escapes := ring.AndNot(e.position.OccupiedBb(c)).AndNot(e.attack.All[them]).PopCount()
		tmpScore.MidGameValue += escapes * int(config.Settings.Eval.KingEscapeSquareBonus)
		tmpScore.EndGameValue += escapes * int(config.Settings.Eval.KingEscapeSquareBonus)
	}

	return &tmpScore
}

// Report prints a report about the evaluation terms of the current
// position. Used in debugging and by the usi "eval" helper command.
func (e *Evaluator) Report(p *position.Position) string {
	var report strings.Builder
	value := e.Evaluate(p)
	report.WriteString("Evaluation Report\n")
	report.WriteString("=============================================\n")
	report.WriteString(out.Sprintf("Position  : %s\n", p.StringSfen()))
	report.WriteString(out.Sprintf("%s\n", p.StringBoard()))
	report.WriteString(out.Sprintf("GamePhase Factor: %f\n", p.GamePhaseFactor()))
	report.WriteString(out.Sprintf("Material  : %d\n", p.Material(Black)-p.Material(White)))
	report.WriteString(out.Sprintf("Positional: mid %d end %d\n",
		p.PsqMidValue(Black)-p.PsqMidValue(White), p.PsqEndValue(Black)-p.PsqEndValue(White)))
	report.WriteString(out.Sprintf("Eval value: %d (from the view of next player = %s)\n",
		value, p.NextPlayer().String()))
	return report.String()
}
