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
	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// evaluatePawns scores the board pawn structure of both sides from Black's
// point of view. The result depends only on the two pawn bitboards, so it
// is cached under a pawn-structure key - pawn structure changes far less
// often than the full position.
func (e *Evaluator) evaluatePawns() *Score {
	tmpScore.MidGameValue = 0
	tmpScore.EndGameValue = 0

	if config.Settings.Eval.UsePawnCache && e.pawnCache != nil {
		if entry := e.pawnCache.getEntry(pawnKeyOf(e.position)); entry != nil {
			tmpScore.MidGameValue = entry.score.MidGameValue
			tmpScore.EndGameValue = entry.score.EndGameValue
			return &tmpScore
		}
	}

	// no cache hit - calculate
	tmpScore.Add(*pawnStructure(e.position, Black))
	tmpScore.Sub(*pawnStructure(e.position, White))

	if config.Settings.Eval.UsePawnCache && e.pawnCache != nil {
		e.pawnCache.put(pawnKeyOf(e.position), &tmpScore)
	}

	return &tmpScore
}

// pawnScore is a second scratch score so pawnStructure results can be
// added and subtracted into tmpScore without aliasing it.
var pawnScore = Score{}

// pawnStructure scores one side's pawns: advancement toward the promotion
// zone and the threat of pawns already inside it. There are no doubled
// pawns to punish in shogi - nifu forbids them outright - and no
// isolated-pawn concept worth scoring on a 9x9 board with drops.
func pawnStructure(p *position.Position, c Color) *Score {
	pawnScore.MidGameValue = 0
	pawnScore.EndGameValue = 0

	for pawns := p.PiecesBb(c, Pawn); pawns != BbZero; {
		sq := pawns.PopLsb()
		r := sq.RankOf()

		// steps already taken toward the promotion zone
		var advance int
		if c == Black {
			advance = 6 - int(r)
		} else {
			advance = int(r) - 2
		}
		if advance > 0 {
			pawnScore.MidGameValue += advance * int(config.Settings.Eval.PawnAdvancedMidBonus)
			pawnScore.EndGameValue += advance * int(config.Settings.Eval.PawnAdvancedEndBonus)
		}

		// a pawn inside the promotion zone is a tokin in the making
		if config.Settings.Eval.UsePromotionThreat && r.PromotionZone(c) {
			pawnScore.MidGameValue += int(config.Settings.Eval.PromotionThreatBonus)
			pawnScore.EndGameValue += int(config.Settings.Eval.PromotionThreatBonus)
		}
	}

	return &pawnScore
}
