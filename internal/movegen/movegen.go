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

// Package movegen generates board moves and hand drops for a shogi
// position, both as a complete list and as an on-demand phased stream the
// search can pull from one move at a time (PV move first, then captures,
// then drops, then quiet board moves) without paying for moves it
// ultimately prunes.
package movegen

import (
	"fmt"
	"strings"

	"github.com/kyo-shogi/shogo/internal/assert"
	"github.com/kyo-shogi/shogo/internal/history"
	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

var log = myLogging.GetLog("movegen")

// GenMode selects which kinds of moves GeneratePseudoLegalMoves (and the
// on-demand generator) produce.
type GenMode int

// noinspection GoUnusedConst
const (
	GenCap    GenMode = 1 << iota // moves that capture an opponent's piece
	GenNonCap                     // board moves to an empty square, and all drops
	GenAll    = GenCap | GenNonCap
)

// boardPieceTypes lists every piece type that can sit on the board, in the
// order the generator walks them.
var boardPieceTypes = [...]PieceType{
	Pawn, Lance, Knight, Silver, Gold, Bishop, Rook, King,
	ProPawn, ProLance, ProKnight, ProSilver, Horse, Dragon,
}

// on-demand generator phases.
const (
	odNew int = iota
	odPv
	odCapture
	odDrop
	odNonCapture
	odEnd
)

const maxKillerMoves = 2

// Movegen generates and caches moves for one ply of search. A single
// instance is reused across a game; Reset-family methods clear it between
// calls so allocations stay out of the search's inner loop.
type Movegen struct {
	pseudoLegalMoves moveslice.MoveSlice
	pvMove           Move
	killerMoves      [maxKillerMoves]Move
	historyData      *history.HistoryTable

	onDemandState int
	onDemandIndex int
}

// NewMoveGen creates a new, empty move generator.
func NewMoveGen() *Movegen {
	mg := &Movegen{}
	mg.pseudoLegalMoves = *moveslice.NewMoveSlice(MaxMoves)
	return mg
}

// //////////////////////////////////////////////////////
// // Pseudo legal / legal move lists
// //////////////////////////////////////////////////////

// GeneratePseudoLegalMoves fills moves with every board move and drop for
// the side to move matching mode, without checking whether the move leaves
// the mover's own king in check.
func GeneratePseudoLegalMoves(p *position.Position, mode GenMode, moves *moveslice.MoveSlice) {
	moves.Clear()
	generateBoardMoves(p, mode, moves)
	if mode&GenNonCap != 0 {
		generateDropMoves(p, moves)
	}
}

// GenerateLegalMoves fills moves with every legal move for the side to
// move. Shogi has no pins/discovered-check bookkeeping kept incrementally,
// so legality is checked the straightforward way: play the move, ask
// whether the mover's own king is attacked, undo.
func GenerateLegalMoves(p *position.Position, mode GenMode, moves *moveslice.MoveSlice) {
	var pseudo moveslice.MoveSlice
	GeneratePseudoLegalMoves(p, mode, &pseudo)
	moves.Clear()
	mover := p.NextPlayer()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		if isLegal(p, m, mover) {
			moves.PushBack(m)
		}
	}
}

// HasLegalMove reports whether the side to move has at least one legal
// move, stopping as soon as one is found.
func HasLegalMove(p *position.Position) bool {
	var pseudo moveslice.MoveSlice
	GeneratePseudoLegalMoves(p, GenAll, &pseudo)
	mover := p.NextPlayer()
	for i := 0; i < pseudo.Len(); i++ {
		if isLegal(p, pseudo.At(i), mover) {
			return true
		}
	}
	return false
}

// isLegal plays m and checks that mover's own king survives it. A pawn
// drop that gives check is further required not to be uchifuzume (a drop
// that checkmates is illegal; any other result of the drop is fine).
func isLegal(p *position.Position, m Move, mover Color) bool {
	p.DoMove(m)
	kingSafe := !p.IsAttacked(p.KingSquare(mover), mover.Flip())
	uchifuzume := false
	if kingSafe && m.IsDrop() && m.DropPieceType() == Pawn && p.HasCheck() {
		uchifuzume = !HasLegalMove(p)
	}
	p.UndoMove()
	return kingSafe && !uchifuzume
}

// ValidateMove reports whether m is a legal move in p. Used to validate
// moves coming from outside the engine (USI position startpos moves ...).
func ValidateMove(p *position.Position, m Move) bool {
	var legal moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &legal)
	for i := 0; i < legal.Len(); i++ {
		if legal.At(i).MoveOf() == m.MoveOf() {
			return true
		}
	}
	return false
}

// //////////////////////////////////////////////////////
// // On-demand phased generation
// //////////////////////////////////////////////////////

// ResetOnDemand restarts the phased generator (PV move, then captures, then
// drops, then quiet board moves) from the beginning, for a new ply.
func (mg *Movegen) ResetOnDemand() {
	mg.onDemandState = odNew
	mg.onDemandIndex = 0
	mg.pseudoLegalMoves.Clear()
}

// SetPvMove records the principal-variation move so GetNextMove returns it
// first, ahead of every generated phase.
func (mg *Movegen) SetPvMove(m Move) {
	mg.pvMove = m.MoveOf()
}

// PvMove returns the move last set via SetPvMove.
func (mg *Movegen) PvMove() Move {
	return mg.pvMove
}

// StoreKiller records m as a killer move for this ply, evicting the oldest
// entry. Captures are not stored - they are already tried early via SEE.
func (mg *Movegen) StoreKiller(m Move) {
	m = m.MoveOf()
	for i := 0; i < maxKillerMoves; i++ {
		if mg.killerMoves[i] == m {
			return
		}
	}
	copy(mg.killerMoves[1:], mg.killerMoves[:maxKillerMoves-1])
	mg.killerMoves[0] = m
}

// KillerMoves returns the killer moves stored for this ply.
func (mg *Movegen) KillerMoves() []Move {
	return mg.killerMoves[:]
}

// SetHistoryData gives the generator access to the search's history tables
// so quiet moves can be sorted by their accumulated cutoff history and the
// counter move to the opponent's last move is tried early. Without it quiet
// moves keep generation order (killers still come first).
func (mg *Movegen) SetHistoryData(h *history.HistoryTable) {
	mg.historyData = h
}

// GetNextMove returns the next pseudo-legal move matching mode in phase
// order (PV move, captures, drops, quiet board moves), or MoveNone once
// every phase is exhausted. Moves are not filtered for legality here - the
// caller (the search) calls Position.DoMove and checks for self-check,
// same as it has to anyway to detect whether the move gives check.
func (mg *Movegen) GetNextMove(p *position.Position, mode GenMode) Move {
	if mg.onDemandState == odNew {
		mg.onDemandState = odPv
	}

	if mg.onDemandState == odPv {
		mg.onDemandState = odCapture
		if mg.pvMove != MoveNone && ValidateMove(p, mg.pvMove) {
			return mg.pvMove
		}
	}

	if mg.onDemandState == odCapture {
		if mode&GenCap != 0 && mg.onDemandIndex == 0 {
			// the tactical phase holds captures, capture-promotions and
			// quiet promotions; the later quiet phase skips the promoting
			// variants it already covered
			generateBoardMovesVariant(p, GenCap, promoAll, &mg.pseudoLegalMoves)
			generateBoardMovesVariant(p, GenNonCap, promoOnly, &mg.pseudoLegalMoves)
			mg.scoreCaptures(p)
			mg.pseudoLegalMoves.Sort()
		}
		for mg.onDemandIndex < mg.pseudoLegalMoves.Len() {
			m := mg.pseudoLegalMoves.At(mg.onDemandIndex)
			mg.onDemandIndex++
			if m.MoveOf() != mg.pvMove {
				return m
			}
		}
		mg.onDemandState = odDrop
		mg.onDemandIndex = 0
		mg.pseudoLegalMoves.Clear()
	}

	if mg.onDemandState == odDrop {
		if mode&GenNonCap != 0 && mg.onDemandIndex == 0 {
			generateDropMoves(p, &mg.pseudoLegalMoves)
			mg.orderQuietMoves(p)
		}
		for mg.onDemandIndex < mg.pseudoLegalMoves.Len() {
			m := mg.pseudoLegalMoves.At(mg.onDemandIndex)
			mg.onDemandIndex++
			if m.MoveOf() != mg.pvMove {
				return m
			}
		}
		mg.onDemandState = odNonCapture
		mg.onDemandIndex = 0
		mg.pseudoLegalMoves.Clear()
	}

	if mg.onDemandState == odNonCapture {
		if mode&GenNonCap != 0 && mg.onDemandIndex == 0 {
			generateBoardMovesVariant(p, GenNonCap, promoSkip, &mg.pseudoLegalMoves)
			mg.orderQuietMoves(p)
		}
		for mg.onDemandIndex < mg.pseudoLegalMoves.Len() {
			m := mg.pseudoLegalMoves.At(mg.onDemandIndex)
			mg.onDemandIndex++
			if m.MoveOf() != mg.pvMove {
				return m
			}
		}
		mg.onDemandState = odEnd
	}

	return MoveNone
}

// scoreCaptures encodes an MVV-LVA style sort value into each move of the
// tactical phase: captures by most valuable victim first with the least
// valuable attacker as tie breaker, a bonus for promotions, and every
// capture ahead of the quiet promotions.
func (mg *Movegen) scoreCaptures(p *position.Position) {
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		m := mg.pseudoLegalMoves.At(i)
		var value Value
		if victim := p.GetPiece(m.To()); victim != PieceNone {
			value = captureSortBase + victim.TypeOf().ValueOf() - p.GetPiece(m.From()).TypeOf().ValueOf()/10
		}
		if m.IsPromotion() {
			value += promotionSortBonus
		}
		mg.pseudoLegalMoves.Set(i, m.SetValue(value))
	}
}

// orderQuietMoves encodes a sort value into each generated quiet move
// (board move or drop) and sorts the list: killer moves first, then the
// counter move to the opponent's last move, then by scaled history score.
// Killers are promoted inside the generated list rather than prepended -
// a killer from a sibling node may not even be pseudo legal here, and a
// prepended copy would additionally be searched twice.
func (mg *Movegen) orderQuietMoves(p *position.Position) {
	counter := MoveNone
	if mg.historyData != nil {
		counter = mg.historyData.CounterMove(p.LastMove())
	}
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		m := mg.pseudoLegalMoves.At(i)
		var value Value
		switch {
		case m.MoveOf() == mg.killerMoves[0]:
			value = killerSortValue
		case m.MoveOf() == mg.killerMoves[1]:
			value = killerSortValue - 1
		case m.MoveOf() == counter:
			value = counterMoveSortValue
		case mg.historyData != nil:
			value = historySortValue(mg.historyData.HistoryScore(p.NextPlayer(), m))
		}
		mg.pseudoLegalMoves.Set(i, m.SetValue(value))
	}
	mg.pseudoLegalMoves.Sort()
}

const (
	captureSortBase      Value = 1_000
	promotionSortBonus   Value = 300
	killerSortValue      Value = 3_000
	counterMoveSortValue Value = 2_000
	maxHistorySortValue  Value = 1_500
)

// historySortValue compresses an unbounded history counter into the value
// range a Move can carry.
func historySortValue(score int64) Value {
	v := Value(score >> 4)
	if v > maxHistorySortValue {
		return maxHistorySortValue
	}
	return v
}

func (mg *Movegen) String() string {
	return fmt.Sprintf("Movegen: { state:%d pv:%s killers:[%s, %s] }",
		mg.onDemandState, mg.pvMove.StringUci(), mg.killerMoves[0].StringUci(), mg.killerMoves[1].StringUci())
}

// //////////////////////////////////////////////////////
// // Board move generation
// //////////////////////////////////////////////////////

// promoGen selects which promotion variants generateBoardMovesVariant
// emits: all of them (the full move list), only the promoting variants (the
// on-demand tactical phase), or everything except the promoting variants
// the tactical phase already produced (the on-demand quiet phase).
type promoGen int

const (
	promoAll promoGen = iota
	promoOnly
	promoSkip
)

func generateBoardMoves(p *position.Position, mode GenMode, moves *moveslice.MoveSlice) {
	generateBoardMovesVariant(p, mode, promoAll, moves)
}

func generateBoardMovesVariant(p *position.Position, mode GenMode, pm promoGen, moves *moveslice.MoveSlice) {
	c := p.NextPlayer()
	own := p.OccupiedBb(c)
	opp := p.OccupiedBb(c.Flip())
	occupied := p.OccupiedAll()

	var targetMask Bitboard
	switch {
	case mode == GenCap:
		targetMask = opp
	case mode == GenNonCap:
		targetMask = occupied.Not()
	default:
		targetMask = own.Not()
	}

	for _, pt := range boardPieceTypes {
		for pieces := p.PiecesBb(c, pt); pieces != BbZero; {
			from := pieces.PopLsb()
			attacks := GetAttacksBb(c, pt, from, occupied).And(targetMask)
			for targets := attacks; targets != BbZero; {
				to := targets.PopLsb()
				addBoardMove(moves, c, pt, from, to, pm)
			}
		}
	}
}

// addBoardMove appends the promoting and/or non-promoting version of
// from->to, according to the promotion-zone rule for pt and the requested
// variant selection.
func addBoardMove(moves *moveslice.MoveSlice, c Color, pt PieceType, from, to Square, pm promoGen) {
	canPromote := pt.Promote() != PtNone &&
		(from.RankOf().PromotionZone(c) || to.RankOf().PromotionZone(c))

	switch pm {
	case promoOnly:
		if canPromote {
			moves.PushBack(NewBoardMove(from, to, true))
		}
	case promoSkip:
		if canPromote && mustPromote(pt, c, to.RankOf()) {
			return
		}
		moves.PushBack(NewBoardMove(from, to, false))
	default:
		if canPromote {
			moves.PushBack(NewBoardMove(from, to, true))
			if !mustPromote(pt, c, to.RankOf()) {
				moves.PushBack(NewBoardMove(from, to, false))
			}
			return
		}
		moves.PushBack(NewBoardMove(from, to, false))
	}
}

// mustPromote reports whether a piece of type pt landing on toRank has no
// legal unpromoted existence there: a Pawn or Lance on the far rank, or a
// Knight on either of the far two ranks, could never move again.
func mustPromote(pt PieceType, c Color, toRank Rank) bool {
	last := Rank1
	lastTwoStart := Rank2
	if c == White {
		last = Rank9
		lastTwoStart = Rank8
	}
	switch pt {
	case Pawn, Lance:
		return toRank == last
	case Knight:
		if c == Black {
			return toRank <= lastTwoStart
		}
		return toRank >= lastTwoStart
	default:
		return false
	}
}

// //////////////////////////////////////////////////////
// // Drop move generation
// //////////////////////////////////////////////////////

func generateDropMoves(p *position.Position, moves *moveslice.MoveSlice) {
	c := p.NextPlayer()
	empty := p.OccupiedAll().Not()

	for _, pt := range HandPieceTypes() {
		if p.HandCount(c, pt) == 0 {
			continue
		}
		for targets := empty; targets != BbZero; {
			to := targets.PopLsb()
			if !canDropOn(p, c, pt, to) {
				continue
			}
			moves.PushBack(NewDropMove(pt, to))
		}
	}
}

// canDropOn checks the drop restrictions that don't require playing the
// move: nifu (a second unpromoted pawn on the same file) and a piece
// dropped where it could never move again. Uchifuzume (a pawn drop that
// checkmates) is checked later in isLegal, since it needs the move played.
func canDropOn(p *position.Position, c Color, pt PieceType, to Square) bool {
	r := to.RankOf()
	last := Rank1
	lastTwoStart := Rank2
	if c == White {
		last = Rank9
		lastTwoStart = Rank8
	}
	switch pt {
	case Pawn:
		if r == last {
			return false
		}
		if p.HasPawnOnFile(c, to.FileOf()) {
			return false
		}
	case Lance:
		if r == last {
			return false
		}
	case Knight:
		if c == Black {
			if r <= lastTwoStart {
				return false
			}
		} else if r >= lastTwoStart {
			return false
		}
	}
	return true
}

// //////////////////////////////////////////////////////
// // USI move text
// //////////////////////////////////////////////////////

// GetMoveFromUci parses a USI move string ("7g7f", "7g7f+", "P*5e") and
// resolves it against p's legal moves, returning MoveNone if uciMove isn't
// a syntactically valid or legal move in this position.
func GetMoveFromUci(p *position.Position, uciMove string) Move {
	uciMove = strings.TrimSpace(uciMove)
	m := parseUciMove(uciMove)
	if m == MoveNone {
		log.Warningf("GetMoveFromUci: could not parse move string %s", uciMove)
		return MoveNone
	}
	var legal moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &legal)
	for i := 0; i < legal.Len(); i++ {
		if legal.At(i).MoveOf() == m {
			return legal.At(i)
		}
	}
	log.Warningf("GetMoveFromUci: %s is not legal in this position", uciMove)
	return MoveNone
}

// parseUciMove decodes the USI text into a Move without checking it
// against any position; used by GetMoveFromUci and by tests.
func parseUciMove(s string) Move {
	if len(s) < 4 {
		return MoveNone
	}
	if s[1] == '*' {
		pt, ok := PieceTypeFromLetter(s[0])
		if !ok || !pt.CanDrop() {
			return MoveNone
		}
		to := MakeSquare(s[2:4])
		if to == SqNone {
			return MoveNone
		}
		return NewDropMove(pt, to)
	}
	from := MakeSquare(s[0:2])
	to := MakeSquare(s[2:4])
	if from == SqNone || to == SqNone {
		return MoveNone
	}
	promotes := len(s) >= 5 && s[4] == '+'
	return NewBoardMove(from, to, promotes)
}

// assertOnDemandDone is a debug helper asserting GetNextMove has reached
// odEnd, used by tests that walk a whole phase list.
func (mg *Movegen) assertOnDemandDone() {
	if assert.DEBUG {
		assert.Assert(mg.onDemandState == odEnd, "Movegen: on demand generation not finished")
	}
}
