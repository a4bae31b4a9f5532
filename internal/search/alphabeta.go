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

package search

import (
	. "github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

// rootSearch starts the actual recursive alpha beta search with the root
// moves for the first ply. As root moves are treated a little differently
// this separate function supports readability as mixing it with the normal
// search would require quite some "if ply==0" statements.
func (s *Search) rootSearch(p *position.Position, depth int, alpha Value, beta Value) {

	// In root search we search all moves and store the value into the root
	// moves themselves for sorting in the next iteration.
	// best move is stored in pv[0][0], best value in pv[0][0].value.
	// The next iteration begins with the best move of the last iteration so
	// we can be sure pv[0][0] will be set with the last best move from the
	// previous iteration independent of the value. Any better move found
	// is really better and will replace pv[0][0] and also be sorted first
	// in the next iteration.
	bestNodeValue := ValueNA
	var value Value

	// ///////////////////////////////////////////////////////
	// MOVE LOOP
	for i := 0; i < s.rootMoves.Len(); i++ {
		m := s.rootMoves.At(i)

		p.DoMove(m)
		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(m)
		s.statistics.CurrentRootMoveIndex = i
		s.statistics.CurrentRootMove = m

		// check fourfold repetition (sennichite) before descending
		if drawValue, isRepetition := s.repetitionValue(p, 1); isRepetition {
			value = drawValue
		} else {
			// ///////////////////////////////////////////////////////
			// PVS
			// The first move of the root is searched with the full window.
			// Every other move is searched with a null window and
			// re-searched on an alpha improvement.
			if !Settings.Search.UsePVS || i == 0 {
				value = -s.search(p, depth-1, 1, -beta, -alpha, true, true)
			} else {
				value = -s.search(p, depth-1, 1, -alpha-1, -alpha, false, true)
				if value > alpha && value < beta && !s.stopConditions() {
					s.statistics.RootPvsResearches++
					value = -s.search(p, depth-1, 1, -beta, -alpha, true, true)
				}
			}
			// ///////////////////////////////////////////////////////
		}

		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()

		// we want at least one complete search with depth 1. After that we
		// can stop any time - any new best move will already be in pv[0].
		if s.stopConditions() && depth > 1 {
			return
		}

		// set the value into the root move to be able to sort the root
		// moves for the next iteration
		s.rootMoves.Set(i, m.SetValue(value))

		if value > bestNodeValue {
			bestNodeValue = value
			savePV(m, s.pv[1], s.pv[0])
			if value > alpha {
				alpha = value
			}
		}
	}
	// MOVE LOOP
	// ///////////////////////////////////////////////////////
}

// search is the normal alpha beta search after the root move ply (ply > 0).
// It is called recursively until the remaining depth is 0 and quiescence
// search takes over. All major prunings are done here.
func (s *Search) search(p *position.Position, depth int, ply int, alpha Value, beta Value, isPV bool, doNull bool) Value {

	// check if search should be stopped
	if s.stopConditions() {
		return ValueNA
	}

	// enter quiescence search when depth == 0 or max ply has been reached
	if depth <= 0 || ply >= MaxDepth {
		return s.qsearch(p, ply, alpha, beta, isPV)
	}

	// fourfold repetition terminates the node: a draw, unless one side has
	// been giving perpetual check, which loses for the checker
	if value, isRepetition := s.repetitionValue(p, ply); isRepetition {
		return value
	}

	// Mate Distance Pruning
	// Did we already find a shorter mate then ignore this one.
	if Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(ply) {
			alpha = -ValueCheckMate + Value(ply)
		}
		if beta > ValueCheckMate-Value(ply)-1 {
			beta = ValueCheckMate - Value(ply) - 1
		}
		if alpha >= beta {
			s.statistics.Mdp++
			return alpha
		}
	}

	// micro endgame tablebase: with very little material left the position
	// might be solved exactly
	if Settings.Search.UseTablebase && s.tb != nil &&
		p.PieceCount() <= Settings.Search.TablebasePieces {
		s.statistics.TbProbes++
		if value, found := s.tb.Probe(p, ply); found {
			s.statistics.TbHits++
			return value
		}
	}

	// prepare node search
	us := p.NextPlayer()
	bestNodeValue := ValueNA
	bestNodeMove := MoveNone // to store in the TT
	ttMove := MoveNone
	ttType := ALPHA
	hasCheck := p.HasCheck()
	matethreat := false

	// TT Lookup
	// Results of searches are stored in the TT to avoid searching the same
	// position several times. The stored move is a best move from a
	// previous search which we search first (by setting it as PV move in
	// the move generator). If we have a value from an equal or deeper
	// search we check if the value is usable: exact values mean the stored
	// result was already precise and we can return it directly, alpha and
	// beta bounds are used only when they fall outside the current window.
	if Settings.Search.UseTT && s.tt != nil {
		if ttEntry := s.tt.Probe(p.ZobristKey()); ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move().MoveOf()
			if int(ttEntry.Depth()) >= depth {
				ttValue := valueFromTT(ttEntry.Value(), ply)
				cut := false
				switch {
				case !ttValue.IsValid():
					cut = false
				case ttEntry.Vtype() == EXACT:
					cut = true
				case ttEntry.Vtype() == ALPHA && ttValue <= alpha:
					cut = true
				case ttEntry.Vtype() == BETA && ttValue >= beta:
					cut = true
				}
				if cut && Settings.Search.UseTTValue {
					// a TT cut at a PV node still needs a pv line -
					// reconstruct it by walking the TT best moves
					if isPV {
						s.getPVLine(p, s.pv[ply], depth)
					}
					s.statistics.TTCuts++
					return ttValue
				}
				s.statistics.TTNoCuts++
			}
		} else {
			s.statistics.TTMiss++
		}
	}

	// Reverse Futility Pruning (static null move pruning): anticipate a
	// likely fail high before making and searching any move
	if Settings.Search.UseRFP &&
		doNull &&
		depth <= 3 &&
		!isPV &&
		!hasCheck {
		staticEval := s.evaluate(p, ply)
		if staticEval-rfp[depth] >= beta {
			s.statistics.RfpPrunings++
			return staticEval - rfp[depth]
		}
	}

	// NULL MOVE PRUNING
	// Under the assumption that in almost every shogi position doing a move
	// improves the position (zugzwang is practically nonexistent when
	// pieces can be dropped), a position already above beta after passing
	// will very likely be above beta after moving.
	if Settings.Search.UseNullMove &&
		doNull &&
		!isPV &&
		depth >= Settings.Search.NmpDepth &&
		!hasCheck {

		// adaptive reduction, deeper searches reduce more
		r := Settings.Search.NmpReduction
		if depth > 8 {
			r++
		}
		newDepth := depth - r - 1
		if newDepth < 0 {
			newDepth = 0
		}

		p.DoNullMove()
		s.nodesVisited++
		nValue := -s.search(p, newDepth, ply+1, -beta, -beta+1, false, false)
		p.UndoNullMove()

		if s.stopConditions() {
			return ValueNA
		}

		if nValue > ValueCheckMateThreshold {
			// the value is a mate even without moving - do not return an
			// unproven mate
			s.statistics.NMPMateBeta++
			nValue = ValueCheckMateThreshold
		} else if nValue < -ValueCheckMateThreshold {
			// we passed and got mated - a mate threat
			s.statistics.NMPMateAlpha++
			matethreat = true
		}

		if nValue >= beta {
			s.statistics.NullMoveCuts++
			if Settings.Search.UseTT && s.tt != nil {
				s.storeTT(p, depth, ply, ttMove, nValue, BETA)
			}
			return nValue
		}
	}

	// Internal Iterative Deepening (IID)
	// Used when no best move from the TT is available. A reduced search
	// finds a probable best move to search first at the real depth. Does
	// not make a big difference when move ordering is already good.
	if Settings.Search.UseIID &&
		depth >= Settings.Search.IIDDepth &&
		ttMove == MoveNone &&
		doNull &&
		isPV {

		newDepth := depth - Settings.Search.IIDReduction
		if newDepth < 0 {
			newDepth = 0
		}

		s.search(p, newDepth, ply, alpha, beta, isPV, true)
		s.statistics.IIDsearches++

		if s.stopConditions() {
			return ValueNA
		}

		// the best move of the reduced search gets maximum ordering
		// priority at this node
		if s.pv[ply].Len() > 0 {
			s.statistics.IIDmoves++
			ttMove = s.pv[ply].At(0).MoveOf()
		}
	}

	// reset move generation for this ply - important to do this after IID
	myMg := s.mg[ply]
	myMg.ResetOnDemand()
	s.pv[ply].Clear()

	// PV Move Sort
	// When we received a best move for the position from the TT or IID we
	// set it as PV move in the movegen so it is searched first.
	if Settings.Search.UseTTMove {
		if ttMove != MoveNone {
			s.statistics.TTMoveUsed++
			myMg.SetPvMove(ttMove)
		} else {
			s.statistics.NoTTMove++
		}
	}

	// prepare move loop
	var value Value
	movesSearched := 0

	// ///////////////////////////////////////////////////////
	// MOVE LOOP
	for move := myMg.GetNextMove(p, movegen.GenAll); move != MoveNone; move = myMg.GetNextMove(p, movegen.GenAll) {

		// prepare newDepth
		newDepth := depth - 1
		lmrDepth := newDepth
		extension := 0

		givesCheck := p.GivesCheck(move)
		isKiller := move.MoveOf() == myMg.KillerMoves()[0] || move.MoveOf() == myMg.KillerMoves()[1]

		// Search extensions - done very carefully as it usually is more
		// effective to prune than to extend.
		if Settings.Search.UseExt {
			// Check extension: our qsearch searches all moves when in check
			// anyway, but extending here profits from the prunings of the
			// normal search which are not available in qsearch.
			if Settings.Search.UseCheckExt && givesCheck {
				s.statistics.CheckExtension++
				extension = 1
			}
			// A mate threat found during null move search extends by one
			// ply to find a way out. Off by default - grows the tree a lot.
			if Settings.Search.UseThreatExt && matethreat {
				s.statistics.ThreatExtension++
				extension = 1
			}
			if Settings.Search.UseExtAddDepth {
				newDepth += extension
			}
		}

		// ///////////////////////////////////////////////////////
		// Forward Pruning
		// Only quiet, uninteresting moves are candidates: no check, no
		// capture, no promotion, not a killer, no extension granted.
		if !isPV &&
			extension == 0 &&
			move.MoveOf() != ttMove &&
			!isKiller &&
			!move.IsPromotion() &&
			!p.IsCapturingMove(move) &&
			!hasCheck &&
			!givesCheck &&
			!matethreat {

			// Futility Pruning
			// Prune moves whose material balance plus a margin still does
			// not reach alpha - a beta cutoff at the next ply is assumed.
			if Settings.Search.UseFP && depth < 7 {
				materialEval := p.Material(us) - p.Material(us.Flip())
				if materialEval+fp[minInt(depth, len(fp)-1)] <= alpha {
					if materialEval > bestNodeValue {
						bestNodeValue = materialEval
					}
					s.statistics.FpPrunings++
					continue
				}
			}

			// Late Move Pruning - after enough moves have been searched at
			// this node the remaining quiet moves are skipped entirely
			if Settings.Search.UseLmp {
				if movesSearched >= LmpMovesSearched(depth) {
					s.statistics.LmpCuts++
					continue
				}
			}

			// Late Move Reduction
			// Later moves rarely exceed alpha, so their search depth is
			// reduced; a reduced move beating alpha is re-searched at full
			// depth below.
			if Settings.Search.UseLmr {
				if depth >= Settings.Search.LmrDepth &&
					movesSearched >= Settings.Search.LmrMovesSearched {
					lmrDepth -= LmrReduction(depth, movesSearched)
					s.statistics.LmrReductions++
				}
				if lmrDepth < 0 {
					lmrDepth = 0
				}
			}
		}
		// ///////////////////////////////////////////////////////

		// ///////////////////////////////////////////////////////
		// DO MOVE
		p.DoMove(move)

		// skip illegal moves (own king left in check, pawn drop mate)
		if !wasLegalMove(p) {
			p.UndoMove()
			continue
		}

		// we only count legal moves
		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(move)
		s.sendSearchUpdateToUsi()

		if drawValue, isRepetition := s.repetitionValue(p, ply+1); isRepetition {
			value = -drawValue
		} else {
			// ///////////////////////////////////////////////////////
			// PVS
			// The first move of a node is searched with the full window;
			// due to move ordering we assume it is the PV. Every other
			// move is searched with a null window only trying to prove it
			// is bad (<=alpha) or too good (>=beta). If that proof fails
			// the move is re-searched with the full window.
			if !Settings.Search.UsePVS || movesSearched == 0 {
				value = -s.search(p, newDepth, ply+1, -beta, -alpha, isPV, true)
			} else {
				// null window, possibly reduced by LMR
				value = -s.search(p, lmrDepth, ply+1, -alpha-1, -alpha, false, true)
				if value > alpha && !s.stopConditions() {
					if lmrDepth < newDepth {
						// LMR research at full depth
						s.statistics.LmrResearches++
						value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
					} else if value < beta {
						// scout research with full window
						s.statistics.PvsResearches++
						value = -s.search(p, newDepth, ply+1, -beta, -alpha, true, true)
					}
				}
			}
			// ///////////////////////////////////////////////////////
		}

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()
		// UNDO MOVE
		// ///////////////////////////////////////////////////////

		if s.stopConditions() {
			return ValueNA
		}

		// Did we find a better move for this node? For the first legal
		// move this is always the case.
		if value > bestNodeValue {
			// these best values are only valid for this node, not yet for
			// the whole ply (not clear yet if > alpha)
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				// we have a new best move for the ply
				savePV(move, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					// the opponent will avoid this position altogether -
					// stop searching the node. The best move is recorded
					// as a killer/history/counter move so other nodes of
					// this ply try it early.
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					if !p.IsCapturingMove(move) && !move.IsPromotion() {
						if Settings.Search.UseKiller {
							myMg.StoreKiller(move)
						}
						if Settings.Search.UseHistoryCounter || Settings.Search.UseCounterMoves {
							s.history.Update(us, p.LastMove(), move, depth)
						}
					}
					ttType = BETA
					break
				}
				// a move between alpha and beta - the best move so far in
				// this ply which the opponent cannot avoid. Raise alpha so
				// the successive searches need to beat it.
				alpha = value
				ttType = EXACT
			}
		}
	}
	// MOVE LOOP
	// ///////////////////////////////////////////////////////

	// If we did not have a single legal move the mover is lost: in shogi a
	// position without moves is always a loss for the side to move, there
	// is no stalemate draw.
	if movesSearched == 0 && !s.stopConditions() {
		if hasCheck {
			s.statistics.Checkmates++
		} else {
			s.statistics.NoLegalMoves++
		}
		bestNodeValue = -ValueCheckMate + Value(ply)
		ttType = EXACT
	}

	// Store search result for this node into the transposition table
	if Settings.Search.UseTT && s.tt != nil {
		s.storeTT(p, depth, ply, bestNodeMove, bestNodeValue, ttType)
	}

	return bestNodeValue
}

// qsearch is a simplified search to counter the horizon effect of depth
// based searches. It continues into deeper branches as long as there are
// non quiet moves (captures, capture promotions, evasions when in check).
// Only when the position is relatively quiet will we compute an evaluation
// to return to the previous depth.
func (s *Search) qsearch(p *position.Position, ply int, alpha Value, beta Value, isPV bool) Value {

	if s.statistics.CurrentExtraSearchDepth < ply {
		s.statistics.CurrentExtraSearchDepth = ply
	}

	// when quiescence is off or the hard ply bound is reached evaluate and
	// return
	if !Settings.Search.UseQuiescence || ply >= MaxDepth {
		return s.evaluate(p, ply)
	}

	// Mate Distance Pruning
	if Settings.Search.UseMDP {
		if alpha < -ValueCheckMate+Value(ply) {
			alpha = -ValueCheckMate + Value(ply)
		}
		if beta > ValueCheckMate-Value(ply)-1 {
			beta = ValueCheckMate - Value(ply) - 1
		}
		if alpha >= beta {
			s.statistics.Mdp++
			return alpha
		}
	}

	// prepare node search
	bestNodeValue := ValueNA
	ttType := ALPHA
	ttMove := MoveNone
	hasCheck := p.HasCheck()

	// if not in check the static eval serves as a standing pat: the
	// assumption is there is at least one move that improves the position,
	// so being above beta already ends the node
	if !hasCheck {
		staticEval := s.evaluate(p, ply)
		if Settings.Search.UseQSStandpat {
			if staticEval >= beta {
				s.statistics.StandpatCuts++
				return staticEval
			}
			if staticEval > alpha {
				alpha = staticEval
			}
		}
		bestNodeValue = staticEval
	}

	// TT Lookup
	if Settings.Search.UseQSTT && s.tt != nil {
		if ttEntry := s.tt.Probe(p.ZobristKey()); ttEntry != nil {
			s.statistics.TTHit++
			ttMove = ttEntry.Move().MoveOf()
			ttValue := valueFromTT(ttEntry.Value(), ply)
			cut := false
			switch {
			case !ttValue.IsValid():
				cut = false
			case ttEntry.Vtype() == EXACT:
				cut = true
			case ttEntry.Vtype() == ALPHA && ttValue <= alpha:
				cut = true
			case ttEntry.Vtype() == BETA && ttValue >= beta:
				cut = true
			}
			if cut && Settings.Search.UseTTValue {
				s.statistics.TTCuts++
				return ttValue
			}
			s.statistics.TTNoCuts++
		} else {
			s.statistics.TTMiss++
		}
	}

	bestNodeMove := MoveNone
	myMg := s.mg[ply]
	myMg.ResetOnDemand()
	s.pv[ply].Clear()

	if Settings.Search.UseQSTT && s.tt != nil && ttMove != MoveNone {
		s.statistics.TTMoveUsed++
		myMg.SetPvMove(ttMove)
	}

	// prepare move loop
	var value Value
	movesSearched := 0

	// in check all moves are generated and searched - in fact a search
	// extension for evasions; otherwise only captures
	var mode movegen.GenMode
	if hasCheck {
		s.statistics.CheckInQS++
		mode = movegen.GenAll
	} else {
		mode = movegen.GenCap
	}

	// ///////////////////////////////////////////////////////
	// MOVE LOOP
	for move := myMg.GetNextMove(p, mode); move != MoveNone; move = myMg.GetNextMove(p, mode) {

		// losing captures are pruned from quiescence unless in check
		if !hasCheck && !s.goodCapture(p, move) {
			s.statistics.SeePrunings++
			continue
		}

		// ///////////////////////////////////////////////////////
		// DO MOVE
		p.DoMove(move)

		if !wasLegalMove(p) {
			p.UndoMove()
			continue
		}

		s.nodesVisited++
		s.statistics.CurrentVariation.PushBack(move)
		s.sendSearchUpdateToUsi()

		// repetitions can only arise from the evasion branch - captures
		// are irreversible in the sense of sennichite
		if drawValue, isRepetition := s.repetitionValue(p, ply+1); hasCheck && isRepetition {
			value = -drawValue
		} else {
			value = -s.qsearch(p, ply+1, -beta, -alpha, isPV)
		}

		movesSearched++
		s.statistics.CurrentVariation.PopBack()
		p.UndoMove()
		// UNDO MOVE
		// ///////////////////////////////////////////////////////

		if s.stopConditions() {
			return ValueNA
		}

		// see search function above for documentation
		if value > bestNodeValue {
			bestNodeValue = value
			bestNodeMove = move
			if value > alpha {
				savePV(move, s.pv[ply+1], s.pv[ply])
				if value >= beta {
					s.statistics.BetaCuts++
					if movesSearched == 1 {
						s.statistics.BetaCuts1st++
					}
					ttType = BETA
					break
				}
				alpha = value
				ttType = EXACT
			}
		}
	}
	// MOVE LOOP
	// ///////////////////////////////////////////////////////

	// without a legal move while in check all evasions were generated and
	// failed - a mate. Without check we may simply have had only quiet
	// moves which were not generated and the standing pat value holds.
	if movesSearched == 0 && !s.stopConditions() && hasCheck {
		s.statistics.Checkmates++
		bestNodeValue = -ValueCheckMate + Value(ply)
		ttType = EXACT
	}

	if Settings.Search.UseQSTT && s.tt != nil {
		s.storeTT(p, 0, ply, bestNodeMove, bestNodeValue, ttType)
	}

	return bestNodeValue
}

// evaluate calls evaluation on the position, optionally consulting and
// feeding the TT's eval slot.
func (s *Search) evaluate(p *position.Position, ply int) Value {
	s.statistics.LeafPositionsEvaluated++

	value := ValueNA

	if Settings.Search.UseTT && Settings.Search.UseEvalTT && s.tt != nil {
		if ttEntry := s.tt.Probe(p.ZobristKey()); ttEntry != nil && ttEntry.Eval() != ValueNA {
			s.statistics.TTHit++
			s.statistics.EvaluationsFromTT++
			value = ttEntry.Eval()
		}
	}

	if value == ValueNA {
		s.statistics.Evaluations++
		value = s.eval.Evaluate(p)
		if Settings.Search.UseTT && Settings.Search.UseEvalTT && s.tt != nil {
			s.tt.Put(p.ZobristKey(), MoveNone, 0, ValueNA, Vnone, value)
		}
	}

	return value
}

// repetitionValue checks for fourfold repetition (sennichite) and returns
// the terminal value for the side to move: normally a draw, but when one
// side has delivered perpetual check, a loss for the checking side.
func (s *Search) repetitionValue(p *position.Position, ply int) (Value, bool) {
	if !p.CheckRepetitions(4) {
		return ValueZero, false
	}
	s.statistics.Sennichite++
	if Settings.Search.UsePerpetualCheckLoss {
		if checkedColor, perpetual := p.CheckedPerpetually(4); perpetual {
			s.statistics.PerpetualCheckLosses++
			if checkedColor == p.NextPlayer() {
				// we are the one being checked - the checker loses
				return ValueCheckMate - Value(ply), true
			}
			return -ValueCheckMate + Value(ply), true
		}
	}
	return ValueDraw, true
}

// goodCapture reduces the number of moves searched in quiescence by
// looking at good captures only.
func (s *Search) goodCapture(p *position.Position, move Move) bool {
	if Settings.Search.UseSEE {
		return see(p, move) >= 0
	}
	// without SEE: lower value piece captures higher value piece, all
	// recaptures, and captures of undefended pieces
	return p.GetPiece(move.From()).TypeOf().ValueOf()+50 < p.GetPiece(move.To()).TypeOf().ValueOf() ||
		(p.LastMove() != MoveNone && p.LastMove().To() == move.To() && p.LastCapturedPiece() != PieceNone) ||
		!p.IsAttacked(move.To(), p.NextPlayer().Flip())
}

// wasLegalMove verifies the pseudo legal move just played: the mover's own
// king must not be attacked, and a pawn drop that gives check must not be
// mate (uchifuzume).
func wasLegalMove(p *position.Position) bool {
	mover := p.NextPlayer().Flip()
	if p.IsAttacked(p.KingSquare(mover), p.NextPlayer()) {
		return false
	}
	lastMove := p.LastMove()
	if lastMove.IsDrop() && lastMove.DropPieceType() == Pawn && p.HasCheck() {
		return movegen.HasLegalMove(p)
	}
	return true
}

// savePV adds the given move as first move to a cleared dest and then
// appends all src moves to dest.
func savePV(move Move, src *moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, *src...)
}

// storeTT stores a position into the TT. Sentinel values from aborted
// searches are never stored.
func (s *Search) storeTT(p *position.Position, depth int, ply int, move Move, value Value, valueType ValueType) {
	if !value.IsValid() {
		return
	}
	s.tt.Put(p.ZobristKey(), move.MoveOf(), int8(depth), valueToTT(value, ply), valueType, ValueNA)
}

// getPVLine fills the given pv move list by walking the chain of TT best
// moves starting from p. The walk is bounded by the given depth and every
// stored move is validated against the reconstructed position - a hash
// collision could otherwise produce an illegal pv or an endless cycle.
func (s *Search) getPVLine(p *position.Position, pv *moveslice.MoveSlice, depth int) {
	pv.Clear()
	counter := 0
	ttMatch := s.tt.GetEntry(p.ZobristKey())
	for ttMatch != nil && ttMatch.Move() != MoveNone && counter < depth && counter < MaxDepth {
		m := ttMatch.Move().MoveOf()
		if !movegen.ValidateMove(p, m) {
			break
		}
		pv.PushBack(m)
		p.DoMove(m)
		counter++
		ttMatch = s.tt.GetEntry(p.ZobristKey())
	}
	for i := 0; i < counter; i++ {
		p.UndoMove()
	}
}

// valueToTT corrects the value for mate distance when storing to the TT:
// mate values are stored relative to the node, not to the root.
func valueToTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value + Value(ply)
		}
		return value - Value(ply)
	}
	return value
}

// valueFromTT corrects the value for mate distance when reading from the
// TT (inverse of valueToTT).
func valueFromTT(value Value, ply int) Value {
	if value.IsCheckMateValue() {
		if value > 0 {
			return value - Value(ply)
		}
		return value + Value(ply)
	}
	return value
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}
