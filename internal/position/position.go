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

// Package position represents the data structures and functions for a
// shogi board and its position. It uses a flat 81-square piece board plus
// bitboards, a stack for undo, zobrist keys for transposition tables, and
// incrementally maintained material/game-phase counters.
//
// Create a new instance with NewPosition(...) with no parameters to get the
// shogi start position.
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/kyo-shogi/shogo/internal/assert"
	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/shogierr"
	. "github.com/kyo-shogi/shogo/internal/types"
)

var log *logging.Logger

var initialized = false

func init() {
	if !initialized {
		initZobrist()
		initialized = true
	}
}

// StartSfen is the SFEN string for the standard shogi starting position.
const StartSfen string = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// Key is used for zobrist keys of shogi positions. Zobrist keys need all
// 64 bits for distribution.
type Key uint64

// Position represents the shogi board and its position: an 81-square
// piece array, bitboards per color/piece-type, each side's hand, a zobrist
// key for transposition tables, and incrementally maintained material and
// game-phase counters.
//
// Needs to be created with NewPosition() or NewPosition(sfen).
type Position struct {
	// The zobrist key used as the hash key in transposition tables. Updated
	// incrementally every time a piece moves, a hand count changes, or the
	// side to move flips.
	zobristKey Key

	// Board state. Unlike a chess FEN a repeated sennichite position is not
	// distinguished from the first occurrence - the caller walks the
	// zobrist history via CheckRepetitions for that.
	board      [SqLength]Piece
	hand       [ColorLength][PtLength]int8
	nextPlayer Color

	// Extended state, not necessary for a unique position but cheap to
	// keep incrementally.
	kingSquare         [ColorLength]Square
	nextHalfMoveNumber int
	piecesBb           [ColorLength][PtLength]Bitboard
	occupiedBb         [ColorLength]Bitboard

	// History for undo and repetition detection.
	historyCounter int
	history        [maxHistory]historyState

	// Material is kept up to date incrementally by putPiece/removePiece;
	// positional (PST) and king-safety terms are computed on demand by the
	// evaluator package instead, since unlike material they are cheap
	// relative to a shogi move list and change shape too often (every
	// promotion swaps PST tables) to be worth the incremental bookkeeping.
	material  [ColorLength]Value
	gamePhase int

	// caches a hasCheck flag for the current position, reset on every move.
	hasCheckFlag int
}

type historyState struct {
	zobristKey    Key
	move          Move
	fromPiece     Piece // the moving piece as it stood on the from-square, pre-promotion
	capturedPiece Piece
	hasCheckFlag  int
}

const maxHistory int = MaxMoves

const (
	flagTBD   int = 0
	flagFalse int = 1
	flagTrue  int = 2
)

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewPosition creates a new position. Called without an argument it is the
// shogi start position; with an SFEN string it sets up that position.
// Additional arguments are ignored.
func NewPosition(sfen ...string) *Position {
	if len(sfen) == 0 {
		p, _ := NewPositionSfen(StartSfen)
		return p
	}
	p, _ := NewPositionSfen(sfen[0])
	return p
}

// NewPositionSfen creates a new position from the given SFEN string. It
// returns nil and an error if the SFEN was invalid.
func NewPositionSfen(sfen string) (*Position, error) {
	if log == nil {
		log = myLogging.GetLog("position")
	}
	p := &Position{}
	if e := p.setupBoard(sfen); e != nil {
		log.Errorf("sfen for position setup not valid and position can't be created: %s", e)
		return nil, shogierr.InvalidPosition(e.Error())
	}
	return p, nil
}

// DoMove commits a move to the board. There is no legality check here -
// the move is assumed to have come from the move generator, or to have
// been checked separately.
func (p *Position) DoMove(m Move) {
	if assert.DEBUG {
		assert.Assert(m.IsValid(), "Position DoMove: Invalid move %s", m.String())
	}

	tmpHistoryCounter := p.historyCounter
	p.history[tmpHistoryCounter].zobristKey = p.zobristKey
	p.history[tmpHistoryCounter].move = m
	p.history[tmpHistoryCounter].hasCheckFlag = p.hasCheckFlag

	if m.IsDrop() {
		pt := m.DropPieceType()
		if assert.DEBUG {
			assert.Assert(p.hand[p.nextPlayer][pt] > 0, "Position DoMove: no %s in hand to drop", pt.String())
			assert.Assert(p.board[m.To()] == PieceNone, "Position DoMove: drop target occupied")
		}
		p.history[tmpHistoryCounter].fromPiece = PieceNone
		p.history[tmpHistoryCounter].capturedPiece = PieceNone
		p.decHand(p.nextPlayer, pt)
		p.putPiece(MakePiece(p.nextPlayer, pt), m.To())
	} else {
		fromSq := m.From()
		fromPc := p.board[fromSq]
		toSq := m.To()
		capturedPc := p.board[toSq]

		if assert.DEBUG {
			assert.Assert(fromPc != PieceNone, "Position DoMove: no piece on %s for move %s", fromSq.String(), m.StringUci())
			assert.Assert(fromPc.ColorOf() == p.nextPlayer, "Position DoMove: piece to move does not belong to next player")
			assert.Assert(capturedPc.TypeOf() != King, "Position DoMove: king cannot be captured")
		}

		p.history[tmpHistoryCounter].fromPiece = fromPc
		p.history[tmpHistoryCounter].capturedPiece = capturedPc

		if capturedPc != PieceNone {
			p.removePiece(toSq)
			p.incHand(p.nextPlayer, capturedPc.TypeOf().Demote())
		}
		p.removePiece(fromSq)
		newType := fromPc.TypeOf()
		if m.IsPromotion() {
			newType = newType.Promote()
		}
		p.putPiece(MakePiece(p.nextPlayer, newType), toSq)
	}

	p.historyCounter++
	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoMove resets the position to the state before the last move.
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.historyCounter > 0, "Position UndoMove: cannot undo initial position")
	}

	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	h := p.history[p.historyCounter]
	move := h.move

	if move.IsDrop() {
		pt := move.DropPieceType()
		p.removePiece(move.To())
		p.incHand(p.nextPlayer, pt)
	} else {
		toSq := move.To()
		fromSq := move.From()
		p.removePiece(toSq)
		p.putPiece(h.fromPiece, fromSq)
		if h.capturedPiece != PieceNone {
			p.putPiece(h.capturedPiece, toSq)
			p.decHand(p.nextPlayer, h.capturedPiece.TypeOf().Demote())
		}
	}

	p.hasCheckFlag = h.hasCheckFlag
	p.zobristKey = h.zobristKey
}

// DoNullMove is used by Null Move Pruning. The board is unchanged but the
// side to move flips. The history entry is restored by UndoNullMove so the
// external view of the position (sfen/zobrist) is unchanged afterwards.
func (p *Position) DoNullMove() {
	tmpHistoryCounter := p.historyCounter
	p.history[tmpHistoryCounter].zobristKey = p.zobristKey
	p.history[tmpHistoryCounter].move = MoveNone
	p.history[tmpHistoryCounter].fromPiece = PieceNone
	p.history[tmpHistoryCounter].capturedPiece = PieceNone
	p.history[tmpHistoryCounter].hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= zobristBase.nextPlayer
}

// UndoNullMove restores the state from before the matching DoNullMove.
func (p *Position) UndoNullMove() {
	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	h := p.history[p.historyCounter]
	p.hasCheckFlag = h.hasCheckFlag
	p.zobristKey = h.zobristKey
}

// IsAttacked checks whether sq is attacked by a piece of color by, by doing
// a reverse attack lookup: generate the attacks of each piece type as if
// that type stood on sq, and check whether a piece of by and that type
// actually sits on one of the attacked squares.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	occupied := p.OccupiedAll()
	me := by.Flip()

	if !GetStepAttacks(me, Pawn, sq).And(p.piecesBb[by][Pawn]).IsEmpty() ||
		!GetStepAttacks(me, Knight, sq).And(p.piecesBb[by][Knight]).IsEmpty() ||
		!GetStepAttacks(me, Silver, sq).And(p.piecesBb[by][Silver]).IsEmpty() ||
		!GetStepAttacks(me, King, sq).And(p.piecesBb[by][King]).IsEmpty() {
		return true
	}

	goldLike := p.piecesBb[by][Gold].Or(p.piecesBb[by][ProPawn]).Or(p.piecesBb[by][ProLance]).
		Or(p.piecesBb[by][ProKnight]).Or(p.piecesBb[by][ProSilver])
	if !GetStepAttacks(me, Gold, sq).And(goldLike).IsEmpty() {
		return true
	}

	if !GetLanceAttacks(me, sq, occupied).And(p.piecesBb[by][Lance]).IsEmpty() {
		return true
	}
	if !GetBishopAttacks(sq, occupied).And(p.piecesBb[by][Bishop].Or(p.piecesBb[by][Horse])).IsEmpty() {
		return true
	}
	if !GetRookAttacks(sq, occupied).And(p.piecesBb[by][Rook].Or(p.piecesBb[by][Dragon])).IsEmpty() {
		return true
	}
	if !GetStepAttacks(me, King, sq).And(p.piecesBb[by][Horse].Or(p.piecesBb[by][Dragon])).IsEmpty() {
		return true
	}
	return false
}

// HasCheck reports whether the side to move is currently in check. The
// result is cached per position and invalidated on every move.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag == flagTBD {
		if p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip()) {
			p.hasCheckFlag = flagTrue
		} else {
			p.hasCheckFlag = flagFalse
		}
	}
	return p.hasCheckFlag == flagTrue
}

// GivesCheck reports whether making move would put the opponent in check.
// Implemented by playing the move and inspecting the resulting position;
// correct but not optimized for inner-loop use.
func (p *Position) GivesCheck(move Move) bool {
	p.DoMove(move)
	check := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	p.UndoMove()
	return check
}

// IsCapturingMove reports whether move captures an opponent's piece.
func (p *Position) IsCapturingMove(move Move) bool {
	return !move.IsDrop() && p.board[move.To()] != PieceNone
}

// HasPawnOnFile reports whether color c already has an unpromoted pawn on
// file f - the nifu restriction forbids a second one by drop.
func (p *Position) HasPawnOnFile(c Color, f File) bool {
	return !p.piecesBb[c][Pawn].And(f.Bb()).IsEmpty()
}

// CheckRepetitions walks the zobrist history backwards and reports whether
// the current position's key has occurred reps-1 further times before,
// i.e. whether the current position is the reps-th occurrence.
func (p *Position) CheckRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter
	for i > 0 {
		i--
		if p.history[i].zobristKey == p.zobristKey {
			counter++
			if counter >= reps-1 {
				return true
			}
		}
	}
	return false
}

// CheckedPerpetually examines a repeated position (the caller establishes
// the repetition via CheckRepetitions first) and reports whether one side
// was in check in every position it had to move in since the earliest
// repeated occurrence. If so, the OTHER side has been delivering perpetual
// check, which under shogi rules turns the sennichite from a draw into a
// loss for the checking side. A position whose check status was never
// computed counts as not-in-check, so an incomplete history track can only
// err toward the draw result.
func (p *Position) CheckedPerpetually(reps int) (Color, bool) {
	count := 0
	first := -1
	for i := p.historyCounter - 1; i >= 0; i-- {
		if p.history[i].zobristKey == p.zobristKey {
			count++
			if count >= reps-1 {
				first = i
				break
			}
		}
	}
	if first < 0 {
		return Black, false
	}

	checked := [ColorLength]bool{true, true}
	if !p.HasCheck() {
		checked[p.nextPlayer] = false
	}
	for i := first; i < p.historyCounter; i++ {
		side := p.nextPlayer
		if (p.historyCounter-i)%2 != 0 {
			side = p.nextPlayer.Flip()
		}
		if p.history[i].hasCheckFlag != flagTrue {
			checked[side] = false
		}
	}
	switch {
	case checked[p.nextPlayer]:
		return p.nextPlayer, true
	case checked[p.nextPlayer.Flip()]:
		return p.nextPlayer.Flip(), true
	}
	return Black, false
}

func (p *Position) String() string {
	return p.StringSfen()
}

// StringSfen returns the position as an SFEN string.
func (p *Position) StringSfen() string {
	return p.sfen()
}

// StringBoard renders the board as a human-readable 9x9 grid, Black's
// pieces uppercase, White's lowercase, promoted pieces prefixed with "+".
func (p *Position) StringBoard() string {
	var sb strings.Builder
	for r := Rank1; r < RankNone; r++ {
		for f := File9; ; f-- {
			sb.WriteString(fmt.Sprintf("%-3s", p.board[SquareOf(f, r)].String()))
			if f == File1 {
				break
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// //////////////////////////////////////////////////////
// // Internal
// //////////////////////////////////////////////////////

func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] == PieceNone, "tried to put piece on an occupied square: %s", square.String())
	}

	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)
	p.zobristKey ^= zobristBase.pieces[piece][square]
	p.gamePhase += pieceType.GamePhaseValue()
	if p.gamePhase > GamePhaseMax {
		p.gamePhase = GamePhaseMax
	}
	p.material[color] += pieceType.ValueOf()
}

func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(removed != PieceNone, "tried to remove piece from an empty square: %s", square.String())
	}

	p.board[square] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)
	p.zobristKey ^= zobristBase.pieces[removed][square]
	p.gamePhase -= pieceType.GamePhaseValue()
	if p.gamePhase < 0 {
		p.gamePhase = 0
	}
	p.material[color] -= pieceType.ValueOf()
	return removed
}

func (p *Position) incHand(c Color, pt PieceType) {
	p.zobristKey ^= zobristBase.handCount[c][pt][p.hand[c][pt]]
	p.hand[c][pt]++
	p.zobristKey ^= zobristBase.handCount[c][pt][p.hand[c][pt]]
	p.material[c] += pt.ValueOf()
}

func (p *Position) decHand(c Color, pt PieceType) {
	p.zobristKey ^= zobristBase.handCount[c][pt][p.hand[c][pt]]
	p.hand[c][pt]--
	p.zobristKey ^= zobristBase.handCount[c][pt][p.hand[c][pt]]
	p.material[c] -= pt.ValueOf()
}

func (p *Position) sfen() string {
	var sb strings.Builder
	for r := Rank1; r < RankNone; r++ {
		emptySquares := 0
		for f := File9; ; f-- {
			pc := p.board[SquareOf(f, r)]
			if pc == PieceNone {
				emptySquares++
			} else {
				if emptySquares > 0 {
					sb.WriteString(strconv.Itoa(emptySquares))
					emptySquares = 0
				}
				sb.WriteString(pc.String())
			}
			if f == File1 {
				break
			}
		}
		if emptySquares > 0 {
			sb.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank9 {
			sb.WriteString("/")
		}
	}
	sb.WriteString(" ")
	sb.WriteString(p.nextPlayer.String())
	sb.WriteString(" ")
	sb.WriteString(p.handSfen())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.nextHalfMoveNumber))
	return sb.String()
}

func (p *Position) handSfen() string {
	var sb strings.Builder
	any := false
	for c := Black; c <= White; c++ {
		for _, pt := range HandPieceTypes() {
			n := p.hand[c][pt]
			if n == 0 {
				continue
			}
			any = true
			if n > 1 {
				sb.WriteString(strconv.Itoa(int(n)))
			}
			sb.WriteString(MakePiece(c, pt).String())
		}
	}
	if !any {
		return "-"
	}
	return sb.String()
}

// setupBoard parses an SFEN string into this (zero-value) position.
func (p *Position) setupBoard(sfen string) error {
	sfen = strings.TrimSpace(sfen)
	parts := strings.Split(sfen, " ")
	if len(parts) == 0 || parts[0] == "" {
		return errors.New("sfen must not be empty")
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != RankLength {
		return fmt.Errorf("sfen board must have %d ranks, got %d", RankLength, len(ranks))
	}
	for ri, rankStr := range ranks {
		r := Rank(ri)
		fi := int(File9)
		promote := false
		for _, ch := range rankStr {
			switch {
			case ch == '+':
				promote = true
			case ch >= '1' && ch <= '9':
				fi -= int(ch - '0')
			default:
				pt, ok := PieceTypeFromLetter(byte(upperOf(ch)))
				if !ok {
					return fmt.Errorf("invalid sfen piece character: %c", ch)
				}
				color := Black
				if ch >= 'a' && ch <= 'z' {
					color = White
				}
				if promote {
					pt = pt.Promote()
					if pt == PtNone {
						return fmt.Errorf("piece cannot be promoted in sfen: %c", ch)
					}
					promote = false
				}
				if fi < 0 {
					return errors.New("sfen rank overflows board width")
				}
				p.putPiece(MakePiece(color, pt), SquareOf(File(fi), r))
				fi--
			}
		}
	}

	p.nextHalfMoveNumber = 1
	p.nextPlayer = Black

	if len(parts) >= 2 {
		switch parts[1] {
		case "b":
			p.nextPlayer = Black
		case "w":
			p.nextPlayer = White
			p.zobristKey ^= zobristBase.nextPlayer
		default:
			return fmt.Errorf("invalid sfen side to move: %s", parts[1])
		}
	}

	if len(parts) >= 3 && parts[2] != "-" {
		hand := parts[2]
		count := 0
		for _, ch := range hand {
			switch {
			case ch >= '1' && ch <= '9':
				count = count*10 + int(ch-'0')
			default:
				pt, ok := PieceTypeFromLetter(byte(upperOf(ch)))
				if !ok || !pt.CanDrop() {
					return fmt.Errorf("invalid sfen hand piece character: %c", ch)
				}
				color := Black
				if ch >= 'a' && ch <= 'z' {
					color = White
				}
				if count == 0 {
					count = 1
				}
				for i := 0; i < count; i++ {
					p.incHand(color, pt)
				}
				count = 0
			}
		}
	}

	if len(parts) >= 4 {
		if n, e := strconv.Atoi(parts[3]); e == nil {
			p.nextHalfMoveNumber = n
		}
	}

	if p.piecesBb[Black][King].PopCount() != 1 || p.piecesBb[White][King].PopCount() != 1 {
		return errors.New("sfen must have exactly one king per side")
	}

	return nil
}

func upperOf(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

// //////////////////////////////////////////////////////
// // Getter and Setter functions
// //////////////////////////////////////////////////////

// ZobristKey returns the current zobrist key for this position.
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the color to move.
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on sq, or PieceNone.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns the bitboard of all occupied squares.
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White].Or(p.occupiedBb[Black])
}

// OccupiedBb returns the bitboard of squares occupied by color c.
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GamePhase returns the current game-phase counter (0..GamePhaseMax).
func (p *Position) GamePhase() int {
	return p.gamePhase
}

// GamePhaseFactor returns the game-phase counter normalized to [0,1], 1
// being the opening/midgame, 0 the endgame.
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.gamePhase) / float64(GamePhaseMax)
}

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HandCount returns how many of piece type pt color c holds in hand.
func (p *Position) HandCount(c Color, pt PieceType) int {
	return int(p.hand[c][pt])
}

// PieceCount returns the total number of pieces on the board and in both
// hands, kings excluded. The micro-tablebase probe uses this to decide
// whether a position is small enough to be solved exactly.
func (p *Position) PieceCount() int {
	count := p.OccupiedAll().PopCount() - 2
	for c := Black; c <= White; c++ {
		for _, pt := range HandPieceTypes() {
			count += int(p.hand[c][pt])
		}
	}
	return count
}

// Material returns the incrementally tracked material value for color c,
// including pieces held in hand.
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// PsqMidValue sums the midgame piece-square bonus of every board piece of
// color c. Unlike Material this is not tracked incrementally, see the
// comment on the material field.
func (p *Position) PsqMidValue(c Color) Value {
	var v Value
	for pt := Pawn; pt <= Dragon; pt++ {
		piece := MakePiece(c, pt)
		for bb := p.piecesBb[c][pt]; bb != BbZero; {
			v += PosMidValue(piece, bb.PopLsb())
		}
	}
	return v
}

// PsqEndValue sums the endgame piece-square bonus of every board piece of
// color c.
func (p *Position) PsqEndValue(c Color) Value {
	var v Value
	for pt := Pawn; pt <= Dragon; pt++ {
		piece := MakePiece(c, pt)
		for bb := p.piecesBb[c][pt]; bb != BbZero; {
			v += PosEndValue(piece, bb.PopLsb())
		}
	}
	return v
}

// LastMove returns the most recently played move, or MoveNone.
func (p *Position) LastMove() Move {
	if p.historyCounter == 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the piece captured by the last move, or
// PieceNone.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter == 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove reports whether the last move played was a capture.
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}

// PlyCount returns the number of half moves played so far.
func (p *Position) PlyCount() int {
	return p.historyCounter
}
