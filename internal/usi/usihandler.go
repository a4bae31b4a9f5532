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

// Package usi contains the UsiHandler data structure and functionality to
// handle the USI protocol communication between a shogi user interface
// and the engine's search.
package usi

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	"github.com/kyo-shogi/shogo/internal/search"
	. "github.com/kyo-shogi/shogo/internal/types"
	"github.com/kyo-shogi/shogo/internal/version"
)

var out = message.NewPrinter(language.Japanese)
var log *logging.Logger

// UsiHandler handles all communication with the shogi UI via the USI
// protocol and controls options and search.
// Create an instance with NewUsiHandler().
type UsiHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
}

// ///////////////////////////////////////////////////////////
// Public
// ///////////////////////////////////////////////////////////

// NewUsiHandler creates a new UsiHandler instance and connects it with a
// new Search instance as its USI driver.
func NewUsiHandler() *UsiHandler {
	if log == nil {
		log = myLogging.GetLog("usi")
	}
	u := &UsiHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    movegen.NewPerft(),
	}
	u.mySearch.SetUsiHandler(u)
	return u
}

// Loop starts the main loop of the UsiHandler reading USI commands from
// stdin until "quit".
func (u *UsiHandler) Loop() {
	u.loop()
}

// Command feeds a single command string into the handler as if it had
// been received over stdin. Mainly used for testing.
func (u *UsiHandler) Command(cmd string) {
	u.handleReceivedCommand(cmd)
}

// SendReadyOk tells the UI that the engine is initialized and ready.
func (u *UsiHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary info string to the UI.
func (u *UsiHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

// SendIterationEndInfo sends the progress info line after each completed
// iteration: depth, score, nodes, time and pv.
func (u *UsiHandler) SendIterationEndInfo(depth int, seldepth int, value Value, nodes uint64, nps uint64, time time.Duration, pv moveslice.MoveSlice) {
	u.send(out.Sprintf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), nodes, nps, time.Milliseconds(), pv.StringUci()))
}

// SendAspirationResearchInfo reports an aspiration window fail low/high
// with the current bound before the re-search.
func (u *UsiHandler) SendAspirationResearchInfo(depth int, seldepth int, value Value, bound string, nodes uint64, nps uint64, time time.Duration, pv moveslice.MoveSlice) {
	u.send(out.Sprintf("info depth %d seldepth %d score %s %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), bound, nodes, nps, time.Milliseconds(), pv.StringUci()))
}

// SendCurrentRootMove sends the root move currently being searched.
func (u *UsiHandler) SendCurrentRootMove(currMove Move, moveNumber int) {
	u.send(out.Sprintf("info currmove %s currmovenumber %d", currMove.StringUci(), moveNumber+1))
}

// SendSearchUpdate sends a regular update on the running search.
func (u *UsiHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, time time.Duration, hashfull int) {
	u.send(out.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, time.Milliseconds(), hashfull))
}

// SendCurrentLine sends the variation currently being searched.
func (u *UsiHandler) SendCurrentLine(moveList moveslice.MoveSlice) {
	u.send(out.Sprintf("info currline %s", moveList.StringUci()))
}

// SendResult sends the search result to the UI. In shogi a position
// without a legal move is lost and the engine resigns.
func (u *UsiHandler) SendResult(bestMove Move, ponderMove Move) {
	if bestMove == MoveNone {
		u.send("bestmove resign")
		return
	}
	var result strings.Builder
	result.WriteString("bestmove ")
	result.WriteString(bestMove.StringUci())
	if ponderMove != MoveNone {
		result.WriteString(" ponder ")
		result.WriteString(ponderMove.StringUci())
	}
	u.send(result.String())
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

func (u *UsiHandler) loop() {
	for u.InIo.Scan() {
		if !u.handleReceivedCommand(u.InIo.Text()) {
			break
		}
	}
}

// handleReceivedCommand dispatches one USI command line. Returns false on
// quit.
func (u *UsiHandler) handleReceivedCommand(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return true
	}
	log.Debugf("usi << %s", cmd)
	tokens := strings.Fields(cmd)
	switch tokens[0] {
	case "quit":
		u.mySearch.StopSearch()
		return false
	case "usi":
		u.usiCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.isReadyCommand()
	case "usinewgame":
		u.usiNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "ponderhit":
		u.ponderHitCommand()
	case "gameover":
		u.stopCommand()
	case "perft":
		u.perftCommand(tokens)
	case "noop":
	default:
		log.Warningf("Error: Unknown command: %s", cmd)
	}
	return true
}

func (u *UsiHandler) usiCommand() {
	u.send("id name Shogo " + version.Version())
	u.send("id author Shogo project")
	for _, o := range *usiOptions.GetOptions() {
		u.send(o)
	}
	u.send("usiok")
}

func (u *UsiHandler) setOptionCommand(tokens []string) {
	var name, value strings.Builder
	state := ""
	for _, t := range tokens[1:] {
		switch t {
		case "name", "value":
			state = t
		default:
			target := &name
			if state == "value" {
				target = &value
			}
			if target.Len() > 0 {
				target.WriteString(" ")
			}
			target.WriteString(t)
		}
	}
	if name.Len() == 0 {
		log.Warning("setoption without option name")
		return
	}
	o, found := usiOptions[name.String()]
	if !found {
		log.Warningf("setoption: unknown option %s", name.String())
		return
	}
	o.currentValue = value.String()
	o.pHandler(u, o)
}

func (u *UsiHandler) isReadyCommand() {
	// IsReady runs the lazy initialization and sends readyok through the
	// driver callback
	u.mySearch.IsReady()
}

func (u *UsiHandler) usiNewGameCommand() {
	u.mySearch.NewGame()
	u.myPosition = position.NewPosition()
}

func (u *UsiHandler) ponderHitCommand() {
	u.mySearch.PonderHit()
}

func (u *UsiHandler) stopCommand() {
	u.myPerft.Stop()
	u.mySearch.StopSearch()
}

func (u *UsiHandler) perftCommand(tokens []string) {
	depth := 4
	var err error
	if len(tokens) > 1 {
		if depth, err = strconv.Atoi(tokens[1]); err != nil {
			log.Warningf("perft: invalid depth %s, using 4", tokens[1])
			depth = 4
		}
	}
	go u.myPerft.StartPerft(u.myPosition.StringSfen(), depth)
}

// positionCommand sets the current position: "position startpos" or
// "position sfen <sfen>", optionally followed by "moves m1 m2 ...".
func (u *UsiHandler) positionCommand(tokens []string) {

	// build the sfen and find the moves part
	sfen := position.StartSfen
	moveIdx := -1
	if len(tokens) > 1 {
		switch tokens[1] {
		case "startpos":
			if len(tokens) > 2 && tokens[2] == "moves" {
				moveIdx = 3
			}
		case "sfen":
			var sfenParts []string
			i := 2
			for ; i < len(tokens) && tokens[i] != "moves"; i++ {
				sfenParts = append(sfenParts, tokens[i])
			}
			sfen = strings.Join(sfenParts, " ")
			if i < len(tokens) && tokens[i] == "moves" {
				moveIdx = i + 1
			}
		default:
			log.Warningf("position: invalid command: %s", strings.Join(tokens, " "))
			return
		}
	}

	p, err := position.NewPositionSfen(sfen)
	if err != nil {
		log.Warningf("position: invalid sfen: %s", sfen)
		return
	}

	// apply the move list - each move must be legal in sequence
	if moveIdx > 0 {
		for _, moveStr := range tokens[moveIdx:] {
			move := movegen.GetMoveFromUci(p, moveStr)
			if move == MoveNone {
				log.Warningf("position: invalid or illegal move: %s", moveStr)
				return
			}
			p.DoMove(move)
		}
	}
	u.myPosition = p
	log.Debugf("position: %s", p.StringSfen())
}

// goCommand starts a search on the current position with the limits read
// from the command.
func (u *UsiHandler) goCommand(tokens []string) {
	searchLimits, ok := u.readSearchLimits(tokens)
	if !ok {
		return
	}
	// start the search - StartSearch returns when the search is running
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
}

// readSearchLimits parses the tokens of a "go" command into search
// limits. Returns false when the command was malformed.
func (u *UsiHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	searchLimits := search.NewSearchLimits()

	i := 1
	for i < len(tokens) {
		var err error
		switch tokens[i] {
		case "searchmoves":
			for i++; i < len(tokens); i++ {
				move := movegen.GetMoveFromUci(u.myPosition, tokens[i])
				if move == MoveNone {
					i--
					break
				}
				searchLimits.Moves.PushBack(move)
			}
		case "infinite":
			searchLimits.Infinite = true
		case "ponder":
			searchLimits.Ponder = true
		case "depth":
			i++
			if searchLimits.Depth, err = strconv.Atoi(tokens[i]); err != nil {
				log.Warningf("go: invalid depth: %s", tokens[i])
				return nil, false
			}
		case "nodes":
			i++
			if searchLimits.Nodes, err = strconv.ParseUint(tokens[i], 10, 64); err != nil {
				log.Warningf("go: invalid nodes: %s", tokens[i])
				return nil, false
			}
		case "mate":
			i++
			if searchLimits.Mate, err = strconv.Atoi(tokens[i]); err != nil {
				log.Warningf("go: invalid mate: %s", tokens[i])
				return nil, false
			}
		case "movetime":
			i++
			ms, e := strconv.Atoi(tokens[i])
			if e != nil {
				log.Warningf("go: invalid movetime: %s", tokens[i])
				return nil, false
			}
			searchLimits.MoveTime = time.Duration(ms) * time.Millisecond
			searchLimits.TimeControl = true
		case "btime":
			i++
			ms, e := strconv.Atoi(tokens[i])
			if e != nil {
				log.Warningf("go: invalid btime: %s", tokens[i])
				return nil, false
			}
			searchLimits.BlackTime = time.Duration(ms) * time.Millisecond
			searchLimits.TimeControl = true
		case "wtime":
			i++
			ms, e := strconv.Atoi(tokens[i])
			if e != nil {
				log.Warningf("go: invalid wtime: %s", tokens[i])
				return nil, false
			}
			searchLimits.WhiteTime = time.Duration(ms) * time.Millisecond
			searchLimits.TimeControl = true
		case "binc":
			i++
			ms, e := strconv.Atoi(tokens[i])
			if e != nil {
				log.Warningf("go: invalid binc: %s", tokens[i])
				return nil, false
			}
			searchLimits.BlackInc = time.Duration(ms) * time.Millisecond
		case "winc":
			i++
			ms, e := strconv.Atoi(tokens[i])
			if e != nil {
				log.Warningf("go: invalid winc: %s", tokens[i])
				return nil, false
			}
			searchLimits.WhiteInc = time.Duration(ms) * time.Millisecond
		case "byoyomi":
			i++
			ms, e := strconv.Atoi(tokens[i])
			if e != nil {
				log.Warningf("go: invalid byoyomi: %s", tokens[i])
				return nil, false
			}
			searchLimits.Byoyomi = time.Duration(ms) * time.Millisecond
			searchLimits.TimeControl = true
		case "movestogo":
			i++
			if searchLimits.MovesToGo, err = strconv.Atoi(tokens[i]); err != nil {
				log.Warningf("go: invalid movestogo: %s", tokens[i])
				return nil, false
			}
		default:
			log.Warningf("go: unknown option %s", tokens[i])
		}
		i++
	}

	// sanity: without any limit we search infinite
	if !searchLimits.TimeControl && searchLimits.Depth == 0 && searchLimits.Nodes == 0 &&
		searchLimits.Mate == 0 && !searchLimits.Infinite && !searchLimits.Ponder {
		log.Debug("go: no limits given - searching infinite")
		searchLimits.Infinite = true
	}

	return searchLimits, true
}

// send writes one protocol line to the UI.
func (u *UsiHandler) send(s string) {
	log.Debugf("usi >> %s", s)
	_, _ = u.OutIo.WriteString(s)
	_, _ = u.OutIo.WriteString("\n")
	_ = u.OutIo.Flush()
}
