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

package movegen

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	. "github.com/kyo-shogi/shogo/internal/types"
)

var out = message.NewPrinter(language.English)
var perftLog = myLogging.GetLog("perft")

// Perft counts the leaf nodes of the full game tree to a fixed depth, the
// standard way to validate a move generator: known correct node counts for
// the start position exist at every depth, and any generator bug (a
// missing drop restriction, a wrong promotion zone, ...) shows up as a
// mismatch.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	PromotionCounter uint64
	DropCounter      uint64
	stopFlag         bool
}

// NewPerft creates a new empty Perft instance.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop can be used when perft has been started in a goroutine to stop the
// currently running perft test.
func (perft *Perft) Stop() {
	perft.stopFlag = true
}

// StartPerft runs perft from sfen to the given depth.
func (perft *Perft) StartPerft(sfen string, depth int) {
	perft.stopFlag = false
	if depth <= 0 {
		depth = 1
	}
	perft.resetCounter()
	p, err := position.NewPositionSfen(sfen)
	if err != nil {
		perftLog.Errorf("perft: invalid sfen %s: %s", sfen, err)
		return
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("SFEN: %s\n", sfen)
	out.Printf("-----------------------------------------\n")

	start := time.Now()
	result := perft.miniMax(depth, p)
	elapsed := time.Since(start)

	if perft.stopFlag {
		out.Print("Perft stopped\n")
		return
	}

	perft.Nodes = result
	out.Printf("Time         : %s\n", elapsed)
	out.Printf("NPS          : %d nps\n", (perft.Nodes*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()+1))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", perft.Nodes)
	out.Printf("   Captures  : %d\n", perft.CaptureCounter)
	out.Printf("   Drops     : %d\n", perft.DropCounter)
	out.Printf("   Promotions: %d\n", perft.PromotionCounter)
	out.Printf("   Checks    : %d\n", perft.CheckCounter)
	out.Printf("   CheckMates: %d\n", perft.CheckMateCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)
}

func (perft *Perft) miniMax(depth int, p *position.Position) uint64 {
	var moves moveslice.MoveSlice
	GenerateLegalMoves(p, GenAll, &moves)

	if depth == 1 {
		for i := 0; i < moves.Len(); i++ {
			perft.countLeaf(p, moves.At(i))
		}
		return uint64(moves.Len())
	}

	var totalNodes uint64
	for i := 0; i < moves.Len(); i++ {
		if perft.stopFlag {
			return 0
		}
		p.DoMove(moves.At(i))
		totalNodes += perft.miniMax(depth-1, p)
		p.UndoMove()
	}
	return totalNodes
}

func (perft *Perft) countLeaf(p *position.Position, move Move) {
	if p.IsCapturingMove(move) {
		perft.CaptureCounter++
	}
	if move.IsDrop() {
		perft.DropCounter++
	}
	if move.IsPromotion() {
		perft.PromotionCounter++
	}
	p.DoMove(move)
	if p.HasCheck() {
		perft.CheckCounter++
		if !HasLegalMove(p) {
			perft.CheckMateCounter++
		}
	}
	p.UndoMove()
}

func (perft *Perft) resetCounter() {
	perft.Nodes = 0
	perft.CheckCounter = 0
	perft.CheckMateCounter = 0
	perft.CaptureCounter = 0
	perft.PromotionCounter = 0
	perft.DropCounter = 0
}
