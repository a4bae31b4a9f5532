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

// Package testsuite runs files of curated shogi test positions against
// the engine as a regression harness. Each line holds an SFEN followed by
// EPD-like opcodes: "bm" (best move, USI notation), "am" (avoid move) and
// "dm" (direct mate in x moves), plus an optional "id".
//
//	lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1 bm 7g7f; id "opening 1";
package testsuite

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kyo-shogi/shogo/internal/config"
	myLogging "github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/moveslice"
	"github.com/kyo-shogi/shogo/internal/position"
	"github.com/kyo-shogi/shogo/internal/search"
	. "github.com/kyo-shogi/shogo/internal/types"
	"github.com/kyo-shogi/shogo/internal/util"
)

var out = message.NewPrinter(language.Japanese)
var log *logging.Logger

// testType defines the implemented opcodes for tests.
type testType uint8

// Implemented test types.
const (
	None testType = iota
	DM   testType = iota
	BM   testType = iota
	AM   testType = iota
)

// resultType defines the possible results for a test.
type resultType uint8

// Possible results for a test.
const (
	NotTested resultType = iota
	Skipped   resultType = iota
	Failed    resultType = iota
	Success   resultType = iota
)

// SuiteResult collects the sum of the results of the tests of a suite.
type SuiteResult struct {
	Counter          int
	SuccessCounter   int
	FailedCounter    int
	SkippedCounter   int
	NotTestedCounter int
	Nodes            uint64
	Time             time.Duration
}

// Test is one test position read from a suite file. When the test has
// been run the result is stored back into the instance.
type Test struct {
	id          string
	sfen        string
	tType       testType
	targetMoves moveslice.MoveSlice
	mateDepth   int
	actual      Move
	value       Value
	rType       resultType
	line        string
}

// TestSuite is the data structure for running a file of tests.
type TestSuite struct {
	Tests      []*Test
	Time       time.Duration
	Depth      int
	FilePath   string
	LastResult *SuiteResult
}

// NewTestSuite reads the given file into a new TestSuite instance. Each
// test is run with the given move time and/or depth limit.
func NewTestSuite(filePath string, searchTime time.Duration, depth int) (*TestSuite, error) {
	if log == nil {
		log = myLogging.GetLog("testsuite")
	}

	path, err := util.ResolveFile(filePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ts := &TestSuite{
		Time:     searchTime,
		Depth:    depth,
		FilePath: filePath,
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		if test := parseTestLine(line); test != nil {
			ts.Tests = append(ts.Tests, test)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Infof("Test suite %s with %d tests read", filePath, len(ts.Tests))
	return ts, nil
}

// RunTests runs all tests of the suite sequentially on one search
// instance and prints a result summary.
func (ts *TestSuite) RunTests() {
	if len(ts.Tests) == 0 {
		log.Warning("Test suite has no tests")
		return
	}

	startTime := time.Now()

	// setup search - the book would bypass the very searches we want to
	// regression test
	config.Settings.Search.UseBook = false
	s := search.NewSearch()
	s.IsReady()

	result := &SuiteResult{}
	for i, test := range ts.Tests {
		out.Printf("Test %d of %d\nTest: %s -- Target Result %s\n",
			i+1, len(ts.Tests), test.line, test.targetString())
		ts.runSingleTest(s, test)
		result.Counter++
		switch test.rType {
		case Success:
			result.SuccessCounter++
		case Failed:
			result.FailedCounter++
		case Skipped:
			result.SkippedCounter++
		default:
			result.NotTestedCounter++
		}
		result.Nodes += s.NodesVisited()
	}
	result.Time = time.Since(startTime)
	ts.LastResult = result

	// print report
	out.Printf("\n================================================================================\n")
	out.Printf("Test suite: %s\n", ts.FilePath)
	out.Printf("Time: %s, Nodes: %d\n", result.Time, result.Nodes)
	out.Printf("Successful: %-3d (%d %%)\n", result.SuccessCounter, 100*result.SuccessCounter/result.Counter)
	out.Printf("Failed:     %-3d (%d %%)\n", result.FailedCounter, 100*result.FailedCounter/result.Counter)
	out.Printf("Skipped:    %-3d, Not tested: %-3d\n", result.SkippedCounter, result.NotTestedCounter)
	out.Printf("================================================================================\n")
	for _, test := range ts.Tests {
		out.Printf("%-10s %-8s %-8s (%s) -- %s\n",
			test.id, resultTypeString(test.rType), test.actual.StringUci(), test.value.String(), test.line)
	}
}

// runSingleTest runs one test position on the given search.
func (ts *TestSuite) runSingleTest(s *search.Search, test *Test) {
	p, err := position.NewPositionSfen(test.sfen)
	if err != nil {
		log.Warningf("Skipping test with invalid sfen: %s", test.sfen)
		test.rType = Skipped
		return
	}

	sl := search.NewSearchLimits()
	if ts.Time > 0 {
		sl.MoveTime = ts.Time
		sl.TimeControl = true
	}
	if ts.Depth > 0 {
		sl.Depth = ts.Depth
	}
	if test.tType == DM {
		sl.Mate = test.mateDepth
	}

	s.NewGame()
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	searchResult := s.LastSearchResult()
	test.actual = searchResult.BestMove
	test.value = searchResult.BestValue

	switch test.tType {
	case BM:
		for i := 0; i < test.targetMoves.Len(); i++ {
			if test.targetMoves.At(i).MoveOf() == test.actual.MoveOf() {
				test.rType = Success
				return
			}
		}
		test.rType = Failed
	case AM:
		for i := 0; i < test.targetMoves.Len(); i++ {
			if test.targetMoves.At(i).MoveOf() == test.actual.MoveOf() {
				test.rType = Failed
				return
			}
		}
		test.rType = Success
	case DM:
		// the mate value encodes its distance: mate in x moves is
		// ValueCheckMate - (2x-1) plies for the mating side
		if test.value.IsCheckMateValue() && test.value > 0 &&
			int(ValueCheckMate-test.value) <= 2*test.mateDepth-1 {
			test.rType = Success
			return
		}
		test.rType = Failed
	default:
		test.rType = NotTested
	}
}

// parseTestLine parses one suite line into a Test, nil when the line is
// not a valid test.
func parseTestLine(line string) *Test {
	// the sfen is everything before the first opcode keyword
	opIdx := -1
	var tType testType
	for _, op := range []struct {
		kw string
		tt testType
	}{{" bm ", BM}, {" am ", AM}, {" dm ", DM}} {
		if idx := strings.Index(line, op.kw); idx >= 0 && (opIdx < 0 || idx < opIdx) {
			opIdx = idx
			tType = op.tt
		}
	}
	if opIdx < 0 {
		log.Warningf("Test suite: no opcode in line: %s", line)
		return nil
	}

	sfen := strings.TrimSpace(line[:opIdx])
	p, err := position.NewPositionSfen(sfen)
	if err != nil {
		log.Warningf("Test suite: invalid sfen in line: %s", line)
		return nil
	}

	rest := strings.TrimSpace(line[opIdx:])
	parts := strings.Split(rest, ";")

	test := &Test{sfen: sfen, tType: tType, line: line}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		switch fields[0] {
		case "bm", "am":
			for _, moveStr := range fields[1:] {
				move := movegen.GetMoveFromUci(p, moveStr)
				if move == MoveNone {
					log.Warningf("Test suite: illegal target move %s in line: %s", moveStr, line)
					return nil
				}
				test.targetMoves.PushBack(move.MoveOf())
			}
			if test.targetMoves.Len() == 0 {
				return nil
			}
		case "dm":
			if len(fields) < 2 {
				return nil
			}
			if test.mateDepth, err = strconv.Atoi(fields[1]); err != nil {
				log.Warningf("Test suite: invalid mate depth in line: %s", line)
				return nil
			}
		case "id":
			test.id = strings.Trim(strings.Join(fields[1:], " "), "\"")
		default:
			log.Debugf("Test suite: ignoring unknown opcode %s", fields[0])
		}
	}
	return test
}

func (t *Test) targetString() string {
	switch t.tType {
	case BM:
		return "bm " + t.targetMoves.StringUci()
	case AM:
		return "am " + t.targetMoves.StringUci()
	case DM:
		return out.Sprintf("dm %d", t.mateDepth)
	}
	return "none"
}

func resultTypeString(r resultType) string {
	switch r {
	case Success:
		return "Success"
	case Failed:
		return "Failed"
	case Skipped:
		return "Skipped"
	default:
		return "N/A"
	}
}
