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

// Shogo is a USI shogi engine. Started without arguments it reads USI
// commands from stdin. Command line flags select a one-shot mode instead:
// a perft run, a fixed-depth benchmark search on a position, a nodes
// per second test, or a test suite run.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kyo-shogi/shogo/internal/config"
	"github.com/kyo-shogi/shogo/internal/logging"
	"github.com/kyo-shogi/shogo/internal/movegen"
	"github.com/kyo-shogi/shogo/internal/position"
	"github.com/kyo-shogi/shogo/internal/search"
	"github.com/kyo-shogi/shogo/internal/testsuite"
	"github.com/kyo-shogi/shogo/internal/usi"
	"github.com/kyo-shogi/shogo/internal/util"
	"github.com/kyo-shogi/shogo/internal/version"
)

var out = message.NewPrinter(language.Japanese)

func main() {
	// command line args
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(critical|error|warning|notice|info|debug)")
	hashSize := flag.Int("hash", 0, "size of the transposition table in MB")
	bookPath := flag.String("bookpath", "", "path to opening book files")
	bookFile := flag.String("bookfile", "", "opening book file\nplease also provide -bookformat otherwise this will be ignored")
	bookFormat := flag.String("bookformat", "", "format of the opening book\n(json|bin)")
	testSuitePath := flag.String("testsuite", "", "path to a file containing SFEN test positions")
	testMovetime := flag.Int("testtime", 2000, "search time for each test position in milliseconds")
	testSearchdepth := flag.Int("testdepth", 0, "search depth limit for each test position")
	perftDepth := flag.Int("perft", 0, "starts perft on the start position with the given depth\nuse -sfen to provide a different position")
	sfen := flag.String("sfen", position.StartSfen, "sfen for perft, bench and nps test")
	benchDepth := flag.Int("bench", 0, "one-shot search of -sfen to the given depth, printing the pv")
	nps := flag.Int("nps", 0, "starts a nodes per second test for the given number of seconds\nuse -sfen to provide a different position")
	cpuProfile := flag.Bool("cpuprofile", false, "write a cpu profile to the working directory")
	memProfile := flag.Bool("memprofile", false, "write a memory profile to the working directory")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *memProfile {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	// the config file needs to be set before config.Setup() is called,
	// otherwise the default is used
	config.ConfFile = *configFile
	config.Setup()

	// command line options overwrite config file values
	if *logLvl != "" {
		config.LogLevel = *logLvl
	}
	if *searchLogLvl != "" {
		config.SearchLogLevel = *searchLogLvl
	}
	logging.SetLevel(config.LogLevel)

	if *hashSize > 0 {
		config.Settings.Search.TTSize = *hashSize
	}
	if *bookPath != "" {
		config.Settings.Search.BookPath = *bookPath
	}
	if *bookFile != "" && *bookFormat != "" {
		config.Settings.Search.BookFile = *bookFile
		config.Settings.Search.BookFormat = *bookFormat
	}

	// nps test
	if *nps != 0 {
		config.Settings.Search.UseBook = false
		s := search.NewSearch()
		p := position.NewPosition(*sfen)
		sl := search.NewSearchLimits()
		sl.TimeControl = true
		sl.MoveTime = time.Duration(*nps) * time.Second
		s.StartSearch(*p, *sl)
		s.WaitWhileSearching()
		out.Println()
		out.Println("NPS: ", util.Nps(s.NodesVisited(), s.LastSearchResult().SearchTime))
		return
	}

	// perft
	if *perftDepth != 0 {
		perft := movegen.NewPerft()
		for i := 1; i <= *perftDepth; i++ {
			perft.StartPerft(*sfen, i)
		}
		return
	}

	// one-shot benchmark search
	if *benchDepth != 0 {
		config.Settings.Search.UseBook = false
		s := search.NewSearch()
		p := position.NewPosition(*sfen)
		sl := search.NewSearchLimits()
		sl.Depth = *benchDepth
		s.StartSearch(*p, *sl)
		s.WaitWhileSearching()
		result := s.LastSearchResult()
		out.Printf("bestmove %s (%s)\n", result.BestMove.StringUci(), result.BestValue.String())
		out.Printf("pv %s\n", result.Pv.StringUci())
		return
	}

	// test suite
	if *testSuitePath != "" {
		if _, err := os.Stat(*testSuitePath); err != nil {
			fmt.Println(err)
			return
		}
		ts, err := testsuite.NewTestSuite(*testSuitePath, time.Duration(*testMovetime)*time.Millisecond, *testSearchdepth)
		if err != nil {
			fmt.Println(err)
			return
		}
		ts.RunTests()
		return
	}

	// start the usi handler and wait for communication with the shogi UI
	u := usi.NewUsiHandler()
	u.Loop()
}

func printVersionInfo() {
	out.Printf("Shogo %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
