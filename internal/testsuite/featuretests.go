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

package testsuite

import (
	"time"

	"github.com/kyo-shogi/shogo/internal/config"
	myLogging "github.com/kyo-shogi/shogo/internal/logging"
)

// featureConfig is one named search configuration of the feature test
// matrix.
type featureConfig struct {
	name  string
	setup func()
}

// featureMatrix lists the configurations to compare: the full engine
// against the engine with one major technique disabled each. Comparing
// the success rates and node counts shows what each technique is worth.
var featureMatrix = []featureConfig{
	{"all features", func() {}},
	{"no transposition table", func() { config.Settings.Search.UseTT = false }},
	{"no null move pruning", func() { config.Settings.Search.UseNullMove = false }},
	{"no late move reduction", func() { config.Settings.Search.UseLmr = false }},
	{"no aspiration windows", func() { config.Settings.Search.UseAspiration = false }},
	{"no quiescence", func() { config.Settings.Search.UseQuiescence = false }},
	{"no killer/history", func() {
		config.Settings.Search.UseKiller = false
		config.Settings.Search.UseHistoryCounter = false
		config.Settings.Search.UseCounterMoves = false
	}},
}

// FeatureTests runs the given suite once per feature configuration and
// prints a comparison. The global configuration is restored between runs
// by re-applying the previous values.
func FeatureTests(suitePath string, searchTime time.Duration, depth int) {
	if log == nil {
		log = myLogging.GetLog("testsuite")
	}

	saved := config.Settings.Search

	for _, fc := range featureMatrix {
		config.Settings.Search = saved
		fc.setup()

		out.Printf("\n######## Feature test: %s ########\n", fc.name)
		ts, err := NewTestSuite(suitePath, searchTime, depth)
		if err != nil {
			log.Errorf("Feature test: could not read suite %s: %s", suitePath, err)
			break
		}
		ts.RunTests()
		if ts.LastResult != nil {
			out.Printf("Feature '%s': %d/%d successful, %d nodes\n",
				fc.name, ts.LastResult.SuccessCounter, ts.LastResult.Counter, ts.LastResult.Nodes)
		}
	}

	config.Settings.Search = saved
}
