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
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyo-shogi/shogo/internal/config"
)

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	config.Settings.Search.UseBook = false
	code := m.Run()
	os.Exit(code)
}

const testSuiteContent = `# comment lines and empty lines are skipped

lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1 bm 7g7f 2g2f 6g6f; id "opening choice";
8k/9/8P/9/9/9/9/9/K8 b G 1 dm 1; id "gold drop mate";
8k/9/8L/9/9/9/9/9/K8 b G 1 am 9i9h; id "no idle king move";
`

func writeTempSuite(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "shogo-suite")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	file := filepath.Join(dir, "suite.sfen")
	require.NoError(t, ioutil.WriteFile(file, []byte(content), 0644))
	return file
}

func TestReadSuite(t *testing.T) {
	file := writeTempSuite(t, testSuiteContent)
	ts, err := NewTestSuite(file, 0, 3)
	require.NoError(t, err)
	require.Len(t, ts.Tests, 3)

	assert.Equal(t, BM, ts.Tests[0].tType)
	assert.Equal(t, 3, ts.Tests[0].targetMoves.Len())
	assert.Equal(t, "opening choice", ts.Tests[0].id)

	assert.Equal(t, DM, ts.Tests[1].tType)
	assert.Equal(t, 1, ts.Tests[1].mateDepth)

	assert.Equal(t, AM, ts.Tests[2].tType)
}

func TestReadSuiteSkipsInvalidLines(t *testing.T) {
	content := `not a valid sfen at all bm 7g7f;
lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1 bm 7g7e; id "illegal target";
lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1 bm 7g7f;
`
	file := writeTempSuite(t, content)
	ts, err := NewTestSuite(file, 0, 2)
	require.NoError(t, err)
	assert.Len(t, ts.Tests, 1)
}

func TestRunSuite(t *testing.T) {
	file := writeTempSuite(t, testSuiteContent)
	ts, err := NewTestSuite(file, 0, 3)
	require.NoError(t, err)

	ts.RunTests()
	require.NotNil(t, ts.LastResult)
	assert.Equal(t, 3, ts.LastResult.Counter)
	// the mate and avoid-move tests are unambiguous and must pass
	assert.Equal(t, Success, ts.Tests[1].rType)
	assert.Equal(t, Success, ts.Tests[2].rType)
}

func TestMissingSuiteFile(t *testing.T) {
	_, err := NewTestSuite("does-not-exist.sfen", 0, 1)
	assert.Error(t, err)
}
