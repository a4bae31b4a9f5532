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

// Package logging is a thin helper around "github.com/op/go-logging" to
// reduce the setup needed in each file to one line: logging.GetLog("name").
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"
)

var standardFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)

// currentLevel is the level given to every logger created through GetLog;
// SetLevel updates it from config.LogLevel (TOML config / CLI flags).
var currentLevel = logging.INFO

// SetLevel changes the level used by loggers created from now on and the
// level of go-logging's default backend. Loggers already returned by GetLog
// have their own backend and keep the level they were created with.
func SetLevel(level string) {
	if parsed, err := logging.LogLevel(level); err == nil {
		currentLevel = parsed
	}
	logging.SetLevel(currentLevel, "")
}

// GetLog returns a named Logger preconfigured with an os.Stdout backend and
// the standard time/package/level/message format. Each call site typically
// calls this once at package scope, e.g. `var log = logging.GetLog("search")`.
func GetLog(name string) *logging.Logger {
	l := logging.MustGetLogger(name)
	backend := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(backend, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(currentLevel, "")
	l.SetBackend(leveled)
	return l
}

// GetTestLog returns a Logger intended for use from _test.go files. It is
// the same as GetLog: same format and the current level.
func GetTestLog(name string) *logging.Logger {
	return GetLog(name)
}
