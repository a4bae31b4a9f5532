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

// Package shogierr defines the error taxonomy of the engine as sentinel
// errors callers can test with errors.Is. Search cancellation is not part
// of it: a stopped search is never an error from the caller's point of
// view - the driver always returns a move when one exists.
package shogierr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure classes.
var (
	// ErrIllegalMove - the client supplied a move rejected by the
	// legality checks. No state is mutated.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPosition - SFEN parse failure or a structurally invalid
	// position (missing king, illegal hand piece). No state is mutated.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrResourceExhausted - an allocation during initialization failed.
	// Fatal to the engine instance.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrConfig - a bad option value or a file that could not be loaded.
	// The component logs a diagnostic and continues with defaults.
	ErrConfig = errors.New("configuration error")
)

// IllegalMove wraps ErrIllegalMove with the offending move text.
func IllegalMove(move string) error {
	return fmt.Errorf("%w: %s", ErrIllegalMove, move)
}

// InvalidPosition wraps ErrInvalidPosition with a reason.
func InvalidPosition(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPosition, reason)
}

// Config wraps ErrConfig with a reason.
func Config(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfig, reason)
}
