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

package types

// File represents a shogi board file, numbered 1-9 from the right edge
// of Black's side (the conventional USI/SFEN numbering).
type File uint8

// noinspection GoUnusedConst
const (
	File1      File = iota
	File2      File = iota
	File3      File = iota
	File4      File = iota
	File5      File = iota
	File6      File = iota
	File7      File = iota
	File8      File = iota
	File9      File = iota
	FileNone   File = iota
	FileLength      = int(FileNone)
)

// IsValid checks if f represents a valid file.
func (f File) IsValid() bool {
	return f < FileNone
}

const fileLabels string = "123456789"

// Bb returns a Bitboard of all squares on the given file.
func (f File) Bb() Bitboard {
	return fileBb[f]
}

// String returns the USI digit for the file (1-9), or "-" if invalid.
func (f File) String() string {
	if f >= FileNone {
		return "-"
	}
	return string(fileLabels[f])
}
