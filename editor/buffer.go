//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package editor

import (
	"bytes"
)

// A Buffer is the document being edited: an ordered sequence of rows, a
// mutation counter, and the selected highlight descriptor. Rows are
// addressed by index so inserts and deletes never invalidate another
// row's identity.
type Buffer struct {
	rows     []*Row
	dirty    int
	fileName string
	syntax   *Syntax
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) RowCount() int {
	return len(b.rows)
}

func (b *Buffer) Row(at int) *Row {
	return b.rows[at]
}

// Dirty reports whether the buffer has mutations not yet written out.
func (b *Buffer) Dirty() bool {
	return b.dirty != 0
}

func (b *Buffer) ClearDirty() {
	b.dirty = 0
}

func (b *Buffer) FileName() string {
	return b.fileName
}

// SetFileName records the name the buffer saves to and reselects the
// highlight descriptor to match it.
func (b *Buffer) SetFileName(name string) {
	b.fileName = name
	b.SelectSyntax()
}

// InsertRow inserts a new row at the given index; out-of-range indices
// are a no-op.
func (b *Buffer) InsertRow(at int, content []byte) {
	if at < 0 || at > len(b.rows) {
		return
	}
	row := newRow(content)
	b.rows = append(b.rows, nil)
	copy(b.rows[at+1:], b.rows[at:])
	b.rows[at] = row
	b.rehighlightFrom(at)
	b.dirty++
}

// DeleteRow removes the row at the given index; out of range is a no-op.
func (b *Buffer) DeleteRow(at int) {
	if at < 0 || at >= len(b.rows) {
		return
	}
	b.rows = append(b.rows[:at], b.rows[at+1:]...)
	b.dirty++
}

// InsertChar splices a byte into a row, clamping an out-of-range column
// to the end of the row.
func (b *Buffer) InsertChar(row, at int, c byte) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	b.rows[row].insertChar(at, c)
	b.rehighlightFrom(row)
	b.dirty++
}

// DeleteChar removes one byte from a row; out-of-range columns are a
// no-op and leave the mutation counter alone.
func (b *Buffer) DeleteChar(row, at int) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	if !b.rows[row].deleteChar(at) {
		return
	}
	b.rehighlightFrom(row)
	b.dirty++
}

// AppendBytes concatenates bytes onto the end of a row.
func (b *Buffer) AppendBytes(row int, s []byte) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	b.rows[row].appendBytes(s)
	b.rehighlightFrom(row)
	b.dirty++
}

// SplitRow moves everything from the given column into a new row
// inserted just below, truncating the original. Used for newline
// insertion mid-row.
func (b *Buffer) SplitRow(cy, cx int) {
	if cy < 0 || cy >= len(b.rows) {
		return
	}
	row := b.rows[cy]
	if cx < 0 {
		cx = 0
	}
	if cx > len(row.raw) {
		cx = len(row.raw)
	}
	b.InsertRow(cy+1, row.raw[cx:])
	row.truncate(cx)
	b.rehighlightFrom(cy)
}

// JoinWithPrevious appends the row's content onto the row above, deletes
// it, and returns the previous row's pre-join length (the natural cursor
// column after a backspace at column zero).
func (b *Buffer) JoinWithPrevious(cy int) int {
	if cy <= 0 || cy >= len(b.rows) {
		return 0
	}
	col := b.rows[cy-1].Length()
	b.AppendBytes(cy-1, b.rows[cy].raw)
	b.DeleteRow(cy)
	return col
}

// Bytes serializes every row's raw content with one newline appended per
// row, including the last. This is the persisted file format; a source
// file without a final newline does not round-trip.
func (b *Buffer) Bytes() []byte {
	var out bytes.Buffer
	for _, row := range b.rows {
		out.Write(row.raw)
		out.WriteByte('\n')
	}
	return out.Bytes()
}
