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
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/dmelton/vee/types"
)

// The Editor manages the editing of text in a Buffer: cursor position,
// viewport offsets, and the transient status message. Cursor.Col indexes
// raw bytes of the current row; Cursor.Row may equal the row count, the
// append position.
type Editor struct {
	Buffer *Buffer
	Cursor types.Point
	Offset types.Size
	size   types.Size
	rx     int

	statusMessage string
	statusTime    time.Time
}

func NewEditor() *Editor {
	return &Editor{Buffer: NewBuffer()}
}

// SetSize tells the editor how large the visible text area is; scrolling
// and paging are computed against it.
func (e *Editor) SetSize(s types.Size) {
	e.size = s
}

func (e *Editor) Size() types.Size {
	return e.size
}

// RX is the display column of the cursor as of the last Scroll.
func (e *Editor) RX() int {
	return e.rx
}

func (e *Editor) SetStatusMessage(format string, args ...interface{}) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

func (e *Editor) StatusMessage() (string, time.Time) {
	return e.statusMessage, e.statusTime
}

// ReadFile loads a file line by line, stripping trailing CR/LF, each
// line becoming one row. The loaded buffer starts clean.
func (e *Editor) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	e.Buffer.SetFileName(path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		e.Buffer.InsertRow(e.Buffer.RowCount(), line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	e.Buffer.ClearDirty()
	return nil
}

// WriteFile serializes the buffer and rewrites its file in place,
// returning the number of bytes written. Not atomic: the file is
// truncated before the new content lands.
func (e *Editor) WriteFile() (int, error) {
	f, err := os.Create(e.Buffer.FileName())
	if err != nil {
		return 0, err
	}
	defer f.Close()

	content := e.Buffer.Bytes()
	n, err := f.Write(content)
	if err != nil {
		return n, err
	}
	e.Buffer.ClearDirty()
	return n, nil
}

func (e *Editor) currentRow() *Row {
	if e.Cursor.Row >= e.Buffer.RowCount() {
		return nil
	}
	return e.Buffer.Row(e.Cursor.Row)
}

// Scroll recomputes the cursor's display column and re-anchors the
// viewport so the cursor is always visible; offsets are clamped, never
// left stale.
func (e *Editor) Scroll() {
	e.rx = 0
	if row := e.currentRow(); row != nil {
		e.rx = row.CxToRx(e.Cursor.Col)
	}

	if e.Cursor.Row < e.Offset.Rows {
		e.Offset.Rows = e.Cursor.Row
	}
	if e.Cursor.Row >= e.Offset.Rows+e.size.Rows {
		e.Offset.Rows = e.Cursor.Row - e.size.Rows + 1
	}
	if e.rx < e.Offset.Cols {
		e.Offset.Cols = e.rx
	}
	if e.rx >= e.Offset.Cols+e.size.Cols {
		e.Offset.Cols = e.rx - e.size.Cols + 1
	}
}

// MoveCursor moves one step. Left at column zero wraps to the end of the
// previous row, right at the end of a row wraps to the start of the
// next, and the column snaps to the new row's length afterward.
func (e *Editor) MoveCursor(direction int) {
	row := e.currentRow()

	switch direction {
	case types.MoveLeft:
		if e.Cursor.Col != 0 {
			e.Cursor.Col--
		} else if e.Cursor.Row > 0 {
			e.Cursor.Row--
			e.Cursor.Col = e.Buffer.Row(e.Cursor.Row).Length()
		}
	case types.MoveRight:
		if row != nil && e.Cursor.Col < row.Length() {
			e.Cursor.Col++
		} else if row != nil && e.Cursor.Col == row.Length() {
			e.Cursor.Row++
			e.Cursor.Col = 0
		}
	case types.MoveUp:
		if e.Cursor.Row != 0 {
			e.Cursor.Row--
		}
	case types.MoveDown:
		if e.Cursor.Row < e.Buffer.RowCount() {
			e.Cursor.Row++
		}
	}

	rowLen := 0
	if row = e.currentRow(); row != nil {
		rowLen = row.Length()
	}
	if e.Cursor.Col > rowLen {
		e.Cursor.Col = rowLen
	}
}

// InsertChar inserts one byte at the cursor and advances it, growing the
// buffer by a row when the cursor sits at the append position.
func (e *Editor) InsertChar(c byte) {
	if e.Cursor.Row == e.Buffer.RowCount() {
		e.Buffer.InsertRow(e.Buffer.RowCount(), nil)
	}
	e.Buffer.InsertChar(e.Cursor.Row, e.Cursor.Col, c)
	e.Cursor.Col++
}

// InsertNewline splits the current row at the cursor, or inserts a blank
// row above when the cursor is at column zero.
func (e *Editor) InsertNewline() {
	if e.Cursor.Col == 0 {
		e.Buffer.InsertRow(e.Cursor.Row, nil)
	} else {
		e.Buffer.SplitRow(e.Cursor.Row, e.Cursor.Col)
	}
	e.Cursor.Row++
	e.Cursor.Col = 0
}

// DeleteChar removes the byte left of the cursor, joining with the
// previous row when the cursor is at column zero.
func (e *Editor) DeleteChar() {
	if e.Cursor.Row == e.Buffer.RowCount() {
		return
	}
	if e.Cursor.Col == 0 && e.Cursor.Row == 0 {
		return
	}
	if e.Cursor.Col > 0 {
		e.Buffer.DeleteChar(e.Cursor.Row, e.Cursor.Col-1)
		e.Cursor.Col--
	} else {
		e.Cursor.Col = e.Buffer.JoinWithPrevious(e.Cursor.Row)
		e.Cursor.Row--
	}
}

// PageUp repositions the cursor at the top of the viewport and repeats a
// single-line move for a full page.
func (e *Editor) PageUp() {
	e.Cursor.Row = e.Offset.Rows
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(types.MoveUp)
	}
}

// PageDown repositions the cursor at the bottom of the viewport and
// repeats a single-line move for a full page.
func (e *Editor) PageDown() {
	e.Cursor.Row = e.Offset.Rows + e.size.Rows - 1
	if e.Cursor.Row > e.Buffer.RowCount() {
		e.Cursor.Row = e.Buffer.RowCount()
	}
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(types.MoveDown)
	}
}

func (e *Editor) MoveToStartOfLine() {
	e.Cursor.Col = 0
}

func (e *Editor) MoveToEndOfLine() {
	if row := e.currentRow(); row != nil {
		e.Cursor.Col = row.Length()
	}
}
