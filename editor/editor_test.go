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
	"os"
	"path/filepath"
	"testing"

	"github.com/dmelton/vee/types"
)

func editorWith(lines ...string) *Editor {
	e := NewEditor()
	for _, line := range lines {
		e.Buffer.InsertRow(e.Buffer.RowCount(), []byte(line))
	}
	e.SetSize(types.Size{Rows: 10, Cols: 20})
	return e
}

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	content := "first line\nsecond\n\nfourth\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	e := NewEditor()
	if err := e.ReadFile(path); err != nil {
		t.Fatalf("Read failed: %+v", err)
	}
	if e.Buffer.RowCount() != 4 {
		t.Fatalf("row count: got %d, want 4", e.Buffer.RowCount())
	}
	if e.Buffer.Dirty() {
		t.Error("buffer dirty after load")
	}

	n, err := e.WriteFile()
	if err != nil {
		t.Fatalf("Write failed: %+v", err)
	}
	if n != len(content) {
		t.Errorf("bytes written: got %d, want %d", n, len(content))
	}
	back, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(back) != content {
		t.Errorf("round trip: got %q, want %q", back, content)
	}
}

func TestReadFileMissing(t *testing.T) {
	e := NewEditor()
	if err := e.ReadFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("reading a missing file did not fail")
	}
}

func TestCursorWrap(t *testing.T) {
	e := editorWith("hello", "hi")

	// left at column zero wraps to the end of the previous row
	e.Cursor = types.Point{Row: 1, Col: 0}
	e.MoveCursor(types.MoveLeft)
	if e.Cursor != (types.Point{Row: 0, Col: 5}) {
		t.Errorf("left wrap: got %+v", e.Cursor)
	}

	// right at the end of a row wraps to the start of the next
	e.MoveCursor(types.MoveRight)
	if e.Cursor != (types.Point{Row: 1, Col: 0}) {
		t.Errorf("right wrap: got %+v", e.Cursor)
	}
}

func TestCursorColumnSnap(t *testing.T) {
	e := editorWith("hello", "hi")
	e.Cursor = types.Point{Row: 0, Col: 5}
	e.MoveCursor(types.MoveDown)
	if e.Cursor != (types.Point{Row: 1, Col: 2}) {
		t.Errorf("snap on move down: got %+v", e.Cursor)
	}
}

func TestCursorStopsAtAppendRow(t *testing.T) {
	e := editorWith("only")
	e.Cursor = types.Point{Row: 0, Col: 0}
	e.MoveCursor(types.MoveDown)
	if e.Cursor.Row != 1 {
		t.Errorf("move to append row: got row %d", e.Cursor.Row)
	}
	e.MoveCursor(types.MoveDown)
	if e.Cursor.Row != 1 {
		t.Errorf("moved past append row: got row %d", e.Cursor.Row)
	}
}

func TestInsertCharOnAppendRow(t *testing.T) {
	e := editorWith()
	e.InsertChar('a')
	if e.Buffer.RowCount() != 1 || string(e.Buffer.Row(0).Raw()) != "a" {
		t.Errorf("insert on empty buffer: %d rows", e.Buffer.RowCount())
	}
	if e.Cursor.Col != 1 {
		t.Errorf("cursor column after insert: got %d", e.Cursor.Col)
	}
}

func TestInsertNewline(t *testing.T) {
	e := editorWith("hello")

	// at column zero, a blank row appears above
	e.Cursor = types.Point{Row: 0, Col: 0}
	e.InsertNewline()
	if e.Buffer.RowCount() != 2 || e.Buffer.Row(0).Length() != 0 {
		t.Errorf("newline at column zero: rows %d", e.Buffer.RowCount())
	}
	if e.Cursor != (types.Point{Row: 1, Col: 0}) {
		t.Errorf("cursor after newline: got %+v", e.Cursor)
	}

	// mid-row, the row splits
	e.Cursor = types.Point{Row: 1, Col: 3}
	e.InsertNewline()
	if got := string(e.Buffer.Row(1).Raw()); got != "hel" {
		t.Errorf("split left half: got %q", got)
	}
	if got := string(e.Buffer.Row(2).Raw()); got != "lo" {
		t.Errorf("split right half: got %q", got)
	}
}

func TestDeleteCharJoinsRows(t *testing.T) {
	e := editorWith("ab", "cd")
	e.Cursor = types.Point{Row: 1, Col: 0}
	e.DeleteChar()
	if e.Buffer.RowCount() != 1 {
		t.Fatalf("row count after join: got %d", e.Buffer.RowCount())
	}
	if got := string(e.Buffer.Row(0).Raw()); got != "abcd" {
		t.Errorf("joined row: got %q", got)
	}
	if e.Cursor != (types.Point{Row: 0, Col: 2}) {
		t.Errorf("cursor after join: got %+v", e.Cursor)
	}

	// nothing to delete at the very start
	e.Cursor = types.Point{Row: 0, Col: 0}
	e.DeleteChar()
	if got := string(e.Buffer.Row(0).Raw()); got != "abcd" {
		t.Errorf("delete at origin changed the row: got %q", got)
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	e := editorWith()
	for i := 0; i < 50; i++ {
		e.Buffer.InsertRow(i, []byte("line"))
	}
	e.SetSize(types.Size{Rows: 10, Cols: 20})

	e.Cursor = types.Point{Row: 25, Col: 0}
	e.Scroll()
	if e.Offset.Rows != 16 {
		t.Errorf("scroll down: offset %d, want 16", e.Offset.Rows)
	}

	e.Cursor = types.Point{Row: 5, Col: 0}
	e.Scroll()
	if e.Offset.Rows != 5 {
		t.Errorf("scroll up: offset %d, want 5", e.Offset.Rows)
	}
}

func TestScrollComputesDisplayColumn(t *testing.T) {
	e := editorWith("\tabc")
	e.Cursor = types.Point{Row: 0, Col: 1}
	e.Scroll()
	if e.RX() != TabStop {
		t.Errorf("display column after tab: got %d, want %d", e.RX(), TabStop)
	}
}

func TestPaging(t *testing.T) {
	e := editorWith()
	for i := 0; i < 50; i++ {
		e.Buffer.InsertRow(i, []byte("line"))
	}
	e.SetSize(types.Size{Rows: 10, Cols: 20})

	// a page down parks the cursor at the viewport bottom and steps a
	// full page further
	e.PageDown()
	if e.Cursor.Row != 19 {
		t.Errorf("cursor after page down: row %d, want 19", e.Cursor.Row)
	}

	e.Scroll()
	e.PageUp()
	if e.Cursor.Row != 0 {
		t.Errorf("cursor after page up: row %d, want 0", e.Cursor.Row)
	}
}

func TestLineEnds(t *testing.T) {
	e := editorWith("hello")
	e.Cursor = types.Point{Row: 0, Col: 2}
	e.MoveToEndOfLine()
	if e.Cursor.Col != 5 {
		t.Errorf("end of line: col %d", e.Cursor.Col)
	}
	e.MoveToStartOfLine()
	if e.Cursor.Col != 0 {
		t.Errorf("start of line: col %d", e.Cursor.Col)
	}
}
