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
package screen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmelton/vee/editor"
	"github.com/dmelton/vee/types"
)

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func renderFrame(t *testing.T, e *editor.Editor, mode int) string {
	t.Helper()
	var out countingWriter
	s := New(&out, types.Size{Rows: 10, Cols: 60})
	if err := s.Render(e, mode); err != nil {
		t.Fatalf("Render failed: %+v", err)
	}
	if out.writes != 1 {
		t.Errorf("frame flushed in %d writes, want 1", out.writes)
	}
	return out.String()
}

func TestEmptyBufferFrame(t *testing.T) {
	e := editor.NewEditor()
	frame := renderFrame(t, e, types.ModeNavigate)

	if !strings.HasPrefix(frame, "\x1b[?25l\x1b[H") {
		t.Errorf("frame does not hide the cursor and home: %q", frame[:12])
	}
	if !strings.HasSuffix(frame, "\x1b[?25h") {
		t.Error("frame does not show the cursor at the end")
	}
	if !strings.Contains(frame, "vee editor -- version") {
		t.Error("welcome banner missing from empty buffer")
	}
	if !strings.Contains(frame, "\x1b[1;1H") {
		t.Error("cursor not positioned at the origin")
	}
	// every text row ends with an erase-to-end
	if got := strings.Count(frame, "\x1b[K\r\n"); got != 8 {
		t.Errorf("erased row endings: got %d, want 8", got)
	}
}

func TestStatusBar(t *testing.T) {
	e := editor.NewEditor()
	e.Buffer.InsertRow(0, []byte("text"))

	frame := renderFrame(t, e, types.ModeNavigate)
	if !strings.Contains(frame, "[No Name]") {
		t.Error("unnamed buffer missing placeholder name")
	}
	if !strings.Contains(frame, "(modified)") {
		t.Error("dirty buffer not flagged as modified")
	}
	if !strings.Contains(frame, "- st") {
		t.Error("navigate mode indicator missing")
	}

	frame = renderFrame(t, e, types.ModeInsert)
	if !strings.Contains(frame, "- ed") {
		t.Error("insert mode indicator missing")
	}

	e.Buffer.SetFileName("demo.c")
	e.Buffer.ClearDirty()
	frame = renderFrame(t, e, types.ModeNavigate)
	if !strings.Contains(frame, "demo.c") {
		t.Error("file name missing from status bar")
	}
	if strings.Contains(frame, "(modified)") {
		t.Error("clean buffer flagged as modified")
	}
	if !strings.Contains(frame, "c | 1/1") {
		t.Error("filetype and position segment missing")
	}
}

func TestRowColors(t *testing.T) {
	e := editor.NewEditor()
	e.Buffer.SetFileName("demo.c")
	e.Buffer.InsertRow(0, []byte("// note"))
	e.Buffer.InsertRow(1, []byte("int x = 42;"))

	frame := renderFrame(t, e, types.ModeNavigate)
	if !strings.Contains(frame, "\x1b[36m// note") {
		t.Error("comment color missing")
	}
	if !strings.Contains(frame, "\x1b[32mint") {
		t.Error("type keyword color missing")
	}
	if !strings.Contains(frame, "\x1b[31m42") {
		t.Error("number color missing")
	}
	// one color code per run, not per byte
	if strings.Contains(frame, "\x1b[36m/\x1b[36m/") {
		t.Error("color code repeated inside a run")
	}
}

func TestControlBytesRenderInverted(t *testing.T) {
	e := editor.NewEditor()
	e.Buffer.InsertRow(0, []byte{'a', 1, 'b'})

	frame := renderFrame(t, e, types.ModeNavigate)
	if !strings.Contains(frame, "\x1b[7mA\x1b[m") {
		t.Errorf("control byte not rendered as inverted placeholder: %q", frame)
	}
}

func TestMessageBar(t *testing.T) {
	e := editor.NewEditor()
	e.SetStatusMessage("HELP: ctrl-s = save")

	frame := renderFrame(t, e, types.ModeNavigate)
	if !strings.Contains(frame, "HELP: ctrl-s = save") {
		t.Error("fresh status message not drawn")
	}
}

func TestColumnOffsetClipsRows(t *testing.T) {
	e := editor.NewEditor()
	e.Buffer.InsertRow(0, []byte("0123456789"))
	e.Cursor = types.Point{Row: 0, Col: 10}

	var out bytes.Buffer
	s := New(&out, types.Size{Rows: 10, Cols: 7})
	if err := s.Render(e, types.ModeNavigate); err != nil {
		t.Fatalf("Render failed: %+v", err)
	}
	frame := out.String()
	if strings.Contains(frame, "0123456") {
		t.Error("row not clipped to the column offset")
	}
	if !strings.Contains(frame, "456789") {
		t.Errorf("visible slice missing: %q", frame)
	}
}
