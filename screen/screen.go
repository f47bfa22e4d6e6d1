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
	"fmt"
	"io"
	"time"

	"github.com/dmelton/vee/editor"
	"github.com/dmelton/vee/types"
)

const version = "0.0.1"

// Status messages older than this render as an empty message bar.
const messageLifetime = 5 * time.Second

// The Screen composes full frames from the editor state: the text area,
// the status bar, and the message bar. Each frame accumulates into one
// growable buffer and flushes in a single write so partial frames never
// reach the terminal.
type Screen struct {
	size types.Size
	out  io.Writer
	buf  bytes.Buffer
}

func New(out io.Writer, size types.Size) *Screen {
	return &Screen{out: out, size: size}
}

// Render draws one frame. The cursor is hidden while the frame is
// composed and repositioned to the editor cursor before it reappears.
func (s *Screen) Render(e *editor.Editor, mode int) error {
	e.SetSize(types.Size{Rows: s.size.Rows - 2, Cols: s.size.Cols})
	e.Scroll()

	s.buf.Reset()
	s.buf.WriteString("\x1b[?25l")
	s.buf.WriteString("\x1b[H")

	s.drawRows(e)
	s.drawStatusBar(e, mode)
	s.drawMessageBar(e)

	fmt.Fprintf(&s.buf, "\x1b[%d;%dH", e.Cursor.Row-e.Offset.Rows+1, e.RX()-e.Offset.Cols+1)
	s.buf.WriteString("\x1b[?25h")

	_, err := s.out.Write(s.buf.Bytes())
	return err
}

func colorFor(h types.Highlight) int {
	switch h {
	case types.HighlightComment, types.HighlightBlockComment:
		return 36
	case types.HighlightKeyword1:
		return 33
	case types.HighlightKeyword2:
		return 32
	case types.HighlightString:
		return 35
	case types.HighlightNumber:
		return 31
	case types.HighlightMatch:
		return 34
	default:
		return 37
	}
}

func (s *Screen) drawRows(e *editor.Editor) {
	textRows := s.size.Rows - 2
	for y := 0; y < textRows; y++ {
		fileRow := y + e.Offset.Rows
		if fileRow >= e.Buffer.RowCount() {
			if e.Buffer.RowCount() == 0 && y == textRows/3 {
				s.drawWelcome()
			} else {
				s.buf.WriteByte('~')
			}
		} else {
			s.drawRow(e.Buffer.Row(fileRow), e.Offset.Cols)
		}
		s.buf.WriteString("\x1b[K\r\n")
	}
}

func (s *Screen) drawWelcome() {
	welcome := fmt.Sprintf("vee editor -- version %s", version)
	if len(welcome) > s.size.Cols {
		welcome = welcome[:s.size.Cols]
	}
	padding := (s.size.Cols - len(welcome)) / 2
	if padding > 0 {
		s.buf.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		s.buf.WriteByte(' ')
	}
	s.buf.WriteString(welcome)
}

// drawRow emits the visible slice of one row. Color codes are emitted
// only at classification transitions, and control bytes render as an
// inverted placeholder that restores the active color afterward.
func (s *Screen) drawRow(row *editor.Row, colOffset int) {
	display := row.Display()
	hl := row.Highlights()
	if colOffset >= len(display) {
		return
	}
	display = display[colOffset:]
	hl = hl[colOffset:]
	if len(display) > s.size.Cols {
		display = display[:s.size.Cols]
		hl = hl[:s.size.Cols]
	}

	currentColor := -1
	for j, c := range display {
		switch {
		case c < 32 || c == 127:
			sym := byte('?')
			if c <= 26 {
				sym = '@' + c
			}
			s.buf.WriteString("\x1b[7m")
			s.buf.WriteByte(sym)
			s.buf.WriteString("\x1b[m")
			if currentColor != -1 {
				fmt.Fprintf(&s.buf, "\x1b[%dm", currentColor)
			}
		case hl[j] == types.HighlightNormal:
			if currentColor != -1 {
				s.buf.WriteString("\x1b[39m")
				currentColor = -1
			}
			s.buf.WriteByte(c)
		default:
			color := colorFor(hl[j])
			if color != currentColor {
				currentColor = color
				fmt.Fprintf(&s.buf, "\x1b[%dm", color)
			}
			s.buf.WriteByte(c)
		}
	}
	s.buf.WriteString("\x1b[39m")
}

func (s *Screen) drawStatusBar(e *editor.Editor, mode int) {
	s.buf.WriteString("\x1b[7m")

	name := e.Buffer.FileName()
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	modified := ""
	if e.Buffer.Dirty() {
		modified = "(modified)"
	}
	modeName := "st"
	if mode == types.ModeInsert {
		modeName = "ed"
	}
	status := fmt.Sprintf("%s - %d lines %s - %s", name, e.Buffer.RowCount(), modified, modeName)

	filetype := "no ft"
	if syntax := e.Buffer.Syntax(); syntax != nil {
		filetype = syntax.Name
	}
	rstatus := fmt.Sprintf("%s | %d/%d", filetype, e.Cursor.Row+1, e.Buffer.RowCount())

	if len(status) > s.size.Cols {
		status = status[:s.size.Cols]
	}
	s.buf.WriteString(status)

	// The right segment is drawn only when it fits exactly in the
	// remaining width.
	for length := len(status); length < s.size.Cols; length++ {
		if s.size.Cols-length == len(rstatus) {
			s.buf.WriteString(rstatus)
			break
		}
		s.buf.WriteByte(' ')
	}

	s.buf.WriteString("\x1b[m\r\n")
}

func (s *Screen) drawMessageBar(e *editor.Editor) {
	s.buf.WriteString("\x1b[K")
	msg, at := e.StatusMessage()
	if len(msg) > s.size.Cols {
		msg = msg[:s.size.Cols]
	}
	if msg != "" && time.Since(at) < messageLifetime {
		s.buf.WriteString(msg)
	}
}
