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
package commander

import (
	"log"

	"github.com/dmelton/vee/editor"
	"github.com/dmelton/vee/screen"
	"github.com/dmelton/vee/types"
)

// QuitConfirmations is how many warnings quitting with unsaved changes
// takes before the next quit keypress goes through.
const QuitConfirmations = 3

// A KeyReader delivers decoded keypresses; the terminal satisfies it.
type KeyReader interface {
	ReadKey() (types.Key, error)
}

// The Commander converts keypresses into commands for the Editor: it
// owns the mode state machine, the quit confirmation counter, and the
// prompt loop shared by search, save-as, and expression evaluation.
type Commander struct {
	editor    *editor.Editor
	screen    *screen.Screen
	keys      KeyReader
	mode      int
	quitTimes int
}

func NewCommander(e *editor.Editor, s *screen.Screen, keys KeyReader) *Commander {
	c := &Commander{
		editor:    e,
		screen:    s,
		keys:      keys,
		mode:      types.ModeNavigate,
		quitTimes: QuitConfirmations,
	}
	c.registerPrimitives()
	return c
}

func (c *Commander) Mode() int {
	return c.mode
}

func (c *Commander) IsRunning() bool {
	return c.mode != types.ModeQuit
}

// ProcessKey dispatches one keypress. Keys shared by both modes are
// handled first; everything else falls through to the active mode. Any
// key other than the quit key resets the quit confirmation counter.
func (c *Commander) ProcessKey(key types.Key) {
	e := c.editor

	switch key {
	case types.Ctrl('q'):
		if e.Buffer.Dirty() && c.quitTimes > 0 {
			e.SetStatusMessage("WARNING!!! File has unsaved changes. "+
				"Press ctrl-q %d more times to quit.", c.quitTimes)
			c.quitTimes--
			return
		}
		c.mode = types.ModeQuit
	case types.Ctrl('s'):
		c.save()
	case types.KeyHome:
		e.MoveToStartOfLine()
	case types.KeyEnd:
		e.MoveToEndOfLine()
	case types.Ctrl('f'):
		c.find()
	case types.KeyPageUp, types.Ctrl('y'):
		e.PageUp()
	case types.KeyPageDown, types.Ctrl('e'):
		e.PageDown()
	case types.KeyArrowUp:
		e.MoveCursor(types.MoveUp)
	case types.KeyArrowDown:
		e.MoveCursor(types.MoveDown)
	case types.KeyArrowLeft:
		e.MoveCursor(types.MoveLeft)
	case types.KeyArrowRight:
		e.MoveCursor(types.MoveRight)
	case types.Ctrl('l'), types.KeyEscape:
		// the next loop iteration redraws anyway
	default:
		if c.mode == types.ModeInsert {
			c.processInsertKey(key)
		} else {
			c.processNavigateKey(key)
		}
	}

	c.quitTimes = QuitConfirmations
}

func (c *Commander) processInsertKey(key types.Key) {
	e := c.editor
	switch key {
	case types.KeyEnter:
		e.InsertNewline()
	case types.KeyBackspace, types.Ctrl('h'), types.KeyDelete:
		// delete removes the byte under the cursor: step right, backspace
		if key == types.KeyDelete {
			e.MoveCursor(types.MoveRight)
		}
		e.DeleteChar()
	case types.Ctrl('j'):
		c.mode = types.ModeNavigate
	default:
		if key < 128 {
			e.InsertChar(byte(key))
		}
	}
}

func (c *Commander) processNavigateKey(key types.Key) {
	e := c.editor
	switch key {
	case 'h':
		e.MoveCursor(types.MoveLeft)
	case 'j':
		e.MoveCursor(types.MoveDown)
	case 'k':
		e.MoveCursor(types.MoveUp)
	case 'l':
		e.MoveCursor(types.MoveRight)
	case 'i':
		c.mode = types.ModeInsert
	case '(':
		c.evaluate()
	}
}

// Prompt runs the shared nested read-render loop at the message bar,
// invoking the callback after every keystroke. It returns the accepted
// input, or ok=false when the user cancels with escape. Enter on empty
// input keeps the prompt open.
func (c *Commander) Prompt(format, seed string, callback func(string, types.Key)) (string, bool) {
	input := seed
	for {
		c.editor.SetStatusMessage(format, input)
		c.screen.Render(c.editor, c.mode)

		key, err := c.keys.ReadKey()
		if err != nil {
			c.editor.SetStatusMessage("")
			return "", false
		}

		switch {
		case key == types.KeyBackspace || key == types.Ctrl('h') || key == types.KeyDelete:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case key == types.KeyEscape:
			c.editor.SetStatusMessage("")
			if callback != nil {
				callback(input, key)
			}
			return "", false
		case key == types.KeyEnter:
			if len(input) > 0 {
				c.editor.SetStatusMessage("")
				if callback != nil {
					callback(input, key)
				}
				return input, true
			}
		case key >= 32 && key < 127:
			input += string(byte(key))
		}

		if callback != nil {
			callback(input, key)
		}
	}
}

// find drives the incremental search session. A cancelled search puts
// the cursor and viewport back where they started; an accepted one
// leaves the cursor on the last match.
func (c *Commander) find() {
	e := c.editor
	savedCursor := e.Cursor
	savedOffset := e.Offset

	search := editor.NewSearch()
	_, ok := c.Prompt("Search: %s (Use ESC/Arrows/Enter)", "", func(query string, key types.Key) {
		search.Step(e, query, key)
	})
	if !ok {
		e.Cursor = savedCursor
		e.Offset = savedOffset
	}
}

func (c *Commander) save() {
	e := c.editor
	if e.Buffer.FileName() == "" {
		name, ok := c.Prompt("Save as: %s (ESC to cancel)", "", nil)
		if !ok {
			e.SetStatusMessage("Save aborted")
			return
		}
		e.Buffer.SetFileName(name)
	}
	n, err := e.WriteFile()
	if err != nil {
		log.Printf("save %s: %v", e.Buffer.FileName(), err)
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return
	}
	e.SetStatusMessage("%d bytes written to disk", n)
}

// evaluate prompts for a lisp expression and shows its printed value in
// the message bar.
func (c *Commander) evaluate() {
	input, ok := c.Prompt("%s", "(", nil)
	if !ok {
		return
	}
	c.editor.SetStatusMessage("%s", c.ParseEval(input))
}
