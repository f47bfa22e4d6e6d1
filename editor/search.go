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

	"github.com/dmelton/vee/types"
)

// A Search carries the state of one incremental find session: the row of
// the last hit, the travel direction, and a saved copy of the one row
// whose highlights are temporarily overwritten with the match marker.
type Search struct {
	lastMatch      int
	direction      int
	savedRow       int
	savedHighlight []types.Highlight
}

func NewSearch() *Search {
	return &Search{lastMatch: -1, direction: 1, savedRow: -1}
}

// Step advances the session for one prompt keystroke. Enter and escape
// end the session; horizontal arrows set the direction forward, vertical
// ones map with them; any other key restarts the session from scratch.
// Every call first restores the previously marked row, then scans from
// the last match in the current direction, wrapping over all rows once.
func (s *Search) Step(e *Editor, query string, key types.Key) {
	if s.savedRow >= 0 && s.savedRow < e.Buffer.RowCount() {
		copy(e.Buffer.Row(s.savedRow).Highlights(), s.savedHighlight)
	}
	s.savedRow = -1
	s.savedHighlight = nil

	switch key {
	case types.KeyEnter, types.KeyEscape:
		s.lastMatch = -1
		s.direction = 1
		return
	case types.KeyArrowRight, types.KeyArrowDown:
		s.direction = 1
	case types.KeyArrowLeft, types.KeyArrowUp:
		s.direction = -1
	default:
		s.lastMatch = -1
		s.direction = 1
	}

	if s.lastMatch == -1 {
		s.direction = 1
	}
	current := s.lastMatch
	for i := 0; i < e.Buffer.RowCount(); i++ {
		current += s.direction
		if current == -1 {
			current = e.Buffer.RowCount() - 1
		} else if current == e.Buffer.RowCount() {
			current = 0
		}

		row := e.Buffer.Row(current)
		idx := bytes.Index(row.Display(), []byte(query))
		if idx < 0 {
			continue
		}

		s.lastMatch = current
		e.Cursor.Row = current
		e.Cursor.Col = row.RxToCx(idx)
		// Push the row offset past the end so the next Scroll re-anchors
		// the viewport on the match.
		e.Offset.Rows = e.Buffer.RowCount()

		s.savedRow = current
		s.savedHighlight = append([]types.Highlight(nil), row.Highlights()...)
		hl := row.Highlights()
		for j := idx; j < idx+len(query) && j < len(hl); j++ {
			hl[j] = types.HighlightMatch
		}
		break
	}
}
