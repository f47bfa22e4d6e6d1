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
	"github.com/dmelton/vee/types"
)

// TabStop is the display width of a tab stop.
const TabStop = 2

// A Row holds one line of text: the raw bytes as stored in the file, the
// display form with tabs expanded to spaces, and one highlight class per
// display byte.
type Row struct {
	raw         []byte
	display     []byte
	highlight   []types.Highlight
	openComment bool // row ends inside an unterminated block comment
}

func newRow(raw []byte) *Row {
	r := &Row{raw: append([]byte(nil), raw...)}
	r.update()
	return r
}

// update regenerates the display form from the raw bytes, expanding each
// tab to spaces up to the next tab stop, and resets the highlight slice
// to match. It must run after every raw mutation, before highlighting or
// rendering reads the row.
func (r *Row) update() {
	display := make([]byte, 0, len(r.raw))
	for _, c := range r.raw {
		if c == '\t' {
			display = append(display, ' ')
			for len(display)%TabStop != 0 {
				display = append(display, ' ')
			}
		} else {
			display = append(display, c)
		}
	}
	r.display = display
	r.highlight = make([]types.Highlight, len(display))
}

func (r *Row) Raw() []byte {
	return r.raw
}

func (r *Row) Display() []byte {
	return r.display
}

func (r *Row) Highlights() []types.Highlight {
	return r.highlight
}

func (r *Row) Length() int {
	return len(r.raw)
}

// CxToRx converts a raw byte column to a display column: a tab advances
// to the next tab stop, every other byte advances one cell.
func (r *Row) CxToRx(cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(r.raw); j++ {
		if r.raw[j] == '\t' {
			rx += (TabStop - 1) - (rx % TabStop)
		}
		rx++
	}
	return rx
}

// RxToCx is the inverse walk: it returns the raw index whose cumulative
// display column first exceeds rx, or the row length if rx lies past the
// end of the display text.
func (r *Row) RxToCx(rx int) int {
	curRx := 0
	for cx := 0; cx < len(r.raw); cx++ {
		if r.raw[cx] == '\t' {
			curRx += (TabStop - 1) - (curRx % TabStop)
		}
		curRx++
		if curRx > rx {
			return cx
		}
	}
	return len(r.raw)
}

// insertChar splices a byte into the raw text, clamping an out-of-range
// position to the end of the row.
func (r *Row) insertChar(at int, c byte) {
	if at < 0 || at > len(r.raw) {
		at = len(r.raw)
	}
	r.raw = append(r.raw, 0)
	copy(r.raw[at+1:], r.raw[at:])
	r.raw[at] = c
	r.update()
}

// deleteChar removes the byte at the given position; out-of-range
// positions are a no-op.
func (r *Row) deleteChar(at int) bool {
	if at < 0 || at >= len(r.raw) {
		return false
	}
	r.raw = append(r.raw[:at], r.raw[at+1:]...)
	r.update()
	return true
}

func (r *Row) appendBytes(s []byte) {
	r.raw = append(r.raw, s...)
	r.update()
}

func (r *Row) truncate(at int) {
	if at < 0 || at >= len(r.raw) {
		return
	}
	r.raw = r.raw[:at]
	r.update()
}
