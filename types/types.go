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
package types

// Editor modes
const (
	ModeNavigate = 0
	ModeInsert   = 1
	ModeQuit     = 9999
)

// Move directions
const (
	MoveUp = iota
	MoveDown
	MoveRight
	MoveLeft
)

// A Key is a decoded keypress. Plain input bytes pass through as their
// own value; multi-byte escape sequences decode to values above 1000 so
// they can never collide with a byte.
type Key int

const (
	KeyEnter     Key = 13
	KeyEscape    Key = 27
	KeyBackspace Key = 127
)

const (
	KeyArrowLeft Key = 1000 + iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Ctrl maps a letter to its control-key value.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// A Highlight classifies one byte of a row's display text.
type Highlight byte

const (
	HighlightNormal Highlight = iota
	HighlightComment
	HighlightBlockComment
	HighlightKeyword1
	HighlightKeyword2
	HighlightString
	HighlightNumber
	HighlightMatch
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}
