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
	"path/filepath"
	"strings"

	"github.com/dmelton/vee/types"
)

// Highlight option flags
const (
	HighlightNumbers = 1 << iota
	HighlightStrings
)

// A Syntax describes how to highlight one language. Keywords and Types
// are the two keyword classes, tried in declaration order.
type Syntax struct {
	Name              string
	FileMatch         []string
	Keywords          []string
	Types             []string
	LineComment       string
	BlockCommentStart string
	BlockCommentEnd   string
	Flags             int
}

// Registry holds the known filetypes; selection is first match wins in
// registration order.
var Registry = []*Syntax{
	{
		Name:      "c",
		FileMatch: []string{".c", ".h", ".cpp"},
		Keywords: []string{
			"switch", "if", "while", "for", "break", "continue", "return", "else",
			"struct", "union", "typedef", "static", "enum", "class", "case",
		},
		Types: []string{
			"int", "long", "double", "float", "char", "unsigned", "signed", "void",
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Flags:             HighlightNumbers | HighlightStrings,
	},
	{
		Name:      "go",
		FileMatch: []string{".go"},
		Keywords: []string{
			"break", "default", "func", "interface", "select", "case", "defer",
			"go", "map", "struct", "chan", "else", "goto", "package", "switch",
			"const", "fallthrough", "if", "range", "type", "continue", "for",
			"import", "return", "var",
		},
		Types: []string{
			"int64", "int", "uint", "byte", "rune", "string", "bool", "error",
			"float64",
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Flags:             HighlightNumbers | HighlightStrings,
	},
}

const separators = ",.()+-/*=~%<>[];"

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f', 0:
		return true
	}
	return strings.IndexByte(separators, c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func setHighlight(hl []types.Highlight, class types.Highlight) {
	for i := range hl {
		hl[i] = class
	}
}

// matchKeyword reports the length and class of a keyword starting at the
// given display offset, or zero. A match requires the following byte to
// be a separator (or end of row).
func (s *Syntax) matchKeyword(display []byte, at int) (int, types.Highlight) {
	if n := matchWord(display[at:], s.Keywords); n > 0 {
		return n, types.HighlightKeyword1
	}
	if n := matchWord(display[at:], s.Types); n > 0 {
		return n, types.HighlightKeyword2
	}
	return 0, types.HighlightNormal
}

func matchWord(rest []byte, words []string) int {
	for _, w := range words {
		if !bytes.HasPrefix(rest, []byte(w)) {
			continue
		}
		if len(rest) == len(w) || isSeparator(rest[len(w)]) {
			return len(w)
		}
	}
	return 0
}

// updateSyntax recomputes one row's highlight classes with a forward scan
// over its display text and reports whether the row's open-block-comment
// state changed.
func (b *Buffer) updateSyntax(at int) bool {
	row := b.rows[at]
	setHighlight(row.highlight, types.HighlightNormal)

	if b.syntax == nil {
		changed := row.openComment
		row.openComment = false
		return changed
	}
	s := b.syntax
	scs := []byte(s.LineComment)
	mcs := []byte(s.BlockCommentStart)
	mce := []byte(s.BlockCommentEnd)

	// Start of line counts as a separator.
	prevSep := true
	var inString byte
	inComment := at > 0 && b.rows[at-1].openComment

	i := 0
	for i < len(row.display) {
		c := row.display[i]
		prevHl := types.HighlightNormal
		if i > 0 {
			prevHl = row.highlight[i-1]
		}

		if len(scs) > 0 && inString == 0 && !inComment && bytes.HasPrefix(row.display[i:], scs) {
			setHighlight(row.highlight[i:], types.HighlightComment)
			break
		}

		if len(mcs) > 0 && len(mce) > 0 && inString == 0 {
			if inComment {
				row.highlight[i] = types.HighlightBlockComment
				if bytes.HasPrefix(row.display[i:], mce) {
					setHighlight(row.highlight[i:i+len(mce)], types.HighlightBlockComment)
					i += len(mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(row.display[i:], mcs) {
				setHighlight(row.highlight[i:i+len(mcs)], types.HighlightBlockComment)
				i += len(mcs)
				inComment = true
				continue
			}
		}

		if s.Flags&HighlightStrings != 0 {
			if inString != 0 {
				row.highlight[i] = types.HighlightString
				// A backslash escape consumes the next byte without
				// closing the string.
				if c == '\\' && i+1 < len(row.display) {
					row.highlight[i+1] = types.HighlightString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				row.highlight[i] = types.HighlightString
				i++
				continue
			}
		}

		if s.Flags&HighlightNumbers != 0 {
			if (isDigit(c) && (prevSep || prevHl == types.HighlightNumber)) ||
				(c == '.' && prevHl == types.HighlightNumber) {
				row.highlight[i] = types.HighlightNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, class := s.matchKeyword(row.display, i); n > 0 {
				setHighlight(row.highlight[i:i+n], class)
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	changed := row.openComment != inComment
	row.openComment = inComment
	return changed
}

// rehighlightFrom rescans the given row and keeps going forward while a
// row's open-comment state changes. Iterative on purpose: toggling a
// block comment can cascade to the end of the file, and the cascade must
// not grow the call stack with it.
func (b *Buffer) rehighlightFrom(at int) {
	if at < 0 {
		return
	}
	for i := at; i < len(b.rows); i++ {
		if !b.updateSyntax(i) {
			break
		}
	}
}

func (b *Buffer) rehighlightAll() {
	for i := range b.rows {
		b.updateSyntax(i)
	}
}

// SelectSyntax picks the highlight descriptor matching the buffer's
// filename, first match wins. A pattern starting with a dot matches the
// extension exactly; any other pattern matches as a substring. No match
// clears the active descriptor and every row returns to normal.
func (b *Buffer) SelectSyntax() {
	b.syntax = nil
	if b.fileName != "" {
		ext := filepath.Ext(b.fileName)
	scan:
		for _, s := range Registry {
			for _, pattern := range s.FileMatch {
				isExt := strings.HasPrefix(pattern, ".")
				if (isExt && ext == pattern) ||
					(!isExt && strings.Contains(b.fileName, pattern)) {
					b.syntax = s
					break scan
				}
			}
		}
	}
	b.rehighlightAll()
}

func (b *Buffer) Syntax() *Syntax {
	return b.syntax
}
