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
	"bytes"
	"errors"

	"github.com/steelseries/golisp"

	"github.com/dmelton/vee/types"
)

// ParseEval evaluates one lisp expression and returns its printed value,
// or the error text when the expression fails to parse or evaluate.
func (c *Commander) ParseEval(input string) string {
	value, err := golisp.ParseAndEval(input)
	if err != nil {
		return err.Error()
	}
	return golisp.String(value)
}

// registerPrimitives binds editor operations into the global lisp
// environment as closures over this commander's editor. Registering a
// later commander simply points the symbols at the new editor.
func (c *Commander) registerPrimitives() {
	e := c.editor

	golisp.MakePrimitiveFunction("row-count", "0",
		func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
			return golisp.IntegerWithValue(int64(e.Buffer.RowCount())), nil
		})

	golisp.MakePrimitiveFunction("goto-line", "1",
		func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
			val := golisp.Car(args)
			if !golisp.IntegerP(val) {
				return nil, errors.New("goto-line requires an integer argument")
			}
			row := int(golisp.IntegerValue(val)) - 1
			if row < 0 {
				row = 0
			}
			if row > e.Buffer.RowCount() {
				row = e.Buffer.RowCount()
			}
			e.Cursor = types.Point{Row: row, Col: 0}
			return golisp.IntegerWithValue(int64(row + 1)), nil
		})

	golisp.MakePrimitiveFunction("insert-string", "1",
		func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
			val := golisp.Car(args)
			if !golisp.StringP(val) {
				return nil, errors.New("insert-string requires a string argument")
			}
			for _, b := range []byte(golisp.StringValue(val)) {
				if b == '\n' {
					e.InsertNewline()
				} else {
					e.InsertChar(b)
				}
			}
			return val, nil
		})

	golisp.MakePrimitiveFunction("find-text", "1",
		func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
			val := golisp.Car(args)
			if !golisp.StringP(val) {
				return nil, errors.New("find-text requires a string argument")
			}
			query := []byte(golisp.StringValue(val))
			n := e.Buffer.RowCount()
			if n == 0 {
				return nil, nil
			}
			// scan starts on the row after the cursor and wraps once
			for i := 1; i <= n; i++ {
				row := (e.Cursor.Row + i) % n
				idx := bytes.Index(e.Buffer.Row(row).Display(), query)
				if idx < 0 {
					continue
				}
				e.Cursor = types.Point{Row: row, Col: e.Buffer.Row(row).RxToCx(idx)}
				return golisp.IntegerWithValue(int64(row + 1)), nil
			}
			return nil, nil
		})

	golisp.MakePrimitiveFunction("save-buffer", "0",
		func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
			if e.Buffer.FileName() == "" {
				return nil, errors.New("buffer has no file name")
			}
			n, err := e.WriteFile()
			if err != nil {
				return nil, err
			}
			return golisp.IntegerWithValue(int64(n)), nil
		})
}
