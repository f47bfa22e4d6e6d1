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
// vee is a small modal text editor for VT100-compatible terminals.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/dmelton/vee/commander"
	"github.com/dmelton/vee/editor"
	"github.com/dmelton/vee/screen"
	"github.com/dmelton/vee/terminal"
)

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "vee: standard input is not a terminal")
		os.Exit(1)
	}

	t := terminal.New(os.Stdin, os.Stdout)
	if err := t.EnableRawMode(); err != nil {
		fmt.Fprintf(os.Stderr, "vee: %s\n", err)
		os.Exit(1)
	}

	// The terminal is in raw mode from here on: leave the screen clean
	// and the mode restored on every exit path.
	die := func(err error) {
		t.Write([]byte("\x1b[2J\x1b[H"))
		t.RestoreMode()
		fmt.Fprintf(os.Stderr, "vee: %s\n", err)
		os.Exit(1)
	}

	size, err := t.Size()
	if err != nil {
		die(err)
	}

	// The terminal belongs to the frames now; logging goes to a file.
	home, _ := os.UserHomeDir()
	if f, err := os.OpenFile(filepath.Join(home, ".veelog"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666); err == nil {
		defer f.Close()
		log.SetOutput(f)
	}

	e := editor.NewEditor()
	if len(os.Args) > 1 {
		if err := e.ReadFile(os.Args[1]); err != nil {
			die(err)
		}
	}

	s := screen.New(t, size)
	c := commander.NewCommander(e, s, t)

	e.SetStatusMessage("HELP: ctrl-s = save | ctrl-q = quit | ctrl-f = find")

	for c.IsRunning() {
		if err := s.Render(e, c.Mode()); err != nil {
			die(err)
		}
		key, err := t.ReadKey()
		if err != nil {
			die(err)
		}
		c.ProcessKey(key)
	}

	t.Write([]byte("\x1b[2J\x1b[H"))
	t.RestoreMode()
}
