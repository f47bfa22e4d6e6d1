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
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/dmelton/vee/types"
)

// A Terminal owns the raw-mode configuration of the controlling terminal,
// decodes its input bytes into logical keys, and carries frame output.
type Terminal struct {
	in   *os.File
	out  *os.File
	orig *unix.Termios
}

func New(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// EnableRawMode saves the current terminal attributes and switches the
// terminal to raw mode: no echo, no line buffering, no signal keys, no
// output post-processing. Reads return after 100ms even with no input
// (VMIN=0, VTIME=1) so ReadKey never blocks indefinitely.
func (t *Terminal) EnableRawMode() error {
	orig, err := unix.IoctlGetTermios(int(t.in.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}
	t.orig = orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	return unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETSF, &raw)
}

// RestoreMode puts the terminal back into the attributes captured by
// EnableRawMode. Safe to call on every exit path, including before
// EnableRawMode has run.
func (t *Terminal) RestoreMode() error {
	if t.orig == nil {
		return nil
	}
	return unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETSF, t.orig)
}

// readByte reads one input byte. With VMIN=0 a timed-out read comes back
// as zero bytes (io.EOF through os.File); that is reported as ok=false,
// not as an error.
func (t *Terminal) readByte() (byte, bool, error) {
	var b [1]byte
	n, err := t.in.Read(b[:])
	if n == 1 {
		return b[0], true, nil
	}
	if err != nil && err != io.EOF {
		return 0, false, err
	}
	return 0, false, nil
}

// ReadKey blocks until a keypress arrives, retrying through read
// timeouts, and decodes VT-style escape sequences into logical keys.
// An incomplete or unrecognized sequence degrades to a bare escape.
func (t *Terminal) ReadKey() (types.Key, error) {
	var c byte
	for {
		b, ok, err := t.readByte()
		if err != nil {
			return 0, err
		}
		if ok {
			c = b
			break
		}
	}
	if c != 0x1b {
		return types.Key(c), nil
	}

	// The rest of a sequence is already queued when a special key was
	// pressed; a timeout here means the user typed escape itself.
	seq0, ok, _ := t.readByte()
	if !ok {
		return types.KeyEscape, nil
	}
	seq1, ok, _ := t.readByte()
	if !ok {
		return types.KeyEscape, nil
	}

	switch seq0 {
	case '[':
		if seq1 >= '0' && seq1 <= '9' {
			seq2, ok, _ := t.readByte()
			if !ok || seq2 != '~' {
				return types.KeyEscape, nil
			}
			switch seq1 {
			case '1', '7':
				return types.KeyHome, nil
			case '3':
				return types.KeyDelete, nil
			case '4', '8':
				return types.KeyEnd, nil
			case '5':
				return types.KeyPageUp, nil
			case '6':
				return types.KeyPageDown, nil
			}
		} else {
			switch seq1 {
			case 'A':
				return types.KeyArrowUp, nil
			case 'B':
				return types.KeyArrowDown, nil
			case 'C':
				return types.KeyArrowRight, nil
			case 'D':
				return types.KeyArrowLeft, nil
			case 'H':
				return types.KeyHome, nil
			case 'F':
				return types.KeyEnd, nil
			}
		}
	case 'O':
		switch seq1 {
		case 'H':
			return types.KeyHome, nil
		case 'F':
			return types.KeyEnd, nil
		}
	}
	return types.KeyEscape, nil
}

// Size reports the terminal dimensions, preferring the TIOCGWINSZ ioctl
// and falling back to parking the cursor in the bottom-right corner and
// asking the terminal where it ended up.
func (t *Terminal) Size() (types.Size, error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return types.Size{Rows: int(ws.Row), Cols: int(ws.Col)}, nil
	}
	return t.cursorReportSize()
}

func (t *Terminal) cursorReportSize() (types.Size, error) {
	if _, err := t.out.Write([]byte("\x1b[999C\x1b[999B\x1b[6n")); err != nil {
		return types.Size{}, err
	}

	resp := make([]byte, 0, 32)
	for len(resp) < 32 {
		b, ok, err := t.readByte()
		if err != nil {
			return types.Size{}, err
		}
		if !ok || b == 'R' {
			break
		}
		resp = append(resp, b)
	}

	var size types.Size
	if _, err := fmt.Sscanf(string(resp), "\x1b[%d;%d", &size.Rows, &size.Cols); err != nil {
		return types.Size{}, fmt.Errorf("unrecognized cursor position report %q", resp)
	}
	return size, nil
}

// Write sends bytes straight to the terminal; the screen flushes each
// composed frame through here in a single call.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
