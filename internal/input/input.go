// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
	"unicode/utf8"
)

// keyHoldDuration is how long a direction key is considered "held" after its
// last press. Terminals send no key-up events, so releasing a key is inferred
// from the auto-repeat stopping.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Left      bool // Left arrow or a/h held
	Right     bool // Right arrow or d/l held
	Up        bool // Up arrow pressed this frame
	Down      bool // Down arrow pressed this frame
	Fire      int  // Space presses this frame
	Escape    bool // Lone escape pressed this frame
	Pause     bool // Escape or p pressed this frame
	Quit      bool // q pressed this frame
	Interrupt bool // Ctrl+C pressed this frame
	Enter     bool
	Tab       bool
	Backspace bool
	Text      []rune // Printable characters typed this frame, in order
	Pressed   []byte // Raw bytes received this frame
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended (e.g. the SSH
// session disconnected). Only meaningful after ReadInput.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets held keys so a key pressed on a menu does not leak
// into the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI (ESC [ x) and SS3 (ESC O x) arrow sequences
		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			switch buf[i+2] {
			case 'A':
				in.Up = true
			case 'B':
				in.Down = true
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		switch {
		case b == '\x1b':
			in.Escape = true
			in.Pause = true
		case b == '\x03':
			in.Interrupt = true
		case b == '\r' || b == '\n':
			in.Enter = true
		case b == '\t':
			in.Tab = true
		case b == '\b' || b == '\x7f':
			in.Backspace = true
		case b < 0x20:
			// other control bytes are ignored
		case b < utf8.RuneSelf:
			applyPrintable(&in, &s.state, b, now)
		default:
			r, size := utf8.DecodeRune(buf[i:])
			if r != utf8.RuneError {
				in.Text = append(in.Text, r)
			}
			i += size - 1
		}
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration

	return in
}

// applyPrintable records a printable ASCII byte both as text and as a game key.
func applyPrintable(in *Input, state *keyState, b byte, now time.Time) {
	in.Text = append(in.Text, rune(b))

	switch b {
	case ' ':
		in.Fire++
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'p', 'P':
		in.Pause = true
	case 'q', 'Q':
		in.Quit = true
	}
}
