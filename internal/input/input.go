// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key is considered held after its
// last byte. Terminals only report key repeats, so a held key arrives as a
// burst of bytes with short gaps between them.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Left  bool // Held
	Right bool // Held

	Fire  bool // Pressed this frame
	Retry bool // Pressed this frame
	Start bool // Pressed this frame
	Quit  bool // Pressed this frame

	Pressed []byte // Raw bytes received this frame
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks held keys across frames.
type Stream struct {
	ch     chan byte
	closed bool
	state  keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error, which closes the stream.
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

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

// ResetKeyInput forgets held keys and discards buffered bytes, so a key
// pressed on one screen does not carry over to the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
	s.drain()
}

func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

func readInputAt(s *Stream, now time.Time) Input {
	var in Input
	if !s.closed {
		in.Pressed = s.drain()
	}
	parse(in.Pressed, &s.state, &in, now)

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	return in
}

// parse applies one frame of bytes. Arrow keys arrive as ESC [ C/D.
func parse(buf []byte, state *keyState, in *Input, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		switch b {
		case 'a', 'A':
			state.left = now
		case 'd', 'D':
			state.right = now
		case ' ':
			in.Fire = true
			in.Start = true
		case 'r', 'R':
			in.Retry = true
		case '\r', '\n':
			in.Start = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}
}
