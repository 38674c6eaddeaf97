package input

import (
	"testing"
	"time"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestArrowKeysHoldThenRelease(t *testing.T) {
	s := newStream()
	now := time.Unix(1000, 0)

	feed(s, "\x1b[D")
	in := s.read(now)
	if !in.Left || in.Right {
		t.Fatalf("after left arrow: Left=%v Right=%v", in.Left, in.Right)
	}
	if in.Escape {
		t.Fatal("arrow sequence reported as a lone escape")
	}

	in = s.read(now.Add(keyHoldDuration / 2))
	if !in.Left {
		t.Fatal("left released inside the hold window")
	}

	in = s.read(now.Add(keyHoldDuration))
	if in.Left {
		t.Fatal("left still held after the hold window")
	}
}

func TestApplicationModeArrows(t *testing.T) {
	s := newStream()
	feed(s, "\x1bOC")
	if in := s.read(time.Now()); !in.Right {
		t.Fatal("SS3 right arrow not recognised")
	}
}

func TestFireCountsEverySpace(t *testing.T) {
	s := newStream()
	feed(s, "   ")
	in := s.read(time.Now())
	if in.Fire != 3 {
		t.Fatalf("Fire = %d, want 3", in.Fire)
	}
	if string(in.Text) != "   " {
		t.Fatalf("Text = %q, want three spaces", string(in.Text))
	}
}

func TestControlKeys(t *testing.T) {
	s := newStream()
	feed(s, "\x1b\t\r\x7f\x03")
	in := s.read(time.Now())

	if !in.Escape || !in.Pause {
		t.Error("lone escape should set Escape and Pause")
	}
	if !in.Tab || !in.Enter || !in.Backspace || !in.Interrupt {
		t.Errorf("control keys not parsed: %+v", in)
	}
	if len(in.Text) != 0 {
		t.Errorf("control keys leaked into text: %q", string(in.Text))
	}
}

func TestTextKeepsUTF8(t *testing.T) {
	s := newStream()
	feed(s, "Zoë")
	in := s.read(time.Now())
	if string(in.Text) != "Zoë" {
		t.Fatalf("Text = %q, want %q", string(in.Text), "Zoë")
	}
}

func TestClosedStream(t *testing.T) {
	s := newStream()
	feed(s, "q")
	close(s.ch)

	in := s.read(time.Now())
	if !in.Quit {
		t.Error("bytes before close were lost")
	}
	if !s.Closed() {
		t.Error("stream not reported closed")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := newStream()
	now := time.Now()
	feed(s, "a")
	s.read(now)

	ResetKeyInput(s)
	if in := s.read(now); in.Left {
		t.Fatal("left still held after reset")
	}
}
