package game

import "testing"

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{9, "00:00:09"},
		{61, "00:01:01"},
		{120, "00:02:00"},
		{121, "00:02:01"},
		{3599, "00:59:59"},
		{3600, "01:60:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.seconds); got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestClockTickAndReset(t *testing.T) {
	c := NewClock()
	if c.String() != "00:00:00" {
		t.Fatalf("new clock = %q", c.String())
	}
	for i := 0; i < 75; i++ {
		c.Tick()
	}
	if c.Elapsed() != 75 || c.String() != "00:01:15" {
		t.Fatalf("clock = %d %q, want 75 00:01:15", c.Elapsed(), c.String())
	}
	c.Reset()
	if c.Elapsed() != 0 || c.String() != "00:00:00" {
		t.Fatalf("reset clock = %d %q", c.Elapsed(), c.String())
	}
}
