package physics

import (
	"math/rand"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", Rect{400, 440, 50, 50}, Rect{400, 440, 50, 50}, true},
		{"partial", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 50, 50}, Rect{20, 20, 7, 10}, true},
		{"touching right edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"touching bottom edge", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"disjoint x", Rect{0, 0, 10, 10}, Rect{30, 0, 10, 10}, false},
		{"disjoint y", Rect{0, 0, 10, 10}, Rect{0, 30, 10, 10}, false},
		{"bullet inside enemy", Rect{422, 100, 7, 10}, Rect{400, 100, 50, 50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOverlapsSymmetricAndDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	randRect := func() Rect {
		return Rect{
			X: rng.Float64()*200 - 50,
			Y: rng.Float64()*200 - 50,
			W: 1 + rng.Float64()*60,
			H: 1 + rng.Float64()*60,
		}
	}

	for i := 0; i < 5000; i++ {
		a, b := randRect(), randRect()
		if Overlaps(a, b) != Overlaps(b, a) {
			t.Fatalf("Overlaps not symmetric for %v and %v", a, b)
		}
		noX := a.Right() <= b.X || b.Right() <= a.X
		noY := a.Bottom() <= b.Y || b.Bottom() <= a.Y
		if (noX || noY) && Overlaps(a, b) {
			t.Fatalf("rects %v and %v share no range but overlap", a, b)
		}
		if !Overlaps(a, a) {
			t.Fatalf("rect %v does not overlap itself", a)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 750); got != 0 {
		t.Errorf("Clamp(-5) = %v, want 0", got)
	}
	if got := Clamp(760, 0, 750); got != 750 {
		t.Errorf("Clamp(760) = %v, want 750", got)
	}
	if got := Clamp(300, 0, 750); got != 300 {
		t.Errorf("Clamp(300) = %v, want 300", got)
	}
}
