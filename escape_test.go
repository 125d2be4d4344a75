package mandelview

import "testing"

func TestEscapeKnownPoints(t *testing.T) {
	tests := []struct {
		name    string
		c       complex128
		maxIter int
		want    EscapeResult
	}{
		{"origin stays bounded", complex(0, 0), 100, EscapeResult{Iter: 100, Escaped: false}},
		{"period-2 bulb stays bounded", complex(-1, 0), 100, EscapeResult{Iter: 100, Escaped: false}},
		// |z|^2 == 4 exactly after the first step; the strict comparison
		// means escape is only detected on the second.
		{"c=2 escapes at iteration 1", complex(2, 0), 100, EscapeResult{Iter: 1, Escaped: true}},
		{"far point escapes immediately", complex(3, 0), 100, EscapeResult{Iter: 0, Escaped: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Escape(tt.c, tt.maxIter)
			if got != tt.want {
				t.Errorf("Escape(%v, %d) = %+v, want %+v", tt.c, tt.maxIter, got, tt.want)
			}
		})
	}
}

func TestEscapeDeterminism(t *testing.T) {
	points := []complex128{
		complex(0, 0),
		complex(-0.75, 0.1),
		complex(0.25, 0.5),
		complex(-1.401155, 0),
		complex(0.285, 0.01),
	}
	for _, c := range points {
		a := Escape(c, 500)
		b := Escape(c, 500)
		if a != b {
			t.Errorf("Escape(%v, 500) not deterministic: %+v vs %+v", c, a, b)
		}
	}
}

func TestEscapeHardCeiling(t *testing.T) {
	// A request beyond the ceiling is clamped, never honored.
	got := Escape(complex(0, 0), 5000)
	want := EscapeResult{Iter: AbsoluteMaxIter, Escaped: false}
	if got != want {
		t.Errorf("Escape(0, 5000) = %+v, want %+v", got, want)
	}
}

func TestEscapeClampsLowBound(t *testing.T) {
	got := Escape(complex(0, 0), 0)
	want := EscapeResult{Iter: 1, Escaped: false}
	if got != want {
		t.Errorf("Escape(0, 0) = %+v, want %+v", got, want)
	}
}

func TestEscapedFlagMatchesIterationCount(t *testing.T) {
	// Escaped is false exactly when the iteration bound was reached.
	const maxIter = 64
	for re := -2.0; re <= 0.5; re += 0.25 {
		for im := -1.0; im <= 1.0; im += 0.25 {
			r := Escape(complex(re, im), maxIter)
			if r.Escaped && r.Iter >= maxIter {
				t.Errorf("Escape(%g%+gi): escaped at iter %d >= bound %d", re, im, r.Iter, maxIter)
			}
			if !r.Escaped && r.Iter != maxIter {
				t.Errorf("Escape(%g%+gi): not escaped but iter %d != bound %d", re, im, r.Iter, maxIter)
			}
		}
	}
}
