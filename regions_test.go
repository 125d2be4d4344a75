package mandelview

import "testing"

func TestFitContainsRegion(t *testing.T) {
	// the tight axis of a fitted view coincides with the region edge, so
	// allow rounding slack there
	const tol = 1e-12
	for _, l := range Landmarks {
		vp := l.Region.Fit(DefaultViewport(800, 600))

		topLeft := vp.ToComplex(0, 0)
		bottomRight := vp.ToComplex(float64(vp.Width), float64(vp.Height))

		if real(topLeft) > l.Region.Xmin+tol || real(bottomRight) < l.Region.Xmax-tol {
			t.Errorf("%s: horizontal span [%g, %g] does not contain [%g, %g]",
				l.Name, real(topLeft), real(bottomRight), l.Region.Xmin, l.Region.Xmax)
		}
		// row 0 is the top, so the imaginary axis runs high to low
		if imag(topLeft) < l.Region.Ymax-tol || imag(bottomRight) > l.Region.Ymin+tol {
			t.Errorf("%s: vertical span [%g, %g] does not contain [%g, %g]",
				l.Name, imag(bottomRight), imag(topLeft), l.Region.Ymin, l.Region.Ymax)
		}
	}
}

func TestFitCenters(t *testing.T) {
	vp := SpiralMinibrot.Fit(DefaultViewport(800, 600))
	c := vp.ToComplex(400, 300)
	wantX := (SpiralMinibrot.Xmin + SpiralMinibrot.Xmax) / 2
	wantY := (SpiralMinibrot.Ymin + SpiralMinibrot.Ymax) / 2
	if real(c) != wantX || imag(c) != wantY {
		t.Errorf("fitted center pixel maps to %v, want (%g, %g)", c, wantX, wantY)
	}
}

func TestFitKeepsResolutionAndQuality(t *testing.T) {
	base := DefaultViewport(1024, 768)
	base.Quality = 2
	vp := ElephantValley.Fit(base)
	if vp.Width != 1024 || vp.Height != 768 || vp.Quality != 2 {
		t.Errorf("Fit changed resolution or quality: %+v", vp)
	}
}

func TestLandmarkByName(t *testing.T) {
	r, ok := LandmarkByName("Seahorse Valley")
	if !ok || r != SeahorseValley {
		t.Errorf("LandmarkByName(Seahorse Valley) = %+v, %v", r, ok)
	}
	if _, ok := LandmarkByName("nowhere"); ok {
		t.Error("unknown landmark reported found")
	}
}
