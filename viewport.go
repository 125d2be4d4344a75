package mandelview

// Bounds for the interactive view parameters. Out-of-range values are
// clamped to the nearest bound rather than rejected; overshooting wheel or
// slider input is expected interactive behavior, not an error.
const (
	MinZoom = 1e-6
	MaxZoom = 2.0

	MinQuality = 0.25
	MaxQuality = 3.0

	// MaxDimension bounds a single resolution axis. It leaves room for a
	// 4K surface at full quality while keeping a hostile or buggy
	// resolution request from allocating an absurd frame.
	MaxDimension = 16384

	DefaultZoom    = 0.5
	DefaultCenterX = -0.5
	DefaultCenterY = 0.0
	DefaultQuality = 1.0
)

// Viewport maps device pixels onto a rectangle of the complex plane.
// Zoom scales the view so that zoom 1 spans 4 world units along the shorter
// (vertical) axis; the horizontal span is stretched by the aspect ratio so
// circles stay circular in any window shape.
//
// Viewport is a plain value. Handing a copy to a render pass is the
// snapshot discipline that keeps a pass from mixing old and new state.
type Viewport struct {
	Zoom    float64 `json:"zoom"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Width   int     `json:"width"`  // device pixels
	Height  int     `json:"height"` // device pixels
	Quality float64 `json:"quality"`
}

// DefaultViewport returns the startup view of the whole set.
func DefaultViewport(width, height int) Viewport {
	return Viewport{
		Zoom:    DefaultZoom,
		CenterX: DefaultCenterX,
		CenterY: DefaultCenterY,
		Width:   width,
		Height:  height,
		Quality: DefaultQuality,
	}
}

func (v Viewport) Aspect() float64 {
	return float64(v.Width) / float64(v.Height)
}

// Normalized returns a copy with zoom and quality clamped to their bounds
// and the resolution clamped to [1, MaxDimension] per axis.
func (v Viewport) Normalized() Viewport {
	v.Zoom = clamp(v.Zoom, MinZoom, MaxZoom)
	v.Quality = clamp(v.Quality, MinQuality, MaxQuality)
	v.Width = clampInt(v.Width, 1, MaxDimension)
	v.Height = clampInt(v.Height, 1, MaxDimension)
	return v
}

// ToComplex converts a pixel coordinate to its point on the complex plane.
// The vertical axis is flipped: pixel row 0 is the top of the screen, but
// the imaginary axis increases upward. Pure function of its inputs.
func (v Viewport) ToComplex(px, py float64) complex128 {
	w := float64(v.Width)
	h := float64(v.Height)
	aspect := w / h
	re := (px/w*4*aspect-2*aspect)*v.Zoom + v.CenterX
	im := -(py/h*4-2)*v.Zoom + v.CenterY
	return complex(re, im)
}

// FromComplex is the algebraic inverse of ToComplex. Hosts use it to keep
// the point under the cursor stable while zooming.
func (v Viewport) FromComplex(c complex128) (px, py float64) {
	w := float64(v.Width)
	h := float64(v.Height)
	aspect := w / h
	px = ((real(c)-v.CenterX)/v.Zoom + 2*aspect) * w / (4 * aspect)
	py = ((v.CenterY-imag(c))/v.Zoom + 2) * h / 4
	return px, py
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
