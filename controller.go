package mandelview

import (
	"math"
	"sync"
)

type controllerState int

const (
	stateIdle controllerState = iota
	stateDragging
)

// DragSession anchors an in-progress pan: the pointer position at
// pointer-down and the view center at that instant. It exists only between
// pointer-down and pointer-up/leave.
type DragSession struct {
	AnchorX, AnchorY float64
	CenterX, CenterY float64
}

// Controller owns the viewport and is its sole mutator. It is the explicit
// state machine behind the interactive controls: pointer events drive the
// Idle/Dragging transitions, wheel and resize apply in either state, and
// quality and iteration changes are plain config mutations that never touch
// drag state. Hosts feed events through Apply and invalidate their render
// session whenever it reports a change.
type Controller struct {
	mu      sync.Mutex
	vp      Viewport
	maxIter int
	state   controllerState
	drag    DragSession

	// last measured surface, so a quality change alone can recompute the
	// resolution without waiting for the next resize
	surfaceW, surfaceH float64
	dpr                float64
}

// NewController starts idle at the default view of the whole set.
func NewController(width, height int) *Controller {
	return &Controller{
		vp:       DefaultViewport(width, height),
		maxIter:  DefaultMaxIter,
		surfaceW: float64(width),
		surfaceH: float64(height),
		dpr:      1,
	}
}

// Snapshot returns a consistent copy of the current view state. Render
// passes read exactly one snapshot, never the live fields, so a pass can
// not mix an old zoom with a new center.
func (c *Controller) Snapshot() (Viewport, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp, c.maxIter
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateDragging
}

// Apply dispatches one event to the state machine and reports whether it
// changed the view state (and the frame therefore needs recomputing).
func (c *Controller) Apply(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := ev.(type) {
	case PointerDown:
		c.state = stateDragging
		c.drag = DragSession{
			AnchorX: ev.X,
			AnchorY: ev.Y,
			CenterX: c.vp.CenterX,
			CenterY: c.vp.CenterY,
		}
		return false

	case PointerMove:
		if c.state != stateDragging {
			return false
		}
		// Dragging the pointer right moves the visible content right, so
		// the world center moves left: the delta is subtracted.
		scaleX := 4 * c.vp.Aspect() * c.vp.Zoom / float64(c.vp.Width)
		scaleY := 4 * c.vp.Zoom / float64(c.vp.Height)
		nx := c.drag.CenterX - (ev.X-c.drag.AnchorX)*scaleX
		ny := c.drag.CenterY - (ev.Y-c.drag.AnchorY)*scaleY
		changed := nx != c.vp.CenterX || ny != c.vp.CenterY
		c.vp.CenterX, c.vp.CenterY = nx, ny
		return changed

	case PointerUp:
		c.state = stateIdle
		c.drag = DragSession{}
		return false

	case PointerLeave:
		c.state = stateIdle
		c.drag = DragSession{}
		return false

	case Wheel:
		factor := 0.9
		if ev.DeltaY > 0 {
			factor = 1.1
		}
		z := clamp(c.vp.Zoom*factor, MinZoom, MaxZoom)
		changed := z != c.vp.Zoom
		c.vp.Zoom = z
		return changed

	case Resize:
		c.surfaceW = ev.Width
		c.surfaceH = ev.Height
		c.dpr = ev.DevicePixelRatio
		return c.updateResolution()

	case SetQuality:
		q := clamp(ev.Value, MinQuality, MaxQuality)
		changed := q != c.vp.Quality
		c.vp.Quality = q
		if c.updateResolution() {
			changed = true
		}
		return changed

	case SetMaxIterations:
		m := clampInt(ev.Value, 1, AbsoluteMaxIter)
		changed := m != c.maxIter
		c.maxIter = m
		return changed

	case ResetView:
		changed := c.vp.Zoom != DefaultZoom ||
			c.vp.CenterX != DefaultCenterX || c.vp.CenterY != DefaultCenterY
		c.vp.Zoom = DefaultZoom
		c.vp.CenterX = DefaultCenterX
		c.vp.CenterY = DefaultCenterY
		return changed

	case JumpToRegion:
		vp := ev.Region.Fit(c.vp)
		changed := vp != c.vp
		c.vp = vp
		return changed
	}
	return false
}

// updateResolution recomputes the device resolution from the last measured
// surface size, the device pixel ratio and the quality multiplier.
func (c *Controller) updateResolution() bool {
	if c.surfaceW <= 0 || c.surfaceH <= 0 {
		return false
	}
	dpr := c.dpr
	if dpr <= 0 {
		dpr = 1
	}
	w := clampInt(int(math.Round(c.surfaceW*dpr*c.vp.Quality)), 1, MaxDimension)
	h := clampInt(int(math.Round(c.surfaceH*dpr*c.vp.Quality)), 1, MaxDimension)
	changed := w != c.vp.Width || h != c.vp.Height
	c.vp.Width = w
	c.vp.Height = h
	return changed
}
