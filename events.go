package mandelview

// Event is one input from the presentation layer. Hosts translate their
// native pointer, wheel, resize and config events into this model and feed
// them to a Controller through Apply. Pointer coordinates are expected in
// the viewport's resolution space; hosts whose input layer measures in a
// different scale (CSS pixels, terminal cells) convert before dispatching.
type Event interface {
	isEvent()
}

// PointerDown begins a drag at the given position.
type PointerDown struct {
	X, Y float64
}

// PointerMove pans the view while a drag is active. Ignored when idle.
type PointerMove struct {
	X, Y float64
}

// PointerUp ends the drag.
type PointerUp struct{}

// PointerLeave ends the drag when the pointer leaves the surface.
type PointerLeave struct{}

// Wheel zooms multiplicatively: positive DeltaY widens the view by 1.1x,
// negative narrows it by 0.9x, so a step feels proportional at all scales.
type Wheel struct {
	DeltaY float64
}

// Resize reports the measured surface size and device pixel ratio. The
// controller derives the render resolution from them and the quality
// multiplier; zoom and center are untouched.
type Resize struct {
	Width, Height    float64
	DevicePixelRatio float64
}

// SetMaxIterations changes the evaluator's iteration bound.
type SetMaxIterations struct {
	Value int
}

// SetQuality changes the supersampling multiplier and recomputes the
// resolution from the last measured surface.
type SetQuality struct {
	Value float64
}

// ResetView restores the default zoom and center.
type ResetView struct{}

// JumpToRegion frames a landmark region.
type JumpToRegion struct {
	Region Region
}

func (PointerDown) isEvent()      {}
func (PointerMove) isEvent()      {}
func (PointerUp) isEvent()        {}
func (PointerLeave) isEvent()     {}
func (Wheel) isEvent()            {}
func (Resize) isEvent()           {}
func (SetMaxIterations) isEvent() {}
func (SetQuality) isEvent()       {}
func (ResetView) isEvent()        {}
func (JumpToRegion) isEvent()     {}
