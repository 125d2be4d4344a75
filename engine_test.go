package mandelview

import (
	"bytes"
	"context"
	"image"
	"sync/atomic"
	"testing"
)

func TestRenderCenterPixelOfDefaultView(t *testing.T) {
	vp := DefaultViewport(800, 600)
	e := &Engine{}

	img, err := e.Render(context.Background(), vp, 1000)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 800, 600) {
		t.Fatalf("bounds = %v, want 800x600", got)
	}

	// the screen center maps to (-0.5, 0), which is inside the set and
	// therefore black
	c := vp.ToComplex(400, 300)
	if r := Escape(c, 1000); r.Escaped {
		t.Fatalf("center point %v unexpectedly escaped: %+v", c, r)
	}
	px := img.RGBAAt(400, 300)
	if px.R != 0 || px.G != 0 || px.B != 0 || px.A != 255 {
		t.Errorf("center pixel = %+v, want opaque black", px)
	}
}

func TestRenderDeterministic(t *testing.T) {
	vp := Viewport{Zoom: 0.02, CenterX: -0.745, CenterY: 0.113, Width: 160, Height: 120, Quality: 1}
	e := &Engine{}

	a, err := e.Render(context.Background(), vp, 300)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	b, err := e.Render(context.Background(), vp, 300)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical snapshots produced different frames")
	}
}

func TestRenderMatchesSequentialReference(t *testing.T) {
	// the tiled parallel pass must agree pixel for pixel with a plain
	// double loop over the same viewport
	vp := Viewport{Zoom: 0.5, CenterX: -0.5, CenterY: 0, Width: 97, Height: 53, Quality: 1}
	const maxIter = 150

	e := &Engine{TileSize: 16}
	img, err := e.Render(context.Background(), vp, maxIter)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for py := 0; py < vp.Height; py++ {
		for px := 0; px < vp.Width; px++ {
			want := Colorize(Escape(vp.ToComplex(float64(px), float64(py)), maxIter))
			if got := img.RGBAAt(px, py); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", px, py, got, want)
			}
		}
	}
}

func TestRenderUsesKernelOncePerPixel(t *testing.T) {
	var calls atomic.Int64
	e := &Engine{
		Kernel: KernelFunc(func(c complex128, maxIter int) EscapeResult {
			calls.Add(1)
			return Escape(c, maxIter)
		}),
		TileSize: 10,
	}
	vp := Viewport{Zoom: 0.5, CenterX: -0.5, CenterY: 0, Width: 33, Height: 21, Quality: 1}
	if _, err := e.Render(context.Background(), vp, 50); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got, want := calls.Load(), int64(33*21); got != want {
		t.Errorf("kernel called %d times, want %d", got, want)
	}
}

func TestRenderClampsOversizedResolution(t *testing.T) {
	// resolution arrives over the wire on the server host, so the engine
	// must clamp it rather than panic allocating the frame
	vp := Viewport{Zoom: 0.5, CenterX: -0.5, CenterY: 0, Width: 1 << 31, Height: 1, Quality: 1}

	e := &Engine{}
	img, err := e.Render(context.Background(), vp, 1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, MaxDimension, 1) {
		t.Errorf("bounds = %v, want %dx1", got, MaxDimension)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &Engine{}
	vp := DefaultViewport(64, 64)
	if _, err := e.Render(ctx, vp, 100); err == nil {
		t.Error("Render on a cancelled context returned nil error")
	}
}

func TestSplitRectNoClipPartitions(t *testing.T) {
	r := image.Rect(0, 0, 100, 70)
	tiles := splitRectNoClip(r, 32, 32)

	covered := make(map[image.Point]int)
	for _, tile := range tiles {
		if !tile.In(r) {
			t.Errorf("tile %v leaves %v", tile, r)
		}
		for y := tile.Min.Y; y < tile.Max.Y; y++ {
			for x := tile.Min.X; x < tile.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}

	if len(covered) != r.Dx()*r.Dy() {
		t.Errorf("tiles cover %d pixels, want %d", len(covered), r.Dx()*r.Dy())
	}
	for pt, n := range covered {
		if n != 1 {
			t.Errorf("pixel %v covered %d times", pt, n)
		}
	}
}
