// view is the desktop interactive viewer: drag pans, the wheel zooms toward
// the cursor, number keys jump to landmark regions, R resets the view.
// Q/A step the quality multiplier, I/K step the iteration bound.
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	mandel "github.com/marben/mandelview"
)

const (
	initialWidth  = 800
	initialHeight = 600

	qualityStep = 0.25
	iterStep    = 100

	// iteration window exposed by the host controls; the core itself
	// accepts down to 1
	iterMin = 100
	iterMax = 2000
)

// stepIter moves the iteration bound by delta, staying inside the host
// control window.
func stepIter(cur, delta int) int {
	v := cur + delta
	if v < iterMin {
		return iterMin
	}
	if v > iterMax {
		return iterMax
	}
	return v
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		iter    = flag.Int("iter", mandel.DefaultMaxIter, "maximum iterations")
		quality = flag.Float64("quality", 1.0, "resolution multiplier")
	)
	flag.Parse()

	ctrl := mandel.NewController(initialWidth, initialHeight)
	ctrl.Apply(mandel.SetMaxIterations{Value: *iter})
	ctrl.Apply(mandel.SetQuality{Value: *quality})

	g := &game{ctrl: ctrl, winW: initialWidth, winH: initialHeight}
	g.session = &mandel.Session{
		Engine:     &mandel.Engine{},
		Controller: ctrl,
		Frame: func(img *image.RGBA) {
			g.mu.Lock()
			g.frame = img
			g.mu.Unlock()
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := g.session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("session: %v", err)
		}
	}()
	g.session.Invalidate()

	ebiten.SetWindowTitle("mandelview")
	ebiten.SetWindowSize(initialWidth, initialHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

type game struct {
	ctrl    *mandel.Controller
	session *mandel.Session

	mu    sync.Mutex
	frame *image.RGBA // latest finished frame, nil once consumed
	tex   *ebiten.Image

	winW, winH int
}

// toResolution scales window coordinates into the viewport's resolution
// space (the render surface may be supersampled by the quality multiplier).
func (g *game) toResolution(mx, my int) (float64, float64) {
	vp, _ := g.ctrl.Snapshot()
	sx := float64(vp.Width) / float64(g.winW)
	sy := float64(vp.Height) / float64(g.winH)
	return float64(mx) * sx, float64(my) * sy
}

func (g *game) Update() error {
	changed := false

	// wheel zoom, keeping the point under the cursor fixed
	_, wy := ebiten.Wheel()
	if wy != 0 {
		mx, my := ebiten.CursorPosition()
		px, py := g.toResolution(mx, my)
		vp, _ := g.ctrl.Snapshot()
		c := vp.ToComplex(px, py)

		if g.ctrl.Apply(mandel.Wheel{DeltaY: -wy}) {
			changed = true
			if !g.ctrl.Dragging() {
				// pan so the zoomed view keeps c under the cursor
				vp, _ = g.ctrl.Snapshot()
				ax, ay := vp.FromComplex(c)
				g.ctrl.Apply(mandel.PointerDown{X: ax, Y: ay})
				g.ctrl.Apply(mandel.PointerMove{X: px, Y: py})
				g.ctrl.Apply(mandel.PointerUp{})
			}
		}
	}

	// drag pan
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		px, py := g.toResolution(mx, my)
		g.ctrl.Apply(mandel.PointerDown{X: px, Y: py})
	}
	if g.ctrl.Dragging() {
		mx, my := ebiten.CursorPosition()
		px, py := g.toResolution(mx, my)
		if g.ctrl.Apply(mandel.PointerMove{X: px, Y: py}) {
			changed = true
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.ctrl.Apply(mandel.PointerUp{})
	}

	// landmarks on the number keys
	for i, l := range mandel.Landmarks {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
			if g.ctrl.Apply(mandel.JumpToRegion{Region: l.Region}) {
				changed = true
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if g.ctrl.Apply(mandel.ResetView{}) {
			changed = true
		}
	}

	vp, maxIter := g.ctrl.Snapshot()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		if g.ctrl.Apply(mandel.SetQuality{Value: vp.Quality + qualityStep}) {
			changed = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if g.ctrl.Apply(mandel.SetQuality{Value: vp.Quality - qualityStep}) {
			changed = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		if g.ctrl.Apply(mandel.SetMaxIterations{Value: stepIter(maxIter, iterStep)}) {
			changed = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		if g.ctrl.Apply(mandel.SetMaxIterations{Value: stepIter(maxIter, -iterStep)}) {
			changed = true
		}
	}

	if changed {
		g.session.Invalidate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	frame := g.frame
	g.frame = nil
	g.mu.Unlock()

	if frame != nil {
		w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
		if g.tex == nil || g.tex.Bounds().Dx() != w || g.tex.Bounds().Dy() != h {
			if g.tex != nil {
				g.tex.Deallocate()
			}
			g.tex = ebiten.NewImage(w, h)
		}
		g.tex.WritePixels(frame.Pix)
	}
	if g.tex == nil {
		return
	}

	// the frame resolution is window size times quality; scale it onto the
	// window
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(screen.Bounds().Dx())/float64(g.tex.Bounds().Dx()),
		float64(screen.Bounds().Dy())/float64(g.tex.Bounds().Dy()),
	)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.tex, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.winW || outsideHeight != g.winH {
		g.winW, g.winH = outsideWidth, outsideHeight
		if g.ctrl.Apply(mandel.Resize{
			Width:            float64(outsideWidth),
			Height:           float64(outsideHeight),
			DevicePixelRatio: 1,
		}) {
			g.session.Invalidate()
		}
	}
	return outsideWidth, outsideHeight
}
