// termview is the terminal interactive viewer. Each character cell shows
// two stacked pixels through the upper-half-block glyph, so a terminal of
// WxH cells renders a Wx2H frame. Mouse drag pans, the wheel zooms, number
// keys jump to landmark regions, r resets the view, + and - step the
// iteration bound, ] and [ step the quality multiplier, q or Escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	mandel "github.com/marben/mandelview"
)

const (
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	cols, rows := screen.Size()
	ctrl := mandel.NewController(cols, rows*2)
	ctrl.Apply(mandel.SetMaxIterations{Value: *iter})
	ctrl.Apply(mandel.SetQuality{Value: *quality})
	ctrl.Apply(mandel.Resize{Width: float64(cols), Height: float64(rows * 2), DevicePixelRatio: 1})

	// only the newest finished frame matters; older ones are dropped
	frames := make(chan *image.RGBA, 1)
	session := &mandel.Session{
		Engine:     &mandel.Engine{},
		Controller: ctrl,
		Frame: func(img *image.RGBA) {
			for {
				select {
				case frames <- img:
					return
				default:
					select {
					case <-frames:
					default:
					}
				}
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("session: %v", err)
		}
	}()
	session.Invalidate()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	var buttons tcell.ButtonMask
	for {
		select {
		case img := <-frames:
			drawFrame(screen, img)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			changed := false
			switch ev := ev.(type) {
			case *tcell.EventResize:
				cols, rows = ev.Size()
				changed = ctrl.Apply(mandel.Resize{
					Width:            float64(cols),
					Height:           float64(rows * 2),
					DevicePixelRatio: 1,
				})
				screen.Sync()

			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				changed = applyKey(ctrl, ev.Rune())

			case *tcell.EventMouse:
				x, y := ev.Position()
				px, py := cellToResolution(ctrl, cols, rows, x, y)
				btn := ev.Buttons()

				switch {
				case btn&tcell.WheelUp != 0:
					changed = ctrl.Apply(mandel.Wheel{DeltaY: -1})
				case btn&tcell.WheelDown != 0:
					changed = ctrl.Apply(mandel.Wheel{DeltaY: 1})
				}

				switch {
				case btn&tcell.Button1 != 0 && buttons&tcell.Button1 == 0:
					ctrl.Apply(mandel.PointerDown{X: px, Y: py})
				case btn&tcell.Button1 == 0 && buttons&tcell.Button1 != 0:
					ctrl.Apply(mandel.PointerUp{})
				case btn&tcell.Button1 != 0:
					if ctrl.Apply(mandel.PointerMove{X: px, Y: py}) {
						changed = true
					}
				}
				buttons = btn
			}
			if changed {
				session.Invalidate()
			}
		}
	}
}

func applyKey(ctrl *mandel.Controller, r rune) bool {
	if r >= '1' && int(r-'1') < len(mandel.Landmarks) {
		return ctrl.Apply(mandel.JumpToRegion{Region: mandel.Landmarks[r-'1'].Region})
	}
	vp, maxIter := ctrl.Snapshot()
	switch r {
	case 'r':
		return ctrl.Apply(mandel.ResetView{})
	case '+', '=':
		return ctrl.Apply(mandel.SetMaxIterations{Value: stepIter(maxIter, iterStep)})
	case '-':
		return ctrl.Apply(mandel.SetMaxIterations{Value: stepIter(maxIter, -iterStep)})
	case ']':
		return ctrl.Apply(mandel.SetQuality{Value: vp.Quality + qualityStep})
	case '[':
		return ctrl.Apply(mandel.SetQuality{Value: vp.Quality - qualityStep})
	}
	return false
}

// cellToResolution scales a cell coordinate into the viewport's resolution
// space. One cell is one pixel wide and two pixels tall before the quality
// multiplier.
func cellToResolution(ctrl *mandel.Controller, cols, rows, x, y int) (float64, float64) {
	vp, _ := ctrl.Snapshot()
	sx := float64(vp.Width) / float64(cols)
	sy := float64(vp.Height) / float64(rows*2)
	return float64(x) * sx, float64(y*2) * sy
}

// drawFrame paints the frame onto the cell grid, two pixel rows per cell:
// the top pixel is the foreground of the half block, the bottom the
// background. Supersampled frames are scaled down first.
func drawFrame(screen tcell.Screen, img *image.RGBA) {
	cols, rows := screen.Size()
	target := image.Rect(0, 0, cols, rows*2)
	if img.Bounds() != target {
		scaled := image.NewRGBA(target)
		xdraw.ApproxBiLinear.Scale(scaled, target, img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := img.RGBAAt(x, 2*y)
			bottom := img.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, '▀', nil, style)
		}
	}
	screen.Show()
}
