package mandelview

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const defaultTileSize = 64

// Engine renders full frames: every pixel of the viewport's resolution is
// mapped onto the plane, evaluated through the kernel and colored. Pixels
// are independent, so the frame is split into tiles and the tiles are
// evaluated by a bounded pool of goroutines. Every pass computes the whole
// frame from scratch; escape trajectories are not reusable across views.
//
// The zero value renders with the sequential reference kernel, 64x64 tiles
// and one goroutine per CPU.
type Engine struct {
	// Kernel evaluates one pixel. Nil means the reference Escape.
	Kernel Kernel
	// TileSize is the tile edge in pixels; values < 1 mean 64.
	TileSize int
	// Workers caps the goroutine pool; values < 1 mean GOMAXPROCS.
	Workers int
}

// Render computes one frame of vp at the given iteration bound. The context
// is observed between tiles: a cancelled pass stops early and returns the
// context error, and its image must not be shown.
func (e *Engine) Render(ctx context.Context, vp Viewport, maxIter int) (*image.RGBA, error) {
	vp = vp.Normalized()
	maxIter = clampInt(maxIter, 1, AbsoluteMaxIter)

	kernel := e.Kernel
	if kernel == nil {
		kernel = KernelFunc(Escape)
	}
	tileSize := e.TileSize
	if tileSize < 1 {
		tileSize = defaultTileSize
	}
	workers := e.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, tile := range splitRectNoClip(img.Bounds(), tileSize, tileSize) {
		tile := tile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			renderTile(img, tile, vp, kernel, maxIter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// renderTile fills one tile of img. Tiles are disjoint, so the shared pixel
// buffer needs no locking.
func renderTile(img *image.RGBA, tile image.Rectangle, vp Viewport, kernel Kernel, maxIter int) {
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		for px := tile.Min.X; px < tile.Max.X; px++ {
			c := vp.ToComplex(float64(px), float64(py))
			img.SetRGBA(px, py, Colorize(kernel.Evaluate(c, maxIter)))
		}
	}
}

// splitRectNoClip splits r into tiles of size tileW x tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}

	return tiles
}
