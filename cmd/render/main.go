// render is an offline snapshot tool: it renders one frame of the
// Mandelbrot set at the requested view and saves it as a PNG file.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"math"
	"os"
	"strings"

	mandel "github.com/marben/mandelview"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		out     = flag.String("o", "mandel.png", "output PNG file")
		width   = flag.Int("width", 1920, "image width in pixels")
		height  = flag.Int("height", 1080, "image height in pixels")
		zoom    = flag.Float64("zoom", mandel.DefaultZoom, "zoom factor")
		cx      = flag.Float64("cx", mandel.DefaultCenterX, "view center, real part")
		cy      = flag.Float64("cy", mandel.DefaultCenterY, "view center, imaginary part")
		iter    = flag.Int("iter", mandel.DefaultMaxIter, "maximum iterations")
		quality = flag.Float64("quality", 1.0, "resolution multiplier")
		region  = flag.String("region", "", "landmark to frame instead of zoom/cx/cy (see -list)")
		list    = flag.Bool("list", false, "list landmark names and exit")
		workers = flag.Int("workers", 0, "render goroutines (0 = all CPUs)")
	)
	flag.Parse()

	if *list {
		for _, l := range mandel.Landmarks {
			fmt.Println(l.Name)
		}
		return nil
	}

	vp := mandel.DefaultViewport(*width, *height)
	vp.Zoom = *zoom
	vp.CenterX, vp.CenterY = *cx, *cy
	vp.Quality = *quality
	if *region != "" {
		r, ok := mandel.LandmarkByName(*region)
		if !ok {
			return fmt.Errorf("unknown region %q (known: %s)", *region, landmarkNames())
		}
		vp = r.Fit(vp)
	}
	vp = vp.Normalized()

	// quality scales the rendered resolution, same as the interactive hosts
	vp.Width = int(math.Round(float64(*width) * vp.Quality))
	vp.Height = int(math.Round(float64(*height) * vp.Quality))

	engine := &mandel.Engine{Workers: *workers}
	log.Printf("rendering %dx%d, zoom %g, center (%g, %g), %d iterations",
		vp.Width, vp.Height, vp.Zoom, vp.CenterX, vp.CenterY, *iter)

	img, err := engine.Render(context.Background(), vp, *iter)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	log.Printf("rendered image saved to %q", *out)
	return nil
}

func landmarkNames() string {
	names := make([]string, len(mandel.Landmarks))
	for i, l := range mandel.Landmarks {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}
