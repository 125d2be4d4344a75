package mandelview

import "math"

// Region is an axis-aligned window on the complex plane, used for the named
// landmark views below.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Landmark pairs a region with a display name for host menus and key
// bindings.
type Landmark struct {
	Name   string
	Region Region
}

// Landmarks lists the named views in a stable order; hosts bind them to
// number keys in this order.
var Landmarks = []Landmark{
	{"Seahorse Valley", SeahorseValley},
	{"Elephant Valley", ElephantValley},
	{"Spiral Minibrot", SpiralMinibrot},
	{"Triple Spiral", TripleSpiral},
	{"Valley of the Dragon", ValleyOfTheDragon},
	{"Minibrot in a Mini-Spiral", MinibrotInMiniSpiral},
}

// LandmarkByName looks up a landmark region by its display name.
func LandmarkByName(name string) (Region, bool) {
	for _, l := range Landmarks {
		if l.Name == name {
			return l.Region, true
		}
	}
	return Region{}, false
}

// Fit returns a viewport framing the whole region at vp's resolution and
// quality: centered on the region, zoomed out just far enough that both
// axes fit.
func (r Region) Fit(vp Viewport) Viewport {
	vp.CenterX = (r.Xmin + r.Xmax) / 2
	vp.CenterY = (r.Ymin + r.Ymax) / 2
	zx := (r.Xmax - r.Xmin) / (4 * vp.Aspect())
	zy := (r.Ymax - r.Ymin) / 4
	vp.Zoom = clamp(math.Max(zx, zy), MinZoom, MaxZoom)
	return vp
}
