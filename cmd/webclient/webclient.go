// webclient is the browser viewer. It runs the full rendering core in the
// page as WASM: DOM pointer, wheel and resize events feed the controller
// and the session paints finished frames onto the canvas. Ticking the
// "remote" checkbox hands evaluation to the server's /ws endpoint instead,
// for devices too slow to render locally.

//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"syscall/js"

	mandel "github.com/marben/mandelview"
)

type app struct {
	canvas  js.Value
	ctrl    *mandel.Controller
	session *mandel.Session
	remote  *remoteRenderer

	remoteMode bool
}

func main() {
	logScreenf("starting viewer...")

	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "myCanvas")

	a := &app{canvas: canvas}
	w, h, dpr := surfaceSize()
	a.ctrl = mandel.NewController(int(w*dpr), int(h*dpr))
	a.session = &mandel.Session{
		Engine:     &mandel.Engine{},
		Controller: a.ctrl,
		Frame:      func(img *image.RGBA) { drawFrame(canvas, img) },
	}

	// the session lives as long as the page does
	go func() {
		if err := a.session.Run(context.Background()); err != nil {
			logScreenf("session: %v", err)
		}
	}()

	a.ctrl.Apply(mandel.Resize{Width: w, Height: h, DevicePixelRatio: dpr})
	a.bindPointer(canvas)
	a.bindControls(doc)
	a.invalidate()

	logScreenf("viewer running; drag to pan, wheel to zoom")
	select {}
}

// invalidate requests a fresh frame for the current view from whichever
// evaluator is active.
func (a *app) invalidate() {
	if a.remoteMode {
		vp, maxIter := a.ctrl.Snapshot()
		a.remote.request(context.Background(), vp, maxIter)
		return
	}
	a.session.Invalidate()
}

func surfaceSize() (w, h, dpr float64) {
	win := js.Global().Get("window")
	w = win.Get("innerWidth").Float()
	h = win.Get("innerHeight").Float()
	dpr = win.Get("devicePixelRatio").Float()
	if dpr <= 0 {
		dpr = 1
	}
	return w, h, dpr
}

// pointerPos scales a DOM event's CSS-pixel position into the viewport's
// resolution space (device pixels times the quality multiplier).
func (a *app) pointerPos(ev js.Value) (float64, float64) {
	w, h, _ := surfaceSize()
	vp, _ := a.ctrl.Snapshot()
	x := ev.Get("clientX").Float() * float64(vp.Width) / w
	y := ev.Get("clientY").Float() * float64(vp.Height) / h
	return x, y
}

func (a *app) bindPointer(canvas js.Value) {
	on := func(name string, fn func(ev js.Value) bool) {
		canvas.Call("addEventListener", name, js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				args[0].Call("preventDefault")
				if fn(args[0]) {
					a.invalidate()
				}
			}
			return nil
		}))
	}

	on("pointerdown", func(ev js.Value) bool {
		x, y := a.pointerPos(ev)
		return a.ctrl.Apply(mandel.PointerDown{X: x, Y: y})
	})
	on("pointermove", func(ev js.Value) bool {
		x, y := a.pointerPos(ev)
		return a.ctrl.Apply(mandel.PointerMove{X: x, Y: y})
	})
	on("pointerup", func(js.Value) bool {
		return a.ctrl.Apply(mandel.PointerUp{})
	})
	on("pointerleave", func(js.Value) bool {
		return a.ctrl.Apply(mandel.PointerLeave{})
	})
	on("wheel", func(ev js.Value) bool {
		return a.ctrl.Apply(mandel.Wheel{DeltaY: ev.Get("deltaY").Float()})
	})

	js.Global().Get("window").Call("addEventListener", "resize", js.FuncOf(func(js.Value, []js.Value) any {
		w, h, dpr := surfaceSize()
		if a.ctrl.Apply(mandel.Resize{Width: w, Height: h, DevicePixelRatio: dpr}) {
			a.invalidate()
		}
		return nil
	}))
}

func (a *app) bindControls(doc js.Value) {
	iter := doc.Call("getElementById", "iter")
	iter.Call("addEventListener", "input", js.FuncOf(func(js.Value, []js.Value) any {
		v, err := strconv.Atoi(iter.Get("value").String())
		if err != nil {
			return nil
		}
		if a.ctrl.Apply(mandel.SetMaxIterations{Value: v}) {
			a.invalidate()
		}
		return nil
	}))

	quality := doc.Call("getElementById", "quality")
	quality.Call("addEventListener", "input", js.FuncOf(func(js.Value, []js.Value) any {
		v, err := strconv.ParseFloat(quality.Get("value").String(), 64)
		if err != nil {
			return nil
		}
		if a.ctrl.Apply(mandel.SetQuality{Value: v}) {
			a.invalidate()
		}
		return nil
	}))

	remote := doc.Call("getElementById", "remote")
	remote.Call("addEventListener", "change", js.FuncOf(func(js.Value, []js.Value) any {
		a.setRemote(remote.Get("checked").Bool())
		return nil
	}))

	reset := doc.Call("getElementById", "reset")
	reset.Call("addEventListener", "click", js.FuncOf(func(js.Value, []js.Value) any {
		if a.ctrl.Apply(mandel.ResetView{}) {
			a.invalidate()
		}
		return nil
	}))
}

func (a *app) setRemote(enabled bool) {
	if enabled && a.remote == nil {
		r, err := dialRemote(context.Background(), func(img *image.RGBA) { drawFrame(a.canvas, img) })
		if err != nil {
			logScreenf("remote mode unavailable: %v", err)
			return
		}
		a.remote = r
		logScreenf("remote rendering enabled")
	}
	if !enabled && a.remote != nil {
		a.remote.close()
		a.remote = nil
		logScreenf("remote rendering disabled")
	}
	a.remoteMode = enabled && a.remote != nil
	a.invalidate()
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}
