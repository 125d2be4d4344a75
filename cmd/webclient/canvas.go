//go:build js && wasm

package main

import (
	"image"
	"syscall/js"
)

// drawFrame puts a finished frame on the canvas. The canvas backing store
// is resized to the frame's resolution; CSS keeps it stretched over the
// page, so the quality multiplier becomes supersampling.
func drawFrame(canvas js.Value, img *image.RGBA) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	if canvas.Get("width").Int() != w {
		canvas.Set("width", w)
	}
	if canvas.Get("height").Int() != h {
		canvas.Set("height", h)
	}

	ctx := canvas.Call("getContext", "2d")

	// copy the Go pixel buffer into a JS TypedArray and put it on the
	// canvas in one call
	jsData := js.Global().Get("Uint8ClampedArray").New(len(img.Pix))
	js.CopyBytesToJS(jsData, img.Pix)
	imageData := js.Global().Get("ImageData").New(jsData, w, h)
	ctx.Call("putImageData", imageData, 0, 0)
}
