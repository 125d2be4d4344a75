//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"syscall/js"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelview"
)

// remoteRenderer hands evaluation to the server: every request carries a
// growing sequence number, the server cancels superseded passes and each
// binary reply names the request it answers. Replies older than the newest
// request are dropped, so the canvas never shows a stale view after a newer
// one exists.
type remoteRenderer struct {
	conn *websocket.Conn
	draw func(*image.RGBA)
	seq  uint64 // wasm is single-threaded, no locking needed
}

func dialRemote(ctx context.Context, draw func(*image.RGBA)) (*remoteRenderer, error) {
	url := wsURL()
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	conn.SetReadLimit(32 << 20) // replies are whole PNG frames

	r := &remoteRenderer{conn: conn, draw: draw}
	go r.readLoop(ctx)
	return r, nil
}

// wsURL derives the /ws endpoint from the page's own location.
func wsURL() string {
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	return proto + "://" + host + "/ws"
}

func (r *remoteRenderer) request(ctx context.Context, vp mandel.Viewport, maxIter int) {
	r.seq++
	req := mandel.RenderRequest{Seq: r.seq, Viewport: vp, MaxIter: maxIter}
	if err := wsjson.Write(ctx, r.conn, req); err != nil {
		logScreenf("remote request: %v", err)
	}
}

// close shuts the connection down; the read loop ends with it.
func (r *remoteRenderer) close() {
	r.conn.Close(websocket.StatusNormalClosure, "remote mode disabled")
}

func (r *remoteRenderer) readLoop(ctx context.Context) {
	for {
		typ, data, err := r.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				logScreenf("remote connection closed: %v", err)
			}
			return
		}
		if typ != websocket.MessageBinary || len(data) < mandel.SeqHeaderLen {
			continue
		}

		seq := binary.BigEndian.Uint64(data[:mandel.SeqHeaderLen])
		if seq != r.seq {
			continue // answers a superseded request
		}

		img, err := png.Decode(bytes.NewReader(data[mandel.SeqHeaderLen:]))
		if err != nil {
			logScreenf("decode frame %d: %v", seq, err)
			continue
		}
		rgba, ok := img.(*image.RGBA)
		if !ok {
			rgba = image.NewRGBA(img.Bounds())
			draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		}
		r.draw(rgba)
	}
}
