package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"image/png"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelview"
)

// serveRender reads RenderRequests off the connection and answers each with
// one binary message: the request's Seq as 8 big-endian bytes, followed by
// the PNG frame. A newer request cancels the pass still running for the
// older one, so the connection only ever spends CPU on the latest view.
// Closing the connection cancels everything.
func serveRender(ctx context.Context, conn *websocket.Conn, engine *mandel.Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu         sync.Mutex
		passCancel context.CancelFunc
		writeMu    sync.Mutex
		wg         sync.WaitGroup
	)
	defer wg.Wait()

	for {
		var req mandel.RenderRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			return err
		}

		mu.Lock()
		if passCancel != nil {
			passCancel()
		}
		passCtx, c := context.WithCancel(ctx)
		passCancel = c
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c()

			img, err := engine.Render(passCtx, req.Viewport, req.MaxIter)
			if err != nil {
				// superseded or connection gone; nothing to send
				return
			}

			var buf bytes.Buffer
			var seq [mandel.SeqHeaderLen]byte
			binary.BigEndian.PutUint64(seq[:], req.Seq)
			buf.Write(seq[:])
			if err := png.Encode(&buf, img); err != nil {
				log.Printf("encode frame %d: %v", req.Seq, err)
				return
			}

			writeMu.Lock()
			err = conn.Write(passCtx, websocket.MessageBinary, buf.Bytes())
			writeMu.Unlock()
			if err != nil {
				log.Printf("write frame %d: %v", req.Seq, err)
			}
		}()
	}
}
