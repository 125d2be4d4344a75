package main

import (
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	mandel "github.com/marben/mandelview"
)

// webServer serves the files in staticDir along with the /ws render
// endpoint.
func webServer(addr, staticDir string, engine *mandel.Engine) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", renderHandler(engine))
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// renderHandler upgrades the connection to a websocket and serves render
// requests on it until the client goes away.
func renderHandler(engine *mandel.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}

		log.Printf("render connection from %s", r.RemoteAddr)
		if err := serveRender(r.Context(), c, engine); err != nil {
			log.Printf("render connection %s closed: %v", r.RemoteAddr, err)
		}
		c.CloseNow()
	}
}
