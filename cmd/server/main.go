// server hosts the web viewer: it serves the static WASM client and a /ws
// endpoint that renders frames for clients that opt into remote rendering.
package main

import (
	"flag"
	"log"

	mandel "github.com/marben/mandelview"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		addr    = flag.String("addr", ":8080", "http listen address")
		static  = flag.String("static", "./static", "directory with index.html and main.wasm")
		workers = flag.Int("workers", 0, "render goroutines per pass (0 = all CPUs)")
	)
	flag.Parse()

	engine := &mandel.Engine{Workers: *workers}

	srv := webServer(*addr, *static, engine)
	log.Printf("listening on http://localhost%s", *addr)
	return srv.ListenAndServe()
}
