// serve exposes the explorer over HTTP: an embedded single-page viewer plus
// a websocket endpoint that streams rendered frames and accepts zoom/pan
// commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/engine"
	"github.com/marben/mandelzoom/palette"
	"github.com/marben/mandelzoom/view"
)

var (
	addr     = flag.String("addr", ":8080", "http listen address")
	width    = flag.Int("w", 960, "compute width in pixels")
	height   = flag.Int("h", 720, "compute height in pixels")
	landmark = flag.String("landmark", "home", "starting view")
	verbose  = flag.Bool("v", false, "log per-pass diagnostics")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	if *verbose {
		mandelzoom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	st := view.NewState()
	if l, ok := mandelzoom.FindLandmark(*landmark); ok {
		if err := st.SetCenter(l.CenterX, l.CenterY); err != nil {
			return err
		}
		if err := st.SetZoom(l.Zoom); err != nil {
			return err
		}
		st.SetMaxIter(l.MaxIter)
	}

	sch := engine.New(st, *width, *height)
	sch.Start()
	defer sch.Close()
	sch.Invalidate()

	h := newHandler(sch, palette.New())
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveIndex)
	mux.HandleFunc("/ws", h.serveWS)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		log.Printf("listening on http://localhost%s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}
