// explorer is the interactive desktop viewer.
//
// Controls:
//   - mouse wheel: zoom in/out at the cursor
//   - left click:  center the view on the cursor
//   - escape:      exit
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/engine"
	"github.com/marben/mandelzoom/palette"
	"github.com/marben/mandelzoom/view"
)

var (
	width    = flag.Int("w", 1280, "window and compute width in pixels")
	height   = flag.Int("h", 960, "window and compute height in pixels")
	landmark = flag.String("landmark", "home", "starting view")
	verbose  = flag.Bool("v", false, "log per-pass diagnostics")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
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
	sch.Invalidate() // first frame

	g := newGame(sch, palette.New(), *width, *height)
	ebiten.SetWindowTitle("mandelzoom")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}
