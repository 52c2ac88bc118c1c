// render is a one-shot CLI renderer: it computes a single frame for the
// requested view and saves it as a PNG file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/engine"
	"github.com/marben/mandelzoom/palette"
	"github.com/marben/mandelzoom/render"
	"github.com/marben/mandelzoom/view"
)

var (
	landmark = flag.String("landmark", "home", "named starting view (see -list)")
	list     = flag.Bool("list", false, "list landmarks and exit")
	centerX  = flag.String("x", "", "center real part (decimal, overrides landmark)")
	centerY  = flag.String("y", "", "center imaginary part (decimal)")
	zoom     = flag.String("zoom", "", "zoom factor (decimal, view height is 1/zoom)")
	width    = flag.Int("w", 1200, "image width in pixels")
	height   = flag.Int("h", 900, "image height in pixels")
	maxIter  = flag.Int("iter", 0, "iteration cap (0 = derive from zoom)")
	out      = flag.String("o", "mandel.png", "output file")
	verbose  = flag.Bool("v", false, "log per-pass diagnostics")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	if *list {
		for _, l := range mandelzoom.Landmarks {
			fmt.Printf("%-16s %s (zoom %s)\n", l.Name, l.Comment, l.Zoom)
		}
		return nil
	}
	if *verbose {
		mandelzoom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	st, err := buildView()
	if err != nil {
		return err
	}
	snap := st.Snapshot()

	aspect := float64(*width) / float64(*height)
	b := snap.Bounds(aspect)
	req := mandelzoom.Request{
		Xmin: b.Xmin, Xmax: b.Xmax,
		Ymin: b.Ymin, Ymax: b.Ymax,
		Width: *width, Height: *height,
		MaxIter: snap.MaxIter,
	}
	mode := mandelzoom.SelectMode(req.Xmin, req.Xmax, req.Width)
	log.Printf("computing %dx%d, zoom %s, %d iterations, %s precision",
		*width, *height, snap.Zoom.Text('e', 3), snap.MaxIter, mode)

	start := time.Now()
	res, err := mandelzoom.ComputeWithMode(req, mode)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	minVal, maxVal := mandelzoom.Normalize(res)
	log.Printf("computed in %.3fs (%.1f%% escaped)",
		time.Since(start).Seconds(), 100*res.EscapedFraction())

	frame := &engine.Frame{Result: res, View: snap, Mode: mode, MinVal: minVal, MaxVal: maxVal}
	img := render.Image(frame, palette.New())

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	log.Printf("saved %q", *out)
	return nil
}

// buildView assembles the view state from the landmark and any overriding
// flags.
func buildView() (*view.State, error) {
	st := view.NewState()

	l, ok := mandelzoom.FindLandmark(*landmark)
	if !ok {
		return nil, fmt.Errorf("unknown landmark %q (try -list)", *landmark)
	}
	if err := st.SetCenter(l.CenterX, l.CenterY); err != nil {
		return nil, err
	}
	if err := st.SetZoom(l.Zoom); err != nil {
		return nil, err
	}
	st.SetMaxIter(l.MaxIter)

	if *centerX != "" || *centerY != "" {
		if *centerX == "" || *centerY == "" {
			return nil, fmt.Errorf("-x and -y must be given together")
		}
		if err := st.SetCenter(*centerX, *centerY); err != nil {
			return nil, err
		}
	}
	if *zoom != "" {
		if err := st.SetZoom(*zoom); err != nil {
			return nil, err
		}
	}
	if *maxIter > 0 {
		st.SetMaxIter(*maxIter)
	}
	return st, nil
}
