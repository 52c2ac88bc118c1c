package main

import (
	"bytes"
	"context"
	_ "embed"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/marben/mandelzoom/engine"
	"github.com/marben/mandelzoom/palette"
	"github.com/marben/mandelzoom/render"
	"github.com/marben/mandelzoom/view"
)

//go:embed index.html
var indexHTML []byte

// framePollInterval is how often a connection checks for a newer frame.
// Frames are published at compute cadence (hundreds of ms and up), so a
// coarse poll is plenty.
const framePollInterval = 100 * time.Millisecond

// command is one input event from the browser, in NDC coordinates.
type command struct {
	Op     string  `json:"op"` // "zoom", "center" or "pan"
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Factor float64 `json:"factor,omitempty"`
}

// status precedes every frame push so the page can show zoom/mode/iter.
type status struct {
	Zoom    string `json:"zoom"`
	MaxIter int    `json:"maxIter"`
	Mode    string `json:"mode"`
	Millis  int64  `json:"millis"`
}

type handler struct {
	sch *engine.Scheduler
	pal *palette.Palette
}

func newHandler(sch *engine.Scheduler, pal *palette.Palette) *handler {
	return &handler{sch: sch, pal: pal}
}

func (h *handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (h *handler) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: tighten in prod
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()
	log.Printf("viewer connected: %s", r.RemoteAddr)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return h.readCommands(ctx, c) })
	g.Go(func() error { return h.pushFrames(ctx, c) })
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Printf("viewer %s: %v", r.RemoteAddr, err)
	}
	log.Printf("viewer disconnected: %s", r.RemoteAddr)
}

// readCommands applies browser input events to the shared view state. The
// scheduler coalesces bursts into single compute passes.
func (h *handler) readCommands(ctx context.Context, c *websocket.Conn) error {
	w, ht := h.sch.Size()
	aspect := float64(w) / float64(ht)
	for {
		var cmd command
		if err := wsjson.Read(ctx, c, &cmd); err != nil {
			return err
		}
		switch cmd.Op {
		case "zoom":
			h.sch.Update(func(st *view.State) {
				st.ZoomAt(cmd.X, cmd.Y, aspect, cmd.Factor)
			})
		case "center":
			h.sch.Update(func(st *view.State) {
				st.CenterOn(cmd.X, cmd.Y, aspect)
			})
		case "pan":
			h.sch.Update(func(st *view.State) {
				st.Pan(cmd.X, cmd.Y, aspect)
			})
		}
	}
}

// pushFrames sends every newly published frame as a PNG binary message,
// preceded by a JSON status line.
func (h *handler) pushFrames(ctx context.Context, c *websocket.Conn) error {
	ticker := time.NewTicker(framePollInterval)
	defer ticker.Stop()

	var sent *engine.Frame
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		f := h.sch.Latest()
		if f == nil || f == sent {
			continue
		}
		sent = f

		img := render.Image(f, h.pal)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		st := status{
			Zoom:    f.View.Zoom.Text('e', 3),
			MaxIter: f.View.MaxIter,
			Mode:    f.Mode.String(),
			Millis:  f.Elapsed.Milliseconds(),
		}
		if err := wsjson.Write(ctx, c, st); err != nil {
			return err
		}
		if err := c.Write(ctx, websocket.MessageBinary, buf.Bytes()); err != nil {
			return err
		}
	}
}
