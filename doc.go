// Package mandelzoom is an adaptive-precision Mandelbrot escape-time engine.
//
// Given a rectangular region of the complex plane and a pixel grid, the engine
// produces one continuous (smooth) iteration value per pixel. The arithmetic
// representation used for a pass is chosen by SelectMode from the precision the
// region actually requires: plain float64, compensated double-double,
// 128-bit big.Float, or perturbation against a high-precision reference orbit.
//
// Buffers are row-major with row 0 at Ymin (bottom-to-top). Non-escaping
// pixels carry the reserved Interior sentinel; escaped values lie in
// [0, maxIter).
//
// The view/ package models the viewport in arbitrary precision, engine/ runs
// passes on a background goroutine with request coalescing, and cmd/ holds the
// interactive consumers.
package mandelzoom
