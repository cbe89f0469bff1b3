// Package arena provides a growable contiguous float64 arena addressed by
// integer spans, plus a sync.Pool-backed pool of arenas.
//
// Spans stay valid across growth because they are offsets, not slices;
// resolve them with Arena.Slice right before use.
package arena
