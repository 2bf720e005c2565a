// Package iterwrap adapts lazy sequences into progress-reporting
// sequences: each element produced advances a bar by one. It targets
// Go 1.23's range-over-func iterators (iter.Seq / iter.Seq2).
package iterwrap

import (
	"iter"

	"github.com/havenforge/meter"
)

// Wrap drives a bar by one increment per element of seq, forwarding
// every element unchanged. total<=0 produces an unbounded bar. The bar
// is closed when seq finishes, or when the consumer stops ranging early.
func Wrap[V any](p *meter.Progress, seq iter.Seq[V], total int64, opts ...meter.BarOption) iter.Seq[V] {
	return func(yield func(V) bool) {
		h := p.AddBar(total, opts...)
		defer h.Close()
		for v := range seq {
			h.Inc()
			if !yield(v) {
				return
			}
		}
	}
}

// WrapSlice is Wrap specialized to a slice, which always knows its exact
// length, so the bar is bounded by len(items).
func WrapSlice[V any](p *meter.Progress, items []V, opts ...meter.BarOption) iter.Seq[V] {
	return Wrap(p, func(yield func(V) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}, int64(len(items)), opts...)
}

// WrapSliceBackward mirrors WrapSlice but yields items back-to-front,
// incrementing on each yielded element exactly like the forward
// direction.
func WrapSliceBackward[V any](p *meter.Progress, items []V, opts ...meter.BarOption) iter.Seq[V] {
	return Wrap(p, func(yield func(V) bool) {
		for i := len(items) - 1; i >= 0; i-- {
			if !yield(items[i]) {
				return
			}
		}
	}, int64(len(items)), opts...)
}

// WithHandle yields each element paired with a clone of the bar's
// handle, so callers can call SetPostfix (or any other Handle method)
// from inside the loop body without needing a second reference to the
// bar.
func WithHandle[V any](p *meter.Progress, seq iter.Seq[V], total int64, opts ...meter.BarOption) iter.Seq2[V, meter.Handle] {
	return func(yield func(V, meter.Handle) bool) {
		h := p.AddBar(total, opts...)
		defer h.Close()
		for v := range seq {
			h.Inc()
			c := h.Clone()
			ok := yield(v, c)
			c.Close()
			if !ok {
				return
			}
		}
	}
}
