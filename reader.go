package meter

import "io"

// Reader wraps an io.Reader and advances a bar by the number of bytes
// read on every Read call, so a single io.Copy drives the bar with no
// extra bookkeeping at the call site.
type Reader struct {
	r io.Reader
	h Handle
}

// ProxyReader wraps r so that every byte read through it advances h.
func (h Handle) ProxyReader(r io.Reader) *Reader {
	return &Reader{r: r, h: h}
}

func (pr *Reader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.h.Update(int64(n))
	}
	return n, err
}

// Close closes the underlying reader if it implements io.Closer, and
// closes the bar.
func (pr *Reader) Close() error {
	var err error
	if c, ok := pr.r.(io.Closer); ok {
		err = c.Close()
	}
	pr.h.Close()
	return err
}
