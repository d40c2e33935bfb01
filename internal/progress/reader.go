// Package progress provides utilities for tracking transfer progress.
package progress

import (
	"io"

	"github.com/skyforge/swiget/core"
)

// Reader wraps an io.Reader to track bytes read and report progress.
type Reader struct {
	reader io.Reader
	fn     core.ProgressFunc
	total  int64
	read   int64
}

// NewReader creates a progress-tracking reader. total should be the
// expected size, or -1 when unknown. fn is called after each read with
// cumulative bytes and total; a nil fn disables reporting.
func NewReader(r io.Reader, total int64, fn core.ProgressFunc) *Reader {
	return &Reader{reader: r, fn: fn, total: total}
}

// Read implements io.Reader and reports progress after each read.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		if r.fn != nil {
			r.fn(r.read, r.total)
		}
	}
	return n, err
}

// Close closes the underlying reader if it implements io.Closer.
func (r *Reader) Close() error {
	if closer, ok := r.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
