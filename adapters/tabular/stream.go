package tabular

import (
	"io"

	"lipidflow/domain/table"
)

// StreamReader adapts an already-open stream (an HTTP upload) to the
// TableReader port. Format detection uses the original filename.
type StreamReader struct {
	name     string
	filename string
	src      io.Reader
}

// NewStreamReader creates a reader over an open stream.
func NewStreamReader(name, filename string, src io.Reader) *StreamReader {
	return &StreamReader{name: name, filename: filename, src: src}
}

// Read parses the stream into a table.
func (r *StreamReader) Read() (*table.Table, error) {
	return ReadFrom(r.name, r.filename, r.src)
}
