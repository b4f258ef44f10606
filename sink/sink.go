// Package sink provides the abstract output destination for generated
// PDF bytes: a file on disk, an in-memory buffer, or an arbitrary
// io.Writer stream.
package sink

import (
	"bytes"
	"io"
	"os"
)

// Sink is implemented by each output variant.
type Sink interface {
	// Write appends chunk to the destination.
	Write(chunk []byte) error

	// End finalizes the destination. The buffer variant returns the
	// accumulated bytes; the file and stream variants return nil.
	End() ([]byte, error)

	// Type returns a discriminator string, used only for progress
	// reporting/logging.
	Type() string
}

// FileSink writes to a path on disk, deleting the partial file if a
// write fails before End is reached (§7 OutputError recovery policy).
type FileSink struct {
	path string
	f    *os.File
	err  error
}

// NewFileSink opens path for writing, truncating any existing file.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{path: path, f: f}, nil
}

func (s *FileSink) Write(chunk []byte) error {
	if s.err != nil {
		return s.err
	}
	_, err := s.f.Write(chunk)
	if err != nil {
		s.err = err
		s.cleanup()
	}
	return err
}

func (s *FileSink) End() ([]byte, error) {
	closeErr := s.f.Close()
	if s.err != nil {
		s.cleanup()
		return nil, s.err
	}
	if closeErr != nil {
		s.cleanup()
		return nil, closeErr
	}
	return nil, nil
}

func (s *FileSink) cleanup() {
	_ = os.Remove(s.path)
}

func (s *FileSink) Type() string { return "file" }

// BufferSink accumulates bytes in memory.
type BufferSink struct {
	buf bytes.Buffer
}

// NewBufferSink constructs an empty in-memory sink.
func NewBufferSink() *BufferSink { return &BufferSink{} }

func (s *BufferSink) Write(chunk []byte) error {
	_, err := s.buf.Write(chunk)
	return err
}

func (s *BufferSink) End() ([]byte, error) {
	return s.buf.Bytes(), nil
}

func (s *BufferSink) Type() string { return "buffer" }

// StreamSink wraps an arbitrary caller-supplied io.Writer.
type StreamSink struct {
	w io.Writer
}

// NewStreamSink wraps w as a Sink.
func NewStreamSink(w io.Writer) *StreamSink { return &StreamSink{w: w} }

func (s *StreamSink) Write(chunk []byte) error {
	_, err := s.w.Write(chunk)
	return err
}

func (s *StreamSink) End() ([]byte, error) { return nil, nil }

func (s *StreamSink) Type() string { return "stream" }
