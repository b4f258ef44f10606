package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBufferSinkAccumulatesAndReturnsBytes(t *testing.T) {
	s := NewBufferSink()
	if err := s.Write([]byte("hello, ")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write([]byte("world")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := s.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if string(out) != "hello, world" {
		t.Fatalf("got %q, want %q", out, "hello, world")
	}
	if s.Type() != "buffer" {
		t.Fatalf("Type() = %q, want buffer", s.Type())
	}
}

func TestStreamSinkWritesToUnderlyingWriter(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(&buf)
	if err := s.Write([]byte("data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := s.End()
	if err != nil || out != nil {
		t.Fatalf("End: out=%v err=%v, want nil, nil", out, err)
	}
	if buf.String() != "data" {
		t.Fatalf("got %q, want %q", buf.String(), "data")
	}
	if s.Type() != "stream" {
		t.Fatalf("Type() = %q, want stream", s.Type())
	}
}

func TestFileSinkWritesAndClosesSuccessfully(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	s, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if err := s.Write([]byte("pdf bytes")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := s.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "pdf bytes" {
		t.Fatalf("got %q, want %q", got, "pdf bytes")
	}
	if s.Type() != "file" {
		t.Fatalf("Type() = %q, want file", s.Type())
	}
}

func TestFileSinkRemovesPartialFileOnWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.pdf")
	s, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	// Force a write error by closing the underlying file out from
	// under the sink, simulating a disk failure mid-write.
	_ = s.f.Close()

	if err := s.Write([]byte("won't make it")); err == nil {
		t.Fatal("expected Write to fail against a closed file")
	}

	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected partial file to be removed, stat error = %v", statErr)
	}
}
