// Package codec wraps the third-party PDF libraries behind the small surface
// the split and merge operations need: open a document, copy a page range
// into a new document, and concatenate whole documents.
package codec

import (
	"fmt"
	"io"
	"strings"
)

const (
	EnginePDFCPU = "pdfcpu"
	EngineGofpdi = "gofpdi"
)

// Document is a source PDF opened for reading.
type Document interface {
	NumPages() int
	// WritePages writes pages start..end (1-based, inclusive) as a new document to w.
	WritePages(w io.Writer, start, end int) error
	Close() error
}

// Accumulator concatenates whole documents in the order they are appended.
// Close must be called on every path once the accumulator is created.
type Accumulator interface {
	Append(path string) error
	NumPages() int
	Save(w io.Writer) error
	Close() error
}

type Codec interface {
	Name() string
	Open(path string) (Document, error)
	// PageCount parses path and returns its page count.
	PageCount(path string) (int, error)
	NewAccumulator() Accumulator
}

// New returns the engine registered under name. strict only affects pdfcpu.
func New(name string, strict bool) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EnginePDFCPU:
		return NewPDFCPU(strict), nil
	case EngineGofpdi:
		return NewGofpdi(), nil
	default:
		return nil, fmt.Errorf("codec: unknown engine %q (want %s or %s)", name, EnginePDFCPU, EngineGofpdi)
	}
}

func checkRange(n, start, end int) error {
	if start < 1 || end < start || end > n {
		return fmt.Errorf("codec: invalid page range [%d, %d] for %d pages", start, end, n)
	}
	return nil
}
