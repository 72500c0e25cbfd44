package pdfops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thywilljoshua/pdf-splitter/internal/codec"
)

// fakeCodec treats files of the form "fake-pdf pages=N" as N-page documents.
// Anything else fails to parse.
type fakeCodec struct {
	saveErr  error
	appended []string
	closed   int
}

var errCorrupt = errors.New("fake: not a pdf")

func (c *fakeCodec) Name() string { return "fake" }

func (c *fakeCodec) Open(path string) (codec.Document, error) {
	n, err := c.PageCount(path)
	if err != nil {
		return nil, err
	}
	return &fakeDocument{pages: n}, nil
}

func (c *fakeCodec) PageCount(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(string(b), "fake-pdf pages=%d", &n); err != nil {
		return 0, errCorrupt
	}
	return n, nil
}

func (c *fakeCodec) NewAccumulator() codec.Accumulator { return &fakeAccumulator{codec: c} }

type fakeDocument struct{ pages int }

func (d *fakeDocument) NumPages() int { return d.pages }

func (d *fakeDocument) WritePages(w io.Writer, start, end int) error {
	_, err := fmt.Fprintf(w, "fake-pdf pages=%d from=%d-%d", end-start+1, start, end)
	return err
}

func (d *fakeDocument) Close() error { return nil }

type fakeAccumulator struct {
	codec *fakeCodec
	pages int
}

func (a *fakeAccumulator) Append(path string) error {
	n, err := a.codec.PageCount(path)
	if err != nil {
		return err
	}
	a.codec.appended = append(a.codec.appended, filepath.Base(path))
	a.pages += n
	return nil
}

func (a *fakeAccumulator) NumPages() int { return a.pages }

func (a *fakeAccumulator) Save(w io.Writer) error {
	if a.codec.saveErr != nil {
		return a.codec.saveErr
	}
	_, err := fmt.Fprintf(w, "fake-pdf pages=%d", a.pages)
	return err
}

func (a *fakeAccumulator) Close() error {
	a.codec.closed++
	return nil
}

func writeFake(t *testing.T, path string, pages int) {
	t.Helper()
	writeFile(t, path, fmt.Sprintf("fake-pdf pages=%d", pages))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.TrimSpace(string(b))
}
