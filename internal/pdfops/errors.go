package pdfops

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a split or merge failure.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindInvalidArgument   Kind = "invalid_argument"
	KindCodec             Kind = "codec_error"
	KindNoCandidates      Kind = "no_candidates"
	KindNoValidCandidates Kind = "no_valid_candidates"
	KindIO                Kind = "io_error"
)

// Error is the structured failure returned by Splitter and Merger.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s: %q not found", e.Kind, e.Path)
	case KindUnsupportedFormat:
		return fmt.Sprintf("%s: %q is not a PDF file", e.Kind, e.Path)
	case KindNoCandidates:
		return fmt.Sprintf("%s: no PDF files found in %q", e.Kind, e.Path)
	case KindNoValidCandidates:
		return fmt.Sprintf("%s: no readable PDF files with pages in %q", e.Kind, e.Path)
	}
	if e.Err != nil {
		if e.Path != "" {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// codecOrIO maps a codec failure to io_error when the root cause is a filesystem error.
func codecOrIO(path string, err error) *Error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return newError(KindIO, path, err)
	}
	return newError(KindCodec, path, err)
}
