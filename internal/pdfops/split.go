// Package pdfops implements the split and merge operations on top of a
// codec.Codec.
package pdfops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bradhe/stopwatch"
	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/pdf-splitter/internal/codec"
)

// DefaultPagesPerFile is used by front ends when the user gives no usable page count.
const DefaultPagesPerFile = 10

type Splitter struct {
	Codec codec.Codec
	Log   logrus.FieldLogger
}

func NewSplitter(c codec.Codec, log logrus.FieldLogger) *Splitter {
	if log == nil {
		log = discardLogger()
	}
	return &Splitter{Codec: c, Log: log}
}

// Split writes inputFile's pages into "<dir>/<stem>/<start>-<end>.pdf" files of
// pagesPerFile pages each; the last file may be shorter.
//
// The output directory is reused if present. Files with colliding names are
// overwritten, anything else in it is left alone. A failure midway leaves the
// files already written in place.
func (s *Splitter) Split(inputFile string, pagesPerFile int) (SplitSummary, error) {
	watch := stopwatch.Start()
	log := s.Log.WithField("file", inputFile)

	if err := checkSource(inputFile); err != nil {
		return SplitSummary{}, err
	}
	if pagesPerFile < 1 {
		return SplitSummary{}, newError(KindInvalidArgument, inputFile,
			fmt.Errorf("pages per file must be at least 1, got %d", pagesPerFile))
	}

	doc, err := s.Codec.Open(inputFile)
	if err != nil {
		return SplitSummary{}, codecOrIO(inputFile, err)
	}
	defer doc.Close()

	total := doc.NumPages()
	outDir := SplitDir(inputFile)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return SplitSummary{}, newError(KindIO, outDir, err)
	}

	log.WithField("pages", total).Infof("Source file contains %d pages", total)
	log.WithField("output", outDir).Infof("Creating files with %d pages each in folder: %s", pagesPerFile, outDir)

	sum := SplitSummary{Source: inputFile, OutputDir: outDir, TotalPages: total, Files: []OutputFile{}}
	for _, r := range Ranges(total, pagesPerFile) {
		path := filepath.Join(outDir, RangeFileName(r))
		if err := writeRange(doc, path, r); err != nil {
			return sum, err
		}
		sum.Files = append(sum.Files, OutputFile{Range: r, Path: path})
		log.WithField("range", fmt.Sprintf("%d-%d", r.Start, r.End)).
			Infof("Created file: %s (pages %d-%d)", filepath.Base(path), r.Start, r.End)
	}

	watch.Stop()
	sum.Elapsed = time.Duration(watch.Milliseconds()) * time.Millisecond
	log.WithField("elapsed_ms", watch.Milliseconds()).
		Infof("Splitting completed! Created %d files in folder: %s", sum.FileCount(), outDir)
	return sum, nil
}

func writeRange(doc codec.Document, path string, r PageRange) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return newError(KindIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = newError(KindIO, path, cerr)
		}
	}()
	if err := doc.WritePages(f, r.Start, r.End); err != nil {
		return codecOrIO(path, err)
	}
	return nil
}

// checkSource validates that path exists and looks like a PDF file.
func checkSource(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newError(KindNotFound, path, err)
		}
		return newError(KindIO, path, err)
	}
	if fi.IsDir() || !IsPDF(path) {
		return newError(KindUnsupportedFormat, path, nil)
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
