package pdfops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bradhe/stopwatch"
	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/pdf-splitter/internal/codec"
)

type Merger struct {
	Codec codec.Codec
	Log   logrus.FieldLogger
}

func NewMerger(c codec.Codec, log logrus.FieldLogger) *Merger {
	if log == nil {
		log = discardLogger()
	}
	return &Merger{Codec: c, Log: log}
}

// Plan lists the .pdf entries of inputDir in merge order.
//
// Entries are stably sorted by OrderKey. Names without a "<start>-<end>"
// prefix all get key 0, so they come first in directory listing order, as do
// ties on the same key. That ordering is not meaningful and is kept as is.
func (m *Merger) Plan(inputDir string) ([]Candidate, error) {
	fi, err := os.Stat(inputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindNotFound, inputDir, err)
		}
		return nil, newError(KindIO, inputDir, err)
	}
	if !fi.IsDir() {
		return nil, newError(KindNotFound, inputDir, fmt.Errorf("%s is not a directory", inputDir))
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, newError(KindIO, inputDir, err)
	}

	var out []Candidate
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !IsPDF(name) {
			continue
		}
		c := Candidate{Name: name, Path: filepath.Join(inputDir, name), OrderKey: OrderKey(name)}
		if r, ok := ParseRangeName(name); ok {
			c.Range = r
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, newError(KindNoCandidates, inputDir, nil)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderKey < out[j].OrderKey })
	return out, nil
}

// Merge concatenates the readable, non-empty PDFs of inputDir in Plan order.
// An empty outputFile means DefaultMergeOutput(inputDir).
//
// Candidates that fail to parse or have no pages are logged and skipped.
func (m *Merger) Merge(inputDir, outputFile string) (MergeSummary, error) {
	watch := stopwatch.Start()
	log := m.Log.WithField("dir", inputDir)

	candidates, err := m.Plan(inputDir)
	if err != nil {
		return MergeSummary{}, err
	}

	log.Info("Found PDF files (in merge order):")
	for i, c := range candidates {
		if c.Ordered() {
			log.Infof("  %d. %s (pages %d-%d)", i+1, c.Name, c.Range.Start, c.Range.End)
		} else {
			log.Infof("  %d. %s (order not determined)", i+1, c.Name)
		}
	}

	if outputFile == "" {
		outputFile = DefaultMergeOutput(inputDir)
	}
	sum := MergeSummary{InputDir: inputDir, Output: outputFile, Merged: []Candidate{}}

	log.Infof("Merging %d files:", len(candidates))
	for _, c := range candidates {
		n, err := m.Codec.PageCount(c.Path)
		if err != nil {
			log.WithField("file", c.Name).Warnf("    Error reading %s: %v, skipping", c.Name, err)
			sum.Skipped = append(sum.Skipped, Skipped{Candidate: c, Reason: err.Error()})
			continue
		}
		if n == 0 {
			log.WithField("file", c.Name).Warnf("    Warning: %s contains no pages, skipping", c.Name)
			sum.Skipped = append(sum.Skipped, Skipped{Candidate: c, Reason: "no pages"})
			continue
		}
		c.Pages = n
		sum.Merged = append(sum.Merged, c)
	}
	if len(sum.Merged) == 0 {
		return sum, newError(KindNoValidCandidates, inputDir, nil)
	}

	total, err := m.concatenate(sum.Merged, outputFile, log)
	if err != nil {
		return sum, err
	}
	sum.TotalPages = total

	watch.Stop()
	sum.Elapsed = time.Duration(watch.Milliseconds()) * time.Millisecond
	log.WithField("elapsed_ms", watch.Milliseconds()).Info("Merging completed!")
	log.WithField("output", outputFile).Infof("Created file: %s", outputFile)
	log.WithField("pages", total).Infof("Total number of pages: %d", total)
	return sum, nil
}

// concatenate owns the accumulator for its whole lifetime so it is closed on
// every return path.
func (m *Merger) concatenate(valid []Candidate, outputFile string, log logrus.FieldLogger) (total int, err error) {
	acc := m.Codec.NewAccumulator()
	defer func() {
		if cerr := acc.Close(); cerr != nil && err == nil {
			err = newError(KindIO, outputFile, cerr)
		}
	}()

	for _, c := range valid {
		log.WithField("file", c.Name).Infof("  Adding: %s", c.Name)
		if err := acc.Append(c.Path); err != nil {
			return 0, codecOrIO(c.Path, err)
		}
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return 0, newError(KindIO, outputFile, err)
	}
	if err := acc.Save(f); err != nil {
		f.Close()
		return 0, codecOrIO(outputFile, err)
	}
	if err := f.Close(); err != nil {
		return 0, newError(KindIO, outputFile, err)
	}
	return acc.NumPages(), nil
}
