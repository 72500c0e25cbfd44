package pdfops

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// rangePrefix matches the "<start>-<end>" prefix written by Split.
var rangePrefix = regexp.MustCompile(`^(\d+)-(\d+)`)

// IsPDF reports whether name carries a .pdf extension, case-insensitively.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

// Ranges partitions total pages into contiguous chunks of at most size pages.
// It returns nil when total is zero.
func Ranges(total, size int) []PageRange {
	if total <= 0 || size <= 0 {
		return nil
	}
	out := make([]PageRange, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		end := min(start+size, total)
		out = append(out, PageRange{Start: start + 1, End: end})
	}
	return out
}

// RangeFileName is the output filename for r, e.g. "11-20.pdf".
func RangeFileName(r PageRange) string {
	return fmt.Sprintf("%d-%d.pdf", r.Start, r.End)
}

// SplitDir is the directory Split writes into: a sibling of the source named after its stem.
func SplitDir(source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(source), stem)
}

// DefaultMergeOutput is "<parent>/<dir>_merged.pdf" for an input directory.
func DefaultMergeOutput(inputDir string) string {
	dir := filepath.Clean(inputDir)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Join(filepath.Dir(dir), filepath.Base(dir)+"_merged.pdf")
}

// ParseRangeName extracts the leading "<start>-<end>" of a filename.
// ok is false when the name does not start with that pattern or a number overflows.
func ParseRangeName(name string) (r PageRange, ok bool) {
	m := rangePrefix.FindStringSubmatch(name)
	if len(m) != 3 {
		return PageRange{}, false
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return PageRange{}, false
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return PageRange{}, false
	}
	return PageRange{Start: start, End: end}, true
}

// OrderKey is the merge sort key of a filename: the start of its range prefix, or 0.
// Names without a prefix all share key 0 and keep their listing order.
func OrderKey(name string) int {
	m := rangePrefix.FindStringSubmatch(name)
	if len(m) != 3 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
