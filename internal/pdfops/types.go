package pdfops

import "time"

// PageRange is an inclusive, 1-based block of pages from a source document.
type PageRange struct {
	Start int `json:"start_page"`
	End   int `json:"end_page"`
}

// Len returns the number of pages covered by r.
func (r PageRange) Len() int { return r.End - r.Start + 1 }

// OutputFile is one chunk written by a split run.
type OutputFile struct {
	Range PageRange `json:"range"`
	Path  string    `json:"path"`
}

type SplitSummary struct {
	Source     string        `json:"source"`
	OutputDir  string        `json:"output_dir"`
	TotalPages int           `json:"total_pages"`
	Files      []OutputFile  `json:"files"`
	Elapsed    time.Duration `json:"elapsed"`
}

// FileCount is the number of files created by the run.
func (s SplitSummary) FileCount() int { return len(s.Files) }

// Candidate is a .pdf entry of a merge directory, before validity checking.
type Candidate struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	OrderKey int    `json:"order_key"`
	// Range is the "<start>-<end>" prefix of Name; zero when the name does not carry one.
	Range PageRange `json:"range"`
	Pages int       `json:"pages,omitempty"`
}

// Ordered reports whether the candidate's position came from its filename.
func (c Candidate) Ordered() bool { return c.Range.Start != 0 || c.Range.End != 0 }

// Skipped records a candidate excluded from a merge and why.
type Skipped struct {
	Candidate Candidate `json:"candidate"`
	Reason    string    `json:"reason"`
}

type MergeSummary struct {
	InputDir   string        `json:"input_dir"`
	Output     string        `json:"output"`
	TotalPages int           `json:"total_pages"`
	Merged     []Candidate   `json:"merged"`
	Skipped    []Skipped     `json:"skipped,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}
