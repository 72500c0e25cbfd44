package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/pdf-splitter/internal/codec"
	"github.com/thywilljoshua/pdf-splitter/internal/config"
	"github.com/thywilljoshua/pdf-splitter/internal/logx"
	"github.com/thywilljoshua/pdf-splitter/internal/pdfops"
	"github.com/thywilljoshua/pdf-splitter/internal/worker"
)

func createTestPDF(t *testing.T, filename string, numPages int) {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= numPages; i++ {
		pdf.AddPage()
		pdf.Text(20, 30, fmt.Sprintf("Page %d of %d", i, numPages))
	}
	if err := pdf.OutputFileAndClose(filename); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}
}

func newTestMenu(input string) (*menu, *bytes.Buffer) {
	var out bytes.Buffer
	a := &app{
		cfg:   config.Effective{PagesPerFile: 10, Engine: codec.EnginePDFCPU, LogLevel: logrus.InfoLevel},
		log:   logx.Discard(logrus.InfoLevel),
		codec: codec.NewPDFCPU(false),
	}
	return &menu{
		in:     bufio.NewScanner(strings.NewReader(input)),
		out:    &out,
		app:    a,
		runner: worker.NewRunner(logrus.InfoLevel, 64),
	}, &out
}

func TestMenu_ExitAndInvalid(t *testing.T) {
	m, out := newTestMenu("9\n\n3\n")
	if err := m.loop(); err != nil {
		t.Fatalf("loop: %v", err)
	}
	s := out.String()
	if strings.Count(s, "Invalid choice. Please try again.") != 2 {
		t.Fatalf("expected two invalid-choice lines:\n%s", s)
	}
	if !strings.Contains(s, "Goodbye!") {
		t.Fatalf("missing goodbye:\n%s", s)
	}
}

func TestMenu_EndOfInput(t *testing.T) {
	m, _ := newTestMenu("1\n")
	if err := m.loop(); err != nil {
		t.Fatalf("loop should end quietly at EOF: %v", err)
	}
}

func TestMenu_MissingPaths(t *testing.T) {
	m, out := newTestMenu("1\n\n2\n\n3\n")
	if err := m.loop(); err != nil {
		t.Fatalf("loop: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "File path not specified") || !strings.Contains(s, "Folder path not specified") {
		t.Fatalf("missing not-specified messages:\n%s", s)
	}
}

func TestMenu_SplitThenMerge(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "book.pdf")
	createTestPDF(t, src, 5)
	dir := filepath.Join(root, "book")

	input := strings.Join([]string{
		"1", src, "2",
		"2", dir, "",
		"3",
	}, "\n") + "\n"
	m, out := newTestMenu(input)
	if err := m.loop(); err != nil {
		t.Fatalf("loop: %v", err)
	}
	s := out.String()

	for _, name := range []string{"1-2.pdf", "3-4.pdf", "5-5.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing split output %s: %v\n%s", name, err, s)
		}
	}
	for _, want := range []string{
		"Source file contains 5 pages",
		"Created file: 3-4.pdf (pages 3-4)",
		"Success: PDF successfully split into 3 files!",
		"1. 1-2.pdf (pages 1-2)",
		"Total number of pages: 5",
		"Success: PDF files successfully merged into " + filepath.Join(root, "book_merged.pdf"),
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
	if m.runner.Busy() {
		t.Fatal("runner should be idle after the menu returns")
	}
}

func TestMenu_SplitErrorKeepsLooping(t *testing.T) {
	root := t.TempDir()
	m, out := newTestMenu("1\n" + filepath.Join(root, "nope.pdf") + "\nabc\n3\n")
	if err := m.loop(); err != nil {
		t.Fatalf("loop: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Error splitting PDF: not_found") {
		t.Fatalf("missing error line:\n%s", s)
	}
	if !strings.Contains(s, "Goodbye!") {
		t.Fatalf("loop should continue after an error:\n%s", s)
	}
}

func TestParsePages(t *testing.T) {
	cases := map[string]int{"": 10, "abc": 10, "-3": 10, "4": 4, "12x": 10, "0": 0}
	for raw, want := range cases {
		if got := parsePages(raw, 10); got != want {
			t.Errorf("parsePages(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestCommands_SplitAndPlan(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "report.pdf")
	createTestPDF(t, src, 25)
	chdirForTest(t, root)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"split", src, "-n", "10"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("split: %v\n%s", err, errOut.String())
	}
	var sum pdfops.SplitSummary
	if err := json.Unmarshal(out.Bytes(), &sum); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out.String())
	}
	if sum.FileCount() != 3 || sum.TotalPages != 25 {
		t.Fatalf("summary = %+v", sum)
	}

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"merge", filepath.Join(root, "report"), "--plan"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := "1. 1-10.pdf (pages 1-10)\n2. 11-20.pdf (pages 11-20)\n3. 21-25.pdf (pages 21-25)\n"
	if out.String() != want {
		t.Fatalf("plan output = %q, want %q", out.String(), want)
	}
	if _, err := os.Stat(filepath.Join(root, "report_merged.pdf")); !os.IsNotExist(err) {
		t.Fatal("--plan must not write the merged file")
	}
}

func TestCommands_ConfigErrors(t *testing.T) {
	root := t.TempDir()
	chdirForTest(t, root)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"split", "x.pdf", "--engine", "pypdf"})
	err := cmd.Execute()
	if config.Code(err) != config.ErrCodeInvalid {
		t.Fatalf("err = %v, want %s", err, config.ErrCodeInvalid)
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
