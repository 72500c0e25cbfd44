package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-splitter/internal/pdfops"
	"github.com/thywilljoshua/pdf-splitter/internal/worker"
)

const rule = "=================================================="

func menuCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu (the default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, g)
		},
	}
}

func runMenu(cmd *cobra.Command, g *globalFlags) error {
	a, err := loadApp(cmd, g, 0)
	if err != nil {
		return err
	}
	m := &menu{
		in:     bufio.NewScanner(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		app:    a,
		runner: worker.NewRunner(a.cfg.LogLevel, 64),
	}
	return m.loop()
}

// menu is the interactive front end. Operations run on the worker; the loop
// only renders the events it receives back.
type menu struct {
	in     *bufio.Scanner
	out    io.Writer
	app    *app
	runner *worker.Runner
}

func (m *menu) loop() error {
	for {
		fmt.Fprintf(m.out, "\n%s\nPDF Splitter Utility\n%s\n", rule, rule)
		fmt.Fprintf(m.out, "1. Split PDF file into files of %d pages each\n", m.app.cfg.PagesPerFile)
		fmt.Fprintln(m.out, "2. Merge PDF files from folder")
		fmt.Fprintln(m.out, "3. Exit")
		fmt.Fprintln(m.out, rule)

		choice, ok := m.prompt("Select action (1-3): ")
		if !ok {
			return m.in.Err()
		}
		switch choice {
		case "1":
			m.split()
		case "2":
			m.merge()
		case "3":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) split() {
	input, _ := m.prompt("Enter path to PDF file: ")
	if input == "" {
		fmt.Fprintln(m.out, "File path not specified")
		return
	}
	def := m.app.cfg.PagesPerFile
	raw, _ := m.prompt(fmt.Sprintf("Number of pages in each file (default %d): ", def))
	pages := parsePages(raw, def)

	var res pdfops.SplitSummary
	err := m.run("split", func(log logrus.FieldLogger) error {
		var err error
		res, err = pdfops.NewSplitter(m.app.codec, log).Split(input, pages)
		return err
	})
	if err != nil {
		fmt.Fprintf(m.out, "Error splitting PDF: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Success: PDF successfully split into %d files!\n", res.FileCount())
}

func (m *menu) merge() {
	input, _ := m.prompt("Enter path to folder with PDF files: ")
	if input == "" {
		fmt.Fprintln(m.out, "Folder path not specified")
		return
	}
	output, _ := m.prompt("Enter path to output file (optional): ")

	var res pdfops.MergeSummary
	err := m.run("merge", func(log logrus.FieldLogger) error {
		var err error
		res, err = pdfops.NewMerger(m.app.codec, log).Merge(input, output)
		return err
	})
	if err != nil {
		fmt.Fprintf(m.out, "Error merging PDF: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Success: PDF files successfully merged into %s!\n", res.Output)
}

// run submits job and renders its events until it settles.
func (m *menu) run(op string, job worker.Job) error {
	id, err := m.runner.Submit(op, job)
	if err != nil {
		return err
	}
	for ev := range m.runner.Events() {
		if ev.JobID != id {
			continue
		}
		switch ev.Kind {
		case worker.EventStarted:
			fmt.Fprintf(m.out, "Working on %s...\n", op)
		case worker.EventLog:
			fmt.Fprintln(m.out, formatLogLine(ev))
		case worker.EventDone:
			return ev.Err
		}
	}
	return nil
}

func formatLogLine(ev worker.Event) string {
	if ev.Level <= logrus.WarnLevel {
		return fmt.Sprintf("[%s] %s", strings.ToUpper(ev.Level.String()), ev.Message)
	}
	return ev.Message
}

// parsePages falls back to def unless raw is a plain run of digits.
func parsePages(raw string, def int) int {
	if raw == "" {
		return def
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return def
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
