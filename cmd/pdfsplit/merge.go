package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-splitter/internal/pdfops"
)

func mergeCmd(g *globalFlags) *cobra.Command {
	var out string
	var plan bool

	cmd := &cobra.Command{
		Use:   "merge <dir>",
		Short: "Merge the PDFs of a directory, ordered by their <start>- filename prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, g, 0)
			if err != nil {
				return err
			}
			m := pdfops.NewMerger(a.codec, a.log)
			if plan {
				candidates, err := m.Plan(args[0])
				if err != nil {
					return err
				}
				printPlan(cmd.OutOrStdout(), candidates)
				return nil
			}
			res, err := m.Merge(args[0], out)
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <parent>/<dir>_merged.pdf)")
	cmd.Flags().BoolVar(&plan, "plan", false, "only list the files in merge order")
	return cmd
}

func printPlan(w io.Writer, candidates []pdfops.Candidate) {
	for i, c := range candidates {
		if c.Ordered() {
			fmt.Fprintf(w, "%d. %s (pages %d-%d)\n", i+1, c.Name, c.Range.Start, c.Range.End)
		} else {
			fmt.Fprintf(w, "%d. %s (order not determined)\n", i+1, c.Name)
		}
	}
}
