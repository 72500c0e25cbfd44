package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-splitter/internal/config"
	"github.com/thywilljoshua/pdf-splitter/internal/pdfops"
)

func splitCmd(g *globalFlags) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "split <file.pdf>",
		Short: "Split a PDF into <start>-<end>.pdf files next to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, g, pages)
			if err != nil {
				return err
			}
			res, err := pdfops.NewSplitter(a.codec, a.log).Split(args[0], a.cfg.PagesPerFile)
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().IntVarP(&pages, "pages", "n", config.DefaultPagesPerFile, "number of pages in each output file")
	return cmd
}
