package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "pdfsplit",
		Short: "Split a PDF into fixed-size page chunks, or merge the chunks back",
		Long: `pdfsplit writes <dir>/<name>/<start>-<end>.pdf chunks of a PDF and merges
a directory of PDFs back into one file, ordered by the leading "<start>-" of
each filename. Run without a command for the interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, g)
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "path to a pdfsplit.json (default: ./pdfsplit.json when present)")
	root.PersistentFlags().StringVar(&g.engine, "engine", "pdfcpu", "PDF engine: pdfcpu|gofpdi")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level: debug|info|warn|error")

	root.AddCommand(splitCmd(g))
	root.AddCommand(mergeCmd(g))
	root.AddCommand(menuCmd(g))
	return root
}
