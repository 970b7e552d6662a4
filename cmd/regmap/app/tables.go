package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/regmap/extract"
	"github.com/tsawler/regmap/tables"
)

// NewCmdTables prints the tables found on PDF pages, which shows how a
// datasheet's rows are split into cells.
func NewCmdTables(out io.Writer) *cobra.Command {
	var (
		pages     string
		detectors bool
	)

	cmd := &cobra.Command{
		Use:   "tables PDF",
		Short: "Print the table cells detected in a PDF",
		Args: func(cmd *cobra.Command, args []string) error {
			if detectors {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if detectors {
				fmt.Fprintln(out, strings.Join(tables.ListDetectors(), "\n"))
				return nil
			}
			selected, err := parsePages(pages)
			if err != nil {
				return err
			}
			found, err := extract.DocumentTables(args[0], extract.WithPages(selected...))
			if err != nil {
				return err
			}
			for _, t := range found {
				fmt.Fprint(out, t.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pages, "pages", "p", "", "Pages to scan, e.g. 12-14")
	cmd.Flags().BoolVar(&detectors, "list-detectors", false, "List the registered table detectors")
	return cmd
}
