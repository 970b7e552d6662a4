package app

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/regmap/internal/config"
	"github.com/tsawler/regmap/webdyn"
)

// NewCmdHeader prints the default header as a file convert --header reads.
func NewCmdHeader(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "header",
		Short: "Print the default header fields as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.MarshalHeader(webdyn.DefaultHeader())
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}
