// Package app holds the regmap command tree.
package app

import (
	"flag"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

// Run executes the regmap command
func Run() error {
	flagSet := flag.NewFlagSet("regmap", flag.ExitOnError)
	klog.InitFlags(flagSet)

	cmd := NewRegmapCommand(os.Stdout)
	pflag.CommandLine.AddGoFlagSet(flagSet)
	cmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	return cmd.Execute()
}

// NewRegmapCommand returns the root command writing results to out.
func NewRegmapCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regmap",
		Short: "regmap converts Modbus register tables into Webdyn definition files",
		Long: `regmap reads the register definition section of an inverter datasheet
(PDF, HTML or a plain text dump) and writes the semicolon separated
definition file a Webdyn data logger imports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewCmdConvert(out))
	cmd.AddCommand(NewCmdTables(out))
	cmd.AddCommand(NewCmdHeader(out))
	return cmd
}
