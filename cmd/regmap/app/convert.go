package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/tsawler/regmap"
	"github.com/tsawler/regmap/extract"
	"github.com/tsawler/regmap/internal/config"
	"github.com/tsawler/regmap/webdyn"
)

var convertExample = `
# Write webdyn_def_SUN2000-10K-LC0.csv into the current directory
regmap convert SUN2000.pdf

# Pick the model and print the file instead
regmap convert --model SUN2000-5KTL --stdout registers.txt

# Take the header from a file and scan pages 12 to 40 only
regmap convert --header header.yaml --pages 12-40 -o out.csv SUN2000.pdf`

// ConvertOptions holds the flags of the convert command.
type ConvertOptions struct {
	HeaderFile  string
	Fields      map[string]string
	Pages       string
	StartMarker string
	EndMarker   string
	OCR         bool
	Output      string
	Dir         string
	Stdout      bool
}

// NewConvertOptions returns the flag defaults.
func NewConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Fields:      map[string]string{},
		StartMarker: extract.DefaultStartMarker,
		EndMarker:   extract.DefaultEndMarker,
		Dir:         ".",
	}
}

// headerFlags binds one flag per standard header key.
var headerFlags = []struct {
	name, key, usage string
}{
	{"protocol", webdyn.KeyProtocol, "Protocol written in the header"},
	{"category", webdyn.KeyCategory, "Device category written in the header"},
	{"manufacturer", webdyn.KeyManufacturer, "Manufacturer written in the header"},
	{"model", webdyn.KeyModel, "Device model, also used in the output file name"},
	{"write-code", webdyn.KeyWriteCode, "Write function code written in the header"},
}

// NewCmdConvert converts one input file.
func NewCmdConvert(out io.Writer) *cobra.Command {
	opts := NewConvertOptions()
	fields := make(map[string]*string, len(headerFlags))

	cmd := &cobra.Command{
		Use:     "convert INPUT",
		Short:   "Convert a register table into a Webdyn definition file",
		Example: convertExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range headerFlags {
				if cmd.Flags().Changed(f.name) {
					opts.Fields[f.key] = *fields[f.key]
				}
			}
			return opts.Run(args[0], out)
		},
	}

	defaults := webdyn.DefaultHeader()
	for _, f := range headerFlags {
		def, _ := defaults.Get(f.key)
		fields[f.key] = cmd.Flags().String(f.name, def, f.usage)
	}
	cmd.Flags().StringVar(&opts.HeaderFile, "header", "", "YAML or JSON file with the header fields")
	cmd.Flags().StringVar(&opts.Pages, "pages", "", "PDF pages to scan, e.g. 12-40 or 3,5,7")
	cmd.Flags().StringVar(&opts.StartMarker, "start-marker", opts.StartMarker, "Heading that opens the register section")
	cmd.Flags().StringVar(&opts.EndMarker, "end-marker", opts.EndMarker, "Heading that closes the register section")
	cmd.Flags().BoolVar(&opts.OCR, "ocr", false, "Recognize page images of scanned PDFs (needs the ocr build tag)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", opts.Dir, "Directory for the output file when --output is not set")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Print the definition file instead of writing it")
	cmd.MarkFlagsMutuallyExclusive("output", "stdout")
	return cmd
}

// Header builds the header line: defaults, then the header file, then
// flags.
func (o *ConvertOptions) Header() (webdyn.Header, error) {
	h := webdyn.DefaultHeader()
	if o.HeaderFile != "" {
		var err error
		if h, err = config.LoadHeader(o.HeaderFile); err != nil {
			return h, err
		}
	}
	for _, f := range headerFlags {
		if v, ok := o.Fields[f.key]; ok {
			h = h.Set(f.key, v)
		}
	}
	return h, nil
}

// Run converts input and reports where the result went.
func (o *ConvertOptions) Run(input string, out io.Writer) error {
	h, err := o.Header()
	if err != nil {
		return err
	}
	pages, err := parsePages(o.Pages)
	if err != nil {
		return err
	}

	ext := regmap.Open(input).Header(h).Pages(pages...).Markers(o.StartMarker, o.EndMarker)
	if o.OCR {
		ext = ext.OCR()
	}

	var (
		warnings []regmap.Warning
		path     string
	)
	switch {
	case o.Stdout:
		var csv string
		csv, warnings, err = ext.CSV()
		if err == nil {
			fmt.Fprintln(out, csv)
		}
	case o.Output != "":
		path = o.Output
		warnings, err = ext.SaveAs(path)
	default:
		path, warnings, err = ext.WriteFile(o.Dir)
	}

	for _, w := range warnings {
		klog.Warning(w.String())
	}
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if path != "" {
		fmt.Fprintf(out, "%s written\n", path)
	}
	return nil
}
