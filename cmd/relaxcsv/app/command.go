// Package app implements the relaxcsv command.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/nnnkkk7/go-relaxcsv"
	"github.com/nnnkkk7/go-relaxcsv/cmd/relaxcsv/app/options"
)

// NewCommand returns the relaxcsv root command.
func NewCommand() *cobra.Command {
	o := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "relaxcsv [file]",
		Short: "Split delimiter-separated lines with relaxed quoting",
		Long: `relaxcsv reads delimiter-separated lines from a file or standard input
and prints their fields. Quoting is evaluated within each line; a quote
preceded by a backslash is ignored when looking for separators.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := o.Validate(); len(errs) != 0 {
				return errors.Join(errs...)
			}
			defer klog.Flush()

			in := cmd.InOrStdin()
			name := "<stdin>"
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in, name = f, args[0]
			}

			return Run(o, name, in, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	o.AddFlags(cmd.Flags())
	return cmd
}

// Run parses every line of in and writes the records to out in the format o selects.
func Run(o *options.Options, name string, in io.Reader, out io.Writer) error {
	cfg, err := o.ParserConfig()
	if err != nil {
		klog.ErrorS(err, "Invalid parser configuration")
		return err
	}

	p, err := relaxcsv.NewParser(cfg)
	if err != nil {
		return err
	}
	klog.V(2).InfoS("Parsing input", "input", name, "engine", p.Engine(),
		"vector", relaxcsv.AccelerationAvailable(), "separator", cfg.Separator, "quote", string(cfg.Quote))

	r := relaxcsv.NewReader(in, p)
	r.HasHeader = o.Header

	header, err := r.Header()
	if err != nil && !errors.Is(err, io.EOF) {
		klog.ErrorS(err, "Failed to read header", "input", name)
		return err
	}

	records, err := r.ReadAll()
	if err != nil {
		klog.ErrorS(err, "Failed to read input", "input", name, "line", r.Line()+1)
		return err
	}
	klog.V(2).InfoS("Parsed input", "input", name, "lines", r.Line(), "records", len(records))

	return writeOutput(out, o, cfg, header, records)
}
