// Package options holds the command-line options of relaxcsv.
package options

import (
	"flag"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/nnnkkk7/go-relaxcsv"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTable = "table"
)

// Options are the flags of the relaxcsv command.
type Options struct {
	ConfigFile string
	Separator  string
	Quote      string
	KeepNil    bool
	Accelerate bool
	Header     bool
	Format     string
	NullText   string

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// NewOptions returns options with default values.
func NewOptions() *Options {
	def := relaxcsv.DefaultConfig()
	return &Options{
		Separator: def.Separator,
		Quote:     string(def.Quote),
		Format:    FormatJSONL,
		NullText:  "NULL",
		changed:   func(string) bool { return false },
	}
}

// AddFlags registers the options and the klog flags on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "YAML file with separator, quote, keep_absent_as_nil and accelerate.")
	fs.StringVarP(&o.Separator, "separator", "s", o.Separator, "Field separator, may be several characters.")
	fs.StringVarP(&o.Quote, "quote", "q", o.Quote, "Quote character.")
	fs.BoolVar(&o.KeepNil, "keep-nil", o.KeepNil, "Report unquoted blank fields as null instead of empty strings.")
	fs.BoolVar(&o.Accelerate, "accelerate", o.Accelerate, "Use the bitmask scanner.")
	fs.BoolVar(&o.Header, "header", o.Header, "Treat the first line as a header and bound every row to its width.")
	fs.StringVarP(&o.Format, "format", "o", o.Format, "Output format: json, jsonl, csv or table.")
	fs.StringVar(&o.NullText, "null", o.NullText, "Text printed for null fields in table output.")

	local := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(local)
	fs.AddGoFlagSet(local)

	o.changed = fs.Changed
}

// Validate checks the option values that do not depend on the config file.
func (o *Options) Validate() []error {
	var errs []error

	switch o.Format {
	case FormatJSON, FormatJSONL, FormatCSV, FormatTable:
	default:
		errs = append(errs, fmt.Errorf("--format must be one of json, jsonl, csv, table, got %q", o.Format))
	}
	if o.Separator == "" {
		errs = append(errs, fmt.Errorf("--separator: %w", relaxcsv.ErrEmptySeparator))
	}
	if utf8.RuneCountInString(o.Quote) != 1 {
		errs = append(errs, fmt.Errorf("--quote: %w", relaxcsv.ErrInvalidQuote))
	}

	return errs
}

// ParserConfig builds the parser configuration: defaults, then the config
// file, then flags that were set explicitly.
func (o *Options) ParserConfig() (relaxcsv.Config, error) {
	cfg := relaxcsv.DefaultConfig()
	if o.ConfigFile != "" {
		loaded, err := relaxcsv.LoadConfig(o.ConfigFile)
		if err != nil {
			return relaxcsv.Config{}, err
		}
		cfg = loaded
	}

	if o.ConfigFile == "" || o.changed("separator") {
		cfg.Separator = o.Separator
	}
	if o.ConfigFile == "" || o.changed("quote") {
		r, _ := utf8.DecodeRuneInString(o.Quote)
		cfg.Quote = r
	}
	if o.ConfigFile == "" || o.changed("keep-nil") {
		cfg.KeepAbsentAsNil = o.KeepNil
	}
	if o.ConfigFile == "" || o.changed("accelerate") {
		cfg.Accelerate = o.Accelerate
	}

	if err := cfg.Validate(); err != nil {
		return relaxcsv.Config{}, err
	}
	return cfg, nil
}
