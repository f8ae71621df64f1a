package app

import (
	"bufio"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/nnnkkk7/go-relaxcsv"
	"github.com/nnnkkk7/go-relaxcsv/cmd/relaxcsv/app/options"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeOutput renders header and records in the selected format.
// In the JSON formats absent fields are null.
func writeOutput(out io.Writer, o *options.Options, cfg relaxcsv.Config, header relaxcsv.Record, records []relaxcsv.Record) error {
	switch o.Format {
	case options.FormatJSON:
		return writeJSON(out, header, records)
	case options.FormatJSONL:
		return writeJSONLines(out, header, records)
	case options.FormatCSV:
		return writeCSV(out, cfg, header, records)
	case options.FormatTable:
		return relaxcsv.RenderTable(out, header, records, o.NullText)
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}
}

// withHeader prepends header to records when it is set.
func withHeader(header relaxcsv.Record, records []relaxcsv.Record) []relaxcsv.Record {
	if header == nil {
		return records
	}
	return append([]relaxcsv.Record{header}, records...)
}

func writeJSON(out io.Writer, header relaxcsv.Record, records []relaxcsv.Record) error {
	rows := withHeader(header, records)
	values := make([][]*string, len(rows))
	for i, r := range rows {
		values[i] = r.Values()
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

func writeJSONLines(out io.Writer, header relaxcsv.Record, records []relaxcsv.Record) error {
	bw := bufio.NewWriter(out)
	enc := json.NewEncoder(bw)
	for _, r := range withHeader(header, records) {
		if err := enc.Encode(r.Values()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSV(out io.Writer, cfg relaxcsv.Config, header relaxcsv.Record, records []relaxcsv.Record) error {
	w := relaxcsv.NewWriter(out, cfg)
	return w.WriteAll(withHeader(header, records))
}
