package relaxcsv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// Writer Tests
// =============================================================================

func TestWrite(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		useCRLF bool
		records []Record
		want    string
	}{
		{
			name:    "simple",
			cfg:     DefaultConfig(),
			records: []Record{texts("a", "b", "c"), texts("1", "2", "3")},
			want:    "a,b,c\n1,2,3\n",
		},
		{
			name:    "absent and empty",
			cfg:     DefaultConfig(),
			records: []Record{{Text("a"), Null(), Text(""), Null()}},
			want:    "a,,\"\",\n",
		},
		{
			name:    "quoting",
			cfg:     DefaultConfig(),
			records: []Record{texts("a,b", `say "hi"`, " padded ", "plain")},
			want:    `"a,b","say ""hi"""," padded ",plain` + "\n",
		},
		{
			name:    "multi char separator",
			cfg:     Config{Separator: "::", Quote: '\''},
			records: []Record{texts("a:b", "c::d", "it's")},
			want:    "a:b::'c::d'::'it''s'\n",
		},
		{
			name:    "CRLF",
			cfg:     DefaultConfig(),
			useCRLF: true,
			records: []Record{texts("a", "b"), texts("c")},
			want:    "a,b\r\nc\r\n",
		},
		{
			name:    "empty record",
			cfg:     DefaultConfig(),
			records: []Record{{}},
			want:    "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, tt.cfg)
			w.UseCRLF = tt.useCRLF
			if err := w.WriteAll(tt.records); err != nil {
				t.Fatalf("WriteAll error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteAll output = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestWrite_RoundTrip writes records and reads them back with KeepAbsentAsNil.
func TestWrite_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		sep     string
		records []Record
	}{
		{
			name: "mixed values",
			sep:  ",",
			records: []Record{
				{Text("a"), Null(), Text(""), Text(" x "), Text("a,b"), Text(`q"q`)},
				{Null()},
				{Text("")},
				texts("tab\there", "日本語", `""`),
				texts(`a\b`, `ends\`, "\u00a0"),
			},
		},
		{
			name: "value ending with start of separator",
			sep:  "::",
			records: []Record{
				texts("a:", ":b", "c"),
				texts("x::y", "z:"),
			},
		},
	}

	for _, mode := range engineModes {
		for _, tt := range tests {
			t.Run(mode.name+"/"+tt.name, func(t *testing.T) {
				cfg := DefaultConfig()
				cfg.Separator = tt.sep
				cfg.KeepAbsentAsNil = true
				cfg.Accelerate = mode.accelerate

				var buf bytes.Buffer
				if err := NewWriter(&buf, cfg).WriteAll(tt.records); err != nil {
					t.Fatalf("WriteAll error: %v", err)
				}

				got, err := NewReader(strings.NewReader(buf.String()), mustParser(t, cfg)).ReadAll()
				if err != nil {
					t.Fatalf("ReadAll error: %v", err)
				}
				if diff := cmp.Diff(tt.records, got); diff != "" {
					t.Errorf("round trip of %q mismatch (-want +got):\n%s", buf.String(), diff)
				}
			})
		}
	}
}

// TestWrite_UnwritableField checks that values which cannot read back
// unchanged are rejected before anything is written.
func TestWrite_UnwritableField(t *testing.T) {
	tests := []struct {
		name   string
		sep    string
		record Record
	}{
		{name: "quoted value ending in backslash", sep: ",", record: Record{Text(`a,\`), Text("b")}},
		{name: "line feed", sep: ",", record: Record{Text("x\ny"), Text("z")}},
		{name: "carriage return", sep: ",", record: Record{Text("x\r")}},
		{name: "backslash before quote", sep: ",", record: Record{Text(`say \"hi\"`)}},
		{name: "quoted value after backslash separator", sep: `\`, record: Record{Text("a"), Text("b ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Separator = tt.sep

			var buf bytes.Buffer
			w := NewWriter(&buf, cfg)
			if err := w.Write(tt.record); !errors.Is(err, ErrUnwritableField) {
				t.Fatalf("Write(%q) error = %v, want ErrUnwritableField", tt.record.Strings(), err)
			}

			if err := w.Write(texts("ok")); err != nil {
				t.Fatalf("Write after rejected record error: %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush error: %v", err)
			}
			if got := buf.String(); got != "ok\n" {
				t.Errorf("output = %q, want %q", got, "ok\n")
			}
		})
	}
}

// failingWriter fails every write.
type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

func TestWrite_Error(t *testing.T) {
	w := NewWriter(failingWriter{}, DefaultConfig())
	if err := w.Write(texts("a")); err != nil {
		t.Fatalf("buffered Write error = %v, want nil", err)
	}
	if err := w.Flush(); !errors.Is(err, errWriteFailed) {
		t.Errorf("Flush error = %v, want %v", err, errWriteFailed)
	}
	if err := w.Error(); !errors.Is(err, errWriteFailed) {
		t.Errorf("Error() = %v, want %v", err, errWriteFailed)
	}
	if err := w.Write(texts("b")); !errors.Is(err, errWriteFailed) {
		t.Errorf("Write after failure error = %v, want %v", err, errWriteFailed)
	}
}
