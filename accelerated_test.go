package relaxcsv

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// scanLine Tests
// =============================================================================

// spansOf strips the quote marks from scanLine output.
func spansOf(fields []markedField) []rawField {
	if fields == nil {
		return nil
	}
	out := make([]rawField, len(fields))
	for i, f := range fields {
		out[i] = f.rawField
	}
	return out
}

func TestScanLine_MarksQuotedFields(t *testing.T) {
	got := scanLine(`a,"b",c\"d,`, ",", '"', NoBound, nil)
	want := []markedField{
		{rawField: rawField{0, 1}, hasQuote: false},
		{rawField: rawField{2, 5}, hasQuote: true},
		{rawField: rawField{6, 10}, hasQuote: true},
		{rawField: rawField{11, 11}, hasQuote: false},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(markedField{}, rawField{})); diff != "" {
		t.Errorf("scanLine mismatch (-want +got):\n%s", diff)
	}
}

// TestScanLine_MatchesTokenize compares spans on random lines built from
// structural bytes, long enough to cross several chunks.
func TestScanLine_MatchesTokenize(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pieces := []string{"a", "bc", " ", ",", ",", `"`, `\`, `\"`, `""`, "::", ":", "日"}
	seps := []string{",", "::", ":", `\`, "日", ", "}

	for iter := 0; iter < 2000; iter++ {
		var sb strings.Builder
		n := rng.Intn(120)
		for i := 0; i < n; i++ {
			sb.WriteString(pieces[rng.Intn(len(pieces))])
		}
		line := sb.String()
		sep := seps[rng.Intn(len(seps))]
		headerSize := rng.Intn(8) - 1

		want := tokenize(line, sep, `"`, headerSize, nil)
		got := spansOf(scanLine(line, sep, '"', headerSize, nil))
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(rawField{})); diff != "" {
			t.Fatalf("line=%q sep=%q headerSize=%d (-tokenize +scanLine):\n%s", line, sep, headerSize, diff)
		}
	}
}

func TestMaskScannable(t *testing.T) {
	tests := []struct {
		sep, quote string
		want       bool
	}{
		{",", `"`, true},
		{"::", `"`, true},
		{`\`, `"`, true},
		{`"`, `"`, false},
		{`,"`, `"`, false},
		{",", "«", false},
		{"«", `"`, true},
	}

	for _, tt := range tests {
		if got := maskScannable(tt.sep, tt.quote); got != tt.want {
			t.Errorf("maskScannable(%q, %q) = %v, want %v", tt.sep, tt.quote, got, tt.want)
		}
	}
}

// TestProcessChunk_CarriesState checks the quote and backslash state that
// crosses a chunk boundary.
func TestProcessChunk_CarriesState(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantQuoted uint64
		wantBS     uint64
	}{
		{name: "open quote", line: `"` + strings.Repeat("x", 63), wantQuoted: ^uint64(0), wantBS: 0},
		{name: "closed quote", line: `"x"` + strings.Repeat("x", 61), wantQuoted: 0, wantBS: 0},
		{name: "trailing backslash", line: strings.Repeat("x", 63) + `\`, wantQuoted: 0, wantBS: 1},
		{name: "escaped quote", line: `\"` + strings.Repeat("x", 62), wantQuoted: 0, wantBS: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.line)
			m := generateMasks(data, maskBytes{quote: '"', sepLead: ','})
			state := scanState{}
			processChunk(tt.line, ",", 0, m, &state, NoBound, nil)
			if state.quoted != tt.wantQuoted {
				t.Errorf("quoted = %x, want %x", state.quoted, tt.wantQuoted)
			}
			if state.prevBackslash != tt.wantBS {
				t.Errorf("prevBackslash = %d, want %d", state.prevBackslash, tt.wantBS)
			}
		})
	}
}

// TestAcceleratedEngine_Fallback checks that configurations the mask path
// cannot represent still parse through the reference tokenizer.
func TestAcceleratedEngine_Fallback(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantMasked bool
	}{
		{name: "default", cfg: Config{Separator: ",", Quote: '"', Accelerate: true}, wantMasked: true},
		{name: "multibyte quote", cfg: Config{Separator: ",", Quote: '«', Accelerate: true}, wantMasked: false},
		{name: "quote in separator", cfg: Config{Separator: `",`, Quote: '"', Accelerate: true}, wantMasked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAcceleratedEngine(tt.cfg)
			if e.masked != tt.wantMasked {
				t.Errorf("masked = %v, want %v", e.masked, tt.wantMasked)
			}
			ref := newReferenceEngine(tt.cfg)
			line := `a,"b",«c«",d`
			if diff := cmp.Diff(ref.Parse(line, NoBound), e.Parse(line, NoBound)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-reference +accelerated):\n%s", line, diff)
			}
		})
	}
}
