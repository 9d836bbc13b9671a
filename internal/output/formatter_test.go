package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"toon", FormatTOON},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable("Results",
		[]string{"File", "Issues"},
		[][]string{{"a.js", "2"}, {"b.js", "0"}},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"## Results",
		"| File | Issues |",
		"| --- | --- |",
		"| a.js | 2 |",
		"| b.js | 0 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderText(t *testing.T) {
	table := NewTable("Summary",
		[]string{"Name", "Count"},
		[][]string{{"x", "1"}},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Summary") {
		t.Errorf("text output missing title:\n%s", out)
	}
	if !strings.Contains(out, "x") {
		t.Errorf("text output missing row data:\n%s", out)
	}
}

func TestTableRenderDataFromRows(t *testing.T) {
	table := NewTable("", []string{"k", "v"}, [][]string{{"a", "1"}}, nil)
	data := table.RenderData()

	rows, ok := data.([]map[string]string)
	if !ok {
		t.Fatalf("RenderData returned %T", data)
	}
	if len(rows) != 1 || rows[0]["k"] != "a" || rows[0]["v"] != "1" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestTableRenderDataPrefersStructured(t *testing.T) {
	payload := map[string]int{"total": 3}
	table := NewTable("", nil, nil, payload)
	if got := table.RenderData(); got == nil {
		t.Fatal("RenderData returned nil")
	}
}

func TestFormatterJSONOutput(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/out.json"

	f, err := NewFormatter(FormatJSON, path, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Output(map[string]string{"key": "value"}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["key"] != "value" {
		t.Errorf("decoded = %v", decoded)
	}

	if f.Colored() {
		t.Error("file output must disable color")
	}
}

func TestFormatterFormatAccessor(t *testing.T) {
	f, err := NewFormatter(FormatYAML, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if f.Format() != FormatYAML {
		t.Errorf("Format() = %s, want yaml", f.Format())
	}
}
