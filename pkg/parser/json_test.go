package parser

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestJSONParser_ParseLine(t *testing.T) {
	p := NewJSONParser()

	rec, ok := p.ParseLine(`{"level":"ERROR","message":"disk full"}`)
	if !ok {
		t.Fatal("expected a record")
	}
	want := Record{"level": "ERROR", "message": "disk full"}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("got %v, want %v", rec, want)
	}
}

func TestJSONParser_ValueTypes(t *testing.T) {
	p := NewJSONParser()

	rec, ok := p.ParseLine(`{"s":"x","i":42,"f":2.5,"b":true,"n":null,"a":[1,"two"],"o":{"k":1}}`)
	if !ok {
		t.Fatal("expected a record")
	}
	want := Record{
		"s": "x",
		"i": int64(42),
		"f": 2.5,
		"b": true,
		"n": nil,
		"a": []any{int64(1), "two"},
		"o": map[string]any{"k": int64(1)},
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("got %#v, want %#v", rec, want)
	}
}

func TestJSONParser_SkipsMalformed(t *testing.T) {
	p := NewJSONParser()

	for _, line := range []string{
		`{"unterminated": `,
		`not json at all`,
		`[1, 2, 3]`, // top-level array is not a mapping
		`"just a string"`,
		``,
		`   `,
	} {
		if rec, ok := p.ParseLine(line); ok {
			t.Errorf("ParseLine(%q) = %v, want skip", line, rec)
		}
	}
}

// Encoding a record then parsing the line round-trips to an equal record.
func TestJSONParser_EncodeParseRoundTrip(t *testing.T) {
	p := NewJSONParser()

	records := []Record{
		{"level": "ERROR", "message": "disk full"},
		{"count": int64(7), "ratio": 0.25, "ok": false},
		{"nested": map[string]any{"list": []any{int64(1), int64(2)}}},
	}
	for _, orig := range records {
		data, err := json.Marshal(orig)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := p.ParseLine(string(data))
		if !ok {
			t.Fatalf("ParseLine(%s) skipped", data)
		}
		if !reflect.DeepEqual(got, orig) {
			t.Errorf("round trip: got %#v, want %#v", got, orig)
		}
	}
}

func TestJSONParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	content := `{"level":"INFO","msg":"started"}
{"level":"ERROR","msg":"boom"}
garbage line
{"level":"INFO","msg":"done"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	stream, err := NewJSONParser().ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()

	records, err := stream.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (garbage skipped)", len(records))
	}
	if msg, _ := records[1].String("msg"); msg != "boom" {
		t.Errorf("records[1][msg] = %q, want %q", msg, "boom")
	}
}
