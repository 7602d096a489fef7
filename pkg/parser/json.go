package parser

import (
	"strings"

	"github.com/valyala/fastjson"
)

// JSONParser parses newline-delimited JSON (NDJSON) logs. Lines whose
// top-level value is not an object are skipped, as are malformed lines.
type JSONParser struct {
	pool fastjson.ParserPool
}

// NewJSONParser creates an NDJSON parser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Name() string {
	return "json"
}

// ParseLine decodes one JSON object into a Record.
func (p *JSONParser) ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	fp := p.pool.Get()
	defer p.pool.Put(fp)

	v, err := fp.Parse(line)
	if err != nil {
		return nil, false
	}
	obj, err := v.Object()
	if err != nil {
		// Top-level value is not a mapping.
		return nil, false
	}

	rec := make(Record, obj.Len())
	obj.Visit(func(key []byte, val *fastjson.Value) {
		rec[string(key)] = decodeJSONValue(val)
	})
	return rec, true
}

// ParseFile stream-parses an NDJSON file.
func (p *JSONParser) ParseFile(path string) (*Stream, error) {
	return newStream(path, p.ParseLine, nil)
}

// decodeJSONValue converts a fastjson value into the Record value types.
// Integral numbers become int64 so that encode/parse round-trips preserve
// integer fields; everything else follows the JSON type directly.
func decodeJSONValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeString:
		b, _ := v.StringBytes()
		return string(b)
	case fastjson.TypeNumber:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeArray:
		arr, _ := v.Array()
		out := make([]any, len(arr))
		for i, el := range arr {
			out[i] = decodeJSONValue(el)
		}
		return out
	case fastjson.TypeObject:
		obj, _ := v.Object()
		out := make(map[string]any, obj.Len())
		obj.Visit(func(key []byte, val *fastjson.Value) {
			out[string(key)] = decodeJSONValue(val)
		})
		return out
	default:
		return nil
	}
}
