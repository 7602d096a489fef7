package parser

import "testing"

func TestApacheParser_CommonFormat(t *testing.T) {
	p := NewApacheParser()

	rec, ok := p.ParseLine(`192.168.1.1 - - [01/Aug/2025:10:00:00 +0000] "GET /health HTTP/1.1" 200 512`)
	if !ok {
		t.Fatal("expected a record")
	}

	checks := []struct {
		key  string
		want any
	}{
		{"host", "192.168.1.1"},
		{"timestamp", "01/Aug/2025:10:00:00 +0000"},
		{"method", "GET"},
		{"path", "/health"},
		{"protocol", "HTTP/1.1"},
		{"status", int64(200)},
		{"bytes", int64(512)},
		{"level", "INFO"},
	}
	for _, c := range checks {
		if got := rec[c.key]; got != c.want {
			t.Errorf("rec[%q] = %v (%T), want %v", c.key, got, got, c.want)
		}
	}
	if _, ok := rec["referer"]; ok {
		t.Error("common format line should have no referer")
	}
}

func TestApacheParser_CombinedFormat(t *testing.T) {
	p := NewApacheParser()

	rec, ok := p.ParseLine(`10.0.0.5 - frank [10/Oct/2000:13:55:36 -0700] "POST /api/login HTTP/1.0" 503 2326 "http://example.com/start" "Mozilla/5.0"`)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec["referer"] != "http://example.com/start" {
		t.Errorf("referer = %v", rec["referer"])
	}
	if rec["user_agent"] != "Mozilla/5.0" {
		t.Errorf("user_agent = %v", rec["user_agent"])
	}
	if rec["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR for status 503", rec["level"])
	}
}

func TestApacheParser_DashBytesMeansZero(t *testing.T) {
	p := NewApacheParser()

	rec, ok := p.ParseLine(`127.0.0.1 - - [01/Aug/2025:10:00:00 +0000] "GET / HTTP/1.1" 304 -`)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec["bytes"] != int64(0) {
		t.Errorf("bytes = %v, want 0", rec["bytes"])
	}
}

// Client errors stay INFO; only 5xx statuses derive ERROR.
func TestApacheParser_ClientErrorLevel(t *testing.T) {
	p := NewApacheParser()

	rec, ok := p.ParseLine(`127.0.0.1 - - [01/Aug/2025:10:00:00 +0000] "GET /missing HTTP/1.1" 404 153`)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec["level"] != "INFO" {
		t.Errorf("level = %v, want INFO for status 404", rec["level"])
	}
}

func TestApacheParser_SkipsNonMatching(t *testing.T) {
	p := NewApacheParser()

	for _, line := range []string{
		"",
		"just some text",
		`{"level":"INFO"}`,
	} {
		if rec, ok := p.ParseLine(line); ok {
			t.Errorf("ParseLine(%q) = %v, want skip", line, rec)
		}
	}
}
