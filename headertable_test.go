package redcore

import (
	"strings"
	"testing"
)

func process(isRequest bool, fields ...HeaderField) (*ExchangeState, map[string]any) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	return ex, ProcessHeaders(&cfg, ex, isRequest, fields)
}

func TestProcessHeadersCacheControlParsing(t *testing.T) {
	ex, out := process(false, HeaderField{Name: "Cache-Control", Value: "max-age=3600, no-transform"})
	cc, ok := out["cache-control"].(CacheControl)
	if !ok {
		t.Fatalf("cache-control entry is %T, want CacheControl", out["cache-control"])
	}
	if v, ok := cc.intVal("max-age"); !ok || v != 3600 {
		t.Errorf("max-age = %d, %v, want 3600, true", v, ok)
	}
	if !cc.has("no-transform") {
		t.Error("expected no-transform directive present")
	}
	if ex.Notes.Has("CC_DUP") || ex.Notes.Has("CC_MISCAP") {
		t.Errorf("unexpected notes: %+v", ex.Notes.All())
	}
}

func TestProcessHeadersCacheControlDup(t *testing.T) {
	ex, _ := process(false,
		HeaderField{Name: "Cache-Control", Value: "max-age=10"},
		HeaderField{Name: "Cache-Control", Value: "max-age=20"},
	)
	if !ex.Notes.Has("CC_DUP") {
		t.Error("expected CC_DUP for a directive repeated across occurrences")
	}
}

func TestProcessHeadersCacheControlMiscap(t *testing.T) {
	ex, out := process(false, HeaderField{Name: "Cache-Control", Value: "No-Cache"})
	if !ex.Notes.Has("CC_MISCAP") {
		t.Error("expected CC_MISCAP for a miscapitalized known directive")
	}
	cc := out["cache-control"].(CacheControl)
	if !cc.has("no-cache") {
		t.Error("directive should still be canonicalized to lower-case in the map")
	}
}

func TestProcessHeadersSingleValueRepeat(t *testing.T) {
	ex, out := process(false,
		HeaderField{Name: "Content-Length", Value: "10"},
		HeaderField{Name: "Content-Length", Value: "20"},
	)
	if !ex.Notes.Has("SINGLE_HEADER_REPEAT") {
		t.Error("expected SINGLE_HEADER_REPEAT for a repeated single-value header")
	}
	if out["content-length"] != int64(20) {
		t.Errorf("content-length = %v, want last occurrence 20", out["content-length"])
	}
}

func TestProcessHeadersRoleGates(t *testing.T) {
	ex, out := process(false, HeaderField{Name: "User-Agent", Value: "redcore-test"})
	if !ex.Notes.Has("REQUEST_HDR_IN_RESPONSE") {
		t.Error("expected REQUEST_HDR_IN_RESPONSE for a request-only header on a response")
	}
	if _, present := out["user-agent"]; present {
		t.Error("a rejected header should not end up in ParsedHeaders")
	}

	ex2, out2 := process(true, HeaderField{Name: "ETag", Value: `"abc"`})
	if !ex2.Notes.Has("RESPONSE_HDR_IN_REQUEST") {
		t.Error("expected RESPONSE_HDR_IN_REQUEST for a response-only header on a request")
	}
	if _, present := out2["etag"]; present {
		t.Error("a rejected header should not end up in ParsedHeaders")
	}
}

func TestProcessHeadersDeprecated(t *testing.T) {
	ex, _ := process(false, HeaderField{Name: "Set-Cookie2", Value: "a=b"})
	if !ex.Notes.Has("HEADER_DEPRECATED") {
		t.Error("expected HEADER_DEPRECATED for Set-Cookie2")
	}
}

func TestProcessHeadersBadFieldName(t *testing.T) {
	ex, out := process(false, HeaderField{Name: "bad name", Value: "x"})
	if !ex.Notes.Has("FIELD_NAME_BAD_SYNTAX") {
		t.Error("expected FIELD_NAME_BAD_SYNTAX for a header name containing a space")
	}
	if len(out) != 0 {
		t.Errorf("out = %v, want empty", out)
	}
}

func TestProcessHeadersNonASCIIEncoding(t *testing.T) {
	ex, _ := process(false, HeaderField{Name: "X-Custom", Value: "café"})
	if !ex.Notes.Has("HEADER_VALUE_ENCODING") {
		t.Error("expected HEADER_VALUE_ENCODING for a non-ASCII header value")
	}
}

func TestProcessHeadersDateBadSyntax(t *testing.T) {
	ex, out := process(false, HeaderField{Name: "Date", Value: "not a date"})
	if !ex.Notes.Has("BAD_DATE_SYNTAX") {
		t.Error("expected BAD_DATE_SYNTAX")
	}
	if _, present := out["date"]; present {
		t.Error("an unparsable Date header should not appear in ParsedHeaders")
	}
}

func TestProcessHeadersVaryLowercasesAndJoins(t *testing.T) {
	_, out := process(false,
		HeaderField{Name: "Vary", Value: "Accept-Encoding"},
		HeaderField{Name: "Vary", Value: "User-Agent"},
	)
	vary, ok := out["vary"].([]string)
	if !ok {
		t.Fatalf("vary entry is %T, want []string", out["vary"])
	}
	want := []string{"accept-encoding", "user-agent"}
	if len(vary) != len(want) || vary[0] != want[0] || vary[1] != want[1] {
		t.Errorf("vary = %v, want %v", vary, want)
	}
}

func TestProcessHeadersUnknownHeaderPassesThrough(t *testing.T) {
	_, out := process(false, HeaderField{Name: "X-Totally-Custom", Value: "hi"})
	vals, ok := out["x-totally-custom"].([]any)
	if !ok || len(vals) != 1 || vals[0] != "hi" {
		t.Errorf("x-totally-custom = %v, %v, want [hi]", vals, ok)
	}
}

func TestProcessHeadersSubjectGrammar(t *testing.T) {
	ex, _ := process(false,
		HeaderField{Name: "Content-Length", Value: "café"},
		HeaderField{Name: "Cache-Control", Value: "Max-Age=10"},
	)
	var sawOffset, sawHeader bool
	for _, n := range ex.Notes.All() {
		if n.Subject == "offset-0" {
			sawOffset = true
		}
		if n.Subject == "header-cache-control" {
			sawHeader = true
		}
	}
	if !sawOffset {
		t.Error("expected a note with subject offset-0 from the raw-header gate stage")
	}
	if !sawHeader {
		t.Error("expected a note with subject header-cache-control once dispatched to its module")
	}
}

func TestProcessHeadersBlockTooLarge(t *testing.T) {
	fields := make([]HeaderField, 0, 20)
	for i := 0; i < 20; i++ {
		fields = append(fields, HeaderField{Name: "X-Pad", Value: strings.Repeat("a", 500)})
	}
	ex, _ := process(false, fields...)
	if !ex.Notes.Has("HEADER_BLOCK_TOO_LARGE") {
		t.Error("expected HEADER_BLOCK_TOO_LARGE when the cumulative header block exceeds 8000 bytes")
	}
}
