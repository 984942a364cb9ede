package redcore

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSpawnRangeValidateCorrect(t *testing.T) {
	engine := testEngine()
	engine.Config.RangeProbeBytes = 4
	transport := newFakeTransport()
	body := []byte("0123456789")
	transport.stub("https://example.com/big", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, body)

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/big")

	transport.stub("https://example.com/big", "206", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
		{Name: "Content-Range", Value: "bytes 0-3/10"},
	}, body[:4])

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnRangeValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	if !state.Base.Notes.Has("RANGE_CORRECT") {
		t.Error("expected RANGE_CORRECT")
	}
	if !state.PartialSupport {
		t.Error("expected PartialSupport to be set after a correct partial response")
	}
	var sawRange bool
	for _, req := range transport.requests {
		if v, ok := findHeader(req.Headers, "Range"); ok && v == "bytes=0-3" {
			sawRange = true
		}
	}
	if !sawRange {
		t.Error("expected a subrequest carrying Range: bytes=0-3")
	}
}

func TestSpawnRangeValidateIncorrect(t *testing.T) {
	engine := testEngine()
	engine.Config.RangeProbeBytes = 4
	transport := newFakeTransport()
	body := []byte("0123456789")
	transport.stub("https://example.com/big2", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, body)

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/big2")

	transport.stub("https://example.com/big2", "206", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
		{Name: "Content-Range", Value: "bytes 0-3/10"},
	}, []byte("ZZZZ"))

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnRangeValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	if !state.Base.Notes.Has("RANGE_INCORRECT") {
		t.Error("expected RANGE_INCORRECT when the partial bytes don't match")
	}
}

func TestSpawnRangeValidateSkippedWhenBodyTooSmall(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	body := []byte("short")
	transport.stub("https://example.com/small", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, body)

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/small")

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnRangeValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	for _, req := range transport.requests {
		if _, ok := findHeader(req.Headers, "Range"); ok {
			t.Error("did not expect a Range subrequest when the body is smaller than the probe size")
		}
	}
}

func TestSpawnRangeValidateFullResponse(t *testing.T) {
	engine := testEngine()
	engine.Config.RangeProbeBytes = 4
	transport := newFakeTransport()
	body := []byte("0123456789")
	transport.stub("https://example.com/norange", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, body)

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/norange")

	// Server ignores the Range request and serves the full 200 again.
	transport.stub("https://example.com/norange", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, body)

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnRangeValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	if !state.Base.Notes.Has("RANGE_FULL") {
		t.Error("expected RANGE_FULL when the server ignores Range and returns 200")
	}
}

func TestSpawnConnegValidateGoodSavings(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	plain := []byte(strings.Repeat("compress me please ", 200))
	gz := gzipBytes(t, plain)
	transport.stub("https://example.com/gz", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
		{Name: "Content-Encoding", Value: "gzip"},
		{Name: "Vary", Value: "Accept-Encoding"},
	}, gz)

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/gz")

	transport.stub("https://example.com/gz", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, plain)

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnConnegValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	if !state.Base.Notes.Has("CONNEG_GZIP_GOOD") {
		t.Error("expected CONNEG_GZIP_GOOD for a large compressible body")
	}
	if !state.GzipSupport {
		t.Error("expected GzipSupport to be set once negotiation succeeds")
	}
	if state.GzipSavings <= 5 {
		t.Error("expected GzipSavings to record the percentage reduction")
	}
	if state.Base.Notes.Has("CONNEG_NO_VARY") {
		t.Error("did not expect CONNEG_NO_VARY since Vary: Accept-Encoding is present")
	}
	var sawAE bool
	for _, req := range transport.requests {
		if v, ok := findHeader(req.Headers, "Accept-Encoding"); ok && v == "identity" {
			sawAE = true
		}
	}
	if !sawAE {
		t.Error("expected a subrequest carrying Accept-Encoding: identity")
	}
}

func TestSpawnConnegValidateNoVary(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	plain := []byte(strings.Repeat("x", 500))
	gz := gzipBytes(t, plain)
	transport.stub("https://example.com/gznovary", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
		{Name: "Content-Encoding", Value: "gzip"},
	}, gz)

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/gznovary")

	transport.stub("https://example.com/gznovary", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, plain)

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnConnegValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	if !state.Base.Notes.Has("CONNEG_NO_VARY") {
		t.Error("expected CONNEG_NO_VARY when Vary: Accept-Encoding is missing")
	}
}

func TestSpawnConnegValidateSkippedWithoutGzip(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	transport.stub("https://example.com/plain", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, []byte("plain body"))

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/plain")

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnConnegValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	for _, req := range transport.requests {
		if _, ok := findHeader(req.Headers, "Accept-Encoding"); ok {
			t.Error("did not expect a conneg subrequest for a response that wasn't gzip-encoded")
		}
	}
}

func TestSpawnConnegValidateBodyMismatch(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	plain := []byte(strings.Repeat("y", 500))
	gz := gzipBytes(t, plain)
	transport.stub("https://example.com/gzmismatch", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
		{Name: "Content-Encoding", Value: "gzip"},
		{Name: "Vary", Value: "Accept-Encoding"},
	}, gz)

	state := NewRedState()
	runBaseFetch(t, engine, transport, state, "https://example.com/gzmismatch")

	transport.stub("https://example.com/gzmismatch", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, []byte("totally different content"))

	var wg sync.WaitGroup
	wg.Add(1)
	SpawnConnegValidate(context.Background(), engine, transport, state, state.Base, &wg)
	wg.Wait()

	if !state.Base.Notes.Has("VARY_BODY_MISMATCH") {
		t.Error("expected VARY_BODY_MISMATCH when the identity body differs from the decoded gzip body")
	}
}
