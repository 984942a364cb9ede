package redcore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"
)

type fakeBody struct {
	r       *bytes.Reader
	failing bool // once the underlying bytes are exhausted, return errReadFailed instead of io.EOF
}

var errReadFailed = fmt.Errorf("connection reset by peer")

func (b *fakeBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err == io.EOF && b.failing {
		return n, errReadFailed
	}
	return n, err
}
func (b *fakeBody) Close() error { return nil }

func newFakeBody(data []byte) BodyReader {
	return &fakeBody{r: bytes.NewReader(data)}
}

func newFailingFakeBody(data []byte) BodyReader {
	return &fakeBody{r: bytes.NewReader(data), failing: true}
}

// fakeTransport serves canned responses keyed by exact request URI. A
// missing key yields a 404 with an empty body, keeping tests that don't
// care about robots.txt from needing to stub every possible fetch.
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]*IncomingResponse
	bodies    map[string][]byte
	bodyFails map[string]bool
	requests  []OutgoingRequest
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		responses: make(map[string]*IncomingResponse),
		bodies:    make(map[string][]byte),
		bodyFails: make(map[string]bool),
	}
}

func (f *fakeTransport) stub(uri, status string, headers []HeaderField, body []byte) {
	f.responses[uri] = &IncomingResponse{StatusCode: status, StatusPhrase: "OK", Version: "HTTP/1.1", Headers: headers}
	f.bodies[uri] = body
}

// stubFailingBody is like stub, but the body read fails with a transport
// error once the given bytes have been delivered.
func (f *fakeTransport) stubFailingBody(uri, status string, headers []HeaderField, body []byte) {
	f.stub(uri, status, headers, body)
	f.bodyFails[uri] = true
}

func (f *fakeTransport) Do(ctx context.Context, req *OutgoingRequest) (*IncomingResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, *req)
	resp, ok := f.responses[req.URI]
	body := f.bodies[req.URI]
	fails := f.bodyFails[req.URI]
	f.mu.Unlock()
	if !ok {
		return &IncomingResponse{StatusCode: "404", StatusPhrase: "Not Found", Version: "HTTP/1.1", Body: newFakeBody(nil)}, nil
	}
	out := *resp
	if fails {
		out.Body = newFailingFakeBody(body)
	} else {
		out.Body = newFakeBody(body)
	}
	return &out, nil
}

func testEngine() *Engine {
	return NewEngine(DefaultConfig(), io.Discard, io.Discard, io.Discard, io.Discard)
}

func TestFetcherRunSkipRobotsPopulatesExchange(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	body := []byte("hello, world")
	transport.stub("https://example.com/page", "200", []HeaderField{
		{Name: "Content-Length", Value: fmt.Sprint(len(body))},
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, body)

	state := NewRedState()
	f := NewFetcher(engine, transport, state, state.Base, "GET", "https://example.com/page")
	f.SkipRobots = true

	done := make(chan error, 1)
	f.DoneCB = func(ex *ExchangeState, err error) { done <- err }
	f.Run(context.Background())

	if err := <-done; err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if state.Base.Response == nil {
		t.Fatal("Response is nil after a successful fetch")
	}
	if state.Base.Response.StatusCode != "200" {
		t.Errorf("StatusCode = %q, want 200", state.Base.Response.StatusCode)
	}
	if !bytes.Equal(state.Base.Response.DecodedSample, body) {
		t.Errorf("DecodedSample = %q, want %q", state.Base.Response.DecodedSample, body)
	}
	if !state.Base.Notes.Has("CL_CORRECT") {
		t.Error("expected CL_CORRECT note to have been raised by BodyDone")
	}
	if state.TransferIn != int64(len(body)) {
		t.Errorf("TransferIn = %d, want %d", state.TransferIn, len(body))
	}
}

func TestFetcherRunConsultsRobots(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	transport.stub("https://example.com/robots.txt", "200", nil, []byte("User-agent: *\nDisallow: /blocked\n"))
	transport.stub("https://example.com/blocked", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, []byte("secret"))

	state := NewRedState()
	f := NewFetcher(engine, transport, state, state.Base, "GET", "https://example.com/blocked")

	done := make(chan error, 1)
	f.DoneCB = func(ex *ExchangeState, err error) { done <- err }
	f.Run(context.Background())

	err := <-done
	if err == nil {
		t.Fatal("expected the fetch to fail because robots.txt disallows the path")
	}
	if state.Base.Response != nil {
		t.Error("Response should be nil when robots.txt disallows the fetch")
	}
}

func TestFetcherRunAllowedByRobots(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	transport.stub("https://example.com/robots.txt", "200", nil, []byte("User-agent: *\nDisallow: /blocked\n"))
	transport.stub("https://example.com/open", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, []byte("public page"))

	state := NewRedState()
	f := NewFetcher(engine, transport, state, state.Base, "GET", "https://example.com/open")

	done := make(chan error, 1)
	f.DoneCB = func(ex *ExchangeState, err error) { done <- err }
	f.Run(context.Background())

	if err := <-done; err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if state.Base.Response == nil {
		t.Fatal("expected a response for a path robots.txt permits")
	}
}

func TestEngineAnalyzeEndToEnd(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	transport.stub("https://example.com/robots.txt", "200", nil, []byte("User-agent: *\n"))
	body := []byte("<html><body>hi</body></html>")
	transport.stub("https://example.com/", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
		{Name: "Cache-Control", Value: "max-age=60"},
	}, body)

	state, err := engine.Analyze(context.Background(), transport, "GET", "https://example.com/", false, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if state.Base.Response == nil {
		t.Fatal("expected a populated base response")
	}
	if !state.Base.Notes.Has("FRESH_SERVABLE") {
		t.Error("expected caching evaluation to have run")
	}
}

func TestFetcherRunBodyReadErrorRaisesBadChunk(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	transport.stubFailingBody("https://example.com/broken", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, []byte("partial"))

	state := NewRedState()
	f := NewFetcher(engine, transport, state, state.Base, "GET", "https://example.com/broken")
	f.SkipRobots = true

	done := make(chan error, 1)
	f.DoneCB = func(ex *ExchangeState, err error) { done <- err }
	f.Run(context.Background())
	<-done

	if !state.Base.Notes.Has("BAD_CHUNK") {
		t.Error("expected BAD_CHUNK when a GET/200 body read fails mid-stream")
	}
	if state.Base.Notes.Has("BODY_NOT_ALLOWED") {
		t.Error("did not expect BODY_NOT_ALLOWED for a GET/200 that is allowed a body")
	}
}

func TestFetcherRunBodyReadErrorOnHeadRaisesBodyNotAllowed(t *testing.T) {
	engine := testEngine()
	transport := newFakeTransport()
	transport.stubFailingBody("https://example.com/headbroken", "200", []HeaderField{
		{Name: "Date", Value: formatHTTPDate(time.Now())},
	}, []byte("unexpected"))

	state := NewRedState()
	f := NewFetcher(engine, transport, state, state.Base, "HEAD", "https://example.com/headbroken")
	f.SkipRobots = true

	done := make(chan error, 1)
	f.DoneCB = func(ex *ExchangeState, err error) { done <- err }
	f.Run(context.Background())
	<-done

	if !state.Base.Notes.Has("BODY_NOT_ALLOWED") {
		t.Error("expected BODY_NOT_ALLOWED when a HEAD response errors while delivering body bytes")
	}
}
