// transport.go
package redcore

import "context"

// Transport performs the actual network I/O a Fetcher needs: issuing one
// HTTP request and streaming back the response. redcore ships no
// implementation of this interface — wiring it to a real HTTP client
// (with TLS inspection, redirect suppression, connection reuse) is a
// deployment concern, out of scope per spec.md §1's Non-goals for the
// fetch transport itself.
type Transport interface {
	// Do issues req and returns the response's status line, headers, and
	// a reader for the body. The reader must be closed by the caller.
	Do(ctx context.Context, req *OutgoingRequest) (*IncomingResponse, error)
}

// OutgoingRequest is what a Fetcher asks a Transport to send.
type OutgoingRequest struct {
	Method  string
	URI     string
	Headers []HeaderField
}

// IncomingResponse is what a Transport hands back to a Fetcher: the
// status line and headers are available immediately; Body is read
// incrementally by the Fetcher to drive HttpMessage.FeedBody.
type IncomingResponse struct {
	StatusCode   string
	StatusPhrase string
	Version      string
	Headers      []HeaderField
	Body         BodyReader
}

// BodyReader is the minimal streaming surface a Transport's response
// body must provide.
type BodyReader interface {
	// Read returns the next chunk of the body, or io.EOF when done.
	Read(p []byte) (n int, err error)
	Close() error
}
