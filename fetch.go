// fetch.go
package redcore

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Fetcher drives one HTTP exchange end to end: robots.txt preflight,
// issuing the request via a Transport, streaming the response into an
// HttpMessage, and firing DoneCB exactly once when the exchange is
// fully resolved (success or error). Grounded on
// redbot/resource/fetch.py's RedFetcher, with one goroutine per Fetcher
// replacing the original's cooperative single-thread reactor — see
// DESIGN.md's Open Question resolution on concurrency. add_task/
// finish_task's "fires exactly once" guarantee is preserved with a
// mutex-protected counter plus a doneFired flag rather than a bare Python
// instance counter, since Go offers no cooperative scheduling guarantee
// across goroutines.
type Fetcher struct {
	Engine    *Engine
	Transport Transport
	State     *RedState
	Exchange  *ExchangeState
	Request   *HttpRequest

	// CheckType is a label for this fetch's role within the analysis,
	// mirroring RedFetcher.check_type. NewFetcher leaves it empty and
	// nothing in this package sets it.
	CheckType string

	// SkipRobots bypasses the robots.txt preflight — used for the
	// robots.txt fetch itself and for active-check subrequests, which
	// target the same origin as an already-permitted base fetch.
	SkipRobots bool

	DoneCB func(*ExchangeState, error)

	mu          sync.Mutex
	outstanding int
	doneFired   bool
}

// NewFetcher builds a Fetcher for one request against ex, grounded on
// RedFetcher.__init__'s request construction plus preflight setup.
func NewFetcher(engine *Engine, transport Transport, state *RedState, ex *ExchangeState, method, uri string) *Fetcher {
	req := &HttpRequest{
		HttpMessage: *newHttpMessage(&engine.Config, ex, true),
		Method:      method,
		URI:         uri,
	}
	req.SetHeaders([]HeaderField{{Name: "User-Agent", Value: engine.Config.UserAgent}})
	ex.Request = req
	return &Fetcher{
		Engine:    engine,
		Transport: transport,
		State:     state,
		Exchange:  ex,
		Request:   req,
	}
}

func (f *Fetcher) addTask() {
	f.mu.Lock()
	f.outstanding++
	f.mu.Unlock()
}

// finishTask decrements the outstanding-work counter and, once it
// reaches zero, fires DoneCB exactly once. Grounded on
// RedFetcher.add_task/finish_task.
func (f *Fetcher) finishTask(err error) {
	f.mu.Lock()
	f.outstanding--
	fire := f.outstanding <= 0 && !f.doneFired
	if fire {
		f.doneFired = true
	}
	f.mu.Unlock()
	if fire && f.DoneCB != nil {
		f.DoneCB(f.Exchange, err)
	}
}

// Run performs the preflight (robots.txt, if applicable) then issues the
// request on its own goroutine, returning immediately. Grounded on
// RedFetcher.run/run_continue.
func (f *Fetcher) Run(ctx context.Context) {
	f.addTask()
	go f.runSync(ctx)
}

func (f *Fetcher) runSync(ctx context.Context) {
	var finalErr error
	defer func() { f.finishTask(finalErr) }()

	if !f.SkipRobots {
		// A robots.txt fetch/parse error is treated as permissive (allowed
		// defaults true on RobotsTxtError), matching fetch_robots_txt's
		// fail-open behavior rather than blocking the whole analysis on a
		// robots.txt outage.
		allowed, _ := f.checkRobots(ctx)
		if !allowed {
			finalErr = fmt.Errorf("disallowed by robots.txt")
			return
		}
	}

	resp, err := f.Transport.Do(ctx, &OutgoingRequest{
		Method:  f.Request.Method,
		URI:     f.Request.URI,
		Headers: f.Request.Headers,
	})
	if err != nil {
		finalErr = err
		f.Request.HTTPError = err
		return
	}
	defer resp.Body.Close()

	respMsg := &HttpResponse{
		HttpMessage:  *newHttpMessage(&f.Engine.Config, f.Exchange, false),
		StatusCode:   resp.StatusCode,
		StatusPhrase: resp.StatusPhrase,
	}
	respMsg.Version = resp.Version
	respMsg.SetHeaders(resp.Headers)
	f.Exchange.Response = respMsg

	buf := make([]byte, 32*1024)
	var total int64
	var lastChunk []byte
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			respMsg.FeedBody(buf[:n])
			total += int64(n)
			lastChunk = append([]byte{}, buf[:n]...)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			finalErr = rerr
			f.noteBodyReadError(respMsg, lastChunk)
			break
		}
	}
	respMsg.BodyDone(nil)
	f.State.AddTransfer(total, 0)

	CheckCaching(&f.Engine.Config, f.Exchange, f.Request, respMsg, time.Now())
}

// noteBodyReadError raises BODY_NOT_ALLOWED or BAD_CHUNK, whichever
// applies, when the transport errors out partway through reading the
// body. A HEAD request or a status that forbids a body (204, 304, 1xx)
// getting body bytes at all is BODY_NOT_ALLOWED; anything else reading
// as chunked is a framing problem, BAD_CHUNK. Grounded on
// fetch.py's _response_error.
func (f *Fetcher) noteBodyReadError(respMsg *HttpResponse, lastChunk []byte) {
	switch {
	case f.Request.Method == "HEAD",
		respMsg.StatusCode == "204",
		respMsg.StatusCode == "304",
		len(respMsg.StatusCode) == 3 && respMsg.StatusCode[0] == '1':
		f.Exchange.AddNote("BODY_NOT_ALLOWED", nil)
	default:
		f.Exchange.AddNote("BAD_CHUNK", map[string]any{"chunk_sample": lastChunk})
	}
}

// checkRobots derives the request's origin and consults the engine's
// robotsCache, fetching robots.txt itself (via a nested, robots-skipping
// Fetcher) if it isn't cached yet. Grounded on
// RedFetcher.fetch_robots_txt.
func (f *Fetcher) checkRobots(ctx context.Context) (bool, error) {
	origin, err := urlToOrigin(f.Request.URI)
	if err != nil {
		return false, err
	}
	ua, _ := f.Request.ParsedHeaders["user-agent"].(string)
	if ua == "" {
		ua = f.Engine.Config.UserAgent
	}
	path := requestPath(f.Request.URI)

	return f.Engine.robots.Fetch(origin, ua, path, func(origin string) ([]byte, error) {
		robotsURI := origin + "/robots.txt"
		robotsEx := f.State.AddExchange("robots.txt")
		done := make(chan struct{})
		var body []byte
		var fetchErr error

		sub := NewFetcher(f.Engine, f.Transport, f.State, robotsEx, "GET", robotsURI)
		sub.SkipRobots = true
		sub.DoneCB = func(ex *ExchangeState, err error) {
			if err != nil {
				fetchErr = err
			} else if ex.Response != nil {
				body = ex.Response.DecodedSample
			}
			close(done)
		}
		sub.Run(ctx)
		<-done
		return body, fetchErr
	})
}

func requestPath(uri string) string {
	idx := -1
	schemeEnd := -1
	for i := 0; i+2 < len(uri); i++ {
		if uri[i] == ':' && uri[i+1] == '/' && uri[i+2] == '/' {
			schemeEnd = i + 3
			break
		}
	}
	if schemeEnd < 0 {
		return "/"
	}
	for i := schemeEnd; i < len(uri); i++ {
		if uri[i] == '/' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "/"
	}
	return uri[idx:]
}
