// activecheck.go
package redcore

import (
	"context"
	"sync"
)

// SubRequest is the shared shape every active check builds on: it
// starts from the base exchange's request, modifies a few headers, and
// issues a subrequest whose response is compared back against the base
// response. Grounded on redbot/resource/active_check/base.py's
// SubRequest.
type SubRequest struct {
	Engine    *Engine
	Transport Transport
	State     *RedState
	Base      *ExchangeState

	Name string // becomes the spawned exchange's Name, e.g. "ETag validation"

	// ModifyReqHdrs returns the extra/overriding request headers this
	// check adds on top of the base request's headers.
	ModifyReqHdrs func(base *HttpRequest) []HeaderField

	// CheckMissingHdrs names response headers that, per spec, must be
	// repeated on a 304/206 if they were present on the base response;
	// their absence raises MissingHdrsKind. Only checked when the
	// subrequest actually returns ExpectedStatus — a probe that comes
	// back with some other status (full response, error status) isn't
	// required to repeat anything.
	CheckMissingHdrs []string
	MissingHdrsKind  string
	ExpectedStatus   string

	// OnDone receives the subrequest's exchange once resolved (or the
	// error if it couldn't be completed), and is responsible for raising
	// whatever INM_*/IMS_*/RANGE_*/CONNEG_* notes apply.
	OnDone func(ex *ExchangeState, err error)

	// ProblemKind is the note raised if the subrequest itself fails
	// (connection error, timeout), distinct from a successful-but-
	// unexpected response.
	ProblemKind string
}

// Spawn issues the subrequest and returns immediately; OnDone fires on
// its own goroutine when the fetch resolves. If wg is non-nil, Spawn
// guarantees wg.Done() is called exactly once, whether or not it
// actually issues a subrequest — callers use this to block until every
// active check (spawned or skipped) has settled. Grounded on
// SubRequest.preflight/done.
func (s *SubRequest) Spawn(ctx context.Context, wg *sync.WaitGroup) {
	if s.Base.Request == nil {
		if wg != nil {
			wg.Done()
		}
		return
	}
	ex := s.State.AddExchange(s.Name)
	f := NewFetcher(s.Engine, s.Transport, s.State, ex, s.Base.Request.Method, s.Base.Request.URI)
	f.SkipRobots = true
	if s.ModifyReqHdrs != nil {
		merged := append(append([]HeaderField{}, s.Base.Request.Headers...), s.ModifyReqHdrs(s.Base.Request)...)
		f.Request.SetHeaders(merged)
	}
	f.DoneCB = func(ex *ExchangeState, err error) {
		defer func() {
			if wg != nil {
				wg.Done()
			}
		}()
		if err != nil {
			if s.ProblemKind != "" {
				s.Base.AddNote(s.ProblemKind, map[string]any{"problem": err.Error()})
			}
			if s.OnDone != nil {
				s.OnDone(ex, err)
			}
			return
		}
		s.checkMissingHeaders(ex)
		if s.OnDone != nil {
			s.OnDone(ex, nil)
		}
	}
	f.Run(ctx)
}

func (s *SubRequest) checkMissingHeaders(ex *ExchangeState) {
	if len(s.CheckMissingHdrs) == 0 || s.Base.Response == nil || ex.Response == nil {
		return
	}
	if s.ExpectedStatus != "" && ex.Response.StatusCode != s.ExpectedStatus {
		return
	}
	var missing []string
	for _, h := range s.CheckMissingHdrs {
		if _, onBase := s.Base.Response.ParsedHeaders[h]; !onBase {
			continue
		}
		if _, onSub := ex.Response.ParsedHeaders[h]; !onSub {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		ex.AddNote(s.MissingHdrsKind, map[string]any{"missing_hdrs": missing, "subreq_type": s.Name})
	}
}
