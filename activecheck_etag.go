// activecheck_etag.go
package redcore

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// SpawnETagValidate issues a conditional request with If-None-Match set
// to the base response's ETag, and classifies the result. Grounded on
// redbot/resource/active_check/etag_validate.py's ETagValidate.
func SpawnETagValidate(ctx context.Context, engine *Engine, transport Transport, state *RedState, base *ExchangeState, wg *sync.WaitGroup) {
	etag, ok := base.Response.ParsedHeaders["etag"].(string)
	if !ok || etag == "" {
		if wg != nil {
			wg.Done()
		}
		return
	}

	sr := &SubRequest{
		Engine: engine, Transport: transport, State: state, Base: base,
		Name:        "ETag validation",
		ProblemKind: "ETAG_SUBREQ_PROBLEM",
		ModifyReqHdrs: func(*HttpRequest) []HeaderField {
			return []HeaderField{{Name: "If-None-Match", Value: etag}}
		},
		CheckMissingHdrs: []string{"cache-control", "content-location", "etag", "expires", "vary"},
		MissingHdrsKind:  "MISSING_HDRS_304",
		ExpectedStatus:   "304",
		OnDone: func(ex *ExchangeState, err error) {
			if err != nil || ex.Response == nil {
				return
			}
			classifyETagValidation(state, base, ex, etag)
		},
	}
	sr.Spawn(ctx, wg)
}

func classifyETagValidation(state *RedState, base, sub *ExchangeState, etag string) {
	if sub.Response.StatusCode == "304" {
		base.AddNote("INM_304", nil)
		state.SetInmSupport(true)
		return
	}
	if sub.Response.StatusCode == base.Response.StatusCode {
		if sub.Response.DecodedMD5 == base.Response.DecodedMD5 {
			base.AddNote("INM_FULL", nil)
			state.SetInmSupport(false)
			return
		}
		subETag, _ := sub.Response.ParsedHeaders["etag"].(string)
		if subETag == etag {
			if strings.HasPrefix(etag, "W/") {
				base.AddNote("INM_DUP_ETAG_WEAK", nil)
			} else {
				base.AddNote("INM_DUP_ETAG_STRONG", map[string]any{"etag": etag})
			}
			return
		}
		base.AddNote("INM_UNKNOWN", nil)
		return
	}
	base.AddNote("INM_STATUS", map[string]any{
		"inm_status":     sub.Response.StatusCode,
		"enc_inm_status": fmt.Sprintf("%s %s", sub.Response.StatusCode, sub.Response.StatusPhrase),
	})
}
