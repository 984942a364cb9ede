// activecheck_lm.go
package redcore

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SpawnLmValidate issues a conditional request with If-Modified-Since
// set to the base response's Last-Modified, and classifies the result.
// Grounded on redbot/resource/active_check/lm_validate.py's LmValidate.
func SpawnLmValidate(ctx context.Context, engine *Engine, transport Transport, state *RedState, base *ExchangeState, wg *sync.WaitGroup) {
	lm, ok := base.Response.ParsedHeaders["last-modified"].(time.Time)
	if !ok {
		if wg != nil {
			wg.Done()
		}
		return
	}

	sr := &SubRequest{
		Engine: engine, Transport: transport, State: state, Base: base,
		Name:        "LM validation",
		ProblemKind: "LM_SUBREQ_PROBLEM",
		ModifyReqHdrs: func(*HttpRequest) []HeaderField {
			return []HeaderField{{Name: "If-Modified-Since", Value: formatHTTPDate(lm)}}
		},
		CheckMissingHdrs: []string{"cache-control", "content-location", "etag", "expires", "vary"},
		MissingHdrsKind:  "MISSING_HDRS_304",
		ExpectedStatus:   "304",
		OnDone: func(ex *ExchangeState, err error) {
			if err != nil || ex.Response == nil {
				return
			}
			classifyLmValidation(state, base, ex)
		},
	}
	sr.Spawn(ctx, wg)
}

func classifyLmValidation(state *RedState, base, sub *ExchangeState) {
	if sub.Response.StatusCode == "304" {
		base.AddNote("IMS_304", nil)
		state.SetImsSupport(true)
		return
	}
	if sub.Response.StatusCode == base.Response.StatusCode {
		if sub.Response.DecodedMD5 == base.Response.DecodedMD5 {
			base.AddNote("IMS_FULL", nil)
			state.SetImsSupport(false)
		} else {
			base.AddNote("IMS_UNKNOWN", nil)
		}
		return
	}
	base.AddNote("IMS_STATUS", map[string]any{
		"ims_status":     sub.Response.StatusCode,
		"enc_ims_status": fmt.Sprintf("%s %s", sub.Response.StatusCode, sub.Response.StatusPhrase),
	})
}
