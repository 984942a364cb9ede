// activecheck_conneg.go
package redcore

import (
	"context"
	"sync"
)

// SpawnConnegValidate issues a request with Accept-Encoding: identity and
// compares it against the base response to determine whether gzip
// compression is properly content-negotiated. Not present in the
// retrieved original_source/ pack (content_negotiation.py was filtered
// out or never retrieved); reconstructed from spec.md's
// CONNEG_*/VARY_* outcome list and the SubRequest shape shared with
// etag_validate.py/lm_validate.py.
func SpawnConnegValidate(ctx context.Context, engine *Engine, transport Transport, state *RedState, base *ExchangeState, wg *sync.WaitGroup) {
	codings, _ := base.Response.ParsedHeaders["content-encoding"].([]string)
	baseIsGzip := containsFold(codings, "gzip")
	if !baseIsGzip {
		if wg != nil {
			wg.Done()
		}
		return
	}

	sr := &SubRequest{
		Engine: engine, Transport: transport, State: state, Base: base,
		Name:        "conneg",
		ProblemKind: "CONNEG_SUBREQ_PROBLEM",
		ModifyReqHdrs: func(*HttpRequest) []HeaderField {
			return []HeaderField{{Name: "Accept-Encoding", Value: "identity"}}
		},
		OnDone: func(ex *ExchangeState, err error) {
			if err != nil || ex.Response == nil {
				return
			}
			classifyConneg(state, base, ex)
		},
	}
	sr.Spawn(ctx, wg)
}

func classifyConneg(state *RedState, base, sub *ExchangeState) {
	if sub.Response.StatusCode != base.Response.StatusCode {
		base.AddNote("VARY_STATUS_MISMATCH", nil)
		return
	}

	subCodings, _ := sub.Response.ParsedHeaders["content-encoding"].([]string)
	if containsFold(subCodings, "gzip") {
		base.AddNote("CONNEG_GZIP_WITHOUT_ASKING", nil)
		state.SetGzipSupport(false)
		return
	}
	state.SetGzipSupport(true)

	vary, _ := base.Response.ParsedHeaders["vary"].([]string)
	if !containsFold(vary, "accept-encoding") {
		base.AddNote("CONNEG_NO_VARY", nil)
	}

	if !bytesEqual(base.Response.DecodedSample, sub.Response.DecodedSample) {
		base.AddNote("VARY_BODY_MISMATCH", nil)
		return
	}

	baseETag, _ := base.Response.ParsedHeaders["etag"].(string)
	subETag, _ := sub.Response.ParsedHeaders["etag"].(string)
	if baseETag != "" && baseETag == subETag {
		base.AddNote("VARY_ETAG_DOESNT_CHANGE", nil)
	}

	if base.Response.PayloadLen > 0 && sub.Response.PayloadLen > 0 {
		savings := int(100 - (base.Response.PayloadLen*100)/sub.Response.PayloadLen)
		if savings > 5 {
			base.AddNote("CONNEG_GZIP_GOOD", map[string]any{"gzip_savings": savings})
			state.SetGzipSavings(savings)
		} else {
			base.AddNote("CONNEG_GZIP_BAD", nil)
		}
	}
}
