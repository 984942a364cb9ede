package redcore

import (
	"testing"
	"time"
)

func buildResponse(t *testing.T, cfg *Config, ex *ExchangeState, status string, fields ...HeaderField) *HttpResponse {
	t.Helper()
	resp := &HttpResponse{
		HttpMessage: *newHttpMessage(cfg, ex, false),
		StatusCode:  status,
	}
	resp.SetHeaders(fields)
	return resp
}

func buildRequest(t *testing.T, cfg *Config, ex *ExchangeState, method string, fields ...HeaderField) *HttpRequest {
	t.Helper()
	req := &HttpRequest{
		HttpMessage: *newHttpMessage(cfg, ex, true),
		Method:      method,
	}
	req.SetHeaders(fields)
	return req
}

func TestCheckCachingFreshnessHappyPath(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	respTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	dateStr := formatHTTPDate(respTime)

	req := buildRequest(t, &cfg, ex, "GET")
	resp := buildResponse(t, &cfg, ex, "200",
		HeaderField{Name: "Date", Value: dateStr},
		HeaderField{Name: "Cache-Control", Value: "max-age=3600"},
	)

	res := CheckCaching(&cfg, ex, req, resp, respTime)

	if res.Storability != StorabilityStoreable {
		t.Errorf("Storability = %v, want StorabilityStoreable", res.Storability)
	}
	if res.Freshness != FreshnessFresh {
		t.Errorf("Freshness = %v, want FreshnessFresh", res.Freshness)
	}
	if res.FreshnessLifetime != time.Hour {
		t.Errorf("FreshnessLifetime = %v, want 1h", res.FreshnessLifetime)
	}
	if !ex.Notes.Has("FRESH_SERVABLE") {
		t.Error("expected FRESH_SERVABLE")
	}
	if !ex.Notes.Has("STOREABLE") {
		t.Error("expected STOREABLE")
	}
}

func TestCheckCachingStaleCache(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	origin := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	respTime := origin

	req := buildRequest(t, &cfg, ex, "GET")
	resp := buildResponse(t, &cfg, ex, "200",
		HeaderField{Name: "Date", Value: formatHTTPDate(origin)},
		HeaderField{Name: "Cache-Control", Value: "max-age=10"},
		HeaderField{Name: "Age", Value: "20"},
	)

	res := CheckCaching(&cfg, ex, req, resp, respTime)
	if res.Freshness != FreshnessStale {
		t.Errorf("Freshness = %v, want FreshnessStale", res.Freshness)
	}
	if !ex.Notes.Has("FRESHNESS_STALE_CACHE") {
		t.Error("expected FRESHNESS_STALE_CACHE")
	}
}

func TestCheckCachingClockSkewDetected(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	respTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	skewedDate := respTime.Add(-2 * time.Minute)

	req := buildRequest(t, &cfg, ex, "GET")
	resp := buildResponse(t, &cfg, ex, "200",
		HeaderField{Name: "Date", Value: formatHTTPDate(skewedDate)},
		HeaderField{Name: "Cache-Control", Value: "max-age=100"},
	)

	CheckCaching(&cfg, ex, req, resp, respTime)
	if !ex.Notes.Has("DATE_INCORRECT") {
		t.Error("expected DATE_INCORRECT for a 2-minute clock skew beyond the default 5s tolerance")
	}
}

func TestCheckCachingNoStore(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	respTime := time.Now()
	req := buildRequest(t, &cfg, ex, "GET")
	resp := buildResponse(t, &cfg, ex, "200",
		HeaderField{Name: "Date", Value: formatHTTPDate(respTime)},
		HeaderField{Name: "Cache-Control", Value: "no-store"},
	)
	res := CheckCaching(&cfg, ex, req, resp, respTime)
	if res.Storability != StorabilityNoStore {
		t.Errorf("Storability = %v, want StorabilityNoStore", res.Storability)
	}
	if !ex.Notes.Has("NO_STORE") {
		t.Error("expected NO_STORE")
	}
}

func TestCheckCachingMethodUncacheable(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	respTime := time.Now()
	req := buildRequest(t, &cfg, ex, "POST")
	resp := buildResponse(t, &cfg, ex, "200", HeaderField{Name: "Date", Value: formatHTTPDate(respTime)})
	res := CheckCaching(&cfg, ex, req, resp, respTime)
	if res.Storability != StorabilityUncacheableMethod {
		t.Errorf("Storability = %v, want StorabilityUncacheableMethod", res.Storability)
	}
	if !ex.Notes.Has("METHOD_UNCACHEABLE") {
		t.Error("expected METHOD_UNCACHEABLE")
	}
}

func TestCheckCachingHeuristicFreshness(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	respTime := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	lastModified := respTime.Add(-10 * 24 * time.Hour)

	req := buildRequest(t, &cfg, ex, "GET")
	resp := buildResponse(t, &cfg, ex, "200",
		HeaderField{Name: "Date", Value: formatHTTPDate(respTime)},
		HeaderField{Name: "Last-Modified", Value: formatHTTPDate(lastModified)},
	)
	res := CheckCaching(&cfg, ex, req, resp, respTime)
	if !ex.Notes.Has("FRESHNESS_HEURISTIC") {
		t.Error("expected FRESHNESS_HEURISTIC when no explicit lifetime is given but Last-Modified is present")
	}
	wantLifetime := 24 * time.Hour // 10% of 10 days
	if res.FreshnessLifetime != wantLifetime {
		t.Errorf("FreshnessLifetime = %v, want %v", res.FreshnessLifetime, wantLifetime)
	}
}

func TestCheckCachingNoFreshnessInfo(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	respTime := time.Now()
	req := buildRequest(t, &cfg, ex, "GET")
	// 404 is not in the default heuristic-cacheable status list.
	resp := buildResponse(t, &cfg, ex, "404",
		HeaderField{Name: "Date", Value: formatHTTPDate(respTime)},
		HeaderField{Name: "Last-Modified", Value: formatHTTPDate(respTime.Add(-time.Hour))},
	)
	res := CheckCaching(&cfg, ex, req, resp, respTime)
	if res.Freshness != FreshnessNone {
		t.Errorf("Freshness = %v, want FreshnessNone", res.Freshness)
	}
	if !ex.Notes.Has("FRESHNESS_NONE") {
		t.Error("expected FRESHNESS_NONE")
	}
}

func TestCheckCachingMustRevalidate(t *testing.T) {
	cfg := DefaultConfig()
	ex := newExchangeState("")
	respTime := time.Now()
	req := buildRequest(t, &cfg, ex, "GET")
	resp := buildResponse(t, &cfg, ex, "200",
		HeaderField{Name: "Date", Value: formatHTTPDate(respTime)},
		HeaderField{Name: "Cache-Control", Value: "max-age=0, must-revalidate"},
	)
	CheckCaching(&cfg, ex, req, resp, respTime)
	if !ex.Notes.Has("STALE_MUST_REVALIDATE") {
		t.Error("expected STALE_MUST_REVALIDATE for an already-stale must-revalidate response")
	}
}
