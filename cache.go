// cache.go
package redcore

import (
	"time"
)

// isHeuristicCacheableStatus reports whether a cache is permitted to
// apply heuristic freshness to status when no explicit lifetime is
// given. Grounded on cache.py's heuristic_cacheable_status, sourced from
// Config so an embedder can tune it.
func isHeuristicCacheableStatus(cfg *Config, status string) bool {
	for _, s := range cfg.HeuristicCacheableStatus {
		if s == status {
			return true
		}
	}
	return false
}

// isCacheableMethod reports whether method may ever produce a storable
// response. Grounded on cache.py's check against known cacheable
// methods, sourced from Config.CacheableMethods.
func isCacheableMethod(cfg *Config, method string) bool {
	for _, m := range cfg.CacheableMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Storability is the outcome of checkCaching's storability precedence
// chain. Grounded on cache.py's METHOD_UNCACHEABLE/NO_STORE/PRIVATE_CC/
// PRIVATE_AUTH/STOREABLE precedence.
type Storability int

const (
	StorabilityUncacheableMethod Storability = iota
	StorabilityNoStore
	StorabilityPrivateCC
	StorabilityPrivateAuth
	StorabilityStoreable
)

// Freshness is the outcome of checkCaching's freshness computation.
// Grounded on cache.py's FRESHNESS_* notes.
type Freshness int

const (
	FreshnessNone Freshness = iota
	FreshnessFresh
	FreshnessStale
)

// CachingResult summarizes everything checkCaching determined about one
// response, for callers that need the structured outcome rather than
// just the notes raised along the way. Grounded on the return-relevant
// fields cache.py computes across checkCaching's body.
type CachingResult struct {
	Storability       Storability
	CurrentAge        time.Duration
	FreshnessLifetime time.Duration
	Freshness         Freshness
	MustRevalidate    bool
	ProxyRevalidate   bool
}

// CheckCaching evaluates the cacheability, freshness, and validation
// requirements of a response/request pair, raising notes on ex as it
// goes. respTime is when the response was received (used for current-age
// and clock-skew computation in place of the original's live wall clock).
// Grounded line-for-line on redbot/message/cache.py's checkCaching.
func CheckCaching(cfg *Config, ex *ExchangeState, req *HttpRequest, resp *HttpResponse, respTime time.Time) CachingResult {
	var res CachingResult

	cc, _ := resp.ParsedHeaders["cache-control"].(CacheControl)
	hasETag := resp.ParsedHeaders["etag"] != nil
	lastModified, hasLM := resp.ParsedHeaders["last-modified"].(time.Time)

	if hasLM {
		if lastModified.After(respTime) {
			ex.AddNote("LM_FUTURE", nil)
		} else {
			ex.AddNote("LM_PRESENT", map[string]any{"last_modified_string": formatHTTPDate(lastModified)})
		}
	}

	checkPrePostCheck(ex, cc)
	checkVary(ex, resp)
	checkContentRangeGate(ex, resp)

	res.Storability = checkStorability(cfg, ex, req, resp, cc)

	hasValidator := hasETag || hasLM
	if cc.has("no-cache") {
		if !hasValidator {
			ex.AddNote("NO_CACHE_NO_VALIDATOR", nil)
		} else {
			ex.AddNote("NO_CACHE", nil)
		}
	}
	if cc.has("public") {
		ex.AddNote("PUBLIC", nil)
	}

	date, hasDate := resp.ParsedHeaders["date"].(time.Time)
	res.CurrentAge = computeCurrentAge(resp, date, hasDate, respTime)

	if !hasDate {
		ex.AddNote("DATE_CLOCKLESS", nil)
		if hasLM {
			ex.AddNote("DATE_CLOCKLESS_BAD_HDR", nil)
		}
	} else {
		checkClockSkew(cfg, ex, resp, date, respTime, res.CurrentAge)
	}

	ex.AddNote("CURRENT_AGE", map[string]any{"current_age": res.CurrentAge.String()})

	res.FreshnessLifetime, res.Freshness = checkFreshness(cfg, ex, resp, cc, date, hasDate, hasLM, lastModified, res.CurrentAge, respTime)

	res.MustRevalidate = cc.has("must-revalidate")
	res.ProxyRevalidate = cc.has("proxy-revalidate")
	checkRevalidation(ex, res)

	return res
}

func checkStorability(cfg *Config, ex *ExchangeState, req *HttpRequest, resp *HttpResponse, cc CacheControl) Storability {
	if !isCacheableMethod(cfg, req.Method) {
		ex.AddNote("METHOD_UNCACHEABLE", map[string]any{"method": req.Method})
		return StorabilityUncacheableMethod
	}
	if cc.has("no-store") {
		ex.AddNote("NO_STORE", nil)
		return StorabilityNoStore
	}
	if cc.has("private") {
		ex.AddNote("PRIVATE_CC", nil)
		return StorabilityPrivateCC
	}
	if _, authed := req.ParsedHeaders["authorization"]; authed && !cc.has("public") && !cc.intValPresent("s-maxage") && !cc.has("must-revalidate") {
		ex.AddNote("PRIVATE_AUTH", nil)
		return StorabilityPrivateAuth
	}
	ex.AddNote("STOREABLE", nil)
	return StorabilityStoreable
}

func (cc CacheControl) intValPresent(name string) bool {
	_, ok := cc.Directives[name]
	return ok
}

func checkPrePostCheck(ex *ExchangeState, cc CacheControl) {
	preRaw, hasPre := cc.Directives["pre-check"]
	postRaw, hasPost := cc.Directives["post-check"]
	if !hasPre && !hasPost {
		return
	}
	if hasPre != hasPost {
		ex.AddNote("CHECK_SINGLE", nil)
		return
	}
	pre, preOK := parseDeltaSeconds(preRaw)
	post, postOK := parseDeltaSeconds(postRaw)
	if !preOK || !postOK {
		ex.AddNote("CHECK_NOT_INTEGER", nil)
		return
	}
	switch {
	case pre == 0 && post == 0:
		ex.AddNote("CHECK_ALL_ZERO", nil)
	case post > pre:
		ex.AddNote("CHECK_POST_BIGGER", nil)
	case post == 0:
		ex.AddNote("CHECK_POST_ZERO", nil)
	default:
		ex.AddNote("CHECK_POST_PRE", map[string]any{"post_check": post, "pre_check": pre - post})
	}
}

func checkVary(ex *ExchangeState, resp *HttpResponse) {
	vary, _ := resp.ParsedHeaders["vary"].([]string)
	if len(vary) == 0 {
		return
	}
	for _, v := range vary {
		if v == "*" {
			ex.AddNote("VARY_ASTERISK", nil)
			return
		}
	}
	if len(vary) > 3 {
		ex.AddNote("VARY_COMPLEX", map[string]any{"vary_count": len(vary)})
	}
	for _, v := range vary {
		switch v {
		case "user-agent":
			ex.AddNote("VARY_USER_AGENT", nil)
		case "host":
			ex.AddNote("VARY_HOST", nil)
		}
	}
}

// checkContentRangeGate raises CONTENT_RANGE_MEANINGLESS when a
// Content-Range header shows up on a status other than 206/416, mirroring
// content_range.py's status-code gate.
func checkContentRangeGate(ex *ExchangeState, resp *HttpResponse) {
	if _, has := resp.ParsedHeaders["content-range"]; !has {
		return
	}
	if resp.StatusCode != "206" && resp.StatusCode != "416" {
		ex.AddNote("CONTENT_RANGE_MEANINGLESS", nil)
	}
}

// checkClockSkew computes skew = Date - start_time + Age and classifies it,
// mirroring cache.py's skew check: a large reported Age with a skew that
// would otherwise make the current age implausible is an AGE_PENALTY, an
// outright mismatch beyond tolerance is DATE_INCORRECT, otherwise DATE_CORRECT.
func checkClockSkew(cfg *Config, ex *ExchangeState, resp *HttpResponse, date, respTime time.Time, currentAge time.Duration) {
	tolerance := cfg.ClockSkewTolerance.Duration
	if tolerance <= 0 {
		tolerance = 5 * time.Second
	}

	var age time.Duration
	if ageHeader, hasAge := resp.ParsedHeaders["age"].(int64); hasAge {
		age = time.Duration(ageHeader) * time.Second
	}

	skew := date.Sub(respTime) + age
	absSkew := skew
	if absSkew < 0 {
		absSkew = -absSkew
	}

	switch {
	case age > tolerance && (currentAge-skew) < tolerance:
		ex.AddNote("AGE_PENALTY", nil)
	case absSkew > tolerance:
		ex.AddNote("DATE_INCORRECT", map[string]any{"clock_skew_string": skew.String()})
	default:
		ex.AddNote("DATE_CORRECT", nil)
	}
}

func computeCurrentAge(resp *HttpResponse, date time.Time, hasDate bool, respTime time.Time) time.Duration {
	ageHeader, hasAge := resp.ParsedHeaders["age"].(int64)
	var apparentAge time.Duration
	if hasDate {
		apparentAge = respTime.Sub(date)
		if apparentAge < 0 {
			apparentAge = 0
		}
	}
	var correctedAge time.Duration
	if hasAge {
		correctedAge = time.Duration(ageHeader) * time.Second
		if apparentAge > correctedAge {
			correctedAge = apparentAge
		}
	} else {
		correctedAge = apparentAge
	}
	return correctedAge
}

func checkFreshness(cfg *Config, ex *ExchangeState, resp *HttpResponse, cc CacheControl, date time.Time, hasDate, hasLM bool, lastModified time.Time, currentAge time.Duration, respTime time.Time) (time.Duration, Freshness) {
	var lifetime time.Duration
	haveLifetime := false

	if smaxage, ok := cc.intVal("s-maxage"); ok {
		lifetime = time.Duration(smaxage) * time.Second
		haveLifetime = true
	} else if maxage, ok := cc.intVal("max-age"); ok {
		lifetime = time.Duration(maxage) * time.Second
		haveLifetime = true
	} else if expires, ok := resp.ParsedHeaders["expires"].(time.Time); ok && hasDate {
		lifetime = expires.Sub(date)
		haveLifetime = true
	}

	if !haveLifetime {
		if hasLM && isHeuristicCacheableStatus(cfg, resp.StatusCode) {
			// RFC 7234 §4.2.2 heuristic: 10% of time since Last-Modified.
			age := respTime.Sub(lastModified) / 10
			ex.AddNote("FRESHNESS_HEURISTIC", map[string]any{"freshness_lifetime": age.String()})
			lifetime = age
			haveLifetime = true
		} else {
			ex.AddNote("FRESHNESS_NONE", nil)
			return 0, FreshnessNone
		}
	}

	if lifetime <= 0 {
		ex.AddNote("FRESHNESS_STALE_ALREADY", nil)
		return lifetime, FreshnessStale
	}
	if currentAge >= lifetime {
		ex.AddNote("FRESHNESS_STALE_CACHE", nil)
		return lifetime, FreshnessStale
	}
	ex.AddNote("FRESHNESS_FRESH", map[string]any{"freshness_left": (lifetime - currentAge).String()})
	return lifetime, FreshnessFresh
}

func checkRevalidation(ex *ExchangeState, res CachingResult) {
	switch {
	case res.Freshness == FreshnessFresh && res.MustRevalidate:
		ex.AddNote("FRESH_MUST_REVALIDATE", nil)
	case res.Freshness == FreshnessStale && res.MustRevalidate:
		ex.AddNote("STALE_MUST_REVALIDATE", nil)
	case res.Freshness == FreshnessFresh && res.ProxyRevalidate:
		ex.AddNote("FRESH_PROXY_REVALIDATE", nil)
	case res.Freshness == FreshnessStale && res.ProxyRevalidate:
		ex.AddNote("STALE_PROXY_REVALIDATE", nil)
	case res.Freshness == FreshnessFresh:
		ex.AddNote("FRESH_SERVABLE", nil)
	case res.Freshness == FreshnessStale:
		ex.AddNote("STALE_SERVABLE", nil)
	}
}
