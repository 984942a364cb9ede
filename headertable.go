// headertable.go
package redcore

import (
	"strconv"
	"strings"
)

// CacheControl is the canonicalized form of a (possibly repeated,
// possibly comma-joined) Cache-Control header: an ordered map of
// directive name to value (empty string for valueless directives like
// `no-cache`), plus the order the directives first appeared in. Chosen
// over a plain list per the mapping-vs-list open question: callers that
// need "does this directive exist" get map semantics, callers that need
// wire order (for display) get Order. Grounded on cache.py's parsing of
// response.parsed_headers['cache-control'].
type CacheControl struct {
	Directives map[string]string
	Order      []string
}

func (cc CacheControl) has(name string) bool {
	_, ok := cc.Directives[name]
	return ok
}

func (cc CacheControl) intVal(name string) (int64, bool) {
	v, ok := cc.Directives[name]
	if !ok {
		return 0, false
	}
	return parseDeltaSeconds(v)
}

// knownCacheControlDirectives is used only to detect miscapitalization
// (e.g. "No-Cache" instead of "no-cache"); any other-cased token simply
// isn't recognized as that directive. Grounded on cache.py's known_cc.
var knownCacheControlDirectives = []string{
	"no-cache", "no-store", "no-transform", "max-age", "max-stale",
	"min-fresh", "only-if-cached", "public", "private", "must-revalidate",
	"proxy-revalidate", "must-understand", "s-maxage", "stale-while-revalidate",
	"stale-if-error", "immutable",
}

func registerCacheControlHeader() {
	registerHeader(HeaderDef{
		CanonicalName: "Cache-Control",
		Role:          RoleRequestOrResponse,
		ListHeader:    true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			return splitString(raw, ','), true
		},
		Join: func(ex *ExchangeState, values []any) any {
			var rawPairs []ParsedParam
			for _, v := range values {
				segs, _ := v.([]string)
				for _, seg := range segs {
					seg = strings.TrimSpace(seg)
					if seg == "" {
						continue
					}
					name, val := seg, ""
					if eq := strings.IndexByte(seg, '='); eq >= 0 {
						name = seg[:eq]
						val = unquoteString(strings.TrimSpace(seg[eq+1:]))
					}
					rawPairs = append(rawPairs, ParsedParam{Name: name, Value: val})
				}
			}

			seenLower := make(map[string]int)
			for _, p := range rawPairs {
				lower := strings.ToLower(p.Name)
				seenLower[lower]++
				if p.Name != lower && containsFold(knownCacheControlDirectives, lower) {
					ex.AddNote("CC_MISCAP", map[string]any{"cc_directive": p.Name, "cc_lowercase": lower})
				}
			}
			for name, n := range seenLower {
				if n > 1 {
					ex.AddNote("CC_DUP", map[string]any{"cc_directive": name})
				}
			}

			cc := CacheControl{Directives: make(map[string]string)}
			for _, p := range rawPairs {
				lower := strings.ToLower(p.Name)
				if _, ok := cc.Directives[lower]; !ok {
					cc.Order = append(cc.Order, lower)
				}
				cc.Directives[lower] = p.Value
			}
			return cc
		},
	})
}

func containsFold(list []string, s string) bool {
	for _, l := range list {
		if strings.EqualFold(l, s) {
			return true
		}
	}
	return false
}

func parseInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func init() {
	registerCacheControlHeader()

	registerHeader(HeaderDef{
		CanonicalName: "Content-Length", Role: RoleRequestOrResponse, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return parseInt64(raw) },
	})

	registerHeader(HeaderDef{
		CanonicalName: "Content-MD5", Role: RoleRequestOrResponse, SingleValue: true,
	})

	registerHeader(HeaderDef{
		CanonicalName: "Date", Role: RoleRequestOrResponse, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			t, ok := parseHTTPDate(raw)
			if !ok {
				ex.AddNote("BAD_DATE_SYNTAX", map[string]any{"field_name": "Date"})
			}
			return t, ok
		},
	})
	registerHeader(HeaderDef{
		CanonicalName: "Expires", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			t, ok := parseHTTPDate(raw)
			if !ok {
				ex.AddNote("BAD_DATE_SYNTAX", map[string]any{"field_name": "Expires"})
			}
			return t, ok
		},
	})
	registerHeader(HeaderDef{
		CanonicalName: "Last-Modified", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			t, ok := parseHTTPDate(raw)
			if !ok {
				ex.AddNote("BAD_DATE_SYNTAX", map[string]any{"field_name": "Last-Modified"})
			}
			return t, ok
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "Age", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			n, ok := parseInt64(raw)
			if !ok {
				ex.AddNote("AGE_NOT_INT", nil)
				return nil, false
			}
			if n < 0 {
				ex.AddNote("AGE_NEGATIVE", nil)
				return nil, false
			}
			return n, true
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "ETag", Role: RoleResponseOnly, SingleValue: true,
	})

	registerHeader(HeaderDef{
		CanonicalName: "Content-Range", Role: RoleResponseOnly, SingleValue: true,
	})

	registerHeader(HeaderDef{
		CanonicalName: "Content-Transfer-Encoding", Role: RoleRequestOrResponse, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			ex.AddNote("CONTENT_TRANSFER_ENCODING", nil)
			return raw, true
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "MIME-Version", Role: RoleRequestOrResponse, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			ex.AddNote("MIME_VERSION", nil)
			return raw, true
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "Pragma", Role: RoleRequestOrResponse, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			for _, d := range splitString(raw, ',') {
				d = strings.ToLower(strings.TrimSpace(d))
				if d == "no-cache" {
					ex.AddNote("PRAGMA_NO_CACHE", nil)
				} else if d != "" {
					ex.AddNote("PRAGMA_OTHER", nil)
				}
			}
			return raw, true
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "Via", Role: RoleRequestOrResponse, ListHeader: true,
		Join: func(ex *ExchangeState, values []any) any {
			parts := make([]string, 0, len(values))
			for _, v := range values {
				parts = append(parts, v.(string))
			}
			joined := strings.Join(parts, ", ")
			if joined != "" {
				ex.AddNote("VIA_PRESENT", map[string]any{"via": joined})
			}
			return joined
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "Location", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			if !strings.Contains(raw, "://") {
				ex.AddNote("LOCATION_NOT_ABSOLUTE", map[string]any{"full_uri": raw})
			}
			return raw, true
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "Vary", Role: RoleResponseOnly, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true },
		Join: func(ex *ExchangeState, values []any) any {
			var names []string
			for _, v := range values {
				for _, s := range v.([]string) {
					s = strings.TrimSpace(s)
					if s != "" {
						names = append(names, strings.ToLower(s))
					}
				}
			}
			return names
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "Content-Encoding", Role: RoleResponseOnly, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true },
		Join: func(ex *ExchangeState, values []any) any {
			var codings []string
			for _, v := range values {
				for _, s := range v.([]string) {
					s = strings.ToLower(strings.TrimSpace(s))
					if s != "" {
						codings = append(codings, s)
					}
				}
			}
			return codings
		},
	})

	registerHeader(HeaderDef{
		CanonicalName: "Transfer-Encoding", Role: RoleRequestOrResponse, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true },
	})

	registerHeader(HeaderDef{CanonicalName: "Content-Type", Role: RoleRequestOrResponse, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "Content-Disposition", Role: RoleResponseOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "Content-Language", Role: RoleRequestOrResponse, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true }})

	registerHeader(HeaderDef{CanonicalName: "User-Agent", Role: RoleRequestOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "Server", Role: RoleResponseOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "Authorization", Role: RoleRequestOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "Proxy-Authenticate", Role: RoleResponseOnly, ListHeader: true})
	registerHeader(HeaderDef{CanonicalName: "Range", Role: RoleRequestOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "Accept-Ranges", Role: RoleResponseOnly, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true }})
	registerHeader(HeaderDef{CanonicalName: "If-Match", Role: RoleRequestOnly, ListHeader: true})
	registerHeader(HeaderDef{CanonicalName: "If-None-Match", Role: RoleRequestOnly, ListHeader: true})
	registerHeader(HeaderDef{CanonicalName: "If-Modified-Since", Role: RoleRequestOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "If-Unmodified-Since", Role: RoleRequestOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "If-Range", Role: RoleRequestOnly, SingleValue: true})
	registerHeader(HeaderDef{CanonicalName: "Connection", Role: RoleRequestOrResponse, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true }})
	registerHeader(HeaderDef{CanonicalName: "Upgrade", Role: RoleRequestOrResponse, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true }})

	registerHeader(HeaderDef{
		CanonicalName: "Set-Cookie2", Role: RoleResponseOnly, SingleValue: true,
		Deprecated: true, DeprecationRef: "RFC 2965",
	})

	registerHeader(HeaderDef{
		CanonicalName: "X-Frame-Options", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "deny":
				ex.AddNote("FRAME_OPTIONS_DENY", nil)
			case "sameorigin":
				ex.AddNote("FRAME_OPTIONS_SAMEORIGIN", nil)
			default:
				ex.AddNote("FRAME_OPTIONS_UNKNOWN", map[string]any{"value": raw})
			}
			return raw, true
		},
	})
	registerHeader(HeaderDef{
		CanonicalName: "X-Content-Type-Options", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			if strings.EqualFold(strings.TrimSpace(raw), "nosniff") {
				ex.AddNote("CONTENT_TYPE_OPTIONS", nil)
			} else {
				ex.AddNote("CONTENT_TYPE_OPTIONS_UNKNOWN", map[string]any{"value": raw})
			}
			return raw, true
		},
	})
	registerHeader(HeaderDef{
		CanonicalName: "X-Download-Options", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			if strings.EqualFold(strings.TrimSpace(raw), "noopen") {
				ex.AddNote("DOWNLOAD_OPTIONS", nil)
			} else {
				ex.AddNote("DOWNLOAD_OPTIONS_UNKNOWN", map[string]any{"value": raw})
			}
			return raw, true
		},
	})
	registerHeader(HeaderDef{
		CanonicalName: "X-XSS-Protection", Role: RoleResponseOnly, SingleValue: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) {
			v := strings.ToLower(strings.TrimSpace(raw))
			switch {
			case v == "0":
				ex.AddNote("XSS_PROTECTION_OFF", nil)
			case strings.Contains(v, "mode=block"):
				ex.AddNote("XSS_PROTECTION_BLOCK", nil)
			case strings.HasPrefix(v, "1"):
				ex.AddNote("XSS_PROTECTION_ON", nil)
			}
			return raw, true
		},
	})
	registerHeader(HeaderDef{
		CanonicalName: "X-UA-Compatible", Role: RoleResponseOnly, ListHeader: true,
		Parse: func(ex *ExchangeState, raw string) (any, bool) { return splitString(raw, ','), true },
		Join: func(ex *ExchangeState, values []any) any {
			targets := make(map[string]int)
			var all []string
			for _, v := range values {
				for _, d := range v.([]string) {
					d = strings.TrimSpace(d)
					if d == "" {
						continue
					}
					target := d
					if eq := strings.IndexByte(d, '='); eq >= 0 {
						target = d[:eq]
					}
					targets[strings.ToLower(target)]++
					all = append(all, d)
				}
			}
			ex.AddNote("UA_COMPATIBLE", nil)
			for _, n := range targets {
				if n > 1 {
					ex.AddNote("UA_COMPATIBLE_REPEAT", nil)
					break
				}
			}
			return all
		},
	})
}
