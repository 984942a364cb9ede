// httpdate.go
package redcore

import (
	"strconv"
	"strings"
	"time"
)

// httpDateLayouts are the three date formats HTTP/1.1 permits, tried in
// the order RFC 7231 §7.1.1.1 recommends: the preferred IMF-fixdate, the
// obsolete RFC 850 format, and asctime. Grounded on
// redbot/message/headers/__init__.py's parse_date.
var httpDateLayouts = []string{
	time.RFC1123,             // Mon, 02 Jan 2006 15:04:05 GMT
	"Monday, 02-Jan-06 15:04:05 MST",
	time.ANSIC, // Mon Jan  2 15:04:05 2006
}

// parseHTTPDate parses an HTTP-date header value. The RFC 850 layout's
// two-digit year is disambiguated the way the original does: years below
// 69 are taken as 20xx, otherwise 19xx. fixTwoDigitYear applies that
// pivot to RFC 850 dates only; the four-digit years of the other layouts
// are kept as written.
func parseHTTPDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for i, layout := range httpDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			if i == 1 {
				t = fixTwoDigitYear(t)
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// fixTwoDigitYear re-applies the original's explicit pivot (<69 -> +2000,
// else +1900) on top of whatever Go's own two-digit-year heuristic
// produced, so behavior matches parse_date exactly regardless of Go
// stdlib version drift.
func fixTwoDigitYear(t time.Time) time.Time {
	y := t.Year()
	if y < 1900 || y >= 2000 {
		return t
	}
	twoDigit := y % 100
	var full int
	if twoDigit < 69 {
		full = 2000 + twoDigit
	} else {
		full = 1900 + twoDigit
	}
	if full == y {
		return t
	}
	return time.Date(full, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// formatHTTPDate renders t in the preferred IMF-fixdate form, used when
// active checks need to emit an If-Modified-Since header.
func formatHTTPDate(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
}

// parseDeltaSeconds parses a cache-control delta-seconds value: a
// non-negative decimal integer. Grounded on the pattern cache.py applies
// to max-age/s-maxage/stale-while-revalidate.
func parseDeltaSeconds(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
