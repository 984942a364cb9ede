// iri.go
package redcore

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// SetIRI normalizes a user-supplied IRI into the absolute URI actually
// put on the wire, encoding any non-ASCII host via IDNA and
// percent-encoding any non-ASCII byte, and any ASCII character not legal
// in that component, in the path, query, and fragment. Grounded on redbot/message/__init__.py's
// HttpRequest.set_iri / iri_to_uri.
func SetIRI(ex *ExchangeState, cfg *Config, iri string) (string, error) {
	iri = norm.NFC.String(iri)

	maxLen := cfg.MaxURILen
	if maxLen <= 0 {
		maxLen = 8000
	}
	if len(iri) > maxLen {
		ex.AddNote("URI_TOO_LONG", map[string]any{"uri_len": len(iri)})
	}

	u, err := url.Parse(iri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		ex.AddNote("URI_BAD_SYNTAX", nil)
		return "", fmt.Errorf("invalid URI: %s", iri)
	}

	host, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		ex.AddNote("URI_BAD_SYNTAX", nil)
		return "", fmt.Errorf("invalid IDN host %q: %w", u.Hostname(), err)
	}
	if port := u.Port(); port != "" {
		u.Host = host + ":" + port
	} else {
		u.Host = host
	}

	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteString(encodeIRIComponent(u.EscapedPath(), iriPathSafe))
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(encodeIRIComponent(u.RawQuery, iriQuerySafe))
	}
	if frag := u.EscapedFragment(); frag != "" {
		b.WriteByte('#')
		b.WriteString(encodeIRIComponent(frag, iriQuerySafe))
	}

	out := b.String()
	if len(out) > maxLen {
		ex.AddNote("URI_TOO_LONG", map[string]any{"uri_len": len(out)})
	}
	return out, nil
}

// iriPathSafe / iriQuerySafe name the ASCII characters that must pass
// through encodeIRIComponent untouched: RFC 3986 unreserved plus the
// sub-delims and structural characters legal in each URI component.
const (
	iriPathSafe  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~!$&'()*+,;=:@/%"
	iriQuerySafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~!$&'()*+,;=:@/?%"
)

// encodeIRIComponent percent-encodes every byte of s not present in
// safe, leaving existing %XX escapes alone. Mirrors iri_to_uri's
// component-wise UTF-8-then-percent-encode pass.
func encodeIRIComponent(s, safe string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
