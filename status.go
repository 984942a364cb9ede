// status.go
package redcore

// standardStatusCodes names every standard HTTP status code this checker
// knows about; deprecated and reserved codes are listed separately.
// Reconstructed from the STATUS_* note classes in redbot/speak.py, since
// redbot/message/status.py (referenced by fetch.py) wasn't present in
// the retrieved source.
var standardStatusCodes = map[string]bool{
	"100": true, "101": true, "102": true, "103": true,
	"200": true, "201": true, "202": true, "203": true, "204": true,
	"205": true, "206": true, "207": true, "208": true, "226": true,
	"300": true, "301": true, "302": true, "303": true, "304": true,
	"305": true, "307": true, "308": true,
	"400": true, "401": true, "402": true, "403": true, "404": true,
	"405": true, "406": true, "407": true, "408": true, "409": true,
	"410": true, "411": true, "412": true, "413": true, "414": true,
	"415": true, "416": true, "417": true, "418": true, "421": true,
	"422": true, "423": true, "424": true, "425": true, "426": true,
	"428": true, "429": true, "431": true, "451": true,
	"500": true, "501": true, "502": true, "503": true, "504": true,
	"505": true, "506": true, "507": true, "508": true, "510": true,
	"511": true,
}

var deprecatedStatusCodes = map[string]bool{
	"305": true, "306": true,
}

var reservedStatusCodes = map[string]bool{
	"306": true,
}

var statusNoteKind = map[string]string{
	"400": "STATUS_BAD_REQUEST",
	"403": "STATUS_FORBIDDEN",
	"404": "STATUS_NOT_FOUND",
	"406": "STATUS_NOT_ACCEPTABLE",
	"409": "STATUS_CONFLICT",
	"410": "STATUS_GONE",
	"413": "STATUS_REQUEST_ENTITY_TOO_LARGE",
	"414": "STATUS_URI_TOO_LONG",
	"415": "STATUS_UNSUPPORTED_MEDIA_TYPE",
	"500": "STATUS_INTERNAL_SERVICE_ERROR",
	"501": "STATUS_NOT_IMPLEMENTED",
	"502": "STATUS_BAD_GATEWAY",
	"503": "STATUS_SERVICE_UNAVAILABLE",
	"504": "STATUS_GATEWAY_TIMEOUT",
	"505": "STATUS_VERSION_NOT_SUPPORTED",
}

// redirectStatusCodes are 3xx codes that carry a Location to follow,
// excluding 304 (Not Modified) and 305 (Use Proxy, deprecated).
var redirectStatusCodes = map[string]bool{
	"300": true, "301": true, "302": true, "303": true, "307": true, "308": true,
}

// CheckStatus raises notes about the status line itself: whether it's
// reserved, deprecated, non-standard, or one of the codes with a
// dedicated note; plus the Location/method/safety cross-checks that
// depend on both the status and the request (100-continue, Upgrade,
// 201 Created, 3xx redirects).
func CheckStatus(ex *ExchangeState, req *HttpRequest, resp *HttpResponse) {
	status := resp.StatusCode

	if reservedStatusCodes[status] {
		ex.AddNote("STATUS_RESERVED", map[string]any{"status": status})
	} else if deprecatedStatusCodes[status] {
		ex.AddNote("STATUS_DEPRECATED", map[string]any{"status": status})
	} else if !standardStatusCodes[status] {
		ex.AddNote("STATUS_NONSTANDARD", map[string]any{"status": status})
	}

	if kind, ok := statusNoteKind[status]; ok {
		ex.AddNote(kind, map[string]any{"status": status})
	}

	_, hasLocation := resp.ParsedHeaders["location"]

	switch status {
	case "100":
		if _, expects := req.ParsedHeaders["expect"]; !expects {
			ex.AddNote("UNEXPECTED_CONTINUE", nil)
		}
	case "101":
		if _, upgradeAsked := req.ParsedHeaders["upgrade"]; !upgradeAsked {
			ex.AddNote("UPGRADE_NOT_REQUESTED", nil)
		}
	case "201":
		if req.Method == "GET" || req.Method == "HEAD" || req.Method == "OPTIONS" {
			ex.AddNote("CREATED_SAFE_METHOD", map[string]any{"method": req.Method})
		}
		if !hasLocation {
			ex.AddNote("CREATED_WITHOUT_LOCATION", nil)
		}
	default:
		if redirectStatusCodes[status] && !hasLocation {
			ex.AddNote("REDIRECT_WITHOUT_LOCATION", nil)
		}
	}
}
