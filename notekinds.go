// notekinds.go
package redcore

// Every note kind the engine can emit, enumerated at package init time.
// Grounded on the matching `class FOO(Note)` definitions in
// redbot/speak.py; text is condensed from the original's long-form
// Markdown where a faithful shortening keeps the meaning.

func init() {
	registerGeneralNotes()
	registerHeaderGateNotes()
	registerParamNotes()
	registerMessageNotes()
	registerStatusNotes()
	registerCacheNotes()
	registerCacheFreshnessNotes()
	registerValidationNotes()
	registerRangeNotes()
	registerConnegNotes()
	registerHeaderModuleNotes()
}

func registerGeneralNotes() {
	registerNote(NoteKind{
		Name: "URI_TOO_LONG", Category: CategoryGeneral, Level: LevelWarn,
		SummaryTemplate: "The URI is very long (%(uri_len)s characters).",
		TextTemplate:    "Long URIs aren't supported by some implementations, including proxies. A reasonable upper size limit is 8000 characters.",
	})
	registerNote(NoteKind{
		Name: "URI_BAD_SYNTAX", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The URI's syntax isn't valid.",
		TextTemplate:    "This isn't a valid URI. Look for illegal characters and other problems; see RFC 3986 for more information.",
	})
	registerNote(NoteKind{
		Name: "REQUEST_HDR_IN_RESPONSE", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `"%(field_name)s" is a request header.`,
		TextTemplate:    "%(field_name)s is only defined to have meaning in requests; in responses, it doesn't have any meaning, so it was ignored.",
	})
	registerNote(NoteKind{
		Name: "RESPONSE_HDR_IN_REQUEST", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `"%(field_name)s" is a response header.`,
		TextTemplate:    "%(field_name)s is only defined to have meaning in responses; in requests, it doesn't have any meaning, so it was ignored.",
	})
	registerNote(NoteKind{
		Name: "FIELD_NAME_BAD_SYNTAX", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `"%(field_name)s" is not a valid header field-name.`,
		TextTemplate:    "Header names are limited to the TOKEN production in HTTP; they can't contain parenthesis, angle brackets or other non-token characters.",
	})
}

func registerHeaderGateNotes() {
	registerNote(NoteKind{
		Name: "HEADER_BLOCK_TOO_LARGE", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "%(response)s's headers are very large (%(header_block_size)s).",
		TextTemplate:    "Some implementations limit the total size of all response headers combined; large header blocks may fail.",
	})
	registerNote(NoteKind{
		Name: "HEADER_TOO_LARGE", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The %(header_name)s header is very large (%(header_size)s).",
		TextTemplate:    "Some implementations limit the size of any single header; this one is unusually large.",
	})
	registerNote(NoteKind{
		Name: "HEADER_NAME_ENCODING", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The %(header_name)s header's name isn't pure ASCII.",
		TextTemplate:    "HTTP header names are only defined to contain ASCII characters; this one was decoded permissively.",
	})
	registerNote(NoteKind{
		Name: "HEADER_VALUE_ENCODING", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The %(header_name)s header's value isn't pure ASCII.",
		TextTemplate:    "HTTP headers are only defined to contain ASCII characters; this one was decoded as ISO-8859-1 instead.",
	})
	registerNote(NoteKind{
		Name: "HEADER_DEPRECATED", Category: CategoryGeneral, Level: LevelWarn,
		SummaryTemplate: `The %(field_name)s header is deprecated.`,
		TextTemplate:    "See %(deprecation_ref)s for more information.",
	})
	registerNote(NoteKind{
		Name: "SINGLE_HEADER_REPEAT", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "Multiple %(field_name)s headers aren't allowed.",
		TextTemplate:    "This header is only allowed to occur once in a message; the last occurrence was used and the others discarded.",
	})
	registerNote(NoteKind{
		Name: "BAD_SYNTAX", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The %(field_name)s header's syntax isn't valid.",
		TextTemplate:    "See %(ref_uri)s for more information.",
	})
}

func registerParamNotes() {
	registerNote(NoteKind{
		Name: "PARAM_STAR_QUOTED", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `The "%(param)s" parameter's value can't be quoted.`,
		TextTemplate:    "Extended parameters (ending in `*`) can't have a quoted value.",
	})
	registerNote(NoteKind{
		Name: "PARAM_STAR_ERROR", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `The "%(param)s" parameter's extended syntax is incorrect.`,
		TextTemplate:    "Parameters ending in `*` need to have their value expressed as `charset'language'value`.",
	})
	registerNote(NoteKind{
		Name: "PARAM_STAR_BAD", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `The "%(param)s" parameter can't have an extended (RFC 5987) value.`,
		TextTemplate:    "This parameter can't use extended syntax.",
	})
	registerNote(NoteKind{
		Name: "PARAM_STAR_NOCHARSET", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `The "%(param)s" extended parameter didn't declare a charset.`,
		TextTemplate:    "A charset is required for extended (RFC 5987) parameter values.",
	})
	registerNote(NoteKind{
		Name: "PARAM_STAR_CHARSET", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `The "%(param)s" extended parameter uses an unsupported charset (%(enc)s).`,
		TextTemplate:    "Only `utf-8` is supported as an extended (RFC 5987) parameter charset.",
	})
	registerNote(NoteKind{
		Name: "PARAM_REPEATS", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: `The "%(param)s" parameter repeats.`,
		TextTemplate:    "This parameter should only occur once; the last occurrence was used.",
	})
	registerNote(NoteKind{
		Name: "PARAM_SINGLE_QUOTED", Category: CategoryGeneral, Level: LevelWarn,
		SummaryTemplate: `The "%(param)s" parameter is single-quoted.`,
		TextTemplate:    "Parameter values should be double-quoted, not single-quoted; the quotes were kept as part of the value (%(param_val)s, unquoted it would be %(param_val_unquoted)s).",
	})
}

func registerMessageNotes() {
	registerNote(NoteKind{
		Name: "BODY_NOT_ALLOWED", Category: CategoryConnection, Level: LevelBad,
		SummaryTemplate: "%(response)s wasn't allowed to have a body.",
		TextTemplate:    "HTTP forbids a body for this kind of exchange; the transport reported one anyway.",
	})
	registerNote(NoteKind{
		Name: "BAD_CHUNK", Category: CategoryConnection, Level: LevelBad,
		SummaryTemplate: "%(response)s had a problem with its chunked encoding.",
		TextTemplate:    "Chunked encoding wasn't formed correctly around `%(chunk_sample)s`.",
	})
	registerNote(NoteKind{
		Name: "BAD_GZIP", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "%(response)s was advertised as being gzip-encoded, but wasn't.",
		TextTemplate:    "The gzip header couldn't be parsed: %(gzip_error)s.",
	})
	registerNote(NoteKind{
		Name: "BAD_ZLIB", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "%(response)s didn't parse as gzip after %(ok_zlib_len)s bytes.",
		TextTemplate:    "The deflate stream failed: %(zlib_error)s. The chunk around the failure was `%(chunk_sample)s`.",
	})
	registerNote(NoteKind{
		Name: "BAD_DATE_SYNTAX", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The %(field_name)s header's value isn't a valid date.",
		TextTemplate:    "HTTP dates have a very specific syntax; this value didn't conform to it.",
	})
	registerNote(NoteKind{
		Name: "CL_CORRECT", Category: CategoryGeneral, Level: LevelGood,
		SummaryTemplate: "The Content-Length header is correct.",
		TextTemplate:    "The Content-Length header matches the size of the body that was sent.",
	})
	registerNote(NoteKind{
		Name: "CL_INCORRECT", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "%(response)s's Content-Length doesn't match the body it sent.",
		TextTemplate:    "%(response)s's body was %(body_length)s bytes long; the declared Content-Length didn't match.",
	})
	registerNote(NoteKind{
		Name: "CMD5_CORRECT", Category: CategoryGeneral, Level: LevelGood,
		SummaryTemplate: "The Content-MD5 header is correct.",
		TextTemplate:    "The Content-MD5 header's checksum matches the body that was sent.",
	})
	registerNote(NoteKind{
		Name: "CMD5_INCORRECT", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The Content-MD5 header doesn't match the body.",
		TextTemplate:    "The calculated checksum was %(calc_md5)s, which doesn't match the declared Content-MD5.",
	})
}

func registerValidationNotes() {
	registerNote(NoteKind{
		Name: "ETAG_SUBREQ_PROBLEM", Category: CategoryValidation, Level: LevelBad,
		SummaryTemplate: "There was a problem checking for ETag validation support: %(problem)s.",
		TextTemplate:    "The ETag validation probe couldn't be completed.",
	})
	registerNote(NoteKind{
		Name: "INM_304", Category: CategoryValidation, Level: LevelGood,
		SummaryTemplate: "If-None-Match conditional requests are supported.",
		TextTemplate:    "A conditional request with If-None-Match based on the ETag returned a 304 Not Modified.",
	})
	registerNote(NoteKind{
		Name: "INM_FULL", Category: CategoryValidation, Level: LevelBad,
		SummaryTemplate: "If-None-Match conditional requests don't seem to be supported.",
		TextTemplate:    "A conditional request using If-None-Match returned a full, identical response rather than a 304.",
	})
	registerNote(NoteKind{
		Name: "INM_DUP_ETAG_WEAK", Category: CategoryValidation, Level: LevelWarn,
		SummaryTemplate: "The weak ETag doesn't change even though the content does.",
		TextTemplate:    "Weak ETags are allowed to be shared between different representations, so this isn't an error, but it does limit their usefulness for cache validation.",
	})
	registerNote(NoteKind{
		Name: "INM_DUP_ETAG_STRONG", Category: CategoryValidation, Level: LevelBad,
		SummaryTemplate: "The strong ETag %(etag)s doesn't change even though the content does.",
		TextTemplate:    "A strong ETag is supposed to change whenever the representation's bytes change.",
	})
	registerNote(NoteKind{
		Name: "INM_UNKNOWN", Category: CategoryValidation, Level: LevelInfo,
		SummaryTemplate: "The If-None-Match validation returned a different ETag.",
		TextTemplate:    "This could indicate the resource changed between the two requests.",
	})
	registerNote(NoteKind{
		Name: "INM_STATUS", Category: CategoryValidation, Level: LevelInfo,
		SummaryTemplate: "An If-None-Match conditional request returned a %(inm_status)s status.",
		TextTemplate:    "The conditional request's status code (%(enc_inm_status)s) didn't match the base response's, so its support couldn't be determined conclusively.",
	})
	registerNote(NoteKind{
		Name: "MISSING_HDRS_304", Category: CategoryValidation, Level: LevelWarn,
		SummaryTemplate: "The %(subreq_type)s response is missing required headers.",
		TextTemplate:    "A 304 response needs to repeat any of these headers that were in the original: %(missing_hdrs)s.",
	})
	registerNote(NoteKind{
		Name: "LM_SUBREQ_PROBLEM", Category: CategoryValidation, Level: LevelBad,
		SummaryTemplate: "There was a problem checking for Last-Modified validation support: %(problem)s.",
		TextTemplate:    "The Last-Modified validation probe couldn't be completed.",
	})
	registerNote(NoteKind{
		Name: "IMS_304", Category: CategoryValidation, Level: LevelGood,
		SummaryTemplate: "If-Modified-Since conditional requests are supported.",
		TextTemplate:    "A conditional request with If-Modified-Since based on Last-Modified returned a 304 Not Modified.",
	})
	registerNote(NoteKind{
		Name: "IMS_FULL", Category: CategoryValidation, Level: LevelBad,
		SummaryTemplate: "If-Modified-Since conditional requests don't seem to be supported.",
		TextTemplate:    "A conditional request using If-Modified-Since returned a full, identical response rather than a 304.",
	})
	registerNote(NoteKind{
		Name: "IMS_UNKNOWN", Category: CategoryValidation, Level: LevelInfo,
		SummaryTemplate: "An If-Modified-Since conditional request returned a different body.",
		TextTemplate:    "This could indicate the resource changed between the two requests.",
	})
	registerNote(NoteKind{
		Name: "IMS_STATUS", Category: CategoryValidation, Level: LevelInfo,
		SummaryTemplate: "An If-Modified-Since conditional request returned a %(ims_status)s status.",
		TextTemplate:    "The conditional request's status code (%(enc_ims_status)s) didn't match the base response's, so its support couldn't be determined conclusively.",
	})
}

func registerRangeNotes() {
	registerNote(NoteKind{
		Name: "RANGE_SUBREQ_PROBLEM", Category: CategoryRange, Level: LevelBad,
		SummaryTemplate: "There was a problem checking for Range support: %(problem)s.",
		TextTemplate:    "The range probe couldn't be completed.",
	})
	registerNote(NoteKind{
		Name: "RANGE_CORRECT", Category: CategoryRange, Level: LevelGood,
		SummaryTemplate: "A ranged request returned the correct partial content.",
		TextTemplate:    "This response supports range requests, and the bytes returned matched what was asked for.",
	})
	registerNote(NoteKind{
		Name: "RANGE_INCORRECT", Category: CategoryRange, Level: LevelBad,
		SummaryTemplate: "A ranged request returned partial content that didn't match.",
		TextTemplate:    "Expected `%(range_expected)s` but received `%(range_received)s`.",
	})
	registerNote(NoteKind{
		Name: "RANGE_CHANGED", Category: CategoryRange, Level: LevelWarn,
		SummaryTemplate: "A ranged request returned partial content that appears to come from a changed representation.",
		TextTemplate:    "The base response and the range response didn't agree on a validator, so the range couldn't be checked for correctness.",
	})
	registerNote(NoteKind{
		Name: "RANGE_FULL", Category: CategoryRange, Level: LevelWarn,
		SummaryTemplate: "A ranged request returned the full response.",
		TextTemplate:    "Range requests don't appear to be supported; the full representation was returned instead of a partial one.",
	})
	registerNote(NoteKind{
		Name: "RANGE_STATUS", Category: CategoryRange, Level: LevelInfo,
		SummaryTemplate: "A ranged request returned a %(range_status)s status.",
		TextTemplate:    "The range request's status code didn't match the base response's 206/200, so its support couldn't be determined conclusively.",
	})
	registerNote(NoteKind{
		Name: "MISSING_HDRS_206", Category: CategoryRange, Level: LevelWarn,
		SummaryTemplate: "The 206 Partial Content response is missing required headers.",
		TextTemplate:    "A 206 response should repeat: %(missing_hdrs)s.",
	})
}

func registerConnegNotes() {
	registerNote(NoteKind{
		Name: "CONNEG_SUBREQ_PROBLEM", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "There was a problem checking for content negotiation support: %(problem)s.",
		TextTemplate:    "The content-negotiation probe couldn't be completed.",
	})
	registerNote(NoteKind{
		Name: "CONNEG_GZIP_GOOD", Category: CategoryContentNegotiation, Level: LevelGood,
		SummaryTemplate: "Content negotiation for gzip compression is supported, saving %(gzip_savings)s%%.",
		TextTemplate:    "Asking for gzip produced a smaller response, and the headers indicated it correctly.",
	})
	registerNote(NoteKind{
		Name: "CONNEG_GZIP_BAD", Category: CategoryContentNegotiation, Level: LevelWarn,
		SummaryTemplate: "Compression isn't helping for this resource.",
		TextTemplate:    "The gzip-compressed response wasn't meaningfully smaller than the uncompressed one.",
	})
	registerNote(NoteKind{
		Name: "CONNEG_NO_GZIP", Category: CategoryContentNegotiation, Level: LevelInfo,
		SummaryTemplate: "Content negotiation for gzip compression isn't supported.",
		TextTemplate:    "Asking for gzip encoding didn't produce a gzip-encoded response.",
	})
	registerNote(NoteKind{
		Name: "CONNEG_NO_VARY", Category: CategoryContentNegotiation, Level: LevelWarn,
		SummaryTemplate: "%(response)s doesn't have a Vary header for compression.",
		TextTemplate:    "Since this response negotiates on Accept-Encoding, it should include `Accept-Encoding` in its Vary header so that caches store it correctly.",
	})
	registerNote(NoteKind{
		Name: "CONNEG_GZIP_WITHOUT_ASKING", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "A gzip-encoded response was returned even though it wasn't asked for.",
		TextTemplate:    "The uncompressed baseline request didn't ask for gzip, but got a gzip-encoded response anyway.",
	})
	registerNote(NoteKind{
		Name: "VARY_INCONSISTENT", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "Asking for the same resource without compression gave inconsistent results.",
		TextTemplate:    "The content negotiation probe and the base response disagreed on more than encoding.",
	})
	registerNote(NoteKind{
		Name: "VARY_STATUS_MISMATCH", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "The uncompressed response's status code didn't match.",
		TextTemplate:    "Requesting without Accept-Encoding produced a different status code than the base response.",
	})
	registerNote(NoteKind{
		Name: "VARY_HEADER_MISMATCH", Category: CategoryContentNegotiation, Level: LevelWarn,
		SummaryTemplate: "The uncompressed response's headers didn't match.",
		TextTemplate:    "Headers other than Content-Encoding and its dependents differed between the two responses.",
	})
	registerNote(NoteKind{
		Name: "VARY_BODY_MISMATCH", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "The content varies, even after accounting for compression.",
		TextTemplate:    "The decoded bodies of the two responses didn't match.",
	})
	registerNote(NoteKind{
		Name: "VARY_ETAG_DOESNT_CHANGE", Category: CategoryContentNegotiation, Level: LevelBad,
		SummaryTemplate: "The ETag doesn't change between negotiated representations.",
		TextTemplate:    "Since the content differs between the compressed and uncompressed variants, they should have different (strong) ETags.",
	})
}

func registerStatusNotes() {
	registerNote(NoteKind{
		Name: "STATUS_DEPRECATED", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The %(status)s status code is deprecated.",
		TextTemplate:    "This status code is no longer recommended for use.",
	})
	registerNote(NoteKind{
		Name: "STATUS_RESERVED", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The %(status)s status code is reserved.",
		TextTemplate:    "This status code is reserved for future use and shouldn't appear in a response.",
	})
	registerNote(NoteKind{
		Name: "STATUS_NONSTANDARD", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "%(status)s is not a standard HTTP status code.",
		TextTemplate:    "Clients won't know how to handle a non-standard status code; it'll likely be treated according to its first digit.",
	})
	registerNote(NoteKind{
		Name: "STATUS_BAD_REQUEST", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The server didn't understand the request.",
		TextTemplate:    "A 400 status code was returned, indicating the request couldn't be understood.",
	})
	registerNote(NoteKind{
		Name: "STATUS_FORBIDDEN", Category: CategoryGeneral, Level: LevelInfo,
		SummaryTemplate: "Access to the resource is forbidden.",
		TextTemplate:    "A 403 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_NOT_FOUND", Category: CategoryGeneral, Level: LevelInfo,
		SummaryTemplate: "The resource couldn't be found.",
		TextTemplate:    "A 404 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_NOT_ACCEPTABLE", Category: CategoryContentNegotiation, Level: LevelInfo,
		SummaryTemplate: "No acceptable representation was available.",
		TextTemplate:    "A 406 status code was returned; content negotiation couldn't find a representation matching the request's Accept headers.",
	})
	registerNote(NoteKind{
		Name: "STATUS_CONFLICT", Category: CategoryGeneral, Level: LevelInfo,
		SummaryTemplate: "The request conflicts with the resource's current state.",
		TextTemplate:    "A 409 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_GONE", Category: CategoryGeneral, Level: LevelInfo,
		SummaryTemplate: "The resource is gone permanently.",
		TextTemplate:    "A 410 status code was returned, indicating the resource used to exist but has been permanently removed.",
	})
	registerNote(NoteKind{
		Name: "STATUS_REQUEST_ENTITY_TOO_LARGE", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The request body was too large.",
		TextTemplate:    "A 413 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_URI_TOO_LONG", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The request URI was too long for the server.",
		TextTemplate:    "A 414 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_UNSUPPORTED_MEDIA_TYPE", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The request's media type isn't supported by the server.",
		TextTemplate:    "A 415 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_INTERNAL_SERVICE_ERROR", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "There was an internal server error.",
		TextTemplate:    "A 500 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_NOT_IMPLEMENTED", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The server doesn't support the functionality needed to fulfil the request.",
		TextTemplate:    "A 501 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_BAD_GATEWAY", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "An intermediary encountered an error.",
		TextTemplate:    "A 502 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_SERVICE_UNAVAILABLE", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The server is temporarily unavailable.",
		TextTemplate:    "A 503 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_GATEWAY_TIMEOUT", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "An intermediary timed out.",
		TextTemplate:    "A 504 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "STATUS_VERSION_NOT_SUPPORTED", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "The request's HTTP version isn't supported.",
		TextTemplate:    "A 505 status code was returned.",
	})
	registerNote(NoteKind{
		Name: "UNEXPECTED_CONTINUE", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "A 100 Continue response was sent when it wasn't expected.",
		TextTemplate:    "100 Continue should only be sent when the request carried an Expect: 100-continue header.",
	})
	registerNote(NoteKind{
		Name: "UPGRADE_NOT_REQUESTED", Category: CategoryConnection, Level: LevelBad,
		SummaryTemplate: "A 101 Switching Protocols response was sent when no Upgrade was requested.",
		TextTemplate:    "A 101 response should only follow a request that included an Upgrade header.",
	})
	registerNote(NoteKind{
		Name: "CREATED_SAFE_METHOD", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "A 201 Created response was returned for a safe method (%(method)s).",
		TextTemplate:    "201 Created indicates a new resource was made, but %(method)s is defined to be safe and shouldn't have side effects.",
	})
	registerNote(NoteKind{
		Name: "CREATED_WITHOUT_LOCATION", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "A 201 Created response didn't include a Location header.",
		TextTemplate:    "201 Created responses should identify the newly created resource with a Location header.",
	})
	registerNote(NoteKind{
		Name: "REDIRECT_WITHOUT_LOCATION", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "This redirect didn't include a Location header.",
		TextTemplate:    "3xx responses (other than 304 and 305) need a Location header to tell the client where to go.",
	})
}

func registerHeaderModuleNotes() {
	registerNote(NoteKind{
		Name: "AGE_NOT_INT", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "The Age header's value should be an integer.",
		TextTemplate:    "Age is defined as an integer number of seconds.",
	})
	registerNote(NoteKind{
		Name: "AGE_NEGATIVE", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "The Age header's value must be a positive integer.",
		TextTemplate:    "Age can't be negative; it represents an elapsed duration.",
	})
	registerNote(NoteKind{
		Name: "CONTENT_TRANSFER_ENCODING", Category: CategoryGeneral, Level: LevelWarn,
		SummaryTemplate: "Content-Transfer-Encoding is a MIME header, not a HTTP header.",
		TextTemplate:    "Content-Transfer-Encoding isn't necessary in HTTP; it's an artefact of using MIME tooling to generate the message.",
	})
	registerNote(NoteKind{
		Name: "MIME_VERSION", Category: CategoryGeneral, Level: LevelWarn,
		SummaryTemplate: "MIME-Version is a MIME header, not a HTTP header.",
		TextTemplate:    "MIME-Version isn't necessary in HTTP; it's an artefact of using MIME tooling to generate the message.",
	})
	registerNote(NoteKind{
		Name: "PRAGMA_NO_CACHE", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "Pragma: no-cache is a request directive, not a response one.",
		TextTemplate:    "Pragma: no-cache in a response has no defined meaning; use Cache-Control: no-cache instead.",
	})
	registerNote(NoteKind{
		Name: "PRAGMA_OTHER", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "The Pragma header is being used in a non-standard way.",
		TextTemplate:    "Pragma only has one standardised directive, no-cache; other directives have no defined meaning.",
	})
	registerNote(NoteKind{
		Name: "VIA_PRESENT", Category: CategoryGeneral, Level: LevelInfo,
		SummaryTemplate: "This response was forwarded by one or more intermediaries.",
		TextTemplate:    "Via: %(via)s.",
	})
	registerNote(NoteKind{
		Name: "LOCATION_UNDEFINED", Category: CategoryGeneral, Level: LevelWarn,
		SummaryTemplate: "%(response)s doesn't define any meaning for the Location header.",
		TextTemplate:    "Location has a defined meaning only for specific status codes (e.g. 201 and 3xx redirects).",
	})
	registerNote(NoteKind{
		Name: "LOCATION_NOT_ABSOLUTE", Category: CategoryGeneral, Level: LevelInfo,
		SummaryTemplate: "The Location header contains a relative URI.",
		TextTemplate:    "Location was originally specified to contain an absolute URI. The resolved absolute URI is probably `%(full_uri)s`.",
	})
	registerNote(NoteKind{
		Name: "CONTENT_TYPE_OPTIONS", Category: CategorySecurity, Level: LevelInfo,
		SummaryTemplate: "This response opts out of MIME-sniffing.",
		TextTemplate:    "X-Content-Type-Options: nosniff tells some browsers not to guess the content's media type.",
	})
	registerNote(NoteKind{
		Name: "CONTENT_TYPE_OPTIONS_UNKNOWN", Category: CategorySecurity, Level: LevelWarn,
		SummaryTemplate: "Unknown X-Content-Type-Options value %(value)s.",
		TextTemplate:    "The only defined value for X-Content-Type-Options is `nosniff`.",
	})
	registerNote(NoteKind{
		Name: "DOWNLOAD_OPTIONS", Category: CategorySecurity, Level: LevelInfo,
		SummaryTemplate: "This response tells Internet Explorer not to open downloads directly.",
		TextTemplate:    "X-Download-Options: noopen forces a save dialog for downloads instead of allowing them to open in the browser's context.",
	})
	registerNote(NoteKind{
		Name: "DOWNLOAD_OPTIONS_UNKNOWN", Category: CategorySecurity, Level: LevelWarn,
		SummaryTemplate: "Unknown X-Download-Options value %(value)s.",
		TextTemplate:    "The only defined value for X-Download-Options is `noopen`.",
	})
	registerNote(NoteKind{
		Name: "FRAME_OPTIONS_DENY", Category: CategorySecurity, Level: LevelInfo,
		SummaryTemplate: "This response can't be framed.",
		TextTemplate:    "X-Frame-Options: deny prevents this response from being displayed in a frame at all.",
	})
	registerNote(NoteKind{
		Name: "FRAME_OPTIONS_SAMEORIGIN", Category: CategorySecurity, Level: LevelInfo,
		SummaryTemplate: "This response can only be framed by same-origin content.",
		TextTemplate:    "X-Frame-Options: sameorigin restricts framing to pages from the same origin.",
	})
	registerNote(NoteKind{
		Name: "FRAME_OPTIONS_UNKNOWN", Category: CategorySecurity, Level: LevelWarn,
		SummaryTemplate: "Unknown X-Frame-Options value %(value)s.",
		TextTemplate:    "Defined values are `deny` and `sameorigin`.",
	})
	registerNote(NoteKind{
		Name: "XSS_PROTECTION_ON", Category: CategorySecurity, Level: LevelInfo,
		SummaryTemplate: "This response enables a browser's XSS filter.",
		TextTemplate:    "X-XSS-Protection: 1 turns on the browser's reflected-XSS filter.",
	})
	registerNote(NoteKind{
		Name: "XSS_PROTECTION_OFF", Category: CategorySecurity, Level: LevelWarn,
		SummaryTemplate: "This response disables a browser's XSS filter.",
		TextTemplate:    "X-XSS-Protection: 0 turns off the browser's reflected-XSS filter.",
	})
	registerNote(NoteKind{
		Name: "XSS_PROTECTION_BLOCK", Category: CategorySecurity, Level: LevelInfo,
		SummaryTemplate: "This response blocks the page entirely when an XSS attack is detected.",
		TextTemplate:    "X-XSS-Protection's `mode=block` replaces the page content rather than trying to sanitise it.",
	})
	registerNote(NoteKind{
		Name: "UA_COMPATIBLE", Category: CategoryGeneral, Level: LevelInfo,
		SummaryTemplate: "%(response)s explicitly sets a rendering mode for Internet Explorer 8.",
		TextTemplate:    "X-UA-Compatible sets the IE8 compatibility mode used to render this page.",
	})
	registerNote(NoteKind{
		Name: "UA_COMPATIBLE_REPEAT", Category: CategoryGeneral, Level: LevelBad,
		SummaryTemplate: "%(response)s has multiple X-UA-Compatible directives targeted at the same UA.",
		TextTemplate:    "More than one directive targeting the same browser may cause unpredictable results.",
	})
}

func registerCacheNotes() {
	registerNote(NoteKind{
		Name: "CC_DUP", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: `The "%(cc_directive)s" Cache-Control directive appears more than once.`,
		TextTemplate:    "This directive should only occur once in a Cache-Control header; repeats may be ignored by caches.",
	})
	registerNote(NoteKind{
		Name: "CC_MISCAP", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: `The "%(cc_directive)s" Cache-Control directive's case is non-standard.`,
		TextTemplate:    "Cache-Control directives are case-insensitive in theory, but the standard form is lower-case (%(cc_lowercase)s); some implementations may not recognise other cases.",
	})
	registerNote(NoteKind{
		Name: "LM_FUTURE", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "The Last-Modified time is in the future.",
		TextTemplate:    "Last-Modified is supposed to be in the past; a future value isn't meaningful and suggests a clock problem on the server.",
	})
	registerNote(NoteKind{
		Name: "LM_PRESENT", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "The resource last changed %(last_modified_string)s.",
		TextTemplate:    "The Last-Modified header indicates the time this representation was last changed.",
	})
	registerNote(NoteKind{
		Name: "METHOD_UNCACHEABLE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "Responses to %(method)s aren't cacheable.",
		TextTemplate:    "This request's method isn't one that's defined as cacheable, so the response won't be stored regardless of its headers.",
	})
	registerNote(NoteKind{
		Name: "NO_STORE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "%(response)s can't be stored by a cache.",
		TextTemplate:    "The no-store directive indicates that this response shouldn't be stored at all, in any cache.",
	})
	registerNote(NoteKind{
		Name: "PRIVATE_CC", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "%(response)s only allows a private cache to store it.",
		TextTemplate:    "The private directive indicates that the response is intended for a single user and shouldn't be stored by a shared cache.",
	})
	registerNote(NoteKind{
		Name: "PRIVATE_AUTH", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "%(response)s only allows a private cache to store it, because the request was authenticated.",
		TextTemplate:    "Responses to authenticated (e.g. Authorization) requests can't be stored by a shared cache unless Cache-Control explicitly allows it.",
	})
	registerNote(NoteKind{
		Name: "STOREABLE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "%(response)s allows all caches to store it.",
		TextTemplate:    "A shared (and private) cache can store this response and reuse it for later requests.",
	})
	registerNote(NoteKind{
		Name: "PUBLIC", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "%(response)s contains an explicit public directive.",
		TextTemplate:    "Public is mostly only useful to make an authenticated response cacheable; otherwise it has no real effect.",
	})
	registerNote(NoteKind{
		Name: "NO_CACHE_NO_VALIDATOR", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "%(response)s can be stored, but must be re-validated every time, and has no validator.",
		TextTemplate:    "The no-cache directive means a cache can't serve this response without revalidating it, but there's no Last-Modified or ETag to revalidate it with.",
	})
	registerNote(NoteKind{
		Name: "NO_CACHE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "%(response)s can be stored, but must be re-validated every time.",
		TextTemplate:    "The no-cache directive means a cache can store this response, but must check back with the origin server on every reuse.",
	})
	registerNote(NoteKind{
		Name: "CHECK_SINGLE", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "Only one of pre-check/post-check should be used.",
		TextTemplate:    "pre-check and post-check are only meaningful as a pair.",
	})
	registerNote(NoteKind{
		Name: "CHECK_NOT_INTEGER", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "The pre-check/post-check values aren't integers.",
		TextTemplate:    "Both pre-check and post-check must be non-negative integers.",
	})
	registerNote(NoteKind{
		Name: "CHECK_ALL_ZERO", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "The pre-check/post-check directives are both zero, so they have no effect.",
		TextTemplate:    "pre-check=0 and post-check=0 are the default, and don't do anything.",
	})
	registerNote(NoteKind{
		Name: "CHECK_POST_BIGGER", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "post-check is bigger than pre-check, so it has no effect.",
		TextTemplate:    "post-check should be smaller than or equal to pre-check for the directive to have any effect.",
	})
	registerNote(NoteKind{
		Name: "CHECK_POST_ZERO", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "post-check is zero, so the response is considered stale immediately.",
		TextTemplate:    "A post-check value of 0 makes the cached response stale right away.",
	})
	registerNote(NoteKind{
		Name: "CHECK_POST_PRE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "This response can be used in its original form until %(post_check)s seconds have passed, and in a stale form for %(pre_check)s more.",
		TextTemplate:    "pre-check/post-check are proprietary Internet Explorer directives with this effect.",
	})
	registerNote(NoteKind{
		Name: "VARY_ASTERISK", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "Vary: * effectively makes this response uncacheable.",
		TextTemplate:    "Vary: * means every request is considered different, so a cache can never reuse a stored response.",
	})
	registerNote(NoteKind{
		Name: "VARY_COMPLEX", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "This response varies on %(vary_count)s headers.",
		TextTemplate:    "Varying on a large number of request headers makes it unlikely a cache will see matching requests often enough to be useful.",
	})
	registerNote(NoteKind{
		Name: "VARY_USER_AGENT", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "This response varies on User-Agent.",
		TextTemplate:    "Because User-Agent strings are so varied between browsers, varying on it fragments the cache badly.",
	})
	registerNote(NoteKind{
		Name: "VARY_HOST", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "This response varies on Host.",
		TextTemplate:    "Varying on Host is usually unnecessary, since the URI already identifies the origin.",
	})
}

func registerCacheFreshnessNotes() {
	registerNote(NoteKind{
		Name: "CURRENT_AGE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "The response is %(current_age)s old.",
		TextTemplate:    "The current age is calculated from the Date and Age headers and the time the response was received.",
	})
	registerNote(NoteKind{
		Name: "DATE_CLOCKLESS", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "%(response)s doesn't have a Date header.",
		TextTemplate:    "Without a Date header, caches can't calculate the response's age.",
	})
	registerNote(NoteKind{
		Name: "DATE_CLOCKLESS_BAD_HDR", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "Responses without a Date header can't have Expires or Last-Modified values checked for clock skew.",
		TextTemplate:    "Since there's no Date to compare against, clock skew in Expires/Last-Modified can't be detected.",
	})
	registerNote(NoteKind{
		Name: "AGE_PENALTY", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "It appears that the Date header was incorrect and has been corrected for clock skew.",
		TextTemplate:    "The apparent age (using the local clock) was negative, so the response's Date was used to estimate the correct clock skew.",
	})
	registerNote(NoteKind{
		Name: "DATE_INCORRECT", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "The server's clock is %(clock_skew_string)s.",
		TextTemplate:    "The server's Date header differs from the time the response was received by more than the allowed clock skew tolerance.",
	})
	registerNote(NoteKind{
		Name: "DATE_CORRECT", Category: CategoryCaching, Level: LevelGood,
		SummaryTemplate: "The server's clock is correct.",
		TextTemplate:    "The server's Date header is within the allowed clock skew tolerance of the time the response was received.",
	})
	registerNote(NoteKind{
		Name: "FRESHNESS_FRESH", Category: CategoryCaching, Level: LevelGood,
		SummaryTemplate: "%(response)s is fresh until %(freshness_left)s from now.",
		TextTemplate:    "A cache can serve this response without checking back with the origin server until it becomes stale.",
	})
	registerNote(NoteKind{
		Name: "FRESHNESS_STALE_CACHE", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "%(response)s has already become stale.",
		TextTemplate:    "This response's freshness lifetime has already elapsed, by the time it was received.",
	})
	registerNote(NoteKind{
		Name: "FRESHNESS_STALE_ALREADY", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "%(response)s is already stale.",
		TextTemplate:    "The computed freshness lifetime is zero or negative, so this response is stale as soon as it's received.",
	})
	registerNote(NoteKind{
		Name: "FRESHNESS_HEURISTIC", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "%(response)s allows 'heuristic freshness' to be used, for %(freshness_lifetime)s.",
		TextTemplate:    "Since no explicit freshness lifetime was given, caches may estimate one from the Last-Modified date.",
	})
	registerNote(NoteKind{
		Name: "FRESHNESS_NONE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "%(response)s can't be cached without being re-validated every time.",
		TextTemplate:    "There's no freshness information at all, so a cache has nothing to determine a freshness lifetime with.",
	})
	registerNote(NoteKind{
		Name: "FRESH_MUST_REVALIDATE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "This response must be revalidated once stale.",
		TextTemplate:    "The must-revalidate directive means a stale response can't be served without checking with the origin server first.",
	})
	registerNote(NoteKind{
		Name: "STALE_MUST_REVALIDATE", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "This stale response must be revalidated before being served again.",
		TextTemplate:    "Since the response is already stale and carries must-revalidate, a cache can't serve it without checking first.",
	})
	registerNote(NoteKind{
		Name: "FRESH_PROXY_REVALIDATE", Category: CategoryCaching, Level: LevelInfo,
		SummaryTemplate: "This response must be revalidated by shared caches once stale.",
		TextTemplate:    "proxy-revalidate behaves like must-revalidate, but only for shared caches; private caches may still serve it stale.",
	})
	registerNote(NoteKind{
		Name: "STALE_PROXY_REVALIDATE", Category: CategoryCaching, Level: LevelBad,
		SummaryTemplate: "This stale response must be revalidated by shared caches before being served again.",
		TextTemplate:    "Since the response is stale and carries proxy-revalidate, a shared cache can't serve it without checking first.",
	})
	registerNote(NoteKind{
		Name: "FRESH_SERVABLE", Category: CategoryCaching, Level: LevelGood,
		SummaryTemplate: "This response is fresh and can be served as-is.",
		TextTemplate:    "No revalidation directive applies, so a cache may serve this response until it becomes stale.",
	})
	registerNote(NoteKind{
		Name: "STALE_SERVABLE", Category: CategoryCaching, Level: LevelWarn,
		SummaryTemplate: "This stale response may still be served.",
		TextTemplate:    "Neither must-revalidate nor proxy-revalidate applies, so a cache is allowed to serve this response even though it's stale.",
	})
	registerNote(NoteKind{
		Name: "CONTENT_RANGE_MEANINGLESS", Category: CategoryRange, Level: LevelWarn,
		SummaryTemplate: "%(response)s shouldn't have a Content-Range header.",
		TextTemplate:    "Content-Range only has meaning on 206 Partial Content and 416 Range Not Satisfiable responses.",
	})
}
