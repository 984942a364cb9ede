// headers.go
package redcore

import (
	"strconv"
	"strings"
)

// HeaderRole restricts which message types a header is meaningful on.
// Grounded on headers/__init__.py's RequestHeader / ResponseHeader /
// RequestOrResponseHeader / ResponseOrPutHeader decorators.
type HeaderRole int

const (
	RoleRequestOrResponse HeaderRole = iota
	RoleRequestOnly
	RoleResponseOnly
)

// HeaderDef describes one recognized header field: its canonical name,
// role, whether repeats should be joined into a list, whether it is
// single-valued or deprecated, and its parse/join hooks. There is no
// per-field syntax regexp: a value's syntax is checked only by its Parse
// hook, and a field without one is accepted as written. Grounded on
// headers/__init__.py's decorator stack (GenericHeaderSyntax,
// SingleFieldValue, DeprecatedHeader, CheckFieldSyntax) collapsed into
// one struct, since Go favors composition over Python's mixin chain.
type HeaderDef struct {
	CanonicalName string
	Role          HeaderRole
	ListHeader    bool // may legally repeat / comma-join
	SingleValue   bool // SINGLE_HEADER_REPEAT if it occurs more than once
	Deprecated    bool
	DeprecationRef string

	// Parse converts one raw field value into an intermediate Go value.
	// Returning (nil, false) means the value was unparsable; the
	// registry then emits BAD_SYNTAX and drops the value, in addition to
	// any note Parse raised itself.
	Parse func(ex *ExchangeState, raw string) (any, bool)

	// Join combines every per-occurrence parsed value (len > 1 only
	// possible when ListHeader is true) into the final ParsedHeaders
	// entry. Defaults to returning the last value when nil.
	Join func(ex *ExchangeState, values []any) any
}

var headerRegistry = map[string]*HeaderDef{}

func registerHeader(d HeaderDef) {
	headerRegistry[strings.ToLower(d.CanonicalName)] = &d
}

// headerAliases maps historical/alternate spellings onto the canonical
// lower-cased name the registry is keyed by.
var headerAliases = map[string]string{
	"x-ua-compatible": "x-ua-compatible",
	"nncoection":      "connection",
	"cneonction":      "connection",
}

func canonicalHeaderKey(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := headerAliases[lower]; ok {
		return alias
	}
	return lower
}

// ProcessHeaders runs every raw header field through the registry: name
// syntax checks, encoding checks, role checks, deprecation notes,
// per-field parsing, and a final join pass per field name. Returns the
// resulting parsed-header map keyed by canonical lower-case name.
// Grounded on headers/__init__.py's process_headers.
func ProcessHeaders(cfg *Config, ex *ExchangeState, isRequest bool, fields []HeaderField) map[string]any {
	maxHdr := cfg.MaxHeaderSize
	if maxHdr <= 0 {
		maxHdr = 4096
	}

	maxBlock := cfg.MaxHeaderBlockSize
	if maxBlock <= 0 {
		maxBlock = 8000
	}

	byName := make(map[string][]any)
	order := make([]string, 0, len(fields))

	var blockSize int
	blockTooLarge := false

	for i, f := range fields {
		ex.SetContext("offset-" + strconv.Itoa(i))

		blockSize += len(f.Name) + len(f.Value)
		if blockSize > maxBlock && !blockTooLarge {
			blockTooLarge = true
			ex.AddNote("HEADER_BLOCK_TOO_LARGE", map[string]any{"header_block_size": blockSize})
		}

		if len(f.Name)+len(f.Value) > maxHdr {
			ex.AddNote("HEADER_TOO_LARGE", map[string]any{
				"header_name": f.Name,
				"header_size": len(f.Name) + len(f.Value),
			})
		}
		if !isASCII(f.Name) {
			ex.AddNote("HEADER_NAME_ENCODING", map[string]any{"header_name": f.Name})
		}
		if !isASCII(f.Value) {
			ex.AddNote("HEADER_VALUE_ENCODING", map[string]any{"header_name": f.Name})
		}
		if !isValidFieldName(f.Name) {
			ex.AddNote("FIELD_NAME_BAD_SYNTAX", map[string]any{"field_name": f.Name})
			continue
		}

		key := canonicalHeaderKey(f.Name)
		def, known := headerRegistry[key]
		if !known {
			byName[key] = append(byName[key], f.Value)
			if !contains(order, key) {
				order = append(order, key)
			}
			continue
		}

		ex.SetContext("header-" + key)

		if def.Role == RoleRequestOnly && !isRequest {
			ex.AddNote("REQUEST_HDR_IN_RESPONSE", map[string]any{"field_name": def.CanonicalName})
			continue
		}
		if def.Role == RoleResponseOnly && isRequest {
			ex.AddNote("RESPONSE_HDR_IN_REQUEST", map[string]any{"field_name": def.CanonicalName})
			continue
		}
		if def.Deprecated {
			ex.AddNote("HEADER_DEPRECATED", map[string]any{
				"field_name":      def.CanonicalName,
				"deprecation_ref": def.DeprecationRef,
			})
		}

		var parsed any = f.Value
		ok := true
		if def.Parse != nil {
			parsed, ok = def.Parse(ex, f.Value)
			if !ok {
				ex.AddNote("BAD_SYNTAX", map[string]any{"field_name": def.CanonicalName, "ref_uri": ""})
				continue
			}
		}
		if def.SingleValue && len(byName[key]) > 0 {
			ex.AddNote("SINGLE_HEADER_REPEAT", map[string]any{"field_name": def.CanonicalName})
		}
		byName[key] = append(byName[key], parsed)
		if !contains(order, key) {
			order = append(order, key)
		}
	}

	out := make(map[string]any, len(order))
	for _, key := range order {
		values := byName[key]
		def, known := headerRegistry[key]
		if !known {
			out[key] = values
			continue
		}
		ex.SetContext("header-" + key)
		if def.Join != nil {
			out[key] = def.Join(ex, values)
		} else if len(values) > 0 {
			out[key] = values[len(values)-1]
		}
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// isValidFieldName checks the header name against HTTP's token
// production: visible ASCII minus delimiters. Grounded on
// headers/__init__.py's FIELD_NAME_BAD_SYNTAX check.
func isValidFieldName(name string) bool {
	if name == "" {
		return false
	}
	const delimiters = `"(),/:;<=>?@[\]{}`
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= 32 || c >= 127 || strings.IndexByte(delimiters, c) >= 0 {
			return false
		}
	}
	return true
}
