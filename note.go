// note.go
package redcore

import (
	"fmt"
	"html"
	"regexp"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Category classifies what aspect of the exchange a note is about.
// Grounded on redbot/speak.py's _Classifications.
type Category string

const (
	CategoryGeneral            Category = "General"
	CategorySecurity           Category = "Security"
	CategoryConnection         Category = "Connection"
	CategoryContentNegotiation Category = "Content-Negotiation"
	CategoryCaching            Category = "Caching"
	CategoryValidation         Category = "Validation"
	CategoryRange              Category = "Range"
)

// Level is the severity of a note. Grounded on redbot/speak.py's _Levels.
type Level string

const (
	LevelGood Level = "Good"
	LevelWarn Level = "Warn"
	LevelBad  Level = "Bad"
	LevelInfo Level = "Info"
)

// NoteKind is an immutable note definition: a stable identifier, its
// category/level, and its two format templates. Kinds are enumerated at
// startup (notekinds.go) and never constructed ad hoc, per spec.md §4.1.
type NoteKind struct {
	Name             string
	Category         Category
	Level            Level
	SummaryTemplate  string
	TextTemplate     string
}

var noteKinds = map[string]*NoteKind{}

// registerNote adds a kind to the registry. Called only from notekinds.go
// init().
func registerNote(k NoteKind) *NoteKind {
	kp := &k
	if _, dup := noteKinds[k.Name]; dup {
		panic("redcore: duplicate note kind " + k.Name)
	}
	noteKinds[k.Name] = kp
	return kp
}

// responseLabel names an exchange for use in note variable substitution,
// grounded on redbot/speak.py's `response` dict.
var responseLabel = map[string]string{
	"":              "This response",
	"conneg":        "The uncompressed response",
	"LM validation": "The 304 response",
	"ETag validation": "The 304 response",
	"range":         "The partial response",
}

// Note is one emitted diagnostic: a NoteKind bound to a subject and a
// variable bag. Grounded on redbot/state.py's ExchangeState.add_note and
// redbot/speak.py's Note class.
type Note struct {
	Kind       *NoteKind
	Subject    string
	Subrequest string
	Vars       map[string]any
}

var templateVarRe = regexp.MustCompile(`%\(([a-zA-Z_][a-zA-Z0-9_]*)\)s`)

func renderTemplate(tmpl string, vars map[string]any, escape bool) string {
	return templateVarRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := templateVarRe.FindStringSubmatch(match)[1]
		v, ok := vars[name]
		if !ok {
			return match
		}
		s := fmt.Sprint(v)
		if escape {
			s = html.EscapeString(s)
		}
		return s
	})
}

// Summary renders the note's one-line plain-text summary. Deterministic
// and side-effect free, per spec.md §4.1.
func (n Note) Summary() string {
	return renderTemplate(n.Kind.SummaryTemplate, n.Vars, false)
}

// Text renders the note's long-form description. Every variable value is
// HTML-escaped before substitution into the Markdown template; turning
// the Markdown into HTML is a formatter concern (out of scope here, per
// spec.md §1), so Text returns escaped Markdown source.
func (n Note) Text() string {
	return renderTemplate(n.Kind.TextTemplate, n.Vars, true)
}

// dedupKey hashes (kind, subject, rendered summary) into the NoteBag's
// duplicate-detection key. xxhash plays the same role here that it plays
// for n-gram hashing in the teacher's features.go.
func (n Note) dedupKey() uint64 {
	h := xxhash.New()
	h.WriteString(n.Kind.Name)
	h.WriteString("\x00")
	h.WriteString(n.Subject)
	h.WriteString("\x00")
	h.WriteString(n.Summary())
	return h.Sum64()
}

// NoteBag accumulates notes for one exchange, suppressing duplicates and
// preserving insertion order. Grounded on redbot/state.py's
// ExchangeState.notes list plus the Note.__eq__ dedup rule in speak.py.
type NoteBag struct {
	notes []Note
	seen  map[uint64]struct{}
}

func newNoteBag() *NoteBag {
	return &NoteBag{seen: make(map[uint64]struct{})}
}

// Add appends a note unless its (kind, subject, summary) triple was
// already emitted on this bag. Returns true if the note was added.
func (b *NoteBag) Add(n Note) bool {
	key := n.dedupKey()
	if _, dup := b.seen[key]; dup {
		return false
	}
	b.seen[key] = struct{}{}
	b.notes = append(b.notes, n)
	return true
}

// All returns the notes in insertion order.
func (b *NoteBag) All() []Note {
	return b.notes
}

// ByLevel returns the notes at exactly the given level, in insertion
// order, for formatter/test convenience.
func (b *NoteBag) ByLevel(level Level) []Note {
	var out []Note
	for _, n := range b.notes {
		if n.Kind.Level == level {
			out = append(out, n)
		}
	}
	return out
}

// Has reports whether any note of the given kind was emitted.
func (b *NoteBag) Has(kind string) bool {
	for _, n := range b.notes {
		if n.Kind.Name == kind {
			return true
		}
	}
	return false
}

// DebugJSON renders a compact, one-object-per-note JSON snapshot of the
// bag, built incrementally with sjson.Set rather than a full struct
// marshal — exercising the teacher's declared-but-unused gjson/sjson
// dependency the same way processing.go incrementally builds strings.
func (b *NoteBag) DebugJSON() (string, error) {
	doc := "[]"
	var err error
	for i, n := range b.notes {
		prefix := fmt.Sprintf("%d.", i)
		doc, err = sjson.Set(doc, prefix+"kind", n.Kind.Name)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"category", string(n.Kind.Category))
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"level", string(n.Kind.Level))
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"subject", n.Subject)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"summary", n.Summary())
		if err != nil {
			return "", err
		}
		keys := make([]string, 0, len(n.Vars))
		for k := range n.Vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			doc, err = sjson.Set(doc, prefix+"vars."+k, fmt.Sprint(n.Vars[k]))
			if err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}

// SummariesAtLevel re-parses the bag's own DebugJSON output with gjson and
// returns the summary of every note at the given level, in document order.
// A round-trip through the rendered JSON rather than a direct ByLevel scan
// so external tools consuming DebugJSON can rely on the same query this
// method uses internally.
func (b *NoteBag) SummariesAtLevel(level Level) ([]string, error) {
	doc, err := b.DebugJSON()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range gjson.Parse(doc).Array() {
		if n.Get("level").String() == string(level) {
			out = append(out, n.Get("summary").String())
		}
	}
	return out, nil
}
