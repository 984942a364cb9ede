// state.go
package redcore

import (
	"sync"

	"github.com/google/uuid"
)

// ExchangeState holds everything accumulated about one request/response
// exchange: the messages involved, and the notes raised about them.
// Grounded on redbot/state.py's ExchangeState.
type ExchangeState struct {
	mu sync.Mutex

	ID      string
	Name    string // "", "conneg", "LM validation", "ETag validation", "range"
	Request *HttpRequest
	Response *HttpResponse

	context string
	Notes   *NoteBag
}

// newExchangeState builds an exchange with a fresh identity and an empty
// note bag, mirroring ExchangeState.__init__. Identity generation follows
// the teacher's uuid.NewString() idiom (processing.go).
func newExchangeState(name string) *ExchangeState {
	return &ExchangeState{
		ID:    uuid.NewString(),
		Name:  name,
		Notes: newNoteBag(),
	}
}

// SetContext records the subject a later AddNote call should attribute
// notes to (e.g. a specific header name), mirroring set_context.
func (e *ExchangeState) SetContext(subject string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.context = subject
}

// AddNote raises a note against this exchange's current context, filling
// in the response label and exchange name automatically as vars, mirroring
// ExchangeState.add_note.
func (e *ExchangeState) AddNote(kindName string, vars map[string]any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	kind, ok := noteKinds[kindName]
	if !ok {
		panic("redcore: unknown note kind " + kindName)
	}
	merged := make(map[string]any, len(vars)+1)
	for k, v := range vars {
		merged[k] = v
	}
	if _, has := merged["response"]; !has {
		merged["response"] = responseLabel[e.Name]
	}
	return e.Notes.Add(Note{
		Kind:       kind,
		Subject:    e.context,
		Subrequest: e.Name,
		Vars:       merged,
	})
}

// RedState is the root of one analysis run: the base exchange plus every
// exchange spawned from it (active checks, redirects followed, robots.txt
// fetches), and the aggregate flags computed across them. Grounded on
// redbot/state.py's RedState.
type RedState struct {
	mu sync.Mutex

	Exchanges map[string]*ExchangeState
	Base      *ExchangeState

	TransferIn  int64
	TransferOut int64

	Linked []LinkedChild       // descended-into child resources, in discovery order
	Links  map[string][]string // link relation -> deduped target URIs

	PartialSupport bool
	InmSupport     bool
	ImsSupport     bool
	GzipSupport    bool
	GzipSavings    int // percent
}

// NewRedState creates a root state with its base exchange already
// registered, mirroring RedState.__init__ + the first add_exchange call a
// fetch always performs.
func NewRedState() *RedState {
	base := newExchangeState("")
	return &RedState{
		Exchanges: map[string]*ExchangeState{base.ID: base},
		Base:      base,
		Links:     make(map[string][]string),
	}
}

// AddExchange registers a new (non-base) exchange, such as an active
// check's subrequest, mirroring RedState.add_exchange.
func (s *RedState) AddExchange(name string) *ExchangeState {
	e := newExchangeState(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Exchanges[e.ID] = e
	return e
}

// GetExchange looks up a previously registered exchange by id.
func (s *RedState) GetExchange(id string) (*ExchangeState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.Exchanges[id]
	return e, ok
}

// AddTransfer accumulates bytes seen across every exchange this state
// owns, mirroring RedState.transfer_in/transfer_out bookkeeping in
// fetch.py's _response_body.
func (s *RedState) AddTransfer(in, out int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TransferIn += in
	s.TransferOut += out
}

// AddLink records a discovered link of the given relation. Mirrors
// HttpResource.process_link's bookkeeping.
func (s *RedState) AddLink(relation, uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Links[relation] = append(s.Links[relation], uri)
}

// LinkedChild pairs a resource descended into via link-following with the
// link-type tag that led there (e.g. "link", "img", "script"). Mirrors
// spec's RedState.linked: "an ordered sequence of (child RedState,
// link-type tag) for descended resources".
type LinkedChild struct {
	State *RedState
	Tag   string
}

// AddLinkedChild records a descended-into child resource under the given
// link-type tag, in the order resources were descended into.
func (s *RedState) AddLinkedChild(tag string, child *RedState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Linked = append(s.Linked, LinkedChild{State: child, Tag: tag})
}

// SetInmSupport records whether the origin honors If-None-Match
// conditional requests, per the ETag active check's outcome.
func (s *RedState) SetInmSupport(supported bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InmSupport = supported
}

// SetImsSupport records whether the origin honors If-Modified-Since
// conditional requests, per the Last-Modified active check's outcome.
func (s *RedState) SetImsSupport(supported bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ImsSupport = supported
}

// SetPartialSupport records whether the origin honors Range requests,
// per the range active check's outcome.
func (s *RedState) SetPartialSupport(supported bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PartialSupport = supported
}

// SetGzipSupport records whether the origin will compress the response
// on request, and SetGzipSavings records the percentage reduction in
// size that compression bought, per the content-negotiation active
// check's outcome.
func (s *RedState) SetGzipSupport(supported bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GzipSupport = supported
}

func (s *RedState) SetGzipSavings(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GzipSavings = percent
}
