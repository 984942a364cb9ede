// resource.go
package redcore

import (
	"context"
	"net/url"
	"strings"
)

// DiscoveredLink is one link an external LinkParser found in a response
// body, paired with the tag it came from (e.g. "a", "link", "img").
type DiscoveredLink struct {
	Tag    string
	Target string
}

// LinkParser is the out-of-scope HTML link extraction collaborator:
// redcore specifies only the hook contract HttpResource calls back into
// when link descent is requested. No implementation ships here, per
// Non-goals — an embedder supplies one the same way it supplies a
// Transport.
type LinkParser interface {
	ParseLinks(body []byte) []DiscoveredLink
}

// HttpResource drives one analysis: the base exchange plus, if link
// descent is requested, a bounded walk over discovered child resources.
// Grounded on redbot/resource/__init__.py's HttpResource.
type HttpResource struct {
	Engine    *Engine
	Transport Transport
	State     *RedState

	Descend    bool
	LinkParser LinkParser

	visited map[string]bool
}

// NewHttpResource builds a resource analysis rooted at state, which must
// already have its base exchange populated by a Fetcher. linkParser may
// be nil, in which case link descent is skipped even if descend is true:
// there is no default HTML parser shipped here, since extracting links
// from markup is the out-of-scope collaborator the embedder supplies.
func NewHttpResource(engine *Engine, transport Transport, state *RedState, descend bool, linkParser LinkParser) *HttpResource {
	return &HttpResource{
		Engine:     engine,
		Transport:  transport,
		State:      state,
		Descend:    descend,
		LinkParser: linkParser,
		visited:    make(map[string]bool),
	}
}

// Done runs the post-fetch analysis pipeline on the base exchange: status
// checking, and — when Descend is set and a LinkParser is installed —
// link discovery and recursive descent into every unique non-anchor link.
// Grounded on HttpResource.done, minus active_check.spawn_all (active
// checks are invoked explicitly by the caller via spawnActiveChecks,
// since they need a Transport to issue subrequests that HttpResource
// itself doesn't hold).
func (r *HttpResource) Done(ctx context.Context) {
	base := r.State.Base
	if base.Request == nil || base.Response == nil {
		return
	}
	CheckStatus(base, base.Request, base.Response)

	if r.Descend && r.LinkParser != nil {
		r.processLinks(ctx, base)
	}
}

// processLinks runs the installed LinkParser over the decoded body
// sample, dedupes discoveries against what's already been visited (per
// tag relation, as the original does), records each as a link on
// RedState, and recursively descends into every unique non-anchor link.
// Grounded on HttpResource.process_link's per-tag dedup set and
// HttpResource.done's "creates a child RedState for each unique
// non-anchor link and recursively runs another HttpResource against it".
func (r *HttpResource) processLinks(ctx context.Context, base *ExchangeState) {
	for _, link := range r.LinkParser.ParseLinks(base.Response.DecodedSample) {
		relation := linkRelationForTag(strings.ToLower(link.Tag))
		target := resolveLinkURI(base.Request.URI, link.Target)
		if target == "" {
			continue
		}
		key := relation + "\x00" + target
		if r.visited[key] {
			continue
		}
		r.visited[key] = true
		r.State.AddLink(relation, target)

		if relation != "anchor" {
			r.descendInto(ctx, relation, target)
		}
	}
}

// descendInto fetches target as its own exchange, rooted in a fresh
// RedState, and runs another HttpResource against it — with descent
// disabled, so link-following is bounded to one level rather than
// crawling the whole linked graph. The child is recorded under
// State.Linked regardless of whether its fetch succeeded, mirroring
// RedState.linked's "ordered sequence of (child RedState, link-type tag)".
func (r *HttpResource) descendInto(ctx context.Context, relation, target string) {
	child := NewRedState()
	done := make(chan error, 1)
	f := NewFetcher(r.Engine, r.Transport, child, child.Base, "GET", target)
	f.DoneCB = func(ex *ExchangeState, err error) { done <- err }
	f.Run(ctx)
	<-done

	r.State.AddLinkedChild(relation, child)

	if child.Base.Response == nil {
		return
	}
	NewHttpResource(r.Engine, r.Transport, child, false, r.LinkParser).Done(ctx)
}

// resolveLinkURI resolves a discovered link target against the base
// request's URI, so relative hrefs become absolute before they're
// recorded or fetched. Returns "" for an unparsable target or base.
func resolveLinkURI(baseURI, target string) string {
	base, err := url.Parse(baseURI)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func linkRelationForTag(tag string) string {
	switch tag {
	case "a":
		return "anchor"
	case "link":
		return "link"
	case "img":
		return "img"
	case "script":
		return "script"
	case "iframe":
		return "iframe"
	default:
		return tag
	}
}
