// formatter.go
package redcore

// Formatter renders a completed analysis (a RedState and its tree of
// exchanges) into a human- or machine-facing representation: HTML,
// plain text, JSON, etc. redcore ships no implementation — turning
// Markdown note text into HTML, building an interactive report, and
// every other presentation concern is out of scope per spec.md §1's
// Non-goals; Formatter exists so an embedder's presentation layer has a
// stable seam to implement against.
type Formatter interface {
	// Format renders state's results, writing to whatever sink the
	// implementation was constructed with.
	Format(state *RedState) error
}
