// Package usecase filters the use-case list by a free-text query.
package usecase

import (
	"slices"
	"strings"
	"unicode"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

// Normalize trims surrounding whitespace, including a byte order mark, and
// lower-cases the query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimFunc(query, isTrimmed))
}

func isTrimmed(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Haystack joins title, subtitle, tags and points with single spaces and
// lower-cases the result.
func Haystack(uc model.UseCase) string {
	parts := make([]string, 0, 2+len(uc.Tags)+len(uc.Points))
	parts = append(parts, uc.Title, uc.Subtitle)
	parts = append(parts, uc.Tags...)
	parts = append(parts, uc.Points...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Matches reports whether uc contains q. q must already be normalized.
func Matches(q string, uc model.UseCase) bool {
	return strings.Contains(Haystack(uc), q)
}

// Filter returns the records whose haystack contains the normalized query,
// in their original order. A blank query returns records unchanged.
// records is never modified.
func Filter(query string, records []model.UseCase) []model.UseCase {
	q := Normalize(query)
	if q == "" {
		return records
	}
	out := make([]model.UseCase, 0, len(records))
	for _, uc := range records {
		if Matches(q, uc) {
			out = append(out, uc)
		}
	}
	return out
}

// Filterer memoizes the last result for a fixed record list. Results are
// copies, so callers may modify them without touching the memo.
// It is not safe for concurrent use; each session owns one.
type Filterer struct {
	records []model.UseCase
	haystk  []string

	lastQuery string
	last      []model.UseCase
	primed    bool
}

// NewFilterer precomputes the haystack of every record.
func NewFilterer(records []model.UseCase) *Filterer {
	h := make([]string, len(records))
	for i, uc := range records {
		h[i] = Haystack(uc)
	}
	return &Filterer{records: records, haystk: h}
}

// Records returns a copy of the unfiltered list.
func (f *Filterer) Records() []model.UseCase { return slices.Clone(f.records) }

// Len is the size of the unfiltered list.
func (f *Filterer) Len() int { return len(f.records) }

// Filter gives the same result as the package-level Filter.
func (f *Filterer) Filter(query string) []model.UseCase {
	q := Normalize(query)
	if f.primed && q == f.lastQuery {
		return slices.Clone(f.last)
	}
	var out []model.UseCase
	if q == "" {
		out = f.records
	} else {
		out = make([]model.UseCase, 0, len(f.records))
		for i, h := range f.haystk {
			if strings.Contains(h, q) {
				out = append(out, f.records[i])
			}
		}
	}
	f.lastQuery, f.last, f.primed = q, out, true
	return slices.Clone(out)
}

// Titles is a convenience for logs and tests.
func Titles(records []model.UseCase) []string {
	out := make([]string, 0, len(records))
	for _, uc := range records {
		out = append(out, uc.Title)
	}
	return out
}
