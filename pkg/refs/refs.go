// Package refs holds the link reference table: `[id]: url "title"`
// declarations accumulated while a document is classified, looked up later by
// reference-style links `[text][id]` and shorthand `[id]`.
package refs

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Policy decides which declaration wins when an id is declared twice.
type Policy string

const (
	// LastWins lets later declarations overwrite earlier ones. Default.
	LastWins Policy = "last"

	// FirstWins keeps the first declaration and ignores later ones.
	FirstWins Policy = "first"
)

// ParsePolicy parses a policy name. The empty string selects LastWins.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case "", LastWins:
		return LastWins, nil
	case FirstWins:
		return FirstWins, nil
	default:
		return "", fmt.Errorf("unknown duplicate reference policy %q; valid policies: last, first", name)
	}
}

// Reference is a single link reference declaration.
type Reference struct {
	// ID is the id as written in the source.
	ID string

	// Key is the case-folded, whitespace-collapsed id used for lookups.
	Key string

	// URL is the declared destination.
	URL string

	// Title is the optional title.
	Title string

	// Line is the 1-based line of the declaration.
	Line int
}

// Table maps normalised ids to references. A Table is owned by one
// classification pass and is not safe for concurrent mutation.
type Table struct {
	policy  Policy
	entries map[string]*Reference
	order   []string
}

// NewTable creates an empty table with the given duplicate policy.
func NewTable(policy Policy) *Table {
	if policy == "" {
		policy = LastWins
	}
	return &Table{
		policy:  policy,
		entries: make(map[string]*Reference),
	}
}

// Policy returns the table's duplicate policy.
func (t *Table) Policy() Policy {
	return t.policy
}

// Define registers a declaration. It returns the reference that is now
// authoritative for the id and whether an earlier declaration existed.
func (t *Table) Define(id, url, title string, line int) (*Reference, bool) {
	key := NormalizeLabel(id)
	ref := &Reference{ID: id, Key: key, URL: url, Title: title, Line: line}

	existing, duplicate := t.entries[key]
	if duplicate {
		if t.policy == FirstWins {
			return existing, true
		}
		t.entries[key] = ref
		return ref, true
	}

	t.entries[key] = ref
	t.order = append(t.order, key)
	return ref, false
}

// Lookup finds the reference for an id, ignoring case and inner whitespace.
func (t *Table) Lookup(id string) (*Reference, bool) {
	ref, ok := t.entries[NormalizeLabel(id)]
	return ref, ok
}

// Len returns the number of distinct ids.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// References returns the authoritative references in first-declaration order.
func (t *Table) References() []*Reference {
	out := make([]*Reference, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.entries[key])
	}
	return out
}

// Clone returns an independent copy; checkpoints keep one so that
// classification can restart mid-document with the same table contents.
func (t *Table) Clone() *Table {
	out := &Table{
		policy:  t.policy,
		entries: make(map[string]*Reference, len(t.entries)),
		order:   slices.Clone(t.order),
	}
	for key, ref := range t.entries {
		refCopy := *ref
		out.entries[key] = &refCopy
	}
	return out
}

// Equal reports whether two tables hold the same references in the same order.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if !slices.Equal(t.order, other.order) {
		return false
	}
	for key, ref := range t.entries {
		otherRef, ok := other.entries[key]
		if !ok || *otherRef != *ref {
			return false
		}
	}
	return true
}

// NormalizeLabel case-folds an id and collapses runs of whitespace to one
// space, trimming both ends.
func NormalizeLabel(id string) string {
	var builder strings.Builder
	space := false
	hi := false

	for _, field := range strings.Fields(id) {
		if space {
			builder.WriteByte(' ')
		}
		space = true
		for idx := range len(field) {
			char := field[idx]
			if 'A' <= char && char <= 'Z' {
				char += 'a' - 'A'
			}
			if char >= 0x80 {
				hi = true
			}
			builder.WriteByte(char)
		}
	}

	out := builder.String()
	if hi {
		out = cases.Fold().String(out)
	}
	return out
}
