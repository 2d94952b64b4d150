package span

import (
	"fmt"
)

// Violation describes a broken span invariant.
type Violation struct {
	Span    *Span
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s [%d,%d): %s", v.Span.Category, v.Span.Start, v.Span.End, v.Message)
}

// ValidateTree checks the containment invariant for one span subtree:
// every child lies inside its parent, siblings are ordered and disjoint, and
// no span has a negative length.
func ValidateTree(root *Span) []Violation {
	var out []Violation
	validateNode(root, &out)
	return out
}

func validateNode(node *Span, out *[]Violation) {
	if node.End < node.Start {
		*out = append(*out, Violation{Span: node, Message: "negative length"})
	}

	prevEnd := node.Start
	for idx, child := range node.Children {
		if !node.Encloses(child) {
			*out = append(*out, Violation{Span: child, Message: "escapes parent " + node.Category.String()})
		}
		if idx > 0 && child.Start < prevEnd {
			*out = append(*out, Violation{Span: child, Message: "overlaps previous sibling"})
		}
		if child.Parent != node {
			*out = append(*out, Violation{Span: child, Message: "parent pointer mismatch"})
		}
		prevEnd = max(prevEnd, child.End)
		validateNode(child, out)
	}
}

// ValidateRegions checks that block regions are ordered, disjoint, lie within
// [0, contentLen), and individually satisfy ValidateTree.
func ValidateRegions(regions []*Span, contentLen int) []Violation {
	var out []Violation

	prevEnd := 0
	for idx, region := range regions {
		if !region.Category.IsBlock() {
			out = append(out, Violation{Span: region, Message: "top-level span is not a block region"})
		}
		if region.Start < 0 || region.End > contentLen {
			out = append(out, Violation{Span: region, Message: "outside document"})
		}
		if idx > 0 && region.Start < prevEnd {
			out = append(out, Violation{Span: region, Message: "overlaps previous region"})
		}
		if region.Parent != nil {
			out = append(out, Violation{Span: region, Message: "block region has a parent"})
		}
		prevEnd = region.End
		out = append(out, ValidateTree(region)...)
	}

	return out
}

// Equal reports whether two span trees are structurally identical
// (ranges, categories, attributes, children). Parent pointers are ignored.
func Equal(a, b *Span) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Start != b.Start || a.End != b.End || a.Category != b.Category {
		return false
	}
	if !attrsEqual(a.Attrs, b.Attrs) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for idx := range a.Children {
		if !Equal(a.Children[idx], b.Children[idx]) {
			return false
		}
	}
	return true
}

func attrsEqual(a, b *Attrs) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Level != b.Level || a.Number != b.Number || a.Anchor != b.Anchor ||
		a.Language != b.Language || a.Guessed != b.Guessed || a.Label != b.Label {
		return false
	}
	if a.Link == nil || b.Link == nil {
		return a.Link == b.Link
	}
	return *a.Link == *b.Link
}
