package span

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(s *Span) error

// Walk performs a pre-order traversal starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns that error.
func Walk(root *Span, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.Children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkAll walks every span of every region in order.
func WalkAll(regions []*Span, walkFunc WalkFunc) error {
	for _, region := range regions {
		if err := Walk(region, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all spans in regions matching the predicate, in pre-order.
func FindAll(regions []*Span, predicate func(s *Span) bool) []*Span {
	var result []*Span

	//nolint:errcheck // the callback never fails
	WalkAll(regions, func(s *Span) error {
		if predicate(s) {
			result = append(result, s)
		}
		return nil
	})

	return result
}

// FindFirst returns the first span matching the predicate, or nil.
func FindFirst(regions []*Span, predicate func(s *Span) bool) *Span {
	var found *Span

	err := WalkAll(regions, func(s *Span) error {
		if predicate(s) {
			found = s
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nil
	}

	return found
}

// FindByCategory returns all spans of the given category.
func FindByCategory(regions []*Span, category Category) []*Span {
	return FindAll(regions, func(s *Span) bool {
		return s.Category == category
	})
}

// CountByCategory tallies spans per category across regions.
func CountByCategory(regions []*Span) map[Category]int {
	counts := make(map[Category]int)

	//nolint:errcheck // the callback never fails
	WalkAll(regions, func(s *Span) error {
		counts[s.Category]++
		return nil
	})

	return counts
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = errors.New("stop walk")
