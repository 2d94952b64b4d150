package scan

import (
	"bytes"
)

// lineKind identifies the block rule a physical line opens.
type lineKind int

const (
	kindBlank lineKind = iota
	kindHeading
	kindFence
	kindQuote
	kindMath
	kindPicture
	kindRaw
	kindDivider
	kindButton
	kindTableSeparator
	kindTableRow
	kindRule
	kindBullet
	kindOrdered
	kindPlain
)

// Fence and raw block delimiters.
const (
	fenceShort = "~~~"
	fenceLong  = "~~~~"
	rawFence   = "???"
)

// maxListIndent is the deepest indentation a list marker may carry.
const maxListIndent = 4

// classifyLine evaluates the block rules against one line (without its
// newline) in priority order.
func classifyLine(line []byte) lineKind {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return kindBlank
	}

	switch {
	case headingLevel(line) > 0:
		return kindHeading
	case fenceDelimiter(line) != "":
		return kindFence
	case bytes.HasPrefix(line, []byte("> ")):
		return kindQuote
	case bytes.HasPrefix(line, []byte("$ ")):
		return kindMath
	case bytes.HasPrefix(line, []byte("pic ")):
		return kindPicture
	case string(trimmed) == rawFence:
		return kindRaw
	case isDivider(line):
		return kindDivider
	case bytes.HasPrefix(line, []byte(":: ")):
		return kindButton
	case isTableSeparator(line):
		return kindTableSeparator
	case isTableRow(line):
		return kindTableRow
	// Rules are tested before list markers so that "* * *" is a rule and not
	// a bullet item.
	case isHorizontalRule(line):
		return kindRule
	}

	if marker := parseListMarker(line); marker.ok {
		if marker.ordered {
			return kindOrdered
		}
		return kindBullet
	}

	return kindPlain
}

// headingLevel returns the number of leading hashes when they open a heading.
func headingLevel(line []byte) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0
	}
	return level
}

// fenceDelimiter returns the fence delimiter the line consists of, or "".
func fenceDelimiter(line []byte) string {
	switch string(bytes.TrimSpace(line)) {
	case fenceShort:
		return fenceShort
	case fenceLong:
		return fenceLong
	}
	return ""
}

// isDivider reports a line of two or more "=" with optional trailing
// whitespace. A lone "=" stays text.
func isDivider(line []byte) bool {
	trimmed := bytes.TrimRight(line, " \t")
	if len(trimmed) < 2 {
		return false
	}
	for _, char := range trimmed {
		if char != '=' {
			return false
		}
	}
	return true
}

// isTableSeparator matches `^\s*\|[-| ]*$`.
func isTableSeparator(line []byte) bool {
	rest := bytes.TrimLeft(line, " \t")
	if len(rest) == 0 || rest[0] != '|' {
		return false
	}
	for _, char := range rest[1:] {
		if char != '-' && char != '|' && char != ' ' {
			return false
		}
	}
	return true
}

// isTableRow matches `^\s*\| `.
func isTableRow(line []byte) bool {
	rest := bytes.TrimLeft(line, " \t")
	return bytes.HasPrefix(rest, []byte("| "))
}

// isHorizontalRule matches lines made of spaces and three or more of a single
// rule character.
func isHorizontalRule(line []byte) bool {
	var ruleChar byte
	count := 0
	for _, char := range line {
		switch char {
		case ' ', '\t':
			continue
		case '*', '-':
			if ruleChar != 0 && char != ruleChar {
				return false
			}
			ruleChar = char
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// listMarker describes a list item marker on a line.
type listMarker struct {
	ok      bool
	ordered bool

	// start and end bound the marker text, relative to the line.
	start, end int

	// body is where the item text starts, relative to the line.
	body int

	level  int
	number int
}

func parseListMarker(line []byte) listMarker {
	indent := 0
	switch {
	case len(line) > 0 && line[0] == '\t':
		indent = 1
	default:
		for indent < len(line) && line[indent] == ' ' {
			indent++
		}
		if indent > maxListIndent {
			return listMarker{}
		}
	}

	pos := indent
	marker := listMarker{start: indent}

	switch {
	case pos < len(line) && line[pos] == '*':
		for pos < len(line) && line[pos] == '*' {
			pos++
		}
		marker.level = pos - indent
	case pos < len(line) && isDigit(line[pos]):
		number := 0
		for pos < len(line) && isDigit(line[pos]) {
			if number < 1_000_000_000 {
				number = number*10 + int(line[pos]-'0')
			}
			pos++
		}
		if pos >= len(line) || line[pos] != '.' {
			return listMarker{}
		}
		pos++
		marker.ordered = true
		marker.number = number
	default:
		return listMarker{}
	}
	marker.end = pos

	if pos >= len(line) || !isSpace(line[pos]) {
		return listMarker{}
	}
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	if pos >= len(line) {
		return listMarker{}
	}

	marker.body = pos
	marker.ok = true
	return marker
}

func isDigit(char byte) bool {
	return '0' <= char && char <= '9'
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t'
}

// continuesLazily reports whether a line of the given kind extends an open
// quote, math, picture, list item or paragraph region.
func continuesLazily(kind lineKind) bool {
	return kind == kindPlain
}
