package scan

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/dllup/pkg/document"
	"github.com/yaklabco/dllup/pkg/refs"
	"github.com/yaklabco/dllup/pkg/span"
)

// escapable lists the characters a backslash escapes.
const escapable = "[]\\`*_{}()#+.!-"

// maxSchemeLen bounds the scheme of an automatic link.
const maxSchemeLen = 32

// InlineOptions configure one inline scan.
type InlineOptions struct {
	// AutoLinks enables <scheme:...> and <user@host> automatic links.
	AutoLinks bool

	// Definitions enables line-leading `[id]: url "title"` declarations.
	Definitions bool

	// Refs receives declarations and resolves reference links. Nil disables
	// both.
	Refs *refs.Table

	// Report receives diagnostics; nil discards them.
	Report func(Diagnostic)
}

// Inline classifies the inline spans of doc.Content[start:end]. The returned
// spans are ordered, non-overlapping and carry absolute offsets. Every span is
// confined to one line except a link whose "(" or "[" tail starts on the next
// line.
func Inline(doc *document.Document, start, end int, opts InlineOptions) []*span.Span {
	start = max(start, 0)
	end = min(end, len(doc.Content))
	if start >= end {
		return nil
	}

	scanner := &inlineScanner{doc: doc, src: doc.Content, opts: opts}
	return scanner.scan(start, end, inlineContext{autoLinks: opts.AutoLinks})
}

// inlineContext tracks the constructs enclosing the current scan.
type inlineContext struct {
	autoLinks bool
	inBold    bool
	inItalic  bool
	inLink    bool
}

type inlineScanner struct {
	doc  *document.Document
	src  []byte
	opts InlineOptions
}

func (sc *inlineScanner) scan(pos, end int, ctx inlineContext) []*span.Span {
	var out []*span.Span
	for pos < end {
		matched, next := sc.match(pos, end, ctx)
		if matched != nil {
			out = append(out, matched)
		}
		pos = next
	}
	return out
}

// match applies the inline rules at pos. It returns the matched span (nil for
// plain text) and the position to continue from, which is always past pos.
func (sc *inlineScanner) match(pos, end int, ctx inlineContext) (*span.Span, int) {
	switch sc.src[pos] {
	case '\\':
		if matched := sc.escape(pos, end); matched != nil {
			return matched, matched.End
		}
	case ' ':
		return sc.hardBreak(pos, end)
	case '[':
		if matched := sc.definition(pos, end, ctx); matched != nil {
			return matched, matched.End
		}
		if matched := sc.link(pos, end, ctx); matched != nil {
			return matched, matched.End
		}
		if matched := sc.crossReference(pos, end); matched != nil {
			return matched, matched.End
		}
		if matched := sc.shorthand(pos, end, ctx); matched != nil {
			return matched, matched.End
		}
	case '!':
		if matched := sc.link(pos, end, ctx); matched != nil {
			return matched, matched.End
		}
	case '`':
		if matched := sc.codeSpan(pos, end); matched != nil {
			return matched, matched.End
		}
	case '$':
		if matched := sc.inlineMath(pos, end); matched != nil {
			return matched, matched.End
		}
	case '*':
		if matched := sc.bold(pos, end, ctx); matched != nil {
			return matched, matched.End
		}
	case '_':
		if matched := sc.italic(pos, end, ctx); matched != nil {
			return matched, matched.End
		}
	case '(':
		if matched := sc.citation(pos, end); matched != nil {
			return matched, matched.End
		}
	case '<':
		if ctx.autoLinks {
			if matched := sc.autoLink(pos, end); matched != nil {
				return matched, matched.End
			}
		}
		if matched := sc.rawHTML(pos, end); matched != nil {
			return matched, matched.End
		}
	case '&':
		if matched := sc.entity(pos, end); matched != nil {
			return matched, matched.End
		}
	}
	return nil, pos + 1
}

// lineEnd returns the end of the line containing pos, bounded by end.
func (sc *inlineScanner) lineEnd(pos, end int) int {
	if idx := bytes.IndexByte(sc.src[pos:end], '\n'); idx >= 0 {
		return pos + idx
	}
	return end
}

func (sc *inlineScanner) report(kind DiagnosticKind, offset int, message string) {
	if sc.opts.Report == nil {
		return
	}
	line, _ := sc.doc.LineAt(offset)
	sc.opts.Report(Diagnostic{Kind: kind, Line: line, Offset: offset, Message: message})
}

func isEscapable(char byte) bool {
	return strings.IndexByte(escapable, char) >= 0
}

// escapedAt reports whether the byte at pos follows an odd run of
// backslashes.
func (sc *inlineScanner) escapedAt(pos int) bool {
	run := 0
	for idx := pos - 1; idx >= 0 && sc.src[idx] == '\\'; idx-- {
		run++
	}
	return run%2 == 1
}

func (sc *inlineScanner) escape(pos, end int) *span.Span {
	if pos+1 < sc.lineEnd(pos, end) && isEscapable(sc.src[pos+1]) {
		return span.New(span.Escape, pos, pos+2)
	}
	return nil
}

func (sc *inlineScanner) hardBreak(pos, end int) (*span.Span, int) {
	next := pos
	for next < end && sc.src[next] == ' ' {
		next++
	}
	atLineEnd := next == len(sc.src) || sc.src[next] == '\n'
	if next-pos >= 2 && atLineEnd {
		return span.New(span.HardBreak, pos, next), next
	}
	return nil, next
}

// codeSpan matches `...` on one line. Only escapes are recognised inside.
func (sc *inlineScanner) codeSpan(pos, end int) *span.Span {
	lineEnd := sc.lineEnd(pos, end)
	code := span.New(span.CodeSpan, pos, 0)
	for idx := pos + 1; idx < lineEnd; idx++ {
		switch sc.src[idx] {
		case '\\':
			if idx+1 < lineEnd && isEscapable(sc.src[idx+1]) {
				code.Append(span.New(span.Escape, idx, idx+2))
				idx++
			}
		case '`':
			code.End = idx + 1
			return code
		}
	}
	return nil
}

// inlineMath matches $...$ on one line; \$ is a literal dollar and never
// opens math, but \\$ is an escaped backslash followed by math.
func (sc *inlineScanner) inlineMath(pos, end int) *span.Span {
	if sc.escapedAt(pos) {
		return nil
	}
	lineEnd := sc.lineEnd(pos, end)
	math := span.New(span.InlineMath, pos, 0)
	for idx := pos + 1; idx < lineEnd; idx++ {
		switch sc.src[idx] {
		case '\\':
			if idx+1 < lineEnd && sc.src[idx+1] == '$' {
				math.Append(span.New(span.Escape, idx, idx+2))
				idx++
			}
		case '$':
			if idx == pos+1 {
				return nil
			}
			math.End = idx + 1
			return math
		}
	}
	return nil
}

// findCloser finds the first occurrence of delim in [from, lineEnd) that is
// preceded by a non-space byte and accepted by guard. Escapes, code spans and
// inline math are skipped over.
func (sc *inlineScanner) findCloser(from, lineEnd int, delim string, guard func(idx int) bool) int {
	for idx := from; idx+len(delim) <= lineEnd; {
		switch sc.src[idx] {
		case '\\':
			if idx+1 < lineEnd && isEscapable(sc.src[idx+1]) {
				idx += 2
				continue
			}
		case '`':
			if code := sc.codeSpan(idx, lineEnd); code != nil {
				idx = code.End
				continue
			}
		case '$':
			if math := sc.inlineMath(idx, lineEnd); math != nil {
				idx = math.End
				continue
			}
		}
		if bytes.HasPrefix(sc.src[idx:lineEnd], []byte(delim)) && idx > from && !isSpace(sc.src[idx-1]) && guard(idx) {
			return idx
		}
		idx++
	}
	return -1
}

// bold matches **...**: the opening delimiter must be followed and the
// closing delimiter preceded by a non-space byte.
func (sc *inlineScanner) bold(pos, end int, ctx inlineContext) *span.Span {
	if ctx.inBold {
		return nil
	}
	lineEnd := sc.lineEnd(pos, end)
	if pos+2 >= lineEnd || sc.src[pos+1] != '*' || isWhitespace(sc.src[pos+2]) {
		return nil
	}
	closer := sc.findCloser(pos+2, lineEnd, "**", func(int) bool { return true })
	if closer < 0 {
		return nil
	}

	ctx.inBold = true
	bold := span.New(span.Bold, pos, closer+2)
	bold.Append(sc.scan(pos+2, closer, ctx)...)
	return bold
}

// italic matches _..._ with the same adjacency rule as bold. Underscores
// inside words neither open nor close.
func (sc *inlineScanner) italic(pos, end int, ctx inlineContext) *span.Span {
	if ctx.inItalic || sc.wordBefore(pos) {
		return nil
	}
	lineEnd := sc.lineEnd(pos, end)
	if pos+1 >= lineEnd || isWhitespace(sc.src[pos+1]) {
		return nil
	}
	closer := sc.findCloser(pos+1, lineEnd, "_", func(idx int) bool {
		return !sc.wordAfter(idx+1, lineEnd)
	})
	if closer < 0 {
		return nil
	}

	ctx.inItalic = true
	italic := span.New(span.Italic, pos, closer+1)
	italic.Append(sc.scan(pos+1, closer, ctx)...)
	return italic
}

func (sc *inlineScanner) wordBefore(pos int) bool {
	if pos == 0 {
		return false
	}
	char, _ := utf8.DecodeLastRune(sc.src[:pos])
	return unicode.IsLetter(char) || unicode.IsDigit(char)
}

func (sc *inlineScanner) wordAfter(pos, lineEnd int) bool {
	if pos >= lineEnd {
		return false
	}
	char, _ := utf8.DecodeRune(sc.src[pos:lineEnd])
	return unicode.IsLetter(char) || unicode.IsDigit(char)
}

func isWhitespace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n'
}

// closeBracket returns the index of the "]" balancing the "[" before from,
// on the same line, skipping escapes and code spans.
func (sc *inlineScanner) closeBracket(from, lineEnd int) int {
	depth := 0
	for idx := from; idx < lineEnd; idx++ {
		switch sc.src[idx] {
		case '\\':
			if idx+1 < lineEnd && isEscapable(sc.src[idx+1]) {
				idx++
			}
		case '`':
			if code := sc.codeSpan(idx, lineEnd); code != nil {
				idx = code.End - 1
			}
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return idx
			}
			depth--
		}
	}
	return -1
}

// link matches [text] or ![text] followed, on the same or the next line, by
// an inline (url "title") tail or a [id] reference tail.
func (sc *inlineScanner) link(pos, end int, ctx inlineContext) *span.Span {
	if ctx.inLink {
		return nil
	}

	category := span.LinkText
	textStart := pos + 1
	if sc.src[pos] == '!' {
		if pos+1 >= end || sc.src[pos+1] != '[' {
			return nil
		}
		category = span.ImageText
		textStart = pos + 2
	}

	lineEnd := sc.lineEnd(pos, end)
	closer := sc.closeBracket(textStart, lineEnd)
	if closer < 0 {
		return nil
	}

	tail := closer + 1
	if tail == lineEnd && lineEnd < end {
		if sc.opts.Definitions && sc.opts.Refs != nil {
			if _, ok := sc.parseDefinition(lineEnd+1, end); ok {
				return nil
			}
		}
		tail = lineEnd + 1
		for tail < end && isSpace(sc.src[tail]) {
			tail++
		}
	}
	if tail >= end {
		return nil
	}

	link := span.New(category, pos, 0)
	innerCtx := inlineContext{inBold: ctx.inBold, inItalic: ctx.inItalic, inLink: true}
	inner := sc.scan(textStart, closer, innerCtx)

	switch sc.src[tail] {
	case '(':
		dest, ok := sc.inlineTail(tail, sc.lineEnd(tail, end))
		if !ok {
			return nil
		}
		link.Append(inner...)
		link.Append(dest.children...)
		link.End = dest.end
		link.Attrs = &span.Attrs{Link: &span.Link{URL: dest.url, Title: dest.title}}
	case '[':
		tailLineEnd := sc.lineEnd(tail, end)
		idEnd := bytes.IndexByte(sc.src[tail+1:tailLineEnd], ']')
		if idEnd < 0 {
			return nil
		}
		idEnd += tail + 1
		id := string(sc.src[tail+1 : idEnd])
		link.Append(inner...)
		if id != "" {
			link.Append(span.New(span.LinkRefID, tail+1, idEnd))
		} else {
			id = string(sc.src[textStart:closer])
		}
		link.End = idEnd + 1
		link.Attrs = &span.Attrs{Link: sc.resolve(id)}
	default:
		return nil
	}
	return link
}

func (sc *inlineScanner) resolve(id string) *span.Link {
	link := &span.Link{RefID: id}
	if sc.opts.Refs == nil {
		return link
	}
	if ref, ok := sc.opts.Refs.Lookup(id); ok {
		link.URL = ref.URL
		link.Title = ref.Title
		link.Resolved = true
	}
	return link
}

type destination struct {
	url      string
	title    string
	end      int
	children []*span.Span
}

// inlineTail parses `(url "title")` starting at the "(" at pos.
func (sc *inlineScanner) inlineTail(pos, lineEnd int) (destination, bool) {
	var dest destination
	idx := pos + 1
	for idx < lineEnd && isSpace(sc.src[idx]) {
		idx++
	}

	urlStart, urlEnd := idx, idx
	if idx < lineEnd && sc.src[idx] == '<' {
		closeIdx := bytes.IndexByte(sc.src[idx+1:lineEnd], '>')
		if closeIdx < 0 {
			return dest, false
		}
		urlStart, urlEnd = idx+1, idx+1+closeIdx
		idx = urlEnd + 1
	} else {
		depth := 0
	scanURL:
		for ; idx < lineEnd; idx++ {
			switch sc.src[idx] {
			case ' ', '\t':
				break scanURL
			case '(':
				depth++
			case ')':
				if depth == 0 {
					break scanURL
				}
				depth--
			}
		}
		urlEnd = idx
	}
	if urlEnd > urlStart {
		dest.url = string(sc.src[urlStart:urlEnd])
		dest.children = append(dest.children, span.New(span.LinkURL, urlStart, urlEnd))
	}

	for idx < lineEnd && isSpace(sc.src[idx]) {
		idx++
	}
	if idx < lineEnd && (sc.src[idx] == '"' || sc.src[idx] == '\'') {
		quote := sc.src[idx]
		closeIdx := bytes.IndexByte(sc.src[idx+1:lineEnd], quote)
		if closeIdx < 0 {
			return dest, false
		}
		titleStart, titleEnd := idx+1, idx+1+closeIdx
		if titleEnd > titleStart {
			dest.title = string(sc.src[titleStart:titleEnd])
			dest.children = append(dest.children, span.New(span.LinkTitle, titleStart, titleEnd))
		}
		idx = titleEnd + 1
		for idx < lineEnd && isSpace(sc.src[idx]) {
			idx++
		}
	}

	if idx >= lineEnd || sc.src[idx] != ')' {
		return dest, false
	}
	dest.end = idx + 1
	return dest, true
}

// parsedDefinition holds the offsets of a `[id]: url "title"` declaration.
type parsedDefinition struct {
	idEnd                int
	urlStart, urlEnd     int
	titleStart, titleEnd int
	end                  int
}

// definition matches a line-leading `[id]: url "title"` declaration and
// registers it in the reference table.
func (sc *inlineScanner) definition(pos, end int, ctx inlineContext) *span.Span {
	if !sc.opts.Definitions || sc.opts.Refs == nil || ctx.inBold || ctx.inItalic || ctx.inLink {
		return nil
	}
	def, ok := sc.parseDefinition(pos, end)
	if !ok {
		return nil
	}

	id := string(sc.src[pos+1 : def.idEnd])
	url := string(sc.src[def.urlStart:def.urlEnd])
	title := ""
	if def.titleEnd > def.titleStart {
		title = string(sc.src[def.titleStart:def.titleEnd])
	}

	line, _ := sc.doc.LineAt(pos)
	_, duplicate := sc.opts.Refs.Define(id, url, title, line)
	if duplicate {
		sc.report(DuplicateReference, pos, "reference ["+id+"] is declared more than once")
	}

	declaration := span.New(span.ReferenceDefinition, pos, def.end)
	declaration.Attrs = &span.Attrs{Link: &span.Link{URL: url, Title: title, RefID: id, Resolved: true}}
	declaration.Append(
		span.New(span.LinkRefID, pos+1, def.idEnd),
		span.New(span.LinkURL, def.urlStart, def.urlEnd),
	)
	if def.titleEnd > def.titleStart {
		declaration.Append(span.New(span.LinkTitle, def.titleStart, def.titleEnd))
	}
	return declaration
}

// parseDefinition recognises a declaration at pos without registering it.
func (sc *inlineScanner) parseDefinition(pos, end int) (parsedDefinition, bool) {
	var def parsedDefinition
	if pos >= end || sc.src[pos] != '[' {
		return def, false
	}
	if pos > 0 && sc.src[pos-1] != '\n' {
		return def, false
	}

	lineEnd := sc.lineEnd(pos, end)
	idEnd := bytes.IndexByte(sc.src[pos+1:lineEnd], ']')
	if idEnd <= 0 {
		return def, false
	}
	idEnd += pos + 1
	id := sc.src[pos+1 : idEnd]
	if id[0] == '#' || bytes.IndexByte(id, '[') >= 0 || idEnd+1 >= lineEnd || sc.src[idEnd+1] != ':' {
		return def, false
	}

	idx := idEnd + 2
	for idx < lineEnd && isSpace(sc.src[idx]) {
		idx++
	}

	var urlStart, urlEnd int
	if idx < lineEnd && sc.src[idx] == '<' {
		closeIdx := bytes.IndexByte(sc.src[idx+1:lineEnd], '>')
		if closeIdx < 0 {
			return def, false
		}
		urlStart, urlEnd = idx+1, idx+1+closeIdx
		idx = urlEnd + 1
	} else {
		urlStart = idx
		for idx < lineEnd && !isSpace(sc.src[idx]) {
			idx++
		}
		urlEnd = idx
	}
	if urlEnd <= urlStart {
		return def, false
	}

	for idx < lineEnd && isSpace(sc.src[idx]) {
		idx++
	}

	titleStart, titleEnd := -1, -1
	if idx < lineEnd {
		var closing byte
		switch sc.src[idx] {
		case '"':
			closing = '"'
		case '\'':
			closing = '\''
		case '(':
			closing = ')'
		default:
			return def, false
		}
		last := bytes.LastIndexByte(sc.src[idx+1:lineEnd], closing)
		if last < 0 {
			return def, false
		}
		titleStart, titleEnd = idx+1, idx+1+last
		idx = titleEnd + 1
		for idx < lineEnd && isSpace(sc.src[idx]) {
			idx++
		}
		if idx != lineEnd {
			return def, false
		}
	}

	def.idEnd = idEnd
	def.urlStart, def.urlEnd = urlStart, urlEnd
	def.titleStart, def.titleEnd = titleStart, titleEnd
	def.end = pos + len(bytes.TrimRight(sc.src[pos:lineEnd], " \t"))
	return def, true
}

// citation matches (#...) on one line.
func (sc *inlineScanner) citation(pos, end int) *span.Span {
	lineEnd := sc.lineEnd(pos, end)
	if pos+2 >= lineEnd || sc.src[pos+1] != '#' {
		return nil
	}
	closeIdx := bytes.IndexByte(sc.src[pos+2:lineEnd], ')')
	if closeIdx <= 0 {
		return nil
	}
	closer := pos + 2 + closeIdx
	cite := span.New(span.Citation, pos, closer+1)
	cite.Attrs = &span.Attrs{Anchor: string(sc.src[pos+2 : closer])}
	return cite
}

// crossReference matches [#...] on one line.
func (sc *inlineScanner) crossReference(pos, end int) *span.Span {
	lineEnd := sc.lineEnd(pos, end)
	if pos+2 >= lineEnd || sc.src[pos+1] != '#' {
		return nil
	}
	closeIdx := bytes.IndexAny(sc.src[pos+2:lineEnd], "[]")
	if closeIdx <= 0 || sc.src[pos+2+closeIdx] != ']' {
		return nil
	}
	closer := pos + 2 + closeIdx
	ref := span.New(span.CrossReference, pos, closer+1)
	ref.Attrs = &span.Attrs{Anchor: string(sc.src[pos+2 : closer])}
	return ref
}

// shorthand matches [id] when id is already declared.
func (sc *inlineScanner) shorthand(pos, end int, ctx inlineContext) *span.Span {
	if ctx.inLink || sc.opts.Refs == nil {
		return nil
	}
	lineEnd := sc.lineEnd(pos, end)
	closeIdx := bytes.IndexAny(sc.src[pos+1:lineEnd], "[]")
	if closeIdx <= 0 || sc.src[pos+1+closeIdx] != ']' {
		return nil
	}
	closer := pos + 1 + closeIdx
	id := string(sc.src[pos+1 : closer])
	ref, ok := sc.opts.Refs.Lookup(id)
	if !ok {
		return nil
	}

	link := span.New(span.LinkText, pos, closer+1)
	link.Attrs = &span.Attrs{Link: &span.Link{URL: ref.URL, Title: ref.Title, RefID: id, Resolved: true}}
	link.Append(span.New(span.LinkRefID, pos+1, closer))
	return link
}

// autoLink matches <scheme:...> and <user@host>.
func (sc *inlineScanner) autoLink(pos, end int) *span.Span {
	lineEnd := sc.lineEnd(pos, end)
	closeIdx := bytes.IndexByte(sc.src[pos+1:lineEnd], '>')
	if closeIdx <= 0 {
		return nil
	}
	body := sc.src[pos+1 : pos+1+closeIdx]
	if bytes.ContainsAny(body, " \t<") {
		return nil
	}

	var url string
	switch {
	case isURI(body):
		url = string(body)
	case isEmail(body):
		url = "mailto:" + string(body)
	default:
		return nil
	}

	link := span.New(span.AutoLink, pos, pos+closeIdx+2)
	link.Attrs = &span.Attrs{Link: &span.Link{URL: url}}
	return link
}

func isURI(body []byte) bool {
	colon := bytes.IndexByte(body, ':')
	if colon < 2 || colon > maxSchemeLen || !isASCIILetter(body[0]) {
		return false
	}
	for _, char := range body[1:colon] {
		if !isASCIILetter(char) && !isDigit(char) && char != '+' && char != '.' && char != '-' {
			return false
		}
	}
	return true
}

func isEmail(body []byte) bool {
	local, domain, found := bytes.Cut(body, []byte("@"))
	if !found || len(local) == 0 || len(domain) == 0 || bytes.IndexByte(domain, '@') >= 0 {
		return false
	}
	for _, char := range local {
		if !isASCIILetter(char) && !isDigit(char) && !strings.ContainsRune(".!#$%&'*+/=?^_`{|}~-", rune(char)) {
			return false
		}
	}
	for _, char := range domain {
		if !isASCIILetter(char) && !isDigit(char) && char != '-' && char != '.' {
			return false
		}
	}
	return domain[0] != '.' && domain[len(domain)-1] != '.'
}

func isASCIILetter(char byte) bool {
	return ('a' <= char && char <= 'z') || ('A' <= char && char <= 'Z')
}

func isHexDigit(char byte) bool {
	return isDigit(char) || ('a' <= char && char <= 'f') || ('A' <= char && char <= 'F')
}

// entity matches &name;, &#123; and &#x1F;.
func (sc *inlineScanner) entity(pos, end int) *span.Span {
	lineEnd := sc.lineEnd(pos, end)
	idx := pos + 1

	accept := func(char byte) bool { return isASCIILetter(char) || isDigit(char) }
	limit := 32
	if idx < lineEnd && sc.src[idx] == '#' {
		idx++
		accept, limit = isDigit, 7
		if idx < lineEnd && (sc.src[idx] == 'x' || sc.src[idx] == 'X') {
			idx++
			accept, limit = isHexDigit, 6
		}
	} else if idx >= lineEnd || !isASCIILetter(sc.src[idx]) {
		return nil
	}

	start := idx
	for idx < lineEnd && idx-start < limit && accept(sc.src[idx]) {
		idx++
	}
	if idx == start || idx >= lineEnd || sc.src[idx] != ';' {
		return nil
	}
	return span.New(span.Entity, pos, idx+1)
}

// rawHTML matches an opening or closing tag, or a comment, on one line.
func (sc *inlineScanner) rawHTML(pos, end int) *span.Span {
	lineEnd := sc.lineEnd(pos, end)
	rest := sc.src[pos:lineEnd]

	if bytes.HasPrefix(rest, []byte("<!--")) {
		closeIdx := bytes.Index(rest[4:], []byte("-->"))
		if closeIdx < 0 {
			return nil
		}
		return span.New(span.RawHTML, pos, pos+4+closeIdx+3)
	}

	idx := 1
	closing := idx < len(rest) && rest[idx] == '/'
	if closing {
		idx++
	}
	if idx >= len(rest) || !isASCIILetter(rest[idx]) {
		return nil
	}
	for idx < len(rest) && (isASCIILetter(rest[idx]) || isDigit(rest[idx]) || rest[idx] == '-') {
		idx++
	}
	if idx >= len(rest) {
		return nil
	}

	switch char := rest[idx]; {
	case char == '>':
		return span.New(span.RawHTML, pos, pos+idx+1)
	case closing && !isSpace(char):
		return nil
	case !closing && !isSpace(char) && char != '/':
		return nil
	}

	closeIdx := bytes.IndexAny(rest[idx:], "<>")
	if closeIdx < 0 || rest[idx+closeIdx] != '>' {
		return nil
	}
	return span.New(span.RawHTML, pos, pos+idx+closeIdx+1)
}
