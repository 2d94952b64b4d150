package scan

import (
	"bytes"

	"github.com/yaklabco/dllup/pkg/span"
)

func (s *State) inline(start, end int, definitions bool) []*span.Span {
	return Inline(s.Doc, start, end, InlineOptions{
		AutoLinks:   true,
		Definitions: definitions,
		Refs:        s.Refs,
		Report:      s.Report,
	})
}

// lastEnd returns the end of the last consumed line, excluding its newline.
func (s *State) lastEnd() int {
	return s.Doc.Lines[s.Line-1].NewlineStart
}

// consumeLazy advances past lines that lazily continue the open region.
func (s *State) consumeLazy() {
	for s.Line < s.Doc.LineCount() && continuesLazily(classifyLine(s.lineText(s.Line))) {
		s.Line++
	}
}

func (s *State) scanSingle(category span.Category) *span.Span {
	line := s.Doc.Lines[s.Line]
	text := bytes.TrimRight(s.lineText(s.Line), " \t")
	s.Line++
	return span.New(category, line.Start, line.Start+len(text))
}

func (s *State) scanHeading() *span.Span {
	line := s.Doc.Lines[s.Line]
	text := s.lineText(s.Line)
	s.Line++

	level := headingLevel(text)
	region := span.New(span.HeadingCategory(level), line.Start, line.NewlineStart)
	region.Attrs = &span.Attrs{Level: level, Number: s.Anchors.NextOrdinal(OrdinalSection)}
	region.Append(span.New(span.HeadingMarker, line.Start, line.Start+level))

	bodyStart := level
	for bodyStart < len(text) && isSpace(text[bodyStart]) {
		bodyStart++
	}
	bodyEnd := len(bytes.TrimRight(text, " \t"))

	var closing *span.Span
	pos := bodyEnd
	for pos > bodyStart && text[pos-1] == '#' {
		pos--
	}
	if pos < bodyEnd && (pos == bodyStart || isSpace(text[pos-1])) {
		closing = span.New(span.HeadingMarker, line.Start+pos, line.Start+bodyEnd)
		bodyEnd = len(bytes.TrimRight(text[:pos], " \t"))
	}
	bodyEnd = max(bodyEnd, bodyStart)

	region.Append(s.inline(line.Start+bodyStart, line.Start+bodyEnd, false)...)
	region.Append(closing)

	if s.Options.HeadingAnchors {
		region.Attrs.Anchor = s.Anchors.Next(string(text[bodyStart:bodyEnd]))
	}
	return region
}

// delimiterSpan covers the trimmed delimiter on a line.
func (s *State) delimiterSpan(category span.Category, idx int) *span.Span {
	line := s.Doc.Lines[idx]
	text := s.lineText(idx)
	lead := len(text) - len(bytes.TrimLeft(text, " \t"))
	trimmed := bytes.TrimSpace(text)
	return span.New(category, line.Start+lead, line.Start+lead+len(trimmed))
}

// scanDelimited consumes lines up to a line whose trimmed text equals
// delimiter. It returns the content span (nil when there are no content
// lines) and whether the closing line was found. The cursor is left after the
// closing line, or at end of input.
func (s *State) scanDelimited(category span.Category, delimiter string) (*span.Span, bool) {
	first := s.Line
	for s.Line < s.Doc.LineCount() {
		if string(bytes.TrimSpace(s.lineText(s.Line))) == delimiter {
			break
		}
		s.Line++
	}

	var content *span.Span
	if s.Line > first {
		content = span.New(category, s.Doc.Lines[first].Start, s.Doc.Lines[s.Line-1].NewlineStart)
	}
	return content, s.Line < s.Doc.LineCount()
}

func (s *State) scanFence() *span.Span {
	open := s.Line
	delimiter := fenceDelimiter(s.lineText(open))
	region := span.New(span.CodeBlock, s.Doc.Lines[open].Start, 0)
	region.Attrs = &span.Attrs{}
	region.Append(s.delimiterSpan(span.FenceDelimiter, open))
	s.Line++

	if s.Line < s.Doc.LineCount() {
		trimmed := bytes.TrimSpace(s.lineText(s.Line))
		if bytes.HasPrefix(trimmed, []byte("lang ")) {
			region.Attrs.Language = string(bytes.TrimSpace(trimmed[len("lang "):]))
			region.Append(s.delimiterSpan(span.CodeLanguage, s.Line))
			s.Line++
		}
	}

	content, closed := s.scanDelimited(span.CodeContent, delimiter)
	if content != nil {
		region.Append(content)
		s.embed(content, region.Attrs)
	}

	if closed {
		region.Append(s.delimiterSpan(span.FenceDelimiter, s.Line))
		s.Line++
	} else {
		s.report(UnterminatedFence, region.Start, "code fence %q is never closed", delimiter)
	}

	region.End = s.lastEnd()
	return region
}

func (s *State) scanRaw() *span.Span {
	open := s.Line
	region := span.New(span.RawBlock, s.Doc.Lines[open].Start, 0)
	region.Append(s.delimiterSpan(span.RawDelimiter, open))
	s.Line++

	content, closed := s.scanDelimited(span.RawContent, rawFence)
	region.Append(content)

	if closed {
		region.Append(s.delimiterSpan(span.RawDelimiter, s.Line))
		s.Line++
	} else {
		s.report(UnterminatedRaw, region.Start, "raw block is never closed")
	}

	region.End = s.lastEnd()
	return region
}

// scanMarked groups lines opening with a two-byte marker plus lazy
// continuation lines, as used by block quotes and display math.
func (s *State) scanMarked(category span.Category, kind lineKind, eachLine func(region *span.Span, marked bool, start, end int)) *span.Span {
	region := span.New(category, s.Doc.Lines[s.Line].Start, 0)
	first := s.Line

	for s.Line < s.Doc.LineCount() {
		current := classifyLine(s.lineText(s.Line))
		if s.Line != first && current != kind && !continuesLazily(current) {
			break
		}
		line := s.Doc.Lines[s.Line]
		eachLine(region, current == kind, line.Start, line.NewlineStart)
		s.Line++
	}

	region.End = s.lastEnd()
	return region
}

func (s *State) scanQuote() *span.Span {
	return s.scanMarked(span.Quote, kindQuote, func(region *span.Span, marked bool, start, end int) {
		if marked {
			region.Append(span.New(span.QuoteMarker, start, start+2))
			start += 2
		}
		region.Append(s.inline(start, end, false)...)
	})
}

func (s *State) scanMath() *span.Span {
	number := s.Anchors.NextOrdinal(OrdinalEquation)
	region := s.scanMarked(span.DisplayMath, kindMath, func(region *span.Span, marked bool, start, end int) {
		if marked {
			region.Append(span.New(span.MathMarker, start, start+2))
			start += 2
		}
		if end > start {
			region.Append(span.New(span.MathContent, start, end))
		}
	})
	region.Attrs = &span.Attrs{Number: number}
	return region
}

func (s *State) scanPicture() *span.Span {
	line := s.Doc.Lines[s.Line]
	text := s.lineText(s.Line)
	s.Line++

	region := span.New(span.Picture, line.Start, 0)
	region.Attrs = &span.Attrs{Number: s.Anchors.NextOrdinal(OrdinalFigure)}
	region.Append(span.New(span.PicKeyword, line.Start, line.Start+len("pic")))

	pos := len("pic ")
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	urlStart := pos
	for pos < len(text) && !isSpace(text[pos]) {
		pos++
	}
	urlEnd := pos
	if urlEnd > urlStart {
		region.Append(span.New(span.PicURL, line.Start+urlStart, line.Start+urlEnd))
		region.Attrs.Link = &span.Link{URL: string(text[urlStart:urlEnd])}
	}

	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}

	captionStart := -1
	if idx := bytes.Index(text[urlEnd:], []byte(" : ")); idx >= 0 {
		altEnd := len(bytes.TrimRight(text[:urlEnd+idx], " \t"))
		if altEnd > pos {
			region.Append(span.New(span.PicAlt, line.Start+pos, line.Start+altEnd))
		}
		captionPos := urlEnd + idx + len(" : ")
		for captionPos < len(text) && isSpace(text[captionPos]) {
			captionPos++
		}
		if captionPos < len(text) {
			captionStart = line.Start + captionPos
		}
	} else if pos < len(bytes.TrimRight(text, " \t")) {
		captionStart = line.Start + pos
	}

	firstContinuation := s.Line
	s.consumeLazy()
	if captionStart < 0 && s.Line > firstContinuation {
		captionStart = s.Doc.Lines[firstContinuation].Start
	}

	region.End = s.lastEnd()
	if captionStart >= 0 && captionStart < region.End {
		caption := span.New(span.PicCaption, captionStart, region.End)
		caption.Append(s.inline(captionStart, region.End, false)...)
		region.Append(caption)

		if ref := span.FindFirst(caption.Children, func(child *span.Span) bool {
			return child.Category == span.CrossReference
		}); ref != nil && ref.Attrs != nil {
			region.Attrs.Anchor = ref.Attrs.Anchor
		}
	}

	return region
}

func (s *State) scanButton() *span.Span {
	line := s.Doc.Lines[s.Line]
	text := s.lineText(s.Line)
	s.Line++

	region := span.New(span.BigButton, line.Start, line.NewlineStart)
	region.Append(span.New(span.ButtonMarker, line.Start, line.Start+len("::")))

	pos := len(":: ")
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	end := len(bytes.TrimRight(text, " \t"))
	if pos >= end {
		return region
	}

	urlStart := pos
	if idx := bytes.LastIndexAny(text[pos:end], " \t"); idx >= 0 {
		urlStart = pos + idx + 1
		textEnd := len(bytes.TrimRight(text[:urlStart], " \t"))
		buttonText := span.New(span.ButtonText, line.Start+pos, line.Start+textEnd)
		buttonText.Append(s.inline(buttonText.Start, buttonText.End, false)...)
		region.Append(buttonText)
	}

	region.Append(span.New(span.ButtonURL, line.Start+urlStart, line.Start+end))
	region.Attrs = &span.Attrs{Link: &span.Link{URL: string(text[urlStart:end])}}
	return region
}

func (s *State) scanTable() *span.Span {
	region := span.New(span.Table, s.Doc.Lines[s.Line].Start, 0)

	for s.Line < s.Doc.LineCount() {
		text := s.lineText(s.Line)
		kind := classifyLine(text)
		if kind != kindTableRow && kind != kindTableSeparator {
			break
		}
		line := s.Doc.Lines[s.Line]
		end := line.Start + len(bytes.TrimRight(text, " \t"))
		s.Line++

		if kind == kindTableSeparator {
			row := span.New(span.TableSeparator, line.Start, end)
			for idx, char := range text[:end-line.Start] {
				if char == '|' {
					row.Append(span.New(span.TableDelimiter, line.Start+idx, line.Start+idx+1))
				}
			}
			region.Append(row)
			continue
		}

		row := span.New(span.TableRow, line.Start, end)
		cellStart := line.Start
		for idx, char := range text[:end-line.Start] {
			if char != '|' || (idx > 0 && text[idx-1] == '\\') {
				continue
			}
			offset := line.Start + idx
			row.Append(s.inline(cellStart, offset, false)...)
			row.Append(span.New(span.TableDelimiter, offset, offset+1))
			cellStart = offset + 1
		}
		row.Append(s.inline(cellStart, end, false)...)
		region.Append(row)
	}

	region.End = s.Doc.Lines[s.Line-1].Start + len(bytes.TrimRight(s.lineText(s.Line-1), " \t"))
	return region
}

func (s *State) scanListItem() *span.Span {
	line := s.Doc.Lines[s.Line]
	marker := parseListMarker(s.lineText(s.Line))
	s.Line++
	s.consumeLazy()

	category := span.BulletItem
	attrs := &span.Attrs{Level: marker.level}
	if marker.ordered {
		category = span.OrderedItem
		attrs = &span.Attrs{Number: marker.number}
	}

	region := span.New(category, line.Start, s.lastEnd()).WithAttrs(attrs)
	region.Append(span.New(span.ListMarker, line.Start+marker.start, line.Start+marker.end))
	region.Append(s.inline(line.Start+marker.body, region.End, false)...)
	return region
}

func (s *State) scanParagraph() *span.Span {
	start := s.Doc.Lines[s.Line].Start
	s.Line++
	s.consumeLazy()

	region := span.New(span.Paragraph, start, s.lastEnd())
	region.Append(s.inline(region.Start, region.End, true)...)
	return region
}
