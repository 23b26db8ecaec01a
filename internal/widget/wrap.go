package widget

// Span is a half-open rune range [Start, End) of a logical line that is
// drawn as one visual row in wrap mode.
type Span struct {
	Start int
	End   int
}

// Len is the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// WrapLine splits line into visual rows at most cols wide. Breaks happen
// after a space or tab where possible; a word longer than cols is cut at the
// column boundary. When such a cut leaves only the word's trailing blank, the
// blank opens the next row without counting against its width, so
// "hello world" at 5 columns wraps to [0,5) and [5,11).
func WrapLine(line []rune, cols int) []Span {
	if cols <= 0 || len(line) == 0 {
		return []Span{{Start: 0, End: len(line)}}
	}

	var spans []Span
	start, width := 0, 0
	for ts := 0; ts < len(line); {
		te := nextToken(line, ts)
		n := te - ts
		if width+n <= cols {
			width += n
			ts = te
			continue
		}
		if width > 0 {
			spans = append(spans, Span{Start: start, End: ts})
			start, width = ts, 0
		}
		for n > cols {
			cut := ts + cols
			spans = append(spans, Span{Start: start, End: cut})
			start = cut
			if te-cut == 1 && isBlank(line[cut]) {
				ts, n = te, 0
				break
			}
			ts, n = cut, te-cut
		}
		width += n
		ts = te
	}
	return append(spans, Span{Start: start, End: len(line)})
}

// nextToken returns the end of the token starting at i: up to and including
// the first space or tab, or the end of the line.
func nextToken(line []rune, i int) int {
	for ; i < len(line); i++ {
		if isBlank(line[i]) {
			return i + 1
		}
	}
	return len(line)
}

// lead is the number of leading blanks skipped when drawing s, non-zero only
// for a row that opens with a carried blank.
func (s Span) lead(line []rune, cols int) int {
	over := s.Len() - cols
	skip := 0
	for skip < over && isBlank(line[s.Start+skip]) {
		skip++
	}
	return skip
}

// spanFor picks the row holding column col: the first span containing it, or
// the last span for the end-of-line caret.
func spanFor(spans []Span, col int) int {
	for i, s := range spans {
		if s.Start <= col && col < s.End {
			return i
		}
	}
	return len(spans) - 1
}
