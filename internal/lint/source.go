package lint

import (
	"sort"
	"strings"
)

type region uint8

const (
	regionCode region = iota
	regionString
	regionComment
)

// source is a file split into lines with every byte classified as code,
// string literal or comment.
type source struct {
	text     string
	regions  []region
	lines    []string
	starts   []int
	unclosed []Diagnostic
}

func newSource(text string) *source {
	s := &source{
		text:    text,
		regions: make([]region, len(text)),
	}
	s.splitLines()
	s.classify()
	return s
}

func (s *source) splitLines() {
	start := 0
	for i := 0; i <= len(s.text); i++ {
		if i == len(s.text) || s.text[i] == '\n' {
			s.starts = append(s.starts, start)
			s.lines = append(s.lines, strings.TrimSuffix(s.text[start:i], "\r"))
			start = i + 1
		}
	}
}

func (s *source) classify() {
	text := s.text
	state := regionCode
	lineComment := false
	begin := 0
	var quote byte

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch state {
		case regionCode:
			if ch == '/' && i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*') {
				state, lineComment, begin = regionComment, text[i+1] == '/', i
				s.regions[i], s.regions[i+1] = regionComment, regionComment
				i++
				continue
			}
			if ch == '"' || ch == '\'' || ch == '`' {
				state, quote, begin = regionString, ch, i
				s.regions[i] = regionString
				continue
			}
			s.regions[i] = regionCode
		case regionString:
			if ch == '\n' && quote != '`' {
				s.unclosed = append(s.unclosed, s.diagnostic(begin, "Unclosed string."))
				state = regionCode
				s.regions[i] = regionCode
				continue
			}
			s.regions[i] = regionString
			switch {
			case ch == '\\' && i+1 < len(text):
				i++
				s.regions[i] = regionString
			case ch == quote:
				state = regionCode
			}
		case regionComment:
			if lineComment && ch == '\n' {
				state = regionCode
				s.regions[i] = regionCode
				continue
			}
			s.regions[i] = regionComment
			if !lineComment && ch == '*' && i+1 < len(text) && text[i+1] == '/' {
				i++
				s.regions[i] = regionComment
				state = regionCode
			}
		}
	}

	switch {
	case state == regionString:
		s.unclosed = append(s.unclosed, s.diagnostic(begin, "Unclosed string."))
	case state == regionComment && !lineComment:
		s.unclosed = append(s.unclosed, s.diagnostic(begin, "Unclosed comment."))
	}
}

// split returns the code and comment views of line idx. Bytes that belong to
// the other region are blanked so columns line up with the original line.
func (s *source) split(idx int) (code, comment string) {
	line := s.lines[idx]
	start := s.starts[idx]
	codeBuf := []byte(line)
	commentBuf := []byte(line)
	for i := 0; i < len(line); i++ {
		switch s.regions[start+i] {
		case regionCode:
			commentBuf[i] = ' '
		case regionComment:
			codeBuf[i] = ' '
		default:
			codeBuf[i] = ' '
			commentBuf[i] = ' '
		}
	}
	return string(codeBuf), string(commentBuf)
}

func (s *source) diagnostic(off int, reason string) Diagnostic {
	idx := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > off }) - 1
	return Diagnostic{
		Line:      idx + 1,
		Character: off - s.starts[idx] + 1,
		Reason:    reason,
		Evidence:  s.lines[idx],
	}
}
