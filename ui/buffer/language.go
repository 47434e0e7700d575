package buffer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Syntax uint8

const (
	Default Syntax = iota
	Column         // Not necessarily a Syntax; useful for Colorscheming the editor column
	Keyword
	Builtin
	SelfParam
	String
	Comment
	Number
	CallName     // Identifier immediately followed by an open paren
	ClassName    // Identifier following the class keyword
	FunctionName // Identifier following the def keyword
)

// A BlockState is the multi-line string scanner state carried from the end of
// one line into the start of the next. The zero value means the scanner is
// outside any multi-line string.
type BlockState uint8

const (
	StateClean    BlockState = iota
	StateInSingle            // inside an unterminated '''...''' string
	StateInDouble            // inside an unterminated """...""" string
)

func (s BlockState) String() string {
	switch s {
	case StateInSingle:
		return "in-single"
	case StateInDouble:
		return "in-double"
	default:
		return "clean"
	}
}

// delim returns the closing delimiter the state is waiting on, or "".
func (s BlockState) delim() string {
	switch s {
	case StateInSingle:
		return "'''"
	case StateInDouble:
		return `"""`
	}
	return ""
}

// A Span styles the runes of one line between Col and EndCol, inclusive.
type Span struct {
	Col    int
	EndCol int
	Syntax Syntax
}

// A Rule pairs a pattern with the Syntax its matches are styled as. When
// Group is non-zero, only that submatch is styled, which stands in for
// lookbehind: `\bdef\s+(name)` with Group 1 styles just the name.
type Rule struct {
	Pattern *regexp.Regexp
	Group   int
	Syntax  Syntax
}

// A Language is a named, ordered rule set. Order is significant: rules are
// applied first to last over a per-rune style buffer, so a later rule
// overwrites any earlier rule at the character positions where they overlap.
type Language struct {
	Name      string
	Filetypes []string // .py, .go, etc.
	Rules     []Rule

	// TripleQuoteStrings enables the multi-line '''/""" string scanner.
	TripleQuoteStrings bool
}

const tripleLen = 3

// HighlightLine produces the style spans for a single line of text, given the
// block state carried out of the previous line, and returns the state carried
// into the next line. The line must not include its trailing delimiter.
//
// All single-line rules are applied in order first; the triple-quoted string
// scan runs last and overwrites any rule styling where they overlap. The
// function is pure: it never fails, and identical inputs produce identical
// outputs.
func (l *Language) HighlightLine(line []byte, in BlockState) ([]Span, BlockState) {
	if len(line) == 0 {
		return nil, in
	}

	// One style slot per rune; rule application is last-write-wins per slot.
	styles := make([]Syntax, utf8.RuneCount(line))

	// byteCol maps a byte offset within line to its rune column.
	byteCol := make([]int, len(line)+1)
	col := 0
	for i := 0; i < len(line); col++ {
		_, size := utf8.DecodeRune(line[i:])
		for j := 0; j < size; j++ {
			byteCol[i+j] = col
		}
		i += size
	}
	byteCol[len(line)] = col

	paint := func(start, end int, s Syntax) { // byte offsets, end exclusive
		if start >= end {
			return
		}
		for c := byteCol[start]; c <= byteCol[end-1]; c++ {
			styles[c] = s
		}
	}

	for _, rule := range l.Rules {
		for _, m := range rule.Pattern.FindAllSubmatchIndex(line, -1) {
			start, end := m[0], m[1]
			if rule.Group > 0 {
				if 2*rule.Group+1 >= len(m) || m[2*rule.Group] < 0 {
					continue
				}
				start, end = m[2*rule.Group], m[2*rule.Group+1]
			}
			paint(start, end, rule.Syntax)
		}
	}

	out := StateClean
	if l.TripleQuoteStrings {
		out = scanTripleQuotes(string(line), in, paint)
	}

	return compressSpans(styles), out
}

// scanTripleQuotes runs the multi-line string state machine over one line,
// painting String over every region inside a triple-quoted string, and
// returns the state to carry into the next line.
func scanTripleQuotes(text string, in BlockState, paint func(start, end int, s Syntax)) BlockState {
	pos := 0

	// Continuing a string opened on an earlier line: find its closer first.
	if in != StateClean {
		end := strings.Index(text, in.delim())
		if end < 0 {
			paint(0, len(text), String) // Whole line is still inside the string
			return in
		}
		paint(0, end+tripleLen, String)
		pos = end + tripleLen
	}

	// Scan the remainder for newly opening strings. A single line may open
	// and close several independent triple-quoted strings.
	for pos < len(text) {
		single := strings.Index(text[pos:], "'''")
		double := strings.Index(text[pos:], `"""`)
		if single < 0 && double < 0 {
			break
		}

		var open int
		var state BlockState
		if double < 0 || (single >= 0 && single < double) {
			open, state = pos+single, StateInSingle
		} else {
			open, state = pos+double, StateInDouble
		}

		// The closer may not overlap the opener.
		end := strings.Index(text[open+tripleLen:], state.delim())
		if end < 0 {
			paint(open, len(text), String)
			return state
		}
		closeEnd := open + tripleLen + end + tripleLen
		paint(open, closeEnd, String)
		pos = closeEnd
	}

	return StateClean
}

// compressSpans converts a per-rune style buffer into maximal runs of
// non-Default styling, ordered by column.
func compressSpans(styles []Syntax) []Span {
	var spans []Span
	for col := 0; col < len(styles); {
		if styles[col] == Default {
			col++
			continue
		}
		end := col
		for end+1 < len(styles) && styles[end+1] == styles[col] {
			end++
		}
		spans = append(spans, Span{Col: col, EndCol: end, Syntax: styles[col]})
		col = end + 1
	}
	return spans
}
