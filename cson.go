package cson

import (
	"iter"
	"regexp"
	"strings"
)

// LineKind represents the possible structural roles of a logical line in a
// CSON document.
type LineKind int8

// These kinds are carried by the lines yielded from [Lines].
const (
	endOfFile = LineKind(iota)
	BlockOpen
	KeyValue
	ListItem
	Close
	Error
)

func (k LineKind) String() string {
	switch k {
	case BlockOpen:
		return "BlockOpen"
	case KeyValue:
		return "KeyValue"
	case ListItem:
		return "ListItem"
	case Close:
		return "Close"
	case Error:
		return "Error"
	case endOfFile:
		return "EndOfFile"
	default:
		panic("Unknown LineKind")
	}
}

func (k LineKind) GoString() string {
	return k.String()
}

// Line is one classified logical line. Key is set for [BlockOpen] and
// [KeyValue] lines. Content holds the raw scalar text for [KeyValue] and
// [ListItem], the opening delimiter ("{" or "[") for [BlockOpen], the
// closing delimiter ("}" or "]") for [Close], and the message for [Error].
type Line struct {
	Kind    LineKind
	Key     string
	Content string
}

var lineRegexp = regexp.MustCompile("\r\n|\r|\n")

func physicalLines(input string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lno := 1
		for match := lineRegexp.FindStringIndex(input); match != nil; match = lineRegexp.FindStringIndex(input) {
			if !yield(lno, input[:match[0]]) {
				return
			}
			input = input[match[1]:]
			lno++
		}
		yield(lno, input)
	}
}

// Keys are bare identifiers. Boostnote only ever writes camelCase ASCII
// keys, plus "-" which appears in user-defined tags used as keys.
var keyRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*:`)

// tripleClosed reports whether a scalar beginning with ''' is terminated on
// the same line. The shortest closed form is '''''' (the empty string).
func tripleClosed(text string) bool {
	return len(text) >= 6 && strings.Contains(text[3:], "'''")
}

// Lines iterates over the classified logical lines of the input with their
// associated (1-based) line number. The sequence is lazy, finite, and
// single-pass: to restart it, call Lines again on the original input.
//
// Blank lines and lines whose first non-space character is "#" carry no
// meaning and are never yielded. A multi-line triple-quoted string is
// folded into a single [KeyValue] or [ListItem] line, yielded at the line
// on which it opened.
//
// An [Error] line is yielded when the classifier itself fails (currently
// only for a triple-quoted string left open at end of input). Structural
// problems are left for the consumer, which knows the surrounding context.
func Lines(input string) iter.Seq2[int, Line] {
	return func(yield func(int, Line) bool) {
		next, stop := iter.Pull2(physicalLines(input))
		defer stop()

		for lno, content, ok := next(); ok; lno, content, ok = next() {
			trimmed := strings.TrimSpace(content)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}

			switch trimmed {
			case "}", "]":
				if !yield(lno, Line{Kind: Close, Content: trimmed}) {
					return
				}
				continue
			case "{", "[":
				if !yield(lno, Line{Kind: BlockOpen, Content: trimmed}) {
					return
				}
				continue
			}

			key := ""
			rest := trimmed
			if match := keyRegexp.FindString(trimmed); match != "" {
				key = match[:len(match)-1]
				rest = strings.TrimSpace(trimmed[len(match):])
			}

			if key != "" && (rest == "{" || rest == "[") {
				if !yield(lno, Line{Kind: BlockOpen, Key: key, Content: rest}) {
					return
				}
				continue
			}

			if strings.HasPrefix(rest, "'''") && !tripleClosed(rest) {
				joined, closed := continueTriple(next, rest)
				if !closed {
					yield(lno, Line{Kind: Error, Content: "unterminated ''' string"})
					return
				}
				rest = joined
			}

			kind := ListItem
			if key != "" {
				kind = KeyValue
			}
			if !yield(lno, Line{Kind: kind, Key: key, Content: rest}) {
				return
			}
		}
	}
}

// continueTriple consumes raw physical lines until one contains the closing
// ''' delimiter, preserving internal line breaks and indentation verbatim.
// The returned text still carries both delimiters; decoding strips them.
func continueTriple(next func() (int, string, bool), first string) (string, bool) {
	var b strings.Builder
	b.WriteString(first)
	for {
		_, content, ok := next()
		if !ok {
			return "", false
		}
		b.WriteString("\n")
		if i := strings.Index(content, "'''"); i >= 0 {
			b.WriteString(content[:i+3])
			tail := strings.TrimSpace(content[i+3:])
			if tail != "" {
				// Text after the closing delimiter stays attached so
				// the scalar decoder reports it on the right value.
				b.WriteString(tail)
			}
			return b.String(), true
		}
		b.WriteString(content)
	}
}
