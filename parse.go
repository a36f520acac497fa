package cson

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseError reports why a document could not be parsed. Lno is the
// 1-based line number of the offending source line.
type ParseError struct {
	Lno int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d: %s", e.Lno, e.Msg)
}

// maxDepth bounds block nesting so pathological input cannot exhaust the
// goroutine stack.
const maxDepth = 200

type parser struct {
	next    func() (int, Line, bool)
	lastLno int
}

func (p *parser) read() (int, Line) {
	lno, line, ok := p.next()
	if !ok {
		return p.lastLno, Line{Kind: endOfFile}
	}
	p.lastLno = lno
	return lno, line
}

// Parse converts a CSON document into its value tree. The root of a
// document is an implicit mapping: it has no surrounding braces, and an
// empty or all-blank document parses to an empty one.
//
// Parse never returns a partial tree: the first structural or scalar error
// aborts the whole parse with a [*ParseError] locating the offending line.
// Each call owns its own cursor, so concurrent parses of different
// documents are safe.
func Parse(input string) (*Value, error) {
	next, stop := iter.Pull2(Lines(input))
	defer stop()

	p := &parser{next: next, lastLno: 1}
	root, err := p.parseMap(0, false)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (p *parser) parseMap(depth int, delimited bool) (*Value, error) {
	m := NewMapping()
	for {
		lno, line := p.read()
		switch line.Kind {
		case KeyValue:
			value, err := decodeScalar(lno, line.Content)
			if err != nil {
				return nil, err
			}
			m.Set(line.Key, value)

		case BlockOpen:
			if line.Key == "" {
				return nil, &ParseError{lno, fmt.Sprintf("unexpected %q in map, expected a key", line.Content)}
			}
			value, err := p.parseBlock(lno, depth, line.Content)
			if err != nil {
				return nil, err
			}
			m.Set(line.Key, value)

		case ListItem:
			return nil, &ParseError{lno, "unexpected list item in map"}

		case Close:
			if !delimited {
				return nil, &ParseError{lno, fmt.Sprintf("unmatched %q", line.Content)}
			}
			if line.Content != "}" {
				return nil, &ParseError{lno, `mismatched "]", expected "}"`}
			}
			return &Value{Kind: Map, Map: m}, nil

		case Error:
			return nil, &ParseError{lno, line.Content}

		case endOfFile:
			if delimited {
				return nil, &ParseError{lno, "unterminated map"}
			}
			return &Value{Kind: Map, Map: m}, nil
		}
	}
}

func (p *parser) parseList(depth int) (*Value, error) {
	items := []*Value{}
	for {
		lno, line := p.read()
		switch line.Kind {
		case ListItem:
			value, err := decodeScalar(lno, line.Content)
			if err != nil {
				return nil, err
			}
			items = append(items, value)

		case BlockOpen:
			if line.Key != "" {
				return nil, &ParseError{lno, fmt.Sprintf("unexpected key %q in list", line.Key)}
			}
			value, err := p.parseBlock(lno, depth, line.Content)
			if err != nil {
				return nil, err
			}
			items = append(items, value)

		case KeyValue:
			return nil, &ParseError{lno, fmt.Sprintf("unexpected key %q in list", line.Key)}

		case Close:
			if line.Content != "]" {
				return nil, &ParseError{lno, `mismatched "}", expected "]"`}
			}
			return &Value{Kind: List, Items: items}, nil

		case Error:
			return nil, &ParseError{lno, line.Content}

		case endOfFile:
			return nil, &ParseError{lno, "unterminated list"}
		}
	}
}

func (p *parser) parseBlock(lno, depth int, open string) (*Value, error) {
	if depth+1 > maxDepth {
		return nil, &ParseError{lno, fmt.Sprintf("blocks nested deeper than %d levels", maxDepth)}
	}
	if open == "{" {
		return p.parseMap(depth+1, true)
	}
	return p.parseList(depth + 1)
}

var numberRegexp = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// decodeScalar turns the raw text of a value literal into a leaf Value.
// The dialect is strict about quoting: bare text that is not a number,
// true, or false is an error rather than a string.
func decodeScalar(lno int, text string) (*Value, error) {
	switch {
	case text == "":
		return &Value{Kind: Null}, nil

	case text == "true", text == "false":
		return &Value{Kind: Boolean, Bool: text == "true"}, nil

	case strings.HasPrefix(text, `"`):
		content, msg := decodeQuoted(text)
		if msg != "" {
			return nil, &ParseError{lno, msg}
		}
		return &Value{Kind: String, Str: content}, nil

	case strings.HasPrefix(text, "'''"):
		content, msg := decodeTriple(text)
		if msg != "" {
			return nil, &ParseError{lno, msg}
		}
		return &Value{Kind: String, Str: content}, nil

	case numberRegexp.MatchString(text):
		num, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &ParseError{lno, fmt.Sprintf("invalid number %s", text)}
		}
		return &Value{Kind: Number, Num: num, Str: text}, nil

	default:
		return nil, &ParseError{lno, fmt.Sprintf("invalid value %s, expected a quoted string, number, true or false", text)}
	}
}

// decodeQuoted strips the surrounding double quotes. Per the dialect there
// is no escape processing: a backslash passes through verbatim, but still
// shields the following character from closing the string.
func decodeQuoted(text string) (string, string) {
	if !utf8.ValidString(text) {
		return "", "invalid UTF-8"
	}
	wasEscape := false
	for i, c := range text[1:] {
		if c == '"' && !wasEscape {
			if i+2 != len(text) {
				return "", "characters after quotes"
			}
			return text[1 : i+1], ""
		}
		wasEscape = c == '\\' && !wasEscape
	}
	return "", "unclosed quotes"
}

func decodeTriple(text string) (string, string) {
	if !utf8.ValidString(text) {
		return "", "invalid UTF-8"
	}
	end := strings.Index(text[3:], "'''")
	if end < 0 {
		return "", "unterminated ''' string"
	}
	if 3+end+3 != len(text) {
		return "", "characters after quotes"
	}
	return text[3 : 3+end], ""
}
