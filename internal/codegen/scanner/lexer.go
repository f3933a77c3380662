package scanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokChar
	tokNumber
	tokPunct
	tokEOF
)

type token struct {
	kind tokenKind
	text string // raw text; for tokString the unquoted value
	line int
}

func (t token) is(punct string) bool { return t.kind == tokPunct && t.text == punct }

func (t token) isIdent(name string) bool { return t.kind == tokIdent && t.text == name }

// lex splits Java source into tokens, dropping comments and whitespace.
// Only the lexical structure needed to find declarations and annotations is
// recognized; operators are emitted one character at a time.
func lex(src string) ([]token, error) {
	var toks []token
	line := 1
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			i++
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("line %d: unterminated comment", line)
			}
			line += strings.Count(src[i:i+2+end], "\n")
			i += end + 4
		case strings.HasPrefix(src[i:], `"""`):
			end := strings.Index(src[i+3:], `"""`)
			if end < 0 {
				return nil, fmt.Errorf("line %d: unterminated text block", line)
			}
			body := src[i+3 : i+3+end]
			toks = append(toks, token{kind: tokString, text: textBlock(body), line: line})
			line += strings.Count(src[i:i+6+end], "\n")
			i += end + 6
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(src) && src[j] != c {
				if src[j] == '\\' {
					j++
				}
				if j < len(src) && src[j] == '\n' {
					return nil, fmt.Errorf("line %d: unterminated literal", line)
				}
				j++
			}
			if j >= len(src) {
				return nil, fmt.Errorf("line %d: unterminated literal", line)
			}
			raw := src[i : j+1]
			if c == '"' {
				val, err := unquoteJava(raw)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				toks = append(toks, token{kind: tokString, text: val, line: line})
			} else {
				toks = append(toks, token{kind: tokChar, text: raw, line: line})
			}
			i = j + 1
		case isIdentStart(src, i):
			j := i
			for j < len(src) {
				r, size := utf8.DecodeRuneInString(src[j:])
				if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				j += size
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], line: line})
			i = j
		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && (isAlnum(src[j]) || src[j] == '.' || src[j] == '_') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], line: line})
			i = j
		default:
			if strings.HasPrefix(src[i:], "...") {
				toks = append(toks, token{kind: tokPunct, text: "...", line: line})
				i += 3
				continue
			}
			toks = append(toks, token{kind: tokPunct, text: string(c), line: line})
			i++
		}
	}
	toks = append(toks, token{kind: tokEOF, line: line})
	return toks, nil
}

func isIdentStart(src string, i int) bool {
	r, _ := utf8.DecodeRuneInString(src[i:])
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// unquoteJava decodes a Java string literal. Java escapes are a subset of
// Go's apart from octal escapes without a leading zero, which are rare in
// route paths and rejected here.
func unquoteJava(raw string) (string, error) {
	if !strings.Contains(raw, `\`) {
		return raw[1 : len(raw)-1], nil
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return "", fmt.Errorf("unsupported string literal %s", raw)
	}
	return s, nil
}

// textBlock strips the incidental indentation of a Java text block.
func textBlock(body string) string {
	body = strings.TrimPrefix(strings.TrimLeft(body, " \t"), "\n")
	lines := strings.Split(body, "\n")
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, l := range lines {
		if len(l) >= indent && indent > 0 {
			lines[i] = l[indent:]
		}
	}
	return strings.Join(lines, "\n")
}
