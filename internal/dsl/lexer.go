package dsl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof rune = -1

type lexer struct {
	src  string
	off  int
	line int
	col  int

	keepComments bool
	comments     []comment
	seenToken    bool
}

func newLexer(src string, keepComments bool) *lexer {
	l := &lexer{src: src, line: 1, col: 1, keepComments: keepComments}
	if strings.HasPrefix(src, "\uFEFF") {
		l.off = len("\uFEFF")
	}
	return l
}

func (l *lexer) peek() rune {
	if l.off >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return r
}

// peekByte looks n bytes ahead; only used for ASCII lookahead.
func (l *lexer) peekByte(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *lexer) advance() rune {
	if l.off >= len(l.src) {
		return eof
	}
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) pos() Pos {
	return Pos{Line: l.line, Col: l.col}
}

// skipSpaceAndComments reports whether an empty line precedes the next
// token. Comments are recorded when the lexer keeps them.
func (l *lexer) skipSpaceAndComments() bool {
	newlines := 0
	for {
		r := l.peek()
		switch {
		case r == eof:
			return newlines > 1
		case unicode.IsSpace(r):
			if r == '\n' {
				newlines++
			}
			l.advance()
		case r == '#', r == '/' && l.peekByte(1) == '/':
			start := l.off
			for r := l.peek(); r != eof && r != '\n'; r = l.peek() {
				l.advance()
			}
			if l.keepComments {
				l.comments = append(l.comments, comment{
					text:     strings.TrimRightFunc(l.src[start:l.off], unicode.IsSpace),
					trailing: l.seenToken && newlines == 0,
					blank:    newlines > 1,
				})
			}
			newlines = 0
		default:
			return newlines > 1
		}
	}
}

// takeComments returns the comments seen since the last call.
func (l *lexer) takeComments() []comment {
	cs := l.comments
	l.comments = nil
	return cs
}

func (l *lexer) next() token {
	blank := l.skipSpaceAndComments()
	tok := l.scan()
	tok.blank = blank
	l.seenToken = true
	return tok
}

func (l *lexer) scan() token {
	pos := l.pos()
	start := l.off
	r := l.peek()

	switch {
	case r == eof:
		return token{kind: tokEOF, pos: pos}
	case r == '{':
		l.advance()
		return token{kind: tokLBrace, text: "{", pos: pos}
	case r == '}':
		l.advance()
		return token{kind: tokRBrace, text: "}", pos: pos}
	case r == ':':
		l.advance()
		return token{kind: tokColon, text: ":", pos: pos}
	case r == ',':
		l.advance()
		return token{kind: tokComma, text: ",", pos: pos}
	case r == '"':
		return l.lexString(pos)
	case r == '-' || isDigit(r):
		return l.lexNumber(pos)
	case isIdentStart(r):
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return token{kind: tokIdent, text: l.src[start:l.off], pos: pos}
	}

	l.advance()
	return token{
		kind: tokIllegal,
		text: l.src[start:l.off],
		pos:  pos,
		err:  fmt.Sprintf("unexpected character %q", r),
	}
}

func (l *lexer) lexString(pos Pos) token {
	start := l.off
	l.advance()
	for {
		r := l.peek()
		if r == eof || r == '\n' {
			return token{kind: tokIllegal, text: l.src[start:l.off], pos: pos, err: "unterminated string"}
		}
		l.advance()
		if r == '\\' {
			if next := l.peek(); next == eof || next == '\n' {
				return token{kind: tokIllegal, text: l.src[start:l.off], pos: pos, err: "unterminated string"}
			}
			l.advance()
			continue
		}
		if r == '"' {
			break
		}
	}

	raw := l.src[start:l.off]
	val, err := strconv.Unquote(raw)
	if err != nil {
		return token{kind: tokIllegal, text: raw, pos: pos, err: fmt.Sprintf("invalid escape sequence in string %s", raw)}
	}
	return token{kind: tokString, text: raw, val: val, pos: pos}
}

func (l *lexer) lexNumber(pos Pos) token {
	start := l.off
	if l.peek() == '-' {
		l.advance()
		if !isDigit(l.peek()) {
			return token{kind: tokIllegal, text: "-", pos: pos, err: "expected digit after '-'"}
		}
	}
	l.digits()

	if l.peek() == '.' && isDigit(rune(l.peekByte(1))) {
		l.advance()
		l.digits()
	}

	if r := l.peek(); r == 'e' || r == 'E' {
		next := l.peekByte(1)
		if isDigit(rune(next)) {
			l.advance()
			l.digits()
		} else if (next == '+' || next == '-') && isDigit(rune(l.peekByte(2))) {
			l.advance()
			l.advance()
			l.digits()
		}
	}

	if isIdentPart(l.peek()) || l.peek() == '.' {
		for isIdentPart(l.peek()) || l.peek() == '.' {
			l.advance()
		}
		text := l.src[start:l.off]
		return token{kind: tokIllegal, text: text, pos: pos, err: fmt.Sprintf("invalid number %q (quote it to use it as text)", text)}
	}

	return token{kind: tokNumber, text: l.src[start:l.off], pos: pos}
}

func (l *lexer) digits() {
	for isDigit(l.peek()) {
		l.advance()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsIdentifier reports whether s can be written as a bare identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if i > 0 && !isIdentPart(r) {
			return false
		}
	}
	return true
}
