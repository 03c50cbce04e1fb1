package dsl

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokIdent
	tokString
	tokNumber
	tokLBrace
	tokRBrace
	tokColon
	tokComma
)

type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type token struct {
	kind tokenKind
	text string // raw source text
	val  string // decoded value of a string literal
	pos  Pos
	err  string // lexer message for tokIllegal

	// blank is set when an empty line separates the token from the
	// preceding comment or token.
	blank bool
}

type comment struct {
	text     string // including the leading '#' or '//'
	trailing bool   // on the same line as the preceding token
	blank    bool   // preceded by an empty line
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return fmt.Sprintf("identifier %q", t.text)
	case tokString:
		return fmt.Sprintf("string %s", t.text)
	case tokNumber:
		return fmt.Sprintf("number %s", t.text)
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	}
	return fmt.Sprintf("%q", t.text)
}

// Error is a syntax error with a 1-based source position.
type Error struct {
	Line int    `json:"line"`
	Col  int    `json:"col"`
	Msg  string `json:"message"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

func newError(pos Pos, format string, args ...any) Error {
	return Error{Line: pos.Line, Col: pos.Col, Msg: fmt.Sprintf(format, args...)}
}
