package dsl

import (
	"strconv"
	"strings"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

const maxErrors = 50

// Result is the outcome of compiling DSL source. When Errors is non-empty,
// Instances is nil: a document is applied whole or not at all.
type Result struct {
	Instances []core.BlockInstance
	Errors    []Error
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Compile parses DSL source into block instances. It never panics on
// malformed input; problems are reported as positioned errors.
func Compile(source string) Result {
	res, _ := compile(source, false)
	return res
}

func compile(source string, keepComments bool) (Result, *docNotes) {
	p := &parser{lex: newLexer(source, keepComments), notes: &docNotes{}}
	p.next()

	instances := p.parseDocument()
	if len(p.errs) > 0 {
		return Result{Errors: p.errs}, nil
	}
	if instances == nil {
		instances = []core.BlockInstance{}
	}
	return Result{Instances: instances}, p.notes
}

type parser struct {
	lex  *lexer
	tok  token
	errs []Error

	notes *docNotes
	trail *string // slot for a comment ending the previous line
}

func (p *parser) next() {
	p.tok = p.lex.next()
}

// comments drains the comments read before the current token. The first
// one goes to the open trailing slot when it shares a line with the
// previous token.
func (p *parser) comments() []comment {
	cs := p.lex.takeComments()
	if len(cs) > 0 && cs[0].trailing && p.trail != nil && *p.trail == "" {
		*p.trail = cs[0].text
		cs = cs[1:]
	}
	return cs
}

func (p *parser) errorf(pos Pos, format string, args ...any) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, newError(pos, format, args...))
	}
}

// unexpected reports the current token. Lexer errors take precedence over
// the generic "expected" message.
func (p *parser) unexpected(expected string) {
	if p.tok.kind == tokIllegal {
		p.errorf(p.tok.pos, "%s", p.tok.err)
		return
	}
	p.errorf(p.tok.pos, "expected %s, found %s", expected, p.tok.describe())
}

func (p *parser) parseDocument() []core.BlockInstance {
	var out []core.BlockInstance
	for p.tok.kind != tokEOF && len(p.errs) < maxErrors {
		switch p.tok.kind {
		case tokIdent:
			if inst, notes, ok := p.parseDeclaration(); ok {
				out = append(out, inst)
				p.notes.decls = append(p.notes.decls, notes)
			}
		case tokRBrace:
			p.errorf(p.tok.pos, "unexpected '}' outside of a block")
			p.next()
		default:
			p.unexpected("block type")
			p.next()
		}
	}
	p.notes.tail = p.comments()
	return out
}

func (p *parser) parseDeclaration() (core.BlockInstance, *declNotes, bool) {
	name := p.tok
	notes := &declNotes{head: note{leading: p.comments()}, gap: name.blank}
	p.trail = &notes.head.trailing
	p.next()

	inst := core.BlockInstance{TypeID: name.text, Config: core.Config{}}
	if p.tok.kind != tokLBrace {
		return inst, notes, true
	}
	notes.head.leading = append(notes.head.leading, p.comments()...)
	open := p.tok.pos
	p.next()

	for {
		switch p.tok.kind {
		case tokRBrace:
			notes.inner = p.comments()
			p.trail = &notes.closing
			p.next()
			return inst, notes, true
		case tokEOF:
			p.errorf(p.tok.pos, "unterminated block %q opened at %s: missing '}'", name.text, open)
			return inst, notes, false
		case tokIdent, tokString:
			if !p.parseEntry(inst.Config, notes) {
				p.skipBlock()
				return inst, notes, false
			}
			if p.tok.kind == tokComma {
				p.next()
			}
		default:
			p.unexpected("config key or '}'")
			p.skipBlock()
			return inst, notes, false
		}
	}
}

func (p *parser) parseEntry(cfg core.Config, notes *declNotes) bool {
	n := &note{leading: p.comments()}
	key := p.tok.text
	if p.tok.kind == tokString {
		key = p.tok.val
	}
	p.next()

	if p.tok.kind != tokColon {
		p.unexpected("':' after key " + strconv.Quote(key))
		return false
	}
	p.next()

	val, ok := p.parseValue(key)
	if !ok {
		return false
	}
	cfg[key] = val
	notes.addEntry(key, n)
	p.trail = &n.trailing
	return true
}

func (p *parser) parseValue(key string) (any, bool) {
	tok := p.tok
	var val any

	switch tok.kind {
	case tokString:
		val = tok.val
	case tokIdent:
		switch tok.text {
		case "true":
			val = true
		case "false":
			val = false
		default:
			val = tok.text
		}
	case tokNumber:
		n, ok := p.parseNumber(tok)
		if !ok {
			return nil, false
		}
		val = n
	default:
		p.unexpected("value for key " + strconv.Quote(key))
		return nil, false
	}

	p.next()
	return val, true
}

func (p *parser) parseNumber(tok token) (any, bool) {
	if strings.ContainsAny(tok.text, ".eE") {
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			p.errorf(tok.pos, "number %s is out of range", tok.text)
			return nil, false
		}
		return f, true
	}
	n, err := strconv.ParseInt(tok.text, 10, 64)
	if err != nil {
		p.errorf(tok.pos, "integer %s is out of range", tok.text)
		return nil, false
	}
	return n, true
}

// skipBlock skips to the '}' closing the current block so that later
// declarations are still checked.
func (p *parser) skipBlock() {
	depth := 0
	for p.tok.kind != tokEOF {
		switch p.tok.kind {
		case tokLBrace:
			depth++
		case tokRBrace:
			if depth == 0 {
				p.next()
				return
			}
			depth--
		}
		p.next()
	}
}
