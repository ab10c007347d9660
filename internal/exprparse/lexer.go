// Package exprparse implements the Boolean-formula parser named as an
// external collaborator in the core specification: it turns a textual
// formula into an AST the façade can walk, issuing var/apply/quantify
// calls against a Manager one operator at a time. It is hand-written
// rather than generated, following the operator-precedence table of the
// Python original (tulip-control/dd, dd/_parser.py, built on ply.yacc)
// but over the richer ASCII/Unicode-free operator spellings the
// specification's external-interfaces section names.
package exprparse

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNodeRef
	tokTrue
	tokFalse
	tokIte
	tokLParen
	tokRParen
	tokComma
	tokDot
	tokNot
	tokAnd
	tokOr
	tokXor
	tokImp
	tokBimp
	tokDiff
	tokForall
	tokExists
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var keywords = map[string]tokenKind{
	"TRUE":    tokTrue,
	"True":    tokTrue,
	"FALSE":   tokFalse,
	"False":   tokFalse,
	"ite":     tokIte,
	"not":     tokNot,
	"and":     tokAnd,
	"or":      tokOr,
	"xor":     tokXor,
	"implies": tokImp,
	"equiv":   tokBimp,
	"diff":    tokDiff,
	"forall":  tokForall,
	"exists":  tokExists,
}

type lexer struct {
	src  string
	pos  int
	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, pos: l.pos})
			return l.toks, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
}

func (l *lexer) rest() string { return l.src[l.pos:] }

// symbols lists the multi-character operator spellings, longest first so
// e.g. "<=>" is matched before "<" would ever be considered.
var symbols = []struct {
	text string
	kind tokenKind
}{
	{"<=>", tokBimp},
	{"<->", tokBimp},
	{"=>", tokImp},
	{"->", tokImp},
	{"&&", tokAnd},
	{"||", tokOr},
	{`/\`, tokAnd},
	{`\/`, tokOr},
	{`\A`, tokForall},
	{`\E`, tokExists},
	{"&", tokAnd},
	{"|", tokOr},
	{"^", tokXor},
	{"#", tokXor},
	{"-", tokDiff},
	{"~", tokNot},
	{"!", tokNot},
	{"(", tokLParen},
	{")", tokRParen},
	{",", tokComma},
	{".", tokDot},
}

func (l *lexer) next() error {
	start := l.pos
	c := l.src[l.pos]
	if c == '@' {
		l.pos++
		digitsStart := l.pos
		neg := false
		if l.pos < len(l.src) && l.src[l.pos] == '-' {
			neg = true
			l.pos++
		}
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
		if l.pos == digitsStart || (neg && l.pos == digitsStart+1) {
			return fmt.Errorf("exprparse: malformed node reference at offset %d", start)
		}
		l.toks = append(l.toks, token{kind: tokNodeRef, text: l.src[start+1 : l.pos], pos: start})
		return nil
	}
	if isIdentStart(c) {
		l.pos++
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		if kind, ok := keywords[text]; ok {
			l.toks = append(l.toks, token{kind: kind, text: text, pos: start})
			return nil
		}
		l.toks = append(l.toks, token{kind: tokIdent, text: text, pos: start})
		return nil
	}
	for _, sym := range symbols {
		if strings.HasPrefix(l.rest(), sym.text) {
			l.pos += len(sym.text)
			l.toks = append(l.toks, token{kind: sym.kind, text: sym.text, pos: start})
			return nil
		}
	}
	return fmt.Errorf("exprparse: unexpected character %q at offset %d", c, start)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '\''
}
