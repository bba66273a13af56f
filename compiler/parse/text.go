package parse

import (
	"bytes"
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	Const []byte

	// Keyword is a Const that must end at a word boundary, so that
	// `define` never matches the keyword `def`.
	Keyword []byte

	Ident struct{}

	Bool struct{}
)

// Reserved words are never reinterpreted as identifiers.
var reserved = map[string]struct{}{
	"def":    {},
	"extern": {},
	"if":     {},
	"else":   {},
	"while":  {},
	"var":    {},
	"return": {},
	"true":   {},
	"false":  {},
}

func (p Const) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if bytes.HasPrefix(b[st:], p) {
		return Const(b[st : st+len(p)]), st + len(p), nil
	}

	return nil, st, expected(ctx, st, string(p))
}

func (p Keyword) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if !bytes.HasPrefix(b[st:], p) {
		return nil, st, expected(ctx, st, string(p))
	}

	i = st + len(p)

	if i < len(b) {
		if r, _ := utf8.DecodeRune(b[i:]); identCont(r) {
			return nil, st, expected(ctx, st, string(p))
		}
	}

	return Keyword(b[st:i]), i, nil
}

func (p Ident) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if st == len(b) {
		return nil, st, expected(ctx, st, "Ident")
	}

	r, w := utf8.DecodeRune(b[st:])
	if !identStart(r) {
		return nil, st, expected(ctx, st, "Ident")
	}

	i = st + w

	for i < len(b) {
		r, w := utf8.DecodeRune(b[i:])
		if !identCont(r) {
			break
		}

		i += w
	}

	name := string(b[st:i])

	if _, ok := reserved[name]; ok {
		return nil, st, expected(ctx, st, "Ident")
	}

	return ast.Ident{
		Base: ast.Base{Pos: st, End: i},
		Name: name,
	}, i, nil
}

func (p Bool) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	for _, kw := range []string{"true", "false"} {
		_, i, err = Keyword(kw).Parse(ctx, b, st)
		if err != nil {
			continue
		}

		return ast.Bool{
			Base:  ast.Base{Pos: st, End: i},
			Value: kw == "true",
		}, i, nil
	}

	return nil, st, expected(ctx, st, "Bool")
}

func identStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func identCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}
