package parse

import (
	"context"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	Spaces struct {
		bits    uint64
		comment byte // comment start char, 0 for none
	}

	// Spacer skips spaces and comments before the wrapped parser. It is
	// interleaved between sequenced sub-rules; atomic terminals are
	// never wrapped, so no skipping happens inside their span.
	Spacer struct {
		Spaces Spaces
		Of     Parser
	}
)

var (
	Space    = NewSpaces(' ')
	SpaceTab = NewSpaces(' ', '\t')
	SpaceAll = NewSpaces(' ', '\t', '\r', '\n')

	// SpaceComment also skips line comments to the end of line.
	SpaceComment = SpaceAll.WithComment('#')
)

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss.bits |= 1 << q
	}

	return
}

func (s Spaces) WithComment(c byte) Spaces {
	s.comment = c

	return s
}

func (s Spaces) Skip(b []byte, st int) (i int) {
	i = st

	for i < len(b) {
		c := b[i]

		if c < 64 && s.bits&(1<<c) != 0 {
			i++
			continue
		}

		if s.comment != 0 && c == s.comment {
			for i < len(b) && b[i] != '\n' {
				i++
			}

			continue
		}

		break
	}

	return
}

func Spaced(p Parser, ss Spaces) Spacer {
	return Spacer{
		Spaces: ss,
		Of:     p,
	}
}

func (p Spacer) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	vst := p.Spaces.Skip(b, st)

	return p.Of.Parse(ctx, b, vst)
}
