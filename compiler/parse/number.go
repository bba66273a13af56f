package parse

import (
	"context"
	"strconv"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	// Number matches decimal literals: 3, 3.14, .5 and 3. are all
	// accepted, a bare dot is not.
	Number struct{}

	// QubitRef matches a device register reference: % immediately
	// followed by at least one digit, no whitespace in between.
	QubitRef struct{}
)

func (p Number) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st

	dot := false

loop:
	for ; i < len(b); i++ {
		switch {
		case b[i] >= '0' && b[i] <= '9':
		case !dot && b[i] == '.':
			dot = true
		default:
			break loop
		}
	}

	if i == st || i == st+1 && b[st] == '.' {
		return nil, st, expected(ctx, st, "Number")
	}

	text := string(b[st:i])

	v, e := strconv.ParseFloat(text, 64)
	if e != nil {
		return nil, st, expected(ctx, st, "Number")
	}

	return ast.Number{
		Base:  ast.Base{Pos: st, End: i},
		Text:  text,
		Value: v,
	}, i, nil
}

func (p QubitRef) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if st == len(b) || b[st] != '%' {
		return nil, st, expected(ctx, st, "QubitRef")
	}

	i = st + 1
	dst := i

	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}

	if i == dst {
		// % with an empty index is rejected, it is not qubit 0.
		return nil, st, expected(ctx, dst, "Int")
	}

	idx, e := strconv.Atoi(string(b[dst:i]))
	if e != nil {
		return nil, st, expected(ctx, dst, "Int")
	}

	return ast.QubitRef{
		Base:  ast.Base{Pos: st, End: i},
		Index: idx,
	}, i, nil
}
