package parse

import (
	"context"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	None struct{}

	// Optional always succeeds. A failed inner match consumes nothing.
	Optional struct {
		Parser
	}

	// Repeat matches the inner parser zero or more times, greedily.
	// Each repetition must fully succeed to count.
	Repeat struct {
		Parser
	}

	// AllOf is a sequence. It commits nothing on failure: the caller
	// retries alternatives from its own start position.
	AllOf []Parser

	// AnyOf is an ordered choice: the first alternative to succeed
	// wins. On total failure the error of the furthest-advanced
	// alternative is kept.
	AnyOf []Parser
)

func (None) Parse(ctx context.Context, b []byte, st int) (_ ast.Node, i int, err error) {
	return None{}, st, nil
}

func (p Optional) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	x, i, err = p.Parser.Parse(ctx, b, st)
	if err != nil {
		return None{}, st, nil
	}

	return x, i, nil
}

func (p Repeat) Parse(ctx context.Context, b []byte, st int) (_ ast.Node, i int, err error) {
	i = st

	var res []ast.Node

	for {
		x, j, err := p.Parser.Parse(ctx, b, i)
		if err != nil || j == i {
			break
		}

		res = append(res, x)
		i = j
	}

	return res, i, nil
}

func (p AllOf) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st

	res := make([]ast.Node, len(p))

	for j, r := range p {
		x, i, err = r.Parse(ctx, b, i)
		if err != nil {
			return nil, i, err
		}

		res[j] = x
	}

	return res, i, nil
}

func (p AnyOf) Parse(ctx context.Context, b []byte, st int) (_ ast.Node, i int, err error) {
	i = st

	for _, r := range p {
		x, j, e := r.Parse(ctx, b, st)
		if e == nil {
			return x, j, nil
		}

		if err == nil || j > i {
			i, err = j, e
		}
	}

	return nil, i, err
}
