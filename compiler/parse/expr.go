package parse

import (
	"context"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	// Expr is transparent: it produces the node of whichever
	// alternative matched. Call is tried before the bare identifier
	// since both share the same prefix.
	Expr struct{}

	Paren struct{}

	Literal struct{}

	Call struct{}

	callArgs struct{}
)

func (p Expr) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AnyOf{
		Paren{},
		Call{},
		Literal{},
		Ident{},
	}

	return r.Parse(ctx, b, st)
}

// Paren collapses to the inner expression: parentheses carry no
// semantic payload of their own.
func (p Paren) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Const("("),
		Spaced(Expr{}, SpaceComment),
		Spaced(Const(")"), SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	return x.([]ast.Node)[1], i, nil
}

func (p Literal) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AnyOf{
		Number{},
		QubitRef{},
		Bool{},
	}

	return r.Parse(ctx, b, st)
}

func (p Call) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Ident{},
		Spaced(Const("("), SpaceComment),
		callArgs{},
		Spaced(Const(")"), SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.Call{
		Base: ast.Base{Pos: st, End: i},
		Name: xt[0].(ast.Ident),
	}

	if args, ok := xt[2].([]ast.Node); ok {
		res.Args = args
	}

	return res, i, nil
}

func (p callArgs) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	arg := AllOf{
		Spaced(Expr{}, SpaceComment),
		Optional{Spaced(Const(","), SpaceComment)},
	}

	x, i, err = Repeat{arg}.Parse(ctx, b, st)
	if err != nil {
		return
	}

	var args []ast.Node

	for _, el := range x.([]ast.Node) {
		args = append(args, el.([]ast.Node)[0])
	}

	return args, i, nil
}
