package parse

import (
	"context"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	// FileElement is transparent: a top-level item is either an extern
	// declaration or a definition with a body.
	FileElement struct{}

	Declaration struct{}

	Definition struct{}

	Prototype struct{}

	ArgDecl struct{}

	retClause struct{}

	TypeName struct{}
)

func (p FileElement) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AnyOf{
		Declaration{},
		Definition{},
	}

	return r.Parse(ctx, b, st)
}

func (p Declaration) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("extern"),
		Spaced(Prototype{}, SpaceComment),
		Spaced(Const(";"), SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	res := ast.Declaration{
		Base:  ast.Base{Pos: st, End: i},
		Proto: x.([]ast.Node)[1].(ast.Prototype),
	}

	return res, i, nil
}

func (p Definition) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("def"),
		Spaced(Prototype{}, SpaceComment),
		Spaced(Block{}, SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.Definition{
		Base:  ast.Base{Pos: st, End: i},
		Proto: xt[1].(ast.Prototype),
	}

	if body, ok := xt[2].([]ast.Node); ok {
		res.Body = body
	}

	return res, i, nil
}

func (p Prototype) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Ident{},
		Spaced(Const("("), SpaceComment),
		Repeat{Spaced(ArgDecl{}, SpaceComment)},
		Spaced(Const(")"), SpaceComment),
		Optional{retClause{}},
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.Prototype{
		Base: ast.Base{Pos: st, End: i},
		Name: xt[0].(ast.Ident),
	}

	for _, a := range xt[2].([]ast.Node) {
		res.Args = append(res.Args, a.(ast.ArgDecl))
	}

	if ret, ok := xt[4].(ast.Type); ok {
		res.Ret = &ret
	}

	return res, i, nil
}

func (p ArgDecl) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Ident{},
		Spaced(Const(":"), SpaceComment),
		Spaced(TypeName{}, SpaceComment),
		Optional{Spaced(Const(","), SpaceComment)},
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.ArgDecl{
		Base: ast.Base{Pos: st, End: i},
		Name: xt[0].(ast.Ident),
		Type: xt[2].(ast.Type),
	}

	return res, i, nil
}

func (p retClause) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Spaced(Const("->"), SpaceComment),
		Spaced(TypeName{}, SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	return x.([]ast.Node)[1], i, nil
}

func (p TypeName) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AnyOf{
		Keyword("number"),
		Keyword("qubit"),
		Keyword("bit"),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	var kind ast.TypeKind

	switch string(x.(Keyword)) {
	case "number":
		kind = ast.NumberType
	case "qubit":
		kind = ast.QubitType
	case "bit":
		kind = ast.BitType
	}

	return ast.Type{
		Base: ast.Base{Pos: st, End: i},
		Kind: kind,
	}, i, nil
}
