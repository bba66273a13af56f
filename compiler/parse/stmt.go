package parse

import (
	"context"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	// Statement is transparent, like Expr: the matched alternative's
	// node is produced directly.
	Statement struct{}

	terminated struct{}

	// Block matches `{ statement* }` and produces the statement list.
	Block struct{}

	VarDecl struct{}

	Assignment struct{}

	ReturnStmt struct{}

	IfStmt struct{}

	elseClause struct{}

	WhileStmt struct{}
)

func (p Statement) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AnyOf{
		terminated{},
		IfStmt{},
		WhileStmt{},
	}

	return r.Parse(ctx, b, st)
}

func (p terminated) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		AnyOf{
			VarDecl{},
			Assignment{},
			Call{},
			ReturnStmt{},
		},
		Spaced(Const(";"), SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	return x.([]ast.Node)[0], i, nil
}

func (p Block) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Const("{"),
		Repeat{Spaced(Statement{}, SpaceComment)},
		Spaced(Const("}"), SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	return x.([]ast.Node)[1], i, nil
}

func (p VarDecl) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("var"),
		Spaced(Ident{}, SpaceComment),
		Spaced(Const(":"), SpaceComment),
		Spaced(TypeName{}, SpaceComment),
		Spaced(Const("="), SpaceComment),
		Spaced(Expr{}, SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.VarDecl{
		Base:  ast.Base{Pos: st, End: i},
		Name:  xt[1].(ast.Ident),
		Type:  xt[3].(ast.Type),
		Value: xt[5],
	}

	return res, i, nil
}

func (p Assignment) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Ident{},
		Spaced(Const("="), SpaceComment),
		Spaced(Expr{}, SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.Assignment{
		Base:  ast.Base{Pos: st, End: i},
		Name:  xt[0].(ast.Ident),
		Value: xt[2],
	}

	return res, i, nil
}

func (p ReturnStmt) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("return"),
		Spaced(Expr{}, SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	res := ast.Return{
		Base:  ast.Base{Pos: st, End: i},
		Value: x.([]ast.Node)[1],
	}

	return res, i, nil
}

func (p IfStmt) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("if"),
		Spaced(Expr{}, SpaceComment),
		Spaced(Block{}, SpaceComment),
		Optional{elseClause{}},
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.If{
		Base: ast.Base{Pos: st, End: i},
		Cond: xt[1],
	}

	if then, ok := xt[2].([]ast.Node); ok {
		res.Then = then
	}

	if els, ok := xt[3].([]ast.Node); ok {
		res.Else = els
	}

	return res, i, nil
}

func (p elseClause) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Spaced(Keyword("else"), SpaceComment),
		Spaced(Block{}, SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	return x.([]ast.Node)[1], i, nil
}

func (p WhileStmt) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("while"),
		Spaced(Expr{}, SpaceComment),
		Spaced(Block{}, SpaceComment),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return
	}

	xt := x.([]ast.Node)

	res := ast.While{
		Base: ast.Base{Pos: st, End: i},
		Cond: xt[1],
	}

	if body, ok := xt[2].([]ast.Node); ok {
		res.Body = body
	}

	return res, i, nil
}
