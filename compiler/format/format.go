package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

// Format renders a node back to canonical source text. Parsing the
// result yields a structurally equal tree.
func Format(ctx context.Context, b []byte, x ast.Node) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x ast.Node, d int) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Program:
		return formatProgram(ctx, b, x, d)
	case ast.Declaration:
		return formatDeclaration(ctx, b, x, d)
	case ast.Definition:
		return formatDefinition(ctx, b, x, d)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProgram(ctx context.Context, b []byte, x *ast.Program, d int) (_ []byte, err error) {
	for i, el := range x.Items {
		if i != 0 {
			b = append(b, '\n')
		}

		b, err = format(ctx, b, el, d)
		if err != nil {
			return nil, errors.Wrap(err, "item %d", i)
		}
	}

	return b, nil
}

func formatDeclaration(ctx context.Context, b []byte, x ast.Declaration, d int) ([]byte, error) {
	b = app(b, d, "extern ")
	b = formatProto(b, x.Proto)
	b = append(b, ";\n"...)

	return b, nil
}

func formatDefinition(ctx context.Context, b []byte, x ast.Definition, d int) (_ []byte, err error) {
	b = app(b, d, "def ")
	b = formatProto(b, x.Proto)
	b = append(b, " {\n"...)

	b, err = formatBlock(ctx, b, x.Body, d+1)
	if err != nil {
		return nil, errors.Wrap(err, "def %v", x.Proto.Name.Name)
	}

	b = app(b, d, "}\n")

	return b, nil
}

func formatProto(b []byte, x ast.Prototype) []byte {
	b = hfmt.Appendf(b, "%v(", x.Name.Name)

	for i, a := range x.Args {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = hfmt.Appendf(b, "%v: %v", a.Name.Name, a.Type.Kind)
	}

	b = append(b, ')')

	if x.Ret != nil {
		b = hfmt.Appendf(b, " -> %v", x.Ret.Kind)
	}

	return b
}

func formatBlock(ctx context.Context, b []byte, stmts []ast.Node, d int) (_ []byte, err error) {
	for _, s := range stmts {
		b, err = formatStmt(ctx, b, s, d)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Node, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.VarDecl:
		b = app(b, d, "var %v: %v = ", x.Name.Name, x.Type.Kind)

		b, err = formatExpr(ctx, b, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "var %v", x.Name.Name)
		}

		b = append(b, ";\n"...)
	case ast.Assignment:
		b = app(b, d, "%v = ", x.Name.Name)

		b, err = formatExpr(ctx, b, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "assign %v", x.Name.Name)
		}

		b = append(b, ";\n"...)
	case ast.Call:
		b = app(b, d, "")

		b, err = formatExpr(ctx, b, x)
		if err != nil {
			return nil, errors.Wrap(err, "call")
		}

		b = append(b, ";\n"...)
	case ast.Return:
		b = app(b, d, "return ")

		b, err = formatExpr(ctx, b, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "return")
		}

		b = append(b, ";\n"...)
	case ast.If:
		b = app(b, d, "if ")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, " {\n"...)

		b, err = formatBlock(ctx, b, x.Then, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "then")
		}

		if len(x.Else) != 0 {
			b = app(b, d, "} else {\n")

			b, err = formatBlock(ctx, b, x.Else, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "else")
			}
		}

		b = app(b, d, "}\n")
	case ast.While:
		b = app(b, d, "while ")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, " {\n"...)

		b, err = formatBlock(ctx, b, x.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}

		b = app(b, d, "}\n")
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Node) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Ident:
		b = append(b, x.Name...)
	case ast.Number:
		b = append(b, x.Text...)
	case ast.QubitRef:
		b = hfmt.Appendf(b, "%%%d", x.Index)
	case ast.Bool:
		if x.Value {
			b = append(b, "true"...)
		} else {
			b = append(b, "false"...)
		}
	case ast.Call:
		b = hfmt.Appendf(b, "%v(", x.Name.Name)

		for i, a := range x.Args {
			if i != 0 {
				b = append(b, ", "...)
			}

			b, err = formatExpr(ctx, b, a)
			if err != nil {
				return nil, errors.Wrap(err, "arg %d", i)
			}
		}

		b = append(b, ')')
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
