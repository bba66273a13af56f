package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
	"github.com/qrust-dev/quantinomocon/compiler/interp"
	"github.com/qrust-dev/quantinomocon/compiler/parse"
)

func ParseFile(ctx context.Context, name string) (*ast.Program, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Parse(ctx, name, text)
}

func Parse(ctx context.Context, name string, text []byte) (*ast.Program, error) {
	s := parse.New()

	s.AddFile(name, text)

	p, err := s.Parse(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	return p, nil
}

func RunFile(ctx context.Context, name string) error {
	p, err := ParseFile(ctx, name)
	if err != nil {
		return err
	}

	return Run(ctx, p)
}

func Run(ctx context.Context, p *ast.Program) error {
	ip, err := interp.New(p)
	if err != nil {
		return errors.Wrap(err, "load program")
	}

	err = ip.Run(ctx)
	if err != nil {
		return errors.Wrap(err, "run")
	}

	return nil
}
