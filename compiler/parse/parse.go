package parse

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

type (
	State struct {
		b []byte // all files concatenated

		files []file

		worst SyntaxError // deepest failure observed so far
	}

	file struct {
		base int
		size int
		name string
	}

	// Parser matches input at st and returns the produced node and the
	// position after the match. On failure no input is consumed: the
	// returned position is diagnostic only and the caller retries from
	// its own start.
	Parser interface {
		Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error)
	}

	SyntaxError struct {
		Pos      int
		Expected []string
	}

	stateCtxKey struct{}
)

func ParseFile(ctx context.Context, name string) (*ast.Program, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	s := New()
	s.AddFile(name, data)

	return s.Parse(ctx)
}

func Parse(ctx context.Context, text []byte) (*ast.Program, error) {
	s := New()

	s.AddFile("", text)

	return s.Parse(ctx)
}

func New() *State {
	return &State{
		worst: SyntaxError{Pos: -1},
	}
}

// Parse applies the file-element rule until the input is exhausted.
// Trailing input that matches no rule is a syntax error at that
// position, not a truncated tree.
func (s *State) Parse(ctx context.Context) (p *ast.Program, err error) {
	ctx = context.WithValue(ctx, stateCtxKey{}, s)

	tr := tlog.SpanFromContext(ctx)

	p = &ast.Program{
		Base: ast.Base{Pos: 0, End: len(s.b)},
	}

	i := 0

	for {
		i = SpaceComment.Skip(s.b, i)
		if i == len(s.b) {
			break
		}

		x, j, e := (FileElement{}).Parse(ctx, s.b, i)
		if e != nil {
			return nil, s.syntaxError(e, j)
		}

		if tr.If("file_element") {
			tr.Printw("file element", "pos", i, "end", j, "typ", tlog.NextAsType, x)
		}

		p.Items = append(p.Items, x)
		i = j
	}

	return p, nil
}

func (s *State) AddFile(name string, text []byte) {
	f := file{
		name: name,
		base: len(s.b),
		size: len(text),
	}

	s.b = append(s.b, text...)

	s.files = append(s.files, f)
}

func (s *State) Text(pos, end int) []byte {
	return s.b[pos:end]
}

// syntaxError picks the most informative failure: the deepest position
// recorded across all attempted alternatives. At equal depth the
// recorded error wins since it merges the expected names of every
// alternative that failed there, while the propagated one only carries
// the names of its own branch.
func (s *State) syntaxError(err error, pos int) error {
	var se *SyntaxError
	if !errors.As(err, &se) {
		return errors.Wrap(err, "at pos 0x%x", pos)
	}

	if s.worst.Pos >= se.Pos {
		return &s.worst
	}

	return se
}

// expected reports a failed match. The failure is recorded in the
// parse state, if any, to track the deepest position reached.
func expected(ctx context.Context, pos int, names ...string) error {
	e := &SyntaxError{Pos: pos, Expected: names}

	if tr := tlog.SpanFromContext(ctx); tr.If("expect") {
		tr.Printw("expected", "pos", pos, "names", names, "from", loc.Callers(1, 3))
	}

	if s, ok := ctx.Value(stateCtxKey{}).(*State); ok && s != nil {
		s.observe(e)
	}

	return e
}

func (s *State) observe(e *SyntaxError) {
	switch {
	case e.Pos > s.worst.Pos:
		s.worst = SyntaxError{
			Pos:      e.Pos,
			Expected: append([]string{}, e.Expected...),
		}
	case e.Pos == s.worst.Pos:
	names:
		for _, n := range e.Expected {
			for _, have := range s.worst.Expected {
				if n == have {
					continue names
				}
			}

			s.worst.Expected = append(s.worst.Expected, n)
		}
	}
}

func (e *SyntaxError) Error() string {
	exp := append([]string{}, e.Expected...)
	sort.Strings(exp)

	return fmt.Sprintf("syntax error at pos 0x%x: expected %v", e.Pos, strings.Join(exp, " | "))
}
