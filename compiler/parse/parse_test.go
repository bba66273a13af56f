package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
)

func TestCallBeforeIdent(t *testing.T) {
	// f(1) must parse as a call, never as a bare identifier followed
	// by dangling text.
	x, i, err := (Expr{}).Parse(context.Background(), []byte("f(1)"), 0)
	require.NoError(t, err)
	require.Equal(t, 4, i)

	c, ok := x.(ast.Call)
	require.True(t, ok, "got %T", x)
	assert.Equal(t, "f", c.Name.Name)

	require.Len(t, c.Args, 1)

	n, ok := c.Args[0].(ast.Number)
	require.True(t, ok, "got %T", c.Args[0])
	assert.Equal(t, "1", n.Text)
}

func TestBareIdentExpr(t *testing.T) {
	x, i, err := (Expr{}).Parse(context.Background(), []byte("f + 1"), 0)
	require.NoError(t, err)
	require.Equal(t, 1, i)

	id, ok := x.(ast.Ident)
	require.True(t, ok, "got %T", x)
	assert.Equal(t, "f", id.Name)
}

func TestParenCollapses(t *testing.T) {
	x, _, err := (Expr{}).Parse(context.Background(), []byte("((x))"), 0)
	require.NoError(t, err)

	id, ok := x.(ast.Ident)
	require.True(t, ok, "got %T", x)
	assert.Equal(t, "x", id.Name)
}

func TestNumberForms(t *testing.T) {
	for _, tc := range []struct {
		text string
		val  float64
	}{
		{"3", 3},
		{"3.14", 3.14},
		{".5", 0.5},
		{"3.", 3},
	} {
		x, i, err := (Number{}).Parse(context.Background(), []byte(tc.text), 0)
		require.NoError(t, err, "%q", tc.text)
		require.Equal(t, len(tc.text), i, "%q", tc.text)

		n := x.(ast.Number)
		assert.Equal(t, tc.text, n.Text)
		assert.Equal(t, tc.val, n.Value)
	}

	_, _, err := (Number{}).Parse(context.Background(), []byte("."), 0)
	require.Error(t, err)
}

func TestQubitLiteral(t *testing.T) {
	x, i, err := (QubitRef{}).Parse(context.Background(), []byte("%0"), 0)
	require.NoError(t, err)
	require.Equal(t, 2, i)
	assert.Equal(t, 0, x.(ast.QubitRef).Index)

	x, i, err = (QubitRef{}).Parse(context.Background(), []byte("%12"), 0)
	require.NoError(t, err)
	require.Equal(t, 3, i)
	assert.Equal(t, 12, x.(ast.QubitRef).Index)

	for _, text := range []string{"%", "%x", "% 1"} {
		_, _, err = (QubitRef{}).Parse(context.Background(), []byte(text), 0)
		require.Error(t, err, "%q", text)

		var se *SyntaxError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 1, se.Pos, "%q", text)
	}
}

func TestKeywordsNotIdents(t *testing.T) {
	for _, kw := range []string{"def", "extern", "if", "else", "while", "var", "return", "true", "false"} {
		_, _, err := (Ident{}).Parse(context.Background(), []byte(kw), 0)
		require.Error(t, err, "%q", kw)
	}

	x, i, err := (Ident{}).Parse(context.Background(), []byte("externa"), 0)
	require.NoError(t, err)
	require.Equal(t, 7, i)
	assert.Equal(t, "externa", x.(ast.Ident).Name)
}

func TestKeywordBoundary(t *testing.T) {
	_, _, err := Keyword("def").Parse(context.Background(), []byte("define"), 0)
	require.Error(t, err)

	_, i, err := Keyword("def").Parse(context.Background(), []byte("def f"), 0)
	require.NoError(t, err)
	require.Equal(t, 3, i)
}

func TestVarDeclTypes(t *testing.T) {
	p := parseOne(t, `def qmain() { var x: number = 3.14; var q: qubit = %1; }`)

	def := p.Items[0].(ast.Definition)
	require.Len(t, def.Body, 2)

	v := def.Body[0].(ast.VarDecl)
	assert.Equal(t, "x", v.Name.Name)
	assert.Equal(t, ast.NumberType, v.Type.Kind)
	assert.Equal(t, 3.14, v.Value.(ast.Number).Value)

	v = def.Body[1].(ast.VarDecl)
	assert.Equal(t, "q", v.Name.Name)
	assert.Equal(t, ast.QubitType, v.Type.Kind)
	assert.Equal(t, 1, v.Value.(ast.QubitRef).Index)
}

func TestNestedControlFlow(t *testing.T) {
	p := parseOne(t, `def qmain() { if true { while false { } } else { return 0; } }`)

	def := p.Items[0].(ast.Definition)
	require.Len(t, def.Body, 1)

	ifs := def.Body[0].(ast.If)
	assert.Equal(t, true, ifs.Cond.(ast.Bool).Value)

	require.Len(t, ifs.Then, 1)
	w := ifs.Then[0].(ast.While)
	assert.Equal(t, false, w.Cond.(ast.Bool).Value)
	assert.Empty(t, w.Body)

	require.Len(t, ifs.Else, 1)
	ret := ifs.Else[0].(ast.Return)
	assert.Equal(t, float64(0), ret.Value.(ast.Number).Value)
}

func TestEmptyElseNormalized(t *testing.T) {
	p := parseOne(t, `def qmain() { if true { h(%0); } else { } }`)

	def := p.Items[0].(ast.Definition)
	require.Len(t, def.Body, 1)

	ifs := def.Body[0].(ast.If)
	require.Len(t, ifs.Then, 1)
	assert.Nil(t, ifs.Else)
}

func TestExternReturnType(t *testing.T) {
	p := parseOne(t, `extern m(q: qubit) -> bit;`)

	decl := p.Items[0].(ast.Declaration)
	assert.Equal(t, "m", decl.Proto.Name.Name)

	require.Len(t, decl.Proto.Args, 1)
	assert.Equal(t, "q", decl.Proto.Args[0].Name.Name)
	assert.Equal(t, ast.QubitType, decl.Proto.Args[0].Type.Kind)

	require.NotNil(t, decl.Proto.Ret)
	assert.Equal(t, ast.BitType, decl.Proto.Ret.Kind)
}

func TestCallStatement(t *testing.T) {
	p := parseOne(t, "def g() { h(%0, x, 2.5); }")

	def := p.Items[0].(ast.Definition)
	require.Len(t, def.Body, 1)

	c := def.Body[0].(ast.Call)
	assert.Equal(t, "h", c.Name.Name)
	require.Len(t, c.Args, 3)
}

func TestTrailingCommaInArgs(t *testing.T) {
	p := parseOne(t, "extern cnot(c: qubit, t: qubit,);")

	decl := p.Items[0].(ast.Declaration)
	require.Len(t, decl.Proto.Args, 2)

	p = parseOne(t, "def g() { f(1, 2,); }")
	require.Len(t, p.Items[0].(ast.Definition).Body[0].(ast.Call).Args, 2)
}

func TestMalformedReportsDeepestPos(t *testing.T) {
	src := "def f(x: qubit"

	_, err := Parse(context.Background(), []byte(src))
	require.Error(t, err)

	var se *SyntaxError
	require.True(t, errors.As(err, &se), "got %v (%[1]T)", err)

	assert.Equal(t, len(src), se.Pos)
	assert.Contains(t, se.Expected, ")")
}

func TestTrailingGarbage(t *testing.T) {
	_, err := Parse(context.Background(), []byte("extern h(q: qubit); @@@"))
	require.Error(t, err)

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 20, se.Pos)

	// both file-element alternatives fail at the same position and both
	// must show up in the report
	assert.Contains(t, se.Expected, "extern")
	assert.Contains(t, se.Expected, "def")
}

func TestCommentsAndEmptyInput(t *testing.T) {
	p, err := Parse(context.Background(), []byte("# nothing but comments\n\n# more\n"))
	require.NoError(t, err)
	assert.Empty(t, p.Items)

	p, err = Parse(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
}

func TestSpans(t *testing.T) {
	src := `extern m(q: qubit) -> bit;`

	p := parseOne(t, src)

	decl := p.Items[0].(ast.Declaration)
	pos, end := decl.Span()
	assert.Equal(t, 0, pos)
	assert.Equal(t, len(src), end)

	pos, end = decl.Proto.Name.Span()
	assert.Equal(t, "m", src[pos:end])
}

func parseOne(t *testing.T, src string) *ast.Program {
	t.Helper()

	p, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.Len(t, p.Items, 1)

	return p
}
