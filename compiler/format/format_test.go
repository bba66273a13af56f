package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrust-dev/quantinomocon/compiler/parse"
)

func TestGolden(t *testing.T) {
	src := `
extern m(q: qubit) -> bit;

def qmain() {
	var n: number = 3.14; x = n;
	if m(%0) { h( %1 ); } else { return .5; }
	while false { }
}
`

	exp := `extern m(q: qubit) -> bit;

def qmain() {
	var n: number = 3.14;
	x = n;
	if m(%0) {
		h(%1);
	} else {
		return .5;
	}
	while false {
	}
}
`

	b := render(t, src)
	assert.Equal(t, exp, string(b))
}

func TestRoundTrip(t *testing.T) {
	for _, src := range []string{
		"extern h(q: qubit);\ndef qmain() { h(%0); }",
		"def f(a: number, b: bit) -> number { if b { return a; } return 0.; }",
		"def g() { while true { cnot(%0, %12); var r: bit = (m(%3)); } }",
	} {
		one := render(t, src)
		two := render(t, string(one))

		require.Equal(t, string(one), string(two), "src: %q", src)
	}
}

func TestWhitespaceAndCommentsInsensitive(t *testing.T) {
	a := render(t, "def g(){h();}")
	b := render(t, "def g ( ) { # comment\n h ( ) ; }")

	assert.Equal(t, string(a), string(b))
}

func render(t *testing.T, src string) []byte {
	t.Helper()

	ctx := context.Background()

	p, err := parse.Parse(ctx, []byte(src))
	require.NoError(t, err)

	b, err := Format(ctx, nil, p)
	require.NoError(t, err)

	return b
}
