package qsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXFlips(t *testing.T) {
	s := New(1)

	require.NoError(t, s.X(0))

	r, err := s.Measure(0)
	require.NoError(t, err)
	assert.True(t, r)
}

func TestHIsSelfInverse(t *testing.T) {
	s := New(1)

	require.NoError(t, s.H(0))

	p, err := s.Prob(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)

	require.NoError(t, s.H(0))

	p, err = s.Prob(0)
	require.NoError(t, err)
	assert.InDelta(t, 0, p, 1e-9)
}

func TestCXOnBasisStates(t *testing.T) {
	s := New(2)

	// control off: target unchanged
	require.NoError(t, s.CX(0, 1))

	p, err := s.Prob(1)
	require.NoError(t, err)
	assert.InDelta(t, 0, p, 1e-9)

	// control on: target flips
	require.NoError(t, s.X(0))
	require.NoError(t, s.CX(0, 1))

	p, err = s.Prob(1)
	require.NoError(t, err)
	assert.InDelta(t, 1, p, 1e-9)
}

func TestMeasureCollapses(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s := New(1)
		s.Seed(seed)

		require.NoError(t, s.H(0))

		first, err := s.Measure(0)
		require.NoError(t, err)

		for j := 0; j < 5; j++ {
			again, err := s.Measure(0)
			require.NoError(t, err)
			assert.Equal(t, first, again, "seed %d", seed)
		}
	}
}

func TestBellCorrelation(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s := New(2)
		s.Seed(seed)

		require.NoError(t, s.H(0))
		require.NoError(t, s.CX(0, 1))

		a, err := s.Measure(0)
		require.NoError(t, err)

		b, err := s.Measure(1)
		require.NoError(t, err)

		assert.Equal(t, a, b, "seed %d", seed)
	}
}

func TestErrors(t *testing.T) {
	s := New(2)

	assert.Error(t, s.H(2))
	assert.Error(t, s.X(-1))
	assert.Error(t, s.CX(0, 0))
	assert.Error(t, s.CX(0, 5))

	_, err := s.Measure(3)
	assert.Error(t, err)
}
