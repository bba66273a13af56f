package qsim

import (
	"math"
	"math/rand"

	"tlog.app/go/errors"
)

type (
	// Sim is a dense state-vector simulator over n qubits. Amplitude
	// index bit q holds the basis state of qubit q.
	Sim struct {
		n    int
		amps []complex128

		rnd *rand.Rand
	}
)

func New(n int) *Sim {
	s := &Sim{
		n:    n,
		amps: make([]complex128, 1<<n),
		rnd:  rand.New(rand.NewSource(rand.Int63())),
	}

	s.amps[0] = 1

	return s
}

// Seed makes subsequent measurement outcomes reproducible.
func (s *Sim) Seed(seed int64) {
	s.rnd = rand.New(rand.NewSource(seed))
}

func (s *Sim) Qubits() int { return s.n }

func (s *Sim) check(q int) error {
	if q < 0 || q >= s.n {
		return errors.New("qubit %d out of range (device has %d)", q, s.n)
	}

	return nil
}

// H applies the Hadamard gate to qubit q.
func (s *Sim) H(q int) error {
	if err := s.check(q); err != nil {
		return err
	}

	mask := 1 << q
	inv := complex(1/math.Sqrt2, 0)

	for i := range s.amps {
		if i&mask != 0 {
			continue
		}

		a0, a1 := s.amps[i], s.amps[i|mask]
		s.amps[i] = inv * (a0 + a1)
		s.amps[i|mask] = inv * (a0 - a1)
	}

	return nil
}

// X applies the bit-flip gate to qubit q.
func (s *Sim) X(q int) error {
	if err := s.check(q); err != nil {
		return err
	}

	mask := 1 << q

	for i := range s.amps {
		if i&mask != 0 {
			continue
		}

		s.amps[i], s.amps[i|mask] = s.amps[i|mask], s.amps[i]
	}

	return nil
}

// CX applies X to target t controlled on qubit c.
func (s *Sim) CX(c, t int) error {
	if err := s.check(c); err != nil {
		return err
	}
	if err := s.check(t); err != nil {
		return err
	}
	if c == t {
		return errors.New("control and target are the same qubit %d", c)
	}

	cm, tm := 1<<c, 1<<t

	for i := range s.amps {
		if i&cm == 0 || i&tm != 0 {
			continue
		}

		s.amps[i], s.amps[i|tm] = s.amps[i|tm], s.amps[i]
	}

	return nil
}

// Prob returns the probability of measuring qubit q as 1.
func (s *Sim) Prob(q int) (float64, error) {
	if err := s.check(q); err != nil {
		return 0, err
	}

	mask := 1 << q
	p := 0.

	for i, a := range s.amps {
		if i&mask != 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}

	return p, nil
}

// Measure samples qubit q in the computational basis, collapses the
// state and renormalizes.
func (s *Sim) Measure(q int) (bool, error) {
	p1, err := s.Prob(q)
	if err != nil {
		return false, err
	}

	one := s.rnd.Float64() < p1

	mask := 1 << q
	keep := 0
	if one {
		keep = mask
	}

	p := p1
	if !one {
		p = 1 - p1
	}

	norm := complex(1/math.Sqrt(p), 0)

	for i := range s.amps {
		if i&mask == keep {
			s.amps[i] *= norm
		} else {
			s.amps[i] = 0
		}
	}

	return one, nil
}
