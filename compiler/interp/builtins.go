package interp

import (
	"fmt"

	"tlog.app/go/errors"
)

// builtins installs the device intrinsics. They take precedence over
// extern declarations of the same name and are callable without one.
func (ip *Interp) builtins() {
	ip.RegisterBuiltin("h", func(args []Value) (Value, error) {
		q, err := qubitArg("h", args, 0, 1)
		if err != nil {
			return nil, err
		}

		return nil, ip.Sim.H(q)
	})

	ip.RegisterBuiltin("x", func(args []Value) (Value, error) {
		q, err := qubitArg("x", args, 0, 1)
		if err != nil {
			return nil, err
		}

		return nil, ip.Sim.X(q)
	})

	ip.RegisterBuiltin("cnot", func(args []Value) (Value, error) {
		c, err := qubitArg("cnot", args, 0, 2)
		if err != nil {
			return nil, err
		}

		t, err := qubitArg("cnot", args, 1, 2)
		if err != nil {
			return nil, err
		}

		return nil, ip.Sim.CX(c, t)
	})

	ip.RegisterBuiltin("m", func(args []Value) (Value, error) {
		q, err := qubitArg("m", args, 0, 1)
		if err != nil {
			return nil, err
		}

		r, err := ip.Sim.Measure(q)
		if err != nil {
			return nil, err
		}

		return Bit(r), nil
	})

	for _, name := range []string{"print_n", "print_b", "print_q"} {
		name := name

		ip.RegisterBuiltin(name, func(args []Value) (Value, error) {
			if len(args) != 1 {
				return nil, errors.New("%v takes 1 argument, got %d", name, len(args))
			}

			_, err := fmt.Fprintf(ip.Out, "%v\n", formatValue(args[0]))

			return nil, err
		})
	}
}

func qubitArg(name string, args []Value, i, arity int) (int, error) {
	if len(args) != arity {
		return 0, errors.New("%v takes %d arguments, got %d", name, arity, len(args))
	}

	q, ok := args[i].(Qubit)
	if !ok {
		return 0, errors.New("%v argument %d: expected qubit, got %v", name, i, kindOf(args[i]))
	}

	return int(q), nil
}
