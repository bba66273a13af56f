package interp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/qrust-dev/quantinomocon/compiler/ast"
	"github.com/qrust-dev/quantinomocon/compiler/qsim"
)

type (
	Value interface{}

	Qubit  int
	Number float64
	Bit    bool

	Builtin func(args []Value) (Value, error)

	entry struct {
		proto   ast.Prototype
		def     *ast.Definition
		builtin Builtin
	}

	Interp struct {
		Sim *qsim.Sim
		Out io.Writer

		fns map[string]entry
	}

	scope map[string]Value
)

// Main is the definition the interpreter starts from.
const Main = "qmain"

var ErrNoMain = errors.New("no %v function defined", Main)

// New builds the function table for p, allocates as many qubits as the
// program references and installs the device builtins.
func New(p *ast.Program) (*Interp, error) {
	ip := &Interp{
		Out: os.Stdout,
		fns: make(map[string]entry),
	}

	for _, el := range p.Items {
		var e entry

		switch el := el.(type) {
		case ast.Declaration:
			e.proto = el.Proto
		case ast.Definition:
			def := el
			e.proto = el.Proto
			e.def = &def
		default:
			return nil, errors.New("unsupported file element: %T", el)
		}

		name := e.proto.Name.Name

		if old, ok := ip.fns[name]; ok {
			return nil, errors.New("duplicate name %v: defined at pos 0x%x and again at pos 0x%x",
				name, old.proto.Pos, e.proto.Pos)
		}

		ip.fns[name] = e
	}

	ip.Sim = qsim.New(qubitsRequired(p))

	ip.builtins()

	return ip, nil
}

// RegisterBuiltin installs f under name, keeping any extern prototype
// already declared for it.
func (ip *Interp) RegisterBuiltin(name string, f Builtin) {
	e := ip.fns[name]
	e.builtin = f
	ip.fns[name] = e
}

func (ip *Interp) Run(ctx context.Context) error {
	e, ok := ip.fns[Main]
	if !ok || e.def == nil {
		return ErrNoMain
	}

	_, err := ip.call(ctx, Main, nil, e.proto.Pos)
	if err != nil {
		return err
	}

	return nil
}

func (ip *Interp) call(ctx context.Context, name string, args []Value, pos int) (Value, error) {
	e, ok := ip.fns[name]
	if !ok {
		return nil, errors.New("unknown function %v (at pos 0x%x)", name, pos)
	}

	if e.builtin != nil {
		return e.builtin(args)
	}

	if e.def == nil {
		return nil, errors.New("no definition for extern %v (declared at pos 0x%x)", name, e.proto.Pos)
	}

	if len(args) != len(e.proto.Args) {
		return nil, errors.New("%v takes %d arguments, got %d", name, len(e.proto.Args), len(args))
	}

	sc := make(scope, len(args))

	for i, a := range e.proto.Args {
		if k := kindOf(args[i]); k != a.Type.Kind.String() {
			return nil, errors.New("%v argument %v: expected %v, got %v", name, a.Name.Name, a.Type.Kind, k)
		}

		sc[a.Name.Name] = args[i]
	}

	v, _, err := ip.runBlock(ctx, sc, e.def.Body)
	if err != nil {
		return nil, errors.Wrap(err, "%v", name)
	}

	return v, nil
}

func (ip *Interp) runBlock(ctx context.Context, sc scope, stmts []ast.Node) (ret Value, returned bool, err error) {
	for _, st := range stmts {
		switch st := st.(type) {
		case ast.VarDecl:
			err = ip.runVarDecl(ctx, sc, st)
		case ast.Assignment:
			err = ip.runAssignment(ctx, sc, st)
		case ast.Call:
			_, err = ip.evalCall(ctx, sc, st)
		case ast.Return:
			ret, err = ip.eval(ctx, sc, st.Value)
			if err == nil {
				return ret, true, nil
			}
		case ast.If:
			ret, returned, err = ip.runIf(ctx, sc, st)
		case ast.While:
			ret, returned, err = ip.runWhile(ctx, sc, st)
		default:
			return nil, false, errors.New("unsupported statement: %T", st)
		}

		if err != nil {
			return nil, false, err
		}

		if returned {
			return ret, true, nil
		}
	}

	return nil, false, nil
}

func (ip *Interp) runVarDecl(ctx context.Context, sc scope, st ast.VarDecl) error {
	if _, ok := sc[st.Name.Name]; ok {
		return errors.New("variable %v already defined (at pos 0x%x)", st.Name.Name, st.Pos)
	}

	v, err := ip.eval(ctx, sc, st.Value)
	if err != nil {
		return errors.Wrap(err, "var %v", st.Name.Name)
	}

	if k := kindOf(v); k != st.Type.Kind.String() {
		return errors.New("var %v: expected %v, got %v (at pos 0x%x)", st.Name.Name, st.Type.Kind, k, st.Pos)
	}

	sc[st.Name.Name] = v

	return nil
}

func (ip *Interp) runAssignment(ctx context.Context, sc scope, st ast.Assignment) error {
	if _, ok := sc[st.Name.Name]; !ok {
		return errors.New("no variable %v has been defined (at pos 0x%x)", st.Name.Name, st.Pos)
	}

	v, err := ip.eval(ctx, sc, st.Value)
	if err != nil {
		return errors.Wrap(err, "assign %v", st.Name.Name)
	}

	sc[st.Name.Name] = v

	return nil
}

func (ip *Interp) runIf(ctx context.Context, sc scope, st ast.If) (Value, bool, error) {
	c, err := ip.evalCond(ctx, sc, st.Cond, st.Pos)
	if err != nil {
		return nil, false, err
	}

	if c {
		return ip.runBlock(ctx, sc, st.Then)
	}

	return ip.runBlock(ctx, sc, st.Else)
}

func (ip *Interp) runWhile(ctx context.Context, sc scope, st ast.While) (Value, bool, error) {
	for {
		c, err := ip.evalCond(ctx, sc, st.Cond, st.Pos)
		if err != nil {
			return nil, false, err
		}

		if !c {
			return nil, false, nil
		}

		ret, returned, err := ip.runBlock(ctx, sc, st.Body)
		if err != nil || returned {
			return ret, returned, err
		}
	}
}

func (ip *Interp) evalCond(ctx context.Context, sc scope, x ast.Node, pos int) (bool, error) {
	v, err := ip.eval(ctx, sc, x)
	if err != nil {
		return false, err
	}

	c, ok := v.(Bit)
	if !ok {
		return false, errors.New("condition: expected bit, got %v (at pos 0x%x)", kindOf(v), pos)
	}

	return bool(c), nil
}

func (ip *Interp) eval(ctx context.Context, sc scope, x ast.Node) (Value, error) {
	switch x := x.(type) {
	case ast.Number:
		return Number(x.Value), nil
	case ast.Bool:
		return Bit(x.Value), nil
	case ast.QubitRef:
		return Qubit(x.Index), nil
	case ast.Ident:
		v, ok := sc[x.Name]
		if !ok {
			return nil, errors.New("no variable %v has been defined (at pos 0x%x)", x.Name, x.Pos)
		}

		return v, nil
	case ast.Call:
		v, err := ip.evalCall(ctx, sc, x)
		if err != nil {
			return nil, err
		}

		if v == nil {
			return nil, errors.New("%v returns no value (at pos 0x%x)", x.Name.Name, x.Pos)
		}

		return v, nil
	default:
		return nil, errors.New("unsupported expression: %T", x)
	}
}

func (ip *Interp) evalCall(ctx context.Context, sc scope, x ast.Call) (Value, error) {
	args := make([]Value, len(x.Args))

	for i, a := range x.Args {
		v, err := ip.eval(ctx, sc, a)
		if err != nil {
			return nil, errors.Wrap(err, "%v arg %d", x.Name.Name, i)
		}

		args[i] = v
	}

	if tr := tlog.SpanFromContext(ctx); tr.If("call") {
		tr.Printw("call", "name", x.Name.Name, "args", args, "pos", x.Pos)
	}

	return ip.call(ctx, x.Name.Name, args, x.Pos)
}

func kindOf(v Value) string {
	switch v.(type) {
	case Qubit:
		return "qubit"
	case Number:
		return "number"
	case Bit:
		return "bit"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatValue(v Value) string {
	switch v := v.(type) {
	case Qubit:
		return "%" + strconv.Itoa(int(v))
	case Number:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case Bit:
		return strconv.FormatBool(bool(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// qubitsRequired scans the tree for the highest referenced register.
func qubitsRequired(p *ast.Program) int {
	max := -1

	var expr func(x ast.Node)
	var block func(l []ast.Node)

	expr = func(x ast.Node) {
		switch x := x.(type) {
		case ast.QubitRef:
			if x.Index > max {
				max = x.Index
			}
		case ast.Call:
			for _, a := range x.Args {
				expr(a)
			}
		}
	}

	block = func(l []ast.Node) {
		for _, st := range l {
			switch st := st.(type) {
			case ast.VarDecl:
				expr(st.Value)
			case ast.Assignment:
				expr(st.Value)
			case ast.Call:
				expr(st)
			case ast.Return:
				expr(st.Value)
			case ast.If:
				expr(st.Cond)
				block(st.Then)
				block(st.Else)
			case ast.While:
				expr(st.Cond)
				block(st.Body)
			}
		}
	}

	for _, el := range p.Items {
		if def, ok := el.(ast.Definition); ok {
			block(def.Body)
		}
	}

	return max + 1
}
