package ast

type (
	Node interface {
	}

	Base struct {
		Pos int
		End int
	}

	Program struct {
		Base `tlog:",embed"`

		Items []Node
	}

	// Declaration is an extern prototype with no body.
	Declaration struct {
		Base `tlog:",embed"`

		Proto Prototype
	}

	Definition struct {
		Base `tlog:",embed"`

		Proto Prototype
		Body  []Node
	}

	Prototype struct {
		Base `tlog:",embed"`

		Name Ident
		Args []ArgDecl
		Ret  *Type
	}

	ArgDecl struct {
		Base `tlog:",embed"`

		Name Ident
		Type Type
	}

	TypeKind int

	Type struct {
		Base `tlog:",embed"`

		Kind TypeKind
	}

	Ident struct {
		Base `tlog:",embed"`

		Name string
	}

	VarDecl struct {
		Base `tlog:",embed"`

		Name  Ident
		Type  Type
		Value Node
	}

	Assignment struct {
		Base `tlog:",embed"`

		Name  Ident
		Value Node
	}

	Return struct {
		Base `tlog:",embed"`

		Value Node
	}

	// If holds both branches of a conditional. An empty else branch is
	// normalized away: Else is nil whether the source wrote `else { }`
	// or no else at all.
	If struct {
		Base `tlog:",embed"`

		Cond Node
		Then []Node
		Else []Node
	}

	While struct {
		Base `tlog:",embed"`

		Cond Node
		Body []Node
	}

	Call struct {
		Base `tlog:",embed"`

		Name Ident
		Args []Node
	}

	Number struct {
		Base `tlog:",embed"`

		Text  string
		Value float64
	}

	QubitRef struct {
		Base `tlog:",embed"`

		Index int
	}

	Bool struct {
		Base `tlog:",embed"`

		Value bool
	}
)

const (
	NumberType TypeKind = iota
	QubitType
	BitType
)

func (b Base) Span() (pos, end int) { return b.Pos, b.End }

func (k TypeKind) String() string {
	switch k {
	case NumberType:
		return "number"
	case QubitType:
		return "qubit"
	case BitType:
		return "bit"
	}

	return "unknown"
}
