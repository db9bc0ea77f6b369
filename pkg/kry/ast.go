package kry

// AST node types for .kry blocks. Nodes exist only for the duration of one
// compilation pass: the parser owns them while parsing and the generator
// consumes them.

// ComponentBlock is one DSL block before translation: a component-type name
// plus its ordered properties and children.
type ComponentBlock struct {
	Name       string
	NamePos    Position
	Properties []Property
	Children   []Child
}

// CountBlocks returns the number of blocks in the subtree, counting this one.
// Opaque expression children are not blocks and are not counted.
func (b *ComponentBlock) CountBlocks() int {
	n := 1
	for _, c := range b.Children {
		if c.Block != nil {
			n += c.Block.CountBlocks()
		}
	}
	return n
}

// Property is one `name: value` entry. Order matters for the generation
// order of setter calls, not for output semantics.
type Property struct {
	Name  string
	Pos   Position
	Value Expr
}

// Child is a tagged union: either a nested block or an opaque host
// expression (conditional or iterative child lists the compiler passes
// through verbatim). Exactly one of the fields is set.
type Child struct {
	Block *ComponentBlock
	Expr  *Expr
}

// ExprKind discriminates property-value expressions.
type ExprKind uint8

const (
	// ExprString is a quoted string literal.
	ExprString ExprKind = iota
	// ExprNumber is a numeric literal.
	ExprNumber
	// ExprBool is true or false.
	ExprBool
	// ExprIdent is a bare identifier (alignment constants, handler names).
	ExprIdent
	// ExprOpaque is any other host expression, carried verbatim and never
	// interpreted by this compiler.
	ExprOpaque
)

// Expr is an opaque expression term: a literal the compiler understands, or
// an arbitrary host expression it forwards unchanged. Raw always holds the
// verbatim source text; Tokens the lexed form the analyzer walks.
type Expr struct {
	Kind   ExprKind
	Str    string // ExprString: unquoted value
	Num    float64
	Bool   bool
	Ident  string
	Raw    string
	Tokens []Token
	Pos    Position
}
