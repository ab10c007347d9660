package exprparse

// Node is any node of a parsed formula's abstract syntax tree.
type Node interface{ exprNode() }

// Const is a literal TRUE/FALSE.
type Const bool

// NodeRef is a direct node-id reference, written "@123" or "@-123" in the
// source text.
type NodeRef int32

// Ident is a variable name.
type Ident string

// Not is unary negation.
type Not struct{ X Node }

// Bin is a binary connective; Op is one of the canonical names ParseOperator
// in the core package accepts ("and", "or", "xor", "imp", "biimp", "diff").
type Bin struct {
	Op   string
	X, Y Node
}

// Ite is the ternary if-then-else form.
type Ite struct{ If, Then, Else Node }

// Quant is a quantifier over one or more variables.
type Quant struct {
	Forall bool
	Vars   []string
	Body   Node
}

func (Const) exprNode() {}
func (NodeRef) exprNode() {}
func (Ident) exprNode() {}
func (Not) exprNode() {}
func (Bin) exprNode() {}
func (Ite) exprNode() {}
func (Quant) exprNode() {}
