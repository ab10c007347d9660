package robdd

import (
	"io"
	"strings"

	"github.com/boolshare/robdd/internal/exprparse"
)

// Names wraps a Manager with a persistent name table, giving callers the
// named surface described as the public façade: declaring variables by
// name, looking them up, building formulas from text, and dumping/loading
// by name instead of bare index. The bare Manager stays usable on its own
// for callers that only need integer variable indices.
type Names struct {
	m        *Manager
	indexOf  map[string]int32
	nameOf   map[int32]string
}

// NewNames wraps m in a fresh, empty name table.
func NewNames(m *Manager) *Names {
	return &Names{m: m, indexOf: make(map[string]int32), nameOf: make(map[int32]string)}
}

// Manager returns the underlying index-addressed Manager.
func (nm *Names) Manager() *Manager { return nm.m }

// Declare declares one new variable per name, skipping (and reusing) any
// name already known to this table, and returns the handle for each in
// its positive form, mirroring dd.BDD.declare / spec §4.8's `declare`.
func (nm *Names) Declare(names ...string) ([]Node, error) {
	out := make([]Node, len(names))
	for i, name := range names {
		if idx, ok := nm.indexOf[name]; ok {
			h, err := nm.m.Ithvar(idx)
			if err != nil {
				return nil, err
			}
			out[i] = h
			continue
		}
		idx, err := nm.m.Declare()
		if err != nil {
			return nil, err
		}
		nm.indexOf[name] = idx
		nm.nameOf[idx] = name
		h, err := nm.m.Ithvar(idx)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// Var returns the handle for an already-declared variable named name.
func (nm *Names) Var(name string) (Node, error) {
	idx, ok := nm.indexOf[name]
	if !ok {
		return 0, newError(NotFound, "variable %q is not declared", name)
	}
	return nm.m.Ithvar(idx)
}

// IndexOf returns the variable index assigned to name.
func (nm *Names) IndexOf(name string) (int32, error) {
	idx, ok := nm.indexOf[name]
	if !ok {
		return 0, newError(NotFound, "variable %q is not declared", name)
	}
	return idx, nil
}

// NameOf returns the name assigned to variable index v, or its synthetic
// "x<idx>" fallback if it was declared anonymously via the bare Manager.
func (nm *Names) NameOf(v int32) string {
	if name, ok := nm.nameOf[v]; ok {
		return name
	}
	return varName(nil, v)
}

// names builds the []string slice ToExpr/Dump expect, indexed by variable.
func (nm *Names) names() []string {
	out := make([]string, nm.m.Varnum())
	for idx, name := range nm.nameOf {
		if int(idx) < len(out) {
			out[idx] = name
		}
	}
	return out
}

// AddExpr parses expr with the formula parser and evaluates it against this
// name table, per spec §4.8/§6's `add_expr(string)`. Identifiers are not
// declared here: one that the table does not know fails with NotFound.
func (nm *Names) AddExpr(expr string) (Node, error) {
	ast, err := exprparse.Parse(expr)
	if err != nil {
		return 0, wrapError(BadArgument, err, "add_expr: parsing %q", expr)
	}
	return nm.eval(ast)
}

func (nm *Names) eval(n exprparse.Node) (Node, error) {
	switch e := n.(type) {
	case exprparse.Const:
		return From(bool(e)), nil
	case exprparse.NodeRef:
		return Node(e), nil
	case exprparse.Ident:
		return nm.Var(string(e))
	case exprparse.Not:
		v, err := nm.eval(e.X)
		if err != nil {
			return 0, err
		}
		return nm.m.Not(v), nil
	case exprparse.Bin:
		op, ok := ParseOperator(e.Op)
		if !ok {
			return 0, newError(BadArgument, "add_expr: unknown operator %q", e.Op)
		}
		left, err := nm.eval(e.X)
		if err != nil {
			return 0, err
		}
		right, err := nm.eval(e.Y)
		if err != nil {
			return 0, err
		}
		return nm.m.Apply(left, right, op)
	case exprparse.Ite:
		f, err := nm.eval(e.If)
		if err != nil {
			return 0, err
		}
		g, err := nm.eval(e.Then)
		if err != nil {
			return 0, err
		}
		h, err := nm.eval(e.Else)
		if err != nil {
			return 0, err
		}
		return nm.m.Ite(f, g, h)
	case exprparse.Quant:
		body, err := nm.eval(e.Body)
		if err != nil {
			return 0, err
		}
		vars := make([]int32, len(e.Vars))
		for i, name := range e.Vars {
			idx, err := nm.IndexOf(name)
			if err != nil {
				return 0, err
			}
			vars[i] = idx
		}
		if e.Forall {
			return nm.m.Forall(body, vars)
		}
		return nm.m.Exist(body, vars)
	}
	return 0, newError(InvariantViolation, "add_expr: unhandled AST node %T", n)
}

// Let dispatches among cofactor, rename, or compose depending on the type
// of the first value in assignment, per spec §4.8. A bool value restricts
// the named variable to that constant; a string value renames it to
// another declared variable; any other Node value composes it in as an
// arbitrary substituted function. All entries in one call must agree on
// which of the three kinds of substitution they are performing.
func (nm *Names) Let(u Node, assignment map[string]interface{}) (Node, error) {
	if len(assignment) == 0 {
		return u, nil
	}
	kind := ""
	for _, v := range assignment {
		switch v.(type) {
		case bool:
			kind = "cofactor"
		case string:
			kind = "rename"
		case Node:
			kind = "compose"
		default:
			return 0, newError(BadArgument, "let: unsupported assignment value %T", v)
		}
		break
	}
	res := u
	switch kind {
	case "cofactor":
		for name, v := range assignment {
			idx, err := nm.IndexOf(name)
			if err != nil {
				return 0, err
			}
			b, ok := v.(bool)
			if !ok {
				return 0, newError(BadArgument, "let: mixed assignment kinds for %q", name)
			}
			res, err = nm.m.Cofactor(res, idx, From(b))
			if err != nil {
				return 0, err
			}
		}
		return res, nil
	case "rename":
		oldvars := make([]int32, 0, len(assignment))
		newvars := make([]int32, 0, len(assignment))
		for name, v := range assignment {
			idx, err := nm.IndexOf(name)
			if err != nil {
				return 0, err
			}
			newName, ok := v.(string)
			if !ok {
				return 0, newError(BadArgument, "let: mixed assignment kinds for %q", name)
			}
			newIdx, err := nm.IndexOf(newName)
			if err != nil {
				return 0, err
			}
			oldvars = append(oldvars, idx)
			newvars = append(newvars, newIdx)
		}
		r, err := NewReplacer(oldvars, newvars)
		if err != nil {
			return 0, err
		}
		return nm.m.Rename(res, r)
	case "compose":
		subs := make(map[int32]Node, len(assignment))
		for name, v := range assignment {
			idx, err := nm.IndexOf(name)
			if err != nil {
				return 0, err
			}
			n, ok := v.(Node)
			if !ok {
				return 0, newError(BadArgument, "let: mixed assignment kinds for %q", name)
			}
			subs[idx] = n
		}
		return nm.m.VectorCompose(res, subs)
	}
	return 0, newError(BadArgument, "let: empty or unrecognized assignment")
}

// ToExpr renders n using this table's declared names.
func (nm *Names) ToExpr(n Node) string {
	return nm.m.ToExpr(n, nm.names())
}

// FormatCubes renders every satisfying cube of n using this table's declared
// names, one cube per line, for debugging and the CLI's pick command.
func (nm *Names) FormatCubes(n Node) string {
	var b strings.Builder
	names := nm.names()
	nm.m.PickIter(n, func(a Assignment) bool {
		b.WriteString(formatAssignment(a, names))
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// Dump writes every variable name this table knows alongside n's roots.
func (nm *Names) Dump(w io.Writer, roots ...Node) error {
	return nm.m.Dump(w, nm.names(), roots...)
}

// Load reads a dump into this table's manager, reusing already-declared
// names instead of redeclaring them, and records every name the dump
// introduces.
func (nm *Names) Load(r io.Reader, declareAtRecordedLevel bool) ([]Node, error) {
	roots, names, err := nm.m.Load(r, declareAtRecordedLevel, nm.indexOf)
	if err != nil {
		return nil, err
	}
	for name, idx := range names {
		nm.indexOf[name] = idx
		nm.nameOf[idx] = name
	}
	return roots, nil
}
