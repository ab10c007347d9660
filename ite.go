package robdd

// Not returns the negation of n. Because every handle carries its own
// complement bit, negation never touches the node table: it is the
// constant-time sign flip that motivates complemented edges in the first
// place.
func (m *Manager) Not(n Node) Node { return -n }

// restrict returns the two children of n with respect to level lvl: if n's
// own level is lvl it is the node's actual low/high pair, otherwise n does
// not yet depend on the variable at lvl and both cofactors are n itself.
func (m *Manager) restrict(n Node, lvl int32) (Node, Node) {
	if m.level(n) != lvl {
		return n, n
	}
	return m.low(n), m.high(n)
}

func ternaryBit(n Node) int {
	if n == True {
		return 1
	}
	return 0
}

// Apply computes the binary connective op between left and right. It is
// the classical top-down recursive Apply, short-circuiting as soon as both
// operands are constants and memoizing every other call in a dedicated
// computed cache, grounded in the teacher's operations.go apply/Apply.
func (m *Manager) Apply(left, right Node, op Operator) (Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// The operands may be unreferenced (fold passes its running result), so
	// keep them on the refstack through any collection during this call.
	m.pushref(left)
	m.pushref(right)
	defer m.popref(2)
	if err := m.maybeAutoReorder(); err != nil {
		return 0, err
	}
	return m.apply(left, right, op)
}

func (m *Manager) apply(a, b Node, op Operator) (Node, error) {
	if a.IsConstant() && b.IsConstant() {
		return From(opres[op][ternaryBit(a)][ternaryBit(b)] == 1), nil
	}
	if res, ok := m.applycache.get(a, b, a, int(op)); ok {
		return res, nil
	}
	la, lb := m.level(a), m.level(b)
	lvl := la
	if lb < lvl {
		lvl = lb
	}
	a0, a1 := m.restrict(a, lvl)
	b0, b1 := m.restrict(b, lvl)
	low, err := m.apply(a0, b0, op)
	if err != nil {
		return 0, err
	}
	m.pushref(low)
	high, err := m.apply(a1, b1, op)
	if err != nil {
		m.popref(1)
		return 0, err
	}
	m.pushref(high)
	res, err := m.findOrAdd(lvl, low, high)
	m.popref(2)
	if err != nil {
		return 0, err
	}
	m.applycache.put(a, b, a, int(op), res)
	return res, nil
}

// And, Or and the rest of the derived connectives fold down to Apply/Ite;
// And/Or accept a variadic list, per the spec's note that n-ary and/or are
// convenience wrappers over the binary primitive.
func (m *Manager) And(n ...Node) (Node, error) { return m.fold(OpAnd, True, n) }
func (m *Manager) Or(n ...Node) (Node, error)  { return m.fold(OpOr, False, n) }

func (m *Manager) fold(op Operator, identity Node, n []Node) (Node, error) {
	if len(n) == 0 {
		return identity, nil
	}
	res := n[0]
	var err error
	for _, next := range n[1:] {
		res, err = m.Apply(res, next, op)
		if err != nil {
			return 0, err
		}
	}
	return res, nil
}

// Imp, Equiv and Equal are single-operator conveniences named directly in
// the spec's operator vocabulary.
func (m *Manager) Imp(a, b Node) (Node, error)   { return m.Apply(a, b, OpImp) }
func (m *Manager) Equiv(a, b Node) (Node, error) { return m.Apply(a, b, OpBiimp) }
func (m *Manager) Equal(a, b Node) bool          { return a == b }

// Ite computes if-then-else: (f & g) | (!f & h). Apply and its wrappers do
// not reduce to it: they run their own recursion and cache.
func (m *Manager) Ite(f, g, h Node) (Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.maybeAutoReorder(); err != nil {
		return 0, err
	}
	return m.ite(f, g, h)
}

func (m *Manager) ite(f, g, h Node) (Node, error) {
	switch {
	case f == True:
		return g, nil
	case f == False:
		return h, nil
	case g == h:
		return g, nil
	case g == True && h == False:
		return f, nil
	case g == False && h == True:
		return -f, nil
	}
	if f.complemented() {
		f, g, h = -f, h, g
	}
	if res, ok := m.itecache.get(f, g, h, 0); ok {
		return res, nil
	}
	lvl := m.level(f)
	if l := m.level(g); l < lvl {
		lvl = l
	}
	if l := m.level(h); l < lvl {
		lvl = l
	}
	f0, f1 := m.restrict(f, lvl)
	g0, g1 := m.restrict(g, lvl)
	h0, h1 := m.restrict(h, lvl)
	low, err := m.ite(f0, g0, h0)
	if err != nil {
		return 0, err
	}
	m.pushref(low)
	high, err := m.ite(f1, g1, h1)
	if err != nil {
		m.popref(1)
		return 0, err
	}
	m.pushref(high)
	res, err := m.findOrAdd(lvl, low, high)
	m.popref(2)
	if err != nil {
		return 0, err
	}
	m.itecache.put(f, g, h, 0, res)
	return res, nil
}
