package robdd

// Ref increments n's external reference count and returns n so calls can
// be chained, e.g. root = bdd.Ref(bdd.And(a, b)). Constants are immortal
// and never need a Ref.
func (m *Manager) Ref(n Node) Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := n.id()
	if id != oneID && m.nodes[id].ref < _MAXREFCOUNT {
		m.nodes[id].ref++
	}
	return n
}

// Deref decrements n's external reference count. It is the caller's
// responsibility to pair every Ref with exactly one Deref; dropping the
// last reference makes n eligible for collection on the next garbage
// collection pass, not immediately.
func (m *Manager) Deref(n Node) Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := n.id()
	if id != oneID && m.nodes[id].ref > 0 && m.nodes[id].ref < _MAXREFCOUNT {
		m.nodes[id].ref--
	}
	return n
}

// pushref protects a node from collection for the duration of a recursive
// operation, even though it has not (yet) been Ref'd by the caller. This
// mirrors the teacher's refstack: intermediate results of a recursive Ite
// have a refcount of zero until the top-level caller takes a Ref, but a
// nested findOrAdd might trigger a GC in between.
func (m *Manager) pushref(n Node) Node {
	m.refstack = append(m.refstack, n)
	return n
}

// popref pops count entries pushed by pushref.
func (m *Manager) popref(count int) {
	m.refstack = m.refstack[:len(m.refstack)-count]
}

// gc runs a mark-sweep collection: it marks every node reachable from a
// positively referenced node, from the transient refstack, and from every
// declared variable's own node (variables are permanent regardless of
// their external refcount), then frees everything left unmarked. It is
// invoked automatically from alloc when the free list is exhausted; GC
// triggers it directly for callers that want to reclaim memory eagerly.
func (m *Manager) gc() {
	m.log.Debugf("gc: %d nodes, %d free", len(m.nodes), len(m.free))
	for i := range m.mark {
		m.mark[i] = false
	}
	for _, n := range m.refstack {
		m.markFrom(n)
	}
	for id := 2; id < len(m.nodes); id++ {
		if m.nodes[id].ref > 0 {
			m.markFrom(Node(id))
		}
	}
	for v := int32(0); v < m.varnum; v++ {
		if !m.declared[v] {
			continue
		}
		if id, ok := m.unique[tripleKey{m.levelOfVar[v], False, True}]; ok {
			m.markFrom(Node(id))
		}
	}
	m.free = m.free[:0]
	live := 0
	for id := len(m.nodes) - 1; id >= 2; id-- {
		if m.mark[id] {
			live++
			continue
		}
		if _, used := m.unique[tripleKey{m.nodes[id].level, m.nodes[id].low, m.nodes[id].high}]; used {
			delete(m.unique, tripleKey{m.nodes[id].level, m.nodes[id].low, m.nodes[id].high})
		}
		m.nodes[id] = bddNode{}
		m.free = append(m.free, int32(id))
	}
	m.log.Infof("gc done: %d live, %d reclaimed", live, len(m.free))
}

// markFrom marks n's underlying node, and recursively its children,
// skipping constants and already-marked nodes.
func (m *Manager) markFrom(n Node) {
	id := n.id()
	if id == oneID || m.mark[id] {
		return
	}
	m.mark[id] = true
	m.markFrom(m.nodes[id].low)
	m.markFrom(m.nodes[id].high)
}

// GC forces an immediate garbage collection, reclaiming every node that
// has no external reference, is not on the transient refstack, and is not
// one of the manager's declared variables. A no-op when garbage collection
// has been turned off via Configure(GarbageCollection(false)), which
// exists so tests can inspect the raw node table between operations
// without a collection quietly rewriting it.
func (m *Manager) GC() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.cfg.gcEnabled {
		return
	}
	m.gc()
	m.resetCaches()
}
