package robdd

// bddNode is a single entry of the unique table: a variable at level,
// branching to low when that variable is false and to high when it is
// true. By construction (see findOrAdd) high is always a regular
// (non-complemented) edge; the complement bit needed to reach the node is
// carried on the edges pointing at it, never stored in the node itself.
type bddNode struct {
	level int32
	low   Node
	high  Node
	ref   int32 // external reference count, see Ref/Deref
}

// tripleKey is the unique-table lookup key; it is exactly the triple a
// node is hash-consed on, per the data model's canonicity invariant.
type tripleKey struct {
	level int32
	low   Node
	high  Node
}

// nodeByteSize estimates one bddNode's footprint, including its unique-
// table entry, for the MaxMemory soft cap.
const nodeByteSize = 64

func (m *Manager) newTable(nodesize int) {
	m.nodes = make([]bddNode, nodesize)
	m.unique = make(map[tripleKey]int32, nodesize)
	m.mark = make([]bool, nodesize)
	// slot 0 is never used (0 is not a valid node id); slot 1 is the
	// shared terminal, whose low/high loop back to itself and is never
	// placed in the unique table.
	m.nodes[1] = bddNode{level: m.varnum, low: True, high: True, ref: _MAXREFCOUNT}
	m.free = make([]int32, 0, nodesize-2)
	for i := int32(nodesize - 1); i >= 2; i-- {
		m.free = append(m.free, i)
	}
}

// grow doubles the node table (bounded by maxnodesize / maxnodeincrease),
// rounded to a prime size as in the teacher's noderesize, then rebuilds
// the free list for the newly added slots. It does not touch existing ids
// or the unique table, which is addressed by content, not position.
func (m *Manager) grow() error {
	old := len(m.nodes)
	if m.cfg.maxnodesize > 0 && old >= m.cfg.maxnodesize {
		return newError(Exhausted, "node table already at maximum capacity (%d)", m.cfg.maxnodesize)
	}
	if m.cfg.maxMemory > 0 && int64(old)*int64(nodeByteSize) >= m.cfg.maxMemory {
		return newError(Exhausted, "node table already at configured memory budget (%d bytes)", m.cfg.maxMemory)
	}
	next := old * 2
	if m.cfg.maxnodeincrease > 0 && next > old+m.cfg.maxnodeincrease {
		next = old + m.cfg.maxnodeincrease
	}
	if m.cfg.maxnodesize > 0 && next > m.cfg.maxnodesize {
		next = m.cfg.maxnodesize
	}
	next = primeGte(next)
	if next <= old {
		return newError(Exhausted, "unable to grow node table beyond %d entries", old)
	}
	m.log.Infof("resizing node table %d -> %d", old, next)
	grown := make([]bddNode, next)
	copy(grown, m.nodes)
	m.nodes = grown
	m.mark = append(m.mark, make([]bool, next-old)...)
	for i := int32(next - 1); i >= int32(old); i-- {
		m.free = append(m.free, i)
	}
	m.resizeCaches()
	return nil
}

// findOrAdd returns the canonical handle for the node (level, low, high),
// creating it if it is not already present. It enforces the complemented-
// edge canonical form: the high edge of every stored node is regular, so
// whenever the caller's high edge is complemented we flip both children
// and return a complemented result instead. Reduction (low == high) is
// applied before any lookup, per the data model's invariants.
func (m *Manager) findOrAdd(level int32, low, high Node) (Node, error) {
	flip := false
	if high.complemented() {
		low, high = -low, -high
		flip = true
	}
	if low == high {
		if flip {
			return -low, nil
		}
		return low, nil
	}
	key := tripleKey{level: level, low: low, high: high}
	if id, ok := m.unique[key]; ok {
		if flip {
			return -Node(id), nil
		}
		return Node(id), nil
	}
	id, err := m.alloc()
	if err != nil {
		return 0, err
	}
	m.nodes[id] = bddNode{level: level, low: low, high: high}
	m.unique[key] = id
	m.produced++
	if flip {
		return -Node(id), nil
	}
	return Node(id), nil
}

// alloc returns a fresh node id, collecting garbage and growing the table
// as needed, mirroring the escalation in the teacher's makenode: first try
// a free slot, then a GC pass, then a resize.
func (m *Manager) alloc() (int32, error) {
	if len(m.free) == 0 {
		// During reordering the table is in a transient state (old unique
		// entries already removed, replacement nodes half built); a mark-sweep
		// pass here would misjudge liveness, so while a reorder is in
		// progress alloc only grows the table (sifting collects between
		// swaps instead).
		if !m.reordering && m.cfg.gcEnabled {
			m.gc()
			m.resetCaches()
		}
		if (len(m.free)*100)/len(m.nodes) <= m.cfg.minfreenodes {
			if err := m.grow(); err != nil {
				if len(m.free) == 0 {
					return 0, err
				}
			}
		}
		if len(m.free) == 0 {
			return 0, newError(Exhausted, "no free node slots after garbage collection and resize")
		}
	}
	id := m.free[len(m.free)-1]
	m.free = m.free[:len(m.free)-1]
	return id, nil
}

func (m *Manager) level(n Node) int32 {
	if n.id() == oneID {
		return m.varnum
	}
	return m.nodes[n.id()].level
}

// low and high return the children of n, folding in n's own complement bit
// (an edge to a complemented node denotes the complemented function).
func (m *Manager) low(n Node) Node {
	nd := m.nodes[n.id()]
	if n.complemented() {
		return -nd.low
	}
	return nd.low
}

func (m *Manager) high(n Node) Node {
	nd := m.nodes[n.id()]
	if n.complemented() {
		return -nd.high
	}
	return nd.high
}

// declareVar allocates a new variable at the bottom level (varnum grows by
// one) and records the var<->level mapping.
func (m *Manager) declareVar() (int32, error) {
	if m.varnum >= _MAXVAR {
		return 0, newError(Exhausted, "maximum number of variables (%d) reached", _MAXVAR)
	}
	v := m.varnum
	level := int32(len(m.levelOfVar))
	m.levelOfVar = append(m.levelOfVar, level)
	m.varOfLevel = append(m.varOfLevel, v)
	m.declared = append(m.declared, true)
	m.varnum++
	m.nodes[1].level = m.varnum // keep the terminal past every real level
	// Force the variable's node (False, True) into the unique table now so
	// later lookups are map hits, matching the teacher's eager creation of
	// varset in New/SetVarnum.
	if _, err := m.findOrAdd(level, False, True); err != nil {
		return 0, err
	}
	return v, nil
}
