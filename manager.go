package robdd

import "sync"

// Manager owns a single shared node table: every Node handle produced by
// its operations is only meaningful relative to this Manager. Manager is
// safe for concurrent use; its public methods take the internal lock for
// the duration of the (possibly recursive) operation, per the
// coarse-grained concurrency model described in the specification.
type Manager struct {
	mu  sync.RWMutex
	cfg *config
	log Logger

	nodes []bddNode
	unique map[tripleKey]int32
	free   []int32
	mark   []bool

	varnum     int32
	levelOfVar []int32 // var index -> level
	varOfLevel []int32 // level -> var index
	declared   []bool  // var index -> still a live, usable variable

	refstack []Node

	itecache     *tripleCache
	applycache   *tripleCache
	quantcache   *tripleCache
	appexcache   *tripleCache
	replacecache *pairCache
	composecache *pairCache

	opsSinceReorder  int
	reorderThreshold int
	reorders         int
	reordering       bool // true while Sift/Reorder runs; alloc skips gc while set
	produced         int  // total nodes ever interned, for Stats
}

// New creates a Manager with varnum initial variables, numbered 0..varnum-1
// at levels 0..varnum-1, configured by opts. Grounded in the teacher's
// New(varnum int, options ...func(*configs)), generalized to return an
// idiomatic (*Manager, error) instead of a sticky error field.
func New(varnum int, opts ...Option) (*Manager, error) {
	if varnum < 0 || int32(varnum) > _MAXVAR {
		return nil, newError(BadArgument, "bad number of variables (%d)", varnum)
	}
	cfg := defaultConfig(varnum)
	for _, o := range opts {
		o(cfg)
	}
	m := &Manager{cfg: cfg, log: cfg.logger}
	m.reorderThreshold = _REORDERSTARTS
	nodesize := primeGte(cfg.nodesize)
	m.newTable(nodesize)
	m.initCaches(cfg)
	for i := 0; i < varnum; i++ {
		if _, err := m.declareVar(); err != nil {
			return nil, err
		}
	}
	m.log.Infof("created manager with %d variables, %d node slots", varnum, nodesize)
	return m, nil
}

// Varnum returns the number of declared variables.
func (m *Manager) Varnum() int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.varnum
}

// Declare adds one new variable at the bottom of the current order and
// returns its index.
func (m *Manager) Declare() (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.declareVar()
}

// Undeclare removes the variable at varIndex's current level, provided no
// live node (other than the variable's own trivial node) still depends on
// it. Supplemented from dd.bdd.BDD.undeclare_vars; it surfaces InUse
// rather than silently breaking every diagram that mentions the variable.
func (m *Manager) Undeclare(varIndex int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if varIndex < 0 || varIndex >= m.varnum {
		return newError(BadArgument, "undeclare: variable %d out of range", varIndex)
	}
	if !m.declared[varIndex] {
		return newError(NotFound, "variable %d is already undeclared", varIndex)
	}
	level := m.levelOfVar[varIndex]
	own, err := m.findOrAdd(level, False, True)
	if err != nil {
		return err
	}
	for id := int32(2); id < int32(len(m.nodes)); id++ {
		nd := m.nodes[id]
		if entry, live := m.unique[tripleKey{nd.level, nd.low, nd.high}]; !live || entry != id {
			continue
		}
		if nd.level == level && id != own.id() {
			return newError(InUse, "variable %d still has live nodes at its level", varIndex)
		}
	}
	m.declared[varIndex] = false
	return nil
}

// Ithvar returns the handle for variable i in its positive form.
func (m *Manager) Ithvar(i int32) (Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= m.varnum {
		return 0, newError(BadArgument, "variable %d out of range [0,%d)", i, m.varnum)
	}
	if !m.declared[i] {
		return 0, newError(NotFound, "variable %d has been undeclared", i)
	}
	return m.findOrAdd(m.levelOfVar[i], False, True)
}

// NIthvar returns the handle for the negation of variable i.
func (m *Manager) NIthvar(i int32) (Node, error) {
	n, err := m.Ithvar(i)
	if err != nil {
		return 0, err
	}
	return -n, nil
}

// LevelOfVar reports the current level of variable i (levels change across
// reordering; the variable's identity does not).
func (m *Manager) LevelOfVar(i int32) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.levelOfVar[i]
}

// VarAtLevel reports which variable currently sits at level.
func (m *Manager) VarAtLevel(level int32) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.varOfLevel[level]
}

// VarOrder returns the current variable order, level by level.
func (m *Manager) VarOrder() []int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order := make([]int32, len(m.varOfLevel))
	copy(order, m.varOfLevel)
	return order
}

// Stats reports diagnostic counters about the node table and caches, in
// the same spirit as the teacher's Stats/stdio.go, adapted to the
// complement-edge representation.
func (m *Manager) Stats() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	used := len(m.nodes) - len(m.free)
	return "robdd manager\n" +
		"variables:   " + itoa(int(m.varnum)) + "\n" +
		"node slots:  " + itoa(len(m.nodes)) + "\n" +
		"used:        " + itoa(used) + "\n" +
		"free:        " + itoa(len(m.free)) + "\n" +
		"produced:    " + itoa(m.produced) + "\n" +
		"reorders:    " + itoa(m.reorders) + "\n"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// AssertConsistent walks the whole node table and checks every canonicity
// invariant from the data model: levels increase strictly from a node to
// its children, the high edge of every stored node is regular, reduction
// holds (low != high), and every id in the unique table round-trips.
// Supplemented from dd.bdd.BDD.assert_consistent.
func (m *Manager) AssertConsistent() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id := int32(2); id < int32(len(m.nodes)); id++ {
		nd := m.nodes[id]
		key := tripleKey{nd.level, nd.low, nd.high}
		entry, live := m.unique[key]
		if !live || entry != id {
			continue
		}
		if nd.high.complemented() {
			return newError(InvariantViolation, "node %d has a complemented high edge", id)
		}
		if nd.low == nd.high {
			return newError(InvariantViolation, "node %d violates reduction (low == high)", id)
		}
		for _, child := range []Node{nd.low, nd.high} {
			if child.id() == oneID {
				continue
			}
			if m.nodes[child.id()].level <= nd.level {
				return newError(InvariantViolation, "node %d at level %d has a child at level %d", id, nd.level, m.nodes[child.id()].level)
			}
		}
	}
	for key, id := range m.unique {
		nd := m.nodes[id]
		if nd.level != key.level || nd.low != key.low || nd.high != key.high {
			return newError(InvariantViolation, "unique-table entry for node %d does not match its stored triple", id)
		}
	}
	return nil
}
