package robdd

// _TRIPLE and _PAIR are Cantor-pairing based hash functions mapping small
// integer keys into a bounded table, carried over verbatim from the
// teacher's cache.go (and its hashing.go twin), which computes the ITE and
// Apply computed-cache slot this same way.
func _TRIPLE(a, b, c, length int) int {
	return _PAIR(c, _PAIR(a, b, length), length)
}

func _PAIR(a, b, length int) int {
	ua := uint64(uint32(a))
	ub := uint64(uint32(b))
	return int(((((ua + ub) * (ua + ub + 1)) / 2) + ua) % uint64(length))
}

// tripleEntry is one computed-cache slot keyed on three node ids plus a
// small operation tag, covering Ite(f,g,h) and Apply(a,b,op) alike.
type tripleEntry struct {
	valid    bool
	a, b, c  Node
	op       int
	res      Node
}

// tripleCache is a fixed, prime-sized direct-mapped cache: a collision
// simply evicts the previous entry, exactly as in the teacher's
// data4ncache. Entries are opportunistic memoization, never a correctness
// requirement, so eviction on collision is safe.
type tripleCache struct {
	table     []tripleEntry
	ratio     int
	hardCap   int
	hit, miss int
}

func newTripleCache(size, ratio int) *tripleCache {
	c := &tripleCache{ratio: ratio}
	c.table = make([]tripleEntry, primeGte(size))
	return c
}

func (c *tripleCache) resize(nodeTableSize int) {
	if c.ratio <= 0 {
		return
	}
	size := (nodeTableSize * c.ratio) / 100
	if c.hardCap > 0 && size > c.hardCap {
		size = c.hardCap
	}
	c.table = make([]tripleEntry, primeGte(size))
}

func (c *tripleCache) reset() {
	for i := range c.table {
		c.table[i].valid = false
	}
}

func (c *tripleCache) get(a, b, cc Node, op int) (Node, bool) {
	idx := _TRIPLE(int(a), int(b), int(cc)*16+op, len(c.table))
	e := c.table[idx]
	if e.valid && e.a == a && e.b == b && e.c == cc && e.op == op {
		c.hit++
		return e.res, true
	}
	c.miss++
	return 0, false
}

func (c *tripleCache) put(a, b, cc Node, op int, res Node) {
	idx := _TRIPLE(int(a), int(b), int(cc)*16+op, len(c.table))
	c.table[idx] = tripleEntry{valid: true, a: a, b: b, c: cc, op: op, res: res}
}

// pairEntry/pairCache is a cache keyed on one node plus a small tag. The
// manager allocates two (replacecache, composecache), sized, capped and
// reset with the other caches; Not uses no cache, and Rename, Compose and
// quantification memoize in per-call maps instead.
type pairEntry struct {
	valid bool
	a     Node
	tag   int32
	res   Node
}

type pairCache struct {
	table     []pairEntry
	ratio     int
	hardCap   int
	hit, miss int
}

func newPairCache(size, ratio int) *pairCache {
	c := &pairCache{ratio: ratio}
	c.table = make([]pairEntry, primeGte(size))
	return c
}

func (c *pairCache) resize(nodeTableSize int) {
	if c.ratio <= 0 {
		return
	}
	size := (nodeTableSize * c.ratio) / 100
	if c.hardCap > 0 && size > c.hardCap {
		size = c.hardCap
	}
	c.table = make([]pairEntry, primeGte(size))
}

func (c *pairCache) reset() {
	for i := range c.table {
		c.table[i].valid = false
	}
}

func (c *pairCache) get(a Node, tag int32) (Node, bool) {
	idx := int(uint32(a)+uint32(tag)*2654435761) % len(c.table)
	if idx < 0 {
		idx += len(c.table)
	}
	e := c.table[idx]
	if e.valid && e.a == a && e.tag == tag {
		c.hit++
		return e.res, true
	}
	c.miss++
	return 0, false
}

func (c *pairCache) put(a Node, tag int32, res Node) {
	idx := int(uint32(a)+uint32(tag)*2654435761) % len(c.table)
	if idx < 0 {
		idx += len(c.table)
	}
	c.table[idx] = pairEntry{valid: true, a: a, tag: tag, res: res}
}

func (m *Manager) initCaches(c *config) {
	size := c.cachesize
	if size == 0 {
		size = 10000
	}
	m.itecache = newTripleCache(size, c.cacheratio)
	m.applycache = newTripleCache(size, c.cacheratio)
	m.quantcache = newTripleCache(size, c.cacheratio)
	m.appexcache = newTripleCache(size, c.cacheratio)
	m.replacecache = newPairCache(size, c.cacheratio)
	m.composecache = newPairCache(size, c.cacheratio)
	m.setCacheHardCap(c.maxCacheHard)
}

// setCacheHardCap propagates the MaxCacheHard tunable to every computed
// cache so a later resize (triggered by node-table growth) never grows a
// cache past the configured bound.
func (m *Manager) setCacheHardCap(entries int) {
	m.itecache.hardCap = entries
	m.applycache.hardCap = entries
	m.quantcache.hardCap = entries
	m.appexcache.hardCap = entries
	m.replacecache.hardCap = entries
	m.composecache.hardCap = entries
}

func (m *Manager) resetCaches() {
	m.itecache.reset()
	m.applycache.reset()
	m.quantcache.reset()
	m.appexcache.reset()
	m.replacecache.reset()
	m.composecache.reset()
}

func (m *Manager) resizeCaches() {
	size := len(m.nodes)
	m.itecache.resize(size)
	m.applycache.resize(size)
	m.quantcache.resize(size)
	m.appexcache.resize(size)
	m.replacecache.resize(size)
	m.composecache.resize(size)
}
