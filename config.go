package robdd

// _MINFREENODES is the minimal percentage of nodes that has to be left
// after a garbage collection, below which a resize is triggered instead.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels (and so variables) in a Manager.
// We keep 21 bits for the level so it always fits an int32 regardless of
// host architecture.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the ceiling on a node's reference count; once reached
// the count sticks and is never decremented. The shared terminal is
// created at this count, mirroring the teacher's pinning of the two
// terminal slots.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC bounds how many nodes a single resize can add.
const _DEFAULTMAXNODEINC int = 1 << 20

// _REORDERSTARTS is the live-node count at which automatic reordering is
// requested; every reorder resets the threshold to this value. Grounded on
// REORDER_STARTS/REORDER_FACTOR in the original dd/bdd.py.
const _REORDERSTARTS int = 1 << 13

// _REORDERFACTOR multiplies the threshold once after each automatic
// reorder, so the next automatic reorder waits for
// _REORDERSTARTS*_REORDERFACTOR live nodes.
const _REORDERFACTOR int = 2

// config carries the values of every tunable Manager parameter, built via
// the Option functions below before the Manager's internal tables are
// allocated.
type config struct {
	varnum          int
	nodesize        int
	cachesize       int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	autoReorder     bool
	gcEnabled       bool
	maxMemory       int64
	maxCacheHard    int
	logger          Logger
}

func defaultConfig(varnum int) *config {
	c := &config{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.nodesize = 2*varnum + 2
	c.autoReorder = true
	c.gcEnabled = true
	c.logger = nullLogger{}
	return c
}

// Option configures a Manager at construction time.
type Option func(*config)

// Nodesize sets a preferred initial size for the node table. The table
// grows automatically; this only avoids early resizes for callers who know
// roughly how large their diagrams will get.
func Nodesize(size int) Option {
	return func(c *config) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize caps the number of nodes the table can ever hold. Zero (the
// default) means no limit.
func Maxnodesize(size int) Option {
	return func(c *config) { c.maxnodesize = size }
}

// Maxnodeincrease caps how many nodes a single resize can add.
func Maxnodeincrease(size int) Option {
	return func(c *config) { c.maxnodeincrease = size }
}

// Minfreenodes sets the percentage of free nodes that must remain after a
// garbage collection, below which the table is resized instead of just
// collected.
func Minfreenodes(ratio int) Option {
	return func(c *config) { c.minfreenodes = ratio }
}

// Cachesize sets the initial number of entries in the computed caches.
func Cachesize(size int) Option {
	return func(c *config) { c.cachesize = size }
}

// Cacheratio sets the percentage of node-table slots mirrored in cache
// capacity at each resize; zero (the default) keeps caches a fixed size.
func Cacheratio(ratio int) Option {
	return func(c *config) { c.cacheratio = ratio }
}

// AutoReorder turns automatic reordering on or off. It is on by default.
func AutoReorder(on bool) Option {
	return func(c *config) { c.autoReorder = on }
}

// WithLogger attaches a Logger; the default discards every message.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Configuration is the snapshot of live tunables that Configure returns,
// mirroring the keyword arguments of dd.BDD.configure in the original
// source.
type Configuration struct {
	Reordering        bool
	GarbageCollection bool
	MaxMemory         int64
	MaxNodeSize       int
	MaxCacheHard      int
	MinFreeNodes      int
}

// Configure returns the manager's current tunables. It is the Go analogue
// of dd.BDD.configure(**kw): called with no arguments it is a pure getter;
// passing one or more ConfigOption values applies the change and the
// returned Configuration still reflects the prior values, so a caller can
// restore them later.
func (m *Manager) Configure(opts ...ConfigOption) Configuration {
	m.mu.Lock()
	defer m.mu.Unlock()
	prior := Configuration{
		Reordering:        m.cfg.autoReorder,
		GarbageCollection: m.cfg.gcEnabled,
		MaxMemory:         m.cfg.maxMemory,
		MaxNodeSize:       m.cfg.maxnodesize,
		MaxCacheHard:      m.cfg.maxCacheHard,
		MinFreeNodes:      m.cfg.minfreenodes,
	}
	for _, o := range opts {
		o(m.cfg)
	}
	m.setCacheHardCap(m.cfg.maxCacheHard)
	return prior
}

// ConfigOption changes one tunable via Configure; unlike Option it applies
// to a live Manager rather than only at construction time.
type ConfigOption func(*config)

// Reordering enables or disables automatic reordering.
func Reordering(on bool) ConfigOption { return func(c *config) { c.autoReorder = on } }

// GarbageCollection turns off (or back on) the collection alloc runs when
// the free list is empty, and makes GC a no-op while off. Swap and Reorder
// still collect whatever this setting says.
func GarbageCollection(on bool) ConfigOption { return func(c *config) { c.gcEnabled = on } }

// MaxMemory sets a soft cap, in bytes, on the memory the manager may hold;
// zero means unlimited. It is checked by grow, which surfaces Exhausted
// once the node table's estimated footprint has reached it; a grow that
// starts below the cap can take the table past it.
func MaxMemory(bytes int64) ConfigOption { return func(c *config) { c.maxMemory = bytes } }

// MaxCacheHard caps the size a computed cache is given when it is resized
// along with the node table (only when Cacheratio is positive); the capped
// size is rounded up to a prime, and the initial Cachesize is not capped.
// Zero means unlimited.
func MaxCacheHard(entries int) ConfigOption {
	return func(c *config) { c.maxCacheHard = entries }
}

// SetReordering enables or disables automatic reordering after construction.
func (m *Manager) SetReordering(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.autoReorder = on
}
