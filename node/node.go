package node

// nilKey is the sentinel for "no such key", per the package GLOSSARY.
const nilKey int64 = -1

// Tree is one node of the recursive van Emde Boas structure: a base case
// when universe <= 2, storing at most two keys directly in min/max, or a
// recursive case owning one summary sub-tree plus a lazily-populated
// cluster array.
type Tree struct {
	cfg      Config
	universe uint64
	size     uint64
	min, max int64

	// recursive-case-only fields; zero/nil for base cases.
	sqrtSize uint64
	summary  *Tree
	clusters []*Tree
}

// New constructs an empty Tree over [0, universe). universe must be a power
// of two >= 1; otherwise New returns ErrInvalidUniverse and no Tree.
func New(universe uint64, opts ...Option) (*Tree, error) {
	if err := validateUniverse(universe); err != nil {
		tracer().Errorf("node.New(%d): %s", universe, err.Error())
		return nil, err
	}
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return newWithConfig(universe, cfg.normalized())
}

func newWithConfig(universe uint64, cfg Config) (*Tree, error) {
	t := &Tree{
		cfg:      cfg,
		universe: universe,
		min:      nilKey,
		max:      nilKey,
	}
	if t.isBaseCase() {
		return t, nil
	}
	t.sqrtSize = sqrtSizeOf(universe)
	numClusters := universe / t.sqrtSize
	t.clusters = make([]*Tree, numClusters)
	summary, err := newWithConfig(numClusters, cfg)
	if err != nil {
		return nil, err
	}
	t.summary = summary
	return t, nil
}

func (t *Tree) isBaseCase() bool {
	return t.universe <= 2
}

// Children exposes the summary sub-tree and cluster slots for diagnostics
// (e.g. structure dumps). It returns (nil, nil) for a base case.
func (t *Tree) Children() (summary *Tree, clusters []*Tree) {
	return t.summary, t.clusters
}

// UniverseSize returns the fixed universe this Tree was constructed with.
func (t *Tree) UniverseSize() uint64 {
	return t.universe
}

// Size returns the number of distinct keys currently stored.
func (t *Tree) Size() uint64 {
	return t.size
}

// Empty reports whether the Tree holds no keys.
func (t *Tree) Empty() bool {
	return t.min == nilKey
}

// Min returns the smallest stored key, or (0, false) when empty.
func (t *Tree) Min() (uint64, bool) {
	if t.min == nilKey {
		return 0, false
	}
	return uint64(t.min), true
}

// Max returns the largest stored key, or (0, false) when empty.
func (t *Tree) Max() (uint64, bool) {
	if t.max == nilKey {
		return 0, false
	}
	return uint64(t.max), true
}

// high and low split a key into its cluster index and its offset within
// that cluster, per spec §4.7.
func (t *Tree) high(k uint64) uint64 { return k / t.sqrtSize }
func (t *Tree) low(k uint64) uint64  { return k % t.sqrtSize }
func (t *Tree) index(h, l uint64) uint64 {
	return h*t.sqrtSize + l
}

// Contains reports whether k is stored. Out-of-range keys report false.
func (t *Tree) Contains(k uint64) bool {
	if k >= t.universe {
		return false
	}
	if int64(k) == t.min || int64(k) == t.max {
		return true
	}
	if t.isBaseCase() {
		return false
	}
	h, l := t.high(k), t.low(k)
	c := t.clusters[h]
	if c == nil {
		return false
	}
	return c.Contains(l)
}

// emptyInsert places k directly into an empty node's min/max slots.
func (t *Tree) emptyInsert(k uint64) {
	t.min, t.max = int64(k), int64(k)
	t.size = 1
}

func (t *Tree) emptyDelete() {
	t.min, t.max = nilKey, nilKey
	t.size = 0
}

func (t *Tree) getCluster(h uint64) *Tree {
	if t.cfg.Pool != nil {
		c := t.cfg.Pool.Get(t.sqrtSize)
		// A borrowed cluster may have last been configured for a different
		// owner (or none, on its first MakeObject); a pool's sub-pool is
		// keyed by universe size alone, so rebind it to this owner's Pool
		// and Sink before handing it back. Its own clusters are nil at this
		// point (Clear ran on return-to-pool), so only the cluster itself
		// and its eagerly-built summary need rebinding.
		c.applyConfig(t.cfg)
		return c
	}
	c, err := newWithConfig(t.sqrtSize, t.cfg)
	assert(err == nil, "sqrtSize is always a power of two by construction")
	return c
}

// applyConfig rebinds t (and its eagerly-built summary, recursively) to cfg.
func (t *Tree) applyConfig(cfg Config) {
	t.cfg = cfg
	if t.summary != nil {
		t.summary.applyConfig(cfg)
	}
}

func (t *Tree) putCluster(c *Tree) {
	if t.cfg.Pool != nil {
		t.cfg.Pool.Put(c)
		return
	}
	// no pool: let the garbage collector reclaim it.
}

// Insert adds k to the set. It returns true iff k was newly inserted, and
// ErrOutOfRange without mutating the tree iff k >= universe.
func (t *Tree) Insert(k uint64) (bool, error) {
	if k >= t.universe {
		tracer().Errorf("node.Insert(%d): out of range for universe %d", k, t.universe)
		return false, ErrOutOfRange
	}
	if t.Contains(k) {
		return false, nil
	}
	if t.min == nilKey {
		t.emptyInsert(k)
		return true, nil
	}
	if t.isBaseCase() {
		if int64(k) < t.min {
			t.min = int64(k)
		}
		if int64(k) > t.max {
			t.max = int64(k)
		}
		t.size++
		return true, nil
	}
	if int64(k) < t.min {
		k, t.min = uint64(t.min), int64(k)
	}
	if int64(k) > t.max {
		t.max = int64(k)
	}
	h, l := t.high(k), t.low(k)
	c := t.clusters[h]
	if c == nil {
		c = t.getCluster(h)
		t.clusters[h] = c
		tracer().Debugf("cluster %d allocated at universe %d", h, t.universe)
		t.cfg.report(Event{Kind: EventClusterAllocated, Universe: t.universe, Key: h})
	}
	if c.min == nilKey {
		_, err := t.summary.Insert(h)
		assert(err == nil, "cluster index must be within summary's universe")
		c.emptyInsert(l)
	} else {
		_, err := c.Insert(l)
		assert(err == nil, "low part must be within cluster's universe")
	}
	t.size++
	return true, nil
}

// Remove deletes k from the set. It returns true iff k was present.
func (t *Tree) Remove(k uint64) bool {
	if k >= t.universe || t.min == nilKey || !t.Contains(k) {
		return false
	}
	if t.isBaseCase() {
		switch {
		case int64(k) == t.min && int64(k) == t.max:
			t.emptyDelete()
		case int64(k) == t.min:
			t.min = t.max
		default:
			t.max = t.min
		}
		t.size--
		return true
	}
	if t.size == 1 {
		t.emptyDelete()
		return true
	}
	if int64(k) == t.min {
		firstCluster, _ := t.summary.Min()
		lowest, _ := t.clusters[firstCluster].Min()
		k = t.index(firstCluster, lowest)
		t.min = int64(k)
		t.cfg.report(Event{Kind: EventMinPromoted, Universe: t.universe, Key: k})
	}
	h, l := t.high(k), t.low(k)
	c := t.clusters[h]
	if c != nil {
		c.Remove(l)
		if c.min == nilKey {
			t.summary.Remove(h)
			t.clusters[h] = nil
			t.putCluster(c)
			tracer().Debugf("cluster %d freed at universe %d", h, t.universe)
			t.cfg.report(Event{Kind: EventClusterFreed, Universe: t.universe, Key: h})
			if int64(k) == t.max {
				if summaryMax, ok := t.summary.Max(); ok {
					clusterMax, _ := t.clusters[summaryMax].Max()
					t.max = int64(t.index(summaryMax, clusterMax))
				} else {
					t.max = t.min
				}
			}
		} else if int64(k) == t.max {
			clusterMax, _ := c.Max()
			t.max = int64(t.index(h, clusterMax))
		}
	}
	t.size--
	return true
}

// Clear restores the Tree to its just-constructed empty state, deallocating
// every cluster and recursively clearing the summary.
func (t *Tree) Clear() {
	t.min, t.max = nilKey, nilKey
	t.size = 0
	if t.isBaseCase() {
		return
	}
	t.summary.Clear()
	for i, c := range t.clusters {
		if c != nil {
			t.putCluster(c)
			t.clusters[i] = nil
		}
	}
}
