package node

// Successor returns the smallest stored key strictly greater than k, or
// (0, false) if none exists.
func (t *Tree) Successor(k uint64) (uint64, bool) {
	if t.min == nilKey {
		return 0, false
	}
	if k >= t.universe {
		return 0, false
	}
	if t.isBaseCase() {
		if int64(k) < t.min {
			return uint64(t.min), true
		}
		if int64(k) < t.max {
			return uint64(t.max), true
		}
		return 0, false
	}
	if int64(k) < t.min {
		return uint64(t.min), true
	}
	h, l := t.high(k), t.low(k)
	c := t.clusters[h]
	if c != nil {
		if clusterMax, ok := c.Max(); ok && l < clusterMax {
			offset, _ := c.Successor(l)
			return t.index(h, offset), true
		}
	}
	nextCluster, ok := t.summary.Successor(h)
	if !ok {
		return 0, false
	}
	offset, _ := t.clusters[nextCluster].Min()
	return t.index(nextCluster, offset), true
}

// Predecessor returns the largest stored key strictly less than k, or
// (0, false) if none exists.
func (t *Tree) Predecessor(k uint64) (uint64, bool) {
	if t.max == nilKey {
		return 0, false
	}
	if t.isBaseCase() {
		if int64(k) > t.max {
			return uint64(t.max), true
		}
		if int64(k) > t.min {
			return uint64(t.min), true
		}
		return 0, false
	}
	if int64(k) > t.max {
		return uint64(t.max), true
	}
	h, l := t.high(k), t.low(k)
	c := t.clusters[h]
	if c != nil {
		if clusterMin, ok := c.Min(); ok && l > clusterMin {
			offset, _ := c.Predecessor(l)
			return t.index(h, offset), true
		}
	}
	prevCluster, ok := t.summary.Predecessor(h)
	if !ok {
		if int64(k) > t.min {
			return uint64(t.min), true
		}
		return 0, false
	}
	offset, _ := t.clusters[prevCluster].Max()
	return t.index(prevCluster, offset), true
}

// ToSequence returns the stored keys in ascending order, per spec §4.6:
// start at min, repeatedly apply Successor, stopping after max is emitted.
func (t *Tree) ToSequence() []uint64 {
	result := make([]uint64, 0, t.size)
	min, ok := t.Min()
	if !ok {
		return result
	}
	current := min
	for {
		result = append(result, current)
		if current == uint64(t.max) {
			break
		}
		next, ok := t.Successor(current)
		assert(ok, "successor must exist before max is reached")
		current = next
	}
	return result
}

// ForEach walks the stored keys in ascending order, stopping early if visit
// returns false.
func (t *Tree) ForEach(visit func(uint64) bool) {
	min, ok := t.Min()
	if !ok {
		return
	}
	current := min
	for {
		if !visit(current) {
			return
		}
		if current == uint64(t.max) {
			return
		}
		next, ok := t.Successor(current)
		assert(ok, "successor must exist before max is reached")
		current = next
	}
}
