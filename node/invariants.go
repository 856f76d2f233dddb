package node

import "fmt"

// Check validates structural invariants recursively (spec §3 and §8.8): the
// summary contains exactly the indices of non-empty clusters, min is never
// also stored in a cluster, and reported size matches actual contents.
//
// This checker is intentionally strict and is meant for tests, not for use
// on any hot path.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if !isPowerOfTwo(t.universe) {
		return fmt.Errorf("%w: universe %d is not a power of two", ErrInvalidConfig, t.universe)
	}
	if t.min == nilKey || t.max == nilKey {
		if t.min != nilKey || t.max != nilKey {
			return fmt.Errorf("%w: min/max disagree on emptiness (min=%d max=%d)", ErrInvalidConfig, t.min, t.max)
		}
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree reports size %d", ErrInvalidConfig, t.size)
		}
	} else if t.min > t.max {
		return fmt.Errorf("%w: min %d > max %d", ErrInvalidConfig, t.min, t.max)
	}
	if t.isBaseCase() {
		if t.size > 2 {
			return fmt.Errorf("%w: base case reports size %d > 2", ErrInvalidConfig, t.size)
		}
		return nil
	}
	if t.summary == nil {
		return fmt.Errorf("%w: recursive node missing summary", ErrInvalidConfig)
	}
	if err := t.summary.Check(); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	var clusterTotal uint64
	for i, c := range t.clusters {
		present := c != nil
		inSummary := t.summary.Contains(uint64(i))
		if present != inSummary {
			return fmt.Errorf("%w: cluster %d present=%v but summary membership=%v", ErrInvalidConfig, i, present, inSummary)
		}
		if !present {
			continue
		}
		if c.size == 0 {
			return fmt.Errorf("%w: present cluster %d has size 0", ErrInvalidConfig, i)
		}
		if err := c.Check(); err != nil {
			return fmt.Errorf("cluster %d: %w", i, err)
		}
		for _, k := range c.ToSequence() {
			if k >= t.sqrtSize {
				return fmt.Errorf("%w: cluster %d key %d exceeds sqrtSize %d", ErrInvalidConfig, i, k, t.sqrtSize)
			}
		}
		clusterTotal += c.size
	}
	if t.min != nilKey {
		h, l := t.high(uint64(t.min)), t.low(uint64(t.min))
		if c := t.clusters[h]; c != nil && c.Contains(l) {
			return fmt.Errorf("%w: min %d is also stored in a cluster", ErrInvalidConfig, t.min)
		}
	}
	wantSize := clusterTotal
	if t.min != nilKey {
		wantSize++
	}
	if t.size != wantSize {
		return fmt.Errorf("%w: size %d does not match min-held-separately + cluster totals %d", ErrInvalidConfig, t.size, wantSize)
	}
	return nil
}
