package veb

import (
	"iter"
	"math/bits"

	"github.com/abhinvv1/Van-Emde-Boas-tree/events"
	"github.com/abhinvv1/Van-Emde-Boas-tree/node"
)

// Tree is an in-memory set of non-negative integers in [0, U) for a fixed
// universe size U, supporting O(log log U) successor/predecessor and O(1)
// min/max/size/contains.
//
// A Tree created by
//
//	Tree{}
//
// is not usable; always construct one with New. A Tree is not safe for
// concurrent use; see the package's concurrency model.
type Tree struct {
	n    *node.Tree
	feed *events.Feed
}

// Option configures a Tree at construction.
type Option func(*treeOptions)

type treeOptions struct {
	pooled bool
	feed   *events.Feed
}

// WithClusterPooling recycles cluster nodes through a pooled allocator
// instead of letting every lazily allocated/freed cluster hit the garbage
// collector directly.
func WithClusterPooling() Option {
	return func(o *treeOptions) { o.pooled = true }
}

// WithEventFeed attaches a Feed that receives every structural event
// (cluster allocated/freed, min promoted) as it happens.
func WithEventFeed(feed *events.Feed) Option {
	return func(o *treeOptions) { o.feed = feed }
}

// New constructs an empty Tree over [0, universe). universe must be a power
// of two >= 1; any other value is rejected with ErrInvalidUniverse and no
// Tree is produced. Callers that may pass an arbitrary universe should round
// it up first with RoundUpUniverse — the core itself never rounds.
func New(universe uint64, opts ...Option) (*Tree, error) {
	var o treeOptions
	for _, opt := range opts {
		opt(&o)
	}
	var nodeOpts []node.Option
	if o.pooled {
		nodeOpts = append(nodeOpts, node.WithPool(node.NewClusterPool()))
	}
	if o.feed != nil {
		nodeOpts = append(nodeOpts, node.WithSink(o.feed))
	}
	n, err := node.New(universe, nodeOpts...)
	if err != nil {
		T().Errorf("veb.New(%d): %s", universe, err.Error())
		return nil, err
	}
	return &Tree{n: n, feed: o.feed}, nil
}

// RoundUpUniverse rounds n up to the next power of two (n itself if it
// already is one). This is the one adapter-style courtesy spec.md reserves
// for callers rather than the core: New still rejects any non-power-of-two
// universe outright.
func RoundUpUniverse(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	T().Infof("veb: rounding universe %d up to %d", n, uint64(1)<<bits.Len64(n))
	return uint64(1) << bits.Len64(n)
}

// UniverseSize returns the fixed universe this Tree was constructed with.
func (t *Tree) UniverseSize() uint64 { return t.n.UniverseSize() }

// Size returns the number of distinct keys currently stored.
func (t *Tree) Size() uint64 { return t.n.Size() }

// Empty reports whether the Tree holds no keys.
func (t *Tree) Empty() bool { return t.n.Empty() }

// Contains reports whether k is stored. Out-of-range keys report false.
func (t *Tree) Contains(k uint64) bool { return t.n.Contains(k) }

// Min returns the smallest stored key, or (0, false) when empty.
func (t *Tree) Min() (uint64, bool) { return t.n.Min() }

// Max returns the largest stored key, or (0, false) when empty.
func (t *Tree) Max() (uint64, bool) { return t.n.Max() }

// Successor returns the smallest stored key strictly greater than k, or
// (0, false) if none exists.
func (t *Tree) Successor(k uint64) (uint64, bool) { return t.n.Successor(k) }

// Predecessor returns the largest stored key strictly less than k, or
// (0, false) if none exists.
func (t *Tree) Predecessor(k uint64) (uint64, bool) { return t.n.Predecessor(k) }

// Insert adds k to the set, returning true iff k was newly inserted.
// ErrOutOfRange is returned, without mutating the tree, iff k >= UniverseSize().
func (t *Tree) Insert(k uint64) (bool, error) { return t.n.Insert(k) }

// Remove deletes k from the set, returning true iff k was present.
func (t *Tree) Remove(k uint64) bool { return t.n.Remove(k) }

// Clear restores the Tree to its just-constructed empty state.
func (t *Tree) Clear() { t.n.Clear() }

// ToSequence returns the stored keys in ascending order. The result is a
// snapshot; behavior under concurrent mutation is undefined.
func (t *Tree) ToSequence() []uint64 { return t.n.ToSequence() }

// Range returns a Go iterator over the stored keys in ascending order.
//
// Unlike ToSequence, Range never materializes the whole sequence up front;
// each step is one Successor call. This is the idiomatic Go shape for
// "produce an ordered sequence", not a host-binding convenience — spec.md's
// scope exclusion for "enumerable/iteration syntactic sugar" is about
// adapter-layer sugar bolted onto a foreign host, not about Go's own
// range-over-func iterators.
func (t *Tree) Range() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		t.n.ForEach(yield)
	}
}

// Check validates the tree's structural invariants (spec §3, §8.8). It is
// meant for tests and diagnostics, not for use on any hot path.
func (t *Tree) Check() error {
	return t.n.Check()
}
