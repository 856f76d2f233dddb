package node

import (
	"context"
	"sync"

	commonspool "github.com/jolestar/go-commons-pool"
)

// ClusterPool recycles cluster *Tree nodes keyed by their universe size,
// backed by a go-commons-pool object pool per distinct universe.
//
// Clusters are allocated and freed constantly under lazy allocation (spec
// §5, "Allocation"); recycling the node headers instead of letting every one
// hit the garbage collector is the whole point of wiring this in.
type ClusterPool struct {
	mu    sync.Mutex
	pools map[uint64]*commonspool.ObjectPool
	ctx   context.Context
}

// NewClusterPool creates an empty ClusterPool. Per-universe sub-pools are
// created lazily on first use.
func NewClusterPool() *ClusterPool {
	return &ClusterPool{
		pools: make(map[uint64]*commonspool.ObjectPool),
		ctx:   context.Background(),
	}
}

type clusterFactory struct {
	universe uint64
}

func (f *clusterFactory) MakeObject(ctx context.Context) (*commonspool.PooledObject, error) {
	t, err := newWithConfig(f.universe, Config{})
	if err != nil {
		return nil, err
	}
	return commonspool.NewPooledObject(t), nil
}

func (f *clusterFactory) DestroyObject(ctx context.Context, object *commonspool.PooledObject) error {
	return nil
}

func (f *clusterFactory) ValidateObject(ctx context.Context, object *commonspool.PooledObject) bool {
	return true
}

func (f *clusterFactory) ActivateObject(ctx context.Context, object *commonspool.PooledObject) error {
	return nil
}

func (f *clusterFactory) PassivateObject(ctx context.Context, object *commonspool.PooledObject) error {
	object.Object.(*Tree).Clear()
	return nil
}

func (p *ClusterPool) subPool(universe uint64) *commonspool.ObjectPool {
	p.mu.Lock()
	defer p.mu.Unlock()
	sp, ok := p.pools[universe]
	if !ok {
		sp = commonspool.NewObjectPoolWithDefaultConfig(p.ctx, &clusterFactory{universe: universe})
		p.pools[universe] = sp
	}
	return sp
}

// Get borrows (or freshly constructs) an empty cluster of the given universe.
func (p *ClusterPool) Get(universe uint64) *Tree {
	sp := p.subPool(universe)
	obj, err := sp.BorrowObject(p.ctx)
	assert(err == nil, "cluster pool factory never fails for a valid universe")
	return obj.(*Tree)
}

// Put returns a cluster to its universe-sized sub-pool for later reuse. The
// cluster must already be empty (callers free clusters the instant their
// size reaches zero, per spec invariant 8).
func (p *ClusterPool) Put(t *Tree) {
	sp := p.subPool(t.universe)
	err := sp.ReturnObject(p.ctx, t)
	assert(err == nil, "returning a cluster borrowed from this pool never fails")
}
