package metrics

import "pmresolve/resolver"

// Observer adapts a Collector to resolver.Observer, so ResolveDepsThorough
// can report its pool-assembly/graph-built/conflicts-found milestones
// without the resolver core importing this package.
type Observer struct {
	collector *Collector
}

// NewObserver wraps collector as a resolver.Observer.
func NewObserver(collector *Collector) *Observer {
	return &Observer{collector: collector}
}

func (o *Observer) PoolAssembled(size int) { o.collector.SetPoolSize(size) }

// GraphBuilt reports the final node count; NodeAdded is called once per
// node to keep Collector's own per-node increment contract.
func (o *Observer) GraphBuilt(nodeCount int) {
	for i := 0; i < nodeCount; i++ {
		o.collector.NodeAdded()
	}
}

func (o *Observer) ConflictsFound(n int) { o.collector.ConflictsFound(n) }

var _ resolver.Observer = (*Observer)(nil)
