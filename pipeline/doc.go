// Package pipeline provides a segmented, pull-driven data pipeline engine.
//
// A pipeline is described once as a Blueprint — a tree of processors (leaf
// segments with a handler) and containers (ordered groups of segments) —
// and instantiated with Init into a live Instance that owns queues and
// runtime attributes. Work only happens when output is pulled: Dequeue
// forces the scheduler to advance whichever internal segment is closest to
// producing output, one batch at a time.
//
//	double := pipeline.Process("double", pipeline.Map(func(x any) any {
//	    return x.(int) * 2
//	}))
//	root, err := pipeline.Container("main", double).Init()
//	if err != nil { ... }
//	root.Enqueue(1, 2, 3)
//	out, err := root.Dequeue(3) // [2, 4, 6]
//
// Handlers route their results explicitly with the flow-control primitives
// Emit, Recycle, Inject, Eject, InjectAt, and InjectAfter. Segment
// attributes (batch size, enabled, debug, verbose) inherit lazily through
// the container hierarchy, and FindSegment resolves label paths to the
// nearest matching segment.
package pipeline
