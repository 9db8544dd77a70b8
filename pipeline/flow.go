package pipeline

import "github.com/piperkit/piper/errors"

// Flow-control primitives. All routing is defined relative to the calling
// segment, which handlers receive as their first argument.

// Emit routes items to the segment after the caller: the next sibling's
// enqueue gate, or the parent's drain when the caller is last. At the root,
// items go straight to the root's own drain, so a single-segment pipeline
// still functions. The caller's own gate is bypassed — the segment is the
// producer — but the receiving segment's gate runs normally.
func (in *Instance) Emit(items ...any) {
	if len(items) == 0 {
		return
	}
	if in.parent == nil {
		in.drain.Enqueue(items...)
		return
	}
	in.parent.followerEnqueue(in, items)
}

// Recycle prepends items to the caller's pending queue so the next
// single-item dequeues return them in argument order. On a container the
// recycled items re-enter through the first child's pending queue.
func (in *Instance) Recycle(items ...any) {
	if len(items) == 0 {
		return
	}
	if in.kind == KindContainer {
		in.children[0].Recycle(items...)
		return
	}
	in.pending.Requeue(items...)
}

// Inject enqueues items to the caller's parent, making them visible to
// every sibling. At the root, items re-enter the root's own gate.
func (in *Instance) Inject(items ...any) {
	if len(items) == 0 {
		return
	}
	if in.parent == nil {
		in.Enqueue(items...)
		return
	}
	in.parent.Enqueue(items...)
}

// Eject places items directly on the parent's drain, skipping every
// remaining sibling. At the root, items go to the root's own drain.
func (in *Instance) Eject(items ...any) {
	if len(items) == 0 {
		return
	}
	if in.parent == nil {
		in.drain.Enqueue(items...)
		return
	}
	in.parent.drain.Enqueue(items...)
}

// InjectAt enqueues items at the segment found at location, running that
// segment's own gate. Returns an UNRESOLVED error naming the location when
// no segment matches; the pipeline state is left unchanged.
func (in *Instance) InjectAt(location string, items ...any) error {
	target, ok := in.FindSegment(location)
	if !ok {
		return in.unresolved("injectAt", location)
	}
	target.Enqueue(items...)
	return nil
}

// InjectAfter enqueues items to the follower of the segment found at
// location. Returns an UNRESOLVED error naming the location when no
// segment matches; the pipeline state is left unchanged.
func (in *Instance) InjectAfter(location string, items ...any) error {
	target, ok := in.FindSegment(location)
	if !ok {
		return in.unresolved("injectAfter", location)
	}
	target.Emit(items...)
	return nil
}

func (in *Instance) unresolved(operation, location string) error {
	err := errors.Unresolved(operation, location)
	in.LogWarn(err.Error())
	return err
}
