package pipeline

// overflowPressure is the pressure at which a segment holds at least one
// full batch.
const overflowPressure = 100

// followerEnqueue delivers a child's output to the segment that follows it:
// the next sibling's enqueue gate, or this container's drain when the child
// is last. Followers are identified by child position, not value, so
// look-alike processors never collide.
func (in *Instance) followerEnqueue(child *Instance, items []any) {
	if len(items) == 0 {
		return
	}
	if child.index+1 < len(in.children) {
		in.children[child.index+1].Enqueue(items...)
		return
	}
	in.drain.Enqueue(items...)
}

// processBatchContainer is the scheduler: it decides which child to advance
// so that a single dequeue progresses the tree minimally.
//
// Children are drained back-to-front: an overflowing child closest to the
// drain goes first so upstream segments never stall behind a full
// downstream buffer. With no overflow, the child closest to a full batch
// runs; a later sibling wins only when its pressure strictly exceeds.
func (in *Instance) processBatchContainer() error {
	chosen, reason := in.choose()
	if chosen == nil {
		return nil
	}
	in.LogDebug(reason + ": " + chosen.Path())

	if err := chosen.ProcessBatch(); err != nil {
		return err
	}

	if n := chosen.Ready(); n > 0 {
		in.followerEnqueue(chosen, chosen.drain.Dequeue(n))
	}
	return nil
}

func (in *Instance) choose() (*Instance, string) {
	for i := len(in.children) - 1; i >= 0; i-- {
		if in.children[i].Pressure() >= overflowPressure {
			return in.children[i], "chose overflowing process closest to drain"
		}
	}

	var best *Instance
	bestPressure := 0
	for _, c := range in.children {
		if c.Pending() == 0 {
			continue
		}
		if p := c.Pressure(); best == nil || p > bestPressure {
			best, bestPressure = c, p
		}
	}
	if best == nil {
		return nil, ""
	}
	return best, "chose process closest to overflow"
}
