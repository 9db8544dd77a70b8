package pipeline

import (
	"math"

	"github.com/piperkit/piper/errors"
	"github.com/piperkit/piper/queue"
	"github.com/piperkit/piper/util"
)

// Instance is the live, stateful realization of a Blueprint. Instances own
// queues and runtime attribute mirrors; the blueprint they came from stays
// immutable and reusable.
//
// Children are owned by their container; parent links are non-owning back
// references, so the root owns the tree transitively.
type Instance struct {
	bp     *Blueprint
	engine *Engine

	kind   Kind
	label  string
	parent *Instance
	index  int

	// main and path are resolved lazily and cached.
	main *Instance
	path string

	// initArgs live on the root only; descendants reach them through Main.
	initArgs []any

	// Runtime-writable attribute mirrors. nil means unset: reads walk up
	// the ancestor chain on every call, so mutating an ancestor takes
	// effect immediately for descendants that have not set their own.
	allow     Predicate
	handler   Handler
	batchSize *int
	enabled   *bool
	debug     *int
	verbose   *int

	pending   queue.Queue // processors
	drain     queue.Queue // containers, and a processor used as root
	children  []*Instance
	directory map[string]*Instance
}

// newInstance realizes a blueprint subtree in a single pre-order traversal,
// binding parents and building directories.
func newInstance(b *Blueprint, eng *Engine, parent *Instance, index int) *Instance {
	in := &Instance{
		bp:        b,
		engine:    eng,
		kind:      b.kind,
		label:     b.label,
		parent:    parent,
		index:     index,
		allow:     b.allow,
		handler:   b.handler,
		batchSize: clonePtr(b.batchSize),
		enabled:   clonePtr(b.enabled),
		debug:     clonePtr(b.debug),
		verbose:   clonePtr(b.verbose),
	}

	switch b.kind {
	case KindProcessor:
		in.pending = eng.newQueue()
		if parent == nil {
			in.drain = eng.newQueue()
		}
	case KindContainer:
		in.drain = eng.newQueue()
		in.children = make([]*Instance, len(b.children))
		in.directory = make(map[string]*Instance, len(b.children))
		for i, cb := range b.children {
			child := newInstance(cb, eng, in, i)
			in.children[i] = child
			// Duplicate sibling labels are allowed; the first one keeps the
			// directory slot and the resolver handles the rest.
			if _, exists := in.directory[child.label]; !exists {
				in.directory[child.label] = child
			}
		}
	}
	return in
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return util.Ptr(*p)
}

// Init on a live instance is a no-op that returns the same instance.
func (in *Instance) Init(_ ...any) *Instance { return in }

// Kind returns the instance's segment kind.
func (in *Instance) Kind() Kind { return in.kind }

// Label returns the instance's label within its parent.
func (in *Instance) Label() string { return in.label }

// Parent returns the containing instance, or false for the root.
func (in *Instance) Parent() (*Instance, bool) {
	return in.parent, in.parent != nil
}

// Main returns the root of the tree.
func (in *Instance) Main() *Instance {
	if in.main == nil {
		if in.parent == nil {
			in.main = in
		} else {
			in.main = in.parent.Main()
		}
	}
	return in.main
}

// Path returns the full label path from the root to this segment.
func (in *Instance) Path() string {
	if in.path == "" {
		if in.parent == nil {
			in.path = in.label
		} else {
			in.path = in.parent.Path() + "/" + in.label
		}
	}
	return in.path
}

// Children returns the instance's children in order. Processors have none.
func (in *Instance) Children() []*Instance {
	out := make([]*Instance, len(in.children))
	copy(out, in.children)
	return out
}

// InitArgs returns the init args captured at root initialization, shared
// read-only by the whole tree.
func (in *Instance) InitArgs() []any { return in.Main().initArgs }

// --- attribute inheritance ---

// BatchSize returns the effective batch size: the instance's own value if
// set, else the nearest ancestor's, else the engine default.
func (in *Instance) BatchSize() int {
	for n := in; n != nil; n = n.parent {
		if n.batchSize != nil {
			return *n.batchSize
		}
	}
	return in.engine.settings.BatchSize
}

// SetBatchSize sets the instance's own batch size. Non-positive values are
// rejected with a warning.
func (in *Instance) SetBatchSize(n int) {
	if n <= 0 {
		in.LogWarn("ignoring non-positive batch size")
		return
	}
	in.batchSize = util.Ptr(n)
}

// ClearBatchSize unsets the instance's own batch size, restoring
// inheritance.
func (in *Instance) ClearBatchSize() { in.batchSize = nil }

// DebugLevel returns the effective debug level. A PIPER_DEBUG environment
// override pins the level for every segment and masks in-tree settings.
func (in *Instance) DebugLevel() int {
	if pinned := in.engine.settings.Debug; pinned != nil {
		return *pinned
	}
	for n := in; n != nil; n = n.parent {
		if n.debug != nil {
			return *n.debug
		}
	}
	return 0
}

// SetDebug sets the instance's own debug level.
func (in *Instance) SetDebug(level int) { in.debug = util.Ptr(level) }

// ClearDebug unsets the instance's own debug level.
func (in *Instance) ClearDebug() { in.debug = nil }

// VerboseLevel returns the effective verbose level. A PIPER_VERBOSE
// environment override pins the level for every segment.
func (in *Instance) VerboseLevel() int {
	if pinned := in.engine.settings.Verbose; pinned != nil {
		return *pinned
	}
	for n := in; n != nil; n = n.parent {
		if n.verbose != nil {
			return *n.verbose
		}
	}
	return 0
}

// SetVerbose sets the instance's own verbose level.
func (in *Instance) SetVerbose(level int) { in.verbose = util.Ptr(level) }

// ClearVerbose unsets the instance's own verbose level.
func (in *Instance) ClearVerbose() { in.verbose = nil }

// Enabled returns the inherited enabled value: the instance's own if set,
// else the nearest ancestor's, else true.
func (in *Instance) Enabled() bool {
	for n := in; n != nil; n = n.parent {
		if n.enabled != nil {
			return *n.enabled
		}
	}
	return true
}

// IsEnabled reports whether the instance and every ancestor are enabled.
func (in *Instance) IsEnabled() bool {
	for n := in; n != nil; n = n.parent {
		if n.enabled != nil && !*n.enabled {
			return false
		}
	}
	return true
}

// Enable sets the instance's own enabled flag to true.
func (in *Instance) Enable() { in.enabled = util.Ptr(true) }

// Disable sets the instance's own enabled flag to false.
func (in *Instance) Disable() { in.enabled = util.Ptr(false) }

// ClearEnabled unsets the instance's own enabled flag, restoring
// inheritance.
func (in *Instance) ClearEnabled() { in.enabled = nil }

// SetAllow replaces the instance's allow predicate. A nil predicate admits
// everything.
func (in *Instance) SetAllow(p Predicate) { in.allow = p }

// --- counters ---

// Pending returns the number of items awaiting a handler in this segment's
// subtree.
func (in *Instance) Pending() int {
	if in.kind == KindProcessor {
		return in.pending.Ready()
	}
	sum := 0
	for _, c := range in.children {
		sum += c.Pending()
	}
	return sum
}

// Ready returns the number of items available for dequeue at this segment.
// Only containers and a root processor hold a drain; for any other
// processor the output goes straight to its follower, so Ready is 0.
func (in *Instance) Ready() int {
	if in.drain != nil {
		return in.drain.Ready()
	}
	return 0
}

// HasPending reports whether any processor in the subtree has queued items.
func (in *Instance) HasPending() bool { return in.Pending() > 0 }

// Pressure measures how close a segment is to a full batch:
// round(100 * pending / batch_size). Containers report the maximum over
// their children.
func (in *Instance) Pressure() int {
	if in.kind == KindContainer {
		max := 0
		for _, c := range in.children {
			if p := c.Pressure(); p > max {
				max = p
			}
		}
		return max
	}
	return int(math.Round(100 * float64(in.pending.Ready()) / float64(in.BatchSize())))
}

// IsExhausted reports whether nothing is pending and nothing is ready.
func (in *Instance) IsExhausted() bool {
	return !in.HasPending() && in.Ready() == 0
}

// --- enqueue gate ---

// Enqueue accepts items into the segment. Disabled segments and items
// rejected by the allow predicate skip to the segment's drain-equivalent;
// accepted items join the pending queue (processor) or are delegated to the
// first child (container). Producers are always accepted synchronously.
func (in *Instance) Enqueue(items ...any) {
	if len(items) == 0 {
		return
	}
	if !in.IsEnabled() {
		in.LogDebug("skipping disabled segment", items...)
		in.bypass(items)
		return
	}
	accepted := items
	if in.allow != nil {
		accepted = make([]any, 0, len(items))
		rejected := make([]any, 0, len(items))
		for _, item := range items {
			if in.allow(item) {
				accepted = append(accepted, item)
			} else {
				rejected = append(rejected, item)
			}
		}
		if len(rejected) > 0 {
			in.LogDebug("forwarding rejected items", rejected...)
			in.bypass(rejected)
		}
	}
	if len(accepted) == 0 {
		return
	}
	if in.kind == KindProcessor {
		in.pending.Enqueue(accepted...)
		return
	}
	in.children[0].Enqueue(accepted...)
}

// bypass delivers items to the segment's drain-equivalent: a container's
// own drain, or a processor's follower in the parent (its own drain at
// root).
func (in *Instance) bypass(items []any) {
	if in.kind == KindContainer || in.parent == nil {
		in.drain.Enqueue(items...)
		return
	}
	in.parent.followerEnqueue(in, items)
}

// --- exhaustion loop ---

// ProcessBatch advances the segment by one scheduler step: a processor
// runs its handler over one batch; a container advances the overflowing
// child closest to its drain, or else the child under the most pressure.
func (in *Instance) ProcessBatch() error {
	if in.kind == KindProcessor {
		return in.processBatchProcessor()
	}
	return in.processBatchContainer()
}

// IsntExhausted drives ProcessBatch until something is ready or nothing is
// pending, then reports whether output is available.
func (in *Instance) IsntExhausted() (bool, error) {
	for in.Ready() == 0 && in.Pending() > 0 {
		if err := in.ProcessBatch(); err != nil {
			return false, err
		}
	}
	return in.Ready() > 0, nil
}

// Flush drives ProcessBatch until nothing is pending, regardless of
// whether anything becomes ready.
func (in *Instance) Flush() error {
	for in.Pending() > 0 {
		if err := in.ProcessBatch(); err != nil {
			return err
		}
	}
	return nil
}

// Prepare drives ProcessBatch until at least n items are ready or nothing
// is pending.
func (in *Instance) Prepare(n int) error {
	if n <= 0 {
		n = 1
	}
	for in.Ready() < n && in.Pending() > 0 {
		if err := in.ProcessBatch(); err != nil {
			return err
		}
	}
	return nil
}

// Dequeue prepares and removes up to n items (default 1) from the
// segment's drain.
func (in *Instance) Dequeue(n int) ([]any, error) {
	if n <= 0 {
		n = 1
	}
	if err := in.Prepare(n); err != nil {
		return nil, err
	}
	if in.drain == nil {
		return nil, nil
	}
	return in.drain.Dequeue(n), nil
}

// --- logging ---

// LogError reports a terminating failure through the engine logger and
// returns the error the handler should propagate.
func (in *Instance) LogError(msg string, items ...any) error {
	in.engine.log.Error(in, msg, items...)
	return errors.New(errors.ErrCodeHandlerFailure, msg).
		WithDetail("segment", in.Path())
}

// LogWarn reports a recoverable condition. It never interrupts control
// flow.
func (in *Instance) LogWarn(msg string, items ...any) {
	in.engine.log.Warn(in, msg, items...)
}

// LogInfo reports progress, emitted when the segment has verbose or debug
// enabled.
func (in *Instance) LogInfo(msg string, items ...any) {
	in.engine.log.Info(in, msg, items...)
}

// LogDebug reports internal decisions, emitted when the segment has debug
// enabled.
func (in *Instance) LogDebug(msg string, items ...any) {
	in.engine.log.Debug(in, msg, items...)
}
