package pipeline

// Handler processes one batch of items for a processor segment. The handler
// decides what happens to each result via the instance's flow-control
// methods (Emit, Recycle, Inject, ...); nothing is forwarded implicitly.
// The variadic args are the init args captured when the root was
// initialized, shared read-only by every handler in the tree.
type Handler func(in *Instance, batch []any, args ...any) error

// Predicate decides whether an item enters a segment's pending queue.
// Rejected items skip the segment and continue downstream.
type Predicate func(item any) bool

// Map adapts a pure per-item transformation into a Handler that emits every
// result downstream.
func Map(fn func(item any) any) Handler {
	return func(in *Instance, batch []any, _ ...any) error {
		out := make([]any, len(batch))
		for i, item := range batch {
			out[i] = fn(item)
		}
		in.Emit(out...)
		return nil
	}
}

// Apply adapts a fallible per-item transformation into a Handler. Results
// produced before a failure are emitted; the error aborts the rest of the
// batch.
func Apply(fn func(item any) (any, error)) Handler {
	return func(in *Instance, batch []any, _ ...any) error {
		for _, item := range batch {
			result, err := fn(item)
			if err != nil {
				return err
			}
			in.Emit(result)
		}
		return nil
	}
}

// Effect adapts a side-effecting observer into a Handler. Items pass
// through unchanged; an error aborts the rest of the batch.
func Effect(fn func(item any) error) Handler {
	return func(in *Instance, batch []any, _ ...any) error {
		for _, item := range batch {
			if err := fn(item); err != nil {
				return err
			}
			in.Emit(item)
		}
		return nil
	}
}
