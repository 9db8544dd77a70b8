package pipeline

import "context"

// Iterator provides pull-based sequential access to pipeline output.
type Iterator interface {
	// Next returns the next value. Returns (nil, false, nil) when the
	// pipeline is exhausted.
	Next(ctx context.Context) (any, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Stream adapts an instance to the Iterator shape. No work happens until
// values are pulled via Next, Collect, Drain, or ForEach; each pull
// advances the tree just far enough to produce one item.
type Stream struct {
	root *Instance
}

// Stream returns a pull iterator over the instance's output.
func (in *Instance) Stream() *Stream {
	return &Stream{root: in}
}

// Next advances the pipeline until one item is ready and returns it.
func (s *Stream) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	ok, err := s.root.IsntExhausted()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	items, err := s.root.Dequeue(1)
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return items[0], true, nil
}

// Close implements Iterator. Streams hold no resources of their own.
func (s *Stream) Close() error { return nil }

// Collect pulls the pipeline to exhaustion and returns all values.
func Collect(ctx context.Context, s *Stream) ([]any, error) {
	defer s.Close()
	var result []any
	for {
		val, ok, err := s.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// Drain pulls all values and sends each to sink.
func Drain(ctx context.Context, s *Stream, sink func(context.Context, any) error) error {
	defer s.Close()
	for {
		val, ok, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := sink(ctx, val); err != nil {
			return err
		}
	}
}

// ForEach pulls all values and calls fn for each. Convenience wrapper
// around Drain.
func ForEach(ctx context.Context, s *Stream, fn func(context.Context, any) error) error {
	return Drain(ctx, s, fn)
}
