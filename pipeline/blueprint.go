package pipeline

import (
	"github.com/piperkit/piper/errors"
	"github.com/piperkit/piper/util"
	"github.com/piperkit/piper/validation"
)

// Kind distinguishes the two segment variants.
type Kind int

const (
	// KindProcessor is a leaf segment with a handler and a pending queue.
	KindProcessor Kind = iota
	// KindContainer is a segment owning an ordered list of children and a
	// drain queue.
	KindContainer
)

// String returns the kind's display name.
func (k Kind) String() string {
	if k == KindContainer {
		return "container"
	}
	return "process"
}

// Blueprint is the immutable description of a segment tree. A blueprint is
// built once and may be instantiated many times with Init.
type Blueprint struct {
	kind      Kind
	label     string
	allow     Predicate
	batchSize *int
	enabled   *bool
	debug     *int
	verbose   *int
	handler   Handler
	children  []*Blueprint

	// err records the first construction problem; surfaced at Init so
	// constructors stay nestable.
	err error
}

// Kind returns the blueprint's segment kind.
func (b *Blueprint) Kind() Kind { return b.kind }

// Label returns the blueprint's label.
func (b *Blueprint) Label() string { return b.label }

// Children returns the blueprint's child blueprints in order.
func (b *Blueprint) Children() []*Blueprint {
	out := make([]*Blueprint, len(b.children))
	copy(out, b.children)
	return out
}

// Process declares a processor segment. Arguments may be a label string, an
// Options record, and a handler in any callable form accepted by the
// engine (Handler, Map/Apply/Effect results, or a bare func with the
// Handler signature). A processor without a handler fails at Init.
func Process(args ...any) *Blueprint {
	b := &Blueprint{kind: KindProcessor}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			b.label = v
		case Options:
			b.applyOptions(v)
		case *Options:
			b.applyOptions(*v)
		case Handler:
			b.handler = v
		case func(in *Instance, batch []any, args ...any) error:
			b.handler = v
		case func(item any) any:
			b.handler = Map(v)
		case func(item any) (any, error):
			b.handler = Apply(v)
		default:
			b.fail(errors.Typef("process: unusable argument of type %T", arg))
		}
	}
	if b.label == "" {
		b.label = generateLabel(KindProcessor)
	}
	return b
}

// Container declares a container segment from a heterogeneous argument
// list: child blueprints, handlers (coerced into processors), Options
// records (coerced into processors when they carry a Handler, otherwise
// describing the container itself), pre-initialized instances (unwrapped to
// their blueprint), Labeled pairs overriding a child's label, and a label
// string for the container. A container without children fails at Init.
func Container(args ...any) *Blueprint {
	b := &Blueprint{kind: KindContainer}
	described := false
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			b.label = v
		case Options:
			b.containerArg(v, &described)
		case *Options:
			b.containerArg(*v, &described)
		default:
			if child, err := coerceChild(arg); err != nil {
				b.fail(err)
			} else {
				b.children = append(b.children, child)
			}
		}
	}
	if b.label == "" {
		b.label = generateLabel(KindContainer)
	}
	return b
}

func (b *Blueprint) containerArg(o Options, described *bool) {
	if o.Handler != nil {
		b.children = append(b.children, processorFromOptions(o))
		return
	}
	if *described {
		b.fail(errors.Config("container: more than one attribute record"))
		return
	}
	*described = true
	b.applyOptions(o)
}

// coerceChild turns a constructor argument into a child blueprint.
func coerceChild(arg any) (*Blueprint, error) {
	switch v := arg.(type) {
	case *Blueprint:
		return v, nil
	case *Instance:
		return v.bp, nil
	case Options:
		if v.Handler == nil {
			return nil, errors.Config("child attribute record carries no handler")
		}
		return processorFromOptions(v), nil
	case *Options:
		return coerceChild(*v)
	case Handler:
		return Process(v), nil
	case func(in *Instance, batch []any, args ...any) error:
		return Process(Handler(v)), nil
	case func(item any) any:
		return Process(Map(v)), nil
	case func(item any) (any, error):
		return Process(Apply(v)), nil
	case labeled:
		child, err := coerceChild(v.segment)
		if err != nil {
			return nil, err
		}
		return child.withLabel(v.label), nil
	default:
		return nil, errors.Typef("container: unusable argument of type %T", arg)
	}
}

func processorFromOptions(o Options) *Blueprint {
	b := &Blueprint{kind: KindProcessor}
	b.applyOptions(o)
	if b.label == "" {
		b.label = generateLabel(KindProcessor)
	}
	return b
}

func (b *Blueprint) applyOptions(o Options) {
	if o.Label != "" {
		b.label = o.Label
	}
	if p := o.allow(); p != nil {
		b.allow = p
	}
	if o.BatchSize != nil {
		b.batchSize = util.Ptr(*o.BatchSize)
	}
	if o.Enabled != nil {
		b.enabled = util.Ptr(*o.Enabled)
	}
	if o.Debug != nil {
		b.debug = util.Ptr(*o.Debug)
	}
	if o.Verbose != nil {
		b.verbose = util.Ptr(*o.Verbose)
	}
	if o.Handler != nil {
		b.handler = o.Handler
	}
}

// withLabel returns a shallow copy with the label replaced, leaving the
// original reusable under its own name.
func (b *Blueprint) withLabel(label string) *Blueprint {
	clone := *b
	clone.label = label
	return &clone
}

func (b *Blueprint) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// firstErr returns the first construction error recorded anywhere in the
// tree, preserving its error code.
func (b *Blueprint) firstErr() error {
	if b.err != nil {
		return b.err
	}
	for _, c := range b.children {
		if err := c.firstErr(); err != nil {
			return err
		}
	}
	return nil
}

// validate walks the blueprint tree collecting constraint violations.
func (b *Blueprint) validate(v *validation.Validator, at string) {
	if b.batchSize != nil {
		v.Positive(at+".batch_size", *b.batchSize)
	}
	switch b.kind {
	case KindProcessor:
		v.Check(b.handler != nil, at, "process requires a handler")
	case KindContainer:
		v.Check(len(b.children) > 0, at, "container requires at least one child")
		for _, c := range b.children {
			c.validate(v, at+"/"+c.label)
		}
	}
}

// Init instantiates the blueprint against the default engine. The init args
// are captured once and shared read-only with every handler in the tree.
func (b *Blueprint) Init(args ...any) (*Instance, error) {
	return b.InitWith(Default(), args...)
}

// InitWith instantiates the blueprint against an explicit engine.
func (b *Blueprint) InitWith(eng *Engine, args ...any) (*Instance, error) {
	if eng == nil {
		eng = Default()
	}
	if err := b.firstErr(); err != nil {
		return nil, err
	}
	v := validation.New()
	b.validate(v, b.label)
	if err := v.Error(); err != nil {
		return nil, err
	}
	root := newInstance(b, eng, nil, 0)
	root.initArgs = args
	return root, nil
}
