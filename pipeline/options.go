package pipeline

// Options declares the attributes of a segment. All fields are optional;
// pointer-typed fields distinguish "unset" (nil) from an explicit value.
// Inside Container arguments, an Options record carrying a Handler is
// coerced into a processor child; at most one record without a Handler may
// describe the container itself.
type Options struct {
	// Label is the segment's identity within its parent. Generated when
	// empty.
	Label string
	// Allow admits items into the segment. Rejected items skip the segment
	// and continue downstream.
	Allow Predicate
	// Filter is an alias for Allow, honoured when Allow is nil.
	Filter Predicate
	// BatchSize caps how many items a single handler invocation receives.
	// Inherited from the nearest ancestor when nil.
	BatchSize *int
	// Enabled gates the segment. Inherited when nil; default true.
	Enabled *bool
	// Debug sets the segment's debug level. Inherited when nil.
	Debug *int
	// Verbose sets the segment's verbose level. Inherited when nil.
	Verbose *int
	// Handler makes the record a processor declaration.
	Handler Handler
}

func (o Options) allow() Predicate {
	if o.Allow != nil {
		return o.Allow
	}
	return o.Filter
}

// labeled pairs a label with a segment argument; built with Labeled.
type labeled struct {
	label   string
	segment any
}

// Labeled overrides the label of a child segment passed to Container.
// Process does not accept Labeled pairs; it takes its label as a string:
//
//	pipeline.Container("main", pipeline.Labeled("half", halveBlueprint))
func Labeled(label string, segment any) any {
	return labeled{label: label, segment: segment}
}
