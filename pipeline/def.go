package pipeline

// Def is a composable, YAML-defined pipeline description. Handlers and
// predicates are referenced by registry key so definitions stay pure data.
type Def struct {
	// Name labels the root container.
	Name string `yaml:"name"`
	// BatchSize sets the root container's batch size.
	BatchSize *int `yaml:"batch_size,omitempty"`
	// Includes lists sub-pipeline names composed as child containers
	// (recursive).
	Includes []string `yaml:"includes,omitempty"`
	// Segments defines the pipeline's child segments in order.
	Segments []SegmentDef `yaml:"segments"`
}

// SegmentDef defines one segment within a pipeline. A definition with
// nested Segments is a container; otherwise it is a processor and Handler
// must name a registered handler.
type SegmentDef struct {
	// Label is the segment's identity within its parent. Generated when
	// empty.
	Label string `yaml:"label,omitempty"`
	// Handler is the registry lookup key for a processor's handler.
	Handler string `yaml:"handler,omitempty"`
	// Allow is the registry lookup key for the segment's allow predicate.
	Allow string `yaml:"allow,omitempty"`
	// BatchSize sets the segment's own batch size.
	BatchSize *int `yaml:"batch_size,omitempty"`
	// Enabled sets the segment's own enabled flag.
	Enabled *bool `yaml:"enabled,omitempty"`
	// Debug sets the segment's own debug level.
	Debug *int `yaml:"debug,omitempty"`
	// Verbose sets the segment's own verbose level.
	Verbose *int `yaml:"verbose,omitempty"`
	// Segments makes this definition a nested container.
	Segments []SegmentDef `yaml:"segments,omitempty"`
}
