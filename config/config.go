package config

import (
	"github.com/piperkit/piper/logger"
	"github.com/piperkit/piper/validation"
)

// DefaultBatchSize is the engine-wide batch size when neither a segment nor
// an ancestor sets one.
const DefaultBatchSize = 200

// Environment variables recognized by the engine.
const (
	// EnvDebug pins the debug level for every segment.
	EnvDebug = "PIPER_DEBUG"
	// EnvVerbose pins the verbose level for every segment.
	EnvVerbose = "PIPER_VERBOSE"
	// EnvBatchSize overrides the default batch size.
	EnvBatchSize = "PIPER_BATCH_SIZE"
)

// Settings contains process-wide engine configuration.
type Settings struct {
	// BatchSize is the default batch size for segments that neither set one
	// nor inherit one.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=1"`
	// Logging configures the default logger output.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`

	// Debug, when non-nil, pins the debug level of every segment and masks
	// in-tree settings. Set from PIPER_DEBUG; not file-configurable.
	Debug *int `yaml:"-" mapstructure:"-"`
	// Verbose, when non-nil, pins the verbose level of every segment and
	// masks in-tree settings. Set from PIPER_VERBOSE; not file-configurable.
	Verbose *int `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	if s.BatchSize == 0 {
		s.BatchSize = DefaultBatchSize
	}
	s.Logging.ApplyDefaults()
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := validation.ValidateStruct(s); err != nil {
		return err
	}
	return s.Logging.Validate()
}
