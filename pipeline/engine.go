package pipeline

import (
	"sync"

	"github.com/piperkit/piper/config"
	"github.com/piperkit/piper/logger"
	"github.com/piperkit/piper/queue"
)

// Engine carries the process-wide defaults and factories a pipeline is
// instantiated against. It is an explicit parameter rather than ambient
// state so tests can run alternate engines side by side.
type Engine struct {
	settings *config.Settings
	queues   queue.Factory
	log      logger.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSettings sets the engine settings record.
func WithSettings(s *config.Settings) EngineOption {
	return func(e *Engine) { e.settings = s }
}

// WithQueueFactory sets the queue factory used for every segment buffer.
func WithQueueFactory(f queue.Factory) EngineOption {
	return func(e *Engine) { e.queues = f }
}

// WithLogger sets the diagnostic sink.
func WithLogger(l logger.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an Engine. Unset options fall back to environment-based
// settings, the in-memory FIFO queue, and the standard logger.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.settings == nil {
		e.settings = config.FromEnv()
	}
	if e.queues == nil {
		e.queues = queue.NewFIFO
	}
	if e.log == nil {
		e.log = logger.New(&e.settings.Logging)
	}
	return e
}

// Settings returns the engine's settings record.
func (e *Engine) Settings() *config.Settings { return e.settings }

// Logger returns the engine's diagnostic sink.
func (e *Engine) Logger() logger.Logger { return e.log }

func (e *Engine) newQueue() queue.Queue { return e.queues() }

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the process-wide default engine, built once from the
// environment.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}
