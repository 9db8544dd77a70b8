// Package queue defines the pluggable ordered-buffer contract used by every
// pipeline segment, plus the default in-memory FIFO implementation.
//
// Segments never depend on a concrete buffer: each instance receives its
// queues from a Factory, so tests and callers can substitute alternate
// implementations (bounded, instrumented, ...) without touching the engine.
package queue
