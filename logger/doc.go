// Package logger provides the diagnostic sink for pipeline segments.
//
// Four severities are supported. Error and Warn always emit; Info emits when
// the originating segment has verbose or debug enabled; Debug emits only
// when debug is enabled. Item context accompanying a message is formatted
// only when the segment's verbose level is above 1. Every line names the
// emitting segment's path.
//
// The Logger interface is pluggable per engine. The default implementation
// wraps zerolog with console or JSON output.
package logger
