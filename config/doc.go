// Package config resolves process-wide engine settings.
//
// Settings are assembled in layers: built-in defaults, an optional
// piper.yaml file, an optional .env file, and finally PIPER_* environment
// variables. PIPER_DEBUG and PIPER_VERBOSE pin the debug/verbose levels for
// every segment in the process, masking any in-tree setting.
//
// The resolved Settings value is carried by an explicit engine rather than
// ambient package state, so tests can instantiate alternate engines side by
// side.
package config
