// Package util provides small helpers shared across piper packages:
// pointer construction for optional attributes and lenient parsing of
// environment values.
package util
