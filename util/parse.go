package util

import (
	"strconv"
	"strings"
)

// ParseInt parses s as a base-10 integer, returning fallback when s is empty
// or unparsable. Environment overrides arrive as strings; a garbled value
// must not take the whole engine down.
func ParseInt(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// ParseBool parses s as a boolean ("true", "1", "false", "0", case
// insensitive), returning fallback when s is empty or unparsable.
func ParseBool(s string, fallback bool) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return fallback
	}
	return v
}
