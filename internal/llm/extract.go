// ReelMatch - Facet-Indexed Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package llm

import (
	"errors"
	"strings"
)

// ErrNoJSON is returned when a completion contains no JSON object.
var ErrNoJSON = errors.New("no JSON object in completion")

// ExtractJSON returns the JSON object embedded in a completion. Models often
// wrap it in a ```json fence or surround it with prose; everything outside
// the outermost braces is dropped.
func ExtractJSON(content string) (string, error) {
	s := strings.TrimSpace(content)

	if start := strings.Index(s, "```"); start >= 0 {
		rest := s[start+3:]
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimPrefix(rest, "JSON")
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		s = strings.TrimSpace(rest)
	}

	open := strings.Index(s, "{")
	closing := strings.LastIndex(s, "}")
	if open < 0 || closing < open {
		return "", ErrNoJSON
	}
	return s[open : closing+1], nil
}
