// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultShortIDLength is the default number of characters for short IDs.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID returns the first n characters of an ID.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
//
// Examples:
//
//	ShortID("0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10", 0) → "0b8f3a52"
//	ShortID("0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10", 4) → "0b8f"
//	ShortID("abc", 20) → "abc" (no truncation if shorter)
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// ResolvePrefix resolves an ID or unique prefix against the known IDs.
//
// Resolution rules:
//  1. An exact match wins, even if it is also a prefix of another ID.
//  2. If idOrPrefix matches exactly one ID prefix (case-insensitive), return that ID.
//  3. If multiple IDs match, return ErrAmbiguousID with candidates.
//  4. If nothing matches, return ErrNotFound.
func ResolvePrefix(idOrPrefix string, ids []string) (string, error) {
	needle := strings.TrimSpace(idOrPrefix)
	if needle == "" {
		return "", fmt.Errorf("empty ID: %w", ErrNotFound)
	}

	var candidates []string
	lower := strings.ToLower(needle)
	for _, id := range ids {
		if id == needle {
			return id, nil
		}
		if strings.HasPrefix(strings.ToLower(id), lower) {
			candidates = append(candidates, id)
		}
	}

	return resolveFromCandidates(needle, candidates)
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("task with prefix %q: %w", prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := make([]string, 0, MaxAmbiguousCandidates)
		for i, c := range candidates {
			if i == MaxAmbiguousCandidates {
				break
			}
			shown = append(shown, ShortID(c, 0))
		}
		return "", fmt.Errorf("%w: prefix %q matches %d tasks: %s",
			ErrAmbiguousID, prefix, len(candidates), strings.Join(shown, ", "))
	}
}
