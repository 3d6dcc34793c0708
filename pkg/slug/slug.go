// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs ("url text") from titles.
//
// # Usage
//
// Slugs are used as human-readable identifiers for catalogue items
// (e.g., "spring-sale-2026"). Only lowercase ASCII letters and digits survive;
// every other run of characters collapses into a single hyphen.
package slug

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// nonAlphanumeric matches any run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
	// valid is the shape every non-empty output of [From] has.
	valid = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// From converts an arbitrary string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Converts to lowercase (Unicode-aware).
// 2. Replaces every maximal run of characters outside [a-z0-9] with "-".
// 3. Trims leading/trailing hyphens and collapses repeats.
//
// An empty title yields an empty slug. From is a fixed point on its own output.
func From(title string) string {
	if title == "" {
		return ""
	}

	// A Caser is stateful, so each call gets its own.
	result := cases.Lower(language.Und).String(title)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")

	return result
}

// IsValid reports whether s is a non-empty, well-formed slug.
func IsValid(s string) bool {
	return valid.MatchString(s)
}
