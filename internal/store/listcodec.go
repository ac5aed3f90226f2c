// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "strings"

// Tags and author lists are persisted as comma-joined text. The codec lives
// here so callers only ever see []string; the delimiter never leaks past the
// store boundary. A value containing a comma cannot be represented and is
// split on write, which matches the historical on-disk format.

// JoinList serializes a string list to comma-joined text, dropping empty
// entries and trimming whitespace.
func JoinList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitList parses comma-joined text into a string list. Empty input yields
// an empty (non-nil) slice so JSON callers always see an array.
func SplitList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
