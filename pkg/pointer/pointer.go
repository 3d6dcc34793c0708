// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer provides generic helpers for optional fields.
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a literal to a field that expects a
// pointer (e.g. pointer.To("news")).
func To[T any](v T) *T {
	return &v
}
