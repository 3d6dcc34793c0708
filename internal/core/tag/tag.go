// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag owns the catalogue's labels: explicit tag management and the
// name/identifier resolution every content kind relies on.
package tag

import "time"

// Tag represents a named label attached to catalogue items.
//
// Name is globally unique and case-sensitive as stored. Tags are created
// implicitly on first reference by name and are never removed when they
// become unreferenced.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  *string   `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the payload for explicit tag creation.
type Input struct {
	Name     string  `json:"name"`
	Category *string `json:"category"`
}

// Patch carries the fields of a tag update. Nil fields are left untouched.
type Patch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// Validation field names.
const (
	FieldName     = "name"
	FieldCategory = "category"
)

const maxNameLength = 100
