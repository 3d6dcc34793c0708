// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// SlugChecker is the existence check slug assignment needs.
type SlugChecker interface {
	// FindBySlug returns the item of kind holding slug, or (nil, nil).
	FindBySlug(ctx context.Context, kind, slug string) (*Item, error)
}

// Repository is the persistence contract for content items.
//
// Finders return (nil, nil) when nothing matches. Create and Update write the
// item row and its tag associations atomically and return a unique-violation
// error (see dberr.IsUniqueViolation) when the slug is taken within the kind.
type Repository interface {
	SlugChecker

	// List returns every item of kind, newest first, with TagIDs populated.
	List(ctx context.Context, kind string) ([]*Item, error)
	FindByID(ctx context.Context, kind, id string) (*Item, error)

	Create(ctx context.Context, item *Item) error

	// Update writes the item's scalar fields. Associations are replaced by
	// item.TagIDs only when replaceTags is set.
	Update(ctx context.Context, item *Item, replaceTags bool) error

	// Delete removes the item and its associations, never the tags.
	Delete(ctx context.Context, kind, id string) error
}

// TagResolver is the subset of the tag package the manager depends on.
type TagResolver interface {
	ResolveIDs(ctx context.Context, names []string) ([]string, error)
	ResolveNames(ctx context.Context, ids []string) ([]string, error)
}
