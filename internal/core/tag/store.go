// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import "context"

// Repository is the persistence contract for tags.
//
// Finders return (nil, nil) when nothing matches. Create and Update return a
// unique-violation error (see dberr.IsUniqueViolation) when the name is taken.
type Repository interface {
	List(ctx context.Context) ([]*Tag, error)
	FindByID(ctx context.Context, id string) (*Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)

	// FindByIDs is a set-membership lookup ordered by name, not by input.
	FindByIDs(ctx context.Context, ids []string) ([]*Tag, error)

	Create(ctx context.Context, tag *Tag) error
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id string) error
}
