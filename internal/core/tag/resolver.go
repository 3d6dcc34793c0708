// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"

	"github.com/taibuivan/catalog/internal/platform/database/schema"
	"github.com/taibuivan/catalog/internal/platform/dberr"
	"github.com/taibuivan/catalog/pkg/slice"
	"github.com/taibuivan/catalog/pkg/uuid"
)

// # Name Resolution

// Resolver maps tag names to identifiers (creating missing tags) and back.
// It holds no state beyond its repository and is safe for concurrent use.
type Resolver struct {
	repo   Repository
	logger *slog.Logger
}

// NewResolver constructs a [Resolver] over the given repository.
func NewResolver(repo Repository, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

/*
ResolveIDs returns one identifier per name, in input order.

Description: Each name is looked up by exact match. Missing names are created
with no category. Repeated names are resolved independently and map to the
same identifier; the tag is still created only once because the second
lookup finds the first insert.

Returns:
  - []string: Tag identifiers, positionally matching names
  - error: Repository failures, propagated unchanged
*/
func (resolver *Resolver) ResolveIDs(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))

	for _, name := range names {
		id, err := resolver.resolveOne(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (resolver *Resolver) resolveOne(ctx context.Context, name string) (string, error) {
	existing, err := resolver.repo.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	created := &Tag{ID: uuid.New(), Name: name}
	err = resolver.repo.Create(ctx, created)

	// A concurrent request created the same name between our lookup and insert.
	if dberr.IsUniqueViolation(err, schema.Tag.NameConstraint) {
		winner, findErr := resolver.repo.FindByName(ctx, name)
		if findErr != nil {
			return "", findErr
		}
		if winner != nil {
			return winner.ID, nil
		}
	}
	if err != nil {
		return "", err
	}

	resolver.logger.Info("tag_created_implicitly",
		slog.String("tag_id", created.ID),
		slog.String("name", name),
	)

	return created.ID, nil
}

/*
ResolveNames returns the names of the tags whose identifier is in ids.

Description: This is a set-membership query, so the output is ordered by tag
name and does not correspond positionally to ids. Unknown identifiers are
skipped. An empty input returns an empty slice without touching storage.
*/
func (resolver *Resolver) ResolveNames(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	tags, err := resolver.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return slice.Map(tags, func(tag *Tag) string { return tag.Name }), nil
}
