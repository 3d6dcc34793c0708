// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/internal/platform/ctxutil"
	"github.com/taibuivan/catalog/internal/platform/constants"
	"github.com/taibuivan/catalog/internal/platform/database/schema"
	"github.com/taibuivan/catalog/internal/platform/dberr"
	"github.com/taibuivan/catalog/internal/platform/validate"
	"github.com/taibuivan/catalog/pkg/slug"
	"github.com/taibuivan/catalog/pkg/uuid"
)

// Manager runs the item lifecycle for one content kind.
type Manager struct {
	kind   Kind
	repo   Repository
	tags   TagResolver
	slugs  *Assigner
	logger *slog.Logger
}

// NewManager constructs a [Manager] for kind.
func NewManager(kind Kind, repo Repository, tags TagResolver, slugs *Assigner, logger *slog.Logger) *Manager {
	return &Manager{
		kind:   kind,
		repo:   repo,
		tags:   tags,
		slugs:  slugs,
		logger: logger.With(slog.String("kind", kind.Name)),
	}
}

// Kind returns the descriptor this manager serves.
func (manager *Manager) Kind() Kind {
	return manager.kind
}

// # Queries

// List returns every item of the kind, newest first, with tag names.
func (manager *Manager) List(ctx context.Context) ([]*Item, error) {
	items, err := manager.repo.List(ctx, manager.kind.Name)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := manager.expandTags(ctx, item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Get returns one item with tag names, or NOT_FOUND.
func (manager *Manager) Get(ctx context.Context, id string) (*Item, error) {
	item, err := manager.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := manager.expandTags(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// # Mutations

/*
Create validates input, assigns a fresh slug, resolves tags and stores the
item together with its tag associations.

Description: Slug assignment is a check-then-insert. When a concurrent
create takes the same slug first, the insert fails on the (kind, url_text)
unique index and assignment runs again, at most
[constants.SlugConflictRetries] times.

Returns:
  - *Item: The stored item with tag names expanded
  - error: VALIDATION_ERROR with per-field details, or storage failures
*/
func (manager *Manager) Create(ctx context.Context, input Input) (*Item, error) {
	if err := manager.validateInput(input); err != nil {
		return nil, err
	}

	base := slug.From(input.Title)
	urlText, err := manager.slugs.AssignUnique(ctx, manager.kind, base, "")
	if err != nil {
		return nil, err
	}

	tagIDs, err := manager.tags.ResolveIDs(ctx, input.Tags)
	if err != nil {
		return nil, err
	}

	item := &Item{
		ID:          uuid.New(),
		Kind:        manager.kind.Name,
		Title:       input.Title,
		Description: input.Description,
		ImgSrc:      input.ImgSrc,
		URLText:     urlText,
		TagIDs:      tagIDs,
	}
	if manager.kind.RequiresDate {
		item.Date = NewDate(input.Date.Time)
	}
	if manager.kind.RequiresPrice {
		item.Price = input.Price
	}

	for attempt := 1; ; attempt++ {
		err = manager.repo.Create(ctx, item)
		if err == nil {
			break
		}
		if !dberr.IsUniqueViolation(err, schema.ContentItem.SlugConstraint) || attempt > constants.SlugConflictRetries {
			return nil, err
		}

		manager.logger.Warn("slug_conflict_retry",
			slog.String("url_text", item.URLText),
			slog.Int("attempt", attempt),
		)
		if item.URLText, err = manager.slugs.AssignUnique(ctx, manager.kind, base, ""); err != nil {
			return nil, err
		}
	}

	manager.logger.Info("content_created",
		slog.String("kind", manager.kind.Name),
		slog.String("item_id", item.ID),
		slog.String("actor", ctxutil.Actor(ctx)),
		slog.String("url_text", item.URLText),
	)

	if err := manager.expandTags(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

/*
Update applies the fields present in patch to an existing item.

Description: Absent fields keep their stored values. A present title that
differs from the stored one reassigns the slug, excluding the item itself,
so an equivalent title keeps the current slug. A present tag list, even an
empty one, replaces the associations; an absent one leaves them alone.
Present but empty required fields are rejected.
*/
func (manager *Manager) Update(ctx context.Context, id string, patch Patch) (*Item, error) {
	item, err := manager.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := manager.validatePatch(patch); err != nil {
		return nil, err
	}

	if patch.Title != nil && *patch.Title != item.Title {
		urlText, err := manager.slugs.AssignUnique(ctx, manager.kind, slug.From(*patch.Title), item.ID)
		if err != nil {
			return nil, err
		}
		item.Title = *patch.Title
		item.URLText = urlText
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.ImgSrc != nil {
		item.ImgSrc = *patch.ImgSrc
	}
	if patch.Date != nil && manager.kind.RequiresDate {
		item.Date = NewDate(patch.Date.Time)
	}
	if patch.Price != nil && manager.kind.RequiresPrice {
		item.Price = patch.Price
	}

	replaceTags := patch.Tags != nil
	if replaceTags {
		if item.TagIDs, err = manager.tags.ResolveIDs(ctx, *patch.Tags); err != nil {
			return nil, err
		}
	}

	if err := manager.repo.Update(ctx, item, replaceTags); err != nil {
		return nil, err
	}

	manager.logger.Info("content_updated",
		slog.String("kind", manager.kind.Name),
		slog.String("item_id", item.ID),
		slog.String("actor", ctxutil.Actor(ctx)),
		slog.Bool("tags_replaced", replaceTags),
	)

	if err := manager.expandTags(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item and its tag associations. Tags stay.
func (manager *Manager) Delete(ctx context.Context, id string) error {
	if _, err := manager.find(ctx, id); err != nil {
		return err
	}

	if err := manager.repo.Delete(ctx, manager.kind.Name, id); err != nil {
		return err
	}

	manager.logger.Warn("content_deleted",
		slog.String("kind", manager.kind.Name),
		slog.String("item_id", id),
		slog.String("actor", ctxutil.Actor(ctx)),
	)
	return nil
}

// # Helpers

func (manager *Manager) find(ctx context.Context, id string) (*Item, error) {
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound(manager.kind.Label)
	}

	item, err := manager.repo.FindByID(ctx, manager.kind.Name, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound(manager.kind.Label)
	}
	return item, nil
}

func (manager *Manager) expandTags(ctx context.Context, item *Item) error {
	names, err := manager.tags.ResolveNames(ctx, item.TagIDs)
	if err != nil {
		return err
	}
	item.Tags = names
	return nil
}

func (manager *Manager) validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, maxTitleLength).
		Required(FieldDescription, input.Description).
		Required(FieldImgSrc, input.ImgSrc)

	if manager.kind.RequiresDate {
		validator.Custom(FieldDate, input.Date == nil || input.Date.IsZero(), validate.MsgRequired)
	}
	if manager.kind.RequiresPrice {
		validator.Custom(FieldPrice, input.Price == nil, validate.MsgRequired)
		checkPrice(validator, input.Price)
	}

	return validator.Err()
}

func (manager *Manager) validatePatch(patch Patch) error {
	validator := &validate.Validator{}

	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, maxTitleLength)
	}
	if patch.Description != nil {
		validator.Required(FieldDescription, *patch.Description)
	}
	if patch.ImgSrc != nil {
		validator.Required(FieldImgSrc, *patch.ImgSrc)
	}
	if patch.Date != nil && manager.kind.RequiresDate {
		validator.Custom(FieldDate, patch.Date.IsZero(), validate.MsgRequired)
	}
	if manager.kind.RequiresPrice {
		checkPrice(validator, patch.Price)
	}

	return validator.Err()
}

func checkPrice(validator *validate.Validator, price *decimal.Decimal) {
	if price != nil {
		validator.Custom(FieldPrice, price.IsNegative(), "Must not be negative")
	}
}
