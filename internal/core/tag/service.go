// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"

	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/internal/platform/ctxutil"
	"github.com/taibuivan/catalog/internal/platform/database/schema"
	"github.com/taibuivan/catalog/internal/platform/dberr"
	"github.com/taibuivan/catalog/internal/platform/validate"
	"github.com/taibuivan/catalog/pkg/uuid"
)

// errDuplicateName is the client-facing conflict for a taken tag name.
func errDuplicateName() *apperr.AppError {
	return apperr.Conflict("Tag with this name already exists")
}

// Service handles explicit tag management for administrators.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListTags returns every tag ordered by name.
func (service *Service) ListTags(ctx context.Context) ([]*Tag, error) {
	return service.repo.List(ctx)
}

// GetTag returns a tag by identifier or a NOT_FOUND error.
func (service *Service) GetTag(ctx context.Context, id string) (*Tag, error) {
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound("Tag")
	}

	tag, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperr.NotFound("Tag")
	}
	return tag, nil
}

/*
CreateTag registers a new tag explicitly.

Returns:
  - *Tag: The stored tag
  - error: VALIDATION_ERROR for a blank name, CONFLICT for a taken name
*/
func (service *Service) CreateTag(ctx context.Context, input Input) (*Tag, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errDuplicateName()
	}

	tag := &Tag{ID: uuid.New(), Name: input.Name, Category: emptyToNil(input.Category)}
	if err := service.repo.Create(ctx, tag); err != nil {
		if dberr.IsUniqueViolation(err, schema.Tag.NameConstraint) {
			return nil, errDuplicateName()
		}
		return nil, err
	}

	service.logger.Info("tag_created",
		slog.String("tag_id", tag.ID),
		slog.String("name", tag.Name),
		slog.String("actor", ctxutil.Actor(ctx)),
	)
	return tag, nil
}

/*
UpdateTag renames and/or recategorises a tag.

Description: A rename is checked against every other tag's name. Renaming a
tag to its current name is a no-op for the uniqueness check.
*/
func (service *Service) UpdateTag(ctx context.Context, id string, patch Patch) (*Tag, error) {
	tag, err := service.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		validator := &validate.Validator{}
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, maxNameLength)
		if err := validator.Err(); err != nil {
			return nil, err
		}

		if *patch.Name != tag.Name {
			duplicate, err := service.repo.FindByName(ctx, *patch.Name)
			if err != nil {
				return nil, err
			}
			if duplicate != nil {
				return nil, errDuplicateName()
			}
		}
		tag.Name = *patch.Name
	}

	if patch.Category != nil {
		tag.Category = emptyToNil(patch.Category)
	}

	if err := service.repo.Update(ctx, tag); err != nil {
		if dberr.IsUniqueViolation(err, schema.Tag.NameConstraint) {
			return nil, errDuplicateName()
		}
		return nil, err
	}

	service.logger.Info("tag_updated", slog.String("tag_id", tag.ID), slog.String("actor", ctxutil.Actor(ctx)))
	return tag, nil
}

// DeleteTag removes a tag and its item associations. Items themselves stay.
func (service *Service) DeleteTag(ctx context.Context, id string) error {
	if _, err := service.GetTag(ctx, id); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("tag_deleted", slog.String("tag_id", id), slog.String("actor", ctxutil.Actor(ctx)))
	return nil
}

// emptyToNil maps an empty category to "no category".
func emptyToNil(category *string) *string {
	if category == nil || *category == "" {
		return nil
	}
	return category
}
