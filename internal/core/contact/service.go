// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/internal/platform/ctxutil"
	"github.com/taibuivan/catalog/internal/platform/validate"
	"github.com/taibuivan/catalog/pkg/uuid"
)

const resourceName = "Contact request"

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Submit records a public enquiry.

Returns:
  - *Request: The stored enquiry
  - error: VALIDATION_ERROR when name or email is missing or malformed
*/
func (service *Service) Submit(ctx context.Context, input Input) (*Request, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	validator.Required(FieldEmail, email)
	if email != "" {
		validator.Email(FieldEmail, email)
	}
	validator.MaxLen(FieldComment, input.Comment, maxCommentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	request := &Request{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		Phone:   optional(input.Phone),
		Company: optional(input.Company),
		Budget:  optional(input.Budget),
		Comment: optional(input.Comment),
	}
	if err := service.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	service.logger.Info("contact_request_received", slog.String("contact_id", request.ID))
	return request, nil
}

// List returns every enquiry, newest first.
func (service *Service) List(ctx context.Context) ([]*Request, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, id string) (*Request, error) {
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound(resourceName)
	}

	request, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperr.NotFound(resourceName)
	}
	return request, nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	if _, err := service.Get(ctx, id); err != nil {
		return err
	}
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("contact_request_deleted",
		slog.String("contact_id", id),
		slog.String("actor", ctxutil.Actor(ctx)),
	)
	return nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
