// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalog/internal/core/contact"
	"github.com/taibuivan/catalog/internal/platform/apperr"
)

func newService() *contact.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return contact.NewService(contact.NewMemoryRepository(), logger)
}

func TestService_Submit(t *testing.T) {
	service := newService()

	created, err := service.Submit(context.Background(), contact.Input{
		Name:    "  Jane Doe ",
		Email:   "jane@example.com",
		Company: "Acme",
		Phone:   "   ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, "Acme", *created.Company)
	assert.Nil(t, created.Phone)
	assert.Nil(t, created.Budget)
	assert.Nil(t, created.Comment)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		input  contact.Input
		fields []string
	}{
		{"missing name", contact.Input{Email: "jane@example.com"}, []string{contact.FieldName}},
		{"missing email", contact.Input{Name: "Jane"}, []string{contact.FieldEmail}},
		{"missing both", contact.Input{}, []string{contact.FieldName, contact.FieldEmail}},
		{"malformed email", contact.Input{Name: "Jane", Email: "not-an-address"}, []string{contact.FieldEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Submit(context.Background(), tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

			var fields []string
			for _, detail := range appErr.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestService_ListNewestFirst(t *testing.T) {
	service := newService()
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := service.Submit(ctx, contact.Input{Name: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	requests, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "third", requests[0].Name)
	assert.Equal(t, "first", requests[2].Name)
}

func TestService_GetAndDelete(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.Submit(ctx, contact.Input{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	found, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	require.NoError(t, service.Delete(ctx, created.ID))

	for _, id := range []string{created.ID, "not-a-uuid"} {
		_, err = service.Get(ctx, id)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
		assert.Equal(t, "Contact request not found", appErr.Message)

		err = service.Delete(ctx, id)
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	}
}
