// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound, "NOT_FOUND"},
		{"unique_violation", dberr.UniqueViolation("tag_name_key"), http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "test_action"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestIsUniqueViolation verifies the constraint name survives wrapping.
*/
func TestIsUniqueViolation(t *testing.T) {
	err := dberr.UniqueViolation("content_item_kind_url_text_key")

	assert.True(t, dberr.IsUniqueViolation(err, "content_item_kind_url_text_key"))
	assert.True(t, dberr.IsUniqueViolation(err, ""))
	assert.False(t, dberr.IsUniqueViolation(err, "tag_name_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom"), ""))
}
