// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalog/internal/core/tag"
)

func TestHandler_Lifecycle(t *testing.T) {
	router := tag.NewHandler(newService()).Routes()

	do := func(method, target, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, target, strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	created := do(http.MethodPost, "/", `{"name":"react","category":"frontend"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var body tag.Tag
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))
	assert.Equal(t, "react", body.Name)

	duplicate := do(http.MethodPost, "/", `{"name":"react"}`)
	assert.Equal(t, http.StatusConflict, duplicate.Code)
	assert.Contains(t, duplicate.Body.String(), "Tag with this name already exists")

	invalid := do(http.MethodPost, "/", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	listed := do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, listed.Code)
	var tags []tag.Tag
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &tags))
	assert.Len(t, tags, 1)

	updated := do(http.MethodPut, "/"+body.ID, `{"name":"react-native"}`)
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Contains(t, updated.Body.String(), `"react-native"`)

	deleted := do(http.MethodDelete, "/"+body.ID, "")
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.JSONEq(t, `{"message":"Tag deleted successfully"}`, deleted.Body.String())

	missing := do(http.MethodGet, "/"+body.ID, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
