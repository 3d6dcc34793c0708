// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"
	"strings"

	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/internal/platform/respond"
)

// assetHandler serves converted uploads from dir under prefix. Directory
// listings and any dot-prefixed segment, which covers the upload staging
// directory, answer 404.
func assetHandler(prefix, dir string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !isPublicAsset(strings.TrimPrefix(request.URL.Path, prefix)) {
			respond.Error(writer, request, apperr.NotFound("Asset"))
			return
		}
		files.ServeHTTP(writer, request)
	})
}

func isPublicAsset(name string) bool {
	if name == "" || strings.HasSuffix(name, "/") {
		return false
	}
	for _, segment := range strings.Split(strings.TrimPrefix(name, "/"), "/") {
		if segment == "" || strings.HasPrefix(segment, ".") {
			return false
		}
	}
	return true
}
