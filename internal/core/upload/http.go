// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/internal/platform/constants"
	"github.com/taibuivan/catalog/internal/platform/ctxutil"
	"github.com/taibuivan/catalog/internal/platform/respond"
)

// Handler accepts multipart uploads and hands them to the [Pipeline].
type Handler struct {
	pipeline *Pipeline
	maxBytes int64
}

// NewHandler builds a [Handler] capping each request body at maxBytes.
func NewHandler(pipeline *Pipeline, maxBytes int64) *Handler {
	return &Handler{pipeline: pipeline, maxBytes: maxBytes}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.uploadOne)
	router.Post("/multiple", handler.uploadMany)
	return router
}

type singleResponse struct {
	Success bool `json:"success"`
	Asset
}

type batchResponse struct {
	Success bool `json:"success"`
	*Batch
}

func (handler *Handler) uploadOne(writer http.ResponseWriter, request *http.Request) {
	files, err := handler.spool(writer, request, constants.UploadFieldSingle, 1)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(files) == 0 {
		respond.Error(writer, request, apperr.ValidationError("No file uploaded"))
		return
	}

	asset, err := handler.pipeline.Ingest(request.Context(), &files[0])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, singleResponse{Success: true, Asset: *asset})
}

func (handler *Handler) uploadMany(writer http.ResponseWriter, request *http.Request) {
	files, err := handler.spool(writer, request, constants.UploadFieldMultiple, 0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(files) == 0 {
		respond.Error(writer, request, apperr.ValidationError("No files uploaded"))
		return
	}

	batch, err := handler.pipeline.IngestMany(request.Context(), files)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, batchResponse{Success: true, Batch: batch})
}

/*
spool streams every file part named field into its own temporary file in
the pipeline staging directory. limit caps the number of files kept (0 = no cap);
extra parts are drained and ignored.

Description: Until spool returns successfully the handler owns the temp
files and removes them itself on error. Afterwards the pipeline owns them.
*/
func (handler *Handler) spool(writer http.ResponseWriter, request *http.Request, field string, limit int) (files []File, err error) {
	logger := ctxutil.GetLogger(request.Context())

	defer func() {
		if err == nil {
			return
		}
		for _, file := range files {
			if removeErr := os.Remove(file.TempPath); removeErr != nil {
				logger.Warn("upload_cleanup_failed", slog.String("path", file.TempPath), slog.Any("error", removeErr))
			}
		}
		files = nil
	}()

	if request.ContentLength > handler.maxBytes {
		return nil, tooLarge(handler.maxBytes)
	}
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes)
	reader, err := request.MultipartReader()
	if err != nil {
		return nil, apperr.ValidationError("Expected a multipart/form-data body")
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, classifyReadError(err)
		}

		if part.FormName() != field || part.FileName() == "" || (limit > 0 && len(files) >= limit) {
			_ = part.Close()
			continue
		}

		file, err := handler.spoolPart(part)
		_ = part.Close()
		if err != nil {
			return files, classifyReadError(err)
		}
		files = append(files, file)
	}
}

func (handler *Handler) spoolPart(part *multipart.Part) (File, error) {
	temp, err := os.CreateTemp(handler.pipeline.StagingDir(), constants.UploadTempPattern)
	if err != nil {
		return File{}, fmt.Errorf("create temp file: %w", err)
	}

	_, copyErr := io.Copy(temp, part)
	closeErr := temp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(temp.Name())
		return File{}, err
	}

	return File{TempPath: temp.Name(), OriginalName: part.FileName()}, nil
}

func classifyReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return tooLarge(maxBytesErr.Limit)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return apperr.ValidationError("Malformed multipart body")
	}
	return apperr.Internal(err)
}

func tooLarge(limit int64) error {
	return apperr.ValidationError(fmt.Sprintf("Upload exceeds the %d byte limit", limit))
}
