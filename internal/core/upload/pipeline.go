// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/catalog/internal/platform/apperr"
	"github.com/taibuivan/catalog/internal/platform/constants"
	"github.com/taibuivan/catalog/internal/platform/metrics"
	"github.com/taibuivan/catalog/pkg/slug"
)

const (
	disambiguatorAlphabet = "0123456789"
	disambiguatorLength   = 9
	fallbackBaseName      = "image"
)

// Config locates converted files on disk and on the public URL space.
type Config struct {
	Dir          string
	PublicPrefix string
	Quality      int
}

// Pipeline converts spooled uploads into committed WebP assets.
type Pipeline struct {
	storage Storage
	config  Config
	uploads *prometheus.CounterVec
	logger  *slog.Logger
	now     func() time.Time
}

// NewPipeline builds a [Pipeline]. uploads may be nil.
func NewPipeline(storage Storage, config Config, uploads *prometheus.CounterVec, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		storage: storage,
		config:  config,
		uploads: uploads,
		logger:  logger,
		now:     time.Now,
	}
}

// StagingDir is where raw uploads must be spooled before ingestion.
func (pipeline *Pipeline) StagingDir() string {
	return StagingDir(pipeline.config.Dir)
}

/*
Ingest converts one spooled upload.

Returns:
  - *Asset: The committed WebP file
  - error: VALIDATION_ERROR when file is nil, PROCESSING_ERROR otherwise
*/
func (pipeline *Pipeline) Ingest(ctx context.Context, file *File) (*Asset, error) {
	if file == nil || file.TempPath == "" {
		return nil, apperr.ValidationError("No file uploaded")
	}

	asset, err := pipeline.ingest(ctx, *file)
	if err != nil {
		return nil, apperr.Processing("Image processing failed", err)
	}
	return asset, nil
}

/*
IngestMany converts every file independently with bounded concurrency.

Description: A failing file is cleaned up, reported in Batch.Failed and
left out of Batch.Files; the others still proceed. The call itself fails
only when no file succeeded.
*/
func (pipeline *Pipeline) IngestMany(ctx context.Context, files []File) (*Batch, error) {
	if len(files) == 0 {
		return nil, apperr.ValidationError("No files uploaded")
	}

	assets := make([]*Asset, len(files))
	causes := make([]error, len(files))

	var group errgroup.Group
	group.SetLimit(constants.UploadBatchConcurrency)
	for index, file := range files {
		group.Go(func() error {
			assets[index], causes[index] = pipeline.ingest(ctx, file)
			return nil
		})
	}
	_ = group.Wait()

	batch := &Batch{Files: make([]Asset, 0, len(files)), Failed: make([]Failure, 0)}
	for index, asset := range assets {
		if causes[index] != nil {
			batch.Failed = append(batch.Failed, Failure{
				OriginalName: files[index].OriginalName,
				Reason:       failureReason(causes[index]),
			})
			continue
		}
		batch.Files = append(batch.Files, *asset)
	}

	if len(batch.Files) == 0 {
		return nil, apperr.Processing("No files could be processed", errors.Join(causes...))
	}
	return batch, nil
}

// ingest owns file.TempPath for its whole run and always releases it.
func (pipeline *Pipeline) ingest(ctx context.Context, file File) (asset *Asset, err error) {
	defer pipeline.release(file.TempPath)
	defer func() {
		pipeline.count(err)
		if err != nil {
			pipeline.logger.Warn("upload_failed",
				slog.String("original_name", file.OriginalName),
				slog.Any("error", err),
			)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename, err := pipeline.filename(file.OriginalName)
	if err != nil {
		return nil, err
	}
	outputPath := filepath.Join(pipeline.config.Dir, filename)

	if err := pipeline.storage.WriteConverted(ctx, file.TempPath, outputPath, pipeline.config.Quality); err != nil {
		return nil, err
	}

	size, err := pipeline.storage.Size(outputPath)
	if err != nil {
		pipeline.release(outputPath)
		return nil, fmt.Errorf("stat output: %w", err)
	}

	pipeline.logger.Info("upload_committed",
		slog.String("filename", filename),
		slog.Int64("size", size),
	)

	return &Asset{
		FilePath:     path.Join(pipeline.config.PublicPrefix, filename),
		Filename:     filename,
		OriginalName: file.OriginalName,
		Size:         size,
	}, nil
}

// filename builds <base>-<unixMillis>-<9 digits>.webp from the client name.
func (pipeline *Pipeline) filename(originalName string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(originalName, `\`, "/"))
	base = slug.From(strings.TrimSuffix(base, filepath.Ext(base)))
	if base == "" {
		base = fallbackBaseName
	}

	digits, err := gonanoid.Generate(disambiguatorAlphabet, disambiguatorLength)
	if err != nil {
		return "", fmt.Errorf("generate disambiguator: %w", err)
	}

	return fmt.Sprintf("%s-%d-%s%s", base, pipeline.now().UnixMilli(), digits, constants.NormalizedImageExt), nil
}

// release removes target, logging instead of returning any failure.
func (pipeline *Pipeline) release(target string) {
	if err := pipeline.storage.Remove(target); err != nil {
		pipeline.logger.Warn("upload_cleanup_failed",
			slog.String("path", target),
			slog.Any("error", err),
		)
	}
}

// failureReason is the client-facing summary of a per-file failure.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrUndecodable):
		return ErrUndecodable.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "upload cancelled"
	default:
		return "image could not be processed"
	}
}

func (pipeline *Pipeline) count(err error) {
	if pipeline.uploads == nil {
		return
	}
	result := metrics.UploadCommitted
	if err != nil {
		result = metrics.UploadFailed
	}
	pipeline.uploads.WithLabelValues(result).Inc()
}
