// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalog/internal/core/upload"
	"github.com/taibuivan/catalog/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPipeline(t *testing.T, dir string, storage upload.Storage) *upload.Pipeline {
	t.Helper()
	if storage == nil {
		disk, err := upload.NewDiskStorage(dir)
		require.NoError(t, err)
		storage = disk
	}
	return upload.NewPipeline(storage, upload.Config{Dir: dir, PublicPrefix: "/uploads", Quality: 85}, nil, discardLogger())
}

// spoolPNG writes a small valid PNG the way the handler spools uploads.
func spoolPNG(t *testing.T, dir, originalName string) upload.File {
	t.Helper()
	temp, err := os.CreateTemp(stagingDir(t, dir), "upload-*.tmp")
	require.NoError(t, err)
	defer temp.Close()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	require.NoError(t, png.Encode(temp, img))

	return upload.File{TempPath: temp.Name(), OriginalName: originalName}
}

func spoolGarbage(t *testing.T, dir, originalName string) upload.File {
	t.Helper()
	temp, err := os.CreateTemp(stagingDir(t, dir), "upload-*.tmp")
	require.NoError(t, err)
	_, err = temp.WriteString("definitely not an image")
	require.NoError(t, err)
	require.NoError(t, temp.Close())
	return upload.File{TempPath: temp.Name(), OriginalName: originalName}
}

func stagingDir(t *testing.T, dir string) string {
	t.Helper()
	staging := upload.StagingDir(dir)
	require.NoError(t, os.MkdirAll(staging, 0o755))
	return staging
}

// leftovers lists raw or partial files in dir or its staging directory.
func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	var names []string
	for _, root := range []string{dir, upload.StagingDir(dir)} {
		for _, pattern := range []string{"*.tmp", "*.part"} {
			matches, err := filepath.Glob(filepath.Join(root, pattern))
			require.NoError(t, err)
			names = append(names, matches...)
		}
	}
	return names
}

var filenamePattern = regexp.MustCompile(`^holiday-photo-\d{13}-\d{9}\.webp$`)

func TestIngest(t *testing.T) {
	dir := t.TempDir()
	pipeline := newPipeline(t, dir, nil)
	file := spoolPNG(t, dir, "Holiday Photo.png")

	asset, err := pipeline.Ingest(context.Background(), &file)
	require.NoError(t, err)

	assert.Regexp(t, filenamePattern, asset.Filename)
	assert.Equal(t, "/uploads/"+asset.Filename, asset.FilePath)
	assert.Equal(t, "Holiday Photo.png", asset.OriginalName)

	info, err := os.Stat(filepath.Join(dir, asset.Filename))
	require.NoError(t, err)
	assert.Equal(t, info.Size(), asset.Size)
	assert.Empty(t, leftovers(t, dir))
}

func TestIngest_NoFile(t *testing.T) {
	_, err := newPipeline(t, t.TempDir(), nil).Ingest(context.Background(), nil)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestIngest_CorruptInputIsCleanedUp(t *testing.T) {
	dir := t.TempDir()
	file := spoolGarbage(t, dir, "broken.jpg")

	_, err := newPipeline(t, dir, nil).Ingest(context.Background(), &file)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "PROCESSING_ERROR", appErr.Code)
	assert.ErrorIs(t, err, upload.ErrUndecodable)

	assert.Empty(t, leftovers(t, dir))
	outputs, err := filepath.Glob(filepath.Join(dir, "*.webp"))
	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestDiskStorage_PartialOutputStaysInStaging(t *testing.T) {
	dir := t.TempDir()
	storage, err := upload.NewDiskStorage(dir)
	require.NoError(t, err)

	file := spoolPNG(t, dir, "cover.png")
	assert.Equal(t, upload.StagingDir(dir), filepath.Dir(file.TempPath))

	output := filepath.Join(dir, "cover.webp")
	require.NoError(t, storage.WriteConverted(context.Background(), file.TempPath, output, 80))

	_, err = os.Stat(output)
	require.NoError(t, err)
	partials, err := filepath.Glob(filepath.Join(dir, "*.part"))
	require.NoError(t, err)
	assert.Empty(t, partials)
	staged, err := filepath.Glob(filepath.Join(upload.StagingDir(dir), "*.part"))
	require.NoError(t, err)
	assert.Empty(t, staged)
}

func TestIngest_CancelledBeforeConversion(t *testing.T) {
	dir := t.TempDir()
	file := spoolPNG(t, dir, "late.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(t, dir, nil).Ingest(ctx, &file)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, leftovers(t, dir))
}

func TestIngestMany_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	pipeline := newPipeline(t, dir, nil)

	files := []upload.File{
		spoolPNG(t, dir, "first.png"),
		spoolGarbage(t, dir, "second.png"),
		spoolPNG(t, dir, "third.png"),
	}

	batch, err := pipeline.IngestMany(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, batch.Files, 2)
	assert.Equal(t, "first.png", batch.Files[0].OriginalName)
	assert.Equal(t, "third.png", batch.Files[1].OriginalName)

	require.Len(t, batch.Failed, 1)
	assert.Equal(t, "second.png", batch.Failed[0].OriginalName)
	assert.Equal(t, upload.ErrUndecodable.Error(), batch.Failed[0].Reason)

	for _, file := range files {
		_, statErr := os.Stat(file.TempPath)
		assert.True(t, errors.Is(statErr, os.ErrNotExist), "temp input %s survived", file.TempPath)
	}
	assert.Empty(t, leftovers(t, dir))
}

func TestIngestMany_AllFail(t *testing.T) {
	dir := t.TempDir()
	files := []upload.File{spoolGarbage(t, dir, "a"), spoolGarbage(t, dir, "b")}

	_, err := newPipeline(t, dir, nil).IngestMany(context.Background(), files)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Empty(t, leftovers(t, dir))
}

func TestIngestMany_Empty(t *testing.T) {
	_, err := newPipeline(t, t.TempDir(), nil).IngestMany(context.Background(), nil)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

// stubbornStorage converts nothing and refuses to delete anything.
type stubbornStorage struct {
	writeErr error
	removes  []string
}

func (storage *stubbornStorage) WriteConverted(context.Context, string, string, int) error {
	return storage.writeErr
}

func (storage *stubbornStorage) Remove(path string) error {
	storage.removes = append(storage.removes, path)
	return errors.New("permission denied")
}

func (storage *stubbornStorage) Size(string) (int64, error) {
	return 42, nil
}

func TestIngest_CleanupFailureIsNotPropagated(t *testing.T) {
	storage := &stubbornStorage{}
	file := upload.File{TempPath: "/tmp/upload-1.tmp", OriginalName: "ok.png"}

	asset, err := newPipeline(t, "/srv/uploads", storage).Ingest(context.Background(), &file)
	require.NoError(t, err)
	assert.Equal(t, int64(42), asset.Size)
	assert.Equal(t, []string{file.TempPath}, storage.removes)
}

func TestIngest_ConversionFailureStillReleasesInput(t *testing.T) {
	boom := errors.New("encoder crashed")
	storage := &stubbornStorage{writeErr: boom}
	file := upload.File{TempPath: "/tmp/upload-2.tmp", OriginalName: "bad.png"}

	_, err := newPipeline(t, "/srv/uploads", storage).Ingest(context.Background(), &file)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{file.TempPath}, storage.removes)
}
