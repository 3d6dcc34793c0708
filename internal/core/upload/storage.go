// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gen2brain/webp"

	"github.com/taibuivan/catalog/internal/platform/constants"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// partSuffix marks an output that is still being written.
const partSuffix = ".part"

// ErrUndecodable marks input that is not an image in a supported format.
var ErrUndecodable = errors.New("unsupported or corrupt image")

// Storage is the filesystem contract the pipeline depends on.
type Storage interface {
	// WriteConverted decodes inputPath and writes it to outputPath as WebP.
	// outputPath either holds the complete result or does not exist.
	WriteConverted(ctx context.Context, inputPath, outputPath string, quality int) error
	// Remove deletes path. A missing file is not an error.
	Remove(path string) error
	// Size reports the byte size of path.
	Size(path string) (int64, error)
}

// DiskStorage implements [Storage] on the local filesystem. Outputs are
// written under the staging directory first and renamed into place, so the
// public directory only ever holds complete files.
type DiskStorage struct {
	staging string
}

// NewDiskStorage ensures dir and its staging subdirectory exist.
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload: directory cannot be empty")
	}
	staging := StagingDir(dir)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, fmt.Errorf("upload: failed to create %s: %w", staging, err)
	}
	return &DiskStorage{staging: staging}, nil
}

// StagingDir is where raw uploads and partial outputs for dir live. Being a
// subdirectory keeps the final rename on the same filesystem.
func StagingDir(dir string) string {
	return filepath.Join(dir, constants.UploadStagingDir)
}

func (storage *DiskStorage) WriteConverted(ctx context.Context, inputPath, outputPath string, quality int) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	img, format, err := image.Decode(input)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	// Decoding is the slow half; honour a cancellation that arrived meanwhile.
	if err := ctx.Err(); err != nil {
		return err
	}

	partPath := filepath.Join(storage.staging, filepath.Base(outputPath)+partSuffix)
	output, err := os.OpenFile(partPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := webp.Encode(output, img, webp.Options{Quality: quality}); err != nil {
		_ = output.Close()
		_ = os.Remove(partPath)
		return fmt.Errorf("encode webp from %s: %w", format, err)
	}
	if err := output.Close(); err != nil {
		_ = os.Remove(partPath)
		return fmt.Errorf("flush output: %w", err)
	}
	if err := os.Rename(partPath, outputPath); err != nil {
		_ = os.Remove(partPath)
		return fmt.Errorf("commit output: %w", err)
	}
	return nil
}

func (storage *DiskStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (storage *DiskStorage) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
