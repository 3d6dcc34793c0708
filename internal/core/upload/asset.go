// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upload ingests raw image uploads and normalizes them to WebP.

Lifecycle of one upload:

  - received: the raw payload is spooled to a temporary file in the upload
    directory, owned by the [Pipeline] from then on.
  - converting: the file is decoded and re-encoded as WebP into a ".part"
    file, which is renamed into place only when complete.
  - committed or failed: either way the temporary input is removed. Failures
    surface as PROCESSING_ERROR; cleanup problems are only logged.
*/
package upload

// File is a raw upload already spooled to disk.
type File struct {
	// TempPath is the spooled payload. The pipeline removes it on every path.
	TempPath string
	// OriginalName is the client-supplied filename.
	OriginalName string
}

// Asset describes a committed, converted image.
type Asset struct {
	FilePath     string `json:"filePath"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

// Failure names a file dropped from a batch and why.
type Failure struct {
	OriginalName string `json:"originalName"`
	Reason       string `json:"reason"`
}

// Batch is the outcome of [Pipeline.IngestMany]. Files keeps input order.
type Batch struct {
	Files  []Asset   `json:"files"`
	Failed []Failure `json:"failed"`
}
