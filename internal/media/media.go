// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media handles image uploads: intake from multipart forms,
// validation, EXIF-aware processing and storage under the uploads
// directory.
package media

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// MaxUploadSize caps the accepted image payload.
const MaxUploadSize = 5 << 20 // 5 MiB

// FieldName is the multipart form field that carries the image.
const FieldName = "image"

var (
	// ErrNoFile indicates the form carried no image field.
	ErrNoFile = errors.New("media: no image file in request")

	// ErrTooLarge indicates the upload exceeds MaxUploadSize.
	ErrTooLarge = errors.New("media: image exceeds size limit")

	// ErrUnsupportedType indicates the payload is not a supported image format.
	ErrUnsupportedType = errors.New("media: unsupported image type")
)

// supported formats, keyed by the name detectFormat returns.
var supportedFormats = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
}

// ReadUpload extracts the image payload from a parsed multipart request.
// It returns ErrNoFile when the field is absent, which callers treat as
// "no image provided" rather than a failure.
func ReadUpload(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile(FieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", ErrNoFile
		}
		return nil, "", err
	}
	defer func() { _ = file.Close() }()

	if header.Size > MaxUploadSize {
		return nil, "", ErrTooLarge
	}

	// LimitReader backstops the header size, which the client controls.
	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > MaxUploadSize {
		return nil, "", ErrTooLarge
	}
	if len(data) == 0 {
		return nil, "", ErrNoFile
	}

	format := detectFormat(data)
	if format == "" {
		return nil, "", ErrUnsupportedType
	}

	return data, format, nil
}

// detectFormat sniffs the image format from raw bytes. Only formats the
// backend accepts are reported; everything else maps to the empty string.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// HasFile reports whether the parsed form carries an image field,
// without consuming it.
func HasFile(r *http.Request) bool {
	if r.MultipartForm == nil {
		return false
	}
	files := r.MultipartForm.File[FieldName]
	return len(files) > 0 && files[0] != nil
}
