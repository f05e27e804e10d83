// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

const jpegQuality = 95

// Processor decodes, normalizes and stores uploaded images.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor that writes into uploadDir, creating
// it if needed.
func NewProcessor(uploadDir string) (*Processor, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Processor{uploadDir: uploadDir}, nil
}

// Store decodes the image, applies EXIF orientation, re-encodes it and
// writes it under a random filename. It returns the path to store on
// the post, relative to the server root (e.g. "uploads/<uuid>.jpg").
// Re-encoding strips EXIF metadata, including GPS tags, from uploads.
func (p *Processor) Store(data []byte, format string) (string, error) {
	ext, ok := supportedFormats[format]
	if !ok {
		return "", ErrUnsupportedType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	// WebP cannot be encoded in pure Go, so it is stored as JPEG.
	if format == "webp" {
		format = "jpeg"
		ext = ".jpg"
	}

	encoded, err := encodeImage(img, format)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(p.uploadDir, name), encoded, 0644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	return filepath.ToSlash(filepath.Join(filepath.Base(p.uploadDir), name)), nil
}

// Remove deletes a previously stored image given the relative path kept
// on the post. Unknown or already-deleted paths are ignored.
func (p *Processor) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	name := filepath.Base(filepath.FromSlash(relPath))
	if name == "." || name == ".." {
		return nil
	}
	err := os.Remove(filepath.Join(p.uploadDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory the processor writes into.
func (p *Processor) Dir() string {
	return p.uploadDir
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
// Orientation values:
// 1: Normal
// 2: Flip horizontal
// 3: Rotate 180°
// 4: Flip vertical
// 5: Rotate 90° CW + flip horizontal
// 6: Rotate 90° CW
// 7: Rotate 90° CCW + flip horizontal
// 8: Rotate 90° CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image to bytes in the given format.
func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
