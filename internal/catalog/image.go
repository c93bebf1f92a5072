package catalog

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
)

const (
	// maxImageWidth is the resize threshold for uploaded images
	maxImageWidth = 1600
	jpegQuality   = 80
)

// ProcessImage normalizes an uploaded image: images wider than the threshold
// are scaled down and JPEG/PNG payloads are re-compressed. WebP is stored
// unmodified. The returned content type is sniffed from the final bytes.
func ProcessImage(filename string, r io.Reader) ([]byte, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !imageExtensions[ext] {
		return nil, "", fmt.Errorf("%w: unsupported image type %q", ErrInvalidName, ext)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}

	switch ext {
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("decode jpeg: %w", err)
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, shrink(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		data = buf.Bytes()
	case ".png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("decode png: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, shrink(img)); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		data = buf.Bytes()
	}

	return data, mimetype.Detect(data).String(), nil
}

func shrink(img image.Image) image.Image {
	if img.Bounds().Dx() <= maxImageWidth {
		return img
	}
	return resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
}
