package studio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/tiff"
)

// Format is an export raster format.
type Format string

// Export formats. PNG is lossless, JPEG lossy, TIFF the alternative
// (deflate-compressed) format.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatTIFF Format = "tiff"
)

// ExportBaseName is the file stem of every export.
const ExportBaseName = "design-output"

// JPEGQuality is the quality used for JPEG exports.
const JPEGQuality = 92

// Formats lists the supported export formats.
var Formats = []Format{FormatPNG, FormatJPEG, FormatTIFF}

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// MediaType returns the MIME type.
func (f Format) MediaType() string {
	return "image/" + string(f)
}

// FileName returns the export file name, e.g. "design-output.png".
func (f Format) FileName() string {
	return ExportBaseName + "." + f.Extension()
}

// Encode writes img in format f.
func (f Format) Encode(w io.Writer, img image.Image) error {
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return fmt.Errorf("studio: encode %s: %w", f, err)
	}
	return nil
}
