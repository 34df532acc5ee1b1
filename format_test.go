package studio

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatPNG},
		{"png", FormatPNG},
		{".PNG", FormatPNG},
		{"jpg", FormatJPEG},
		{"jpeg", FormatJPEG},
		{"tif", FormatTIFF},
		{"tiff", FormatTIFF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatNames(t *testing.T) {
	if got := FormatJPEG.FileName(); got != "design-output.jpeg" {
		t.Errorf("FileName() = %q", got)
	}
	if got := FormatTIFF.MediaType(); got != "image/tiff" {
		t.Errorf("MediaType() = %q", got)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if err := Format("bmp").Encode(&bytes.Buffer{}, solid(1, 1)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode() error = %v, want ErrUnknownFormat", err)
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	uri, err := EncodeDataURI(filled(3, 2, color.RGBA{G: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("uri prefix = %q", uri[:min(len(uri), 30)])
	}
	img, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
}

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantType string
		wantData string
		wantErr  bool
	}{
		{"base64", "data:text/plain;base64,aGk=", "text/plain", "hi", false},
		{"percent", "data:,a%20b", "text/plain", "a b", false},
		{"no prefix", "hi", "", "", true},
		{"no comma", "data:image/png;base64", "", "", true},
		{"bad base64", "data:image/png;base64,@@@", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, data, err := ParseDataURI(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDataURI) {
					t.Errorf("error = %v, want ErrInvalidDataURI", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if mt != tt.wantType || string(data) != tt.wantData {
				t.Errorf("got %q %q, want %q %q", mt, data, tt.wantType, tt.wantData)
			}
		})
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeImage([]byte("not an image")); err == nil {
		t.Error("DecodeImage() accepted garbage")
	}
}
