package studio

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func filled(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -3 && d <= 3
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestTextPlacementFor(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		want  TextPlacement
	}{
		{"center", AlignCenter, TextPlacement{Size: 32, X: 500, AnchorX: 0.5, Y: 400}},
		{"left edge", AlignLeft, TextPlacement{Size: 32, X: 350, AnchorX: 0, Y: 400}},
		{"right edge", AlignRight, TextPlacement{Size: 32, X: 650, AnchorX: 1, Y: 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Text{
				Frame:    Frame{X: 50, Y: 50, Width: 30, Height: 10},
				FontSize: 40,
				Align:    tt.align,
			}
			got := TextPlacementFor(tx, 1000, 800)
			if !approx(got.Size, tt.want.Size) || !approx(got.X, tt.want.X) ||
				!approx(got.Y, tt.want.Y) || got.AnchorX != tt.want.AnchorX {
				t.Errorf("TextPlacementFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestImagePlacementFor(t *testing.T) {
	im := &Image{Frame: Frame{X: 50, Y: 25, Width: 20, Height: 10}}
	got := ImagePlacementFor(im, 1000, 800)
	want := ImagePlacement{X: 400, Y: 160, Width: 200, Height: 80}
	if got != want {
		t.Errorf("ImagePlacementFor() = %+v, want %+v", got, want)
	}
}

func TestCompositeBaseOnly(t *testing.T) {
	base := filled(40, 30, color.RGBA{R: 10, G: 200, B: 30, A: 255})
	out, err := NewCompositor().Composite(base, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("bounds = %v, want native 40x30", b)
	}
	got := rgbaAt(out, 5, 5)
	if !near(got.R, 10) || !near(got.G, 200) || !near(got.B, 30) {
		t.Errorf("pixel = %v, want base color", got)
	}
}

func TestCompositeImageLayer(t *testing.T) {
	base := filled(100, 100, color.White)
	src, err := EncodeDataURI(filled(10, 10, color.RGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	elems := []Element{
		&Image{Frame: Frame{ID: "img-1", X: 50, Y: 50, Width: 20, Height: 20, Visible: true}, Src: src},
	}
	out, err := NewCompositor().Composite(base, elems)
	if err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(out, 50, 50); got.R < 200 || got.G > 50 || got.B > 50 {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := rgbaAt(out, 5, 5); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("corner pixel = %v, want white", got)
	}
}

func TestCompositeZOrder(t *testing.T) {
	base := filled(100, 100, color.White)
	red, _ := EncodeDataURI(filled(4, 4, color.RGBA{R: 255, A: 255}))
	blue, _ := EncodeDataURI(filled(4, 4, color.RGBA{B: 255, A: 255}))
	// Passed in reverse order; the higher z-index must win.
	elems := []Element{
		&Image{Frame: Frame{ID: "top", X: 50, Y: 50, Width: 20, Height: 20, ZIndex: 200, Visible: true}, Src: blue},
		&Image{Frame: Frame{ID: "bottom", X: 50, Y: 50, Width: 40, Height: 40, ZIndex: 100, Visible: true}, Src: red},
	}
	out, err := NewCompositor().Composite(base, elems)
	if err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(out, 50, 50); got.B < 200 || got.R > 50 {
		t.Errorf("center pixel = %v, want blue on top", got)
	}
	if got := rgbaAt(out, 35, 50); got.R < 200 || got.B > 50 {
		t.Errorf("outer pixel = %v, want red", got)
	}
}

func TestCompositeSkipsHidden(t *testing.T) {
	base := filled(60, 60, color.White)
	src, _ := EncodeDataURI(filled(4, 4, color.Black))
	elems := []Element{
		&Image{Frame: Frame{ID: "hidden", X: 50, Y: 50, Width: 50, Height: 50, Visible: false}, Src: src},
		&Text{Frame: Frame{ID: "t", X: 50, Y: 50, Width: 50, Height: 10, Visible: false}, Content: "HIDDEN", Color: "#000000", FontSize: 200},
	}
	out, err := NewCompositor().Composite(base, elems)
	if err != nil {
		t.Fatal(err)
	}
	if got := rgbaAt(out, 30, 30); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("pixel = %v, hidden element was drawn", got)
	}
}

func TestCompositeText(t *testing.T) {
	base := filled(200, 100, color.White)
	elems := []Element{
		&Text{
			Frame:      Frame{ID: "t", X: 50, Y: 50, Width: 80, Height: 30, Visible: true},
			Content:    "MMMM",
			Color:      "#000000",
			FontSize:   400,
			FontFamily: DefaultFontFamily,
			Align:      AlignCenter,
		},
	}
	out, err := NewCompositor().Composite(base, elems)
	if err != nil {
		t.Fatal(err)
	}
	dark := 0
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgbaAt(out, x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("no text pixels drawn")
	}
}

func TestCompositeBadImageSource(t *testing.T) {
	base := filled(10, 10, color.White)
	elems := []Element{&Image{Frame: Frame{ID: "bad", X: 50, Y: 50, Width: 10, Height: 10, Visible: true}, Src: "nope"}}
	if _, err := NewCompositor().Composite(base, elems); err == nil {
		t.Error("Composite() with an undecodable layer succeeded")
	}
}

func TestSessionExport(t *testing.T) {
	s, _ := newEditSession(t)
	s.AddText()
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := s.Export(&buf, f); err != nil {
				t.Fatal(err)
			}
			img, format, err := DecodeImage(buf.Bytes())
			if err != nil {
				t.Fatal(err)
			}
			if format != string(f) {
				t.Errorf("format = %q, want %q", format, f)
			}
			// The fake editor returns 100x80 results; the export uses them.
			if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
				t.Errorf("bounds = %v, want the result's size", b)
			}
		})
	}
}

func TestFlattenFallsBackToBase(t *testing.T) {
	s := NewSession()
	s.BeginUpload(solid(30, 20))
	out, err := s.Flatten()
	if err != nil {
		t.Fatal(err)
	}
	if b := out.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want base size", b)
	}
}
