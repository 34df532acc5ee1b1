package studio

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/gg-studio/imagecache"
)

// TextPlacement is where a text element lands in an output raster.
type TextPlacement struct {
	// Size is the font size in pixels.
	Size float64
	// X is the anchor x; AnchorX is the fraction of the text advance that
	// sits left of it (0 left, 0.5 center, 1 right aligned).
	X       float64
	AnchorX float64
	// Y is the vertical center of the text line.
	Y float64
}

// TextPlacementFor maps a text element onto a width×height output.
// The font size is FontSize per-mille of the height. For left and right
// alignment the anchor moves to the element box edge.
func TextPlacementFor(t *Text, width, height int) TextPlacement {
	w, h := float64(width), float64(height)
	p := TextPlacement{
		Size:    t.FontSize / 1000 * h,
		X:       t.X / 100 * w,
		AnchorX: 0.5,
		Y:       t.Y / 100 * h,
	}
	switch t.Align {
	case AlignLeft:
		p.X = (t.X - t.Width/2) / 100 * w
		p.AnchorX = 0
	case AlignRight:
		p.X = (t.X + t.Width/2) / 100 * w
		p.AnchorX = 1
	}
	return p
}

// ImagePlacement is the destination box of an image element in pixels.
type ImagePlacement struct {
	X, Y          float64 // top-left
	Width, Height float64
}

// ImagePlacementFor maps an image element onto a width×height output.
func ImagePlacementFor(im *Image, width, height int) ImagePlacement {
	w, h := float64(width), float64(height)
	pw := im.Width / 100 * w
	ph := im.Height / 100 * h
	return ImagePlacement{
		X:      im.X/100*w - pw/2,
		Y:      im.Y/100*h - ph/2,
		Width:  pw,
		Height: ph,
	}
}

// Compositor flattens a result image and design elements into one raster
// at the result image's native resolution.
//
// Output depends only on its inputs: zoom, selection, mode and brush state
// never reach it.
type Compositor struct {
	Fonts  *FontCatalog
	Images *imagecache.Cache
}

// NewCompositor returns a compositor with the fallback font catalog and a
// default image cache.
func NewCompositor() *Compositor {
	return &Compositor{
		Fonts:  NewFontCatalog(),
		Images: imagecache.New(0, DecodeDataURI),
	}
}

// Composite draws base and then every visible element in ascending z-index
// order. Elements are sorted here, so callers may pass any order.
func (c *Compositor) Composite(base image.Image, elems []Element) (image.Image, error) {
	if base == nil {
		return nil, ErrNoImage
	}
	b := base.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("studio: empty base image %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()

	dc.DrawImageEx(gg.ImageBufFromImage(base), gg.DrawImageOptions{
		DstWidth:      float64(width),
		DstHeight:     float64(height),
		Interpolation: gg.InterpNearest,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})

	store := &Store{elems: elems}
	for _, el := range store.List() {
		if !el.Common().Visible {
			continue
		}
		var err error
		switch el := el.(type) {
		case *Text:
			err = c.drawText(dc, el)
		case *Image:
			err = c.drawImage(dc, el)
		default:
			err = fmt.Errorf("studio: unknown element type %T", el)
		}
		if err != nil {
			return nil, fmt.Errorf("studio: draw %s: %w", el.Common().ID, err)
		}
	}

	return snapshot(dc), nil
}

func (c *Compositor) drawText(dc *gg.Context, t *Text) error {
	if t.Content == "" {
		return nil
	}
	p := TextPlacementFor(t, dc.Width(), dc.Height())
	if p.Size <= 0 {
		return nil
	}
	face, err := c.fonts().Face(t.FontFamily, p.Size)
	if err != nil {
		return err
	}
	dc.SetFont(face)
	dc.SetHexColor(t.Color)

	w, _ := dc.MeasureString(t.Content)
	m := face.Metrics()
	// Baseline that puts the middle of the em box on p.Y.
	baseline := p.Y + (m.Ascent-m.Descent)/2
	dc.DrawString(t.Content, p.X-w*p.AnchorX, baseline)
	return nil
}

func (c *Compositor) drawImage(dc *gg.Context, im *Image) error {
	src, err := c.decode(im.Src)
	if err != nil {
		return err
	}
	p := ImagePlacementFor(im, dc.Width(), dc.Height())
	if p.Width <= 0 || p.Height <= 0 {
		return nil
	}
	dc.DrawImageEx(gg.ImageBufFromImage(src), gg.DrawImageOptions{
		X:             p.X,
		Y:             p.Y,
		DstWidth:      p.Width,
		DstHeight:     p.Height,
		Interpolation: gg.InterpBilinear,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func (c *Compositor) fonts() *FontCatalog {
	if c.Fonts == nil {
		c.Fonts = NewFontCatalog()
	}
	return c.Fonts
}

func (c *Compositor) decode(src string) (image.Image, error) {
	if c.Images == nil {
		return DecodeDataURI(src)
	}
	return c.Images.Get(src)
}
