package studio

import "fmt"

// Kind identifies an element variant.
type Kind string

// Element kinds.
const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Align is the horizontal alignment of a text element.
type Align string

// Text alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign parses a text alignment name.
func ParseAlign(s string) (Align, error) {
	switch a := Align(s); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	}
	return "", fmt.Errorf("studio: unknown text alignment %q", s)
}

// Element is a design element placed over the result image.
// It is implemented by *Text and *Image only.
type Element interface {
	// Common returns the element's shared geometry and ordering fields.
	Common() *Frame
	// Kind returns the variant tag.
	Kind() Kind

	clone() Element
}

// Frame holds the fields shared by every element. Geometry is in percent of
// the base image: X, Y is the element center.
type Frame struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	ZIndex  int     `json:"zIndex"`
	Visible bool    `json:"isVisible"`
}

// Text is a text layer.
type Text struct {
	Frame
	Content    string  `json:"content"`
	Color      string  `json:"color"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	Align      Align   `json:"textAlign"`
}

// Image is an image layer. Src is a data URI holding the encoded pixels.
type Image struct {
	Frame
	Src string `json:"src"`
}

// Common implements Element.
func (t *Text) Common() *Frame { return &t.Frame }

// Kind implements Element.
func (t *Text) Kind() Kind { return KindText }

func (t *Text) clone() Element {
	c := *t
	return &c
}

// Common implements Element.
func (im *Image) Common() *Frame { return &im.Frame }

// Kind implements Element.
func (im *Image) Kind() Kind { return KindImage }

func (im *Image) clone() Element {
	c := *im
	return &c
}

// Patch is a partial update applied by Store.Update.
// A patch only touches fields that exist on the target variant.
type Patch interface {
	apply(Element)
}

// FramePatch updates shared fields. Nil fields are left unchanged.
type FramePatch struct {
	X, Y          *float64
	Width, Height *float64
	ZIndex        *int
	Visible       *bool
}

func (p FramePatch) apply(el Element) {
	f := el.Common()
	if p.X != nil {
		f.X = clampPercent(*p.X)
	}
	if p.Y != nil {
		f.Y = clampPercent(*p.Y)
	}
	if p.Width != nil {
		f.Width = clampSize(*p.Width)
	}
	if p.Height != nil {
		f.Height = clampSize(*p.Height)
	}
	if p.ZIndex != nil {
		f.ZIndex = *p.ZIndex
	}
	if p.Visible != nil {
		f.Visible = *p.Visible
	}
}

// TextPatch updates a text element. Applied to an image element it is a
// no-op. A FontFamily outside the catalog is ignored.
type TextPatch struct {
	FramePatch
	Content    *string
	Color      *string
	FontSize   *float64
	FontFamily *string
	Align      *Align
}

func (p TextPatch) apply(el Element) {
	t, ok := el.(*Text)
	if !ok {
		return
	}
	p.FramePatch.apply(t)
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.FontSize != nil && *p.FontSize > 0 {
		t.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		if family, err := ParseFontFamily(*p.FontFamily); err == nil {
			t.FontFamily = family
		}
	}
	if p.Align != nil {
		t.Align = *p.Align
	}
}

// ImagePatch updates an image element. Applied to a text element it is a
// no-op.
type ImagePatch struct {
	FramePatch
	Src *string
}

func (p ImagePatch) apply(el Element) {
	im, ok := el.(*Image)
	if !ok {
		return
	}
	p.FramePatch.apply(im)
	if p.Src != nil {
		im.Src = *p.Src
	}
}

// Ptr returns a pointer to v. It keeps patch literals short:
//
//	s.UpdateElement(id, studio.TextPatch{Content: studio.Ptr("Hello")})
func Ptr[T any](v T) *T {
	return &v
}
