package studio

import (
	"encoding/json"
	"fmt"
)

// Project is the serializable part of a design: its elements. Each element
// is written with a "type" discriminator ("text" or "image").
type Project struct {
	Elements []Element
}

type projectJSON struct {
	Elements []json.RawMessage `json:"elements"`
}

type textJSON struct {
	Type Kind `json:"type"`
	*Text
}

type imageJSON struct {
	Type Kind `json:"type"`
	*Image
}

// MarshalElement encodes el with its type discriminator.
func MarshalElement(el Element) ([]byte, error) {
	switch el := el.(type) {
	case *Text:
		return json.Marshal(textJSON{Type: KindText, Text: el})
	case *Image:
		return json.Marshal(imageJSON{Type: KindImage, Image: el})
	default:
		return nil, fmt.Errorf("studio: unknown element type %T", el)
	}
}

// UnmarshalElement decodes an element written by MarshalElement.
// Missing visibility defaults to visible and geometry is clamped into the
// ranges the store enforces.
func UnmarshalElement(data []byte) (Element, error) {
	var head struct {
		Type    Kind  `json:"type"`
		Visible *bool `json:"isVisible"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("studio: decode element: %w", err)
	}
	var el Element
	switch head.Type {
	case KindText:
		t := &Text{Align: AlignCenter, FontFamily: DefaultFontFamily, Color: "#000000"}
		if err := json.Unmarshal(data, t); err != nil {
			return nil, fmt.Errorf("studio: decode text element: %w", err)
		}
		if _, err := ParseAlign(string(t.Align)); err != nil {
			return nil, err
		}
		family, err := ParseFontFamily(t.FontFamily)
		if err != nil {
			return nil, err
		}
		t.FontFamily = family
		el = t
	case KindImage:
		im := &Image{}
		if err := json.Unmarshal(data, im); err != nil {
			return nil, fmt.Errorf("studio: decode image element: %w", err)
		}
		el = im
	default:
		return nil, fmt.Errorf("studio: unknown element type %q", head.Type)
	}
	f := el.Common()
	if head.Visible == nil {
		f.Visible = true
	}
	f.X = clampPercent(f.X)
	f.Y = clampPercent(f.Y)
	f.Width = clampSize(f.Width)
	f.Height = clampSize(f.Height)
	return el, nil
}

// MarshalJSON implements json.Marshaler.
func (p Project) MarshalJSON() ([]byte, error) {
	out := projectJSON{Elements: make([]json.RawMessage, 0, len(p.Elements))}
	for _, el := range p.Elements {
		data, err := MarshalElement(el)
		if err != nil {
			return nil, err
		}
		out.Elements = append(out.Elements, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Project) UnmarshalJSON(data []byte) error {
	var in projectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("studio: decode project: %w", err)
	}
	p.Elements = make([]Element, 0, len(in.Elements))
	for _, raw := range in.Elements {
		el, err := UnmarshalElement(raw)
		if err != nil {
			return err
		}
		p.Elements = append(p.Elements, el)
	}
	return nil
}
