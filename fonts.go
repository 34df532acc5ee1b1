package studio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
)

// Font is one entry of the font catalog. Value is the family identifier
// stored on text elements; Name is the label shown to the user.
type Font struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SupportedFonts is the fixed font catalog offered to text elements.
// The first entry is the default for new text.
var SupportedFonts = []Font{
	{Name: "Noto Sans KR", Value: "'Noto Sans KR', sans-serif"},
	{Name: "Nanum Gothic", Value: "'Nanum Gothic', sans-serif"},
	{Name: "Nanum Myeongjo", Value: "'Nanum Myeongjo', serif"},
	{Name: "Black Han Sans", Value: "'Black Han Sans', sans-serif"},
	{Name: "Do Hyeon", Value: "'Do Hyeon', sans-serif"},
	{Name: "Gowun Dodum", Value: "'Gowun Dodum', sans-serif"},
}

// DefaultFontFamily is the family of newly added text.
var DefaultFontFamily = SupportedFonts[0].Value

// ParseFontFamily resolves a catalog value or display name to the catalog
// value stored on text elements.
func ParseFontFamily(s string) (string, error) {
	for _, f := range SupportedFonts {
		if s == f.Value || strings.EqualFold(s, f.Name) {
			return f.Value, nil
		}
	}
	return "", fmt.Errorf("studio: unknown font family %q", s)
}

// FontCatalog resolves a text element's family to a bold font source.
// Families without registered font data fall back to Go Bold, so every
// catalog entry renders even when the real font files are not installed.
//
// FontCatalog is safe for concurrent use.
type FontCatalog struct {
	mu       sync.Mutex
	data     map[string][]byte
	sources  map[string]*text.FontSource
	fallback *text.FontSource
}

// NewFontCatalog returns a catalog with only the fallback face.
func NewFontCatalog() *FontCatalog {
	return &FontCatalog{
		data:    make(map[string][]byte),
		sources: make(map[string]*text.FontSource),
	}
}

// Register binds TTF/OTF data to a family value (or display name).
func (c *FontCatalog) Register(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("studio: register font %q: %w", family, err)
	}
	key := c.key(family)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sources[key] = src
	return nil
}

// LoadDir registers every .ttf/.otf file in dir. A file is matched to the
// catalog entry whose display name, with spaces removed, prefixes the file
// name case-insensitively (NanumGothic-Bold.ttf → "Nanum Gothic").
// It returns the number of fonts registered.
func (c *FontCatalog) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("studio: read font dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		f, ok := matchFontFile(e.Name())
		if !ok {
			Logger().Debug("studio: font file matches no catalog entry", "file", e.Name())
			continue
		}
		// #nosec G304 -- directory is operator configuration
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, fmt.Errorf("studio: read font: %w", err)
		}
		if err := c.Register(f.Value, data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func matchFontFile(name string) (Font, bool) {
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	for _, f := range SupportedFonts {
		if strings.HasPrefix(base, strings.ToLower(strings.ReplaceAll(f.Name, " ", ""))) {
			return f, true
		}
	}
	return Font{}, false
}

// Face returns a face for family at size pixels.
func (c *FontCatalog) Face(family string, size float64) (text.Face, error) {
	src, err := c.source(family)
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

func (c *FontCatalog) source(family string) (*text.FontSource, error) {
	key := c.key(family)
	c.mu.Lock()
	defer c.mu.Unlock()
	if src, ok := c.sources[key]; ok {
		return src, nil
	}
	if c.fallback == nil {
		src, err := text.NewFontSource(gobold.TTF)
		if err != nil {
			return nil, fmt.Errorf("studio: load fallback font: %w", err)
		}
		c.fallback = src
	}
	return c.fallback, nil
}

// key maps display names onto catalog values so both forms resolve to the
// same entry.
func (c *FontCatalog) key(family string) string {
	for _, f := range SupportedFonts {
		if strings.EqualFold(family, f.Name) {
			return f.Value
		}
	}
	return family
}

// Registered reports whether real font data is bound to family.
func (c *FontCatalog) Registered(family string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[c.key(family)]
	return ok
}
