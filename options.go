package studio

import "github.com/gogpu/gg-studio/imagecache"

// SessionOption configures a Session during creation.
//
// Example:
//
//	s := studio.NewSession(
//	    studio.WithEditor(client),
//	    studio.WithContainer(studio.Size{Width: 1280, Height: 720}),
//	)
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	editor    Editor
	container Size
	brushSize float64
	fonts     *FontCatalog
	images    *imagecache.Cache
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		container: DefaultContainer,
		brushSize: DefaultBrushSize,
	}
}

// WithEditor sets the AI edit collaborator. Without one, uploads and edits
// fail with ErrMissingCredential.
func WithEditor(e Editor) SessionOption {
	return func(o *sessionOptions) {
		o.editor = e
	}
}

// WithContainer sets the workspace container size the base image is fitted
// into.
func WithContainer(size Size) SessionOption {
	return func(o *sessionOptions) {
		if size.Width > 0 && size.Height > 0 {
			o.container = size
		}
	}
}

// WithBrushSize sets the initial mask brush width in pixels.
func WithBrushSize(size float64) SessionOption {
	return func(o *sessionOptions) {
		if size > 0 {
			o.brushSize = size
		}
	}
}

// WithFonts sets the font catalog used for export.
func WithFonts(c *FontCatalog) SessionOption {
	return func(o *sessionOptions) {
		o.fonts = c
	}
}

// WithImageCache sets the decoded image cache used for image layers.
func WithImageCache(c *imagecache.Cache) SessionOption {
	return func(o *sessionOptions) {
		o.images = c
	}
}
