// Package studio is the layer-compositing engine behind gg-studio, an image
// editor that erases text from a photo with a generative model and lets the
// user place new text and image layers on the cleaned result.
//
// # Overview
//
// A [Session] owns everything the editor needs for one photo: the uploaded
// base image, the latest AI result, undo/redo history, the [Store] of
// design elements, the brush [MaskSurface] and the display zoom. All state
// changes go through named transitions on the session so a sequence of user
// events can be replayed deterministically.
//
//	s := studio.NewSession(studio.WithEditor(client))
//	if err := s.Upload(ctx, photo); err != nil {
//	    return err
//	}
//	id := s.AddText()
//	g, _ := s.BeginDrag(id, studio.Pt(400, 300))
//	g.Move(studio.Pt(420, 310))
//	g.End()
//	err := s.Export(w, studio.FormatPNG)
//
// # Coordinate System
//
// Element geometry is stored in percent of the base image:
//   - X, Y are the element center, 0..100
//   - Width, Height are the element size, 0..100
//
// Pointer input arrives in screen pixels. [Space] divides out the display
// zoom and then converts against the zoom=1 display size, so the same
// percentages describe the element on screen at any zoom and in the export
// at the image's native resolution.
//
// # Rendering
//
// Export and the brush mask are drawn with github.com/gogpu/gg. Text layers
// use faces from a [FontCatalog]; the stored font size is a per-mille of the
// output height so text scales with the image.
//
// # Concurrency
//
// A Session is not safe for concurrent use. The remote edit call is the only
// operation that blocks; [Session.BeginEdit] and [Session.Finish] let a caller
// release its own lock while the call is in flight.
package studio
