package studio

import "image"

// History is a linear undo/redo stack over AI result images.
// Entries are oldest first.
type History struct {
	undo []image.Image
	redo []image.Image
}

// Push records prev as an undo point.
func (h *History) Push(prev image.Image) {
	h.undo = append(h.undo, prev)
}

// ClearRedo drops all redo entries.
func (h *History) ClearRedo() {
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo pops the last undo point and pushes current onto the redo stack.
// It returns false and leaves both stacks untouched when there is nothing
// to undo or current is nil.
func (h *History) Undo(current image.Image) (image.Image, bool) {
	if current == nil || len(h.undo) == 0 {
		return nil, false
	}
	last := len(h.undo) - 1
	prev := h.undo[last]
	h.undo[last] = nil
	h.undo = h.undo[:last]
	h.redo = append(h.redo, current)
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current image.Image) (image.Image, bool) {
	if current == nil || len(h.redo) == 0 {
		return nil, false
	}
	last := len(h.redo) - 1
	next := h.redo[last]
	h.redo[last] = nil
	h.redo = h.redo[:last]
	h.undo = append(h.undo, current)
	return next, true
}

// Len returns the number of undo points.
func (h *History) Len() int { return len(h.undo) }

// RedoLen returns the number of redo entries.
func (h *History) RedoLen() int { return len(h.redo) }

// Entries returns the undo points, oldest first.
func (h *History) Entries() []image.Image {
	return append([]image.Image(nil), h.undo...)
}

// RedoEntries returns the redo stack, oldest first.
func (h *History) RedoEntries() []image.Image {
	return append([]image.Image(nil), h.redo...)
}

// Reset empties both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
