package studio

import (
	"image"
	"testing"
)

func solid(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestHistoryUndoRedo(t *testing.T) {
	r1, r2, r3 := solid(1, 1), solid(2, 2), solid(3, 3)
	var h History
	h.Push(r1)
	h.Push(r2)

	got, ok := h.Undo(r3)
	if !ok || got != r2 {
		t.Fatalf("Undo() = %v, %v; want r2", got, ok)
	}
	if h.Len() != 1 || h.RedoLen() != 1 {
		t.Fatalf("lens = %d/%d, want 1/1", h.Len(), h.RedoLen())
	}

	got, ok = h.Redo(r2)
	if !ok || got != r3 {
		t.Fatalf("Redo() = %v, %v; want r3", got, ok)
	}
	if h.Len() != 2 || h.RedoLen() != 0 {
		t.Fatalf("lens = %d/%d, want 2/0", h.Len(), h.RedoLen())
	}
	if e := h.Entries(); e[0] != r1 || e[1] != r2 {
		t.Error("Entries() order wrong")
	}
}

func TestHistoryRefusals(t *testing.T) {
	var h History
	if _, ok := h.Undo(solid(1, 1)); ok {
		t.Error("Undo() on empty history succeeded")
	}
	if _, ok := h.Redo(solid(1, 1)); ok {
		t.Error("Redo() on empty redo stack succeeded")
	}
	h.Push(solid(1, 1))
	if _, ok := h.Undo(nil); ok {
		t.Error("Undo() without a current result succeeded")
	}
	if h.Len() != 1 {
		t.Error("refused Undo() changed the stack")
	}
}

func TestHistoryClearRedo(t *testing.T) {
	var h History
	h.Push(solid(1, 1))
	h.Undo(solid(2, 2))
	h.ClearRedo()
	if h.RedoLen() != 0 {
		t.Errorf("RedoLen() = %d after ClearRedo", h.RedoLen())
	}
	h.Push(solid(1, 1))
	h.Reset()
	if h.Len() != 0 || h.RedoLen() != 0 {
		t.Error("Reset() left entries")
	}
}
