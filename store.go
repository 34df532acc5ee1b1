package studio

import (
	"slices"

	"github.com/google/uuid"
)

// zIndexBase offsets element z-indices above the range used by workspace
// chrome (brush surface, handles).
const zIndexBase = 100

// Store is an ordered collection of design elements with at most one
// selected element.
//
// Elements handed out by Get and List are copies; all changes go through
// Add, Update and Delete.
type Store struct {
	elems    []Element
	selected string
	newID    func(Kind) string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{newID: newElementID}
}

func newElementID(k Kind) string {
	prefix := "text-"
	if k == KindImage {
		prefix = "img-"
	}
	return prefix + uuid.NewString()
}

// Add inserts el with a fresh id and a z-index above every existing element,
// selects it and returns the id. Any id already set on el is replaced.
func (s *Store) Add(el Element) string {
	el = el.clone()
	f := el.Common()
	f.ID = s.uniqueID(el.Kind())
	f.ZIndex = s.nextZIndex()
	f.X = clampPercent(f.X)
	f.Y = clampPercent(f.Y)
	f.Width = clampSize(f.Width)
	f.Height = clampSize(f.Height)
	s.elems = append(s.elems, el)
	s.selected = f.ID
	return f.ID
}

func (s *Store) uniqueID(k Kind) string {
	for {
		id := s.newID(k)
		if s.index(id) < 0 {
			return id
		}
	}
}

func (s *Store) nextZIndex() int {
	z := len(s.elems) + zIndexBase
	for _, el := range s.elems {
		if fz := el.Common().ZIndex; fz >= z {
			z = fz + 1
		}
	}
	return z
}

// Update applies p to the element with the given id and reports whether the
// element exists. Unknown ids are ignored.
func (s *Store) Update(id string, p Patch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	p.apply(s.elems[i])
	// The id is owned by the store even if a patch tried to touch it.
	s.elems[i].Common().ID = id
	return true
}

// Delete removes the element and clears the selection if it pointed at it.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.elems = slices.Delete(s.elems, i, i+1)
	if s.selected == id {
		s.selected = ""
	}
	return true
}

// Get returns a copy of the element with the given id.
func (s *Store) Get(id string) (Element, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.elems[i].clone(), true
}

// List returns copies of all elements in ascending z-index order, i.e. the
// order they are painted in.
func (s *Store) List() []Element {
	out := make([]Element, len(s.elems))
	for i, el := range s.elems {
		out[i] = el.clone()
	}
	slices.SortStableFunc(out, func(a, b Element) int {
		return a.Common().ZIndex - b.Common().ZIndex
	})
	return out
}

// Layers returns elements most recent first, the order of a layer panel.
func (s *Store) Layers() []Element {
	out := s.List()
	slices.Reverse(out)
	return out
}

// Visible returns the visible elements in paint order.
func (s *Store) Visible() []Element {
	all := s.List()
	out := all[:0]
	for _, el := range all {
		if el.Common().Visible {
			out = append(out, el)
		}
	}
	return out
}

// Len returns the number of elements.
func (s *Store) Len() int {
	return len(s.elems)
}

// Selected returns the selected id, or "" when nothing is selected.
func (s *Store) Selected() string {
	return s.selected
}

// Select selects id. An empty id clears the selection; an unknown id is
// rejected.
func (s *Store) Select(id string) bool {
	if id == "" {
		s.selected = ""
		return true
	}
	if s.index(id) < 0 {
		return false
	}
	s.selected = id
	return true
}

// Reset removes all elements and clears the selection.
func (s *Store) Reset() {
	s.elems = nil
	s.selected = ""
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.elems, func(el Element) bool {
		return el.Common().ID == id
	})
}
