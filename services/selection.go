package services

import (
	"sort"
	"sync"
)

type dragMode int

const (
	dragIdle dragMode = iota
	dragSelecting
	dragDeselecting
)

// Selection maintains the set of selected order IDs over a filtered list
// view, including continuous drag multi-select. Membership is independent of
// the active filter: an ID selected while visible stays selected if the
// filter later hides it. The drag is an explicit three-state machine; the
// release event must be delivered from the global scope (PointerUp fires
// wherever the pointer is released, including outside the list).
type Selection struct {
	mu   sync.Mutex
	ids  map[uint]struct{}
	mode dragMode
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[uint]struct{})}
}

// Toggle flips membership for a single ID.
func (s *Selection) Toggle(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Has reports membership.
func (s *Selection) Has(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// SelectAllVisible adds every ID currently matching the filter. IDs hidden by
// the filter are not touched.
func (s *Selection) SelectAllVisible(visible []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// ClearAll empties the selection.
func (s *Selection) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[uint]struct{})
}

// PointerDown begins a drag on a row. The drag's target action is fixed
// here, from the pressed row's membership: an unselected row starts a
// selecting drag, a selected row a deselecting one. The action is applied to
// the pressed row immediately.
func (s *Selection) PointerDown(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		s.mode = dragDeselecting
		delete(s.ids, id)
	} else {
		s.mode = dragSelecting
		s.ids[id] = struct{}{}
	}
}

// PointerEnter applies the drag's fixed action to a row entered while the
// pointer is down. Outside a drag it is a no-op.
func (s *Selection) PointerEnter(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case dragSelecting:
		s.ids[id] = struct{}{}
	case dragDeselecting:
		delete(s.ids, id)
	}
}

// PointerUp ends the drag. It must be wired to the global pointer-release
// event: releases outside the list still end the drag.
func (s *Selection) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = dragIdle
}

// Dragging reports whether a drag is in progress.
func (s *Selection) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode != dragIdle
}

// IDs returns the selected IDs in ascending order.
func (s *Selection) IDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of selected IDs.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
