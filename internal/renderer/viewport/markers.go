package viewport

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// Marker is a decoration over a document range.
type Marker struct {
	ID    string
	Range buffer.Range
	Kind  string
}

// AddMarker registers a decoration and returns its handle.
func (v *Viewport) AddMarker(r buffer.Range, kind string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := uuid.NewString()
	v.markers[id] = Marker{ID: id, Range: r, Kind: kind}
	return id
}

// RemoveMarker releases a decoration. Unknown handles are ignored.
func (v *Viewport) RemoveMarker(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.markers, id)
}

// Markers returns the live decorations ordered by range start.
func (v *Viewport) Markers() []Marker {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Marker, 0, len(v.markers))
	for _, m := range v.markers {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b Marker) int {
		if c := buffer.Compare(a.Range.Start, b.Range.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	return out
}

// MarkersOfKind returns the live decorations of one kind.
func (v *Viewport) MarkersOfKind(kind string) []Marker {
	var out []Marker
	for _, m := range v.Markers() {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// MarkerAt returns the first marker covering pos.
func (v *Viewport) MarkerAt(pos buffer.Position) (Marker, bool) {
	for _, m := range v.Markers() {
		if m.Range.Contains(pos) {
			return m, true
		}
	}
	return Marker{}, false
}
