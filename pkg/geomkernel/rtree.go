package geomkernel

import (
	"github.com/dhconnelly/rtreego"
)

const (
	rtreeMinChildren = 5
	rtreeMaxChildren = 20
)

// rtreeEntry adapts a stored bbox/payload pair to rtreego.Spatial.
type rtreeEntry struct {
	bb      rtreego.Rect
	payload any
}

func (e *rtreeEntry) Bounds() rtreego.Rect { return e.bb }

// RTree is a mutable spatial index over axis-aligned bboxes, wrapping
// dhconnelly/rtreego. search returns every payload whose stored bbox
// intersects the query bbox; false positives are allowed, false negatives
// are not.
type RTree struct {
	tree *rtreego.Rtree
}

// NewRTree returns an empty RTree.
func NewRTree() *RTree {
	return &RTree{tree: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)}
}

// Insert adds payload under bb.
func (t *RTree) Insert(bb BBox, payload any) error {
	rect, err := toRtreeRect(bb)
	if err != nil {
		return err
	}
	t.tree.Insert(&rtreeEntry{bb: rect, payload: payload})
	return nil
}

// Clear removes every entry.
func (t *RTree) Clear() {
	t.tree = rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
}

// BulkLoad clears the tree and inserts every (bbox, payload) pair in items.
func (t *RTree) BulkLoad(items []struct {
	BBox    BBox
	Payload any
}) error {
	t.Clear()
	for _, it := range items {
		if err := t.Insert(it.BBox, it.Payload); err != nil {
			return err
		}
	}
	return nil
}

// Search returns every payload whose stored bbox intersects query.
func (t *RTree) Search(query BBox) ([]any, error) {
	rect, err := toRtreeRect(query)
	if err != nil {
		return nil, err
	}
	results := t.tree.SearchIntersect(rect)
	out := make([]any, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*rtreeEntry).payload)
	}
	return out, nil
}

// Len returns the number of entries currently indexed.
func (t *RTree) Len() int {
	return t.tree.Size()
}

func toRtreeRect(bb BBox) (rtreego.Rect, error) {
	w, h := bb.Width(), bb.Height()
	const minExtent = 1e-9
	if w <= 0 {
		w = minExtent
	}
	if h <= 0 {
		h = minExtent
	}
	return rtreego.NewRect(rtreego.Point{bb.MinX, bb.MinY}, []float64{w, h})
}
