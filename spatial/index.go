package spatial

import (
	"math"
	"sort"

	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

// Entry is the minimal shape the index needs from a mobile entity. It
// deliberately does not reference the entities package's Animal type so
// this package stays a leaf (depends only on vecmath), matching spec's
// dependency direction: the spatial index is consulted by perception, not
// the other way around.
type Entry struct {
	ID       string
	Position vecmath.Vec2
	Size     float64
}

type bucketKey struct{ x, y int }

// Index is a regular bucketed grid over mobile entities.
type Index struct {
	bucketSize float64
	buckets    map[bucketKey][]string
	entries    map[string]Entry
}

// NewIndex returns an empty index with the given bucket side length.
func NewIndex(bucketSize float64) *Index {
	return &Index{
		bucketSize: bucketSize,
		buckets:    make(map[bucketKey][]string),
		entries:    make(map[string]Entry),
	}
}

func (idx *Index) keyFor(p vecmath.Vec2) bucketKey {
	return bucketKey{int(math.Floor(p.X / idx.bucketSize)), int(math.Floor(p.Y / idx.bucketSize))}
}

// Insert adds e to the index. Inserting an id that already exists is
// equivalent to Update.
func (idx *Index) Insert(e Entry) {
	if _, exists := idx.entries[e.ID]; exists {
		idx.Remove(e.ID)
	}
	k := idx.keyFor(e.Position)
	idx.buckets[k] = append(idx.buckets[k], e.ID)
	idx.entries[e.ID] = e
}

// Remove deletes id from the index, if present.
func (idx *Index) Remove(id string) {
	e, ok := idx.entries[id]
	if !ok {
		return
	}
	k := idx.keyFor(e.Position)
	bucket := idx.buckets[k]
	for i, v := range bucket {
		if v == id {
			bucket[i] = bucket[len(bucket)-1]
			idx.buckets[k] = bucket[:len(bucket)-1]
			break
		}
	}
	if len(idx.buckets[k]) == 0 {
		delete(idx.buckets, k)
	}
	delete(idx.entries, id)
}

// Update atomically removes then reinserts e so the bucket map stays
// authoritative for e's new position.
func (idx *Index) Update(e Entry) {
	idx.Remove(e.ID)
	idx.Insert(e)
}

// Get returns the stored entry for id, if present.
func (idx *Index) Get(id string) (Entry, bool) {
	e, ok := idx.entries[id]
	return e, ok
}

// bucketSpan returns how many buckets on each side of center must be
// scanned to guarantee covering radius r, widening automatically if r
// exceeds one bucket (e.g. because config under-provisioned bucket size
// relative to the largest configured alert range).
func (idx *Index) bucketSpan(r float64) int {
	span := int(math.Ceil(r / idx.bucketSize))
	if span < 1 {
		span = 1
	}
	return span
}

// QueryRadius returns every entry whose surface lies within r of center:
// distance(center, e.Position) - e.Size <= r.
func (idx *Index) QueryRadius(center vecmath.Vec2, r float64) []Entry {
	ck := idx.keyFor(center)
	span := idx.bucketSpan(r)

	var out []Entry
	for dy := -span; dy <= span; dy++ {
		for dx := -span; dx <= span; dx++ {
			for _, id := range idx.buckets[bucketKey{ck.x + dx, ck.y + dy}] {
				e := idx.entries[id]
				if vecmath.Distance(center, e.Position)-e.Size <= r {
					out = append(out, e)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// QueryRect returns every entry whose position lies within the axis
// aligned rectangle [min,max].
func (idx *Index) QueryRect(min, max vecmath.Vec2) []Entry {
	minKey := idx.keyFor(min)
	maxKey := idx.keyFor(max)

	var out []Entry
	for gy := minKey.y; gy <= maxKey.y; gy++ {
		for gx := minKey.x; gx <= maxKey.x; gx++ {
			for _, id := range idx.buckets[bucketKey{gx, gy}] {
				e := idx.entries[id]
				if e.Position.X >= min.X && e.Position.X <= max.X &&
					e.Position.Y >= min.Y && e.Position.Y <= max.Y {
					out = append(out, e)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Nearest returns the entry closest to center, excluding excludeID, or
// false if the index is empty. Ties break by id ascending.
func (idx *Index) Nearest(center vecmath.Vec2, excludeID string) (Entry, bool) {
	all := idx.NearestN(center, excludeID, 1)
	if len(all) == 0 {
		return Entry{}, false
	}
	return all[0], true
}

// NearestN returns up to n entries closest to center, excluding
// excludeID, sorted by distance ascending then id ascending.
func (idx *Index) NearestN(center vecmath.Vec2, excludeID string, n int) []Entry {
	all := make([]Entry, 0, len(idx.entries))
	for id, e := range idx.entries {
		if id == excludeID {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		di := vecmath.Distance(center, all[i].Position)
		dj := vecmath.Distance(center, all[j].Position)
		if di != dj {
			return di < dj
		}
		return all[i].ID < all[j].ID
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// Len returns the number of entries currently indexed.
func (idx *Index) Len() int {
	return len(idx.entries)
}
