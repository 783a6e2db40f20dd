// Package directory maps PageIds to their backing file paths and
// ObjectIds to the page that currently holds them. It is the one
// component in this storage core that generates identifiers rather
// than just storing them: NewPagePath hands out collision-free page
// file names via github.com/google/uuid, the same dependency the
// teacher lineage reaches for when it needs a fresh identifier.
//
// Grounded on the original directory module's two-hashmap design
// (pages: PageId -> path, objects: ObjectId -> PageId); Go structure
// follows the teacher lineage's map-of-locations bookkeeping.
package directory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/relcore/storage/internal/storage/codec"
)

// ErrUnknownPage is returned by AddObject when the referenced page has
// not itself been registered with AddPage — the one precondition the
// original design enforces (via a Rust assert) before linking an
// object to a page.
var ErrUnknownPage = fmt.Errorf("directory: unknown page id")

// Directory holds the page-location and object-ownership maps. There
// is no file handle on this type — persistence is the caller's
// responsibility via Encode/Decode plus the fileio package, matching
// how the catalog is handled.
type Directory struct {
	pages   map[int32]codec.Value
	objects map[int32]int32
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{
		pages:   make(map[int32]codec.Value),
		objects: make(map[int32]int32),
	}
}

// AddPage registers path as the location of pageID, overwriting any
// prior registration.
func (d *Directory) AddPage(pageID int32, path codec.Value) {
	d.pages[pageID] = path
}

// NewPagePath generates a fresh, collision-free path for a new page
// under base and registers it against pageID in one step, returning
// the path that was assigned.
func (d *Directory) NewPagePath(pageID int32, base string) codec.Value {
	path := codec.VarcharValue(fmt.Sprintf("%s/%s.page", base, uuid.NewString()))
	d.AddPage(pageID, path)
	return path
}

// AddObject links objectID to pageID. pageID must already be
// registered via AddPage; otherwise ErrUnknownPage is returned instead
// of the original's panic-on-assert.
func (d *Directory) AddObject(objectID, pageID int32) error {
	if _, ok := d.pages[pageID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPage, pageID)
	}
	d.objects[objectID] = pageID
	return nil
}

// RemoveObject unlinks objectID. A no-op if objectID is not present.
func (d *Directory) RemoveObject(objectID int32) {
	delete(d.objects, objectID)
}

// RemovePage unregisters pageID's location. This does NOT cascade to
// objects still pointing at pageID (spec §9) — those entries become
// dangling until explicitly removed, matching the original's
// non-cascading remove_page.
func (d *Directory) RemovePage(pageID int32) {
	delete(d.pages, pageID)
}

// GetPage returns pageID's registered path, or (zero Value, false) if
// it is not registered.
func (d *Directory) GetPage(pageID int32) (codec.Value, bool) {
	path, ok := d.pages[pageID]
	return path, ok
}

// GetObjectsForPage returns every ObjectId currently linked to pageID,
// in no particular order.
func (d *Directory) GetObjectsForPage(pageID int32) []int32 {
	var out []int32
	for objectID, p := range d.objects {
		if p == pageID {
			out = append(out, objectID)
		}
	}
	return out
}

// Encode serializes the directory as two consecutive maps: pages then
// objects, each written with codec.EncodeMap.
func (d *Directory) Encode() []byte {
	out := codec.EncodeMap(pageEntries(d.pages))
	out = append(out, codec.EncodeMap(objectEntries(d.objects))...)
	return out
}

// Decode reconstructs a Directory from buf at offset.
func Decode(buf []byte, offset *int) (*Directory, error) {
	pageEntries, err := codec.DecodeMap(buf, offset, codec.ValueDecoder)
	if err != nil {
		return nil, fmt.Errorf("directory: decode pages: %w", err)
	}
	objectEntries, err := codec.DecodeMap(buf, offset, decodeInt32)
	if err != nil {
		return nil, fmt.Errorf("directory: decode objects: %w", err)
	}

	d := New()
	for _, e := range pageEntries {
		d.pages[e.Key.Int32()] = e.Value
	}
	for _, e := range objectEntries {
		d.objects[e.Key.Int32()] = e.Value
	}
	return d, nil
}

func decodeInt32(buf []byte, offset *int) (int32, error) {
	v, err := codec.Decode(buf, offset)
	if err != nil {
		return 0, err
	}
	return v.Int32(), nil
}

func pageEntries(m map[int32]codec.Value) []codec.MapEntry[codec.Value] {
	out := make([]codec.MapEntry[codec.Value], 0, len(m))
	for k, v := range m {
		out = append(out, codec.MapEntry[codec.Value]{Key: codec.Int32Value(k), Value: v})
	}
	return out
}

func objectEntries(m map[int32]int32) []codec.MapEntry[codec.Value] {
	out := make([]codec.MapEntry[codec.Value], 0, len(m))
	for k, v := range m {
		out = append(out, codec.MapEntry[codec.Value]{Key: codec.Int32Value(k), Value: codec.Int32Value(v)})
	}
	return out
}
