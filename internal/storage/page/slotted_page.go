package page

import (
	"fmt"

	"github.com/relcore/storage/internal/storage/codec"
)

// ErrPageFull is returned by AppendTuple when a tuple's slot and payload
// would not fit in the page's remaining free space.
var ErrPageFull = fmt.Errorf("page: page full")

// ErrPageOverflow is returned by Serialize when the slot directory and
// the tuple heap would overlap in the 4096-byte frame.
var ErrPageOverflow = fmt.Errorf("page: serialized regions overlap")

// Page is a 4096-byte slotted container for tuples.
type Page struct {
	Header Header

	slots  []slotEntry // append order (slot directory order)
	tuples []Tuple     // front = most recently appended (ascending physical offset)

	lastSlotID int32 // == last assigned tuple id; monotonically increasing
	offsetCur  int32 // low water mark of the tuple heap
}

// New creates an empty page. FreeSpace is initialized to PageSize minus
// the header's on-disk size, per spec §4.3.
func New(h Header) *Page {
	h.FreeSpace = PageSize - int32(len(h.Encode()))
	return &Page{
		Header:     h,
		lastSlotID: 0,
		offsetCur:  PageSize - 1,
	}
}

// FreeSpace returns the number of bytes left for new slots and tuples.
func (p *Page) FreeSpace() int32 { return p.Header.FreeSpace }

// LastTupleID returns the highest tuple id assigned so far (0 if empty).
func (p *Page) LastTupleID() int32 { return p.lastSlotID }

// AppendTuple serializes values as a new tuple, assigns it the next
// tuple id, and appends a slot pointing at its bytes in the heap.
//
// The first tuple reserves five additional bytes, compensating for the
// Int32 length prefix that EncodeDeque writes exactly once regardless
// of element count (see spec §9) — derived here from codec.Int32Width
// rather than hardcoded.
func (p *Page) AppendTuple(values []codec.Value) (int32, error) {
	tupleID := p.lastSlotID + 1
	tuple := Tuple{ID: tupleID, Data: values}
	tupleBytes := tuple.Encode()
	size := int32(len(tupleBytes))

	newOffset := p.offsetCur - size
	if p.lastSlotID == 0 {
		newOffset -= codec.Int32Width
		size += codec.Int32Width
	}

	entry := slotEntry{TupleID: tupleID, Offset: newOffset, Length: size}
	entrySize := int32(len(entry.Encode()))

	if entrySize+size > p.Header.FreeSpace {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrPageFull, entrySize+size, p.Header.FreeSpace)
	}

	p.lastSlotID = tupleID
	p.offsetCur = newOffset
	p.Header.FreeSpace -= entrySize + size
	p.slots = append(p.slots, entry)
	p.tuples = append([]Tuple{tuple}, p.tuples...)
	return tupleID, nil
}

// Tuples returns the page's tuples ordered by ascending tuple id —
// append order — rather than the wire's ascending-offset (most-recent-
// first) order, since callers generally want the former.
func (p *Page) Tuples() []Tuple {
	out := make([]Tuple, len(p.tuples))
	copy(out, p.tuples)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SlotCount returns the number of slots in the directory.
func (p *Page) SlotCount() int { return len(p.slots) }

// Serialize writes the page into a fixed PageSize-byte buffer:
// header, then the slot deque, then (after a zero-filled gap) the
// tuple deque starting at the current heap low-water mark. A page with
// no tuples writes its empty tuple deque (just the length prefix) so
// that it ends at the page tail.
func (p *Page) Serialize() ([]byte, error) {
	buf := make([]byte, PageSize)

	headerBytes := p.Header.Encode()
	copy(buf, headerBytes)
	slotOffset := len(headerBytes)

	slotBytes := codec.EncodeDeque(serializableSlots(p.slots))
	slotEnd := slotOffset + len(slotBytes)
	if slotEnd > PageSize {
		return nil, fmt.Errorf("%w: slot directory exceeds page size", ErrPageOverflow)
	}
	copy(buf[slotOffset:], slotBytes)

	tupleBytes := codec.EncodeDeque(serializableTuples(p.tuples))
	tupleOffset := int(p.offsetCur)
	if len(p.tuples) == 0 {
		tupleOffset = PageSize - len(tupleBytes)
	}
	if tupleOffset < slotEnd {
		return nil, fmt.Errorf("%w: tuple heap starts before slot directory ends", ErrPageOverflow)
	}
	if tupleOffset+len(tupleBytes) > PageSize {
		return nil, fmt.Errorf("%w: tuple heap exceeds page size", ErrPageOverflow)
	}
	copy(buf[tupleOffset:], tupleBytes)

	return buf, nil
}

// Deserialize reads a page written by Serialize. The heap low-water
// mark and the last assigned tuple id are both recovered from the final
// slot entry, since neither is part of the serialized header. With no
// slots, the empty tuple deque is read from the page tail, where
// Serialize puts it.
func Deserialize(buf []byte) (*Page, error) {
	if len(buf) != PageSize {
		return nil, fmt.Errorf("%w: page buffer is %d bytes, want %d", codec.ErrMalformedBuffer, len(buf), PageSize)
	}

	offset := 0
	header, err := decodeHeader(buf, &offset)
	if err != nil {
		return nil, fmt.Errorf("page: decode header: %w", err)
	}

	slots, err := codec.DecodeDeque(buf, &offset, decodeSlot)
	if err != nil {
		return nil, fmt.Errorf("page: decode slot directory: %w", err)
	}

	lastSlotID := int32(0)
	offsetCur := int32(PageSize - 1)
	if len(slots) > 0 {
		last := slots[len(slots)-1]
		lastSlotID = last.TupleID
		offsetCur = last.Offset
	}

	tupleOffset := int(offsetCur)
	if len(slots) == 0 {
		tupleOffset = PageSize - codec.Int32Width
	}
	tuples, err := codec.DecodeDeque(buf, &tupleOffset, decodeTuple)
	if err != nil {
		return nil, fmt.Errorf("page: decode tuple heap: %w", err)
	}

	return &Page{
		Header:     header,
		slots:      slots,
		tuples:     tuples,
		lastSlotID: lastSlotID,
		offsetCur:  offsetCur,
	}, nil
}

func serializableSlots(s []slotEntry) []codec.Serializable {
	out := make([]codec.Serializable, len(s))
	for i, e := range s {
		out[i] = e
	}
	return out
}

func serializableTuples(t []Tuple) []codec.Serializable {
	out := make([]codec.Serializable, len(t))
	for i, e := range t {
		out[i] = e
	}
	return out
}
