package page

import "github.com/relcore/storage/internal/storage/codec"

// slotEntry is a fixed-size directory entry pointing into the tuple heap.
// Slots are never reused after a tuple is removed — there is no delete
// operation in this design, matching spec §3's "Slots are persistent".
type slotEntry struct {
	TupleID int32
	Offset  int32
	Length  int32
}

// slotEntrySize is the encoded width of one slot: three Int32 fields.
const slotEntrySize = 3 * codec.Int32Width

func (s slotEntry) Encode() []byte {
	out := codec.Int32Value(s.TupleID).Encode()
	out = append(out, codec.Int32Value(s.Offset).Encode()...)
	out = append(out, codec.Int32Value(s.Length).Encode()...)
	return out
}

func decodeSlot(buf []byte, offset *int) (slotEntry, error) {
	tupleID, err := codec.Decode(buf, offset)
	if err != nil {
		return slotEntry{}, err
	}
	off, err := codec.Decode(buf, offset)
	if err != nil {
		return slotEntry{}, err
	}
	length, err := codec.Decode(buf, offset)
	if err != nil {
		return slotEntry{}, err
	}
	return slotEntry{TupleID: tupleID.Int32(), Offset: off.Int32(), Length: length.Int32()}, nil
}
