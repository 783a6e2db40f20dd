// Package page implements the slotted page: a fixed 4096-byte container
// for variable-length tuples, with a slot directory growing forward from
// the header and a tuple heap growing backward from the page tail.
//
// Layout (see spec §6 for the exact byte contract):
//
//	[0 .. headerSize)          Header: PageType, FreeSpace, PageNumber, NextPage
//	[headerSize .. slotEnd)    Slot directory, one entry per appended tuple
//	[slotEnd .. offset)        unused, zero-filled
//	[offset .. 4096)           Tuple heap, growing toward the page start
//
// Grounded on the original Rust page module and on the teacher lineage's
// slotted_page.go (forward-growing slot directory, backward-growing
// record heap) — but the wire format itself is pinned to the tagged
// Value codec rather than the teacher's raw uint16 slot table, since
// this page stores typed tuples, not opaque byte records.
package page

import "github.com/relcore/storage/internal/storage/codec"

// PageSize is the fixed size, in bytes, of every page frame.
const PageSize = 4096

// PageType distinguishes data pages from index pages.
type PageType string

const (
	TypeData  PageType = "DATA"
	TypeIndex PageType = "INDEX"
)

// Header is the page's on-disk prefix. last_slot and offset are
// intentionally NOT part of it — they are page-level bookkeeping,
// recovered from the final slot entry on Deserialize, per spec §6.
type Header struct {
	Type       PageType
	FreeSpace  int32
	PageNumber int32
	NextPage   int32
}

// Encode writes the header fields in the wire order: page_type,
// free_space, page_number, next_page.
func (h Header) Encode() []byte {
	out := codec.VarcharValue(string(h.Type)).Encode()
	out = append(out, codec.Int32Value(h.FreeSpace).Encode()...)
	out = append(out, codec.Int32Value(h.PageNumber).Encode()...)
	out = append(out, codec.Int32Value(h.NextPage).Encode()...)
	return out
}

func decodeHeader(buf []byte, offset *int) (Header, error) {
	typeVal, err := codec.Decode(buf, offset)
	if err != nil {
		return Header{}, err
	}
	if typeVal.Kind() != codec.KindVarchar {
		return Header{}, &malformedError{"page_type is not a Varchar"}
	}
	pt := PageType(typeVal.String())
	if pt != TypeData && pt != TypeIndex {
		return Header{}, &malformedError{"unrecognized page type " + typeVal.String()}
	}
	freeSpace, err := codec.Decode(buf, offset)
	if err != nil {
		return Header{}, err
	}
	pageNumber, err := codec.Decode(buf, offset)
	if err != nil {
		return Header{}, err
	}
	nextPage, err := codec.Decode(buf, offset)
	if err != nil {
		return Header{}, err
	}
	return Header{
		Type:       pt,
		FreeSpace:  freeSpace.Int32(),
		PageNumber: pageNumber.Int32(),
		NextPage:   nextPage.Int32(),
	}, nil
}

type malformedError struct{ msg string }

func (e *malformedError) Error() string { return "page: " + e.msg }

func (e *malformedError) Unwrap() error { return codec.ErrMalformedBuffer }
