package codec

import "fmt"

// Serializable is implemented by anything with a fixed encode/decode pair,
// so that EncodeList/EncodeDeque/EncodeMap can work generically over
// Values, Tuples, Slots, and catalog records alike.
type Serializable interface {
	Encode() []byte
}

// Decoder decodes one T starting at buf[*offset], advancing offset past it.
type Decoder[T any] func(buf []byte, offset *int) (T, error)

// EncodeList writes Int32(len(xs)) followed by the concatenation of each
// element's encoding. EncodeDeque has the identical wire form — the two
// are distinguished only by which Go container the caller walks, not by
// any difference on the wire.
func EncodeList[T Serializable](xs []T) []byte {
	out := Int32Value(int32(len(xs))).Encode()
	for _, x := range xs {
		out = append(out, x.Encode()...)
	}
	return out
}

// DecodeList reads a list written by EncodeList.
func DecodeList[T any](buf []byte, offset *int, decodeElem Decoder[T]) ([]T, error) {
	n, err := Decode(buf, offset)
	if err != nil {
		return nil, fmt.Errorf("codec: decode list length: %w", err)
	}
	if n.Kind() != KindInt32 {
		return nil, fmt.Errorf("%w: list length tag is not Int32", ErrMalformedBuffer)
	}
	count := n.Int32()
	if count < 0 {
		return nil, fmt.Errorf("%w: negative list length %d", ErrMalformedBuffer, count)
	}
	out := make([]T, 0, count)
	for i := int32(0); i < count; i++ {
		elem, err := decodeElem(buf, offset)
		if err != nil {
			return nil, fmt.Errorf("codec: decode list element %d: %w", i, err)
		}
		out = append(out, elem)
	}
	return out, nil
}

// EncodeDeque has the same wire form as EncodeList; kept as a distinct
// name because the page layer encodes its slot and tuple deques with it,
// and the distinction documents intent even though the bytes are identical.
func EncodeDeque[T Serializable](xs []T) []byte { return EncodeList(xs) }

// DecodeDeque has the same wire form as DecodeList.
func DecodeDeque[T any](buf []byte, offset *int, decodeElem Decoder[T]) ([]T, error) {
	return DecodeList(buf, offset, decodeElem)
}

// MapEntry is one key/value pair of an encoded map.
type MapEntry[T any] struct {
	Key   Value
	Value T
}

// EncodeMap writes Int32(len(m)) followed by (key, value) pairs in the
// order given — callers must not assume any particular ordering on
// decode, matching the original hashmap-backed design.
func EncodeMap[T Serializable](entries []MapEntry[T]) []byte {
	out := Int32Value(int32(len(entries))).Encode()
	for _, e := range entries {
		out = append(out, e.Key.Encode()...)
		out = append(out, e.Value.Encode()...)
	}
	return out
}

// DecodeMap reads a map written by EncodeMap.
func DecodeMap[T any](buf []byte, offset *int, decodeElem Decoder[T]) ([]MapEntry[T], error) {
	n, err := Decode(buf, offset)
	if err != nil {
		return nil, fmt.Errorf("codec: decode map length: %w", err)
	}
	if n.Kind() != KindInt32 {
		return nil, fmt.Errorf("%w: map length tag is not Int32", ErrMalformedBuffer)
	}
	count := n.Int32()
	if count < 0 {
		return nil, fmt.Errorf("%w: negative map length %d", ErrMalformedBuffer, count)
	}
	out := make([]MapEntry[T], 0, count)
	for i := int32(0); i < count; i++ {
		key, err := Decode(buf, offset)
		if err != nil {
			return nil, fmt.Errorf("codec: decode map key %d: %w", i, err)
		}
		val, err := decodeElem(buf, offset)
		if err != nil {
			return nil, fmt.Errorf("codec: decode map value %d: %w", i, err)
		}
		out = append(out, MapEntry[T]{Key: key, Value: val})
	}
	return out, nil
}

// ValueDecoder adapts Decode to the Decoder[Value] shape, for callers
// that want a homogeneous list/deque/map of bare Values (e.g. a tuple's
// data, or an index's column list).
func ValueDecoder(buf []byte, offset *int) (Value, error) { return Decode(buf, offset) }
