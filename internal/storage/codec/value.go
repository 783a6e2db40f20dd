// Package codec implements the tagged scalar value wire format shared by
// every persisted structure in the storage core: pages, the catalog, and
// the directory all serialize through it.
//
// Wire format per value (tag byte first, always little-endian payload):
//
//	tag  0x00  Null      payload: 1 zero byte           width 2
//	tag  0x01  Varchar   payload: 1 length byte + 32 bytes (padded)  width 34
//	tag  0x02  Int32     payload: 4 bytes                width 5
//	tag  0x03  Float64   payload: 8 bytes                width 9
//	tag  0x04  Bool      payload: 1 byte                 width 2
//
// Every value has a fixed on-disk width, which is what lets the page
// layer size tuples without a separate length table.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = 0x00
	KindVarchar Kind = 0x01
	KindInt32 Kind = 0x02
	KindFloat64 Kind = 0x03
	KindBool Kind = 0x04
)

// MaxVarcharLen is the maximum number of content bytes a Varchar may carry.
const MaxVarcharLen = 32

// Int32Width is the encoded width of an Int32 value, tag included.
// The page layer reserves exactly one of these widths' worth of extra
// space on the first tuple append, to compensate for the length prefix
// written once (and only once) by EncodeDeque.
const Int32Width = 5

// ErrMalformedBuffer is returned whenever decoding runs out of bytes,
// encounters invalid UTF-8, or sees an unrecognized tag byte. The
// original design silently coerced unknown tags to Null; this one does
// not.
var ErrMalformedBuffer = fmt.Errorf("codec: malformed buffer")

// Value is a tagged scalar: Varchar, Int32, Float64, Bool, or Null.
// Equality is structural (the zero Value is KindNull == Null).
type Value struct {
	kind Kind
	str  string
	i32  int32
	f64  float64
	b    bool
}

// Null is the absence of a value.
var Null = Value{kind: KindNull}

// VarcharValue builds a Varchar, panicking if s exceeds MaxVarcharLen bytes —
// a contract violation by the caller, not a decode-time failure.
func VarcharValue(s string) Value {
	if len(s) > MaxVarcharLen {
		panic(fmt.Sprintf("codec: varchar length %d exceeds max %d", len(s), MaxVarcharLen))
	}
	return Value{kind: KindVarchar, str: s}
}

// Int32Value builds an Int32.
func Int32Value(n int32) Value { return Value{kind: KindInt32, i32: n} }

// Float64Value builds a Float64.
func Float64Value(f float64) Value { return Value{kind: KindFloat64, f64: f} }

// BoolValue builds a Bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// String returns the Varchar content. Panics on any other kind — callers
// must check Kind first, matching the original's as_string/as_int/as_bool
// family of narrow accessors.
func (v Value) String() string {
	if v.kind != KindVarchar {
		panic(fmt.Sprintf("codec: value is not a Varchar (kind=%d)", v.kind))
	}
	return v.str
}

// Int32 returns the Int32 payload. Panics if v is not an Int32.
func (v Value) Int32() int32 {
	if v.kind != KindInt32 {
		panic(fmt.Sprintf("codec: value is not an Int32 (kind=%d)", v.kind))
	}
	return v.i32
}

// Float64 returns the Float64 payload. Panics if v is not a Float64.
func (v Value) Float64() float64 {
	if v.kind != KindFloat64 {
		panic(fmt.Sprintf("codec: value is not a Float64 (kind=%d)", v.kind))
	}
	return v.f64
}

// Bool returns the Bool payload. Panics if v is not a Bool.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		panic(fmt.Sprintf("codec: value is not a Bool (kind=%d)", v.kind))
	}
	return v.b
}

// Equal reports structural equality. Float64 NaN is not equal to itself,
// following IEEE-754 semantics — see Key for the hash-consistent view.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindVarchar:
		return v.str == o.str
	case KindInt32:
		return v.i32 == o.i32
	case KindFloat64:
		return v.f64 == o.f64
	case KindBool:
		return v.b == o.b
	default: // Null
		return true
	}
}

// Key returns a comparable representation of v suitable for use as a Go
// map key. Float64 is keyed on its bit pattern, so NaNs with the same
// bit pattern share a key (consistent hashing) even though Equal treats
// no NaN as equal to anything, itself included; NaNs whose bit patterns
// differ get different keys — the same tension the original Rust Hash
// impl notes and leaves open.
func (v Value) Key() any {
	switch v.kind {
	case KindVarchar:
		return v.str
	case KindInt32:
		return v.i32
	case KindFloat64:
		return math.Float64bits(v.f64)
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Encode serializes v into its fixed-width wire form.
func (v Value) Encode() []byte {
	switch v.kind {
	case KindNull:
		return []byte{byte(KindNull), 0}
	case KindVarchar:
		buf := make([]byte, 2+MaxVarcharLen)
		buf[0] = byte(KindVarchar)
		buf[1] = byte(len(v.str))
		copy(buf[2:], v.str)
		return buf
	case KindInt32:
		buf := make([]byte, Int32Width)
		buf[0] = byte(KindInt32)
		binary.LittleEndian.PutUint32(buf[1:], uint32(v.i32))
		return buf
	case KindFloat64:
		buf := make([]byte, 9)
		buf[0] = byte(KindFloat64)
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v.f64))
		return buf
	case KindBool:
		b := byte(0)
		if v.b {
			b = 1
		}
		return []byte{byte(KindBool), b}
	default:
		panic(fmt.Sprintf("codec: unknown kind %d", v.kind))
	}
}

// Decode reads one Value starting at buf[*offset], advancing offset by
// exactly the value's encoded width.
func Decode(buf []byte, offset *int) (Value, error) {
	if *offset >= len(buf) {
		return Value{}, fmt.Errorf("%w: tag byte out of range at offset %d", ErrMalformedBuffer, *offset)
	}
	tag := Kind(buf[*offset])
	*offset++

	switch tag {
	case KindNull:
		if *offset >= len(buf) {
			return Value{}, fmt.Errorf("%w: null payload truncated", ErrMalformedBuffer)
		}
		*offset++
		return Null, nil

	case KindVarchar:
		if *offset+1 > len(buf) {
			return Value{}, fmt.Errorf("%w: varchar length byte truncated", ErrMalformedBuffer)
		}
		l := int(buf[*offset])
		*offset++
		if l > MaxVarcharLen || *offset+MaxVarcharLen > len(buf) {
			return Value{}, fmt.Errorf("%w: varchar payload truncated", ErrMalformedBuffer)
		}
		raw := buf[*offset : *offset+l]
		*offset += MaxVarcharLen
		if !utf8.Valid(raw) {
			return Value{}, fmt.Errorf("%w: varchar is not valid UTF-8", ErrMalformedBuffer)
		}
		return VarcharValue(string(raw)), nil

	case KindInt32:
		if *offset+4 > len(buf) {
			return Value{}, fmt.Errorf("%w: int32 payload truncated", ErrMalformedBuffer)
		}
		n := int32(binary.LittleEndian.Uint32(buf[*offset:]))
		*offset += 4
		return Int32Value(n), nil

	case KindFloat64:
		if *offset+8 > len(buf) {
			return Value{}, fmt.Errorf("%w: float64 payload truncated", ErrMalformedBuffer)
		}
		bits := binary.LittleEndian.Uint64(buf[*offset:])
		*offset += 8
		return Float64Value(math.Float64frombits(bits)), nil

	case KindBool:
		if *offset >= len(buf) {
			return Value{}, fmt.Errorf("%w: bool payload truncated", ErrMalformedBuffer)
		}
		b := buf[*offset] != 0
		*offset++
		return BoolValue(b), nil

	default:
		return Value{}, fmt.Errorf("%w: unrecognized tag 0x%02x at offset %d", ErrMalformedBuffer, byte(tag), *offset-1)
	}
}
