package codec

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeInt32_LittleEndianLayout(t *testing.T) {
	got := Int32Value(42).Encode()
	want := []byte{0x02, 0x2A, 0x00, 0x00, 0x00}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got 0x%02x, want 0x%02x", i, got[i], want[i])
		}
	}
}

func TestDecodeInt32_AdvancesOffsetByFive(t *testing.T) {
	buf := Int32Value(42).Encode()
	offset := 0
	v, err := Decode(buf, &offset)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Kind() != KindInt32 || v.Int32() != 42 {
		t.Fatalf("got %+v, want Int32(42)", v)
	}
	if offset != 5 {
		t.Fatalf("offset advanced to %d, want 5", offset)
	}
}

func TestEncodeVarchar_PaddedToThirtyFourBytes(t *testing.T) {
	got := VarcharValue("Hi").Encode()
	if len(got) != 34 {
		t.Fatalf("length %d, want 34", len(got))
	}
	if got[0] != 0x01 || got[1] != 2 || got[2] != 'H' || got[3] != 'i' {
		t.Fatalf("unexpected header bytes: %v", got[:4])
	}
	for i := 4; i < 34; i++ {
		if got[i] != 0 {
			t.Fatalf("expected zero padding at byte %d, got %d", i, got[i])
		}
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		VarcharValue("Hello"),
		Int32Value(42),
		Float64Value(4.4849),
		BoolValue(true),
		BoolValue(false),
		Null,
		VarcharValue(""),
		Int32Value(math.MinInt32),
		Int32Value(math.MaxInt32),
		Float64Value(-1.5),
	}
	for _, v := range values {
		encoded := v.Encode()
		offset := 0
		decoded, err := Decode(encoded, &offset)
		if err != nil {
			t.Fatalf("decode %+v: %v", v, err)
		}
		if !decoded.Equal(v) {
			t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, v)
		}
		if offset != len(encoded) {
			t.Errorf("offset %d did not consume full encoding (%d bytes)", offset, len(encoded))
		}
	}
}

func TestVarcharTooLong_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for varchar exceeding max length")
		}
	}()
	big := make([]byte, MaxVarcharLen+1)
	VarcharValue(string(big))
}

func TestDecode_UnknownTagIsMalformed(t *testing.T) {
	buf := []byte{0xFF, 0x00}
	offset := 0
	_, err := Decode(buf, &offset)
	if err == nil || !errors.Is(err, ErrMalformedBuffer) {
		t.Fatalf("expected ErrMalformedBuffer, got %v", err)
	}
}

func TestDecode_ShortBufferIsMalformed(t *testing.T) {
	buf := []byte{0x02, 0x01, 0x00} // Int32 tag but only 2 payload bytes
	offset := 0
	_, err := Decode(buf, &offset)
	if err == nil || !errors.Is(err, ErrMalformedBuffer) {
		t.Fatalf("expected ErrMalformedBuffer, got %v", err)
	}
}

func TestDecode_InvalidUTF8IsMalformed(t *testing.T) {
	buf := make([]byte, 34)
	buf[0] = byte(KindVarchar)
	buf[1] = 1
	buf[2] = 0xFF // invalid UTF-8 lead byte
	offset := 0
	_, err := Decode(buf, &offset)
	if err == nil || !errors.Is(err, ErrMalformedBuffer) {
		t.Fatalf("expected ErrMalformedBuffer, got %v", err)
	}
}

func TestFloat64Key_NaNHashesConsistently(t *testing.T) {
	a := Float64Value(math.NaN())
	b := Float64Value(math.NaN())
	if a.Equal(b) {
		t.Fatal("NaN must not equal NaN under Equal")
	}
	if a.Key() != b.Key() {
		t.Fatal("two identical NaN bit patterns must hash to the same Key")
	}
}
