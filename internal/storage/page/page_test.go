package page

import (
	"errors"
	"testing"

	"github.com/relcore/storage/internal/storage/codec"
)

func newTestHeader() Header {
	return Header{Type: TypeData, PageNumber: 1, NextPage: -1}
}

func TestAppendTuple_SingleRoundTrip(t *testing.T) {
	p := New(newTestHeader())

	id, err := p.AppendTuple([]codec.Value{codec.Int32Value(42), codec.VarcharValue("hi")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id != 1 {
		t.Fatalf("got tuple id %d, want 1", id)
	}

	buf, err := p.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if len(buf) != PageSize {
		t.Fatalf("serialized page is %d bytes, want %d", len(buf), PageSize)
	}

	got, err := Deserialize(buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	tuples := got.Tuples()
	if len(tuples) != 1 {
		t.Fatalf("got %d tuples, want 1", len(tuples))
	}
	if tuples[0].ID != 1 {
		t.Fatalf("got tuple id %d, want 1", tuples[0].ID)
	}
	if tuples[0].Data[0].Int32() != 42 || tuples[0].Data[1].String() != "hi" {
		t.Fatalf("round-tripped tuple data mismatch: %+v", tuples[0].Data)
	}
}

func TestAppendTuple_MultipleRecoveredInAscendingOrder(t *testing.T) {
	p := New(newTestHeader())

	for i := int32(1); i <= 5; i++ {
		if _, err := p.AppendTuple([]codec.Value{codec.Int32Value(i * 10)}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	buf, err := p.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := Deserialize(buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	tuples := got.Tuples()
	if len(tuples) != 5 {
		t.Fatalf("got %d tuples, want 5", len(tuples))
	}
	for i, tup := range tuples {
		wantID := int32(i + 1)
		if tup.ID != wantID {
			t.Fatalf("tuple[%d].ID = %d, want %d (not ascending by tuple_id)", i, tup.ID, wantID)
		}
		if tup.Data[0].Int32() != wantID*10 {
			t.Fatalf("tuple[%d] data = %d, want %d", i, tup.Data[0].Int32(), wantID*10)
		}
	}
}

func TestAppendTuple_FreeSpaceNeverNegative(t *testing.T) {
	p := New(newTestHeader())
	for {
		_, err := p.AppendTuple([]codec.Value{codec.VarcharValue("xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")})
		if err != nil {
			break
		}
		if p.Header.FreeSpace < 0 {
			t.Fatalf("free space went negative: %d", p.Header.FreeSpace)
		}
	}
	if p.Header.FreeSpace < 0 {
		t.Fatalf("free space went negative: %d", p.Header.FreeSpace)
	}
}

func TestAppendTuple_PageFullReturnsErrPageFull(t *testing.T) {
	p := New(newTestHeader())
	var err error
	for i := 0; i < 10000; i++ {
		_, err = p.AppendTuple([]codec.Value{codec.VarcharValue("xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")})
		if err != nil {
			break
		}
	}
	if err == nil {
		t.Fatal("expected page to eventually fill up")
	}
	if !isPageFull(err) {
		t.Fatalf("got error %v, want ErrPageFull", err)
	}
}

func isPageFull(err error) bool {
	for err != nil {
		if err == ErrPageFull {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return false
}

func TestDeserialize_WrongSizeBufferIsMalformed(t *testing.T) {
	_, err := Deserialize(make([]byte, 10))
	if !errors.Is(err, codec.ErrMalformedBuffer) {
		t.Fatalf("got %v, want ErrMalformedBuffer on undersized buffer", err)
	}
}

func TestDeserialize_EmptyPageHasNoTuples(t *testing.T) {
	p := New(newTestHeader())
	buf, err := p.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := Deserialize(buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if len(got.Tuples()) != 0 {
		t.Fatalf("expected no tuples, got %d", len(got.Tuples()))
	}
	if got.LastTupleID() != 0 {
		t.Fatalf("expected last tuple id 0, got %d", got.LastTupleID())
	}
}
