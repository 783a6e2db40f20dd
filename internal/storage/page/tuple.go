package page

import "github.com/relcore/storage/internal/storage/codec"

// Tuple is an identifier plus an ordered list of typed values.
type Tuple struct {
	ID   int32
	Data []codec.Value
}

func (t Tuple) Encode() []byte {
	out := codec.Int32Value(t.ID).Encode()
	out = append(out, codec.EncodeList(t.Data)...)
	return out
}

func decodeTuple(buf []byte, offset *int) (Tuple, error) {
	id, err := codec.Decode(buf, offset)
	if err != nil {
		return Tuple{}, err
	}
	data, err := codec.DecodeList(buf, offset, codec.ValueDecoder)
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{ID: id.Int32(), Data: data}, nil
}
