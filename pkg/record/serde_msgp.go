package record

import (
	"github.com/tinylib/msgp/msgp"
	"golang.org/x/xerrors"
)

// RecordMsgpSerdeG encodes a record as a msgpack map. Map encoding keeps the
// written key order on the wire, so enumeration order round-trips.
type RecordMsgpSerdeG struct{}

var _ = SerdeG[*Record](RecordMsgpSerdeG{})

func (s RecordMsgpSerdeG) Encode(r *Record) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return appendRecord(make([]byte, 0, r.Len()*16), r)
}

func (s RecordMsgpSerdeG) Decode(data []byte) (*Record, error) {
	if data == nil {
		return nil, nil
	}
	r, _, err := readRecord(data)
	return r, err
}

type RecordMsgpSerde struct{}

var _ = Serde(RecordMsgpSerde{})

func (s RecordMsgpSerde) Encode(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	r, ok := v.(*Record)
	if !ok {
		return nil, xerrors.Errorf("expected *Record, got %T", v)
	}
	return RecordMsgpSerdeG{}.Encode(r)
}

func (s RecordMsgpSerde) Decode(data []byte) (interface{}, error) {
	return RecordMsgpSerdeG{}.Decode(data)
}

func appendRecord(b []byte, r *Record) ([]byte, error) {
	es := r.Entries()
	b = msgp.AppendMapHeader(b, uint32(len(es)))
	var err error
	for _, e := range es {
		b = msgp.AppendString(b, e.Key)
		b, err = appendValue(b, e.Value)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func appendValue(b []byte, v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case *Record:
		return appendRecord(b, t)
	case []interface{}:
		b = msgp.AppendArrayHeader(b, uint32(len(t)))
		var err error
		for _, el := range t {
			b, err = appendValue(b, el)
			if err != nil {
				return nil, err
			}
		}
		return b, nil
	default:
		return msgp.AppendIntf(b, v)
	}
}

func readRecord(b []byte) (*Record, []byte, error) {
	sz, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return nil, b, err
	}
	r := New()
	for i := uint32(0); i < sz; i++ {
		var key string
		key, b, err = msgp.ReadStringBytes(b)
		if err != nil {
			return nil, b, err
		}
		var v interface{}
		v, b, err = readValue(b)
		if err != nil {
			return nil, b, err
		}
		_ = r.Set(key, v)
	}
	return r, b, nil
}

func readValue(b []byte) (interface{}, []byte, error) {
	switch msgp.NextType(b) {
	case msgp.MapType:
		r, b, err := readRecord(b)
		return r, b, err
	case msgp.ArrayType:
		sz, b, err := msgp.ReadArrayHeaderBytes(b)
		if err != nil {
			return nil, b, err
		}
		arr := make([]interface{}, 0, sz)
		for i := uint32(0); i < sz; i++ {
			var el interface{}
			el, b, err = readValue(b)
			if err != nil {
				return nil, b, err
			}
			arr = append(arr, el)
		}
		return arr, b, nil
	default:
		return msgp.ReadIntfBytes(b)
	}
}
