package record

import (
	"bytes"
	"encoding/json"

	"recordmap/pkg/common_errors"

	"github.com/gammazero/deque"
	"golang.org/x/xerrors"
)

// RecordJSONSerdeG encodes a record as a JSON object with keys in enumeration
// order and decodes a JSON object into a record preserving the textual key
// order. Nested objects become nested records.
type RecordJSONSerdeG struct{}

var _ = SerdeG[*Record](RecordJSONSerdeG{})

func (s RecordJSONSerdeG) Encode(r *Record) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := encodeJSONValue(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s RecordJSONSerdeG) Decode(data []byte) (*Record, error) {
	if data == nil {
		return nil, nil
	}
	return decodeJSONRecord(data)
}

type RecordJSONSerde struct{}

var _ = Serde(RecordJSONSerde{})

func (s RecordJSONSerde) Encode(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	r, ok := v.(*Record)
	if !ok {
		return nil, xerrors.Errorf("expected *Record, got %T", v)
	}
	return RecordJSONSerdeG{}.Encode(r)
}

func (s RecordJSONSerde) Decode(data []byte) (interface{}, error) {
	return RecordJSONSerdeG{}.Decode(data)
}

func encodeJSONValue(buf *bytes.Buffer, v interface{}) error {
	switch t := v.(type) {
	case *Record:
		buf.WriteByte('{')
		first := true
		var encErr error
		t.IterateCb(func(e Entry) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			kb, err := json.Marshal(e.Key)
			if err != nil {
				encErr = err
				return false
			}
			buf.Write(kb)
			buf.WriteByte(':')
			encErr = encodeJSONValue(buf, e.Value)
			return encErr == nil
		})
		if encErr != nil {
			return encErr
		}
		buf.WriteByte('}')
		return nil
	case []interface{}:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSONValue(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}

// jsonFrame is one open container during decoding. rec is set for object
// frames, arr accumulates for array frames.
type jsonFrame struct {
	rec    *Record
	arr    []interface{}
	key    string
	isArr  bool
	hasKey bool
}

func (fr *jsonFrame) attach(v interface{}) {
	if fr.isArr {
		fr.arr = append(fr.arr, v)
	} else {
		_ = fr.rec.Set(fr.key, v)
		fr.hasKey = false
	}
}

func decodeJSONRecord(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, xerrors.Errorf("leading token %v: %w", tok, common_errors.ErrNotJSONObject)
	}
	stack := deque.New[*jsonFrame]()
	stack.PushBack(&jsonFrame{rec: New()})
	for {
		fr := stack.Back()
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack.PushBack(&jsonFrame{rec: New()})
			case '[':
				stack.PushBack(&jsonFrame{isArr: true})
			case '}', ']':
				done := stack.PopBack()
				var v interface{}
				if done.isArr {
					v = done.arr
				} else {
					v = done.rec
				}
				if stack.Len() == 0 {
					return done.rec, nil
				}
				stack.Back().attach(v)
			}
		case string:
			if !fr.isArr && !fr.hasKey {
				fr.key = t
				fr.hasKey = true
			} else {
				fr.attach(t)
			}
		case json.Number:
			fr.attach(numberValue(t))
		case bool:
			fr.attach(t)
		case nil:
			fr.attach(nil)
		}
	}
}

// numberValue keeps integral JSON numbers as int64 so that keys coerced from
// decoded values stay in canonical integer form.
func numberValue(n json.Number) interface{} {
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return f
}
