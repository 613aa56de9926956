package record

import (
	"recordmap/pkg/common_errors"

	"golang.org/x/xerrors"
)

type SerdeFormat uint8

const (
	JSON SerdeFormat = 0
	MSGP SerdeFormat = 1
)

func (f SerdeFormat) String() string {
	switch f {
	case JSON:
		return "JSON"
	case MSGP:
		return "MSGP"
	default:
		return "UNKNOWN"
	}
}

type Encoder interface {
	Encode(interface{}) ([]byte, error)
}

type EncoderG[V any] interface {
	Encode(v V) ([]byte, error)
}

type Decoder interface {
	Decode([]byte) (interface{}, error)
}

type DecoderG[V any] interface {
	Decode([]byte) (V, error)
}

type Serde interface {
	Encoder
	Decoder
}

type SerdeG[V any] interface {
	EncoderG[V]
	DecoderG[V]
}

func GetRecordSerdeG(format SerdeFormat) (SerdeG[*Record], error) {
	switch format {
	case JSON:
		return RecordJSONSerdeG{}, nil
	case MSGP:
		return RecordMsgpSerdeG{}, nil
	default:
		return nil, xerrors.Errorf("format %d: %w", format, common_errors.ErrBadSerdeFormat)
	}
}

func GetRecordSerde(format SerdeFormat) (Serde, error) {
	switch format {
	case JSON:
		return RecordJSONSerde{}, nil
	case MSGP:
		return RecordMsgpSerde{}, nil
	default:
		return nil, xerrors.Errorf("format %d: %w", format, common_errors.ErrBadSerdeFormat)
	}
}
