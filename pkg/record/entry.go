package record

import (
	"fmt"
	"reflect"

	"recordmap/pkg/common_errors"
	"recordmap/pkg/rckey"

	"golang.org/x/xerrors"
)

// Entry is one key/value member of a record.
type Entry struct {
	Key   string
	Value interface{}
}

var _ = fmt.Stringer(Entry{})

func (e Entry) String() string {
	return fmt.Sprintf("Entry{Key: %s, Value: %v}", e.Key, e.Value)
}

// RawEntry is whatever a mapper returned. It is validated by shape and
// destructured by CoerceEntry before the result record sees it.
type RawEntry = interface{}

// CoerceEntry checks that raw is an indexable sequence of length >= 2 whose
// first element coerces to a string key, and destructures it. The check is
// explicit so a malformed mapper result surfaces as a shape error rather than
// an incidental panic.
func CoerceEntry(raw RawEntry) (Entry, error) {
	switch p := raw.(type) {
	case Entry:
		return p, nil
	case *Entry:
		if p == nil {
			return Entry{}, xerrors.Errorf("nil entry: %w", common_errors.ErrEntryShape)
		}
		return *p, nil
	case [2]interface{}:
		return coercePair(p[0], p[1])
	case []interface{}:
		if len(p) < 2 {
			return Entry{}, xerrors.Errorf("sequence of length %d: %w", len(p), common_errors.ErrEntryShape)
		}
		return coercePair(p[0], p[1])
	case nil:
		return Entry{}, xerrors.Errorf("nil result: %w", common_errors.ErrEntryShape)
	}
	rv := reflect.ValueOf(raw)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return Entry{}, xerrors.Errorf("result of type %T: %w", raw, common_errors.ErrEntryShape)
	}
	if rv.Len() < 2 {
		return Entry{}, xerrors.Errorf("sequence of length %d: %w", rv.Len(), common_errors.ErrEntryShape)
	}
	return coercePair(rv.Index(0).Interface(), rv.Index(1).Interface())
}

func coercePair(rawKey, val interface{}) (Entry, error) {
	key, err := rckey.Coerce(rawKey)
	if err != nil {
		return Entry{}, xerrors.Errorf("entry key %v (%v): %w", rawKey, err, common_errors.ErrEntryShape)
	}
	return Entry{Key: key, Value: val}, nil
}

// Pair is a convenience constructor for mapper results.
func Pair(key, val interface{}) [2]interface{} {
	return [2]interface{}{key, val}
}
