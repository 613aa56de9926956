package record

import (
	"recordmap/pkg/common_errors"
	"recordmap/pkg/debug"

	"golang.org/x/xerrors"
)

type EntryMapper interface {
	MapEntry(e Entry) (RawEntry, error)
}
type EntryMapperFunc func(e Entry) (RawEntry, error)

var _ = EntryMapper(EntryMapperFunc(nil))

func (fn EntryMapperFunc) MapEntry(e Entry) (RawEntry, error) {
	return fn(e)
}

type ValueMapper interface {
	MapValue(key string, value interface{}) (interface{}, error)
}
type ValueMapperFunc func(key string, value interface{}) (interface{}, error)

var _ = ValueMapper(ValueMapperFunc(nil))

func (fn ValueMapperFunc) MapValue(key string, value interface{}) (interface{}, error) {
	return fn(key, value)
}

type KeySelector interface {
	SelectKey(key string, value interface{}) (interface{}, error)
}
type KeySelectorFunc func(key string, value interface{}) (interface{}, error)

var _ = KeySelector(KeySelectorFunc(nil))

func (fn KeySelectorFunc) SelectKey(key string, value interface{}) (interface{}, error) {
	return fn(key, value)
}

type Predicate interface {
	Assert(e Entry) (bool, error)
}
type PredicateFunc func(e Entry) (bool, error)

var _ = Predicate(PredicateFunc(nil))

func (fn PredicateFunc) Assert(e Entry) (bool, error) {
	return fn(e)
}

// MapEntries visits source's own enumerable string-keyed entries in
// enumeration order, invokes mapper once per entry, and collects the returned
// entries into a fresh record with from-entries semantics: on a key collision
// the later entry overwrites the value but not the position of the earlier
// one. The result never shares identity, prototype, or entry attributes with
// source; source is not mutated. A mapper failure or a malformed mapper
// result aborts the whole call and no partial result is observable.
func MapEntries(source *Record, mapper EntryMapper) (*Record, error) {
	if source == nil {
		return nil, xerrors.Errorf("map entries: %w", common_errors.ErrNilSource)
	}
	if mapper == nil {
		return nil, xerrors.Errorf("map entries: %w", common_errors.ErrNotCallable)
	}
	out := New()
	// Snapshot before mapping: a mapper may mutate source (side effects are
	// allowed), and every entry present at call time must be visited exactly
	// once.
	for _, e := range source.Entries() {
		raw, err := mapper.MapEntry(e)
		if err != nil {
			return nil, err
		}
		mapped, err := CoerceEntry(raw)
		if err != nil {
			return nil, xerrors.Errorf("entry %q: %w", e.Key, err)
		}
		err = out.Set(mapped.Key, mapped.Value)
		debug.Assert(err == nil, "set on a fresh record cannot fail")
	}
	return out, nil
}

// MapEntriesOf is MapEntries after coercing source to a record, so it is
// defined for maps, slices and other non-record inputs the way entry
// enumeration is.
func MapEntriesOf(source interface{}, mapper EntryMapper) (*Record, error) {
	rec, err := Of(source)
	if err != nil {
		return nil, err
	}
	return MapEntries(rec, mapper)
}

// MapValues maps each visited entry's value, keeping its key. The key is
// passed to the mapper for context.
func MapValues(source *Record, mapper ValueMapper) (*Record, error) {
	if source == nil {
		return nil, xerrors.Errorf("map values: %w", common_errors.ErrNilSource)
	}
	if mapper == nil {
		return nil, xerrors.Errorf("map values: %w", common_errors.ErrNotCallable)
	}
	return MapEntries(source, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		newV, err := mapper.MapValue(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		return Entry{Key: e.Key, Value: newV}, nil
	}))
}

// MapKeys remaps each visited entry's key, keeping its value. The selected key
// is coerced to a string; collisions are last-write-wins.
func MapKeys(source *Record, selector KeySelector) (*Record, error) {
	if source == nil {
		return nil, xerrors.Errorf("map keys: %w", common_errors.ErrNilSource)
	}
	if selector == nil {
		return nil, xerrors.Errorf("map keys: %w", common_errors.ErrNotCallable)
	}
	return MapEntries(source, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		newK, err := selector.SelectKey(e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		return Pair(newK, e.Value), nil
	}))
}

// FilterEntries keeps the visited entries for which pred holds.
func FilterEntries(source *Record, pred Predicate) (*Record, error) {
	if source == nil {
		return nil, xerrors.Errorf("filter entries: %w", common_errors.ErrNilSource)
	}
	if pred == nil {
		return nil, xerrors.Errorf("filter entries: %w", common_errors.ErrNotCallable)
	}
	out := New()
	// Same snapshot rule as MapEntries: the predicate may mutate source.
	for _, e := range source.Entries() {
		ok, err := pred.Assert(e)
		if err != nil {
			return nil, err
		}
		if ok {
			err = out.Set(e.Key, e.Value)
			debug.Assert(err == nil, "set on a fresh record cannot fail")
		}
	}
	return out, nil
}
