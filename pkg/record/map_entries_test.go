package record

import (
	"testing"

	"recordmap/pkg/common_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

var identity = EntryMapperFunc(func(e Entry) (RawEntry, error) {
	return e, nil
})

func TestMapEntriesIdentity(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("b", 1))
	require.NoError(t, src.Set("a", 2))
	src.SetProto(FromEntries([]Entry{{Key: "inherited", Value: 0}}))

	out, err := MapEntries(src, identity)
	require.NoError(t, err)
	assert.NotSame(t, src, out)
	assert.Nil(t, out.Proto())
	assert.Equal(t, src.Entries(), out.Entries())
}

func TestMapEntriesOrder(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("b", 1))
	require.NoError(t, src.Set("a", 2))
	require.NoError(t, src.Set("2", 3))
	require.NoError(t, src.Set("1", 4))

	var visited []string
	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		visited = append(visited, e.Key)
		return e, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "b", "a"}, visited)
	assert.Equal(t, []string{"1", "2", "b", "a"}, out.Keys())
}

func TestMapEntriesKeyCollision(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("a", 1))
	require.NoError(t, src.Set("b", 2))

	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		return Pair("x", e.Value), nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "x", Value: 2}}, out.Entries(), "last value wins")
}

func TestMapEntriesFlip(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("a", 1))
	require.NoError(t, src.Set("b", 2))

	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		return Pair(e.Value, e.Key), nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "1", Value: "a"}, {Key: "2", Value: "b"}}, out.Entries())
}

func TestMapEntriesSkipsHiddenSymbolsInherited(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("own", 1))
	require.NoError(t, src.SetWithAttrs("hidden", 2, AttrWritable|AttrConfigurable))
	src.SetSymbol(NewSymbol("sym"), 3)
	src.SetProto(FromEntries([]Entry{{Key: "inherited", Value: 4}}))

	var visited []string
	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		visited = append(visited, e.Key)
		return e, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"own"}, visited)
	assert.Equal(t, []string{"own"}, out.Keys())
}

func TestMapEntriesFailurePropagation(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("a", 1))
	require.NoError(t, src.Set("b", 2))
	require.NoError(t, src.Set("c", 3))

	boom := xerrors.New("boom")
	calls := 0
	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return e, nil
	}))
	assert.Nil(t, out)
	assert.True(t, xerrors.Is(err, boom))
	assert.Equal(t, 2, calls, "enumeration stops at the first failure")
	assert.Equal(t, []string{"a", "b", "c"}, src.Keys(), "source is untouched")
}

func TestMapEntriesBadShapeAborts(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("a", 1))
	require.NoError(t, src.Set("b", 2))

	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		if e.Key == "b" {
			return "not an entry", nil
		}
		return e, nil
	}))
	assert.Nil(t, out)
	assert.True(t, common_errors.IsEntryShapeError(err))
}

func TestMapEntriesEmptySource(t *testing.T) {
	calls := 0
	out, err := MapEntries(New(), EntryMapperFunc(func(e Entry) (RawEntry, error) {
		calls++
		return e, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, 0, calls)
}

func TestMapEntriesNilArgs(t *testing.T) {
	_, err := MapEntries(nil, identity)
	assert.True(t, common_errors.IsNilSourceError(err))

	_, err = MapEntries(New(), nil)
	assert.True(t, common_errors.IsNotCallableError(err))
}

func TestMapEntriesResultFullyMutable(t *testing.T) {
	src := New()
	require.NoError(t, src.SetWithAttrs("ro", 1, AttrEnumerable))

	out, err := MapEntries(src, identity)
	require.NoError(t, err)
	attrs, ok := out.Attrs("ro")
	require.True(t, ok)
	assert.Equal(t, DefaultAttrs, attrs)
	require.NoError(t, out.Set("ro", 2))
	require.NoError(t, out.Delete("ro"))
}

func TestMapEntriesMapperMutatesSource(t *testing.T) {
	src := New()
	require.NoError(t, src.Set("a", 1))
	require.NoError(t, src.Set("b", 2))
	require.NoError(t, src.Set("c", 3))

	// A mapper deleting its own entry must not cut enumeration short: every
	// entry present at call time is visited exactly once.
	var visited []string
	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		visited = append(visited, e.Key)
		require.NoError(t, src.Delete(e.Key))
		return e, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, visited)
	assert.Equal(t, []string{"a", "b", "c"}, out.Keys())
	assert.Equal(t, 0, src.Len())

	// Inserting array-index keys mid-mapping must not disturb the visit
	// either; the added keys are simply not part of this call's snapshot.
	src = FromEntries([]Entry{{Key: "x", Value: 1}, {Key: "y", Value: 2}})
	visited = nil
	out, err = MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		visited = append(visited, e.Key)
		require.NoError(t, src.Set("0", "added"))
		return e, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, visited)
	assert.Equal(t, []string{"x", "y"}, out.Keys())
	assert.Equal(t, []string{"0", "x", "y"}, src.Keys())
}

func TestFilterEntriesPredicateMutatesSource(t *testing.T) {
	src := FromEntries([]Entry{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}})
	out, err := FilterEntries(src, PredicateFunc(func(e Entry) (bool, error) {
		require.NoError(t, src.Delete(e.Key))
		return true, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out.Keys())
	assert.Equal(t, 0, src.Len())
}

func TestMapEntriesReentrant(t *testing.T) {
	inner := FromEntries([]Entry{{Key: "i", Value: 1}})
	src := FromEntries([]Entry{{Key: "o", Value: 2}})

	out, err := MapEntries(src, EntryMapperFunc(func(e Entry) (RawEntry, error) {
		nested, err := MapEntries(inner, identity)
		if err != nil {
			return nil, err
		}
		return Entry{Key: e.Key, Value: nested}, nil
	}))
	require.NoError(t, err)
	nested := out.Get("o").Unwrap().(*Record)
	assert.Equal(t, 1, nested.Get("i").Unwrap())
}

func TestMapEntriesOf(t *testing.T) {
	out, err := MapEntriesOf(map[string]interface{}{"a": 1}, identity)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "a", Value: 1}}, out.Entries())

	out, err = MapEntriesOf(42, identity)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())

	_, err = MapEntriesOf(nil, identity)
	assert.True(t, common_errors.IsNilSourceError(err))
}

func TestMapValues(t *testing.T) {
	src := FromEntries([]Entry{{Key: "a", Value: 1}, {Key: "b", Value: 2}})
	out, err := MapValues(src, ValueMapperFunc(func(key string, value interface{}) (interface{}, error) {
		return value.(int) * 10, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "a", Value: 10}, {Key: "b", Value: 20}}, out.Entries())
}

func TestMapKeys(t *testing.T) {
	src := FromEntries([]Entry{{Key: "a", Value: 1}, {Key: "b", Value: 2}})
	out, err := MapKeys(src, KeySelectorFunc(func(key string, value interface{}) (interface{}, error) {
		return key + key, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "aa", Value: 1}, {Key: "bb", Value: 2}}, out.Entries())
}

func TestFilterEntries(t *testing.T) {
	src := FromEntries([]Entry{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}})
	out, err := FilterEntries(src, PredicateFunc(func(e Entry) (bool, error) {
		return e.Value.(int)%2 == 1, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, out.Keys())

	boom := xerrors.New("boom")
	out, err = FilterEntries(src, PredicateFunc(func(e Entry) (bool, error) {
		return false, boom
	}))
	assert.Nil(t, out)
	assert.True(t, xerrors.Is(err, boom))
}
