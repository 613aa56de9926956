package record

import (
	"fmt"
	"strconv"

	"recordmap/pkg/common_errors"
	"recordmap/pkg/data_structure/linkedhashmap"
	"recordmap/pkg/optional"
	"recordmap/pkg/rckey"

	"github.com/google/btree"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// Attrs are the visibility/mutability flags of a single entry.
type Attrs uint8

const (
	AttrWritable Attrs = 1 << iota
	AttrEnumerable
	AttrConfigurable
)

const DefaultAttrs = AttrWritable | AttrEnumerable | AttrConfigurable

// Symbol is an identity-keyed member name. Symbol-keyed members live outside
// the string-keyed entry table and are invisible to enumeration and to every
// entry operator.
type Symbol struct {
	desc string
}

func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

func (s *Symbol) Description() string {
	return s.desc
}

var _ = fmt.Stringer(&Symbol{})

func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.desc)
}

type entrySlot struct {
	val   interface{}
	attrs Attrs
}

// Record is an ordered mapping from string keys to arbitrary values.
// Enumeration yields array-index keys in ascending numeric order first, then
// the remaining keys in insertion order. Entries carry attribute flags, a
// record may link to a prototype record, and symbol-keyed members are held in
// a side table; none of those are visible to enumeration.
type Record struct {
	entries *linkedhashmap.LinkedHashMap[string, entrySlot]
	idxKeys *btree.BTreeG[uint32]
	symbols map[*Symbol]interface{}
	proto   *Record
}

func New() *Record {
	return &Record{
		entries: linkedhashmap.New[string, entrySlot](),
		idxKeys: btree.NewG(2, btree.LessFunc[uint32](func(a, b uint32) bool {
			return a < b
		})),
	}
}

// Of coerces a value into a record the way entry enumeration treats non-record
// inputs: records pass through, maps and slices materialize as entries, other
// non-nil primitives box to a record with no own entries, nil is an error.
func Of(v interface{}) (*Record, error) {
	switch s := v.(type) {
	case nil:
		return nil, xerrors.Errorf("cannot enumerate entries of nil: %w", common_errors.ErrNilSource)
	case *Record:
		if s == nil {
			return nil, xerrors.Errorf("cannot enumerate entries of nil record: %w", common_errors.ErrNilSource)
		}
		return s, nil
	case map[string]interface{}:
		return FromMap(s), nil
	case []interface{}:
		r := New()
		for i, el := range s {
			_ = r.Set(strconv.Itoa(i), el)
		}
		return r, nil
	case string:
		r := New()
		for i, c := range []rune(s) {
			_ = r.Set(strconv.Itoa(i), string(c))
		}
		return r, nil
	default:
		// Non-nil primitives box to a wrapper with no own enumerable entries.
		return New(), nil
	}
}

// Set adds or updates an own entry with default attributes for new keys.
// Updating keeps the key's enumeration position and existing attributes.
func (r *Record) Set(key string, v interface{}) error {
	if slot, ok := r.entries.Get(key); ok {
		if slot.attrs&AttrWritable == 0 {
			return xerrors.Errorf("set %q: %w", key, common_errors.ErrReadOnlyEntry)
		}
		r.entries.Put(key, entrySlot{val: v, attrs: slot.attrs})
		return nil
	}
	r.entries.Put(key, entrySlot{val: v, attrs: DefaultAttrs})
	if idx, ok := rckey.ArrayIndex(key); ok {
		r.idxKeys.ReplaceOrInsert(idx)
	}
	return nil
}

// SetWithAttrs defines or redefines an entry with explicit attributes.
// Redefining a non-configurable entry fails unless the attributes are
// unchanged and the entry is writable.
func (r *Record) SetWithAttrs(key string, v interface{}, attrs Attrs) error {
	if slot, ok := r.entries.Get(key); ok {
		if slot.attrs&AttrConfigurable == 0 {
			if slot.attrs != attrs {
				return xerrors.Errorf("redefine %q: %w", key, common_errors.ErrNotConfigurable)
			}
			if slot.attrs&AttrWritable == 0 {
				return xerrors.Errorf("redefine %q: %w", key, common_errors.ErrReadOnlyEntry)
			}
		}
		r.entries.Put(key, entrySlot{val: v, attrs: attrs})
		return nil
	}
	r.entries.Put(key, entrySlot{val: v, attrs: attrs})
	if idx, ok := rckey.ArrayIndex(key); ok {
		r.idxKeys.ReplaceOrInsert(idx)
	}
	return nil
}

// Get looks up an own entry regardless of its enumerability.
func (r *Record) Get(key string) optional.Option[interface{}] {
	slot, ok := r.entries.Get(key)
	if !ok {
		return optional.None[interface{}]()
	}
	return optional.Some(slot.val)
}

// GetWithProto looks up key on r and then along its prototype chain.
func (r *Record) GetWithProto(key string) optional.Option[interface{}] {
	for rec := r; rec != nil; rec = rec.proto {
		if v := rec.Get(key); v.IsSome() {
			return v
		}
	}
	return optional.None[interface{}]()
}

// Delete removes an own entry. Deleting a non-configurable entry fails;
// deleting an absent key is a no-op.
func (r *Record) Delete(key string) error {
	slot, ok := r.entries.Get(key)
	if !ok {
		return nil
	}
	if slot.attrs&AttrConfigurable == 0 {
		return xerrors.Errorf("delete %q: %w", key, common_errors.ErrNotConfigurable)
	}
	r.entries.Remove(key)
	if idx, ok := rckey.ArrayIndex(key); ok {
		r.idxKeys.Delete(idx)
	}
	return nil
}

// Len counts own string-keyed entries, including non-enumerable ones.
func (r *Record) Len() int {
	return r.entries.Len()
}

func (r *Record) Attrs(key string) (Attrs, bool) {
	slot, ok := r.entries.Get(key)
	return slot.attrs, ok
}

func (r *Record) SetSymbol(sym *Symbol, v interface{}) {
	if r.symbols == nil {
		r.symbols = make(map[*Symbol]interface{})
	}
	r.symbols[sym] = v
}

func (r *Record) GetSymbol(sym *Symbol) optional.Option[interface{}] {
	v, ok := r.symbols[sym]
	if !ok {
		return optional.None[interface{}]()
	}
	return optional.Some(v)
}

func (r *Record) Proto() *Record {
	return r.proto
}

func (r *Record) SetProto(proto *Record) {
	r.proto = proto
}

// IterateCb visits the own enumerable string-keyed entries in enumeration
// order (array-index keys ascending, then insertion order) until cb returns
// false. Non-enumerable, symbol-keyed and inherited members are skipped.
func (r *Record) IterateCb(cb func(e Entry) bool) {
	cont := true
	r.idxKeys.Ascend(func(idx uint32) bool {
		key := strconv.FormatUint(uint64(idx), 10)
		slot, ok := r.entries.Get(key)
		if !ok {
			return true
		}
		if slot.attrs&AttrEnumerable == 0 {
			log.Debug().Msgf("Skipping non-enumerable entry %q", key)
			return true
		}
		cont = cb(Entry{Key: key, Value: slot.val})
		return cont
	})
	if !cont {
		return
	}
	r.entries.IterateCb(func(key string, slot entrySlot) bool {
		if rckey.IsArrayIndex(key) {
			return true
		}
		if slot.attrs&AttrEnumerable == 0 {
			log.Debug().Msgf("Skipping non-enumerable entry %q", key)
			return true
		}
		return cb(Entry{Key: key, Value: slot.val})
	})
}

// Entries snapshots the own enumerable string-keyed entries in enumeration
// order.
func (r *Record) Entries() []Entry {
	es := make([]Entry, 0, r.entries.Len())
	r.IterateCb(func(e Entry) bool {
		es = append(es, e)
		return true
	})
	return es
}

func (r *Record) Keys() []string {
	keys := make([]string, 0, r.entries.Len())
	r.IterateCb(func(e Entry) bool {
		keys = append(keys, e.Key)
		return true
	})
	return keys
}

func (r *Record) Values() []interface{} {
	vals := make([]interface{}, 0, r.entries.Len())
	r.IterateCb(func(e Entry) bool {
		vals = append(vals, e.Value)
		return true
	})
	return vals
}

// Clone copies the own enumerable string-keyed entries into a fresh record
// with default attributes and no prototype. Values are shared by reference.
func (r *Record) Clone() *Record {
	out := New()
	r.IterateCb(func(e Entry) bool {
		_ = out.Set(e.Key, e.Value)
		return true
	})
	return out
}

// FromMap materializes a plain Go map as a record. Go maps have no observable
// order, so keys are inserted sorted to keep the result deterministic.
func FromMap(m map[string]interface{}) *Record {
	r := New()
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		_ = r.Set(k, m[k])
	}
	return r
}

// FromEntries builds a record from an ordered entry sequence. A duplicate key
// takes its position from the first occurrence and its value from the last.
func FromEntries(entries []Entry) *Record {
	r := New()
	for _, e := range entries {
		_ = r.Set(e.Key, e.Value)
	}
	return r
}

// FromPairs builds a record from loosely shaped pairs, coercing keys and
// shape-checking each pair the way mapper results are checked.
func FromPairs(pairs []interface{}) (*Record, error) {
	r := New()
	for i, p := range pairs {
		e, err := CoerceEntry(p)
		if err != nil {
			return nil, xerrors.Errorf("pair %d: %w", i, err)
		}
		_ = r.Set(e.Key, e.Value)
	}
	return r, nil
}

var _ = fmt.Stringer(&Record{})

func (r *Record) String() string {
	out := "Record{"
	first := true
	r.IterateCb(func(e Entry) bool {
		if !first {
			out += ", "
		}
		first = false
		out += fmt.Sprintf("%s: %v", e.Key, e.Value)
		return true
	})
	return out + "}"
}
