// Package builtins exposes the entry operators as members of a shared
// namespace record, the way a host would hang them off its object namespace.
// Members are installed writable and configurable but non-enumerable, so
// callers can override or delete them freely and enumerating the namespace
// never reveals them.
package builtins

import (
	"recordmap/pkg/common_errors"
	"recordmap/pkg/record"
	"recordmap/pkg/utils/syncutils"

	"golang.org/x/xerrors"
)

// Func is the call shape of a namespace member.
type Func func(args ...interface{}) (interface{}, error)

const builtinAttrs = record.AttrWritable | record.AttrConfigurable

var (
	nsMu syncutils.Mutex
	ns   *record.Record
)

// Namespace returns the shared namespace record, building it on first use.
func Namespace() *record.Record {
	nsMu.Lock()
	defer nsMu.Unlock()
	if ns == nil {
		ns = buildNamespace()
	}
	return ns
}

// Install adds or replaces a namespace member. Overriding an existing builtin
// is allowed by contract.
func Install(name string, fn Func) error {
	nsMu.Lock()
	defer nsMu.Unlock()
	if ns == nil {
		ns = buildNamespace()
	}
	return ns.SetWithAttrs(name, fn, builtinAttrs)
}

// Lookup fetches a member as a Func.
func Lookup(name string) (Func, bool) {
	nsMu.Lock()
	defer nsMu.Unlock()
	if ns == nil {
		ns = buildNamespace()
	}
	v, ok := ns.Get(name).Take()
	if !ok {
		return nil, false
	}
	fn, ok := v.(Func)
	return fn, ok
}

func buildNamespace() *record.Record {
	r := record.New()
	for name, fn := range map[string]Func{
		"mapEntries":    mapEntriesBuiltin,
		"mapValues":     mapValuesBuiltin,
		"mapKeys":       mapKeysBuiltin,
		"filterEntries": filterEntriesBuiltin,
		"fromEntries":   fromEntriesBuiltin,
		"entries":       entriesBuiltin,
	} {
		err := r.SetWithAttrs(name, fn, builtinAttrs)
		if err != nil {
			panic(err)
		}
	}
	return r
}

func sourceArg(args []interface{}) (*record.Record, error) {
	if len(args) < 1 {
		return nil, xerrors.Errorf("missing source argument: %w", common_errors.ErrNilSource)
	}
	return record.Of(args[0])
}

func mapperArg(args []interface{}) (record.EntryMapper, error) {
	if len(args) < 2 {
		return nil, xerrors.Errorf("missing mapper argument: %w", common_errors.ErrNotCallable)
	}
	switch fn := args[1].(type) {
	case record.EntryMapper:
		return fn, nil
	case func(record.Entry) (record.RawEntry, error):
		return record.EntryMapperFunc(fn), nil
	default:
		return nil, xerrors.Errorf("mapper of type %T: %w", args[1], common_errors.ErrNotCallable)
	}
}

func mapEntriesBuiltin(args ...interface{}) (interface{}, error) {
	mapper, err := mapperArg(args)
	if err != nil {
		return nil, err
	}
	src, err := sourceArg(args)
	if err != nil {
		return nil, err
	}
	return record.MapEntries(src, mapper)
}

func mapValuesBuiltin(args ...interface{}) (interface{}, error) {
	if len(args) < 2 {
		return nil, xerrors.Errorf("missing mapper argument: %w", common_errors.ErrNotCallable)
	}
	var mapper record.ValueMapper
	switch fn := args[1].(type) {
	case record.ValueMapper:
		mapper = fn
	case func(string, interface{}) (interface{}, error):
		mapper = record.ValueMapperFunc(fn)
	default:
		return nil, xerrors.Errorf("mapper of type %T: %w", args[1], common_errors.ErrNotCallable)
	}
	src, err := sourceArg(args)
	if err != nil {
		return nil, err
	}
	return record.MapValues(src, mapper)
}

func mapKeysBuiltin(args ...interface{}) (interface{}, error) {
	if len(args) < 2 {
		return nil, xerrors.Errorf("missing selector argument: %w", common_errors.ErrNotCallable)
	}
	var selector record.KeySelector
	switch fn := args[1].(type) {
	case record.KeySelector:
		selector = fn
	case func(string, interface{}) (interface{}, error):
		selector = record.KeySelectorFunc(fn)
	default:
		return nil, xerrors.Errorf("selector of type %T: %w", args[1], common_errors.ErrNotCallable)
	}
	src, err := sourceArg(args)
	if err != nil {
		return nil, err
	}
	return record.MapKeys(src, selector)
}

func filterEntriesBuiltin(args ...interface{}) (interface{}, error) {
	if len(args) < 2 {
		return nil, xerrors.Errorf("missing predicate argument: %w", common_errors.ErrNotCallable)
	}
	var pred record.Predicate
	switch fn := args[1].(type) {
	case record.Predicate:
		pred = fn
	case func(record.Entry) (bool, error):
		pred = record.PredicateFunc(fn)
	default:
		return nil, xerrors.Errorf("predicate of type %T: %w", args[1], common_errors.ErrNotCallable)
	}
	src, err := sourceArg(args)
	if err != nil {
		return nil, err
	}
	return record.FilterEntries(src, pred)
}

func fromEntriesBuiltin(args ...interface{}) (interface{}, error) {
	if len(args) < 1 {
		return nil, xerrors.Errorf("missing pairs argument: %w", common_errors.ErrNilSource)
	}
	pairs, ok := args[0].([]interface{})
	if !ok {
		return nil, xerrors.Errorf("pairs of type %T: %w", args[0], common_errors.ErrEntryShape)
	}
	return record.FromPairs(pairs)
}

func entriesBuiltin(args ...interface{}) (interface{}, error) {
	src, err := sourceArg(args)
	if err != nil {
		return nil, err
	}
	return src.Entries(), nil
}
