package common_errors

import (
	"golang.org/x/xerrors"
)

var (
	ErrNilSource        = xerrors.New("source record is nil or not coercible to a record")
	ErrNotCallable      = xerrors.New("mapper is nil or not callable")
	ErrEntryShape       = xerrors.New("mapper result is not a 2-element entry")
	ErrReadOnlyEntry    = xerrors.New("entry is not writable")
	ErrNotConfigurable  = xerrors.New("entry is not configurable")
	ErrBadSerdeFormat   = xerrors.New("unrecognized serde format")
	ErrNotJSONObject    = xerrors.New("input is not a JSON object")
	ErrUnknownTransform = xerrors.New("unknown transform name")
)

func IsNilSourceError(err error) bool {
	return xerrors.Is(err, ErrNilSource)
}

func IsNotCallableError(err error) bool {
	return xerrors.Is(err, ErrNotCallable)
}

func IsEntryShapeError(err error) bool {
	return xerrors.Is(err, ErrEntryShape)
}
