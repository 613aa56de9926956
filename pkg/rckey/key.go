package rckey

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
	"golang.org/x/xerrors"
)

// MaxArrayIndex is the largest key value treated as an array index. Keys in
// [0, MaxArrayIndex] in canonical decimal form sort numerically ahead of all
// other keys during enumeration.
const MaxArrayIndex = math.MaxUint32 - 1

var ErrKeyCoercion = xerrors.New("value is not coercible to a property key")

// Coerce converts a value into a property key string. Strings pass through
// verbatim; numeric and boolean values use their canonical decimal form so
// that an integer-valued key lands in the array-index range.
func Coerce(v interface{}) (string, error) {
	switch k := v.(type) {
	case string:
		return k, nil
	case int:
		return FormatInt(k), nil
	case int8:
		return FormatInt(k), nil
	case int16:
		return FormatInt(k), nil
	case int32:
		return FormatInt(k), nil
	case int64:
		return FormatInt(k), nil
	case uint:
		return FormatInt(k), nil
	case uint8:
		return FormatInt(k), nil
	case uint16:
		return FormatInt(k), nil
	case uint32:
		return FormatInt(k), nil
	case uint64:
		return FormatInt(k), nil
	case float32:
		return formatFloat(float64(k)), nil
	case float64:
		return formatFloat(k), nil
	case bool:
		return strconv.FormatBool(k), nil
	case fmt.Stringer:
		return k.String(), nil
	case nil:
		return "", xerrors.Errorf("nil key: %w", ErrKeyCoercion)
	default:
		return "", xerrors.Errorf("key of type %T: %w", v, ErrKeyCoercion)
	}
}

func FormatInt[T constraints.Integer](v T) string {
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// formatFloat renders integral floats without a decimal point so that 2.0
// coerces to the array-index key "2" rather than "2e+00".
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// ArrayIndex reports whether s is a canonical array-index key and returns its
// numeric value. Canonical means ASCII digits only, no sign, and no leading
// zero (except "0" itself).
func ArrayIndex(s string) (uint32, bool) {
	if len(s) == 0 || len(s) > 10 {
		return 0, false
	}
	if s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
	}
	if n > MaxArrayIndex {
		return 0, false
	}
	return uint32(n), true
}

func IsArrayIndex(s string) bool {
	_, ok := ArrayIndex(s)
	return ok
}
