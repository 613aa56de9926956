package record

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash64 digests the own enumerable string-keyed entries in enumeration
// order. Records with the same visible entries in the same order hash equal;
// identity, prototype, hidden and symbol members do not participate. Intended
// for content comparison and dedup, not for cryptographic use.
func (r *Record) Hash64() uint64 {
	d := xxhash.New()
	r.IterateCb(func(e Entry) bool {
		_, _ = d.WriteString(e.Key)
		_, _ = d.Write([]byte{0})
		hashValue(d, e.Value)
		_, _ = d.Write([]byte{0xff})
		return true
	})
	return d.Sum64()
}

func hashValue(d *xxhash.Digest, v interface{}) {
	switch t := v.(type) {
	case *Record:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], t.Hash64())
		_, _ = d.Write(buf[:])
	case []interface{}:
		for _, el := range t {
			hashValue(d, el)
			_, _ = d.Write([]byte{0xfe})
		}
	default:
		fmt.Fprintf(d, "%T:%v", v, v)
	}
}
