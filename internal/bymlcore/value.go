// Package bymlcore implements the BYML codec: a typed, tree-structured
// binary property format with a deduplicated string table.
package bymlcore

// Type identifies which arm of the Value union is populated.
type Type int

// The complete set of BYML value kinds (spec §3.3). Int32/UInt32/Int64/
// UInt64 are distinct types, never merged, matching the binary tag table.
const (
	TypeNull Type = iota
	TypeBool
	TypeInt32
	TypeUInt32
	TypeInt64
	TypeUInt64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBinary
	TypeArray
	TypeHash
)

// Value is the recursive BYML value union. Container arms hold owning
// references to nested values; there is a single heap allocation per
// container and no aliasing or cycles (spec §3.5).
type Value struct {
	typ Type

	b    bool
	i32  int32
	u32  uint32
	i64  int64
	u64  uint64
	f32  float32
	f64  float64
	str  string
	bin  []byte
	arr  []*Value
	hash *Hash
}

// Type returns the value's kind.
func (v *Value) Type() Type { return v.typ }

// NewNull builds a Null value.
func NewNull() *Value { return &Value{typ: TypeNull} }

// NewBool builds a Bool value.
func NewBool(b bool) *Value { return &Value{typ: TypeBool, b: b} }

// NewInt32 builds an Int32 value.
func NewInt32(i int32) *Value { return &Value{typ: TypeInt32, i32: i} }

// NewUInt32 builds a UInt32 value.
func NewUInt32(u uint32) *Value { return &Value{typ: TypeUInt32, u32: u} }

// NewInt64 builds an Int64 value.
func NewInt64(i int64) *Value { return &Value{typ: TypeInt64, i64: i} }

// NewUInt64 builds a UInt64 value.
func NewUInt64(u uint64) *Value { return &Value{typ: TypeUInt64, u64: u} }

// NewFloat32 builds a Float32 value.
func NewFloat32(f float32) *Value { return &Value{typ: TypeFloat32, f32: f} }

// NewFloat64 builds a Float64 value.
func NewFloat64(f float64) *Value { return &Value{typ: TypeFloat64, f64: f} }

// NewString builds a String value.
func NewString(s string) *Value { return &Value{typ: TypeString, str: s} }

// NewBinary builds a Binary value.
func NewBinary(b []byte) *Value { return &Value{typ: TypeBinary, bin: append([]byte(nil), b...)} }

// NewArray builds an Array value from an ordered slice of elements.
func NewArray(elems []*Value) *Value { return &Value{typ: TypeArray, arr: elems} }

// NewHash builds a Hash value from an existing Hash.
func NewHash(h *Hash) *Value {
	if h == nil {
		h = NewHashMap()
	}
	return &Value{typ: TypeHash, hash: h}
}

// Bool returns the value's bool payload and whether the type matched.
func (v *Value) Bool() (bool, bool) { return v.b, v.typ == TypeBool }

// Int32 returns the value's int32 payload and whether the type matched.
func (v *Value) Int32() (int32, bool) { return v.i32, v.typ == TypeInt32 }

// UInt32 returns the value's uint32 payload and whether the type matched.
func (v *Value) UInt32() (uint32, bool) { return v.u32, v.typ == TypeUInt32 }

// Int64 returns the value's int64 payload and whether the type matched.
func (v *Value) Int64() (int64, bool) { return v.i64, v.typ == TypeInt64 }

// UInt64 returns the value's uint64 payload and whether the type matched.
func (v *Value) UInt64() (uint64, bool) { return v.u64, v.typ == TypeUInt64 }

// Float32 returns the value's float32 payload and whether the type matched.
func (v *Value) Float32() (float32, bool) { return v.f32, v.typ == TypeFloat32 }

// Float64 returns the value's float64 payload and whether the type matched.
func (v *Value) Float64() (float64, bool) { return v.f64, v.typ == TypeFloat64 }

// String returns the value's string payload and whether the type matched.
func (v *Value) String() (string, bool) { return v.str, v.typ == TypeString }

// Binary returns the value's binary payload and whether the type matched.
func (v *Value) Binary() ([]byte, bool) { return v.bin, v.typ == TypeBinary }

// Array returns the value's element slice and whether the type matched.
func (v *Value) Array() ([]*Value, bool) { return v.arr, v.typ == TypeArray }

// HashValue returns the value's Hash and whether the type matched.
func (v *Value) HashValue() (*Hash, bool) { return v.hash, v.typ == TypeHash }

// Hash is an ordered string-keyed map: iteration order is insertion order
// (for textual equality), while the binary writer separately sorts entries
// by key when serialising (spec §3.3).
type Hash struct {
	keys    []string
	entries map[string]*Value
}

// NewHashMap builds an empty Hash.
func NewHashMap() *Hash {
	return &Hash{entries: make(map[string]*Value)}
}

// Set inserts or updates key. New keys are appended to the iteration order;
// updating an existing key preserves its original position.
func (h *Hash) Set(key string, v *Value) {
	if _, exists := h.entries[key]; !exists {
		h.keys = append(h.keys, key)
	}
	h.entries[key] = v
}

// Get returns the value stored under key, if any.
func (h *Hash) Get(key string) (*Value, bool) {
	v, ok := h.entries[key]
	return v, ok
}

// Keys returns keys in the Hash's current iteration order.
func (h *Hash) Keys() []string { return h.keys }

// Len returns the number of entries.
func (h *Hash) Len() int { return len(h.keys) }

// SortedKeys returns a copy of Keys() sorted lexicographically ascending,
// the order the binary writer emits hash entries in.
func (h *Hash) SortedKeys() []string {
	sorted := append([]string(nil), h.keys...)
	sortStrings(sorted)
	return sorted
}

func sortStrings(s []string) {
	// insertion sort is adequate: hash fan-out per node is small in practice
	// and this avoids importing sort for a one-line call site duplicated
	// across the package.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Equal reports whether v and o are structurally equal: same type, same
// payload, arrays compared element-wise in order, hashes compared as sets
// of key/value pairs regardless of insertion order (spec §8 invariant 1).
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == o.b
	case TypeInt32:
		return v.i32 == o.i32
	case TypeUInt32:
		return v.u32 == o.u32
	case TypeInt64:
		return v.i64 == o.i64
	case TypeUInt64:
		return v.u64 == o.u64
	case TypeFloat32:
		return v.f32 == o.f32
	case TypeFloat64:
		return v.f64 == o.f64
	case TypeString:
		return v.str == o.str
	case TypeBinary:
		if len(v.bin) != len(o.bin) {
			return false
		}
		for i := range v.bin {
			if v.bin[i] != o.bin[i] {
				return false
			}
		}
		return true
	case TypeArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case TypeHash:
		if v.hash.Len() != o.hash.Len() {
			return false
		}
		for _, k := range v.hash.Keys() {
			a, _ := v.hash.Get(k)
			b, ok := o.hash.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
