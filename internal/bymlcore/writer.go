package bymlcore

import (
	"encoding/binary"
	"math"

	"github.com/zeldamods/oead/internal/utils"
)

// ToBinary serialises root into a complete BYML document using the given
// byte order and container version. root must be an Array or Hash: BYML
// documents are always rooted at a container (spec §4.4).
func ToBinary(root *Value, order binary.ByteOrder, version uint16) ([]byte, error) {
	if !SupportedVersions[version] {
		return nil, utils.ErrBadVersion
	}
	if root.Type() != TypeArray && root.Type() != TypeHash {
		return nil, utils.WrapError("byml root", utils.ErrBadType)
	}

	hashKeySet := map[string]bool{}
	stringSet := map[string]bool{}
	collectStrings(root, hashKeySet, stringSet)

	hashKeys := setToSortedSlice(hashKeySet)
	strings := setToSortedSlice(stringSet)
	hashKeyIndex := indexOf(hashKeys)
	stringIndex := indexOf(strings)

	// Hash-key and string tables depend only on their sorted content, so
	// their total size (and therefore the pool's base file offset) is known
	// before the tree is laid out. This lets the encoder emit absolute file
	// offsets for every container/out-of-line-scalar reference directly,
	// rather than patching them after the fact.
	var hashKeyTableOff, stringTableOff uint32
	var tables []byte
	if len(hashKeys) > 0 {
		hashKeyTableOff = 16
		tables = buildStringTable(order, hashKeys)
	}
	if len(strings) > 0 {
		stringTableOff = uint32(16 + len(tables))
		tables = append(tables, buildStringTable(order, strings)...)
	}
	poolBase := uint32(16 + len(tables))

	enc := &encoder{
		order:    order,
		version:  version,
		poolBase: poolBase,
		dedup:    map[string]uint32{},
		hashKeys: hashKeyIndex,
		strings:  stringIndex,
	}

	rootTag, rootOff, err := enc.layout(root, 0)
	if err != nil {
		return nil, err
	}
	if rootTag != tagArray && rootTag != tagHash {
		return nil, utils.ErrBadType
	}

	w := utils.NewWriter(order)
	if order == binary.BigEndian {
		w.WriteBytes([]byte("BY"))
	} else {
		w.WriteBytes([]byte("YB"))
	}
	w.WriteU16(version)
	w.WriteU32(hashKeyTableOff)
	w.WriteU32(stringTableOff)
	w.WriteU32(rootOff)
	w.WriteBytes(tables)
	w.WriteBytes(enc.pool)

	return w.Bytes(), nil
}

func collectStrings(v *Value, keys, strs map[string]bool) {
	switch v.Type() {
	case TypeString:
		s, _ := v.String()
		strs[s] = true
	case TypeArray:
		arr, _ := v.Array()
		for _, e := range arr {
			collectStrings(e, keys, strs)
		}
	case TypeHash:
		h, _ := v.HashValue()
		for _, k := range h.Keys() {
			keys[k] = true
			child, _ := h.Get(k)
			collectStrings(child, keys, strs)
		}
	}
}

func setToSortedSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sortStrings(out)
	return out
}

func indexOf(sorted []string) map[string]uint32 {
	m := make(map[string]uint32, len(sorted))
	for i, s := range sorted {
		m[s] = uint32(i)
	}
	return m
}

// buildStringTable serialises a sorted string list as a type-0xC2 node:
// tag+count word, (count+1) relative offsets, then NUL-terminated strings
// back to back. The whole table is padded to a 4-byte boundary.
func buildStringTable(order binary.ByteOrder, strs []string) []byte {
	w := utils.NewWriter(order)
	w.WriteU32(uint32(tagStrTab)<<24 | uint32(len(strs)))

	offsetsPos := w.Len()
	for range strs {
		w.WriteU32(0)
	}
	w.WriteU32(0) // terminal offset

	offs := make([]uint32, len(strs)+1)
	for i, s := range strs {
		offs[i] = uint32(w.Len())
		w.WriteCString(s)
	}
	offs[len(strs)] = uint32(w.Len())

	buf := w.Bytes()
	for i, o := range offs {
		var b [4]byte
		order.PutUint32(b[:], o)
		copy(buf[offsetsPos+i*4:offsetsPos+i*4+4], b[:])
	}

	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// encoder lays out containers and out-of-line scalars into a single pool
// buffer that follows the hash-key/string tables in the final file. Every
// slot value it returns for a container or out-of-line scalar is already an
// absolute file offset. Containers with byte-identical serialised form
// share an offset (spec §4.6).
type encoder struct {
	order    binary.ByteOrder
	version  uint16
	poolBase uint32
	pool     []byte
	dedup    map[string]uint32
	hashKeys map[string]uint32
	strings  map[string]uint32
}

// layout recursively serialises v, returning its node-type tag and the
// 4-byte slot value to store for it in a parent container (either an
// inlined scalar or an absolute file offset).
func (e *encoder) layout(v *Value, depth int) (byte, uint32, error) {
	if depth > maxDepth {
		return 0, 0, utils.ErrTooDeep
	}
	switch v.Type() {
	case TypeNull:
		return tagNull, 0, nil
	case TypeBool:
		b, _ := v.Bool()
		if b {
			return tagBool, 1, nil
		}
		return tagBool, 0, nil
	case TypeInt32:
		i, _ := v.Int32()
		return tagInt32, uint32(i), nil
	case TypeUInt32:
		u, _ := v.UInt32()
		return tagUInt32, u, nil
	case TypeFloat32:
		f, _ := v.Float32()
		return tagFloat32, math.Float32bits(f), nil
	case TypeInt64:
		i, _ := v.Int64()
		return tagInt64, e.appendScalar8(uint64(i)), nil
	case TypeUInt64:
		u, _ := v.UInt64()
		return tagUInt64, e.appendScalar8(u), nil
	case TypeFloat64:
		f, _ := v.Float64()
		return tagFloat64, e.appendScalar8(math.Float64bits(f)), nil
	case TypeString:
		s, _ := v.String()
		idx, ok := e.strings[s]
		if !ok {
			return 0, 0, utils.WrapError("byml string table", utils.ErrBadOffset)
		}
		return tagString, idx, nil
	case TypeBinary:
		if e.version < 4 {
			return 0, 0, utils.WrapError("byml binary value", utils.ErrBadType)
		}
		data, _ := v.Binary()
		buf := make([]byte, 4+len(data))
		e.order.PutUint32(buf, uint32(len(data)))
		copy(buf[4:], data)
		return tagBinary, e.appendDeduped(buf), nil
	case TypeArray:
		return e.layoutArray(v, depth)
	case TypeHash:
		return e.layoutHash(v, depth)
	default:
		return 0, 0, utils.ErrBadType
	}
}

func (e *encoder) appendScalar8(v uint64) uint32 {
	var b [8]byte
	e.order.PutUint64(b[:], v)
	return e.appendDeduped(b[:])
}

// appendDeduped appends buf to the pool unless an identical byte sequence
// was already emitted, in which case its existing absolute file offset is
// reused. The returned offset is always absolute (poolBase + pool-relative
// position).
func (e *encoder) appendDeduped(buf []byte) uint32 {
	key := string(buf)
	if off, ok := e.dedup[key]; ok {
		return off
	}
	off := e.poolBase + uint32(len(e.pool))
	e.pool = append(e.pool, buf...)
	e.dedup[key] = off
	return off
}

func (e *encoder) layoutArray(v *Value, depth int) (byte, uint32, error) {
	elems, _ := v.Array()
	tags := make([]byte, len(elems))
	slots := make([]uint32, len(elems))
	for i, elem := range elems {
		tag, slot, err := e.layout(elem, depth+1)
		if err != nil {
			return 0, 0, err
		}
		tags[i] = tag
		slots[i] = slot
	}

	w := utils.NewWriter(e.order)
	w.WriteU32(uint32(tagArray)<<24 | uint32(len(elems)))
	w.WriteBytes(tags)
	w.PadToAlign(4, 0)
	for _, s := range slots {
		w.WriteU32(s)
	}
	return tagArray, e.appendDeduped(w.Bytes()), nil
}

func (e *encoder) layoutHash(v *Value, depth int) (byte, uint32, error) {
	h, _ := v.HashValue()
	keys := h.SortedKeys()

	w := utils.NewWriter(e.order)
	w.WriteU32(uint32(tagHash)<<24 | uint32(len(keys)))
	for _, k := range keys {
		child, _ := h.Get(k)
		tag, slot, err := e.layout(child, depth+1)
		if err != nil {
			return 0, 0, err
		}
		keyIdx, ok := e.hashKeys[k]
		if !ok {
			return 0, 0, utils.WrapError("byml hash key table", utils.ErrBadOffset)
		}
		w.WriteU32(keyIdx<<8 | uint32(tag))
		w.WriteU32(slot)
	}
	return tagHash, e.appendDeduped(w.Bytes()), nil
}
