package bymlcore

import (
	"encoding/binary"
	"math"

	"github.com/zeldamods/oead/internal/utils"
)

// Node type tags, spec §4.4. Inlined scalars store their payload directly in
// the 4-byte slot; out-of-line scalars and containers store an absolute
// offset into the file.
const (
	tagString  = 0xA0
	tagBinary  = 0xA1
	tagArray   = 0xC0
	tagHash    = 0xC1
	tagStrTab  = 0xC2
	tagBool    = 0xD0
	tagInt32   = 0xD1
	tagFloat32 = 0xD2
	tagUInt32  = 0xD3
	tagInt64   = 0xD4
	tagUInt64  = 0xD5
	tagFloat64 = 0xD6
	tagNull    = 0xFF
)

const maxDepth = 1024

// SupportedVersions enumerates the binary container versions this codec
// reads and writes (spec §4.4).
var SupportedVersions = map[uint16]bool{1: true, 2: true, 3: true, 4: true, 7: true}

type document struct {
	r        *utils.Reader
	version  uint16
	hashKeys []string
	strings  []string
}

// FromBinary parses a complete BYML document and returns its root value.
func FromBinary(data []byte) (*Value, error) {
	if len(data) < 16 {
		return nil, utils.WrapError("byml header", utils.ErrTruncated)
	}

	var order binary.ByteOrder
	switch string(data[0:2]) {
	case "BY":
		order = binary.BigEndian
	case "YB":
		order = binary.LittleEndian
	default:
		return nil, utils.WrapError("byml header", utils.ErrBadMagic)
	}

	r := utils.NewReader(data, order)
	r.Skip(2)
	version, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if !SupportedVersions[version] {
		return nil, utils.WrapError("byml version", utils.ErrBadVersion)
	}
	hashKeyTableOff, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	stringTableOff, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	rootOff, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	doc := &document{r: r, version: version}
	if hashKeyTableOff != 0 {
		doc.hashKeys, err = parseStringTable(r, int(hashKeyTableOff))
		if err != nil {
			return nil, utils.WrapOffset("byml hash key table", int(hashKeyTableOff), err)
		}
	}
	if stringTableOff != 0 {
		doc.strings, err = parseStringTable(r, int(stringTableOff))
		if err != nil {
			return nil, utils.WrapOffset("byml string table", int(stringTableOff), err)
		}
	}

	if rootOff == 0 {
		return NewNull(), nil
	}
	return doc.readContainerAt(int(rootOff), 0)
}

func parseStringTable(r *utils.Reader, offset int) ([]string, error) {
	header, err := r.BytesAt(offset, 4)
	if err != nil {
		return nil, err
	}
	word := r.Order().Uint32(header)
	tag := byte(word >> 24)
	if tag != tagStrTab {
		return nil, utils.WrapError("string table tag", utils.ErrBadType)
	}
	count := int(word & 0x00FFFFFF)

	offs := make([]int, count+1)
	for i := 0; i <= count; i++ {
		b, err := r.BytesAt(offset+4+i*4, 4)
		if err != nil {
			return nil, err
		}
		offs[i] = offset + int(r.Order().Uint32(b))
	}

	out := make([]string, count)
	for i := 0; i < count; i++ {
		start, end := offs[i], offs[i+1]
		if end < start || end > r.Len() {
			return nil, utils.ErrBadOffset
		}
		s := string(r.Bytes()[start:end])
		// Trim the single trailing NUL terminator, if present.
		if len(s) > 0 && s[len(s)-1] == 0 {
			s = s[:len(s)-1]
		}
		out[i] = s
	}
	return out, nil
}

func (d *document) readContainerAt(offset, depth int) (*Value, error) {
	if depth > maxDepth {
		return nil, utils.ErrTooDeep
	}
	header, err := d.r.BytesAt(offset, 4)
	if err != nil {
		return nil, err
	}
	word := d.r.Order().Uint32(header)
	tag := byte(word >> 24)
	count := int(word & 0x00FFFFFF)

	switch tag {
	case tagArray:
		return d.readArray(offset, count, depth)
	case tagHash:
		return d.readHash(offset, count, depth)
	default:
		return nil, utils.WrapOffset("byml container tag", offset, utils.ErrBadType)
	}
}

func (d *document) readArray(offset, count, depth int) (*Value, error) {
	typeBytesOff := offset + 4
	valuesOff := alignUp(typeBytesOff+count, 4)

	elems := make([]*Value, count)
	for i := 0; i < count; i++ {
		tb, err := d.r.BytesAt(typeBytesOff+i, 1)
		if err != nil {
			return nil, err
		}
		sb, err := d.r.BytesAt(valuesOff+4*i, 4)
		if err != nil {
			return nil, err
		}
		slot := d.r.Order().Uint32(sb)
		v, err := d.readSlot(tb[0], slot, depth+1)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return NewArray(elems), nil
}

func (d *document) readHash(offset, count, depth int) (*Value, error) {
	h := NewHashMap()
	for i := 0; i < count; i++ {
		entryOff := offset + 4 + i*8
		w1, err := d.r.BytesAt(entryOff, 4)
		if err != nil {
			return nil, err
		}
		word1 := d.r.Order().Uint32(w1)
		keyIndex := int(word1 >> 8)
		valType := byte(word1 & 0xFF)

		sb, err := d.r.BytesAt(entryOff+4, 4)
		if err != nil {
			return nil, err
		}
		slot := d.r.Order().Uint32(sb)

		if keyIndex < 0 || keyIndex >= len(d.hashKeys) {
			return nil, utils.WrapOffset("byml hash key index", entryOff, utils.ErrBadOffset)
		}
		key := d.hashKeys[keyIndex]
		if _, exists := h.Get(key); exists {
			return nil, utils.WrapOffset("byml hash key", entryOff, utils.ErrDuplicateKey)
		}

		v, err := d.readSlot(valType, slot, depth+1)
		if err != nil {
			return nil, err
		}
		h.Set(key, v)
	}
	return NewHash(h), nil
}

func (d *document) readSlot(tag byte, slot uint32, depth int) (*Value, error) {
	switch tag {
	case tagString:
		if int(slot) >= len(d.strings) {
			return nil, utils.ErrBadOffset
		}
		return NewString(d.strings[slot]), nil
	case tagBinary:
		if d.version < 4 {
			return nil, utils.ErrBadType
		}
		sizeBytes, err := d.r.BytesAt(int(slot), 4)
		if err != nil {
			return nil, err
		}
		size := int(d.r.Order().Uint32(sizeBytes))
		data, err := d.r.BytesAt(int(slot)+4, size)
		if err != nil {
			return nil, err
		}
		return NewBinary(data), nil
	case tagArray, tagHash:
		return d.readContainerAt(int(slot), depth)
	case tagBool:
		return NewBool(slot != 0), nil
	case tagInt32:
		return NewInt32(int32(slot)), nil
	case tagFloat32:
		return NewFloat32(math.Float32frombits(slot)), nil
	case tagUInt32:
		return NewUInt32(slot), nil
	case tagInt64:
		b, err := d.r.BytesAt(int(slot), 8)
		if err != nil {
			return nil, err
		}
		return NewInt64(int64(d.r.Order().Uint64(b))), nil
	case tagUInt64:
		b, err := d.r.BytesAt(int(slot), 8)
		if err != nil {
			return nil, err
		}
		return NewUInt64(d.r.Order().Uint64(b)), nil
	case tagFloat64:
		b, err := d.r.BytesAt(int(slot), 8)
		if err != nil {
			return nil, err
		}
		return NewFloat64(math.Float64frombits(d.r.Order().Uint64(b))), nil
	case tagNull:
		return NewNull(), nil
	default:
		return nil, utils.ErrBadType
	}
}

func alignUp(v, n int) int {
	if rem := v % n; rem != 0 {
		return v + (n - rem)
	}
	return v
}
