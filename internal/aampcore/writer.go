package aampcore

import (
	"encoding/binary"

	"github.com/zeldamods/oead/internal/utils"
)

const (
	aampMagic       = "AAMP"
	aampVersion     = 2
	pioVersion      = 0
	listRecordSize  = 12
	objRecordSize   = 8
	paramRecordSize = 8
	headerSize      = 48

	// maxTableEntries bounds the list/object/parameter table record counts,
	// each stored as a u16 count field (spec §4.5's list/object records).
	maxTableEntries = 0xFFFF

	// maxScaledOffset16/24 bound the ×4-scaled relative offsets stored in a
	// u16 (list/object records) or u24 (parameter records) field.
	maxScaledOffset16 = 0xFFFF
	maxScaledOffset24 = 0xFFFFFF
)

type listEntry struct {
	hash                           uint32
	node                           *ParameterList
	childListStart, childListCount int
	childObjStart, childObjCount   int
}

type objEntry struct {
	hash                             uint32
	node                             *ParameterObject
	childParamStart, childParamCount int
}

type paramEntry struct {
	hash  uint32
	param *Parameter
}

// ToBinary serialises a ParameterIO document. Unlike the BYML writer, no
// structural deduplication is performed (spec §4.5): byte-exact round-trip
// of arbitrary input is not guaranteed, only semantic equality.
func ToBinary(pio *ParameterIO) ([]byte, error) {
	order := binary.LittleEndian

	listTable := []listEntry{{hash: 0, node: pio.Root}}
	var objTable []objEntry

	for i := 0; i < len(listTable); i++ {
		node := listTable[i].node

		childListStart := len(listTable)
		for _, h := range node.ListKeys() {
			child, _ := node.GetList(h)
			listTable = append(listTable, listEntry{hash: h, node: child})
		}
		listTable[i].childListStart = childListStart
		listTable[i].childListCount = len(listTable) - childListStart

		childObjStart := len(objTable)
		for _, h := range node.ObjectKeys() {
			child, _ := node.GetObject(h)
			objTable = append(objTable, objEntry{hash: h, node: child})
		}
		listTable[i].childObjStart = childObjStart
		listTable[i].childObjCount = len(objTable) - childObjStart
	}

	var paramTable []paramEntry
	for j := range objTable {
		node := objTable[j].node
		childParamStart := len(paramTable)
		for _, h := range node.Keys() {
			p, _ := node.Get(h)
			paramTable = append(paramTable, paramEntry{hash: h, param: p})
		}
		objTable[j].childParamStart = childParamStart
		objTable[j].childParamCount = len(paramTable) - childParamStart
	}

	if utils.ValidateBufferSize(uint64(len(listTable)), maxTableEntries, "aamp list table") != nil {
		return nil, utils.WrapError("aamp list table", utils.ErrOutputOverflow)
	}
	if utils.ValidateBufferSize(uint64(len(objTable)), maxTableEntries, "aamp object table") != nil {
		return nil, utils.WrapError("aamp object table", utils.ErrOutputOverflow)
	}
	if utils.ValidateBufferSize(uint64(len(paramTable)), maxTableEntries, "aamp parameter table") != nil {
		return nil, utils.WrapError("aamp parameter table", utils.ErrOutputOverflow)
	}

	typeStrLen := alignUp(len(pio.Type)+1, 4)
	listTableAbs := headerSize + typeStrLen
	objTableAbs := listTableAbs + len(listTable)*listRecordSize
	paramTableAbs := objTableAbs + len(objTable)*objRecordSize
	dataSectionAbs := paramTableAbs + len(paramTable)*paramRecordSize

	dataBuf, paramDataOffsets, err := buildDataSection(order, paramTable)
	if err != nil {
		return nil, err
	}

	w := utils.NewWriter(order)
	w.WriteBytes([]byte(aampMagic))
	w.WriteU32(aampVersion)
	w.WriteU32(0) // flags
	fileSizePos := w.Len()
	w.WriteU32(0) // file size, backpatched
	w.WriteU32(pioVersion)
	w.WriteU32(uint32(headerSize))
	w.WriteU32(uint32(len(listTable)))
	w.WriteU32(uint32(len(objTable)))
	w.WriteU32(uint32(len(paramTable)))
	w.WriteU32(uint32(len(dataBuf)))
	w.WriteU32(0) // string section size: no string section is written
	w.WriteU32(0) // unknown section size: unused

	w.WriteCString(pio.Type)
	w.PadToAlign(4, 0)

	for i, e := range listTable {
		recordAbs := listTableAbs + i*listRecordSize
		w.WriteU32(e.hash)
		if e.childListCount > 0 {
			rel, err := scaledOffset(listTableAbs+e.childListStart*listRecordSize, recordAbs)
			if err != nil {
				return nil, err
			}
			w.WriteU16(rel)
		} else {
			w.WriteU16(0)
		}
		if e.childObjCount > 0 {
			rel, err := scaledOffset(objTableAbs+e.childObjStart*objRecordSize, recordAbs)
			if err != nil {
				return nil, err
			}
			w.WriteU16(rel)
		} else {
			w.WriteU16(0)
		}
		w.WriteU16(uint16(e.childListCount))
		w.WriteU16(uint16(e.childObjCount))
	}

	for i, e := range objTable {
		recordAbs := objTableAbs + i*objRecordSize
		w.WriteU32(e.hash)
		if e.childParamCount > 0 {
			rel, err := scaledOffset(paramTableAbs+e.childParamStart*paramRecordSize, recordAbs)
			if err != nil {
				return nil, err
			}
			w.WriteU16(rel)
		} else {
			w.WriteU16(0)
		}
		w.WriteU16(uint16(e.childParamCount))
		w.WriteU16(0) // reserved
	}

	for i, e := range paramTable {
		recordAbs := paramTableAbs + i*paramRecordSize
		dataAbsU, err := utils.SafeAdd(uint64(dataSectionAbs), uint64(paramDataOffsets[i]))
		if err != nil {
			return nil, err
		}
		dataAbs := int(dataAbsU)
		diff := dataAbs - recordAbs
		if diff%4 != 0 || diff < 0 {
			return nil, utils.WrapError("aamp parameter offset", utils.ErrOutputOverflow)
		}
		if utils.ValidateBufferSize(uint64(diff/4), maxScaledOffset24, "aamp parameter offset") != nil {
			return nil, utils.WrapError("aamp parameter offset", utils.ErrOutputOverflow)
		}
		w.WriteU32(e.hash)
		rel := uint32(diff / 4)
		// data-rel-offset is u24 in the low three bytes of a little-endian
		// 32-bit word, with the type byte in its high byte.
		w.WriteU8(byte(rel))
		w.WriteU8(byte(rel >> 8))
		w.WriteU8(byte(rel >> 16))
		w.WriteU8(byte(e.param.Type()))
	}

	w.WriteBytes(dataBuf)

	out := w.Bytes()
	var sz [4]byte
	order.PutUint32(sz[:], uint32(len(out)))
	w.WriteAt(fileSizePos, sz[:])
	return w.Bytes(), nil
}

func scaledOffset(targetAbs, recordAbs int) (uint16, error) {
	diff := targetAbs - recordAbs
	if diff < 0 || diff%4 != 0 {
		return 0, utils.WrapError("aamp relative offset", utils.ErrOutputOverflow)
	}
	if utils.ValidateBufferSize(uint64(diff/4), maxScaledOffset16, "aamp relative offset") != nil {
		return 0, utils.WrapError("aamp relative offset", utils.ErrOutputOverflow)
	}
	return uint16(diff / 4), nil
}

// buildDataSection serialises every parameter's payload in table order,
// returning the concatenated bytes and each parameter's byte offset
// relative to the start of that buffer.
func buildDataSection(order binary.ByteOrder, params []paramEntry) ([]byte, []int, error) {
	w := utils.NewWriter(order)
	offsets := make([]int, len(params))

	for i, e := range params {
		p := e.param
		switch p.typ {
		case TBool:
			offsets[i] = w.Len()
			if v, _ := p.Bool(); v {
				w.WriteU32(1)
			} else {
				w.WriteU32(0)
			}
		case TF32:
			offsets[i] = w.Len()
			v, _ := p.F32()
			w.WriteF32(v)
		case TInt:
			offsets[i] = w.Len()
			v, _ := p.Int()
			w.WriteI32(v)
		case TU32:
			offsets[i] = w.Len()
			v, _ := p.U32()
			w.WriteU32(v)
		case TVec2, TVec3, TVec4, TColor, TQuat, TCurve1, TCurve2, TCurve3, TCurve4:
			offsets[i] = w.Len()
			fs, _ := p.Floats()
			for _, f := range fs {
				w.WriteF32(f)
			}
		case TString32, TString64, TString256:
			width := fixedStringWidth(p.typ)
			s, _ := p.Str()
			if len(s)+1 > width {
				return nil, nil, utils.WrapError("aamp fixed string", utils.ErrOutputOverflow)
			}
			offsets[i] = w.Len()
			buf := make([]byte, width)
			copy(buf, s)
			w.WriteBytes(buf)
		case TStringRef:
			offsets[i] = w.Len()
			s, _ := p.Str()
			w.WriteCString(s)
		case TBufferInt:
			w.WriteU32(uint32(len(p.bufI)))
			offsets[i] = w.Len()
			for _, v := range p.bufI {
				w.WriteI32(v)
			}
		case TBufferF32:
			w.WriteU32(uint32(len(p.bufF)))
			offsets[i] = w.Len()
			for _, v := range p.bufF {
				w.WriteF32(v)
			}
		case TBufferU32:
			w.WriteU32(uint32(len(p.bufU)))
			offsets[i] = w.Len()
			for _, v := range p.bufU {
				w.WriteU32(v)
			}
		case TBufferBinary:
			w.WriteU32(uint32(len(p.bufB)))
			offsets[i] = w.Len()
			w.WriteBytes(p.bufB)
		default:
			return nil, nil, utils.ErrBadType
		}
		w.PadToAlign(4, 0)
	}
	return w.Bytes(), offsets, nil
}

func alignUp(v, n int) int {
	if rem := v % n; rem != 0 {
		return v + (n - rem)
	}
	return v
}
