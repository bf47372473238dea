package aampcore

import (
	"encoding/binary"
	"math"

	"github.com/zeldamods/oead/internal/utils"
)

// FromBinary parses a complete AAMP document and returns its root ParameterIO.
func FromBinary(data []byte) (*ParameterIO, error) {
	if len(data) < headerSize {
		return nil, utils.WrapError("aamp header", utils.ErrTruncated)
	}
	if string(data[0:4]) != aampMagic {
		return nil, utils.WrapError("aamp header", utils.ErrBadMagic)
	}

	order := binary.LittleEndian
	r := utils.NewReader(data, order)
	r.Skip(4)
	version, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != aampVersion {
		return nil, utils.WrapError("aamp version", utils.ErrBadVersion)
	}
	r.Skip(4) // flags
	fileSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if int(fileSize) > len(data) {
		return nil, utils.WrapError("aamp file size", utils.ErrTruncated)
	}
	pioVer, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if pioVer != pioVersion {
		return nil, utils.WrapError("aamp pio version", utils.ErrBadVersion)
	}
	pioOffset, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	listCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	objCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	paramCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	r.Skip(4) // data section size, not needed to parse
	r.Skip(4) // string section size, unused
	r.Skip(4) // unknown section size, unused

	r.Seek(int(pioOffset))
	typeTag, err := r.ReadCString()
	if err != nil {
		return nil, utils.WrapOffset("aamp type tag", int(pioOffset), err)
	}

	listTableAbs := alignUp(int(pioOffset)+len(typeTag)+1, 4)
	objTableAbs := listTableAbs + int(listCount)*listRecordSize
	paramTableAbs := objTableAbs + int(objCount)*objRecordSize

	order32 := order
	toListIndex := func(abs int) (int, error) {
		off := abs - listTableAbs
		if off < 0 || off%listRecordSize != 0 || off/listRecordSize >= int(listCount) {
			return 0, utils.WrapOffset("aamp list index", abs, utils.ErrBadOffset)
		}
		return off / listRecordSize, nil
	}
	toObjIndex := func(abs int) (int, error) {
		off := abs - objTableAbs
		if off < 0 || off%objRecordSize != 0 || off/objRecordSize >= int(objCount) {
			return 0, utils.WrapOffset("aamp object index", abs, utils.ErrBadOffset)
		}
		return off / objRecordSize, nil
	}
	toParamIndex := func(abs int) (int, error) {
		off := abs - paramTableAbs
		if off < 0 || off%paramRecordSize != 0 || off/paramRecordSize >= int(paramCount) {
			return 0, utils.WrapOffset("aamp parameter index", abs, utils.ErrBadOffset)
		}
		return off / paramRecordSize, nil
	}

	type listRec struct {
		hash                 uint32
		listStart, listCount int
		objStart, objCount   int
	}
	type objRec struct {
		hash                   uint32
		paramStart, paramCount int
	}
	type paramRec struct {
		hash    uint32
		dataAbs int
		typ     ParamType
	}

	listRecs := make([]listRec, listCount)
	for i := 0; i < int(listCount); i++ {
		recAbs := listTableAbs + i*listRecordSize
		b, err := r.BytesAt(recAbs, listRecordSize)
		if err != nil {
			return nil, utils.WrapOffset("aamp list record", recAbs, err)
		}
		hash := order32.Uint32(b[0:4])
		listsRel := order32.Uint16(b[4:6])
		objsRel := order32.Uint16(b[6:8])
		lc := order32.Uint16(b[8:10])
		oc := order32.Uint16(b[10:12])

		rec := listRec{hash: hash, listCount: int(lc), objCount: int(oc)}
		if lc > 0 {
			idx, err := toListIndex(recAbs + int(listsRel)*4)
			if err != nil {
				return nil, err
			}
			rec.listStart = idx
		}
		if oc > 0 {
			idx, err := toObjIndex(recAbs + int(objsRel)*4)
			if err != nil {
				return nil, err
			}
			rec.objStart = idx
		}
		listRecs[i] = rec
	}

	objRecs := make([]objRec, objCount)
	for i := 0; i < int(objCount); i++ {
		recAbs := objTableAbs + i*objRecordSize
		b, err := r.BytesAt(recAbs, objRecordSize)
		if err != nil {
			return nil, utils.WrapOffset("aamp object record", recAbs, err)
		}
		hash := order32.Uint32(b[0:4])
		paramsRel := order32.Uint16(b[4:6])
		pc := order32.Uint16(b[6:8])
		rec := objRec{hash: hash, paramCount: int(pc)}
		if pc > 0 {
			idx, err := toParamIndex(recAbs + int(paramsRel)*4)
			if err != nil {
				return nil, err
			}
			rec.paramStart = idx
		}
		objRecs[i] = rec
	}

	paramRecs := make([]paramRec, paramCount)
	for i := 0; i < int(paramCount); i++ {
		recAbs := paramTableAbs + i*paramRecordSize
		b, err := r.BytesAt(recAbs, paramRecordSize)
		if err != nil {
			return nil, utils.WrapOffset("aamp parameter record", recAbs, err)
		}
		hash := order32.Uint32(b[0:4])
		rel24 := uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16
		typ := ParamType(b[7])
		paramRecs[i] = paramRec{hash: hash, dataAbs: recAbs + int(rel24)*4, typ: typ}
	}

	if len(listRecs) == 0 {
		return nil, utils.WrapError("aamp root list", utils.ErrTruncated)
	}

	objects := make([]*ParameterObject, len(objRecs))
	for i, rec := range objRecs {
		obj := NewParameterObject()
		for j := 0; j < rec.paramCount; j++ {
			idx := rec.paramStart + j
			if idx < 0 || idx >= len(paramRecs) {
				return nil, utils.WrapError("aamp object params", utils.ErrBadOffset)
			}
			pr := paramRecs[idx]
			p, err := readParamValue(r, pr.dataAbs, pr.typ)
			if err != nil {
				return nil, err
			}
			obj.Set(pr.hash, p)
		}
		objects[i] = obj
	}

	lists := make([]*ParameterList, len(listRecs))
	for i := range listRecs {
		lists[i] = NewParameterList()
	}
	for i, rec := range listRecs {
		l := lists[i]
		for j := 0; j < rec.listCount; j++ {
			idx := rec.listStart + j
			if idx <= 0 || idx >= len(listRecs) {
				return nil, utils.WrapError("aamp child lists", utils.ErrBadOffset)
			}
			l.SetList(listRecs[idx].hash, lists[idx])
		}
		for j := 0; j < rec.objCount; j++ {
			idx := rec.objStart + j
			if idx < 0 || idx >= len(objRecs) {
				return nil, utils.WrapError("aamp child objects", utils.ErrBadOffset)
			}
			l.SetObject(objRecs[idx].hash, objects[idx])
		}
	}

	return &ParameterIO{Type: typeTag, Version: version, Root: lists[0]}, nil
}

// readParamValue reads one parameter's payload from the data section,
// starting at the record's resolved absolute offset.
func readParamValue(r *utils.Reader, dataAbs int, typ ParamType) (*Parameter, error) {
	order := r.Order()
	switch typ {
	case TBool:
		b, err := r.BytesAt(dataAbs, 4)
		if err != nil {
			return nil, utils.WrapOffset("aamp bool", dataAbs, err)
		}
		return NewBool(order.Uint32(b) != 0), nil
	case TF32:
		b, err := r.BytesAt(dataAbs, 4)
		if err != nil {
			return nil, utils.WrapOffset("aamp f32", dataAbs, err)
		}
		return NewF32(floatFromBits(order.Uint32(b))), nil
	case TInt:
		b, err := r.BytesAt(dataAbs, 4)
		if err != nil {
			return nil, utils.WrapOffset("aamp int", dataAbs, err)
		}
		return NewInt(int32(order.Uint32(b))), nil
	case TU32:
		b, err := r.BytesAt(dataAbs, 4)
		if err != nil {
			return nil, utils.WrapOffset("aamp u32", dataAbs, err)
		}
		return NewU32(order.Uint32(b)), nil
	case TVec2, TVec3, TVec4, TColor, TQuat:
		var n int
		switch typ {
		case TVec2:
			n = 2
		case TVec3:
			n = 3
		default: // TVec4, TColor, TQuat
			n = 4
		}
		fs, err := readFloats(r, dataAbs, n)
		if err != nil {
			return nil, err
		}
		return &Parameter{typ: typ, floats: fs}, nil
	case TCurve1, TCurve2, TCurve3, TCurve4:
		n := curveFloatCount(typ)
		fs, err := readFloats(r, dataAbs, n)
		if err != nil {
			return nil, err
		}
		return &Parameter{typ: typ, floats: fs}, nil
	case TString32, TString64, TString256:
		width := fixedStringWidth(typ)
		b, err := r.BytesAt(dataAbs, width)
		if err != nil {
			return nil, utils.WrapOffset("aamp fixed string", dataAbs, err)
		}
		s := cStringFromBytes(b)
		return &Parameter{typ: typ, str: s}, nil
	case TStringRef:
		sr := utils.NewReader(r.Bytes(), order)
		sr.Seek(dataAbs)
		s, err := sr.ReadCString()
		if err != nil {
			return nil, utils.WrapOffset("aamp string", dataAbs, err)
		}
		return &Parameter{typ: TStringRef, str: s}, nil
	case TBufferInt:
		count, base, err := readBufferLen(r, dataAbs)
		if err != nil {
			return nil, err
		}
		vals := make([]int32, count)
		for i := 0; i < count; i++ {
			b, err := r.BytesAt(base+i*4, 4)
			if err != nil {
				return nil, utils.WrapOffset("aamp buffer int", base, err)
			}
			vals[i] = int32(order.Uint32(b))
		}
		return &Parameter{typ: TBufferInt, bufI: vals}, nil
	case TBufferF32:
		count, base, err := readBufferLen(r, dataAbs)
		if err != nil {
			return nil, err
		}
		vals, err := readFloats(r, base, count)
		if err != nil {
			return nil, err
		}
		return &Parameter{typ: TBufferF32, bufF: vals}, nil
	case TBufferU32:
		count, base, err := readBufferLen(r, dataAbs)
		if err != nil {
			return nil, err
		}
		vals := make([]uint32, count)
		for i := 0; i < count; i++ {
			b, err := r.BytesAt(base+i*4, 4)
			if err != nil {
				return nil, utils.WrapOffset("aamp buffer u32", base, err)
			}
			vals[i] = order.Uint32(b)
		}
		return &Parameter{typ: TBufferU32, bufU: vals}, nil
	case TBufferBinary:
		count, base, err := readBufferLen(r, dataAbs)
		if err != nil {
			return nil, err
		}
		b, err := r.BytesAt(base, count)
		if err != nil {
			return nil, utils.WrapOffset("aamp buffer binary", base, err)
		}
		return &Parameter{typ: TBufferBinary, bufB: append([]byte(nil), b...)}, nil
	default:
		return nil, utils.WrapOffset("aamp parameter type", dataAbs, utils.ErrBadType)
	}
}

// readBufferLen reads the length word stored 4 bytes before a buffer's data
// (spec §4.5's "buffers store their length at offset −4 from their data
// pointer") and returns the element count plus the data's own offset.
func readBufferLen(r *utils.Reader, dataAbs int) (int, int, error) {
	b, err := r.BytesAt(dataAbs-4, 4)
	if err != nil {
		return 0, 0, utils.WrapOffset("aamp buffer length", dataAbs-4, err)
	}
	return int(r.Order().Uint32(b)), dataAbs, nil
}

func readFloats(r *utils.Reader, base int, n int) ([]float32, error) {
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		b, err := r.BytesAt(base+i*4, 4)
		if err != nil {
			return nil, utils.WrapOffset("aamp float", base, err)
		}
		out[i] = floatFromBits(r.Order().Uint32(b))
	}
	return out, nil
}

func floatFromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}

func cStringFromBytes(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
