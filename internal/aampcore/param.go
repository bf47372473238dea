// Package aampcore implements the AAMP parameter-tree codec: a binary and
// textual format for nested lists of named objects and typed parameters,
// addressed by CRC32 name hash rather than by string.
package aampcore

import "hash/crc32"

// Hash computes the CRC32/IEEE name hash used throughout AAMP (spec §4.5):
// reflected polynomial 0xEDB88320, initial value and final XOR both
// 0xFFFFFFFF — exactly Go's standard IEEE CRC-32, reused as-is.
func Hash(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}

// ParamType is the one-byte type tag stored in each parameter record.
type ParamType uint8

// The fixed 21-member parameter type table, spec §4.5.
const (
	TBool ParamType = iota
	TF32
	TInt
	TVec2
	TVec3
	TVec4
	TColor
	TString32
	TString64
	TCurve1
	TCurve2
	TCurve3
	TCurve4
	TBufferInt
	TBufferF32
	TString256
	TQuat
	TU32
	TBufferU32
	TBufferBinary
	TStringRef
)

// fixedStringWidth returns the on-disk width (including the NUL terminator)
// of a fixed-width string type, or 0 if typ isn't one.
func fixedStringWidth(typ ParamType) int {
	switch typ {
	case TString32:
		return 32
	case TString64:
		return 64
	case TString256:
		return 256
	default:
		return 0
	}
}

func curveFloatCount(typ ParamType) int {
	switch typ {
	case TCurve1:
		return 30
	case TCurve2:
		return 60
	case TCurve3:
		return 90
	case TCurve4:
		return 120
	default:
		return 0
	}
}

// Parameter is a single typed value. Exactly one payload field is
// meaningful, selected by typ — mirroring the BYML Value union but without
// recursion, since nesting in AAMP happens at the list/object level, not
// inside parameters (spec §9).
type Parameter struct {
	typ ParamType

	b      bool
	f32    float32
	i32    int32
	u32    uint32
	floats []float32 // Vec2/3/4, Color, Quat, CurveN
	str    string    // String32/64/256, StringRef
	bufI   []int32
	bufF   []float32
	bufU   []uint32
	bufB   []byte
}

// Type returns the parameter's kind.
func (p *Parameter) Type() ParamType { return p.typ }

func NewBool(v bool) *Parameter          { return &Parameter{typ: TBool, b: v} }
func NewF32(v float32) *Parameter        { return &Parameter{typ: TF32, f32: v} }
func NewInt(v int32) *Parameter          { return &Parameter{typ: TInt, i32: v} }
func NewU32(v uint32) *Parameter         { return &Parameter{typ: TU32, u32: v} }
func NewVec2(x, y float32) *Parameter    { return &Parameter{typ: TVec2, floats: []float32{x, y}} }
func NewVec3(x, y, z float32) *Parameter { return &Parameter{typ: TVec3, floats: []float32{x, y, z}} }
func NewVec4(x, y, z, w float32) *Parameter {
	return &Parameter{typ: TVec4, floats: []float32{x, y, z, w}}
}
func NewColor(r, g, b, a float32) *Parameter {
	return &Parameter{typ: TColor, floats: []float32{r, g, b, a}}
}
func NewQuat(x, y, z, w float32) *Parameter {
	return &Parameter{typ: TQuat, floats: []float32{x, y, z, w}}
}

// NewCurve builds a CurveN parameter; n must be 1..4 and floats must hold
// exactly 30*n elements.
func NewCurve(n int, floats []float32) *Parameter {
	typ := [5]ParamType{0, TCurve1, TCurve2, TCurve3, TCurve4}[n]
	return &Parameter{typ: typ, floats: append([]float32(nil), floats...)}
}

func NewString32(s string) *Parameter  { return &Parameter{typ: TString32, str: s} }
func NewString64(s string) *Parameter  { return &Parameter{typ: TString64, str: s} }
func NewString256(s string) *Parameter { return &Parameter{typ: TString256, str: s} }
func NewStringRef(s string) *Parameter { return &Parameter{typ: TStringRef, str: s} }

func NewBufferInt(v []int32) *Parameter {
	return &Parameter{typ: TBufferInt, bufI: append([]int32(nil), v...)}
}
func NewBufferF32(v []float32) *Parameter {
	return &Parameter{typ: TBufferF32, bufF: append([]float32(nil), v...)}
}
func NewBufferU32(v []uint32) *Parameter {
	return &Parameter{typ: TBufferU32, bufU: append([]uint32(nil), v...)}
}
func NewBufferBinary(v []byte) *Parameter {
	return &Parameter{typ: TBufferBinary, bufB: append([]byte(nil), v...)}
}

func (p *Parameter) Bool() (bool, bool)       { return p.b, p.typ == TBool }
func (p *Parameter) F32() (float32, bool)     { return p.f32, p.typ == TF32 }
func (p *Parameter) Int() (int32, bool)       { return p.i32, p.typ == TInt }
func (p *Parameter) U32() (uint32, bool)      { return p.u32, p.typ == TU32 }
func (p *Parameter) Floats() ([]float32, bool) {
	switch p.typ {
	case TVec2, TVec3, TVec4, TColor, TQuat, TCurve1, TCurve2, TCurve3, TCurve4:
		return p.floats, true
	default:
		return nil, false
	}
}
func (p *Parameter) Str() (string, bool) {
	switch p.typ {
	case TString32, TString64, TString256, TStringRef:
		return p.str, true
	default:
		return "", false
	}
}
func (p *Parameter) BufferInt() ([]int32, bool)    { return p.bufI, p.typ == TBufferInt }
func (p *Parameter) BufferF32() ([]float32, bool)  { return p.bufF, p.typ == TBufferF32 }
func (p *Parameter) BufferU32() ([]uint32, bool)   { return p.bufU, p.typ == TBufferU32 }
func (p *Parameter) BufferBinary() ([]byte, bool)  { return p.bufB, p.typ == TBufferBinary }

// Equal reports structural equality between two parameters of possibly
// different concrete payload shapes but the same type tag.
func (p *Parameter) Equal(o *Parameter) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.typ != o.typ {
		return false
	}
	switch p.typ {
	case TBool:
		return p.b == o.b
	case TF32:
		return p.f32 == o.f32
	case TInt:
		return p.i32 == o.i32
	case TU32:
		return p.u32 == o.u32
	case TVec2, TVec3, TVec4, TColor, TQuat, TCurve1, TCurve2, TCurve3, TCurve4:
		return equalFloats(p.floats, o.floats)
	case TString32, TString64, TString256, TStringRef:
		return p.str == o.str
	case TBufferInt:
		if len(p.bufI) != len(o.bufI) {
			return false
		}
		for i := range p.bufI {
			if p.bufI[i] != o.bufI[i] {
				return false
			}
		}
		return true
	case TBufferF32:
		return equalFloats(p.bufF, o.bufF)
	case TBufferU32:
		if len(p.bufU) != len(o.bufU) {
			return false
		}
		for i := range p.bufU {
			if p.bufU[i] != o.bufU[i] {
				return false
			}
		}
		return true
	case TBufferBinary:
		if len(p.bufB) != len(o.bufB) {
			return false
		}
		for i := range p.bufB {
			if p.bufB[i] != o.bufB[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalFloats(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
