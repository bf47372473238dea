package oead

import "github.com/zeldamods/oead/internal/aampcore"

// AampParamType is the one-byte type tag stored in each parameter record
// (spec §4.5).
type AampParamType = aampcore.ParamType

// The fixed 21-member parameter type table, spec §4.5.
const (
	AampBool         = aampcore.TBool
	AampF32          = aampcore.TF32
	AampInt          = aampcore.TInt
	AampVec2         = aampcore.TVec2
	AampVec3         = aampcore.TVec3
	AampVec4         = aampcore.TVec4
	AampColor        = aampcore.TColor
	AampString32     = aampcore.TString32
	AampString64     = aampcore.TString64
	AampCurve1       = aampcore.TCurve1
	AampCurve2       = aampcore.TCurve2
	AampCurve3       = aampcore.TCurve3
	AampCurve4       = aampcore.TCurve4
	AampBufferInt    = aampcore.TBufferInt
	AampBufferF32    = aampcore.TBufferF32
	AampString256    = aampcore.TString256
	AampQuat         = aampcore.TQuat
	AampU32          = aampcore.TU32
	AampBufferU32    = aampcore.TBufferU32
	AampBufferBinary = aampcore.TBufferBinary
	AampStringRef    = aampcore.TStringRef
)

// AampHash computes the CRC32/IEEE name hash used throughout AAMP (spec
// §4.5): reflected polynomial 0xEDB88320, initial value and final XOR both
// 0xFFFFFFFF.
func AampHash(name string) uint32 { return aampcore.Hash(name) }

// AampParameter is a single typed leaf value (spec §3.4).
type AampParameter = aampcore.Parameter

// AampParameterObject is an ordered, hash-keyed map of parameters.
type AampParameterObject = aampcore.ParameterObject

// AampParameterList is a tree node owning child lists and child objects,
// each hash-keyed.
type AampParameterList = aampcore.ParameterList

// AampParameterIO is the document root: a type tag, version, and root list.
type AampParameterIO = aampcore.ParameterIO

var (
	NewAampBool         = aampcore.NewBool
	NewAampF32          = aampcore.NewF32
	NewAampInt          = aampcore.NewInt
	NewAampU32          = aampcore.NewU32
	NewAampVec2         = aampcore.NewVec2
	NewAampVec3         = aampcore.NewVec3
	NewAampVec4         = aampcore.NewVec4
	NewAampColor        = aampcore.NewColor
	NewAampQuat         = aampcore.NewQuat
	NewAampCurve        = aampcore.NewCurve
	NewAampString32     = aampcore.NewString32
	NewAampString64     = aampcore.NewString64
	NewAampString256    = aampcore.NewString256
	NewAampStringRef    = aampcore.NewStringRef
	NewAampBufferInt    = aampcore.NewBufferInt
	NewAampBufferF32    = aampcore.NewBufferF32
	NewAampBufferU32    = aampcore.NewBufferU32
	NewAampBufferBinary    = aampcore.NewBufferBinary
	NewAampParameterObject = aampcore.NewParameterObject
	NewAampParameterList   = aampcore.NewParameterList
)

// AampFromBinary parses a complete AAMP document.
func AampFromBinary(data []byte) (*AampParameterIO, error) {
	return aampcore.FromBinary(data)
}

// AampToBinary serialises pio into a complete AAMP document. Unlike BYML, no
// structural deduplication is performed: byte-exact round-trip of arbitrary
// input is not guaranteed, only semantic equality (spec §4.5).
func AampToBinary(pio *AampParameterIO) ([]byte, error) {
	return aampcore.ToBinary(pio)
}

// AampFromText parses a YAML document back into an AampParameterIO.
func AampFromText(data []byte) (*AampParameterIO, error) {
	return aampcore.FromText(data)
}

// AampToText renders pio as a YAML document. Parameters are keyed by their
// original name when the process-wide name table resolves the hash, else by
// the explicit hex hash form (spec §4.6).
func AampToText(pio *AampParameterIO) (string, error) {
	return aampcore.ToText(pio)
}
