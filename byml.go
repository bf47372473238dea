package oead

import (
	"encoding/binary"

	"github.com/zeldamods/oead/internal/bymlcore"
)

// BymlType identifies which arm of a BymlValue is populated (spec §3.3).
type BymlType = bymlcore.Type

// The complete set of BYML value kinds. Int32/UInt32/Int64/UInt64 are
// distinct types, never merged.
const (
	BymlNull    = bymlcore.TypeNull
	BymlBool    = bymlcore.TypeBool
	BymlInt32   = bymlcore.TypeInt32
	BymlUInt32  = bymlcore.TypeUInt32
	BymlInt64   = bymlcore.TypeInt64
	BymlUInt64  = bymlcore.TypeUInt64
	BymlFloat32 = bymlcore.TypeFloat32
	BymlFloat64 = bymlcore.TypeFloat64
	BymlString  = bymlcore.TypeString
	BymlBinary  = bymlcore.TypeBinary
	BymlArray   = bymlcore.TypeArray
	BymlHash    = bymlcore.TypeHash
)

// BymlValue is the recursive BYML value union (spec §3.3). It is a thin
// alias over the internal codec's tree so public callers never import
// internal/bymlcore directly.
type BymlValue = bymlcore.Value

// BymlHashMap is an ordered string-keyed map: iteration order is insertion
// order for textual equality; the binary writer sorts entries by key.
type BymlHashMap = bymlcore.Hash

var (
	NewBymlNull    = bymlcore.NewNull
	NewBymlBool    = bymlcore.NewBool
	NewBymlInt32   = bymlcore.NewInt32
	NewBymlUInt32  = bymlcore.NewUInt32
	NewBymlInt64   = bymlcore.NewInt64
	NewBymlUInt64  = bymlcore.NewUInt64
	NewBymlFloat32 = bymlcore.NewFloat32
	NewBymlFloat64 = bymlcore.NewFloat64
	NewBymlString  = bymlcore.NewString
	NewBymlBinary  = bymlcore.NewBinary
	NewBymlArray   = bymlcore.NewArray
	NewBymlHash    = bymlcore.NewHash
	NewBymlHashMap = bymlcore.NewHashMap
)

// BymlFromBinary parses a complete BYML document and returns its root value.
func BymlFromBinary(data []byte) (*BymlValue, error) {
	return bymlcore.FromBinary(data)
}

// BymlToBinary serialises root into a complete BYML document. root must be
// an Array or Hash (BYML documents are always rooted at a container).
func BymlToBinary(root *BymlValue, bigEndian bool, version uint16) ([]byte, error) {
	order := binary.ByteOrder(binary.LittleEndian)
	if bigEndian {
		order = binary.BigEndian
	}
	return bymlcore.ToBinary(root, order, version)
}

// BymlFromText parses a YAML document back into a BymlValue tree.
func BymlFromText(data []byte) (*BymlValue, error) {
	return bymlcore.FromText(data)
}

// BymlToText renders v as a YAML document.
func BymlToText(v *BymlValue) (string, error) {
	return bymlcore.ToText(v)
}
