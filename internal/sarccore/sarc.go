// Package sarccore implements the SARC archive container: a flat table of
// named, aligned byte blobs (SFAT node table + SFNT name pool + payload).
package sarccore

import (
	"encoding/binary"
	"sort"

	"github.com/zeldamods/oead/internal/utils"
)

const (
	sarcMagic = "SARC"
	sfatMagic = "SFAT"
	sfntMagic = "SFNT"

	sarcHeaderSize = 0x14
	sfatHeaderSize = 0x0C
	sfntHeaderSize = 0x08

	bomSameEndian = 0xFEFF
	bomSwapped    = 0xFFFE

	// DefaultVersion is the only SARC version this codec reads or writes.
	DefaultVersion = 0x0100

	// DefaultHashMultiplier is the multiplier used by NameHash ("mul" in spec §4.3).
	DefaultHashMultiplier = 0x65

	nameFlagBit = 1 << 31

	// DefaultMinAlignment is the archive-wide minimum alignment before any
	// per-file content sniffing raises it.
	DefaultMinAlignment = 4
)

// NameHash computes the SARC name hash: h = h*mul + b over each byte,
// unsigned 32-bit arithmetic, default mul = 0x65.
func NameHash(name string, mul uint32) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*mul + uint32(name[i])
	}
	return h
}

// File is one archive entry as observed during parsing or built by Writer.
type File struct {
	Name string
	Data []byte
}

// Document is a parsed, immutable view of a SARC archive.
type Document struct {
	files      []File
	order      binary.ByteOrder
	multiplier uint32
}

// Order returns the byte order the archive was parsed in.
func (d *Document) Order() binary.ByteOrder { return d.order }

// Files returns every entry in on-disk (hash-sorted) order.
func (d *Document) Files() []File { return d.files }

// Get returns the data stored under name, or (nil, false) if absent.
func (d *Document) Get(name string) ([]byte, bool) {
	for _, f := range d.files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

type sfatNode struct {
	hash           uint32
	nameOffsetFlag uint32
	dataBegin      uint32
	dataEnd        uint32
}

// Parse reads a complete SARC archive from data.
func Parse(data []byte) (*Document, error) {
	if len(data) < sarcHeaderSize {
		return nil, utils.WrapError("sarc header", utils.ErrTruncated)
	}
	if string(data[0:4]) != sarcMagic {
		return nil, utils.WrapError("sarc header", utils.ErrBadMagic)
	}

	// The BOM is always the two bytes 0xFE, 0xFF in the archive's own byte
	// order: [0xFE, 0xFF] on the wire means big-endian, [0xFF, 0xFE] means
	// little-endian.
	var order binary.ByteOrder
	switch {
	case data[6] == 0xFE && data[7] == 0xFF:
		order = binary.BigEndian
	case data[6] == 0xFF && data[7] == 0xFE:
		order = binary.LittleEndian
	default:
		return nil, utils.WrapError("sarc header", utils.ErrBadOffset)
	}

	r := utils.NewReader(data, order)
	r.Seek(4)
	headerSize, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if headerSize != sarcHeaderSize {
		return nil, utils.WrapError("sarc header size", utils.ErrBadVersion)
	}
	r.Skip(2) // BOM, already validated
	_, err = r.ReadU32()
	if err != nil {
		return nil, err
	} // file size, not needed for parsing
	dataOffset, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	version, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if version != DefaultVersion {
		return nil, utils.WrapError("sarc version", utils.ErrBadVersion)
	}
	r.Skip(2) // reserved

	sfatTag, err := r.ReadBytes(4)
	if err != nil {
		return nil, utils.WrapOffset("sfat header", r.Pos(), err)
	}
	if string(sfatTag) != sfatMagic {
		return nil, utils.WrapError("sfat header", utils.ErrBadMagic)
	}
	sfatHeaderLen, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if sfatHeaderLen != sfatHeaderSize {
		return nil, utils.WrapError("sfat header size", utils.ErrBadVersion)
	}
	nodeCount, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	multiplier, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	nodes := make([]sfatNode, nodeCount)
	for i := range nodes {
		hash, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		nameOffsetFlag, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		dataBegin, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		dataEnd, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		nodes[i] = sfatNode{hash, nameOffsetFlag, dataBegin, dataEnd}
	}

	sfntTag, err := r.ReadBytes(4)
	if err != nil {
		return nil, utils.WrapOffset("sfnt header", r.Pos(), err)
	}
	if string(sfntTag) != sfntMagic {
		return nil, utils.WrapError("sfnt header", utils.ErrBadMagic)
	}
	sfntHeaderLen, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if sfntHeaderLen != sfntHeaderSize {
		return nil, utils.WrapError("sfnt header size", utils.ErrBadVersion)
	}
	r.Skip(2)
	sfntStart := r.Pos()

	files := make([]File, nodeCount)
	for i, n := range nodes {
		var name string
		if n.nameOffsetFlag&nameFlagBit != 0 {
			nameOff := sfntStart + int(n.nameOffsetFlag&0x00FFFFFF)*4
			nr := utils.NewReader(data, order)
			nr.Seek(nameOff)
			name, err = nr.ReadCString()
			if err != nil {
				return nil, utils.WrapOffset("sfnt name", nameOff, err)
			}
		}
		begin, end := int(n.dataBegin), int(n.dataEnd)
		fileStart := int(dataOffset) + begin
		fileEnd := int(dataOffset) + end
		if fileEnd < fileStart || fileEnd > len(data) {
			return nil, utils.WrapError("sarc file bounds", utils.ErrBadOffset)
		}
		files[i] = File{Name: name, Data: data[fileStart:fileEnd]}
	}

	return &Document{files: files, order: order, multiplier: multiplier}, nil
}

// sortedIndices returns indices into files ordered by (hash, name) ascending,
// the order SFAT records must appear in on disk.
func sortedIndices(files []File, mul uint32) []int {
	idx := make([]int, len(files))
	hashes := make([]uint32, len(files))
	for i, f := range files {
		idx[i] = i
		hashes[i] = NameHash(f.Name, mul)
	}
	sort.Slice(idx, func(a, b int) bool {
		ha, hb := hashes[idx[a]], hashes[idx[b]]
		if ha != hb {
			return ha < hb
		}
		return files[idx[a]].Name < files[idx[b]].Name
	})
	return idx
}
