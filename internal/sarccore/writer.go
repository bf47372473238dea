package sarccore

import (
	"bytes"
	"encoding/binary"

	"github.com/zeldamods/oead/internal/utils"
)

// entry is a file pending serialisation, with an explicit or auto-sniffed
// alignment request.
type entry struct {
	name      string
	data      []byte
	alignment uint32 // 0 means "sniff from content"
}

// Writer accumulates files and serialises them into a SARC archive.
type Writer struct {
	order        binary.ByteOrder
	minAlignment uint32
	entries      []entry
}

// NewWriter creates a Writer with the given byte order and archive-wide
// minimum alignment (spec §4.3; DefaultMinAlignment if zero).
func NewWriter(order binary.ByteOrder, minAlignment uint32) *Writer {
	if minAlignment == 0 {
		minAlignment = DefaultMinAlignment
	}
	return &Writer{order: order, minAlignment: minAlignment}
}

// Add stages a file for inclusion. alignment == 0 requests content sniffing.
func (w *Writer) Add(name string, data []byte, alignment uint32) {
	w.entries = append(w.entries, entry{name: name, data: data, alignment: alignment})
}

// FromDocument rebuilds a Writer from a previously parsed archive, preserving
// its files and byte order. Files are added in the document's hash-sorted
// order with DefaultMinAlignment, and each file's alignment is re-derived by
// content sniffing. The archive's original minimum alignment, any explicit
// per-file alignment and its original payload order are not kept, so the
// rewritten bytes match the source only when those coincide.
func FromDocument(doc *Document) *Writer {
	w := NewWriter(doc.order, DefaultMinAlignment)
	for _, f := range doc.files {
		w.Add(f.Name, f.Data, 0)
	}
	return w
}

// sniffAlignment inspects a file's content per spec §6.2's fixed table.
func sniffAlignment(data []byte) uint32 {
	has := func(prefixes ...string) bool {
		for _, p := range prefixes {
			if len(data) >= len(p) && string(data[:len(p)]) == p {
				return true
			}
		}
		return false
	}
	switch {
	case has("BNTX", "BNSH"):
		return 0x1000
	case has("FRES"):
		return 0x2000
	case has("Gfx2"):
		return 0x2000
	case has("SARC"):
		return 0x2000
	case has("AAMP"):
		return 8
	case has("BY", "YB"):
		return 4
	default:
		return 4
	}
}

// Write serialises the archive, returning the overall archive alignment
// (the max over the minimum and every file's effective alignment) and the
// encoded bytes.
func (w *Writer) Write() (uint32, []byte, error) {
	resolved := make([]uint32, len(w.entries))
	archiveAlignment := w.minAlignment
	for i, e := range w.entries {
		align := e.alignment
		if align == 0 {
			align = sniffAlignment(e.data)
		}
		if align < w.minAlignment {
			align = w.minAlignment
		}
		resolved[i] = align
		if align > archiveAlignment {
			archiveAlignment = align
		}
	}

	order := sortedIndices(filesOf(w.entries), DefaultHashMultiplier)

	// Name table: each name NUL-terminated, padded to a 4-byte boundary.
	var sfnt bytes.Buffer
	nameOffsets := make([]uint32, len(w.entries))
	for _, i := range order {
		nameOffsets[i] = uint32(sfnt.Len() / 4)
		sfnt.WriteString(w.entries[i].name)
		sfnt.WriteByte(0)
		for sfnt.Len()%4 != 0 {
			sfnt.WriteByte(0)
		}
	}

	nodeTableSize, err := utils.SafeMultiply(uint64(len(order)), 16)
	if err != nil {
		return 0, nil, err
	}
	headerTotalU, err := utils.SafeAdd(uint64(sarcHeaderSize), uint64(sfatHeaderSize))
	if err != nil {
		return 0, nil, err
	}
	headerTotalU, err = utils.SafeAdd(headerTotalU, nodeTableSize)
	if err != nil {
		return 0, nil, err
	}
	headerTotalU, err = utils.SafeAdd(headerTotalU, uint64(sfntHeaderSize))
	if err != nil {
		return 0, nil, err
	}
	headerTotalU, err = utils.SafeAdd(headerTotalU, uint64(sfnt.Len()))
	if err != nil {
		return 0, nil, err
	}
	dataOffset := alignUp(int(headerTotalU), int(archiveAlignment))
	if err := utils.ValidateBufferSize(uint64(dataOffset), utils.MaxSarcSize, "sarc header section"); err != nil {
		return 0, nil, err
	}

	// Lay out file payloads in Add() order (insertion order is what the
	// caller observes via round-trip of data bytes); only the SFAT table is
	// hash-sorted.
	begins := make([]uint32, len(w.entries))
	ends := make([]uint32, len(w.entries))
	cursor := dataOffset
	for i, e := range w.entries {
		cursor = alignUp(cursor, int(resolved[i]))
		begins[i] = uint32(cursor - dataOffset)
		cursorU, err := utils.SafeAdd(uint64(cursor), uint64(len(e.data)))
		if err != nil {
			return 0, nil, err
		}
		cursor = int(cursorU)
		ends[i] = uint32(cursor - dataOffset)
	}
	totalSize := cursor
	if err := utils.ValidateBufferSize(uint64(totalSize), utils.MaxSarcSize, "sarc archive"); err != nil {
		return 0, nil, err
	}

	out := utils.NewWriter(w.order)
	out.WriteBytes([]byte(sarcMagic))
	out.WriteU16(sarcHeaderSize)
	if w.order == binary.BigEndian {
		out.WriteU8(0xFE)
		out.WriteU8(0xFF)
	} else {
		out.WriteU8(0xFF)
		out.WriteU8(0xFE)
	}
	out.WriteU32(uint32(totalSize))
	out.WriteU32(uint32(dataOffset))
	out.WriteU16(DefaultVersion)
	out.WriteU16(0)

	out.WriteBytes([]byte(sfatMagic))
	out.WriteU16(sfatHeaderSize)
	out.WriteU16(uint16(len(w.entries)))
	out.WriteU32(DefaultHashMultiplier)

	for _, i := range order {
		e := w.entries[i]
		out.WriteU32(NameHash(e.name, DefaultHashMultiplier))
		out.WriteU32(nameFlagBit | nameOffsets[i])
		out.WriteU32(begins[i])
		out.WriteU32(ends[i])
	}

	out.WriteBytes([]byte(sfntMagic))
	out.WriteU16(sfntHeaderSize)
	out.WriteU16(0)
	out.WriteBytes(sfnt.Bytes())

	for out.Len() < dataOffset {
		out.WriteU8(0)
	}
	for i, e := range w.entries {
		for out.Len() < dataOffset+int(begins[i]) {
			out.WriteU8(0)
		}
		out.WriteBytes(e.data)
	}

	return archiveAlignment, out.Bytes(), nil
}

func filesOf(entries []entry) []File {
	files := make([]File, len(entries))
	for i, e := range entries {
		files[i] = File{Name: e.name, Data: e.data}
	}
	return files
}

func alignUp(v, n int) int {
	if rem := v % n; rem != 0 {
		return v + (n - rem)
	}
	return v
}
