package oead

import (
	"encoding/binary"

	"github.com/zeldamods/oead/internal/sarccore"
)

// SarcFile is one archive entry: its path name and byte content.
type SarcFile struct {
	Name string
	Data []byte
}

// SarcDocument is a parsed, immutable view of a SARC archive.
type SarcDocument struct {
	doc *sarccore.Document
}

// SarcParse reads a complete SARC archive from data.
func SarcParse(data []byte) (*SarcDocument, error) {
	doc, err := sarccore.Parse(data)
	if err != nil {
		return nil, err
	}
	return &SarcDocument{doc: doc}, nil
}

// Files returns every entry in on-disk (hash-sorted) order.
func (d *SarcDocument) Files() []SarcFile {
	files := d.doc.Files()
	out := make([]SarcFile, len(files))
	for i, f := range files {
		out[i] = SarcFile{Name: f.Name, Data: f.Data}
	}
	return out
}

// Get returns the data stored under name, or (nil, false) if absent.
func (d *SarcDocument) Get(name string) ([]byte, bool) {
	return d.doc.Get(name)
}

// BigEndian reports whether the archive was parsed as big-endian.
func (d *SarcDocument) BigEndian() bool {
	return d.doc.Order() == binary.BigEndian
}

// SarcWriter accumulates files and serialises them into a SARC archive,
// sniffing per-file alignment from content when not given explicitly
// (spec §4.3, §6.2).
type SarcWriter struct {
	w *sarccore.Writer
}

// NewSarcWriter creates a SarcWriter. minAlignment of 0 uses the archive-wide
// default (4).
func NewSarcWriter(bigEndian bool, minAlignment uint32) *SarcWriter {
	order := binary.ByteOrder(binary.LittleEndian)
	if bigEndian {
		order = binary.BigEndian
	}
	return &SarcWriter{w: sarccore.NewWriter(order, minAlignment)}
}

// FromSarc rebuilds a SarcWriter from a previously parsed archive, preserving
// its files and byte order.
func FromSarc(doc *SarcDocument) *SarcWriter {
	return &SarcWriter{w: sarccore.FromDocument(doc.doc)}
}

// Add stages a file for inclusion. alignment == 0 requests content sniffing
// per the fixed table in spec §6.2.
func (w *SarcWriter) Add(name string, data []byte, alignment uint32) {
	w.w.Add(name, data, alignment)
}

// Write serialises the archive, returning the overall archive alignment (the
// max over the minimum and every file's effective alignment) and the encoded
// bytes.
func (w *SarcWriter) Write() (alignment uint32, data []byte, err error) {
	return w.w.Write()
}
