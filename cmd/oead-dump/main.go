// Package main provides a command-line utility to dump a textual summary of
// a Yaz0/SARC/BYML/AAMP file, sniffed by its magic bytes. It is diagnostic
// tooling alongside the codec packages, not part of their core scope.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/zeldamods/oead"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: oead-dump <file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("read %s: %v", args[0], err)
	}

	if err := dump(data); err != nil {
		log.Fatalf("dump %s: %v", args[0], err)
	}
}

func dump(data []byte) error {
	switch {
	case len(data) >= 4 && string(data[:4]) == "Yaz0":
		return dumpYaz0(data)
	case len(data) >= 4 && string(data[:4]) == "SARC":
		return dumpSarc(data)
	case len(data) >= 2 && (string(data[:2]) == "BY" || string(data[:2]) == "YB"):
		return dumpByml(data)
	case len(data) >= 4 && string(data[:4]) == "AAMP":
		return dumpAamp(data)
	default:
		return fmt.Errorf("unrecognised file: unknown magic %q", headBytes(data))
	}
}

func headBytes(data []byte) []byte {
	if len(data) > 4 {
		return data[:4]
	}
	return data
}

func dumpYaz0(data []byte) error {
	h, err := oead.Yaz0GetHeader(data)
	if err != nil {
		return err
	}
	fmt.Printf("Yaz0: uncompressed_size=%d reserved=%x\n", h.UncompressedSize, h.Reserved)
	out, err := oead.Yaz0Decompress(data)
	if err != nil {
		return err
	}
	fmt.Printf("decompressed %d bytes\n", len(out))
	return dump(out)
}

func dumpSarc(data []byte) error {
	doc, err := oead.SarcParse(data)
	if err != nil {
		return err
	}
	files := doc.Files()
	fmt.Printf("SARC: %d files, big_endian=%v\n", len(files), doc.BigEndian())
	for _, f := range files {
		fmt.Printf("  %-40s %8d bytes\n", f.Name, len(f.Data))
	}
	return nil
}

func dumpByml(data []byte) error {
	v, err := oead.BymlFromBinary(data)
	if err != nil {
		return err
	}
	text, err := oead.BymlToText(v)
	if err != nil {
		return err
	}
	fmt.Printf("BYML:\n%s\n", indent(text))
	return nil
}

func dumpAamp(data []byte) error {
	pio, err := oead.AampFromBinary(data)
	if err != nil {
		return err
	}
	fmt.Printf("AAMP: type=%q version=%d\n", pio.Type, pio.Version)
	text, err := oead.AampToText(pio)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", indent(text))
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
