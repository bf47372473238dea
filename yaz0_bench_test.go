package oead

import (
	"math/rand"
	"testing"
)

// benchCorpus mimics the mixed compressible/incompressible content the
// upstream benchmark_sizes.py fixture exercises: a run of repeated bytes
// (highly compressible, like padding or flat color data) followed by random
// noise (near-incompressible, like already-packed texture data).
func benchCorpus(size int) []byte {
	buf := make([]byte, size)
	half := size / 2
	for i := 0; i < half; i++ {
		buf[i] = byte(i % 4)
	}
	rng := rand.New(rand.NewSource(1))
	rng.Read(buf[half:])
	return buf
}

func benchmarkCompressLevel(b *testing.B, level int) {
	data := benchCorpus(256 * 1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Yaz0Compress(data, level)
	}
}

func BenchmarkCompressLevel6(b *testing.B) { benchmarkCompressLevel(b, 6) }
func BenchmarkCompressLevel7(b *testing.B) { benchmarkCompressLevel(b, 7) }
func BenchmarkCompressLevel8(b *testing.B) { benchmarkCompressLevel(b, 8) }
func BenchmarkCompressLevel9(b *testing.B) { benchmarkCompressLevel(b, 9) }

func BenchmarkDecompress(b *testing.B) {
	data := benchCorpus(256 * 1024)
	compressed := Yaz0Compress(data, 7)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Yaz0Decompress(compressed); err != nil {
			b.Fatal(err)
		}
	}
}
