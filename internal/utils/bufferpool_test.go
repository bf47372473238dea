package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBuffer(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"small buffer within pool capacity", 1024},
		{"exact pool default size", 4096},
		{"larger than pool capacity", 8192},
		{"zero size", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := GetBuffer(tt.size)
			require.Len(t, buf, tt.size)
			require.GreaterOrEqual(t, cap(buf), tt.size)
			ReleaseBuffer(buf)
		})
	}
}

func TestBufferPoolReuse(t *testing.T) {
	buf1 := GetBuffer(2048)
	buf1[0] = 0xAB
	ReleaseBuffer(buf1)

	buf2 := GetBuffer(2048)
	require.Len(t, buf2, 2048)
	ReleaseBuffer(buf2)
}

func TestBufferPoolConcurrency(t *testing.T) {
	const goroutines = 8
	const iterations = 50

	done := make(chan bool, goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			for i := 0; i < iterations; i++ {
				size := 64 + (i % 512)
				buf := GetBuffer(size)
				for j := range buf {
					buf[j] = byte(j)
				}
				ReleaseBuffer(buf)
			}
			done <- true
		}()
	}
	for g := 0; g < goroutines; g++ {
		<-done
	}
}
