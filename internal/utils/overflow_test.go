package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeMultiply(t *testing.T) {
	tests := []struct {
		name      string
		a, b      uint64
		want      uint64
		wantError bool
	}{
		{"zero multiplication", 0, math.MaxUint64, 0, false},
		{"small numbers", 123, 456, 56088, false},
		{"overflow", math.MaxUint64, 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeMultiply(tt.a, tt.b)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSafeAdd(t *testing.T) {
	_, err := SafeAdd(math.MaxUint64, 1)
	require.Error(t, err)

	got, err := SafeAdd(2, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(5), got)
}

func TestValidateBufferSize(t *testing.T) {
	require.NoError(t, ValidateBufferSize(1000, 1000, "test"))
	require.Error(t, ValidateBufferSize(1001, 1000, "test"))
}
