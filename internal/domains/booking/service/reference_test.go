package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReference(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 123_000_000, time.UTC)
	stamp := fmt.Sprintf("%06d", at.UnixMilli()%1000000)

	tests := []struct {
		name   string
		random int
		want   string
	}{
		{"zero pads the random part", 7, "BK" + stamp + "0007"},
		{"full four digits", 9876, "BK" + stamp + "9876"},
		{"random wraps at the bound", 12345, "BK" + stamp + "2345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateReference(at, tt.random)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, 12)
		})
	}
}

func TestNewReference_Shape(t *testing.T) {
	ref := newReference()
	assert.Len(t, ref, 12)
	assert.Equal(t, "BK", ref[:2])

	for _, c := range ref[2:] {
		assert.True(t, c >= '0' && c <= '9', "expected digit, got %q", c)
	}
}
