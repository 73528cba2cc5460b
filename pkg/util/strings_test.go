package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", MaxLogBodySize+10)

	tests := []struct {
		name    string
		input   string
		maxSize int
		want    string
	}{
		{"short body untouched", "<s:Envelope/>", 64, "<s:Envelope/>"},
		{"exact size untouched", "abcd", 4, "abcd"},
		{"cut at limit", "abcdef", 4, "abcd...(truncated)"},
		{"empty body", "", 4, ""},
		{"default limit", long, 0, long[:MaxLogBodySize] + "...(truncated)"},
		{"negative uses default", "short", -1, "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateBody(tt.input, tt.maxSize))
		})
	}
}
