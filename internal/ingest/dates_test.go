package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_KnownLayouts(t *testing.T) {
	n := NewDateNormalizer(discardLogger())
	n.now = func() time.Time { return testNow }

	tests := []struct {
		name  string
		input string
	}{
		{"terminal", "2024.03.11T14:22:09"},
		{"iso", "2024-03-11T14:22:09"},
		{"dotted space", "2024.03.11 14:22:09"},
		{"dashed space", "2024-03-11 14:22:09"},
	}

	want := time.Date(2024, 3, 11, 14, 22, 9, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			assert.Equal(t, "2024-03-11T14:22:09", got)

			// тот же момент времени после обратного разбора
			parsed, err := time.Parse(CanonicalLayout, got)
			require.NoError(t, err)
			assert.True(t, parsed.Equal(want))

			assert.Equal(t, got, n.Normalize(tt.input))
		})
	}
}

func TestNormalize_UnpaddedFields(t *testing.T) {
	n := NewDateNormalizer(discardLogger())
	n.now = func() time.Time { return testNow }

	tests := []struct {
		input string
		want  string
	}{
		{"2024.3.11T14:22:09", "2024-03-11T14:22:09"},
		{"2024-3-1T14:22:09", "2024-03-01T14:22:09"},
		{"2024.03.11 9:05:07", "2024-03-11T09:05:07"},
		{"2024-3-11 14:2:9", "2024-03-11T14:02:09"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalize_FallsBackToNow(t *testing.T) {
	n := NewDateNormalizer(discardLogger())
	n.now = func() time.Time { return testNow }

	for _, input := range []string{"", "yesterday", "2024/03/11 14:22", "11.03.2024 14:22:09", "2024-03-11T14:22:09Z"} {
		got := n.Normalize(input)
		assert.Equal(t, "2025-01-02T03:04:05", got, "input %q", input)

		_, err := time.Parse(CanonicalLayout, got)
		assert.NoError(t, err)
	}
}
