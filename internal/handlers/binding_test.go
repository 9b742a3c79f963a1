package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "Simple List",
			raw:      "a,b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "Whitespace And Empty Elements",
			raw:      " a , ,b,,c ",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "Empty Input",
			raw:      "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitAndTrim(tt.raw, ","))
		})
	}
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    []uint
		expectError bool
	}{
		{
			name:     "Comma Separated IDs",
			raw:      "1, 2,3",
			expected: []uint{1, 2, 3},
		},
		{
			name:     "Empty Input",
			raw:      "",
			expected: nil,
		},
		{
			name:        "Non Numeric Element",
			raw:         "1,abc,3",
			expectError: true,
		},
		{
			name:        "Negative Number",
			raw:         "-1",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := parseIDList(tt.raw)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
		})
	}
}
