package logutil

import "testing"

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "shorter than limit",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exactly at limit",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "scan token truncated",
			input:    "qr_9f3b2a1c8d7e6f5a4b3c",
			maxLen:   8,
			expected: "qr_9f3b2...",
		},
		{
			name:     "zero limit",
			input:    "hello",
			maxLen:   0,
			expected: "...",
		},
		{
			name:     "negative limit",
			input:    "hello",
			maxLen:   -1,
			expected: "...",
		},
		{
			name:     "limit of one",
			input:    "hello",
			maxLen:   1,
			expected: "h...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateForLog(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("TruncateForLog(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}
