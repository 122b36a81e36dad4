package util

import (
	"strings"
	"testing"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        int64
		wantErr     bool
		errContains string
	}{
		{
			name:  "bare number is bytes",
			input: "4096",
			want:  4096,
		},
		{
			name:  "zero",
			input: "0",
			want:  0,
		},
		{
			name:  "explicit bytes suffix",
			input: "512B",
			want:  512,
		},
		{
			name:  "kilobytes",
			input: "64KB",
			want:  64 * 1024,
		},
		{
			name:  "megabytes",
			input: "4MB",
			want:  4 * 1024 * 1024,
		},
		{
			name:  "gigabytes",
			input: "1GB",
			want:  1024 * 1024 * 1024,
		},
		{
			name:  "fractional megabytes",
			input: "1.5MB",
			want:  1572864,
		},
		{
			name:  "lowercase suffix",
			input: "16kb",
			want:  16 * 1024,
		},
		{
			name:  "surrounding whitespace",
			input: "  8KB ",
			want:  8 * 1024,
		},
		{
			name:        "empty string",
			input:       "",
			wantErr:     true,
			errContains: "invalid size format",
		},
		{
			name:        "non-numeric",
			input:       "abc",
			wantErr:     true,
			errContains: "invalid size format",
		},
		{
			name:        "negative size",
			input:       "-1KB",
			wantErr:     true,
			errContains: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseByteSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseByteSize(%q) expected error, got %d", tt.input, got)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseByteSize(%q) error = %v, want substring %q", tt.input, err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseByteSize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseByteSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
