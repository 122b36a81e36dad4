package util

import (
	"testing"
)

func TestHumanReadableSize(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{
			name:  "zero bytes",
			input: 0,
			want:  "0 B",
		},
		{
			name:  "bytes below the KB boundary",
			input: 1023,
			want:  "1023 B",
		},
		{
			name:  "exactly 1 KB",
			input: 1024,
			want:  "1.0 KB",
		},
		{
			name:  "KB at MB boundary",
			input: 1048575,
			want:  "1024.0 KB",
		},
		{
			name:  "typical reclaimable size in MB",
			input: 4 * 1024 * 1024,
			want:  "4.0 MB",
		},
		{
			name:  "fractional MB from odd file sizes",
			input: 1536 * 1024,
			want:  "1.5 MB",
		},
		{
			name:  "GB scale totals",
			input: 5 * 1024 * 1024 * 1024,
			want:  "5.0 GB",
		},
		{
			name:  "TB scale totals",
			input: 2 * 1024 * 1024 * 1024 * 1024,
			want:  "2.0 TB",
		},
		{
			name:  "negative size passes through as bytes",
			input: -10,
			want:  "-10 B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HumanReadableSize(tt.input); got != tt.want {
				t.Errorf("HumanReadableSize(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Sizes parsed from flags must render back at the expected magnitude.
func TestHumanReadableSizeRoundTripsParsedSizes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"64KB", "64.0 KB"},
		{"1MB", "1.0 MB"},
		{"2GB", "2.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			size, err := ParseByteSize(tt.input)
			if err != nil {
				t.Fatalf("ParseByteSize(%q): %v", tt.input, err)
			}
			if got := HumanReadableSize(size); got != tt.want {
				t.Errorf("round trip of %q = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
