package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "other inside span",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 12, End: 18},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "other extends right",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 15, End: 30},
			expected: Span{File: 1, Start: 10, End: 30},
		},
		{
			name:     "other extends left",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 2, End: 12},
			expected: Span{File: 1, Start: 2, End: 20},
		},
		{
			name:     "other covers span",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 0, End: 40},
			expected: Span{File: 1, Start: 0, End: 40},
		},
		{
			name:     "different file ignored",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 40},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "zero-length other",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 25, End: 25},
			expected: Span{File: 1, Start: 10, End: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Cover(tt.other)
			if result != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_EmptyLen(t *testing.T) {
	tests := []struct {
		name  string
		span  Span
		empty bool
		len   uint32
	}{
		{"empty at zero", Span{File: 1, Start: 0, End: 0}, true, 0},
		{"empty at offset", Span{File: 1, Start: 7, End: 7}, true, 0},
		{"one byte", Span{File: 1, Start: 7, End: 8}, false, 1},
		{"wide", Span{File: 1, Start: 3, End: 40}, false, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
			if got := tt.span.Len(); got != tt.len {
				t.Errorf("Len() = %d, want %d", got, tt.len)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	sp := Span{File: 1, Start: 5, End: 10}
	tests := []struct {
		off  uint32
		want bool
	}{
		{4, false},
		{5, true},
		{9, true},
		{10, false}, // End не включается
		{100, false},
	}
	for _, tt := range tests {
		if got := sp.Contains(tt.off); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}

func TestSpan_SliceText(t *testing.T) {
	content := []byte("greeting = '%s' % name\n")

	tests := []struct {
		name string
		span Span
		want string
	}{
		{"literal", Span{Start: 11, End: 15}, "'%s'"},
		{"whole", Span{Start: 0, End: 23}, "greeting = '%s' % name"},
		{"empty", Span{Start: 4, End: 4}, ""},
		{"out of range", Span{Start: 10, End: 200}, ""},
		{"inverted", Span{Start: 9, End: 3}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Text(content); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpan_String(t *testing.T) {
	sp := Span{File: 2, Start: 3, End: 9}
	if got := sp.String(); got != "2:3-9" {
		t.Errorf("String() = %q, want %q", got, "2:3-9")
	}
}
