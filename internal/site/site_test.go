package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	daraz := NewDaraz()

	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{
			name:     "protocol relative link gets https scheme",
			href:     "//www.daraz.pk/products/some-product-i123.html",
			expected: "https://www.daraz.pk/products/some-product-i123.html",
		},
		{
			name:     "site relative path resolved against base",
			href:     "/products/some-product-i123.html",
			expected: "https://www.daraz.pk/products/some-product-i123.html",
		},
		{
			name:     "absolute URL unchanged",
			href:     "https://www.daraz.pk/products/x-i9.html",
			expected: "https://www.daraz.pk/products/x-i9.html",
		},
		{
			name:     "empty href stays empty",
			href:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, daraz.NormalizeURL(tt.href))
		})
	}
}

func TestNextControlDisabled(t *testing.T) {
	daraz := NewDaraz()

	assert.False(t, daraz.NextControlDisabled("false"))
	assert.False(t, daraz.NextControlDisabled("FALSE"))
	assert.True(t, daraz.NextControlDisabled("true"))
	// A missing aria-disabled attribute reads as empty and counts as disabled.
	assert.True(t, daraz.NextControlDisabled(""))
}
