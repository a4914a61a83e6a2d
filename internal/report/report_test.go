package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usmandev/daraz-catalog/internal/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildWritesPDF(t *testing.T) {
	builder := NewBuilder(DefaultOptions(), nil)
	output := filepath.Join(t.TempDir(), "catalog.pdf")

	records := []models.Record{
		{
			Title: "Usman Tee - premium cotton, all sizes",
			Price: "Rs. 499",
			Link:  "https://www.daraz.pk/products/tee-i1.html",
			Image: pngBytes(t, 16, 24),
			Page:  1,
		},
		{
			Title: "Usman Mug",
			Price: "Rs. 899",
			Link:  "https://www.daraz.pk/products/mug-i2.html",
			Page:  1,
		},
	}

	require.NoError(t, builder.Build(records, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output should be a PDF")
	assert.Greater(t, len(data), 500)
}

func TestBuildEmptyCatalog(t *testing.T) {
	builder := NewBuilder(DefaultOptions(), nil)
	output := filepath.Join(t.TempDir(), "empty.pdf")

	require.NoError(t, builder.Build(nil, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestBuildToleratesBadImageBytes(t *testing.T) {
	builder := NewBuilder(DefaultOptions(), nil)
	output := filepath.Join(t.TempDir(), "catalog.pdf")

	records := []models.Record{
		{
			Title: "Broken image product",
			Price: "Rs. 100",
			Link:  "https://www.daraz.pk/products/broken-i3.html",
			Image: []byte("definitely not an image"),
		},
	}

	require.NoError(t, builder.Build(records, output))
}

func TestBuildManyRecordsSpansPages(t *testing.T) {
	builder := NewBuilder(DefaultOptions(), nil)
	output := filepath.Join(t.TempDir(), "catalog.pdf")

	var records []models.Record
	for i := 0; i < 12; i++ {
		records = append(records, models.Record{
			Title: strings.Repeat("Long product title ", 5),
			Price: "Rs. 42",
			Link:  "https://www.daraz.pk/products/x-i4.html",
		})
	}

	require.NoError(t, builder.Build(records, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	// Twelve 48mm rows cannot fit one A4 page.
	assert.Contains(t, string(data), "/Count 3")
}

func TestBuildUnwritablePath(t *testing.T) {
	builder := NewBuilder(DefaultOptions(), nil)

	err := builder.Build(nil, filepath.Join(t.TempDir(), "no", "such", "dir", "out.pdf"))
	assert.Error(t, err)
}
