// pkg/charset/detect_test.go
package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBOM(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		hasBOM    bool
		bomType   string
		bomLength int
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, true, EncodingUTF8, 3},
		{"utf16le bom", []byte{0xFF, 0xFE, 'a', 0x00}, true, EncodingUTF16LE, 2},
		{"utf16be bom", []byte{0xFE, 0xFF, 0x00, 'a'}, true, EncodingUTF16BE, 2},
		{"no bom", []byte("plain text"), false, BOMNone, 0},
		{"empty", nil, false, BOMNone, 0},
		{"truncated utf8 bom", []byte{0xEF, 0xBB}, false, BOMNone, 0},
		{"bom only", []byte{0xEF, 0xBB, 0xBF}, true, EncodingUTF8, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bom := DetectBOM(tt.data)
			assert.Equal(t, tt.hasBOM, bom.HasBOM)
			assert.Equal(t, tt.bomType, bom.BOMType)
			assert.Equal(t, tt.bomLength, bom.BOMLength)
		})
	}
}

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		encoding   string
		confidence float64
		hasBOM     bool
	}{
		{"pure ascii", []byte("Employee_ID,Name\nE001,Alice\n"), EncodingUTF8, 0.9, false},
		{"valid utf8 multibyte", []byte("café"), EncodingUTF8, 1.0, false},
		{"windows-1252 smart quotes", []byte{'s', 'a', 'i', 'd', ' ', 0x93, 'h', 'i', 0x94}, EncodingWin1252, 0.7, false},
		{"iso-8859-1 accented", []byte{'c', 'a', 'f', 0xE9}, EncodingLatin1, 0.6, false},
		{"empty input", nil, EncodingUTF8, 1.0, false},
		{"bom wins", []byte{0xEF, 0xBB, 0xBF, 0x93}, EncodingUTF8, 1.0, true},
		{"utf16le bom", []byte{0xFF, 0xFE, 'a', 0x00}, EncodingUTF16LE, 1.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := DetectEncoding(tt.data)
			assert.Equal(t, tt.encoding, enc.Encoding)
			assert.InDelta(t, tt.confidence, enc.Confidence, 0.001)
			assert.Equal(t, tt.hasBOM, enc.HasBOM)
		})
	}
}

func TestStripBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,name")...)
	require.Equal(t, []byte("id,name"), StripBOM(withBOM))

	plain := []byte("id,name")
	assert.Equal(t, plain, StripBOM(plain))

	utf16 := []byte{0xFF, 0xFE, 'a', 0x00}
	assert.Equal(t, []byte{'a', 0x00}, StripBOM(utf16))

	assert.Empty(t, StripBOM(nil))
}
