// pkg/charset/detect.go
package charset

import (
	"unicode/utf8"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

// Encoding names reported by DetectEncoding. BOM types reuse the same
// names, with BOMNone for BOM-less input.
const (
	BOMNone = "none"

	EncodingUTF8    = "UTF-8"
	EncodingUTF16LE = "UTF-16LE"
	EncodingUTF16BE = "UTF-16BE"
	EncodingWin1252 = "Windows-1252"
	EncodingLatin1  = "ISO-8859-1"
)

// DetectBOM inspects the leading bytes for a byte order mark. The UTF-8
// mark is checked before the UTF-16 marks; empty input has no BOM.
func DetectBOM(data []byte) model.BOMInfo {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return model.BOMInfo{HasBOM: true, BOMType: EncodingUTF8, BOMLength: 3}
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return model.BOMInfo{HasBOM: true, BOMType: EncodingUTF16LE, BOMLength: 2}
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return model.BOMInfo{HasBOM: true, BOMType: EncodingUTF16BE, BOMLength: 2}
	default:
		return model.BOMInfo{BOMType: BOMNone}
	}
}

// DetectEncoding classifies the encoding of raw bytes with a confidence
// in [0,1]. A BOM is authoritative (confidence 1.0). Without one, pure
// ASCII and strictly valid UTF-8 multibyte sequences classify as UTF-8;
// otherwise the byte range decides: 0x80-0x9F are Windows-1252-specific
// codepoints (smart quotes live at 0x93/0x94), while 0xA0-0xFF alone
// suggests ISO-8859-1. Empty input defaults to UTF-8.
func DetectEncoding(data []byte) model.EncodingInfo {
	if bom := DetectBOM(data); bom.HasBOM {
		return model.EncodingInfo{
			Encoding:   bom.BOMType,
			Confidence: 1.0,
			HasBOM:     true,
			BOMType:    bom.BOMType,
		}
	}

	if len(data) == 0 {
		return model.EncodingInfo{Encoding: EncodingUTF8, Confidence: 1.0, BOMType: BOMNone}
	}

	hasHigh := false
	hasWin1252 := false
	for _, b := range data {
		if b >= 0x80 {
			hasHigh = true
			if b <= 0x9F {
				hasWin1252 = true
			}
		}
	}

	if !hasHigh {
		// Pure ASCII is valid UTF-8.
		return model.EncodingInfo{Encoding: EncodingUTF8, Confidence: 0.9, BOMType: BOMNone}
	}

	if utf8.Valid(data) {
		return model.EncodingInfo{Encoding: EncodingUTF8, Confidence: 1.0, BOMType: BOMNone}
	}

	if hasWin1252 {
		return model.EncodingInfo{Encoding: EncodingWin1252, Confidence: 0.7, BOMType: BOMNone}
	}

	return model.EncodingInfo{Encoding: EncodingLatin1, Confidence: 0.6, BOMType: BOMNone}
}

// StripBOM returns data without its leading byte order mark, if any.
func StripBOM(data []byte) []byte {
	bom := DetectBOM(data)
	return data[bom.BOMLength:]
}
