package sheet

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextDecoder is one candidate character encoding for delimited text.
// Decode reports false when the bytes are not valid in that encoding.
type TextDecoder struct {
	Name   string
	Decode func(data []byte) (string, bool)
}

// TextDecoders are tried in order; the last one always succeeds
var TextDecoders = []TextDecoder{
	{Name: "utf-8-sig", Decode: decodeUTF8BOM},
	{Name: "utf-8", Decode: decodeUTF8},
	{Name: "cp932", Decode: decodeCP932},
	{Name: "utf-8-lossy", Decode: decodeLossy},
}

// DecodeText returns data as a string and the name of the encoding used
func DecodeText(data []byte) (string, string) {
	for _, d := range TextDecoders {
		if text, ok := d.Decode(data); ok {
			return text, d.Name
		}
	}
	// unreachable while the lossy decoder is last
	return string(data), "raw"
}

func decodeUTF8BOM(data []byte) (string, bool) {
	if !bytes.HasPrefix(data, utf8BOM) {
		return "", false
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil || !utf8.Valid(out) {
		return "", false
	}
	return string(out), true
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// decodeCP932 rejects input the decoder had to substitute replacement runes for
func decodeCP932(data []byte) (string, bool) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", false
	}
	text := string(out)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}

func decodeLossy(data []byte) (string, bool) {
	return strings.ToValidUTF8(string(bytes.TrimPrefix(data, utf8BOM)), ""), true
}
