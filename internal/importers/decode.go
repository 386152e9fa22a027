package importers

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat is returned for spreadsheet binaries, which must be
// saved as CSV before importing.
var ErrUnsupportedFormat = errors.New("unsupported file format: save the spreadsheet as CSV and upload it again")

var (
	utf8BOM      = []byte{0xEF, 0xBB, 0xBF}
	zipSignature = []byte("PK\x03\x04")
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

var spreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
	".ods":  true,
}

// Decode converts file bytes into text. A UTF-8 byte order mark is removed.
// Input that is not valid UTF-8 is read as Windows-1252, the encoding Excel
// uses for CSV exports on Portuguese-language Windows installs.
func Decode(data []byte) (string, error) {
	if bytes.HasPrefix(data, zipSignature) || bytes.HasPrefix(data, oleSignature) {
		return "", ErrUnsupportedFormat
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode file as windows-1252: %w", err)
	}
	return string(decoded), nil
}

// ParseFile checks the file name, decodes data and parses it.
func ParseFile(name string, data []byte) (*Table, error) {
	if spreadsheetExtensions[strings.ToLower(filepath.Ext(name))] {
		return nil, ErrUnsupportedFormat
	}

	text, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return Parse(text)
}
