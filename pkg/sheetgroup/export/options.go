// Package export renders sheets as delimited text and packs them into a
// ZIP archive.
package export

import (
	"fmt"
	"strings"
)

// Separator is the field delimiter of exported documents.
type Separator string

const (
	// SeparatorComma delimits fields with ",".
	SeparatorComma Separator = ","
	// SeparatorSemicolon delimits fields with ";".
	SeparatorSemicolon Separator = ";"
	// SeparatorTab delimits fields with a tab.
	SeparatorTab Separator = "\t"
	// SeparatorPipe delimits fields with "|".
	SeparatorPipe Separator = "|"
)

// String returns the separator's name.
func (s Separator) String() string {
	switch s {
	case SeparatorComma:
		return "comma"
	case SeparatorSemicolon:
		return "semicolon"
	case SeparatorTab:
		return "tab"
	case SeparatorPipe:
		return "pipe"
	}
	return string(s)
}

// Encoding is the text encoding of exported documents.
type Encoding string

const (
	// EncodingUTF8 writes plain UTF-8.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingUTF8BOM writes UTF-8 preceded by a byte order mark.
	EncodingUTF8BOM Encoding = "utf-8-sig"
	// EncodingLatin1 writes ISO 8859-1; characters outside it fail the export.
	EncodingLatin1 Encoding = "latin-1"
)

// Options configures export behavior.
type Options struct {
	// IncludeIndex prepends a column holding the 0-based data row number.
	IncludeIndex bool `json:"include_index" yaml:"include_index"`
	// Separator is the field delimiter.
	Separator Separator `json:"separator" yaml:"separator"`
	// Encoding is the output text encoding.
	Encoding Encoding `json:"encoding" yaml:"encoding"`
	// MissingMarker is written for missing values.
	MissingMarker string `json:"missing_marker" yaml:"missing_marker"`
}

// DefaultOptions returns comma-separated UTF-8 output without index.
func DefaultOptions() Options {
	return Options{
		Separator: SeparatorComma,
		Encoding:  EncodingUTF8,
	}
}

// Validate checks the separator and encoding.
func (o Options) Validate() error {
	switch o.Separator {
	case SeparatorComma, SeparatorSemicolon, SeparatorTab, SeparatorPipe:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSeparator, string(o.Separator))
	}
	switch o.Encoding {
	case EncodingUTF8, EncodingUTF8BOM, EncodingLatin1:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, string(o.Encoding))
	}
	if strings.ContainsAny(o.MissingMarker, "\r\n") {
		return fmt.Errorf("missing marker must not contain line breaks")
	}
	return nil
}

// ParseSeparator accepts a literal separator or one of the names "comma",
// "semicolon", "tab", "pipe" and the escape `\t`.
func ParseSeparator(s string) (Separator, error) {
	switch strings.ToLower(s) {
	case ",", "comma":
		return SeparatorComma, nil
	case ";", "semicolon":
		return SeparatorSemicolon, nil
	case "\t", `\t`, "tab":
		return SeparatorTab, nil
	case "|", "pipe":
		return SeparatorPipe, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSeparator, s)
}

// ParseEncoding accepts an encoding name, case-insensitively, with common
// aliases.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-8-sig", "utf8-sig", "utf-8-bom":
		return EncodingUTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1":
		return EncodingLatin1, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}
