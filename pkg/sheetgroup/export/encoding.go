package export

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// encode converts UTF-8 text to the target encoding.
func encode(data []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingUTF8, "":
		return data, nil
	case EncodingUTF8BOM:
		out, err := unicode.UTF8BOM.NewEncoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return out, nil
	case EncodingLatin1:
		out, err := charmap.ISO8859_1.NewEncoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w as %s: %v", ErrEncoding, enc, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, string(enc))
}
