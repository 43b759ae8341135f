// Package output renders results for command-line and API consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON serializes v to w followed by a newline.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
