package export

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSeparator indicates a separator outside the supported set.
var ErrUnsupportedSeparator = errors.New("unsupported separator")

// ErrUnsupportedEncoding indicates an encoding outside the supported set.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// ErrEncoding indicates text the target encoding cannot represent.
var ErrEncoding = errors.New("text cannot be encoded")

// ExportError represents an error while exporting one sheet.
type ExportError struct {
	SheetName string
	Stage     string // "copy", "serialize", "encode", "archive"
	Err       error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error in sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(sheetName, stage string, err error) *ExportError {
	return &ExportError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
