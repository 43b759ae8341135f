package sheetgroup

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable spreadsheet.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// ErrUnknownSheet indicates a requested sheet name is not in the workbook.
var ErrUnknownSheet = errors.New("unknown sheet")

// ErrUnknownGroup indicates a requested group label is not in the
// classification.
var ErrUnknownGroup = errors.New("unknown group")

// ErrInvalidWindow is re-exported from models and indicates a window whose
// start is not before its end on either axis.
var ErrInvalidWindow = models.ErrInvalidWindow

// LoadError represents an error while reading one sheet.
type LoadError struct {
	SheetName string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error in sheet %q: %v", e.SheetName, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(sheetName string, err error) *LoadError {
	return &LoadError{
		SheetName: sheetName,
		Err:       err,
	}
}
