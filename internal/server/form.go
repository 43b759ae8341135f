package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/parser"
)

// readWorkbook loads the workbook uploaded in the "file" form field.
func readWorkbook(c echo.Context) (*models.Workbook, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing file upload", errBadRequest)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	opts := sheetgroup.LoadOptions{Password: c.FormValue("password")}
	return sheetgroup.Load(c.Request().Context(), src, fh.Filename, opts)
}

// windowFromForm reads either a "range" such as "A1:C1" or the four
// start_row, end_row, start_col, end_col fields over def.
func windowFromForm(c echo.Context, def models.Window) (models.Window, error) {
	if ref := strings.TrimSpace(c.FormValue("range")); ref != "" {
		return parser.ParseWindow(ref)
	}

	w := def
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"start_row", &w.StartRow},
		{"end_row", &w.EndRow},
		{"start_col", &w.StartCol},
		{"end_col", &w.EndCol},
	} {
		v := strings.TrimSpace(c.FormValue(field.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.Window{}, fmt.Errorf("%w: %s must be an integer", models.ErrInvalidWindow, field.name)
		}
		*field.dst = n
	}
	return w, w.Validate()
}

// exportOptionsFromForm reads separator, encoding, include_index and
// missing_marker over def.
func exportOptionsFromForm(c echo.Context, def export.Options) (export.Options, error) {
	opts := def
	if v := c.FormValue("separator"); v != "" {
		sep, err := export.ParseSeparator(v)
		if err != nil {
			return opts, err
		}
		opts.Separator = sep
	}
	if v := c.FormValue("encoding"); v != "" {
		enc, err := export.ParseEncoding(v)
		if err != nil {
			return opts, err
		}
		opts.Encoding = enc
	}
	if v := c.FormValue("include_index"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w: include_index must be a boolean", errBadRequest)
		}
		opts.IncludeIndex = b
	}
	if params, err := c.FormParams(); err == nil {
		if v, ok := params["missing_marker"]; ok && len(v) > 0 {
			opts.MissingMarker = v[0]
		}
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return opts, nil
}

// formValues returns every value of a repeated form field.
func formValues(c echo.Context, name string) []string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	var out []string
	for _, v := range params[name] {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
