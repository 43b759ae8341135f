package server_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgroup-go/internal/config"
	"github.com/ukaji3/sheetgroup-go/internal/server"
	"github.com/xuri/excelize/v2"
)

func scenarioWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "S1"))
	for _, name := range []string{"S2", "S3"} {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	rows := map[string][][]interface{}{
		"S1": {{"H1", "H2"}, {"  a  ", 1}},
		"S2": {{"H1", "H2"}, {"b", 2}},
		"S3": {{"X"}, {"c"}},
	}
	for name, sheetRows := range rows {
		for r, row := range sheetRows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// upload builds a multipart request with the workbook and form fields.
func upload(t *testing.T, target string, workbook []byte, fields map[string][]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if workbook != nil {
		fw, err := mw.CreateFormFile("file", "Quarterly Report.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(workbook)
		require.NoError(t, err)
	}
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	app := server.NewApp(config.Default())
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(b)
	}
	return out
}

func TestHealth(t *testing.T) {
	rec := serve(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).Success)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestSheetsEndpoint(t *testing.T) {
	rec := serve(t, upload(t, "/api/v1/sheets", scenarioWorkbook(t), map[string][]string{"preview": {"1"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		BookName string `json:"book_name"`
		Sheets   []struct {
			Name string `json:"name"`
			Rows int    `json:"rows"`
		} `json:"sheets"`
		Preview []struct {
			Name string          `json:"name"`
			Rows [][]interface{} `json:"rows"`
		} `json:"preview"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, "Quarterly Report.xlsx", data.BookName)
	require.Len(t, data.Sheets, 3)
	assert.Equal(t, "S1", data.Sheets[0].Name)
	assert.Equal(t, 2, data.Sheets[0].Rows)
	require.Len(t, data.Preview, 3)
	require.Len(t, data.Preview[0].Rows, 1)
	assert.Equal(t, []interface{}{"H1", "H2"}, data.Preview[0].Rows[0])
}

func TestClassifyEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string][]string
	}{
		{name: "range", fields: map[string][]string{"range": {"A1:C1"}}},
		{name: "explicit bounds", fields: map[string][]string{
			"start_row": {"0"}, "end_row": {"1"}, "start_col": {"1"}, "end_col": {"3"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, upload(t, "/api/v1/classify", scenarioWorkbook(t), tt.fields))
			require.Equal(t, http.StatusOK, rec.Code)

			var data struct {
				BookName string `json:"book_name"`
				Groups   []struct {
					Label  string   `json:"label"`
					Sheets []string `json:"sheets"`
				} `json:"groups"`
			}
			require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
			require.Len(t, data.Groups, 2)
			assert.Equal(t, []string{"S1", "S2"}, data.Groups[0].Sheets)
			assert.Equal(t, []string{"S3"}, data.Groups[1].Sheets)
			assert.Equal(t, "Group 01 | 2 columns | rows 0-1, cols 1-3", data.Groups[0].Label)
		})
	}
}

func TestClassifyEndpointErrors(t *testing.T) {
	tests := []struct {
		name     string
		workbook []byte
		fields   map[string][]string
		wantCode int
	}{
		{name: "missing file", wantCode: http.StatusBadRequest},
		{name: "not a workbook", workbook: []byte("plain text"), wantCode: http.StatusBadRequest},
		{
			name:     "inverted window",
			workbook: scenarioWorkbook(t),
			fields:   map[string][]string{"start_row": {"3"}, "end_row": {"1"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "non-integer bound",
			workbook: scenarioWorkbook(t),
			fields:   map[string][]string{"end_col": {"ten"}},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, upload(t, "/api/v1/classify", tt.workbook, tt.fields))
			assert.Equal(t, tt.wantCode, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestExportEndpoint(t *testing.T) {
	rec := serve(t, upload(t, "/api/v1/export", scenarioWorkbook(t), map[string][]string{
		"sheet":     {"S1", "S3"},
		"separator": {"semicolon"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "Quarterly_Report_csvs.zip")

	assert.Equal(t, map[string]string{
		"S1.csv": "H1;H2\na;1\n",
		"S3.csv": "X\nc\n",
	}, unzip(t, rec.Body.Bytes()))
}

func TestExportEndpointErrors(t *testing.T) {
	rec := serve(t, upload(t, "/api/v1/export", scenarioWorkbook(t), map[string][]string{"sheet": {"Nope"}}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, upload(t, "/api/v1/export", scenarioWorkbook(t), map[string][]string{"encoding": {"utf-16"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportGroupEndpoint(t *testing.T) {
	rec := serve(t, upload(t, "/api/v1/export/group", scenarioWorkbook(t), map[string][]string{
		"range":         {"A1:C1"},
		"label":         {"Group 01 | 2 columns | rows 0-1, cols 1-3"},
		"include_index": {"true"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "Quarterly_Report_group_01_csvs.zip")

	assert.Equal(t, map[string]string{
		"S1.csv": ",H1,H2\n0,a,1\n",
		"S2.csv": ",H1,H2\n0,b,2\n",
	}, unzip(t, rec.Body.Bytes()))

	rec = serve(t, upload(t, "/api/v1/export/group", scenarioWorkbook(t), map[string][]string{
		"range": {"A1:C1"},
		"label": {"Group 09"},
	}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, upload(t, "/api/v1/export/group", scenarioWorkbook(t), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
