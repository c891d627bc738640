package httpserver

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Ayesha-te/ims-backend/internal/platform/errors"
)

// maxImportSize caps uploaded workbooks at 10 MiB.
const maxImportSize = 10 << 20

type excelImportRequest struct {
	FileName string `json:"file_name"`
	Data     string `json:"data"`
}

// handleImportExcel accepts either a multipart upload (field "file") or a
// JSON body carrying the workbook as base64.
func (s *Server) handleImportExcel(c echo.Context) error {
	fileName, data, err := readImportPayload(c)
	if err != nil {
		return err
	}

	report, err := s.app.ImportExcel(c.Request().Context(), fileName, data)
	if err != nil {
		return apperrors.ValidationError("could not parse workbook").WithField("reason", err.Error())
	}
	return writeJSON(c, http.StatusOK, report)
}

func readImportPayload(c echo.Context) (string, []byte, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return readMultipartImport(c)
	}

	var req excelImportRequest
	if err := c.Bind(&req); err != nil {
		return "", nil, apperrors.ValidationError("invalid request body")
	}
	if req.Data == "" {
		return "", nil, apperrors.ValidationError("data is required")
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return "", nil, apperrors.ValidationError("data must be base64 encoded")
	}
	if len(data) > maxImportSize {
		return "", nil, apperrors.ValidationError("workbook exceeds the 10 MiB limit")
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "upload.xlsx"
	}
	return fileName, data, nil
}

func readMultipartImport(c echo.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, apperrors.ValidationError("multipart field 'file' is required")
	}
	if fileHeader.Size > maxImportSize {
		return "", nil, apperrors.ValidationError("workbook exceeds the 10 MiB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, apperrors.InternalError("failed to open uploaded file", err)
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize+1))
	if err != nil {
		return "", nil, apperrors.InternalError("failed to read uploaded file", err)
	}
	if len(data) > maxImportSize {
		return "", nil, apperrors.ValidationError("workbook exceeds the 10 MiB limit")
	}

	return fileHeader.Filename, data, nil
}

// handleImportImage is a placeholder for OCR-based imports, which are not
// implemented.
func (s *Server) handleImportImage(c echo.Context) error {
	return writeJSON(c, http.StatusNotImplemented, map[string]string{
		"error": "image import is not implemented",
	})
}
