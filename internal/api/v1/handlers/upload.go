package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"briefly/internal/api/errors"
)

// multipartOverhead leaves room for boundaries and headers around the file part
const multipartOverhead = 1 << 20

// upload is one file read from a multipart form
type upload struct {
	Name string
	Data []byte
}

// readUpload reads the form file under field, rejecting anything over limit
// bytes or rejected by allowed
func readUpload(c *gin.Context, field string, limit int64, allowed func(string) bool) (*upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	header, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.NewPayloadTooLargeError(limit)
		}
		return nil, errors.NewBadRequestError("No file provided")
	}
	if header.Filename == "" {
		return nil, errors.NewBadRequestError("No file selected")
	}
	if header.Size > limit {
		return nil, errors.NewPayloadTooLargeError(limit)
	}
	if !allowed(header.Filename) {
		return nil, errors.NewBadRequestError("Unsupported file type")
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.NewBadRequestError("Could not read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, errors.NewBadRequestError("Could not read uploaded file")
	}
	if int64(len(data)) > limit {
		return nil, errors.NewPayloadTooLargeError(limit)
	}

	return &upload{Name: header.Filename, Data: data}, nil
}
