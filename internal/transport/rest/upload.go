package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/heartmarshall/deck-authoring/internal/domain"
)

const uploadField = "file"

// readUpload reads the multipart "file" field of r into memory, enforcing
// maxBytes on the whole request body.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (domain.File, error) {
	if r.ContentLength > maxBytes {
		return domain.File{}, &http.MaxBytesError{Limit: maxBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	f, hdr, err := r.FormFile(uploadField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return domain.File{}, err
		}
		return domain.File{}, domain.NewValidationError(uploadField, "multipart file is required")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return domain.File{}, fmt.Errorf("read upload: %w", err)
	}

	contentType := hdr.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}

	return domain.File{
		Name:        hdr.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}
