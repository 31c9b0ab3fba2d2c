package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/imrishuroy/go-storefront-orderflow/internal/models"
)

// UploadImage sends a multipart POST /upload-image with the file under "file".
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*models.ImageUpload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("upload image: create part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload image: copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload image: close writer: %w", err)
	}

	var out models.ImageUpload
	if err := c.do(ctx, "upload image", http.MethodPost, "/upload-image", &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports whether GET /health answers 2xx.
func (c *Client) Health(ctx context.Context) bool {
	return c.do(ctx, "health", http.MethodGet, "/health", nil, "", nil) == nil
}
