package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
)

// UploadFile streams r as multipart form fields "file" and "type". Wrap r to
// observe transfer progress; the body is read exactly once.
func (c *Client) UploadFile(ctx context.Context, kind catalog.UploadKind, filename string, r io.Reader) (catalog.UploadResult, error) {
	if !kind.Valid() {
		return catalog.UploadResult{}, fmt.Errorf("upload type %q: %w", kind, catalog.ErrInvalid)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeUpload(mw, kind, filename, r)
		_ = pw.CloseWithError(err)
	}()

	var resp Response[catalog.UploadResult]
	status, err := c.send(ctx, http.MethodPost, "/upload", pr, mw.FormDataContentType(), &resp)
	// pastikan goroutine writer berhenti kalau request gagal duluan
	_ = pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return catalog.UploadResult{}, err
	}
	return resp.value(status)
}

func writeUpload(mw *multipart.Writer, kind catalog.UploadKind, filename string, r io.Reader) error {
	if err := mw.WriteField("type", string(kind)); err != nil {
		return err
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return err
	}
	return mw.Close()
}
