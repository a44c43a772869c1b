package talupapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Image is an avatar picture to upload. The backend accepts .jpg, .jpeg and .png names.
type Image struct {
	Data        io.Reader
	FileName    string
	ContentType string
}

// UpdatePassword replaces the account password.
func (c *Client) UpdatePassword(ctx context.Context, token, password string) error {
	r, err := newJSONRequest(http.MethodPut, "/api/profile/update-password", token, passwordUpdate{Password: password})
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// UpdateAvatar uploads a new profile picture and returns its URL.
func (c *Client) UpdateAvatar(ctx context.Context, token string, img Image) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := writeFilePart(mw, "avatar", img.FileName, img.ContentType, img.Data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	var resp avatarResponse
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/profile/update-avatar",
		token:       token,
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.Avatar, nil
}
