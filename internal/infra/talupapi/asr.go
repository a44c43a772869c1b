package talupapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

const (
	defaultAudioName = "audio.m4a"
	defaultAudioType = "audio/mp4"
)

// Audio is a recorded utterance to be judged.
type Audio struct {
	Data        io.Reader
	FileName    string
	ContentType string
}

// ASRResult is the speech judge verdict.
type ASRResult struct {
	Correct     bool
	Transcribed string
}

// SubmitASR uploads the audio with the expected text and returns the verdict.
func (c *Client) SubmitASR(ctx context.Context, token string, audio Audio, expected string) (ASRResult, error) {
	name := audio.FileName
	if name == "" {
		name = defaultAudioName
	}
	contentType := audio.ContentType
	if contentType == "" {
		contentType = defaultAudioType
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := writeFilePart(mw, "file", name, contentType, audio.Data); err != nil {
		return ASRResult{}, err
	}
	if err := mw.WriteField("expected", expected); err != nil {
		return ASRResult{}, fmt.Errorf("write expected field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return ASRResult{}, fmt.Errorf("close multipart: %w", err)
	}

	var resp asrResponse
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/asr-submit",
		token:       token,
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}, &resp)
	if err != nil {
		return ASRResult{}, err
	}

	return ASRResult{Correct: resp.Correct, Transcribed: resp.Transcribed}, nil
}

func writeFilePart(mw *multipart.Writer, field, name, contentType string, data io.Reader) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return fmt.Errorf("copy %s: %w", field, err)
	}
	return nil
}
