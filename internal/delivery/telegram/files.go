package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/talup-bot/internal/player"
	"github.com/aliskhannn/talup-bot/internal/service"
)

var errFileGone = errors.New("telegram file not found")

// Files downloads files sent to the bot from Telegram file storage.
type Files struct {
	bot    *tgbotapi.BotAPI
	client *http.Client
}

// NewFiles creates a Files that downloads with client.
func NewFiles(bot *tgbotapi.BotAPI, client *http.Client) *Files {
	if client == nil {
		client = http.DefaultClient
	}
	return &Files{bot: bot, client: client}
}

// Open streams the voice file referenced by the capture. A file Telegram no
// longer knows about is reported as service.ErrCaptureNotFound.
func (f *Files) Open(ctx context.Context, c player.Capture) (io.ReadCloser, error) {
	rc, err := f.Fetch(ctx, c.URI)
	if errors.Is(err, errFileGone) {
		return nil, fmt.Errorf("%w: %v", service.ErrCaptureNotFound, err)
	}
	return rc, err
}

// Fetch streams the file with the given ID.
func (f *Files) Fetch(ctx context.Context, fileID string) (io.ReadCloser, error) {
	url, err := f.bot.GetFileDirectURL(fileID)
	if err != nil {
		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) && tgErr.Code == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", errFileGone, tgErr.Message)
		}
		return nil, fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, errFileGone
	case resp.StatusCode != http.StatusOK:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
