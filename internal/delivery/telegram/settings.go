package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
)

const (
	avatarPhotoName = "avatar.jpg"
	avatarPhotoType = "image/jpeg"
)

// handlePassword reads the new password. The message is deleted since it carries it.
func (h *Handler) handlePassword(msg *tgbotapi.Message) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args := strings.Fields(msg.CommandArguments())
		if len(args) != 1 {
			h.send(newPlainMessage(chatID, msgPasswordUsage))
			return nil
		}

		h.deleteMessage(chatID, msg.MessageID)

		if err := h.profiles.ChangePassword(ctx, msg.From.ID, args[0]); err != nil {
			return authError(err, msgPasswordFailed)
		}

		h.send(newMessage(chatID, md(msgPasswordChanged)+"\n"+italic(msgPasswordDeleted)))
		return nil
	}
}

// handleAvatar uploads the picture of the message, or of the message it replies
// to, as the profile avatar.
func (h *Handler) handleAvatar(msg *tgbotapi.Message) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fileID, img, ok := avatarFile(msg)
		if !ok && msg.ReplyToMessage != nil {
			fileID, img, ok = avatarFile(msg.ReplyToMessage)
		}
		if !ok {
			h.send(newPlainMessage(chatID, msgAvatarUsage))
			return nil
		}

		rc, err := h.files.Fetch(ctx, fileID)
		if err != nil {
			return fmt.Errorf("fetch avatar: %w", err)
		}
		defer rc.Close()

		img.Data = rc
		if _, err := h.profiles.UpdateAvatar(ctx, msg.From.ID, img); err != nil {
			return authError(err, msgAvatarFailed)
		}

		h.send(newPlainMessage(chatID, msgAvatarUpdated))
		return nil
	}
}

// avatarFile picks the picture of msg: the largest size of a photo, or an
// image sent as a file. Data is left for the caller to fill.
func avatarFile(msg *tgbotapi.Message) (string, talupapi.Image, bool) {
	switch {
	case len(msg.Photo) > 0:
		p := largestPhoto(msg.Photo)
		return p.FileID, talupapi.Image{FileName: avatarPhotoName, ContentType: avatarPhotoType}, true
	case msg.Document != nil:
		d := msg.Document
		return d.FileID, talupapi.Image{FileName: d.FileName, ContentType: d.MimeType}, true
	}
	return "", talupapi.Image{}, false
}

func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, p := range sizes[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best
}

// captionCommand returns the command a media caption starts with, without the
// leading slash and bot mention.
func captionCommand(caption string) string {
	fields := strings.Fields(caption)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0][1:], "@")
	return cmd
}
