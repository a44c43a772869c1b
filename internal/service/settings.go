package service

import (
	"context"
	"errors"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var avatarExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ChangePassword validates and sets a new account password.
func (s *ProfileService) ChangePassword(ctx context.Context, userID int64, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.api.UpdatePassword(ctx, token, password); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.Int64("user_id", userID))
	return nil
}

// UpdateAvatar uploads a JPEG or PNG picture and returns the new avatar URL.
// A missing content type is derived from the file name.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID int64, img talupapi.Image) (string, error) {
	contentType, ok := avatarExtensions[strings.ToLower(path.Ext(img.FileName))]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if img.ContentType == "" {
		img.ContentType = contentType
	}

	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.api.UpdateAvatar(ctx, token, img)
	if err != nil {
		return "", err
	}

	s.logger.Info("avatar updated", zap.Int64("user_id", userID))
	return url, nil
}
