package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs the error and replies with a message the user can act on,
// or fallback.
func (h *Handler) withErrorHandling(fn HandlerFunc, fallback string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			text := userMessage(err, fallback)
			if text == fallback {
				h.logger.Error("handle error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			} else {
				h.logger.Info("request rejected",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			}
			h.sendError(chatID, text)
			return nil
		}
		return nil
	}
}
