package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 16

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	auth     AuthService
	lessons  LessonService
	profiles ProfileService
	sessions LessonStorage
	files    FileSource
	voices   *voiceRegistry
	queue    *userQueue[tgbotapi.Update]
	workers  int
	animate  bool
	now      func() time.Time
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	auth AuthService,
	lessons LessonService,
	profiles ProfileService,
	sessions LessonStorage,
	files FileSource,
	workers int,
	animate bool,
) *Handler {
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Handler{
		bot:      bot,
		logger:   logger,
		auth:     auth,
		lessons:  lessons,
		profiles: profiles,
		sessions: sessions,
		files:    files,
		voices:   newVoiceRegistry(),
		queue:    newUserQueue[tgbotapi.Update](),
		workers:  workers,
		animate:  animate,
		now:      time.Now,
	}
}

// Run receives updates until ctx is done. Updates of one user are handled in
// arrival order; different users are served by up to workers goroutines.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Int("workers", h.workers))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	var g errgroup.Group
	g.SetLimit(h.workers)
	defer func() { _ = g.Wait() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			userID, ok := updateUserID(update)
			if !ok {
				g.Go(func() error {
					h.handleUpdate(ctx, update)
					return nil
				})
				continue
			}

			if h.queue.push(userID, update) {
				g.Go(func() error {
					h.drain(ctx, userID)
					return nil
				})
			}
		}
	}
}

// drain handles the queued updates of one user until the queue is empty.
func (h *Handler) drain(ctx context.Context, userID int64) {
	for {
		update, ok := h.queue.next(userID)
		if !ok {
			return
		}
		h.handleUpdate(ctx, update)
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	if len(msg.Photo) > 0 || msg.Document != nil {
		if captionCommand(msg.Caption) == "avatar" {
			_ = h.withErrorHandling(h.handleAvatar(msg), msgAvatarFailed)(ctx, chatID)
		} else {
			h.send(newPlainMessage(chatID, msgAvatarUsage))
		}
		return
	}

	if msg.Voice != nil || msg.Audio != nil {
		h.logger.Debug("voice received", zap.Int64("user_id", userID))
		_ = h.withErrorHandling(h.handleVoice(msg), msgInternalError)(ctx, chatID)
		return
	}

	if !msg.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	h.logger.Debug("command received",
		zap.Int64("chat_id", chatID),
		zap.String("command", msg.Command()),
	)

	switch msg.Command() {
	case "start":
		m := newMessage(chatID, welcomeMarkdownV2())
		m.ReplyMarkup = buildLessonStartKeyboard()
		h.send(m)

	case "help":
		h.send(newMessage(chatID, helpMarkdownV2()))

	case "login":
		_ = h.withErrorHandling(h.handleLogin(msg), msgLoginFailed)(ctx, chatID)

	case "register":
		_ = h.withErrorHandling(h.handleRegister(msg), msgRegisterFailed)(ctx, chatID)

	case "password":
		_ = h.withErrorHandling(h.handlePassword(msg), msgPasswordFailed)(ctx, chatID)

	case "avatar":
		_ = h.withErrorHandling(h.handleAvatar(msg), msgAvatarFailed)(ctx, chatID)

	case "logout":
		_ = h.withErrorHandling(h.handleLogout(userID), msgInternalError)(ctx, chatID)

	case "lesson":
		_ = h.withErrorHandling(h.handleLesson(msg), msgLessonUnavailable)(ctx, chatID)

	case "quit":
		_ = h.withErrorHandling(h.handleQuit(userID), msgInternalError)(ctx, chatID)

	case "profile":
		_ = h.withErrorHandling(h.handleProfile(userID), msgProfileFailed)(ctx, chatID)

	case "leaderboard":
		_ = h.withErrorHandling(h.handleLeaderboard(userID), msgLeaderboardFailed)(ctx, chatID)

	case "shop":
		_ = h.withErrorHandling(h.handleShop(userID), msgProfileFailed)(ctx, chatID)

	case "words":
		_ = h.withErrorHandling(h.handleWords(userID, msg.CommandArguments()), msgWordsFailed)(ctx, chatID)

	case "word":
		_ = h.withErrorHandling(h.handleRandomWord(userID), msgRandomWordFailed)(ctx, chatID)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil && !isNotModified(err) {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// sendMessage sends a message and returns its ID.
func (h *Handler) sendMessage(c tgbotapi.Chattable) (int, error) {
	m, err := h.bot.Send(c)
	if err != nil {
		return 0, err
	}
	return m.MessageID, nil
}

func (h *Handler) deleteMessage(chatID int64, msgID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, msgID)); err != nil {
		h.logger.Warn("failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", msgID),
			zap.Error(err),
		)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// isNotModified reports an edit that left the message unchanged.
func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
