package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/service"
	"github.com/aliskhannn/talup-bot/internal/storage"
)

// handleLogin reads "email password". The message is deleted since it carries a password.
func (h *Handler) handleLogin(msg *tgbotapi.Message) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args := strings.Fields(msg.CommandArguments())
		if len(args) != 2 {
			h.send(newPlainMessage(chatID, msgLoginUsage))
			return nil
		}

		h.deleteMessage(chatID, msg.MessageID)

		session, err := h.auth.Login(ctx, msg.From.ID, chatID, args[0], args[1])
		if err != nil {
			return authError(err, msgLoginFailed)
		}

		h.send(newMessage(chatID, greeting(session)+"\n"+italic(msgPasswordDeleted)))
		return nil
	}
}

// handleRegister reads "email password username [name] [key=value...]".
func (h *Handler) handleRegister(msg *tgbotapi.Message) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args := strings.Fields(msg.CommandArguments())
		if len(args) < 3 {
			h.send(newPlainMessage(chatID, msgRegisterUsage))
			return nil
		}

		h.deleteMessage(chatID, msg.MessageID)

		reg, err := parseRegistration(args)
		if err != nil {
			return &visibleError{text: msgRegisterUsage, err: err}
		}
		reg.Language = msg.From.LanguageCode

		session, err := h.auth.Register(ctx, msg.From.ID, chatID, reg)
		if err != nil {
			return authError(err, msgRegisterFailed)
		}

		h.send(newMessage(chatID, greeting(session)+"\n"+italic(msgPasswordDeleted)))
		return nil
	}
}

var errUnknownOption = errors.New("unknown registration option")

// parseRegistration splits register arguments into credentials, name words and
// key=value profile options. Values are checked by the auth service.
func parseRegistration(args []string) (talupapi.Registration, error) {
	reg := talupapi.Registration{Email: args[0], Password: args[1], Username: args[2]}

	var name []string
	for _, arg := range args[3:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			name = append(name, arg)
			continue
		}

		switch strings.ToLower(key) {
		case "gender":
			reg.Gender = strings.ToLower(value)
		case "level":
			reg.CurrentLevel = strings.ToLower(value)
		case "aim":
			reg.AimLevel = strings.ToUpper(value)
		case "time":
			reg.Time = strings.ToLower(value)
		case "goals":
			for _, g := range strings.Split(value, ",") {
				if g = strings.TrimSpace(g); g != "" {
					reg.Goals = append(reg.Goals, strings.ToLower(g))
				}
			}
		case "birth":
			reg.BirthDate = value
		default:
			return talupapi.Registration{}, fmt.Errorf("%w: %s", errUnknownOption, key)
		}
	}
	reg.Name = strings.Join(name, " ")

	return reg, nil
}

func greeting(s talupapi.Session) string {
	name := s.Name
	if name == "" {
		name = s.Email
	}
	return md("Добро пожаловать, ") + bold(name) + md("! Начните урок: /lesson")
}

// authError keeps the backend message of a rejected request so the user sees why.
func authError(err error, prefix string) error {
	if m := talupapi.Message(err); m != "" && talupapi.StatusCode(err) < 500 {
		return &visibleError{text: prefix + ": " + m, err: err}
	}
	if errors.Is(err, service.ErrInvalidArguments) || talupapi.StatusCode(err) != 0 {
		return &visibleError{text: prefix, err: err}
	}
	return err
}

// visibleError carries a message that is shown to the user as is.
type visibleError struct {
	text string
	err  error
}

func (e *visibleError) Error() string { return e.text + ": " + e.err.Error() }

func (e *visibleError) Unwrap() error { return e.err }

func (h *Handler) handleLogout(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if session, ok := h.sessions.Get(userID); ok {
			h.quitLesson(ctx, userID, session)
		}

		if err := h.auth.Logout(ctx, userID); err != nil {
			return err
		}

		h.send(newPlainMessage(chatID, msgLoggedOut))
		return nil
	}
}

// handleLesson replaces any running lesson with a new one.
func (h *Handler) handleLesson(msg *tgbotapi.Message) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		userID := msg.From.ID

		if prev, ok := h.sessions.Get(userID); ok {
			h.quitLesson(ctx, userID, prev)
		}

		rec := &voiceRecorder{
			voices:  h.voices,
			userID:  userID,
			private: msg.Chat.IsPrivate(),
		}

		lesson, err := h.lessons.Start(ctx, userID, rec, h.livesNotifier(userID))
		if err != nil {
			return err
		}

		if word, err := h.profiles.RandomWord(ctx, userID); err != nil {
			h.logger.Debug("random word unavailable", zap.Int64("user_id", userID), zap.Error(err))
		} else {
			h.send(newMessage(chatID, formatRandomWord(word)))
		}

		session := storage.NewLessonSession(lesson, chatID)
		if err := h.showLesson(session); err != nil {
			lesson.Quit(ctx)
			return fmt.Errorf("show lesson: %w", err)
		}

		if prev := h.sessions.Store(userID, session); prev != nil && prev != session {
			h.quitLesson(ctx, userID, prev)
		}
		return nil
	}
}

func (h *Handler) handleQuit(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, ok := h.sessions.Get(userID)
		if !ok {
			h.send(newPlainMessage(chatID, msgNoLesson))
			return nil
		}

		h.quitLesson(ctx, userID, session)
		return nil
	}
}

func (h *Handler) handleProfile(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ov, err := h.profiles.Overview(ctx, userID)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatProfile(ov, h.now().Weekday())))
		return nil
	}
}

func (h *Handler) handleLeaderboard(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		v, err := h.profiles.Leaderboard(ctx, userID)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatLeaderboard(v)))
		return nil
	}
}

func (h *Handler) handleShop(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p, err := h.profiles.Wallet(ctx, userID)
		if err != nil {
			return err
		}

		m := newMessage(chatID, formatShop(p))
		m.ReplyMarkup = buildShopKeyboard()
		h.send(m)
		return nil
	}
}

func (h *Handler) handleWords(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		listType := strings.TrimSpace(args)
		if listType == "" {
			listType = talupapi.WordsLearning
		}

		words, err := h.profiles.Words(ctx, userID, listType)
		if err != nil {
			if errors.Is(err, service.ErrUnknownWordList) {
				h.send(newMessage(chatID, helpMarkdownV2()))
				return nil
			}
			return err
		}

		m := newMessage(chatID, formatWords(listType, words))
		m.ReplyMarkup = buildWordsKeyboard(listType)
		h.send(m)
		return nil
	}
}

func (h *Handler) handleRandomWord(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		w, err := h.profiles.RandomWord(ctx, userID)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatRandomWord(w)))
		return nil
	}
}
