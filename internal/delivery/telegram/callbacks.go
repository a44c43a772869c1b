package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
	"github.com/aliskhannn/talup-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	cd := decodeCallback(cb.Data)
	answer := &callbackAnswer{h: h, id: cb.ID}

	var toast string
	switch cd.Action {
	case actionLesson:
		toast = h.handleLessonCallback(ctx, cb, cd, answer)
	case actionShop:
		toast = h.handleShopCallback(ctx, cb, cd)
	case actionWords:
		toast = h.handleWordsCallback(ctx, cb, cd)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock". A query answered early gets the result as a message.
	if !answer.send(toast) && toast != "" {
		h.send(newPlainMessage(cb.Message.Chat.ID, toast))
	}
}

// callbackAnswer answers a callback query at most once.
type callbackAnswer struct {
	h    *Handler
	id   string
	done bool
}

// send answers the query and reports whether this call did it.
func (a *callbackAnswer) send(text string) bool {
	if a.done {
		return false
	}
	a.done = true
	a.h.answerCallback(a.id, text)
	return true
}

// handleLessonCallback applies a tap to the player and re-renders the lesson.
// Taps rendered for an earlier task occurrence are rejected. A speech check is
// acknowledged before the judge runs.
func (h *Handler) handleLessonCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData, answer *callbackAnswer) string {
	lc, ok := parseLessonCallback(cd)
	if !ok {
		h.logger.Warn("invalid lesson callback", zap.String("data", cd.Raw))
		return toastStale
	}

	userID := cb.From.ID
	session, ok := h.sessions.Get(userID)
	if !ok {
		return msgNoLesson
	}

	_, taskID := session.Messages()
	before := session.Lesson.View()
	if !tapIsCurrent(lc, before, taskID, cb.Message.MessageID) {
		return toastStale
	}

	if lc.Sub == lessonQuit {
		h.quitLesson(ctx, userID, session)
		return msgLessonQuit
	}

	p := session.Lesson.Player()

	var (
		err   error
		toast string
	)
	switch lc.Sub {
	case lessonSelect:
		err = p.SelectAt(lc.Occurrence, lc.Index)
	case lessonRemove:
		err = p.RemoveAt(lc.Occurrence, lc.Index)
	case lessonPrimary:
		if before.Player.Phase == player.PhaseCaptured {
			answer.send(toastCheckInProgress)
		}
		err = p.Primary(ctx)
	case lessonRecord:
		err = p.StartRecording(ctx)
		if err == nil {
			toast = toastRecordingStarted
		}
	case lessonStop:
		err = p.StopRecording(ctx)
	}

	if err != nil {
		toast = lessonToast(err, before.Player)
		if toast == toastNetwork {
			h.logger.Error("lesson action failed",
				zap.Int64("user_id", userID),
				zap.String("action", lc.Sub),
				zap.Error(err),
			)
		} else {
			h.logger.Debug("lesson action rejected",
				zap.Int64("user_id", userID),
				zap.String("action", lc.Sub),
				zap.Error(err),
			)
		}
		if errors.Is(err, player.ErrStale) {
			return toast
		}
	}

	h.refreshLesson(userID, session, lessonRatio(before))
	return toast
}

// tapIsCurrent reports whether a tap came from the task message on screen and
// was rendered for the occurrence the active lesson is showing.
func tapIsCurrent(lc lessonCallback, view service.LessonView, taskMsgID, tappedMsgID int) bool {
	return taskMsgID == tappedMsgID &&
		view.State == service.LessonActive &&
		view.Player.Occurrence == lc.Occurrence
}

func (h *Handler) handleShopCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) string {
	if len(cd.Params) != 1 || cd.Params[0] != shopBuyLife {
		return ""
	}

	chatID := cb.Message.Chat.ID
	res, err := h.profiles.BuyLife(ctx, cb.From.ID)
	if err != nil {
		h.logger.Warn("buy life failed", zap.Int64("user_id", cb.From.ID), zap.Error(err))
		toast := msgBuyLifeFailed
		if m := talupapi.Message(err); m != "" {
			toast += ": " + m
		}
		return userMessage(err, toast)
	}

	edit := newEdit(chatID, cb.Message.MessageID, formatPurchase(res))
	kb := buildShopKeyboard()
	edit.ReplyMarkup = &kb
	h.send(edit)

	return msgLifeBought
}

func (h *Handler) handleWordsCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) string {
	if len(cd.Params) != 1 {
		return ""
	}

	listType := cd.Params[0]
	words, err := h.profiles.Words(ctx, cb.From.ID, listType)
	if err != nil {
		h.logger.Warn("word list failed", zap.Int64("user_id", cb.From.ID), zap.Error(err))
		return userMessage(err, msgWordsFailed)
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatWords(listType, words))
	kb := buildWordsKeyboard(listType)
	edit.ReplyMarkup = &kb
	h.send(edit)
	return ""
}
