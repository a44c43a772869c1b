package telegram

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/player"
)

const (
	voiceFileName    = "voice.ogg"
	voiceContentType = "audio/ogg"
)

var errNoVoice = errors.New("no voice message received")

// voiceRecorder turns "record" taps into captures completed by a voice message.
// Voice messages are only accepted in private chats.
type voiceRecorder struct {
	voices  *voiceRegistry
	userID  int64
	private bool
}

func (r *voiceRecorder) RequestPermission(context.Context) (bool, error) {
	return r.private, nil
}

func (r *voiceRecorder) Start(context.Context) (player.Recording, error) {
	return r.voices.start(r.userID), nil
}

// voiceRegistry holds the pending recording of each user.
type voiceRegistry struct {
	mu     sync.Mutex
	active map[int64]*voiceRecording
}

func newVoiceRegistry() *voiceRegistry {
	return &voiceRegistry{active: make(map[int64]*voiceRecording)}
}

func (r *voiceRegistry) start(userID int64) *voiceRecording {
	rec := &voiceRecording{registry: r, userID: userID}

	r.mu.Lock()
	prev := r.active[userID]
	r.active[userID] = rec
	r.mu.Unlock()

	if prev != nil {
		prev.Discard()
	}
	return rec
}

// deliver hands a voice message to the user's pending recording.
func (r *voiceRegistry) deliver(userID int64, c player.Capture) bool {
	r.mu.Lock()
	rec := r.active[userID]
	r.mu.Unlock()

	if rec == nil {
		return false
	}
	return rec.receive(c)
}

func (r *voiceRegistry) cancel(userID int64) {
	r.mu.Lock()
	rec := r.active[userID]
	r.mu.Unlock()

	if rec != nil {
		rec.Discard()
	}
}

func (r *voiceRegistry) release(userID int64, rec *voiceRecording) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active[userID] == rec {
		delete(r.active, userID)
	}
}

type voiceRecording struct {
	registry *voiceRegistry
	userID   int64

	mu        sync.Mutex
	capture   *player.Capture
	done      bool
	discarded bool
}

func (v *voiceRecording) Active(context.Context) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.done && !v.discarded, nil
}

func (v *voiceRecording) Stop(context.Context) (player.Capture, error) {
	v.mu.Lock()
	if v.capture == nil {
		v.mu.Unlock()
		return player.Capture{}, errNoVoice
	}
	v.done = true
	c := *v.capture
	v.mu.Unlock()

	v.registry.release(v.userID, v)
	return c, nil
}

func (v *voiceRecording) Discard() {
	v.mu.Lock()
	v.discarded = true
	v.mu.Unlock()

	v.registry.release(v.userID, v)
}

func (v *voiceRecording) receive(c player.Capture) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.done || v.discarded {
		return false
	}
	v.capture = &c
	return true
}

// captureFromMessage references the voice or audio file of msg.
func captureFromMessage(msg *tgbotapi.Message) (player.Capture, bool) {
	switch {
	case msg.Voice != nil:
		ct := msg.Voice.MimeType
		if ct == "" {
			ct = voiceContentType
		}
		return player.Capture{URI: msg.Voice.FileID, FileName: voiceFileName, ContentType: ct}, true
	case msg.Audio != nil:
		return player.Capture{URI: msg.Audio.FileID, FileName: msg.Audio.FileName, ContentType: msg.Audio.MimeType}, true
	}
	return player.Capture{}, false
}

// handleVoice completes the pending recording with the received voice message.
func (h *Handler) handleVoice(msg *tgbotapi.Message) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		userID := msg.From.ID

		session, ok := h.sessions.Get(userID)
		if !ok {
			h.send(newPlainMessage(chatID, msgNoLesson))
			return nil
		}

		capture, ok := captureFromMessage(msg)
		if !ok || !h.voices.deliver(userID, capture) {
			h.send(newPlainMessage(chatID, msgVoiceUnexpected))
			return nil
		}

		before := session.Lesson.View()
		if err := session.Lesson.Player().StopRecording(ctx); err != nil {
			h.logger.Debug("voice not applied",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.send(newPlainMessage(chatID, lessonToast(err, before.Player)))
			return nil
		}

		h.refreshLesson(userID, session, lessonRatio(before))
		return nil
	}
}
