package telegram

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/service"
	"github.com/aliskhannn/talup-bot/internal/storage"
	"github.com/aliskhannn/talup-bot/internal/widgets"
)

const (
	progressAnimation = 450 * time.Millisecond
	progressFrames    = 3
)

// showLesson sends the header and task messages of a new lesson.
func (h *Handler) showLesson(session *storage.LessonSession) error {
	v := session.Lesson.View()

	headerID, err := h.sendMessage(newMessage(session.ChatID, renderHeader(v, lessonRatio(v))))
	if err != nil {
		return fmt.Errorf("send header: %w", err)
	}

	task := newMessage(session.ChatID, renderTask(v))
	task.ReplyMarkup = buildTaskKeyboard(v.Player)
	taskID, err := h.sendMessage(task)
	if err != nil {
		return fmt.Errorf("send task: %w", err)
	}

	session.SetMessages(headerID, taskID)
	return nil
}

// refreshLesson re-renders the lesson after an action. from is the progress
// ratio before the action and is used as the animation start.
func (h *Handler) refreshLesson(userID int64, session *storage.LessonSession, from float64) {
	v := session.Lesson.View()
	if v.State != service.LessonActive {
		h.closeLesson(userID, session, v, from)
		return
	}

	h.updateHeader(session, v, from)

	_, taskID := session.Messages()
	edit := newEdit(session.ChatID, taskID, renderTask(v))
	kb := buildTaskKeyboard(v.Player)
	edit.ReplyMarkup = &kb
	h.send(edit)
}

// updateHeader edits the header, stepping the bar from the previous ratio when
// animation is on.
func (h *Handler) updateHeader(session *storage.LessonSession, v service.LessonView, from float64) {
	headerID, _ := session.Messages()
	if headerID == 0 {
		return
	}

	to := lessonRatio(v)
	frames := []float64{to}
	if h.animate && from != to {
		frames = widgets.Tween{
			From:     from,
			To:       to,
			Duration: progressAnimation,
			Ease:     widgets.Spring,
		}.Frames(progressFrames)
	}

	step := progressAnimation / progressFrames
	for i, ratio := range frames {
		if i > 0 {
			time.Sleep(step)
		}
		h.send(newEdit(session.ChatID, headerID, renderHeader(v, ratio)))
	}
}

// closeLesson replaces the task message with the summary and forgets the session.
func (h *Handler) closeLesson(userID int64, session *storage.LessonSession, v service.LessonView, from float64) {
	h.sessions.Delete(userID, v.ID)
	h.updateHeader(session, v, from)

	_, taskID := session.Messages()
	if taskID == 0 {
		return
	}
	h.send(newEdit(session.ChatID, taskID, renderSummary(v)))
}

// quitLesson ends the lesson early.
func (h *Handler) quitLesson(ctx context.Context, userID int64, session *storage.LessonSession) {
	before := session.Lesson.View()
	session.Lesson.Quit(ctx)
	h.voices.cancel(userID)

	v := session.Lesson.View()
	h.closeLesson(userID, session, v, lessonRatio(before))

	h.logger.Info("lesson closed",
		zap.Int64("user_id", userID),
		zap.String("lesson_id", v.ID),
	)
}

// livesNotifier redraws the header of the user's lesson when polled lives change.
func (h *Handler) livesNotifier(userID int64) func(entities.Lives) {
	return func(lives entities.Lives) {
		session, ok := h.sessions.Get(userID)
		if !ok {
			return
		}

		v := session.Lesson.View()
		h.logger.Debug("lives refreshed",
			zap.Int64("user_id", userID),
			zap.Int("lives", lives.Total()),
		)
		h.updateHeader(session, v, lessonRatio(v))
	}
}
