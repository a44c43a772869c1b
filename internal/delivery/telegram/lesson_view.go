package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/player"
	"github.com/aliskhannn/talup-bot/internal/service"
	"github.com/aliskhannn/talup-bot/internal/widgets"
)

const headerBarLength = 12

var illustrationIcons = map[player.Illustration]string{
	player.IllustrationBoy:   "👦",
	player.IllustrationGirl:  "👧",
	player.IllustrationWoman: "👩",
	player.IllustrationMan:   "👨",
}

// lessonRatio is the share of the queue already passed.
func lessonRatio(v service.LessonView) float64 {
	if v.State == service.LessonFinished {
		return 1
	}
	return widgets.Ratio(v.Index, v.Total)
}

// renderHeader renders the lesson progress and lives. ratio drives the bar so
// it can be animated.
func renderHeader(v service.LessonView, ratio float64) string {
	var sb strings.Builder

	sb.WriteString(bold("Урок"))
	sb.WriteString(md(fmt.Sprintf(" %d/%d", min(v.Index+1, v.Total), v.Total)))
	sb.WriteString("\n")
	sb.WriteString(md(widgets.Bar(ratio, headerBarLength)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❤️ %d", v.Lives.Total())))
	if v.Lives.BonusLives > 0 {
		sb.WriteString(md(fmt.Sprintf(" (+%d бонус)", v.Lives.BonusLives)))
	}
	sb.WriteString(md(fmt.Sprintf("  ✅ %d", v.Correct)))

	return sb.String()
}

// renderTask renders the task message for the current occurrence.
func renderTask(v service.LessonView) string {
	s := v.Player
	var sb strings.Builder

	sb.WriteString(illustrationIcons[s.Illustration])
	sb.WriteString(" ")

	switch s.Task.Kind {
	case entities.KindWordChoice:
		sb.WriteString(bold(titleWordChoice))
		sb.WriteString("\n\n")
		sb.WriteString(bold(capitalize(s.Task.PromptText())))

	case entities.KindSentenceChoice:
		sb.WriteString(bold(titleSentenceChoice))
		if hint := s.Task.TranslationHint(); hint != "" {
			sb.WriteString(" ")
			sb.WriteString(italic(hint))
		}
		sb.WriteString("\n\n")
		sb.WriteString(md(s.Task.PromptText()))
		if body, ok := s.Task.Body().(entities.ChoiceBody); ok && body.Translation != "" {
			sb.WriteString("\n")
			sb.WriteString(italic(body.Translation))
		}

	case entities.KindSentenceShuffle:
		sb.WriteString(bold(titleShuffle))
		sb.WriteString("\n\n")
		sb.WriteString(italic(s.Task.PromptText()))
		sb.WriteString("\n\n")
		sb.WriteString(md("✏️ "))
		if len(s.Constructed) == 0 {
			sb.WriteString(md("…"))
		} else {
			sb.WriteString(bold(strings.Join(s.Constructed, " ")))
		}

	case entities.KindSpokenReading:
		sb.WriteString(bold(titleSpoken))
		sb.WriteString("\n\n")
		sb.WriteString(bold(s.Task.PromptText()))
		if status := spokenStatus(s); status != "" {
			sb.WriteString("\n\n")
			sb.WriteString(md(status))
		}
		return sb.String()
	}

	if fb := textFeedback(s); fb != "" {
		sb.WriteString("\n\n")
		sb.WriteString(fb)
	}

	return sb.String()
}

// textFeedback is the hint before answering or the verdict with the correct answer after.
func textFeedback(s player.Snapshot) string {
	if !s.Answered {
		if s.CanSubmit {
			return italic(textHint)
		}
		return ""
	}

	if s.Correct {
		return md("✅ " + textCorrect)
	}

	answer := s.Task.CorrectAnswer()
	if body, ok := s.Task.Body().(entities.ChoiceBody); ok && s.Task.Kind == entities.KindSentenceChoice {
		answer = body.Revealed()
	}
	return md("❌ "+textIncorrect+"\n"+textCorrectAnswer+" ") + bold(capitalize(answer))
}

func spokenStatus(s player.Snapshot) string {
	switch {
	case s.Result == player.ResultCorrect:
		return "✅ " + textCorrect
	case s.Result == player.ResultIncorrect:
		return "❌ " + textSpokenWrong
	case s.Phase == player.PhaseRecording:
		return textRecording
	case s.Phase == player.PhaseChecking:
		return textChecking
	case s.HasCapture:
		return textCaptured
	}
	return ""
}

// renderSummary renders the closing message of a lesson.
func renderSummary(v service.LessonView) string {
	var sb strings.Builder

	switch v.State {
	case service.LessonFinished:
		sb.WriteString(bold("🎉 Урок завершён!"))
	case service.LessonOutOfLives:
		sb.WriteString(bold("💔 Жизни закончились"))
		sb.WriteString("\n")
		sb.WriteString(md("Пополните их в магазине: /shop"))
	default:
		sb.WriteString(md(msgLessonQuit))
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Правильных ответов: %d из %d", v.Correct, v.Total)))
	sb.WriteString("\n")
	sb.WriteString(md("Новый урок: /lesson"))

	return sb.String()
}
