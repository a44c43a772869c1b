package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
)

const optionsPerRow = 2

// buildTaskKeyboard builds the option chips, the primary button and the quit button.
// A disabled primary button is rendered with a lock and answers with a toast.
func buildTaskKeyboard(s player.Snapshot) tgbotapi.InlineKeyboardMarkup {
	occ := s.Occurrence
	var rows [][]tgbotapi.InlineKeyboardButton

	if s.Task.Kind.IsText() {
		var row []tgbotapi.InlineKeyboardButton
		for i, option := range s.Options {
			label := option
			if s.IsSelected(option) {
				label = "✅ " + option
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildLessonCallback(lessonSelect, occ, i)))
			if len(row) == optionsPerRow {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}

		if s.Task.Kind == entities.KindSentenceShuffle && len(s.Constructed) > 0 && !s.Answered {
			var picked []tgbotapi.InlineKeyboardButton
			for i, word := range s.Constructed {
				picked = append(picked, tgbotapi.NewInlineKeyboardButtonData("✖ "+word, buildLessonCallback(lessonRemove, occ, i)))
			}
			rows = append(rows, picked)
		}
	}

	if s.Task.Kind == entities.KindSpokenReading && !s.Locked {
		switch {
		case s.Recording:
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("⏹ Остановить", buildLessonCallback(lessonStop, occ)),
			))
		case s.Phase != player.PhaseChecking:
			label := "🎙 Записать"
			if s.HasCapture {
				label = "🎙 Записать заново"
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, buildLessonCallback(lessonRecord, occ)),
			))
		}
	}

	primary := s.PrimaryLabel
	if !s.PrimaryEnabled {
		primary = "🔒 " + primary
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(primary, buildLessonCallback(lessonPrimary, occ)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Выйти из урока", buildLessonCallback(lessonQuit, occ)),
		),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildShopKeyboard builds keyboard for the shop screen.
func buildShopKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❤️ Купить жизнь", buildBuyLifeCallback()),
		),
	)
}

// buildWordsKeyboard builds keyboard for switching between word lists.
func buildWordsKeyboard(current string) tgbotapi.InlineKeyboardMarkup {
	learning := "📖 Изучаю"
	learned := "✅ Выучено"
	if current == talupapi.WordsLearning {
		learning = "• " + learning + " •"
	} else {
		learned = "• " + learned + " •"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(learning, buildWordsCallback(talupapi.WordsLearning)),
			tgbotapi.NewInlineKeyboardButtonData(learned, buildWordsCallback(talupapi.WordsLearned)),
		),
	)
}

// buildLessonStartKeyboard offers a new lesson.
func buildLessonStartKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/lesson"),
			tgbotapi.NewKeyboardButton("/profile"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
