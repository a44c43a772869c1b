// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error and status messages.
const (
	msgInternalError     = "Что‑то пошло не так. Попробуйте позже."
	msgUnknownCommand    = "Неизвестная команда. Нажмите /help, чтобы увидеть список команд."
	msgNotAuthorized     = "Сначала войдите: /login email пароль\nИли зарегистрируйтесь: /register email пароль логин имя"
	msgSessionExpired    = "Сессия истекла. Войдите снова: /login email пароль"
	msgLoginUsage        = "Используйте: /login email пароль"
	msgLoginFailed       = "Не удалось войти"
	msgRegisterFailed    = "Ошибка при регистрации"
	msgLoggedOut         = "Вы вышли из аккаунта."
	msgNoLives           = "Недостаточно жизней ❤️\nПополните их в магазине: /shop"
	msgNoTasks           = "Сейчас нет доступных заданий. Загляните позже."
	msgLessonUnavailable = "Не удалось загрузить урок. Попробуйте позже."
	msgNoLesson          = "Нет активного урока. Начните новый: /lesson"
	msgLessonQuit        = "Урок прерван."
	msgProfileFailed     = "Не удалось загрузить профиль. Попробуйте позже."
	msgLeaderboardFailed = "Не удалось загрузить таблицу лидеров."
	msgWordsFailed       = "Не удалось загрузить слова."
	msgWordsEmpty        = "Список пуст."
	msgRandomWordFailed  = "Не удалось загрузить слово."
	msgBuyLifeFailed     = "Не удалось купить жизнь"
	msgLifeBought        = "Жизнь куплена!"
	msgVoiceUnexpected   = "Сначала нажмите «🎙 Записать» в задании."
	msgPasswordDeleted   = "Сообщение с паролем удалено."
	msgInvalidEmail      = "Некорректный email."
	msgInvalidPassword   = "Пароль должен содержать от 6 до 24 символов без пробелов."
	msgInvalidUsername   = "Логин: от 3 до 20 латинских букв, цифр, точек, дефисов или подчёркиваний."
	msgInvalidName       = "Имя: от 2 до 20 букв, пробелов, дефисов или апострофов."
	msgPasswordUsage     = "Используйте: /password новый_пароль"
	msgPasswordChanged   = "Пароль изменён."
	msgPasswordFailed    = "Не удалось изменить пароль"
	msgAvatarUsage       = "Отправьте фото с подписью /avatar"
	msgAvatarUpdated     = "Аватар обновлён."
	msgAvatarFailed      = "Не удалось обновить аватар"
	msgUnsupportedImage  = "Подходят только изображения JPG и PNG."
)

const msgRegisterUsage = "Используйте: /register email пароль логин [имя] [параметры]\n" +
	"Параметры: gender=male|female, level=firsttime|start|medium|advanced, aim=A1…C2, " +
	"time=one|two|three|more, goals=fun,business,movies,education,travel,other, birth=ДД.ММ.ГГГГ"

// Toasts shown on callback answers.
const (
	toastStale            = "Это задание уже неактуально"
	toastSelectFirst      = "Сначала выберите ответ"
	toastBuildSentence    = "Соберите предложение из всех слов"
	toastRecordFirst      = "Сначала запишите голосовое сообщение"
	toastAlreadyAnswered  = "Ответ уже принят"
	toastLocked           = "Результат уже получен"
	toastRecording        = "Запись уже идёт"
	toastNotRecording     = "Запись не начата"
	toastCheckInProgress  = "Проверяем запись…"
	toastSendVoice        = "Отправьте голосовое сообщение, чтобы закончить запись"
	toastMicDenied        = "Запись доступна только в личном чате с ботом"
	toastCaptureMissing   = "Запись не найдена. Запишите ещё раз"
	toastNetwork          = "Нет связи с сервером. Попробуйте ещё раз"
	toastRecordingStarted = "Запись началась. Отправьте голосовое сообщение"
)

// Task titles and feedback.
const (
	titleWordChoice     = "Переведите слово:"
	titleSentenceChoice = "Выберите правильное слово:"
	titleShuffle        = "Переведите предложение:"
	titleSpoken         = "Прочитайте вслух:"

	textCorrect       = "Правильно!"
	textIncorrect     = "Неправильно."
	textSpokenWrong   = "Неправильно. Попробуйте ещё раз."
	textCorrectAnswer = "Правильный ответ:"
	textHint          = "Нажмите \"Продолжить\" для проверки"
	textRecording     = "🔴 Идёт запись… отправьте голосовое сообщение"
	textCaptured      = "🎧 Запись готова. Нажмите «Проверить»"
	textChecking      = "⏳ Проверяем…"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// capitalize upper-cases the first letter.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// welcomeMarkdownV2 builds the /start message.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(md("Сәлем! 👋"))
	sb.WriteString("\n\n")
	sb.WriteString(bold("TalUp"))
	sb.WriteString(md(" поможет вам выучить казахский язык короткими уроками."))
	sb.WriteString("\n\n")
	sb.WriteString(md("В каждом уроке вас ждут задания:"))
	sb.WriteString("\n")
	sb.WriteString(md("📝 перевод слов и предложений;"))
	sb.WriteString("\n")
	sb.WriteString(md("🧩 сборка предложения из слов;"))
	sb.WriteString("\n")
	sb.WriteString(md("🎙 чтение вслух голосовым сообщением."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Чтобы начать, войдите или зарегистрируйтесь, затем нажмите /lesson."))
	sb.WriteString("\n\n")
	sb.WriteString(helpMarkdownV2())

	return sb.String()
}

// helpMarkdownV2 lists the bot commands.
func helpMarkdownV2() string {
	lines := []string{
		"/login email пароль — войти",
		"/register email пароль логин [имя] [параметры] — регистрация",
		"/password новый_пароль — сменить пароль",
		"/avatar — подпись к фото, чтобы сменить аватар",
		"/lesson — начать урок",
		"/quit — прервать урок",
		"/profile — профиль и ударный режим",
		"/leaderboard — таблица лидеров",
		"/shop — магазин жизней",
		"/words learning|learned — мои слова",
		"/word — случайное слово",
		"/logout — выйти",
	}

	var sb strings.Builder
	sb.WriteString(bold("Команды"))
	sb.WriteString("\n")
	for _, l := range lines {
		sb.WriteString(md(l))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
