package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
	"github.com/aliskhannn/talup-bot/internal/service"
)

func mustTask(t *testing.T, kind entities.Kind, body entities.TaskBody) entities.Task {
	t.Helper()
	task, err := entities.NewTask("t1", 1, kind, "A1", body)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func wordSnapshot(t *testing.T) player.Snapshot {
	return player.Snapshot{
		Task: mustTask(t, entities.KindWordChoice,
			entities.NewWordChoiceBody("яблоко", "алма", []string{"алма", "су", "нан"})),
		Occurrence:     7,
		Options:        []string{"алма", "су", "нан"},
		Selected:       "су",
		HasSelection:   true,
		CanSubmit:      true,
		PrimaryLabel:   player.LabelContinue,
		PrimaryEnabled: true,
	}
}

func buttonData(b tgbotapi.InlineKeyboardButton) string {
	if b.CallbackData == nil {
		return ""
	}
	return *b.CallbackData
}

func TestBuildTaskKeyboard_WordChoice(t *testing.T) {
	kb := buildTaskKeyboard(wordSnapshot(t))

	rows := kb.InlineKeyboard
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 1 {
		t.Fatalf("options layout = %d/%d", len(rows[0]), len(rows[1]))
	}
	if rows[0][1].Text != "✅ су" {
		t.Fatalf("selected chip = %q", rows[0][1].Text)
	}
	if got := buttonData(rows[0][1]); got != "l:sel:7:1" {
		t.Fatalf("select data = %q", got)
	}
	if rows[2][0].Text != player.LabelContinue || buttonData(rows[2][0]) != "l:go:7" {
		t.Fatalf("primary = %+v", rows[2][0])
	}
	if buttonData(rows[3][0]) != "l:quit:7" {
		t.Fatalf("quit = %+v", rows[3][0])
	}
}

func TestBuildTaskKeyboard_DisabledPrimaryIsLocked(t *testing.T) {
	s := wordSnapshot(t)
	s.HasSelection = false
	s.CanSubmit = false
	s.PrimaryEnabled = false

	kb := buildTaskKeyboard(s)
	primary := kb.InlineKeyboard[len(kb.InlineKeyboard)-2][0]
	if !strings.HasPrefix(primary.Text, "🔒 ") {
		t.Fatalf("disabled primary = %q", primary.Text)
	}
}

func TestBuildTaskKeyboard_ShuffleRemoveRow(t *testing.T) {
	s := player.Snapshot{
		Task: mustTask(t, entities.KindSentenceShuffle, entities.ShuffleBody{
			Translation:   "Я иду",
			CorrectAnswer: "мен барамын",
			Options:       []string{"мен", "барамын"},
		}),
		Occurrence:   3,
		Options:      []string{"мен", "барамын"},
		Constructed:  []string{"барамын"},
		PrimaryLabel: player.LabelContinue,
	}

	rows := buildTaskKeyboard(s).InlineKeyboard
	if rows[0][1].Text != "✅ барамын" {
		t.Fatalf("constructed word not marked: %q", rows[0][1].Text)
	}
	remove := rows[1]
	if len(remove) != 1 || buttonData(remove[0]) != "l:rm:3:0" {
		t.Fatalf("remove row = %+v", remove)
	}
}

func TestBuildTaskKeyboard_Spoken(t *testing.T) {
	s := player.Snapshot{
		Task:         mustTask(t, entities.KindSpokenReading, entities.SpokenBody{Text: "сәлем"}),
		Occurrence:   2,
		Phase:        player.PhaseRecording,
		Recording:    true,
		PrimaryLabel: player.LabelCheck,
	}

	rows := buildTaskKeyboard(s).InlineKeyboard
	if buttonData(rows[0][0]) != "l:stop:2" {
		t.Fatalf("recording must offer stop, got %+v", rows[0][0])
	}

	s.Phase = player.PhaseRevealed
	s.Recording = false
	s.Locked = true
	rows = buildTaskKeyboard(s).InlineKeyboard
	if len(rows) != 2 {
		t.Fatalf("locked task must only keep primary and quit, got %d rows", len(rows))
	}
}

func TestRenderTask_RevealsCorrectAnswer(t *testing.T) {
	s := wordSnapshot(t)
	s.Answered = true
	s.Correct = false

	text := renderTask(service.LessonView{Player: s})
	if !strings.Contains(text, "*Алма*") {
		t.Fatalf("correct answer missing:\n%s", text)
	}
	if !strings.Contains(text, textIncorrect[:len(textIncorrect)-1]) {
		t.Fatalf("verdict missing:\n%s", text)
	}
}

func TestRenderHeader(t *testing.T) {
	v := service.LessonView{
		Index:   1,
		Total:   4,
		Correct: 1,
		Lives:   entities.Lives{Lives: 2, BonusLives: 1},
		State:   service.LessonActive,
	}

	text := renderHeader(v, lessonRatio(v))
	for _, want := range []string{"2/4", "❤️ 3", "+1 бонус", "[███░░░░░░░░░]"} {
		if !strings.Contains(text, md(want)) {
			t.Fatalf("header %q does not contain %q", text, want)
		}
	}
}

func TestLessonRatio_FinishedIsFull(t *testing.T) {
	v := service.LessonView{Index: 3, Total: 4, State: service.LessonFinished}
	if got := lessonRatio(v); got != 1 {
		t.Fatalf("ratio = %v, want 1", got)
	}
}

func TestLessonToast(t *testing.T) {
	shuffle := player.Snapshot{Task: mustTask(t, entities.KindSentenceShuffle, entities.ShuffleBody{
		CorrectAnswer: "мен барамын",
		Options:       []string{"мен", "барамын"},
	})}
	spoken := player.Snapshot{
		Task:      mustTask(t, entities.KindSpokenReading, entities.SpokenBody{Text: "сәлем"}),
		Recording: true,
	}

	tests := []struct {
		name string
		err  error
		s    player.Snapshot
		want string
	}{
		{name: "shuffle not ready", err: player.ErrNotReady, s: shuffle, want: toastBuildSentence},
		{name: "word not ready", err: player.ErrNotReady, s: wordSnapshot(t), want: toastSelectFirst},
		{name: "spoken while recording", err: player.ErrNotReady, s: spoken, want: toastSendVoice},
		{name: "wrapped missing capture", err: fmt.Errorf("check: %w", player.ErrCaptureMissing), want: toastCaptureMissing},
		{name: "stop without voice", err: fmt.Errorf("stop recording: %w", errNoVoice), want: toastSendVoice},
		{name: "lesson over", err: service.ErrLessonOver, want: toastStale},
		{name: "network", err: errors.New("connection reset"), want: toastNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lessonToast(tt.err, tt.s); got != tt.want {
				t.Fatalf("toast = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "no lives", err: fmt.Errorf("start: %w", service.ErrNoLives), want: msgNoLives},
		{name: "backend 401", err: &talupapi.HTTPError{StatusCode: 401}, want: msgSessionExpired},
		{name: "not authorized", err: service.ErrNotAuthorized, want: msgNotAuthorized},
		{name: "visible", err: &visibleError{text: "Не удалось войти: bad password", err: errors.New("x")}, want: "Не удалось войти: bad password"},
		{name: "other", err: errors.New("boom"), want: msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err, msgInternalError); got != tt.want {
				t.Fatalf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthError_KeepsBackendMessage(t *testing.T) {
	err := authError(fmt.Errorf("login: %w", &talupapi.HTTPError{StatusCode: 401, Message: "invalid credentials"}), msgLoginFailed)
	if got := userMessage(err, msgInternalError); got != msgLoginFailed+": invalid credentials" {
		t.Fatalf("message = %q", got)
	}
}

func TestFormatLeaderboard_ShowsCurrentSeparately(t *testing.T) {
	v := service.LeaderboardView{
		Top: []entities.LeaderboardEntry{
			{Name: "Айгерим", TreeXp: 900, Position: 1},
			{Name: "Данияр", TreeXp: 700, Position: 2},
		},
		Current: &entities.LeaderboardEntry{Name: "Мен", TreeXp: 100, Position: 14, IsCurrent: true},
	}

	text := formatLeaderboard(v)
	if !strings.Contains(text, "🥇") || !strings.Contains(text, "…") {
		t.Fatalf("leaderboard:\n%s", text)
	}
	if !strings.HasSuffix(text, "*"+md("14. Мен — 100 xp")+"*") {
		t.Fatalf("current user row missing:\n%s", text)
	}
}

func TestFormatCountdown(t *testing.T) {
	if got := formatCountdown(65); got != "1:05" {
		t.Fatalf("65s = %q", got)
	}
	if got := formatCountdown(3725); got != "1:02:05" {
		t.Fatalf("3725s = %q", got)
	}
}
