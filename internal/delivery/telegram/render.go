package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/service"
	"github.com/aliskhannn/talup-bot/internal/widgets"
)

const levelBarLength = 15

func formatProfile(ov service.ProfileOverview, today time.Weekday) string {
	p := ov.Profile
	var sb strings.Builder

	name := p.Name
	if name == "" {
		name = p.Username
	}
	sb.WriteString(bold("👤 " + name))
	if p.Username != "" && p.Username != name {
		sb.WriteString(md(" @" + p.Username))
	}
	sb.WriteString("\n")
	if p.CurrentLevel != "" || p.AimLevel != "" {
		sb.WriteString(md(fmt.Sprintf("🎓 %s → %s", p.CurrentLevel, p.AimLevel)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(md(widgets.LevelBar(p.Level, p.Xp, p.MaxXp, levelBarLength)))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Ежедневная цель"))
	sb.WriteString("\n")
	sb.WriteString(md(widgets.Ring(p.TodayLearnedWords, p.DailyGoal)))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Ударный режим"))
	sb.WriteString(md(" · " + widgets.DayWord(ov.Streak.Count)))
	sb.WriteString("\n")
	sb.WriteString(md(widgets.StreakRow(ov.Streak.Days, today)))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("📚 Выучено слов: %d · изучаю: %d", p.LearnedWords, p.LearningWords)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❤️ Жизни: %d", p.Lives.Total())))
	if p.NextLifeInSeconds > 0 {
		sb.WriteString(md(" · следующая через " + formatCountdown(p.NextLifeInSeconds)))
	}
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🪙 Монеты: %d", p.Coins)))

	if ov.Stats.Lessons > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("🧠 Уроков в боте: %d · точность %.0f%%", ov.Stats.Lessons, ov.Stats.Accuracy())))
	}

	for _, l := range ov.Recent {
		line := fmt.Sprintf("• %s · %d/%d", l.FinishedAt.Format("02.01 15:04"), l.Correct, l.Total)
		if l.OutOfLives {
			line += " 💔"
		}
		sb.WriteString("\n")
		sb.WriteString(md(line))
	}

	return sb.String()
}

// formatCountdown renders seconds as m:ss or h:mm:ss.
func formatCountdown(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

var medals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

func formatLeaderboard(v service.LeaderboardView) string {
	var sb strings.Builder
	sb.WriteString(bold("🏆 Таблица лидеров"))
	sb.WriteString("\n\n")

	if len(v.Top) == 0 {
		sb.WriteString(md(msgWordsEmpty))
		return sb.String()
	}

	for _, e := range v.Top {
		sb.WriteString(formatLeaderboardRow(e))
		sb.WriteString("\n")
	}

	if v.Current != nil {
		sb.WriteString(md("…"))
		sb.WriteString("\n")
		sb.WriteString(formatLeaderboardRow(*v.Current))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatLeaderboardRow(e entities.LeaderboardEntry) string {
	place, ok := medals[e.Position]
	if !ok {
		place = fmt.Sprintf("%d.", e.Position)
	}

	row := md(fmt.Sprintf("%s %s — %d xp", place, e.Name, e.TreeXp))
	if e.IsCurrent {
		return "*" + row + "*"
	}
	return row
}

func formatShop(p entities.Profile) string {
	var sb strings.Builder
	sb.WriteString(bold("🛒 Магазин"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🪙 Монеты: %d", p.Coins)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❤️ Жизни: %d", p.Lives.Total())))
	return sb.String()
}

func formatPurchase(r entities.PurchaseResult) string {
	msg := r.Message
	if msg == "" {
		msg = msgLifeBought
	}
	return md(fmt.Sprintf("%s\n❤️ Жизни: %d · 🪙 Монеты: %d", msg, r.Lives, r.Coins))
}

func formatWords(listType string, words []entities.WordListItem) string {
	title := "📖 Изучаю"
	if listType == talupapi.WordsLearned {
		title = "✅ Выучено"
	}

	var sb strings.Builder
	sb.WriteString(bold(title))
	sb.WriteString("\n\n")

	if len(words) == 0 {
		sb.WriteString(md(msgWordsEmpty))
		return sb.String()
	}

	for _, w := range words {
		translation := w.Translation
		if translation == "" {
			translation = "(нет перевода)"
		}
		sb.WriteString(bold(capitalize(w.Word)))
		sb.WriteString(md(" — " + capitalize(translation)))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatRandomWord(w entities.RandomWord) string {
	return bold("✨ Слово дня") + "\n\n" + bold(capitalize(w.Word)) + md(" — "+w.Translation)
}
