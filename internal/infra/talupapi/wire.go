package talupapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// flexID accepts both numeric and string identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type taskRecord struct {
	ID                flexID   `json:"id"`
	WordID            int64    `json:"word_id"`
	Type              string   `json:"type"`
	Difficulty        string   `json:"difficulty"`
	MaskedSentence    string   `json:"masked_sentence"`
	Sentence          string   `json:"sentence"`
	CorrectAnswer     string   `json:"correct_answer"`
	Translation       string   `json:"translation"`
	TranslationTarget string   `json:"translation_target"`
	Options           []string `json:"options"`
	Text              string   `json:"text"`
}

// toTask maps a backend record onto a task. Correct answers and translation targets
// are lower-cased the way the backend expects them to be displayed.
func (r taskRecord) toTask() (entities.Task, error) {
	kind, err := entities.ParseKind(r.Type)
	if err != nil {
		return entities.Task{}, err
	}

	correct := strings.ToLower(r.CorrectAnswer)
	target := strings.ToLower(r.TranslationTarget)

	var body entities.TaskBody
	switch kind {
	case entities.KindWordChoice:
		body = entities.NewWordChoiceBody(target, correct, r.Options)
	case entities.KindSentenceChoice:
		sentence := r.Sentence
		if sentence == "" {
			sentence = r.MaskedSentence
		}
		body = entities.NewSentenceChoiceBody(sentence, target, r.Translation, correct, r.Options)
	case entities.KindSentenceShuffle:
		body = entities.ShuffleBody{
			Translation:   r.Translation,
			CorrectAnswer: correct,
			Options:       r.Options,
		}
	case entities.KindSpokenReading:
		text := r.Text
		if text == "" {
			text = r.Sentence
		}
		body = entities.SpokenBody{Text: text}
	default:
		return entities.Task{}, fmt.Errorf("%w: %s", entities.ErrUnknownKind, kind)
	}

	id := string(r.ID)
	if id == "" {
		id = fmt.Sprintf("%s-%d", kind, r.WordID)
	}
	return entities.NewTask(id, r.WordID, kind, r.Difficulty, body)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type submitRequest struct {
	WordID   int64  `json:"word_id"`
	Success  bool   `json:"success"`
	TaskType string `json:"task_type"`
}

type livesResponse struct {
	Lives      int `json:"lives"`
	BonusLives int `json:"bonusLives"`
}

type asrResponse struct {
	Correct     bool   `json:"correct"`
	Transcribed string `json:"transcribed"`
}

type profileResponse struct {
	Email             string   `json:"email"`
	Name              string   `json:"name"`
	Username          string   `json:"username"`
	Avatar            string   `json:"avatar"`
	CurrentLevel      string   `json:"currentLevel"`
	AimLevel          string   `json:"aimLevel"`
	Xp                int      `json:"xp"`
	MaxXp             int      `json:"maxXp"`
	Level             int      `json:"level"`
	LearnedWords      int      `json:"learnedWords"`
	LearningWords     int      `json:"learningWords"`
	TodayLearnedWords int      `json:"todayLearnedWords"`
	DailyGoal         int      `json:"dailyGoal"`
	Streak            int      `json:"streak"`
	StreakDays        []string `json:"streakDays"`
	Lives             int      `json:"lives"`
	BonusLives        int      `json:"bonusLives"`
	NextLifeInSeconds int      `json:"nextLifeInSeconds"`
	Coins             int      `json:"coins"`
}

func (p profileResponse) toProfile() entities.Profile {
	return entities.Profile{
		Email:             p.Email,
		Name:              p.Name,
		Username:          p.Username,
		Avatar:            p.Avatar,
		CurrentLevel:      p.CurrentLevel,
		AimLevel:          p.AimLevel,
		Xp:                p.Xp,
		MaxXp:             p.MaxXp,
		Level:             p.Level,
		LearnedWords:      p.LearnedWords,
		LearningWords:     p.LearningWords,
		TodayLearnedWords: p.TodayLearnedWords,
		DailyGoal:         p.DailyGoal,
		Streak:            p.Streak,
		StreakDays:        p.StreakDays,
		Lives:             entities.Lives{Lives: p.Lives, BonusLives: p.BonusLives},
		NextLifeInSeconds: p.NextLifeInSeconds,
		Coins:             p.Coins,
	}
}

type streakResponse struct {
	Days      []string `json:"days"`
	LastLogin string   `json:"lastLogin"`
	Streak    int      `json:"streak"`
}

type streakUpdate struct {
	LastLogin string `json:"lastLogin"`
}

type leaderboardRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	TreeXp    int    `json:"treeXp"`
	Position  int    `json:"position"`
	IsCurrent bool   `json:"isCurrent"`
}

type wordRow struct {
	Word              string `json:"word"`
	Translation       string `json:"translation"`
	TranslationTarget string `json:"translation_target"`
}

type purchaseResponse struct {
	Message string `json:"message"`
	Lives   int    `json:"lives"`
	Coins   int    `json:"coins"`
}

type passwordUpdate struct {
	Password string `json:"password"`
}

type avatarResponse struct {
	Message string `json:"message"`
	Avatar  string `json:"avatar"`
}
