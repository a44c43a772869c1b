package entities

// Lives is the heart count reported by the backend.
type Lives struct {
	Lives      int
	BonusLives int
}

// Total returns regular plus bonus lives.
func (l Lives) Total() int {
	return l.Lives + l.BonusLives
}

// Profile is the learner profile shown on the profile screen.
type Profile struct {
	Email             string
	Name              string
	Username          string
	Avatar            string
	CurrentLevel      string
	AimLevel          string
	Xp                int
	MaxXp             int
	Level             int
	LearnedWords      int
	LearningWords     int
	TodayLearnedWords int
	DailyGoal         int
	Streak            int
	StreakDays        []string
	Lives             Lives
	NextLifeInSeconds int
	Coins             int
}

// Streak is the weekly streak tracker state.
type Streak struct {
	Days      []string // weekday abbreviations, e.g. "ПН"
	LastLogin string
	Count     int
}

// LeaderboardEntry is one row of the leaderboard.
type LeaderboardEntry struct {
	ID        int64
	Name      string
	Avatar    string
	TreeXp    int
	Position  int
	IsCurrent bool
}

// WordListItem is a learned or learning word.
type WordListItem struct {
	Word        string
	Translation string
}

// RandomWord is the word of the moment shown before a lesson.
type RandomWord struct {
	Word        string
	Translation string
}

// PurchaseResult is the shop response after buying a life.
type PurchaseResult struct {
	Message string
	Lives   int
	Coins   int
}
