package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/postgres"
	"github.com/aliskhannn/talup-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[int64]entities.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[int64]entities.User)}
}

func (f *fakeUsers) Save(_ context.Context, u *entities.User) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.users[u.ID]
	f.users[u.ID] = *u
	return !exists, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) DeleteToken(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Token = ""
		f.users[id] = u
	}
	return nil
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	f.calls++
	return fn(ctx, nil)
}

func usersFactory(u UserRepository) UserRepositoryFactory {
	return func(postgres.DBTX) UserRepository { return u }
}

type fakeHistory struct {
	mu       sync.Mutex
	recorded []entities.LessonSummary
	stats    entities.LessonStats
}

func (f *fakeHistory) Record(_ context.Context, s entities.LessonSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, s)
	return nil
}

func (f *fakeHistory) Stats(context.Context, int64) (entities.LessonStats, error) {
	return f.stats, nil
}

func (f *fakeHistory) Recent(_ context.Context, _ int64, limit int) ([]entities.LessonSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entities.LessonSummary
	for i := len(f.recorded) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.recorded[i])
	}
	return out, nil
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context, int64) (string, error) { return s.token, s.err }

type fakeAPI struct {
	mu sync.Mutex

	tasks      []entities.Task
	tasksErr   error
	profile    entities.Profile
	profileErr error
	livesSeq   []entities.Lives
	submitErr  error
	submitted  []bool
	asr        talupapi.ASRResult
	asrAudio   []byte
	asrExpect  string

	streak       entities.Streak
	touched      []time.Time
	leaderboard  []entities.LeaderboardEntry
	words        []entities.WordListItem
	wordListType string

	password  string
	avatar    []byte
	avatarImg talupapi.Image
	avatarErr error
}

func (f *fakeAPI) NextTasks(context.Context, string) ([]entities.Task, error) {
	return f.tasks, f.tasksErr
}

func (f *fakeAPI) SubmitResult(_ context.Context, _ string, _ entities.Task, correct bool) (entities.Lives, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return entities.Lives{}, f.submitErr
	}
	f.submitted = append(f.submitted, correct)
	if len(f.livesSeq) == 0 {
		return entities.Lives{Lives: 5}, nil
	}
	l := f.livesSeq[0]
	f.livesSeq = f.livesSeq[1:]
	return l, nil
}

func (f *fakeAPI) SubmitASR(_ context.Context, _ string, audio talupapi.Audio, expected string) (talupapi.ASRResult, error) {
	data, _ := io.ReadAll(audio.Data)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asrAudio = data
	f.asrExpect = expected
	return f.asr, nil
}

func (f *fakeAPI) Profile(context.Context, string) (entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.profileErr
}

func (f *fakeAPI) Streak(context.Context, string) (entities.Streak, error) { return f.streak, nil }

func (f *fakeAPI) TouchStreak(_ context.Context, _ string, day time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, day)
	return nil
}

func (f *fakeAPI) Leaderboard(context.Context, string) ([]entities.LeaderboardEntry, error) {
	return f.leaderboard, nil
}

func (f *fakeAPI) WordList(_ context.Context, _ string, listType string) ([]entities.WordListItem, error) {
	f.wordListType = listType
	return f.words, nil
}

func (f *fakeAPI) RandomWord(context.Context, string) (entities.RandomWord, error) {
	return entities.RandomWord{Word: "алма", Translation: "яблоко"}, nil
}

func (f *fakeAPI) BuyLife(context.Context, string) (entities.PurchaseResult, error) {
	return entities.PurchaseResult{Lives: 3, Coins: 10}, nil
}

func (f *fakeAPI) UpdatePassword(_ context.Context, _ string, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.password = password
	return nil
}

func (f *fakeAPI) UpdateAvatar(_ context.Context, _ string, img talupapi.Image) (string, error) {
	data, _ := io.ReadAll(img.Data)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.avatarErr != nil {
		return "", f.avatarErr
	}
	f.avatar = data
	f.avatarImg = img
	return "/uploads/avatars/" + img.FileName, nil
}

type fakeCaptures struct {
	data map[string][]byte
}

func (f fakeCaptures) Open(_ context.Context, c player.Capture) (io.ReadCloser, error) {
	b, ok := f.data[c.URI]
	if !ok {
		return nil, ErrCaptureNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

type fakeRecorder struct{}

func (fakeRecorder) RequestPermission(context.Context) (bool, error) { return true, nil }

func (fakeRecorder) Start(context.Context) (player.Recording, error) {
	return &fakeRecording{}, nil
}

type fakeRecording struct {
	uri string
}

func (r *fakeRecording) Active(context.Context) (bool, error) { return true, nil }

func (r *fakeRecording) Stop(context.Context) (player.Capture, error) {
	uri := r.uri
	if uri == "" {
		uri = "voice-1"
	}
	return player.Capture{URI: uri}, nil
}

func (r *fakeRecording) Discard() {}
