package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
)

var (
	ErrNoTasks         = errors.New("no tasks available")
	ErrNoLives         = errors.New("no lives left")
	ErrLessonOver      = errors.New("lesson is over")
	ErrCaptureNotFound = errors.New("capture not found")
)

// LessonState is the lifecycle state of a lesson.
type LessonState string

const (
	LessonActive     LessonState = "active"
	LessonFinished   LessonState = "finished"
	LessonOutOfLives LessonState = "out_of_lives"
	LessonQuit       LessonState = "quit"
)

// LessonView is a read-only view of a lesson for rendering.
type LessonView struct {
	ID      string
	Index   int
	Total   int
	Correct int
	Lives   entities.Lives
	State   LessonState
	Player  player.Snapshot
}

// Lesson drives one run through the task queue. It owns the player and the
// profile poller.
type Lesson struct {
	id        string
	userID    int64
	token     string
	api       LessonAPI
	history   LessonRepository
	startedAt time.Time
	logger    *zap.Logger

	player *player.Player
	poller *ProfilePoller

	mu       sync.Mutex
	tasks    []entities.Task
	index    int
	answered int
	correct  int
	lives    entities.Lives
	state    LessonState
	onLives  func(entities.Lives)
}

// ID returns the lesson identifier.
func (l *Lesson) ID() string { return l.id }

// Player returns the task player of the lesson.
func (l *Lesson) Player() *player.Player { return l.player }

// View returns the lesson state together with the player snapshot.
func (l *Lesson) View() LessonView {
	snap := l.player.Snapshot()

	l.mu.Lock()
	defer l.mu.Unlock()

	return LessonView{
		ID:      l.id,
		Index:   l.index,
		Total:   len(l.tasks),
		Correct: l.correct,
		Lives:   l.lives,
		State:   l.state,
		Player:  snap,
	}
}

// Quit ends the lesson early.
func (l *Lesson) Quit(ctx context.Context) {
	l.finish(ctx, LessonQuit)
}

// handleAnswer reports the outcome to the backend and advances the queue. An error
// leaves the lesson untouched so the player can deliver the answer again.
func (l *Lesson) handleAnswer(ctx context.Context, correct bool) error {
	l.mu.Lock()
	if l.state != LessonActive {
		l.mu.Unlock()
		return ErrLessonOver
	}
	task := l.tasks[l.index]
	l.mu.Unlock()

	lives, err := l.api.SubmitResult(ctx, l.token, task, correct)
	if err != nil {
		return fmt.Errorf("submit result: %w", err)
	}

	l.mu.Lock()
	l.lives = lives
	l.answered++

	if lives.Total() <= 0 {
		l.mu.Unlock()
		l.logger.Info("lesson stopped, out of lives", zap.String("lesson_id", l.id))
		l.finish(ctx, LessonOutOfLives)
		return nil
	}

	if correct {
		l.correct++
	}

	if l.index+1 >= len(l.tasks) {
		l.mu.Unlock()
		l.finish(ctx, LessonFinished)
		return nil
	}

	l.index++
	next := l.tasks[l.index]
	l.mu.Unlock()

	l.player.Load(next)
	return nil
}

// applyLives is the poller callback.
func (l *Lesson) applyLives(lives entities.Lives) {
	l.mu.Lock()
	if l.state != LessonActive {
		l.mu.Unlock()
		return
	}
	l.lives = lives
	notify := l.onLives
	l.mu.Unlock()

	if notify != nil {
		notify(lives)
	}
}

func (l *Lesson) finish(ctx context.Context, state LessonState) {
	l.mu.Lock()
	if l.state != LessonActive {
		l.mu.Unlock()
		return
	}
	l.state = state
	summary := entities.LessonSummary{
		ID:         l.id,
		UserID:     l.userID,
		Total:      len(l.tasks),
		Answered:   l.answered,
		Correct:    l.correct,
		OutOfLives: state == LessonOutOfLives,
		StartedAt:  l.startedAt,
		FinishedAt: time.Now(),
	}
	l.mu.Unlock()

	l.poller.Stop()

	if err := l.history.Record(ctx, summary); err != nil {
		l.logger.Error("failed to record lesson",
			zap.String("lesson_id", l.id),
			zap.Int64("user_id", l.userID),
			zap.Error(err),
		)
	}

	l.logger.Info("lesson ended",
		zap.String("lesson_id", l.id),
		zap.String("state", string(state)),
		zap.Int("answered", summary.Answered),
		zap.Int("correct", summary.Correct),
	)
}

// speechJudge sends captures to the backend ASR endpoint.
type speechJudge struct {
	api      LessonAPI
	token    string
	captures CaptureSource
}

func (j *speechJudge) Judge(ctx context.Context, c player.Capture, expected string) (bool, error) {
	audio, err := j.captures.Open(ctx, c)
	if err != nil {
		if errors.Is(err, ErrCaptureNotFound) {
			return false, player.ErrCaptureMissing
		}
		return false, fmt.Errorf("open capture: %w", err)
	}
	defer audio.Close()

	res, err := j.api.SubmitASR(ctx, j.token, talupapi.Audio{
		Data:        audio,
		FileName:    c.FileName,
		ContentType: c.ContentType,
	}, expected)
	if err != nil {
		return false, err
	}

	return res.Correct, nil
}

// LessonService starts lessons.
type LessonService struct {
	api          LessonAPI
	tokens       TokenProvider
	captures     CaptureSource
	history      LessonRepository
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewLessonService creates a new LessonService.
func NewLessonService(
	api LessonAPI,
	tokens TokenProvider,
	captures CaptureSource,
	history LessonRepository,
	pollInterval time.Duration,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		api:          api,
		tokens:       tokens,
		captures:     captures,
		history:      history,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Start fetches the task queue and current lives, loads the first task and starts
// the profile poller. onLives receives polled lives changes.
func (s *LessonService) Start(
	ctx context.Context,
	userID int64,
	recorder player.Recorder,
	onLives func(entities.Lives),
) (*Lesson, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.api.NextTasks(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, talupapi.ErrNoLives):
			return nil, ErrNoLives
		case errors.Is(err, talupapi.ErrNoTasks):
			return nil, ErrNoTasks
		}
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	var lives entities.Lives
	if profile, err := s.api.Profile(ctx, token); err != nil {
		s.logger.Warn("failed to load lives before lesson", zap.Int64("user_id", userID), zap.Error(err))
	} else {
		lives = profile.Lives
	}

	id := uuid.NewString()
	logger := s.logger.With(zap.String("lesson_id", id), zap.Int64("user_id", userID))

	l := &Lesson{
		id:        id,
		userID:    userID,
		token:     token,
		api:       s.api,
		history:   s.history,
		startedAt: time.Now(),
		logger:    logger,
		tasks:     tasks,
		lives:     lives,
		state:     LessonActive,
		onLives:   onLives,
	}

	judge := &speechJudge{api: s.api, token: token, captures: s.captures}
	l.player = player.New(recorder, judge, l.handleAnswer, logger)
	l.poller = NewProfilePoller(s.api, token, s.pollInterval, l.applyLives, logger)

	l.player.Load(tasks[0])

	if err := l.poller.Start(lives); err != nil {
		logger.Warn("profile poller not started", zap.Error(err))
	}

	logger.Info("lesson started", zap.Int("tasks", len(tasks)))
	return l, nil
}
