package service

import (
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/postgres"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	DeleteToken(ctx context.Context, userID int64) error
}

// UserRepositoryFactory binds a user repository to a pool or a transaction.
type UserRepositoryFactory func(db postgres.DBTX) UserRepository

type LessonRepository interface {
	Record(ctx context.Context, s entities.LessonSummary) error
	Stats(ctx context.Context, userID int64) (entities.LessonStats, error)
	Recent(ctx context.Context, userID int64, limit int) ([]entities.LessonSummary, error)
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (talupapi.Session, error)
	Register(ctx context.Context, reg talupapi.Registration) (talupapi.Session, error)
}

type LessonAPI interface {
	NextTasks(ctx context.Context, token string) ([]entities.Task, error)
	SubmitResult(ctx context.Context, token string, task entities.Task, correct bool) (entities.Lives, error)
	SubmitASR(ctx context.Context, token string, audio talupapi.Audio, expected string) (talupapi.ASRResult, error)
	Profile(ctx context.Context, token string) (entities.Profile, error)
}

type ProfileAPI interface {
	Profile(ctx context.Context, token string) (entities.Profile, error)
	Streak(ctx context.Context, token string) (entities.Streak, error)
	TouchStreak(ctx context.Context, token string, day time.Time) error
	Leaderboard(ctx context.Context, token string) ([]entities.LeaderboardEntry, error)
	WordList(ctx context.Context, token, listType string) ([]entities.WordListItem, error)
	RandomWord(ctx context.Context, token string) (entities.RandomWord, error)
	BuyLife(ctx context.Context, token string) (entities.PurchaseResult, error)
	UpdatePassword(ctx context.Context, token, password string) error
	UpdateAvatar(ctx context.Context, token string, img talupapi.Image) (string, error)
}

// TokenProvider returns a valid backend token for a Telegram user.
type TokenProvider interface {
	Token(ctx context.Context, userID int64) (string, error)
}

// CaptureSource opens recorded audio. A capture that no longer exists yields ErrCaptureNotFound.
type CaptureSource interface {
	Open(ctx context.Context, capture player.Capture) (io.ReadCloser, error)
}
