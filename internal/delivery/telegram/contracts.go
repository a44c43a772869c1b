package telegram

import (
	"context"
	"io"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
	"github.com/aliskhannn/talup-bot/internal/player"
	"github.com/aliskhannn/talup-bot/internal/service"
	"github.com/aliskhannn/talup-bot/internal/storage"
)

type AuthService interface {
	Login(ctx context.Context, userID, chatID int64, email, password string) (talupapi.Session, error)
	Register(ctx context.Context, userID, chatID int64, reg talupapi.Registration) (talupapi.Session, error)
	Logout(ctx context.Context, userID int64) error
}

type LessonService interface {
	Start(ctx context.Context, userID int64, recorder player.Recorder, onLives func(entities.Lives)) (*service.Lesson, error)
}

type ProfileService interface {
	Overview(ctx context.Context, userID int64) (service.ProfileOverview, error)
	Leaderboard(ctx context.Context, userID int64) (service.LeaderboardView, error)
	Words(ctx context.Context, userID int64, listType string) ([]entities.WordListItem, error)
	RandomWord(ctx context.Context, userID int64) (entities.RandomWord, error)
	BuyLife(ctx context.Context, userID int64) (entities.PurchaseResult, error)
	Wallet(ctx context.Context, userID int64) (entities.Profile, error)
	ChangePassword(ctx context.Context, userID int64, password string) error
	UpdateAvatar(ctx context.Context, userID int64, img talupapi.Image) (string, error)
}

// FileSource downloads files sent to the bot.
type FileSource interface {
	Fetch(ctx context.Context, fileID string) (io.ReadCloser, error)
}

type LessonStorage interface {
	Store(userID int64, session *storage.LessonSession) *storage.LessonSession
	Get(userID int64) (*storage.LessonSession, bool)
	Delete(userID int64, lessonID string) bool
	All() map[int64]*storage.LessonSession
}
