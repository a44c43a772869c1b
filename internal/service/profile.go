package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
)

var ErrUnknownWordList = errors.New("unknown word list type")

const recentLessons = 3

// ProfileOverview is everything shown by /profile.
type ProfileOverview struct {
	Profile entities.Profile
	Streak  entities.Streak
	Stats   entities.LessonStats
	Recent  []entities.LessonSummary
}

// LeaderboardView is the trimmed ranking plus the current user when ranked below it.
type LeaderboardView struct {
	Top     []entities.LeaderboardEntry
	Current *entities.LeaderboardEntry
}

// ProfileService serves profile, streak, leaderboard, words and shop screens.
type ProfileService struct {
	api             ProfileAPI
	tokens          TokenProvider
	history         LessonRepository
	leaderboardSize int
	now             func() time.Time
	logger          *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	api ProfileAPI,
	tokens TokenProvider,
	history LessonRepository,
	leaderboardSize int,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		api:             api,
		tokens:          tokens,
		history:         history,
		leaderboardSize: leaderboardSize,
		now:             time.Now,
		logger:          logger,
	}
}

// Overview loads profile, streak and local lesson stats concurrently, then marks
// today in the streak.
func (s *ProfileService) Overview(ctx context.Context, userID int64) (ProfileOverview, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return ProfileOverview{}, err
	}

	var ov ProfileOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.api.Profile(gctx, token)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		ov.Profile = p
		return nil
	})

	g.Go(func() error {
		st, err := s.api.Streak(gctx, token)
		if err != nil {
			return fmt.Errorf("streak: %w", err)
		}
		ov.Streak = st
		return nil
	})

	g.Go(func() error {
		stats, err := s.history.Stats(gctx, userID)
		if err != nil {
			s.logger.Warn("lesson stats unavailable", zap.Int64("user_id", userID), zap.Error(err))
			return nil
		}
		ov.Stats = stats
		return nil
	})

	g.Go(func() error {
		recent, err := s.history.Recent(gctx, userID, recentLessons)
		if err != nil {
			s.logger.Warn("recent lessons unavailable", zap.Int64("user_id", userID), zap.Error(err))
			return nil
		}
		ov.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return ProfileOverview{}, err
	}

	if err := s.api.TouchStreak(ctx, token, s.now()); err != nil {
		s.logger.Warn("failed to update streak", zap.Int64("user_id", userID), zap.Error(err))
	}

	return ov, nil
}

// Leaderboard returns the top entries and the current user if ranked below them.
func (s *ProfileService) Leaderboard(ctx context.Context, userID int64) (LeaderboardView, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return LeaderboardView{}, err
	}

	entries, err := s.api.Leaderboard(ctx, token)
	if err != nil {
		return LeaderboardView{}, fmt.Errorf("leaderboard: %w", err)
	}

	size := s.leaderboardSize
	if size <= 0 || size > len(entries) {
		size = len(entries)
	}

	view := LeaderboardView{Top: entries[:size]}
	for i := range entries {
		if entries[i].IsCurrent && entries[i].Position > size {
			cur := entries[i]
			view.Current = &cur
			break
		}
	}

	return view, nil
}

// Words returns the learning or learned word list.
func (s *ProfileService) Words(ctx context.Context, userID int64, listType string) ([]entities.WordListItem, error) {
	if listType != talupapi.WordsLearning && listType != talupapi.WordsLearned {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWordList, listType)
	}

	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.api.WordList(ctx, token, listType)
}

// RandomWord returns the word of the moment.
func (s *ProfileService) RandomWord(ctx context.Context, userID int64) (entities.RandomWord, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return entities.RandomWord{}, err
	}
	return s.api.RandomWord(ctx, token)
}

// BuyLife spends coins on a life.
func (s *ProfileService) BuyLife(ctx context.Context, userID int64) (entities.PurchaseResult, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return entities.PurchaseResult{}, err
	}

	res, err := s.api.BuyLife(ctx, token)
	if err != nil {
		return entities.PurchaseResult{}, err
	}

	s.logger.Info("life purchased", zap.Int64("user_id", userID), zap.Int("coins", res.Coins))
	return res, nil
}

// Wallet returns the profile with the coin balance and lives shown in the shop.
func (s *ProfileService) Wallet(ctx context.Context, userID int64) (entities.Profile, error) {
	token, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return entities.Profile{}, err
	}
	return s.api.Profile(ctx, token)
}
