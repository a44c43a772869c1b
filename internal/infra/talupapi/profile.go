package talupapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// Word list types accepted by WordList.
const (
	WordsLearning = "learning"
	WordsLearned  = "learned"
)

// Profile fetches the learner profile.
func (c *Client) Profile(ctx context.Context, token string) (entities.Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/profile", token: token}, &resp); err != nil {
		return entities.Profile{}, err
	}
	return resp.toProfile(), nil
}

// Streak fetches the weekly streak.
func (c *Client) Streak(ctx context.Context, token string) (entities.Streak, error) {
	var resp streakResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/streak", token: token}, &resp); err != nil {
		return entities.Streak{}, err
	}
	return entities.Streak{Days: resp.Days, LastLogin: resp.LastLogin, Count: resp.Streak}, nil
}

// TouchStreak marks day as visited.
func (c *Client) TouchStreak(ctx context.Context, token string, day time.Time) error {
	r, err := newJSONRequest(http.MethodPut, "/api/streak/update", token, streakUpdate{
		LastLogin: day.Format(time.DateOnly),
	})
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// Leaderboard fetches the ranking.
func (c *Client) Leaderboard(ctx context.Context, token string) ([]entities.LeaderboardEntry, error) {
	var rows []leaderboardRow
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/leaderboard", token: token}, &rows); err != nil {
		return nil, err
	}

	entries := make([]entities.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, entities.LeaderboardEntry{
			ID:        r.ID,
			Name:      r.Name,
			Avatar:    r.Avatar,
			TreeXp:    r.TreeXp,
			Position:  r.Position,
			IsCurrent: r.IsCurrent,
		})
	}
	return entries, nil
}

// WordList fetches learned or learning words.
func (c *Client) WordList(ctx context.Context, token, listType string) ([]entities.WordListItem, error) {
	path := "/api/word-list?type=" + url.QueryEscape(listType)

	var rows []wordRow
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &rows); err != nil {
		return nil, err
	}

	items := make([]entities.WordListItem, 0, len(rows))
	for _, r := range rows {
		translation := r.TranslationTarget
		if translation == "" {
			translation = r.Translation
		}
		items = append(items, entities.WordListItem{Word: r.Word, Translation: translation})
	}
	return items, nil
}

// RandomWord fetches the word of the moment.
func (c *Client) RandomWord(ctx context.Context, token string) (entities.RandomWord, error) {
	var resp wordRow
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/random-word", token: token}, &resp); err != nil {
		return entities.RandomWord{}, err
	}
	return entities.RandomWord{Word: resp.Word, Translation: resp.Translation}, nil
}

// BuyLife spends coins on one life.
func (c *Client) BuyLife(ctx context.Context, token string) (entities.PurchaseResult, error) {
	var resp purchaseResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/shop/buy-life", token: token}, &resp); err != nil {
		return entities.PurchaseResult{}, err
	}
	return entities.PurchaseResult{Message: resp.Message, Lives: resp.Lives, Coins: resp.Coins}, nil
}
