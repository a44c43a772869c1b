package talupapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
)

// NextTasks fetches the lesson queue. Records of unknown kinds are skipped.
// A 403 response means the learner has no lives left, a 404 that nothing is due.
func (c *Client) NextTasks(ctx context.Context, token string) ([]entities.Task, error) {
	var records []taskRecord
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/next-task", token: token}, &records)
	if err != nil {
		switch StatusCode(err) {
		case http.StatusForbidden:
			return nil, ErrNoLives
		case http.StatusNotFound:
			return nil, ErrNoTasks
		}
		return nil, err
	}

	tasks := make([]entities.Task, 0, len(records))
	for _, rec := range records {
		task, err := rec.toTask()
		if err != nil {
			if errors.Is(err, entities.ErrUnknownKind) {
				c.logger.Warn("skipping task of unknown kind",
					zap.String("type", rec.Type),
					zap.Int64("word_id", rec.WordID),
				)
				continue
			}
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// SubmitResult reports the outcome of a task and returns the remaining lives.
func (c *Client) SubmitResult(ctx context.Context, token string, task entities.Task, correct bool) (entities.Lives, error) {
	r, err := newJSONRequest(http.MethodPost, "/api/submit-result", token, submitRequest{
		WordID:   task.WordID,
		Success:  correct,
		TaskType: task.Kind.WireName(),
	})
	if err != nil {
		return entities.Lives{}, err
	}

	var resp livesResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return entities.Lives{}, err
	}

	return entities.Lives{Lives: resp.Lives, BonusLives: resp.BonusLives}, nil
}
