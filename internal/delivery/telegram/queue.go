package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// userQueue keeps the pending items of each user in arrival order. A user with
// queued items has exactly one drainer.
type userQueue[T any] struct {
	mu      sync.Mutex
	pending map[int64][]T
}

func newUserQueue[T any]() *userQueue[T] {
	return &userQueue[T]{pending: make(map[int64][]T)}
}

// push appends v to the user's queue. It reports whether the queue was idle, in
// which case the caller starts a drainer.
func (q *userQueue[T]) push(userID int64, v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, busy := q.pending[userID]
	q.pending[userID] = append(q.pending[userID], v)
	return !busy
}

// next pops the oldest item of the user. An empty queue is dropped and next
// reports false; the drainer must stop then.
func (q *userQueue[T]) next(userID int64) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.pending[userID]
	if len(pending) == 0 {
		delete(q.pending, userID)
		var zero T
		return zero, false
	}

	v := pending[0]
	pending[0] = *new(T)
	q.pending[userID] = pending[1:]
	return v, true
}

// updateUserID returns the user an update belongs to.
func updateUserID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID, true
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	}
	return 0, false
}
