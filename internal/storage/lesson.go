package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/talup-bot/internal/service"
)

// LessonSession is an active lesson and the chat messages that render it.
type LessonSession struct {
	Lesson    *service.Lesson
	ChatID    int64
	StartedAt time.Time

	mu              sync.Mutex
	headerMessageID int
	taskMessageID   int
}

// NewLessonSession creates a session for lesson in chatID.
func NewLessonSession(lesson *service.Lesson, chatID int64) *LessonSession {
	return &LessonSession{
		Lesson:    lesson,
		ChatID:    chatID,
		StartedAt: time.Now(),
	}
}

// Messages returns the header and task message IDs. Zero means not sent yet.
func (s *LessonSession) Messages() (header, task int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headerMessageID, s.taskMessageID
}

// SetMessages records the header and task message IDs.
func (s *LessonSession) SetMessages(header, task int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headerMessageID = header
	s.taskMessageID = task
}

// LessonStorage provides in-memory storage for active lessons by user ID.
type LessonStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*LessonSession
}

// NewLessonStorage creates a new LessonStorage.
func NewLessonStorage() *LessonStorage {
	return &LessonStorage{
		sessions: make(map[int64]*LessonSession),
	}
}

// Store saves the session and returns the one it replaced, if any.
func (s *LessonStorage) Store(userID int64, session *LessonSession) *LessonSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.sessions[userID]
	s.sessions[userID] = session
	return prev
}

// Get retrieves the active session of a user.
func (s *LessonStorage) Get(userID int64) (*LessonSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	return session, ok
}

// Delete removes the session of a user if it still belongs to lessonID.
func (s *LessonStorage) Delete(userID int64, lessonID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.Lesson.ID() != lessonID {
		return false
	}
	delete(s.sessions, userID)
	return true
}

// All returns a snapshot of active sessions keyed by user ID.
func (s *LessonStorage) All() map[int64]*LessonSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64]*LessonSession, len(s.sessions))
	for id, session := range s.sessions {
		out[id] = session
	}
	return out
}
