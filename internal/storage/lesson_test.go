package storage

import "testing"

func TestLessonStorage_StoreReplaces(t *testing.T) {
	s := NewLessonStorage()

	first := NewLessonSession(nil, 10)
	if prev := s.Store(1, first); prev != nil {
		t.Fatalf("unexpected previous session")
	}

	second := NewLessonSession(nil, 10)
	if prev := s.Store(1, second); prev != first {
		t.Fatalf("previous session not returned")
	}

	got, ok := s.Get(1)
	if !ok || got != second {
		t.Fatalf("Get returned %p, want %p", got, second)
	}
	if _, ok := s.Get(2); ok {
		t.Fatalf("unknown user found")
	}
	if len(s.All()) != 1 {
		t.Fatalf("All = %v", s.All())
	}
}

func TestLessonSession_Messages(t *testing.T) {
	session := NewLessonSession(nil, 10)

	if h, tk := session.Messages(); h != 0 || tk != 0 {
		t.Fatalf("fresh session has messages %d %d", h, tk)
	}

	session.SetMessages(3, 4)
	if h, tk := session.Messages(); h != 3 || tk != 4 {
		t.Fatalf("messages = %d %d", h, tk)
	}
}
