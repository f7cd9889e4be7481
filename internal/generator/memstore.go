package generator

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLessonStore keeps lessons in memory. Used when no database is
// configured and in tests.
type MemoryLessonStore struct {
	mu      sync.RWMutex
	lessons map[string]*Lesson
}

func NewMemoryLessonStore() *MemoryLessonStore {
	return &MemoryLessonStore{lessons: make(map[string]*Lesson)}
}

func (m *MemoryLessonStore) SaveLesson(_ context.Context, lesson *Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *lesson
	m.lessons[lesson.ID] = &cp
	return nil
}

func (m *MemoryLessonStore) GetLesson(_ context.Context, id string) (*Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lesson, ok := m.lessons[id]
	if !ok {
		return nil, fmt.Errorf("lesson %s not found", id)
	}
	cp := *lesson
	return &cp, nil
}

// Len reports the number of stored lessons.
func (m *MemoryLessonStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lessons)
}
